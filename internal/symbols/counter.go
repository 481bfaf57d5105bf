package symbols

// Counter is a monotonic integer sequence scoped to whoever instantiates it.
// Values start at zero and are never reused within the counter's scope.
type Counter struct {
	next int
}

func NewCounter() *Counter {
	return &Counter{}
}

// Next returns the current value and advances the sequence.
func (c *Counter) Next() int {
	v := c.next
	c.next++
	return v
}
