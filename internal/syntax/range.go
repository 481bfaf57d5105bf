package syntax

import (
	"errors"
	"fmt"
)

// ErrMalformedRange marks inverted or unsupported occurrence ranges. These
// are resolver or programming errors: indexing of the offending file must
// abort rather than emit corrupt data.
var ErrMalformedRange = errors.New("malformed range")

// Position is a zero-based line/column pair.
type Position struct {
	Line      int32
	Character int32
}

// Range is a half-open source span; End.Character is exclusive.
type Range struct {
	Start Position
	End   Position
}

// Encode returns the wire form of the range: [line, startColumn, endColumn]
// when the range is confined to one line, [startLine, startColumn, endLine,
// endColumn] otherwise.
func (r Range) Encode() ([]int32, error) {
	if r.End.Line < r.Start.Line ||
		(r.End.Line == r.Start.Line && r.End.Character < r.Start.Character) {
		return nil, fmt.Errorf("%w: end %d:%d precedes start %d:%d",
			ErrMalformedRange, r.End.Line, r.End.Character, r.Start.Line, r.Start.Character)
	}
	if r.Start.Line == r.End.Line {
		return []int32{r.Start.Line, r.Start.Character, r.End.Character}, nil
	}
	return []int32{r.Start.Line, r.Start.Character, r.End.Line, r.End.Character}, nil
}

// DecodeRange parses the 3- or 4-component wire form back into a Range.
func DecodeRange(parts []int32) (Range, error) {
	switch len(parts) {
	case 3:
		return Range{
			Start: Position{Line: parts[0], Character: parts[1]},
			End:   Position{Line: parts[0], Character: parts[2]},
		}, nil
	case 4:
		return Range{
			Start: Position{Line: parts[0], Character: parts[1]},
			End:   Position{Line: parts[2], Character: parts[3]},
		}, nil
	}
	return Range{}, fmt.Errorf("%w: %d components", ErrMalformedRange, len(parts))
}

// Contains reports whether the position falls inside the range.
func (r Range) Contains(line, character int32) bool {
	if line < r.Start.Line || line > r.End.Line {
		return false
	}
	if line == r.Start.Line && character < r.Start.Character {
		return false
	}
	if line == r.End.Line && character >= r.End.Character && !(r.Start == r.End) {
		return false
	}
	return true
}
