package descriptor

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies the namespace a descriptor suffix lives in.
type Kind int

const (
	Package Kind = iota
	Type
	Term
	Meta
	Method
	Parameter
	TypeParameter
)

func (k Kind) String() string {
	switch k {
	case Package:
		return "package"
	case Type:
		return "type"
	case Term:
		return "term"
	case Meta:
		return "meta"
	case Method:
		return "method"
	case Parameter:
		return "parameter"
	case TypeParameter:
		return "type_parameter"
	default:
		return "unknown"
	}
}

// Descriptor is one named, kind-tagged segment of a global symbol string.
// Descriptors are immutable once built.
type Descriptor struct {
	Name          string
	Kind          Kind
	Disambiguator string
}

func NewPackage(name string) Descriptor {
	return Descriptor{Name: name, Kind: Package}
}

func NewType(name string) Descriptor {
	return Descriptor{Name: name, Kind: Type}
}

func NewTerm(name string) Descriptor {
	return Descriptor{Name: name, Kind: Term}
}

func NewMeta(name string) Descriptor {
	return Descriptor{Name: name, Kind: Meta}
}

func NewMethod(name, disambiguator string) Descriptor {
	return Descriptor{Name: name, Kind: Method, Disambiguator: disambiguator}
}

func NewParameter(name string) Descriptor {
	return Descriptor{Name: name, Kind: Parameter}
}

func NewTypeParameter(name string) Descriptor {
	return Descriptor{Name: name, Kind: TypeParameter}
}

// plainName matches names that can be emitted without backtick escaping.
var plainName = regexp.MustCompile(`^[\w$+-]+$`)

// Format renders the descriptor to its canonical suffix form. The rendering
// is a wire-format contract: consumers split symbol strings on these exact
// delimiters, so a kind outside the enumerated set is a hard error rather
// than a silently dropped suffix.
func (d Descriptor) Format() (string, error) {
	name := EscapeName(d.Name)
	switch d.Kind {
	case Package:
		return name + "/", nil
	case Type:
		return name + "#", nil
	case Term:
		return name + ".", nil
	case Meta:
		return name + ":", nil
	case Method:
		return name + "(" + d.Disambiguator + ").", nil
	case Parameter:
		return "(" + name + ")", nil
	case TypeParameter:
		return "[" + name + "]", nil
	}
	return "", fmt.Errorf("descriptor: cannot format unknown kind %d (name %q)", int(d.Kind), d.Name)
}

// EscapeName emits name verbatim when it is a non-empty run of word
// characters, '$', '+' or '-'; otherwise it wraps the name in backticks with
// internal backticks doubled. Empty names render as the empty string.
func EscapeName(name string) string {
	if name == "" {
		return ""
	}
	if plainName.MatchString(name) {
		return name
	}
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// UnescapeName reverses EscapeName. It expects exactly one escaped name, as
// produced by EscapeName, with no trailing suffix characters.
func UnescapeName(escaped string) (string, error) {
	if !strings.HasPrefix(escaped, "`") {
		return escaped, nil
	}
	if len(escaped) < 2 || !strings.HasSuffix(escaped, "`") {
		return "", fmt.Errorf("descriptor: unterminated escaped name %q", escaped)
	}
	inner := escaped[1 : len(escaped)-1]
	var sb strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] != '`' {
			sb.WriteByte(inner[i])
			continue
		}
		if i+1 >= len(inner) || inner[i+1] != '`' {
			return "", fmt.Errorf("descriptor: stray backtick in escaped name %q", escaped)
		}
		sb.WriteByte('`')
		i++
	}
	return sb.String(), nil
}
