package env

import (
	"fmt"
	"strings"
)

// UndefinedReferenceError is returned when a value references a key that
// the file does not define and no default is given
type UndefinedReferenceError struct {
	Key       string
	Reference string
}

func (e *UndefinedReferenceError) Error() string {
	return fmt.Sprintf("variable %q references undefined variable %q", e.Key, e.Reference)
}

// UnterminatedReferenceError is returned when a ${ reference has no
// matching closing brace or an unexpected character after its name
type UnterminatedReferenceError struct {
	Key       string
	Reference string
}

func (e *UnterminatedReferenceError) Error() string {
	return fmt.Sprintf("variable %q has an unterminated or malformed reference to %q", e.Key, e.Reference)
}

// CycleError is returned when references loop back onto themselves
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular variable reference: %s", strings.Join(e.Path, " -> "))
}

// Expand resolves references between entries and returns the final
// variables in file order. Later assignments of the same key win.
func Expand(entries []Entry) (*Vars, error) {
	x := &expander{
		raw:      make(map[string]Entry, len(entries)),
		resolved: make(map[string]string, len(entries)),
		visiting: make(map[string]bool),
	}

	var order []string
	for _, e := range entries {
		if _, seen := x.raw[e.Key]; !seen {
			order = append(order, e.Key)
		}
		x.raw[e.Key] = e
	}

	vars := NewVars()
	for _, key := range order {
		value, err := x.resolve(key)
		if err != nil {
			return nil, err
		}
		vars.Set(key, value)
	}

	return vars, nil
}

type expander struct {
	raw      map[string]Entry
	resolved map[string]string
	visiting map[string]bool
	stack    []string
}

func (x *expander) resolve(key string) (string, error) {
	if v, ok := x.resolved[key]; ok {
		return v, nil
	}

	if x.visiting[key] {
		return "", &CycleError{Path: append(append([]string{}, x.stack...), key)}
	}

	entry := x.raw[key]
	if entry.Literal() {
		x.resolved[key] = entry.Value
		return entry.Value, nil
	}

	x.visiting[key] = true
	x.stack = append(x.stack, key)
	value, err := x.expandValue(key, entry.Value)
	x.stack = x.stack[:len(x.stack)-1]
	delete(x.visiting, key)

	if err != nil {
		return "", err
	}

	x.resolved[key] = value
	return value, nil
}

func (x *expander) expandValue(key, value string) (string, error) {
	var b strings.Builder

	for i := 0; i < len(value); {
		switch {
		case strings.HasPrefix(value[i:], `\$`):
			b.WriteByte('$')
			i += 2

		case strings.HasPrefix(value[i:], "${"):
			ref, n, err := parseBraced(key, value[i:])
			if err != nil {
				return "", err
			}
			if n == 0 {
				b.WriteByte('$')
				i++
				continue
			}
			resolved, err := x.lookup(key, ref)
			if err != nil {
				return "", err
			}
			b.WriteString(resolved)
			i += n

		case value[i] == '$':
			n := nameLength(value[i+1:], false)
			if n == 0 {
				b.WriteByte('$')
				i++
				continue
			}
			resolved, err := x.lookup(key, reference{name: value[i+1 : i+1+n]})
			if err != nil {
				return "", err
			}
			b.WriteString(resolved)
			i += 1 + n

		default:
			b.WriteByte(value[i])
			i++
		}
	}

	return b.String(), nil
}

// reference is a parsed ${NAME}, ${NAME-default} or ${NAME:-default}
type reference struct {
	name     string
	op       string // "", "-" or ":-"
	fallback string
}

func (x *expander) lookup(key string, ref reference) (string, error) {
	if _, defined := x.raw[ref.name]; defined {
		resolved, err := x.resolve(ref.name)
		if err != nil {
			return "", err
		}
		if resolved == "" && ref.op == ":-" {
			return x.expandValue(key, ref.fallback)
		}
		return resolved, nil
	}

	if ref.op != "" {
		return x.expandValue(key, ref.fallback)
	}

	return "", &UndefinedReferenceError{Key: key, Reference: ref.name}
}

// parseBraced parses a reference at the start of s, which begins with "${".
// It returns the number of bytes consumed, or 0 when s does not start with a
// valid name and should be kept as text. Defaults may nest references, so
// the closing brace is found by counting braces.
func parseBraced(key, s string) (reference, int, error) {
	n := nameLength(s[2:], true)
	if n == 0 {
		return reference{}, 0, nil
	}
	ref := reference{name: s[2 : 2+n]}
	i := 2 + n

	switch {
	case strings.HasPrefix(s[i:], "}"):
		return ref, i + 1, nil
	case strings.HasPrefix(s[i:], ":-"):
		ref.op = ":-"
	case strings.HasPrefix(s[i:], "-"):
		ref.op = "-"
	default:
		return reference{}, 0, &UnterminatedReferenceError{Key: key, Reference: ref.name}
	}
	i += len(ref.op)

	depth := 1
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				ref.fallback = s[i:j]
				return ref, j + 1, nil
			}
		}
	}

	return reference{}, 0, &UnterminatedReferenceError{Key: key, Reference: ref.name}
}

// nameLength returns the length of the variable name at the start of s.
// Braced names may also contain dots.
func nameLength(s string, braced bool) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z'):
		case i > 0 && c >= '0' && c <= '9':
		case i > 0 && braced && c == '.':
		default:
			return i
		}
	}
	return len(s)
}
