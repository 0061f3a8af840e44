package annotation

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"
)

// ParsedAtom converts the atom stored for name with parse. An atom without
// text yields the zero T. ok is false if name is not an atom.
//
// Atom text that parse rejects panics: callers only query names whose
// values they own the format of.
func ParsedAtom[T any](s *Set, name string, parse func(string) (T, error)) (value T, ok bool) {
	atom, ok := s.Atom(name)
	if !ok {
		return value, false
	}
	if !atom.Valid {
		return value, true
	}
	v, err := parse(atom.Text)
	if err != nil {
		panic(fmt.Sprintf("annotation %s=%s: %v", name, atom.Text, err))
	}
	return v, true
}

// Integer is the set of types ParseInteger can produce.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// ParseInteger parses decimal text into T, failing when the value does not fit.
// It is meant to be passed to ParsedAtom.
func ParseInteger[T Integer](text string) (T, error) {
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return safecast.Conv[T](n)
	}
	u, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		var zero T
		return zero, err
	}
	return safecast.Conv[T](u)
}
