// Package annotation resolves the annotations of a single declaration.
//
// Annotations come from two independent sources. Doc comment lines carrying
// the Marker prefix are directives of the form name or name=value, where the
// value is inferred as one of
//
//   - a list: [Item1, Item2, Item3]
//   - a bool: true, false
//   - an atom: anything else, possibly empty
//
// Structured attributes supply the must_use flag and the deprecation note.
//
// A Set is built once per declaration by Load. Afterwards AddDefault may fill
// in values the declaration did not set, and the Set is read-only from then on.
// Sets share no state, so declarations can be loaded concurrently.
package annotation

import (
	"sort"

	"github.com/Alia5/bindgen/internal/config"
)

// Set holds the annotations of one declaration. The zero Set is empty.
type Set struct {
	annotations map[string]Value
	mustUse     bool
	deprecated  *string
}

// New returns an empty set.
func New() *Set {
	return &Set{annotations: make(map[string]Value)}
}

// Load builds the set for one declaration from its raw comment lines and its
// attributes. Attribute faults are reported before directive faults. A fault
// aborts the whole set; no partial set is returned.
func Load(lines []string, attrs Attributes) (*Set, error) {
	mustUse := ResolveMustUse(attrs)
	note, deprecated, err := ResolveDeprecated(attrs)
	if err != nil {
		return nil, err
	}

	set := New()
	set.mustUse = mustUse
	if deprecated {
		set.deprecated = &note
	}

	for _, directive := range ScanLines(lines) {
		name, value, err := ParseDirective(directive)
		if err != nil {
			return nil, err
		}
		set.annotations[name] = value
	}
	return set, nil
}

// AddDefault sets name to value unless the declaration already set it.
func (s *Set) AddDefault(name string, value Value) {
	if _, ok := s.annotations[name]; ok {
		return
	}
	if s.annotations == nil {
		s.annotations = make(map[string]Value)
	}
	s.annotations[name] = value
}

// IsEmpty reports whether the set has no annotations and no must_use flag.
// The deprecation note is not considered.
func (s *Set) IsEmpty() bool {
	return len(s.annotations) == 0 && !s.mustUse
}

// MustUse reports whether must_use should be emitted for lang.
func (s *Set) MustUse(lang config.Language) bool {
	return s.mustUse && !lang.Bridging()
}

// Deprecated reports whether a deprecation should be emitted for lang.
func (s *Set) Deprecated(lang config.Language) bool {
	return s.deprecated != nil && !lang.Bridging()
}

// MustUseMarked returns the stored must_use flag regardless of target language.
func (s *Set) MustUseMarked() bool { return s.mustUse }

// DeprecationNote returns the stored note. ok is false if the declaration is not deprecated.
func (s *Set) DeprecationNote() (note string, ok bool) {
	if s.deprecated == nil {
		return "", false
	}
	return *s.deprecated, true
}

// Value returns the raw value stored for name.
func (s *Set) Value(name string) (Value, bool) {
	v, ok := s.annotations[name]
	return v, ok
}

// Names returns the annotation names in sorted order.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.annotations))
	for name := range s.annotations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns the items of a list annotation. ok is false if name is unset
// or holds another kind of value.
func (s *Set) List(name string) ([]string, bool) {
	v, ok := s.annotations[name].(ListValue)
	if !ok {
		return nil, false
	}
	return append([]string(nil), v...), true
}

// Atom returns an atom annotation. ok is false if name is unset or holds
// another kind of value.
func (s *Set) Atom(name string) (AtomValue, bool) {
	v, ok := s.annotations[name].(AtomValue)
	return v, ok
}

// Bool returns a bool annotation. ok is false if name is unset or holds
// another kind of value.
func (s *Set) Bool(name string) (value bool, ok bool) {
	v, ok := s.annotations[name].(BoolValue)
	return bool(v), ok
}
