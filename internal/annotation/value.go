package annotation

// Value is a single annotation value. It is exactly one of ListValue,
// AtomValue or BoolValue; readers switch on the concrete type.
type Value interface {
	isValue()
}

// ListValue is an ordered list of items, e.g. field-names=[mHandle, mNamespace].
type ListValue []string

// AtomValue is a scalar that may or may not carry text.
// Valid is false for directives written as "name=".
type AtomValue struct {
	Text  string
	Valid bool
}

// BoolValue is a flag, either written explicitly (name=false) or implied by
// a bare directive name.
type BoolValue bool

func (ListValue) isValue() {}
func (AtomValue) isValue() {}
func (BoolValue) isValue() {}

// Atom builds an atom from directive text. Empty text yields an atom without text.
func Atom(text string) AtomValue {
	if text == "" {
		return AtomValue{}
	}
	return AtomValue{Text: text, Valid: true}
}
