package annotation

import "github.com/Alia5/bindgen/internal/attr"

// Attributes is the structured attribute list of one declaration, as supplied
// by the source reader. attr.List implements it.
type Attributes interface {
	// HasWord reports whether a bare attribute (no value, no arguments) named name exists.
	HasWord(name string) bool
	// NameValue returns the text of a `name = "text"` attribute. Only string
	// values are reported.
	NameValue(name string) (string, bool)
	// Lists returns the raw argument text of every `name(...)` attribute, in order.
	Lists(name string) []string
	// Malformed returns the parse error of the first attribute named name whose
	// syntax could not be read, or nil.
	Malformed(name string) error
}

const (
	mustUseAttr    = "must_use"
	deprecatedAttr = "deprecated"
	noteField      = "note"
)

// ResolveMustUse reports whether the declaration carries a bare must_use attribute.
func ResolveMustUse(attrs Attributes) bool {
	return attrs != nil && attrs.HasWord(mustUseAttr)
}

// ResolveDeprecated finds the deprecation note. The first matching form wins:
//
//	deprecated = "note"
//	deprecated
//	deprecated(note = "note")
//
// ok is false when the declaration is not deprecated. A bare deprecated
// attribute yields an empty note with ok set. A deprecated attribute whose
// syntax could not be read is a fault unless one of the first two forms exists.
func ResolveDeprecated(attrs Attributes) (note string, ok bool, err error) {
	if attrs == nil {
		return "", false, nil
	}
	if note, ok := attrs.NameValue(deprecatedAttr); ok {
		return note, true, nil
	}
	if attrs.HasWord(deprecatedAttr) {
		return "", true, nil
	}

	if err := attrs.Malformed(deprecatedAttr); err != nil {
		return "", false, &Error{
			Kind: MalformedDeprecation,
			Msg:  "couldn't parse deprecated attribute",
			Err:  err,
		}
	}

	lists := attrs.Lists(deprecatedAttr)
	if len(lists) == 0 {
		return "", false, nil
	}
	args, err := attr.ParseArgs(lists[0])
	if err != nil {
		return "", false, &Error{
			Kind: MalformedDeprecation,
			Msg:  "couldn't parse deprecated attribute",
			Err:  err,
		}
	}
	for _, arg := range args {
		if arg.Name != noteField {
			continue
		}
		if arg.Value.Kind != attr.LitString {
			return "", false, &Error{
				Kind: MalformedDeprecation,
				Msg:  "deprecated attribute must be a string",
			}
		}
		return arg.Value.Text, true, nil
	}
	return "", false, &Error{
		Kind: MalformedDeprecation,
		Msg:  "couldn't parse deprecated attribute: no `note` field",
	}
}
