// Package attr parses declaration attributes.
//
// Go has no attribute syntax, so attributes are written as comment lines with
// the "attr:" prefix directly above a declaration:
//
//	//attr:must_use
//	//attr:deprecated
//	//attr:deprecated = "use NewThing"
//	//attr:deprecated(since = "0.4", note = "use NewThing")
//
// The three shapes are the word, name-value and list forms. Argument lists are
// kept as raw text and parsed on demand with ParseArgs, so a malformed argument
// list only matters to the reader that asks for it. An attribute that does not
// parse at all is kept with its error and matches no form.
package attr

import (
	"fmt"
	"strings"
	"unicode"
)

// Prefix starts an attribute comment line (after "//").
const Prefix = "attr:"

// Form is the syntactic shape of an attribute.
type Form int

const (
	// Word is a bare name: must_use.
	Word Form = iota + 1
	// NameValue assigns a literal: deprecated = "note".
	NameValue
	// ListForm carries an argument list: deprecated(note = "note").
	ListForm
)

func (f Form) String() string {
	switch f {
	case Word:
		return "word"
	case NameValue:
		return "name-value"
	case ListForm:
		return "list"
	default:
		return "unknown"
	}
}

// Attribute is one parsed attribute.
type Attribute struct {
	Name string
	Form Form
	// Value is set for the NameValue form.
	Value Lit
	// Args is the raw text between the parentheses of the ListForm.
	Args string
	// Err is set when the attribute could not be parsed. Form is zero then and
	// Name holds the leading identifier, if any.
	Err error
}

// List is the attribute list of one declaration.
type List []Attribute

// HasWord reports whether a bare attribute named name is present.
func (l List) HasWord(name string) bool {
	for _, a := range l {
		if a.Form == Word && a.Name == name {
			return true
		}
	}
	return false
}

// NameValue returns the string value of the first name = "text" attribute.
// Non-string values are skipped.
func (l List) NameValue(name string) (string, bool) {
	for _, a := range l {
		if a.Form == NameValue && a.Name == name && a.Value.Kind == LitString {
			return a.Value.Text, true
		}
	}
	return "", false
}

// Lists returns the raw argument text of every name(...) attribute.
func (l List) Lists(name string) []string {
	var out []string
	for _, a := range l {
		if a.Form == ListForm && a.Name == name {
			out = append(out, a.Args)
		}
	}
	return out
}

// Malformed returns the error of the first unparsable attribute named name.
func (l List) Malformed(name string) error {
	for _, a := range l {
		if a.Err != nil && a.Name == name {
			return a.Err
		}
	}
	return nil
}

// Invalid returns the attributes that could not be parsed.
func (l List) Invalid() List {
	var out List
	for _, a := range l {
		if a.Err != nil {
			out = append(out, a)
		}
	}
	return out
}

// Parse parses the text of one attribute, without the comment and Prefix.
// On error the returned Attribute still carries the name and the error.
func Parse(text string) (Attribute, error) {
	text = strings.TrimSpace(text)
	node, err := attrParser.ParseString("", text)
	if err != nil {
		err = fmt.Errorf("attribute %q: %w", text, err)
		return Attribute{Name: leadingName(text), Err: err}, err
	}

	a := Attribute{Name: node.Name}
	switch {
	case node.Value != nil:
		a.Form = NameValue
		a.Value = node.Value.lit()
	case node.List != nil:
		a.Form = ListForm
		a.Args = strings.TrimSpace(text[node.List.Open.Pos.Offset+1 : node.List.Close.Pos.Offset])
	default:
		a.Form = Word
	}
	return a, nil
}

func leadingName(text string) string {
	end := 0
	for i, r := range text {
		if !(unicode.IsLetter(r) || r == '_' || (i > 0 && unicode.IsDigit(r))) {
			break
		}
		end = i + len(string(r))
	}
	return text[:end]
}
