package annotation

import (
	"fmt"
	"strings"
	"unicode"
)

// Marker prefixes every directive comment line, e.g.
//
//	// bindgen:field-names=[mHandle, mNamespace]
//	// bindgen:function-postfix=WR_DESTRUCTOR_SAFE
const Marker = "bindgen:"

// IsDirective reports whether a raw comment line carries a directive.
func IsDirective(line string) bool {
	return strings.HasPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), Marker)
}

// ScanLines keeps the lines that carry a directive and returns them with the
// marker stripped, in their original order.
func ScanLines(lines []string) []string {
	var out []string
	for _, line := range lines {
		line = strings.TrimLeftFunc(line, unicode.IsSpace)
		if !strings.HasPrefix(line, Marker) {
			continue
		}
		out = append(out, line[len(Marker):])
	}
	return out
}

// ParseDirective splits a directive (marker already stripped) into its name and value.
// A bare name is a Bool(true) flag. More than one '=' is a MalformedDirective fault.
func ParseDirective(directive string) (string, Value, error) {
	parts := strings.Split(directive, "=")
	if len(parts) > 2 {
		line := Marker + directive
		return "", nil, &Error{
			Kind: MalformedDirective,
			Line: line,
			Msg:  fmt.Sprintf("couldn't parse %s", line),
		}
	}

	name := strings.TrimSpace(parts[0])
	if len(parts) == 1 {
		return name, BoolValue(true), nil
	}
	return name, ParseValue(strings.TrimSpace(parts[1])), nil
}

// ParseValue infers the variant of raw value text: a bracketed list first, then
// a boolean literal, otherwise an atom.
func ParseValue(text string) Value {
	if items, ok := parseList(text); ok {
		return ListValue(items)
	}
	switch text {
	case "true":
		return BoolValue(true)
	case "false":
		return BoolValue(false)
	}
	return Atom(text)
}

// parseList splits "[x, y, z]" on commas. Items are not unescaped and brackets
// do not nest; "[]" is a list holding one empty item.
func parseList(text string) ([]string, bool) {
	if len(text) < 2 || text[0] != '[' || text[len(text)-1] != ']' {
		return nil, false
	}
	items := strings.Split(text[1:len(text)-1], ",")
	for i := range items {
		items[i] = strings.TrimSpace(items[i])
	}
	return items, true
}
