package meta

import (
	"github.com/Alia5/bindgen/internal/annotation"
	"github.com/Alia5/bindgen/internal/codegen/scanner"
	"github.com/Alia5/bindgen/internal/config"
)

// Item is one declaration and its resolved annotations.
// Exactly one of Set and Err is non-nil.
type Item struct {
	Decl scanner.Decl
	Set  *annotation.Set
	Err  error
}

// Metadata holds everything collected for one generator run.
type Metadata struct {
	Language config.Language
	Items    []Item // ordered by file, then line
}

// Faults returns the items whose annotations could not be resolved.
func (m *Metadata) Faults() []Item {
	var out []Item
	for _, it := range m.Items {
		if it.Err != nil {
			out = append(out, it)
		}
	}
	return out
}

// Annotated returns faulted items and items with a non-empty set or a deprecation note.
func (m *Metadata) Annotated() []Item {
	var out []Item
	for _, it := range m.Items {
		if it.Err != nil {
			out = append(out, it)
			continue
		}
		if _, deprecated := it.Set.DeprecationNote(); deprecated || !it.Set.IsEmpty() {
			out = append(out, it)
		}
	}
	return out
}
