// Package report renders resolved annotations for inspection.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bndr/gotabulate"
	"github.com/fatih/color"
	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/bindgen/internal/annotation"
	"github.com/Alia5/bindgen/internal/codegen/meta"
)

// Entry is the report row of one declaration. MustUse and Deprecated are
// evaluated for the target language; Note is the stored deprecation note.
type Entry struct {
	File        string         `json:"file" yaml:"file" toml:"file"`
	Line        int            `json:"line" yaml:"line" toml:"line"`
	Kind        string         `json:"kind" yaml:"kind" toml:"kind"`
	Name        string         `json:"name" yaml:"name" toml:"name"`
	Annotations map[string]any `json:"annotations,omitempty" yaml:"annotations,omitempty" toml:"annotations,omitempty"`
	MustUse     bool           `json:"must_use" yaml:"must_use" toml:"must_use"`
	Deprecated  bool           `json:"deprecated" yaml:"deprecated" toml:"deprecated"`
	Note        *string        `json:"note,omitempty" yaml:"note,omitempty" toml:"note,omitempty"`
	Error       string         `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

// Build converts collected items into report entries.
func Build(md *meta.Metadata, items []meta.Item) []Entry {
	entries := make([]Entry, 0, len(items))
	for _, it := range items {
		e := Entry{
			File: it.Decl.File,
			Line: it.Decl.Line,
			Kind: string(it.Decl.Kind),
			Name: it.Decl.Name,
		}
		if it.Err != nil {
			e.Error = it.Err.Error()
			entries = append(entries, e)
			continue
		}
		e.MustUse = it.Set.MustUse(md.Language)
		e.Deprecated = it.Set.Deprecated(md.Language)
		if note, ok := it.Set.DeprecationNote(); ok {
			e.Note = &note
		}
		if names := it.Set.Names(); len(names) > 0 {
			e.Annotations = make(map[string]any, len(names))
			for _, name := range names {
				v, _ := it.Set.Value(name)
				e.Annotations[name] = plain(v)
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// plain converts a value to its JSON shape: list -> []string, atom -> string
// or nil, bool -> bool.
func plain(v annotation.Value) any {
	switch v := v.(type) {
	case annotation.ListValue:
		return []string(v)
	case annotation.AtomValue:
		if !v.Valid {
			return nil
		}
		return v.Text
	case annotation.BoolValue:
		return bool(v)
	default:
		return nil
	}
}

// Formats lists the formats accepted by Write.
var Formats = []string{"table", "json", "yaml", "toml"}

// Write renders entries in the given format.
func Write(w io.Writer, format string, entries []Entry) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		data, err := toml.Marshal(tomlDocument{Declarations: tomlEntries(entries)})
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "table":
		return writeTable(w, entries)
	default:
		return fmt.Errorf("unsupported format %q (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

type tomlDocument struct {
	Declarations []Entry `toml:"declarations"`
}

// tomlEntries replaces atoms without text by "", TOML has no null.
func tomlEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = e
		if e.Annotations == nil {
			continue
		}
		out[i].Annotations = make(map[string]any, len(e.Annotations))
		for k, v := range e.Annotations {
			if v == nil {
				v = ""
			}
			out[i].Annotations[k] = v
		}
	}
	return out
}

var faultColor = color.New(color.FgRed, color.Bold)

func writeTable(w io.Writer, entries []Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no declarations")
		return err
	}

	rows := make([][]any, 0, len(entries))
	faults := 0
	for _, e := range entries {
		status := flags(e)
		if e.Error != "" {
			faults++
			status = "error: " + e.Error
		}
		rows = append(rows, []any{
			fmt.Sprintf("%s:%d", e.File, e.Line),
			e.Kind,
			e.Name,
			formatAnnotations(e.Annotations),
			status,
		})
	}

	t := gotabulate.Create(rows)
	t.SetHeaders([]string{"location", "kind", "name", "annotations", "flags"})
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(60)
	if _, err := fmt.Fprint(w, t.Render("grid")); err != nil {
		return err
	}
	if faults > 0 {
		_, err := faultColor.Fprintf(w, "%d declaration(s) with malformed annotations\n", faults)
		return err
	}
	return nil
}

func flags(e Entry) string {
	var parts []string
	if e.MustUse {
		parts = append(parts, "must_use")
	}
	if e.Deprecated {
		if e.Note != nil && *e.Note != "" {
			parts = append(parts, fmt.Sprintf("deprecated(%q)", *e.Note))
		} else {
			parts = append(parts, "deprecated")
		}
	}
	return strings.Join(parts, " ")
}

func formatAnnotations(m map[string]any) string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		switch v := m[name].(type) {
		case nil:
			parts = append(parts, name+"=")
		case []string:
			parts = append(parts, fmt.Sprintf("%s=[%s]", name, strings.Join(v, ", ")))
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", name, v))
		}
	}
	return strings.Join(parts, " ")
}
