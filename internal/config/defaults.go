// Package config holds generator settings that are not command line flags:
// the target language and the declaration defaults file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// Defaults are annotation values applied to declarations that do not set them.
// Kinds apply first, keyed by declaration kind ("fn", "struct", ...); Global
// applies last and therefore has the lowest precedence.
//
//	global:
//	  rename-all: SnakeCase
//	kinds:
//	  fn:
//	    prefix: WR_FUNC
//
// Values are strings, bools, numbers or lists.
type Defaults struct {
	Global map[string]any            `json:"global" yaml:"global" toml:"global"`
	Kinds  map[string]map[string]any `json:"kinds" yaml:"kinds" toml:"kinds"`
}

// LoadDefaults reads a defaults file. The format is chosen by extension:
// .yaml/.yml, .toml, anything else is read as JSON.
func LoadDefaults(path string) (Defaults, error) {
	var d Defaults
	data, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("read defaults file: %w", err)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &d)
	case ".toml":
		err = toml.Unmarshal(data, &d)
	default:
		err = json.Unmarshal(data, &d)
	}
	if err != nil {
		return d, fmt.Errorf("parse defaults file %s: %w", path, err)
	}
	return d, nil
}

// WithGlobal returns a copy of d with extra global values. Values in extra
// replace file values of the same name.
func (d Defaults) WithGlobal(extra map[string]string) Defaults {
	if len(extra) == 0 {
		return d
	}
	global := make(map[string]any, len(d.Global)+len(extra))
	for k, v := range d.Global {
		global[k] = v
	}
	for k, v := range extra {
		global[k] = v
	}
	return Defaults{Global: global, Kinds: d.Kinds}
}

// For returns the defaults for one declaration kind followed by the global
// defaults, each group in name order.
func (d Defaults) For(kind string) []Default {
	var out []Default
	out = appendSorted(out, d.Kinds[kind])
	out = appendSorted(out, d.Global)
	return out
}

// Default is a single name and raw value.
type Default struct {
	Name  string
	Value any
}

func appendSorted(out []Default, m map[string]any) []Default {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out = append(out, Default{Name: name, Value: m[name]})
	}
	return out
}
