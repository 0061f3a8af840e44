package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/Alia5/bindgen/internal/annotation"
	"github.com/Alia5/bindgen/internal/attr"
	"github.com/Alia5/bindgen/internal/codegen/meta"
	"github.com/Alia5/bindgen/internal/codegen/scanner"
	"github.com/Alia5/bindgen/internal/config"
)

func testMetadata(t *testing.T, lang config.Language) *meta.Metadata {
	t.Helper()
	handle, err := annotation.Load([]string{
		" bindgen:field-names=[mHandle, mNamespace]",
		" bindgen:postfix=",
	}, attr.List{{Name: "must_use", Form: attr.Word}})
	require.NoError(t, err)

	open, err := annotation.Load([]string{" bindgen:prefix=WR_", " bindgen:inline"}, attr.List{{
		Name:  "deprecated",
		Form:  attr.NameValue,
		Value: attr.Lit{Kind: attr.LitString, Text: "use OpenAt"},
	}})
	require.NoError(t, err)

	return &meta.Metadata{
		Language: lang,
		Items: []meta.Item{
			{Decl: scanner.Decl{Name: "Handle", Kind: scanner.KindStruct, File: "h.go", Line: 3}, Set: handle},
			{Decl: scanner.Decl{Name: "Open", Kind: scanner.KindFn, File: "h.go", Line: 9}, Set: open},
			{Decl: scanner.Decl{Name: "Broken", Kind: scanner.KindFn, File: "h.go", Line: 12}, Err: errors.New("couldn't parse bindgen:a=b=c")},
		},
	}
}

func TestBuild(t *testing.T) {
	md := testMetadata(t, config.LanguageC)
	entries := Build(md, md.Items)
	require.Len(t, entries, 3)

	handle := entries[0]
	assert.Equal(t, "struct", handle.Kind)
	assert.True(t, handle.MustUse)
	assert.False(t, handle.Deprecated)
	assert.Nil(t, handle.Note)
	assert.Equal(t, map[string]any{
		"field-names": []string{"mHandle", "mNamespace"},
		"postfix":     nil,
	}, handle.Annotations)

	open := entries[1]
	assert.True(t, open.Deprecated)
	require.NotNil(t, open.Note)
	assert.Equal(t, "use OpenAt", *open.Note)
	assert.Equal(t, map[string]any{"prefix": "WR_", "inline": true}, open.Annotations)

	broken := entries[2]
	assert.Equal(t, "couldn't parse bindgen:a=b=c", broken.Error)
	assert.Nil(t, broken.Annotations)
}

func TestBuildCython(t *testing.T) {
	md := testMetadata(t, config.LanguageCython)
	entries := Build(md, md.Items)

	assert.False(t, entries[0].MustUse)
	assert.False(t, entries[1].Deprecated)
	require.NotNil(t, entries[1].Note, "the stored note is still reported")
	assert.Equal(t, "use OpenAt", *entries[1].Note)
}

func TestWriteJSON(t *testing.T) {
	md := testMetadata(t, config.LanguageC)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "json", Build(md, md.Items)))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "Handle", got[0]["name"])
	assert.Equal(t, true, got[0]["must_use"])
	annotations := got[0]["annotations"].(map[string]any)
	assert.Equal(t, []any{"mHandle", "mNamespace"}, annotations["field-names"])
	assert.Contains(t, annotations, "postfix")
	assert.Nil(t, annotations["postfix"])
	assert.NotContains(t, got[0], "note")
	assert.Equal(t, "use OpenAt", got[1]["note"])
	assert.Contains(t, got[2], "error")
}

func TestWriteYAML(t *testing.T) {
	md := testMetadata(t, config.LanguageC)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "yaml", Build(md, md.Items)))

	var got []Entry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "Open", got[1].Name)
	assert.Equal(t, 9, got[1].Line)
	assert.Equal(t, "WR_", got[1].Annotations["prefix"])
	assert.Contains(t, buf.String(), "  - mHandle")
}

func TestWriteTOML(t *testing.T) {
	md := testMetadata(t, config.LanguageC)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "toml", Build(md, md.Items)))

	out := buf.String()
	assert.Contains(t, out, "[[declarations]]")
	assert.Contains(t, out, `name = "Handle"`)
	assert.Contains(t, out, `postfix = ""`)
	assert.Contains(t, out, `prefix = "WR_"`)
}

func TestWriteTable(t *testing.T) {
	md := testMetadata(t, config.LanguageC)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "table", Build(md, md.Items)))

	out := buf.String()
	assert.Contains(t, out, "location")
	assert.Contains(t, out, "h.go:3")
	assert.Contains(t, out, "field-names=[mHandle, mNamespace]")
	assert.Contains(t, out, "postfix=")
	assert.Contains(t, out, "must_use")
	assert.Contains(t, out, `deprecated("use OpenAt")`)
	assert.Contains(t, out, "1 declaration(s) with malformed annotations")
}

func TestWriteTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "table", nil))
	assert.Equal(t, "no declarations\n", buf.String())
}

func TestWriteUnsupported(t *testing.T) {
	err := Write(&bytes.Buffer{}, "xml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table, json, yaml, toml")
}

func TestWriteAllFormats(t *testing.T) {
	md := testMetadata(t, config.LanguageC)
	for _, format := range Formats {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, format, Build(md, md.Items)), format)
		assert.NotEmpty(t, buf.String(), format)
	}
}

func TestFlags(t *testing.T) {
	empty := ""
	note := "why"
	assert.Equal(t, "", flags(Entry{}))
	assert.Equal(t, "must_use deprecated", flags(Entry{MustUse: true, Deprecated: true, Note: &empty}))
	assert.Equal(t, `deprecated("why")`, flags(Entry{Deprecated: true, Note: &note}))
	assert.Equal(t, "", flags(Entry{Note: &note}), "note alone is not a flag")
}
