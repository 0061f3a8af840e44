package meta

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/bindgen/internal/annotation"
	"github.com/Alia5/bindgen/internal/attr"
	"github.com/Alia5/bindgen/internal/codegen/scanner"
)

func TestFaultsAndAnnotated(t *testing.T) {
	empty := annotation.New()
	prefixed, err := annotation.Load([]string{" bindgen:prefix=WR_"}, nil)
	require.NoError(t, err)
	deprecated, err := annotation.Load(nil, attr.List{{Name: "deprecated", Form: attr.Word}})
	require.NoError(t, err)

	md := &Metadata{Items: []Item{
		{Decl: scanner.Decl{Name: "Empty"}, Set: empty},
		{Decl: scanner.Decl{Name: "Prefixed"}, Set: prefixed},
		{Decl: scanner.Decl{Name: "Broken"}, Err: errors.New("bad")},
		{Decl: scanner.Decl{Name: "Old"}, Set: deprecated},
	}}

	faults := md.Faults()
	require.Len(t, faults, 1)
	assert.Equal(t, "Broken", faults[0].Decl.Name)

	var names []string
	for _, it := range md.Annotated() {
		names = append(names, it.Decl.Name)
	}
	assert.Equal(t, []string{"Prefixed", "Broken", "Old"}, names)
}
