package scanner

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/Alia5/bindgen/internal/annotation"
	"github.com/Alia5/bindgen/internal/attr"
)

// Kind is the kind of a scanned declaration. Defaults files key on it.
type Kind string

const (
	KindFn        Kind = "fn"
	KindMethod    Kind = "method"
	KindStruct    Kind = "struct"
	KindInterface Kind = "interface"
	KindType      Kind = "type"
	KindConst     Kind = "const"
	KindStatic    Kind = "static"
)

// Decl is a top-level declaration together with its raw annotation input.
type Decl struct {
	Name string `json:"name"` // "Foo", or "Recv.Method" for methods
	Kind Kind   `json:"kind"`
	File string `json:"file"`
	Line int    `json:"line"`
	// Comments are the doc comment lines with comment markers stripped, in order.
	// Attribute lines are not included.
	Comments []string `json:"comments,omitempty"`
	// Attrs includes attributes that could not be parsed, with their Err set.
	Attrs attr.List `json:"-"`
}

// deprecatedParagraph is the Go doc convention for deprecation notes.
const deprecatedParagraph = "Deprecated:"

// ScanFile scans a single Go file.
func ScanFile(path string) ([]Decl, error) {
	return ScanSource(path, nil)
}

// ScanSource scans Go source. src follows parser.ParseFile: nil reads filename.
func ScanSource(filename string, src any) ([]Decl, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse file: %w", err)
	}

	var decls []Decl
	add := func(name string, kind Kind, pos token.Pos, docs ...*ast.CommentGroup) {
		d := Decl{
			Name: name,
			Kind: kind,
			File: filename,
			Line: fset.Position(pos).Line,
		}
		d.Comments, d.Attrs = splitDoc(docs...)
		decls = append(decls, d)
	}

	for _, decl := range file.Decls {
		switch decl := decl.(type) {
		case *ast.FuncDecl:
			if decl.Recv == nil || len(decl.Recv.List) == 0 {
				add(decl.Name.Name, KindFn, decl.Name.Pos(), decl.Doc)
				continue
			}
			name := receiverName(decl.Recv.List[0].Type) + "." + decl.Name.Name
			add(name, KindMethod, decl.Name.Pos(), decl.Doc)

		case *ast.GenDecl:
			// A doc comment above "type (" or "const (" describes the group,
			// not the individual specs.
			var groupDoc *ast.CommentGroup
			if !decl.Lparen.IsValid() {
				groupDoc = decl.Doc
			}
			for _, spec := range decl.Specs {
				switch spec := spec.(type) {
				case *ast.TypeSpec:
					add(spec.Name.Name, typeKind(spec), spec.Name.Pos(), groupDoc, spec.Doc)
				case *ast.ValueSpec:
					kind := KindStatic
					if decl.Tok == token.CONST {
						kind = KindConst
					}
					for _, ident := range spec.Names {
						if ident.Name == "_" {
							continue
						}
						add(ident.Name, kind, ident.Pos(), groupDoc, spec.Doc)
					}
				}
			}
		}
	}
	return decls, nil
}

// GoFiles lists the non-test Go files of a directory in name order.
func GoFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}

func typeKind(spec *ast.TypeSpec) Kind {
	if spec.Assign.IsValid() {
		return KindType
	}
	switch spec.Type.(type) {
	case *ast.StructType:
		return KindStruct
	case *ast.InterfaceType:
		return KindInterface
	default:
		return KindType
	}
}

func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	case *ast.Ident:
		return t.Name
	default:
		return "?"
	}
}

// splitDoc separates attribute lines from ordinary comment lines and parses
// the attributes. A "Deprecated:" paragraph becomes deprecated = "<paragraph>"
// after any explicit attributes.
func splitDoc(groups ...*ast.CommentGroup) ([]string, attr.List) {
	var (
		lines []string
		attrs attr.List
	)
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			if text, ok := strings.CutPrefix(c.Text, "//"+attr.Prefix); ok {
				a, _ := attr.Parse(text)
				attrs = append(attrs, a)
				continue
			}
			lines = append(lines, commentLines(c)...)
		}
	}

	if note, ok := deprecationParagraph(lines); ok {
		attrs = append(attrs, attr.Attribute{
			Name:  "deprecated",
			Form:  attr.NameValue,
			Value: attr.Lit{Kind: attr.LitString, Text: note},
		})
	}
	return lines, attrs
}

func commentLines(c *ast.Comment) []string {
	if text, ok := strings.CutPrefix(c.Text, "//"); ok {
		return []string{text}
	}
	text := strings.TrimSuffix(strings.TrimPrefix(c.Text, "/*"), "*/")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		if rest, ok := strings.CutPrefix(trimmed, "*"); ok {
			line = rest
		}
		lines = append(lines, line)
	}
	return lines
}

// deprecationParagraph finds a paragraph starting with "Deprecated:". The
// paragraph ends at a blank line or a directive line.
func deprecationParagraph(lines []string) (string, bool) {
	for i, line := range lines {
		if i > 0 && strings.TrimSpace(lines[i-1]) != "" {
			continue
		}
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), deprecatedParagraph)
		if !ok {
			continue
		}
		parts := []string{strings.TrimSpace(rest)}
		for _, next := range lines[i+1:] {
			if strings.TrimSpace(next) == "" || annotation.IsDirective(next) {
				break
			}
			parts = append(parts, strings.TrimSpace(next))
		}
		return strings.TrimSpace(strings.Join(parts, " ")), true
	}
	return "", false
}
