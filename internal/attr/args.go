package attr

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// LitKind is the kind of a literal attribute value.
type LitKind int

const (
	LitString LitKind = iota + 1
	LitBool
	LitNumber
	LitChar
	LitIdent
)

func (k LitKind) String() string {
	switch k {
	case LitString:
		return "string"
	case LitBool:
		return "bool"
	case LitNumber:
		return "number"
	case LitChar:
		return "char"
	case LitIdent:
		return "ident"
	default:
		return "unknown"
	}
}

// Lit is a literal value. Text is unquoted for strings and verbatim otherwise.
type Lit struct {
	Kind LitKind
	Text string
}

// Arg is one name = literal pair of an argument list.
type Arg struct {
	Name  string
	Value Lit
	Pos   lexer.Position
}

type argList struct {
	Args []*argNode `parser:"( @@ ( ',' @@ )* ','? )?"`
}

type argNode struct {
	Pos   lexer.Position
	Name  string   `parser:"@Ident '='"`
	Value *literal `parser:"@@"`
}

type literal struct {
	String *string `parser:"  @(String | RawString)"`
	Bool   *string `parser:"| @('true' | 'false')"`
	Number *string `parser:"| @('-'? (Float | Int))"`
	Char   *string `parser:"| @Char"`
	Ident  *string `parser:"| @Ident"`
}

func (l *literal) lit() Lit {
	switch {
	case l.String != nil:
		return Lit{Kind: LitString, Text: *l.String}
	case l.Bool != nil:
		return Lit{Kind: LitBool, Text: *l.Bool}
	case l.Number != nil:
		return Lit{Kind: LitNumber, Text: *l.Number}
	case l.Char != nil:
		return Lit{Kind: LitChar, Text: *l.Char}
	default:
		return Lit{Kind: LitIdent, Text: *l.Ident}
	}
}

// attribute is the full shape of one attribute: a name, then nothing,
// "= literal" or a parenthesized argument list kept as raw tokens.
type attribute struct {
	Name  string    `parser:"@Ident"`
	Value *literal  `parser:"( '=' @@"`
	List  *listNode `parser:"| @@ )?"`
}

type listNode struct {
	Open  lexer.Token `parser:"@'('"`
	Close lexer.Token `parser:"( ~')' )* @')'"`
}

var (
	argsParser = participle.MustBuild[argList](
		participle.Unquote("String", "RawString"),
		participle.UseLookahead(2),
	)
	attrParser = participle.MustBuild[attribute](
		participle.Unquote("String", "RawString"),
	)
)

// ParseArgs parses a comma separated list of name = literal pairs, e.g.
// `since = "0.4", note = "use NewThing"`. A trailing comma is allowed and an
// empty list yields no arguments.
func ParseArgs(src string) ([]Arg, error) {
	list, err := argsParser.ParseString("", src)
	if err != nil {
		return nil, err
	}
	args := make([]Arg, 0, len(list.Args))
	for _, n := range list.Args {
		args = append(args, Arg{Name: n.Name, Value: n.Value.lit(), Pos: n.Pos})
	}
	return args, nil
}
