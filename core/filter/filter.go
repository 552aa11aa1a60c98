// Package filter implements a small boolean expression language for
// selecting chunks by their type properties, e.g.
//
//	critical
//	ancillary && safe
//	type=tEXt || type=iTXt
//	!(public || critical)
//
// Flag terms map onto the ChunkType bit accessors; type terms compare the
// literal 4-character type code.
package filter

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/pngstash/pngstash/core/png"
)

// Flag names understood by the language.
const (
	flagCritical  = "critical"
	flagAncillary = "ancillary"
	flagPublic    = "public"
	flagPrivate   = "private"
	flagSafe      = "safe"
	flagUnsafe    = "unsafe"
	flagValid     = "valid"
	flagInvalid   = "invalid"
)

// expression is the participle grammar root: || binds loosest.
//
//nolint:govet // participle grammar tags are not standard struct tags
type expression struct {
	Or []*andExpr `@@ ( "||" @@ )*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type andExpr struct {
	And []*unaryExpr `@@ ( "&&" @@ )*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type unaryExpr struct {
	Not  *unaryExpr `  "!" @@`
	Term *term      `| @@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type term struct {
	Type *string     `  "type" "=" @Ident`
	Flag *string     `| @Ident`
	Sub  *expression `| "(" @@ ")"`
}

// filterLexer defines the lexer for filter expressions.
var filterLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[A-Za-z]+`},
	{Name: "Op", Pattern: `&&|\|\||[!()=]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// filterParser is the participle parser for filter expressions.
// Two tokens of lookahead are needed to tell a `type=` term apart from a
// bare flag named "type".
var filterParser = participle.MustBuild[expression](
	participle.Lexer(filterLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Filter is a compiled chunk filter expression.
type Filter struct {
	root *expression
}

// Parse compiles a filter expression. Flag and type terms are validated
// here so evaluation never fails.
func Parse(src string) (*Filter, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	root, err := filterParser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression %q: %w", src, err)
	}
	if err := validateExpr(root); err != nil {
		return nil, fmt.Errorf("invalid filter expression %q: %w", src, err)
	}
	return &Filter{root: root}, nil
}

// Match reports whether the chunk satisfies the expression.
func (f *Filter) Match(c *png.Chunk) bool {
	return evalExpr(f.root, c)
}

func validateExpr(e *expression) error {
	for _, a := range e.Or {
		for _, u := range a.And {
			if err := validateUnary(u); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateUnary(u *unaryExpr) error {
	if u.Not != nil {
		return validateUnary(u.Not)
	}
	t := u.Term
	switch {
	case t.Sub != nil:
		return validateExpr(t.Sub)
	case t.Type != nil:
		if len(*t.Type) != 4 {
			return fmt.Errorf("chunk type %q must be 4 characters", *t.Type)
		}
		return nil
	case t.Flag != nil:
		switch *t.Flag {
		case flagCritical, flagAncillary, flagPublic, flagPrivate,
			flagSafe, flagUnsafe, flagValid, flagInvalid:
			return nil
		}
		return fmt.Errorf("unknown flag %q", *t.Flag)
	}
	return fmt.Errorf("empty term")
}

func evalExpr(e *expression, c *png.Chunk) bool {
	for _, a := range e.Or {
		if evalAnd(a, c) {
			return true
		}
	}
	return false
}

func evalAnd(a *andExpr, c *png.Chunk) bool {
	for _, u := range a.And {
		if !evalUnary(u, c) {
			return false
		}
	}
	return true
}

func evalUnary(u *unaryExpr, c *png.Chunk) bool {
	if u.Not != nil {
		return !evalUnary(u.Not, c)
	}
	t := u.Term
	switch {
	case t.Sub != nil:
		return evalExpr(t.Sub, c)
	case t.Type != nil:
		return c.Type().String() == *t.Type
	case t.Flag != nil:
		typ := c.Type()
		switch *t.Flag {
		case flagCritical:
			return typ.IsCritical()
		case flagAncillary:
			return !typ.IsCritical()
		case flagPublic:
			return typ.IsPublic()
		case flagPrivate:
			return !typ.IsPublic()
		case flagSafe:
			return typ.IsSafeToCopy()
		case flagUnsafe:
			return !typ.IsSafeToCopy()
		case flagValid:
			return typ.IsValid()
		case flagInvalid:
			return !typ.IsValid()
		}
	}
	return false
}
