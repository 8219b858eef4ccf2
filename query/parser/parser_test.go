package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtnygard/eq/query/ast"
	"github.com/mtnygard/eq/query/parser"
	"github.com/mtnygard/eq/value"
)

func TestParseIdentity(t *testing.T) {
	e, err := parser.Parse(".")
	require.NoError(t, err)
	_, ok := e.(*ast.Identity)
	assert.True(t, ok)
}

func TestParseLiterals(t *testing.T) {
	cases := map[string]value.Value{
		"1":      value.Int(1),
		"-3":     value.Int(-3),
		"1.5":    value.Float(1.5),
		"\"hi\"": value.String("hi"),
		"true":   value.True,
		"false":  value.False,
		"nil":    value.Nil,
	}
	for src, want := range cases {
		t.Run(src, func(t *testing.T) {
			e, err := parser.Parse(src)
			require.NoError(t, err)
			lit, ok := e.(*ast.Literal)
			require.True(t, ok)
			assert.True(t, value.Equal(want, lit.Value))
		})
	}
}

func TestParseKeywordLookup(t *testing.T) {
	e, err := parser.Parse(":foo")
	require.NoError(t, err)
	kw, ok := e.(*ast.KeywordLookup)
	require.True(t, ok)
	assert.Equal(t, "foo", kw.Name)
}

func TestParseKeywordAsFunction(t *testing.T) {
	e, err := parser.Parse("(:name)")
	require.NoError(t, err)
	call, ok := e.(*ast.Call)
	require.True(t, ok)
	_, ok = call.Head.(*ast.KeywordLookup)
	assert.True(t, ok)
}

func TestParseCall(t *testing.T) {
	e, err := parser.Parse("(get :name)")
	require.NoError(t, err)
	call, ok := e.(*ast.Call)
	require.True(t, ok)
	sym, ok := call.Head.(*ast.Sym)
	require.True(t, ok)
	assert.Equal(t, "get", sym.Name)
	require.Len(t, call.Args, 1)
	_, ok = call.Args[0].(*ast.KeywordLookup)
	assert.True(t, ok)
}

func TestParseVecAndSetLiterals(t *testing.T) {
	e, err := parser.Parse("[1 2 3]")
	require.NoError(t, err)
	vec, ok := e.(*ast.Vec)
	require.True(t, ok)
	assert.Len(t, vec.Elems, 3)

	e, err = parser.Parse("#{1 2}")
	require.NoError(t, err)
	set, ok := e.(*ast.SetLit)
	require.True(t, ok)
	assert.Len(t, set.Elems, 2)
}

func TestParseMapLiteral(t *testing.T) {
	e, err := parser.Parse("{:a 1 :b 2}")
	require.NoError(t, err)
	m, ok := e.(*ast.MapLit)
	require.True(t, ok)
	assert.Len(t, m.Pairs, 2)
}

func TestParseMapLiteralOddFormsError(t *testing.T) {
	_, err := parser.Parse("{:a 1 :b}")
	assert.Error(t, err)
}

func TestParseAnonLambdaArity(t *testing.T) {
	cases := map[string]int{
		"#(+ % 1)":       1,
		"#(+ %1 %2)":     2,
		"#(vector %1 %3)": 3,
		"#(get :a)":      0,
	}
	for src, want := range cases {
		t.Run(src, func(t *testing.T) {
			e, err := parser.Parse(src)
			require.NoError(t, err)
			lam, ok := e.(*ast.AnonLambda)
			require.True(t, ok)
			assert.Equal(t, want, lam.Arity)
		})
	}
}

func TestParseFnLambda(t *testing.T) {
	e, err := parser.Parse("(fn [x y] (+ x y))")
	require.NoError(t, err)
	lam, ok := e.(*ast.Lambda)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, lam.Params)
}

// TestParseThreadFirst checks that (-> . f1 (f2 :a)) is lowered at
// read time into nested Call nodes equivalent to (f2 (f1 .) :a),
// rather than producing a dedicated threading AST node (spec.md §9).
func TestParseThreadFirst(t *testing.T) {
	e, err := parser.Parse("(-> . f1 (f2 :a))")
	require.NoError(t, err)
	outer, ok := e.(*ast.Call)
	require.True(t, ok)
	sym, ok := outer.Head.(*ast.Sym)
	require.True(t, ok)
	assert.Equal(t, "f2", sym.Name)
	require.Len(t, outer.Args, 2)

	inner, ok := outer.Args[0].(*ast.Call)
	require.True(t, ok)
	sym, ok = inner.Head.(*ast.Sym)
	require.True(t, ok)
	assert.Equal(t, "f1", sym.Name)
	require.Len(t, inner.Args, 1)
	_, ok = inner.Args[0].(*ast.Identity)
	assert.True(t, ok)

	_, ok = outer.Args[1].(*ast.KeywordLookup)
	assert.True(t, ok)
}

// TestParseThreadLast checks the ->> lowering seats the threaded value
// as the last argument at each step: (->> . (map f) (filter g)) becomes
// (filter g (map f .)).
func TestParseThreadLast(t *testing.T) {
	e, err := parser.Parse("(->> . (map f) (filter g))")
	require.NoError(t, err)
	outer, ok := e.(*ast.Call)
	require.True(t, ok)
	sym, ok := outer.Head.(*ast.Sym)
	require.True(t, ok)
	assert.Equal(t, "filter", sym.Name)
	require.Len(t, outer.Args, 2)

	gSym, ok := outer.Args[0].(*ast.Sym)
	require.True(t, ok)
	assert.Equal(t, "g", gSym.Name)

	inner, ok := outer.Args[1].(*ast.Call)
	require.True(t, ok)
	sym, ok = inner.Head.(*ast.Sym)
	require.True(t, ok)
	assert.Equal(t, "map", sym.Name)
	require.Len(t, inner.Args, 2)
	fSym, ok := inner.Args[0].(*ast.Sym)
	require.True(t, ok)
	assert.Equal(t, "f", fSym.Name)
	_, ok = inner.Args[1].(*ast.Identity)
	assert.True(t, ok)
}

func TestParseIfWhenCondDo(t *testing.T) {
	_, err := parser.Parse("(if (nil? .) 1 2)")
	assert.NoError(t, err)

	e, err := parser.Parse("(when (nil? .) 1)")
	require.NoError(t, err)
	w, ok := e.(*ast.When)
	require.True(t, ok)
	assert.Len(t, w.Body, 1)

	e, err = parser.Parse("(cond (nil? .) 1 :else 2)")
	require.NoError(t, err)
	c, ok := e.(*ast.Cond)
	require.True(t, ok)
	assert.Len(t, c.Clauses, 2)

	e, err = parser.Parse("(do 1 2 3)")
	require.NoError(t, err)
	d, ok := e.(*ast.Do)
	require.True(t, ok)
	assert.Len(t, d.Exprs, 3)
}

func TestParseLet(t *testing.T) {
	e, err := parser.Parse("(let [x 1 y 2] (+ x y))")
	require.NoError(t, err)
	l, ok := e.(*ast.Let)
	require.True(t, ok)
	assert.Equal(t, []string{"x", "y"}, l.Names)
	assert.Len(t, l.Bindings, 2)
}

// TestParseCharLiteralUnicodeEscape guards against the query reader
// drifting from edn's: a \uXXXX character escape must parse the same
// whether it appears in a document or inside a filter expression.
func TestParseCharLiteralUnicodeEscape(t *testing.T) {
	e, err := parser.Parse(`(str \u0041)`)
	require.NoError(t, err)
	call, ok := e.(*ast.Call)
	require.True(t, ok)
	require.Len(t, call.Args, 1)
	lit, ok := call.Args[0].(*ast.Literal)
	require.True(t, ok)
	assert.True(t, value.Equal(value.Char('A'), lit.Value))
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"",
		"(+ 1",
		"[1 2",
		"\"unterminated",
		"1 2",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			_, err := parser.Parse(src)
			assert.Error(t, err)
		})
	}
}
