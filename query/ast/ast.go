// Package ast declares the syntax tree produced by the query reader
// (spec.md §3.2). The node shapes mirror the teacher's compiler/ast
// package: every node carries a Kind discriminator (for a future
// --debug JSON dump) and embeds Loc for diagnostics.
package ast

import "github.com/mtnygard/eq/value"

// Node is implemented by every AST node.
type Node interface {
	Pos() int
	End() int
	Location() Loc
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

type (
	// Literal is a constant embedded in the query text.
	Literal struct {
		Kind  string `json:"kind" unpack:""`
		Value value.Value
		Loc   `json:"loc"`
	}

	// Identity is the "." expression: the current input.
	Identity struct {
		Kind string `json:"kind" unpack:""`
		Loc  `json:"loc"`
	}

	// Sym is a bare symbol reference, e.g. f inside (map f coll).
	Sym struct {
		Kind string `json:"kind" unpack:""`
		Name string `json:"name"`
		Loc  `json:"loc"`
	}

	// Call is function application. Head is either a Sym, a
	// KeywordLookup, or any Expr yielding a callable.
	Call struct {
		Kind string `json:"kind" unpack:""`
		Head Expr   `json:"head"`
		Args []Expr `json:"args"`
		Loc  `json:"loc"`
	}

	// KeywordLookup models a keyword in call-head position,
	// (:k x) => Call(KeywordLookup(k), [x]) (spec.md §3.2).
	KeywordLookup struct {
		Kind string `json:"kind" unpack:""`
		NS   string `json:"ns"`
		Name string `json:"name"`
		Loc  `json:"loc"`
	}

	// Vec is a vector literal whose elements are expressions.
	Vec struct {
		Kind  string `json:"kind" unpack:""`
		Elems []Expr `json:"elems"`
		Loc   `json:"loc"`
	}

	// MapPair is one key/value expression pair of a MapLit.
	MapPair struct {
		Key Expr
		Val Expr
	}

	// MapLit is a map literal whose pairs are expressions.
	MapLit struct {
		Kind  string    `json:"kind" unpack:""`
		Pairs []MapPair `json:"pairs"`
		Loc   `json:"loc"`
	}

	// SetLit is a set literal whose elements are expressions.
	SetLit struct {
		Kind  string `json:"kind" unpack:""`
		Elems []Expr `json:"elems"`
		Loc   `json:"loc"`
	}

	// Lambda is (fn [params...] body).
	Lambda struct {
		Kind   string   `json:"kind" unpack:""`
		Params []string `json:"params"`
		Body   Expr     `json:"body"`
		Loc    `json:"loc"`
	}

	// AnonLambda is #(...) with implicit %, %1, %2, ... parameters.
	// Arity is computed by the parser by scanning Body (spec.md §4.3).
	AnonLambda struct {
		Kind  string `json:"kind" unpack:""`
		Arity int    `json:"arity"`
		Body  Expr   `json:"body"`
		Loc   `json:"loc"`
	}

	// If is (if test then else).
	If struct {
		Kind string `json:"kind" unpack:""`
		Test Expr   `json:"test"`
		Then Expr   `json:"then"`
		Else Expr   `json:"else"`
		Loc  `json:"loc"`
	}

	// When is (when test body...), returning nil when test is falsy.
	When struct {
		Kind string `json:"kind" unpack:""`
		Test Expr   `json:"test"`
		Body []Expr `json:"body"`
		Loc  `json:"loc"`
	}

	// CondClause is one (test result) pair of a Cond.
	CondClause struct {
		Test Expr
		Body Expr
	}

	// Cond is (cond test1 body1 test2 body2 ... [:else bodyN]).
	Cond struct {
		Kind    string       `json:"kind" unpack:""`
		Clauses []CondClause `json:"clauses"`
		Loc     `json:"loc"`
	}

	// Do is (do expr...), evaluating to the value of the last.
	Do struct {
		Kind  string `json:"kind" unpack:""`
		Exprs []Expr `json:"exprs"`
		Loc   `json:"loc"`
	}

	// Let is (let [name val name val ...] body) — supplemental, see
	// SPEC_FULL.md §C.4.
	Let struct {
		Kind     string   `json:"kind" unpack:""`
		Names    []string `json:"names"`
		Bindings []Expr   `json:"bindings"`
		Body     Expr     `json:"body"`
		Loc      `json:"loc"`
	}
)

func (*Literal) exprNode()       {}
func (*Identity) exprNode()      {}
func (*Sym) exprNode()           {}
func (*Call) exprNode()          {}
func (*KeywordLookup) exprNode() {}
func (*Vec) exprNode()           {}
func (*MapLit) exprNode()        {}
func (*SetLit) exprNode()        {}
func (*Lambda) exprNode()        {}
func (*AnonLambda) exprNode()    {}
func (*If) exprNode()            {}
func (*When) exprNode()          {}
func (*Cond) exprNode()          {}
func (*Do) exprNode()            {}
func (*Let) exprNode()           {}
