package eval

import (
	"github.com/mtnygard/eq/eval/function"
	"github.com/mtnygard/eq/query/ast"
	"github.com/mtnygard/eq/value"
)

// closure is the Value-level representation of a Lambda/AnonLambda
// node once it has been read but not yet applied: spec.md §4.4 calls
// this "an opaque variant outside the EDN surface; it is not
// serializable." It captures the defining Env, giving it Clojure-style
// lexical scope.
type closure struct {
	params []string
	body   ast.Expr
	env    *Env
}

func (c *closure) Arity() int          { return len(c.params) }
func (c *closure) CallableKind() string { return "lambda" }

// builtinRef lets a bare symbol such as `+` or `count` flow through
// the language as an ordinary value, per spec.md §4.4: Sym resolution
// checks the lambda-binding chain, "else in B" — regardless of
// whether the symbol sits in call-head or argument position.
type builtinRef struct {
	name string
	narg int
}

func (b *builtinRef) Arity() int          { return b.narg }
func (b *builtinRef) CallableKind() string { return "builtin:" + b.name }

// Apply invokes fn (a Lambda-kind Value) with args, threading the
// ambient document input through so "." inside a lambda body still
// refers to the top-level value being processed (spec.md keeps a
// single Value graph per document; lambda scope only ever adds Sym
// bindings, it never rebinds Identity).
func Apply(fn value.Value, args []value.Value, input value.Value, pos ast.Loc) (value.Value, error) {
	if fn.Kind() == value.KindKeyword {
		if len(args) != 1 {
			return value.Nil, newEvalError(ErrArityMismatch, pos, "keyword-as-function expects 1 argument, got %d", len(args))
		}
		return applyKeyword(fn, args[0], pos)
	}
	if fn.Kind() != value.KindLambda {
		return value.Nil, newEvalError(ErrTypeError, pos, "cannot call a %s as a function", fn.TypeName())
	}
	switch l := fn.Lambda().(type) {
	case *closure:
		if len(args) != len(l.params) {
			return value.Nil, newEvalError(ErrArityMismatch, pos, "lambda expects %d argument(s), got %d", len(l.params), len(args))
		}
		env := l.env.Extend(l.params, args)
		return Eval(l.body, input, env)
	case *builtinRef:
		args = withImplicitInput(l.name, args, input)
		f, err := function.New(l.name, len(args))
		if err != nil {
			return value.Nil, translateFunctionError(err, l.name, pos)
		}
		v, err := f.Call(args)
		if err != nil {
			return value.Nil, translateFunctionError(err, l.name, pos)
		}
		return v, nil
	default:
		return value.Nil, newEvalError(ErrTypeError, pos, "not a callable value")
	}
}
