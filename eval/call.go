package eval

import (
	"github.com/mtnygard/eq/eval/function"
	"github.com/mtnygard/eq/query/ast"
	"github.com/mtnygard/eq/value"
)

// specialForms are call heads evaluated directly by this file instead
// of through the function registry, because they need the Env/Apply
// machinery a pure value->value Function cannot see: short-circuit
// and/or (Clojure semantics return the deciding value, not a Bool),
// and the higher-order collection functions that invoke a Lambda
// argument. Grounded on the teacher's And/Or/Not being dedicated
// Evaluator node types rather than registry functions.
var specialForms = map[string]bool{
	"and": true, "or": true, "not": true,
	"map": true, "filter": true, "select": true, "remove": true,
	"reduce": true, "apply": true, "group-by": true, "sort-by": true,
	"update": true,
}

func evalCall(n *ast.Call, input value.Value, env *Env, depth int) (value.Value, error) {
	if n.Head == nil {
		if len(n.Args) != 0 {
			return value.Nil, newEvalError(ErrArityMismatch, n.Location(), "empty call head takes no arguments")
		}
		return value.Nil, nil
	}
	if kw, ok := n.Head.(*ast.KeywordLookup); ok {
		return evalKeywordCall(kw, n.Args, input, env, depth)
	}
	if sym, ok := n.Head.(*ast.Sym); ok && specialForms[sym.Name] {
		return evalSpecialForm(sym.Name, n, input, env, depth)
	}
	fnVal, err := eval(n.Head, input, env, depth+1)
	if err != nil {
		return value.Nil, err
	}
	args, err := evalExprs(n.Args, input, env, depth)
	if err != nil {
		return value.Nil, err
	}
	return applyResolved(fnVal, args, input, n.Location())
}

// applyResolved dispatches a resolved head value. A builtinRef is
// resolved through the registry's New, which enforces arity, and its
// errors (ErrNoSuchFunction/ErrTooFewArgs/ErrTooManyArgs and Call's own)
// are categorized by translateFunctionError, the same handling as
// Apply's builtinRef branch; every other value goes through Apply.
func applyResolved(fnVal value.Value, args []value.Value, input value.Value, pos ast.Loc) (value.Value, error) {
	if fnVal.Kind() == value.KindLambda {
		if ref, ok := fnVal.Lambda().(*builtinRef); ok {
			args = withImplicitInput(ref.name, args, input)
			f, err := function.New(ref.name, len(args))
			if err != nil {
				return value.Nil, translateFunctionError(err, ref.name, pos)
			}
			v, err := f.Call(args)
			if err != nil {
				return value.Nil, translateFunctionError(err, ref.name, pos)
			}
			return v, nil
		}
	}
	return Apply(fnVal, args, input, pos)
}

// withImplicitInput implements spec.md §9's legacy no-dot sugar: a
// call one argument short of a builtin's minimum arity is completed
// by appending the current input as the final argument, e.g. "(first)"
// against input [1 2] reads as "(first .)". Both call paths that can
// reach a builtinRef (a direct call head and a builtin passed as a
// value to apply/map/etc.) route through this one function so the
// rule stays uniform across the registry rather than per call site.
func withImplicitInput(name string, args []value.Value, input value.Value) []value.Value {
	min, ok := function.Arity(name)
	if !ok || min < 1 || len(args) != min-1 {
		return args
	}
	return append(append([]value.Value(nil), args...), input)
}

func translateFunctionError(err error, name string, pos ast.Loc) error {
	switch err {
	case function.ErrNoSuchFunction:
		return newEvalError(ErrUnknownSymbol, pos, "no such function %q", name)
	case function.ErrTooFewArgs:
		return newEvalError(ErrArityMismatch, pos, "too few arguments to %q", name)
	case function.ErrTooManyArgs:
		return newEvalError(ErrArityMismatch, pos, "too many arguments to %q", name)
	case function.ErrDivisionByZero:
		return newEvalError(ErrDivisionByZero, pos, "%s: division by zero", name)
	case function.ErrIndexOutOfRange:
		return newEvalError(ErrIndexOutOfRange, pos, "%s: index out of range", name)
	default:
		return newEvalError(ErrTypeError, pos, "%s: %v", name, err)
	}
}

// evalKeywordCall implements spec.md §4.4's keyword-head rule: (:k x)
// looks x's value up by keyword, with zero args defaulting to input.
func evalKeywordCall(kw *ast.KeywordLookup, args []ast.Expr, input value.Value, env *Env, depth int) (value.Value, error) {
	target := input
	if len(args) > 0 {
		v, err := eval(args[0], input, env, depth+1)
		if err != nil {
			return value.Nil, err
		}
		target = v
	}
	if len(args) > 1 {
		return value.Nil, newEvalError(ErrArityMismatch, kw.Location(), "keyword call takes at most 1 argument")
	}
	return applyKeyword(value.Keyword(kw.NS, kw.Name), target, kw.Location())
}

// applyKeyword is the same lookup, reached when a keyword Value flows
// through Apply (e.g. (map :name coll)) rather than through call-head
// syntax.
func applyKeyword(kw value.Value, target value.Value, pos ast.Loc) (value.Value, error) {
	switch target.Kind() {
	case value.KindMap:
		if v, ok := target.MapGet(kw); ok {
			return v, nil
		}
		return value.Nil, nil
	case value.KindSet:
		if target.SetHas(kw) {
			return kw, nil
		}
		return value.Nil, nil
	default:
		return value.Nil, newEvalError(ErrTypeError, pos, "keyword lookup requires a map or set, got %s", target.TypeName())
	}
}
