// Package eval is a depth-first tree-walking evaluator over
// query/ast nodes, grounded on the teacher's runtime/sam/expr
// package: Evaluator is a thin "Eval(this) Value" contract there,
// and And/Or/Not/Conditional/Call are each a small Eval method: here
// the whole tree-walk is one function, Eval, since this language's
// nodes need a threaded Env that the teacher's flat expression graph
// never required.
package eval

import (
	"github.com/mtnygard/eq/eval/function"
	"github.com/mtnygard/eq/query/ast"
	"github.com/mtnygard/eq/value"
)

// maxDepth bounds recursive descent so a pathological query or a
// cyclical-looking (but finite) AST fails with a structured error
// instead of exhausting the host stack (spec.md §5).
const maxDepth = 4000

// Eval evaluates expr against input in env. input is the ambient
// document value; env holds lambda parameter bindings introduced by
// fn, #(...), and let.
func Eval(expr ast.Expr, input value.Value, env *Env) (value.Value, error) {
	return eval(expr, input, env, 0)
}

func eval(expr ast.Expr, input value.Value, env *Env, depth int) (value.Value, error) {
	if depth > maxDepth {
		return value.Nil, newEvalError(ErrStackOverflow, expr.Location(), "maximum evaluation depth exceeded")
	}
	switch n := expr.(type) {
	case *ast.Literal:
		return n.Value, nil
	case *ast.Identity:
		return input, nil
	case *ast.Sym:
		return evalSym(n, env)
	case *ast.KeywordLookup:
		return value.Keyword(n.NS, n.Name), nil
	case *ast.Vec:
		elems, err := evalExprs(n.Elems, input, env, depth)
		if err != nil {
			return value.Nil, err
		}
		return value.Vector(elems), nil
	case *ast.SetLit:
		elems, err := evalExprs(n.Elems, input, env, depth)
		if err != nil {
			return value.Nil, err
		}
		return value.Set(elems), nil
	case *ast.MapLit:
		pairs := make([]value.Pair, len(n.Pairs))
		for i, pr := range n.Pairs {
			k, err := eval(pr.Key, input, env, depth+1)
			if err != nil {
				return value.Nil, err
			}
			v, err := eval(pr.Val, input, env, depth+1)
			if err != nil {
				return value.Nil, err
			}
			pairs[i] = value.Pair{Key: k, Val: v}
		}
		return value.Map(pairs), nil
	case *ast.Lambda:
		return value.FromLambda(&closure{params: n.Params, body: n.Body, env: env}), nil
	case *ast.AnonLambda:
		params := make([]string, n.Arity)
		for i := range params {
			params[i] = anonParamName(i + 1)
		}
		return value.FromLambda(&closure{params: params, body: n.Body, env: env}), nil
	case *ast.If:
		test, err := eval(n.Test, input, env, depth+1)
		if err != nil {
			return value.Nil, err
		}
		if truthy(test) {
			return eval(n.Then, input, env, depth+1)
		}
		return eval(n.Else, input, env, depth+1)
	case *ast.When:
		test, err := eval(n.Test, input, env, depth+1)
		if err != nil {
			return value.Nil, err
		}
		if !truthy(test) {
			return value.Nil, nil
		}
		return evalBody(n.Body, input, env, depth)
	case *ast.Cond:
		for _, c := range n.Clauses {
			test, err := eval(c.Test, input, env, depth+1)
			if err != nil {
				return value.Nil, err
			}
			if truthy(test) {
				return eval(c.Body, input, env, depth+1)
			}
		}
		return value.Nil, nil
	case *ast.Do:
		return evalBody(n.Exprs, input, env, depth)
	case *ast.Let:
		if len(n.Names) != len(n.Bindings) {
			return value.Nil, newEvalError(ErrBadLambdaBody, n.Location(), "let has mismatched names and bindings")
		}
		letEnv := env
		vals := make([]value.Value, len(n.Names))
		for i, b := range n.Bindings {
			v, err := eval(b, input, letEnv, depth+1)
			if err != nil {
				return value.Nil, err
			}
			vals[i] = v
			letEnv = letEnv.Extend(n.Names[i:i+1], vals[i:i+1])
		}
		return eval(n.Body, input, letEnv, depth+1)
	case *ast.Call:
		return evalCall(n, input, env, depth)
	default:
		return value.Nil, newEvalError(ErrTypeError, expr.Location(), "unrecognized expression node")
	}
}

func anonParamName(i int) string {
	if i == 1 {
		return "%"
	}
	digits := [...]string{"", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
	if i < len(digits) {
		return "%" + digits[i]
	}
	return "%" + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var buf [20]byte
	pos := len(buf)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

func evalExprs(exprs []ast.Expr, input value.Value, env *Env, depth int) ([]value.Value, error) {
	out := make([]value.Value, len(exprs))
	for i, e := range exprs {
		v, err := eval(e, input, env, depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func evalBody(exprs []ast.Expr, input value.Value, env *Env, depth int) (value.Value, error) {
	result := value.Nil
	for _, e := range exprs {
		v, err := eval(e, input, env, depth+1)
		if err != nil {
			return value.Nil, err
		}
		result = v
	}
	return result, nil
}

// evalSym implements spec.md §4.4's Sym rule: the lambda-binding
// chain first, then the built-in registry, wrapped so a bare function
// name can flow through the language as an ordinary value.
func evalSym(n *ast.Sym, env *Env) (value.Value, error) {
	if v, ok := env.Lookup(n.Name); ok {
		return v, nil
	}
	// An anonymous lambda binds its first parameter as "%"; "%1" names
	// the same parameter.
	if n.Name == "%1" {
		if v, ok := env.Lookup("%"); ok {
			return v, nil
		}
	}
	if narg, ok := function.Arity(n.Name); ok {
		return value.FromLambda(&builtinRef{name: n.Name, narg: narg}), nil
	}
	return value.Nil, newEvalError(ErrUnknownSymbol, n.Location(), "unknown symbol %q", n.Name)
}

func truthy(v value.Value) bool { return v.Truthy() }
