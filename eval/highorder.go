package eval

import (
	"github.com/mtnygard/eq/query/ast"
	"github.com/mtnygard/eq/value"
)

// evalSpecialForm handles the call heads listed in specialForms.
// and/or short-circuit and return the deciding value rather than a
// coerced Bool (spec.md §4.4: "Clojure semantics"), grounded on the
// teacher's dedicated And/Or Evaluator types. map/filter/reduce/etc.
// need Apply, which needs the ambient input and Env, so they cannot
// be plain registry Functions.
func evalSpecialForm(name string, n *ast.Call, input value.Value, env *Env, depth int) (value.Value, error) {
	switch name {
	case "and":
		return evalAnd(n.Args, input, env, depth)
	case "or":
		return evalOr(n.Args, input, env, depth)
	case "not":
		return evalNot(n.Args, input, env, depth)
	case "map":
		return evalMap(n, input, env, depth)
	case "filter", "select":
		return evalFilter(n, input, env, depth, true)
	case "remove":
		return evalFilter(n, input, env, depth, false)
	case "reduce":
		return evalReduce(n, input, env, depth)
	case "apply":
		return evalApply(n, input, env, depth)
	case "group-by":
		return evalGroupBy(n, input, env, depth)
	case "sort-by":
		return evalSortBy(n, input, env, depth)
	case "update":
		return evalUpdate(n, input, env, depth)
	default:
		return value.Nil, newEvalError(ErrUnknownSymbol, n.Location(), "unhandled special form %q", name)
	}
}

func evalAnd(args []ast.Expr, input value.Value, env *Env, depth int) (value.Value, error) {
	result := value.True
	for _, a := range args {
		v, err := eval(a, input, env, depth+1)
		if err != nil {
			return value.Nil, err
		}
		result = v
		if !truthy(v) {
			return v, nil
		}
	}
	return result, nil
}

func evalOr(args []ast.Expr, input value.Value, env *Env, depth int) (value.Value, error) {
	result := value.Nil
	for _, a := range args {
		v, err := eval(a, input, env, depth+1)
		if err != nil {
			return value.Nil, err
		}
		result = v
		if truthy(v) {
			return v, nil
		}
	}
	return result, nil
}

func evalNot(args []ast.Expr, input value.Value, env *Env, depth int) (value.Value, error) {
	if len(args) != 1 {
		return value.Nil, newEvalError(ErrArityMismatch, args[0].Location(), "not expects 1 argument, got %d", len(args))
	}
	v, err := eval(args[0], input, env, depth+1)
	if err != nil {
		return value.Nil, err
	}
	return value.Bool(!truthy(v)), nil
}

// resolveCallArgs evaluates a call's argument expressions and
// requires exactly n of them, the arity check shared by the
// fixed-arity higher-order builtins below (reduce checks its own).
func resolveCallArgs(n *ast.Call, want int, input value.Value, env *Env, depth int) ([]value.Value, error) {
	if len(n.Args) != want {
		return nil, newEvalError(ErrArityMismatch, n.Location(), "expected %d argument(s), got %d", want, len(n.Args))
	}
	return evalExprs(n.Args, input, env, depth)
}

func seqElems(v value.Value, pos ast.Loc) ([]value.Value, error) {
	switch v.Kind() {
	case value.KindVector, value.KindList, value.KindSet:
		return v.Elems(), nil
	case value.KindMap:
		elems := make([]value.Value, 0, len(v.Pairs()))
		for _, p := range v.Pairs() {
			elems = append(elems, value.Vector([]value.Value{p.Key, p.Val}))
		}
		return elems, nil
	default:
		return nil, newEvalError(ErrTypeError, pos, "expected a collection, got %s", v.TypeName())
	}
}

func evalMap(n *ast.Call, input value.Value, env *Env, depth int) (value.Value, error) {
	args, err := resolveCallArgs(n, 2, input, env, depth)
	if err != nil {
		return value.Nil, err
	}
	fn, coll := args[0], args[1]
	elems, err := seqElems(coll, n.Location())
	if err != nil {
		return value.Nil, err
	}
	out := make([]value.Value, len(elems))
	for i, e := range elems {
		v, err := Apply(fn, []value.Value{e}, input, n.Location())
		if err != nil {
			return value.Nil, err
		}
		out[i] = v
	}
	return value.Vector(out), nil
}

func evalFilter(n *ast.Call, input value.Value, env *Env, depth int, keepTruthy bool) (value.Value, error) {
	args, err := resolveCallArgs(n, 2, input, env, depth)
	if err != nil {
		return value.Nil, err
	}
	fn, coll := args[0], args[1]
	elems, err := seqElems(coll, n.Location())
	if err != nil {
		return value.Nil, err
	}
	var out []value.Value
	for _, e := range elems {
		v, err := Apply(fn, []value.Value{e}, input, n.Location())
		if err != nil {
			return value.Nil, err
		}
		if truthy(v) == keepTruthy {
			out = append(out, e)
		}
	}
	return value.Vector(out), nil
}

func evalReduce(n *ast.Call, input value.Value, env *Env, depth int) (value.Value, error) {
	if len(n.Args) != 2 && len(n.Args) != 3 {
		return value.Nil, newEvalError(ErrArityMismatch, n.Location(), "reduce expects 2 or 3 arguments, got %d", len(n.Args))
	}
	args, err := evalExprs(n.Args, input, env, depth)
	if err != nil {
		return value.Nil, err
	}
	fn := args[0]
	var acc value.Value
	var elems []value.Value
	if len(args) == 3 {
		acc = args[1]
		elems, err = seqElems(args[2], n.Location())
	} else {
		elems, err = seqElems(args[1], n.Location())
		if err == nil {
			if len(elems) == 0 {
				return value.Nil, nil
			}
			acc, elems = elems[0], elems[1:]
		}
	}
	if err != nil {
		return value.Nil, err
	}
	for _, e := range elems {
		acc, err = Apply(fn, []value.Value{acc, e}, input, n.Location())
		if err != nil {
			return value.Nil, err
		}
	}
	return acc, nil
}

func evalApply(n *ast.Call, input value.Value, env *Env, depth int) (value.Value, error) {
	args, err := resolveCallArgs(n, 2, input, env, depth)
	if err != nil {
		return value.Nil, err
	}
	fn, coll := args[0], args[1]
	elems, err := seqElems(coll, n.Location())
	if err != nil {
		return value.Nil, err
	}
	return Apply(fn, elems, input, n.Location())
}

// evalGroupBy preserves first-seen key order (spec.md §4.4's
// group-by contract), so it tracks key order separately from a
// lookup map it rebuilds into a value.Map at the end.
func evalGroupBy(n *ast.Call, input value.Value, env *Env, depth int) (value.Value, error) {
	args, err := resolveCallArgs(n, 2, input, env, depth)
	if err != nil {
		return value.Nil, err
	}
	fn, coll := args[0], args[1]
	elems, err := seqElems(coll, n.Location())
	if err != nil {
		return value.Nil, err
	}
	var order []value.Value
	groups := map[string][]value.Value{}
	for _, e := range elems {
		k, err := Apply(fn, []value.Value{e}, input, n.Location())
		if err != nil {
			return value.Nil, err
		}
		sk := value.Key(k)
		if _, seen := groups[sk]; !seen {
			order = append(order, k)
		}
		groups[sk] = append(groups[sk], e)
	}
	pairs := make([]value.Pair, len(order))
	for i, k := range order {
		pairs[i] = value.Pair{Key: k, Val: value.Vector(groups[value.Key(k)])}
	}
	return value.Map(pairs), nil
}

func evalSortBy(n *ast.Call, input value.Value, env *Env, depth int) (value.Value, error) {
	args, err := resolveCallArgs(n, 2, input, env, depth)
	if err != nil {
		return value.Nil, err
	}
	fn, coll := args[0], args[1]
	elems, err := seqElems(coll, n.Location())
	if err != nil {
		return value.Nil, err
	}
	keys := make([]value.Value, len(elems))
	for i, e := range elems {
		k, err := Apply(fn, []value.Value{e}, input, n.Location())
		if err != nil {
			return value.Nil, err
		}
		keys[i] = k
	}
	out := append([]value.Value(nil), elems...)
	var sortErr error
	insertionSort(out, func(i, j int) bool {
		less, err := value.Compare(keys[i], keys[j])
		if err != nil {
			sortErr = newEvalError(ErrTypeError, n.Location(), "sort-by: %v", err)
		}
		return less < 0
	}, func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})
	if sortErr != nil {
		return value.Nil, sortErr
	}
	return value.Vector(out), nil
}

// insertionSort is the small stable sort used by sort-by: it swaps a
// parallel key slice in lockstep with the value slice, which
// sort.Slice cannot do without an extra layer of indirection.
func insertionSort(vs []value.Value, less func(i, j int) bool, swapKeys func(i, j int)) {
	for i := 1; i < len(vs); i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			vs[j], vs[j-1] = vs[j-1], vs[j]
			swapKeys(j, j-1)
		}
	}
}

func evalUpdate(n *ast.Call, input value.Value, env *Env, depth int) (value.Value, error) {
	args, err := resolveCallArgs(n, 3, input, env, depth)
	if err != nil {
		return value.Nil, err
	}
	coll, key, fn := args[0], args[1], args[2]
	switch coll.Kind() {
	case value.KindMap:
		cur, _ := coll.MapGet(key)
		nv, err := Apply(fn, []value.Value{cur}, input, n.Location())
		if err != nil {
			return value.Nil, err
		}
		pairs := append([]value.Pair(nil), coll.Pairs()...)
		pairs = append(pairs, value.Pair{Key: key, Val: nv})
		return value.Map(pairs), nil
	case value.KindVector:
		idx, ok := indexOf(key)
		elems := coll.Elems()
		if !ok || idx < 0 || idx >= len(elems) {
			return value.Nil, newEvalError(ErrIndexOutOfRange, n.Location(), "update: index out of range")
		}
		nv, err := Apply(fn, []value.Value{elems[idx]}, input, n.Location())
		if err != nil {
			return value.Nil, err
		}
		out := append([]value.Value(nil), elems...)
		out[idx] = nv
		return value.Vector(out), nil
	default:
		return value.Nil, newEvalError(ErrTypeError, n.Location(), "update requires a map or vector, got %s", coll.TypeName())
	}
}

func indexOf(v value.Value) (int, bool) {
	if v.Kind() != value.KindInt {
		return 0, false
	}
	return int(v.Int()), true
}
