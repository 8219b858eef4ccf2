// Package function is the built-in registry (B) of spec.md §4.4: a
// name/arity-keyed dispatcher over one small struct per function,
// grounded on the teacher's runtime/sam/expr/function package. Unlike
// the teacher, functions here never see an allocator or type context:
// every value.Value is already self-describing, so Call takes only
// the evaluated argument list.
package function

import (
	"errors"

	"github.com/mtnygard/eq/value"
)

var (
	ErrBadArgument     = errors.New("bad argument")
	ErrNoSuchFunction  = errors.New("no such function")
	ErrTooFewArgs      = errors.New("too few arguments")
	ErrTooManyArgs     = errors.New("too many arguments")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Function is implemented by every built-in. Call receives the
// already-evaluated, already arity-checked argument list.
type Function interface {
	Call(args []value.Value) (value.Value, error)
}

// arities is consulted by both New (to validate a concrete call) and
// Arity (to let a bare builtin name flow through the language as a
// value, before any argument count is known).
func arities(name string) (argmin, argmax int, ok bool) {
	switch name {
	case "get":
		return 2, 3, true
	case "get-in", "nth", "take", "drop", "contains?", "select-keys", "into", "mod", "levenshtein":
		return 2, 2, true
	case "first", "last", "rest", "count", "keys", "vals", "frequencies",
		"nil?", "number?", "string?", "keyword?", "boolean?", "empty?", "sort", "distinct":
		return 1, 1, true
	case "=", "<", ">", "<=", ">=":
		return 2, -1, true
	case "-":
		return 1, -1, true
	case "+", "*", "/":
		return 2, -1, true
	case "str":
		return 0, -1, true
	case "assoc":
		return 3, -1, true
	case "uuid":
		return 0, 0, true
	default:
		return 0, 0, false
	}
}

// New resolves name to its Function implementation and validates narg
// against the function's arity, mirroring the teacher's
// function.New(sctx, name, narg).
func New(name string, narg int) (Function, error) {
	argmin, argmax, ok := arities(name)
	if !ok {
		return nil, ErrNoSuchFunction
	}
	var f Function
	switch name {
	case "get":
		f = &Get{}
	case "get-in":
		f = &GetIn{}
	case "first":
		f = &First{}
	case "last":
		f = &Last{}
	case "rest":
		f = &Rest{}
	case "nth":
		f = &Nth{}
	case "take":
		f = &Take{}
	case "drop":
		f = &Drop{}
	case "count":
		f = &Count{}
	case "keys":
		f = &Keys{}
	case "vals":
		f = &Vals{}
	case "contains?":
		f = &Contains{}
	case "select-keys":
		f = &SelectKeys{}
	case "frequencies":
		f = &Frequencies{}
	case "nil?":
		f = &Predicate{test: isNil}
	case "number?":
		f = &Predicate{test: isNumber}
	case "string?":
		f = &Predicate{test: isString}
	case "keyword?":
		f = &Predicate{test: isKeyword}
	case "boolean?":
		f = &Predicate{test: isBoolean}
	case "empty?":
		f = &Predicate{test: isEmpty}
	case "=":
		f = &Eq{}
	case "<":
		f = &Ordering{op: ordLT}
	case ">":
		f = &Ordering{op: ordGT}
	case "<=":
		f = &Ordering{op: ordLE}
	case ">=":
		f = &Ordering{op: ordGE}
	case "+":
		f = &Arith{op: arithAdd}
	case "-":
		f = &Arith{op: arithSub}
	case "*":
		f = &Arith{op: arithMul}
	case "/":
		f = &Arith{op: arithDiv}
	case "mod":
		f = &Arith{op: arithMod}
	case "str":
		f = &Str{}
	case "sort":
		f = &Sort{}
	case "distinct":
		f = &Distinct{}
	case "into":
		f = &Into{}
	case "assoc":
		f = &Assoc{}
	case "levenshtein":
		f = &Levenshtein{}
	case "uuid":
		f = &UUID{}
	default:
		return nil, ErrNoSuchFunction
	}
	if err := CheckArgCount(narg, argmin, argmax); err != nil {
		return nil, err
	}
	return f, nil
}

// Exists reports whether name is a registered built-in.
func Exists(name string) bool {
	_, _, ok := arities(name)
	return ok
}

// Arity reports the narg eval.evalSym should record in a builtinRef
// when name is used as a value rather than called directly: for
// fixed-arity functions this is the true arity; for variadic ones the
// minimum, since the real check runs again when the wrapped function
// is finally applied with concrete arguments.
func Arity(name string) (int, bool) {
	argmin, _, ok := arities(name)
	if !ok {
		return 0, false
	}
	return argmin, true
}

func CheckArgCount(narg, argmin, argmax int) error {
	if argmin != -1 && narg < argmin {
		return ErrTooFewArgs
	}
	if argmax != -1 && narg > argmax {
		return ErrTooManyArgs
	}
	return nil
}
