package eval

import (
	"errors"
	"fmt"

	"github.com/mtnygard/eq/query/ast"
)

// Category sentinels enumerate the evaluation-failure taxonomy of
// spec.md §4.4. They are package-level errors.New values checked with
// errors.Is, the same convention eval/function uses for
// ErrBadArgument/ErrNoSuchFunction (eval/function/function.go) rather
// than a string enum compared with ==.
var (
	ErrUnknownSymbol   = errors.New("unknown-symbol")
	ErrArityMismatch   = errors.New("arity-mismatch")
	ErrTypeError       = errors.New("type-error")
	ErrIndexOutOfRange = errors.New("index-out-of-range")
	ErrDivisionByZero  = errors.New("division-by-zero")
	ErrBadLambdaBody   = errors.New("bad-lambda-body")
	ErrNonSerializable = errors.New("non-serializable")
	ErrStackOverflow   = errors.New("stack-overflow")
)

// EvalError is returned by Eval. It carries the source position of
// the offending expression as a line/col pair, mirroring
// edn.ParseError (spec.md §7), and wraps one of the Category
// sentinels above so callers can test the failure kind with
// errors.Is(err, eval.ErrDivisionByZero) instead of inspecting a
// field.
type EvalError struct {
	Category error
	Detail   string
	Pos      ast.Loc
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("Error: %s: %s (at line %d, col %d)", e.Category, e.Detail, e.Pos.Line, e.Pos.Col)
}

func (e *EvalError) Unwrap() error { return e.Category }

func newEvalError(cat error, pos ast.Loc, format string, args ...any) *EvalError {
	return &EvalError{Category: cat, Detail: fmt.Sprintf(format, args...), Pos: pos}
}
