package function

import "github.com/mtnygard/eq/value"

type ordOp int

const (
	ordLT ordOp = iota
	ordGT
	ordLE
	ordGE
)

// Ordering implements chained numeric comparison: (< a b c) is
// true iff a < b and b < c, grounded on the teacher's compare.go
// "one small struct, parameterized rather than duplicated" shape.
type Ordering struct {
	op ordOp
}

// Call requires every argument to be numeric, per spec.md line 177
// ("numeric chained comparison; error on non-numeric") — unlike
// value.Compare, which sort/sort-by also use and which spec.md
// line 60 allows to order strings lexicographically. Rejecting
// non-numeric arguments here, rather than in value.Compare itself,
// keeps that broader ordering contract intact for the collection
// built-ins while still giving </>/<=/>= the narrower one.
func (o *Ordering) Call(args []value.Value) (value.Value, error) {
	for _, a := range args {
		if !a.IsNumber() {
			return value.Nil, ErrBadArgument
		}
	}
	for i := 1; i < len(args); i++ {
		c, err := value.Compare(args[i-1], args[i])
		if err != nil {
			return value.Nil, ErrBadArgument
		}
		if !o.satisfies(c) {
			return value.False, nil
		}
	}
	return value.True, nil
}

func (o *Ordering) satisfies(c int) bool {
	switch o.op {
	case ordLT:
		return c < 0
	case ordGT:
		return c > 0
	case ordLE:
		return c <= 0
	case ordGE:
		return c >= 0
	default:
		return false
	}
}
