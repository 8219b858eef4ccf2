package function

import "github.com/mtnygard/eq/value"

type arithOp int

const (
	arithAdd arithOp = iota
	arithSub
	arithMul
	arithDiv
	arithMod
)

// Arith implements +, -, *, /, mod (spec.md §4.4): integer operands
// stay integer except / on an inexact division, which widens to
// float; a single "-" argument negates rather than subtracting.
type Arith struct {
	op arithOp
}

func (a *Arith) Call(args []value.Value) (value.Value, error) {
	for _, v := range args {
		if !v.IsNumber() {
			return value.Nil, ErrBadArgument
		}
	}
	if a.op == arithSub && len(args) == 1 {
		return negate(args[0]), nil
	}
	if a.op == arithMod {
		return arithModCall(args[0], args[1])
	}
	acc := args[0]
	for _, v := range args[1:] {
		var err error
		acc, err = a.combine(acc, v)
		if err != nil {
			return value.Nil, err
		}
	}
	return acc, nil
}

func negate(v value.Value) value.Value {
	if v.Kind() == value.KindInt {
		return value.Int(-v.Int())
	}
	return value.Float(-v.Float())
}

func (a *Arith) combine(x, y value.Value) (value.Value, error) {
	bothInt := x.Kind() == value.KindInt && y.Kind() == value.KindInt
	switch a.op {
	case arithAdd:
		if bothInt {
			return value.Int(x.Int() + y.Int()), nil
		}
		return value.Float(x.AsFloat() + y.AsFloat()), nil
	case arithSub:
		if bothInt {
			return value.Int(x.Int() - y.Int()), nil
		}
		return value.Float(x.AsFloat() - y.AsFloat()), nil
	case arithMul:
		if bothInt {
			return value.Int(x.Int() * y.Int()), nil
		}
		return value.Float(x.AsFloat() * y.AsFloat()), nil
	case arithDiv:
		if y.AsFloat() == 0 {
			return value.Nil, ErrDivisionByZero
		}
		if bothInt && y.Int() != 0 && x.Int()%y.Int() == 0 {
			return value.Int(x.Int() / y.Int()), nil
		}
		return value.Float(x.AsFloat() / y.AsFloat()), nil
	default:
		return value.Nil, ErrBadArgument
	}
}

func arithModCall(x, y value.Value) (value.Value, error) {
	if x.Kind() != value.KindInt || y.Kind() != value.KindInt {
		return value.Nil, ErrBadArgument
	}
	if y.Int() == 0 {
		return value.Nil, ErrDivisionByZero
	}
	m := x.Int() % y.Int()
	if m != 0 && (m < 0) != (y.Int() < 0) {
		m += y.Int()
	}
	return value.Int(m), nil
}
