package function

import "github.com/mtnygard/eq/value"

// Predicate implements the type/emptiness predicates of spec.md §4.4:
// one struct parameterized by a test function rather than one struct
// per predicate, since each body is a single Kind comparison.
type Predicate struct {
	test func(value.Value) bool
}

func (p *Predicate) Call(args []value.Value) (value.Value, error) {
	return value.Bool(p.test(args[0])), nil
}

func isNil(v value.Value) bool     { return v.Kind() == value.KindNil }
func isNumber(v value.Value) bool  { return v.IsNumber() }
func isString(v value.Value) bool  { return v.Kind() == value.KindString }
func isKeyword(v value.Value) bool { return v.Kind() == value.KindKeyword }
func isBoolean(v value.Value) bool { return v.Kind() == value.KindBool }

func isEmpty(v value.Value) bool {
	switch v.Kind() {
	case value.KindVector, value.KindList, value.KindSet:
		return len(v.Elems()) == 0
	case value.KindMap:
		return len(v.Pairs()) == 0
	case value.KindString:
		return v.Str() == ""
	case value.KindNil:
		return true
	default:
		return false
	}
}

// Eq implements chained Value equality across all args.
type Eq struct{}

func (*Eq) Call(args []value.Value) (value.Value, error) {
	for i := 1; i < len(args); i++ {
		if !value.Equal(args[0], args[i]) {
			return value.False, nil
		}
	}
	return value.True, nil
}
