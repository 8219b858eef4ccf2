package function

import (
	"unicode/utf8"

	"github.com/mtnygard/eq/value"
)

// Get implements (get coll k) / (get coll k default) (spec.md §4.4).
type Get struct{}

func (*Get) Call(args []value.Value) (value.Value, error) {
	coll, key := args[0], args[1]
	def := value.Nil
	if len(args) == 3 {
		def = args[2]
	}
	switch coll.Kind() {
	case value.KindMap:
		if v, ok := coll.MapGet(key); ok {
			return v, nil
		}
		return def, nil
	case value.KindVector, value.KindList:
		idx, ok := intIndex(key)
		elems := coll.Elems()
		if !ok || idx < 0 || idx >= len(elems) {
			return def, nil
		}
		return elems[idx], nil
	case value.KindSet:
		if coll.SetHas(key) {
			return key, nil
		}
		return def, nil
	default:
		return value.Nil, ErrBadArgument
	}
}

// GetIn implements (get-in coll [k ...]): repeated get, Nil on any miss.
type GetIn struct{}

func (*GetIn) Call(args []value.Value) (value.Value, error) {
	coll, path := args[0], args[1]
	if path.Kind() != value.KindVector && path.Kind() != value.KindList {
		return value.Nil, ErrBadArgument
	}
	cur := coll
	for _, k := range path.Elems() {
		v, err := (&Get{}).Call([]value.Value{cur, k})
		if err != nil {
			return value.Nil, nil
		}
		if v.IsNil() {
			return value.Nil, nil
		}
		cur = v
	}
	return cur, nil
}

func intIndex(v value.Value) (int, bool) {
	if v.Kind() != value.KindInt {
		return 0, false
	}
	return int(v.Int()), true
}

func seqOf(v value.Value) ([]value.Value, bool) {
	switch v.Kind() {
	case value.KindVector, value.KindList, value.KindSet:
		return v.Elems(), true
	default:
		return nil, false
	}
}

// First returns the first element, or Nil if empty.
type First struct{}

func (*First) Call(args []value.Value) (value.Value, error) {
	elems, ok := seqOf(args[0])
	if !ok {
		return value.Nil, ErrBadArgument
	}
	if len(elems) == 0 {
		return value.Nil, nil
	}
	return elems[0], nil
}

// Last returns the last element; O(n) for a list, O(1) for a vector.
type Last struct{}

func (*Last) Call(args []value.Value) (value.Value, error) {
	elems, ok := seqOf(args[0])
	if !ok {
		return value.Nil, ErrBadArgument
	}
	if len(elems) == 0 {
		return value.Nil, nil
	}
	return elems[len(elems)-1], nil
}

// Rest returns all but the first element; empty if len <= 1.
type Rest struct{}

func (*Rest) Call(args []value.Value) (value.Value, error) {
	v := args[0]
	elems, ok := seqOf(v)
	if !ok {
		return value.Nil, ErrBadArgument
	}
	if len(elems) <= 1 {
		return emptyLike(v), nil
	}
	return likeKind(v, append([]value.Value(nil), elems[1:]...)), nil
}

func emptyLike(v value.Value) value.Value { return likeKind(v, nil) }

func likeKind(v value.Value, elems []value.Value) value.Value {
	if v.Kind() == value.KindList {
		return value.List(elems)
	}
	return value.Vector(elems)
}

// Nth implements (nth coll i), erroring on out-of-range.
type Nth struct{}

func (*Nth) Call(args []value.Value) (value.Value, error) {
	elems, ok := seqOf(args[0])
	if !ok {
		return value.Nil, ErrBadArgument
	}
	idx, ok := intIndex(args[1])
	if !ok || idx < 0 || idx >= len(elems) {
		return value.Nil, ErrIndexOutOfRange
	}
	return elems[idx], nil
}

// Take implements (take n coll), clamping to length.
type Take struct{}

func (*Take) Call(args []value.Value) (value.Value, error) {
	n, ok := intIndex(args[0])
	if !ok {
		return value.Nil, ErrBadArgument
	}
	elems, ok := seqOf(args[1])
	if !ok {
		return value.Nil, ErrBadArgument
	}
	if n < 0 {
		n = 0
	}
	if n > len(elems) {
		n = len(elems)
	}
	return value.Vector(append([]value.Value(nil), elems[:n]...)), nil
}

// Drop implements (drop n coll), clamping to length.
type Drop struct{}

func (*Drop) Call(args []value.Value) (value.Value, error) {
	n, ok := intIndex(args[0])
	if !ok {
		return value.Nil, ErrBadArgument
	}
	elems, ok := seqOf(args[1])
	if !ok {
		return value.Nil, ErrBadArgument
	}
	if n < 0 {
		n = 0
	}
	if n > len(elems) {
		n = len(elems)
	}
	return value.Vector(append([]value.Value(nil), elems[n:]...)), nil
}

// Count returns collection size or string code-point length.
type Count struct{}

func (*Count) Call(args []value.Value) (value.Value, error) {
	v := args[0]
	switch v.Kind() {
	case value.KindVector, value.KindList, value.KindSet:
		return value.Int(int64(len(v.Elems()))), nil
	case value.KindMap:
		return value.Int(int64(len(v.Pairs()))), nil
	case value.KindString:
		return value.Int(int64(utf8.RuneCountInString(v.Str()))), nil
	case value.KindNil:
		return value.Int(0), nil
	default:
		return value.Nil, ErrBadArgument
	}
}

// Keys returns a map's keys in insertion order.
type Keys struct{}

func (*Keys) Call(args []value.Value) (value.Value, error) {
	if args[0].Kind() != value.KindMap {
		return value.Nil, ErrBadArgument
	}
	pairs := args[0].Pairs()
	out := make([]value.Value, len(pairs))
	for i, p := range pairs {
		out[i] = p.Key
	}
	return value.Vector(out), nil
}

// Vals returns a map's values in insertion order.
type Vals struct{}

func (*Vals) Call(args []value.Value) (value.Value, error) {
	if args[0].Kind() != value.KindMap {
		return value.Nil, ErrBadArgument
	}
	pairs := args[0].Pairs()
	out := make([]value.Value, len(pairs))
	for i, p := range pairs {
		out[i] = p.Val
	}
	return value.Vector(out), nil
}

// Contains reports map-key membership, set membership, or vector
// index validity.
type Contains struct{}

func (*Contains) Call(args []value.Value) (value.Value, error) {
	coll, key := args[0], args[1]
	switch coll.Kind() {
	case value.KindMap:
		_, ok := coll.MapGet(key)
		return value.Bool(ok), nil
	case value.KindSet:
		return value.Bool(coll.SetHas(key)), nil
	case value.KindVector, value.KindList:
		idx, ok := intIndex(key)
		return value.Bool(ok && idx >= 0 && idx < len(coll.Elems())), nil
	default:
		return value.Nil, ErrBadArgument
	}
}

// SelectKeys restricts a map to the listed keys.
type SelectKeys struct{}

func (*SelectKeys) Call(args []value.Value) (value.Value, error) {
	coll, keys := args[0], args[1]
	if coll.Kind() != value.KindMap || (keys.Kind() != value.KindVector && keys.Kind() != value.KindList) {
		return value.Nil, ErrBadArgument
	}
	var pairs []value.Pair
	for _, k := range keys.Elems() {
		if v, ok := coll.MapGet(k); ok {
			pairs = append(pairs, value.Pair{Key: k, Val: v})
		}
	}
	return value.Map(pairs), nil
}

// Frequencies returns a map from element to occurrence count.
type Frequencies struct{}

func (*Frequencies) Call(args []value.Value) (value.Value, error) {
	elems, ok := seqOf(args[0])
	if !ok {
		return value.Nil, ErrBadArgument
	}
	var order []value.Value
	counts := map[string]int64{}
	byKey := map[string]value.Value{}
	for _, e := range elems {
		k := value.Key(e)
		if _, seen := counts[k]; !seen {
			order = append(order, e)
			byKey[k] = e
		}
		counts[k]++
	}
	pairs := make([]value.Pair, len(order))
	for i, e := range order {
		pairs[i] = value.Pair{Key: e, Val: value.Int(counts[value.Key(e)])}
	}
	return value.Map(pairs), nil
}
