// supplement.go holds the builtins added beyond spec.md §4.4's
// required table: sort, distinct, into, assoc (SPEC_FULL.md §C.3),
// and levenshtein/uuid (§C.2), carried over from the teacher's
// string.go/ksuid.go builtins.
package function

import (
	"sort"

	"github.com/agnivade/levenshtein"
	"github.com/segmentio/ksuid"

	"github.com/mtnygard/eq/value"
)

// Sort returns a vector in ascending natural order (value.Compare).
type Sort struct{}

func (*Sort) Call(args []value.Value) (value.Value, error) {
	elems, ok := seqOf(args[0])
	if !ok {
		return value.Nil, ErrBadArgument
	}
	out := append([]value.Value(nil), elems...)
	var sortErr error
	sort.SliceStable(out, func(i, j int) bool {
		c, err := value.Compare(out[i], out[j])
		if err != nil {
			sortErr = ErrBadArgument
		}
		return c < 0
	})
	if sortErr != nil {
		return value.Nil, sortErr
	}
	return value.Vector(out), nil
}

// Distinct keeps only the first occurrence of each structurally equal
// element, preserving order.
type Distinct struct{}

func (*Distinct) Call(args []value.Value) (value.Value, error) {
	elems, ok := seqOf(args[0])
	if !ok {
		return value.Nil, ErrBadArgument
	}
	seen := map[string]bool{}
	var out []value.Value
	for _, e := range elems {
		k := value.Key(e)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return value.Vector(out), nil
}

// Into pours the elements of from into a collection shaped like to:
// a Vector/List accumulates in order, a Set dedups, a Map merges
// key/value pairs (from a Map or a sequence of 2-element pairs).
type Into struct{}

func (*Into) Call(args []value.Value) (value.Value, error) {
	to, from := args[0], args[1]
	switch to.Kind() {
	case value.KindVector, value.KindList:
		elems, ok := seqOf(from)
		if !ok {
			return value.Nil, ErrBadArgument
		}
		return likeKind(to, append(append([]value.Value(nil), to.Elems()...), elems...)), nil
	case value.KindSet:
		elems, ok := seqOf(from)
		if !ok {
			return value.Nil, ErrBadArgument
		}
		return value.Set(append(append([]value.Value(nil), to.Elems()...), elems...)), nil
	case value.KindMap:
		pairs := append([]value.Pair(nil), to.Pairs()...)
		switch from.Kind() {
		case value.KindMap:
			pairs = append(pairs, from.Pairs()...)
		case value.KindVector, value.KindList, value.KindSet:
			for _, e := range from.Elems() {
				if e.Kind() != value.KindVector && e.Kind() != value.KindList {
					return value.Nil, ErrBadArgument
				}
				ee := e.Elems()
				if len(ee) != 2 {
					return value.Nil, ErrBadArgument
				}
				pairs = append(pairs, value.Pair{Key: ee[0], Val: ee[1]})
			}
		default:
			return value.Nil, ErrBadArgument
		}
		return value.Map(pairs), nil
	default:
		return value.Nil, ErrBadArgument
	}
}

// Assoc implements (assoc coll k v k v ...): for a Map it adds or
// overwrites keys; for a Vector it replaces an existing index or
// appends when the index equals the current length, matching
// Clojure's assoc-on-vector contract.
type Assoc struct{}

func (*Assoc) Call(args []value.Value) (value.Value, error) {
	rest := args[1:]
	if len(rest)%2 != 0 {
		return value.Nil, ErrBadArgument
	}
	coll := args[0]
	switch coll.Kind() {
	case value.KindMap:
		pairs := append([]value.Pair(nil), coll.Pairs()...)
		for i := 0; i < len(rest); i += 2 {
			pairs = append(pairs, value.Pair{Key: rest[i], Val: rest[i+1]})
		}
		return value.Map(pairs), nil
	case value.KindVector:
		out := append([]value.Value(nil), coll.Elems()...)
		for i := 0; i < len(rest); i += 2 {
			idx, ok := intIndex(rest[i])
			if !ok || idx < 0 || idx > len(out) {
				return value.Nil, ErrIndexOutOfRange
			}
			if idx == len(out) {
				out = append(out, rest[i+1])
			} else {
				out[idx] = rest[i+1]
			}
		}
		return value.Vector(out), nil
	default:
		return value.Nil, ErrBadArgument
	}
}

// Levenshtein computes the edit distance between two strings,
// grounded on the teacher's function/string.go levenshtein() builtin.
type Levenshtein struct{}

func (*Levenshtein) Call(args []value.Value) (value.Value, error) {
	if args[0].Kind() != value.KindString || args[1].Kind() != value.KindString {
		return value.Nil, ErrBadArgument
	}
	return value.Int(int64(levenshtein.ComputeDistance(args[0].Str(), args[1].Str()))), nil
}

// UUID generates a KSUID-backed unique tagged value, grounded on the
// teacher's function/ksuid.go.
type UUID struct{}

func (*UUID) Call(args []value.Value) (value.Value, error) {
	return value.Tagged("uuid", value.String(ksuid.New().String())), nil
}
