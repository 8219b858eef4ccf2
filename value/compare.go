package value

import (
	"errors"
	"strings"
)

// ErrNotComparable is returned by Compare when two values cannot be
// ordered (spec.md §3.1 "Ordering": "other cross-variant comparisons
// are errors").
var ErrNotComparable = errors.New("values are not comparable")

// Compare orders a and b for sort-like built-ins. Numeric variants
// compare numerically across Integer/Float, strings compare
// lexicographically by code point, and any other pairing is an error.
func Compare(a, b Value) (int, error) {
	switch {
	case a.IsNumber() && b.IsNumber():
		af, bf := a.AsFloat(), b.AsFloat()
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	case a.kind == KindString && b.kind == KindString:
		return strings.Compare(a.s, b.s), nil
	default:
		return 0, ErrNotComparable
	}
}

// Less reports whether a orders strictly before b, for use with
// sort.Slice-style callbacks once the caller has already validated
// comparability.
func Less(a, b Value) bool {
	c, err := Compare(a, b)
	return err == nil && c < 0
}
