package value

// Equal implements the structural equality contract of spec.md §3.1:
// variants must match exactly (Integer and Float are never equal to
// each other even when numerically equal), collections compare
// elementwise in order except Maps, which compare under unordered
// key-matching.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return a.f == b.f
	case KindString:
		return a.s == b.s
	case KindChar:
		return a.i == b.i
	case KindSymbol, KindKeyword:
		return a.n == b.n && a.s == b.s
	case KindList, KindVector:
		if len(a.elems) != len(b.elems) {
			return false
		}
		for i := range a.elems {
			if !Equal(a.elems[i], b.elems[i]) {
				return false
			}
		}
		return true
	case KindSet:
		if len(a.elems) != len(b.elems) {
			return false
		}
		for _, ea := range a.elems {
			if !b.SetHas(ea) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.pairs) != len(b.pairs) {
			return false
		}
		for _, pa := range a.pairs {
			bv, ok := b.MapGet(pa.Key)
			if !ok || !Equal(pa.Val, bv) {
				return false
			}
		}
		return true
	case KindTagged:
		return a.tag == b.tag && Equal(*a.val, *b.val)
	case KindLambda:
		return a.lam == b.lam
	default:
		return false
	}
}

// cacheKey produces a string suitable for deduplicating Map keys and
// Set elements during construction (spec.md §4.1's "silent
// normalization" rule: last write wins for Map, first wins for Set).
// It agrees with Equal exactly: cacheKey(a) == cacheKey(b) iff
// Equal(a, b). Unlike Hash, this is a canonical encoding rather than a
// digest, so it cannot collide for distinct values.
func cacheKey(v Value) string {
	var buf []byte
	buf = appendKey(buf, v)
	return string(buf)
}

// Key exposes cacheKey's canonical, collision-free encoding for
// callers outside this package that need to deduplicate or group
// Values by structural equality (eval's group-by, function's distinct
// and frequencies): Key(a) == Key(b) iff Equal(a, b).
func Key(v Value) string { return cacheKey(v) }

func appendKey(buf []byte, v Value) []byte {
	buf = append(buf, byte(v.kind), 0)
	switch v.kind {
	case KindNil:
	case KindBool:
		if v.b {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	case KindInt, KindChar:
		buf = appendInt(buf, v.i)
	case KindFloat:
		buf = append(buf, floatHashBytes(v.f)...)
	case KindString:
		buf = append(buf, v.s...)
	case KindSymbol, KindKeyword:
		buf = append(buf, v.n...)
		buf = append(buf, 0)
		buf = append(buf, v.s...)
	case KindList, KindVector:
		for _, e := range v.elems {
			buf = appendKey(buf, e)
		}
	case KindSet:
		// Order-independent: sort each element's own key encoding.
		keys := make([]string, len(v.elems))
		for i, e := range v.elems {
			keys[i] = string(appendKey(nil, e))
		}
		sortStrings(keys)
		for _, k := range keys {
			buf = append(buf, k...)
			buf = append(buf, 0)
		}
	case KindMap:
		keys := make([]string, len(v.pairs))
		for i, p := range v.pairs {
			keys[i] = string(appendKey(nil, p.Key)) + "=" + string(appendKey(nil, p.Val))
		}
		sortStrings(keys)
		for _, k := range keys {
			buf = append(buf, k...)
			buf = append(buf, 0)
		}
	case KindTagged:
		buf = append(buf, v.tag...)
		buf = append(buf, 0)
		buf = appendKey(buf, *v.val)
	case KindLambda:
		buf = appendInt(buf, int64(lambdaIdentity(v.lam)))
	}
	return buf
}

func appendInt(buf []byte, i int64) []byte {
	var tmp [8]byte
	u := uint64(i)
	for j := 0; j < 8; j++ {
		tmp[j] = byte(u >> (8 * j))
	}
	return append(buf, tmp[:]...)
}
