package value

import (
	"encoding/binary"
	"fmt"
	"hash/maphash"
	"math"
	"sort"

	"github.com/x448/float16"
)

var hashSeed = maphash.MakeSeed()

// Hash returns a digest of v suitable for use as a native Go map key
// when a caller needs one (e.g. memoizing evaluator results). It is
// consistent with Equal but, unlike cacheKey, is a fixed-size digest
// rather than a canonical encoding, so Set/Map construction uses
// cacheKey instead to avoid any collision risk (spec.md §9: "the hash
// must be order-independent over key-value pairs").
func Hash(v Value) uint64 {
	var h maphash.Hash
	h.SetSeed(hashSeed)
	writeHash(&h, v)
	return h.Sum64()
}

func writeHash(h *maphash.Hash, v Value) {
	h.WriteByte(byte(v.kind))
	switch v.kind {
	case KindNil:
	case KindBool:
		if v.b {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case KindInt, KindChar:
		writeInt(h, v.i)
	case KindFloat:
		h.Write(floatHashBytes(v.f))
	case KindString:
		h.WriteString(v.s)
	case KindSymbol, KindKeyword:
		h.WriteString(v.n)
		h.WriteByte(0)
		h.WriteString(v.s)
	case KindList, KindVector:
		for _, e := range v.elems {
			writeHash(h, e)
		}
	case KindSet, KindMap:
		// Order-independent combination: XOR the per-element digests
		// of an independent hash so container order never affects
		// the result (spec.md §9).
		var acc uint64
		if v.kind == KindSet {
			for _, e := range v.elems {
				acc ^= Hash(e)
			}
		} else {
			for _, p := range v.pairs {
				acc ^= Hash(p.Key)*31 + Hash(p.Val)
			}
		}
		writeInt(h, int64(acc))
	case KindTagged:
		h.WriteString(v.tag)
		writeHash(h, *v.val)
	case KindLambda:
		writeInt(h, int64(lambdaIdentity(v.lam)))
	}
}

func writeInt(h *maphash.Hash, i int64) {
	var buf [8]byte
	u := uint64(i)
	for j := 0; j < 8; j++ {
		buf[j] = byte(u >> (8 * j))
	}
	h.Write(buf[:])
}

// floatHashBytes picks the narrowest encoding that round-trips f
// exactly, mirroring the teacher's primitive.go DecodeFloat, which
// switches on a 2/4/8-byte width to pick float16/float32/float64. A
// value that happens to be representable at half precision (most small
// integral floats are) hashes identically however it was produced,
// same as the teacher's float16 cache collapses distinct encodings of
// the same number to one value. -0.0 collapses to +0.0 and every NaN
// bit pattern collapses to one marker byte, since Hash only needs
// equal values to hash equal, not the reverse.
func floatHashBytes(f float64) []byte {
	if math.IsNaN(f) {
		return []byte{0xff}
	}
	if f == 0 {
		f = 0
	}
	if f16 := float16.Fromfloat32(float32(f)); float64(f16.Float32()) == f {
		buf := make([]byte, 2)
		binary.LittleEndian.PutUint16(buf, f16.Bits())
		return buf
	}
	if f32 := float32(f); float64(f32) == f {
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, math.Float32bits(f32))
		return buf
	}
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, math.Float64bits(f))
	return buf
}

func sortStrings(s []string) { sort.Strings(s) }

// lambdaIdentity gives every distinct Lambda a stable identity for
// hashing/keying purposes, derived from its pointer representation.
func lambdaIdentity(l Lambda) uint64 {
	var h maphash.Hash
	h.SetSeed(hashSeed)
	h.WriteString(fmt.Sprintf("%p", l))
	return h.Sum64()
}
