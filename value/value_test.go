package value_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mtnygard/eq/value"
)

func TestTruthy(t *testing.T) {
	assert.False(t, value.Nil.Truthy())
	assert.False(t, value.False.Truthy())
	assert.True(t, value.True.Truthy())
	assert.True(t, value.Int(0).Truthy())
	assert.True(t, value.String("").Truthy())
}

func TestEqualStrictVariants(t *testing.T) {
	assert.True(t, value.Equal(value.Int(1), value.Int(1)))
	assert.False(t, value.Equal(value.Int(1), value.Float(1)))
	assert.False(t, value.Equal(value.Int(1), value.Float(1.0)))
}

func TestEqualCollections(t *testing.T) {
	a := value.Vector([]value.Value{value.Int(1), value.Int(2)})
	b := value.Vector([]value.Value{value.Int(1), value.Int(2)})
	c := value.Vector([]value.Value{value.Int(2), value.Int(1)})
	assert.True(t, value.Equal(a, b))
	assert.False(t, value.Equal(a, c))
}

func TestEqualMapUnordered(t *testing.T) {
	a := value.Map([]value.Pair{
		{Key: value.Keyword("", "a"), Val: value.Int(1)},
		{Key: value.Keyword("", "b"), Val: value.Int(2)},
	})
	b := value.Map([]value.Pair{
		{Key: value.Keyword("", "b"), Val: value.Int(2)},
		{Key: value.Keyword("", "a"), Val: value.Int(1)},
	})
	assert.True(t, value.Equal(a, b))
}

func TestMapLastWriteWins(t *testing.T) {
	m := value.Map([]value.Pair{
		{Key: value.Keyword("", "a"), Val: value.Int(1)},
		{Key: value.Keyword("", "a"), Val: value.Int(2)},
	})
	assert.Equal(t, 1, len(m.Pairs()))
	v, ok := m.MapGet(value.Keyword("", "a"))
	assert.True(t, ok)
	assert.True(t, value.Equal(v, value.Int(2)))
}

func TestSetFirstWriteWins(t *testing.T) {
	s := value.Set([]value.Value{value.Int(1), value.Int(1), value.Int(2)})
	assert.Equal(t, 2, len(s.Elems()))
	assert.True(t, value.Equal(s.Elems()[0], value.Int(1)))
}

func TestCompareNumericCrossType(t *testing.T) {
	c, err := value.Compare(value.Int(1), value.Float(1.5))
	assert.NoError(t, err)
	assert.Equal(t, -1, c)
}

func TestCompareStrings(t *testing.T) {
	c, err := value.Compare(value.String("a"), value.String("b"))
	assert.NoError(t, err)
	assert.Equal(t, -1, c)
}

func TestCompareIncomparable(t *testing.T) {
	_, err := value.Compare(value.String("a"), value.Int(1))
	assert.ErrorIs(t, err, value.ErrNotComparable)
}

func TestHashOrderIndependentForSets(t *testing.T) {
	a := value.Set([]value.Value{value.Int(1), value.Int(2)})
	b := value.Set([]value.Value{value.Int(2), value.Int(1)})
	assert.Equal(t, value.Hash(a), value.Hash(b))
}

func TestKeyAgreesWithEqual(t *testing.T) {
	a := value.Vector([]value.Value{value.Int(1), value.String("x")})
	b := value.Vector([]value.Value{value.Int(1), value.String("x")})
	c := value.Vector([]value.Value{value.Int(1), value.String("y")})
	assert.Equal(t, value.Key(a), value.Key(b))
	assert.NotEqual(t, value.Key(a), value.Key(c))
}

func TestFloatHashDistinguishesDistinctValues(t *testing.T) {
	assert.Equal(t, value.Hash(value.Float(0.5)), value.Hash(value.Float(0.5)))
	assert.NotEqual(t, value.Hash(value.Float(0.5)), value.Hash(value.Float(1.5)))
	assert.NotEqual(t, value.Hash(value.Float(0.5)), value.Hash(value.Float(3.14159265)))
	assert.Equal(t, value.Hash(value.Float(0.0)), value.Hash(value.Float(-0.0)))
}

func TestRenderCompact(t *testing.T) {
	cases := map[string]value.Value{
		"nil":           value.Nil,
		"true":          value.True,
		"42":            value.Int(42),
		`"hi"`:          value.String("hi"),
		":k":            value.Keyword("", "k"),
		"[1 2]":         value.Vector([]value.Value{value.Int(1), value.Int(2)}),
		"#{1}":          value.Set([]value.Value{value.Int(1)}),
	}
	for want, v := range cases {
		assert.Equal(t, want, value.Render(v, value.Compact))
	}
}

func TestRenderMapNoCommas(t *testing.T) {
	m := value.Map([]value.Pair{
		{Key: value.Keyword("", "red"), Val: value.Int(3)},
		{Key: value.Keyword("", "blue"), Val: value.Int(2)},
		{Key: value.Keyword("", "green"), Val: value.Int(1)},
	})
	assert.Equal(t, "{:red 3 :blue 2 :green 1}", value.Render(m, value.Compact))
}

func TestRenderRawString(t *testing.T) {
	assert.Equal(t, "hi", value.Render(value.String("hi"), value.Opts{RawString: true}))
}

func TestRenderLambdaPanics(t *testing.T) {
	assert.Panics(t, func() {
		value.Render(value.FromLambda(dummyLambda{}), value.Compact)
	})
}

type dummyLambda struct{}

func (dummyLambda) Arity() int           { return 0 }
func (dummyLambda) CallableKind() string { return "dummy" }
