package edn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtnygard/eq/edn"
	"github.com/mtnygard/eq/value"
)

func TestReadLiterals(t *testing.T) {
	cases := map[string]value.Value{
		"nil":      value.Nil,
		"true":     value.True,
		"false":    value.False,
		"42":       value.Int(42),
		"-7":       value.Int(-7),
		"3.14":     value.Float(3.14),
		`"hi"`:     value.String("hi"),
		":foo":     value.Keyword("", "foo"),
		":ns/foo":  value.Keyword("ns", "foo"),
		"sym":      value.Symbol("", "sym"),
		`\a`:       value.Char('a'),
		`\newline`: value.Char('\n'),
	}
	for src, want := range cases {
		t.Run(src, func(t *testing.T) {
			v, err := edn.Read(src)
			require.NoError(t, err)
			assert.True(t, value.Equal(want, v), "got %v", v)
		})
	}
}

func TestReadCollections(t *testing.T) {
	v, err := edn.Read("[1 2 3]")
	require.NoError(t, err)
	assert.Equal(t, value.KindVector, v.Kind())
	assert.Len(t, v.Elems(), 3)

	v, err = edn.Read("(1 2 3)")
	require.NoError(t, err)
	assert.Equal(t, value.KindList, v.Kind())

	v, err = edn.Read("#{1 2 3}")
	require.NoError(t, err)
	assert.Equal(t, value.KindSet, v.Kind())
	assert.Len(t, v.Elems(), 3)

	v, err = edn.Read(`{:a 1 :b 2}`)
	require.NoError(t, err)
	assert.Equal(t, value.KindMap, v.Kind())
	assert.Len(t, v.Pairs(), 2)
}

func TestReadMapDuplicateKeyLastWins(t *testing.T) {
	v, err := edn.Read(`{:a 1 :a 2}`)
	require.NoError(t, err)
	assert.Len(t, v.Pairs(), 1)
	got, ok := v.MapGet(value.Keyword("", "a"))
	require.True(t, ok)
	assert.True(t, value.Equal(got, value.Int(2)))
}

func TestReadSetDuplicateFirstWins(t *testing.T) {
	v, err := edn.Read(`#{1 1 2}`)
	require.NoError(t, err)
	assert.Len(t, v.Elems(), 2)
}

func TestReadTagged(t *testing.T) {
	v, err := edn.Read(`#myapp/point {:x 1 :y 2}`)
	require.NoError(t, err)
	assert.Equal(t, value.KindTagged, v.Kind())
	assert.Equal(t, "myapp/point", v.Tag())
}

func TestReadIgnoresCommentsAndCommas(t *testing.T) {
	v, err := edn.Read("[1, 2 ; trailing comment\n 3]")
	require.NoError(t, err)
	assert.Len(t, v.Elems(), 3)
}

func TestReadDiscard(t *testing.T) {
	v, err := edn.Read("[1 #_2 3]")
	require.NoError(t, err)
	assert.Len(t, v.Elems(), 2)
}

func TestReadAll(t *testing.T) {
	vs, err := edn.ReadAll("1 2 3")
	require.NoError(t, err)
	assert.Len(t, vs, 3)
}

func TestReaderRoundTrip(t *testing.T) {
	srcs := []string{
		"nil", "true", "42", "3.5", `"hi"`, ":k", "[1 2 3]", "#{1 2}", `{:a 1 :b 2}`,
	}
	for _, src := range srcs {
		t.Run(src, func(t *testing.T) {
			v, err := edn.Read(src)
			require.NoError(t, err)
			rendered := value.Render(v, value.Compact)
			v2, err := edn.Read(rendered)
			require.NoError(t, err)
			assert.True(t, value.Equal(v, v2))
		})
	}
}

func TestReadErrors(t *testing.T) {
	cases := []string{
		`"unterminated`,
		"[1 2",
		"{:a 1 :b}",
		"::bad",
		"42abc",
	}
	for _, src := range cases {
		t.Run(src, func(t *testing.T) {
			_, err := edn.Read(src)
			assert.Error(t, err)
		})
	}
}
