package cli_test

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtnygard/eq/cli"
)

func TestFlagsShortAndLongAliasesShareState(t *testing.T) {
	fs := flag.NewFlagSet("eq", flag.ContinueOnError)
	f := &cli.Flags{}
	f.SetFlags(fs)

	require.NoError(t, fs.Parse([]string{"--compact", "--raw-output"}))
	assert.True(t, f.Compact)
	assert.True(t, f.RawOutput)
}

func TestFlagsInitRejectsNegativeIndent(t *testing.T) {
	f := &cli.Flags{Indent: -1}
	assert.Error(t, f.Init())
}

func TestRenderOptsReflectsFlags(t *testing.T) {
	f := &cli.Flags{Compact: true, RawOutput: true, Tab: true, Indent: 4}
	opts := f.RenderOpts()
	assert.False(t, opts.Pretty)
	assert.True(t, opts.RawString)
	assert.True(t, opts.Tab)
	assert.Equal(t, 4, opts.Indent)
}
