package cli_test

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtnygard/eq/cli"
	"github.com/mtnygard/eq/internal/charm"
)

func newCommand(t *testing.T) (*cli.Command, *flag.FlagSet) {
	t.Helper()
	fs := flag.NewFlagSet("eq", flag.ContinueOnError)
	cmd, err := cli.New(nil, fs)
	require.NoError(t, err)
	c, ok := cmd.(*cli.Command)
	require.True(t, ok)
	return c, fs
}

func TestRunFilterAgainstFile(t *testing.T) {
	c, fs := newCommand(t)
	require.NoError(t, fs.Parse([]string{"-c"}))

	dir := t.TempDir()
	path := filepath.Join(dir, "in.edn")
	require.NoError(t, os.WriteFile(path, []byte(`{:a 1 :b 2}`), 0o600))

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	err = c.Run([]string{"(:a .)", path})
	w.Close()
	os.Stdout = old
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	assert.Equal(t, "1\n", buf.String())
}

func TestRunNullInput(t *testing.T) {
	c, fs := newCommand(t)
	require.NoError(t, fs.Parse([]string{"-c", "-n"}))

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	err = c.Run([]string{"(+ 1 2)"})
	w.Close()
	os.Stdout = old
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	assert.Equal(t, "3\n", buf.String())
}

func TestRunExitStatusOnNil(t *testing.T) {
	c, fs := newCommand(t)
	require.NoError(t, fs.Parse([]string{"-c", "-n", "-e"}))

	old := os.Stdout
	_, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old; w.Close() }()

	err = c.Run([]string{"nil"})
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 1, exitErr.Code)
}

func TestRunMissingFilter(t *testing.T) {
	c, _ := newCommand(t)
	err := c.Run(nil)
	assert.Error(t, err)
}

func TestExecHelp(t *testing.T) {
	spec := &charm.Spec{Name: "eq", Usage: "eq [flags] <filter>", New: cli.New}
	var buf bytes.Buffer
	err := spec.Exec([]string{"-h"}, &buf)
	assert.ErrorIs(t, err, charm.NeedHelp)
	assert.Contains(t, buf.String(), "eq [flags]")
}
