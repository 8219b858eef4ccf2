package charm_test

import (
	"bytes"
	"errors"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtnygard/eq/internal/charm"
)

type echoCommand struct{ n *int }

func (e *echoCommand) Run(args []string) error {
	*e.n = len(args)
	return nil
}

func TestExecRunsLeafCommand(t *testing.T) {
	var seen int
	spec := &charm.Spec{
		Name: "echo",
		New: func(_ charm.Command, fs *flag.FlagSet) (charm.Command, error) {
			return &echoCommand{n: &seen}, nil
		},
	}
	var buf bytes.Buffer
	err := spec.Exec([]string{"a", "b", "c"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 3, seen)
}

func TestExecHelpFlag(t *testing.T) {
	spec := &charm.Spec{
		Name:  "echo",
		Usage: "echo [args...]",
		New: func(_ charm.Command, fs *flag.FlagSet) (charm.Command, error) {
			return charm.Command(noRun{}), nil
		},
	}
	var buf bytes.Buffer
	err := spec.Exec([]string{"-h"}, &buf)
	assert.True(t, errors.Is(err, charm.NeedHelp))
}

type noRun struct{}

func (noRun) Run(args []string) error { return charm.NoRun(args) }

func TestNoRun(t *testing.T) {
	assert.ErrorIs(t, charm.NoRun([]string{"x"}), charm.ErrNoRun)
	assert.ErrorIs(t, charm.NoRun(nil), charm.NeedHelp)
}
