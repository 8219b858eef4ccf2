// Package charm is a minimalist CLI command runner inspired by cobra
// and urfave/cli, trimmed to a single leaf command: it builds the
// flag.FlagSet for a Spec, constructs the Command, and runs it.
package charm

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

var (
	NeedHelp = errors.New("help")
	ErrNoRun = errors.New("no run method")
)

type Constructor func(Command, *flag.FlagSet) (Command, error)

type Command interface {
	Run([]string) error
}

// Spec describes a single command: its name and usage text for
// `-h`/`--help`, and a Constructor that wires flags onto a FlagSet
// and returns the Command that will run with the leftover arguments.
type Spec struct {
	Name  string
	Usage string
	Short string
	Long  string
	New   Constructor
}

// Exec builds the command's flag set, parses args against it, and
// runs the resulting Command with whatever args flag.Parse leaves
// over. On `-h`/`--help` flag.FlagSet calls fs.Usage, which Exec sets
// to print Usage and Long to out, and then reports ErrHelp; Exec turns
// that into NeedHelp so callers can tell a help request from a failure.
func (s *Spec) Exec(args []string, out io.Writer) error {
	fs := flag.NewFlagSet(s.Name, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintln(out, s.Usage)
		if s.Long != "" {
			fmt.Fprintln(out, s.Long)
		}
	}

	cmd, err := s.New(nil, fs)
	if err != nil {
		return err
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return NeedHelp
		}
		return err
	}

	return cmd.Run(fs.Args())
}

func NoRun(args []string) error {
	if len(args) == 0 {
		return NeedHelp
	}
	return ErrNoRun
}
