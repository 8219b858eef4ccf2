// eq is a jq-style command-line processor for EDN data, driven by a
// small Clojure-flavored query language.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mtnygard/eq/cli"
	"github.com/mtnygard/eq/internal/charm"
)

var Eq = &charm.Spec{
	Name:  "eq",
	Usage: "eq [flags] <filter> [file ...]",
	Short: "query and transform EDN data",
	Long: `
eq reads EDN values from its input, applies a filter expression written in
a small Clojure-flavored query language, and prints the result.

If no file arguments are given, eq reads from standard input. File
arguments may be glob patterns, each expanded independently.

The filter expression is the first positional argument unless -f/--from-file
names a file to read it from instead.
`,
	New: cli.New,
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	err := Eq.Exec(args, os.Stdout)
	var exitErr *cli.ExitError
	switch {
	case err == nil:
		return 0
	case errors.Is(err, charm.NeedHelp):
		return 0
	case errors.As(err, &exitErr):
		return exitErr.Code
	default:
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
}
