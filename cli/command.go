package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/mtnygard/eq/edn"
	"github.com/mtnygard/eq/eval"
	"github.com/mtnygard/eq/internal/charm"
	"github.com/mtnygard/eq/query/ast"
	"github.com/mtnygard/eq/query/parser"
	"github.com/mtnygard/eq/value"
)

// ExitError carries the process exit code a -e/--exit-status run
// should terminate with, per spec.md §6.3's contract: 0 for a truthy
// final value, 1 for a Nil or false final value, 2 for any parse/eval
// error.
type ExitError struct{ Code int }

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// Command is the eq leaf command: it owns the flag set and runs the
// filter against stdin or the given files.
type Command struct {
	Flags
	fs *flag.FlagSet
}

// New is a charm.Constructor for the single eq command.
func New(_ charm.Command, fs *flag.FlagSet) (charm.Command, error) {
	c := &Command{fs: fs}
	c.SetFlags(fs)
	return c, nil
}

func (c *Command) explicitlySet(names ...string) bool {
	set := false
	c.fs.Visit(func(fl *flag.Flag) {
		for _, n := range names {
			if fl.Name == n {
				set = true
			}
		}
	})
	return set
}

func (c *Command) Run(args []string) error {
	if err := c.Flags.Init(); err != nil {
		return err
	}
	// A pipe destination gets compact output by default unless the
	// caller asked for pretty printing explicitly; a terminal keeps
	// the pretty default.
	if !c.explicitlySet("c", "compact") && !isatty.IsTerminal(os.Stdout.Fd()) {
		c.Compact = true
	}

	filterSrc, fileArgs, err := c.readFilter(args)
	if err != nil {
		return err
	}

	start := time.Now()
	expr, err := parser.Parse(filterSrc)
	if err != nil {
		return fmt.Errorf("eq: %w", err)
	}
	if c.Verbose {
		log.Printf("parsed filter in %s", time.Since(start))
	}

	opts := c.RenderOpts()
	last := value.Nil
	hadErr := false

	if c.NullInput {
		last, err = c.evalOne(expr, value.Nil)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			hadErr = true
		} else if err := c.writeValue(os.Stdout, "", last, opts); err != nil {
			return err
		}
		return c.exit(last, hadErr)
	}

	sources, err := c.openSources(fileArgs)
	if err != nil {
		return err
	}
	defer closeAll(sources)

	for _, src := range sources {
		vs, err := c.readValues(src.r)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", src.name, err)
			hadErr = true
			continue
		}
		for _, v := range vs {
			evalStart := time.Now()
			out, err := c.evalOne(expr, v)
			if c.Verbose {
				log.Printf("%s: evaluated in %s", src.name, time.Since(evalStart))
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", src.name, err)
				hadErr = true
				continue
			}
			last = out
			if err := c.writeValue(os.Stdout, src.name, last, opts); err != nil {
				return err
			}
		}
	}

	return c.exit(last, hadErr)
}

func (c *Command) evalOne(expr ast.Expr, in value.Value) (value.Value, error) {
	out, err := eval.Eval(expr, in, eval.NewEnv())
	if err == nil && out.Kind() == value.KindLambda {
		return value.Nil, &eval.EvalError{Category: eval.ErrNonSerializable, Detail: "a function value cannot be written as output", Pos: expr.Location()}
	}
	return out, err
}

func (c *Command) exit(last value.Value, hadErr bool) error {
	if !c.ExitStatus {
		return nil
	}
	switch {
	case hadErr:
		return &ExitError{Code: 2}
	case !last.Truthy():
		return &ExitError{Code: 1}
	default:
		return &ExitError{Code: 0}
	}
}

func (c *Command) readFilter(args []string) (filter string, fileArgs []string, err error) {
	if c.FromFile != "" {
		b, err := os.ReadFile(c.FromFile)
		if err != nil {
			return "", nil, fmt.Errorf("eq: -f: %w", err)
		}
		return string(b), args, nil
	}
	if len(args) == 0 {
		return "", nil, errors.New("eq: missing filter expression")
	}
	return args[0], args[1:], nil
}

type source struct {
	name string
	r    io.ReadCloser
}

func (c *Command) openSources(patterns []string) ([]source, error) {
	if len(patterns) == 0 {
		return []source{{name: "<stdin>", r: io.NopCloser(os.Stdin)}}, nil
	}
	var sources []source
	for _, p := range patterns {
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("eq: %s: %w", p, err)
		}
		if len(matches) == 0 {
			matches = []string{p}
		}
		for _, m := range matches {
			f, err := os.Open(m)
			if err != nil {
				return nil, fmt.Errorf("eq: %w", err)
			}
			sources = append(sources, source{name: m, r: f})
		}
	}
	return sources, nil
}

func closeAll(sources []source) {
	for _, s := range sources {
		s.r.Close()
	}
}

func (c *Command) readValues(r io.Reader) ([]value.Value, error) {
	if c.RawInput {
		scanner := bufio.NewScanner(r)
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		if c.Slurp {
			return []value.Value{value.String(strings.Join(lines, "\n"))}, nil
		}
		vs := make([]value.Value, len(lines))
		for i, l := range lines {
			vs[i] = value.String(l)
		}
		return vs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	vs, err := edn.ReadAll(string(data))
	if err != nil {
		return nil, err
	}
	if c.Slurp {
		return []value.Value{value.Vector(vs)}, nil
	}
	return vs, nil
}

func (c *Command) writeValue(w io.Writer, name string, v value.Value, opts value.Opts) error {
	if c.WithFile && name != "" {
		if _, err := fmt.Fprintf(w, "%s: ", name); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, value.Render(v, opts))
	return err
}
