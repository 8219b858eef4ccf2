// Package cli defines the flag.FlagSet surface for the eq command,
// in the teacher's cli/inputflags and cli/outputflags style: a Flags
// struct with SetFlags to register vars on a FlagSet, and an Init
// that validates values after parsing.
package cli

import (
	"errors"
	"flag"

	"github.com/mtnygard/eq/value"
)

// Flags holds every command-line option eq accepts.
type Flags struct {
	Compact    bool
	RawOutput  bool
	RawInput   bool
	Slurp      bool
	NullInput  bool
	ExitStatus bool
	FromFile   string
	Tab        bool
	Indent     int
	WithFile   bool
	Verbose    bool
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&f.Compact, "c", false, "compact instead of pretty-printed output")
	fs.BoolVar(&f.Compact, "compact", false, "compact instead of pretty-printed output")
	fs.BoolVar(&f.RawOutput, "r", false, "output raw strings, not quoted EDN strings")
	fs.BoolVar(&f.RawOutput, "raw-output", false, "output raw strings, not quoted EDN strings")
	fs.BoolVar(&f.RawInput, "R", false, "each line of input is a string, not parsed as EDN")
	fs.BoolVar(&f.RawInput, "raw-input", false, "each line of input is a string, not parsed as EDN")
	fs.BoolVar(&f.Slurp, "s", false, "read entire input stream into one vector")
	fs.BoolVar(&f.Slurp, "slurp", false, "read entire input stream into one vector")
	fs.BoolVar(&f.NullInput, "n", false, "filter runs once against nil, ignoring input")
	fs.BoolVar(&f.NullInput, "null-input", false, "filter runs once against nil, ignoring input")
	fs.BoolVar(&f.ExitStatus, "e", false, "set process exit status from the final value")
	fs.BoolVar(&f.ExitStatus, "exit-status", false, "set process exit status from the final value")
	fs.StringVar(&f.FromFile, "f", "", "read the filter expression from FILE")
	fs.StringVar(&f.FromFile, "from-file", "", "read the filter expression from FILE")
	fs.BoolVar(&f.Tab, "tab", false, "indent with tabs instead of spaces")
	fs.IntVar(&f.Indent, "indent", 2, "spaces per indent level")
	fs.BoolVar(&f.WithFile, "H", false, "prefix each output line with its source filename")
	fs.BoolVar(&f.WithFile, "with-filename", false, "prefix each output line with its source filename")
	fs.BoolVar(&f.Verbose, "v", false, "log parse/eval timing to stderr")
	fs.BoolVar(&f.Verbose, "verbose", false, "log parse/eval timing to stderr")
}

// Init validates flag values after parsing: --indent must not be
// negative.
func (f *Flags) Init() error {
	if f.Indent < 0 {
		return errors.New("-indent must be >= 0")
	}
	return nil
}

// RenderOpts builds the value.Opts this command's flags describe.
func (f *Flags) RenderOpts() value.Opts {
	return value.Opts{
		Pretty:    !f.Compact,
		Indent:    f.Indent,
		Tab:       f.Tab,
		RawString: f.RawOutput,
	}
}
