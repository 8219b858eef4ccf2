package function

import "github.com/mtnygard/eq/value"

// Str concatenates the printed form of each argument as a String
// (spec.md §4.4), using RawString rendering so a bare string argument
// is not re-quoted.
type Str struct{}

func (*Str) Call(args []value.Value) (value.Value, error) {
	var b []byte
	for _, v := range args {
		b = append(b, value.Render(v, value.Opts{RawString: true})...)
	}
	return value.String(string(b)), nil
}
