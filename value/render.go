package value

import (
	"strconv"
	"strings"
)

// Opts controls rendering, matching spec.md §6.1's RenderOpts:
// compact|pretty, an indent unit (spaces or tab), raw string output,
// and nil suppression.
type Opts struct {
	Pretty      bool
	Indent      int  // spaces per level; ignored if Tab is true
	Tab         bool
	RawString   bool // print String payloads unquoted, unescaped
	SuppressNil bool
}

// Compact is the default terse rendering.
var Compact = Opts{}

// Render formats v according to opts. Rendering a Lambda is a
// programmer error the evaluator must catch before calling Render;
// it panics here since it should never reach this layer (spec.md §9).
func Render(v Value, opts Opts) string {
	f := &formatter{opts: opts}
	f.format(v, 0)
	return f.b.String()
}

type formatter struct {
	b    strings.Builder
	opts Opts
}

func (f *formatter) newline(depth int) {
	if !f.opts.Pretty {
		return
	}
	f.b.WriteByte('\n')
	if f.opts.Tab {
		f.b.WriteString(strings.Repeat("\t", depth))
		return
	}
	f.b.WriteString(strings.Repeat(" ", depth*f.indentUnit()))
}

func (f *formatter) indentUnit() int {
	if f.opts.Indent <= 0 {
		return 2
	}
	return f.opts.Indent
}

func (f *formatter) sep() string {
	if f.opts.Pretty {
		return ""
	}
	return " "
}

func (f *formatter) format(v Value, depth int) {
	switch v.kind {
	case KindNil:
		f.b.WriteString("nil")
	case KindBool:
		if v.b {
			f.b.WriteString("true")
		} else {
			f.b.WriteString("false")
		}
	case KindInt:
		f.b.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		f.b.WriteString(formatFloat(v.f))
	case KindString:
		if f.opts.RawString {
			f.b.WriteString(v.s)
		} else {
			f.b.WriteString(quoteString(v.s))
		}
	case KindChar:
		f.b.WriteString(formatChar(rune(v.i)))
	case KindSymbol:
		f.b.WriteString(v.Symbol().String())
	case KindKeyword:
		f.b.WriteByte(':')
		f.b.WriteString(v.Symbol().String())
	case KindList:
		f.formatSeq('(', ')', v.elems, depth)
	case KindVector:
		f.formatSeq('[', ']', v.elems, depth)
	case KindSet:
		f.b.WriteString("#{")
		f.formatElems(v.elems, depth)
		f.b.WriteByte('}')
	case KindMap:
		f.formatMap(v.pairs, depth)
	case KindTagged:
		f.b.WriteByte('#')
		f.b.WriteString(v.tag)
		f.b.WriteByte(' ')
		f.format(*v.val, depth)
	case KindLambda:
		panic("value: cannot render a lambda (non-serializable)")
	}
}

func (f *formatter) formatSeq(open, close byte, elems []Value, depth int) {
	f.b.WriteByte(open)
	f.formatElems(elems, depth)
	f.b.WriteByte(close)
}

func (f *formatter) formatElems(elems []Value, depth int) {
	for i, e := range elems {
		if i > 0 {
			f.newline(depth + 1)
			if !f.opts.Pretty {
				f.b.WriteByte(' ')
			}
		} else if len(elems) > 0 {
			f.newline(depth + 1)
		}
		f.format(e, depth+1)
	}
	if len(elems) > 0 {
		f.newline(depth)
	}
}

func (f *formatter) formatMap(pairs []Pair, depth int) {
	f.b.WriteByte('{')
	for i, p := range pairs {
		if i > 0 {
			f.newline(depth + 1)
			if !f.opts.Pretty {
				f.b.WriteByte(' ')
			}
		} else if len(pairs) > 0 {
			f.newline(depth + 1)
		}
		if f.opts.SuppressNil && p.Val.IsNil() {
			continue
		}
		f.format(p.Key, depth+1)
		f.b.WriteByte(' ')
		f.format(p.Val, depth+1)
	}
	if len(pairs) > 0 {
		f.newline(depth)
	}
	f.b.WriteByte('}')
}

func formatFloat(fl float64) string {
	s := strconv.FormatFloat(fl, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func formatChar(r rune) string {
	switch r {
	case '\n':
		return `\newline`
	case ' ':
		return `\space`
	case '\t':
		return `\tab`
	case '\r':
		return `\return`
	case '\\':
		return `\\`
	case '"':
		return `\"`
	default:
		return "\\" + string(r)
	}
}
