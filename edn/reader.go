// Package edn implements the EDN reader (spec.md §4.2): recursive
// descent over UTF-8 text producing value.Value trees. The inverse
// renderer is the value package's Render.
package edn

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/mtnygard/eq/value"
)

// symbolPunct holds the punctuation runes a Symbol/Keyword may contain
// in addition to letters and digits (spec.md §4.2's Symbol grammar).
const symbolPunct = ".*+!-_?$%&=<>/"

// Reader reads one or more top-level EDN forms from a text buffer.
type Reader struct {
	src    []rune
	pos    int
	line   int
	col    int
}

// NewReader constructs a Reader over src.
func NewReader(src string) *Reader {
	return &Reader{src: []rune(src), pos: 0, line: 1, col: 1}
}

// Read parses bytes as a single EDN document.
func Read(src string) (value.Value, error) {
	r := NewReader(src)
	v, err := r.ReadOne()
	if err != nil {
		return value.Nil, err
	}
	r.skipIgnorable()
	if !r.atEnd() {
		return value.Nil, newError(UnexpectedEOF, r.pos2(), "trailing data after top-level form")
	}
	return v, nil
}

// ReadAll parses bytes as a sequence of top-level EDN documents.
func ReadAll(src string) ([]value.Value, error) {
	r := NewReader(src)
	var out []value.Value
	for {
		r.skipIgnorable()
		if r.atEnd() {
			return out, nil
		}
		v, err := r.ReadOne()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

// ReadOne reads exactly one top-level form, leaving the reader
// positioned just after it (trailing whitespace/comments are not
// consumed; callers doing streaming reads call ReadOne in a loop and
// let the next call's leading skipIgnorable consume them).
func (r *Reader) ReadOne() (value.Value, error) {
	r.skipIgnorable()
	for !r.atEnd() && r.peek() == '#' && r.peekAt(1) == '_' {
		r.advance()
		r.advance()
		if _, err := r.readForm(); err != nil {
			return value.Nil, err
		}
		r.skipIgnorable()
	}
	if r.atEnd() {
		return value.Nil, newError(UnexpectedEOF, r.pos2(), "unexpected end of input")
	}
	return r.readForm()
}

func (r *Reader) pos2() Pos { return Pos{Line: r.line, Col: r.col} }

func (r *Reader) atEnd() bool { return r.pos >= len(r.src) }

func (r *Reader) peek() rune {
	if r.atEnd() {
		return 0
	}
	return r.src[r.pos]
}

func (r *Reader) peekAt(off int) rune {
	if r.pos+off >= len(r.src) {
		return 0
	}
	return r.src[r.pos+off]
}

func (r *Reader) advance() rune {
	c := r.src[r.pos]
	r.pos++
	if c == '\n' {
		r.line++
		r.col = 1
	} else {
		r.col++
	}
	return c
}

func (r *Reader) skipIgnorable() {
	for !r.atEnd() {
		c := r.peek()
		switch {
		case c == ',' || isSpace(c):
			r.advance()
		case c == ';':
			for !r.atEnd() && r.peek() != '\n' {
				r.advance()
			}
		case c == '#' && r.peekAt(1) == '_':
			r.advance()
			r.advance()
			r.readForm() //nolint:errcheck // a malformed discard surfaces on the next real read
		default:
			return
		}
	}
}

// The following exported wrappers let other readers of this same
// lexical grammar (query/parser) share this tokenizer instead of
// re-implementing it, per spec.md §4.3: the query reader "re-uses R's
// tokenization except for two additions."
func (r *Reader) AtEnd() bool         { return r.atEnd() }
func (r *Reader) Peek() rune          { return r.peek() }
func (r *Reader) PeekAt(off int) rune { return r.peekAt(off) }
func (r *Reader) Advance() rune       { return r.advance() }
func (r *Reader) SkipIgnorable()      { r.skipIgnorable() }
func (r *Reader) Offset() int         { return r.pos }
func (r *Reader) Position() Pos       { return r.pos2() }

// ReadNumber, ReadStringLiteral, ReadCharLiteral, and ReadSymbolName
// expose the token-level scanners unchanged; the caller must already
// be positioned at the token's first rune.
func (r *Reader) ReadNumber() (value.Value, error)        { return r.readNumber() }
func (r *Reader) ReadStringLiteral() (value.Value, error) { return r.readString() }
func (r *Reader) ReadCharLiteral() (value.Value, error)   { return r.readChar() }
func (r *Reader) ReadSymbolName() (string, error)         { return r.readSymbolName() }

func IsDigit(c rune) bool       { return isDigit(c) }
func IsSymbolStart(c rune) bool { return isSymbolStart(c) }
func IsSymbolChar(c rune) bool  { return isSymbolChar(c) }

func isSpace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

// readForm dispatches on the next significant rune (spec.md §4.2's
// "Parser: recursive descent ... dispatch on the next significant
// byte").
func (r *Reader) readForm() (value.Value, error) {
	r.skipIgnorable()
	if r.atEnd() {
		return value.Nil, newError(UnexpectedEOF, r.pos2(), "unexpected end of input")
	}
	c := r.peek()
	switch {
	case c == '"':
		return r.readString()
	case c == ':':
		return r.readKeyword()
	case c == '\\':
		return r.readChar()
	case c == '(':
		return r.readSeq('(', ')', value.List)
	case c == '[':
		return r.readSeq('[', ']', value.Vector)
	case c == '{':
		return r.readMap()
	case c == '#':
		return r.readDispatch()
	case c == '-' || c == '+':
		if isDigit(r.peekAt(1)) {
			return r.readNumber()
		}
		return r.readSymbolOrKeywordLiteral()
	case isDigit(c):
		return r.readNumber()
	case isSymbolStart(c):
		return r.readSymbolOrKeywordLiteral()
	default:
		return value.Nil, newError(UnexpectedEOF, r.pos2(), "unexpected character '"+string(c)+"'")
	}
}

func (r *Reader) readSeq(open, close rune, build func([]value.Value) value.Value) (value.Value, error) {
	startPos := r.pos2()
	r.advance()
	var elems []value.Value
	for {
		r.skipIgnorable()
		if r.atEnd() {
			return value.Nil, newError(UnterminatedCollection, startPos, "unterminated collection")
		}
		if r.peek() == close {
			r.advance()
			return build(elems), nil
		}
		if isCloser(r.peek()) {
			return value.Nil, newError(UnexpectedCloser, r.pos2(), "unexpected '"+string(r.peek())+"'")
		}
		v, err := r.readForm()
		if err != nil {
			return value.Nil, err
		}
		elems = append(elems, v)
	}
}

func isCloser(c rune) bool { return c == ')' || c == ']' || c == '}' }

func (r *Reader) readMap() (value.Value, error) {
	startPos := r.pos2()
	r.advance() // consume '{'
	var pairs []value.Pair
	for {
		r.skipIgnorable()
		if r.atEnd() {
			return value.Nil, newError(UnterminatedCollection, startPos, "unterminated map")
		}
		if r.peek() == '}' {
			r.advance()
			return value.Map(pairs), nil
		}
		k, err := r.readForm()
		if err != nil {
			return value.Nil, err
		}
		r.skipIgnorable()
		if r.atEnd() || r.peek() == '}' {
			return value.Nil, newError(OddMap, r.pos2(), "map literal has an odd number of forms")
		}
		v, err := r.readForm()
		if err != nil {
			return value.Nil, err
		}
		pairs = append(pairs, value.Pair{Key: k, Val: v})
	}
}

func (r *Reader) readDispatch() (value.Value, error) {
	startPos := r.pos2()
	r.advance() // consume '#'
	if r.atEnd() {
		return value.Nil, newError(BadReaderMacro, startPos, "unexpected end of input after '#'")
	}
	if r.peek() == '{' {
		v, err := r.readSeq('{', '}', func(elems []value.Value) value.Value { return value.Set(elems) })
		return v, err
	}
	if r.peek() == '_' {
		r.advance()
		if _, err := r.readForm(); err != nil {
			return value.Nil, err
		}
		return r.readForm()
	}
	if !isSymbolStart(r.peek()) {
		return value.Nil, newError(BadReaderMacro, startPos, "expected a tag symbol after '#'")
	}
	tag, err := r.readSymbolName()
	if err != nil {
		return value.Nil, err
	}
	r.skipIgnorable()
	wrapped, err := r.readForm()
	if err != nil {
		return value.Nil, err
	}
	return value.Tagged(tag, wrapped), nil
}

func (r *Reader) readString() (value.Value, error) {
	startPos := r.pos2()
	r.advance() // consume opening quote
	var b strings.Builder
	for {
		if r.atEnd() {
			return value.Nil, newError(UnterminatedString, startPos, "unterminated string")
		}
		c := r.advance()
		if c == '"' {
			return value.String(norm.NFC.String(b.String())), nil
		}
		if c != '\\' {
			b.WriteRune(c)
			continue
		}
		if r.atEnd() {
			return value.Nil, newError(UnterminatedString, startPos, "unterminated escape sequence")
		}
		esc := r.advance()
		switch esc {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'u':
			ru, err := r.readHex4()
			if err != nil {
				return value.Nil, err
			}
			b.WriteRune(ru)
		default:
			return value.Nil, newError(BadEscape, r.pos2(), "invalid escape sequence '\\"+string(esc)+"'")
		}
	}
}

func (r *Reader) readHex4() (rune, error) {
	if r.pos+4 > len(r.src) {
		return 0, newError(BadEscape, r.pos2(), "incomplete \\uXXXX escape")
	}
	s := string(r.src[r.pos : r.pos+4])
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, newError(BadEscape, r.pos2(), "invalid \\u escape: "+s)
	}
	for i := 0; i < 4; i++ {
		r.advance()
	}
	return rune(n), nil
}

var charNames = map[string]rune{
	"newline":   '\n',
	"space":     ' ',
	"tab":       '\t',
	"return":    '\r',
	"formfeed":  '\f',
	"backspace": '\b',
}

func (r *Reader) readChar() (value.Value, error) {
	startPos := r.pos2()
	r.advance() // consume backslash
	if r.atEnd() {
		return value.Nil, newError(BadChar, startPos, "incomplete character literal")
	}
	if r.peek() == 'u' && isHexDigit(r.peekAt(1)) {
		r.advance()
		ru, err := r.readHex4()
		if err != nil {
			return value.Nil, err
		}
		return value.Char(ru), nil
	}
	start := r.pos
	for !r.atEnd() && isSymbolChar(r.peek()) {
		r.advance()
	}
	if r.pos == start {
		// A single non-symbol-char rune, e.g. \( or \space-less punctuation.
		return value.Char(r.advance()), nil
	}
	name := string(r.src[start:r.pos])
	if ru, ok := charNames[name]; ok {
		return value.Char(ru), nil
	}
	if len([]rune(name)) == 1 {
		return value.Char([]rune(name)[0]), nil
	}
	return value.Nil, newError(BadChar, startPos, "invalid character literal: \\"+name)
}

func (r *Reader) readKeyword() (value.Value, error) {
	startPos := r.pos2()
	r.advance() // consume ':'
	if !r.atEnd() && r.peek() == ':' {
		return value.Nil, newError(BadKeyword, startPos, "namespaced-alias keywords (::x) are not supported")
	}
	name, err := r.readSymbolName()
	if err != nil {
		return value.Nil, err
	}
	if name == "" {
		return value.Nil, newError(BadKeyword, startPos, "empty keyword")
	}
	ns, n := splitNamespace(name)
	return value.Keyword(ns, n), nil
}

func (r *Reader) readSymbolName() (string, error) {
	start := r.pos
	for !r.atEnd() && isSymbolChar(r.peek()) {
		r.advance()
	}
	return string(r.src[start:r.pos]), nil
}

func splitNamespace(s string) (ns, name string) {
	i := strings.IndexByte(s, '/')
	if i <= 0 || i == len(s)-1 {
		return "", s
	}
	return s[:i], s[i+1:]
}

func (r *Reader) readSymbolOrKeywordLiteral() (value.Value, error) {
	startPos := r.pos2()
	name, err := r.readSymbolName()
	if err != nil {
		return value.Nil, err
	}
	if name == "" {
		return value.Nil, newError(UnexpectedEOF, startPos, "empty symbol")
	}
	switch name {
	case "nil":
		return value.Nil, nil
	case "true":
		return value.True, nil
	case "false":
		return value.False, nil
	}
	ns, n := splitNamespace(name)
	return value.Symbol(ns, n), nil
}

func (r *Reader) readNumber() (value.Value, error) {
	startPos := r.pos2()
	start := r.pos
	if r.peek() == '-' || r.peek() == '+' {
		r.advance()
	}
	hasDot, hasExp := false, false
	for !r.atEnd() && (isDigit(r.peek()) || r.peek() == '.') {
		if r.peek() == '.' {
			if hasDot {
				break
			}
			hasDot = true
		}
		r.advance()
	}
	if !r.atEnd() && (r.peek() == 'e' || r.peek() == 'E') {
		mark := r.pos
		r.advance()
		if !r.atEnd() && (r.peek() == '+' || r.peek() == '-') {
			r.advance()
		}
		if !r.atEnd() && isDigit(r.peek()) {
			hasExp = true
			for !r.atEnd() && isDigit(r.peek()) {
				r.advance()
			}
		} else {
			r.pos = mark
		}
	}
	suffix := rune(0)
	if !r.atEnd() && (r.peek() == 'N' || r.peek() == 'M') {
		suffix = r.peek()
		r.advance()
	}
	text := string(r.src[start:r.pos])
	numText := text
	if suffix != 0 {
		numText = text[:len(text)-1]
	}
	if hasDot || hasExp || suffix == 'M' {
		f, err := strconv.ParseFloat(numText, 64)
		if err != nil {
			return value.Nil, newError(BadNumber, startPos, "invalid float literal: "+text)
		}
		return value.Float(f), nil
	}
	i, err := strconv.ParseInt(numText, 10, 64)
	if err != nil {
		return value.Nil, newError(BadNumber, startPos, "invalid integer literal: "+text)
	}
	return value.Int(i), nil
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isHexDigit(c rune) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isSymbolStart(c rune) bool {
	if c == '/' {
		return true
	}
	return isLetter(c) || strings.ContainsRune(symbolPunct, c)
}

func isSymbolChar(c rune) bool {
	return isLetter(c) || isDigit(c) || strings.ContainsRune(symbolPunct, c) || c == '/'
}

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c > 127
}
