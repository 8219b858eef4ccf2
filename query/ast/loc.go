package ast

// Loc is a node's source position: a pair of rune offsets into the
// query text, plus the line/col of the first rune (1-based, matching
// edn.Pos) so eval.EvalError can report positions the same way
// edn.ParseError does (spec.md §7).
type Loc struct {
	First int `json:"first"`
	Last  int `json:"last"`
	Line  int `json:"line"`
	Col   int `json:"col"`
}

func NewLoc(pos, end int) Loc {
	return Loc{First: pos, Last: end}
}

func NewLocAt(pos, end, line, col int) Loc {
	return Loc{First: pos, Last: end, Line: line, Col: col}
}

func (l Loc) Pos() int      { return l.First }
func (l Loc) End() int      { return l.Last }
func (l Loc) Location() Loc { return l }
