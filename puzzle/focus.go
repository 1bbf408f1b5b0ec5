package puzzle

// Selection is the cursor: the focused cell, if any, and the typing direction.
type Selection struct {
	Cell      *Pos      `json:"cell"`
	Direction Direction `json:"direction"`
}

// At reports whether the selection is on p.
func (s Selection) At(p Pos) bool {
	return s.Cell != nil && *s.Cell == p
}

// Focus returns a copy of g with the focus flags recomputed for sel.
// Only the selected cell is Focused; every cell of the word enclosing it in the
// selected direction is InFocus. Letters and validation marks are untouched.
func Focus(g Grid, clues []Clue, sel Selection) Grid {
	out := g.Clone()
	for r := range out.Cells {
		for c := range out.Cells[r] {
			out.Cells[r][c].Focused = false
			out.Cells[r][c].InFocus = false
		}
	}

	if sel.Cell == nil || !out.In(*sel.Cell) {
		return out
	}
	p := *sel.Cell
	out.Cells[p.Row][p.Col].Focused = true

	word, ok := FindWord(clues, p, sel.Direction)
	if !ok {
		return out
	}
	for _, q := range word.Cells() {
		if out.In(q) {
			out.Cells[q.Row][q.Col].InFocus = true
		}
	}
	return out
}
