package puzzle

// Check returns a copy of g with Correct set on every active cell whose entry
// matches its solution, and reports whether none of them mismatch.
func Check(g Grid) (Grid, bool) {
	out := g.Clone()
	solved := true
	for r := range out.Cells {
		for c := range out.Cells[r] {
			cell := &out.Cells[r][c]
			if !cell.Active || cell.Black {
				continue
			}
			cell.Correct = cell.User == cell.Solution
			solved = solved && cell.Correct
		}
	}
	return out, solved
}

// Validate checks every entry. A fully correct grid wins the game and earns
// the win bonus.
func (s Session) Validate() Session {
	if !s.playing() {
		return s
	}
	g, solved := Check(s.Grid)
	s.Grid = g
	if solved {
		s.Status = StatusWon
		s.Score += WinBonus
	}
	return s
}

// RevealLetter fills in the solution of the selected cell.
func (s Session) RevealLetter() Session {
	if !s.playing() || s.Selection.Cell == nil {
		return s
	}
	p := *s.Selection.Cell
	cell, ok := s.Grid.At(p)
	if !ok || cell.Black || !cell.Active || cell.Solution == "" {
		return s
	}

	s.Grid = s.Grid.Clone()
	reveal(&s.Grid.Cells[p.Row][p.Col], cell.Solution)
	s.Score = penalize(s.Score, RevealLetterPenalty)
	return s
}

// RevealWord fills in the whole word under the cursor.
func (s Session) RevealWord() Session {
	if !s.playing() {
		return s
	}
	word, ok := s.CurrentClue()
	if !ok {
		return s
	}

	s.Grid = s.Grid.Clone()
	letters := []rune(word.Answer)
	for i, p := range word.Cells() {
		if s.Grid.In(p) {
			reveal(&s.Grid.Cells[p.Row][p.Col], string(letters[i]))
		}
	}
	s.Score = penalize(s.Score, RevealWordPenalty)
	return s
}

func reveal(c *Cell, letter string) {
	c.User = letter
	c.Correct = true
	c.Revealed = true
}

// penalize subtracts n from score without going below zero.
func penalize(score, n int) int {
	return max(0, score-n)
}
