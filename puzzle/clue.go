package puzzle

import (
	"slices"
	"unicode/utf8"
)

// Clue is the display metadata of one placed word.
type Clue struct {
	Number    int       `json:"number"`
	Direction Direction `json:"direction"`
	Text      string    `json:"text"`
	Kind      ClueKind  `json:"type"`
	Answer    string    `json:"-"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Length    int       `json:"length"`
}

// Len returns the number of characters in the answer.
func (c Clue) Len() int {
	return utf8.RuneCountInString(c.Answer)
}

// Start returns the position of the first letter.
func (c Clue) Start() Pos {
	return Pos{Row: c.Row, Col: c.Col}
}

// Contains reports whether p lies within the word's span.
func (c Clue) Contains(p Pos) bool {
	n := c.Len()
	if c.Direction == Across {
		return p.Row == c.Row && p.Col >= c.Col && p.Col < c.Col+n
	}
	return p.Col == c.Col && p.Row >= c.Row && p.Row < c.Row+n
}

// Cells returns every position of the span, in reading order.
// Positions are not bounds-checked.
func (c Clue) Cells() []Pos {
	n := c.Len()
	out := make([]Pos, n)
	for i := range n {
		out[i] = c.Start().Next(c.Direction, i)
	}
	return out
}

// FindWord returns the first clue in direction dir whose span contains p.
func FindWord(clues []Clue, p Pos, dir Direction) (Clue, bool) {
	for _, c := range clues {
		if c.Direction == dir && c.Contains(p) {
			return c, true
		}
	}
	return Clue{}, false
}

// ClueByNumber returns the clue with the given number and direction.
func ClueByNumber(clues []Clue, number int, dir Direction) (Clue, bool) {
	for _, c := range clues {
		if c.Number == number && c.Direction == dir {
			return c, true
		}
	}
	return Clue{}, false
}

// SplitClues returns the across and down clues, each sorted by number.
func SplitClues(clues []Clue) (across, down []Clue) {
	for _, c := range clues {
		if c.Direction == Across {
			across = append(across, c)
		} else {
			down = append(down, c)
		}
	}
	byNumber := func(a, b Clue) int { return a.Number - b.Number }
	slices.SortStableFunc(across, byNumber)
	slices.SortStableFunc(down, byNumber)
	return across, down
}
