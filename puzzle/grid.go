package puzzle

import "unicode/utf8"

// Direction is the orientation of a placed word.
type Direction string

const (
	Across Direction = "across"
	Down   Direction = "down"
)

// Valid reports whether d is one of the two placement directions.
func (d Direction) Valid() bool {
	return d == Across || d == Down
}

// Toggle returns the other direction.
func (d Direction) Toggle() Direction {
	if d == Across {
		return Down
	}
	return Across
}

// step returns the row/col delta of one cell along d.
func (d Direction) step() (int, int) {
	if d == Down {
		return 1, 0
	}
	return 0, 1
}

// ClueKind is a display category for a clue. It has no effect on play.
type ClueKind string

const (
	KindStandard  ClueKind = "standard"
	KindMath      ClueKind = "math"
	KindMetaphor  ClueKind = "metaphor"
	KindCompound  ClueKind = "compound"
	KindEncrypted ClueKind = "encrypted"
	KindCultural  ClueKind = "cultural"
)

// Word is one placed word as delivered by a puzzle source.
type Word struct {
	Text      string    `json:"text"`
	Clue      string    `json:"clue"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Direction Direction `json:"direction"`
	ClueType  ClueKind  `json:"clueType"`
}

// Descriptor is a complete puzzle: a title, a square grid size and its words.
type Descriptor struct {
	Title      string `json:"title"`
	Dimensions int    `json:"dimensions"`
	Words      []Word `json:"words"`
}

// Pos addresses a cell.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Next returns the neighbouring position n cells along d (n may be negative).
func (p Pos) Next(d Direction, n int) Pos {
	dr, dc := d.step()
	return Pos{Row: p.Row + dr*n, Col: p.Col + dc*n}
}

// ClueNumbers holds the numbers of the words starting in a cell.
type ClueNumbers struct {
	Across int `json:"across,omitempty"`
	Down   int `json:"down,omitempty"`
}

// first returns the existing number of the cell, across first.
func (n ClueNumbers) first() int {
	if n.Across != 0 {
		return n.Across
	}
	return n.Down
}

// Cell is a single grid position.
// A cell is either black (never part of a word) or active, in which case
// Solution holds its expected character.
type Cell struct {
	Solution string      `json:"-"`
	User     string      `json:"user"`
	Active   bool        `json:"active"`
	Black    bool        `json:"black"`
	Numbers  ClueNumbers `json:"numbers"`
	Focused  bool        `json:"focused"`
	InFocus  bool        `json:"in_focus"`
	Correct  bool        `json:"correct"`
	Revealed bool        `json:"revealed,omitempty"`
}

// Grid is a square matrix of cells.
type Grid struct {
	Size  int      `json:"size"`
	Cells [][]Cell `json:"cells"`
}

// NewGrid returns a size×size grid of black cells.
func NewGrid(size int) Grid {
	if size < 0 {
		size = 0
	}
	cells := make([][]Cell, size)
	for r := range cells {
		cells[r] = make([]Cell, size)
		for c := range cells[r] {
			cells[r][c] = Cell{Black: true}
		}
	}
	return Grid{Size: size, Cells: cells}
}

// In reports whether p lies within the grid.
func (g Grid) In(p Pos) bool {
	return p.Row >= 0 && p.Row < g.Size && p.Col >= 0 && p.Col < g.Size
}

// Open reports whether p lies within the grid and is not black.
func (g Grid) Open(p Pos) bool {
	return g.In(p) && !g.Cells[p.Row][p.Col].Black
}

// At returns the cell at p and whether p is valid.
func (g Grid) At(p Pos) (Cell, bool) {
	if !g.In(p) {
		return Cell{}, false
	}
	return g.Cells[p.Row][p.Col], true
}

// Clone returns a deep copy of g.
func (g Grid) Clone() Grid {
	cells := make([][]Cell, len(g.Cells))
	for r, row := range g.Cells {
		cells[r] = make([]Cell, len(row))
		copy(cells[r], row)
	}
	return Grid{Size: g.Size, Cells: cells}
}

// FirstOpen returns the first non-black cell in row-major order.
func (g Grid) FirstOpen() (Pos, bool) {
	for r := range g.Size {
		for c := range g.Size {
			if !g.Cells[r][c].Black {
				return Pos{Row: r, Col: c}, true
			}
		}
	}
	return Pos{}, false
}

// Build derives the grid and clue list of a puzzle from its placed words.
//
// Words are processed in input order. A word starting outside the grid, or with
// an unknown direction, is dropped. Clue numbers are handed out in that same
// order: a word whose start cell already carries a number reuses it, otherwise it
// takes the next free one. Letters falling outside the grid are not carved.
func Build(dimension int, words []Word) (Grid, []Clue) {
	g := NewGrid(dimension)
	clues := make([]Clue, 0, len(words))
	next := 1

	for _, w := range words {
		start := Pos{Row: w.Row, Col: w.Col}
		if !g.In(start) || !w.Direction.Valid() {
			continue
		}

		head := &g.Cells[start.Row][start.Col]
		num := head.Numbers.first()
		if num == 0 {
			num = next
			next++
		}
		if w.Direction == Across {
			head.Numbers.Across = num
		} else {
			head.Numbers.Down = num
		}

		clues = append(clues, Clue{
			Number:    num,
			Direction: w.Direction,
			Text:      w.Clue,
			Kind:      w.ClueType,
			Answer:    w.Text,
			Row:       w.Row,
			Col:       w.Col,
			Length:    utf8.RuneCountInString(w.Text),
		})

		for i, ch := range []rune(w.Text) {
			p := start.Next(w.Direction, i)
			if !g.In(p) {
				continue
			}
			cell := &g.Cells[p.Row][p.Col]
			cell.Black = false
			cell.Active = true
			cell.Solution = string(ch)
		}
	}

	return g, clues
}
