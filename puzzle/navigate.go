package puzzle

// Key is an arrow key.
type Key string

const (
	KeyLeft  Key = "left"
	KeyRight Key = "right"
	KeyUp    Key = "up"
	KeyDown  Key = "down"
)

// selectCell moves the cursor and recomputes focus.
func (s Session) selectCell(p Pos, dir Direction) Session {
	s.Selection = Selection{Cell: &p, Direction: dir}
	s.Grid = Focus(s.Grid, s.Clues, s.Selection)
	return s
}

// Click selects p. Clicking the selected cell again flips the direction.
// Black cells ignore clicks.
func (s Session) Click(p Pos) Session {
	if !s.playing() || !s.Grid.Open(p) {
		return s
	}
	dir := s.Selection.Direction
	if s.Selection.At(p) {
		dir = dir.Toggle()
	}
	return s.selectCell(p, dir)
}

// Enter writes value into p. A letter advances the cursor to the next open cell
// in the selected direction; an empty value clears the cell and stays put.
// Values outside the alphabet are ignored.
func (s Session) Enter(p Pos, value string) Session {
	if !s.playing() || !s.Grid.Open(p) {
		return s
	}
	v, ok := s.Alphabet.Entry(value)
	if !ok {
		return s
	}

	s.Grid = s.Grid.Clone()
	s.Grid.Cells[p.Row][p.Col].User = v
	if v == "" {
		return s
	}

	if next := p.Next(s.Selection.Direction, 1); s.Grid.Open(next) {
		return s.Click(next)
	}
	return s
}

// Backspace clears p if it holds a letter. On an empty cell it instead moves the
// cursor one cell back along the selected direction without erasing anything.
func (s Session) Backspace(p Pos) Session {
	if !s.playing() || !s.Grid.Open(p) {
		return s
	}
	if s.Grid.Cells[p.Row][p.Col].User != "" {
		s.Grid = s.Grid.Clone()
		s.Grid.Cells[p.Row][p.Col].User = ""
		return s
	}
	if prev := p.Next(s.Selection.Direction, -1); s.Grid.Open(prev) {
		return s.Click(prev)
	}
	return s
}

// Arrow moves the cursor from p to the neighbouring cell in the key's direction.
// The typing direction is kept; edges and black cells stop the cursor.
func (s Session) Arrow(p Pos, k Key) Session {
	if !s.playing() {
		return s
	}
	var dr, dc int
	switch k {
	case KeyUp:
		dr = -1
	case KeyDown:
		dr = 1
	case KeyLeft:
		dc = -1
	case KeyRight:
		dc = 1
	default:
		return s
	}
	if s.Alphabet.RTL {
		dc = -dc
	}

	next := Pos{Row: p.Row + dr, Col: p.Col + dc}
	if !s.Grid.Open(next) {
		return s
	}
	return s.selectCell(next, s.Selection.Direction)
}

// SelectClue jumps to the first cell of a clue and adopts its direction.
func (s Session) SelectClue(number int, dir Direction) Session {
	if !s.playing() {
		return s
	}
	c, ok := ClueByNumber(s.Clues, number, dir)
	if !ok || !s.Grid.Open(c.Start()) {
		return s
	}
	return s.selectCell(c.Start(), c.Direction)
}
