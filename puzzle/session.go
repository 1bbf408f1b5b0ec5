// Package puzzle implements the crossword grid engine: deriving a grid from
// placed words, cursor navigation, highlighting and answer checking.
//
// Every operation is a pure function of a Session value and returns the next
// Session; the previous value is never modified.
package puzzle

import "fmt"

// Status is the lifecycle stage of a session.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
)

// Difficulty is a requested puzzle tier.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Scoring.
const (
	RevealLetterPenalty = 5
	RevealWordPenalty   = 15
	WinBonus            = 100
)

// Session is the complete state of one player's game.
type Session struct {
	Status     Status     `json:"status"`
	Title      string     `json:"title,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Grid       Grid       `json:"grid"`
	Clues      []Clue     `json:"clues"`
	Selection  Selection  `json:"selection"`
	Score      int        `json:"score"`
	Elapsed    int        `json:"elapsed"`
	Alphabet   Alphabet   `json:"-"`
}

// NewSession returns an idle session accepting input from alphabet a.
func NewSession(a Alphabet) Session {
	return Session{
		Status:    StatusIdle,
		Clues:     []Clue{},
		Selection: Selection{Direction: Across},
		Alphabet:  a,
	}
}

// Loading marks the session as waiting for a puzzle of the given tier.
// Any previous puzzle state is dropped.
func (s Session) Loading(d Difficulty) Session {
	next := NewSession(s.Alphabet)
	next.Status = StatusLoading
	next.Difficulty = d
	return next
}

// Start builds desc and begins play with the cursor on the first open cell,
// typing across. Score and elapsed time restart from zero.
func (s Session) Start(desc Descriptor, d Difficulty) Session {
	grid, clues := Build(desc.Dimensions, desc.Words)
	next := NewSession(s.Alphabet)
	next.Status = StatusPlaying
	next.Title = desc.Title
	next.Difficulty = d
	next.Grid = grid
	next.Clues = clues

	if p, ok := grid.FirstOpen(); ok {
		return next.selectCell(p, Across)
	}
	return next
}

// Fail abandons a load and returns to idle.
func (s Session) Fail() Session {
	return NewSession(s.Alphabet)
}

// Quit leaves the current puzzle and returns to idle.
func (s Session) Quit() Session {
	return NewSession(s.Alphabet)
}

// Tick advances the elapsed-time counter by one second while playing.
func (s Session) Tick() Session {
	if s.Status == StatusPlaying {
		s.Elapsed++
	}
	return s
}

// CurrentClue returns the word under the cursor in the selected direction.
func (s Session) CurrentClue() (Clue, bool) {
	if s.Selection.Cell == nil {
		return Clue{}, false
	}
	return FindWord(s.Clues, *s.Selection.Cell, s.Selection.Direction)
}

func (s Session) playing() bool {
	return s.Status == StatusPlaying
}

// FormatElapsed renders seconds as minutes:seconds.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
