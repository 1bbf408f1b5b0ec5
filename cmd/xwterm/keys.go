package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bodul/xwplayer/puzzle"
)

// command is what a key press asks the player to do.
type command struct {
	event puzzle.Event
	quit  bool
	next  bool // load another puzzle
}

var arrows = map[tcell.Key]puzzle.Key{
	tcell.KeyLeft:  puzzle.KeyLeft,
	tcell.KeyRight: puzzle.KeyRight,
	tcell.KeyUp:    puzzle.KeyUp,
	tcell.KeyDown:  puzzle.KeyDown,
}

// translate maps a key press to a command. Cell keys act on the selected cell
// and are dropped when nothing is selected.
func translate(ev *tcell.EventKey, sel puzzle.Selection) (command, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return command{quit: true}, true
	case tcell.KeyF5:
		return command{next: true}, true
	case tcell.KeyEnter:
		return command{event: puzzle.Event{Type: puzzle.EventValidate}}, true
	case tcell.KeyF2:
		return command{event: puzzle.Event{Type: puzzle.EventRevealLetter}}, true
	case tcell.KeyF3:
		return command{event: puzzle.Event{Type: puzzle.EventRevealWord}}, true
	}

	if sel.Cell == nil {
		return command{}, false
	}
	at := func(t puzzle.EventType) puzzle.Event {
		return puzzle.Event{Type: t, Row: sel.Cell.Row, Col: sel.Cell.Col}
	}

	switch k := ev.Key(); k {
	case tcell.KeyTab:
		// Clicking the selected cell flips the direction.
		return command{event: at(puzzle.EventClick)}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
		return command{event: at(puzzle.EventBackspace)}, true
	case tcell.KeyLeft, tcell.KeyRight, tcell.KeyUp, tcell.KeyDown:
		e := at(puzzle.EventArrow)
		e.Key = arrows[k]
		return command{event: e}, true
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return command{}, false
		}
		e := at(puzzle.EventInput)
		e.Value = string(ev.Rune())
		return command{event: e}, true
	}
	return command{}, false
}
