package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/bodul/xwplayer/puzzle"
)

var errInvalidEvent = errors.New("invalid event")

// inputEvent is a decoded player action. Cell events may omit row and col, in
// which case they apply to the selected cell.
type inputEvent struct {
	puzzle.Event
	Pseudo string
	hasPos bool
}

// decodeEvent parses a client event such as
//
//	{"type":"input","row":0,"col":2,"value":"A","pseudo":"bob"}
func decodeEvent(data []byte) (inputEvent, error) {
	if !gjson.ValidBytes(data) {
		return inputEvent{}, fmt.Errorf("%w: malformed JSON", errInvalidEvent)
	}
	r := gjson.ParseBytes(data)
	if !r.IsObject() {
		return inputEvent{}, fmt.Errorf("%w: not an object", errInvalidEvent)
	}

	ev := inputEvent{
		Event:  puzzle.Event{Type: puzzle.EventType(r.Get("type").String())},
		Pseudo: sanitizePseudo(r.Get("pseudo").String()),
	}

	row, col := r.Get("row"), r.Get("col")
	if row.Exists() || col.Exists() {
		if row.Type != gjson.Number || col.Type != gjson.Number {
			return inputEvent{}, fmt.Errorf("%w: row and col must be numbers", errInvalidEvent)
		}
		ev.Row, ev.Col = int(row.Int()), int(col.Int())
		ev.hasPos = true
	}

	switch ev.Type {
	case puzzle.EventClick:
		if !ev.hasPos {
			return inputEvent{}, fmt.Errorf("%w: click needs row and col", errInvalidEvent)
		}
	case puzzle.EventInput:
		v := r.Get("value")
		if v.Type != gjson.String {
			return inputEvent{}, fmt.Errorf("%w: input needs a string value", errInvalidEvent)
		}
		ev.Value = v.String()
	case puzzle.EventBackspace:
	case puzzle.EventArrow:
		switch k := puzzle.Key(r.Get("key").String()); k {
		case puzzle.KeyLeft, puzzle.KeyRight, puzzle.KeyUp, puzzle.KeyDown:
			ev.Key = k
		default:
			return inputEvent{}, fmt.Errorf("%w: unknown key %q", errInvalidEvent, k)
		}
	case puzzle.EventClue:
		ev.Number = int(r.Get("number").Int())
		ev.Direction = puzzle.Direction(r.Get("direction").String())
		if ev.Number <= 0 || !ev.Direction.Valid() {
			return inputEvent{}, fmt.Errorf("%w: clue needs number and direction", errInvalidEvent)
		}
	case puzzle.EventValidate, puzzle.EventRevealLetter, puzzle.EventRevealWord:
	default:
		return inputEvent{}, fmt.Errorf("%w: unknown type %q", errInvalidEvent, ev.Type)
	}
	return ev, nil
}

// apply performs the event on s. Cell events without a position act on the
// selected cell, or do nothing when there is none.
func (ev inputEvent) apply(s puzzle.Session) puzzle.Session {
	e := ev.Event
	if !ev.hasPos {
		switch e.Type {
		case puzzle.EventInput, puzzle.EventBackspace, puzzle.EventArrow:
			if s.Selection.Cell == nil {
				return s
			}
			e.Row, e.Col = s.Selection.Cell.Row, s.Selection.Cell.Col
		}
	}
	return s.Apply(e)
}

// statePayload encodes v and stamps the event type, the acting player and the
// formatted clock onto it.
func statePayload(kind, pseudo string, v gameView) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if data, err = sjson.SetBytes(data, "type", kind); err != nil {
		return nil, err
	}
	if data, err = sjson.SetBytes(data, "clock", puzzle.FormatElapsed(v.Elapsed)); err != nil {
		return nil, err
	}
	if pseudo != "" {
		if data, err = sjson.SetBytes(data, "pseudo", pseudo); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// tickPayload is the small event sent on every clock tick.
func tickPayload(elapsed int) string {
	out, _ := sjson.Set(`{"type":"tick"}`, "elapsed", elapsed)
	out, _ = sjson.Set(out, "clock", puzzle.FormatElapsed(elapsed))
	return out
}

// message builds a flat event such as player_joined.
func message(kind string, fields ...string) string {
	out, _ := sjson.Set(`{}`, "type", kind)
	for i := 0; i+1 < len(fields); i += 2 {
		out, _ = sjson.Set(out, fields[i], fields[i+1])
	}
	return out
}
