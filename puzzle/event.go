package puzzle

// EventType names a player action.
type EventType string

const (
	EventClick        EventType = "click"
	EventInput        EventType = "input"
	EventBackspace    EventType = "backspace"
	EventArrow        EventType = "arrow"
	EventClue         EventType = "clue"
	EventValidate     EventType = "validate"
	EventRevealLetter EventType = "reveal_letter"
	EventRevealWord   EventType = "reveal_word"
)

// Event is a transport-neutral player action. Which fields are read depends on
// Type: Row/Col for cell events, Value for input, Key for arrows and
// Number/Direction for clue selection.
type Event struct {
	Type      EventType `json:"type"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Value     string    `json:"value,omitempty"`
	Key       Key       `json:"key,omitempty"`
	Number    int       `json:"number,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// Pos returns the cell the event targets.
func (e Event) Pos() Pos {
	return Pos{Row: e.Row, Col: e.Col}
}

// Apply performs e and returns the resulting session. Unknown events are
// ignored.
func (s Session) Apply(e Event) Session {
	switch e.Type {
	case EventClick:
		return s.Click(e.Pos())
	case EventInput:
		return s.Enter(e.Pos(), e.Value)
	case EventBackspace:
		return s.Backspace(e.Pos())
	case EventArrow:
		return s.Arrow(e.Pos(), e.Key)
	case EventClue:
		return s.SelectClue(e.Number, e.Direction)
	case EventValidate:
		return s.Validate()
	case EventRevealLetter:
		return s.RevealLetter()
	case EventRevealWord:
		return s.RevealWord()
	}
	return s
}
