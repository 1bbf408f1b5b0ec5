package main

import (
	"sync"
	"time"

	"github.com/bodul/xwplayer/puzzle"
)

// Player represents a connected player.
type Player struct {
	Pseudo   string    `json:"pseudo"`
	Color    string    `json:"color"`
	JoinedAt time.Time `json:"joined_at"`
}

// GameSession is a puzzle being played, shared by every connected player.
// It owns the elapsed-time clock, which runs only while the puzzle is in play.
type GameSession struct {
	ID        string
	CreatedAt time.Time

	mu       sync.Mutex
	players  map[string]*Player
	state    puzzle.Session
	interval time.Duration
	stop     chan struct{} // non-nil while the clock runs
	onTick   func(puzzle.Session)
}

// gameView is the JSON form of a session.
type gameView struct {
	ID      string             `json:"id"`
	Players map[string]*Player `json:"players"`
	puzzle.Session
}

// playerColors is the palette assigned to players in order.
var playerColors = []string{
	"#2563eb", "#dc2626", "#16a34a", "#9333ea",
	"#ea580c", "#0891b2", "#c026d3", "#ca8a04",
}

func newGameSession(id string, a puzzle.Alphabet, interval time.Duration) *GameSession {
	if interval <= 0 {
		interval = time.Second
	}
	return &GameSession{
		ID:        id,
		CreatedAt: time.Now(),
		players:   make(map[string]*Player),
		state:     puzzle.NewSession(a),
		interval:  interval,
	}
}

// AddPlayer adds a player to the session and returns the player.
func (g *GameSession) AddPlayer(pseudo string) *Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	if p, ok := g.players[pseudo]; ok {
		return p
	}

	p := &Player{
		Pseudo:   pseudo,
		Color:    playerColors[len(g.players)%len(playerColors)],
		JoinedAt: time.Now(),
	}
	g.players[pseudo] = p
	return p
}

// RemovePlayer removes a player from the session.
func (g *GameSession) RemovePlayer(pseudo string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.players, pseudo)
}

// State returns the current puzzle state.
func (g *GameSession) State() puzzle.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// View returns the session with its players, ready to encode.
func (g *GameSession) View() gameView {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.viewLocked()
}

func (g *GameSession) viewLocked() gameView {
	players := make(map[string]*Player, len(g.players))
	for k, p := range g.players {
		players[k] = p
	}
	return gameView{ID: g.ID, Players: players, Session: g.state}
}

// OnTick registers fn to be called after every clock tick.
func (g *GameSession) OnTick(fn func(puzzle.Session)) {
	g.mu.Lock()
	g.onTick = fn
	g.mu.Unlock()
}

// Update replaces the state with fn(state) and returns the new view.
// The clock is started or stopped to follow the status.
func (g *GameSession) Update(fn func(puzzle.Session) puzzle.Session) gameView {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state = fn(g.state)
	g.syncClock()
	return g.viewLocked()
}

// Close stops the clock.
func (g *GameSession) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.stop != nil {
		close(g.stop)
		g.stop = nil
	}
}

// ClockRunning reports whether the elapsed-time clock is armed.
func (g *GameSession) ClockRunning() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stop != nil
}

func (g *GameSession) syncClock() {
	playing := g.state.Status == puzzle.StatusPlaying
	switch {
	case playing && g.stop == nil:
		g.stop = make(chan struct{})
		go g.runClock(g.stop)
	case !playing && g.stop != nil:
		close(g.stop)
		g.stop = nil
	}
}

func (g *GameSession) runClock(stop <-chan struct{}) {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			g.tick(stop)
		}
	}
}

func (g *GameSession) tick(stop <-chan struct{}) {
	g.mu.Lock()
	select {
	case <-stop:
		// Stopped while waiting for the lock.
		g.mu.Unlock()
		return
	default:
	}
	g.state = g.state.Tick()
	state, fn := g.state, g.onTick
	g.mu.Unlock()

	if fn != nil {
		fn(state)
	}
}
