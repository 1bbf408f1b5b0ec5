package main

import (
	"crypto/rand"
	"encoding/hex"
	"slices"
	"sync"
	"time"

	"github.com/bodul/xwplayer/puzzle"
)

// Puzzle is a generated puzzle kept so that it can be played again.
type Puzzle struct {
	ID         string            `json:"id"`
	Difficulty puzzle.Difficulty `json:"difficulty,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	puzzle.Descriptor
}

// Store holds all puzzles and game sessions in memory.
type Store struct {
	mu      sync.RWMutex
	puzzles map[string]*Puzzle
	games   map[string]*GameSession
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		puzzles: make(map[string]*Puzzle),
		games:   make(map[string]*GameSession),
	}
}

// SavePuzzle persists a puzzle and returns it with a generated ID.
func (s *Store) SavePuzzle(p *Puzzle) *Puzzle {
	p.ID = generateID()
	p.CreatedAt = time.Now()

	s.mu.Lock()
	s.puzzles[p.ID] = p
	s.mu.Unlock()

	return p
}

// GetPuzzle returns a puzzle by ID, or nil if not found.
func (s *Store) GetPuzzle(id string) *Puzzle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.puzzles[id]
}

// ListPuzzles returns all puzzles, most recent first.
func (s *Store) ListPuzzles() []*Puzzle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*Puzzle, 0, len(s.puzzles))
	for _, p := range s.puzzles {
		list = append(list, p)
	}
	// Sort by CreatedAt descending (simple insertion, small N).
	for i := 1; i < len(list); i++ {
		for j := i; j > 0 && list[j].CreatedAt.After(list[j-1].CreatedAt); j-- {
			list[j], list[j-1] = list[j-1], list[j]
		}
	}
	return list
}

// CreateGame creates an idle game session whose clock ticks every interval.
func (s *Store) CreateGame(a puzzle.Alphabet, interval time.Duration) *GameSession {
	game := newGameSession(generateID(), a, interval)

	s.mu.Lock()
	s.games[game.ID] = game
	s.mu.Unlock()

	return game
}

// GetGame returns a game session by ID, or nil if not found.
func (s *Store) GetGame(id string) *GameSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.games[id]
}

// ListGames returns all game sessions, most recent first.
func (s *Store) ListGames() []*GameSession {
	s.mu.RLock()
	list := make([]*GameSession, 0, len(s.games))
	for _, g := range s.games {
		list = append(list, g)
	}
	s.mu.RUnlock()

	slices.SortFunc(list, func(a, b *GameSession) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return list
}

func generateID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
