// Package source provides puzzle content: a fixed catalog of levels, puzzles
// generated by Gemini, and puzzles stored in MySQL. All of them satisfy Source
// and can be swapped for one another.
package source

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bodul/xwplayer/puzzle"
)

var (
	// ErrNoPuzzle is returned when a source has nothing to offer.
	ErrNoPuzzle = errors.New("no puzzle available")
	// ErrLevelRange is returned for an unknown catalog level.
	ErrLevelRange = errors.New("level out of range")
)

// Source produces a puzzle for a difficulty tier.
type Source interface {
	Generate(ctx context.Context, d puzzle.Difficulty) (*puzzle.Descriptor, error)
}

// Tier describes the grid size and word count of a difficulty.
type Tier struct {
	Difficulty puzzle.Difficulty `json:"difficulty"`
	Label      string            `json:"label"`
	Size       int               `json:"size"`
	Words      int               `json:"words"`
}

// Tiers lists the supported difficulties, easiest first.
var Tiers = []Tier{
	{Difficulty: puzzle.Easy, Label: "Easy", Size: 9, Words: 8},
	{Difficulty: puzzle.Medium, Label: "Medium", Size: 12, Words: 15},
	{Difficulty: puzzle.Hard, Label: "Hard", Size: 15, Words: 20},
}

// TierFor returns the tier of d.
func TierFor(d puzzle.Difficulty) (Tier, bool) {
	for _, t := range Tiers {
		if t.Difficulty == d {
			return t, true
		}
	}
	return Tier{}, false
}

// ParseDifficulty parses a tier name, case-insensitively.
func ParseDifficulty(s string) (puzzle.Difficulty, error) {
	d := puzzle.Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := TierFor(d); !ok {
		return "", fmt.Errorf("unknown difficulty %q", s)
	}
	return d, nil
}

// TierOfSize returns the tier whose grid size is nearest to size. Ties go to
// the easier tier.
func TierOfSize(size int) puzzle.Difficulty {
	for i, t := range Tiers {
		if i+1 < len(Tiers) && size > (t.Size+Tiers[i+1].Size)/2 {
			continue
		}
		return t.Difficulty
	}
	return Tiers[len(Tiers)-1].Difficulty
}

// Check reports whether desc can be played at all.
func Check(desc *puzzle.Descriptor) error {
	if desc == nil {
		return ErrNoPuzzle
	}
	if desc.Dimensions <= 0 {
		return fmt.Errorf("invalid dimensions %d", desc.Dimensions)
	}
	if len(desc.Words) == 0 {
		return fmt.Errorf("puzzle %q has no words", desc.Title)
	}
	return nil
}

// Chain tries each source in turn and returns the first puzzle produced.
type Chain []Source

// Generate implements Source.
func (c Chain) Generate(ctx context.Context, d puzzle.Difficulty) (*puzzle.Descriptor, error) {
	var errs []error
	for _, s := range c {
		desc, err := s.Generate(ctx, d)
		if err == nil {
			return desc, nil
		}
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("%w: %w", ErrNoPuzzle, errors.Join(errs...))
}

// Sink stores generated puzzles.
type Sink interface {
	Put(ctx context.Context, d puzzle.Difficulty, desc *puzzle.Descriptor) error
}

// Recorder is a Source that hands every puzzle it generates to a Sink.
// A failing Sink is logged and does not fail the generation.
type Recorder struct {
	Source Source
	Sink   Sink
}

// Generate implements Source.
func (r Recorder) Generate(ctx context.Context, d puzzle.Difficulty) (*puzzle.Descriptor, error) {
	desc, err := r.Source.Generate(ctx, d)
	if err != nil {
		return nil, err
	}
	if err := r.Sink.Put(ctx, d, desc); err != nil {
		log.Printf("archive puzzle %q: %v", desc.Title, err)
	}
	return desc, nil
}

func clone(desc puzzle.Descriptor) *puzzle.Descriptor {
	desc.Words = append([]puzzle.Word(nil), desc.Words...)
	return &desc
}
