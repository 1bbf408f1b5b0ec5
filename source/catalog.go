package source

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/bodul/xwplayer/puzzle"
)

// Catalog is a fixed, in-memory list of puzzles.
type Catalog struct {
	levels []puzzle.Descriptor
}

// NewCatalog creates a catalog over the given puzzles.
func NewCatalog(levels []puzzle.Descriptor) *Catalog {
	return &Catalog{levels: levels}
}

// DefaultCatalog returns the built-in levels.
func DefaultCatalog() *Catalog {
	return NewCatalog(levels)
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Levels returns a copy of every level, in catalog order.
func (c *Catalog) Levels() []puzzle.Descriptor {
	out := make([]puzzle.Descriptor, len(c.levels))
	for i, l := range c.levels {
		out[i] = *clone(l)
	}
	return out
}

// Level returns level i, counting from zero.
func (c *Catalog) Level(i int) (*puzzle.Descriptor, error) {
	if i < 0 || i >= len(c.levels) {
		return nil, fmt.Errorf("%w: %d", ErrLevelRange, i)
	}
	return clone(c.levels[i]), nil
}

// Generate picks a random level of tier d, or any level when none matches.
func (c *Catalog) Generate(_ context.Context, d puzzle.Difficulty) (*puzzle.Descriptor, error) {
	if len(c.levels) == 0 {
		return nil, ErrNoPuzzle
	}
	var match []int
	for i, l := range c.levels {
		if TierOfSize(l.Dimensions) == d {
			match = append(match, i)
		}
	}
	if len(match) == 0 {
		return clone(c.levels[rand.IntN(len(c.levels))]), nil
	}
	return clone(c.levels[match[rand.IntN(len(match))]]), nil
}
