// Package catalog holds the static level definitions.
package catalog

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"time"
)

var (
	// ErrInvalidLevel is returned for level ids outside the catalog.
	ErrInvalidLevel = errors.New("invalid level")
	// ErrEmptyPool is returned when a level has no usable sentences.
	ErrEmptyPool = errors.New("empty sentence pool")
)

// Level is a difficulty tier with a fixed duration and a sentence pool.
type Level struct {
	ID        int
	Name      string
	Duration  time.Duration
	Sentences []string
}

// Seconds returns the level duration in whole seconds.
func (l Level) Seconds() int {
	return int(l.Duration / time.Second)
}

// Catalog is an immutable, validated set of levels numbered 1..N.
type Catalog struct {
	levels []Level
}

// New validates the levels and builds a catalog. Level ids must run 1..N in order.
func New(levels ...Level) (*Catalog, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("catalog has no levels")
	}
	out := make([]Level, 0, len(levels))
	for i, lvl := range levels {
		if lvl.ID != i+1 {
			return nil, fmt.Errorf("level %d: expected id %d", lvl.ID, i+1)
		}
		if strings.TrimSpace(lvl.Name) == "" {
			return nil, fmt.Errorf("level %d: name must not be empty", lvl.ID)
		}
		if lvl.Duration < time.Second || lvl.Duration%time.Second != 0 {
			return nil, fmt.Errorf("level %d: duration must be a positive number of seconds, got %s", lvl.ID, lvl.Duration)
		}
		if len(lvl.Sentences) == 0 {
			return nil, fmt.Errorf("level %d: %w", lvl.ID, ErrEmptyPool)
		}
		for j, sentence := range lvl.Sentences {
			if strings.TrimSpace(sentence) == "" {
				return nil, fmt.Errorf("level %d: sentence %d is blank: %w", lvl.ID, j+1, ErrEmptyPool)
			}
		}
		lvl.Sentences = slices.Clone(lvl.Sentences)
		out = append(out, lvl)
	}
	return &Catalog{levels: out}, nil
}

// Get returns the level with the given id.
func (c *Catalog) Get(id int) (Level, error) {
	if id < 1 || id > len(c.levels) {
		return Level{}, fmt.Errorf("level %d (have 1..%d): %w", id, len(c.levels), ErrInvalidLevel)
	}
	return cloneLevel(c.levels[id-1]), nil
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	return len(c.levels)
}

// Last returns the id of the final level.
func (c *Catalog) Last() int {
	return len(c.levels)
}

// Levels returns a copy of all levels in order.
func (c *Catalog) Levels() []Level {
	out := make([]Level, len(c.levels))
	for i, lvl := range c.levels {
		out[i] = cloneLevel(lvl)
	}
	return out
}

// PickSentence selects a sentence uniformly at random and splits it into words.
func PickSentence(level Level, rnd *rand.Rand) []string {
	sentence := level.Sentences[rnd.Intn(len(level.Sentences))]
	return strings.Fields(sentence)
}

func cloneLevel(l Level) Level {
	l.Sentences = slices.Clone(l.Sentences)
	return l
}
