package breach

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidConfig is returned when puzzle parameters cannot produce a
	// well-formed grid.
	ErrInvalidConfig = errors.New("invalid breach config")

	// ErrUnsolvable is returned when no replayable master path could be
	// walked on the generated grid.
	ErrUnsolvable = errors.New("breach master path is not solvable")
)

// PathLength is the number of cells in the hidden master path. The three
// daemons are sliced out of a path of exactly this length.
const PathLength = 7

// Config holds the puzzle parameters.
type Config struct {
	// GridSize is the number of rows (and columns) of the square grid.
	GridSize int

	// BufferSize is the number of symbols the player may upload before the
	// puzzle resolves.
	BufferSize int

	// Alphabet is the set of symbols cells are filled from.
	Alphabet []Symbol

	// TimeLimit is the countdown length in ticks.
	TimeLimit int

	// TickInterval is the wall-clock duration of one countdown tick.
	TickInterval time.Duration

	// PayoutDelay is how long a won puzzle stays on screen before the
	// success callback fires.
	PayoutDelay time.Duration
}

// DefaultConfig returns the standard 5x5 puzzle with an 8 slot buffer and a
// 30 second countdown.
func DefaultConfig() Config {
	return Config{
		GridSize:     5,
		BufferSize:   8,
		Alphabet:     DefaultAlphabet,
		TimeLimit:    30,
		TickInterval: time.Second,
		PayoutDelay:  1500 * time.Millisecond,
	}
}

// Validate checks that the parameters describe a playable puzzle.
func (c Config) Validate() error {
	switch {
	case c.GridSize < 3:
		return fmt.Errorf("%w: grid size %d, need at least 3", ErrInvalidConfig, c.GridSize)
	case len(c.Alphabet) == 0:
		return fmt.Errorf("%w: empty alphabet", ErrInvalidConfig)
	case c.BufferSize < PathLength:
		return fmt.Errorf("%w: buffer size %d is shorter than the master path (%d)", ErrInvalidConfig, c.BufferSize, PathLength)
	case c.TimeLimit <= 0:
		return fmt.Errorf("%w: time limit must be positive", ErrInvalidConfig)
	case c.TickInterval <= 0:
		return fmt.Errorf("%w: tick interval must be positive", ErrInvalidConfig)
	case c.PayoutDelay < 0:
		return fmt.Errorf("%w: negative payout delay", ErrInvalidConfig)
	}
	for _, s := range c.Alphabet {
		if s == "" {
			return fmt.Errorf("%w: empty symbol in alphabet", ErrInvalidConfig)
		}
	}
	return nil
}
