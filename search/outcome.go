package search

import (
	"strings"
)

// Outcome is how a search ended, when it did not fail.
type Outcome int

//go:generate go tool stringer -linecomment -type=Outcome
const (
	OUTCOME_FOUND     = Outcome(0) // found
	OUTCOME_EXHAUSTED = Outcome(1) // exhausted
	OUTCOME_TIMEOUT   = Outcome(2) // timeout
	OUTCOME_CANCELED  = Outcome(3) // canceled
)

// Strategy selects how program lengths are scheduled.
type Strategy int

//go:generate go tool stringer -linecomment -type=Strategy
const (
	// All lengths race; the first match in wall-clock time wins, which
	// is not necessarily the shortest.
	STRATEGY_RACE = Strategy(0) // race
	// Each length is exhausted before the next starts; the match is of
	// minimal length.
	STRATEGY_SHORTEST = Strategy(1) // shortest
)

// ParseStrategy returns the strategy for a name.
func ParseStrategy(name string) (strategy Strategy, err error) {
	switch strings.ToLower(name) {
	case STRATEGY_RACE.String():
		strategy = STRATEGY_RACE
	case STRATEGY_SHORTEST.String():
		strategy = STRATEGY_SHORTEST
	default:
		err = ErrStrategy
	}

	return
}
