package elo

import (
	"errors"
	"fmt"
	"math"
)

// Strategy decides how a team delta is shared by the team members.
type Strategy string

const (
	// ApplyFull gives every member the whole team delta.
	ApplyFull Strategy = "apply_full"
	// DivideByTeamSize gives every member an equal share of the team delta.
	DivideByTeamSize Strategy = "divide_by_team_size"
)

var ErrUnknownStrategy = errors.New("unknown delta strategy")

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case ApplyFull, DivideByTeamSize:
		return Strategy(s), nil
	case "":
		return ApplyFull, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Calculator computes team rating deltas.
// K - maximum swing of a single event.
// Scale - rating difference at which the stronger team is expected to win ten times as often.
type Calculator struct {
	K        float64
	Scale    float64
	Strategy Strategy
}

func New(k float64, scale float64, strategy Strategy) (Calculator, error) {
	if k <= 0 {
		return Calculator{}, fmt.Errorf("k must be positive, got %v", k)
	}
	if scale <= 0 {
		return Calculator{}, fmt.Errorf("scale must be positive, got %v", scale)
	}
	if _, err := ParseStrategy(string(strategy)); err != nil {
		return Calculator{}, err
	}
	if strategy == "" {
		strategy = ApplyFull
	}
	return Calculator{K: k, Scale: scale, Strategy: strategy}, nil
}

// Expected score of the top team.
func (c Calculator) Expected(topRating float64, bottomRating float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (bottomRating-topRating)/c.Scale))
}

// Actual score of the top team: its share of the outcome total, 0.5 when nothing was scored.
func Actual(topOutcome float64, bottomOutcome float64) float64 {
	sum := topOutcome + bottomOutcome
	if sum == 0 {
		return 0.5
	}
	return math.Min(1, math.Max(0, topOutcome/sum))
}

// Delta returns the team deltas of one event. An event without any outcome
// never moves ratings, whatever the rating gap.
func (c Calculator) Delta(topRating, bottomRating, topOutcome, bottomOutcome float64) (deltaTop float64, deltaBottom float64) {
	if topOutcome+bottomOutcome == 0 {
		return 0, 0
	}
	d := c.K * (Actual(topOutcome, bottomOutcome) - c.Expected(topRating, bottomRating))
	if d == 0 {
		return 0, 0
	}
	return d, -d
}

// PerPlayer returns the delta applied to each member of a team of the given size.
func (c Calculator) PerPlayer(teamDelta float64, teamSize int) float64 {
	if c.Strategy == DivideByTeamSize && teamSize > 0 {
		return teamDelta / float64(teamSize)
	}
	return teamDelta
}

// TeamRating is the mean of the member ratings.
func TeamRating(ratings []float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	return sum / float64(len(ratings))
}
