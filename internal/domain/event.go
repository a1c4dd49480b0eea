package domain

import (
	"time"
)

// GlobalScope replays every group as a single sequence.
const GlobalScope = "global"

type Kind string

const (
	KindSessionGame     Kind = "session_game"
	KindTournamentRound Kind = "tournament_round"
)

type ParentKind string

const (
	ParentSession    ParentKind = "session"
	ParentTournament ParentKind = "tournament"
)

// ParentRef identifies the session or tournament that owns an event.
type ParentRef struct {
	Kind ParentKind `json:"kind"`
	ID   string     `json:"id"`
}

func (p ParentRef) String() string {
	return string(p.Kind) + ":" + p.ID
}

type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
)

func (s Side) Opposite() Side {
	if s == SideTop {
		return SideBottom
	}
	return SideTop
}

// Strikes is the strike weight one team collected, split by category.
type Strikes struct {
	Win          float64 `json:"win"`
	Hill         float64 `json:"hill"`
	Capot        float64 `json:"capot"`
	CounterCapot float64 `json:"counterCapot"`
	Shutout      float64 `json:"shutout"`
}

func (s Strikes) Total() float64 {
	return s.Win + s.Hill + s.Capot + s.CounterCapot + s.Shutout
}

func (s Strikes) Negative() bool {
	return s.Win < 0 || s.Hill < 0 || s.Capot < 0 || s.CounterCapot < 0 || s.Shutout < 0
}

// RareCounts holds raw occurrence counts of the rare sub-events.
type RareCounts struct {
	Capot        int `json:"capot"`
	Shutout      int `json:"shutout"`
	CounterCapot int `json:"counterCapot"`
}

// TeamScore is the outcome of one team in one game or round.
// Counts and Points are optional and only used for statistics.
type TeamScore struct {
	Strikes Strikes     `json:"strikes"`
	Counts  *RareCounts `json:"counts,omitempty"`
	Points  *float64    `json:"points,omitempty"`
}

type TeamResult struct {
	Players []string  `json:"players"`
	Score   TeamScore `json:"score"`
}

// GameEvent is one completed game of a session or one tournament round,
// reduced to the shape every downstream fold works on.
type GameEvent struct {
	ID         string
	Kind       Kind
	OccurredAt time.Time
	GroupID    string
	Parent     ParentRef
	// Number is the game number inside a session or the round number of a tournament.
	Number int
	// Position is the index of the event inside its parent, used as tie-break offset.
	Position int
	// Seq is the index of the event in the ordered sequence of its scope.
	Seq    int
	Top    TeamResult
	Bottom TeamResult
}

func (e GameEvent) Team(side Side) TeamResult {
	if side == SideTop {
		return e.Top
	}
	return e.Bottom
}

// Totals returns the outcome totals (strike sums) of both teams.
func (e GameEvent) Totals() (top float64, bottom float64) {
	return e.Top.Score.Strikes.Total(), e.Bottom.Score.Strikes.Total()
}

// Participants returns top players followed by bottom players.
func (e GameEvent) Participants() []string {
	players := make([]string, 0, len(e.Top.Players)+len(e.Bottom.Players))
	players = append(players, e.Top.Players...)
	return append(players, e.Bottom.Players...)
}

func (e GameEvent) SideOf(playerID string) (Side, bool) {
	for _, id := range e.Top.Players {
		if id == playerID {
			return SideTop, true
		}
	}
	for _, id := range e.Bottom.Players {
		if id == playerID {
			return SideBottom, true
		}
	}
	return "", false
}

// Parent is one point of the shared timeline: a session or a tournament with
// the events it produced.
type Parent struct {
	Ref        ParentRef
	GroupID    string
	Label      string
	OccurredAt time.Time
	Events     []GameEvent
	// Aggregate is the per-player total stored on a tournament, if any.
	Aggregate []PlayerAggregate
	// Complete is false when at least one of the parent's sub-results was skipped.
	Complete bool
}

type SkipReason string

const (
	SkipMalformed SkipReason = "malformed"
	SkipAmbiguous SkipReason = "ambiguous_team"
)

// Skip reports a sub-result that could not be turned into a GameEvent.
type Skip struct {
	Parent   ParentRef
	Number   int
	Position int
	Reason   SkipReason
	Detail   string
}
