package domain

import "time"

type SessionRecord struct {
	ID           string        `json:"id"`
	GroupID      string        `json:"groupId"`
	CompletedAt  time.Time     `json:"completedAt"`
	Participants []string      `json:"participants"`
	Games        []SessionGame `json:"games"`
}

type SessionGame struct {
	Number   int        `json:"number"`
	PlayedAt *time.Time `json:"playedAt,omitempty"`
	Top      TeamResult `json:"top"`
	Bottom   TeamResult `json:"bottom"`
}

type TournamentRecord struct {
	ID          string            `json:"id"`
	GroupID     string            `json:"groupId"`
	Name        string            `json:"name"`
	CompletedAt time.Time         `json:"completedAt"`
	Rounds      []TournamentRound `json:"rounds"`
	Aggregate   []PlayerAggregate `json:"aggregate,omitempty"`
}

// TournamentRound carries explicit team tags because pairings change from
// round to round.
type TournamentRound struct {
	Number      int        `json:"number"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Tags        []TeamTag  `json:"tags"`
	Top         TeamScore  `json:"top"`
	Bottom      TeamScore  `json:"bottom"`
}

type TeamTag struct {
	PlayerID string `json:"playerId"`
	Team     string `json:"team"`
}

// Tally is a for/against pair of rare event occurrences.
type Tally struct {
	For     int `json:"for"`
	Against int `json:"against"`
}

// PlayerAggregate is a pre-aggregated per-player result stored on a tournament.
type PlayerAggregate struct {
	PlayerID       string   `json:"playerId"`
	StrikesFor     float64  `json:"strikesFor"`
	StrikesAgainst float64  `json:"strikesAgainst"`
	PointsFor      *float64 `json:"pointsFor,omitempty"`
	PointsAgainst  *float64 `json:"pointsAgainst,omitempty"`
	Capot          Tally    `json:"capot"`
	Shutout        Tally    `json:"shutout"`
	CounterCapot   Tally    `json:"counterCapot"`
}
