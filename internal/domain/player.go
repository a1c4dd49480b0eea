package domain

import (
	"time"
)

type Player struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// PlayerRatingState is the running rating of one player during a replay.
type PlayerRatingState struct {
	PlayerID    string
	Rating      float64
	GamesPlayed int
}

// Standing is a current rating joined with the registry entry, ranked within a scope.
type Standing struct {
	Player      Player
	Rating      float64
	GamesPlayed int
	Rank        int
}
