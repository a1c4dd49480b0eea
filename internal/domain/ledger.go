package domain

import (
	"time"

	"github.com/google/uuid"
)

// RatingHistoryEntry is the append-only ledger row for one player in one event.
type RatingHistoryEntry struct {
	PlayerID    string
	EventID     string
	Seq         int
	Parent      ParentRef
	GroupID     string
	Number      int
	RatingAfter float64
	Delta       float64
	GamesPlayed int
	OccurredAt  time.Time
}

// RatingBefore is the rating the player had when the event started.
func (e RatingHistoryEntry) RatingBefore() float64 {
	return e.RatingAfter - e.Delta
}

// ParentSnapshot is the per-player rating summary attached to a session or tournament.
type ParentSnapshot struct {
	Parent      ParentRef
	PlayerID    string
	Rating      float64
	RatingDelta float64
	GamesPlayed int
	OccurredAt  time.Time
	// Seq is the sequence number of the player's last event in the parent.
	Seq int
}

type RunStatus string

const (
	RunRunning    RunStatus = "running"
	RunComplete   RunStatus = "complete"
	RunIncomplete RunStatus = "incomplete"
)

type RebuildRun struct {
	ID           uuid.UUID
	Scope        string
	Status       RunStatus
	StartedAt    time.Time
	FinishedAt   *time.Time
	Checkpoint   string
	ParentsDone  int
	ParentsTotal int
}
