package storage

import (
	"context"

	"github.com/goserg/jassrating/internal/domain"
)

// SourceStorage reads and imports the immutable raw records.
// scope is a group id or domain.GlobalScope.
type SourceStorage interface {
	ListSessions(ctx context.Context, scope string) ([]domain.SessionRecord, error)
	ListTournaments(ctx context.Context, scope string) ([]domain.TournamentRecord, error)
	ListGroups(ctx context.Context) ([]string, error)

	ImportSessions(ctx context.Context, sessions []domain.SessionRecord) error
	ImportTournaments(ctx context.Context, tournaments []domain.TournamentRecord) error
}

type PlayerStorage interface {
	ListPlayers(ctx context.Context) ([]domain.Player, error)
	GetPlayer(ctx context.Context, id string) (domain.Player, error)

	ImportPlayers(ctx context.Context, players []domain.Player) error
}

// LedgerStorage holds the derived rating state of a scope: the append-only
// ledger, the per-parent snapshots and the current rating of every player.
type LedgerStorage interface {
	// ResetScope deletes the ledger, the snapshots and the current ratings of a scope.
	ResetScope(ctx context.Context, scope string) error
	// AppendBatch writes ledger entries and then the snapshots depending on them, atomically.
	AppendBatch(ctx context.Context, scope string, entries []domain.RatingHistoryEntry, snapshots []domain.ParentSnapshot) error
	SaveRatings(ctx context.Context, scope string, states []domain.PlayerRatingState) error

	// ListHistory returns the ledger in ledger order; an empty playerID lists every player.
	ListHistory(ctx context.Context, scope string, playerID string) ([]domain.RatingHistoryEntry, error)
	// ListSnapshots returns snapshots in chronological order; an empty playerID lists every player.
	ListSnapshots(ctx context.Context, scope string, playerID string) ([]domain.ParentSnapshot, error)
	ListRatings(ctx context.Context, scope string) ([]domain.PlayerRatingState, error)
	GetRating(ctx context.Context, scope string, playerID string) (domain.PlayerRatingState, error)
}

type SeriesStorage interface {
	SaveSeries(ctx context.Context, doc domain.SeriesDocument) error
	GetSeries(ctx context.Context, scope string, metric domain.Metric) (domain.SeriesDocument, error)
	DeleteSeries(ctx context.Context, scope string) error
}

// RunStorage records rebuild runs so an interrupted rebuild stays detectable.
type RunStorage interface {
	StartRun(ctx context.Context, run domain.RebuildRun) error
	UpdateRun(ctx context.Context, run domain.RebuildRun) error
	LastRun(ctx context.Context, scope string) (domain.RebuildRun, error)
}
