package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/goserg/jassrating/gen/model"
	"github.com/goserg/jassrating/gen/table"
	"github.com/goserg/jassrating/internal/domain"
	"github.com/goserg/jassrating/internal/storage"
)

func (s *Storage) ResetScope(ctx context.Context, scope string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := table.ParentSnapshots.
			DELETE().
			WHERE(table.ParentSnapshots.Scope.EQ(sqlite.String(scope))).
			ExecContext(ctx, tx)
		if err != nil {
			return err
		}
		_, err = table.RatingHistory.
			DELETE().
			WHERE(table.RatingHistory.Scope.EQ(sqlite.String(scope))).
			ExecContext(ctx, tx)
		if err != nil {
			return err
		}
		_, err = table.PlayerRatings.
			DELETE().
			WHERE(table.PlayerRatings.Scope.EQ(sqlite.String(scope))).
			ExecContext(ctx, tx)
		return err
	})
}

func (s *Storage) AppendBatch(ctx context.Context, scope string, entries []domain.RatingHistoryEntry, snapshots []domain.ParentSnapshot) error {
	history := make([]model.RatingHistory, 0, len(entries))
	for _, e := range entries {
		history = append(history, convertHistoryFromDomain(scope, e))
	}
	snaps := make([]model.ParentSnapshots, 0, len(snapshots))
	for _, snap := range snapshots {
		snaps = append(snaps, convertSnapshotFromDomain(scope, snap))
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, chunk := range chunks(history, insertChunk) {
			_, err := table.RatingHistory.
				INSERT(table.RatingHistory.AllColumns).
				MODELS(chunk).
				ExecContext(ctx, tx)
			if err != nil {
				return err
			}
		}
		for _, chunk := range chunks(snaps, insertChunk) {
			_, err := table.ParentSnapshots.
				INSERT(table.ParentSnapshots.AllColumns).
				MODELS(chunk).
				ExecContext(ctx, tx)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveRatings replaces the current ratings of a scope. Order of states is kept.
func (s *Storage) SaveRatings(ctx context.Context, scope string, states []domain.PlayerRatingState) error {
	rows := make([]model.PlayerRatings, 0, len(states))
	for i, state := range states {
		rows = append(rows, model.PlayerRatings{
			Scope:       scope,
			PlayerID:    state.PlayerID,
			Rating:      state.Rating,
			GamesPlayed: int32(state.GamesPlayed),
			Position:    int32(i),
		})
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := table.PlayerRatings.
			DELETE().
			WHERE(table.PlayerRatings.Scope.EQ(sqlite.String(scope))).
			ExecContext(ctx, tx)
		if err != nil {
			return err
		}
		for _, chunk := range chunks(rows, insertChunk) {
			_, err = table.PlayerRatings.
				INSERT(table.PlayerRatings.AllColumns).
				MODELS(chunk).
				ExecContext(ctx, tx)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Storage) ListHistory(ctx context.Context, scope string, playerID string) ([]domain.RatingHistoryEntry, error) {
	cond := table.RatingHistory.Scope.EQ(sqlite.String(scope))
	if playerID != "" {
		cond = cond.AND(table.RatingHistory.PlayerID.EQ(sqlite.String(playerID)))
	}
	var rows []model.RatingHistory
	err := table.RatingHistory.
		SELECT(table.RatingHistory.AllColumns).
		WHERE(cond).
		ORDER_BY(table.RatingHistory.Seq.ASC(), table.RatingHistory.PlayerID.ASC()).
		QueryContext(ctx, s.db, &rows)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.RatingHistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, convertHistoryToDomain(row))
	}
	return entries, nil
}

func (s *Storage) ListSnapshots(ctx context.Context, scope string, playerID string) ([]domain.ParentSnapshot, error) {
	cond := table.ParentSnapshots.Scope.EQ(sqlite.String(scope))
	if playerID != "" {
		cond = cond.AND(table.ParentSnapshots.PlayerID.EQ(sqlite.String(playerID)))
	}
	var rows []model.ParentSnapshots
	err := table.ParentSnapshots.
		SELECT(table.ParentSnapshots.AllColumns).
		WHERE(cond).
		ORDER_BY(table.ParentSnapshots.Seq.ASC(), table.ParentSnapshots.PlayerID.ASC()).
		QueryContext(ctx, s.db, &rows)
	if err != nil {
		return nil, err
	}
	snapshots := make([]domain.ParentSnapshot, 0, len(rows))
	for _, row := range rows {
		snapshots = append(snapshots, convertSnapshotToDomain(row))
	}
	return snapshots, nil
}

func (s *Storage) ListRatings(ctx context.Context, scope string) ([]domain.PlayerRatingState, error) {
	var rows []model.PlayerRatings
	err := table.PlayerRatings.
		SELECT(table.PlayerRatings.AllColumns).
		WHERE(table.PlayerRatings.Scope.EQ(sqlite.String(scope))).
		ORDER_BY(table.PlayerRatings.Position.ASC()).
		QueryContext(ctx, s.db, &rows)
	if err != nil {
		return nil, err
	}
	states := make([]domain.PlayerRatingState, 0, len(rows))
	for _, row := range rows {
		states = append(states, domain.PlayerRatingState{
			PlayerID:    row.PlayerID,
			Rating:      row.Rating,
			GamesPlayed: int(row.GamesPlayed),
		})
	}
	return states, nil
}

func (s *Storage) GetRating(ctx context.Context, scope string, playerID string) (domain.PlayerRatingState, error) {
	var row model.PlayerRatings
	err := table.PlayerRatings.
		SELECT(table.PlayerRatings.AllColumns).
		WHERE(table.PlayerRatings.Scope.EQ(sqlite.String(scope)).
			AND(table.PlayerRatings.PlayerID.EQ(sqlite.String(playerID)))).
		QueryContext(ctx, s.db, &row)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.PlayerRatingState{}, storage.ErrNotFound
		}
		return domain.PlayerRatingState{}, err
	}
	return domain.PlayerRatingState{
		PlayerID:    row.PlayerID,
		Rating:      row.Rating,
		GamesPlayed: int(row.GamesPlayed),
	}, nil
}
