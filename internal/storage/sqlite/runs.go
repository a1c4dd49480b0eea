package sqlite

import (
	"context"
	"errors"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/goserg/jassrating/gen/model"
	"github.com/goserg/jassrating/gen/table"
	"github.com/goserg/jassrating/internal/domain"
	"github.com/goserg/jassrating/internal/storage"
)

func (s *Storage) StartRun(ctx context.Context, run domain.RebuildRun) error {
	_, err := table.RebuildRuns.
		INSERT(table.RebuildRuns.AllColumns).
		MODEL(convertRunFromDomain(run)).
		ExecContext(ctx, s.db)
	return err
}

func (s *Storage) UpdateRun(ctx context.Context, run domain.RebuildRun) error {
	_, err := table.RebuildRuns.
		UPDATE(table.RebuildRuns.MutableColumns).
		MODEL(convertRunFromDomain(run)).
		WHERE(table.RebuildRuns.ID.EQ(sqlite.String(run.ID.String()))).
		ExecContext(ctx, s.db)
	return err
}

// LastRun returns the most recently started rebuild of a scope.
func (s *Storage) LastRun(ctx context.Context, scope string) (domain.RebuildRun, error) {
	var row model.RebuildRuns
	err := table.RebuildRuns.
		SELECT(table.RebuildRuns.AllColumns).
		WHERE(table.RebuildRuns.Scope.EQ(sqlite.String(scope))).
		ORDER_BY(table.RebuildRuns.StartedAt.DESC(), table.RebuildRuns.ID.DESC()).
		LIMIT(1).
		QueryContext(ctx, s.db, &row)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.RebuildRun{}, storage.ErrNotFound
		}
		return domain.RebuildRun{}, err
	}
	return convertRunToDomain(row)
}
