package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/goserg/jassrating/gen/model"
	"github.com/goserg/jassrating/gen/table"
	"github.com/goserg/jassrating/internal/domain"
	"github.com/goserg/jassrating/internal/storage"
)

func (s *Storage) SaveSeries(ctx context.Context, doc domain.SeriesDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = table.MetricSeries.
		INSERT(table.MetricSeries.AllColumns).
		MODEL(model.MetricSeries{
			Scope:     doc.Scope,
			Metric:    string(doc.Metric),
			Document:  string(data),
			UpdatedAt: time.Now().UTC(),
		}).
		ON_CONFLICT(table.MetricSeries.Scope, table.MetricSeries.Metric).
		DO_UPDATE(sqlite.SET(
			table.MetricSeries.Document.SET(table.MetricSeries.EXCLUDED.Document),
			table.MetricSeries.UpdatedAt.SET(table.MetricSeries.EXCLUDED.UpdatedAt),
		)).
		ExecContext(ctx, s.db)
	return err
}

func (s *Storage) GetSeries(ctx context.Context, scope string, metric domain.Metric) (domain.SeriesDocument, error) {
	var row model.MetricSeries
	err := table.MetricSeries.
		SELECT(table.MetricSeries.AllColumns).
		WHERE(table.MetricSeries.Scope.EQ(sqlite.String(scope)).
			AND(table.MetricSeries.Metric.EQ(sqlite.String(string(metric))))).
		QueryContext(ctx, s.db, &row)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.SeriesDocument{}, storage.ErrNotFound
		}
		return domain.SeriesDocument{}, err
	}
	var doc domain.SeriesDocument
	err = json.Unmarshal([]byte(row.Document), &doc)
	if err != nil {
		return domain.SeriesDocument{}, err
	}
	return doc, nil
}

func (s *Storage) DeleteSeries(ctx context.Context, scope string) error {
	_, err := table.MetricSeries.
		DELETE().
		WHERE(table.MetricSeries.Scope.EQ(sqlite.String(scope))).
		ExecContext(ctx, s.db)
	return err
}
