package sqlite

import (
	"context"
	"database/sql"

	"github.com/goserg/jassrating/internal/migrate"
	"github.com/goserg/jassrating/internal/storage"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// insertChunk bounds the rows of one multi-row INSERT to stay under the
// sqlite bound-variable limit.
const insertChunk = 50

type Storage struct {
	db  *sql.DB
	log *logrus.Entry
}

var (
	_ storage.SourceStorage = (*Storage)(nil)
	_ storage.PlayerStorage = (*Storage)(nil)
	_ storage.LedgerStorage = (*Storage)(nil)
	_ storage.SeriesStorage = (*Storage)(nil)
	_ storage.RunStorage    = (*Storage)(nil)
)

func New(l *logrus.Logger, fileName string) (*Storage, error) {
	log := l.WithField("from", "storage")
	db, err := sql.Open("sqlite3", buildSource(fileName))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	err = db.Ping()
	if err != nil {
		return nil, err
	}
	err = migrate.Up(db)
	if err != nil {
		return nil, err
	}
	log.WithField("file", fileName).Info("storage connected")
	return &Storage{
		db:  db,
		log: log,
	}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func buildSource(fileName string) string {
	return "file:" + fileName + "?cache=shared&_foreign_keys=on"
}

// inTx runs fn in one transaction. fn must use tx only; the pool holds a single connection.
func (s *Storage) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			s.log.WithError(rerr).Error("rollback")
		}
		return err
	}
	return tx.Commit()
}

func chunks[T any](rows []T, size int) [][]T {
	var out [][]T
	for lo := 0; lo < len(rows); lo += size {
		out = append(out, rows[lo:min(lo+size, len(rows))])
	}
	return out
}
