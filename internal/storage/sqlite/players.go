package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-jet/jet/v2/qrm"
	"github.com/go-jet/jet/v2/sqlite"
	"github.com/goserg/jassrating/gen/model"
	"github.com/goserg/jassrating/gen/table"
	"github.com/goserg/jassrating/internal/domain"
	"github.com/goserg/jassrating/internal/storage"
)

func (s *Storage) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	var players []model.Players
	err := table.Players.
		SELECT(table.Players.AllColumns).
		ORDER_BY(table.Players.Name.ASC()).
		QueryContext(ctx, s.db, &players)
	if err != nil {
		return nil, err
	}
	return convertPlayersToDomain(players), nil
}

func (s *Storage) GetPlayer(ctx context.Context, id string) (domain.Player, error) {
	var player model.Players
	err := table.Players.
		SELECT(table.Players.AllColumns).
		WHERE(table.Players.ID.EQ(sqlite.String(id))).
		QueryContext(ctx, s.db, &player)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return domain.Player{}, storage.ErrNotFound
		}
		return domain.Player{}, err
	}
	return convertPlayerToDomain(player), nil
}

func (s *Storage) ImportPlayers(ctx context.Context, players []domain.Player) error {
	if len(players) == 0 {
		return nil
	}
	rows := make([]model.Players, 0, len(players))
	for _, p := range players {
		rows = append(rows, convertPlayerFromDomain(p))
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, chunk := range chunks(rows, insertChunk) {
			_, err := table.Players.
				INSERT(table.Players.AllColumns).
				MODELS(chunk).
				ON_CONFLICT(table.Players.ID).
				DO_UPDATE(sqlite.SET(table.Players.Name.SET(table.Players.EXCLUDED.Name))).
				ExecContext(ctx, tx)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func convertPlayersToDomain(players []model.Players) []domain.Player {
	converted := make([]domain.Player, 0, len(players))
	for _, player := range players {
		converted = append(converted, convertPlayerToDomain(player))
	}
	return converted
}

func convertPlayerToDomain(player model.Players) domain.Player {
	return domain.Player{
		ID:           player.ID,
		Name:         player.Name,
		RegisteredAt: player.CreatedAt,
	}
}

func convertPlayerFromDomain(player domain.Player) model.Players {
	registered := player.RegisteredAt
	if registered.IsZero() {
		registered = time.Now()
	}
	return model.Players{
		ID:        player.ID,
		Name:      player.Name,
		CreatedAt: registered.UTC(),
	}
}
