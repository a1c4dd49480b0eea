package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/goserg/jassrating/internal/audit"
	"github.com/goserg/jassrating/internal/cache/mem"
	"github.com/goserg/jassrating/internal/domain"
	"github.com/goserg/jassrating/internal/rebuild"
	"github.com/goserg/jassrating/internal/storage"
	"github.com/sirupsen/logrus"
)

// AllScopes asks for every group scope plus the global one.
const AllScopes = "all"

var ErrUnknownPlayer = errors.New("unknown player")

// Storage is everything the service reads and writes.
type Storage interface {
	storage.SourceStorage
	storage.PlayerStorage
	storage.LedgerStorage
	storage.SeriesStorage
	storage.RunStorage
}

type Service struct {
	storage   Storage
	rebuilder *rebuild.Orchestrator
	auditor   *audit.Auditor
	cache     *mem.Cache
	log       *logrus.Entry
}

func New(s Storage, rebuilder *rebuild.Orchestrator, auditor *audit.Auditor, cache *mem.Cache, l *logrus.Logger) *Service {
	return &Service{
		storage:   s,
		rebuilder: rebuilder,
		auditor:   auditor,
		cache:     cache,
		log:       l.WithField("from", "service"),
	}
}

// LoadPlayers refreshes the player registry cache from storage.
func (s *Service) LoadPlayers(ctx context.Context) error {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return err
	}
	s.cache.Update(players)
	return nil
}

func (s *Service) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	if !s.cache.Valid() {
		if err := s.LoadPlayers(ctx); err != nil {
			return nil, err
		}
	}
	return s.cache.Players(), nil
}

// ResolvePlayer accepts a player id or a registered name.
func (s *Service) ResolvePlayer(ctx context.Context, idOrName string) (string, error) {
	if !s.cache.Valid() {
		if err := s.LoadPlayers(ctx); err != nil {
			return "", err
		}
	}
	if _, ok := s.cache.GetPlayer(idOrName); ok {
		return idOrName, nil
	}
	if p, ok := s.cache.GetPlayerByName(idOrName); ok {
		return p.ID, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownPlayer, idOrName)
}

// Scopes returns every group id followed by the global scope.
func (s *Service) Scopes(ctx context.Context) ([]string, error) {
	groups, err := s.storage.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	return append(groups, domain.GlobalScope), nil
}

// Standings ranks the current ratings of a scope. Equal ratings share a rank.
func (s *Service) Standings(ctx context.Context, scope string) ([]domain.Standing, error) {
	ratings, err := s.storage.ListRatings(ctx, scope)
	if err != nil {
		return nil, err
	}
	if !s.cache.Valid() {
		if err := s.LoadPlayers(ctx); err != nil {
			return nil, err
		}
	}
	standings := make([]domain.Standing, 0, len(ratings))
	for _, r := range ratings {
		player, ok := s.cache.GetPlayer(r.PlayerID)
		if !ok {
			player = domain.Player{ID: r.PlayerID, Name: r.PlayerID}
		}
		standings = append(standings, domain.Standing{
			Player:      player,
			Rating:      r.Rating,
			GamesPlayed: r.GamesPlayed,
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Rating > standings[j].Rating
	})
	for i := range standings {
		if i > 0 && standings[i].Rating == standings[i-1].Rating {
			standings[i].Rank = standings[i-1].Rank
			continue
		}
		standings[i].Rank = i + 1
	}
	return standings, nil
}

func (s *Service) History(ctx context.Context, scope string, playerID string) ([]domain.RatingHistoryEntry, error) {
	return s.storage.ListHistory(ctx, scope, playerID)
}

func (s *Service) Snapshots(ctx context.Context, scope string, playerID string) ([]domain.ParentSnapshot, error) {
	return s.storage.ListSnapshots(ctx, scope, playerID)
}

func (s *Service) Series(ctx context.Context, scope string, metric domain.Metric) (domain.SeriesDocument, error) {
	return s.storage.GetSeries(ctx, scope, metric)
}

// Rebuild rebuilds one scope, or every scope for AllScopes. A rebuild that
// fails after it started writing still returns its report.
func (s *Service) Rebuild(ctx context.Context, scope string, opts rebuild.Options) ([]rebuild.Report, error) {
	if scope != AllScopes {
		r, err := s.rebuilder.Rebuild(ctx, scope, opts)
		if err != nil && r.Scope == "" {
			return nil, err
		}
		return []rebuild.Report{r}, err
	}
	scopes, err := s.Scopes(ctx)
	if err != nil {
		return nil, err
	}
	return s.rebuilder.RebuildMany(ctx, scopes, opts)
}

// Audit audits one player, or every player of the scope when playerID is empty.
func (s *Service) Audit(ctx context.Context, scope string, playerID string) ([]audit.Report, error) {
	if !s.cache.Valid() {
		if err := s.LoadPlayers(ctx); err != nil {
			return nil, err
		}
	}
	if playerID == "" {
		return s.auditor.AuditScope(ctx, scope)
	}
	r, err := s.auditor.Audit(ctx, scope, playerID)
	if err != nil {
		return nil, err
	}
	return []audit.Report{r}, nil
}

const exportVersion = 1

type export struct {
	Version     int                       `json:"version"`
	Players     []domain.Player           `json:"players"`
	Sessions    []domain.SessionRecord    `json:"sessions"`
	Tournaments []domain.TournamentRecord `json:"tournaments"`
}

// Export writes the players and the raw records of a scope as a versioned JSON document.
func (s *Service) Export(ctx context.Context, scope string) ([]byte, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := s.storage.ListSessions(ctx, scope)
	if err != nil {
		return nil, err
	}
	tournaments, err := s.storage.ListTournaments(ctx, scope)
	if err != nil {
		return nil, err
	}
	exportData := export{
		Version:     exportVersion,
		Players:     players,
		Sessions:    sessions,
		Tournaments: tournaments,
	}
	data, err := json.MarshalIndent(exportData, "", "  ")
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Import stores the raw records of an exported document. Derived state is
// left untouched until the next rebuild.
func (s *Service) Import(ctx context.Context, data []byte) error {
	var importData export
	err := json.Unmarshal(data, &importData)
	if err != nil {
		return err
	}
	if importData.Version != exportVersion {
		return errors.New("invalid export file version")
	}
	err = s.storage.ImportPlayers(ctx, importData.Players)
	if err != nil {
		return err
	}
	err = s.storage.ImportSessions(ctx, importData.Sessions)
	if err != nil {
		return err
	}
	err = s.storage.ImportTournaments(ctx, importData.Tournaments)
	if err != nil {
		return err
	}
	s.cache.Invalidate()
	s.log.WithFields(logrus.Fields{
		"players":     len(importData.Players),
		"sessions":    len(importData.Sessions),
		"tournaments": len(importData.Tournaments),
	}).Info("records imported")
	return nil
}

func (s *Service) RebuildState(scope string) rebuild.State {
	return s.rebuilder.State(scope)
}
