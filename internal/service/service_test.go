package service

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/goserg/jassrating/internal/audit"
	"github.com/goserg/jassrating/internal/cache/mem"
	"github.com/goserg/jassrating/internal/domain"
	"github.com/goserg/jassrating/internal/elo"
	"github.com/goserg/jassrating/internal/rebuild"
	"github.com/goserg/jassrating/internal/storage/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*Service, *sqlite.Storage) {
	t.Helper()
	l := logrus.New()
	l.SetOutput(io.Discard)
	s, err := sqlite.New(l, filepath.Join(t.TempDir(), "rating.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	calc, err := elo.New(15, 1000, elo.ApplyFull)
	require.NoError(t, err)
	cache := mem.New()
	o := rebuild.New(rebuild.Config{Calculator: calc, Baseline: 100, BatchSize: 25}, s, s, s, s, l, nil)
	a := audit.New(s, s, cache, 100, l, nil)
	return New(s, o, a, cache, l), s
}

func team(win float64, players ...string) domain.TeamResult {
	return domain.TeamResult{Players: players, Score: domain.TeamScore{Strikes: domain.Strikes{Win: win}}}
}

func exportDocument(t *testing.T) []byte {
	t.Helper()
	data, err := json.Marshal(export{
		Version: exportVersion,
		Players: []domain.Player{
			{ID: "a", Name: "Anna", RegisteredAt: day},
			{ID: "b", Name: "Bruno", RegisteredAt: day},
			{ID: "c", Name: "Carla", RegisteredAt: day},
			{ID: "d", Name: "Dario", RegisteredAt: day},
		},
		Sessions: []domain.SessionRecord{
			{ID: "s1", GroupID: "g1", CompletedAt: day, Games: []domain.SessionGame{
				{Number: 1, Top: team(5, "a", "b"), Bottom: team(3, "c", "d")},
			}},
			{ID: "s2", GroupID: "g2", CompletedAt: day, Games: []domain.SessionGame{
				{Number: 1, Top: team(2, "a"), Bottom: team(2, "c")},
			}},
		},
	})
	require.NoError(t, err)
	return data
}

func TestService_ImportRebuildStandings(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	require.NoError(t, svc.Import(ctx, exportDocument(t)))

	scopes, err := svc.Scopes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"g1", "g2", domain.GlobalScope}, scopes)

	reports, err := svc.Rebuild(ctx, AllScopes, rebuild.Options{Confirm: true})
	require.NoError(t, err)
	assert.Len(t, reports, 3)

	standings, err := svc.Standings(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, standings, 4)
	assert.ElementsMatch(t, []string{"Anna", "Bruno"}, []string{standings[0].Player.Name, standings[1].Player.Name})
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, 1, standings[1].Rank)
	assert.Equal(t, 3, standings[2].Rank)
	assert.Equal(t, 3, standings[3].Rank)
	assert.InDelta(t, 101.875, standings[0].Rating, 1e-9)

	doc, err := svc.Series(ctx, "g1", domain.MetricStrikes)
	require.NoError(t, err)
	assert.Equal(t, []string{"01.03.2024"}, doc.Labels)

	audits, err := svc.Audit(ctx, domain.GlobalScope, "")
	require.NoError(t, err)
	assert.Len(t, audits, 4)
	for _, r := range audits {
		assert.True(t, r.Consistent())
		assert.NotEqual(t, r.PlayerID, r.PlayerName)
	}
}

func TestService_RebuildSingleScopeDryRun(t *testing.T) {
	ctx := context.Background()
	svc, s := newService(t)
	require.NoError(t, svc.Import(ctx, exportDocument(t)))

	reports, err := svc.Rebuild(ctx, "g2", rebuild.Options{})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.True(t, reports[0].DryRun)

	ratings, err := s.ListRatings(ctx, "g2")
	require.NoError(t, err)
	assert.Empty(t, ratings)
	assert.Equal(t, rebuild.StateIdle, svc.RebuildState("g2"))
}

func TestService_ResolvePlayer(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	require.NoError(t, svc.Import(ctx, exportDocument(t)))

	id, err := svc.ResolvePlayer(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", id)

	id, err = svc.ResolvePlayer(ctx, "  bruno ")
	require.NoError(t, err)
	assert.Equal(t, "b", id)

	_, err = svc.ResolvePlayer(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUnknownPlayer)

	players, err := svc.ListPlayers(ctx)
	require.NoError(t, err)
	assert.Len(t, players, 4)
}

func TestService_ExportImport(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	require.NoError(t, svc.Import(ctx, exportDocument(t)))

	data, err := svc.Export(ctx, "g1")
	require.NoError(t, err)
	var got export
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, exportVersion, got.Version)
	assert.Len(t, got.Players, 4)
	require.Len(t, got.Sessions, 1)
	assert.Equal(t, "s1", got.Sessions[0].ID)

	other, _ := newService(t)
	require.NoError(t, other.Import(ctx, data))
	again, err := other.Export(ctx, "g1")
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestService_ImportRejectsVersion(t *testing.T) {
	svc, _ := newService(t)
	err := svc.Import(context.Background(), []byte(`{"version": 2}`))
	assert.Error(t, err)
}

// cancelingLedger cancels the rebuild once a batch is persisted.
type cancelingLedger struct {
	*sqlite.Storage
	cancel context.CancelFunc
}

func (c *cancelingLedger) AppendBatch(ctx context.Context, scope string, entries []domain.RatingHistoryEntry, snapshots []domain.ParentSnapshot) error {
	defer c.cancel()
	return c.Storage.AppendBatch(ctx, scope, entries, snapshots)
}

func TestService_CanceledRebuildKeepsReport(t *testing.T) {
	l := logrus.New()
	l.SetOutput(io.Discard)
	s, err := sqlite.New(l, filepath.Join(t.TempDir(), "rating.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	calc, err := elo.New(15, 1000, elo.ApplyFull)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	o := rebuild.New(rebuild.Config{Calculator: calc, Baseline: 100, BatchSize: 1}, s, &cancelingLedger{Storage: s, cancel: cancel}, s, s, l, nil)
	cache := mem.New()
	svc := New(s, o, audit.New(s, s, cache, 100, l, nil), cache, l)
	require.NoError(t, svc.Import(ctx, exportDocument(t)))

	reports, err := svc.Rebuild(ctx, "g1", rebuild.Options{Confirm: true})
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, reports, 1)
	assert.Equal(t, "g1", reports[0].Scope)
	assert.NotEqual(t, uuid.Nil, reports[0].RunID)

	run, err := s.LastRun(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, reports[0].RunID, run.ID)
	assert.Equal(t, domain.RunIncomplete, run.Status)

	_, err = svc.Rebuild(context.Background(), "nowhere", rebuild.Options{Confirm: true})
	assert.ErrorIs(t, err, rebuild.ErrNoEvents)
}
