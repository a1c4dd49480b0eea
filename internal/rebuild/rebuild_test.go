package rebuild

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/goserg/jassrating/internal/audit"
	"github.com/goserg/jassrating/internal/domain"
	"github.com/goserg/jassrating/internal/elo"
	"github.com/goserg/jassrating/internal/metrics"
	"github.com/goserg/jassrating/internal/storage"
	"github.com/goserg/jassrating/internal/storage/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newStorage(t *testing.T) *sqlite.Storage {
	t.Helper()
	s, err := sqlite.New(newLogger(), filepath.Join(t.TempDir(), "rating.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newConfig(t *testing.T, batchSize int) Config {
	t.Helper()
	calc, err := elo.New(15, 1000, elo.ApplyFull)
	require.NoError(t, err)
	return Config{Calculator: calc, Baseline: 100, BatchSize: batchSize}
}

func team(win float64, players ...string) domain.TeamResult {
	return domain.TeamResult{Players: players, Score: domain.TeamScore{Strikes: domain.Strikes{Win: win}}}
}

// seed stores three sessions and a tournament in g1 and one session in g2.
// The second game of s2 is malformed.
func seed(t *testing.T, s *sqlite.Storage) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.ImportSessions(ctx, []domain.SessionRecord{
		{ID: "s1", GroupID: "g1", CompletedAt: day, Games: []domain.SessionGame{
			{Number: 1, Top: team(5, "a", "b"), Bottom: team(3, "c", "d")},
		}},
		{ID: "s2", GroupID: "g1", CompletedAt: day.Add(24 * time.Hour), Games: []domain.SessionGame{
			{Number: 1, Top: team(2, "a", "c"), Bottom: team(4, "b", "d")},
			{Number: 2, Top: team(-1, "a", "c"), Bottom: team(1, "b", "d")},
		}},
		{ID: "s3", GroupID: "g1", CompletedAt: day.Add(48 * time.Hour), Games: []domain.SessionGame{
			{Number: 1, Top: team(0, "a", "d"), Bottom: team(0, "b", "c")},
		}},
		{ID: "s4", GroupID: "g2", CompletedAt: day, Games: []domain.SessionGame{
			{Number: 1, Top: team(1, "x"), Bottom: team(2, "y")},
		}},
	}))
	require.NoError(t, s.ImportTournaments(ctx, []domain.TournamentRecord{
		{ID: "t1", GroupID: "g1", Name: "Cup", CompletedAt: day.Add(72 * time.Hour), Rounds: []domain.TournamentRound{
			{Number: 1, Tags: []domain.TeamTag{{PlayerID: "a", Team: "A"}, {PlayerID: "e", Team: "B"}},
				Top: domain.TeamScore{Strikes: domain.Strikes{Win: 3}}, Bottom: domain.TeamScore{Strikes: domain.Strikes{Win: 1}}},
		}},
	}))
}

func TestRebuild_DryRun(t *testing.T) {
	s := newStorage(t)
	seed(t, s)
	o := New(newConfig(t, 25), s, s, s, s, newLogger(), nil)

	for _, opts := range []Options{{DryRun: true}, {}} {
		report, err := o.Rebuild(context.Background(), "g1", opts)
		require.NoError(t, err)
		assert.True(t, report.DryRun)
		assert.Equal(t, 4, report.Parents)
		assert.Equal(t, 4, report.Events)
		assert.Len(t, report.Skipped, 1)
		assert.Len(t, report.Series, len(domain.Metrics))
		assert.NotEmpty(t, report.Ratings)
	}

	history, err := s.ListHistory(context.Background(), "g1", "")
	require.NoError(t, err)
	assert.Empty(t, history)
	_, err = s.LastRun(context.Background(), "g1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRebuild_Confirmed(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)
	seed(t, s)
	o := New(newConfig(t, 2), s, s, s, s, newLogger(), metrics.NewManager(metrics.WithRegistry(prometheus.NewRegistry())))

	report, err := o.Rebuild(ctx, "g1", Options{Confirm: true})
	require.NoError(t, err)
	assert.False(t, report.DryRun)
	assert.Equal(t, 4+4+4+2, report.Entries)

	a, err := s.GetRating(ctx, "g1", "a")
	require.NoError(t, err)
	assert.Equal(t, 4, a.GamesPlayed)

	first, err := s.ListHistory(ctx, "g1", "b")
	require.NoError(t, err)
	require.NotEmpty(t, first)
	assert.InDelta(t, 101.875, first[0].RatingAfter, 1e-9)

	run, err := s.LastRun(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, domain.RunComplete, run.Status)
	assert.Equal(t, 4, run.ParentsDone)
	assert.Equal(t, "tournament:t1", run.Checkpoint)
	assert.NotNil(t, run.FinishedAt)

	doc, err := s.GetSeries(ctx, "g1", domain.MetricStrikes)
	require.NoError(t, err)
	assert.Equal(t, []string{"01.03.2024", "02.03.2024", "03.03.2024", "04.03.2024 Cup"}, doc.Labels)

	auditor := audit.New(s, s, nil, 100, newLogger(), nil)
	reports, err := auditor.AuditScope(ctx, "g1")
	require.NoError(t, err)
	assert.Len(t, reports, 5)
	for _, r := range reports {
		assert.Equal(t, audit.StatusConsistent, r.Status, r.PlayerID)
	}
	assert.Equal(t, StateIdle, o.State("g1"))
}

func TestRebuild_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)
	seed(t, s)
	o := New(newConfig(t, 3), s, s, s, s, newLogger(), nil)

	snapshot := func() ([]domain.RatingHistoryEntry, []domain.ParentSnapshot, []domain.PlayerRatingState, domain.SeriesDocument) {
		_, err := o.Rebuild(ctx, "g1", Options{Confirm: true})
		require.NoError(t, err)
		history, err := s.ListHistory(ctx, "g1", "")
		require.NoError(t, err)
		snaps, err := s.ListSnapshots(ctx, "g1", "")
		require.NoError(t, err)
		ratings, err := s.ListRatings(ctx, "g1")
		require.NoError(t, err)
		doc, err := s.GetSeries(ctx, "g1", domain.MetricCapot)
		require.NoError(t, err)
		return history, snaps, ratings, doc
	}
	h1, s1, r1, d1 := snapshot()
	h2, s2, r2, d2 := snapshot()
	assert.Equal(t, h1, h2)
	assert.Equal(t, s1, s2)
	assert.Equal(t, r1, r2)
	assert.Equal(t, d1, d2)
}

func TestRebuild_NoEventsLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)
	ref := domain.ParentRef{Kind: domain.ParentSession, ID: "old"}
	require.NoError(t, s.AppendBatch(ctx, "g9", []domain.RatingHistoryEntry{
		{PlayerID: "a", EventID: "session:old:1", Parent: ref, RatingAfter: 101, Delta: 1, GamesPlayed: 1, OccurredAt: day},
	}, nil))
	o := New(newConfig(t, 25), s, s, s, s, newLogger(), nil)

	_, err := o.Rebuild(ctx, "g9", Options{Confirm: true})
	assert.ErrorIs(t, err, ErrNoEvents)

	history, err := s.ListHistory(ctx, "g9", "")
	require.NoError(t, err)
	assert.Len(t, history, 1)
	_, err = s.LastRun(ctx, "g9")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

// cancelingLedger cancels the rebuild once the first batch is persisted.
type cancelingLedger struct {
	*sqlite.Storage
	cancel  context.CancelFunc
	batches int
}

func (c *cancelingLedger) AppendBatch(ctx context.Context, scope string, entries []domain.RatingHistoryEntry, snapshots []domain.ParentSnapshot) error {
	err := c.Storage.AppendBatch(ctx, scope, entries, snapshots)
	c.batches++
	c.cancel()
	return err
}

func TestRebuild_CanceledRunIsIncomplete(t *testing.T) {
	s := newStorage(t)
	seed(t, s)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ledger := &cancelingLedger{Storage: s, cancel: cancel}
	o := New(newConfig(t, 1), s, ledger, s, s, newLogger(), nil)

	_, err := o.Rebuild(ctx, "g1", Options{Confirm: true})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, ledger.batches)

	bg := context.Background()
	run, err := s.LastRun(bg, "g1")
	require.NoError(t, err)
	assert.Equal(t, domain.RunIncomplete, run.Status)
	assert.Equal(t, 1, run.ParentsDone)
	assert.Equal(t, "session:s1", run.Checkpoint)

	auditor := audit.New(s, s, nil, 100, newLogger(), nil)
	report, err := auditor.Audit(bg, "g1", "a")
	require.NoError(t, err)
	assert.Equal(t, audit.StatusUnknown, report.Status)
	assert.Equal(t, audit.RemedyFullRebuild, report.Remedy)

	// a later complete rebuild replaces the partial state
	o = New(newConfig(t, 1), s, s, s, s, newLogger(), nil)
	_, err = o.Rebuild(bg, "g1", Options{Confirm: true})
	require.NoError(t, err)
	report, err = auditor.Audit(bg, "g1", "a")
	require.NoError(t, err)
	assert.Equal(t, audit.StatusConsistent, report.Status)
}

// blockingSources holds ListSessions until release is closed.
type blockingSources struct {
	*sqlite.Storage
	entered chan struct{}
	release chan struct{}
}

func (b *blockingSources) ListSessions(ctx context.Context, scope string) ([]domain.SessionRecord, error) {
	close(b.entered)
	<-b.release
	return b.Storage.ListSessions(ctx, scope)
}

func TestRebuild_InProgress(t *testing.T) {
	s := newStorage(t)
	seed(t, s)
	sources := &blockingSources{Storage: s, entered: make(chan struct{}), release: make(chan struct{})}
	o := New(newConfig(t, 25), sources, s, s, s, newLogger(), nil)

	done := make(chan error, 1)
	go func() {
		_, err := o.Rebuild(context.Background(), "g1", Options{DryRun: true})
		done <- err
	}()
	<-sources.entered
	assert.Equal(t, StateRebuilding, o.State("g1"))

	_, err := o.Rebuild(context.Background(), "g1", Options{DryRun: true})
	assert.ErrorIs(t, err, ErrInProgress)

	close(sources.release)
	require.NoError(t, <-done)
	assert.Equal(t, StateIdle, o.State("g1"))
}

func TestRebuildMany(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)
	seed(t, s)
	o := New(newConfig(t, 25), s, s, s, s, newLogger(), nil)

	reports, err := o.RebuildMany(ctx, []string{"g1", "g2", domain.GlobalScope, "g9"}, Options{Confirm: true})
	require.ErrorIs(t, err, ErrNoEvents)
	require.Len(t, reports, 4)
	assert.Equal(t, 4, reports[0].Events)
	assert.Equal(t, 1, reports[1].Events)
	assert.Equal(t, 5, reports[2].Events)

	x, err := s.GetRating(ctx, "g2", "x")
	require.NoError(t, err)
	assert.Less(t, x.Rating, 100.0)

	// g1 ratings do not see g2 players, global sees both
	_, err = s.GetRating(ctx, "g1", "x")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.GetRating(ctx, domain.GlobalScope, "x")
	assert.NoError(t, err)
}

func TestRebuild_InterleavedParentsAuditConsistent(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)
	morning := time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC)
	tagged := func(top, bottom string) []domain.TeamTag {
		return []domain.TeamTag{{PlayerID: top, Team: "A"}, {PlayerID: bottom, Team: "B"}}
	}
	require.NoError(t, s.ImportTournaments(ctx, []domain.TournamentRecord{
		{ID: "t9", GroupID: "g3", Name: "Open", CompletedAt: morning.Add(8 * time.Hour), Rounds: []domain.TournamentRound{
			{Number: 1, CompletedAt: &morning, Tags: tagged("a", "b"),
				Top: domain.TeamScore{Strikes: domain.Strikes{Win: 3}}, Bottom: domain.TeamScore{Strikes: domain.Strikes{Win: 1}}},
			{Number: 2, Tags: tagged("a", "b"),
				Top: domain.TeamScore{Strikes: domain.Strikes{Win: 1}}, Bottom: domain.TeamScore{Strikes: domain.Strikes{Win: 2}}},
		}},
	}))
	require.NoError(t, s.ImportSessions(ctx, []domain.SessionRecord{
		{ID: "s9", GroupID: "g3", CompletedAt: morning.Add(2 * time.Hour), Games: []domain.SessionGame{
			{Number: 1, Top: team(4, "a"), Bottom: team(1, "c")},
		}},
	}))
	o := New(newConfig(t, 1), s, s, s, s, newLogger(), nil)
	_, err := o.Rebuild(ctx, "g3", Options{Confirm: true})
	require.NoError(t, err)

	history, err := s.ListHistory(ctx, "g3", "a")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "t9", history[0].Parent.ID)
	assert.Equal(t, "s9", history[1].Parent.ID)
	assert.Equal(t, "t9", history[2].Parent.ID)

	auditor := audit.New(s, s, nil, 100, newLogger(), nil)
	reports, err := auditor.AuditScope(ctx, "g3")
	require.NoError(t, err)
	assert.Len(t, reports, 3)
	for _, r := range reports {
		assert.Equal(t, audit.StatusConsistent, r.Status, r.PlayerID)
		assert.Empty(t, r.Findings, r.PlayerID)
	}
}

func TestRebuild_UnnumberedGames(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)
	require.NoError(t, s.ImportSessions(ctx, []domain.SessionRecord{
		{ID: "s1", GroupID: "g1", CompletedAt: day, Games: []domain.SessionGame{
			{Top: team(2, "a"), Bottom: team(1, "b")},
			{Top: team(1, "a"), Bottom: team(2, "c")},
			{Top: team(3, "b"), Bottom: team(1, "c")},
		}},
	}))
	require.NoError(t, s.ImportTournaments(ctx, []domain.TournamentRecord{
		{ID: "t1", GroupID: "g1", CompletedAt: day.Add(time.Hour), Rounds: []domain.TournamentRound{
			{Tags: []domain.TeamTag{{PlayerID: "a", Team: "A"}, {PlayerID: "b", Team: "B"}},
				Top: domain.TeamScore{Strikes: domain.Strikes{Win: 1}}, Bottom: domain.TeamScore{Strikes: domain.Strikes{Win: 1}}},
			{Tags: []domain.TeamTag{{PlayerID: "a", Team: "A"}, {PlayerID: "c", Team: "B"}},
				Top: domain.TeamScore{Strikes: domain.Strikes{Win: 2}}, Bottom: domain.TeamScore{Strikes: domain.Strikes{Win: 1}}},
		}},
	}))
	o := New(newConfig(t, 25), s, s, s, s, newLogger(), nil)

	report, err := o.Rebuild(ctx, "g1", Options{Confirm: true})
	require.NoError(t, err)
	assert.Equal(t, 5, report.Events)
	assert.Empty(t, report.Skipped)

	a, err := s.GetRating(ctx, "g1", "a")
	require.NoError(t, err)
	assert.Equal(t, 4, a.GamesPlayed)
}
