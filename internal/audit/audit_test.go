package audit

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/goserg/jassrating/internal/domain"
	"github.com/goserg/jassrating/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedger struct {
	history   []domain.RatingHistoryEntry
	snapshots []domain.ParentSnapshot
	ratings   []domain.PlayerRatingState
}

func (f *fakeLedger) ResetScope(context.Context, string) error { return nil }

func (f *fakeLedger) AppendBatch(_ context.Context, _ string, entries []domain.RatingHistoryEntry, snapshots []domain.ParentSnapshot) error {
	f.history = append(f.history, entries...)
	f.snapshots = append(f.snapshots, snapshots...)
	return nil
}

func (f *fakeLedger) SaveRatings(_ context.Context, _ string, states []domain.PlayerRatingState) error {
	f.ratings = states
	return nil
}

func (f *fakeLedger) ListHistory(_ context.Context, _ string, playerID string) ([]domain.RatingHistoryEntry, error) {
	var out []domain.RatingHistoryEntry
	for _, e := range f.history {
		if playerID == "" || e.PlayerID == playerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLedger) ListSnapshots(_ context.Context, _ string, playerID string) ([]domain.ParentSnapshot, error) {
	var out []domain.ParentSnapshot
	for _, s := range f.snapshots {
		if playerID == "" || s.PlayerID == playerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeLedger) ListRatings(context.Context, string) ([]domain.PlayerRatingState, error) {
	return f.ratings, nil
}

func (f *fakeLedger) GetRating(_ context.Context, _ string, playerID string) (domain.PlayerRatingState, error) {
	for _, r := range f.ratings {
		if r.PlayerID == playerID {
			return r, nil
		}
	}
	return domain.PlayerRatingState{}, storage.ErrNotFound
}

type fakeRuns struct {
	last *domain.RebuildRun
}

func (f *fakeRuns) StartRun(_ context.Context, run domain.RebuildRun) error {
	f.last = &run
	return nil
}

func (f *fakeRuns) UpdateRun(_ context.Context, run domain.RebuildRun) error {
	f.last = &run
	return nil
}

func (f *fakeRuns) LastRun(context.Context, string) (domain.RebuildRun, error) {
	if f.last == nil {
		return domain.RebuildRun{}, storage.ErrNotFound
	}
	return *f.last, nil
}

type names map[string]string

func (n names) Name(id string) string {
	return n[id]
}

var (
	day = time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)
	s1  = domain.ParentRef{Kind: domain.ParentSession, ID: "s1"}
	s2  = domain.ParentRef{Kind: domain.ParentSession, ID: "s2"}
)

// consistentLedger holds player a: +1.875 and -0.5 in s1, +3 in s2.
func consistentLedger() *fakeLedger {
	return &fakeLedger{
		history: []domain.RatingHistoryEntry{
			{PlayerID: "a", EventID: "session:s1:1", Seq: 0, Parent: s1, RatingAfter: 101.875, Delta: 1.875, GamesPlayed: 1, OccurredAt: day},
			{PlayerID: "a", EventID: "session:s1:2", Seq: 1, Parent: s1, RatingAfter: 101.375, Delta: -0.5, GamesPlayed: 2, OccurredAt: day},
			{PlayerID: "a", EventID: "session:s2:1", Seq: 2, Parent: s2, RatingAfter: 104.375, Delta: 3, GamesPlayed: 3, OccurredAt: day},
		},
		snapshots: []domain.ParentSnapshot{
			{Parent: s1, PlayerID: "a", Rating: 101.375, RatingDelta: 1.375, GamesPlayed: 2, Seq: 1},
			{Parent: s2, PlayerID: "a", Rating: 104.375, RatingDelta: 3, GamesPlayed: 3, Seq: 2},
		},
		ratings: []domain.PlayerRatingState{{PlayerID: "a", Rating: 104.375, GamesPlayed: 3}},
	}
}

func newAuditor(ledger storage.LedgerStorage, runs storage.RunStorage) *Auditor {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return New(ledger, runs, names{"a": "Anna"}, 100, l, nil)
}

func TestAudit(t *testing.T) {
	tests := []struct {
		name       string
		tamper     func(f *fakeLedger)
		wantStatus Status
		wantRemedy Remedy
		wantKinds  []FindingKind
	}{
		{
			name:       "consistent",
			tamper:     func(f *fakeLedger) {},
			wantStatus: StatusConsistent,
			wantRemedy: RemedyNone,
		},
		{
			name:       "current rating drifted",
			tamper:     func(f *fakeLedger) { f.ratings[0].Rating = 104 },
			wantStatus: StatusSnapshotCurrentDivergence,
			wantRemedy: RemedyFullRebuild,
			wantKinds:  []FindingKind{FindingCurrentMismatch},
		},
		{
			name:       "current games played drifted",
			tamper:     func(f *fakeLedger) { f.ratings[0].GamesPlayed = 4 },
			wantStatus: StatusSnapshotCurrentDivergence,
			wantRemedy: RemedyFullRebuild,
			wantKinds:  []FindingKind{FindingCurrentMismatch},
		},
		{
			name:       "missing current rating",
			tamper:     func(f *fakeLedger) { f.ratings = nil },
			wantStatus: StatusSnapshotCurrentDivergence,
			wantRemedy: RemedyFullRebuild,
			wantKinds:  []FindingKind{FindingMissingCurrent},
		},
		{
			name:       "snapshot stores last delta instead of net delta",
			tamper:     func(f *fakeLedger) { f.snapshots[0].RatingDelta = -0.5 },
			wantStatus: StatusLedgerSnapshotDivergence,
			wantRemedy: RemedyFullRebuild,
			wantKinds:  []FindingKind{FindingSnapshotChain, FindingSnapshotLedger},
		},
		{
			name:       "ledger entry does not continue",
			tamper:     func(f *fakeLedger) { f.history[1].Delta = -0.25 },
			wantStatus: StatusLedgerSnapshotDivergence,
			wantRemedy: RemedyFullRebuild,
			wantKinds:  []FindingKind{FindingLedgerChain},
		},
		{
			name:       "missing snapshot",
			tamper:     func(f *fakeLedger) { f.snapshots = f.snapshots[:1] },
			wantStatus: StatusLedgerSnapshotDivergence,
			wantRemedy: RemedyFullRebuild,
			wantKinds:  []FindingKind{FindingMissingSnapshot},
		},
		{
			name: "ledger and current both wrong",
			tamper: func(f *fakeLedger) {
				f.history[0].GamesPlayed = 2
				f.ratings[0].Rating = 1
			},
			wantStatus: StatusLedgerSnapshotDivergence,
			wantRemedy: RemedyFullRebuild,
			wantKinds:  []FindingKind{FindingLedgerChain, FindingCurrentMismatch},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := consistentLedger()
			tt.tamper(ledger)
			report, err := newAuditor(ledger, &fakeRuns{}).Audit(context.Background(), "g1", "a")
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, report.Status)
			assert.Equal(t, tt.wantRemedy, report.Remedy)
			assert.Equal(t, "Anna", report.PlayerName)
			var kinds []FindingKind
			for _, f := range report.Findings {
				kinds = append(kinds, f.Kind)
			}
			assert.Equal(t, tt.wantKinds, kinds)
		})
	}
}

func TestAudit_FindingsCarryRecords(t *testing.T) {
	ledger := consistentLedger()
	ledger.ratings[0].Rating = 104
	report, err := newAuditor(ledger, nil).Audit(context.Background(), "g1", "a")
	require.NoError(t, err)
	require.Len(t, report.Findings, 1)
	f := report.Findings[0]
	require.NotNil(t, f.Current)
	assert.Equal(t, 104.0, f.Current.Rating)
	require.Len(t, f.Entries, 1)
	assert.Equal(t, "session:s2:1", f.Entries[0].EventID)
}

func TestAudit_IncompleteRebuildIsUnknown(t *testing.T) {
	runs := &fakeRuns{last: &domain.RebuildRun{ID: uuid.New(), Status: domain.RunIncomplete, ParentsDone: 1, ParentsTotal: 2}}
	report, err := newAuditor(consistentLedger(), runs).Audit(context.Background(), "g1", "a")
	require.NoError(t, err)
	assert.Equal(t, StatusUnknown, report.Status)
	assert.Equal(t, RemedyFullRebuild, report.Remedy)
	require.Len(t, report.Findings, 1)
	assert.Equal(t, FindingIncompleteRebuild, report.Findings[0].Kind)

	runs.last.Status = domain.RunComplete
	report, err = newAuditor(consistentLedger(), runs).Audit(context.Background(), "g1", "a")
	require.NoError(t, err)
	assert.True(t, report.Consistent())
}

func TestAudit_UnknownPlayer(t *testing.T) {
	report, err := newAuditor(consistentLedger(), nil).Audit(context.Background(), "g1", "zz")
	require.NoError(t, err)
	assert.Equal(t, StatusUnknown, report.Status)
	assert.Equal(t, RemedyInvestigate, report.Remedy)
}

func TestAudit_PlayerWithoutGames(t *testing.T) {
	ledger := &fakeLedger{ratings: []domain.PlayerRatingState{{PlayerID: "a", Rating: 100}}}
	report, err := newAuditor(ledger, nil).Audit(context.Background(), "g1", "a")
	require.NoError(t, err)
	assert.Equal(t, StatusConsistent, report.Status)
}

func TestAuditScope(t *testing.T) {
	ledger := consistentLedger()
	ledger.ratings = append(ledger.ratings, domain.PlayerRatingState{PlayerID: "b", Rating: 99, GamesPlayed: 0})
	reports, err := newAuditor(ledger, nil).AuditScope(context.Background(), "g1")
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "a", reports[0].PlayerID)
	assert.True(t, reports[0].Consistent())
	assert.Equal(t, "b", reports[1].PlayerID)
	assert.Equal(t, StatusSnapshotCurrentDivergence, reports[1].Status)
}

func TestAudit_InterleavedParents(t *testing.T) {
	t1 := domain.ParentRef{Kind: domain.ParentTournament, ID: "t1"}
	// tournament round 1, then a session, then tournament round 2
	ledger := &fakeLedger{
		history: []domain.RatingHistoryEntry{
			{PlayerID: "a", EventID: "tournament:t1:1", Seq: 0, Parent: t1, RatingAfter: 102, Delta: 2, GamesPlayed: 1, OccurredAt: day},
			{PlayerID: "a", EventID: "session:s1:1", Seq: 1, Parent: s1, RatingAfter: 103, Delta: 1, GamesPlayed: 2, OccurredAt: day},
			{PlayerID: "a", EventID: "tournament:t1:2", Seq: 2, Parent: t1, RatingAfter: 102.5, Delta: -0.5, GamesPlayed: 3, OccurredAt: day},
		},
		snapshots: []domain.ParentSnapshot{
			{Parent: s1, PlayerID: "a", Rating: 103, RatingDelta: 1, GamesPlayed: 2, Seq: 1},
			{Parent: t1, PlayerID: "a", Rating: 102.5, RatingDelta: 2.5, GamesPlayed: 3, Seq: 2},
		},
		ratings: []domain.PlayerRatingState{{PlayerID: "a", Rating: 102.5, GamesPlayed: 3}},
	}
	report, err := newAuditor(ledger, nil).Audit(context.Background(), "g1", "a")
	require.NoError(t, err)
	assert.Equal(t, StatusConsistent, report.Status)
	assert.Empty(t, report.Findings)

	ledger.snapshots[1].RatingDelta = -0.5
	report, err = newAuditor(ledger, nil).Audit(context.Background(), "g1", "a")
	require.NoError(t, err)
	assert.Equal(t, StatusLedgerSnapshotDivergence, report.Status)
	require.NotEmpty(t, report.Findings)
	assert.Equal(t, FindingSnapshotChain, report.Findings[0].Kind)
}
