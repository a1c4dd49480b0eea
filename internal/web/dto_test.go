package web

import (
	"testing"

	"github.com/goserg/jassrating/internal/audit"
	"github.com/goserg/jassrating/internal/domain"
	"github.com/stretchr/testify/assert"
)

func Test_convertStandings(t *testing.T) {
	got := convertStandings([]domain.Standing{
		{Player: domain.Player{ID: "p1", Name: "Anna"}, Rating: 101.875, GamesPlayed: 1, Rank: 1},
	})
	assert.Equal(t, []standing{{Rank: 1, PlayerID: "p1", Name: "Anna", Rating: 101.875, GamesPlayed: 1}}, got)
}

func Test_convertAuditReports(t *testing.T) {
	ref := domain.ParentRef{Kind: domain.ParentSession, ID: "s1"}
	got := convertAuditReports([]audit.Report{{
		Scope:    "g1",
		PlayerID: "p1",
		Status:   audit.StatusSnapshotCurrentDivergence,
		Remedy:   audit.RemedyFullRebuild,
		Findings: []audit.Finding{{
			Kind:      audit.FindingCurrentMismatch,
			Detail:    "x",
			Entries:   []domain.RatingHistoryEntry{{EventID: "session:s1:1"}},
			Snapshots: []domain.ParentSnapshot{{Parent: ref}},
			Current:   &domain.PlayerRatingState{PlayerID: "p1"},
		}},
	}})
	if assert.Len(t, got, 1) && assert.Len(t, got[0].Findings, 1) {
		assert.Equal(t, "snapshot_current_divergence", got[0].Status)
		assert.Equal(t, []string{"ledger session:s1:1", "snapshot session:s1", "current p1"}, got[0].Findings[0].Records)
	}
}

func Test_convertHistory(t *testing.T) {
	got := convertHistory([]domain.RatingHistoryEntry{{RatingAfter: 101.875, Delta: 1.875}})
	if assert.Len(t, got, 1) {
		assert.InDelta(t, 100.0, got[0].RatingBefore, 1e-9)
	}
}
