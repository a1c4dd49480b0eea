package web

import (
	"time"

	"github.com/goserg/jassrating/internal/audit"
	"github.com/goserg/jassrating/internal/domain"
	"github.com/goserg/jassrating/internal/rebuild"
)

type standing struct {
	Rank        int     `json:"rank"`
	PlayerID    string  `json:"playerId"`
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	GamesPlayed int     `json:"gamesPlayed"`
}

func convertStandings(standings []domain.Standing) []standing {
	converted := make([]standing, 0, len(standings))
	for _, s := range standings {
		converted = append(converted, standing{
			Rank:        s.Rank,
			PlayerID:    s.Player.ID,
			Name:        s.Player.Name,
			Rating:      s.Rating,
			GamesPlayed: s.GamesPlayed,
		})
	}
	return converted
}

type historyEntry struct {
	EventID      string    `json:"eventId"`
	Seq          int       `json:"seq"`
	Parent       string    `json:"parent"`
	Number       int       `json:"number"`
	RatingBefore float64   `json:"ratingBefore"`
	RatingAfter  float64   `json:"ratingAfter"`
	Delta        float64   `json:"delta"`
	GamesPlayed  int       `json:"gamesPlayed"`
	OccurredAt   time.Time `json:"occurredAt"`
}

func convertHistory(history []domain.RatingHistoryEntry) []historyEntry {
	converted := make([]historyEntry, 0, len(history))
	for _, e := range history {
		converted = append(converted, historyEntry{
			EventID:      e.EventID,
			Seq:          e.Seq,
			Parent:       e.Parent.String(),
			Number:       e.Number,
			RatingBefore: e.RatingBefore(),
			RatingAfter:  e.RatingAfter,
			Delta:        e.Delta,
			GamesPlayed:  e.GamesPlayed,
			OccurredAt:   e.OccurredAt,
		})
	}
	return converted
}

type finding struct {
	Kind    string   `json:"kind"`
	Detail  string   `json:"detail"`
	Records []string `json:"records,omitempty"`
}

type auditReport struct {
	Scope    string    `json:"scope"`
	PlayerID string    `json:"playerId"`
	Name     string    `json:"name,omitempty"`
	Status   string    `json:"status"`
	Remedy   string    `json:"remedy"`
	Findings []finding `json:"findings"`
}

func convertAuditReports(reports []audit.Report) []auditReport {
	converted := make([]auditReport, 0, len(reports))
	for _, r := range reports {
		findings := make([]finding, 0, len(r.Findings))
		for _, f := range r.Findings {
			var records []string
			for _, e := range f.Entries {
				records = append(records, "ledger "+e.EventID)
			}
			for _, s := range f.Snapshots {
				records = append(records, "snapshot "+s.Parent.String())
			}
			if f.Current != nil {
				records = append(records, "current "+f.Current.PlayerID)
			}
			findings = append(findings, finding{
				Kind:    string(f.Kind),
				Detail:  f.Detail,
				Records: records,
			})
		}
		converted = append(converted, auditReport{
			Scope:    r.Scope,
			PlayerID: r.PlayerID,
			Name:     r.PlayerName,
			Status:   string(r.Status),
			Remedy:   string(r.Remedy),
			Findings: findings,
		})
	}
	return converted
}

type skipped struct {
	Parent   string `json:"parent"`
	Position int    `json:"position"`
	Reason   string `json:"reason"`
	Detail   string `json:"detail"`
}

type rebuildReport struct {
	RunID    string    `json:"runId,omitempty"`
	Scope    string    `json:"scope"`
	DryRun   bool      `json:"dryRun"`
	Parents  int       `json:"parents"`
	Events   int       `json:"events"`
	Entries  int       `json:"entries"`
	Players  int       `json:"players"`
	Skipped  []skipped `json:"skipped"`
	Duration string    `json:"duration"`
}

func convertRebuildReports(reports []rebuild.Report) []rebuildReport {
	converted := make([]rebuildReport, 0, len(reports))
	for _, r := range reports {
		report := rebuildReport{
			Scope:    r.Scope,
			DryRun:   r.DryRun,
			Parents:  r.Parents,
			Events:   r.Events,
			Entries:  r.Entries,
			Players:  len(r.Ratings),
			Skipped:  make([]skipped, 0, len(r.Skipped)),
			Duration: r.Duration.String(),
		}
		if !r.DryRun && r.Scope != "" {
			report.RunID = r.RunID.String()
		}
		for _, s := range r.Skipped {
			report.Skipped = append(report.Skipped, skipped{
				Parent:   s.Parent.String(),
				Position: s.Position,
				Reason:   string(s.Reason),
				Detail:   s.Detail,
			})
		}
		converted = append(converted, report)
	}
	return converted
}
