// Package audit cross-checks the rating ledger against the per-parent
// snapshots and the current rating of a player.
//
// The auditor never repairs anything. A divergence is only ever resolved by a
// full rebuild of the scope.
package audit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/goserg/jassrating/internal/domain"
	"github.com/goserg/jassrating/internal/metrics"
	"github.com/goserg/jassrating/internal/storage"
	"github.com/sirupsen/logrus"
)

// DefaultEpsilon is the tolerance used when comparing persisted ratings.
const DefaultEpsilon = 1e-6

type Status string

const (
	StatusConsistent                Status = "consistent"
	StatusLedgerSnapshotDivergence  Status = "ledger_snapshot_divergence"
	StatusSnapshotCurrentDivergence Status = "snapshot_current_divergence"
	StatusUnknown                   Status = "unknown"
)

type FindingKind string

const (
	FindingLedgerChain       FindingKind = "ledger_chain_break"
	FindingSnapshotChain     FindingKind = "snapshot_chain_break"
	FindingSnapshotLedger    FindingKind = "snapshot_ledger_mismatch"
	FindingMissingSnapshot   FindingKind = "missing_snapshot"
	FindingCurrentMismatch   FindingKind = "current_mismatch"
	FindingMissingCurrent    FindingKind = "missing_current"
	FindingIncompleteRebuild FindingKind = "incomplete_rebuild"
	FindingNoHistory         FindingKind = "no_history"
)

type Remedy string

const (
	RemedyNone        Remedy = "none"
	RemedyFullRebuild Remedy = "full_rebuild"
	RemedyInvestigate Remedy = "investigate"
)

// Finding is one detected inconsistency with the offending records attached.
type Finding struct {
	Kind      FindingKind
	Detail    string
	Entries   []domain.RatingHistoryEntry
	Snapshots []domain.ParentSnapshot
	Current   *domain.PlayerRatingState
}

type Report struct {
	Scope      string
	PlayerID   string
	PlayerName string
	Status     Status
	Remedy     Remedy
	Findings   []Finding
	Entries    int
	Snapshots  int
}

func (r Report) Consistent() bool {
	return r.Status == StatusConsistent
}

// Names resolves display names for reports.
type Names interface {
	Name(id string) string
}

type Auditor struct {
	ledger   storage.LedgerStorage
	runs     storage.RunStorage
	names    Names
	baseline float64
	epsilon  float64
	log      *logrus.Entry
	metrics  *metrics.Manager
}

func New(ledger storage.LedgerStorage, runs storage.RunStorage, names Names, baseline float64, l *logrus.Logger, m *metrics.Manager) *Auditor {
	return &Auditor{
		ledger:   ledger,
		runs:     runs,
		names:    names,
		baseline: baseline,
		epsilon:  DefaultEpsilon,
		log:      l.WithField("from", "audit"),
		metrics:  m,
	}
}

// Audit reads the three representations of one player's rating in a scope and classifies them.
func (a *Auditor) Audit(ctx context.Context, scope string, playerID string) (Report, error) {
	incomplete, err := a.incompleteRun(ctx, scope)
	if err != nil {
		return Report{}, err
	}
	history, err := a.ledger.ListHistory(ctx, scope, playerID)
	if err != nil {
		return Report{}, fmt.Errorf("list history: %w", err)
	}
	snapshots, err := a.ledger.ListSnapshots(ctx, scope, playerID)
	if err != nil {
		return Report{}, fmt.Errorf("list snapshots: %w", err)
	}
	var current *domain.PlayerRatingState
	st, err := a.ledger.GetRating(ctx, scope, playerID)
	switch {
	case err == nil:
		current = &st
	case !errors.Is(err, storage.ErrNotFound):
		return Report{}, fmt.Errorf("get rating: %w", err)
	}

	report := a.check(scope, playerID, history, snapshots, current, incomplete)
	if a.names != nil {
		report.PlayerName = a.names.Name(playerID)
	}
	a.metrics.RecordAudit(string(report.Status))
	if !report.Consistent() {
		a.log.WithFields(logrus.Fields{
			"scope":    scope,
			"player":   playerID,
			"status":   report.Status,
			"findings": len(report.Findings),
		}).Warn("audit divergence")
	}
	return report, nil
}

// AuditScope audits every player that has a ledger entry, a snapshot or a current rating in the scope.
func (a *Auditor) AuditScope(ctx context.Context, scope string) ([]Report, error) {
	history, err := a.ledger.ListHistory(ctx, scope, "")
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	snapshots, err := a.ledger.ListSnapshots(ctx, scope, "")
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	ratings, err := a.ledger.ListRatings(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	players := mapset.NewThreadUnsafeSet[string]()
	var ids []string
	add := func(id string) {
		if players.Add(id) {
			ids = append(ids, id)
		}
	}
	for _, e := range history {
		add(e.PlayerID)
	}
	for _, s := range snapshots {
		add(s.PlayerID)
	}
	for _, r := range ratings {
		add(r.PlayerID)
	}

	reports := make([]Report, 0, len(ids))
	for _, id := range ids {
		r, err := a.Audit(ctx, scope, id)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func (a *Auditor) incompleteRun(ctx context.Context, scope string) (*domain.RebuildRun, error) {
	if a.runs == nil {
		return nil, nil
	}
	run, err := a.runs.LastRun(ctx, scope)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("last rebuild run: %w", err)
	}
	if run.Status == domain.RunComplete {
		return nil, nil
	}
	return &run, nil
}

func (a *Auditor) check(
	scope string,
	playerID string,
	history []domain.RatingHistoryEntry,
	snapshots []domain.ParentSnapshot,
	current *domain.PlayerRatingState,
	incomplete *domain.RebuildRun,
) Report {
	report := Report{
		Scope:     scope,
		PlayerID:  playerID,
		Entries:   len(history),
		Snapshots: len(snapshots),
	}

	if incomplete != nil {
		report.Findings = append(report.Findings, Finding{
			Kind: FindingIncompleteRebuild,
			Detail: fmt.Sprintf("rebuild %s is %s after %d of %d parents",
				incomplete.ID, incomplete.Status, incomplete.ParentsDone, incomplete.ParentsTotal),
		})
		report.Status = StatusUnknown
		report.Remedy = RemedyFullRebuild
		return report
	}
	if len(history) == 0 && len(snapshots) == 0 && current == nil {
		report.Findings = append(report.Findings, Finding{
			Kind:   FindingNoHistory,
			Detail: "no ledger, snapshot or current rating for player",
		})
		report.Status = StatusUnknown
		report.Remedy = RemedyInvestigate
		return report
	}

	var ledgerFindings []Finding
	ledgerFindings = append(ledgerFindings, a.checkLedger(history)...)
	ledgerFindings = append(ledgerFindings, a.checkSnapshotChain(history, snapshots)...)
	ledgerFindings = append(ledgerFindings, a.checkSnapshotsAgainstLedger(history, snapshots)...)
	currentFindings := a.checkCurrent(history, current)

	report.Findings = append(ledgerFindings, currentFindings...)
	switch {
	case len(ledgerFindings) > 0:
		report.Status = StatusLedgerSnapshotDivergence
		report.Remedy = RemedyFullRebuild
	case len(currentFindings) > 0:
		report.Status = StatusSnapshotCurrentDivergence
		report.Remedy = RemedyFullRebuild
	default:
		report.Status = StatusConsistent
		report.Remedy = RemedyNone
	}
	return report
}

func (a *Auditor) equal(x, y float64) bool {
	return math.Abs(x-y) <= a.epsilon
}

// checkLedger verifies every entry continues from the previous one.
func (a *Auditor) checkLedger(history []domain.RatingHistoryEntry) []Finding {
	var findings []Finding
	prev := a.baseline
	for i, e := range history {
		if !a.equal(prev+e.Delta, e.RatingAfter) || e.GamesPlayed != i+1 {
			f := Finding{
				Kind: FindingLedgerChain,
				Detail: fmt.Sprintf("entry %s: %.6f + %.6f != %.6f (games %d)",
					e.EventID, prev, e.Delta, e.RatingAfter, e.GamesPlayed),
				Entries: []domain.RatingHistoryEntry{e},
			}
			if i > 0 {
				f.Entries = []domain.RatingHistoryEntry{history[i-1], e}
			}
			findings = append(findings, f)
		}
		prev = e.RatingAfter
	}
	return findings
}

// checkSnapshotChain verifies every snapshot starts from the rating the player
// had before the first ledger entry of its parent. Parents may interleave, so the
// start comes from the ledger rather than from the previous snapshot.
func (a *Auditor) checkSnapshotChain(history []domain.RatingHistoryEntry, snapshots []domain.ParentSnapshot) []Finding {
	starts := make(map[domain.ParentRef]float64)
	for _, e := range history {
		if _, ok := starts[e.Parent]; !ok {
			starts[e.Parent] = e.RatingBefore()
		}
	}
	ordered := make([]domain.ParentSnapshot, len(snapshots))
	copy(ordered, snapshots)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Seq < ordered[j].Seq
	})
	var findings []Finding
	prev := a.baseline
	for i, s := range ordered {
		from, ok := starts[s.Parent]
		if !ok {
			from = prev
		}
		if !a.equal(from+s.RatingDelta, s.Rating) {
			f := Finding{
				Kind: FindingSnapshotChain,
				Detail: fmt.Sprintf("snapshot %s: %.6f + %.6f != %.6f",
					s.Parent, from, s.RatingDelta, s.Rating),
				Snapshots: []domain.ParentSnapshot{s},
			}
			if i > 0 {
				f.Snapshots = []domain.ParentSnapshot{ordered[i-1], s}
			}
			findings = append(findings, f)
		}
		prev = s.Rating
	}
	return findings
}

// checkSnapshotsAgainstLedger compares each snapshot with the ledger span of its parent,
// built in a single pass over the ledger.
func (a *Auditor) checkSnapshotsAgainstLedger(history []domain.RatingHistoryEntry, snapshots []domain.ParentSnapshot) []Finding {
	type span struct {
		first, last domain.RatingHistoryEntry
	}
	spans := make(map[domain.ParentRef]*span)
	var parents []domain.ParentRef
	for _, e := range history {
		s, ok := spans[e.Parent]
		if !ok {
			spans[e.Parent] = &span{first: e, last: e}
			parents = append(parents, e.Parent)
			continue
		}
		s.last = e
	}

	var findings []Finding
	covered := mapset.NewThreadUnsafeSet[domain.ParentRef]()
	for _, snap := range snapshots {
		covered.Add(snap.Parent)
		s, ok := spans[snap.Parent]
		if !ok {
			findings = append(findings, Finding{
				Kind:      FindingSnapshotLedger,
				Detail:    fmt.Sprintf("snapshot %s has no ledger entries", snap.Parent),
				Snapshots: []domain.ParentSnapshot{snap},
			})
			continue
		}
		wantDelta := s.last.RatingAfter - s.first.RatingBefore()
		if !a.equal(snap.Rating, s.last.RatingAfter) || !a.equal(snap.RatingDelta, wantDelta) || snap.GamesPlayed != s.last.GamesPlayed {
			findings = append(findings, Finding{
				Kind: FindingSnapshotLedger,
				Detail: fmt.Sprintf("snapshot %s: rating %.6f delta %.6f, ledger rating %.6f delta %.6f",
					snap.Parent, snap.Rating, snap.RatingDelta, s.last.RatingAfter, wantDelta),
				Entries:   []domain.RatingHistoryEntry{s.first, s.last},
				Snapshots: []domain.ParentSnapshot{snap},
			})
		}
	}
	for _, p := range parents {
		if covered.Contains(p) {
			continue
		}
		s := spans[p]
		findings = append(findings, Finding{
			Kind:    FindingMissingSnapshot,
			Detail:  fmt.Sprintf("ledger entries of %s have no snapshot", p),
			Entries: []domain.RatingHistoryEntry{s.first, s.last},
		})
	}
	return findings
}

func (a *Auditor) checkCurrent(history []domain.RatingHistoryEntry, current *domain.PlayerRatingState) []Finding {
	if current == nil {
		if len(history) == 0 {
			return nil
		}
		return []Finding{{
			Kind:    FindingMissingCurrent,
			Detail:  "player has ledger entries but no current rating",
			Entries: []domain.RatingHistoryEntry{history[len(history)-1]},
		}}
	}
	wantRating, wantGames := a.baseline, 0
	var entries []domain.RatingHistoryEntry
	if len(history) > 0 {
		last := history[len(history)-1]
		wantRating, wantGames = last.RatingAfter, last.GamesPlayed
		entries = []domain.RatingHistoryEntry{last}
	}
	if a.equal(current.Rating, wantRating) && current.GamesPlayed == wantGames {
		return nil
	}
	c := *current
	return []Finding{{
		Kind: FindingCurrentMismatch,
		Detail: fmt.Sprintf("current rating %.6f (%d games), ledger %.6f (%d games)",
			current.Rating, current.GamesPlayed, wantRating, wantGames),
		Entries: entries,
		Current: &c,
	}}
}
