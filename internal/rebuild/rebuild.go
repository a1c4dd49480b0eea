// Package rebuild replaces every derived rating and statistics record of a
// scope by replaying its source records from scratch.
package rebuild

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/goserg/jassrating/internal/domain"
	"github.com/goserg/jassrating/internal/elo"
	"github.com/goserg/jassrating/internal/metrics"
	"github.com/goserg/jassrating/internal/normalize"
	"github.com/goserg/jassrating/internal/order"
	"github.com/goserg/jassrating/internal/replay"
	"github.com/goserg/jassrating/internal/series"
	"github.com/goserg/jassrating/internal/storage"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoEvents   = errors.New("no events found for scope")
	ErrInProgress = errors.New("rebuild already in progress for scope")
)

type State string

const (
	StateIdle       State = "idle"
	StateRebuilding State = "rebuilding"
)

const defaultBatchSize = 25

type Config struct {
	Calculator elo.Calculator
	Baseline   float64
	// BatchSize is the number of parents persisted per transaction.
	BatchSize int
}

type Options struct {
	// DryRun computes and reports without touching stored state.
	DryRun bool
	// Confirm must be set for a destructive rebuild. Without it the rebuild is a dry run.
	Confirm bool
}

// Report describes what a rebuild did, or would do for a dry run.
type Report struct {
	RunID    uuid.UUID
	Scope    string
	DryRun   bool
	Parents  int
	Events   int
	Entries  int
	Skipped  []domain.Skip
	Ratings  []domain.PlayerRatingState
	Series   []domain.SeriesDocument
	Duration time.Duration
}

// Plan is the computed, not yet persisted, result of replaying a scope.
type Plan struct {
	Scope     string
	Sequence  order.Sequence
	Skipped   []domain.Skip
	Replay    replay.Result
	Snapshots []domain.ParentSnapshot
	Series    []domain.SeriesDocument
}

type Orchestrator struct {
	cfg     Config
	sources storage.SourceStorage
	ledger  storage.LedgerStorage
	series  storage.SeriesStorage
	runs    storage.RunStorage
	log     *logrus.Entry
	metrics *metrics.Manager

	mu     sync.Mutex
	states map[string]State
}

func New(
	cfg Config,
	sources storage.SourceStorage,
	ledger storage.LedgerStorage,
	seriesStorage storage.SeriesStorage,
	runs storage.RunStorage,
	l *logrus.Logger,
	m *metrics.Manager,
) *Orchestrator {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaultBatchSize
	}
	return &Orchestrator{
		cfg:     cfg,
		sources: sources,
		ledger:  ledger,
		series:  seriesStorage,
		runs:    runs,
		log:     l.WithField("from", "rebuild"),
		metrics: m,
		states:  make(map[string]State),
	}
}

func (o *Orchestrator) State(scope string) State {
	o.mu.Lock()
	defer o.mu.Unlock()
	if s, ok := o.states[scope]; ok {
		return s
	}
	return StateIdle
}

func (o *Orchestrator) begin(scope string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.states[scope] == StateRebuilding {
		return fmt.Errorf("%w: %s", ErrInProgress, scope)
	}
	o.states[scope] = StateRebuilding
	return nil
}

func (o *Orchestrator) end(scope string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.states[scope] = StateIdle
}

// Plan loads, normalizes and orders the scope's sources and runs both folds over
// the same sequence. It never writes.
func (o *Orchestrator) Plan(ctx context.Context, scope string) (Plan, error) {
	sessions, err := o.sources.ListSessions(ctx, scope)
	if err != nil {
		return Plan{}, fmt.Errorf("list sessions: %w", err)
	}
	tournaments, err := o.sources.ListTournaments(ctx, scope)
	if err != nil {
		return Plan{}, fmt.Errorf("list tournaments: %w", err)
	}
	normalized := normalize.All(sessions, tournaments)
	for _, s := range normalized.Skipped {
		o.log.WithFields(logrus.Fields{
			"scope":    scope,
			"parent":   s.Parent.String(),
			"number":   s.Number,
			"position": s.Position,
			"reason":   s.Reason,
		}).Warn("skipped source record: " + s.Detail)
		o.metrics.AddSkipped(string(s.Reason))
	}

	seq := order.Build(normalized.Parents)
	if len(seq.Events) == 0 {
		return Plan{}, fmt.Errorf("%w: %s", ErrNoEvents, scope)
	}
	result := replay.Replay(o.cfg.Calculator, o.cfg.Baseline, seq.Events)
	o.metrics.AddEventsReplayed(len(seq.Events))

	projections := series.ProjectAll(seq.Parents)
	docs := make([]domain.SeriesDocument, 0, len(projections))
	for _, p := range projections {
		docs = append(docs, p.Document(scope))
	}
	return Plan{
		Scope:     scope,
		Sequence:  seq,
		Skipped:   normalized.Skipped,
		Replay:    result,
		Snapshots: replay.Snapshots(result.History),
		Series:    docs,
	}, nil
}

// Rebuild replaces all derived state of a scope. Unless opts.Confirm is set it
// only reports what it would write. Preconditions are checked before anything
// is deleted. Cancellation is honoured after each persisted batch; the run is
// then left marked incomplete for the next rebuild to replace.
func (o *Orchestrator) Rebuild(ctx context.Context, scope string, opts Options) (Report, error) {
	start := time.Now()
	if err := o.begin(scope); err != nil {
		return Report{}, err
	}
	defer o.end(scope)

	plan, err := o.Plan(ctx, scope)
	if err != nil {
		o.metrics.RecordRebuild(metrics.ResultFailed, time.Since(start))
		return Report{}, err
	}
	report := Report{
		Scope:   scope,
		DryRun:  opts.DryRun || !opts.Confirm,
		Parents: len(plan.Sequence.Parents),
		Events:  len(plan.Sequence.Events),
		Entries: len(plan.Replay.History),
		Skipped: plan.Skipped,
		Ratings: plan.Replay.States,
		Series:  plan.Series,
	}
	if report.DryRun {
		report.Duration = time.Since(start)
		o.metrics.RecordRebuild(metrics.ResultDryRun, report.Duration)
		return report, nil
	}

	run := domain.RebuildRun{
		ID:           uuid.New(),
		Scope:        scope,
		Status:       domain.RunRunning,
		StartedAt:    time.Now(),
		ParentsTotal: len(plan.Sequence.Parents),
	}
	report.RunID = run.ID
	log := o.log.WithFields(logrus.Fields{"scope": scope, "run": run.ID})

	err = o.persist(ctx, plan, &run, log)
	report.Duration = time.Since(start)
	if err != nil {
		run.Status = domain.RunIncomplete
		// the failed run is recorded on a fresh context so that cancellation still leaves a trace
		if uerr := o.runs.UpdateRun(context.WithoutCancel(ctx), run); uerr != nil {
			log.WithError(uerr).Error("mark rebuild incomplete")
		}
		result := metrics.ResultFailed
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			result = metrics.ResultCanceled
		}
		o.metrics.RecordRebuild(result, report.Duration)
		log.WithError(err).Error("rebuild incomplete")
		return report, err
	}
	o.metrics.RecordRebuild(metrics.ResultComplete, report.Duration)
	log.WithFields(logrus.Fields{
		"parents":  report.Parents,
		"events":   report.Events,
		"entries":  report.Entries,
		"duration": report.Duration,
	}).Info("rebuild complete")
	return report, nil
}

func (o *Orchestrator) persist(ctx context.Context, plan Plan, run *domain.RebuildRun, log *logrus.Entry) error {
	if err := o.runs.StartRun(ctx, *run); err != nil {
		return fmt.Errorf("start run: %w", err)
	}
	if err := o.ledger.ResetScope(ctx, plan.Scope); err != nil {
		return fmt.Errorf("reset scope: %w", err)
	}
	if err := o.series.DeleteSeries(ctx, plan.Scope); err != nil {
		return fmt.Errorf("delete series: %w", err)
	}

	entries := make(map[domain.ParentRef][]domain.RatingHistoryEntry)
	for _, e := range plan.Replay.History {
		entries[e.Parent] = append(entries[e.Parent], e)
	}
	snapshots := make(map[domain.ParentRef][]domain.ParentSnapshot)
	for _, s := range plan.Snapshots {
		snapshots[s.Parent] = append(snapshots[s.Parent], s)
	}

	parents := plan.Sequence.Parents
	for lo := 0; lo < len(parents); lo += o.cfg.BatchSize {
		hi := min(lo+o.cfg.BatchSize, len(parents))
		var batchEntries []domain.RatingHistoryEntry
		var batchSnapshots []domain.ParentSnapshot
		for _, p := range parents[lo:hi] {
			batchEntries = append(batchEntries, entries[p.Ref]...)
			batchSnapshots = append(batchSnapshots, snapshots[p.Ref]...)
		}
		if err := o.ledger.AppendBatch(ctx, plan.Scope, batchEntries, batchSnapshots); err != nil {
			return fmt.Errorf("append batch at %s: %w", parents[lo].Ref, err)
		}
		o.metrics.AddEntriesWritten(len(batchEntries))

		run.ParentsDone = hi
		run.Checkpoint = parents[hi-1].Ref.String()
		if err := o.runs.UpdateRun(ctx, *run); err != nil {
			return fmt.Errorf("checkpoint: %w", err)
		}
		log.WithFields(logrus.Fields{
			"parents_done":  run.ParentsDone,
			"parents_total": run.ParentsTotal,
		}).Info("batch persisted")
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	if err := o.ledger.SaveRatings(ctx, plan.Scope, plan.Replay.States); err != nil {
		return fmt.Errorf("save ratings: %w", err)
	}
	for _, doc := range plan.Series {
		if err := o.series.SaveSeries(ctx, doc); err != nil {
			return fmt.Errorf("save series %s: %w", doc.Metric, err)
		}
	}

	now := time.Now()
	run.Status = domain.RunComplete
	run.FinishedAt = &now
	if err := o.runs.UpdateRun(ctx, *run); err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RebuildMany rebuilds independent scopes concurrently. Each scope gets its own
// replay; failures of one scope do not stop the others.
func (o *Orchestrator) RebuildMany(ctx context.Context, scopes []string, opts Options) ([]Report, error) {
	reports := make([]Report, len(scopes))
	errs := make([]error, len(scopes))
	var wg sync.WaitGroup
	for i, scope := range scopes {
		wg.Add(1)
		go func(i int, scope string) {
			defer wg.Done()
			r, err := o.Rebuild(ctx, scope, opts)
			reports[i] = r
			if err != nil {
				errs[i] = fmt.Errorf("scope %s: %w", scope, err)
			}
		}(i, scope)
	}
	wg.Wait()
	return reports, errors.Join(errs...)
}
