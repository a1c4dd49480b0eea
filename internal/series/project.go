// Package series projects the ordered timeline of a scope into cumulative
// per-player metric series.
package series

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/goserg/jassrating/internal/domain"
)

// Projection is the result of projecting one metric.
type Projection struct {
	Metric domain.Metric
	Labels []string
	// Players lists every known player in first-seen order.
	Players []string
	Series  map[string]domain.MetricSeries
}

// Document converts the projection into its persisted shape.
func (p Projection) Document(scope string) domain.SeriesDocument {
	doc := domain.SeriesDocument{
		Scope:  scope,
		Metric: p.Metric,
		Labels: p.Labels,
		Series: make([]domain.MetricSeries, 0, len(p.Players)),
	}
	for _, id := range p.Players {
		doc.Series = append(doc.Series, p.Series[id])
	}
	return doc
}

// Project folds ordered events into a series per player. Events of one parent
// form one timeline point, in the order the parents first appear.
func Project(events []domain.GameEvent, metric domain.Metric) Projection {
	var parents []domain.Parent
	index := make(map[domain.ParentRef]int)
	for _, e := range events {
		i, ok := index[e.Parent]
		if !ok {
			i = len(parents)
			index[e.Parent] = i
			parents = append(parents, domain.Parent{
				Ref:        e.Parent,
				GroupID:    e.GroupID,
				Label:      e.Parent.String(),
				OccurredAt: e.OccurredAt,
				Complete:   true,
			})
		}
		parents[i].Events = append(parents[i].Events, e)
	}
	return ProjectTimeline(parents, metric)
}

// ProjectAll projects every metric over the same timeline.
func ProjectAll(parents []domain.Parent) []Projection {
	projections := make([]Projection, 0, len(domain.Metrics))
	for _, m := range domain.Metrics {
		projections = append(projections, ProjectTimeline(parents, m))
	}
	return projections
}

// ProjectTimeline folds an ordered timeline into a series per player.
// A player without a data point at a timeline point gets nil there.
func ProjectTimeline(parents []domain.Parent, metric domain.Metric) Projection {
	p := Projection{
		Metric: metric,
		Labels: make([]string, 0, len(parents)),
		Series: make(map[string]domain.MetricSeries),
	}
	points := make([]map[string]tally, len(parents))
	known := mapset.NewThreadUnsafeSet[string]()
	for i := range parents {
		p.Labels = append(p.Labels, parents[i].Label)
		points[i] = pointTallies(parents[i], metric)
		for _, id := range playersOf(parents[i]) {
			if known.Add(id) {
				p.Players = append(p.Players, id)
			}
		}
	}

	for _, id := range p.Players {
		values := make([]*float64, len(parents))
		var cumulative float64
		for i := range parents {
			t, ok := points[i][id]
			if !ok {
				continue
			}
			if metric.Rare() && t.forV == 0 && t.againstV == 0 {
				continue
			}
			cumulative += t.forV - t.againstV
			v := cumulative
			values[i] = &v
		}
		p.Series[id] = domain.MetricSeries{PlayerID: id, Values: values}
	}
	return p
}

type tally struct {
	forV     float64
	againstV float64
}

// pointTallies sums the for/against values of every participant of a parent.
// Round results win over a stored aggregate unless some round could not be used.
func pointTallies(p domain.Parent, metric domain.Metric) map[string]tally {
	tallies := make(map[string]tally)
	if len(p.Events) > 0 && (p.Complete || len(p.Aggregate) == 0) {
		for _, e := range p.Events {
			for _, side := range []domain.Side{domain.SideTop, domain.SideBottom} {
				own, opp := e.Team(side), e.Team(side.Opposite())
				forV, againstV := teamValues(metric, own.Score, opp.Score)
				for _, id := range own.Players {
					t := tallies[id]
					t.forV += forV
					t.againstV += againstV
					tallies[id] = t
				}
			}
		}
		return tallies
	}
	for _, a := range p.Aggregate {
		forV, againstV := aggregateValues(metric, a)
		t := tallies[a.PlayerID]
		t.forV += forV
		t.againstV += againstV
		tallies[a.PlayerID] = t
	}
	return tallies
}

func playersOf(p domain.Parent) []string {
	var ids []string
	for _, e := range p.Events {
		ids = append(ids, e.Participants()...)
	}
	for _, a := range p.Aggregate {
		ids = append(ids, a.PlayerID)
	}
	return ids
}

func teamValues(metric domain.Metric, own domain.TeamScore, opp domain.TeamScore) (float64, float64) {
	switch metric {
	case domain.MetricStrikes:
		return own.Strikes.Total(), opp.Strikes.Total()
	case domain.MetricPoints:
		return deref(own.Points), deref(opp.Points)
	case domain.MetricCapot:
		return float64(counts(own).Capot), float64(counts(opp).Capot)
	case domain.MetricShutout:
		return float64(counts(own).Shutout), float64(counts(opp).Shutout)
	case domain.MetricCounterCapot:
		return float64(counts(own).CounterCapot), float64(counts(opp).CounterCapot)
	}
	return 0, 0
}

func aggregateValues(metric domain.Metric, a domain.PlayerAggregate) (float64, float64) {
	switch metric {
	case domain.MetricStrikes:
		return a.StrikesFor, a.StrikesAgainst
	case domain.MetricPoints:
		return deref(a.PointsFor), deref(a.PointsAgainst)
	case domain.MetricCapot:
		return float64(a.Capot.For), float64(a.Capot.Against)
	case domain.MetricShutout:
		return float64(a.Shutout.For), float64(a.Shutout.Against)
	case domain.MetricCounterCapot:
		return float64(a.CounterCapot.For), float64(a.CounterCapot.Against)
	}
	return 0, 0
}

func counts(s domain.TeamScore) domain.RareCounts {
	if s.Counts == nil {
		return domain.RareCounts{}
	}
	return *s.Counts
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
