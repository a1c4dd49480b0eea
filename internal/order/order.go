// Package order builds the single ordered event sequence of a scope.
package order

import (
	"sort"
	"strconv"

	"github.com/goserg/jassrating/internal/domain"
)

const labelLayout = "02.01.2006"

// Events returns a copy of events sorted by occurrence time. Events sharing a
// timestamp keep the recording order of their parent; the remaining ties are
// broken by parent and event id. Seq is set to the index in the result.
func Events(events []domain.GameEvent) []domain.GameEvent {
	ordered := make([]domain.GameEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		return less(ordered[i], ordered[j])
	})
	for i := range ordered {
		ordered[i].Seq = i
	}
	return ordered
}

func less(a, b domain.GameEvent) bool {
	if !a.OccurredAt.Equal(b.OccurredAt) {
		return a.OccurredAt.Before(b.OccurredAt)
	}
	if a.Parent != b.Parent {
		if a.Parent.Kind != b.Parent.Kind {
			return a.Parent.Kind < b.Parent.Kind
		}
		return a.Parent.ID < b.Parent.ID
	}
	if a.Position != b.Position {
		return a.Position < b.Position
	}
	return a.ID < b.ID
}

// Sequence is the ordered content of a scope: the timeline of parents and the
// flat event sequence both folds consume.
type Sequence struct {
	Parents []domain.Parent
	Events  []domain.GameEvent
}

// Build orders parents by completion time and events by Events, labels every
// timeline point and copies the assigned Seq back into each parent.
// Parents that carry neither events nor an aggregate are dropped.
func Build(parents []domain.Parent) Sequence {
	timeline := make([]domain.Parent, 0, len(parents))
	var all []domain.GameEvent
	for _, p := range parents {
		if len(p.Events) == 0 && len(p.Aggregate) == 0 {
			continue
		}
		timeline = append(timeline, p)
		all = append(all, p.Events...)
	}
	sort.SliceStable(timeline, func(i, j int) bool {
		a, b := timeline[i], timeline[j]
		if !a.OccurredAt.Equal(b.OccurredAt) {
			return a.OccurredAt.Before(b.OccurredAt)
		}
		if a.Ref.Kind != b.Ref.Kind {
			return a.Ref.Kind < b.Ref.Kind
		}
		return a.Ref.ID < b.Ref.ID
	})

	events := Events(all)
	seqs := make(map[string]int, len(events))
	for i := range events {
		seqs[events[i].ID] = events[i].Seq
	}
	labels := make(map[string]int)
	for i := range timeline {
		ordered := make([]domain.GameEvent, len(timeline[i].Events))
		copy(ordered, timeline[i].Events)
		for j := range ordered {
			ordered[j].Seq = seqs[ordered[j].ID]
		}
		sort.SliceStable(ordered, func(a, b int) bool {
			return ordered[a].Seq < ordered[b].Seq
		})
		timeline[i].Events = ordered
		timeline[i].Label = label(timeline[i], labels)
	}
	return Sequence{
		Parents: timeline,
		Events:  events,
	}
}

func label(p domain.Parent, used map[string]int) string {
	l := p.OccurredAt.UTC().Format(labelLayout)
	if p.Label != "" {
		l += " " + p.Label
	}
	used[l]++
	if n := used[l]; n > 1 {
		l += " #" + strconv.Itoa(n)
	}
	return l
}
