package replay

import (
	"github.com/goserg/jassrating/internal/domain"
)

type span struct {
	first domain.RatingHistoryEntry
	last  domain.RatingHistoryEntry
}

// Snapshots derives one snapshot per (parent, player) from a ledger in ledger
// order. The delta of a snapshot is the net change over all of the parent's
// events, not the last event's delta. Snapshots are returned in the order their
// parent and player first appear in the ledger.
func Snapshots(history []domain.RatingHistoryEntry) []domain.ParentSnapshot {
	type key struct {
		parent domain.ParentRef
		player string
	}
	index := make(map[key]int)
	var spans []span
	for _, e := range history {
		k := key{parent: e.Parent, player: e.PlayerID}
		i, ok := index[k]
		if !ok {
			index[k] = len(spans)
			spans = append(spans, span{first: e, last: e})
			continue
		}
		spans[i].last = e
	}

	snapshots := make([]domain.ParentSnapshot, 0, len(spans))
	for _, s := range spans {
		snapshots = append(snapshots, domain.ParentSnapshot{
			Parent:      s.last.Parent,
			PlayerID:    s.last.PlayerID,
			Rating:      s.last.RatingAfter,
			RatingDelta: s.last.RatingAfter - s.first.RatingBefore(),
			GamesPlayed: s.last.GamesPlayed,
			OccurredAt:  s.last.OccurredAt,
			Seq:         s.last.Seq,
		})
	}
	return snapshots
}
