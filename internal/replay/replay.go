// Package replay folds an ordered event sequence into ratings and the rating ledger.
package replay

import (
	"github.com/goserg/jassrating/internal/domain"
	"github.com/goserg/jassrating/internal/elo"
)

// Machine owns the rating state of one replay. It is not safe for concurrent use;
// independent scopes use independent machines.
type Machine struct {
	calc     elo.Calculator
	baseline float64

	states  map[string]*domain.PlayerRatingState
	seen    []string
	history []domain.RatingHistoryEntry
}

func New(calc elo.Calculator, baseline float64) *Machine {
	return &Machine{
		calc:     calc,
		baseline: baseline,
		states:   make(map[string]*domain.PlayerRatingState),
	}
}

func (m *Machine) state(playerID string) *domain.PlayerRatingState {
	st, ok := m.states[playerID]
	if !ok {
		st = &domain.PlayerRatingState{PlayerID: playerID, Rating: m.baseline}
		m.states[playerID] = st
		m.seen = append(m.seen, playerID)
	}
	return st
}

func (m *Machine) teamRating(players []string) float64 {
	ratings := make([]float64, len(players))
	for i, id := range players {
		ratings[i] = m.state(id).Rating
	}
	return elo.TeamRating(ratings)
}

// Apply processes one event and returns the ledger entries it produced, one per participant.
func (m *Machine) Apply(e domain.GameEvent) []domain.RatingHistoryEntry {
	topRating := m.teamRating(e.Top.Players)
	bottomRating := m.teamRating(e.Bottom.Players)
	topOutcome, bottomOutcome := e.Totals()
	deltaTop, deltaBottom := m.calc.Delta(topRating, bottomRating, topOutcome, bottomOutcome)

	entries := make([]domain.RatingHistoryEntry, 0, len(e.Top.Players)+len(e.Bottom.Players))
	entries = m.applyTeam(entries, e, e.Top.Players, m.calc.PerPlayer(deltaTop, len(e.Top.Players)))
	entries = m.applyTeam(entries, e, e.Bottom.Players, m.calc.PerPlayer(deltaBottom, len(e.Bottom.Players)))
	m.history = append(m.history, entries...)
	return entries
}

func (m *Machine) applyTeam(entries []domain.RatingHistoryEntry, e domain.GameEvent, players []string, delta float64) []domain.RatingHistoryEntry {
	for _, id := range players {
		st := m.state(id)
		st.Rating += delta
		st.GamesPlayed++
		entries = append(entries, domain.RatingHistoryEntry{
			PlayerID:    id,
			EventID:     e.ID,
			Seq:         e.Seq,
			Parent:      e.Parent,
			GroupID:     e.GroupID,
			Number:      e.Number,
			RatingAfter: st.Rating,
			Delta:       delta,
			GamesPlayed: st.GamesPlayed,
			OccurredAt:  e.OccurredAt,
		})
	}
	return entries
}

func (m *Machine) State(playerID string) (domain.PlayerRatingState, bool) {
	st, ok := m.states[playerID]
	if !ok {
		return domain.PlayerRatingState{}, false
	}
	return *st, true
}

// States returns the current states in first-seen order.
func (m *Machine) States() []domain.PlayerRatingState {
	states := make([]domain.PlayerRatingState, 0, len(m.seen))
	for _, id := range m.seen {
		states = append(states, *m.states[id])
	}
	return states
}

func (m *Machine) History() []domain.RatingHistoryEntry {
	return m.history
}

type Result struct {
	States  []domain.PlayerRatingState
	History []domain.RatingHistoryEntry
}

func (r Result) ByPlayer() map[string]domain.PlayerRatingState {
	m := make(map[string]domain.PlayerRatingState, len(r.States))
	for _, s := range r.States {
		m[s.PlayerID] = s
	}
	return m
}

// Replay folds the ordered events from the baseline. Every referenced player
// is initialised before the first event so that States keeps first-seen order.
func Replay(calc elo.Calculator, baseline float64, events []domain.GameEvent) Result {
	m := New(calc, baseline)
	for i := range events {
		for _, id := range events[i].Participants() {
			m.state(id)
		}
	}
	for i := range events {
		m.Apply(events[i])
	}
	return Result{
		States:  m.States(),
		History: m.History(),
	}
}
