// Package normalize turns raw session and tournament records into GameEvents.
//
// Bad sub-results are never fatal: they are reported as domain.Skip values and
// the remaining events of the record are still produced.
package normalize

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/goserg/jassrating/internal/domain"
)

// Result is the normalized content of a scope.
type Result struct {
	Parents []domain.Parent
	Skipped []domain.Skip
}

// Events returns the events of all parents in parent order.
func (r Result) Events() []domain.GameEvent {
	var events []domain.GameEvent
	for i := range r.Parents {
		events = append(events, r.Parents[i].Events...)
	}
	return events
}

func All(sessions []domain.SessionRecord, tournaments []domain.TournamentRecord) Result {
	var res Result
	for i := range sessions {
		parent, skipped, ok := Session(sessions[i])
		res.Skipped = append(res.Skipped, skipped...)
		if ok {
			res.Parents = append(res.Parents, parent)
		}
	}
	for i := range tournaments {
		parent, skipped, ok := Tournament(tournaments[i])
		res.Skipped = append(res.Skipped, skipped...)
		if ok {
			res.Parents = append(res.Parents, parent)
		}
	}
	return res
}

// Session converts every completed game of a session into a session_game event.
// ok is false when the record itself is unusable.
func Session(rec domain.SessionRecord) (parent domain.Parent, skipped []domain.Skip, ok bool) {
	ref := domain.ParentRef{Kind: domain.ParentSession, ID: rec.ID}
	if rec.ID == "" || rec.CompletedAt.IsZero() {
		return domain.Parent{}, []domain.Skip{{
			Parent: ref,
			Reason: domain.SkipMalformed,
			Detail: "session without id or completion time",
		}}, false
	}
	parent = domain.Parent{
		Ref:        ref,
		GroupID:    rec.GroupID,
		OccurredAt: rec.CompletedAt,
		Complete:   true,
	}
	roster := mapset.NewThreadUnsafeSet[string](rec.Participants...)
	seen := mapset.NewThreadUnsafeSet[int]()
	for i, game := range rec.Games {
		number := game.Number
		if number == 0 {
			number = i + 1
		}
		skip := func(reason domain.SkipReason, format string, args ...any) {
			skipped = append(skipped, domain.Skip{
				Parent:   ref,
				Number:   number,
				Position: i,
				Reason:   reason,
				Detail:   fmt.Sprintf(format, args...),
			})
		}
		if !seen.Add(number) {
			skip(domain.SkipMalformed, "duplicate game number %d", number)
			continue
		}
		if reason, detail := checkTeams(game.Top.Players, game.Bottom.Players); reason != "" {
			skip(reason, "%s", detail)
			continue
		}
		if roster.Cardinality() > 0 {
			if outsider, found := firstOutside(roster, game.Top.Players, game.Bottom.Players); found {
				skip(domain.SkipAmbiguous, "player %s is not on the session roster", outsider)
				continue
			}
		}
		if detail := checkScore(game.Top.Score); detail != "" {
			skip(domain.SkipMalformed, "top team: %s", detail)
			continue
		}
		if detail := checkScore(game.Bottom.Score); detail != "" {
			skip(domain.SkipMalformed, "bottom team: %s", detail)
			continue
		}
		occurredAt := rec.CompletedAt
		if game.PlayedAt != nil && !game.PlayedAt.IsZero() {
			occurredAt = *game.PlayedAt
		}
		parent.Events = append(parent.Events, domain.GameEvent{
			ID:         eventID(ref, number),
			Kind:       domain.KindSessionGame,
			OccurredAt: occurredAt,
			GroupID:    rec.GroupID,
			Parent:     ref,
			Number:     number,
			Position:   len(parent.Events),
			Top:        copyTeam(game.Top),
			Bottom:     copyTeam(game.Bottom),
		})
	}
	parent.Complete = len(skipped) == 0
	return parent, skipped, true
}

// Tournament converts every round of a tournament into a tournament_round event,
// placing players on teams by their explicit team tag.
func Tournament(rec domain.TournamentRecord) (parent domain.Parent, skipped []domain.Skip, ok bool) {
	ref := domain.ParentRef{Kind: domain.ParentTournament, ID: rec.ID}
	if rec.ID == "" || rec.CompletedAt.IsZero() {
		return domain.Parent{}, []domain.Skip{{
			Parent: ref,
			Reason: domain.SkipMalformed,
			Detail: "tournament without id or completion time",
		}}, false
	}
	parent = domain.Parent{
		Ref:        ref,
		GroupID:    rec.GroupID,
		Label:      rec.Name,
		OccurredAt: rec.CompletedAt,
		Aggregate:  rec.Aggregate,
	}

	rounds := make([]domain.TournamentRound, len(rec.Rounds))
	copy(rounds, rec.Rounds)
	for i := range rounds {
		if rounds[i].Number == 0 {
			rounds[i].Number = i + 1
		}
	}
	sort.SliceStable(rounds, func(i, j int) bool {
		return rounds[i].Number < rounds[j].Number
	})

	seen := mapset.NewThreadUnsafeSet[int]()
	for i, round := range rounds {
		skip := func(reason domain.SkipReason, format string, args ...any) {
			skipped = append(skipped, domain.Skip{
				Parent:   ref,
				Number:   round.Number,
				Position: i,
				Reason:   reason,
				Detail:   fmt.Sprintf(format, args...),
			})
		}
		if !seen.Add(round.Number) {
			skip(domain.SkipMalformed, "duplicate round number %d", round.Number)
			continue
		}
		top, bottom, reason, detail := resolveTags(round.Tags)
		if reason == "" {
			reason, detail = checkTeams(top, bottom)
		}
		if reason != "" {
			skip(reason, "%s", detail)
			continue
		}
		if detail := checkScore(round.Top); detail != "" {
			skip(domain.SkipMalformed, "top team: %s", detail)
			continue
		}
		if detail := checkScore(round.Bottom); detail != "" {
			skip(domain.SkipMalformed, "bottom team: %s", detail)
			continue
		}
		occurredAt := rec.CompletedAt
		if round.CompletedAt != nil && !round.CompletedAt.IsZero() {
			occurredAt = *round.CompletedAt
		}
		parent.Events = append(parent.Events, domain.GameEvent{
			ID:         eventID(ref, round.Number),
			Kind:       domain.KindTournamentRound,
			OccurredAt: occurredAt,
			GroupID:    rec.GroupID,
			Parent:     ref,
			Number:     round.Number,
			Position:   len(parent.Events),
			Top:        domain.TeamResult{Players: top, Score: round.Top},
			Bottom:     domain.TeamResult{Players: bottom, Score: round.Bottom},
		})
	}
	parent.Complete = len(skipped) == 0 && len(parent.Events) > 0
	return parent, skipped, true
}

func eventID(ref domain.ParentRef, number int) string {
	return ref.String() + ":" + strconv.Itoa(number)
}

func copyTeam(t domain.TeamResult) domain.TeamResult {
	players := make([]string, len(t.Players))
	copy(players, t.Players)
	return domain.TeamResult{Players: players, Score: t.Score}
}

// resolveTags splits tagged players into the two teams in tag order.
func resolveTags(tags []domain.TeamTag) (top []string, bottom []string, reason domain.SkipReason, detail string) {
	placed := make(map[string]domain.Side, len(tags))
	for _, tag := range tags {
		if tag.PlayerID == "" {
			return nil, nil, domain.SkipMalformed, "team tag without player"
		}
		side, ok := parseSide(tag.Team)
		if !ok {
			return nil, nil, domain.SkipAmbiguous, fmt.Sprintf("player %s has unknown team tag %q", tag.PlayerID, tag.Team)
		}
		if prev, dup := placed[tag.PlayerID]; dup {
			if prev != side {
				return nil, nil, domain.SkipAmbiguous, fmt.Sprintf("player %s is tagged for both teams", tag.PlayerID)
			}
			continue
		}
		placed[tag.PlayerID] = side
		if side == domain.SideTop {
			top = append(top, tag.PlayerID)
		} else {
			bottom = append(bottom, tag.PlayerID)
		}
	}
	return top, bottom, "", ""
}

func parseSide(tag string) (domain.Side, bool) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "top", "1", "a", "team1", "team_1", "home":
		return domain.SideTop, true
	case "bottom", "2", "b", "team2", "team_2", "away":
		return domain.SideBottom, true
	}
	return "", false
}

func checkTeams(top []string, bottom []string) (domain.SkipReason, string) {
	if len(top) == 0 || len(bottom) == 0 {
		return domain.SkipMalformed, "both teams need at least one player"
	}
	topSet := mapset.NewThreadUnsafeSet[string](top...)
	bottomSet := mapset.NewThreadUnsafeSet[string](bottom...)
	if topSet.Contains("") || bottomSet.Contains("") {
		return domain.SkipMalformed, "empty player id"
	}
	if topSet.Cardinality() != len(top) || bottomSet.Cardinality() != len(bottom) {
		return domain.SkipMalformed, "player listed twice in one team"
	}
	if both := topSet.Intersect(bottomSet); both.Cardinality() > 0 {
		return domain.SkipAmbiguous, fmt.Sprintf("players on both teams: %s", strings.Join(sorted(both.ToSlice()), ", "))
	}
	return "", ""
}

func checkScore(s domain.TeamScore) string {
	if s.Strikes.Negative() {
		return "negative strikes"
	}
	if s.Counts != nil && (s.Counts.Capot < 0 || s.Counts.Shutout < 0 || s.Counts.CounterCapot < 0) {
		return "negative rare event count"
	}
	if s.Points != nil && *s.Points < 0 {
		return "negative points"
	}
	return ""
}

func firstOutside(roster mapset.Set[string], teams ...[]string) (string, bool) {
	for _, team := range teams {
		for _, id := range team {
			if !roster.Contains(id) {
				return id, true
			}
		}
	}
	return "", false
}

func sorted(ids []string) []string {
	sort.Strings(ids)
	return ids
}
