package sqlite

import (
	"time"

	"github.com/google/uuid"
	"github.com/goserg/jassrating/gen/model"
	"github.com/goserg/jassrating/internal/domain"
)

func convertTeamScoreToDomain(t model.GameTeams) domain.TeamScore {
	score := domain.TeamScore{
		Strikes: domain.Strikes{
			Win:          t.StrikesWin,
			Hill:         t.StrikesHill,
			Capot:        t.StrikesCapot,
			CounterCapot: t.StrikesCounterCapot,
			Shutout:      t.StrikesShutout,
		},
		Points: t.Points,
	}
	if t.CapotCount != nil || t.ShutoutCount != nil || t.CounterCapotCount != nil {
		score.Counts = &domain.RareCounts{
			Capot:        intOrZero(t.CapotCount),
			Shutout:      intOrZero(t.ShutoutCount),
			CounterCapot: intOrZero(t.CounterCapotCount),
		}
	}
	return score
}

func convertTeamScoreFromDomain(kind domain.ParentKind, parentID string, number int, side domain.Side, score domain.TeamScore) model.GameTeams {
	t := model.GameTeams{
		ParentKind:          string(kind),
		ParentID:            parentID,
		Number:              int32(number),
		Side:                string(side),
		StrikesWin:          score.Strikes.Win,
		StrikesHill:         score.Strikes.Hill,
		StrikesCapot:        score.Strikes.Capot,
		StrikesCounterCapot: score.Strikes.CounterCapot,
		StrikesShutout:      score.Strikes.Shutout,
		Points:              score.Points,
	}
	if score.Counts != nil {
		t.CapotCount = int32Ptr(score.Counts.Capot)
		t.ShutoutCount = int32Ptr(score.Counts.Shutout)
		t.CounterCapotCount = int32Ptr(score.Counts.CounterCapot)
	}
	return t
}

func convertAggregateToDomain(a model.TournamentAggregates) domain.PlayerAggregate {
	return domain.PlayerAggregate{
		PlayerID:       a.PlayerID,
		StrikesFor:     a.StrikesFor,
		StrikesAgainst: a.StrikesAgainst,
		PointsFor:      a.PointsFor,
		PointsAgainst:  a.PointsAgainst,
		Capot:          domain.Tally{For: int(a.CapotFor), Against: int(a.CapotAgainst)},
		Shutout:        domain.Tally{For: int(a.ShutoutFor), Against: int(a.ShutoutAgainst)},
		CounterCapot:   domain.Tally{For: int(a.CounterCapotFor), Against: int(a.CounterCapotAgainst)},
	}
}

func convertAggregateFromDomain(tournamentID string, a domain.PlayerAggregate) model.TournamentAggregates {
	return model.TournamentAggregates{
		TournamentID:        tournamentID,
		PlayerID:            a.PlayerID,
		StrikesFor:          a.StrikesFor,
		StrikesAgainst:      a.StrikesAgainst,
		PointsFor:           a.PointsFor,
		PointsAgainst:       a.PointsAgainst,
		CapotFor:            int32(a.Capot.For),
		CapotAgainst:        int32(a.Capot.Against),
		ShutoutFor:          int32(a.Shutout.For),
		ShutoutAgainst:      int32(a.Shutout.Against),
		CounterCapotFor:     int32(a.CounterCapot.For),
		CounterCapotAgainst: int32(a.CounterCapot.Against),
	}
}

func convertHistoryToDomain(h model.RatingHistory) domain.RatingHistoryEntry {
	return domain.RatingHistoryEntry{
		PlayerID:    h.PlayerID,
		EventID:     h.EventID,
		Seq:         int(h.Seq),
		Parent:      domain.ParentRef{Kind: domain.ParentKind(h.ParentKind), ID: h.ParentID},
		GroupID:     h.GroupID,
		Number:      int(h.Number),
		RatingAfter: h.RatingAfter,
		Delta:       h.Delta,
		GamesPlayed: int(h.GamesPlayed),
		OccurredAt:  h.OccurredAt,
	}
}

func convertHistoryFromDomain(scope string, e domain.RatingHistoryEntry) model.RatingHistory {
	return model.RatingHistory{
		Scope:       scope,
		PlayerID:    e.PlayerID,
		EventID:     e.EventID,
		Seq:         int32(e.Seq),
		ParentKind:  string(e.Parent.Kind),
		ParentID:    e.Parent.ID,
		GroupID:     e.GroupID,
		Number:      int32(e.Number),
		RatingAfter: e.RatingAfter,
		Delta:       e.Delta,
		GamesPlayed: int32(e.GamesPlayed),
		OccurredAt:  e.OccurredAt.UTC(),
	}
}

func convertSnapshotToDomain(s model.ParentSnapshots) domain.ParentSnapshot {
	return domain.ParentSnapshot{
		Parent:      domain.ParentRef{Kind: domain.ParentKind(s.ParentKind), ID: s.ParentID},
		PlayerID:    s.PlayerID,
		Rating:      s.Rating,
		RatingDelta: s.RatingDelta,
		GamesPlayed: int(s.GamesPlayed),
		OccurredAt:  s.OccurredAt,
		Seq:         int(s.Seq),
	}
}

func convertSnapshotFromDomain(scope string, s domain.ParentSnapshot) model.ParentSnapshots {
	return model.ParentSnapshots{
		Scope:       scope,
		ParentKind:  string(s.Parent.Kind),
		ParentID:    s.Parent.ID,
		PlayerID:    s.PlayerID,
		Rating:      s.Rating,
		RatingDelta: s.RatingDelta,
		GamesPlayed: int32(s.GamesPlayed),
		OccurredAt:  s.OccurredAt.UTC(),
		Seq:         int32(s.Seq),
	}
}

func convertRunToDomain(r model.RebuildRuns) (domain.RebuildRun, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return domain.RebuildRun{}, err
	}
	return domain.RebuildRun{
		ID:           id,
		Scope:        r.Scope,
		Status:       domain.RunStatus(r.Status),
		StartedAt:    r.StartedAt,
		FinishedAt:   r.FinishedAt,
		Checkpoint:   r.Checkpoint,
		ParentsDone:  int(r.ParentsDone),
		ParentsTotal: int(r.ParentsTotal),
	}, nil
}

func convertRunFromDomain(r domain.RebuildRun) model.RebuildRuns {
	var finished *time.Time
	if r.FinishedAt != nil {
		utc := r.FinishedAt.UTC()
		finished = &utc
	}
	return model.RebuildRuns{
		ID:           r.ID.String(),
		Scope:        r.Scope,
		Status:       string(r.Status),
		StartedAt:    r.StartedAt.UTC(),
		FinishedAt:   finished,
		Checkpoint:   r.Checkpoint,
		ParentsDone:  int32(r.ParentsDone),
		ParentsTotal: int32(r.ParentsTotal),
	}
}

func intOrZero(v *int32) int {
	if v == nil {
		return 0
	}
	return int(*v)
}

func int32Ptr(v int) *int32 {
	i := int32(v)
	return &i
}
