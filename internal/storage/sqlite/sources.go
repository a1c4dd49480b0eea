package sqlite

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/go-jet/jet/v2/sqlite"
	"github.com/goserg/jassrating/gen/model"
	"github.com/goserg/jassrating/gen/table"
	"github.com/goserg/jassrating/internal/domain"
)

type gameKey struct {
	parent string
	number int32
}

// gameRows is the flattened form of the sub-results of one kind of parent.
type gameRows struct {
	numbers map[int32]struct{}
	games   []model.Games
	teams   map[gameKey][]model.GameTeams
	players map[gameKey][]model.GamePlayers
}

func (s *Storage) ListSessions(ctx context.Context, scope string) ([]domain.SessionRecord, error) {
	stmt := table.Sessions.SELECT(table.Sessions.AllColumns)
	if scope != domain.GlobalScope {
		stmt = stmt.WHERE(table.Sessions.GroupID.EQ(sqlite.String(scope)))
	}
	var sessions []model.Sessions
	err := stmt.
		ORDER_BY(table.Sessions.CompletedAt.ASC(), table.Sessions.ID.ASC()).
		QueryContext(ctx, s.db, &sessions)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}

	var participants []model.SessionParticipants
	err = table.SessionParticipants.
		SELECT(table.SessionParticipants.AllColumns).
		WHERE(table.SessionParticipants.SessionID.IN(sessionIDs(scope))).
		ORDER_BY(table.SessionParticipants.SessionID.ASC(), table.SessionParticipants.Position.ASC()).
		QueryContext(ctx, s.db, &participants)
	if err != nil {
		return nil, err
	}
	roster := make(map[string][]string)
	for _, p := range participants {
		roster[p.SessionID] = append(roster[p.SessionID], p.PlayerID)
	}

	rows, err := s.loadGames(ctx, domain.ParentSession, sessionIDs(scope))
	if err != nil {
		return nil, err
	}
	games := make(map[string][]domain.SessionGame)
	for _, g := range rows.games {
		key := gameKey{parent: g.ParentID, number: g.Number}
		top, bottom := rows.sessionTeams(key)
		games[g.ParentID] = append(games[g.ParentID], domain.SessionGame{
			Number:   int(g.Number),
			PlayedAt: g.PlayedAt,
			Top:      top,
			Bottom:   bottom,
		})
	}

	records := make([]domain.SessionRecord, 0, len(sessions))
	for _, session := range sessions {
		records = append(records, domain.SessionRecord{
			ID:           session.ID,
			GroupID:      session.GroupID,
			CompletedAt:  session.CompletedAt,
			Participants: roster[session.ID],
			Games:        games[session.ID],
		})
	}
	return records, nil
}

func (s *Storage) ListTournaments(ctx context.Context, scope string) ([]domain.TournamentRecord, error) {
	stmt := table.Tournaments.SELECT(table.Tournaments.AllColumns)
	if scope != domain.GlobalScope {
		stmt = stmt.WHERE(table.Tournaments.GroupID.EQ(sqlite.String(scope)))
	}
	var tournaments []model.Tournaments
	err := stmt.
		ORDER_BY(table.Tournaments.CompletedAt.ASC(), table.Tournaments.ID.ASC()).
		QueryContext(ctx, s.db, &tournaments)
	if err != nil {
		return nil, err
	}
	if len(tournaments) == 0 {
		return nil, nil
	}

	var aggregates []model.TournamentAggregates
	err = table.TournamentAggregates.
		SELECT(table.TournamentAggregates.AllColumns).
		WHERE(table.TournamentAggregates.TournamentID.IN(tournamentIDs(scope))).
		ORDER_BY(table.TournamentAggregates.TournamentID.ASC(), table.TournamentAggregates.PlayerID.ASC()).
		QueryContext(ctx, s.db, &aggregates)
	if err != nil {
		return nil, err
	}
	totals := make(map[string][]domain.PlayerAggregate)
	for _, a := range aggregates {
		totals[a.TournamentID] = append(totals[a.TournamentID], convertAggregateToDomain(a))
	}

	rows, err := s.loadGames(ctx, domain.ParentTournament, tournamentIDs(scope))
	if err != nil {
		return nil, err
	}
	rounds := make(map[string][]domain.TournamentRound)
	for _, g := range rows.games {
		key := gameKey{parent: g.ParentID, number: g.Number}
		round := domain.TournamentRound{
			Number:      int(g.Number),
			CompletedAt: g.PlayedAt,
		}
		for _, p := range rows.players[key] {
			round.Tags = append(round.Tags, domain.TeamTag{PlayerID: p.PlayerID, Team: p.Team})
		}
		for _, t := range rows.teams[key] {
			switch domain.Side(t.Side) {
			case domain.SideTop:
				round.Top = convertTeamScoreToDomain(t)
			case domain.SideBottom:
				round.Bottom = convertTeamScoreToDomain(t)
			}
		}
		rounds[g.ParentID] = append(rounds[g.ParentID], round)
	}

	records := make([]domain.TournamentRecord, 0, len(tournaments))
	for _, t := range tournaments {
		records = append(records, domain.TournamentRecord{
			ID:          t.ID,
			GroupID:     t.GroupID,
			Name:        t.Name,
			CompletedAt: t.CompletedAt,
			Rounds:      rounds[t.ID],
			Aggregate:   totals[t.ID],
		})
	}
	return records, nil
}

func (s *Storage) ListGroups(ctx context.Context) ([]string, error) {
	var sessions []model.Sessions
	err := table.Sessions.
		SELECT(table.Sessions.AllColumns).
		QueryContext(ctx, s.db, &sessions)
	if err != nil {
		return nil, err
	}
	var tournaments []model.Tournaments
	err = table.Tournaments.
		SELECT(table.Tournaments.AllColumns).
		QueryContext(ctx, s.db, &tournaments)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	for _, session := range sessions {
		seen[session.GroupID] = struct{}{}
	}
	for _, t := range tournaments {
		seen[t.GroupID] = struct{}{}
	}
	groups := make([]string, 0, len(seen))
	for group := range seen {
		groups = append(groups, group)
	}
	sort.Strings(groups)
	return groups, nil
}

// ImportSessions replaces the stored sub-results of every given session.
func (s *Storage) ImportSessions(ctx context.Context, sessions []domain.SessionRecord) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, session := range sessions {
			_, err := table.Sessions.
				INSERT(table.Sessions.AllColumns).
				MODEL(model.Sessions{
					ID:          session.ID,
					GroupID:     session.GroupID,
					CompletedAt: session.CompletedAt.UTC(),
				}).
				ON_CONFLICT(table.Sessions.ID).
				DO_UPDATE(sqlite.SET(
					table.Sessions.GroupID.SET(table.Sessions.EXCLUDED.GroupID),
					table.Sessions.CompletedAt.SET(table.Sessions.EXCLUDED.CompletedAt),
				)).
				ExecContext(ctx, tx)
			if err != nil {
				return err
			}

			_, err = table.SessionParticipants.
				DELETE().
				WHERE(table.SessionParticipants.SessionID.EQ(sqlite.String(session.ID))).
				ExecContext(ctx, tx)
			if err != nil {
				return err
			}
			var roster []model.SessionParticipants
			for i, id := range session.Participants {
				roster = append(roster, model.SessionParticipants{SessionID: session.ID, PlayerID: id, Position: int32(i)})
			}
			for _, chunk := range chunks(roster, insertChunk) {
				_, err = table.SessionParticipants.
					INSERT(table.SessionParticipants.AllColumns).
					MODELS(chunk).
					ON_CONFLICT(table.SessionParticipants.SessionID, table.SessionParticipants.PlayerID).
					DO_NOTHING().
					ExecContext(ctx, tx)
				if err != nil {
					return err
				}
			}

			var rows gameRows
			for i, g := range session.Games {
				number := gameNumber(g.Number, i)
				if !rows.add(domain.ParentSession, session.ID, number, i, g.PlayedAt) {
					s.log.WithField("session", session.ID).WithField("number", number).Warn("repeated game number, keeping the first occurrence")
					continue
				}
				rows.addTeam(domain.ParentSession, session.ID, number, domain.SideTop, g.Top.Score)
				rows.addTeam(domain.ParentSession, session.ID, number, domain.SideBottom, g.Bottom.Score)
				for j, id := range g.Top.Players {
					rows.addPlayer(domain.ParentSession, session.ID, number, id, string(domain.SideTop), j)
				}
				for j, id := range g.Bottom.Players {
					rows.addPlayer(domain.ParentSession, session.ID, number, id, string(domain.SideBottom), j)
				}
			}
			err = s.replaceGames(ctx, tx, domain.ParentSession, session.ID, rows)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// ImportTournaments replaces the stored rounds and aggregates of every given tournament.
func (s *Storage) ImportTournaments(ctx context.Context, tournaments []domain.TournamentRecord) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, t := range tournaments {
			_, err := table.Tournaments.
				INSERT(table.Tournaments.AllColumns).
				MODEL(model.Tournaments{
					ID:          t.ID,
					GroupID:     t.GroupID,
					Name:        t.Name,
					CompletedAt: t.CompletedAt.UTC(),
				}).
				ON_CONFLICT(table.Tournaments.ID).
				DO_UPDATE(sqlite.SET(
					table.Tournaments.GroupID.SET(table.Tournaments.EXCLUDED.GroupID),
					table.Tournaments.Name.SET(table.Tournaments.EXCLUDED.Name),
					table.Tournaments.CompletedAt.SET(table.Tournaments.EXCLUDED.CompletedAt),
				)).
				ExecContext(ctx, tx)
			if err != nil {
				return err
			}

			_, err = table.TournamentAggregates.
				DELETE().
				WHERE(table.TournamentAggregates.TournamentID.EQ(sqlite.String(t.ID))).
				ExecContext(ctx, tx)
			if err != nil {
				return err
			}
			var aggregates []model.TournamentAggregates
			for _, a := range t.Aggregate {
				aggregates = append(aggregates, convertAggregateFromDomain(t.ID, a))
			}
			for _, chunk := range chunks(aggregates, insertChunk) {
				_, err = table.TournamentAggregates.
					INSERT(table.TournamentAggregates.AllColumns).
					MODELS(chunk).
					ON_CONFLICT(table.TournamentAggregates.TournamentID, table.TournamentAggregates.PlayerID).
					DO_NOTHING().
					ExecContext(ctx, tx)
				if err != nil {
					return err
				}
			}

			var rows gameRows
			for i, r := range t.Rounds {
				number := gameNumber(r.Number, i)
				if !rows.add(domain.ParentTournament, t.ID, number, i, r.CompletedAt) {
					s.log.WithField("tournament", t.ID).WithField("number", number).Warn("repeated round number, keeping the first occurrence")
					continue
				}
				rows.addTeam(domain.ParentTournament, t.ID, number, domain.SideTop, r.Top)
				rows.addTeam(domain.ParentTournament, t.ID, number, domain.SideBottom, r.Bottom)
				for j, tag := range r.Tags {
					rows.addPlayer(domain.ParentTournament, t.ID, number, tag.PlayerID, tag.Team, j)
				}
			}
			err = s.replaceGames(ctx, tx, domain.ParentTournament, t.ID, rows)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func sessionIDs(scope string) sqlite.SelectStatement {
	stmt := table.Sessions.SELECT(table.Sessions.ID)
	if scope != domain.GlobalScope {
		stmt = stmt.WHERE(table.Sessions.GroupID.EQ(sqlite.String(scope)))
	}
	return stmt
}

func tournamentIDs(scope string) sqlite.SelectStatement {
	stmt := table.Tournaments.SELECT(table.Tournaments.ID)
	if scope != domain.GlobalScope {
		stmt = stmt.WHERE(table.Tournaments.GroupID.EQ(sqlite.String(scope)))
	}
	return stmt
}

// loadGames reads the games, teams and players of the parents selected by parentIDs.
func (s *Storage) loadGames(ctx context.Context, kind domain.ParentKind, parentIDs sqlite.SelectStatement) (gameRows, error) {
	rows := gameRows{
		teams:   make(map[gameKey][]model.GameTeams),
		players: make(map[gameKey][]model.GamePlayers),
	}
	err := table.Games.
		SELECT(table.Games.AllColumns).
		WHERE(table.Games.ParentKind.EQ(sqlite.String(string(kind))).
			AND(table.Games.ParentID.IN(parentIDs))).
		ORDER_BY(table.Games.ParentID.ASC(), table.Games.Position.ASC()).
		QueryContext(ctx, s.db, &rows.games)
	if err != nil {
		return gameRows{}, err
	}

	var teams []model.GameTeams
	err = table.GameTeams.
		SELECT(table.GameTeams.AllColumns).
		WHERE(table.GameTeams.ParentKind.EQ(sqlite.String(string(kind))).
			AND(table.GameTeams.ParentID.IN(parentIDs))).
		QueryContext(ctx, s.db, &teams)
	if err != nil {
		return gameRows{}, err
	}
	for _, t := range teams {
		key := gameKey{parent: t.ParentID, number: t.Number}
		rows.teams[key] = append(rows.teams[key], t)
	}

	var players []model.GamePlayers
	err = table.GamePlayers.
		SELECT(table.GamePlayers.AllColumns).
		WHERE(table.GamePlayers.ParentKind.EQ(sqlite.String(string(kind))).
			AND(table.GamePlayers.ParentID.IN(parentIDs))).
		QueryContext(ctx, s.db, &players)
	if err != nil {
		return gameRows{}, err
	}
	sort.SliceStable(players, func(i, j int) bool {
		a, b := players[i], players[j]
		if a.ParentID != b.ParentID {
			return a.ParentID < b.ParentID
		}
		if a.Number != b.Number {
			return a.Number < b.Number
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.Team < b.Team
	})
	for _, p := range players {
		key := gameKey{parent: p.ParentID, number: p.Number}
		rows.players[key] = append(rows.players[key], p)
	}
	return rows, nil
}

func (r gameRows) sessionTeams(key gameKey) (top domain.TeamResult, bottom domain.TeamResult) {
	for _, t := range r.teams[key] {
		switch domain.Side(t.Side) {
		case domain.SideTop:
			top.Score = convertTeamScoreToDomain(t)
		case domain.SideBottom:
			bottom.Score = convertTeamScoreToDomain(t)
		}
	}
	for _, p := range r.players[key] {
		switch domain.Side(p.Team) {
		case domain.SideTop:
			top.Players = append(top.Players, p.PlayerID)
		case domain.SideBottom:
			bottom.Players = append(bottom.Players, p.PlayerID)
		}
	}
	return top, bottom
}

// gameNumber numbers an unnumbered game or round by its position in the record.
func gameNumber(number int, position int) int {
	if number == 0 {
		return position + 1
	}
	return number
}

// add records a game and reports false when its number was already added.
func (r *gameRows) add(kind domain.ParentKind, parentID string, number int, position int, playedAt *time.Time) bool {
	if r.numbers == nil {
		r.numbers = make(map[int32]struct{})
	}
	if _, ok := r.numbers[int32(number)]; ok {
		return false
	}
	r.numbers[int32(number)] = struct{}{}
	var at *time.Time
	if playedAt != nil {
		utc := playedAt.UTC()
		at = &utc
	}
	r.games = append(r.games, model.Games{
		ParentKind: string(kind),
		ParentID:   parentID,
		Number:     int32(number),
		Position:   int32(position),
		PlayedAt:   at,
	})
	return true
}

func (r *gameRows) addTeam(kind domain.ParentKind, parentID string, number int, side domain.Side, score domain.TeamScore) {
	if r.teams == nil {
		r.teams = make(map[gameKey][]model.GameTeams)
	}
	key := gameKey{parent: parentID, number: int32(number)}
	r.teams[key] = append(r.teams[key], convertTeamScoreFromDomain(kind, parentID, number, side, score))
}

func (r *gameRows) addPlayer(kind domain.ParentKind, parentID string, number int, playerID string, team string, position int) {
	if r.players == nil {
		r.players = make(map[gameKey][]model.GamePlayers)
	}
	key := gameKey{parent: parentID, number: int32(number)}
	r.players[key] = append(r.players[key], model.GamePlayers{
		ParentKind: string(kind),
		ParentID:   parentID,
		Number:     int32(number),
		PlayerID:   playerID,
		Team:       team,
		Position:   int32(position),
	})
}

// replaceGames deletes the stored sub-results of one parent and inserts rows.
func (s *Storage) replaceGames(ctx context.Context, tx *sql.Tx, kind domain.ParentKind, parentID string, rows gameRows) error {
	parentKind := sqlite.String(string(kind))
	id := sqlite.String(parentID)
	_, err := table.Games.
		DELETE().
		WHERE(table.Games.ParentKind.EQ(parentKind).AND(table.Games.ParentID.EQ(id))).
		ExecContext(ctx, tx)
	if err != nil {
		return err
	}
	_, err = table.GameTeams.
		DELETE().
		WHERE(table.GameTeams.ParentKind.EQ(parentKind).AND(table.GameTeams.ParentID.EQ(id))).
		ExecContext(ctx, tx)
	if err != nil {
		return err
	}
	_, err = table.GamePlayers.
		DELETE().
		WHERE(table.GamePlayers.ParentKind.EQ(parentKind).AND(table.GamePlayers.ParentID.EQ(id))).
		ExecContext(ctx, tx)
	if err != nil {
		return err
	}

	var teams []model.GameTeams
	var players []model.GamePlayers
	for _, g := range rows.games {
		key := gameKey{parent: g.ParentID, number: g.Number}
		teams = append(teams, rows.teams[key]...)
		players = append(players, rows.players[key]...)
	}

	for _, chunk := range chunks(rows.games, insertChunk) {
		_, err = table.Games.
			INSERT(table.Games.AllColumns).
			MODELS(chunk).
			ExecContext(ctx, tx)
		if err != nil {
			return err
		}
	}
	for _, chunk := range chunks(teams, insertChunk) {
		_, err = table.GameTeams.
			INSERT(table.GameTeams.AllColumns).
			MODELS(chunk).
			ExecContext(ctx, tx)
		if err != nil {
			return err
		}
	}
	for _, chunk := range chunks(players, insertChunk) {
		_, err = table.GamePlayers.
			INSERT(table.GamePlayers.AllColumns).
			MODELS(chunk).
			ON_CONFLICT(table.GamePlayers.ParentKind, table.GamePlayers.ParentID, table.GamePlayers.Number, table.GamePlayers.PlayerID, table.GamePlayers.Team).
			DO_NOTHING().
			ExecContext(ctx, tx)
		if err != nil {
			return err
		}
	}
	return nil
}
