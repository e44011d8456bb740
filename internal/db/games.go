package db

import (
	"context"
)

const gameColumns = `id, program_id, team_id, opponent_team_id, opponent, game_date,
	our_score, opponent_score, current_home_goalie_id, current_opponent_goalie_id, created_at`

func scanGame(row interface{ Scan(...interface{}) error }) (Game, error) {
	var g Game
	err := row.Scan(
		&g.ID, &g.ProgramID, &g.TeamID, &g.OpponentTeamID, &g.Opponent, &g.GameDate,
		&g.OurScore, &g.OpponentScore, &g.CurrentHomeGoalieID, &g.CurrentOpponentGoalieID, &g.CreatedAt,
	)
	return g, err
}

const insertGame = `
INSERT INTO games (` + gameColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertGameParams struct {
	Game Game
}

func (q *Queries) InsertGame(ctx context.Context, arg InsertGameParams) error {
	g := arg.Game
	_, err := q.db.ExecContext(ctx, insertGame,
		g.ID, g.ProgramID, g.TeamID, g.OpponentTeamID, g.Opponent, g.GameDate,
		g.OurScore, g.OpponentScore, g.CurrentHomeGoalieID, g.CurrentOpponentGoalieID, g.CreatedAt,
	)
	return err
}

const getGame = `
SELECT ` + gameColumns + ` FROM games WHERE id = ?
`

func (q *Queries) GetGame(ctx context.Context, id string) (Game, error) {
	return scanGame(q.db.QueryRowContext(ctx, getGame, id))
}

const listGamesByProgram = `
SELECT ` + gameColumns + ` FROM games WHERE program_id = ? ORDER BY game_date DESC, created_at DESC
`

func (q *Queries) ListGamesByProgram(ctx context.Context, programID string) ([]Game, error) {
	rows, err := q.db.QueryContext(ctx, listGamesByProgram, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

const deleteGame = `
DELETE FROM games WHERE id = ?
`

func (q *Queries) DeleteGame(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteGame, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const updateGameScore = `
UPDATE games SET our_score = ?, opponent_score = ? WHERE id = ?
`

type UpdateGameScoreParams struct {
	OurScore      int64
	OpponentScore int64
	ID            string
}

func (q *Queries) UpdateGameScore(ctx context.Context, arg UpdateGameScoreParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateGameScore, arg.OurScore, arg.OpponentScore, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const updateHomeGoalie = `
UPDATE games SET current_home_goalie_id = ? WHERE id = ?
`

const updateOpponentGoalie = `
UPDATE games SET current_opponent_goalie_id = ? WHERE id = ?
`

type UpdateGameGoalieParams struct {
	GoaliePlayerID string
	ID             string
	Home           bool
}

func (q *Queries) UpdateGameGoalie(ctx context.Context, arg UpdateGameGoalieParams) (int64, error) {
	query := updateOpponentGoalie
	if arg.Home {
		query = updateHomeGoalie
	}
	res, err := q.db.ExecContext(ctx, query, arg.GoaliePlayerID, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const updateGameOpponentTeam = `
UPDATE games SET opponent_team_id = ? WHERE id = ?
`

type UpdateGameOpponentTeamParams struct {
	OpponentTeamID string
	ID             string
}

func (q *Queries) UpdateGameOpponentTeam(ctx context.Context, arg UpdateGameOpponentTeamParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateGameOpponentTeam, arg.OpponentTeamID, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
