package db

import (
	"context"
)

const playerColumns = `id, program_id, team_id, game_id, name, number, position, is_opponent, created_at`

func scanPlayer(row interface{ Scan(...interface{}) error }) (Player, error) {
	var p Player
	err := row.Scan(
		&p.ID, &p.ProgramID, &p.TeamID, &p.GameID, &p.Name, &p.Number, &p.Position, &p.IsOpponent, &p.CreatedAt,
	)
	return p, err
}

const insertPlayer = `
INSERT INTO players (` + playerColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertPlayerParams struct {
	Player Player
}

func (q *Queries) InsertPlayer(ctx context.Context, arg InsertPlayerParams) error {
	p := arg.Player
	_, err := q.db.ExecContext(ctx, insertPlayer,
		p.ID, p.ProgramID, p.TeamID, p.GameID, p.Name, p.Number, p.Position, p.IsOpponent, p.CreatedAt,
	)
	return err
}

const getPlayer = `
SELECT ` + playerColumns + ` FROM players WHERE id = ?
`

func (q *Queries) GetPlayer(ctx context.Context, id string) (Player, error) {
	return scanPlayer(q.db.QueryRowContext(ctx, getPlayer, id))
}

func (q *Queries) queryPlayers(ctx context.Context, query string, args ...interface{}) ([]Player, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

const listPlayersByProgram = `
SELECT ` + playerColumns + ` FROM players
WHERE program_id = ? AND is_opponent = 0 ORDER BY number
`

func (q *Queries) ListPlayersByProgram(ctx context.Context, programID string) ([]Player, error) {
	return q.queryPlayers(ctx, listPlayersByProgram, programID)
}

const listOpponentPlayersByGame = `
SELECT ` + playerColumns + ` FROM players
WHERE game_id = ? AND is_opponent = 1 ORDER BY number
`

func (q *Queries) ListOpponentPlayersByGame(ctx context.Context, gameID string) ([]Player, error) {
	return q.queryPlayers(ctx, listOpponentPlayersByGame, gameID)
}

const updatePlayer = `
UPDATE players SET name = ?, number = ?, position = ? WHERE id = ?
`

type UpdatePlayerParams struct {
	Name     string
	Number   int64
	Position string
	ID       string
}

func (q *Queries) UpdatePlayer(ctx context.Context, arg UpdatePlayerParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updatePlayer, arg.Name, arg.Number, arg.Position, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const assignOpponentPlayersToTeam = `
UPDATE players SET team_id = ? WHERE game_id = ? AND is_opponent = 1
`

type AssignOpponentPlayersToTeamParams struct {
	TeamID string
	GameID string
}

func (q *Queries) AssignOpponentPlayersToTeam(ctx context.Context, arg AssignOpponentPlayersToTeamParams) error {
	_, err := q.db.ExecContext(ctx, assignOpponentPlayersToTeam, arg.TeamID, arg.GameID)
	return err
}

const deletePlayer = `
DELETE FROM players WHERE id = ?
`

func (q *Queries) DeletePlayer(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deletePlayer, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
