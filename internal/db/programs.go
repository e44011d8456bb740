package db

import (
	"context"
	"time"
)

const insertProgram = `
INSERT INTO programs (id, name, created_at) VALUES (?, ?, ?)
`

type InsertProgramParams struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

func (q *Queries) InsertProgram(ctx context.Context, arg InsertProgramParams) error {
	_, err := q.db.ExecContext(ctx, insertProgram, arg.ID, arg.Name, arg.CreatedAt)
	return err
}

const getProgram = `
SELECT id, name, created_at FROM programs WHERE id = ?
`

func (q *Queries) GetProgram(ctx context.Context, id string) (Program, error) {
	var p Program
	err := q.db.QueryRowContext(ctx, getProgram, id).Scan(&p.ID, &p.Name, &p.CreatedAt)
	return p, err
}

const listPrograms = `
SELECT id, name, created_at FROM programs ORDER BY name
`

func (q *Queries) ListPrograms(ctx context.Context) ([]Program, error) {
	rows, err := q.db.QueryContext(ctx, listPrograms)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []Program
	for rows.Next() {
		var p Program
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

const countProgramsByName = `
SELECT COUNT(*) FROM programs WHERE name = ?
`

func (q *Queries) CountProgramsByName(ctx context.Context, name string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countProgramsByName, name).Scan(&count)
	return count, err
}

const deleteProgram = `
DELETE FROM programs WHERE id = ?
`

func (q *Queries) DeleteProgram(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteProgram, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const upsertOpponent = `
INSERT INTO opponent_library (id, name, created_at, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (name) DO UPDATE SET updated_at = excluded.updated_at
`

type UpsertOpponentParams struct {
	Opponent Opponent
}

func (q *Queries) UpsertOpponent(ctx context.Context, arg UpsertOpponentParams) error {
	o := arg.Opponent
	_, err := q.db.ExecContext(ctx, upsertOpponent, o.ID, o.Name, o.CreatedAt, o.UpdatedAt)
	return err
}

const listOpponents = `
SELECT id, name, created_at, updated_at FROM opponent_library ORDER BY name
`

func (q *Queries) ListOpponents(ctx context.Context) ([]Opponent, error) {
	rows, err := q.db.QueryContext(ctx, listOpponents)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opponents []Opponent
	for rows.Next() {
		var o Opponent
		if err := rows.Scan(&o.ID, &o.Name, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		opponents = append(opponents, o)
	}
	return opponents, rows.Err()
}

const deleteOpponent = `
DELETE FROM opponent_library WHERE id = ?
`

func (q *Queries) DeleteOpponent(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteOpponent, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const insertTeam = `
INSERT INTO teams (id, name, created_at) VALUES (?, ?, ?)
`

type InsertTeamParams struct {
	Team Team
}

func (q *Queries) InsertTeam(ctx context.Context, arg InsertTeamParams) error {
	t := arg.Team
	_, err := q.db.ExecContext(ctx, insertTeam, t.ID, t.Name, t.CreatedAt)
	return err
}

const getTeam = `
SELECT id, name, created_at FROM teams WHERE id = ?
`

func (q *Queries) GetTeam(ctx context.Context, id string) (Team, error) {
	var t Team
	err := q.db.QueryRowContext(ctx, getTeam, id).Scan(&t.ID, &t.Name, &t.CreatedAt)
	return t, err
}
