package db

import (
	"context"
)

const eventColumns = `id, game_id, team_id, event_type, is_opponent, timestamp, period, created_at,
	shot_outcome, scorer_player_id, assist_player_id, goalie_player_id,
	turnover_player_id, caused_by_player_id, linked_event_id, ground_ball_player_id,
	penalty_type, penalty_duration, penalty_player_id,
	faceoff_player1_id, faceoff_player2_id, faceoff_winner_team_id, clear_success`

func scanGameEvent(row interface{ Scan(...interface{}) error }) (GameEvent, error) {
	var e GameEvent
	err := row.Scan(
		&e.ID, &e.GameID, &e.TeamID, &e.EventType, &e.IsOpponent, &e.Timestamp, &e.Period, &e.CreatedAt,
		&e.ShotOutcome, &e.ScorerPlayerID, &e.AssistPlayerID, &e.GoaliePlayerID,
		&e.TurnoverPlayerID, &e.CausedByPlayerID, &e.LinkedEventID, &e.GroundBallPlayerID,
		&e.PenaltyType, &e.PenaltyDuration, &e.PenaltyPlayerID,
		&e.FaceoffPlayer1ID, &e.FaceoffPlayer2ID, &e.FaceoffWinnerTeamID, &e.ClearSuccess,
	)
	return e, err
}

const insertGameEvent = `
INSERT INTO game_events (` + eventColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertGameEventParams struct {
	Event GameEvent
}

func (q *Queries) InsertGameEvent(ctx context.Context, arg InsertGameEventParams) error {
	e := arg.Event
	_, err := q.db.ExecContext(ctx, insertGameEvent,
		e.ID, e.GameID, e.TeamID, e.EventType, e.IsOpponent, e.Timestamp, e.Period, e.CreatedAt,
		e.ShotOutcome, e.ScorerPlayerID, e.AssistPlayerID, e.GoaliePlayerID,
		e.TurnoverPlayerID, e.CausedByPlayerID, e.LinkedEventID, e.GroundBallPlayerID,
		e.PenaltyType, e.PenaltyDuration, e.PenaltyPlayerID,
		e.FaceoffPlayer1ID, e.FaceoffPlayer2ID, e.FaceoffWinnerTeamID, e.ClearSuccess,
	)
	return err
}

const getGameEvent = `
SELECT ` + eventColumns + ` FROM game_events WHERE id = ?
`

func (q *Queries) GetGameEvent(ctx context.Context, id string) (GameEvent, error) {
	return scanGameEvent(q.db.QueryRowContext(ctx, getGameEvent, id))
}

const listGameEventsByGame = `
SELECT ` + eventColumns + ` FROM game_events WHERE game_id = ? ORDER BY created_at DESC, id DESC
`

// ListGameEventsByGame returns a game's events newest-first.
func (q *Queries) ListGameEventsByGame(ctx context.Context, gameID string) ([]GameEvent, error) {
	rows, err := q.db.QueryContext(ctx, listGameEventsByGame, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []GameEvent
	for rows.Next() {
		e, err := scanGameEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

const getCausedTurnoverByLinkedID = `
SELECT ` + eventColumns + ` FROM game_events
WHERE event_type = 'caused_turnover' AND linked_event_id = ?
`

func (q *Queries) GetCausedTurnoverByLinkedID(ctx context.Context, linkedEventID string) (GameEvent, error) {
	return scanGameEvent(q.db.QueryRowContext(ctx, getCausedTurnoverByLinkedID, linkedEventID))
}

const deleteGameEvent = `
DELETE FROM game_events WHERE id = ?
`

func (q *Queries) DeleteGameEvent(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteGameEvent, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const updateShotEvent = `
UPDATE game_events
SET shot_outcome = ?, scorer_player_id = ?, assist_player_id = ?, goalie_player_id = ?
WHERE id = ?
`

type UpdateShotEventParams struct {
	ShotOutcome    string
	ScorerPlayerID *string
	AssistPlayerID *string
	GoaliePlayerID *string
	ID             string
}

func (q *Queries) UpdateShotEvent(ctx context.Context, arg UpdateShotEventParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateShotEvent,
		arg.ShotOutcome, arg.ScorerPlayerID, arg.AssistPlayerID, arg.GoaliePlayerID, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const updateTurnoverPlayer = `
UPDATE game_events SET turnover_player_id = ? WHERE id = ?
`

type UpdateTurnoverPlayerParams struct {
	TurnoverPlayerID *string
	ID               string
}

func (q *Queries) UpdateTurnoverPlayer(ctx context.Context, arg UpdateTurnoverPlayerParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateTurnoverPlayer, arg.TurnoverPlayerID, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const updateCausedTurnoverPlayer = `
UPDATE game_events SET caused_by_player_id = ? WHERE id = ?
`

type UpdateCausedTurnoverPlayerParams struct {
	CausedByPlayerID string
	ID               string
}

func (q *Queries) UpdateCausedTurnoverPlayer(ctx context.Context, arg UpdateCausedTurnoverPlayerParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateCausedTurnoverPlayer, arg.CausedByPlayerID, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const updateGroundBallPlayer = `
UPDATE game_events SET ground_ball_player_id = ? WHERE id = ?
`

type UpdateGroundBallPlayerParams struct {
	GroundBallPlayerID string
	ID                 string
}

func (q *Queries) UpdateGroundBallPlayer(ctx context.Context, arg UpdateGroundBallPlayerParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateGroundBallPlayer, arg.GroundBallPlayerID, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const updatePenaltyEvent = `
UPDATE game_events SET penalty_type = ?, penalty_duration = ?, penalty_player_id = ? WHERE id = ?
`

type UpdatePenaltyEventParams struct {
	PenaltyType     string
	PenaltyDuration int64
	PenaltyPlayerID *string
	ID              string
}

func (q *Queries) UpdatePenaltyEvent(ctx context.Context, arg UpdatePenaltyEventParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updatePenaltyEvent,
		arg.PenaltyType, arg.PenaltyDuration, arg.PenaltyPlayerID, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const updateFaceoffEvent = `
UPDATE game_events SET faceoff_player1_id = ?, faceoff_player2_id = ?, faceoff_winner_team_id = ? WHERE id = ?
`

type UpdateFaceoffEventParams struct {
	FaceoffPlayer1ID    string
	FaceoffPlayer2ID    string
	FaceoffWinnerTeamID string
	ID                  string
}

func (q *Queries) UpdateFaceoffEvent(ctx context.Context, arg UpdateFaceoffEventParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateFaceoffEvent,
		arg.FaceoffPlayer1ID, arg.FaceoffPlayer2ID, arg.FaceoffWinnerTeamID, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const updateClearEvent = `
UPDATE game_events SET clear_success = ? WHERE id = ?
`

type UpdateClearEventParams struct {
	ClearSuccess bool
	ID           string
}

func (q *Queries) UpdateClearEvent(ctx context.Context, arg UpdateClearEventParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateClearEvent, arg.ClearSuccess, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
