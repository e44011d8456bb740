package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"lacrosse-tracker/internal/db"
	"lacrosse-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type EventRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewEventRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *EventRepository {
	return &EventRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func nullStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func toEventRow(e *domain.GameEvent) db.GameEvent {
	row := db.GameEvent{
		ID:                  e.ID,
		GameID:              e.GameID,
		TeamID:              e.TeamID,
		EventType:           string(e.Type),
		IsOpponent:          e.IsOpponent,
		Timestamp:           e.Timestamp,
		CreatedAt:           e.CreatedAt,
		ScorerPlayerID:      nullStr(e.ScorerPlayerID),
		AssistPlayerID:      nullStr(e.AssistPlayerID),
		GoaliePlayerID:      nullStr(e.GoaliePlayerID),
		TurnoverPlayerID:    nullStr(e.TurnoverPlayerID),
		CausedByPlayerID:    nullStr(e.CausedByPlayerID),
		LinkedEventID:       nullStr(e.LinkedEventID),
		GroundBallPlayerID:  nullStr(e.GroundBallPlayerID),
		PenaltyType:         nullStr(e.PenaltyType),
		PenaltyPlayerID:     nullStr(e.PenaltyPlayerID),
		FaceoffPlayer1ID:    nullStr(e.FaceoffPlayer1ID),
		FaceoffPlayer2ID:    nullStr(e.FaceoffPlayer2ID),
		FaceoffWinnerTeamID: nullStr(e.FaceoffWinnerTeamID),
	}
	if e.ShotOutcome != "" {
		outcome := string(e.ShotOutcome)
		row.ShotOutcome = &outcome
	}
	if e.Period > 0 {
		period := int64(e.Period)
		row.Period = &period
	}
	if e.Type == domain.EventPenalty {
		duration := int64(e.PenaltyDuration)
		row.PenaltyDuration = &duration
	}
	if e.Type == domain.EventClear {
		success := e.ClearSuccess
		row.ClearSuccess = &success
	}
	return row
}

func toDomainEvent(row db.GameEvent) domain.GameEvent {
	e := domain.GameEvent{
		ID:                  row.ID,
		GameID:              row.GameID,
		TeamID:              row.TeamID,
		Type:                domain.EventType(row.EventType),
		IsOpponent:          row.IsOpponent,
		Timestamp:           row.Timestamp,
		CreatedAt:           row.CreatedAt,
		ScorerPlayerID:      strVal(row.ScorerPlayerID),
		AssistPlayerID:      strVal(row.AssistPlayerID),
		GoaliePlayerID:      strVal(row.GoaliePlayerID),
		TurnoverPlayerID:    strVal(row.TurnoverPlayerID),
		CausedByPlayerID:    strVal(row.CausedByPlayerID),
		LinkedEventID:       strVal(row.LinkedEventID),
		GroundBallPlayerID:  strVal(row.GroundBallPlayerID),
		PenaltyType:         strVal(row.PenaltyType),
		PenaltyPlayerID:     strVal(row.PenaltyPlayerID),
		FaceoffPlayer1ID:    strVal(row.FaceoffPlayer1ID),
		FaceoffPlayer2ID:    strVal(row.FaceoffPlayer2ID),
		FaceoffWinnerTeamID: strVal(row.FaceoffWinnerTeamID),
	}
	if row.ShotOutcome != nil {
		e.ShotOutcome = domain.ShotOutcome(*row.ShotOutcome)
	}
	if row.Period != nil {
		e.Period = int(*row.Period)
	}
	if row.PenaltyDuration != nil {
		e.PenaltyDuration = int(*row.PenaltyDuration)
	}
	if row.ClearSuccess != nil {
		e.ClearSuccess = *row.ClearSuccess
	}
	return e
}

// Insert validates the event, assigns a store id, and writes it. The
// returned id is the only thing the caller needs to link events together.
func (r *EventRepository) Insert(ctx context.Context, event *domain.GameEvent) (string, error) {
	if err := event.Validate(); err != nil {
		return "", err
	}

	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate event id: %w", err)
	}
	event.ID = id

	now := time.Now().UTC()
	if event.Timestamp.IsZero() {
		event.Timestamp = now
	}
	event.CreatedAt = now

	if err := r.queries.InsertGameEvent(ctx, db.InsertGameEventParams{Event: toEventRow(event)}); err != nil {
		r.logger.Error().Err(err).Str("game_id", event.GameID).Str("event_type", string(event.Type)).Msg("failed to insert event")
		return "", fmt.Errorf("failed to insert event: %w", err)
	}

	r.logger.Debug().
		Str("event_id", id).
		Str("game_id", event.GameID).
		Str("event_type", string(event.Type)).
		Bool("is_opponent", event.IsOpponent).
		Msg("event inserted")

	return id, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.GameEvent, error) {
	row, err := r.queries.GetGameEvent(ctx, id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	event := toDomainEvent(row)
	return &event, nil
}

// ListByGame returns the game's event log newest-first.
func (r *EventRepository) ListByGame(ctx context.Context, gameID string) ([]domain.GameEvent, error) {
	rows, err := r.queries.ListGameEventsByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]domain.GameEvent, len(rows))
	for i, row := range rows {
		events[i] = toDomainEvent(row)
	}
	return events, nil
}

// FindLinkedCausedTurnover returns the caused_turnover referencing the
// given turnover, or nil when the turnover was unforced.
func (r *EventRepository) FindLinkedCausedTurnover(ctx context.Context, turnoverID string) (*domain.GameEvent, error) {
	row, err := r.queries.GetCausedTurnoverByLinkedID(ctx, turnoverID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find linked caused turnover: %w", err)
	}
	event := toDomainEvent(row)
	return &event, nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	affected, err := r.queries.DeleteGameEvent(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	r.logger.Debug().Str("event_id", id).Msg("event deleted")
	return nil
}

func (r *EventRepository) checkAffected(affected int64, err error, op string) error {
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EventRepository) UpdateShot(ctx context.Context, id string, outcome domain.ShotOutcome, scorerID, assistID, goalieID string) error {
	affected, err := r.queries.UpdateShotEvent(ctx, db.UpdateShotEventParams{
		ShotOutcome:    string(outcome),
		ScorerPlayerID: nullStr(scorerID),
		AssistPlayerID: nullStr(assistID),
		GoaliePlayerID: nullStr(goalieID),
		ID:             id,
	})
	return r.checkAffected(affected, err, "update shot event")
}

func (r *EventRepository) UpdateTurnoverPlayer(ctx context.Context, id, playerID string) error {
	affected, err := r.queries.UpdateTurnoverPlayer(ctx, db.UpdateTurnoverPlayerParams{
		TurnoverPlayerID: nullStr(playerID),
		ID:               id,
	})
	return r.checkAffected(affected, err, "update turnover event")
}

func (r *EventRepository) UpdateCausedTurnoverPlayer(ctx context.Context, id, playerID string) error {
	affected, err := r.queries.UpdateCausedTurnoverPlayer(ctx, db.UpdateCausedTurnoverPlayerParams{
		CausedByPlayerID: playerID,
		ID:               id,
	})
	return r.checkAffected(affected, err, "update caused turnover event")
}

func (r *EventRepository) UpdateGroundBallPlayer(ctx context.Context, id, playerID string) error {
	affected, err := r.queries.UpdateGroundBallPlayer(ctx, db.UpdateGroundBallPlayerParams{
		GroundBallPlayerID: playerID,
		ID:                 id,
	})
	return r.checkAffected(affected, err, "update ground ball event")
}

func (r *EventRepository) UpdatePenalty(ctx context.Context, id, penaltyType string, durationSeconds int, playerID string) error {
	affected, err := r.queries.UpdatePenaltyEvent(ctx, db.UpdatePenaltyEventParams{
		PenaltyType:     penaltyType,
		PenaltyDuration: int64(durationSeconds),
		PenaltyPlayerID: nullStr(playerID),
		ID:              id,
	})
	return r.checkAffected(affected, err, "update penalty event")
}

func (r *EventRepository) UpdateFaceoff(ctx context.Context, id, player1ID, player2ID, winnerTeamID string) error {
	affected, err := r.queries.UpdateFaceoffEvent(ctx, db.UpdateFaceoffEventParams{
		FaceoffPlayer1ID:    player1ID,
		FaceoffPlayer2ID:    player2ID,
		FaceoffWinnerTeamID: winnerTeamID,
		ID:                  id,
	})
	return r.checkAffected(affected, err, "update faceoff event")
}

func (r *EventRepository) UpdateClear(ctx context.Context, id string, success bool) error {
	affected, err := r.queries.UpdateClearEvent(ctx, db.UpdateClearEventParams{
		ClearSuccess: success,
		ID:           id,
	})
	return r.checkAffected(affected, err, "update clear event")
}

func joinPositions(positions []domain.Position) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = string(p)
	}
	return strings.Join(parts, "/")
}

func splitPositions(s string) []domain.Position {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "/")
	positions := make([]domain.Position, len(parts))
	for i, p := range parts {
		positions[i] = domain.Position(p)
	}
	return positions
}

// IsNotFound reports whether err is the repository's not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
