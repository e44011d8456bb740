package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"lacrosse-tracker/internal/db"
	"lacrosse-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type GameRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewGameRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *GameRepository {
	return &GameRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func toDomainGame(row db.Game) domain.Game {
	return domain.Game{
		ID:                      row.ID,
		ProgramID:               strVal(row.ProgramID),
		TeamID:                  strVal(row.TeamID),
		OpponentTeamID:          strVal(row.OpponentTeamID),
		Opponent:                strVal(row.Opponent),
		GameDate:                row.GameDate,
		OurScore:                int(row.OurScore),
		OpponentScore:           int(row.OpponentScore),
		CurrentHomeGoalieID:     strVal(row.CurrentHomeGoalieID),
		CurrentOpponentGoalieID: strVal(row.CurrentOpponentGoalieID),
		CreatedAt:               row.CreatedAt,
	}
}

func (r *GameRepository) Create(ctx context.Context, game *domain.Game) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate game id: %w", err)
	}
	game.ID = id
	game.CreatedAt = time.Now().UTC()

	err = r.queries.InsertGame(ctx, db.InsertGameParams{Game: db.Game{
		ID:                      game.ID,
		ProgramID:               nullStr(game.ProgramID),
		TeamID:                  nullStr(game.TeamID),
		OpponentTeamID:          nullStr(game.OpponentTeamID),
		Opponent:                nullStr(game.Opponent),
		GameDate:                game.GameDate,
		OurScore:                int64(game.OurScore),
		OpponentScore:           int64(game.OpponentScore),
		CurrentHomeGoalieID:     nullStr(game.CurrentHomeGoalieID),
		CurrentOpponentGoalieID: nullStr(game.CurrentOpponentGoalieID),
		CreatedAt:               game.CreatedAt,
	}})
	if err != nil {
		r.logger.Error().Err(err).Str("program_id", game.ProgramID).Msg("failed to insert game")
		return "", fmt.Errorf("failed to insert game: %w", err)
	}

	r.logger.Info().Str("game_id", id).Str("opponent", game.Opponent).Msg("game created")
	return id, nil
}

func (r *GameRepository) Get(ctx context.Context, id string) (*domain.Game, error) {
	row, err := r.queries.GetGame(ctx, id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	game := toDomainGame(row)
	return &game, nil
}

func (r *GameRepository) ListByProgram(ctx context.Context, programID string) ([]domain.Game, error) {
	rows, err := r.queries.ListGamesByProgram(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	games := make([]domain.Game, len(rows))
	for i, row := range rows {
		games[i] = toDomainGame(row)
	}
	return games, nil
}

func (r *GameRepository) Delete(ctx context.Context, id string) error {
	affected, err := r.queries.DeleteGame(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	r.logger.Info().Str("game_id", id).Msg("game deleted")
	return nil
}

// UpdateScore overwrites the cached score projection after the event log
// changed.
func (r *GameRepository) UpdateScore(ctx context.Context, gameID string, ourScore, opponentScore int) error {
	affected, err := r.queries.UpdateGameScore(ctx, db.UpdateGameScoreParams{
		OurScore:      int64(ourScore),
		OpponentScore: int64(opponentScore),
		ID:            gameID,
	})
	if err != nil {
		return fmt.Errorf("failed to update game score: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	r.logger.Debug().
		Str("game_id", gameID).
		Int("our_score", ourScore).
		Int("opponent_score", opponentScore).
		Msg("game score updated")
	return nil
}

func (r *GameRepository) GetCurrentGoalie(ctx context.Context, gameID string, side domain.Side) (string, error) {
	game, err := r.Get(ctx, gameID)
	if err != nil {
		return "", err
	}
	return game.GoalieID(side), nil
}

func (r *GameRepository) SetCurrentGoalie(ctx context.Context, gameID string, side domain.Side, playerID string) error {
	affected, err := r.queries.UpdateGameGoalie(ctx, db.UpdateGameGoalieParams{
		GoaliePlayerID: playerID,
		ID:             gameID,
		Home:           side == domain.SideHome,
	})
	if err != nil {
		return fmt.Errorf("failed to set current goalie: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	r.logger.Info().
		Str("game_id", gameID).
		Str("side", string(side)).
		Str("goalie_player_id", playerID).
		Msg("current goalie set")
	return nil
}

func (r *GameRepository) SetOpponentTeam(ctx context.Context, gameID, teamID string) error {
	affected, err := r.queries.UpdateGameOpponentTeam(ctx, db.UpdateGameOpponentTeamParams{
		OpponentTeamID: teamID,
		ID:             gameID,
	})
	if err != nil {
		return fmt.Errorf("failed to set opponent team: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
