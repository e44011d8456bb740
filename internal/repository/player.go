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

type PlayerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func toDomainPlayer(row db.Player) domain.Player {
	return domain.Player{
		ID:         row.ID,
		ProgramID:  strVal(row.ProgramID),
		TeamID:     strVal(row.TeamID),
		GameID:     strVal(row.GameID),
		Name:       row.Name,
		Number:     int(row.Number),
		Position:   splitPositions(row.Position),
		IsOpponent: row.IsOpponent,
		CreatedAt:  row.CreatedAt,
	}
}

func (r *PlayerRepository) Create(ctx context.Context, player *domain.Player) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate player id: %w", err)
	}
	player.ID = id
	player.CreatedAt = time.Now().UTC()

	err = r.queries.InsertPlayer(ctx, db.InsertPlayerParams{Player: db.Player{
		ID:         player.ID,
		ProgramID:  nullStr(player.ProgramID),
		TeamID:     nullStr(player.TeamID),
		GameID:     nullStr(player.GameID),
		Name:       player.Name,
		Number:     int64(player.Number),
		Position:   joinPositions(player.Position),
		IsOpponent: player.IsOpponent,
		CreatedAt:  player.CreatedAt,
	}})
	if err != nil {
		r.logger.Error().Err(err).Str("name", player.Name).Msg("failed to insert player")
		return "", fmt.Errorf("failed to insert player: %w", err)
	}

	r.logger.Debug().
		Str("player_id", id).
		Str("name", player.Name).
		Int("number", player.Number).
		Bool("is_opponent", player.IsOpponent).
		Msg("player created")
	return id, nil
}

func (r *PlayerRepository) Get(ctx context.Context, id string) (*domain.Player, error) {
	row, err := r.queries.GetPlayer(ctx, id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	player := toDomainPlayer(row)
	return &player, nil
}

// ListByProgram returns the home roster, ordered by jersey number.
func (r *PlayerRepository) ListByProgram(ctx context.Context, programID string) ([]domain.Player, error) {
	rows, err := r.queries.ListPlayersByProgram(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("failed to list program players: %w", err)
	}
	return toDomainPlayers(rows), nil
}

// ListOpponentsByGame returns the per-game opponent roster.
func (r *PlayerRepository) ListOpponentsByGame(ctx context.Context, gameID string) ([]domain.Player, error) {
	rows, err := r.queries.ListOpponentPlayersByGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to list opponent players: %w", err)
	}
	return toDomainPlayers(rows), nil
}

func toDomainPlayers(rows []db.Player) []domain.Player {
	players := make([]domain.Player, len(rows))
	for i, row := range rows {
		players[i] = toDomainPlayer(row)
	}
	return players
}

func (r *PlayerRepository) Update(ctx context.Context, player *domain.Player) error {
	affected, err := r.queries.UpdatePlayer(ctx, db.UpdatePlayerParams{
		Name:     player.Name,
		Number:   int64(player.Number),
		Position: joinPositions(player.Position),
		ID:       player.ID,
	})
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, id string) error {
	affected, err := r.queries.DeletePlayer(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AssignOpponentTeam points every opponent-roster player of a game at a
// team id, once the opponent team record exists.
func (r *PlayerRepository) AssignOpponentTeam(ctx context.Context, gameID, teamID string) error {
	err := r.queries.AssignOpponentPlayersToTeam(ctx, db.AssignOpponentPlayersToTeamParams{
		TeamID: teamID,
		GameID: gameID,
	})
	if err != nil {
		return fmt.Errorf("failed to assign opponent players to team: %w", err)
	}
	return nil
}
