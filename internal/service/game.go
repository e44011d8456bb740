package service

import (
	"context"
	"fmt"

	"lacrosse-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// GameService handles game lifecycle. Creating a game also records the
// opponent name in the opponent library so later setups can pick it
// from a list.
type GameService struct {
	games    GameAdminStore
	programs ProgramStore
	logger   zerolog.Logger
}

func NewGameService(games GameAdminStore, programs ProgramStore, logger zerolog.Logger) *GameService {
	return &GameService{games: games, programs: programs, logger: logger}
}

func (s *GameService) Create(ctx context.Context, programID, opponentName, gameDate string) (*domain.Game, error) {
	if opponentName == "" {
		return nil, &domain.MissingFieldError{Kind: "game", Field: "opponent"}
	}
	if gameDate == "" {
		return nil, &domain.MissingFieldError{Kind: "game", Field: "game_date"}
	}
	if _, err := s.programs.Get(ctx, programID); err != nil {
		return nil, fmt.Errorf("program %s: %w", programID, err)
	}

	game := &domain.Game{
		ProgramID: programID,
		Opponent:  opponentName,
		GameDate:  gameDate,
	}
	if _, err := s.games.Create(ctx, game); err != nil {
		return nil, err
	}

	// library upsert is best effort, the game itself already exists
	if err := s.programs.UpsertOpponent(ctx, opponentName); err != nil {
		s.logger.Warn().Err(err).Str("opponent", opponentName).Msg("failed to record opponent in library")
	}

	return game, nil
}

func (s *GameService) Get(ctx context.Context, id string) (*domain.Game, error) {
	return s.games.Get(ctx, id)
}

func (s *GameService) List(ctx context.Context, programID string) ([]domain.Game, error) {
	return s.games.ListByProgram(ctx, programID)
}

func (s *GameService) Delete(ctx context.Context, id string) error {
	return s.games.Delete(ctx, id)
}
