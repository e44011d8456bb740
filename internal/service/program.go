package service

import (
	"context"

	"lacrosse-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// ProgramService is thin CRUD over programs and the opponent library.
type ProgramService struct {
	programs ProgramStore
	logger   zerolog.Logger
}

func NewProgramService(programs ProgramStore, logger zerolog.Logger) *ProgramService {
	return &ProgramService{programs: programs, logger: logger}
}

func (s *ProgramService) Create(ctx context.Context, name string) (*domain.Program, error) {
	if name == "" {
		return nil, &domain.MissingFieldError{Kind: "program", Field: "name"}
	}
	return s.programs.Create(ctx, name)
}

func (s *ProgramService) Get(ctx context.Context, id string) (*domain.Program, error) {
	return s.programs.Get(ctx, id)
}

func (s *ProgramService) List(ctx context.Context) ([]domain.Program, error) {
	return s.programs.List(ctx)
}

func (s *ProgramService) Delete(ctx context.Context, id string) error {
	return s.programs.Delete(ctx, id)
}

func (s *ProgramService) ListOpponents(ctx context.Context) ([]domain.Opponent, error) {
	return s.programs.ListOpponents(ctx)
}

func (s *ProgramService) DeleteOpponent(ctx context.Context, id string) error {
	return s.programs.DeleteOpponent(ctx, id)
}
