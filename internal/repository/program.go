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

type ProgramRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewProgramRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *ProgramRepository {
	return &ProgramRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *ProgramRepository) Create(ctx context.Context, name string) (*domain.Program, error) {
	count, err := r.queries.CountProgramsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check program name: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("program %q already exists", name)
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate program id: %w", err)
	}

	program := domain.Program{ID: id, Name: name, CreatedAt: time.Now().UTC()}
	err = r.queries.InsertProgram(ctx, db.InsertProgramParams{
		ID:        program.ID,
		Name:      program.Name,
		CreatedAt: program.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert program: %w", err)
	}

	r.logger.Info().Str("program_id", id).Str("name", name).Msg("program created")
	return &program, nil
}

func (r *ProgramRepository) Get(ctx context.Context, id string) (*domain.Program, error) {
	row, err := r.queries.GetProgram(ctx, id)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get program: %w", err)
	}
	return &domain.Program{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt}, nil
}

func (r *ProgramRepository) List(ctx context.Context) ([]domain.Program, error) {
	rows, err := r.queries.ListPrograms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list programs: %w", err)
	}

	programs := make([]domain.Program, len(rows))
	for i, row := range rows {
		programs[i] = domain.Program{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt}
	}
	return programs, nil
}

func (r *ProgramRepository) Delete(ctx context.Context, id string) error {
	affected, err := r.queries.DeleteProgram(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete program: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpsertOpponent records an opponent name in the library, bumping
// updated_at when the name is already known.
func (r *ProgramRepository) UpsertOpponent(ctx context.Context, name string) error {
	id, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("failed to generate opponent id: %w", err)
	}

	now := time.Now().UTC()
	err = r.queries.UpsertOpponent(ctx, db.UpsertOpponentParams{Opponent: db.Opponent{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}})
	if err != nil {
		return fmt.Errorf("failed to upsert opponent: %w", err)
	}
	return nil
}

func (r *ProgramRepository) ListOpponents(ctx context.Context) ([]domain.Opponent, error) {
	rows, err := r.queries.ListOpponents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list opponents: %w", err)
	}

	opponents := make([]domain.Opponent, len(rows))
	for i, row := range rows {
		opponents[i] = domain.Opponent{
			ID:        row.ID,
			Name:      row.Name,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		}
	}
	return opponents, nil
}

func (r *ProgramRepository) DeleteOpponent(ctx context.Context, id string) error {
	affected, err := r.queries.DeleteOpponent(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete opponent: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateTeam creates a bare team record, used when an opponent roster
// first needs a team id (e.g. to credit a faceoff win).
func (r *ProgramRepository) CreateTeam(ctx context.Context, name string) (*domain.Team, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate team id: %w", err)
	}

	team := domain.Team{ID: id, Name: name, CreatedAt: time.Now().UTC()}
	err = r.queries.InsertTeam(ctx, db.InsertTeamParams{Team: db.Team{
		ID:        team.ID,
		Name:      team.Name,
		CreatedAt: team.CreatedAt,
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to insert team: %w", err)
	}
	return &team, nil
}
