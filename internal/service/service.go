package service

import (
	"context"

	"lacrosse-tracker/internal/domain"
)

// EventStore is the slice of the store adapter the event services need.
// Implemented by repository.EventRepository; tests swap in fakes.
type EventStore interface {
	Insert(ctx context.Context, event *domain.GameEvent) (string, error)
	GetByID(ctx context.Context, id string) (*domain.GameEvent, error)
	ListByGame(ctx context.Context, gameID string) ([]domain.GameEvent, error)
	FindLinkedCausedTurnover(ctx context.Context, turnoverID string) (*domain.GameEvent, error)
	Delete(ctx context.Context, id string) error
	UpdateShot(ctx context.Context, id string, outcome domain.ShotOutcome, scorerID, assistID, goalieID string) error
	UpdateTurnoverPlayer(ctx context.Context, id, playerID string) error
	UpdateCausedTurnoverPlayer(ctx context.Context, id, playerID string) error
	UpdateGroundBallPlayer(ctx context.Context, id, playerID string) error
	UpdatePenalty(ctx context.Context, id, penaltyType string, durationSeconds int, playerID string) error
	UpdateFaceoff(ctx context.Context, id, player1ID, player2ID, winnerTeamID string) error
	UpdateClear(ctx context.Context, id string, success bool) error
}

type GameStore interface {
	Get(ctx context.Context, id string) (*domain.Game, error)
	UpdateScore(ctx context.Context, gameID string, ourScore, opponentScore int) error
	SetCurrentGoalie(ctx context.Context, gameID string, side domain.Side, playerID string) error
	SetOpponentTeam(ctx context.Context, gameID, teamID string) error
}

type PlayerStore interface {
	Get(ctx context.Context, id string) (*domain.Player, error)
	ListByProgram(ctx context.Context, programID string) ([]domain.Player, error)
	ListOpponentsByGame(ctx context.Context, gameID string) ([]domain.Player, error)
	AssignOpponentTeam(ctx context.Context, gameID, teamID string) error
}

type TeamStore interface {
	CreateTeam(ctx context.Context, name string) (*domain.Team, error)
}

// RosterStore is the wider player surface the roster admin paths need.
// Also implemented by repository.PlayerRepository.
type RosterStore interface {
	Get(ctx context.Context, id string) (*domain.Player, error)
	Create(ctx context.Context, player *domain.Player) (string, error)
	Update(ctx context.Context, player *domain.Player) error
	Delete(ctx context.Context, id string) error
	ListByProgram(ctx context.Context, programID string) ([]domain.Player, error)
	ListOpponentsByGame(ctx context.Context, gameID string) ([]domain.Player, error)
}

type GameAdminStore interface {
	Create(ctx context.Context, game *domain.Game) (string, error)
	Get(ctx context.Context, id string) (*domain.Game, error)
	ListByProgram(ctx context.Context, programID string) ([]domain.Game, error)
	Delete(ctx context.Context, id string) error
}

type ProgramStore interface {
	Create(ctx context.Context, name string) (*domain.Program, error)
	Get(ctx context.Context, id string) (*domain.Program, error)
	List(ctx context.Context) ([]domain.Program, error)
	Delete(ctx context.Context, id string) error
	UpsertOpponent(ctx context.Context, name string) error
	ListOpponents(ctx context.Context) ([]domain.Opponent, error)
	DeleteOpponent(ctx context.Context, id string) error
}
