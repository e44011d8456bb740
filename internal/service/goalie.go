package service

import (
	"context"
	"sync"

	"lacrosse-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// PendingAction is an operation parked until a goalie is designated for
// the side it needs.
type PendingAction func(ctx context.Context) error

// GoalieResolver gates actions that need a current goalie behind the
// per-game goalie pointers, and holds at most one queued action per
// game/side. A second request queued before the first resolves replaces
// it: one operator, last request wins.
type GoalieResolver struct {
	games   GameStore
	players PlayerStore
	logger  zerolog.Logger

	mu      sync.Mutex
	pending map[string]PendingAction
}

func NewGoalieResolver(games GameStore, players PlayerStore, logger zerolog.Logger) *GoalieResolver {
	return &GoalieResolver{
		games:   games,
		players: players,
		logger:  logger,
		pending: make(map[string]PendingAction),
	}
}

func pendingKey(gameID string, side domain.Side) string {
	return gameID + "/" + string(side)
}

// Require returns the current goalie for side. When none is designated it
// distinguishes "nobody eligible" (domain.ErrNoEligibleGoalies) from "not
// yet selected" (domain.ErrGoalieRequired) so the caller can prompt
// instead of looping.
func (r *GoalieResolver) Require(ctx context.Context, game *domain.Game, side domain.Side) (string, error) {
	if id := game.GoalieID(side); id != "" {
		return id, nil
	}

	candidates, err := r.EligibleGoalies(ctx, game, side)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		r.logger.Warn().
			Str("game_id", game.ID).
			Str("side", string(side)).
			Msg("no eligible goalie candidates")
		return "", domain.ErrNoEligibleGoalies
	}

	return "", domain.ErrGoalieRequired
}

// EligibleGoalies lists who may be designated goalie: home side players
// tagged with the Goalie position, or the full opponent roster (opponent
// positions are rarely tracked).
func (r *GoalieResolver) EligibleGoalies(ctx context.Context, game *domain.Game, side domain.Side) ([]domain.Player, error) {
	if side == domain.SideOpponent {
		return r.players.ListOpponentsByGame(ctx, game.ID)
	}

	roster, err := r.players.ListByProgram(ctx, game.ProgramID)
	if err != nil {
		return nil, err
	}
	var goalies []domain.Player
	for _, p := range roster {
		if p.HasPosition(domain.PositionGoalie) {
			goalies = append(goalies, p)
		}
	}
	return goalies, nil
}

// Defer parks an action to re-run once a goalie is selected for side,
// replacing any action already queued there.
func (r *GoalieResolver) Defer(gameID string, side domain.Side, action PendingAction) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pendingKey(gameID, side)
	if _, replaced := r.pending[key]; replaced {
		r.logger.Debug().Str("game_id", gameID).Str("side", string(side)).Msg("replacing queued action")
	}
	r.pending[key] = action
}

// Select persists the goalie pointer for side and re-invokes the queued
// action, if any. The pointer survives until the next explicit selection.
func (r *GoalieResolver) Select(ctx context.Context, gameID string, side domain.Side, playerID string) error {
	if err := r.games.SetCurrentGoalie(ctx, gameID, side, playerID); err != nil {
		return err
	}

	r.mu.Lock()
	key := pendingKey(gameID, side)
	action, ok := r.pending[key]
	delete(r.pending, key)
	r.mu.Unlock()

	if !ok {
		return nil
	}

	r.logger.Debug().
		Str("game_id", gameID).
		Str("side", string(side)).
		Str("goalie_player_id", playerID).
		Msg("resuming queued action after goalie selection")
	return action(ctx)
}

// HasPending reports whether an action is parked for game/side.
func (r *GoalieResolver) HasPending(gameID string, side domain.Side) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.pending[pendingKey(gameID, side)]
	return ok
}
