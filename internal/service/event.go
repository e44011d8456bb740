package service

import (
	"context"
	"errors"
	"fmt"

	"lacrosse-tracker/internal/domain"
	"lacrosse-tracker/internal/stats"

	"github.com/rs/zerolog"
)

// EventService owns every mutation of a game's event log: recording,
// editing, deleting, and the undo path, including the turnover /
// caused_turnover pairing that must behave as one unit. After each
// successful mutation it recomputes the game's cached score.
type EventService struct {
	events  EventStore
	games   GameStore
	players PlayerStore
	teams   TeamStore
	goalies *GoalieResolver
	logger  zerolog.Logger
}

func NewEventService(events EventStore, games GameStore, players PlayerStore, teams TeamStore, goalies *GoalieResolver, logger zerolog.Logger) *EventService {
	return &EventService{
		events:  events,
		games:   games,
		players: players,
		teams:   teams,
		goalies: goalies,
		logger:  logger,
	}
}

func sideOf(e *domain.GameEvent) domain.Side {
	if e.IsOpponent {
		return domain.SideOpponent
	}
	return domain.SideHome
}

func (s *EventService) teamForSide(game *domain.Game, side domain.Side) string {
	if side == domain.SideOpponent && game.OpponentTeamID != "" {
		return game.OpponentTeamID
	}
	if game.TeamID != "" {
		return game.TeamID
	}
	return game.ProgramID
}

// recomputeScore re-derives the cached game score from the full event
// log. The score on the game row is a projection, never a source of
// truth.
func (s *EventService) recomputeScore(ctx context.Context, gameID string) error {
	events, err := s.events.ListByGame(ctx, gameID)
	if err != nil {
		return fmt.Errorf("failed to reload events for score: %w", err)
	}
	our, opponent := stats.Score(events)
	if err := s.games.UpdateScore(ctx, gameID, our, opponent); err != nil {
		return fmt.Errorf("failed to update score: %w", err)
	}
	return nil
}

// afterMutation wraps recomputeScore so a committed event is never
// reported as lost when only the projection failed.
func (s *EventService) afterMutation(ctx context.Context, gameID string) error {
	if err := s.recomputeScore(ctx, gameID); err != nil {
		s.logger.Error().Err(err).Str("game_id", gameID).Msg("score recompute failed, cached score retained")
		return fmt.Errorf("event committed but score recompute failed: %w", err)
	}
	return nil
}

type ShotParams struct {
	Side           domain.Side
	Outcome        domain.ShotOutcome
	ScorerPlayerID string
	AssistPlayerID string
	Period         int
}

// RecordShot inserts a shot event. Outcomes saved and goal are
// attributed to the opposing side's current goalie; when none is
// designated the shot is parked on the resolver and
// domain.ErrGoalieRequired is returned so the caller can prompt.
func (s *EventService) RecordShot(ctx context.Context, gameID string, p ShotParams) (*domain.GameEvent, error) {
	game, err := s.games.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}

	goalieID := ""
	if p.Outcome == domain.ShotGoal || p.Outcome == domain.ShotSaved {
		opposing := p.Side.Opposing()
		goalieID, err = s.goalies.Require(ctx, game, opposing)
		if errors.Is(err, domain.ErrGoalieRequired) {
			s.goalies.Defer(gameID, opposing, func(ctx context.Context) error {
				_, err := s.RecordShot(ctx, gameID, p)
				return err
			})
			return nil, err
		}
		if err != nil {
			return nil, err
		}
	}

	event := &domain.GameEvent{
		GameID:         gameID,
		TeamID:         s.teamForSide(game, p.Side),
		Type:           domain.EventShot,
		IsOpponent:     p.Side == domain.SideOpponent,
		Period:         p.Period,
		ShotOutcome:    p.Outcome,
		ScorerPlayerID: p.ScorerPlayerID,
		AssistPlayerID: p.AssistPlayerID,
		GoaliePlayerID: goalieID,
	}
	if _, err := s.events.Insert(ctx, event); err != nil {
		return nil, err
	}
	return event, s.afterMutation(ctx, gameID)
}

type GroundBallParams struct {
	Side     domain.Side
	PlayerID string
	Period   int
}

func (s *EventService) RecordGroundBall(ctx context.Context, gameID string, p GroundBallParams) (*domain.GameEvent, error) {
	game, err := s.games.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}

	event := &domain.GameEvent{
		GameID:             gameID,
		TeamID:             s.teamForSide(game, p.Side),
		Type:               domain.EventGroundBall,
		IsOpponent:         p.Side == domain.SideOpponent,
		Period:             p.Period,
		GroundBallPlayerID: p.PlayerID,
	}
	if _, err := s.events.Insert(ctx, event); err != nil {
		return nil, err
	}
	return event, s.afterMutation(ctx, gameID)
}

// TurnoverPair is the caller's view of one real-world play recorded as
// up to two correlated events.
type TurnoverPair struct {
	Turnover       *domain.GameEvent
	CausedTurnover *domain.GameEvent // nil when the turnover was unforced
}

type TurnoverParams struct {
	Side             domain.Side
	TurnoverPlayerID string // "" for team turnovers nobody is charged with
	CauserPlayerID   string // "" when unforced
	Period           int
}

// RecordTurnover inserts the turnover and, when a causer is named, the
// correlated caused_turnover on the opposing side. The two inserts are
// not transactional; if the second fails the committed turnover is
// returned along with an error so the operator can repair the log.
func (s *EventService) RecordTurnover(ctx context.Context, gameID string, p TurnoverParams) (*TurnoverPair, error) {
	game, err := s.games.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}

	turnover := &domain.GameEvent{
		GameID:           gameID,
		TeamID:           s.teamForSide(game, p.Side),
		Type:             domain.EventTurnover,
		IsOpponent:       p.Side == domain.SideOpponent,
		Period:           p.Period,
		TurnoverPlayerID: p.TurnoverPlayerID,
	}
	if _, err := s.events.Insert(ctx, turnover); err != nil {
		return nil, err
	}

	pair := &TurnoverPair{Turnover: turnover}
	if p.CauserPlayerID != "" {
		causerSide := p.Side.Opposing()
		caused := &domain.GameEvent{
			GameID:           gameID,
			TeamID:           s.teamForSide(game, causerSide),
			Type:             domain.EventCausedTurnover,
			IsOpponent:       causerSide == domain.SideOpponent,
			Period:           p.Period,
			CausedByPlayerID: p.CauserPlayerID,
			LinkedEventID:    turnover.ID,
		}
		if _, err := s.events.Insert(ctx, caused); err != nil {
			return pair, fmt.Errorf("turnover %s committed but caused turnover failed: %w", turnover.ID, err)
		}
		pair.CausedTurnover = caused
	}

	return pair, s.afterMutation(ctx, gameID)
}

type CausedTurnoverParams struct {
	Side           domain.Side // the side credited with forcing the turnover
	CauserPlayerID string
	Period         int
}

// RecordCausedTurnover is the symmetric entry point when the operator
// starts from the defensive play: it synthesizes an anonymous turnover
// for the opposing side, then links the caused_turnover to it.
func (s *EventService) RecordCausedTurnover(ctx context.Context, gameID string, p CausedTurnoverParams) (*TurnoverPair, error) {
	game, err := s.games.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}

	turnoverSide := p.Side.Opposing()
	turnover := &domain.GameEvent{
		GameID:     gameID,
		TeamID:     s.teamForSide(game, turnoverSide),
		Type:       domain.EventTurnover,
		IsOpponent: turnoverSide == domain.SideOpponent,
		Period:     p.Period,
	}
	if _, err := s.events.Insert(ctx, turnover); err != nil {
		return nil, err
	}

	caused := &domain.GameEvent{
		GameID:           gameID,
		TeamID:           s.teamForSide(game, p.Side),
		Type:             domain.EventCausedTurnover,
		IsOpponent:       p.Side == domain.SideOpponent,
		Period:           p.Period,
		CausedByPlayerID: p.CauserPlayerID,
		LinkedEventID:    turnover.ID,
	}
	pair := &TurnoverPair{Turnover: turnover}
	if _, err := s.events.Insert(ctx, caused); err != nil {
		return pair, fmt.Errorf("turnover %s committed but caused turnover failed: %w", turnover.ID, err)
	}
	pair.CausedTurnover = caused

	return pair, s.afterMutation(ctx, gameID)
}

type EditTurnoverParams struct {
	TurnoverPlayerID string
	CauserPlayerID   string // "" deletes any linked caused_turnover
}

// EditTurnover updates a turnover and reconciles its linked
// caused_turnover: update it when a causer is still named, create one
// when a causer is newly named, delete it when the causer was cleared.
func (s *EventService) EditTurnover(ctx context.Context, turnoverID string, p EditTurnoverParams) error {
	turnover, err := s.events.GetByID(ctx, turnoverID)
	if err != nil {
		return err
	}
	if turnover.Type != domain.EventTurnover {
		return fmt.Errorf("event %s is not a turnover: %w", turnoverID, domain.ErrInvalidReference)
	}

	if err := s.events.UpdateTurnoverPlayer(ctx, turnoverID, p.TurnoverPlayerID); err != nil {
		return err
	}

	linked, err := s.events.FindLinkedCausedTurnover(ctx, turnoverID)
	if err != nil {
		return err
	}

	switch {
	case p.CauserPlayerID != "" && linked != nil:
		if err := s.events.UpdateCausedTurnoverPlayer(ctx, linked.ID, p.CauserPlayerID); err != nil {
			return err
		}
	case p.CauserPlayerID != "" && linked == nil:
		game, err := s.games.Get(ctx, turnover.GameID)
		if err != nil {
			return err
		}
		causerSide := sideOf(turnover).Opposing()
		caused := &domain.GameEvent{
			GameID:           turnover.GameID,
			TeamID:           s.teamForSide(game, causerSide),
			Type:             domain.EventCausedTurnover,
			IsOpponent:       causerSide == domain.SideOpponent,
			Period:           turnover.Period,
			CausedByPlayerID: p.CauserPlayerID,
			LinkedEventID:    turnoverID,
		}
		if _, err := s.events.Insert(ctx, caused); err != nil {
			return fmt.Errorf("turnover %s updated but caused turnover failed: %w", turnoverID, err)
		}
	case p.CauserPlayerID == "" && linked != nil:
		if err := s.events.Delete(ctx, linked.ID); err != nil {
			return fmt.Errorf("turnover %s updated but caused turnover delete failed: %w", turnoverID, err)
		}
	}

	return s.afterMutation(ctx, turnover.GameID)
}

type PenaltyParams struct {
	Side            domain.Side
	PenaltyType     string
	DurationSeconds int
	PlayerID        string // optional: bench penalties have no player
	Period          int
}

func (s *EventService) RecordPenalty(ctx context.Context, gameID string, p PenaltyParams) (*domain.GameEvent, error) {
	game, err := s.games.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}

	event := &domain.GameEvent{
		GameID:          gameID,
		TeamID:          s.teamForSide(game, p.Side),
		Type:            domain.EventPenalty,
		IsOpponent:      p.Side == domain.SideOpponent,
		Period:          p.Period,
		PenaltyType:     p.PenaltyType,
		PenaltyDuration: p.DurationSeconds,
		PenaltyPlayerID: p.PlayerID,
	}
	if _, err := s.events.Insert(ctx, event); err != nil {
		return nil, err
	}
	return event, s.afterMutation(ctx, gameID)
}

type FaceoffParams struct {
	Player1ID      string
	Player2ID      string
	WinnerPlayerID string
	Period         int
}

// RecordFaceoff credits the winner's team. The winner team id is derived
// from the winning player's side; an opponent roster without a team row
// gets one created on first need.
func (s *EventService) RecordFaceoff(ctx context.Context, gameID string, p FaceoffParams) (*domain.GameEvent, error) {
	game, err := s.games.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}

	winnerTeamID, err := s.resolveFaceoffWinnerTeam(ctx, game, p.WinnerPlayerID)
	if err != nil {
		return nil, err
	}

	event := &domain.GameEvent{
		GameID:              gameID,
		TeamID:              s.teamForSide(game, domain.SideHome),
		Type:                domain.EventFaceoff,
		IsOpponent:          false,
		Period:              p.Period,
		FaceoffPlayer1ID:    p.Player1ID,
		FaceoffPlayer2ID:    p.Player2ID,
		FaceoffWinnerTeamID: winnerTeamID,
	}
	if _, err := s.events.Insert(ctx, event); err != nil {
		return nil, err
	}
	return event, s.afterMutation(ctx, gameID)
}

func (s *EventService) resolveFaceoffWinnerTeam(ctx context.Context, game *domain.Game, winnerPlayerID string) (string, error) {
	winner, err := s.players.Get(ctx, winnerPlayerID)
	if err != nil {
		return "", fmt.Errorf("faceoff winner: %w", err)
	}

	if !winner.IsOpponent {
		return s.teamForSide(game, domain.SideHome), nil
	}
	if game.OpponentTeamID != "" {
		return game.OpponentTeamID, nil
	}

	// opponent roster has no team row yet, create one on demand
	name := game.Opponent
	if name == "" {
		name = "Opponent"
	}
	team, err := s.teams.CreateTeam(ctx, name)
	if err != nil {
		return "", err
	}
	if err := s.games.SetOpponentTeam(ctx, game.ID, team.ID); err != nil {
		return "", err
	}
	if err := s.players.AssignOpponentTeam(ctx, game.ID, team.ID); err != nil {
		return "", err
	}
	game.OpponentTeamID = team.ID

	s.logger.Info().Str("game_id", game.ID).Str("team_id", team.ID).Msg("opponent team created for faceoff attribution")
	return team.ID, nil
}

type ClearParams struct {
	Side    domain.Side
	Success bool
	Period  int
}

// RecordClear requires the clearing side's goalie to be designated; a
// clear starts from the goalie making an outlet.
func (s *EventService) RecordClear(ctx context.Context, gameID string, p ClearParams) (*domain.GameEvent, error) {
	game, err := s.games.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if _, err := s.goalies.Require(ctx, game, p.Side); err != nil {
		if errors.Is(err, domain.ErrGoalieRequired) {
			s.goalies.Defer(gameID, p.Side, func(ctx context.Context) error {
				_, err := s.RecordClear(ctx, gameID, p)
				return err
			})
		}
		return nil, err
	}

	event := &domain.GameEvent{
		GameID:       gameID,
		TeamID:       s.teamForSide(game, p.Side),
		Type:         domain.EventClear,
		IsOpponent:   p.Side == domain.SideOpponent,
		Period:       p.Period,
		ClearSuccess: p.Success,
	}
	if _, err := s.events.Insert(ctx, event); err != nil {
		return nil, err
	}
	return event, s.afterMutation(ctx, gameID)
}

// DeleteEvent removes an event and cascades across the turnover /
// caused_turnover pairing in both directions: the pair represents one
// play and never survives half-deleted on purpose. Returns how many
// events were removed.
func (s *EventService) DeleteEvent(ctx context.Context, eventID string) (int, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return 0, err
	}

	removed := 0

	if event.Type == domain.EventCausedTurnover && event.LinkedEventID != "" {
		if err := s.events.Delete(ctx, event.LinkedEventID); err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				return removed, fmt.Errorf("failed to delete linked turnover %s: %w", event.LinkedEventID, err)
			}
		} else {
			removed++
		}
	}

	if event.Type == domain.EventTurnover {
		linked, err := s.events.FindLinkedCausedTurnover(ctx, eventID)
		if err != nil {
			return removed, err
		}
		if linked != nil {
			if err := s.events.Delete(ctx, linked.ID); err != nil {
				if !errors.Is(err, domain.ErrNotFound) {
					return removed, fmt.Errorf("failed to delete linked caused turnover %s: %w", linked.ID, err)
				}
			} else {
				removed++
			}
		}
	}

	if err := s.events.Delete(ctx, eventID); err != nil {
		return removed, err
	}
	removed++

	s.logger.Info().
		Str("event_id", eventID).
		Str("event_type", string(event.Type)).
		Int("removed", removed).
		Msg("event deleted")

	return removed, s.afterMutation(ctx, event.GameID)
}

// UndoLast removes the most recently created event, cascading to its
// linked counterpart. Returns 0 when the log is empty.
func (s *EventService) UndoLast(ctx context.Context, gameID string) (int, error) {
	events, err := s.events.ListByGame(ctx, gameID)
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}
	return s.DeleteEvent(ctx, events[0].ID)
}

type EditEventParams struct {
	ShotOutcome    domain.ShotOutcome
	ScorerPlayerID string
	AssistPlayerID string

	TurnoverPlayerID string
	CauserPlayerID   string

	GroundBallPlayerID string

	PenaltyType     string
	DurationSeconds int
	PenaltyPlayerID string

	FaceoffPlayer1ID string
	FaceoffPlayer2ID string
	WinnerPlayerID   string

	ClearSuccess bool
}

// EditEvent updates an event in place, routing to the reconciliation the
// kind needs: turnovers go through the linked-event logic, shots through
// goalie attribution, the rest are plain field updates.
func (s *EventService) EditEvent(ctx context.Context, eventID string, p EditEventParams) error {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	switch event.Type {
	case domain.EventShot:
		return s.editShot(ctx, event, p)
	case domain.EventTurnover:
		return s.EditTurnover(ctx, eventID, EditTurnoverParams{
			TurnoverPlayerID: p.TurnoverPlayerID,
			CauserPlayerID:   p.CauserPlayerID,
		})
	case domain.EventCausedTurnover:
		if p.CauserPlayerID == "" {
			return &domain.MissingFieldError{Kind: string(event.Type), Field: "caused_by_player_id"}
		}
		if err := s.events.UpdateCausedTurnoverPlayer(ctx, eventID, p.CauserPlayerID); err != nil {
			return err
		}
	case domain.EventGroundBall:
		if p.GroundBallPlayerID == "" {
			return &domain.MissingFieldError{Kind: string(event.Type), Field: "ground_ball_player_id"}
		}
		if err := s.events.UpdateGroundBallPlayer(ctx, eventID, p.GroundBallPlayerID); err != nil {
			return err
		}
	case domain.EventPenalty:
		if p.PenaltyType == "" {
			return &domain.MissingFieldError{Kind: string(event.Type), Field: "penalty_type"}
		}
		if err := s.events.UpdatePenalty(ctx, eventID, p.PenaltyType, p.DurationSeconds, p.PenaltyPlayerID); err != nil {
			return err
		}
	case domain.EventFaceoff:
		game, err := s.games.Get(ctx, event.GameID)
		if err != nil {
			return err
		}
		winnerTeamID, err := s.resolveFaceoffWinnerTeam(ctx, game, p.WinnerPlayerID)
		if err != nil {
			return err
		}
		if err := s.events.UpdateFaceoff(ctx, eventID, p.FaceoffPlayer1ID, p.FaceoffPlayer2ID, winnerTeamID); err != nil {
			return err
		}
	case domain.EventClear:
		if err := s.events.UpdateClear(ctx, eventID, p.ClearSuccess); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown event type %q: %w", event.Type, domain.ErrInvalidReference)
	}

	return s.afterMutation(ctx, event.GameID)
}

func (s *EventService) editShot(ctx context.Context, event *domain.GameEvent, p EditEventParams) error {
	game, err := s.games.Get(ctx, event.GameID)
	if err != nil {
		return err
	}

	goalieID := ""
	if p.ShotOutcome == domain.ShotGoal || p.ShotOutcome == domain.ShotSaved {
		opposing := sideOf(event).Opposing()
		goalieID, err = s.goalies.Require(ctx, game, opposing)
		if errors.Is(err, domain.ErrGoalieRequired) {
			eventID := event.ID
			s.goalies.Defer(event.GameID, opposing, func(ctx context.Context) error {
				return s.EditEvent(ctx, eventID, p)
			})
			return err
		}
		if err != nil {
			return err
		}
	}

	if err := s.events.UpdateShot(ctx, event.ID, p.ShotOutcome, p.ScorerPlayerID, p.AssistPlayerID, goalieID); err != nil {
		return err
	}
	return s.afterMutation(ctx, event.GameID)
}
