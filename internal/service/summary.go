package service

import (
	"context"
	"fmt"

	"lacrosse-tracker/internal/domain"
	"lacrosse-tracker/internal/stats"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// EventLogEntry pairs a raw event with its human-readable line for the
// running log view.
type EventLogEntry struct {
	Event       domain.GameEvent `json:"event"`
	Description string           `json:"description"`
}

// GameSummary is the full read model for one game: the game row, the
// derived box score, and the annotated event log, newest first.
type GameSummary struct {
	Game     *domain.Game    `json:"game"`
	BoxScore stats.BoxScore  `json:"box_score"`
	EventLog []EventLogEntry `json:"event_log"`
}

type SummaryService struct {
	events  EventStore
	games   GameStore
	players PlayerStore
	logger  zerolog.Logger
}

func NewSummaryService(events EventStore, games GameStore, players PlayerStore, logger zerolog.Logger) *SummaryService {
	return &SummaryService{
		events:  events,
		games:   games,
		players: players,
		logger:  logger,
	}
}

// Load fetches everything a summary needs. The game row is loaded first
// (it carries the program id the roster query needs), then the three
// independent reads run concurrently.
func (s *SummaryService) Load(ctx context.Context, gameID string) (*GameSummary, error) {
	game, err := s.games.Get(ctx, gameID)
	if err != nil {
		return nil, err
	}

	var (
		homeRoster     []domain.Player
		opponentRoster []domain.Player
		events         []domain.GameEvent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		homeRoster, err = s.players.ListByProgram(gctx, game.ProgramID)
		return err
	})
	g.Go(func() error {
		var err error
		opponentRoster, err = s.players.ListOpponentsByGame(gctx, gameID)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.events.ListByGame(gctx, gameID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load game summary: %w", err)
	}

	box := stats.BuildBoxScore(game, homeRoster, opponentRoster, events)

	names := playerIndex(homeRoster, opponentRoster)
	log := make([]EventLogEntry, len(events))
	for i, e := range events {
		log[i] = EventLogEntry{Event: e, Description: Describe(e, names)}
	}

	return &GameSummary{Game: game, BoxScore: box, EventLog: log}, nil
}

func playerIndex(rosters ...[]domain.Player) map[string]domain.Player {
	idx := make(map[string]domain.Player)
	for _, roster := range rosters {
		for _, p := range roster {
			idx[p.ID] = p
		}
	}
	return idx
}

func playerLabel(id string, names map[string]domain.Player) string {
	if id == "" {
		return "unknown"
	}
	p, ok := names[id]
	if !ok {
		return "unknown"
	}
	if p.Name != "" {
		return fmt.Sprintf("#%d %s", p.Number, p.Name)
	}
	return fmt.Sprintf("#%d", p.Number)
}

// Describe renders one event as the line shown in the running log.
func Describe(e domain.GameEvent, names map[string]domain.Player) string {
	side := "Home"
	if e.IsOpponent {
		side = "Opponent"
	}

	switch e.Type {
	case domain.EventShot:
		switch e.ShotOutcome {
		case domain.ShotGoal:
			desc := fmt.Sprintf("%s goal by %s", side, playerLabel(e.ScorerPlayerID, names))
			if e.AssistPlayerID != "" {
				desc += fmt.Sprintf(" (assist %s)", playerLabel(e.AssistPlayerID, names))
			}
			return desc
		case domain.ShotSaved:
			return fmt.Sprintf("%s shot by %s, saved by %s",
				side, playerLabel(e.ScorerPlayerID, names), playerLabel(e.GoaliePlayerID, names))
		case domain.ShotBlocked:
			return fmt.Sprintf("%s shot by %s, blocked", side, playerLabel(e.ScorerPlayerID, names))
		default:
			return fmt.Sprintf("%s shot by %s, missed", side, playerLabel(e.ScorerPlayerID, names))
		}
	case domain.EventGroundBall:
		return fmt.Sprintf("%s ground ball by %s", side, playerLabel(e.GroundBallPlayerID, names))
	case domain.EventTurnover:
		if e.TurnoverPlayerID == "" {
			return fmt.Sprintf("%s turnover", side)
		}
		return fmt.Sprintf("%s turnover by %s", side, playerLabel(e.TurnoverPlayerID, names))
	case domain.EventCausedTurnover:
		return fmt.Sprintf("%s caused turnover by %s", side, playerLabel(e.CausedByPlayerID, names))
	case domain.EventPenalty:
		desc := fmt.Sprintf("%s penalty", side)
		if e.PenaltyPlayerID != "" {
			desc += " on " + playerLabel(e.PenaltyPlayerID, names)
		}
		return fmt.Sprintf("%s (%s, %d:%02d)", desc, e.PenaltyType, e.PenaltyDuration/60, e.PenaltyDuration%60)
	case domain.EventFaceoff:
		return fmt.Sprintf("Faceoff: %s vs %s",
			playerLabel(e.FaceoffPlayer1ID, names), playerLabel(e.FaceoffPlayer2ID, names))
	case domain.EventClear:
		outcome := "failed"
		if e.ClearSuccess {
			outcome = "successful"
		}
		return fmt.Sprintf("%s clear %s", side, outcome)
	default:
		return string(e.Type)
	}
}
