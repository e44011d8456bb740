package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"lacrosse-tracker/internal/constants"
	"lacrosse-tracker/internal/domain"

	"github.com/rs/zerolog"
)

// RosterService manages home and opponent rosters, including the bulk
// paths: pasting a whole roster at once and generating numbered
// opponent entries when only jersey numbers are known.
type RosterService struct {
	players RosterStore
	logger  zerolog.Logger
}

func NewRosterService(players RosterStore, logger zerolog.Logger) *RosterService {
	return &RosterService{players: players, logger: logger}
}

func (s *RosterService) CreatePlayer(ctx context.Context, player *domain.Player) (string, error) {
	if player.Name == "" {
		return "", &domain.MissingFieldError{Kind: "player", Field: "name"}
	}
	if len(player.Position) == 0 {
		player.Position = []domain.Position{domain.PositionMidfield}
	}
	return s.players.Create(ctx, player)
}

func (s *RosterService) UpdatePlayer(ctx context.Context, player *domain.Player) error {
	if player.Name == "" {
		return &domain.MissingFieldError{Kind: "player", Field: "name"}
	}
	return s.players.Update(ctx, player)
}

func (s *RosterService) DeletePlayer(ctx context.Context, id string) error {
	return s.players.Delete(ctx, id)
}

func (s *RosterService) ListRoster(ctx context.Context, programID string) ([]domain.Player, error) {
	return s.players.ListByProgram(ctx, programID)
}

func (s *RosterService) ListOpponentRoster(ctx context.Context, gameID string) ([]domain.Player, error) {
	return s.players.ListOpponentsByGame(ctx, gameID)
}

// GenerateOpponentNumbers fills a game's opponent roster with numbered
// placeholder entries ("#12") for the inclusive jersey range. With
// replace set, the existing opponent roster is cleared first. Inserts
// are not transactional; the returned count is what actually landed.
func (s *RosterService) GenerateOpponentNumbers(ctx context.Context, gameID string, start, end int, replace bool) (int, error) {
	if start < 0 || end < start || end > constants.MaxJerseyNumber {
		return 0, fmt.Errorf("invalid jersey range %d-%d: %w", start, end, domain.ErrInvalidReference)
	}

	if replace {
		existing, err := s.players.ListOpponentsByGame(ctx, gameID)
		if err != nil {
			return 0, err
		}
		for _, p := range existing {
			if err := s.players.Delete(ctx, p.ID); err != nil {
				return 0, fmt.Errorf("failed to clear opponent roster at player %s: %w", p.ID, err)
			}
		}
	}

	created := 0
	for n := start; n <= end; n++ {
		player := &domain.Player{
			GameID:     gameID,
			Name:       fmt.Sprintf("#%d", n),
			Number:     n,
			Position:   []domain.Position{domain.PositionMidfield},
			IsOpponent: true,
		}
		if _, err := s.players.Create(ctx, player); err != nil {
			return created, fmt.Errorf("generated %d of %d opponent entries: %w", created, end-start+1, err)
		}
		created++
	}

	s.logger.Info().
		Str("game_id", gameID).
		Int("start", start).
		Int("end", end).
		Bool("replace", replace).
		Msg("opponent numbers generated")
	return created, nil
}

// BulkImportResult reports what a pasted roster import did.
type BulkImportResult struct {
	Created int      `json:"created"`
	Skipped []string `json:"skipped,omitempty"`
}

// BulkImport parses "number, name, position/position" lines (comma or
// tab separated) and inserts a player per valid line. Invalid lines are
// skipped and reported, not fatal.
func (s *RosterService) BulkImport(ctx context.Context, text string, programID, gameID string, isOpponent bool) (*BulkImportResult, error) {
	result := &BulkImportResult{}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		player, ok := parseRosterLine(line)
		if !ok {
			result.Skipped = append(result.Skipped, line)
			continue
		}
		player.ProgramID = programID
		player.GameID = gameID
		player.IsOpponent = isOpponent

		if _, err := s.players.Create(ctx, player); err != nil {
			return result, fmt.Errorf("imported %d players, failed at %q: %w", result.Created, line, err)
		}
		result.Created++
	}

	s.logger.Info().
		Int("created", result.Created).
		Int("skipped", len(result.Skipped)).
		Bool("is_opponent", isOpponent).
		Msg("bulk roster import")
	return result, nil
}

func parseRosterLine(line string) (*domain.Player, bool) {
	parts := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == '\t'
	})
	if len(parts) < 2 {
		return nil, false
	}

	number, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, false
	}
	name := strings.TrimSpace(parts[1])
	if name == "" {
		return nil, false
	}

	positions := []domain.Position{domain.PositionMidfield}
	if len(parts) > 2 {
		if parsed := parsePositions(parts[2]); len(parsed) > 0 {
			positions = parsed
		}
	}

	return &domain.Player{Name: name, Number: number, Position: positions}, true
}

func parsePositions(raw string) []domain.Position {
	known := map[domain.Position]bool{
		domain.PositionAttack:   true,
		domain.PositionMidfield: true,
		domain.PositionDefense:  true,
		domain.PositionGoalie:   true,
	}

	var positions []domain.Position
	for _, p := range strings.Split(raw, "/") {
		pos := domain.Position(strings.TrimSpace(p))
		if known[pos] {
			positions = append(positions, pos)
		}
	}
	return positions
}
