// Package export renders a game's aggregated statistics into the
// external formats coaches submit after a game: the MaxPreps
// pipe-delimited stat import and a full game report CSV.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"lacrosse-tracker/internal/domain"
	"lacrosse-tracker/internal/stats"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type GameSource interface {
	Get(ctx context.Context, id string) (*domain.Game, error)
}

type PlayerSource interface {
	ListByProgram(ctx context.Context, programID string) ([]domain.Player, error)
	ListOpponentsByGame(ctx context.Context, gameID string) ([]domain.Player, error)
}

type EventSource interface {
	ListByGame(ctx context.Context, gameID string) ([]domain.GameEvent, error)
}

type Exporter struct {
	games   GameSource
	players PlayerSource
	events  EventSource
	logger  zerolog.Logger
}

func NewExporter(games GameSource, players PlayerSource, events EventSource, logger zerolog.Logger) *Exporter {
	return &Exporter{
		games:   games,
		players: players,
		events:  events,
		logger:  logger,
	}
}

// File is a rendered export ready to hand to the client.
type File struct {
	Filename    string
	ContentType string
	Content     []byte
}

const maxPrepsHeader = "Jersey|Goals|Assists|TotalShots|ShotsOnGoal|GroundBalls|Turnovers|Takeaways|UnforcedErrors|FaceoffWon|FaceoffAttempts|Saves|GoalsAgainst|Penalties|PenaltyMinutes"

// MaxPreps renders the home roster's stat lines in the MaxPreps import
// format: a batch id line, the column header, then one pipe-delimited
// row per player who did anything. Takeaways is MaxPreps' name for
// caused turnovers; unforced errors are turnovers with no linked
// caused_turnover.
func (x *Exporter) MaxPreps(ctx context.Context, gameID string) (*File, error) {
	game, roster, _, events, err := x.load(ctx, gameID, false)
	if err != nil {
		return nil, err
	}

	linked := stats.LinkedTurnoverIDs(events)

	lines := []string{uuid.NewString(), maxPrepsHeader}
	for _, p := range roster {
		s := stats.Aggregate(events, p.ID, game.TeamID)
		unforced := unforcedErrors(events, p.ID, linked)
		if !s.HasActivity() && unforced == 0 {
			continue
		}
		lines = append(lines, strings.Join([]string{
			strconv.Itoa(p.Number),
			strconv.Itoa(s.Goals),
			strconv.Itoa(s.Assists),
			strconv.Itoa(s.Shots),
			strconv.Itoa(s.ShotsOnGoal),
			strconv.Itoa(s.GroundBalls),
			strconv.Itoa(s.Turnovers),
			strconv.Itoa(s.CausedTurnovers),
			strconv.Itoa(unforced),
			strconv.Itoa(s.FaceoffsWon),
			strconv.Itoa(s.FaceoffsWon + s.FaceoffsLost),
			strconv.Itoa(s.Saves),
			strconv.Itoa(s.GoalsAllowed),
			strconv.Itoa(s.Penalties),
			strconv.Itoa(s.PenaltyMinutes),
		}, "|"))
	}

	x.logger.Info().
		Str("game_id", gameID).
		Int("rows", len(lines)-2).
		Msg("maxpreps export rendered")

	return &File{
		Filename:    exportFilename("MaxPreps", game, "txt"),
		ContentType: "text/plain",
		Content:     []byte(strings.Join(lines, "\n")),
	}, nil
}

var reportHeader = []string{
	"Player Number", "Player Name", "Position",
	"Goals", "Assists", "Points", "Shots", "SOG", "GB", "TO", "CT",
	"FO Won", "FO Lost", "Saves", "GA", "PEN", "PIM",
}

// Report renders the full both-benches game report as CSV.
func (x *Exporter) Report(ctx context.Context, gameID string) (*File, error) {
	game, roster, opponents, events, err := x.load(ctx, gameID, true)
	if err != nil {
		return nil, err
	}

	our, theirs := stats.Score(events)
	opponentName := opponentDisplayName(game)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	writeRow := func(fields ...string) {
		_ = w.Write(fields)
	}

	writeRow(fmt.Sprintf("Game Report - %s", game.GameDate))
	writeRow(fmt.Sprintf("Opponent: %s", opponentName))
	writeRow(fmt.Sprintf("Final Score: %d - %d", our, theirs))
	writeRow("")
	writeRow("YOUR TEAM")
	writeRow(reportHeader...)
	writeRoster(writeRow, roster, events, game.TeamID)

	writeRow("")
	writeRow(fmt.Sprintf("OPPONENT - %s", opponentName))
	writeRow(reportHeader...)
	writeRoster(writeRow, opponents, events, game.OpponentTeamID)

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to render report csv: %w", err)
	}

	return &File{
		Filename:    exportFilename("Game_Report", game, "csv"),
		ContentType: "text/csv",
		Content:     buf.Bytes(),
	}, nil
}

func writeRoster(writeRow func(...string), players []domain.Player, events []domain.GameEvent, teamID string) {
	for _, p := range players {
		s := stats.Aggregate(events, p.ID, teamID)
		if !s.HasActivity() {
			continue
		}
		writeRow(
			strconv.Itoa(p.Number),
			p.Name,
			joinPositions(p.Position),
			strconv.Itoa(s.Goals),
			strconv.Itoa(s.Assists),
			strconv.Itoa(s.Points()),
			strconv.Itoa(s.Shots),
			strconv.Itoa(s.ShotsOnGoal),
			strconv.Itoa(s.GroundBalls),
			strconv.Itoa(s.Turnovers),
			strconv.Itoa(s.CausedTurnovers),
			strconv.Itoa(s.FaceoffsWon),
			strconv.Itoa(s.FaceoffsLost),
			strconv.Itoa(s.Saves),
			strconv.Itoa(s.GoalsAllowed),
			strconv.Itoa(s.Penalties),
			strconv.Itoa(s.PenaltyMinutes),
		)
	}
}

// unforcedErrors counts a player's turnovers nobody took credit for
// forcing. Derived from the linked-id set rather than any field on the
// turnover row itself.
func unforcedErrors(events []domain.GameEvent, playerID string, linked map[string]bool) int {
	n := 0
	for _, e := range events {
		if e.Type == domain.EventTurnover && e.TurnoverPlayerID == playerID && !linked[e.ID] {
			n++
		}
	}
	return n
}

func (x *Exporter) load(ctx context.Context, gameID string, withOpponents bool) (*domain.Game, []domain.Player, []domain.Player, []domain.GameEvent, error) {
	game, err := x.games.Get(ctx, gameID)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	var (
		roster    []domain.Player
		opponents []domain.Player
		events    []domain.GameEvent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = x.players.ListByProgram(gctx, game.ProgramID)
		return err
	})
	g.Go(func() error {
		var err error
		events, err = x.events.ListByGame(gctx, gameID)
		return err
	})
	if withOpponents {
		g.Go(func() error {
			var err error
			opponents, err = x.players.ListOpponentsByGame(gctx, gameID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load export data: %w", err)
	}

	return game, roster, opponents, events, nil
}

func opponentDisplayName(game *domain.Game) string {
	if game.Opponent != "" {
		return game.Opponent
	}
	return "Opponent"
}

func exportFilename(prefix string, game *domain.Game, ext string) string {
	name := strings.ReplaceAll(opponentDisplayName(game), " ", "_")
	return fmt.Sprintf("%s_%s_%s.%s", prefix, name, game.GameDate, ext)
}

func joinPositions(positions []domain.Position) string {
	parts := make([]string, len(positions))
	for i, p := range positions {
		parts[i] = string(p)
	}
	return strings.Join(parts, "/")
}
