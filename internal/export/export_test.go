package export

import (
	"context"
	"strings"
	"testing"

	"lacrosse-tracker/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	game      *domain.Game
	roster    []domain.Player
	opponents []domain.Player
	events    []domain.GameEvent
}

func (s *staticSource) Get(context.Context, string) (*domain.Game, error) {
	return s.game, nil
}

func (s *staticSource) ListByProgram(context.Context, string) ([]domain.Player, error) {
	return s.roster, nil
}

func (s *staticSource) ListOpponentsByGame(context.Context, string) ([]domain.Player, error) {
	return s.opponents, nil
}

func (s *staticSource) ListByGame(context.Context, string) ([]domain.GameEvent, error) {
	return s.events, nil
}

func newTestExporter() (*Exporter, *staticSource) {
	src := &staticSource{
		game: &domain.Game{
			ID:        "g1",
			ProgramID: "prog1",
			TeamID:    "t1",
			Opponent:  "North Valley",
			GameDate:  "2026-04-12",
		},
		roster: []domain.Player{
			{ID: "p1", Name: "Alpha", Number: 4, Position: []domain.Position{domain.PositionAttack}},
			{ID: "p2", Name: "Quiet", Number: 9, Position: []domain.Position{domain.PositionDefense}},
		},
		opponents: []domain.Player{
			{ID: "o1", Name: "#10", Number: 10, IsOpponent: true},
		},
		events: []domain.GameEvent{
			{ID: "e1", Type: domain.EventShot, ShotOutcome: domain.ShotGoal, ScorerPlayerID: "p1"},
			{ID: "e2", Type: domain.EventShot, ShotOutcome: domain.ShotMissed, ScorerPlayerID: "p1"},
			{ID: "e3", Type: domain.EventTurnover, TurnoverPlayerID: "p1"},
			{ID: "e4", Type: domain.EventTurnover, TurnoverPlayerID: "p1"},
			{ID: "e5", Type: domain.EventCausedTurnover, CausedByPlayerID: "o1", LinkedEventID: "e3", IsOpponent: true},
			{ID: "e6", Type: domain.EventShot, ShotOutcome: domain.ShotGoal, ScorerPlayerID: "o1", IsOpponent: true},
		},
	}
	return NewExporter(src, src, src, zerolog.Nop()), src
}

func TestMaxPreps(t *testing.T) {
	exporter, _ := newTestExporter()

	file, err := exporter.MaxPreps(context.Background(), "g1")
	require.NoError(t, err)

	assert.Equal(t, "MaxPreps_North_Valley_2026-04-12.txt", file.Filename)
	assert.Equal(t, "text/plain", file.ContentType)

	lines := strings.Split(string(file.Content), "\n")
	require.Len(t, lines, 3)

	// batch id line must be a well-formed uuid
	_, err = uuid.Parse(lines[0])
	assert.NoError(t, err)

	assert.Equal(t, maxPrepsHeader, lines[1])

	// jersey 4: 1 goal, 2 shots, 1 SOG, 2 turnovers, one of them unforced
	assert.Equal(t, "4|1|0|2|1|0|2|0|1|0|0|0|0|0|0", lines[2])
}

func TestMaxPrepsSkipsInactivePlayers(t *testing.T) {
	exporter, _ := newTestExporter()

	file, err := exporter.MaxPreps(context.Background(), "g1")
	require.NoError(t, err)

	assert.NotContains(t, string(file.Content), "\n9|")
}

func TestMaxPrepsUnforcedErrors(t *testing.T) {
	linked := map[string]bool{"e3": true}
	events := []domain.GameEvent{
		{ID: "e3", Type: domain.EventTurnover, TurnoverPlayerID: "p1"},
		{ID: "e4", Type: domain.EventTurnover, TurnoverPlayerID: "p1"},
		{ID: "e7", Type: domain.EventTurnover, TurnoverPlayerID: "p2"},
	}

	assert.Equal(t, 1, unforcedErrors(events, "p1", linked))
	assert.Equal(t, 1, unforcedErrors(events, "p2", linked))
	assert.Equal(t, 0, unforcedErrors(events, "p9", linked))
}

func TestReport(t *testing.T) {
	exporter, _ := newTestExporter()

	file, err := exporter.Report(context.Background(), "g1")
	require.NoError(t, err)

	assert.Equal(t, "Game_Report_North_Valley_2026-04-12.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)

	content := string(file.Content)
	assert.Contains(t, content, "Game Report - 2026-04-12")
	assert.Contains(t, content, "Opponent: North Valley")
	assert.Contains(t, content, "Final Score: 1 - 1")
	assert.Contains(t, content, "YOUR TEAM")
	assert.Contains(t, content, "OPPONENT - North Valley")
	assert.Contains(t, content, "4,Alpha,Attack")
	assert.NotContains(t, content, "Quiet")
	assert.Contains(t, content, "10,#10,")
}
