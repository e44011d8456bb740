package service

import (
	"context"
	"testing"

	"lacrosse-tracker/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	events   *fakeEventStore
	games    *fakeGameStore
	players  *fakePlayerStore
	teams    *fakeTeamStore
	resolver *GoalieResolver
	svc      *EventService
}

func newTestEnv() *testEnv {
	game := &domain.Game{ID: "g1", ProgramID: "prog1", TeamID: "t1", Opponent: "Rivals", GameDate: "2026-04-12"}
	events := newFakeEventStore()
	games := newFakeGameStore(game)
	players := &fakePlayerStore{players: []domain.Player{
		{ID: "p1", ProgramID: "prog1", Name: "Alpha", Number: 4, Position: []domain.Position{domain.PositionAttack}},
		{ID: "gk1", ProgramID: "prog1", Name: "Keeper", Number: 1, Position: []domain.Position{domain.PositionGoalie}},
		{ID: "o1", GameID: "g1", Name: "#10", Number: 10, IsOpponent: true, Position: []domain.Position{domain.PositionMidfield}},
	}}
	teams := &fakeTeamStore{}
	log := zerolog.Nop()
	resolver := NewGoalieResolver(games, players, log)
	return &testEnv{
		events:   events,
		games:    games,
		players:  players,
		teams:    teams,
		resolver: resolver,
		svc:      NewEventService(events, games, players, teams, resolver, log),
	}
}

func TestRecordShotMissedInsertsDirectly(t *testing.T) {
	env := newTestEnv()

	event, err := env.svc.RecordShot(context.Background(), "g1", ShotParams{
		Side:           domain.SideHome,
		Outcome:        domain.ShotMissed,
		ScorerPlayerID: "p1",
		Period:         2,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.EventShot, event.Type)
	assert.Equal(t, "t1", event.TeamID)
	assert.Empty(t, event.GoaliePlayerID)
	assert.Len(t, env.events.events, 1)
	assert.Equal(t, 1, env.games.scoreUpdates)
}

func TestRecordShotGoalWaitsForGoalie(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.svc.RecordShot(ctx, "g1", ShotParams{
		Side:           domain.SideHome,
		Outcome:        domain.ShotGoal,
		ScorerPlayerID: "p1",
	})
	require.ErrorIs(t, err, domain.ErrGoalieRequired)

	assert.Empty(t, env.events.events)
	assert.True(t, env.resolver.HasPending("g1", domain.SideOpponent))

	// selecting the opposing goalie replays the parked shot
	require.NoError(t, env.resolver.Select(ctx, "g1", domain.SideOpponent, "o1"))

	require.Len(t, env.events.events, 1)
	assert.Equal(t, "o1", env.events.events[0].GoaliePlayerID)
	assert.False(t, env.resolver.HasPending("g1", domain.SideOpponent))
	assert.Equal(t, 1, env.games.games["g1"].OurScore)
}

func TestRecordShotPendingLastWins(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.svc.RecordShot(ctx, "g1", ShotParams{
		Side: domain.SideHome, Outcome: domain.ShotGoal, ScorerPlayerID: "p1",
	})
	require.ErrorIs(t, err, domain.ErrGoalieRequired)

	_, err = env.svc.RecordShot(ctx, "g1", ShotParams{
		Side: domain.SideHome, Outcome: domain.ShotSaved, ScorerPlayerID: "p1",
	})
	require.ErrorIs(t, err, domain.ErrGoalieRequired)

	require.NoError(t, env.resolver.Select(ctx, "g1", domain.SideOpponent, "o1"))

	// only the second request survives
	require.Len(t, env.events.events, 1)
	assert.Equal(t, domain.ShotSaved, env.events.events[0].ShotOutcome)
}

func TestRecordShotNoEligibleGoalies(t *testing.T) {
	env := newTestEnv()
	// strip the goalie from the home roster
	env.players.players = []domain.Player{
		{ID: "p1", ProgramID: "prog1", Name: "Alpha", Number: 4, Position: []domain.Position{domain.PositionAttack}},
		{ID: "o1", GameID: "g1", Name: "#10", Number: 10, IsOpponent: true},
	}

	// opponent goal needs a home goalie and nobody qualifies
	_, err := env.svc.RecordShot(context.Background(), "g1", ShotParams{
		Side: domain.SideOpponent, Outcome: domain.ShotGoal, ScorerPlayerID: "o1",
	})
	require.ErrorIs(t, err, domain.ErrNoEligibleGoalies)
	assert.False(t, env.resolver.HasPending("g1", domain.SideHome))
	assert.Empty(t, env.events.events)
}

func TestRecordShotUsesCurrentGoaliePointer(t *testing.T) {
	env := newTestEnv()
	env.games.games["g1"].CurrentOpponentGoalieID = "o1"

	event, err := env.svc.RecordShot(context.Background(), "g1", ShotParams{
		Side: domain.SideHome, Outcome: domain.ShotGoal, ScorerPlayerID: "p1", AssistPlayerID: "gk1",
	})
	require.NoError(t, err)

	assert.Equal(t, "o1", event.GoaliePlayerID)
	assert.Equal(t, 1, env.games.games["g1"].OurScore)
	assert.Equal(t, 0, env.games.games["g1"].OpponentScore)
}

func TestRecordTurnoverUnforced(t *testing.T) {
	env := newTestEnv()

	pair, err := env.svc.RecordTurnover(context.Background(), "g1", TurnoverParams{
		Side:             domain.SideHome,
		TurnoverPlayerID: "p1",
	})
	require.NoError(t, err)

	assert.Nil(t, pair.CausedTurnover)
	assert.Len(t, env.events.events, 1)
}

func TestRecordTurnoverWithCauser(t *testing.T) {
	env := newTestEnv()

	pair, err := env.svc.RecordTurnover(context.Background(), "g1", TurnoverParams{
		Side:             domain.SideHome,
		TurnoverPlayerID: "p1",
		CauserPlayerID:   "o1",
		Period:           3,
	})
	require.NoError(t, err)

	require.NotNil(t, pair.CausedTurnover)
	assert.Equal(t, pair.Turnover.ID, pair.CausedTurnover.LinkedEventID)
	assert.False(t, pair.Turnover.IsOpponent)
	assert.True(t, pair.CausedTurnover.IsOpponent)
	assert.Equal(t, 3, pair.CausedTurnover.Period)
	assert.Len(t, env.events.events, 2)
}

func TestRecordTurnoverPartialFailure(t *testing.T) {
	env := newTestEnv()
	env.events.failInsertAt = 2

	pair, err := env.svc.RecordTurnover(context.Background(), "g1", TurnoverParams{
		Side:             domain.SideHome,
		TurnoverPlayerID: "p1",
		CauserPlayerID:   "o1",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "committed")

	// the first write stands even though the pair is incomplete
	require.NotNil(t, pair)
	assert.NotNil(t, pair.Turnover)
	assert.Nil(t, pair.CausedTurnover)
	assert.Len(t, env.events.events, 1)
}

func TestRecordCausedTurnoverSynthesizesTurnover(t *testing.T) {
	env := newTestEnv()

	pair, err := env.svc.RecordCausedTurnover(context.Background(), "g1", CausedTurnoverParams{
		Side:           domain.SideHome,
		CauserPlayerID: "p1",
	})
	require.NoError(t, err)

	require.NotNil(t, pair.CausedTurnover)
	assert.True(t, pair.Turnover.IsOpponent)
	assert.Empty(t, pair.Turnover.TurnoverPlayerID)
	assert.False(t, pair.CausedTurnover.IsOpponent)
	assert.Equal(t, pair.Turnover.ID, pair.CausedTurnover.LinkedEventID)
}

func TestEditTurnoverAddsCauser(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	pair, err := env.svc.RecordTurnover(ctx, "g1", TurnoverParams{Side: domain.SideHome, TurnoverPlayerID: "p1"})
	require.NoError(t, err)

	err = env.svc.EditTurnover(ctx, pair.Turnover.ID, EditTurnoverParams{
		TurnoverPlayerID: "p1",
		CauserPlayerID:   "o1",
	})
	require.NoError(t, err)

	linked, err := env.events.FindLinkedCausedTurnover(ctx, pair.Turnover.ID)
	require.NoError(t, err)
	require.NotNil(t, linked)
	assert.Equal(t, "o1", linked.CausedByPlayerID)
	assert.True(t, linked.IsOpponent)
}

func TestEditTurnoverChangesCauser(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.players.players = append(env.players.players, domain.Player{ID: "o2", GameID: "g1", Number: 22, IsOpponent: true})

	pair, err := env.svc.RecordTurnover(ctx, "g1", TurnoverParams{Side: domain.SideHome, TurnoverPlayerID: "p1", CauserPlayerID: "o1"})
	require.NoError(t, err)

	err = env.svc.EditTurnover(ctx, pair.Turnover.ID, EditTurnoverParams{
		TurnoverPlayerID: "p1",
		CauserPlayerID:   "o2",
	})
	require.NoError(t, err)

	linked, err := env.events.FindLinkedCausedTurnover(ctx, pair.Turnover.ID)
	require.NoError(t, err)
	require.NotNil(t, linked)
	assert.Equal(t, "o2", linked.CausedByPlayerID)
	assert.Len(t, env.events.events, 2)
}

func TestEditTurnoverRemovesCauser(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	pair, err := env.svc.RecordTurnover(ctx, "g1", TurnoverParams{Side: domain.SideHome, TurnoverPlayerID: "p1", CauserPlayerID: "o1"})
	require.NoError(t, err)
	require.Len(t, env.events.events, 2)

	err = env.svc.EditTurnover(ctx, pair.Turnover.ID, EditTurnoverParams{TurnoverPlayerID: "p1"})
	require.NoError(t, err)

	linked, err := env.events.FindLinkedCausedTurnover(ctx, pair.Turnover.ID)
	require.NoError(t, err)
	assert.Nil(t, linked)
	assert.Len(t, env.events.events, 1)
}

func TestEditTurnoverRejectsOtherKinds(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	event, err := env.svc.RecordGroundBall(ctx, "g1", GroundBallParams{Side: domain.SideHome, PlayerID: "p1"})
	require.NoError(t, err)

	err = env.svc.EditTurnover(ctx, event.ID, EditTurnoverParams{TurnoverPlayerID: "p1"})
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestUndoLastCascadesLinkedPair(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.svc.RecordTurnover(ctx, "g1", TurnoverParams{Side: domain.SideHome, TurnoverPlayerID: "p1", CauserPlayerID: "o1"})
	require.NoError(t, err)

	removed, err := env.svc.UndoLast(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Empty(t, env.events.events)
}

func TestUndoLastSingleEvent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.svc.RecordGroundBall(ctx, "g1", GroundBallParams{Side: domain.SideHome, PlayerID: "p1"})
	require.NoError(t, err)

	removed, err := env.svc.UndoLast(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Empty(t, env.events.events)
}

func TestUndoLastEmptyLog(t *testing.T) {
	env := newTestEnv()

	removed, err := env.svc.UndoLast(context.Background(), "g1")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestDeleteCausedTurnoverCascadesToTurnover(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	pair, err := env.svc.RecordTurnover(ctx, "g1", TurnoverParams{Side: domain.SideHome, TurnoverPlayerID: "p1", CauserPlayerID: "o1"})
	require.NoError(t, err)

	removed, err := env.svc.DeleteEvent(ctx, pair.CausedTurnover.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.Empty(t, env.events.events)
}

func TestDeleteScoreRecomputed(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.games.games["g1"].CurrentOpponentGoalieID = "o1"

	event, err := env.svc.RecordShot(ctx, "g1", ShotParams{
		Side: domain.SideHome, Outcome: domain.ShotGoal, ScorerPlayerID: "p1",
	})
	require.NoError(t, err)
	require.Equal(t, 1, env.games.games["g1"].OurScore)

	_, err = env.svc.DeleteEvent(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, env.games.games["g1"].OurScore)
}

func TestRecordFaceoffHomeWinner(t *testing.T) {
	env := newTestEnv()

	event, err := env.svc.RecordFaceoff(context.Background(), "g1", FaceoffParams{
		Player1ID:      "p1",
		Player2ID:      "o1",
		WinnerPlayerID: "p1",
	})
	require.NoError(t, err)

	assert.Equal(t, "t1", event.FaceoffWinnerTeamID)
	assert.Empty(t, env.teams.created)
}

func TestRecordFaceoffOpponentWinnerCreatesTeam(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	event, err := env.svc.RecordFaceoff(ctx, "g1", FaceoffParams{
		Player1ID:      "p1",
		Player2ID:      "o1",
		WinnerPlayerID: "o1",
	})
	require.NoError(t, err)

	require.Len(t, env.teams.created, 1)
	assert.Equal(t, "Rivals", env.teams.created[0].Name)
	assert.Equal(t, env.teams.created[0].ID, event.FaceoffWinnerTeamID)
	assert.Equal(t, env.teams.created[0].ID, env.games.games["g1"].OpponentTeamID)

	roster, err := env.players.ListOpponentsByGame(ctx, "g1")
	require.NoError(t, err)
	require.NotEmpty(t, roster)
	assert.Equal(t, env.teams.created[0].ID, roster[0].TeamID)
}

func TestRecordFaceoffOpponentWinnerReusesTeam(t *testing.T) {
	env := newTestEnv()
	env.games.games["g1"].OpponentTeamID = "t2"

	event, err := env.svc.RecordFaceoff(context.Background(), "g1", FaceoffParams{
		Player1ID:      "p1",
		Player2ID:      "o1",
		WinnerPlayerID: "o1",
	})
	require.NoError(t, err)

	assert.Equal(t, "t2", event.FaceoffWinnerTeamID)
	assert.Empty(t, env.teams.created)
}

func TestRecordClearWaitsForOwnGoalie(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.svc.RecordClear(ctx, "g1", ClearParams{Side: domain.SideHome, Success: true})
	require.ErrorIs(t, err, domain.ErrGoalieRequired)
	assert.True(t, env.resolver.HasPending("g1", domain.SideHome))

	require.NoError(t, env.resolver.Select(ctx, "g1", domain.SideHome, "gk1"))

	require.Len(t, env.events.events, 1)
	assert.Equal(t, domain.EventClear, env.events.events[0].Type)
	assert.True(t, env.events.events[0].ClearSuccess)
}

func TestEditShotAttributesGoalie(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	event, err := env.svc.RecordShot(ctx, "g1", ShotParams{
		Side: domain.SideHome, Outcome: domain.ShotMissed, ScorerPlayerID: "p1",
	})
	require.NoError(t, err)

	env.games.games["g1"].CurrentOpponentGoalieID = "o1"

	err = env.svc.EditEvent(ctx, event.ID, EditEventParams{
		ShotOutcome:    domain.ShotGoal,
		ScorerPlayerID: "p1",
	})
	require.NoError(t, err)

	updated, err := env.events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ShotGoal, updated.ShotOutcome)
	assert.Equal(t, "o1", updated.GoaliePlayerID)
	assert.Equal(t, 1, env.games.games["g1"].OurScore)
}

func TestEditEventRoutesByKind(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	event, err := env.svc.RecordPenalty(ctx, "g1", PenaltyParams{
		Side: domain.SideHome, PenaltyType: "slashing", DurationSeconds: 60, PlayerID: "p1",
	})
	require.NoError(t, err)

	err = env.svc.EditEvent(ctx, event.ID, EditEventParams{
		PenaltyType:     "cross-check",
		DurationSeconds: 120,
		PenaltyPlayerID: "p1",
	})
	require.NoError(t, err)

	updated, err := env.events.GetByID(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "cross-check", updated.PenaltyType)
	assert.Equal(t, 120, updated.PenaltyDuration)
}
