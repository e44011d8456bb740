package stats

import (
	"math/rand"
	"testing"

	"lacrosse-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvents() []domain.GameEvent {
	return []domain.GameEvent{
		{ID: "e1", Type: domain.EventShot, ShotOutcome: domain.ShotGoal, ScorerPlayerID: "p1", AssistPlayerID: "p2", GoaliePlayerID: "og1", Period: 1},
		{ID: "e2", Type: domain.EventShot, ShotOutcome: domain.ShotSaved, ScorerPlayerID: "p1", GoaliePlayerID: "og1", Period: 2},
		{ID: "e3", Type: domain.EventShot, ShotOutcome: domain.ShotMissed, ScorerPlayerID: "p1", Period: 2},
		{ID: "e4", Type: domain.EventShot, ShotOutcome: domain.ShotGoal, ScorerPlayerID: "o1", GoaliePlayerID: "g1", IsOpponent: true, Period: 3},
		{ID: "e5", Type: domain.EventGroundBall, GroundBallPlayerID: "p1"},
		{ID: "e6", Type: domain.EventTurnover, TurnoverPlayerID: "p1"},
		{ID: "e7", Type: domain.EventCausedTurnover, CausedByPlayerID: "o1", LinkedEventID: "e6", IsOpponent: true},
		{ID: "e8", Type: domain.EventTurnover, TurnoverPlayerID: "p1"},
		{ID: "e9", Type: domain.EventFaceoff, FaceoffPlayer1ID: "p1", FaceoffPlayer2ID: "o2", FaceoffWinnerTeamID: "t1"},
		{ID: "e10", Type: domain.EventFaceoff, FaceoffPlayer1ID: "p1", FaceoffPlayer2ID: "o2", FaceoffWinnerTeamID: "t2"},
		{ID: "e11", Type: domain.EventPenalty, PenaltyPlayerID: "p1", PenaltyType: "slashing", PenaltyDuration: 60},
		{ID: "e12", Type: domain.EventPenalty, PenaltyPlayerID: "p1", PenaltyType: "offsides", PenaltyDuration: 30},
		{ID: "e13", Type: domain.EventClear, ClearSuccess: true},
		{ID: "e14", Type: domain.EventClear, ClearSuccess: false},
		{ID: "e15", Type: domain.EventClear, ClearSuccess: true, IsOpponent: true},
	}
}

func TestAggregate(t *testing.T) {
	s := Aggregate(sampleEvents(), "p1", "t1")

	assert.Equal(t, 1, s.Goals)
	assert.Equal(t, 3, s.Shots)
	assert.Equal(t, 2, s.ShotsOnGoal)
	assert.Equal(t, 0, s.Assists)
	assert.Equal(t, 1, s.GroundBalls)
	assert.Equal(t, 2, s.Turnovers)
	assert.Equal(t, 0, s.CausedTurnovers)
	assert.Equal(t, 1, s.FaceoffsWon)
	assert.Equal(t, 1, s.FaceoffsLost)
	assert.Equal(t, 2, s.Penalties)
	assert.Equal(t, 1, s.PenaltyMinutes) // 60s + 30s floors to 1 minute
	assert.Equal(t, 1, s.Points())
}

func TestAggregateAssistAndGoalie(t *testing.T) {
	events := sampleEvents()

	assist := Aggregate(events, "p2", "t1")
	assert.Equal(t, 1, assist.Assists)
	assert.Equal(t, 0, assist.Shots)

	homeGoalie := Aggregate(events, "g1", "t1")
	assert.Equal(t, 0, homeGoalie.Saves)
	assert.Equal(t, 1, homeGoalie.GoalsAllowed)

	oppGoalie := Aggregate(events, "og1", "t2")
	assert.Equal(t, 1, oppGoalie.Saves)
	assert.Equal(t, 1, oppGoalie.GoalsAllowed)
}

func TestAggregateCausedTurnoverPair(t *testing.T) {
	events := sampleEvents()

	causer := Aggregate(events, "o1", "t2")
	assert.Equal(t, 1, causer.CausedTurnovers)

	// both halves of the pair count independently
	loser := Aggregate(events, "p1", "t1")
	assert.Equal(t, 2, loser.Turnovers)
}

func TestAggregateOrderIndependent(t *testing.T) {
	events := sampleEvents()
	want := Aggregate(events, "p1", "t1")

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]domain.GameEvent, len(events))
		copy(shuffled, events)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, Aggregate(shuffled, "p1", "t1"))
	}
}

func TestHasActivity(t *testing.T) {
	assert.False(t, PlayerStats{}.HasActivity())
	assert.True(t, PlayerStats{GroundBalls: 1}.HasActivity())
	assert.True(t, PlayerStats{GoalsAllowed: 1}.HasActivity())
}

func TestScore(t *testing.T) {
	our, opponent := Score(sampleEvents())
	assert.Equal(t, 1, our)
	assert.Equal(t, 1, opponent)
}

func TestScoreTrustsEventSide(t *testing.T) {
	// a goal flagged opponent counts for the opponent even when the
	// scorer id happens to match a home player
	events := []domain.GameEvent{
		{Type: domain.EventShot, ShotOutcome: domain.ShotGoal, ScorerPlayerID: "p1", IsOpponent: true},
	}
	our, opponent := Score(events)
	assert.Equal(t, 0, our)
	assert.Equal(t, 1, opponent)
}

func TestScoreByPeriod(t *testing.T) {
	periods := ScoreByPeriod(sampleEvents())
	require.Len(t, periods, 2)

	assert.Equal(t, 1, periods[0].Period)
	assert.Equal(t, 1, periods[0].HomeGoals)
	assert.Equal(t, 0, periods[0].OpponentGoals)

	assert.Equal(t, 3, periods[1].Period)
	assert.Equal(t, 0, periods[1].HomeGoals)
	assert.Equal(t, 1, periods[1].OpponentGoals)
}

func TestScoreByPeriodDefaultsToFirst(t *testing.T) {
	events := []domain.GameEvent{
		{Type: domain.EventShot, ShotOutcome: domain.ShotGoal, ScorerPlayerID: "p1"},
	}
	periods := ScoreByPeriod(events)
	require.Len(t, periods, 1)
	assert.Equal(t, 1, periods[0].Period)
	assert.Equal(t, 1, periods[0].HomeGoals)
}

func TestClears(t *testing.T) {
	home := Clears(sampleEvents(), domain.SideHome)
	assert.Equal(t, 2, home.Attempts)
	assert.Equal(t, 1, home.Successes)

	opp := Clears(sampleEvents(), domain.SideOpponent)
	assert.Equal(t, 1, opp.Attempts)
	assert.Equal(t, 1, opp.Successes)
}

func TestLinkedTurnoverIDs(t *testing.T) {
	linked := LinkedTurnoverIDs(sampleEvents())
	assert.True(t, linked["e6"])
	assert.False(t, linked["e8"])
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "-", Percent(0, 0))
	assert.Equal(t, "-", Percent(3, 0))
	assert.Equal(t, "50%", Percent(1, 2))
	assert.Equal(t, "67%", Percent(2, 3))
	assert.Equal(t, "100%", Percent(5, 5))
	assert.Equal(t, "0%", Percent(0, 4))
}
