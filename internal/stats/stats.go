// Package stats is the aggregation engine: pure folds that turn a game's
// event log into per-player tallies and per-team summaries. Nothing here
// touches the store or mutates its inputs, and every tally is a
// commutative sum, so event order never matters.
package stats

import (
	"fmt"
	"math"

	"lacrosse-tracker/internal/domain"
)

// PlayerStats is the per-player box score row.
type PlayerStats struct {
	Goals           int `json:"goals"`
	Assists         int `json:"assists"`
	Shots           int `json:"shots"`
	ShotsOnGoal     int `json:"shots_on_goal"`
	GroundBalls     int `json:"ground_balls"`
	Turnovers       int `json:"turnovers"`
	CausedTurnovers int `json:"caused_turnovers"`
	Saves           int `json:"saves"`
	GoalsAllowed    int `json:"goals_allowed"`
	FaceoffsWon     int `json:"faceoffs_won"`
	FaceoffsLost    int `json:"faceoffs_lost"`
	Penalties       int `json:"penalties"`
	PenaltyMinutes  int `json:"penalty_minutes"`
}

func (s PlayerStats) Points() int {
	return s.Goals + s.Assists
}

// HasActivity reports whether the row has anything worth printing; rows
// that are all zeros are dropped from reports.
func (s PlayerStats) HasActivity() bool {
	return s.Goals+s.Assists+s.Shots+s.GroundBalls+s.Turnovers+
		s.CausedTurnovers+s.Saves+s.GoalsAllowed+
		s.FaceoffsWon+s.FaceoffsLost+s.Penalties > 0
}

func (s PlayerStats) Add(o PlayerStats) PlayerStats {
	s.Goals += o.Goals
	s.Assists += o.Assists
	s.Shots += o.Shots
	s.ShotsOnGoal += o.ShotsOnGoal
	s.GroundBalls += o.GroundBalls
	s.Turnovers += o.Turnovers
	s.CausedTurnovers += o.CausedTurnovers
	s.Saves += o.Saves
	s.GoalsAllowed += o.GoalsAllowed
	s.FaceoffsWon += o.FaceoffsWon
	s.FaceoffsLost += o.FaceoffsLost
	s.Penalties += o.Penalties
	s.PenaltyMinutes += o.PenaltyMinutes
	return s
}

// Aggregate folds the event log into one player's tallies. teamID is the
// team the player is credited to; it only decides faceoff won vs lost.
//
// A caused_turnover counts for its causer independently of the linked
// turnover counting against the player who lost the ball; both halves of
// the pair are tallied.
func Aggregate(events []domain.GameEvent, playerID, teamID string) PlayerStats {
	var s PlayerStats

	for _, e := range events {
		switch e.Type {
		case domain.EventShot:
			if e.ScorerPlayerID == playerID {
				s.Shots++
				if e.ShotOutcome == domain.ShotGoal || e.ShotOutcome == domain.ShotSaved {
					s.ShotsOnGoal++
				}
				if e.ShotOutcome == domain.ShotGoal {
					s.Goals++
				}
			}
			if e.AssistPlayerID == playerID {
				s.Assists++
			}
			if e.GoaliePlayerID == playerID {
				if e.ShotOutcome == domain.ShotSaved {
					s.Saves++
				} else if e.ShotOutcome == domain.ShotGoal {
					s.GoalsAllowed++
				}
			}
		case domain.EventGroundBall:
			if e.GroundBallPlayerID == playerID {
				s.GroundBalls++
			}
		case domain.EventTurnover:
			if e.TurnoverPlayerID == playerID {
				s.Turnovers++
			}
		case domain.EventCausedTurnover:
			if e.CausedByPlayerID == playerID {
				s.CausedTurnovers++
			}
		case domain.EventFaceoff:
			if e.FaceoffPlayer1ID == playerID || e.FaceoffPlayer2ID == playerID {
				if e.FaceoffWinnerTeamID == teamID {
					s.FaceoffsWon++
				} else {
					s.FaceoffsLost++
				}
			}
		case domain.EventPenalty:
			if e.PenaltyPlayerID == playerID {
				s.Penalties++
				s.PenaltyMinutes += e.PenaltyDuration / 60
			}
		}
	}

	return s
}

// ClearStats is team-scoped: clears are recorded against a side, not a
// player.
type ClearStats struct {
	Attempts  int `json:"attempts"`
	Successes int `json:"successes"`
}

func Clears(events []domain.GameEvent, side domain.Side) ClearStats {
	var c ClearStats
	opponent := side == domain.SideOpponent
	for _, e := range events {
		if e.Type != domain.EventClear || e.IsOpponent != opponent {
			continue
		}
		c.Attempts++
		if e.ClearSuccess {
			c.Successes++
		}
	}
	return c
}

// Score derives the game score from goal-outcome shots, trusting each
// event's own side flag rather than roster membership.
func Score(events []domain.GameEvent) (our, opponent int) {
	for _, e := range events {
		if e.Type != domain.EventShot || e.ShotOutcome != domain.ShotGoal {
			continue
		}
		if e.IsOpponent {
			opponent++
		} else {
			our++
		}
	}
	return our, opponent
}

// PeriodScore is one bucket of the goals-by-period breakdown.
type PeriodScore struct {
	Period        int `json:"period"`
	HomeGoals     int `json:"home_goals"`
	OpponentGoals int `json:"opponent_goals"`
}

// ScoreByPeriod buckets goal events by period. Events recorded without a
// period land in period 1.
func ScoreByPeriod(events []domain.GameEvent) []PeriodScore {
	buckets := make(map[int]*PeriodScore)
	maxPeriod := 0
	for _, e := range events {
		if e.Type != domain.EventShot || e.ShotOutcome != domain.ShotGoal {
			continue
		}
		period := e.Period
		if period < 1 {
			period = 1
		}
		b, ok := buckets[period]
		if !ok {
			b = &PeriodScore{Period: period}
			buckets[period] = b
		}
		if e.IsOpponent {
			b.OpponentGoals++
		} else {
			b.HomeGoals++
		}
		if period > maxPeriod {
			maxPeriod = period
		}
	}

	out := make([]PeriodScore, 0, len(buckets))
	for p := 1; p <= maxPeriod; p++ {
		if b, ok := buckets[p]; ok {
			out = append(out, *b)
		}
	}
	return out
}

// LinkedTurnoverIDs returns the ids of turnover events that have a
// caused_turnover pointing at them. Turnovers outside this set were
// unforced.
func LinkedTurnoverIDs(events []domain.GameEvent) map[string]bool {
	linked := make(map[string]bool)
	for _, e := range events {
		if e.Type == domain.EventCausedTurnover && e.LinkedEventID != "" {
			linked[e.LinkedEventID] = true
		}
	}
	return linked
}

// Percent renders numerator/denominator as a whole percent, with "-" as
// the zero-denominator placeholder so reports never divide by zero.
func Percent(numerator, denominator int) string {
	if denominator == 0 {
		return "-"
	}
	return fmt.Sprintf("%d%%", int(math.Round(float64(numerator)/float64(denominator)*100)))
}
