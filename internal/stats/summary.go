package stats

import (
	"lacrosse-tracker/internal/domain"
)

type PlayerRow struct {
	Player domain.Player `json:"player"`
	Stats  PlayerStats   `json:"stats"`
}

// TeamSheet is one side of the box score: participant rows, totals, and
// the team-scoped clear tallies with display-ready ratio strings.
type TeamSheet struct {
	Rows        []PlayerRow `json:"rows"`
	Totals      PlayerStats `json:"totals"`
	Clears      ClearStats  `json:"clears"`
	ShootingPct string      `json:"shooting_pct"`
	FaceoffPct  string      `json:"faceoff_pct"`
	SavePct     string      `json:"save_pct"`
	ClearPct    string      `json:"clear_pct"`
}

// Differential compares one tally across the two benches. Net is from the
// home team's point of view.
type Differential struct {
	Home     int `json:"home"`
	Opponent int `json:"opponent"`
	Net      int `json:"net"`
}

type BoxScore struct {
	OurScore      int           `json:"our_score"`
	OpponentScore int           `json:"opponent_score"`
	Periods       []PeriodScore `json:"periods"`
	Home          TeamSheet     `json:"home"`
	Opponent      TeamSheet     `json:"opponent"`
	Faceoffs      Differential  `json:"faceoffs"`
	GroundBalls   Differential  `json:"ground_balls"`
	Turnovers     Differential  `json:"turnovers"`
}

func buildSheet(players []domain.Player, events []domain.GameEvent, teamID string, side domain.Side) TeamSheet {
	sheet := TeamSheet{Clears: Clears(events, side)}

	for _, p := range players {
		s := Aggregate(events, p.ID, teamID)
		if !s.HasActivity() {
			continue
		}
		sheet.Rows = append(sheet.Rows, PlayerRow{Player: p, Stats: s})
		sheet.Totals = sheet.Totals.Add(s)
	}

	return sheet
}

// BuildBoxScore folds the full event log into the report consumed by the
// summary screen and the exporters.
func BuildBoxScore(game *domain.Game, homePlayers, opponentPlayers []domain.Player, events []domain.GameEvent) BoxScore {
	home := buildSheet(homePlayers, events, game.TeamID, domain.SideHome)
	opp := buildSheet(opponentPlayers, events, game.OpponentTeamID, domain.SideOpponent)

	// save % is measured against the opposing side's shots on goal
	home.ShootingPct = Percent(home.Totals.Goals, home.Totals.ShotsOnGoal)
	home.FaceoffPct = Percent(home.Totals.FaceoffsWon, home.Totals.FaceoffsWon+home.Totals.FaceoffsLost)
	home.SavePct = Percent(home.Totals.Saves, opp.Totals.ShotsOnGoal)
	home.ClearPct = Percent(home.Clears.Successes, home.Clears.Attempts)

	opp.ShootingPct = Percent(opp.Totals.Goals, opp.Totals.ShotsOnGoal)
	opp.FaceoffPct = Percent(opp.Totals.FaceoffsWon, opp.Totals.FaceoffsWon+opp.Totals.FaceoffsLost)
	opp.SavePct = Percent(opp.Totals.Saves, home.Totals.ShotsOnGoal)
	opp.ClearPct = Percent(opp.Clears.Successes, opp.Clears.Attempts)

	our, theirs := Score(events)

	return BoxScore{
		OurScore:      our,
		OpponentScore: theirs,
		Periods:       ScoreByPeriod(events),
		Home:          home,
		Opponent:      opp,
		Faceoffs: Differential{
			Home:     home.Totals.FaceoffsWon,
			Opponent: opp.Totals.FaceoffsWon,
			Net:      home.Totals.FaceoffsWon - opp.Totals.FaceoffsWon,
		},
		GroundBalls: Differential{
			Home:     home.Totals.GroundBalls,
			Opponent: opp.Totals.GroundBalls,
			Net:      home.Totals.GroundBalls - opp.Totals.GroundBalls,
		},
		Turnovers: Differential{
			Home:     home.Totals.Turnovers,
			Opponent: opp.Totals.Turnovers,
			// fewer turnovers is the advantage
			Net: opp.Totals.Turnovers - home.Totals.Turnovers,
		},
	}
}
