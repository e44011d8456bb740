package domain

import (
	"time"
)

type EventType string

const (
	EventShot           EventType = "shot"
	EventGroundBall     EventType = "ground_ball"
	EventTurnover       EventType = "turnover"
	EventCausedTurnover EventType = "caused_turnover"
	EventPenalty        EventType = "penalty"
	EventFaceoff        EventType = "faceoff"
	EventClear          EventType = "clear"
)

type ShotOutcome string

const (
	ShotGoal    ShotOutcome = "goal"
	ShotSaved   ShotOutcome = "saved"
	ShotMissed  ShotOutcome = "missed"
	ShotBlocked ShotOutcome = "blocked"
)

type Position string

const (
	PositionAttack   Position = "Attack"
	PositionMidfield Position = "Midfield"
	PositionDefense  Position = "Defense"
	PositionGoalie   Position = "Goalie"
)

// Side identifies which bench an action belongs to within a game.
type Side string

const (
	SideHome     Side = "home"
	SideOpponent Side = "opponent"
)

func (s Side) Opposing() Side {
	if s == SideHome {
		return SideOpponent
	}
	return SideHome
}

// GameEvent is one row of the append/edit/delete event log. Only the
// variant fields matching Type are meaningful; unused id fields are "".
type GameEvent struct {
	ID         string
	GameID     string
	TeamID     string
	Type       EventType
	IsOpponent bool
	Timestamp  time.Time
	Period     int // 0 when the operator did not record one
	CreatedAt  time.Time

	// shot
	ShotOutcome    ShotOutcome
	ScorerPlayerID string
	AssistPlayerID string
	GoaliePlayerID string

	// ground_ball
	GroundBallPlayerID string

	// turnover
	TurnoverPlayerID string // "" for unattributed turnovers (e.g. shot clock)

	// caused_turnover
	CausedByPlayerID string
	LinkedEventID    string

	// penalty
	PenaltyType     string
	PenaltyDuration int // seconds
	PenaltyPlayerID string

	// faceoff
	FaceoffPlayer1ID    string
	FaceoffPlayer2ID    string
	FaceoffWinnerTeamID string

	// clear
	ClearSuccess bool
}

type Game struct {
	ID                      string
	ProgramID               string
	TeamID                  string
	OpponentTeamID          string
	Opponent                string // opponent display name
	GameDate                string
	OurScore                int
	OpponentScore           int
	CurrentHomeGoalieID     string
	CurrentOpponentGoalieID string
	CreatedAt               time.Time
}

// GoalieID returns the current goalie pointer for one side, "" when unset.
func (g *Game) GoalieID(side Side) string {
	if side == SideHome {
		return g.CurrentHomeGoalieID
	}
	return g.CurrentOpponentGoalieID
}

// GameContext carries the mutable per-game goalie pointers into operations
// that need them, instead of reading ambient state.
type GameContext struct {
	CurrentHomeGoalieID     string
	CurrentOpponentGoalieID string
}

func (g *Game) Context() GameContext {
	return GameContext{
		CurrentHomeGoalieID:     g.CurrentHomeGoalieID,
		CurrentOpponentGoalieID: g.CurrentOpponentGoalieID,
	}
}

func (c GameContext) GoalieID(side Side) string {
	if side == SideHome {
		return c.CurrentHomeGoalieID
	}
	return c.CurrentOpponentGoalieID
}

type Player struct {
	ID         string
	ProgramID  string // home roster players belong to a program
	TeamID     string
	GameID     string // opponent roster players are scoped to one game
	Name       string
	Number     int
	Position   []Position
	IsOpponent bool
	CreatedAt  time.Time
}

func (p *Player) HasPosition(pos Position) bool {
	for _, c := range p.Position {
		if c == pos {
			return true
		}
	}
	return false
}

type Program struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Opponent is an entry in the opponent library (directory of previously
// played opponents).
type Opponent struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Team struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
