package db

import "time"

type Program struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

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

type Player struct {
	ID         string
	ProgramID  *string
	TeamID     *string
	GameID     *string
	Name       string
	Number     int64
	Position   string // slash-separated role list
	IsOpponent bool
	CreatedAt  time.Time
}

type Game struct {
	ID                      string
	ProgramID               *string
	TeamID                  *string
	OpponentTeamID          *string
	Opponent                *string
	GameDate                string
	OurScore                int64
	OpponentScore           int64
	CurrentHomeGoalieID     *string
	CurrentOpponentGoalieID *string
	CreatedAt               time.Time
}

type GameEvent struct {
	ID                  string
	GameID              string
	TeamID              string
	EventType           string
	IsOpponent          bool
	Timestamp           time.Time
	Period              *int64
	CreatedAt           time.Time
	ShotOutcome         *string
	ScorerPlayerID      *string
	AssistPlayerID      *string
	GoaliePlayerID      *string
	TurnoverPlayerID    *string
	CausedByPlayerID    *string
	LinkedEventID       *string
	GroundBallPlayerID  *string
	PenaltyType         *string
	PenaltyDuration     *int64
	PenaltyPlayerID     *string
	FaceoffPlayer1ID    *string
	FaceoffPlayer2ID    *string
	FaceoffWinnerTeamID *string
	ClearSuccess        *bool
}
