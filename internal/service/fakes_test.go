package service

import (
	"context"
	"errors"
	"fmt"

	"lacrosse-tracker/internal/domain"
)

type fakeEventStore struct {
	events []*domain.GameEvent
	nextID int

	// failInsertAt fails the n-th insert (1-based), 0 disables
	failInsertAt int
	inserts      int
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{}
}

func (f *fakeEventStore) Insert(_ context.Context, event *domain.GameEvent) (string, error) {
	if err := event.Validate(); err != nil {
		return "", err
	}
	f.inserts++
	if f.failInsertAt > 0 && f.inserts == f.failInsertAt {
		return "", errors.New("store unavailable")
	}
	f.nextID++
	event.ID = fmt.Sprintf("e%d", f.nextID)
	cp := *event
	f.events = append(f.events, &cp)
	return event.ID, nil
}

func (f *fakeEventStore) find(id string) (int, *domain.GameEvent) {
	for i, e := range f.events {
		if e.ID == id {
			return i, e
		}
	}
	return -1, nil
}

func (f *fakeEventStore) GetByID(_ context.Context, id string) (*domain.GameEvent, error) {
	_, e := f.find(id)
	if e == nil {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventStore) ListByGame(_ context.Context, gameID string) ([]domain.GameEvent, error) {
	var out []domain.GameEvent
	for i := len(f.events) - 1; i >= 0; i-- {
		if f.events[i].GameID == gameID {
			out = append(out, *f.events[i])
		}
	}
	return out, nil
}

func (f *fakeEventStore) FindLinkedCausedTurnover(_ context.Context, turnoverID string) (*domain.GameEvent, error) {
	for _, e := range f.events {
		if e.Type == domain.EventCausedTurnover && e.LinkedEventID == turnoverID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeEventStore) Delete(_ context.Context, id string) error {
	i, e := f.find(id)
	if e == nil {
		return domain.ErrNotFound
	}
	f.events = append(f.events[:i], f.events[i+1:]...)
	return nil
}

func (f *fakeEventStore) UpdateShot(_ context.Context, id string, outcome domain.ShotOutcome, scorerID, assistID, goalieID string) error {
	_, e := f.find(id)
	if e == nil {
		return domain.ErrNotFound
	}
	e.ShotOutcome = outcome
	e.ScorerPlayerID = scorerID
	e.AssistPlayerID = assistID
	e.GoaliePlayerID = goalieID
	return nil
}

func (f *fakeEventStore) UpdateTurnoverPlayer(_ context.Context, id, playerID string) error {
	_, e := f.find(id)
	if e == nil {
		return domain.ErrNotFound
	}
	e.TurnoverPlayerID = playerID
	return nil
}

func (f *fakeEventStore) UpdateCausedTurnoverPlayer(_ context.Context, id, playerID string) error {
	_, e := f.find(id)
	if e == nil {
		return domain.ErrNotFound
	}
	e.CausedByPlayerID = playerID
	return nil
}

func (f *fakeEventStore) UpdateGroundBallPlayer(_ context.Context, id, playerID string) error {
	_, e := f.find(id)
	if e == nil {
		return domain.ErrNotFound
	}
	e.GroundBallPlayerID = playerID
	return nil
}

func (f *fakeEventStore) UpdatePenalty(_ context.Context, id, penaltyType string, durationSeconds int, playerID string) error {
	_, e := f.find(id)
	if e == nil {
		return domain.ErrNotFound
	}
	e.PenaltyType = penaltyType
	e.PenaltyDuration = durationSeconds
	e.PenaltyPlayerID = playerID
	return nil
}

func (f *fakeEventStore) UpdateFaceoff(_ context.Context, id, player1ID, player2ID, winnerTeamID string) error {
	_, e := f.find(id)
	if e == nil {
		return domain.ErrNotFound
	}
	e.FaceoffPlayer1ID = player1ID
	e.FaceoffPlayer2ID = player2ID
	e.FaceoffWinnerTeamID = winnerTeamID
	return nil
}

func (f *fakeEventStore) UpdateClear(_ context.Context, id string, success bool) error {
	_, e := f.find(id)
	if e == nil {
		return domain.ErrNotFound
	}
	e.ClearSuccess = success
	return nil
}

type fakeGameStore struct {
	games        map[string]*domain.Game
	scoreUpdates int
}

func newFakeGameStore(games ...*domain.Game) *fakeGameStore {
	s := &fakeGameStore{games: make(map[string]*domain.Game)}
	for _, g := range games {
		s.games[g.ID] = g
	}
	return s
}

func (f *fakeGameStore) Get(_ context.Context, id string) (*domain.Game, error) {
	g, ok := f.games[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGameStore) UpdateScore(_ context.Context, gameID string, ourScore, opponentScore int) error {
	g, ok := f.games[gameID]
	if !ok {
		return domain.ErrNotFound
	}
	g.OurScore = ourScore
	g.OpponentScore = opponentScore
	f.scoreUpdates++
	return nil
}

func (f *fakeGameStore) SetCurrentGoalie(_ context.Context, gameID string, side domain.Side, playerID string) error {
	g, ok := f.games[gameID]
	if !ok {
		return domain.ErrNotFound
	}
	if side == domain.SideHome {
		g.CurrentHomeGoalieID = playerID
	} else {
		g.CurrentOpponentGoalieID = playerID
	}
	return nil
}

func (f *fakeGameStore) SetOpponentTeam(_ context.Context, gameID, teamID string) error {
	g, ok := f.games[gameID]
	if !ok {
		return domain.ErrNotFound
	}
	g.OpponentTeamID = teamID
	return nil
}

type fakePlayerStore struct {
	players []domain.Player
	nextID  int
}

func (f *fakePlayerStore) Create(_ context.Context, player *domain.Player) (string, error) {
	f.nextID++
	player.ID = fmt.Sprintf("p%d", f.nextID)
	f.players = append(f.players, *player)
	return player.ID, nil
}

func (f *fakePlayerStore) Update(_ context.Context, player *domain.Player) error {
	for i := range f.players {
		if f.players[i].ID == player.ID {
			f.players[i] = *player
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakePlayerStore) Delete(_ context.Context, id string) error {
	for i := range f.players {
		if f.players[i].ID == id {
			f.players = append(f.players[:i], f.players[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakePlayerStore) Get(_ context.Context, id string) (*domain.Player, error) {
	for _, p := range f.players {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakePlayerStore) ListByProgram(_ context.Context, programID string) ([]domain.Player, error) {
	var out []domain.Player
	for _, p := range f.players {
		if p.ProgramID == programID && !p.IsOpponent {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlayerStore) ListOpponentsByGame(_ context.Context, gameID string) ([]domain.Player, error) {
	var out []domain.Player
	for _, p := range f.players {
		if p.GameID == gameID && p.IsOpponent {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlayerStore) AssignOpponentTeam(_ context.Context, gameID, teamID string) error {
	for i := range f.players {
		if f.players[i].GameID == gameID && f.players[i].IsOpponent {
			f.players[i].TeamID = teamID
		}
	}
	return nil
}

type fakeTeamStore struct {
	created []domain.Team
}

func (f *fakeTeamStore) CreateTeam(_ context.Context, name string) (*domain.Team, error) {
	team := domain.Team{ID: fmt.Sprintf("team%d", len(f.created)+1), Name: name}
	f.created = append(f.created, team)
	return &team, nil
}
