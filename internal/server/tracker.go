package server

import (
	"errors"
	"fmt"
	"net/http"

	"lacrosse-tracker/internal/domain"
	"lacrosse-tracker/internal/export"
	"lacrosse-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// TrackerServer is the HTTP surface. Handlers stay thin: bind, call the
// service, map errors to status codes.
type TrackerServer struct {
	events   *service.EventService
	goalies  *service.GoalieResolver
	summary  *service.SummaryService
	games    *service.GameService
	roster   *service.RosterService
	programs *service.ProgramService
	exporter *export.Exporter
	logger   zerolog.Logger
}

func NewTrackerServer(
	events *service.EventService,
	goalies *service.GoalieResolver,
	summary *service.SummaryService,
	games *service.GameService,
	roster *service.RosterService,
	programs *service.ProgramService,
	exporter *export.Exporter,
	logger zerolog.Logger,
) *TrackerServer {
	return &TrackerServer{
		events:   events,
		goalies:  goalies,
		summary:  summary,
		games:    games,
		roster:   roster,
		programs: programs,
		exporter: exporter,
		logger:   logger,
	}
}

// Router builds the gin engine with every route registered.
func (s *TrackerServer) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")

	api.POST("/programs", s.createProgram)
	api.GET("/programs", s.listPrograms)
	api.GET("/programs/:id", s.getProgram)
	api.DELETE("/programs/:id", s.deleteProgram)

	api.GET("/opponents", s.listOpponents)
	api.DELETE("/opponents/:id", s.deleteOpponent)

	api.POST("/programs/:id/players", s.createPlayer)
	api.GET("/programs/:id/players", s.listRoster)
	api.POST("/programs/:id/players/bulk", s.bulkImportRoster)
	api.PATCH("/players/:id", s.updatePlayer)
	api.DELETE("/players/:id", s.deletePlayer)

	api.POST("/programs/:id/games", s.createGame)
	api.GET("/programs/:id/games", s.listGames)
	api.GET("/games/:id", s.getGame)
	api.DELETE("/games/:id", s.deleteGame)

	api.GET("/games/:id/players", s.listOpponentRoster)
	api.POST("/games/:id/players/bulk", s.bulkImportOpponents)
	api.POST("/games/:id/players/generate", s.generateOpponentNumbers)

	api.POST("/games/:id/events/shot", s.recordShot)
	api.POST("/games/:id/events/ground-ball", s.recordGroundBall)
	api.POST("/games/:id/events/turnover", s.recordTurnover)
	api.POST("/games/:id/events/caused-turnover", s.recordCausedTurnover)
	api.POST("/games/:id/events/penalty", s.recordPenalty)
	api.POST("/games/:id/events/faceoff", s.recordFaceoff)
	api.POST("/games/:id/events/clear", s.recordClear)
	api.POST("/games/:id/undo", s.undoLast)
	api.PATCH("/events/:id", s.editEvent)
	api.DELETE("/events/:id", s.deleteEvent)

	api.PUT("/games/:id/goalie", s.selectGoalie)
	api.GET("/games/:id/goalies", s.listEligibleGoalies)

	api.GET("/games/:id/summary", s.gameSummary)
	api.GET("/games/:id/export/maxpreps", s.exportMaxPreps)
	api.GET("/games/:id/export/report", s.exportReport)

	return r
}

func (s *TrackerServer) respondError(c *gin.Context, err error) {
	var missing *domain.MissingFieldError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &missing), errors.Is(err, domain.ErrInvalidReference):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrGoalieRequired):
		c.JSON(http.StatusConflict, gin.H{
			"error":           err.Error(),
			"goalie_required": true,
		})
	case errors.Is(err, domain.ErrNoEligibleGoalies):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		s.logger.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func parseSide(raw string) (domain.Side, error) {
	switch raw {
	case "", string(domain.SideHome):
		return domain.SideHome, nil
	case string(domain.SideOpponent):
		return domain.SideOpponent, nil
	default:
		return "", fmt.Errorf("unknown side %q: %w", raw, domain.ErrInvalidReference)
	}
}

// --- programs and opponent library ---

type createProgramRequest struct {
	Name string `json:"name" binding:"required"`
}

func (s *TrackerServer) createProgram(c *gin.Context) {
	var req createProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	program, err := s.programs.Create(c.Request.Context(), req.Name)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, program)
}

func (s *TrackerServer) listPrograms(c *gin.Context) {
	programs, err := s.programs.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, programs)
}

func (s *TrackerServer) getProgram(c *gin.Context) {
	program, err := s.programs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

func (s *TrackerServer) deleteProgram(c *gin.Context) {
	if err := s.programs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *TrackerServer) listOpponents(c *gin.Context) {
	opponents, err := s.programs.ListOpponents(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, opponents)
}

func (s *TrackerServer) deleteOpponent(c *gin.Context) {
	if err := s.programs.DeleteOpponent(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- rosters ---

type playerRequest struct {
	Name     string   `json:"name" binding:"required"`
	Number   int      `json:"number"`
	Position []string `json:"position"`
}

func (r playerRequest) positions() []domain.Position {
	positions := make([]domain.Position, len(r.Position))
	for i, p := range r.Position {
		positions[i] = domain.Position(p)
	}
	return positions
}

func (s *TrackerServer) createPlayer(c *gin.Context) {
	var req playerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	player := &domain.Player{
		ProgramID: c.Param("id"),
		Name:      req.Name,
		Number:    req.Number,
		Position:  req.positions(),
	}
	if _, err := s.roster.CreatePlayer(c.Request.Context(), player); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, player)
}

func (s *TrackerServer) listRoster(c *gin.Context) {
	players, err := s.roster.ListRoster(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, players)
}

func (s *TrackerServer) updatePlayer(c *gin.Context) {
	var req playerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	player := &domain.Player{
		ID:       c.Param("id"),
		Name:     req.Name,
		Number:   req.Number,
		Position: req.positions(),
	}
	if err := s.roster.UpdatePlayer(c.Request.Context(), player); err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, player)
}

func (s *TrackerServer) deletePlayer(c *gin.Context) {
	if err := s.roster.DeletePlayer(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type bulkImportRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *TrackerServer) bulkImportRoster(c *gin.Context) {
	var req bulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := s.roster.BulkImport(c.Request.Context(), req.Text, c.Param("id"), "", false)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (s *TrackerServer) bulkImportOpponents(c *gin.Context) {
	var req bulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := s.roster.BulkImport(c.Request.Context(), req.Text, "", c.Param("id"), true)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (s *TrackerServer) listOpponentRoster(c *gin.Context) {
	players, err := s.roster.ListOpponentRoster(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, players)
}

type generateNumbersRequest struct {
	Start   int  `json:"start"`
	End     int  `json:"end" binding:"required"`
	Replace bool `json:"replace"`
}

func (s *TrackerServer) generateOpponentNumbers(c *gin.Context) {
	var req generateNumbersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := s.roster.GenerateOpponentNumbers(c.Request.Context(), c.Param("id"), req.Start, req.End, req.Replace)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"created": created})
}

// --- games ---

type createGameRequest struct {
	Opponent string `json:"opponent" binding:"required"`
	GameDate string `json:"game_date" binding:"required"`
}

func (s *TrackerServer) createGame(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	game, err := s.games.Create(c.Request.Context(), c.Param("id"), req.Opponent, req.GameDate)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, game)
}

func (s *TrackerServer) listGames(c *gin.Context) {
	games, err := s.games.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

func (s *TrackerServer) getGame(c *gin.Context) {
	game, err := s.games.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

func (s *TrackerServer) deleteGame(c *gin.Context) {
	if err := s.games.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- events ---

type shotRequest struct {
	Side           string `json:"side"`
	Outcome        string `json:"outcome" binding:"required"`
	ScorerPlayerID string `json:"scorer_player_id" binding:"required"`
	AssistPlayerID string `json:"assist_player_id"`
	Period         int    `json:"period"`
}

func (s *TrackerServer) recordShot(c *gin.Context) {
	var req shotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	side, err := parseSide(req.Side)
	if err != nil {
		s.respondError(c, err)
		return
	}
	event, err := s.events.RecordShot(c.Request.Context(), c.Param("id"), service.ShotParams{
		Side:           side,
		Outcome:        domain.ShotOutcome(req.Outcome),
		ScorerPlayerID: req.ScorerPlayerID,
		AssistPlayerID: req.AssistPlayerID,
		Period:         req.Period,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

type groundBallRequest struct {
	Side     string `json:"side"`
	PlayerID string `json:"player_id" binding:"required"`
	Period   int    `json:"period"`
}

func (s *TrackerServer) recordGroundBall(c *gin.Context) {
	var req groundBallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	side, err := parseSide(req.Side)
	if err != nil {
		s.respondError(c, err)
		return
	}
	event, err := s.events.RecordGroundBall(c.Request.Context(), c.Param("id"), service.GroundBallParams{
		Side:     side,
		PlayerID: req.PlayerID,
		Period:   req.Period,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

type turnoverRequest struct {
	Side             string `json:"side"`
	TurnoverPlayerID string `json:"turnover_player_id"`
	CauserPlayerID   string `json:"causer_player_id"`
	Period           int    `json:"period"`
}

func (s *TrackerServer) recordTurnover(c *gin.Context) {
	var req turnoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	side, err := parseSide(req.Side)
	if err != nil {
		s.respondError(c, err)
		return
	}
	pair, err := s.events.RecordTurnover(c.Request.Context(), c.Param("id"), service.TurnoverParams{
		Side:             side,
		TurnoverPlayerID: req.TurnoverPlayerID,
		CauserPlayerID:   req.CauserPlayerID,
		Period:           req.Period,
	})
	if err != nil {
		// the turnover may have landed even when the pair did not
		if pair != nil && pair.Turnover != nil {
			c.JSON(http.StatusMultiStatus, gin.H{"error": err.Error(), "turnover": pair.Turnover})
			return
		}
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pair)
}

type causedTurnoverRequest struct {
	Side           string `json:"side"`
	CauserPlayerID string `json:"causer_player_id" binding:"required"`
	Period         int    `json:"period"`
}

func (s *TrackerServer) recordCausedTurnover(c *gin.Context) {
	var req causedTurnoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	side, err := parseSide(req.Side)
	if err != nil {
		s.respondError(c, err)
		return
	}
	pair, err := s.events.RecordCausedTurnover(c.Request.Context(), c.Param("id"), service.CausedTurnoverParams{
		Side:           side,
		CauserPlayerID: req.CauserPlayerID,
		Period:         req.Period,
	})
	if err != nil {
		if pair != nil && pair.Turnover != nil {
			c.JSON(http.StatusMultiStatus, gin.H{"error": err.Error(), "turnover": pair.Turnover})
			return
		}
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pair)
}

type penaltyRequest struct {
	Side            string `json:"side"`
	PenaltyType     string `json:"penalty_type" binding:"required"`
	DurationSeconds int    `json:"duration_seconds"`
	PlayerID        string `json:"player_id"`
	Period          int    `json:"period"`
}

func (s *TrackerServer) recordPenalty(c *gin.Context) {
	var req penaltyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	side, err := parseSide(req.Side)
	if err != nil {
		s.respondError(c, err)
		return
	}
	event, err := s.events.RecordPenalty(c.Request.Context(), c.Param("id"), service.PenaltyParams{
		Side:            side,
		PenaltyType:     req.PenaltyType,
		DurationSeconds: req.DurationSeconds,
		PlayerID:        req.PlayerID,
		Period:          req.Period,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

type faceoffRequest struct {
	Player1ID      string `json:"player1_id" binding:"required"`
	Player2ID      string `json:"player2_id" binding:"required"`
	WinnerPlayerID string `json:"winner_player_id" binding:"required"`
	Period         int    `json:"period"`
}

func (s *TrackerServer) recordFaceoff(c *gin.Context) {
	var req faceoffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	event, err := s.events.RecordFaceoff(c.Request.Context(), c.Param("id"), service.FaceoffParams{
		Player1ID:      req.Player1ID,
		Player2ID:      req.Player2ID,
		WinnerPlayerID: req.WinnerPlayerID,
		Period:         req.Period,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

type clearRequest struct {
	Side    string `json:"side"`
	Success bool   `json:"success"`
	Period  int    `json:"period"`
}

func (s *TrackerServer) recordClear(c *gin.Context) {
	var req clearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	side, err := parseSide(req.Side)
	if err != nil {
		s.respondError(c, err)
		return
	}
	event, err := s.events.RecordClear(c.Request.Context(), c.Param("id"), service.ClearParams{
		Side:    side,
		Success: req.Success,
		Period:  req.Period,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (s *TrackerServer) undoLast(c *gin.Context) {
	removed, err := s.events.UndoLast(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

type editEventRequest struct {
	ShotOutcome    string `json:"shot_outcome"`
	ScorerPlayerID string `json:"scorer_player_id"`
	AssistPlayerID string `json:"assist_player_id"`

	TurnoverPlayerID string `json:"turnover_player_id"`
	CauserPlayerID   string `json:"causer_player_id"`

	GroundBallPlayerID string `json:"ground_ball_player_id"`

	PenaltyType     string `json:"penalty_type"`
	DurationSeconds int    `json:"duration_seconds"`
	PenaltyPlayerID string `json:"penalty_player_id"`

	FaceoffPlayer1ID string `json:"faceoff_player1_id"`
	FaceoffPlayer2ID string `json:"faceoff_player2_id"`
	WinnerPlayerID   string `json:"winner_player_id"`

	ClearSuccess bool `json:"clear_success"`
}

func (s *TrackerServer) editEvent(c *gin.Context) {
	var req editEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := s.events.EditEvent(c.Request.Context(), c.Param("id"), service.EditEventParams{
		ShotOutcome:        domain.ShotOutcome(req.ShotOutcome),
		ScorerPlayerID:     req.ScorerPlayerID,
		AssistPlayerID:     req.AssistPlayerID,
		TurnoverPlayerID:   req.TurnoverPlayerID,
		CauserPlayerID:     req.CauserPlayerID,
		GroundBallPlayerID: req.GroundBallPlayerID,
		PenaltyType:        req.PenaltyType,
		DurationSeconds:    req.DurationSeconds,
		PenaltyPlayerID:    req.PenaltyPlayerID,
		FaceoffPlayer1ID:   req.FaceoffPlayer1ID,
		FaceoffPlayer2ID:   req.FaceoffPlayer2ID,
		WinnerPlayerID:     req.WinnerPlayerID,
		ClearSuccess:       req.ClearSuccess,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *TrackerServer) deleteEvent(c *gin.Context) {
	removed, err := s.events.DeleteEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// --- goalies ---

type selectGoalieRequest struct {
	Side     string `json:"side"`
	PlayerID string `json:"player_id" binding:"required"`
}

func (s *TrackerServer) selectGoalie(c *gin.Context) {
	var req selectGoalieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	side, err := parseSide(req.Side)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if err := s.goalies.Select(c.Request.Context(), c.Param("id"), side, req.PlayerID); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *TrackerServer) listEligibleGoalies(c *gin.Context) {
	side, err := parseSide(c.Query("side"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	game, err := s.games.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	candidates, err := s.goalies.EligibleGoalies(c.Request.Context(), game, side)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"candidates": candidates,
		"pending":    s.goalies.HasPending(game.ID, side),
	})
}

// --- summary and exports ---

func (s *TrackerServer) gameSummary(c *gin.Context) {
	summary, err := s.summary.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *TrackerServer) exportMaxPreps(c *gin.Context) {
	file, err := s.exporter.MaxPreps(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.serveFile(c, file)
}

func (s *TrackerServer) exportReport(c *gin.Context) {
	file, err := s.exporter.Report(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	s.serveFile(c, file)
}

func (s *TrackerServer) serveFile(c *gin.Context, file *export.File) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
