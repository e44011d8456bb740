package fx

import (
	"database/sql"
	"lacrosse-tracker/internal/config"
	"lacrosse-tracker/internal/database"
	"lacrosse-tracker/internal/db"
	"lacrosse-tracker/internal/export"
	"lacrosse-tracker/internal/logger"
	"lacrosse-tracker/internal/repository"
	"lacrosse-tracker/internal/server"
	"lacrosse-tracker/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos, bound to the store interfaces the consumers declare
	fx.Provide(
		fx.Annotate(repository.NewEventRepository,
			fx.As(new(service.EventStore)),
			fx.As(new(export.EventSource))),
		fx.Annotate(repository.NewGameRepository,
			fx.As(new(service.GameStore)),
			fx.As(new(service.GameAdminStore)),
			fx.As(new(export.GameSource))),
		fx.Annotate(repository.NewPlayerRepository,
			fx.As(new(service.PlayerStore)),
			fx.As(new(service.RosterStore)),
			fx.As(new(export.PlayerSource))),
		fx.Annotate(repository.NewProgramRepository,
			fx.As(new(service.ProgramStore)),
			fx.As(new(service.TeamStore))),
	),
	// svc
	fx.Provide(service.NewGoalieResolver),
	fx.Provide(service.NewEventService),
	fx.Provide(service.NewSummaryService),
	fx.Provide(service.NewGameService),
	fx.Provide(service.NewRosterService),
	fx.Provide(service.NewProgramService),
	fx.Provide(export.NewExporter),
	// server
	fx.Provide(server.NewTrackerServer),
)
