package components

import (
	"floorcheck/internal/infra/repository"
	"floorcheck/internal/usecase/commands"
	"floorcheck/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			repository.NewFloorRepository,
			fx.As(new(commands.FloorRepository)),
			fx.As(new(queries.FloorReadStore)),
		),
		fx.Annotate(
			repository.NewSettingsRepository,
			fx.As(new(commands.SettingsRepository)),
		),
	),
)
