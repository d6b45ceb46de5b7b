package bootstrap

import (
	"floorcheck/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	IdentityModule,
	RealtimeModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
