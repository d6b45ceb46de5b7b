package bootstrap

import (
	"floorcheck/internal/pkg/config"
	"floorcheck/internal/pkg/identity"
	"floorcheck/internal/usecase/commands"

	"go.uber.org/fx"
)

var IdentityModule = fx.Module("identity",
	fx.Provide(
		fx.Annotate(
			NewIdentityService,
			fx.As(new(commands.TokenValidator)),
		),
	),
)

func NewIdentityService(cfg config.Config) *identity.Service {
	return identity.NewService(cfg.Identity.TokenSecret)
}
