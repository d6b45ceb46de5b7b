package components

import (
	"floorcheck/internal/handler"
	"floorcheck/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCheckInHandler,
		api.NewFloorHandler,
		api.NewLiveHandler,
	),
	fx.Invoke(handler.NewRouter),
)
