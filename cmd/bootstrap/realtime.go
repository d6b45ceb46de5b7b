package bootstrap

import (
	"context"
	"log/slog"

	"floorcheck/internal/infra/realtime"
	"floorcheck/internal/pkg/config"
	"floorcheck/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RealtimeModule = fx.Module("realtime",
	fx.Provide(
		NewHub,
		NewPublisher,
	),
)

func NewHub(lc fx.Lifecycle, logger *slog.Logger) *realtime.Hub {
	hub := realtime.NewHub(logger)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			hub.Close()
			return nil
		},
	})
	return hub
}

// NewPublisher picks the snapshot fan-out: in-process only when REDIS_ADDR
// is empty, cross-instance pub/sub otherwise.
func NewPublisher(lc fx.Lifecycle, cfg config.Config, hub *realtime.Hub, logger *slog.Logger) commands.Publisher {
	if cfg.Redis.Addr == "" {
		return hub
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	bridge := realtime.NewRedisBridge(client, hub, logger)

	runCtx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := bridge.Run(runCtx); err != nil && runCtx.Err() == nil {
					logger.Error("redis bridge stopped", "error", err.Error())
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return client.Close()
		},
	})

	return bridge
}
