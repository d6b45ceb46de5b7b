package realtime

import (
	"context"
	"encoding/json"
	"log/slog"

	"floorcheck/internal/domain/floor"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const channelPrefix = "floor."

// envelope wraps a snapshot on the bus with the publishing instance's id so
// an instance can skip its own messages (it already delivered them locally).
type envelope struct {
	Origin   string         `json:"origin"`
	Snapshot floor.Snapshot `json:"snapshot"`
}

// RedisBridge fans floor snapshots out across service instances. Local
// delivery happens synchronously through the hub; remote instances receive
// the same snapshot via pub/sub and re-inject it into their own hubs.
type RedisBridge struct {
	client *redis.Client
	hub    *Hub
	origin string
	logger *slog.Logger
}

func NewRedisBridge(client *redis.Client, hub *Hub, logger *slog.Logger) *RedisBridge {
	return &RedisBridge{
		client: client,
		hub:    hub,
		origin: uuid.NewString(),
		logger: logger,
	}
}

func (b *RedisBridge) Publish(ctx context.Context, snap floor.Snapshot) {
	b.hub.Publish(ctx, snap)

	payload, err := json.Marshal(envelope{Origin: b.origin, Snapshot: snap})
	if err != nil {
		b.logger.Error("failed to encode snapshot for pub/sub", "error", err.Error())
		return
	}
	if err := b.client.Publish(ctx, channelPrefix+snap.FloorID, payload).Err(); err != nil {
		// Local viewers already got the update; remote fan-out is best effort.
		b.logger.Error("failed to publish snapshot to redis",
			"floor_id", snap.FloorID, "error", err.Error())
	}
}

// Run consumes remote snapshots until ctx is canceled.
func (b *RedisBridge) Run(ctx context.Context) error {
	sub := b.client.PSubscribe(ctx, channelPrefix+"*")
	defer func() {
		if err := sub.Close(); err != nil {
			b.logger.Warn("failed to close redis subscription", "error", err.Error())
		}
	}()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				b.logger.Warn("dropped malformed pub/sub payload",
					"channel", msg.Channel, "error", err.Error())
				continue
			}
			if env.Origin == b.origin {
				continue
			}
			b.hub.Publish(ctx, env.Snapshot)
		}
	}
}
