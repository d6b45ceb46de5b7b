package commands

import (
	"context"

	"floorcheck/internal/domain/floor"
	"floorcheck/internal/infra/repository"
)

type FloorRepository interface {
	FindByID(ctx context.Context, floorID string) (*floor.Map, error)
	// Save is conditional on the version the map was read at; a concurrent
	// writer surfaces as a VERSION_CONFLICT repository error. On success the
	// returned snapshot carries the persisted version.
	Save(ctx context.Context, m *floor.Map) (floor.Snapshot, error)
	ReplaceLayout(ctx context.Context, m *floor.Map) (*floor.Map, error)
}

type SettingsRepository interface {
	Get(ctx context.Context) (*repository.Settings, error)
}

// Publisher pushes a committed floor snapshot to live viewers.
type Publisher interface {
	Publish(ctx context.Context, snap floor.Snapshot)
}

// TokenValidator resolves an identity-provider session token to a uid.
type TokenValidator interface {
	Enabled() bool
	ResolveUID(token string) (string, error)
}
