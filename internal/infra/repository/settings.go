package repository

import (
	"context"
	"errors"

	"floorcheck/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const settingsRowID = "config"

// Settings is the runtime configuration document read per request by the
// access gate. It is written by operators, never by this service.
type Settings struct {
	APIKey          string
	WaitTimeMinutes int
}

type SettingsRepository struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

func (r *SettingsRepository) Get(ctx context.Context) (*Settings, error) {
	var s Settings
	err := r.pool.QueryRow(ctx,
		`SELECT api_key, wait_time_minutes FROM settings WHERE id = $1`,
		settingsRowID,
	).Scan(&s.APIKey, &s.WaitTimeMinutes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("settings not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load settings", err)
	}
	return &s, nil
}
