package commands

import (
	"context"
	"crypto/subtle"

	"floorcheck/internal/infra"
	"floorcheck/internal/infra/repository"
	"floorcheck/internal/pkg/errs"
)

// accessGate validates the shared API key against the settings document.
// It fails closed: an absent document denies everyone.
type accessGate struct {
	settings SettingsRepository
}

func (g accessGate) authorize(ctx context.Context, supplied string) (*repository.Settings, error) {
	cfg, err := g.settings.Get(ctx)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrUnauthorized)
		}
		return nil, errs.Mark(err, ErrStorageFailure)
	}
	if supplied == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(cfg.APIKey)) != 1 {
		return nil, ErrUnauthorized
	}
	return cfg, nil
}
