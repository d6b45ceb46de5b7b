package commands

import (
	"context"
	"log/slog"

	"floorcheck/internal/domain/floor"
	"floorcheck/internal/pkg/errs"
)

var ErrInvalidLayout = errs.New("invalid floor layout")

// MarkerParams is one authored marker. Layout writes carry positions only;
// replacing a layout resets occupancy, the occupancy path never runs against
// a half-replaced document thanks to the version bump.
type MarkerParams struct {
	ID   int
	X    float64
	Y    float64
	Kind string
}

type ReplaceLayoutParams struct {
	Auth     string
	FloorID  string
	ImageURL string
	Markers  []MarkerParams
}

type LayoutCommands interface {
	ReplaceLayout(ctx context.Context, p ReplaceLayoutParams) (floor.Snapshot, error)
}

type layoutUseCaseImpl struct {
	floors    FloorRepository
	gate      accessGate
	publisher Publisher
	logger    *slog.Logger
}

func NewLayoutCommands(
	floors FloorRepository,
	settings SettingsRepository,
	publisher Publisher,
	logger *slog.Logger,
) LayoutCommands {
	return &layoutUseCaseImpl{
		floors:    floors,
		gate:      accessGate{settings: settings},
		publisher: publisher,
		logger:    logger,
	}
}

func (u *layoutUseCaseImpl) ReplaceLayout(ctx context.Context, p ReplaceLayoutParams) (floor.Snapshot, error) {
	if _, err := u.gate.authorize(ctx, p.Auth); err != nil {
		return floor.Snapshot{}, err
	}

	markers := make([]floor.Marker, len(p.Markers))
	for i, mp := range p.Markers {
		markers[i] = floor.Marker{ID: mp.ID, X: mp.X, Y: mp.Y, Kind: mp.Kind}
	}

	m, err := floor.NewMap(p.FloorID, p.ImageURL, markers)
	if err != nil {
		return floor.Snapshot{}, errs.Mark(err, ErrInvalidLayout)
	}

	saved, err := u.floors.ReplaceLayout(ctx, m)
	if err != nil {
		u.logger.Error("failed to replace floor layout",
			"floor_id", p.FloorID, "error", err.Error())
		return floor.Snapshot{}, errs.Mark(err, ErrStorageFailure)
	}

	snap := saved.Snapshot()
	u.publisher.Publish(ctx, snap)
	u.logger.Info("floor layout replaced",
		"floor_id", p.FloorID, "markers", len(p.Markers), "version", snap.Version)
	return snap, nil
}
