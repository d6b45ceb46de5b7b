package queries

import (
	"context"

	"floorcheck/internal/domain/floor"
	"floorcheck/internal/infra"
	"floorcheck/internal/pkg/errs"
)

var (
	ErrFloorNotFound = errs.New("floor not found")
	ErrStorageRead   = errs.New("storage read failure")
)

type FloorReadStore interface {
	FindByID(ctx context.Context, floorID string) (*floor.Map, error)
	List(ctx context.Context) ([]floor.Snapshot, error)
}

// FloorOverview is the maps-overview row: one line per floor for the
// dashboard's floor picker.
type FloorOverview struct {
	FloorID  string `json:"floorId"`
	ImageURL string `json:"imageUrl,omitempty"`
	Tables   int    `json:"tables"`
	Occupied int    `json:"occupied"`
	Version  int64  `json:"version"`
}

type FloorQueries interface {
	GetFloor(ctx context.Context, floorID string) (floor.Snapshot, error)
	ListFloors(ctx context.Context) ([]FloorOverview, error)
}

type floorQueriesImpl struct {
	floors FloorReadStore
}

func NewFloorQueries(floors FloorReadStore) FloorQueries {
	return &floorQueriesImpl{floors: floors}
}

func (q *floorQueriesImpl) GetFloor(ctx context.Context, floorID string) (floor.Snapshot, error) {
	m, err := q.floors.FindByID(ctx, floorID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return floor.Snapshot{}, errs.Mark(err, ErrFloorNotFound)
		}
		return floor.Snapshot{}, errs.Mark(err, ErrStorageRead)
	}
	return m.Snapshot(), nil
}

func (q *floorQueriesImpl) ListFloors(ctx context.Context) ([]FloorOverview, error) {
	snaps, err := q.floors.List(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrStorageRead)
	}

	out := make([]FloorOverview, len(snaps))
	for i, s := range snaps {
		out[i] = FloorOverview{
			FloorID:  s.FloorID,
			ImageURL: s.ImageURL,
			Tables:   s.TableCount(),
			Occupied: s.OccupiedCount(),
			Version:  s.Version,
		}
	}
	return out, nil
}
