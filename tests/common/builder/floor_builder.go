//go:build unit || e2e

package builder

import (
	domfloor "floorcheck/internal/domain/floor"
	reqdto "floorcheck/internal/handler/dto/request"
)

// FloorBuilder assembles a small three-table floor: tables 1 and 2 free,
// table 3 held by "guest-c".
type FloorBuilder struct {
	FloorID  string
	ImageURL string
	Markers  []domfloor.Marker
	Version  int64
}

func NewFloorBuilder() *FloorBuilder {
	return &FloorBuilder{
		FloorID:  "1",
		ImageURL: "floors/1.png",
		Markers: []domfloor.Marker{
			{ID: 1, X: 0.2, Y: 0.3, Kind: domfloor.MarkerKindTable},
			{ID: 2, X: 0.5, Y: 0.3, Kind: domfloor.MarkerKindTable},
			{ID: 3, X: 0.8, Y: 0.6, Kind: domfloor.MarkerKindTable, AssignedTo: "guest-c"},
		},
	}
}

func (b *FloorBuilder) With(mutate func(*FloorBuilder)) *FloorBuilder {
	mutate(b)
	return b
}

func (b *FloorBuilder) WithMarker(m domfloor.Marker) *FloorBuilder {
	b.Markers = append(b.Markers, m)
	return b
}

func (b *FloorBuilder) WithVersion(v int64) *FloorBuilder {
	b.Version = v
	return b
}

func (b *FloorBuilder) BuildDomain() (*domfloor.Map, error) {
	if b.Version > 0 {
		return domfloor.ReconstructMap(b.FloorID, b.ImageURL, b.Markers, b.Version)
	}
	return domfloor.NewMap(b.FloorID, b.ImageURL, b.Markers)
}

func (b *FloorBuilder) BuildSnapshot() domfloor.Snapshot {
	m, err := b.BuildDomain()
	if err != nil {
		panic("floor builder produced an invalid floor: " + err.Error())
	}
	return m.Snapshot()
}

// CheckStatusBuilder assembles the check-in request body. The default is a
// structured reference to a free table on the builder floor.
type CheckStatusBuilder struct {
	Auth  string
	UID   string
	Floor string
	Table string
}

func NewCheckStatusBuilder() *CheckStatusBuilder {
	return &CheckStatusBuilder{
		Auth:  "test-api-key",
		UID:   "guest-a",
		Floor: "1",
		Table: "1",
	}
}

func (b *CheckStatusBuilder) With(mutate func(*CheckStatusBuilder)) *CheckStatusBuilder {
	mutate(b)
	return b
}

func (b *CheckStatusBuilder) BuildDTO() reqdto.CheckStatusRequest {
	return reqdto.CheckStatusRequest{
		Auth:  b.Auth,
		UID:   b.UID,
		Floor: b.Floor,
		Table: b.Table,
	}
}
