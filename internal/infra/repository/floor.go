package repository

import (
	"context"
	"encoding/json"
	"errors"

	"floorcheck/internal/domain/floor"
	"floorcheck/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// markerDoc is the stored JSON shape of one marker. assignedTo keeps the
// legacy contract: null, "" and "-" all mean unassigned.
type markerDoc struct {
	ID         int     `json:"id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Kind       string  `json:"type,omitempty"`
	Occupied   bool    `json:"occupied"`
	AssignedTo *string `json:"assignedTo"`
}

type FloorRepository struct {
	pool *pgxpool.Pool
}

func NewFloorRepository(pool *pgxpool.Pool) *FloorRepository {
	return &FloorRepository{pool: pool}
}

// FindByID loads one floor document. The stored marker list is parsed and
// validated before anything downstream sees it; a document that fails
// validation surfaces as MALFORMED_DOC, never as a half-parsed map.
func (r *FloorRepository) FindByID(ctx context.Context, floorID string) (*floor.Map, error) {
	var (
		components []byte
		imageURL   string
		version    int64
	)
	err := r.pool.QueryRow(ctx,
		`SELECT components, image_url, version FROM floors WHERE floor_id = $1`,
		floorID,
	).Scan(&components, &imageURL, &version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("floor not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load floor", err)
	}

	markers, err := decodeMarkers(components)
	if err != nil {
		return nil, infra.WrapRepoErr("stored floor document is malformed", err, infra.KindMalformedDoc)
	}

	m, err := floor.ReconstructMap(floorID, imageURL, markers, version)
	if err != nil {
		return nil, infra.WrapRepoErr("stored floor document is malformed", err, infra.KindMalformedDoc)
	}
	return m, nil
}

// Save persists the whole floor document conditionally on the version the
// map was loaded at. Zero rows affected means another writer got there
// first; the caller re-reads and re-decides. The returned snapshot carries
// the version the document was persisted at.
func (r *FloorRepository) Save(ctx context.Context, m *floor.Map) (floor.Snapshot, error) {
	components, err := encodeMarkers(m.Markers())
	if err != nil {
		return floor.Snapshot{}, infra.WrapRepoErr("failed to encode floor document", err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE floors
		    SET components = $2, version = version + 1, updated_at = now()
		  WHERE floor_id = $1 AND version = $3`,
		m.FloorID(), components, m.Version(),
	)
	if err != nil {
		return floor.Snapshot{}, infra.WrapRepoErr("failed to save floor", err)
	}
	if tag.RowsAffected() == 0 {
		return floor.Snapshot{}, infra.WrapRepoErr("floor changed since read", nil, infra.KindVersionConflict)
	}

	snap := m.Snapshot()
	snap.Version = m.Version() + 1
	return snap, nil
}

// ReplaceLayout is the map-authoring write: the whole document is replaced
// and the version bumped, so in-flight check-ins against the old layout
// fail their conditional write instead of resurrecting it.
func (r *FloorRepository) ReplaceLayout(ctx context.Context, m *floor.Map) (*floor.Map, error) {
	components, err := encodeMarkers(m.Markers())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to encode floor document", err)
	}

	var version int64
	err = r.pool.QueryRow(ctx,
		`INSERT INTO floors (floor_id, components, image_url)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (floor_id) DO UPDATE
		    SET components = EXCLUDED.components,
		        image_url  = EXCLUDED.image_url,
		        version    = floors.version + 1,
		        updated_at = now()
		 RETURNING version`,
		m.FloorID(), components, m.ImageURL(),
	).Scan(&version)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to replace floor layout", err)
	}

	return floor.ReconstructMap(m.FloorID(), m.ImageURL(), m.Markers(), version)
}

// List returns snapshots of every floor, ordered by floor key.
func (r *FloorRepository) List(ctx context.Context) ([]floor.Snapshot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT floor_id, components, image_url, version FROM floors ORDER BY floor_id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list floors", err)
	}
	defer rows.Close()

	var out []floor.Snapshot
	for rows.Next() {
		var (
			floorID    string
			components []byte
			imageURL   string
			version    int64
		)
		if err := rows.Scan(&floorID, &components, &imageURL, &version); err != nil {
			return nil, infra.WrapRepoErr("failed to scan floor row", err)
		}
		markers, err := decodeMarkers(components)
		if err != nil {
			return nil, infra.WrapRepoErr("stored floor document is malformed", err, infra.KindMalformedDoc)
		}
		m, err := floor.ReconstructMap(floorID, imageURL, markers, version)
		if err != nil {
			return nil, infra.WrapRepoErr("stored floor document is malformed", err, infra.KindMalformedDoc)
		}
		out = append(out, m.Snapshot())
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate floors", err)
	}
	return out, nil
}

func decodeMarkers(raw []byte) ([]floor.Marker, error) {
	var docs []markerDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, err
	}
	markers := make([]floor.Marker, len(docs))
	for i, d := range docs {
		assigned := floor.Identity("")
		if d.AssignedTo != nil {
			assigned = floor.Identity(*d.AssignedTo)
		}
		markers[i] = floor.Marker{
			ID:         d.ID,
			X:          d.X,
			Y:          d.Y,
			Kind:       d.Kind,
			Occupied:   d.Occupied,
			AssignedTo: assigned,
		}
	}
	return markers, nil
}

func encodeMarkers(markers []floor.Marker) ([]byte, error) {
	docs := make([]markerDoc, len(markers))
	for i, m := range markers {
		var assigned *string
		if !m.AssignedTo.IsNobody() {
			s := string(m.AssignedTo)
			assigned = &s
		}
		docs[i] = markerDoc{
			ID:         m.ID,
			X:          m.X,
			Y:          m.Y,
			Kind:       m.Kind,
			Occupied:   m.Occupied,
			AssignedTo: assigned,
		}
	}
	return json.Marshal(docs)
}
