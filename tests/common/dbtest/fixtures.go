//go:build e2e

package dbtest

import (
	"context"
	"encoding/json"
	"testing"

	domfloor "floorcheck/internal/domain/floor"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is the minimal surface fixtures need; both a pool and a tx satisfy it.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	TestAPIKey   = "e2e-api-key"
	TestWaitTime = 40
)

// SeedSettings writes the shared-secret settings document tests authorize with.
func SeedSettings(pool *pgxpool.Pool) error {
	_, err := pool.Exec(context.Background(), `
		INSERT INTO settings (id, api_key, wait_time_minutes)
		VALUES ('config', $1, $2)
		ON CONFLICT (id) DO UPDATE SET api_key = $1, wait_time_minutes = $2
	`, TestAPIKey, TestWaitTime)
	return err
}

// CreateTestFloor inserts a floor document with the given markers.
func CreateTestFloor(t *testing.T, db DBLike, floorID string, markers []domfloor.Marker) {
	t.Helper()

	doc, err := json.Marshal(markers)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), `
		INSERT INTO floors (floor_id, components, image_url, version)
		VALUES ($1, $2, '', 1)
		ON CONFLICT (floor_id) DO UPDATE SET components = $2, version = floors.version + 1
	`, floorID, doc)
	require.NoError(t, err)
}

// FloorVersion reads a floor's current storage version.
func FloorVersion(t *testing.T, db DBLike, floorID string) int64 {
	t.Helper()

	var v int64
	err := db.QueryRow(context.Background(),
		"SELECT version FROM floors WHERE floor_id = $1", floorID).Scan(&v)
	require.NoError(t, err)
	return v
}

// AssignedUID reads the uid holding a marker straight from the stored document.
func AssignedUID(t *testing.T, db DBLike, floorID string, markerID int) string {
	t.Helper()

	var doc []byte
	err := db.QueryRow(context.Background(),
		"SELECT components FROM floors WHERE floor_id = $1", floorID).Scan(&doc)
	require.NoError(t, err)

	var markers []struct {
		ID         int     `json:"id"`
		AssignedTo *string `json:"assignedTo"`
	}
	require.NoError(t, json.Unmarshal(doc, &markers))
	for _, m := range markers {
		if m.ID == markerID {
			if m.AssignedTo == nil {
				return ""
			}
			return *m.AssignedTo
		}
	}
	t.Fatalf("marker %d not found on floor %s", markerID, floorID)
	return ""
}

// ResetDB truncates mutable state and reseeds the settings document.
func ResetDB(pool *pgxpool.Pool) error {
	ctx := context.Background()
	if _, err := pool.Exec(ctx, "TRUNCATE TABLE floors"); err != nil {
		return err
	}
	return SeedSettings(pool)
}
