// Package liveview keeps a rendered dashboard consistent with a floor's
// occupancy state from pushed snapshots, redrawing only the markers whose
// occupancy actually changed.
package liveview

import (
	"sort"

	"floorcheck/internal/domain/floor"
)

// Change is one marker whose occupancy differs from the previous snapshot.
type Change struct {
	MarkerID int
	Occupied bool
}

// Reconcile diffs two marker lists by id and reports every table marker
// whose occupancy changed, ordered by marker id. A nil prev means first
// paint: every table marker is reported so the view starts from the
// snapshot, not from assumptions.
//
// Occupancy is always taken from next. Feeding the same snapshot twice
// yields no changes, so duplicate or re-delivered notifications are
// harmless.
func Reconcile(prev, next []floor.Marker) []Change {
	known := make(map[int]bool, len(prev))
	seen := prev != nil
	for _, m := range prev {
		if m.Kind != floor.MarkerKindTable {
			continue
		}
		known[m.ID] = m.Occupied
	}

	var changes []Change
	for _, m := range next {
		if m.Kind != floor.MarkerKindTable {
			continue
		}
		was, ok := known[m.ID]
		if seen && ok && was == m.Occupied {
			continue
		}
		changes = append(changes, Change{MarkerID: m.ID, Occupied: m.Occupied})
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].MarkerID < changes[j].MarkerID })
	return changes
}
