package floor

import (
	"errors"
	"sort"
)

var (
	ErrEmptyFloorID      = errors.New("floor id is empty")
	ErrDuplicateMarkerID = errors.New("duplicate marker id on floor")
	ErrInvalidMarkerID   = errors.New("marker id must be positive")
	ErrInvalidPosition   = errors.New("marker position out of range")
)

// Identity is the opaque token of a checked-in party. The empty string and
// the legacy "-" both mean nobody.
type Identity string

const Nobody Identity = "-"

func (i Identity) IsNobody() bool {
	return i == "" || i == Nobody
}

// MarkerKindTable is the only marker kind the occupancy logic acts on; the
// map author may place decorative kinds alongside it.
const MarkerKindTable = "table"

// Marker is one physical table on a floor. X and Y are normalized to [0,1]
// relative to the floor image and are meaningless to occupancy logic. The
// json tags define the push-channel document shape consumed by live viewers.
type Marker struct {
	ID         int      `json:"id"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	Kind       string   `json:"type"`
	Occupied   bool     `json:"occupied"`
	AssignedTo Identity `json:"assignedTo,omitempty"`
}

// Map is one floor's layout document plus its storage version, which guards
// conditional writes against concurrent mutation.
type Map struct {
	floorID  string
	imageURL string
	markers  []Marker
	version  int64
}

// NewMap validates a freshly authored layout. Occupancy fields are
// normalized so that Occupied always derives from AssignedTo.
func NewMap(floorID, imageURL string, markers []Marker) (*Map, error) {
	return build(floorID, imageURL, markers, 0)
}

// ReconstructMap rebuilds a floor from storage. The same validation applies:
// a stored document that fails it is treated as malformed, never trusted.
func ReconstructMap(floorID, imageURL string, markers []Marker, version int64) (*Map, error) {
	return build(floorID, imageURL, markers, version)
}

func build(floorID, imageURL string, markers []Marker, version int64) (*Map, error) {
	if floorID == "" {
		return nil, ErrEmptyFloorID
	}

	seen := make(map[int]struct{}, len(markers))
	normalized := make([]Marker, len(markers))
	for i, m := range markers {
		if m.ID <= 0 {
			return nil, ErrInvalidMarkerID
		}
		if _, dup := seen[m.ID]; dup {
			return nil, ErrDuplicateMarkerID
		}
		seen[m.ID] = struct{}{}

		if m.X < 0 || m.X > 1 || m.Y < 0 || m.Y > 1 {
			return nil, ErrInvalidPosition
		}

		if m.Kind == "" {
			m.Kind = MarkerKindTable
		}
		if m.AssignedTo.IsNobody() {
			m.AssignedTo = ""
			m.Occupied = false
		} else {
			m.Occupied = true
		}
		normalized[i] = m
	}

	return &Map{
		floorID:  floorID,
		imageURL: imageURL,
		markers:  normalized,
		version:  version,
	}, nil
}

func (m *Map) FloorID() string  { return m.floorID }
func (m *Map) ImageURL() string { return m.imageURL }
func (m *Map) Version() int64   { return m.version }

// Markers returns a copy; callers never mutate the entity's slice directly.
func (m *Map) Markers() []Marker {
	out := make([]Marker, len(m.markers))
	copy(out, m.markers)
	return out
}

func (m *Map) marker(id int) (int, bool) {
	for i, mk := range m.markers {
		if mk.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (m *Map) assign(idx int, uid Identity) {
	m.markers[idx].AssignedTo = uid
	m.markers[idx].Occupied = true
}

func (m *Map) clear(idx int) {
	m.markers[idx].AssignedTo = ""
	m.markers[idx].Occupied = false
}

// Snapshot is the immutable full-document view pushed to live viewers and
// returned by read endpoints.
type Snapshot struct {
	FloorID  string   `json:"floorId"`
	ImageURL string   `json:"imageUrl,omitempty"`
	Markers  []Marker `json:"markers"`
	Version  int64    `json:"version"`
}

func (m *Map) Snapshot() Snapshot {
	return Snapshot{
		FloorID:  m.floorID,
		ImageURL: m.imageURL,
		Markers:  m.Markers(),
		Version:  m.version,
	}
}

// OccupiedCount reports how many table markers currently hold an assignment.
func (s Snapshot) OccupiedCount() int {
	n := 0
	for _, mk := range s.Markers {
		if mk.Kind == MarkerKindTable && mk.Occupied {
			n++
		}
	}
	return n
}

// TableCount reports how many markers on the snapshot are tables.
func (s Snapshot) TableCount() int {
	n := 0
	for _, mk := range s.Markers {
		if mk.Kind == MarkerKindTable {
			n++
		}
	}
	return n
}

// SortedMarkers returns the snapshot markers ordered by id, for stable
// rendering and test assertions.
func (s Snapshot) SortedMarkers() []Marker {
	out := make([]Marker, len(s.Markers))
	copy(out, s.Markers)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
