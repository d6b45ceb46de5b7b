package floor

import "errors"

var ErrTableNotFound = errors.New("table not found on floor")

// Outcome classifies one check-in/check-out request against a floor.
type Outcome int

const (
	// OutcomeCheckIn seats the requester at an unoccupied table.
	OutcomeCheckIn Outcome = iota
	// OutcomeCheckOut clears the target table's assignment.
	OutcomeCheckOut
	// OutcomeAlreadyHere means the requester is already seated at the target
	// table; succeed without touching state.
	OutcomeAlreadyHere
	// OutcomeConflict means the requester is seated at a different table on
	// this floor; a second seat is refused.
	OutcomeConflict
	// OutcomeTableTaken means someone else holds the target table.
	OutcomeTableTaken
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCheckIn:
		return "check_in"
	case OutcomeCheckOut:
		return "check_out"
	case OutcomeAlreadyHere:
		return "already_here"
	case OutcomeConflict:
		return "conflict"
	case OutcomeTableTaken:
		return "table_taken"
	default:
		return "unknown"
	}
}

// Decision is the result of classifying one request. Mutated reports whether
// the in-memory Map changed and must be persisted by the caller.
type Decision struct {
	Outcome Outcome
	Mutated bool
}

// Decide classifies a request for targetID by uid against m and applies any
// resulting mutation to m's in-memory markers. Persistence is the caller's
// job: the write grain is the whole floor document.
//
// The order is a contract. First the whole floor is scanned for an existing
// assignment held by the requester, so "one table per identity" is settled
// before any single-table logic runs. Only when no assignment exists is the
// target marker located and acted on.
func Decide(m *Map, targetID int, uid Identity) (Decision, error) {
	if !uid.IsNobody() {
		for _, mk := range m.markers {
			if mk.AssignedTo == uid {
				if mk.ID == targetID {
					return Decision{Outcome: OutcomeAlreadyHere}, nil
				}
				return Decision{Outcome: OutcomeConflict}, nil
			}
		}
	}

	idx, ok := m.marker(targetID)
	if !ok {
		return Decision{}, ErrTableNotFound
	}

	if uid.IsNobody() {
		mutated := m.markers[idx].Occupied
		m.clear(idx)
		return Decision{Outcome: OutcomeCheckOut, Mutated: mutated}, nil
	}

	if !m.markers[idx].AssignedTo.IsNobody() {
		return Decision{Outcome: OutcomeTableTaken}, nil
	}

	m.assign(idx, uid)
	return Decision{Outcome: OutcomeCheckIn, Mutated: true}, nil
}
