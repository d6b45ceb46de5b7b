// Package tableref resolves the wire-level table reference into an explicit
// floor key plus marker id. The structured {floor, table} pair is the
// canonical form; the legacy composite string ("1-01": leading floor key,
// zero-padded marker digits) is kept only as a migration shim for NFC tags
// written before the format change.
package tableref

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrEmptyReference     = errors.New("empty table reference")
	ErrMalformedReference = errors.New("malformed table reference")
)

type Ref struct {
	Floor  string
	Marker int
}

// Resolve picks the structured form when floor is set, otherwise falls back
// to parsing the legacy composite string.
func Resolve(floorKey, table string) (Ref, error) {
	if floorKey != "" {
		id, err := parseMarkerID(table)
		if err != nil {
			return Ref{}, err
		}
		return Ref{Floor: floorKey, Marker: id}, nil
	}
	return ParseLegacy(table)
}

// ParseLegacy decodes the composite reference: the first character selects
// the floor, the remainder (an optional separator plus zero-padded digits)
// encodes the marker id.
func ParseLegacy(s string) (Ref, error) {
	if s == "" {
		return Ref{}, ErrEmptyReference
	}
	if len(s) < 2 {
		return Ref{}, ErrMalformedReference
	}

	floorKey := s[:1]
	rest := strings.TrimLeft(s[1:], "-_")
	id, err := parseMarkerID(rest)
	if err != nil {
		return Ref{}, err
	}
	return Ref{Floor: floorKey, Marker: id}, nil
}

func parseMarkerID(s string) (int, error) {
	if s == "" {
		return 0, ErrEmptyReference
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, ErrMalformedReference
	}
	return id, nil
}
