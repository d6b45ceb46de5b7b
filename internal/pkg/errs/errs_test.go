//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"floorcheck/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

func TestIsSeesMarkedSentinel(t *testing.T) {
	sentinel := errs.New("floor not found")
	cause := errors.New("no rows in result set")

	err := errs.Mark(cause, sentinel)

	require.True(t, errs.Is(err, sentinel))
	require.True(t, errs.Is(err, cause))
	require.False(t, errs.Is(err, errs.New("other")))
}

func TestIsSeesSentinelThroughWrap(t *testing.T) {
	sentinel := errs.New("unauthorized")
	err := errs.Wrap(errs.Mark(errors.New("settings row missing"), sentinel), "load settings")

	require.True(t, errs.Is(err, sentinel))
}

func TestMarkNilReturnsSentinel(t *testing.T) {
	sentinel := errs.New("unauthorized")
	require.Equal(t, sentinel, errs.Mark(nil, sentinel))
	require.NoError(t, errs.Wrap(nil, "noop"))
}
