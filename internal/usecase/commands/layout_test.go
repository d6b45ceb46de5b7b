//go:build unit

package commands_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"floorcheck/internal/domain/floor"
	"floorcheck/internal/infra"
	"floorcheck/internal/infra/repository"
	"floorcheck/internal/pkg/errs"
	"floorcheck/internal/usecase/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type layoutFixture struct {
	floors    *MockFloorRepository
	settings  *MockSettingsRepository
	publisher *MockPublisher
	uc        commands.LayoutCommands
}

func newLayoutFixture() *layoutFixture {
	f := &layoutFixture{
		floors:    new(MockFloorRepository),
		settings:  new(MockSettingsRepository),
		publisher: new(MockPublisher),
	}
	f.uc = commands.NewLayoutCommands(f.floors, f.settings, f.publisher, slog.New(slog.DiscardHandler))
	return f
}

func (f *layoutFixture) expectSettings() {
	f.settings.On("Get", mock.Anything).
		Return(&repository.Settings{APIKey: testAPIKey, WaitTimeMinutes: testWait}, nil)
}

func layoutParams() commands.ReplaceLayoutParams {
	return commands.ReplaceLayoutParams{
		Auth:     testAPIKey,
		FloorID:  "1",
		ImageURL: "floors/1.png",
		Markers: []commands.MarkerParams{
			{ID: 1, X: 0.2, Y: 0.3},
			{ID: 2, X: 0.5, Y: 0.3},
		},
	}
}

func TestReplaceLayout(t *testing.T) {
	t.Run("replaces the layout and publishes the new document", func(t *testing.T) {
		f := newLayoutFixture()
		f.expectSettings()

		stored, err := floor.ReconstructMap("1", "floors/1.png", []floor.Marker{
			{ID: 1, X: 0.2, Y: 0.3},
			{ID: 2, X: 0.5, Y: 0.3},
		}, 7)
		require.NoError(t, err)

		f.floors.On("ReplaceLayout", mock.Anything, mock.Anything).Return(stored, nil)
		f.publisher.On("Publish", mock.Anything, stored.Snapshot()).Once()

		snap, err := f.uc.ReplaceLayout(context.Background(), layoutParams())
		require.NoError(t, err)

		assert.Equal(t, int64(7), snap.Version)
		assert.Equal(t, 2, snap.TableCount())
		assert.Zero(t, snap.OccupiedCount(), "a fresh layout starts vacant")
		f.publisher.AssertExpectations(t)
	})

	t.Run("wrong api key", func(t *testing.T) {
		f := newLayoutFixture()
		f.expectSettings()

		p := layoutParams()
		p.Auth = "wrong"
		_, err := f.uc.ReplaceLayout(context.Background(), p)
		require.True(t, errs.Is(err, commands.ErrUnauthorized))
		f.floors.AssertNotCalled(t, "ReplaceLayout", mock.Anything, mock.Anything)
	})

	t.Run("invalid layout is rejected before storage", func(t *testing.T) {
		f := newLayoutFixture()
		f.expectSettings()

		p := layoutParams()
		p.Markers = append(p.Markers, commands.MarkerParams{ID: 1, X: 0.9, Y: 0.9})
		_, err := f.uc.ReplaceLayout(context.Background(), p)
		require.True(t, errs.Is(err, commands.ErrInvalidLayout))
		f.floors.AssertNotCalled(t, "ReplaceLayout", mock.Anything, mock.Anything)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newLayoutFixture()
		f.expectSettings()

		f.floors.On("ReplaceLayout", mock.Anything, mock.Anything).
			Return(nil, infra.WrapRepoErr("upsert", errors.New("conn reset")))

		_, err := f.uc.ReplaceLayout(context.Background(), layoutParams())
		require.True(t, errs.Is(err, commands.ErrStorageFailure))
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}
