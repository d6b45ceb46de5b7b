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
	"floorcheck/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFloorRepository struct {
	mock.Mock
}

func (m *MockFloorRepository) FindByID(ctx context.Context, floorID string) (*floor.Map, error) {
	args := m.Called(ctx, floorID)
	var fm *floor.Map
	if v := args.Get(0); v != nil {
		fm = v.(*floor.Map)
	}
	return fm, args.Error(1)
}

func (m *MockFloorRepository) Save(ctx context.Context, fm *floor.Map) (floor.Snapshot, error) {
	args := m.Called(ctx, fm)
	return args.Get(0).(floor.Snapshot), args.Error(1)
}

func (m *MockFloorRepository) ReplaceLayout(ctx context.Context, fm *floor.Map) (*floor.Map, error) {
	args := m.Called(ctx, fm)
	var out *floor.Map
	if v := args.Get(0); v != nil {
		out = v.(*floor.Map)
	}
	return out, args.Error(1)
}

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*repository.Settings, error) {
	args := m.Called(ctx)
	var s *repository.Settings
	if v := args.Get(0); v != nil {
		s = v.(*repository.Settings)
	}
	return s, args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, snap floor.Snapshot) {
	m.Called(ctx, snap)
}

type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *MockTokenValidator) ResolveUID(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

const (
	testAPIKey = "test-api-key"
	testWait   = 40
)

type checkInFixture struct {
	floors    *MockFloorRepository
	settings  *MockSettingsRepository
	publisher *MockPublisher
	tokens    *MockTokenValidator
	uc        commands.CheckInCommands
}

func newCheckInFixture() *checkInFixture {
	f := &checkInFixture{
		floors:    new(MockFloorRepository),
		settings:  new(MockSettingsRepository),
		publisher: new(MockPublisher),
		tokens:    new(MockTokenValidator),
	}
	f.uc = commands.NewCheckInCommands(
		f.floors, f.settings, f.publisher, f.tokens, slog.New(slog.DiscardHandler))
	return f
}

func (f *checkInFixture) expectSettings() {
	f.settings.On("Get", mock.Anything).
		Return(&repository.Settings{APIKey: testAPIKey, WaitTimeMinutes: testWait}, nil)
}

func (f *checkInFixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.floors.AssertExpectations(t)
	f.settings.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
	f.tokens.AssertExpectations(t)
}

func freshFloor(t *testing.T) *floor.Map {
	t.Helper()
	m, err := builder.NewFloorBuilder().WithVersion(3).BuildDomain()
	require.NoError(t, err)
	return m
}

func params(uid, floorKey, table string) commands.CheckStatusParams {
	return commands.CheckStatusParams{Auth: testAPIKey, UID: uid, Floor: floorKey, Table: table}
}

func TestSetStatusAuthorization(t *testing.T) {
	t.Run("wrong api key denies before any floor access", func(t *testing.T) {
		f := newCheckInFixture()
		f.expectSettings()

		_, err := f.uc.SetStatus(context.Background(), commands.CheckStatusParams{
			Auth: "wrong", UID: "guest-a", Floor: "1", Table: "1",
		})
		require.True(t, errs.Is(err, commands.ErrUnauthorized))

		f.floors.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("empty api key denied", func(t *testing.T) {
		f := newCheckInFixture()
		f.expectSettings()

		_, err := f.uc.SetStatus(context.Background(), commands.CheckStatusParams{
			UID: "guest-a", Floor: "1", Table: "1",
		})
		require.True(t, errs.Is(err, commands.ErrUnauthorized))
	})

	t.Run("missing settings document fails closed", func(t *testing.T) {
		f := newCheckInFixture()
		f.settings.On("Get", mock.Anything).
			Return(nil, infra.WrapRepoErr("settings not found", errors.New("no rows"), infra.KindNotFound))

		_, err := f.uc.SetStatus(context.Background(), params("guest-a", "1", "1"))
		require.True(t, errs.Is(err, commands.ErrUnauthorized))
	})

	t.Run("settings read failure is a storage error, not a denial", func(t *testing.T) {
		f := newCheckInFixture()
		f.settings.On("Get", mock.Anything).
			Return(nil, infra.WrapRepoErr("settings", errors.New("conn refused")))

		_, err := f.uc.SetStatus(context.Background(), params("guest-a", "1", "1"))
		require.True(t, errs.Is(err, commands.ErrStorageFailure))
		require.False(t, errs.Is(err, commands.ErrUnauthorized))
	})
}

func TestSetStatusIdentity(t *testing.T) {
	t.Run("no uid and no token", func(t *testing.T) {
		f := newCheckInFixture()
		f.expectSettings()

		_, err := f.uc.SetStatus(context.Background(), params("", "1", "1"))
		require.True(t, errs.Is(err, commands.ErrMissingIdentity))
	})

	t.Run("bearer token resolves the uid", func(t *testing.T) {
		f := newCheckInFixture()
		f.expectSettings()
		f.tokens.On("Enabled").Return(true)
		f.tokens.On("ResolveUID", "session-token").Return("guest-a", nil)

		m := freshFloor(t)
		f.floors.On("FindByID", mock.Anything, "1").Return(m, nil)
		f.floors.On("Save", mock.Anything, m).Return(m.Snapshot(), nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Once()

		res, err := f.uc.SetStatus(context.Background(), commands.CheckStatusParams{
			Auth: testAPIKey, BearerToken: "session-token", Floor: "1", Table: "1",
		})
		require.NoError(t, err)
		assert.True(t, res.CheckedIn)
		f.assertExpectations(t)
	})

	t.Run("invalid bearer token", func(t *testing.T) {
		f := newCheckInFixture()
		f.expectSettings()
		f.tokens.On("Enabled").Return(true)
		f.tokens.On("ResolveUID", "bad-token").Return("", errors.New("invalid token"))

		_, err := f.uc.SetStatus(context.Background(), commands.CheckStatusParams{
			Auth: testAPIKey, BearerToken: "bad-token", Floor: "1", Table: "1",
		})
		require.True(t, errs.Is(err, commands.ErrMissingIdentity))
	})

	t.Run("token resolution disabled ignores the bearer token", func(t *testing.T) {
		f := newCheckInFixture()
		f.expectSettings()
		f.tokens.On("Enabled").Return(false)

		_, err := f.uc.SetStatus(context.Background(), commands.CheckStatusParams{
			Auth: testAPIKey, BearerToken: "session-token", Floor: "1", Table: "1",
		})
		require.True(t, errs.Is(err, commands.ErrMissingIdentity))
	})

	t.Run("explicit uid wins over the token", func(t *testing.T) {
		f := newCheckInFixture()
		f.expectSettings()

		m := freshFloor(t)
		f.floors.On("FindByID", mock.Anything, "1").Return(m, nil)
		f.floors.On("Save", mock.Anything, m).Return(m.Snapshot(), nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Once()

		_, err := f.uc.SetStatus(context.Background(), commands.CheckStatusParams{
			Auth: testAPIKey, UID: "guest-a", BearerToken: "ignored", Floor: "1", Table: "1",
		})
		require.NoError(t, err)
		f.tokens.AssertNotCalled(t, "ResolveUID", mock.Anything)
	})
}

func TestSetStatusOutcomes(t *testing.T) {
	t.Run("check-in persists and publishes", func(t *testing.T) {
		f := newCheckInFixture()
		f.expectSettings()

		m := freshFloor(t)
		saved := builder.NewFloorBuilder().
			WithVersion(4).
			With(func(b *builder.FloorBuilder) { b.Markers[0].AssignedTo = "guest-a" }).
			BuildSnapshot()
		f.floors.On("FindByID", mock.Anything, "1").Return(m, nil)
		f.floors.On("Save", mock.Anything, m).Return(saved, nil)
		f.publisher.On("Publish", mock.Anything, saved).Once()

		res, err := f.uc.SetStatus(context.Background(), params("guest-a", "1", "1"))
		require.NoError(t, err)

		assert.Equal(t, floor.OutcomeCheckIn, res.Outcome)
		assert.True(t, res.CheckedIn)
		assert.Equal(t, testWait, res.DelayMinutes)
		f.assertExpectations(t)
	})

	t.Run("repeat tap neither saves nor publishes", func(t *testing.T) {
		f := newCheckInFixture()
		f.expectSettings()
		f.floors.On("FindByID", mock.Anything, "1").Return(freshFloor(t), nil)

		res, err := f.uc.SetStatus(context.Background(), params("guest-c", "1", "3"))
		require.NoError(t, err)

		assert.Equal(t, floor.OutcomeAlreadyHere, res.Outcome)
		assert.True(t, res.CheckedIn)
		assert.Equal(t, testWait, res.DelayMinutes)
		f.floors.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("table held by someone else", func(t *testing.T) {
		f := newCheckInFixture()
		f.expectSettings()
		f.floors.On("FindByID", mock.Anything, "1").Return(freshFloor(t), nil)

		res, err := f.uc.SetStatus(context.Background(), params("guest-a", "1", "3"))
		require.NoError(t, err)

		assert.Equal(t, floor.OutcomeTableTaken, res.Outcome)
		assert.False(t, res.CheckedIn)
		assert.Equal(t, -1, res.DelayMinutes)
		f.floors.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("second table refused", func(t *testing.T) {
		f := newCheckInFixture()
		f.expectSettings()
		f.floors.On("FindByID", mock.Anything, "1").Return(freshFloor(t), nil)

		res, err := f.uc.SetStatus(context.Background(), params("guest-c", "1", "1"))
		require.NoError(t, err)

		assert.Equal(t, floor.OutcomeConflict, res.Outcome)
		assert.False(t, res.CheckedIn)
		assert.Equal(t, 0, res.DelayMinutes)
	})

	t.Run("checkout clears and publishes", func(t *testing.T) {
		f := newCheckInFixture()
		f.expectSettings()

		m := freshFloor(t)
		f.floors.On("FindByID", mock.Anything, "1").Return(m, nil)
		f.floors.On("Save", mock.Anything, m).Return(m.Snapshot(), nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Once()

		res, err := f.uc.SetStatus(context.Background(), params("-", "1", "3"))
		require.NoError(t, err)

		assert.Equal(t, floor.OutcomeCheckOut, res.Outcome)
		assert.False(t, res.CheckedIn)
		assert.Equal(t, 0, res.DelayMinutes)
		f.assertExpectations(t)
	})

	t.Run("legacy composite table reference", func(t *testing.T) {
		f := newCheckInFixture()
		f.expectSettings()

		m := freshFloor(t)
		f.floors.On("FindByID", mock.Anything, "1").Return(m, nil)
		f.floors.On("Save", mock.Anything, m).Return(m.Snapshot(), nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Once()

		res, err := f.uc.SetStatus(context.Background(), commands.CheckStatusParams{
			Auth: testAPIKey, UID: "guest-a", Table: "1-01",
		})
		require.NoError(t, err)
		assert.Equal(t, floor.OutcomeCheckIn, res.Outcome)
	})

	t.Run("malformed table reference", func(t *testing.T) {
		f := newCheckInFixture()
		f.expectSettings()

		_, err := f.uc.SetStatus(context.Background(), commands.CheckStatusParams{
			Auth: testAPIKey, UID: "guest-a", Table: "nope",
		})
		require.True(t, errs.Is(err, commands.ErrBadTableReference))
		f.floors.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown floor", func(t *testing.T) {
		f := newCheckInFixture()
		f.expectSettings()
		f.floors.On("FindByID", mock.Anything, "9").
			Return(nil, infra.WrapRepoErr("floor not found", errors.New("no rows"), infra.KindNotFound))

		_, err := f.uc.SetStatus(context.Background(), params("guest-a", "9", "1"))
		require.True(t, errs.Is(err, commands.ErrFloorNotFound))
	})

	t.Run("unknown table", func(t *testing.T) {
		f := newCheckInFixture()
		f.expectSettings()
		f.floors.On("FindByID", mock.Anything, "1").Return(freshFloor(t), nil)

		_, err := f.uc.SetStatus(context.Background(), params("guest-a", "1", "99"))
		require.True(t, errs.Is(err, commands.ErrTableNotFound))
	})
}

func TestSetStatusPersistence(t *testing.T) {
	t.Run("version conflict re-reads and retries", func(t *testing.T) {
		f := newCheckInFixture()
		f.expectSettings()

		conflict := infra.WrapRepoErr("floor version changed", errors.New("0 rows"), infra.KindVersionConflict)

		first := freshFloor(t)
		second := freshFloor(t)
		f.floors.On("FindByID", mock.Anything, "1").Return(first, nil).Once()
		f.floors.On("FindByID", mock.Anything, "1").Return(second, nil).Once()
		f.floors.On("Save", mock.Anything, first).Return(floor.Snapshot{}, conflict).Once()
		f.floors.On("Save", mock.Anything, second).Return(second.Snapshot(), nil).Once()
		f.publisher.On("Publish", mock.Anything, mock.Anything).Once()

		res, err := f.uc.SetStatus(context.Background(), params("guest-a", "1", "1"))
		require.NoError(t, err)

		assert.Equal(t, floor.OutcomeCheckIn, res.Outcome)
		f.assertExpectations(t)
	})

	t.Run("retry observes the interleaved write", func(t *testing.T) {
		// Someone else grabs the table between the failed save and the
		// re-read; the retry must report TableTaken, not overwrite them.
		f := newCheckInFixture()
		f.expectSettings()

		conflict := infra.WrapRepoErr("floor version changed", errors.New("0 rows"), infra.KindVersionConflict)

		first := freshFloor(t)
		taken, err := builder.NewFloorBuilder().
			WithVersion(4).
			With(func(b *builder.FloorBuilder) { b.Markers[0].AssignedTo = "guest-b" }).
			BuildDomain()
		require.NoError(t, err)

		f.floors.On("FindByID", mock.Anything, "1").Return(first, nil).Once()
		f.floors.On("FindByID", mock.Anything, "1").Return(taken, nil).Once()
		f.floors.On("Save", mock.Anything, first).Return(floor.Snapshot{}, conflict).Once()

		res, err := f.uc.SetStatus(context.Background(), params("guest-a", "1", "1"))
		require.NoError(t, err)

		assert.Equal(t, floor.OutcomeTableTaken, res.Outcome)
		assert.Equal(t, -1, res.DelayMinutes)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		f.assertExpectations(t)
	})

	t.Run("persistent conflicts exhaust retries", func(t *testing.T) {
		f := newCheckInFixture()
		f.expectSettings()

		conflict := infra.WrapRepoErr("floor version changed", errors.New("0 rows"), infra.KindVersionConflict)
		// Each attempt re-reads, so each read needs its own unmutated copy.
		for range 4 {
			f.floors.On("FindByID", mock.Anything, "1").Return(freshFloor(t), nil).Once()
		}
		f.floors.On("Save", mock.Anything, mock.Anything).Return(floor.Snapshot{}, conflict).Times(4)

		_, err := f.uc.SetStatus(context.Background(), params("guest-a", "1", "1"))
		require.True(t, errs.Is(err, commands.ErrStorageFailure))
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("write failure never reports success", func(t *testing.T) {
		f := newCheckInFixture()
		f.expectSettings()

		m := freshFloor(t)
		f.floors.On("FindByID", mock.Anything, "1").Return(m, nil)
		f.floors.On("Save", mock.Anything, m).
			Return(floor.Snapshot{}, infra.WrapRepoErr("write", errors.New("conn reset")))

		res, err := f.uc.SetStatus(context.Background(), params("guest-a", "1", "1"))
		require.True(t, errs.Is(err, commands.ErrStorageFailure))
		assert.Nil(t, res)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}
