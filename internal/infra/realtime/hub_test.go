//go:build unit

package realtime_test

import (
	"context"
	"log/slog"
	"testing"

	"floorcheck/internal/domain/floor"
	"floorcheck/internal/infra/realtime"
	"floorcheck/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHub() *realtime.Hub {
	return realtime.NewHub(slog.New(slog.DiscardHandler))
}

func snapshotWithVersion(v int64) floor.Snapshot {
	return builder.NewFloorBuilder().WithVersion(v).BuildSnapshot()
}

func TestHubPublish(t *testing.T) {
	t.Run("delivers to every subscriber of the floor", func(t *testing.T) {
		hub := newHub()
		defer hub.Close()

		ch1, cancel1 := hub.Subscribe("1")
		defer cancel1()
		ch2, cancel2 := hub.Subscribe("1")
		defer cancel2()
		other, cancelOther := hub.Subscribe("2")
		defer cancelOther()

		snap := snapshotWithVersion(3)
		hub.Publish(context.Background(), snap)

		assert.Equal(t, snap, <-ch1)
		assert.Equal(t, snap, <-ch2)
		assert.Empty(t, other, "different floor must not receive the snapshot")
	})

	t.Run("slow subscriber loses the oldest snapshot, never the newest", func(t *testing.T) {
		hub := newHub()
		defer hub.Close()

		ch, cancel := hub.Subscribe("1")
		defer cancel()

		var last int64
		for v := int64(1); v <= 12; v++ {
			hub.Publish(context.Background(), snapshotWithVersion(v))
			last = v
		}

		var received []int64
		for len(ch) > 0 {
			received = append(received, (<-ch).Version)
		}
		require.NotEmpty(t, received)
		assert.Equal(t, last, received[len(received)-1], "newest snapshot must survive the overflow")
	})

	t.Run("publish with no subscribers is a no-op", func(t *testing.T) {
		hub := newHub()
		defer hub.Close()
		hub.Publish(context.Background(), snapshotWithVersion(1))
	})
}

func TestHubSubscriptionLifecycle(t *testing.T) {
	t.Run("cancel closes the channel and stops deliveries", func(t *testing.T) {
		hub := newHub()
		defer hub.Close()

		ch, cancel := hub.Subscribe("1")
		require.Equal(t, 1, hub.SubscriberCount("1"))

		cancel()
		assert.Zero(t, hub.SubscriberCount("1"))

		_, open := <-ch
		assert.False(t, open)

		hub.Publish(context.Background(), snapshotWithVersion(1))
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		hub := newHub()
		defer hub.Close()

		_, cancel := hub.Subscribe("1")
		cancel()
		cancel()
	})

	t.Run("cancel after Close does not panic", func(t *testing.T) {
		hub := newHub()

		ch, cancel := hub.Subscribe("1")
		hub.Close()

		_, open := <-ch
		assert.False(t, open)
		cancel()
	})

	t.Run("subscribe after Close yields a closed channel", func(t *testing.T) {
		hub := newHub()
		hub.Close()

		ch, cancel := hub.Subscribe("1")
		_, open := <-ch
		assert.False(t, open)
		cancel()
	})

	t.Run("close is idempotent", func(t *testing.T) {
		hub := newHub()
		hub.Close()
		hub.Close()
	})
}
