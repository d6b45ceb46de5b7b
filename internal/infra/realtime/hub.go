// Package realtime is the push channel between the map store and live
// viewers: an in-process hub of per-floor subscriptions, optionally bridged
// across instances over Redis pub/sub.
package realtime

import (
	"context"
	"log/slog"
	"sync"

	"floorcheck/internal/domain/floor"

	"github.com/google/uuid"
)

// subscriber channels are buffered; when a slow consumer falls behind the
// oldest snapshot is dropped, never the newest. Viewers reconcile from full
// snapshots, so skipping an intermediate one loses nothing.
const subscriberBuffer = 8

type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[uuid.UUID]chan floor.Snapshot
	closed bool
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subs:   make(map[string]map[uuid.UUID]chan floor.Snapshot),
		logger: logger,
	}
}

// Subscribe registers interest in one floor's snapshots. The returned cancel
// func is idempotent, closes the channel, and guarantees no deliveries after
// it returns.
func (h *Hub) Subscribe(floorID string) (<-chan floor.Snapshot, func()) {
	ch := make(chan floor.Snapshot, subscriberBuffer)
	id := uuid.New()

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	if h.subs[floorID] == nil {
		h.subs[floorID] = make(map[uuid.UUID]chan floor.Snapshot)
	}
	h.subs[floorID][id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		removed := false
		if subs, ok := h.subs[floorID]; ok {
			if _, ok := subs[id]; ok {
				delete(subs, id)
				removed = true
			}
			if len(subs) == 0 {
				delete(h.subs, floorID)
			}
		}
		h.mu.Unlock()
		// Close only on the call that actually removed the entry, so cancel
		// stays idempotent and safe after Hub.Close.
		if removed {
			close(ch)
		}
	}
	return ch, cancel
}

// Publish delivers the snapshot to every subscriber of its floor.
func (h *Hub) Publish(_ context.Context, snap floor.Snapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		return
	}

	for _, ch := range h.subs[snap.FloorID] {
		select {
		case ch <- snap:
		default:
			// Full buffer: make room by discarding the oldest snapshot.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
			h.logger.Warn("slow live subscriber, dropped stale snapshot",
				"floor_id", snap.FloorID)
		}
	}
}

// SubscriberCount reports active subscriptions for one floor.
func (h *Hub) SubscriberCount(floorID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[floorID])
}

// Close drops all subscriptions. Cancel funcs handed out earlier stay safe
// to call.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for floorID, subs := range h.subs {
		for id, ch := range subs {
			close(ch)
			delete(subs, id)
		}
		delete(h.subs, floorID)
	}
}
