package liveview

import (
	"context"
	"log/slog"
	"sync"

	"floorcheck/internal/domain/floor"
)

// Renderer is the rendering call site: it is told about one marker at a
// time, never asked to redraw the whole view.
type Renderer interface {
	MarkerChanged(markerID int, occupied bool)
}

// Source delivers pushed floor snapshots. Snapshots() closing ends the
// subscription; Errs() carries non-fatal delivery problems.
type Source interface {
	Snapshots() <-chan floor.Snapshot
	Errs() <-chan error
	Close() error
}

// Viewer consumes a Source and drives a Renderer with minimal updates. A
// push error degrades gracefully: the last-known state stays on screen and
// consumption continues.
type Viewer struct {
	source   Source
	renderer Renderer
	logger   *slog.Logger

	mu   sync.Mutex
	last floor.Snapshot
	seen bool

	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

func NewViewer(source Source, renderer Renderer, logger *slog.Logger) *Viewer {
	return &Viewer{
		source:   source,
		renderer: renderer,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Run consumes snapshots until the source closes, ctx is canceled, or
// Close is called. No renderer callback fires after Run returns.
func (v *Viewer) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	v.mu.Lock()
	v.cancel = cancel
	v.mu.Unlock()

	defer close(v.done)
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case snap, ok := <-v.source.Snapshots():
			if !ok {
				return nil
			}
			v.apply(snap)
		case err, ok := <-v.source.Errs():
			if !ok {
				return nil
			}
			// Keep rendering from last-known state; the stream may recover.
			v.logger.Warn("live view update error, keeping last-known state",
				"error", err.Error())
		}
	}
}

func (v *Viewer) apply(snap floor.Snapshot) {
	v.mu.Lock()
	// Out-of-order delivery: a snapshot older than what is on screen must
	// not repaint the view backwards.
	if v.seen && snap.Version < v.last.Version {
		v.mu.Unlock()
		return
	}
	var prev []floor.Marker
	if v.seen {
		prev = v.last.Markers
		if prev == nil {
			prev = []floor.Marker{}
		}
	}
	changes := Reconcile(prev, snap.Markers)
	v.last = snap
	v.seen = true
	v.mu.Unlock()

	for _, ch := range changes {
		v.renderer.MarkerChanged(ch.MarkerID, ch.Occupied)
	}
}

// LastKnown returns the most recent snapshot, if any arrived yet.
func (v *Viewer) LastKnown() (floor.Snapshot, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.last, v.seen
}

// Close tears the subscription down and waits for Run to finish, so no
// renderer callback can fire once Close returns.
func (v *Viewer) Close() error {
	var err error
	v.closeOnce.Do(func() {
		v.mu.Lock()
		cancel := v.cancel
		v.mu.Unlock()
		if cancel != nil {
			cancel()
		}
		err = v.source.Close()
		if cancel != nil {
			<-v.done
		}
	})
	return err
}
