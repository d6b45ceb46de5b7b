package liveview

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"floorcheck/internal/domain/floor"
	"floorcheck/internal/pkg/errs"
)

const (
	dialTimeout    = 10 * time.Second
	reconnectBase  = time.Second
	reconnectMax   = 30 * time.Second
	pongWait       = 60 * time.Second
	sourceChanSize = 4
)

// WSSource streams snapshots from a floor's live endpoint over a
// websocket. Connection loss is reported on Errs and followed by
// reconnect attempts with backoff; the stream only ends on Close.
type WSSource struct {
	url    string
	logger *slog.Logger

	snapshots chan floor.Snapshot
	errCh     chan error

	cancel    context.CancelFunc
	done      chan struct{}
	closeOnce sync.Once
}

func NewWSSource(url string, logger *slog.Logger) *WSSource {
	ctx, cancel := context.WithCancel(context.Background())
	s := &WSSource{
		url:       url,
		logger:    logger,
		snapshots: make(chan floor.Snapshot, sourceChanSize),
		errCh:     make(chan error, 1),
		cancel:    cancel,
		done:      make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *WSSource) Snapshots() <-chan floor.Snapshot { return s.snapshots }
func (s *WSSource) Errs() <-chan error               { return s.errCh }

func (s *WSSource) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.done
	})
	return nil
}

func (s *WSSource) run(ctx context.Context) {
	defer close(s.done)
	defer close(s.snapshots)
	defer close(s.errCh)

	backoff := reconnectBase
	for {
		conn, err := s.dial(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			s.report(errs.Wrap(err, "dial live endpoint"))
			if !s.sleep(ctx, backoff) {
				return
			}
			backoff = min(backoff*2, reconnectMax)
			continue
		}
		backoff = reconnectBase

		err = s.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			s.report(errs.Wrap(err, "live stream interrupted"))
		}
		if !s.sleep(ctx, backoff) {
			return
		}
	}
}

func (s *WSSource) dial(ctx context.Context) (*websocket.Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, s.url, nil)
	return conn, err
}

func (s *WSSource) consume(ctx context.Context, conn *websocket.Conn) error {
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(data string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(10*time.Second))
	})

	// Unblock ReadJSON when the context is canceled.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-stop:
		}
	}()

	for {
		var snap floor.Snapshot
		if err := conn.ReadJSON(&snap); err != nil {
			return err
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		select {
		case s.snapshots <- snap:
		case <-ctx.Done():
			return nil
		}
	}
}

// report delivers an error without blocking; one pending error is
// enough for a consumer that only needs to know the stream degraded.
func (s *WSSource) report(err error) {
	select {
	case s.errCh <- err:
	default:
		s.logger.Debug("dropping live source error", "error", err.Error())
	}
}

func (s *WSSource) sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
