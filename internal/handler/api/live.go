package api

import (
	"log/slog"
	"net/http"
	"time"

	"floorcheck/internal/domain/floor"
	"floorcheck/internal/infra/realtime"
	"floorcheck/internal/pkg/errs"
	"floorcheck/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(_ *http.Request) bool {
		// Cross-origin dashboards are expected; the stream is read-only.
		return true
	},
}

type LiveHandler struct {
	hub          *realtime.Hub
	floorQueries queries.FloorQueries
	logger       *slog.Logger
}

func NewLiveHandler(hub *realtime.Hub, floorQueries queries.FloorQueries, logger *slog.Logger) *LiveHandler {
	return &LiveHandler{
		hub:          hub,
		floorQueries: floorQueries,
		logger:       logger,
	}
}

// Stream upgrades to a websocket and pushes full floor snapshots: the
// current one immediately, then one per committed change until the client
// disconnects.
func (h *LiveHandler) Stream(c *gin.Context) {
	floorID := c.Param("id")

	snap, err := h.floorQueries.GetFloor(c.Request.Context(), floorID)
	if err != nil {
		if errs.Is(err, queries.ErrFloorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Floor not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.logger.Warn("websocket upgrade failed",
			"floor_id", floorID, "error", err.Error())
		return
	}

	updates, cancel := h.hub.Subscribe(floorID)

	// Read pump: the client never sends data; reads only surface close.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		cancel()
		if err := conn.Close(); err != nil {
			h.logger.Debug("websocket close", "error", err.Error())
		}
	}()

	if err := h.writeSnapshot(conn, snap); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case next, ok := <-updates:
			if !ok {
				return
			}
			if err := h.writeSnapshot(conn, next); err != nil {
				h.logger.Debug("live subscriber dropped",
					"floor_id", floorID, "error", err.Error())
				return
			}
		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *LiveHandler) writeSnapshot(conn *websocket.Conn, snap floor.Snapshot) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(snap)
}
