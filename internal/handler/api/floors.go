package api

import (
	"net/http"

	reqdto "floorcheck/internal/handler/dto/request"
	"floorcheck/internal/pkg/errs"
	"floorcheck/internal/usecase/commands"
	"floorcheck/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type FloorHandler struct {
	floorQueries   queries.FloorQueries
	layoutCommands commands.LayoutCommands
}

func NewFloorHandler(floorQueries queries.FloorQueries, layoutCommands commands.LayoutCommands) *FloorHandler {
	return &FloorHandler{
		floorQueries:   floorQueries,
		layoutCommands: layoutCommands,
	}
}

// @Summary List floors
// @Description Overview of every floor: table counts and occupancy totals
// @Tags floors
// @Produce json
// @Success 200 {array} queries.FloorOverview
// @Failure 500 {object} map[string]string
// @Router /floors [get]
func (h *FloorHandler) List(c *gin.Context) {
	overviews, err := h.floorQueries.ListFloors(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, overviews)
}

// @Summary Get floor snapshot
// @Description Full floor document for a dashboard's first render
// @Tags floors
// @Produce json
// @Param id path string true "Floor key"
// @Success 200 {object} floor.Snapshot
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /floors/{id} [get]
func (h *FloorHandler) Get(c *gin.Context) {
	snap, err := h.floorQueries.GetFloor(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrFloorNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Floor not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary Replace floor layout
// @Description Map-authoring write: replaces the whole floor document
// @Tags floors
// @Accept json
// @Produce json
// @Param id path string true "Floor key"
// @Param request body reqdto.ReplaceLayoutRequest true "Layout"
// @Success 200 {object} floor.Snapshot
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /floors/{id}/layout [put]
func (h *FloorHandler) ReplaceLayout(c *gin.Context) {
	var req reqdto.ReplaceLayoutRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	markers := make([]commands.MarkerParams, len(req.Markers))
	for i, m := range req.Markers {
		markers[i] = commands.MarkerParams{ID: m.ID, X: m.X, Y: m.Y, Kind: m.Kind}
	}

	snap, err := h.layoutCommands.ReplaceLayout(c.Request.Context(), commands.ReplaceLayoutParams{
		Auth:     req.Auth,
		FloorID:  c.Param("id"),
		ImageURL: req.ImageURL,
		Markers:  markers,
	})
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
		case errs.Is(err, commands.ErrInvalidLayout):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid floor layout",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.JSON(http.StatusOK, snap)
}
