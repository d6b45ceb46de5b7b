package api

import (
	"net/http"
	"strings"

	"floorcheck/internal/domain/floor"
	reqdto "floorcheck/internal/handler/dto/request"
	resdto "floorcheck/internal/handler/dto/response"
	"floorcheck/internal/pkg/errs"
	"floorcheck/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type CheckInHandler struct {
	checkInCommands commands.CheckInCommands
}

func NewCheckInHandler(checkInCommands commands.CheckInCommands) *CheckInHandler {
	return &CheckInHandler{checkInCommands: checkInCommands}
}

// @Summary Check a table in or out
// @Description Validates the shared API key, then toggles the target table's occupancy for the given identity. A uid of "-" checks the table out.
// @Tags checkin
// @Accept json
// @Produce json
// @Param request body reqdto.CheckStatusRequest true "Check-in request"
// @Success 200 {object} resdto.CheckStatusResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} resdto.CheckStatusResponse
// @Failure 500 {object} map[string]string
// @Router /checkin [post]
func (h *CheckInHandler) SetStatus(c *gin.Context) {
	var req reqdto.CheckStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params := commands.CheckStatusParams{
		Auth:        req.Auth,
		UID:         req.UID,
		BearerToken: bearerToken(c),
		Floor:       req.Floor,
		Table:       req.Table,
	}

	result, err := h.checkInCommands.SetStatus(c.Request.Context(), params)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized",
			})
		case errs.Is(err, commands.ErrMissingIdentity):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Missing identity",
			})
		case errs.Is(err, commands.ErrBadTableReference):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Malformed table reference",
			})
		case errs.Is(err, commands.ErrFloorNotFound), errs.Is(err, commands.ErrTableNotFound):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "No such floor or table",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	// Conflict and TableTaken keep the legacy 401-with-body shape so old
	// readers can still tell "held by someone else" (delay -1) from "you
	// are seated elsewhere" (delay 0).
	status := http.StatusOK
	if result.Outcome == floor.OutcomeConflict || result.Outcome == floor.OutcomeTableTaken {
		status = http.StatusUnauthorized
	}
	c.JSON(status, resdto.FromCheckResult(result))
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}
