package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kennethjason07/school_management_app/internal/apperrors"
	portssvc "github.com/kennethjason07/school_management_app/internal/core/ports/services"
	"github.com/kennethjason07/school_management_app/internal/dto"
	"github.com/kennethjason07/school_management_app/internal/middleware"
)

type maintenanceHandler struct {
	dateIntegrityService portssvc.DateIntegritySvcFacade
}

func newMaintenanceHandler(ds portssvc.DateIntegritySvcFacade) *maintenanceHandler {
	return &maintenanceHandler{dateIntegrityService: ds}
}

func registerMaintenanceRoutes(rg *gin.RouterGroup, ds portssvc.DateIntegritySvcFacade) {
	h := newMaintenanceHandler(ds)

	maintenance := rg.Group("/maintenance")
	maintenance.POST("/date-repair", h.repairDates)
}

// repairDates godoc
// @Summary Repair out-of-range stored dates
// @Description Clamps stored dates whose day is past the end of the month (e.g. 2025-07-32) to the last day of that month. Without a body every date column is scanned.
// @Tags maintenance
// @Accept  json
// @Produce  json
// @Param   values body dto.DateRepairRequest false "Raw values to repair"
// @Success 200 {object} dto.DateRepairResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Some dates could not be repaired"
// @Security BearerAuth
// @Router /maintenance/date-repair [post]
func (h *maintenanceHandler) repairDates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DateRepairRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, logger, err)
			return
		}
	}

	if len(req.Values) == 0 {
		result, err := h.dateIntegrityService.RepairAll(c.Request.Context())
		if err != nil {
			var partial *dto.DateRepairResponse
			if result != nil {
				partial = &dto.DateRepairResponse{Scanned: result.Scanned, Repaired: result.Repaired}
			}
			h.respondRepairError(c, logger, err, partial)
			return
		}
		logger.Info("Date repair finished", slog.Int("scanned", result.Scanned), slog.Int("repaired", result.Repaired))
		c.JSON(http.StatusOK, dto.DateRepairResponse{Scanned: result.Scanned, Repaired: result.Repaired})
		return
	}

	values := req.ToDomainRawDateValues()
	repaired, err := h.dateIntegrityService.Repair(c.Request.Context(), values)
	if err != nil {
		h.respondRepairError(c, logger, err, &dto.DateRepairResponse{Scanned: len(values), Repaired: repaired})
		return
	}
	logger.Info("Date repair finished", slog.Int("scanned", len(values)), slog.Int("repaired", repaired))
	c.JSON(http.StatusOK, dto.DateRepairResponse{Scanned: len(values), Repaired: repaired})
}

// respondRepairError reports a failed repair, including how many values
// were rewritten before it failed when that is known.
func (h *maintenanceHandler) respondRepairError(c *gin.Context, logger *slog.Logger, err error, partial *dto.DateRepairResponse) {
	status := statusForError(err)
	logger.Error("Date repair failed", slog.String("error", err.Error()))
	body := gin.H{"error": "Some dates could not be repaired: " + err.Error(), "code": apperrors.Code(err)}
	if partial != nil {
		body["result"] = partial
	}
	c.JSON(status, body)
}
