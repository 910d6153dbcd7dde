package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/kennethjason07/school_management_app/internal/core/ports/services"
	"github.com/kennethjason07/school_management_app/internal/dto"
	"github.com/kennethjason07/school_management_app/internal/middleware"
)

type statisticsHandler struct {
	statisticsService portssvc.StatisticsSvc
}

func newStatisticsHandler(ss portssvc.StatisticsSvc) *statisticsHandler {
	return &statisticsHandler{statisticsService: ss}
}

func registerStatisticsRoutes(rg *gin.RouterGroup, ss portssvc.StatisticsSvc) {
	h := newStatisticsHandler(ss)

	rg.GET("/statistics/fees", h.getFeeSnapshot)
	rg.GET("/classes/:classID/balances", h.listClassBalances)
}

// getFeeSnapshot godoc
// @Summary Institution-wide fee summary
// @Description Total due across all fee items, total paid, and the number of students with an unpaid or partially paid record
// @Tags statistics
// @Produce  json
// @Success 200 {object} dto.FeeSnapshotResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute fee statistics"
// @Security BearerAuth
// @Router /statistics/fees [get]
func (h *statisticsHandler) getFeeSnapshot(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	snapshot, err := h.statisticsService.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to compute fee statistics")
		return
	}

	c.JSON(http.StatusOK, dto.ToFeeSnapshotResponse(snapshot))
}

// listClassBalances godoc
// @Summary Balances of every student of a class
// @Tags statistics
// @Produce  json
// @Param   classID path string true "Class ID"
// @Success 200 {object} dto.ClassBalancesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Class not found"
// @Failure 500 {object} map[string]string "Failed to compute class balances"
// @Security BearerAuth
// @Router /classes/{classID}/balances [get]
func (h *statisticsHandler) listClassBalances(c *gin.Context) {
	classID := c.Param("classID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("class_id", classID))

	balances, err := h.statisticsService.ClassBalances(c.Request.Context(), classID)
	if err != nil {
		respondError(c, logger, err, "Failed to compute class balances")
		return
	}

	c.JSON(http.StatusOK, dto.ToClassBalancesResponse(classID, balances))
}
