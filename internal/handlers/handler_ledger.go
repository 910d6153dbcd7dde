package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/kennethjason07/school_management_app/internal/core/ports/services"
	"github.com/kennethjason07/school_management_app/internal/dto"
	"github.com/kennethjason07/school_management_app/internal/middleware"
)

// ledgerHandler serves what a student owes and has paid.
type ledgerHandler struct {
	ledgerService     portssvc.LedgerSvcFacade
	statisticsService portssvc.StatisticsSvc
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade, ss portssvc.StatisticsSvc) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls, statisticsService: ss}
}

func registerLedgerRoutes(students *gin.RouterGroup, ls portssvc.LedgerSvcFacade, ss portssvc.StatisticsSvc) {
	h := newLedgerHandler(ls, ss)

	students.GET("/fees", h.getStudentLedger)
	students.GET("/fees/pending", h.listPendingFees)
	students.GET("/fees/:feeID", h.getLedgerEntry)
	students.GET("/balance", h.getStudentBalance)
}

// getStudentLedger godoc
// @Summary Get the fee ledger of a student
// @Description Lists every fee item of the student's class with amount paid and status. Items never paid towards are reported as unpaid.
// @Tags ledger
// @Produce  json
// @Param   studentID path string true "Student ID"
// @Success 200 {object} dto.StudentLedgerResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Student not found"
// @Failure 503 {object} map[string]string "Stored dates could not be repaired"
// @Failure 500 {object} map[string]string "Failed to load ledger"
// @Security BearerAuth
// @Router /students/{studentID}/fees [get]
func (h *ledgerHandler) getStudentLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("student_id", c.Param("studentID")))

	ledger, err := h.ledgerService.Summary(c.Request.Context(), c.Param("studentID"))
	if err != nil {
		respondError(c, logger, err, "Failed to load ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToStudentLedgerResponse(ledger))
}

// listPendingFees godoc
// @Summary List the pending fees of a student
// @Description Lists the fee items still unpaid or partially paid
// @Tags ledger
// @Produce  json
// @Param   studentID path string true "Student ID"
// @Success 200 {array} dto.LedgerEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Student not found"
// @Failure 500 {object} map[string]string "Failed to load pending fees"
// @Security BearerAuth
// @Router /students/{studentID}/fees/pending [get]
func (h *ledgerHandler) listPendingFees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("student_id", c.Param("studentID")))

	entries, err := h.ledgerService.PendingFeesFor(c.Request.Context(), c.Param("studentID"))
	if err != nil {
		respondError(c, logger, err, "Failed to load pending fees")
		return
	}

	c.JSON(http.StatusOK, dto.ToListLedgerEntryResponse(entries))
}

// getLedgerEntry godoc
// @Summary Get one fee item of a student
// @Description Returns the fee item with the student's amount paid and status. An item never paid towards is reported as unpaid.
// @Tags ledger
// @Produce  json
// @Param   studentID path string true "Student ID"
// @Param   feeID path string true "Fee structure ID"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Student or fee item not found"
// @Failure 500 {object} map[string]string "Failed to load ledger entry"
// @Security BearerAuth
// @Router /students/{studentID}/fees/{feeID} [get]
func (h *ledgerHandler) getLedgerEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(
		slog.String("student_id", c.Param("studentID")),
		slog.String("fee_id", c.Param("feeID")))

	entry, err := h.ledgerService.GetEntry(c.Request.Context(), c.Param("studentID"), c.Param("feeID"))
	if err != nil {
		respondError(c, logger, err, "Failed to load ledger entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(*entry))
}

// getStudentBalance godoc
// @Summary Get the balance of a student
// @Tags ledger
// @Produce  json
// @Param   studentID path string true "Student ID"
// @Success 200 {object} dto.StudentBalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Student not found"
// @Failure 500 {object} map[string]string "Failed to compute balance"
// @Security BearerAuth
// @Router /students/{studentID}/balance [get]
func (h *ledgerHandler) getStudentBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("student_id", c.Param("studentID")))

	balance, err := h.statisticsService.StudentBalance(c.Request.Context(), c.Param("studentID"))
	if err != nil {
		respondError(c, logger, err, "Failed to compute balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToStudentBalanceResponse(*balance))
}
