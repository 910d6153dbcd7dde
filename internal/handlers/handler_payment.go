package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/kennethjason07/school_management_app/internal/core/ports/services"
	"github.com/kennethjason07/school_management_app/internal/dto"
	"github.com/kennethjason07/school_management_app/internal/middleware"
)

type paymentHandler struct {
	paymentService portssvc.PaymentSvc
}

func newPaymentHandler(ps portssvc.PaymentSvc) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers the payment route. Extra handlers, such as
// a rate limiter, run before it.
func registerPaymentRoutes(students *gin.RouterGroup, ps portssvc.PaymentSvc, before ...gin.HandlerFunc) {
	h := newPaymentHandler(ps)

	students.POST("/payments", append(before, h.applyPayment)...)
}

// applyPayment godoc
// @Summary Record a payment
// @Description Adds the amount to what the student has paid for the fee item and re-derives its status. On 504 the payment may or may not have been recorded: re-read the ledger before retrying.
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   studentID path string true "Student ID"
// @Param   payment body dto.ApplyPaymentRequest true "Payment"
// @Success 200 {object} dto.StudentFeeResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Student or fee item not found"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 504 {object} map[string]string "Outcome unknown"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /students/{studentID}/payments [post]
func (h *paymentHandler) applyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	studentID := c.Param("studentID")

	var req dto.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("student_id", studentID), slog.String("fee_id", req.FeeID))
	logger.Info("Received payment", slog.String("amount", req.Amount.String()), slog.String("payment_date", req.PaymentDate))

	rec, err := h.paymentService.ApplyPayment(c.Request.Context(), studentID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToStudentFeeResponse(rec))
}
