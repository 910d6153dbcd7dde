package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/kennethjason07/school_management_app/internal/core/ports/services"
	"github.com/kennethjason07/school_management_app/internal/dto"
	"github.com/kennethjason07/school_management_app/internal/middleware"
)

// feeStructureHandler handles HTTP requests for class fee catalogs.
type feeStructureHandler struct {
	feeStructureService portssvc.FeeStructureSvcFacade
}

func newFeeStructureHandler(fs portssvc.FeeStructureSvcFacade) *feeStructureHandler {
	return &feeStructureHandler{feeStructureService: fs}
}

// registerFeeStructureRoutes registers the class catalog routes and the
// item routes addressed by fee id.
func registerFeeStructureRoutes(rg *gin.RouterGroup, fs portssvc.FeeStructureSvcFacade) {
	h := newFeeStructureHandler(fs)

	classFees := rg.Group("/classes/:classID/fee-structures")
	{
		classFees.GET("", h.listClassFeeStructures)
		classFees.POST("", h.createFeeStructure)
	}

	fees := rg.Group("/fee-structures")
	{
		fees.GET("", h.listFeeStructures)
		fees.GET("/:feeID", h.getFeeStructure)
		fees.PATCH("/:feeID", h.updateFeeStructure)
		fees.DELETE("/:feeID", h.deleteFeeStructure)
	}
}

// listClassFeeStructures godoc
// @Summary List the fee catalog of a class
// @Description Retrieves every fee item of a class ordered by due date
// @Tags fee-structures
// @Produce  json
// @Param   classID path string true "Class ID"
// @Success 200 {array} dto.FeeStructureResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Stored dates could not be repaired"
// @Failure 500 {object} map[string]string "Failed to list fee structures"
// @Security BearerAuth
// @Router /classes/{classID}/fee-structures [get]
func (h *feeStructureHandler) listClassFeeStructures(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	classID := c.Param("classID")
	logger = logger.With(slog.String("class_id", classID))

	fees, err := h.feeStructureService.ListByClass(c.Request.Context(), classID)
	if err != nil {
		respondError(c, logger, err, "Failed to list fee structures")
		return
	}

	c.JSON(http.StatusOK, dto.ToListFeeStructureResponse(fees))
}

// createFeeStructure godoc
// @Summary Add a fee item to a class catalog
// @Description Creates a fee item. The amount must be positive and the due date a real calendar day.
// @Tags fee-structures
// @Accept  json
// @Produce  json
// @Param   classID path string true "Class ID"
// @Param   fee body dto.CreateFeeStructureRequest true "Fee item"
// @Success 201 {object} dto.FeeStructureResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Class not found"
// @Failure 500 {object} map[string]string "Failed to create fee structure"
// @Security BearerAuth
// @Router /classes/{classID}/fee-structures [post]
func (h *feeStructureHandler) createFeeStructure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	classID := c.Param("classID")

	var req dto.CreateFeeStructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("class_id", classID))
	logger.Info("Received request to create fee structure", slog.String("fee_type", req.FeeType), slog.String("amount", req.Amount.String()))

	fee, err := h.feeStructureService.CreateFeeStructure(c.Request.Context(), classID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create fee structure")
		return
	}

	logger.Info("Fee structure created", slog.String("fee_id", fee.FeeID))
	c.JSON(http.StatusCreated, dto.ToFeeStructureResponse(fee))
}

// listFeeStructures godoc
// @Summary List every fee catalog
// @Description Retrieves all fee items grouped by class
// @Tags fee-structures
// @Produce  json
// @Success 200 {array} dto.ClassFeeCatalogResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list fee structures"
// @Security BearerAuth
// @Router /fee-structures [get]
func (h *feeStructureHandler) listFeeStructures(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fees, err := h.feeStructureService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list fee structures")
		return
	}

	c.JSON(http.StatusOK, dto.ToClassFeeCatalogResponses(fees))
}

// getFeeStructure godoc
// @Summary Get a fee item
// @Tags fee-structures
// @Produce  json
// @Param   feeID path string true "Fee ID"
// @Success 200 {object} dto.FeeStructureResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Fee structure not found"
// @Failure 500 {object} map[string]string "Failed to retrieve fee structure"
// @Security BearerAuth
// @Router /fee-structures/{feeID} [get]
func (h *feeStructureHandler) getFeeStructure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("fee_id", c.Param("feeID")))

	fee, err := h.feeStructureService.GetFeeStructure(c.Request.Context(), c.Param("feeID"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve fee structure")
		return
	}

	c.JSON(http.StatusOK, dto.ToFeeStructureResponse(fee))
}

// updateFeeStructure godoc
// @Summary Update a fee item
// @Description Changes any of fee type, amount, due date and description. Omitted fields are kept.
// @Tags fee-structures
// @Accept  json
// @Produce  json
// @Param   feeID path string true "Fee ID"
// @Param   fee body dto.UpdateFeeStructureRequest true "Fields to change"
// @Success 200 {object} dto.FeeStructureResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Fee structure not found"
// @Failure 500 {object} map[string]string "Failed to update fee structure"
// @Security BearerAuth
// @Router /fee-structures/{feeID} [patch]
func (h *feeStructureHandler) updateFeeStructure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	feeID := c.Param("feeID")

	var req dto.UpdateFeeStructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("fee_id", feeID))
	fee, err := h.feeStructureService.UpdateFeeStructure(c.Request.Context(), feeID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update fee structure")
		return
	}

	logger.Info("Fee structure updated")
	c.JSON(http.StatusOK, dto.ToFeeStructureResponse(fee))
}

// deleteFeeStructure godoc
// @Summary Delete a fee item
// @Description Deletes a fee item that no student has paid towards
// @Tags fee-structures
// @Param   feeID path string true "Fee ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Fee structure not found"
// @Failure 409 {object} map[string]string "Payments exist for this fee item"
// @Failure 500 {object} map[string]string "Failed to delete fee structure"
// @Security BearerAuth
// @Router /fee-structures/{feeID} [delete]
func (h *feeStructureHandler) deleteFeeStructure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	feeID := c.Param("feeID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.String("fee_id", feeID))
	if err := h.feeStructureService.DeleteFeeStructure(c.Request.Context(), feeID, userID); err != nil {
		respondError(c, logger, err, "Failed to delete fee structure")
		return
	}

	logger.Info("Fee structure deleted")
	c.Status(http.StatusNoContent)
}
