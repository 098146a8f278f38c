package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/billingup/billingup-backend/internal/apperrors"
	portssvc "github.com/billingup/billingup-backend/internal/core/ports/services"
	"github.com/billingup/billingup-backend/internal/dto"
	"github.com/billingup/billingup-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adjustmentHandler handles HTTP requests for party balance adjustments.
type adjustmentHandler struct {
	adjustmentService portssvc.AdjustmentSvcFacade
}

func newAdjustmentHandler(as portssvc.AdjustmentSvcFacade) *adjustmentHandler {
	return &adjustmentHandler{
		adjustmentService: as,
	}
}

// registerAdjustmentRoutes nests adjustment routes under a party.
func registerAdjustmentRoutes(parties *gin.RouterGroup, adjustmentService portssvc.AdjustmentSvcFacade) {
	h := newAdjustmentHandler(adjustmentService)

	adjustments := parties.Group("/:partyID/adjustments")
	{
		adjustments.POST("", h.createAdjustment)
		adjustments.GET("", h.listAdjustments)
	}
}

// createAdjustment godoc
// @Summary Record a balance adjustment
// @Description Sets a party's opening or current balance to a new value and records the correction. Adjustments are append-only.
// @Tags adjustments
// @Accept json
// @Produce json
// @Param partyID path string true "Party ID"
// @Param adjustment body dto.CreateAdjustmentRequest true "Adjustment details"
// @Success 201 {object} dto.AdjustmentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 500 {object} map[string]string "Failed to record adjustment"
// @Security BearerAuth
// @Router /parties/{partyID}/adjustments [post]
func (h *adjustmentHandler) createAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("partyID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	adjustment, err := h.adjustmentService.CreateAdjustment(c.Request.Context(), partyID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Party not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to record adjustment in service", slog.String("error", err.Error()), slog.String("party_id", partyID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record adjustment"})
		}
		return
	}

	logger.Info("Balance adjustment recorded",
		slog.String("party_id", partyID),
		slog.String("adjustment_id", adjustment.AdjustmentID),
		slog.String("adjustment_type", string(adjustment.AdjustmentType)))
	c.JSON(http.StatusCreated, dto.ToAdjustmentResponse(adjustment))
}

// listAdjustments godoc
// @Summary List balance adjustments for a party
// @Description Retrieves a party's adjustment history, newest first
// @Tags adjustments
// @Produce json
// @Param partyID path string true "Party ID"
// @Success 200 {array} dto.AdjustmentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 500 {object} map[string]string "Failed to list adjustments"
// @Security BearerAuth
// @Router /parties/{partyID}/adjustments [get]
func (h *adjustmentHandler) listAdjustments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("partyID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	adjustments, err := h.adjustmentService.ListAdjustments(c.Request.Context(), partyID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Party not found"})
		} else {
			logger.Error("Failed to list adjustments from service", slog.String("error", err.Error()), slog.String("party_id", partyID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list adjustments"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAdjustmentResponses(adjustments))
}
