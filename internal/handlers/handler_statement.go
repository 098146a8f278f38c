package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/billingup/billingup-backend/internal/apperrors"
	portssvc "github.com/billingup/billingup-backend/internal/core/ports/services"
	"github.com/billingup/billingup-backend/internal/dto"
	"github.com/billingup/billingup-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statementHandler handles HTTP requests for party ledger statements.
type statementHandler struct {
	statementService portssvc.StatementSvcFacade
}

func newStatementHandler(ss portssvc.StatementSvcFacade) *statementHandler {
	return &statementHandler{
		statementService: ss,
	}
}

// registerStatementRoutes nests statement routes under a party.
func registerStatementRoutes(parties *gin.RouterGroup, statementService portssvc.StatementSvcFacade) {
	h := newStatementHandler(statementService)

	parties.GET("/:partyID/statement", h.getStatement)
	parties.GET("/:partyID/statement/export", h.exportStatement)
}

// getStatement godoc
// @Summary Get a party's ledger statement
// @Description Replays the party's transactions into a dated statement with running balances. Omitting dateFrom/dateTo leaves that end of the window open.
// @Tags statements
// @Produce json
// @Param partyID path string true "Party ID"
// @Param dateFrom query string false "Start date (YYYY-MM-DD)"
// @Param dateTo query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 500 {object} map[string]string "Failed to build statement"
// @Security BearerAuth
// @Router /parties/{partyID}/statement [get]
func (h *statementHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("partyID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ReportDateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	statement, err := h.statementService.GetPartyStatement(c.Request.Context(), partyID, userID, params.DateFrom, params.DateTo)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Party not found"})
		} else {
			logger.Error("Failed to build statement", slog.String("error", err.Error()), slog.String("party_id", partyID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build statement"})
		}
		return
	}

	c.JSON(http.StatusOK, statement)
}

// exportStatement godoc
// @Summary Export a party's statement as CSV
// @Description Streams the statement as a CSV download with an opening balance line followed by one line per transaction.
// @Tags statements
// @Produce text/csv
// @Param partyID path string true "Party ID"
// @Param dateFrom query string false "Start date (YYYY-MM-DD)"
// @Param dateTo query string false "End date (YYYY-MM-DD)"
// @Success 200 {string} string "CSV statement"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Party not found"
// @Failure 500 {object} map[string]string "Failed to export statement"
// @Security BearerAuth
// @Router /parties/{partyID}/statement/export [get]
func (h *statementHandler) exportStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	partyID := c.Param("partyID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ReportDateRangeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filename := fmt.Sprintf("statement_%s_%s.csv", partyID, time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	err := h.statementService.ExportPartyStatement(c.Request.Context(), partyID, userID, params.DateFrom, params.DateTo, c.Writer)
	if err != nil {
		// Headers may already be written; reset them only if nothing has
		// gone out yet.
		if !c.Writer.Written() {
			c.Header("Content-Type", "application/json")
			c.Header("Content-Disposition", "")
			if errors.Is(err, apperrors.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Party not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export statement"})
			return
		}
		logger.Error("Failed mid-stream while exporting statement", slog.String("error", err.Error()), slog.String("party_id", partyID))
	}
}
