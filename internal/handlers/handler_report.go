package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gestium/biz_reporting_app/internal/apperrors"
	portssvc "github.com/gestium/biz_reporting_app/internal/core/ports/services"
	"github.com/gestium/biz_reporting_app/internal/dto"
	"github.com/gestium/biz_reporting_app/internal/middleware"
	"github.com/gestium/biz_reporting_app/internal/utils/timebucket"
	"github.com/gin-gonic/gin"
)

// incomeHandler handles HTTP requests for the bucketed income reports
type incomeHandler struct {
	reportingService portssvc.ReportingSvc
}

// newIncomeHandler creates a new incomeHandler
func newIncomeHandler(rs portssvc.ReportingSvc) *incomeHandler {
	return &incomeHandler{
		reportingService: rs,
	}
}

// registerIncomeRoutes registers routes related to income time series
func registerIncomeRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newIncomeHandler(reportingService)

	incomesGroup := rg.Group("/incomes")
	{
		incomesGroup.GET("/sales/:mode", h.getSalesByMode)
		incomesGroup.GET("/last-7-days/:businessId", h.getLastSevenDays)
	}
}

// getSalesByMode godoc
// @Summary Generate bucketed sales report
// @Description Aggregates income totals into week, month or year buckets anchored to now
// @Tags incomes
// @Produce json
// @Param mode path string true "Bucket mode" Enums(week, month, year)
// @Success 200 {object} dto.SalesSeriesResponse
// @Failure 400 {object} map[string]string "Invalid mode"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /report/incomes/sales/{mode} [get]
func (h *incomeHandler) getSalesByMode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	modeStr := c.Param("mode")
	mode, err := timebucket.ParseMode(modeStr)
	if err != nil {
		logger.Warn("Invalid bucket mode", slog.String("mode", modeStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mode. Use week, month or year"})
		return
	}

	logger = logger.With(slog.String("mode", modeStr))
	logger.Info("Received request to generate bucketed sales report")

	buckets, err := h.reportingService.SalesByMode(c.Request.Context(), actor, mode)
	if err != nil {
		handleReportError(c, logger, err, "sales")
		return
	}

	logger.Info("Bucketed sales report generated successfully", slog.Int("bucket_count", len(buckets)))
	c.JSON(http.StatusOK, dto.ToSalesSeriesResponse(modeStr, buckets))
}

// getLastSevenDays godoc
// @Summary Generate last seven days income report
// @Description Returns one income entry per day for the last seven days, oldest first
// @Tags incomes
// @Produce json
// @Param businessId path string true "Business ID"
// @Success 200 {array} domain.TimeBucket
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Business not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /report/incomes/last-7-days/{businessId} [get]
func (h *incomeHandler) getLastSevenDays(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	businessID := c.Param("businessId")
	if businessID == "" {
		logger.Error("Business ID missing from path for getLastSevenDays")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Business ID required in path"})
		return
	}

	logger = logger.With(slog.String("target_business_id", businessID))
	logger.Info("Received request to generate last seven days report")

	days, err := h.reportingService.LastSevenDays(c.Request.Context(), actor, businessID)
	if err != nil {
		handleReportError(c, logger, err, "last seven days")
		return
	}

	logger.Info("Last seven days report generated successfully")
	c.JSON(http.StatusOK, days)
}

// handleReportError maps service errors to HTTP responses. All report
// handlers share the same sentinel set.
func handleReportError(c *gin.Context, logger *slog.Logger, err error, report string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Invalid input for "+report+" report", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Actor forbidden to access " + report + " report")
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this report"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found for "+report+" report", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, apperrors.ErrNoMainCurrency), errors.Is(err, apperrors.ErrCurrencyNotAvailable):
		logger.Error("Currency catalog misconfigured", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to generate "+report+" report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate " + report + " report"})
	}
}
