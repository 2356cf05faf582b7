package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/gestium/biz_reporting_app/internal/core/ports/services"
	"github.com/gestium/biz_reporting_app/internal/dto"
	"github.com/gestium/biz_reporting_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// stockHandler handles HTTP requests for inventory reports
type stockHandler struct {
	reportingService portssvc.ReportingSvc
}

// newStockHandler creates a new stockHandler
func newStockHandler(rs portssvc.ReportingSvc) *stockHandler {
	return &stockHandler{
		reportingService: rs,
	}
}

// registerStockRoutes registers routes related to inventory reports
func registerStockRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newStockHandler(reportingService)

	stockGroup := rg.Group("/stock")
	{
		stockGroup.GET("/inventory/:areaId", h.getStockInventory)
		stockGroup.GET("/disponibility", h.getStockDisponibility)
		stockGroup.GET("/period-inventory/:areaId", h.getPeriodInventory)
	}
}

// getStockInventory godoc
// @Summary Reconcile the inventory of an area
// @Description Reconciles every stock product of the area since its opening snapshot
// @Tags stock
// @Produce json
// @Param areaId path string true "Area ID"
// @Success 200 {object} domain.AreaStockReport
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Area not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /report/stock/inventory/{areaId} [get]
func (h *stockHandler) getStockInventory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	areaID := c.Param("areaId")
	if areaID == "" {
		logger.Error("Area ID missing from path for getStockInventory")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Area ID required in path"})
		return
	}

	logger = logger.With(slog.String("area_id", areaID))
	logger.Info("Received request to reconcile area inventory")

	report, err := h.reportingService.StockInventory(c.Request.Context(), actor, areaID)
	if err != nil {
		handleReportError(c, logger, err, "stock inventory")
		return
	}

	logger.Info("Stock inventory report generated successfully", slog.Int("product_count", len(report.Products)))
	c.JSON(http.StatusOK, report)
}

// getStockDisponibility godoc
// @Summary Value on-hand stock
// @Description Values the current on-hand stock across all areas of the acting business
// @Tags stock
// @Produce json
// @Success 200 {array} domain.StockDisponibilityRow
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /report/stock/disponibility [get]
func (h *stockHandler) getStockDisponibility(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger.Info("Received request to value on-hand stock")

	rows, err := h.reportingService.StockDisponibility(c.Request.Context(), actor)
	if err != nil {
		handleReportError(c, logger, err, "stock disponibility")
		return
	}

	logger.Info("Stock disponibility report generated successfully", slog.Int("row_count", len(rows)))
	c.JSON(http.StatusOK, rows)
}

// getPeriodInventory godoc
// @Summary Generate period inventory report
// @Description Pairs opening and closing snapshots with the movements recorded between them
// @Tags stock
// @Produce json
// @Param areaId path string true "Area ID"
// @Param dateFrom query string false "Start date (YYYY-MM-DD)" default(first day of current month)
// @Param dateTo query string false "End date (YYYY-MM-DD)" default(current date)
// @Success 200 {object} dto.PeriodInventoryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Area not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /report/stock/period-inventory/{areaId} [get]
func (h *stockHandler) getPeriodInventory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	areaID := c.Param("areaId")
	if areaID == "" {
		logger.Error("Area ID missing from path for getPeriodInventory")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Area ID required in path"})
		return
	}

	now := time.Now()
	firstDayOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	fromStr := c.DefaultQuery("dateFrom", firstDayOfMonth.Format("2006-01-02"))
	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		logger.Warn("Invalid dateFrom format", slog.String("dateFrom", fromStr), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dateFrom format. Use YYYY-MM-DD"})
		return
	}

	toStr := c.DefaultQuery("dateTo", now.Format("2006-01-02"))
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		logger.Warn("Invalid dateTo format", slog.String("dateTo", toStr), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dateTo format. Use YYYY-MM-DD"})
		return
	}

	if from.After(to) {
		logger.Warn("Invalid date range", slog.String("dateFrom", fromStr), slog.String("dateTo", toStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "dateFrom must be before or equal to dateTo"})
		return
	}
	// Include the end date itself; the service treats the window as half-open.
	windowEnd := to.AddDate(0, 0, 1)

	logger = logger.With(
		slog.String("area_id", areaID),
		slog.String("dateFrom", fromStr),
		slog.String("dateTo", toStr),
	)
	logger.Info("Received request to generate period inventory report")

	rows, err := h.reportingService.PeriodInventory(c.Request.Context(), actor, areaID, from, windowEnd)
	if err != nil {
		handleReportError(c, logger, err, "period inventory")
		return
	}

	logger.Info("Period inventory report generated successfully", slog.Int("row_count", len(rows)))
	c.JSON(http.StatusOK, dto.ToPeriodInventoryResponse(rows, from, to))
}
