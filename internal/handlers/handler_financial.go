package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/gestium/biz_reporting_app/internal/core/ports/services"
	"github.com/gestium/biz_reporting_app/internal/dto"
	"github.com/gestium/biz_reporting_app/internal/middleware"
	"github.com/gestium/biz_reporting_app/internal/utils/timebucket"
	"github.com/gin-gonic/gin"
)

// financialHandler handles HTTP requests for the order-level financial reports
type financialHandler struct {
	reportingService portssvc.ReportingSvc
}

// newFinancialHandler creates a new financialHandler
func newFinancialHandler(rs portssvc.ReportingSvc) *financialHandler {
	return &financialHandler{
		reportingService: rs,
	}
}

// registerFinancialRoutes registers routes related to financial summaries
func registerFinancialRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newFinancialHandler(reportingService)

	rg.POST("/financial/general", h.postGeneralFinancial)
	rg.GET("/tips/:economicCycleId", h.getTipsByCycle)
	rg.GET("/selled-products/most-selled/:mode", h.getMostSelled)
}

// postGeneralFinancial godoc
// @Summary Generate general financial summary
// @Description Reduces the billed orders of the window into one currency-keyed summary
// @Tags financial
// @Accept json
// @Produce json
// @Param request body dto.GeneralFinancialRequest true "Report window"
// @Success 200 {object} dto.GeneralFinancialResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /report/financial/general [post]
func (h *financialHandler) postGeneralFinancial(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.GeneralFinancialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid general financial request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	query, err := req.ToQuery()
	if err != nil {
		logger.Warn("Invalid general financial window", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger = logger.With(
		slog.String("dateFrom", req.DateFrom),
		slog.String("dateTo", req.DateTo),
	)
	logger.Info("Received request to generate general financial report")

	summary, err := h.reportingService.GeneralFinancial(c.Request.Context(), actor, query)
	if err != nil {
		handleReportError(c, logger, err, "general financial")
		return
	}

	logger.Info("General financial report generated successfully")
	c.JSON(http.StatusOK, dto.ToGeneralFinancialResponse(summary, req))
}

// getTipsByCycle godoc
// @Summary Generate tips report for a cycle
// @Description Totals recorded tips per person for one economic cycle
// @Tags financial
// @Produce json
// @Param economicCycleId path string true "Economic cycle ID"
// @Success 200 {object} dto.TipsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Cycle not found"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /report/tips/{economicCycleId} [get]
func (h *financialHandler) getTipsByCycle(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	cycleID := c.Param("economicCycleId")
	if cycleID == "" {
		logger.Error("Economic cycle ID missing from path for getTipsByCycle")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Economic cycle ID required in path"})
		return
	}

	logger = logger.With(slog.String("economic_cycle_id", cycleID))
	logger.Info("Received request to generate tips report")

	people, err := h.reportingService.TipsByCycle(c.Request.Context(), actor, cycleID)
	if err != nil {
		handleReportError(c, logger, err, "tips")
		return
	}

	logger.Info("Tips report generated successfully", slog.Int("person_count", len(people)))
	c.JSON(http.StatusOK, dto.ToTipsResponse(cycleID, people))
}

// getMostSelled godoc
// @Summary Rank most selled products
// @Description Ranks products by quantity sold in the current week, month or year
// @Tags financial
// @Produce json
// @Param mode path string true "Window mode" Enums(week, month, year)
// @Success 200 {object} dto.MostSelledResponse
// @Failure 400 {object} map[string]string "Invalid mode"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /report/selled-products/most-selled/{mode} [get]
func (h *financialHandler) getMostSelled(c *gin.Context) {
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
		logger.Warn("Invalid window mode", slog.String("mode", modeStr))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mode. Use week, month or year"})
		return
	}

	logger = logger.With(slog.String("mode", modeStr))
	logger.Info("Received request to rank most selled products")

	products, err := h.reportingService.MostSelled(c.Request.Context(), actor, mode)
	if err != nil {
		handleReportError(c, logger, err, "most selled")
		return
	}

	logger.Info("Most selled report generated successfully", slog.Int("product_count", len(products)))
	c.JSON(http.StatusOK, dto.ToMostSelledResponse(modeStr, products))
}
