package handlers

import (
	"log"
	"time"

	portssvc "github.com/gestium/biz_reporting_app/internal/core/ports/services"
	"github.com/gestium/biz_reporting_app/internal/middleware"
	"github.com/gestium/biz_reporting_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific report route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Report generation is throttled per client IP and bounded by the
	// configured timeout
	reportGroup := v1.Group("/report",
		middleware.RateLimit(newReportLimiter(cfg)),
		middleware.RequestTimeout(cfg.ReportTimeout),
	)

	registerIncomeRoutes(reportGroup, services.Reporting)
	registerFinancialRoutes(reportGroup, services.Reporting)
	registerStockRoutes(reportGroup, services.Reporting)
}

// newReportLimiter builds the in-memory rate limiter from the configured spec.
func newReportLimiter(cfg *config.Config) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		log.Printf("Warning: Invalid value for RATE_LIMIT ('%s'). Defaulting to 120-M.\n", cfg.RateLimit)
		rate = limiter.Rate{Period: time.Minute, Limit: 120}
	}
	return limiter.New(memorystore.NewStore(), rate)
}
