package api

import (
	"net/http"

	"recipe-quota-api/internal/config"
	"recipe-quota-api/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all routes
//
// Each endpoint is registered with router.Any under its method envelope
// so preflight OPTIONS and wrong-method requests get the shared CORS/405
// treatment instead of Gin's defaults.
func SetupRoutes(r *gin.Engine, a *API) {
	r.Use(middleware.RequestID())

	apiGroup := r.Group("/api")
	{
		apiGroup.Any("/usage-initialize", middleware.Envelope(http.MethodPost), a.InitializeUsage)
		apiGroup.Any("/usage-check", middleware.Envelope(http.MethodPost), a.CheckUsage)
		apiGroup.Any("/purchase-verify", middleware.Envelope(http.MethodPost), a.VerifyPurchase)
		apiGroup.Any("/purchase-restore", middleware.Envelope(http.MethodPost), a.RestorePurchases)
		apiGroup.Any("/usage-status", middleware.Envelope(http.MethodGet), a.UsageStatus)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": config.AppConfig.ServiceName,
		})
	})
}
