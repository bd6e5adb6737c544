package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-quota-api/internal/api"
	"recipe-quota-api/internal/billing"
	"recipe-quota-api/internal/config"
	"recipe-quota-api/internal/ledger"
	"recipe-quota-api/internal/response"
	"recipe-quota-api/internal/store"
	"recipe-quota-api/pkg/logging"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatal("Failed to initialize config:", err)
	}

	// Initialize logging
	logging.InitLogging()

	// Initialize key-value store
	kv, err := store.InitStore(config.AppConfig.RedisURL, config.AppConfig.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to initialize store:", err)
	}

	// Set Gin mode
	gin.SetMode(config.AppConfig.Mode)

	// Create Gin engine with the shared 500 envelope as panic boundary
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		response.Internal(c, fmt.Errorf("panic: %v", recovered))
	}))

	// Wire ledgers and handlers
	usageLedger := ledger.NewUsageLedger(kv, config.AppConfig.FreeRequests)
	purchaseLedger := ledger.NewPurchaseLedger(kv, ledger.DefaultCatalog())
	handlers := api.New(usageLedger, purchaseLedger, billing.NewMockVerifier())

	// Setup routes
	api.SetupRoutes(r, handlers)

	// Start server
	port := config.AppConfig.Port
	logging.Infof("Starting server on port %s", port)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for shutdown signal, then drain and close the store
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Infof("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Errorf("Server shutdown failed: %v", err)
	}
	if err := kv.Close(); err != nil {
		logging.Errorf("Failed to close store: %v", err)
	}
}
