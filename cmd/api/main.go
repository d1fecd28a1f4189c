package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"patrimonio/internal/config"
	"patrimonio/internal/database"
	"patrimonio/internal/handlers"
	"patrimonio/internal/logger"
	"patrimonio/internal/middleware"
	"patrimonio/internal/ratesync"
	"patrimonio/internal/services"
	"patrimonio/internal/validator"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(appConfig.DBPath)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	ledgerService := services.NewLedgerService(db)
	rateService := services.NewRateService(db, appConfig.AlternateOffset)
	reportService := services.NewReportService(db)
	exportService := services.NewExportService(db)
	viewStateService := services.NewViewStateService()

	rateClient := ratesync.New(appConfig.QuotesURL, appConfig.GlobalRatesURL, appConfig.SyncTimeout)

	// Initialize handlers
	transactionHandler := handlers.NewTransactionHandler(ledgerService)
	rateHandler := handlers.NewRateHandler(rateService, viewStateService, rateClient)
	reportHandler := handlers.NewReportHandler(reportService, rateService, viewStateService)
	exportHandler := handlers.NewExportHandler(exportService)
	viewHandler := handlers.NewViewHandler(viewStateService)

	// Sync rates in the background so startup never blocks on the
	// remote sources. A failed fetch leaves the stored rates in place.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), appConfig.SyncTimeout)
		defer cancel()

		quotes, err := rateClient.Fetch(ctx)
		rateService.Apply(quotes, err)
		if err != nil {
			log.Warnw("startup rate sync failed", "error", err.Error())
			return
		}
		log.Info("startup rate sync completed")
	}()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Rate routes
	rates := v1.Group("/rates")
	rates.GET("", rateHandler.GetRates)
	rates.POST("/refresh", rateHandler.RefreshRates)
	rates.GET("/status", rateHandler.GetStatus)
	rates.POST("/convert", rateHandler.Convert)

	// Report routes
	reports := v1.Group("/reports")
	reports.GET("/summary", reportHandler.GetSummary)
	reports.GET("/rows", reportHandler.GetRows)

	// Export route
	v1.GET("/export/csv", exportHandler.ExportCSV)

	// View state routes
	view := v1.Group("/view")
	view.GET("", viewHandler.GetView)
	view.PUT("/mode", viewHandler.SetMode)
	view.PUT("/rate-key", viewHandler.SetRateKey)
	view.PUT("/query", viewHandler.SetQuery)
	view.POST("/month/next", viewHandler.NextMonth)
	view.POST("/month/prev", viewHandler.PrevMonth)

	log.Infof("Starting Patrimonio backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
