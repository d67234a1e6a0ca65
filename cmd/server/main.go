package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chartview/internal/client"
	"chartview/internal/config"
	"chartview/internal/handler"
	"chartview/internal/middleware"
	"chartview/internal/model"
	"chartview/internal/repository"
	"chartview/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger, err := createLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Open the collection store
	db, err := connectToDB(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to open collection database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories and services
	collectionRepo := repository.NewCollectionRepository(db, logger)
	collectionService := service.NewCollectionService(collectionRepo, logger)

	market := buildMarketData(cfg.Market, logger)
	chartService := service.NewChartService(
		market,
		client.WindowPolicy(cfg.Market.Window),
		cfg.Charts.Concurrency,
		logger,
	)
	presenter := service.NewPresenter(model.ChartStyle{
		UpColor:         cfg.Style.UpColor,
		DownColor:       cfg.Style.DownColor,
		PivotColor:      cfg.Style.PivotColor,
		ResistanceColor: cfg.Style.ResistanceColor,
		SupportColor:    cfg.Style.SupportColor,
	})

	// Initialize handlers
	collectionHandler := handler.NewCollectionHandler(collectionService, logger)
	chartHandler := handler.NewChartHandler(
		collectionService,
		chartService,
		presenter,
		cfg.Charts.PerPage,
		cfg.Charts.MaxPerPage,
		logger,
	)
	sessionHandler := handler.NewSessionHandler(logger)

	// Set up HTTP server with Gin
	router := setupRouter(collectionHandler, chartHandler, sessionHandler, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create a deadline for server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

func createLogger(level string) (*zap.Logger, error) {
	// Parse log level
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	// Create logger config
	config := zap.Config{
		Level:            zapLevel,
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

func connectToDB(dbConfig config.DatabaseConfig) (*sqlx.DB, error) {
	// The store is read-only for the dashboard; a single connection keeps
	// sqlite happy under concurrent page loads.
	db, err := sqlx.Connect("sqlite", dbConfig.Path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

func buildMarketData(cfg config.MarketConfig, logger *zap.Logger) client.MarketData {
	var market client.MarketData = client.NewYahooClient(
		cfg.BaseURL,
		cfg.SymbolSuffix,
		cfg.FetchTimeout,
		logger,
	)
	market = client.NewResilientClient(market, cfg.MaxRetries, logger)
	if cfg.CacheTTL > 0 {
		market = client.NewCachedClient(market, cfg.CacheTTL)
	}
	return market
}

func setupRouter(
	collectionHandler *handler.CollectionHandler,
	chartHandler *handler.ChartHandler,
	sessionHandler *handler.SessionHandler,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()

	// Use middlewares
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/collections", collectionHandler.ListCollections)
		v1.GET("/collections/:name/symbols", collectionHandler.ListSymbols)
		v1.GET("/collections/:name/charts", chartHandler.GetChartPage)
		v1.POST("/session", sessionHandler.Dispatch)
	}

	return router
}
