package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/userhub/userhub/internal/config"
	"github.com/userhub/userhub/internal/users"
)

// AppState holds all application-level state and services
type AppState struct {
	Logger      *zap.Logger
	Config      *config.Config
	UserService users.UserService
}

func main() {
	// Load configuration
	config.Load()

	// Initialize logger with config
	logger := initLogger()
	logger.Info("Configuration loaded", zap.String("source", "config.Load()"))

	// Initialize application state
	as, err := newAppState(logger)
	if err != nil {
		logger.Fatal("Failed to initialize application state", zap.Error(err))
	}

	// Create HTTP server
	router := setupRouter(as)

	addr := fmt.Sprintf("%s:%d", config.Http().Host, config.Http().Port)

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Setup graceful shutdown
	done := setupSignalHandler(as, server, logger)

	// Start server
	logger.Info("Starting userhub server", zap.String("address", addr))

	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Failed to start server", zap.Error(err))
	}

	<-done
	logger.Info("Server shutdown complete")
}

// newAppState creates and initializes the application state
func newAppState(logger *zap.Logger) (*AppState, error) {
	var store users.UserStore

	pgConfig := config.Postgres()
	if pgConfig.Enabled() {
		logger.Info("Database configuration",
			zap.String("host", pgConfig.Host),
			zap.Int("port", pgConfig.Port),
			zap.String("database", pgConfig.Database),
			zap.String("user", pgConfig.User))

		pgStore := users.NewPostgresUserStore(pgConfig.DSN(), pgConfig.MaxOpenConnections)
		if err := pgStore.EnsureSchema(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to prepare database schema: %w", err)
		}
		store = pgStore
	} else {
		logger.Warn("No database configured, falling back to in-memory store")
		store = users.NewMemoryUserStore()
	}

	return &AppState{
		Logger:      logger,
		Config:      config.Get(),
		UserService: users.NewUserService(store),
	}, nil
}

func initLogger() *zap.Logger {
	logConfig := config.Logger()

	var config zap.Config
	if logConfig.Format == "json" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	// Set log level
	switch logConfig.Level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	return logger
}

func setupRouter(as *AppState) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Add CORS middleware
	router.Use(cors.Default())

	// Add logging middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Health endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := as.UserService.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"timestamp": time.Now().Format(time.RFC3339),
				"error":     err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	handlers := users.NewUserHandlers(as.UserService, users.NewLinkBuilder(), as.Logger)
	handlers.RegisterRoutes(router.Group(""))

	return router
}

func setupSignalHandler(as *AppState, server *http.Server, logger *zap.Logger) chan struct{} {
	done := make(chan struct{}, 1)

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signalCh

		logger.Info("Shutting down server...")

		// Create context with timeout for graceful shutdown
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Shutdown server
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during server shutdown", zap.Error(err))
		}

		// Close backing store
		if err := as.UserService.Close(); err != nil {
			logger.Error("Error closing user store", zap.Error(err))
		}

		done <- struct{}{}
	}()

	return done
}
