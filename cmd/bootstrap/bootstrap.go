package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adrd-care-system/config"
	deliveryHttp "adrd-care-system/internal/delivery/http"
	"adrd-care-system/internal/delivery/http/handler"
	"adrd-care-system/internal/delivery/http/middleware"
	"adrd-care-system/internal/infrastructure/cache"
	"adrd-care-system/internal/infrastructure/database"
	"adrd-care-system/internal/repository"
	"adrd-care-system/internal/service"
	"adrd-care-system/internal/usecase"
	"adrd-care-system/pkg/jwt"
	"adrd-care-system/pkg/validator"

	"github.com/google/generative-ai-go/genai"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	GenAIClient *genai.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize Gemini client
	genaiClient, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.Classifier.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	app.GenAIClient = genaiClient
	logrus.Info("Gemini client initialized")

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient, genaiClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, genaiClient *genai.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Shared HTTP client for the external scheduling service. The timeout
	// bounds every availability and booking call.
	schedulingHTTPClient := &http.Client{Timeout: cfg.Scheduling.Timeout}

	// Initialize repositories
	availabilityRepo := repository.NewAvailabilityRepository(cfg.Scheduling.BaseURL, schedulingHTTPClient, log)
	bookingRepo := repository.NewBookingRepository(cfg.Scheduling.BaseURL, schedulingHTTPClient, log, availabilityRepo)
	negotiationLogRepo := repository.NewNegotiationLogRepository()
	intentClassifier := repository.NewGeminiIntentClassifier(genaiClient, cfg.Classifier.Model, log)
	medicalAdvisor := repository.NewGeminiMedicalAdvisor(genaiClient, cfg.Classifier.Model, log)

	// Initialize services
	bookingGuard := service.NewBookingGuardService(redisClient, log)
	auditService := service.NewAuditService(db, log, negotiationLogRepo)

	// Initialize usecases
	scanUsecase := usecase.NewAvailabilityScanUsecase(log, availabilityRepo)
	negotiationUsecase := usecase.NewAppointmentNegotiationUsecase(log, cfg.Scheduling, availabilityRepo, bookingRepo, scanUsecase, bookingGuard, auditService)
	chatUsecase := usecase.NewChatUsecase(log, cfg.Classifier, intentClassifier, medicalAdvisor, negotiationUsecase)
	negotiationLogUsecase := usecase.NewNegotiationLogUsecase(db, log, negotiationLogRepo)

	// Initialize handlers
	chatHandler := handler.NewChatHandler(chatUsecase, customValidator)
	healthHandler := handler.NewHealthHandler()
	negotiationLogHandler := handler.NewNegotiationLogHandler(negotiationLogUsecase)

	// Initialize middleware
	adminAuthMiddleware := middleware.NewAdminAuthMiddleware(jwtService)
	corsMiddleware := middleware.NewCORSMiddleware()
	recoveryMiddleware := middleware.NewRecoveryMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(chatHandler, healthHandler, negotiationLogHandler, adminAuthMiddleware, corsMiddleware, recoveryMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}

	// Close Gemini client
	if app.GenAIClient != nil {
		app.GenAIClient.Close()
	}
}
