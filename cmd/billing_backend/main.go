package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/SscSPs/money_billing/internal/core/services"
	"github.com/SscSPs/money_billing/internal/handlers"
	"github.com/SscSPs/money_billing/internal/middleware"
	"github.com/SscSPs/money_billing/internal/platform/config"
	"github.com/SscSPs/money_billing/internal/platform/logger"
	"github.com/SscSPs/money_billing/internal/platform/messaging"
	mongorepo "github.com/SscSPs/money_billing/internal/repositories/database/mongo"
	"github.com/SscSPs/money_billing/internal/repositories/database/pgsql"
	"github.com/SscSPs/money_billing/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/money_billing/internal/core/ports/services"
)

// @title Billing API
// @version 1.0
// @description Currencies, exchange rates, the transaction ledger and billing accounts.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	appLogger := logger.NewLogger(cfg.LogLevel)
	slog.SetDefault(appLogger)

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, appLogger, cfg.DatabaseURL)
	if err != nil {
		appLogger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(appLogger, dbPool)

	if err := database.RunMigrations(appLogger, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		appLogger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)

	if cfg.MongoEnabled() {
		mongoDB, err := database.NewMongoDB(ctx, appLogger, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoTimeout)
		if err != nil {
			appLogger.Error("Failed to connect to MongoDB", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if err := mongoDB.Close(context.Background()); err != nil {
				appLogger.Error("Error closing MongoDB client", slog.String("error", err.Error()))
			}
		}()

		docs := mongorepo.NewDocumentRepository(mongoDB.Database())
		if err := docs.EnsureIndexes(ctx); err != nil {
			appLogger.Error("Failed to create document link indexes", slog.String("error", err.Error()))
			os.Exit(1)
		}
		repos.DocumentRepo = docs
	} else {
		appLogger.Warn("MONGO_URI not set, account documents are disabled")
	}

	var events portssvc.StatusEventPublisher = messaging.NoopStatusPublisher{}
	if cfg.KafkaEnabled() {
		publisher, err := messaging.NewKafkaStatusPublisher(appLogger, cfg.KafkaBrokers, cfg.KafkaStatusTopic)
		if err != nil {
			appLogger.Error("Failed to create status publisher", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				appLogger.Error("Error closing status publisher", slog.String("error", err.Error()))
			}
		}()
		events = publisher
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, events)

	if err := handlers.RegisterValidators(); err != nil {
		appLogger.Error("Failed to register validators", slog.String("error", err.Error()))
		os.Exit(1)
	}

	limiter, err := middleware.NewMemoryLimiter(cfg.RateLimit)
	if err != nil {
		appLogger.Error("Invalid rate limit", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.StructuredLoggingMiddleware(appLogger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendBaseURL}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-Next-Token", "Content-Disposition"}
	r.Use(cors.New(corsConfig))

	r.Use(middleware.RateLimit(limiter))

	if err := r.SetTrustedProxies(nil); err != nil {
		appLogger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	appLogger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		appLogger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
