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

	"scenario-server/internal/config"
	"scenario-server/internal/database"
	"scenario-server/internal/handler"
	appLogger "scenario-server/internal/logger"
	"scenario-server/internal/middleware"
	"scenario-server/internal/repository"
	"scenario-server/internal/service"
	"scenario-server/pkg/ai"
	pkgDatabase "scenario-server/pkg/database"
	"scenario-server/pkg/migration"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	ginprometheus "github.com/zsais/go-gin-prometheus"
)

func main() {
	// .env опционален: в production переменные приходят из окружения
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := appLogger.New(appLogger.Config{
		Level:    cfg.LogLevel,
		Encoding: cfg.LogEncoding,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	zap.L().Info("Logger initialized", zap.String("logLevel", cfg.LogLevel))

	// --- PostgreSQL ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pkgDatabase.Connect(ctx, pkgDatabase.Config{
		DSN:      cfg.GetDSN(),
		MaxConns: cfg.DBMaxConns,
	})
	if err != nil {
		zap.L().Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer pool.Close()
	zap.L().Info("Connected to PostgreSQL")

	// --- Миграции ---
	migrator := migration.NewMigrator(migration.Config{
		MigrationsPath: database.MigrationsPath,
		MigrationsFS:   database.MigrationsFS,
	}, pool)
	if err := migrator.Up(ctx); err != nil {
		zap.L().Fatal("Failed to apply migrations", zap.Error(err))
	}

	// --- Completion Provider ---
	aiClient, err := ai.New(ai.Config{
		APIKey:    cfg.AIAPIKey,
		BaseURL:   cfg.AIBaseURL,
		ModelName: cfg.AIModel,
		Timeout:   cfg.AITimeout,
	})
	if err != nil {
		zap.L().Fatal("Failed to create AI client", zap.Error(err))
	}

	// --- Dependency Injection ---
	userRepo := repository.NewPgUserRepository(pool, logger)
	scenarioRepo := repository.NewPgScenarioRepository(pool, logger)
	stepRepo := repository.NewPgStepRepository(pool, logger)
	pointsRepo := repository.NewPgPointsRepository(pool, logger)

	scenarioSvc := service.NewScenarioService(userRepo, scenarioRepo, stepRepo, logger)
	pointsSvc := service.NewPointsService(pointsRepo, stepRepo, logger)
	generationSvc := service.NewGenerationService(scenarioSvc, pointsSvc, stepRepo, aiClient, logger)

	apiHandler := handler.NewAPIHandler(scenarioSvc, pointsSvc, generationSvc, logger)

	// --- HTTP Server (Gin) ---
	gin.SetMode(gin.ReleaseMode)
	if cfg.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.RedirectTrailingSlash = true
	router.Use(middleware.GinZapLogger(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	p := ginprometheus.NewPrometheus("gin")
	p.Use(router)

	apiHandler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		zap.L().Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Server forced to shutdown", zap.Error(err))
	}

	zap.L().Info("Server exited")
}
