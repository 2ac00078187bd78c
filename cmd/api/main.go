package main

// @title Velo Paris Dashboard API
// @version 1.0.0
// @description Дашборд по данным постоянных велосчётчиков Парижа: агрегаты, графики и карты.
// @description
// @description Основные возможности:
// @description - HTML страница дашборда с выбором графика и периода
// @description - Декларативные описания графиков и карт для каждого выбора
// @description - Агрегаты таблицы показаний (по дням, месяцам, дням недели, счётчикам)
// @description - Прогрев кеша представлений через Redis Stream

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/velo-paris-dashboard/docs"
	"github.com/velo-paris-dashboard/internal/config"
	httpDelivery "github.com/velo-paris-dashboard/internal/delivery/http"
	"github.com/velo-paris-dashboard/internal/delivery/http/handler"
	"github.com/velo-paris-dashboard/internal/domain"
	"github.com/velo-paris-dashboard/internal/domain/repository"
	"github.com/velo-paris-dashboard/internal/pkg/logger"
	"github.com/velo-paris-dashboard/internal/repository/cache"
	"github.com/velo-paris-dashboard/internal/repository/loader"
	"github.com/velo-paris-dashboard/internal/repository/postgres"
	redisRepo "github.com/velo-paris-dashboard/internal/repository/redis"
	"github.com/velo-paris-dashboard/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		// LOG_* ещё не прочитаны
		logger.Fallback().Fatal("Failed to load config", zap.Error(err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Velo Paris Dashboard")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("data_source", cfg.Data.Source),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
	)

	checks := make(map[string]handler.HealthChecker)

	// 3. Load dataset; без таблицы сервис не стартует
	var source repository.ReadingSource
	switch cfg.Data.Source {
	case config.DataSourcePostgres:
		db, err := postgres.New(context.Background(), cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()
		checks["postgres"] = db
		source = postgres.NewReadingSource(db, cfg.Database.ReadingsTable, cfg.Data, log)
	default:
		source = loader.NewCSVSource(cfg.Data, log)
	}

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 5*time.Minute)
	table, err := source.Load(loadCtx)
	cancelLoad()
	if err != nil {
		log.Fatal("Failed to load dataset", zap.String("source", source.Name()), zap.Error(err))
	}

	// 4. Connect to Redis (optional)
	cacheRepo := cache.NewNoopCache()
	var streamRepo repository.StreamRepository
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		checks["redis"] = redisClient
		cacheRepo = cache.NewCacheRepository(redisClient)
		streamRepo = redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
		log.Info("Redis connected")
	} else {
		log.Info("Redis disabled, views are computed on every request")
	}

	// 5. Initialize Use Cases
	viewUC := usecase.NewViewUseCase(table, usecase.NewPresenter(), cacheRepo, cfg.Cache.ViewCacheTTL, log)
	datasetUC := usecase.NewDatasetUseCase(table, log)
	aggregateUC := usecase.NewAggregateUseCase(table, log)
	warmupUC := usecase.NewWarmupUseCase(viewUC, streamRepo, log)
	dashboardUC := usecase.NewDashboardUseCase(datasetUC, viewUC, log)

	log.Info("Use cases initialized",
		zap.String("dataset_version", table.Version()),
		zap.Int("views", len(domain.ViewKeys())))

	// 6. Initialize HTTP Handlers
	dashboardHandler, err := handler.NewDashboardHandler(dashboardUC, log)
	if err != nil {
		log.Fatal("Failed to initialize dashboard handler", zap.Error(err))
	}
	datasetHandler := handler.NewDatasetHandler(datasetUC, checks, log)
	viewHandler := handler.NewViewHandler(viewUC, warmupUC, log)
	aggregateHandler := handler.NewAggregateHandler(aggregateUC, log)

	// 7. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		dashboardHandler,
		datasetHandler,
		viewHandler,
		aggregateHandler,
	)

	// 8. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
