package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/velo-paris-dashboard/internal/config"
	"github.com/velo-paris-dashboard/internal/domain/repository"
	"github.com/velo-paris-dashboard/internal/pkg/logger"
	"github.com/velo-paris-dashboard/internal/repository/cache"
	"github.com/velo-paris-dashboard/internal/repository/loader"
	"github.com/velo-paris-dashboard/internal/repository/postgres"
	redisRepo "github.com/velo-paris-dashboard/internal/repository/redis"
	"github.com/velo-paris-dashboard/internal/usecase"
	"github.com/velo-paris-dashboard/internal/worker"
	"github.com/velo-paris-dashboard/internal/worker/warmup"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		// LOG_* ещё не прочитаны
		logger.Fallback().Fatal("Failed to load config", zap.Error(err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}
	if !cfg.Redis.Enabled {
		fmt.Println("Worker requires Redis. Set REDIS_ENABLED=true to enable.")
		os.Exit(1)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting View Warm-up Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.String("data_source", cfg.Data.Source))

	// 3. Load the same dataset as the API: версия таблицы входит в ключи кеша
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

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Initialize repositories
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log,
		redisRepo.WithPendingMinIdle(cfg.Worker.PendingMinIdle))

	// 6. Initialize use cases
	viewUC := usecase.NewViewUseCase(table, usecase.NewPresenter(), cacheRepo, cfg.Cache.ViewCacheTTL, log)
	warmupUC := usecase.NewWarmupUseCase(viewUC, streamRepo, log)

	// 7. Initialize workers
	warmupWorker := warmup.NewViewWarmupWorker(
		streamRepo,
		warmupUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log, cfg.Worker.ShutdownTimeout)
	workerManager.Register(warmupWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	log.Info("Worker started", zap.String("dataset_version", table.Version()))

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	// Cancel context to stop workers
	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
