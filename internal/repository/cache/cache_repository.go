package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/velo-paris-dashboard/internal/domain/repository"
)

type cacheRepository struct {
	client redis.Cmdable
	logger *zap.Logger
}

func NewCacheRepository(r *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: r.Client(),
		logger: r.logger,
	}
}

// ViewKey - ключ представления; версия датасета меняется при каждой загрузке,
// так что старые записи просто истекают по TTL
func ViewKey(datasetVersion, viewKey string) string {
	return fmt.Sprintf("view:%s:%s", datasetVersion, viewKey)
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) GetView(ctx context.Context, datasetVersion, viewKey string) ([]byte, error) {
	return r.Get(ctx, ViewKey(datasetVersion, viewKey))
}

func (r *cacheRepository) SetView(ctx context.Context, datasetVersion, viewKey string, data []byte, ttl time.Duration) error {
	return r.Set(ctx, ViewKey(datasetVersion, viewKey), data, ttl)
}

func (r *cacheRepository) ViewExists(ctx context.Context, datasetVersion, viewKey string) (bool, error) {
	key := ViewKey(datasetVersion, viewKey)
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}
	return n > 0, nil
}
