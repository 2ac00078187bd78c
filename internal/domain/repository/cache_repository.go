package repository

import (
	"context"
	"time"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу; промах - (nil, nil)
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// GetView получает сериализованное представление для версии датасета
	GetView(ctx context.Context, datasetVersion, viewKey string) ([]byte, error)

	// SetView сохраняет сериализованное представление
	SetView(ctx context.Context, datasetVersion, viewKey string, data []byte, ttl time.Duration) error

	// ViewExists проверяет, есть ли представление в кеше, не читая его
	ViewExists(ctx context.Context, datasetVersion, viewKey string) (bool, error)
}
