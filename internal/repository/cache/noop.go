package cache

import (
	"context"
	"time"

	"github.com/velo-paris-dashboard/internal/domain/repository"
)

// noopCache используется, когда Redis выключен: всегда промах, запись игнорируется
type noopCache struct{}

func NewNoopCache() repository.CacheRepository {
	return noopCache{}
}

func (noopCache) Get(context.Context, string) ([]byte, error) {
	return nil, nil
}

func (noopCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (noopCache) GetView(context.Context, string, string) ([]byte, error) {
	return nil, nil
}

func (noopCache) SetView(context.Context, string, string, []byte, time.Duration) error {
	return nil
}

func (noopCache) ViewExists(context.Context, string, string) (bool, error) {
	return false, nil
}
