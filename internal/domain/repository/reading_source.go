package repository

import (
	"context"

	"github.com/velo-paris-dashboard/internal/domain"
)

// ReadingSource загружает исходную таблицу показаний
type ReadingSource interface {
	// Load читает таблицу целиком и нормализует даты.
	// Недоступный источник - StartupError, нераспознанная строка - ParseError.
	Load(ctx context.Context) (*domain.Table, error)

	// Name - описание источника для логов
	Name() string
}
