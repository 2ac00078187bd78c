package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/velo-paris-dashboard/internal/domain"
	"github.com/velo-paris-dashboard/internal/usecase/dto"
)

// DefaultPreviewLimit - сколько строк показывает страница "Exploration des données"
const DefaultPreviewLimit = 10

// DatasetUseCase отдаёт сводку и первые строки загруженной таблицы
type DatasetUseCase struct {
	table  *domain.Table
	logger *zap.Logger

	summaryOnce sync.Once
	summary     domain.DatasetSummary
}

func NewDatasetUseCase(table *domain.Table, logger *zap.Logger) *DatasetUseCase {
	return &DatasetUseCase{
		table:  table,
		logger: logger,
	}
}

// Summary считается один раз: таблица неизменяема
func (uc *DatasetUseCase) Summary(ctx context.Context) *domain.DatasetSummary {
	uc.summaryOnce.Do(func() {
		uc.summary = summarize(uc.table)
		uc.logger.Debug("Dataset summary computed",
			zap.Int("rows", uc.summary.Rows),
			zap.Int("counters", uc.summary.Counters))
	})

	s := uc.summary
	return &s
}

// Preview возвращает первые limit строк; limit <= 0 - значение по умолчанию
func (uc *DatasetUseCase) Preview(ctx context.Context, req dto.PreviewRequest) *dto.PreviewResponse {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}

	return &dto.PreviewResponse{
		Rows:  uc.table.Head(limit),
		Total: uc.table.Len(),
	}
}

func (uc *DatasetUseCase) Table() *domain.Table {
	return uc.table
}

func summarize(t *domain.Table) domain.DatasetSummary {
	s := domain.DatasetSummary{
		Version: t.Version(),
		Rows:    t.Len(),
		Dropped: t.Dropped(),
	}
	if !t.LoadedAt().IsZero() {
		s.LoadedAt = t.LoadedAt().UTC().Format(time.RFC3339)
	}

	counters := make(map[string]struct{})
	var first, last domain.Date
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		counters[r.CounterName] = struct{}{}

		day := r.Day()
		if i == 0 || day.Before(first) {
			first = day
		}
		if i == 0 || last.Before(day) {
			last = day
		}
	}
	s.Counters = len(counters)

	if t.Len() > 0 {
		s.FirstDate = &first
		s.LastDate = &last
	}
	return s
}
