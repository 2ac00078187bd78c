package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/velo-paris-dashboard/internal/aggregator"
	"github.com/velo-paris-dashboard/internal/domain"
	"github.com/velo-paris-dashboard/internal/domain/repository"
	"github.com/velo-paris-dashboard/internal/pkg/errors"
	"github.com/velo-paris-dashboard/internal/usecase/dto"
)

// thresholdQuantile - порог для карты по числу проездов
const thresholdQuantile = 0.75

// ViewUseCase выбирает представление по значению списка или радиокнопки.
// Каждый выбор считается заново из неизменяемой таблицы, состояния между вызовами нет.
type ViewUseCase struct {
	table     *domain.Table
	presenter *Presenter
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewViewUseCase создает новый экземпляр ViewUseCase
func NewViewUseCase(
	table *domain.Table,
	presenter *Presenter,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ViewUseCase {
	return &ViewUseCase{
		table:     table,
		presenter: presenter,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// SelectVisualization считает представление для значения выпадающего списка
func (uc *ViewUseCase) SelectVisualization(kind domain.VisualizationKind) (domain.View, error) {
	switch kind {
	case domain.VisualizationNone:
		return domain.NoSelection{}, nil
	case domain.VisualizationInstallsByYear:
		return domain.InstallsByYearView{Counts: aggregator.InstallsByYear(uc.table)}, nil
	case domain.VisualizationTrackLength:
		rows := make([]domain.TrackLength, len(domain.TrackLengths))
		copy(rows, domain.TrackLengths)
		return domain.TrackLengthView{Rows: rows}, nil
	case domain.VisualizationCounterMap:
		return domain.CounterMapView{Counters: aggregator.CountersDeduplicated(uc.table)}, nil
	case domain.VisualizationThresholdMap:
		totals := aggregator.CountersWithTotals(uc.table)
		threshold := 0.0
		// без счётчиков квантиль не определён (NaN не сериализуется в JSON)
		if len(totals) > 0 {
			threshold = aggregator.TotalsQuantile(totals, thresholdQuantile)
		}
		return domain.ThresholdMapView{Counters: totals, Threshold: threshold}, nil
	}
	return nil, errors.ErrInvalidView.WithDetails(map[string]interface{}{"visualization": string(kind)})
}

// SelectPeriod считает представление для значения радиокнопки
func (uc *ViewUseCase) SelectPeriod(kind domain.PeriodKind) (domain.View, error) {
	switch kind {
	case domain.PeriodNone:
		return domain.NoSelection{}, nil
	case domain.PeriodDay:
		return domain.HourOfDayView{Means: aggregator.HourlyMeans(uc.table)}, nil
	case domain.PeriodWeek:
		return domain.FirstWeekOfJuneView{
			Weekdays: aggregator.WeekdayTotalsInWindow(uc.table,
				domain.FirstWeekMonth, domain.FirstWeekFromDay, domain.FirstWeekToDay),
		}, nil
	case domain.PeriodMonth:
		return domain.MonthOfAprilView{
			Start: domain.AprilWindowStart,
			End:   domain.AprilWindowEnd,
			Days:  aggregator.WindowDaily(uc.table, domain.AprilWindowStart, domain.AprilWindowEnd),
		}, nil
	case domain.PeriodYear:
		return domain.YearView{Months: aggregator.MonthlyTotals(uc.table)}, nil
	}
	return nil, errors.ErrInvalidPeriod.WithDetails(map[string]interface{}{"period": string(kind)})
}

// GetVisualization возвращает описание для отрисовки, используя кеш когда возможно
func (uc *ViewUseCase) GetVisualization(ctx context.Context, kind domain.VisualizationKind) (*dto.ViewResponse, error) {
	return uc.render(ctx, kind.ViewKey(), func() (domain.View, error) {
		return uc.SelectVisualization(kind)
	})
}

// GetPeriod - то же для временного разреза
func (uc *ViewUseCase) GetPeriod(ctx context.Context, kind domain.PeriodKind) (*dto.ViewResponse, error) {
	return uc.render(ctx, kind.ViewKey(), func() (domain.View, error) {
		return uc.SelectPeriod(kind)
	})
}

// GetByKey - представление по ключу domain.View.Key
func (uc *ViewUseCase) GetByKey(ctx context.Context, key string) (*dto.ViewResponse, error) {
	vis, period, ok := domain.ParseViewKey(key)
	if !ok {
		return nil, errors.ErrInvalidView.WithDetails(map[string]interface{}{"key": key})
	}
	if period != domain.PeriodNone {
		return uc.GetPeriod(ctx, period)
	}
	return uc.GetVisualization(ctx, vis)
}

// GetPair считает оба выбора страницы параллельно
func (uc *ViewUseCase) GetPair(ctx context.Context, req dto.ViewRequest) (*dto.ViewPairResponse, error) {
	vis, ok := domain.ParseVisualizationKind(req.Visualization)
	if !ok {
		return nil, errors.ErrInvalidView.WithDetails(map[string]interface{}{"visualization": req.Visualization})
	}
	period, ok := domain.ParsePeriodKind(req.Period)
	if !ok {
		return nil, errors.ErrInvalidPeriod.WithDetails(map[string]interface{}{"period": req.Period})
	}

	resp := &dto.ViewPairResponse{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := uc.GetVisualization(gctx, vis)
		resp.Visualization = v
		return err
	})
	g.Go(func() error {
		v, err := uc.GetPeriod(gctx, period)
		resp.Period = v
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return resp, nil
}

// Warm считает представление и кладёт его в кеш, даже если там уже есть запись
func (uc *ViewUseCase) Warm(ctx context.Context, key string) error {
	vis, period, ok := domain.ParseViewKey(key)
	if !ok {
		return errors.ErrInvalidView.WithDetails(map[string]interface{}{"key": key})
	}

	var view domain.View
	var err error
	if period != domain.PeriodNone {
		view, err = uc.SelectPeriod(period)
	} else {
		view, err = uc.SelectVisualization(vis)
	}
	if err != nil {
		return err
	}

	resp, err := uc.presenter.Present(view)
	if err != nil {
		return fmt.Errorf("present view %s: %w", key, err)
	}

	return uc.store(ctx, key, resp)
}

// WarmIfMissing считает представление, только если его нет в кеше; true - представление посчитано.
// Ошибка проверки кеша не мешает прогреву.
func (uc *ViewUseCase) WarmIfMissing(ctx context.Context, key string) (bool, error) {
	if _, _, ok := domain.ParseViewKey(key); !ok {
		return false, errors.ErrInvalidView.WithDetails(map[string]interface{}{"key": key})
	}

	exists, err := uc.cacheRepo.ViewExists(ctx, uc.table.Version(), key)
	if err != nil {
		uc.logger.Warn("Failed to check cached view", zap.String("key", key), zap.Error(err))
	}
	if exists {
		uc.logger.Debug("View already cached", zap.String("key", key))
		return false, nil
	}

	if err := uc.Warm(ctx, key); err != nil {
		return false, err
	}
	return true, nil
}

// DatasetVersion - версия таблицы, на которой считаются представления
func (uc *ViewUseCase) DatasetVersion() string {
	return uc.table.Version()
}

func (uc *ViewUseCase) render(ctx context.Context, key string, selectView func() (domain.View, error)) (*dto.ViewResponse, error) {
	// "ничего не выбрано" не кешируем
	if key == domain.VisualizationNone.ViewKey() || key == domain.PeriodNone.ViewKey() {
		view, err := selectView()
		if err != nil {
			return nil, err
		}
		return uc.presenter.Present(view)
	}

	// 1. Проверяем кеш
	if cached := uc.fromCache(ctx, key); cached != nil {
		return cached, nil
	}

	// 2. Считаем из таблицы
	view, err := selectView()
	if err != nil {
		return nil, err
	}
	resp, err := uc.presenter.Present(view)
	if err != nil {
		return nil, fmt.Errorf("present view %s: %w", key, err)
	}

	// 3. Кешируем; ошибка кеша не мешает ответу
	if err := uc.store(ctx, key, resp); err != nil {
		uc.logger.Warn("Failed to cache view", zap.String("key", key), zap.Error(err))
	}

	return resp, nil
}

func (uc *ViewUseCase) fromCache(ctx context.Context, key string) *dto.ViewResponse {
	data, err := uc.cacheRepo.GetView(ctx, uc.table.Version(), key)
	if err != nil {
		uc.logger.Warn("Failed to get view from cache", zap.String("key", key), zap.Error(err))
		return nil
	}
	if data == nil {
		return nil
	}

	var resp dto.ViewResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		uc.logger.Warn("Failed to unmarshal cached view", zap.String("key", key), zap.Error(err))
		return nil
	}

	uc.logger.Debug("View fetched from cache", zap.String("key", key))
	return &resp
}

func (uc *ViewUseCase) store(ctx context.Context, key string, resp *dto.ViewResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal view %s: %w", key, err)
	}
	return uc.cacheRepo.SetView(ctx, uc.table.Version(), key, data, uc.cacheTTL)
}
