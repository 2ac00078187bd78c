package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/velo-paris-dashboard/internal/aggregator"
	"github.com/velo-paris-dashboard/internal/domain"
	"github.com/velo-paris-dashboard/internal/pkg/errors"
	"github.com/velo-paris-dashboard/internal/usecase/dto"
)

// AggregateUseCase отдаёт агрегаты напрямую, без оформления в график
type AggregateUseCase struct {
	table  *domain.Table
	logger *zap.Logger
}

func NewAggregateUseCase(table *domain.Table, logger *zap.Logger) *AggregateUseCase {
	return &AggregateUseCase{
		table:  table,
		logger: logger,
	}
}

func (uc *AggregateUseCase) DailyTotals(ctx context.Context) []domain.DateCount {
	return aggregator.DailyTotals(uc.table)
}

func (uc *AggregateUseCase) InstallsByYear(ctx context.Context) []domain.YearCount {
	return aggregator.InstallsByYear(uc.table)
}

func (uc *AggregateUseCase) Counters(ctx context.Context) []domain.Counter {
	return aggregator.CountersDeduplicated(uc.table)
}

// CounterTotals - суммы по счётчикам с классом относительно 75-го процентиля
func (uc *AggregateUseCase) CounterTotals(ctx context.Context) *dto.CounterTotalsResponse {
	totals := aggregator.CountersWithTotals(uc.table)
	resp := &dto.CounterTotalsResponse{
		Counters: make([]dto.ClassifiedCounter, len(totals)),
	}
	if len(totals) == 0 {
		return resp
	}

	threshold := aggregator.TotalsQuantile(totals, thresholdQuantile)
	resp.Threshold = &threshold
	for i, ct := range totals {
		resp.Counters[i] = dto.ClassifiedCounter{
			CounterTotal: ct,
			Traffic:      aggregator.ClassifyThreshold(ct.Total, threshold),
		}
	}
	return resp
}

func (uc *AggregateUseCase) HourlyMeans(ctx context.Context) []domain.TimeOfDayMean {
	return aggregator.HourlyMeans(uc.table)
}

// WindowDaily - суммы по дням в [start, end); start > end - ошибка запроса, start == end - пусто
func (uc *AggregateUseCase) WindowDaily(ctx context.Context, req dto.WindowRequest) ([]domain.DateCount, error) {
	start, err := domain.ParseDate(req.Start)
	if err != nil {
		return nil, errors.ErrInvalidDateRange.WithDetails(map[string]interface{}{"start": req.Start})
	}
	end, err := domain.ParseDate(req.End)
	if err != nil {
		return nil, errors.ErrInvalidDateRange.WithDetails(map[string]interface{}{"end": req.End})
	}
	if end.Before(start) {
		return nil, errors.ErrInvalidDateRange.WithDetails(map[string]interface{}{
			"start": req.Start,
			"end":   req.End,
		})
	}

	return aggregator.WindowDaily(uc.table, start, end), nil
}

func (uc *AggregateUseCase) MonthlyTotals(ctx context.Context) []domain.MonthCount {
	return aggregator.MonthlyTotals(uc.table)
}

// WeekdayTotals - по умолчанию первая неделя июня
// weekdayWindowDays - длина окна по умолчанию, когда задан только from
const weekdayWindowDays = 7

func (uc *AggregateUseCase) WeekdayTotals(ctx context.Context, req dto.WeekdayRequest) ([]domain.WeekdayCount, error) {
	month := domain.FirstWeekMonth
	if req.Month != 0 {
		month = time.Month(req.Month)
	}
	from, to := domain.FirstWeekFromDay, domain.FirstWeekToDay
	if req.From != 0 {
		// без to берём неделю, начиная с from
		from = req.From
		to = min(from+weekdayWindowDays-1, 31)
	}
	if req.To != 0 {
		to = req.To
	}
	if to < from {
		return nil, errors.ErrInvalidDateRange.WithDetails(map[string]interface{}{
			"from": from,
			"to":   to,
		})
	}

	return aggregator.WeekdayTotalsInWindow(uc.table, month, from, to), nil
}
