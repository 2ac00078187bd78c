package usecase_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/velo-paris-dashboard/internal/domain"
	"github.com/velo-paris-dashboard/internal/pkg/errors"
	"github.com/velo-paris-dashboard/internal/repository/cache"
	"github.com/velo-paris-dashboard/internal/usecase"
	"github.com/velo-paris-dashboard/internal/usecase/dto"
)

func newViewUseCase(table *domain.Table) *usecase.ViewUseCase {
	return usecase.NewViewUseCase(table, usecase.NewPresenter(), cache.NewNoopCache(), time.Hour, zap.NewNop())
}

func TestViewUseCase_SelectVisualization(t *testing.T) {
	uc := newViewUseCase(sampleTable())

	t.Run("no selection renders nothing", func(t *testing.T) {
		view, err := uc.SelectVisualization(domain.VisualizationNone)
		require.NoError(t, err)
		assert.Equal(t, domain.NoSelection{}, view)
	})

	t.Run("installs by year", func(t *testing.T) {
		view, err := uc.SelectVisualization(domain.VisualizationInstallsByYear)
		require.NoError(t, err)
		assert.Equal(t, domain.InstallsByYearView{Counts: []domain.YearCount{
			{Year: 2017, Count: 2},
			{Year: 2020, Count: 2},
		}}, view)
	})

	t.Run("track length does not depend on data", func(t *testing.T) {
		view, err := newViewUseCase(domain.NewTable(nil, 0)).SelectVisualization(domain.VisualizationTrackLength)
		require.NoError(t, err)
		tl, ok := view.(domain.TrackLengthView)
		require.True(t, ok)
		assert.Equal(t, domain.TrackLengths, tl.Rows)
	})

	t.Run("counter map keeps first occurrence", func(t *testing.T) {
		view, err := uc.SelectVisualization(domain.VisualizationCounterMap)
		require.NoError(t, err)
		cm, ok := view.(domain.CounterMapView)
		require.True(t, ok)
		require.Len(t, cm.Counters, 3)
		assert.Equal(t, "Totem 73 boulevard de Sébastopol", cm.Counters[0].Name)
		assert.Nil(t, cm.Counters[2].Location)
	})

	t.Run("threshold map uses 75th percentile", func(t *testing.T) {
		view, err := uc.SelectVisualization(domain.VisualizationThresholdMap)
		require.NoError(t, err)
		tm, ok := view.(domain.ThresholdMapView)
		require.True(t, ok)
		require.Len(t, tm.Counters, 2)
		assert.InDelta(t, 562.5, tm.Threshold, 1e-9)
	})

	t.Run("threshold map on empty table", func(t *testing.T) {
		view, err := newViewUseCase(domain.NewTable(nil, 0)).SelectVisualization(domain.VisualizationThresholdMap)
		require.NoError(t, err)
		tm := view.(domain.ThresholdMapView)
		assert.Empty(t, tm.Counters)
		assert.Equal(t, 0.0, tm.Threshold)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := uc.SelectVisualization("pie-chart")
		assert.ErrorIs(t, err, errors.ErrInvalidView)
	})
}

func TestViewUseCase_SelectPeriod(t *testing.T) {
	uc := newViewUseCase(sampleTable())

	view, err := uc.SelectPeriod(domain.PeriodNone)
	require.NoError(t, err)
	assert.Equal(t, domain.NoSelection{}, view)

	view, err = uc.SelectPeriod(domain.PeriodDay)
	require.NoError(t, err)
	day := view.(domain.HourOfDayView)
	require.Len(t, day.Means, 3)
	assert.Equal(t, "08:00:00", day.Means[0].Time)
	assert.InDelta(t, 550.0/3, day.Means[0].Mean, 1e-9)

	view, err = uc.SelectPeriod(domain.PeriodMonth)
	require.NoError(t, err)
	assert.Equal(t, domain.MonthOfAprilView{
		Start: domain.AprilWindowStart,
		End:   domain.AprilWindowEnd,
		Days:  []domain.DateCount{{Date: domain.Date{Year: 2023, Month: time.April, Day: 3}, Count: 800}},
	}, view)

	view, err = uc.SelectPeriod(domain.PeriodYear)
	require.NoError(t, err)
	year := view.(domain.YearView)
	require.Len(t, year.Months, 3)
	assert.Equal(t, "2023-05", year.Months[1].Month)
	assert.Equal(t, int64(10), year.Months[1].Count)

	view, err = uc.SelectPeriod(domain.PeriodWeek)
	require.NoError(t, err)
	assert.Equal(t, domain.FirstWeekOfJuneView{Weekdays: []domain.WeekdayCount{
		{Weekday: domain.Monday, Name: "Lundi", Count: 50},
		{Weekday: domain.Tuesday, Name: "Mardi", Count: 20},
	}}, view)

	_, err = uc.SelectPeriod("decade")
	assert.ErrorIs(t, err, errors.ErrInvalidPeriod)
}

func TestViewUseCase_SelectionIsMemoryless(t *testing.T) {
	uc := newViewUseCase(sampleTable())

	first, err := uc.SelectPeriod(domain.PeriodYear)
	require.NoError(t, err)
	_, err = uc.SelectVisualization(domain.VisualizationThresholdMap)
	require.NoError(t, err)
	second, err := uc.SelectPeriod(domain.PeriodYear)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestViewUseCase_GetVisualization_CacheAside(t *testing.T) {
	ctx := context.Background()
	table := sampleTable()

	t.Run("miss computes and stores", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := usecase.NewViewUseCase(table, usecase.NewPresenter(), mockCache, time.Minute, zap.NewNop())

		mockCache.On("GetView", ctx, table.Version(), "counter-map").Return(nil, nil)
		mockCache.On("SetView", ctx, table.Version(), "counter-map", mock.Anything, time.Minute).Return(nil)

		resp, err := uc.GetVisualization(ctx, domain.VisualizationCounterMap)
		require.NoError(t, err)
		assert.Equal(t, dto.RenderMap, resp.Kind)
		require.NotNil(t, resp.Map)
		assert.Len(t, resp.Map.Markers, 2)

		mockCache.AssertExpectations(t)
	})

	t.Run("hit skips computation", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := usecase.NewViewUseCase(table, usecase.NewPresenter(), mockCache, time.Minute, zap.NewNop())

		cached, err := json.Marshal(dto.ViewResponse{Key: "period-day", Kind: dto.RenderChart, Title: "cached"})
		require.NoError(t, err)
		mockCache.On("GetView", ctx, table.Version(), "period-day").Return(cached, nil)

		resp, err := uc.GetPeriod(ctx, domain.PeriodDay)
		require.NoError(t, err)
		assert.Equal(t, "cached", resp.Title)

		mockCache.AssertExpectations(t)
		mockCache.AssertNotCalled(t, "SetView", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache errors are not fatal", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := usecase.NewViewUseCase(table, usecase.NewPresenter(), mockCache, time.Minute, zap.NewNop())

		mockCache.On("GetView", ctx, table.Version(), "period-week").Return(nil, stderrors.New("connection refused"))
		mockCache.On("SetView", ctx, table.Version(), "period-week", mock.Anything, time.Minute).Return(stderrors.New("connection refused"))

		resp, err := uc.GetPeriod(ctx, domain.PeriodWeek)
		require.NoError(t, err)
		assert.Equal(t, "Sur la première semaine de juin", resp.Title)
	})

	t.Run("no selection is never cached", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := usecase.NewViewUseCase(table, usecase.NewPresenter(), mockCache, time.Minute, zap.NewNop())

		resp, err := uc.GetPeriod(ctx, domain.PeriodNone)
		require.NoError(t, err)
		assert.Equal(t, dto.RenderNone, resp.Kind)
		mockCache.AssertNotCalled(t, "GetView", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestViewUseCase_GetPair(t *testing.T) {
	uc := newViewUseCase(sampleTable())
	ctx := context.Background()

	resp, err := uc.GetPair(ctx, dto.ViewRequest{Visualization: "threshold-map", Period: "month"})
	require.NoError(t, err)
	assert.Equal(t, "threshold-map", resp.Visualization.Key)
	assert.Equal(t, "period-month", resp.Period.Key)

	resp, err = uc.GetPair(ctx, dto.ViewRequest{})
	require.NoError(t, err)
	assert.Equal(t, dto.RenderNone, resp.Visualization.Kind)
	assert.Equal(t, dto.RenderNone, resp.Period.Kind)

	_, err = uc.GetPair(ctx, dto.ViewRequest{Visualization: "nope"})
	assert.ErrorIs(t, err, errors.ErrInvalidView)

	_, err = uc.GetPair(ctx, dto.ViewRequest{Period: "nope"})
	assert.ErrorIs(t, err, errors.ErrInvalidPeriod)
}

func TestViewUseCase_Warm(t *testing.T) {
	ctx := context.Background()
	table := sampleTable()
	mockCache := &MockCacheRepository{}
	uc := usecase.NewViewUseCase(table, usecase.NewPresenter(), mockCache, time.Minute, zap.NewNop())

	mockCache.On("SetView", ctx, table.Version(), "period-year", mock.MatchedBy(func(data []byte) bool {
		var resp dto.ViewResponse
		return json.Unmarshal(data, &resp) == nil && resp.Title == "Sur une année"
	}), time.Minute).Return(nil)

	require.NoError(t, uc.Warm(ctx, "period-year"))
	mockCache.AssertExpectations(t)

	assert.ErrorIs(t, uc.Warm(ctx, "none"), errors.ErrInvalidView)
	assert.ErrorIs(t, uc.Warm(ctx, "period-decade"), errors.ErrInvalidView)
}

func TestViewUseCase_WarmIfMissing(t *testing.T) {
	ctx := context.Background()
	table := sampleTable()

	t.Run("cached view is skipped", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := usecase.NewViewUseCase(table, usecase.NewPresenter(), mockCache, time.Minute, zap.NewNop())
		mockCache.On("ViewExists", ctx, table.Version(), "counter-map").Return(true, nil)

		warmed, err := uc.WarmIfMissing(ctx, "counter-map")
		require.NoError(t, err)
		assert.False(t, warmed)
		mockCache.AssertNotCalled(t, "SetView", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing view is computed", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := usecase.NewViewUseCase(table, usecase.NewPresenter(), mockCache, time.Minute, zap.NewNop())
		mockCache.On("ViewExists", ctx, table.Version(), "period-day").Return(false, nil)
		mockCache.On("SetView", ctx, table.Version(), "period-day", mock.Anything, time.Minute).Return(nil)

		warmed, err := uc.WarmIfMissing(ctx, "period-day")
		require.NoError(t, err)
		assert.True(t, warmed)
		mockCache.AssertExpectations(t)
	})

	t.Run("cache check error still warms", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := usecase.NewViewUseCase(table, usecase.NewPresenter(), mockCache, time.Minute, zap.NewNop())
		mockCache.On("ViewExists", ctx, table.Version(), "period-week").Return(false, stderrors.New("connection refused"))
		mockCache.On("SetView", ctx, table.Version(), "period-week", mock.Anything, time.Minute).Return(nil)

		warmed, err := uc.WarmIfMissing(ctx, "period-week")
		require.NoError(t, err)
		assert.True(t, warmed)
	})

	t.Run("unknown key", func(t *testing.T) {
		mockCache := &MockCacheRepository{}
		uc := usecase.NewViewUseCase(table, usecase.NewPresenter(), mockCache, time.Minute, zap.NewNop())

		_, err := uc.WarmIfMissing(ctx, "period-decade")
		assert.ErrorIs(t, err, errors.ErrInvalidView)
		mockCache.AssertNotCalled(t, "ViewExists", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestViewUseCase_GetByKey(t *testing.T) {
	uc := newViewUseCase(sampleTable())
	ctx := context.Background()

	for _, key := range domain.ViewKeys() {
		resp, err := uc.GetByKey(ctx, key)
		require.NoError(t, err, key)
		assert.Equal(t, key, resp.Key)
		assert.NotEqual(t, dto.RenderNone, resp.Kind, key)
	}

	_, err := uc.GetByKey(ctx, "unknown")
	assert.ErrorIs(t, err, errors.ErrInvalidView)
}
