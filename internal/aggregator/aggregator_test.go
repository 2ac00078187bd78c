package aggregator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velo-paris-dashboard/internal/domain"
)

var paris = time.FixedZone("CEST", 2*3600)

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, paris)
}

func installed(y int) *time.Time {
	t := time.Date(y, time.January, 15, 0, 0, 0, 0, time.UTC)
	return &t
}

func pt(lat, lon float64) *domain.Point {
	return &domain.Point{Lat: lat, Lon: lon}
}

func reading(name string, ts time.Time, count int64) domain.Reading {
	return domain.Reading{CounterName: name, CountedAt: ts, HourlyCount: count}
}

func TestDailyTotals_Example(t *testing.T) {
	table := domain.NewTable([]domain.Reading{
		reading("a", at(2023, 6, 1, 8), 10),
		reading("b", at(2023, 6, 1, 9), 5),
		reading("a", at(2023, 6, 2, 8), 7),
	}, 0)

	got := DailyTotals(table)

	assert.Equal(t, []domain.DateCount{
		{Date: domain.Date{Year: 2023, Month: time.June, Day: 1}, Count: 15},
		{Date: domain.Date{Year: 2023, Month: time.June, Day: 2}, Count: 7},
	}, got)
}

func TestDailyTotals_KeysAndSum(t *testing.T) {
	rows := []domain.Reading{
		reading("a", at(2023, 3, 31, 23), 4),
		reading("a", at(2023, 4, 1, 0), 3),
		reading("b", at(2023, 4, 1, 17), 12),
		reading("c", at(2023, 1, 1, 5), 0),
		reading("c", at(2022, 12, 31, 22), 9),
	}
	table := domain.NewTable(rows, 0)

	inputDates := map[domain.Date]bool{}
	var inputSum int64
	for _, r := range rows {
		inputDates[r.Day()] = true
		inputSum += r.HourlyCount
	}

	var outputSum int64
	got := DailyTotals(table)
	for i, dc := range got {
		assert.True(t, inputDates[dc.Date], "unexpected date %s", dc.Date)
		outputSum += dc.Count
		if i > 0 {
			assert.True(t, got[i-1].Date.Before(dc.Date), "dates ascending")
		}
	}
	assert.Equal(t, inputSum, outputSum)
}

func TestInstallsByYear(t *testing.T) {
	rows := []domain.Reading{
		{CounterName: "a", InstalledAt: installed(2020)},
		{CounterName: "a", InstalledAt: installed(2020)},
		{CounterName: "b", InstalledAt: installed(2013)},
		{CounterName: "c"},
		{CounterName: "d", InstalledAt: installed(2021)},
	}
	table := domain.NewTable(rows, 0)

	first := InstallsByYear(table)
	assert.Equal(t, []domain.YearCount{
		{Year: 2013, Count: 1},
		{Year: 2020, Count: 2},
		{Year: 2021, Count: 1},
	}, first)

	assert.Equal(t, first, InstallsByYear(table), "same input, same output")
}

func TestCountersDeduplicated(t *testing.T) {
	table := domain.NewTable([]domain.Reading{
		{CounterName: "Totem 73 boulevard de Sébastopol", Location: pt(48.86, 2.35)},
		{CounterName: "27 quai de la Tournelle", Location: pt(48.85, 2.35)},
		{CounterName: "Totem 73 boulevard de Sébastopol", Location: pt(1, 1)},
		{CounterName: "Pont des Invalides"},
		{CounterName: "Pont des Invalides", Location: pt(48.86, 2.31)},
	}, 0)

	got := CountersDeduplicated(table)

	require.Len(t, got, 3)
	assert.Equal(t, "Totem 73 boulevard de Sébastopol", got[0].Name)
	assert.Equal(t, pt(48.86, 2.35), got[0].Location, "first occurrence wins")
	assert.Equal(t, "27 quai de la Tournelle", got[1].Name)
	assert.Equal(t, "Pont des Invalides", got[2].Name)
	assert.Nil(t, got[2].Location, "first row had no coordinates")
}

func TestCountersWithTotals(t *testing.T) {
	table := domain.NewTable([]domain.Reading{
		{CounterName: "b", Location: pt(48.1, 2.1), HourlyCount: 5},
		{CounterName: "a", Location: pt(48.2, 2.2), HourlyCount: 1},
		{CounterName: "b", Location: pt(48.1, 2.1), HourlyCount: 6},
		{CounterName: "b", Location: pt(48.3, 2.3), HourlyCount: 2},
		{CounterName: "c", HourlyCount: 100},
	}, 0)

	got := CountersWithTotals(table)

	assert.Equal(t, []domain.CounterTotal{
		{Name: "a", Location: domain.Point{Lat: 48.2, Lon: 2.2}, Total: 1},
		{Name: "b", Location: domain.Point{Lat: 48.1, Lon: 2.1}, Total: 11},
		{Name: "b", Location: domain.Point{Lat: 48.3, Lon: 2.3}, Total: 2},
	}, got)
}

func TestQuantile(t *testing.T) {
	assert.True(t, math.IsNaN(Quantile(nil, 0.75)))
	assert.Equal(t, 7.0, Quantile([]int64{7}, 0.75))
	// positions 0..3, q=0.75 -> 2.25 -> 30 + 0.25*(40-30)
	assert.InDelta(t, 32.5, Quantile([]int64{40, 10, 30, 20}, 0.75), 1e-9)
	assert.Equal(t, 10.0, Quantile([]int64{40, 10, 30, 20}, 0))
	assert.Equal(t, 40.0, Quantile([]int64{40, 10, 30, 20}, 1))
}

func TestClassifyThreshold(t *testing.T) {
	assert.Equal(t, domain.TrafficHigh, ClassifyThreshold(11, 10))
	assert.Equal(t, domain.TrafficLow, ClassifyThreshold(10, 10), "strictly greater")
	assert.Equal(t, domain.TrafficLow, ClassifyThreshold(0, 10))

	threshold := 32.5
	totals := []int64{0, 5, 32, 33, 40, 1000}
	for _, b := range totals {
		first := ClassifyThreshold(b, threshold)
		assert.Equal(t, first, ClassifyThreshold(b, threshold), "idempotent")
		if first != domain.TrafficHigh {
			continue
		}
		for _, a := range totals {
			if a > b {
				assert.Equal(t, domain.TrafficHigh, ClassifyThreshold(a, threshold), "monotonic: %d > %d", a, b)
			}
		}
	}
}

func TestHourlyMeans(t *testing.T) {
	table := domain.NewTable([]domain.Reading{
		reading("a", at(2023, 6, 1, 8), 10),
		reading("b", at(2023, 6, 2, 8), 20),
		reading("a", at(2023, 6, 1, 17), 3),
		reading("a", at(2023, 6, 1, 0), 1),
	}, 0)

	assert.Equal(t, []domain.TimeOfDayMean{
		{Time: "00:00:00", Mean: 1},
		{Time: "08:00:00", Mean: 15},
		{Time: "17:00:00", Mean: 3},
	}, HourlyMeans(table))
}

func TestWindowDaily_HalfOpen(t *testing.T) {
	table := domain.NewTable([]domain.Reading{
		reading("a", at(2023, 3, 31, 23), 100),
		reading("a", at(2023, 4, 1, 0), 1),
		reading("b", at(2023, 4, 1, 12), 2),
		reading("a", at(2023, 4, 30, 23), 3),
		reading("a", at(2023, 5, 1, 0), 1000),
	}, 0)

	got := WindowDaily(table, domain.AprilWindowStart, domain.AprilWindowEnd)

	assert.Equal(t, []domain.DateCount{
		{Date: domain.Date{Year: 2023, Month: time.April, Day: 1}, Count: 3},
		{Date: domain.Date{Year: 2023, Month: time.April, Day: 30}, Count: 3},
	}, got)

	assert.Empty(t, WindowDaily(table, domain.AprilWindowEnd, domain.AprilWindowStart))
	assert.Empty(t, WindowDaily(table, domain.AprilWindowStart, domain.AprilWindowStart))
}

func TestMonthlyTotals(t *testing.T) {
	table := domain.NewTable([]domain.Reading{
		reading("a", at(2023, 4, 2, 8), 10),
		reading("a", at(2022, 12, 2, 8), 1),
		reading("b", at(2023, 4, 30, 8), 5),
		reading("a", at(2023, 8, 15, 8), 2),
	}, 0)

	assert.Equal(t, []domain.MonthCount{
		{Month: "2022-12", Label: "Décembre 2022", Count: 1},
		{Month: "2023-04", Label: "Avril 2023", Count: 15},
		{Month: "2023-08", Label: "Août 2023", Count: 2},
	}, MonthlyTotals(table))
}

func TestWeekdayTotalsInWindow_FirstWeekOfJune(t *testing.T) {
	var rows []domain.Reading
	for day := 1; day <= 7; day++ {
		rows = append(rows, reading("a", at(2023, 6, day, 9), int64(day*10)))
	}
	// outside the window
	rows = append(rows,
		reading("a", at(2023, 6, 8, 9), 999),
		reading("a", at(2023, 5, 1, 9), 999),
	)
	table := domain.NewTable(rows, 0)

	got := WeekdayTotalsInWindow(table, time.June, 1, 7)

	// 2023-06-01 is a Thursday
	require.Len(t, got, 7)
	expected := map[domain.Weekday]int64{
		domain.Thursday: 10, domain.Friday: 20, domain.Saturday: 30, domain.Sunday: 40,
		domain.Monday: 50, domain.Tuesday: 60, domain.Wednesday: 70,
	}
	for i, wc := range got {
		assert.Equal(t, domain.Weekday(i), wc.Weekday, "ordered from Monday")
		assert.Equal(t, expected[wc.Weekday], wc.Count)
		assert.Equal(t, wc.Weekday.FrenchName(), wc.Name)
	}
	assert.Equal(t, "Lundi", got[0].Name)
}

func TestWeekdayTotalsInWindow_IgnoresYear(t *testing.T) {
	table := domain.NewTable([]domain.Reading{
		reading("a", at(2022, 6, 6, 9), 1), // Monday
		reading("a", at(2023, 6, 5, 9), 2), // Monday
	}, 0)

	assert.Equal(t, []domain.WeekdayCount{
		{Weekday: domain.Monday, Name: "Lundi", Count: 3},
	}, WeekdayTotalsInWindow(table, time.June, 1, 7))
}

func TestEmptyTable(t *testing.T) {
	for name, table := range map[string]*domain.Table{
		"nil":   nil,
		"empty": domain.NewTable(nil, 0),
	} {
		t.Run(name, func(t *testing.T) {
			assert.NotNil(t, DailyTotals(table))
			assert.Empty(t, DailyTotals(table))
			assert.Empty(t, InstallsByYear(table))
			assert.NotNil(t, InstallsByYear(table))
			assert.Empty(t, CountersDeduplicated(table))
			assert.NotNil(t, CountersDeduplicated(table))
			assert.Empty(t, CountersWithTotals(table))
			assert.NotNil(t, CountersWithTotals(table))
			assert.Empty(t, HourlyMeans(table))
			assert.NotNil(t, HourlyMeans(table))
			assert.Empty(t, WindowDaily(table, domain.AprilWindowStart, domain.AprilWindowEnd))
			assert.NotNil(t, WindowDaily(table, domain.AprilWindowStart, domain.AprilWindowEnd))
			assert.Empty(t, MonthlyTotals(table))
			assert.NotNil(t, MonthlyTotals(table))
			assert.Empty(t, WeekdayTotalsInWindow(table, time.June, 1, 7))
			assert.NotNil(t, WeekdayTotalsInWindow(table, time.June, 1, 7))
		})
	}
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Février 2024", MonthLabel(2024, time.February))
	assert.Equal(t, "2024", MonthLabel(2024, 13))
}
