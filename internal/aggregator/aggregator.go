// Package aggregator содержит чистые функции агрегации над неизменяемой таблицей показаний.
// Ни одна функция не меняет таблицу и не хранит состояние между вызовами;
// пустая (или nil) таблица даёт пустой, но не nil результат.
package aggregator

import (
	"fmt"
	"math"
	"sort"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/velo-paris-dashboard/internal/domain"
)

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// DailyTotals - сумма почасовых показаний всех счётчиков по дням
func DailyTotals(t *domain.Table) []domain.DateCount {
	sums := make(map[domain.Date]int64)
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		sums[r.Day()] += r.HourlyCount
	}
	return sortedDateCounts(sums)
}

// InstallsByYear - количество строк по году установки счётчика
func InstallsByYear(t *domain.Table) []domain.YearCount {
	counts := make(map[int]int)
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		if r.InstalledAt == nil {
			continue
		}
		counts[r.InstalledAt.Year()]++
	}

	out := make([]domain.YearCount, 0, len(counts))
	for year, n := range counts {
		out = append(out, domain.YearCount{Year: year, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// CountersDeduplicated - по одному счётчику на имя, побеждает первое вхождение
func CountersDeduplicated(t *domain.Table) []domain.Counter {
	seen := make(map[string]struct{})
	out := make([]domain.Counter, 0)
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		if _, ok := seen[r.CounterName]; ok {
			continue
		}
		seen[r.CounterName] = struct{}{}
		out = append(out, domain.Counter{Name: r.CounterName, Location: r.Location})
	}
	return out
}

type counterKey struct {
	name     string
	lat, lon float64
}

// CountersWithTotals - сумма показаний по (имя, широта, долгота).
// Строки без координат в группировку не попадают.
func CountersWithTotals(t *domain.Table) []domain.CounterTotal {
	sums := make(map[counterKey]int64)
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		if r.Location == nil {
			continue
		}
		sums[counterKey{r.CounterName, r.Location.Lat, r.Location.Lon}] += r.HourlyCount
	}

	out := make([]domain.CounterTotal, 0, len(sums))
	for k, total := range sums {
		out = append(out, domain.CounterTotal{
			Name:     k.name,
			Location: domain.Point{Lat: k.lat, Lon: k.lon},
			Total:    total,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Location.Lat != b.Location.Lat {
			return a.Location.Lat < b.Location.Lat
		}
		return a.Location.Lon < b.Location.Lon
	})
	return out
}

// Quantile - квантиль с линейной интерполяцией между соседними рангами.
// Для пустого набора возвращает NaN.
func Quantile(values []int64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]int64, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	q = math.Max(0, math.Min(1, q))
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	frac := pos - float64(lo)

	return float64(sorted[lo]) + (float64(sorted[hi])-float64(sorted[lo]))*frac
}

// TotalsQuantile - квантиль по суммам счётчиков
func TotalsQuantile(totals []domain.CounterTotal, q float64) float64 {
	values := make([]int64, len(totals))
	for i, ct := range totals {
		values[i] = ct.Total
	}
	return Quantile(values, q)
}

// ClassifyThreshold: high строго выше порога
func ClassifyThreshold(total int64, threshold float64) domain.Traffic {
	if float64(total) > threshold {
		return domain.TrafficHigh
	}
	return domain.TrafficLow
}

// HourlyMeans - среднее почасовое показание по времени суток
func HourlyMeans(t *domain.Table) []domain.TimeOfDayMean {
	type acc struct {
		sum int64
		n   int
	}
	groups := make(map[string]*acc)
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		key := r.TimeOfDay()
		g, ok := groups[key]
		if !ok {
			g = &acc{}
			groups[key] = g
		}
		g.sum += r.HourlyCount
		g.n++
	}

	out := make([]domain.TimeOfDayMean, 0, len(groups))
	for key, g := range groups {
		out = append(out, domain.TimeOfDayMean{Time: key, Mean: float64(g.sum) / float64(g.n)})
	}
	// HH:MM:SS сортируется лексикографически
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

// WindowDaily - суммы по дням внутри полуоткрытого интервала [start, end)
func WindowDaily(t *domain.Table, start, end domain.Date) []domain.DateCount {
	sums := make(map[domain.Date]int64)
	if !start.Before(end) {
		return sortedDateCounts(sums)
	}
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		day := r.Day()
		if day.Before(start) || !day.Before(end) {
			continue
		}
		sums[day] += r.HourlyCount
	}
	return sortedDateCounts(sums)
}

// MonthlyTotals - суммы по месяцам (ключ YYYY-MM)
func MonthlyTotals(t *domain.Table) []domain.MonthCount {
	sums := make(map[string]int64)
	labels := make(map[string]string)
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		key := r.YearMonth()
		if _, ok := labels[key]; !ok {
			labels[key] = MonthLabel(r.CountedAt.Year(), r.CountedAt.Month())
		}
		sums[key] += r.HourlyCount
	}

	out := make([]domain.MonthCount, 0, len(sums))
	for key, sum := range sums {
		out = append(out, domain.MonthCount{Month: key, Label: labels[key], Count: sum})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// MonthLabel - "Avril 2023"
func MonthLabel(year int, month time.Month) string {
	if month < time.January || month > time.December {
		return fmt.Sprintf("%d", year)
	}
	name := cases.Title(language.French).String(frenchMonths[month-1])
	return fmt.Sprintf("%s %d", name, year)
}

// WeekdayTotalsInWindow - суммы по дням недели для строк указанного месяца
// с днём месяца в [fromDay, toDay]. Год не учитывается.
func WeekdayTotalsInWindow(t *domain.Table, month time.Month, fromDay, toDay int) []domain.WeekdayCount {
	sums := make(map[domain.Weekday]int64)
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		day := r.Day()
		if day.Month != month || day.Day < fromDay || day.Day > toDay {
			continue
		}
		sums[day.Weekday()] += r.HourlyCount
	}

	out := make([]domain.WeekdayCount, 0, len(sums))
	for wd, sum := range sums {
		out = append(out, domain.WeekdayCount{Weekday: wd, Name: wd.FrenchName(), Count: sum})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	return out
}

func sortedDateCounts(sums map[domain.Date]int64) []domain.DateCount {
	out := make([]domain.DateCount, 0, len(sums))
	for d, sum := range sums {
		out = append(out, domain.DateCount{Date: d, Count: sum})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
