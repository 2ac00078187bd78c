package domain

import (
	"strings"
	"time"
)

// VisualizationKind - значение выпадающего списка на странице визуализации
type VisualizationKind string

const (
	VisualizationNone           VisualizationKind = "none"
	VisualizationInstallsByYear VisualizationKind = "installs-by-year"
	VisualizationTrackLength    VisualizationKind = "track-length"
	VisualizationCounterMap     VisualizationKind = "counter-map"
	VisualizationThresholdMap   VisualizationKind = "threshold-map"
)

// VisualizationKinds в порядке отображения в списке
var VisualizationKinds = []VisualizationKind{
	VisualizationNone,
	VisualizationInstallsByYear,
	VisualizationTrackLength,
	VisualizationCounterMap,
	VisualizationThresholdMap,
}

// ParseVisualizationKind; пустая строка означает отсутствие выбора
func ParseVisualizationKind(s string) (VisualizationKind, bool) {
	if s == "" {
		return VisualizationNone, true
	}
	for _, k := range VisualizationKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// ViewKey - ключ представления для этого выбора
func (k VisualizationKind) ViewKey() string {
	return string(k)
}

// PeriodKind - значение радиокнопки "на какой период"; по умолчанию ничего не выбрано
type PeriodKind string

const (
	PeriodNone  PeriodKind = ""
	PeriodDay   PeriodKind = "day"
	PeriodWeek  PeriodKind = "week"
	PeriodMonth PeriodKind = "month"
	PeriodYear  PeriodKind = "year"
)

var PeriodKinds = []PeriodKind{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear}

func ParsePeriodKind(s string) (PeriodKind, bool) {
	if s == "" {
		return PeriodNone, true
	}
	for _, k := range PeriodKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

func (k PeriodKind) ViewKey() string {
	return periodKeyPrefix + string(k)
}

const periodKeyPrefix = "period-"

// Окна, зашитые в представления "месяц" и "неделя"
var (
	AprilWindowStart = Date{Year: 2023, Month: time.April, Day: 1}
	AprilWindowEnd   = Date{Year: 2023, Month: time.May, Day: 1}
)

const (
	FirstWeekMonth   = time.June
	FirstWeekFromDay = 1
	FirstWeekToDay   = 7
)

// View - закрытый набор представлений дашборда. Реализации есть только в этом пакете.
type View interface {
	// Key - стабильный идентификатор, используется в ключах кеша
	Key() string
	isView()
}

// NoSelection - ничего не выбрано, рендерить нечего
type NoSelection struct{}

type InstallsByYearView struct {
	Counts []YearCount `json:"counts"`
}

// TrackLengthView не зависит от загруженных данных
type TrackLengthView struct {
	Rows []TrackLength `json:"rows"`
}

type CounterMapView struct {
	Counters []Counter `json:"counters"`
}

type ThresholdMapView struct {
	Counters  []CounterTotal `json:"counters"`
	Threshold float64        `json:"threshold"`
}

type HourOfDayView struct {
	Means []TimeOfDayMean `json:"means"`
}

type MonthOfAprilView struct {
	Start Date        `json:"start"`
	End   Date        `json:"end"`
	Days  []DateCount `json:"days"`
}

type YearView struct {
	Months []MonthCount `json:"months"`
}

type FirstWeekOfJuneView struct {
	Weekdays []WeekdayCount `json:"weekdays"`
}

func (NoSelection) Key() string         { return VisualizationNone.ViewKey() }
func (InstallsByYearView) Key() string  { return VisualizationInstallsByYear.ViewKey() }
func (TrackLengthView) Key() string     { return VisualizationTrackLength.ViewKey() }
func (CounterMapView) Key() string      { return VisualizationCounterMap.ViewKey() }
func (ThresholdMapView) Key() string    { return VisualizationThresholdMap.ViewKey() }
func (HourOfDayView) Key() string       { return PeriodDay.ViewKey() }
func (FirstWeekOfJuneView) Key() string { return PeriodWeek.ViewKey() }
func (MonthOfAprilView) Key() string    { return PeriodMonth.ViewKey() }
func (YearView) Key() string            { return PeriodYear.ViewKey() }

func (NoSelection) isView()         {}
func (InstallsByYearView) isView()  {}
func (TrackLengthView) isView()     {}
func (CounterMapView) isView()      {}
func (ThresholdMapView) isView()    {}
func (HourOfDayView) isView()       {}
func (MonthOfAprilView) isView()    {}
func (YearView) isView()            {}
func (FirstWeekOfJuneView) isView() {}

// ViewKeys - все представления, которые имеет смысл считать заранее
func ViewKeys() []string {
	keys := make([]string, 0, len(VisualizationKinds)+len(PeriodKinds))
	for _, k := range VisualizationKinds {
		if k != VisualizationNone {
			keys = append(keys, k.ViewKey())
		}
	}
	for _, p := range PeriodKinds {
		keys = append(keys, p.ViewKey())
	}
	return keys
}

// ParseViewKey - обратное к View.Key: ровно одно из значений будет выбрано
func ParseViewKey(key string) (VisualizationKind, PeriodKind, bool) {
	if rest, ok := strings.CutPrefix(key, periodKeyPrefix); ok {
		p, ok := ParsePeriodKind(rest)
		if !ok || p == PeriodNone {
			return "", "", false
		}
		return VisualizationNone, p, true
	}
	v, ok := ParseVisualizationKind(key)
	if !ok || v == VisualizationNone {
		return "", "", false
	}
	return v, PeriodNone, true
}
