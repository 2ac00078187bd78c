package loader

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/velo-paris-dashboard/internal/config"
	"github.com/velo-paris-dashboard/internal/domain"
	"github.com/velo-paris-dashboard/internal/pkg/errors"
)

// maxLoggedDrops - сколько отброшенных строк логируем по отдельности
const maxLoggedDrops = 20

// Форматы дат, которые встречаются в выгрузках Paris Open Data
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z07", // timestamptz::text
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	domain.DateLayout,
}

// RawRow - строка таблицы в виде строк, до разбора
type RawRow struct {
	Row         int
	CounterName string
	CountedAt   string
	InstalledAt string
	Latitude    string
	Longitude   string
	HourlyCount string
}

// Normalizer разбирает строки и применяет политику к нераспознанным.
// Не потокобезопасен: один экземпляр на одну загрузку.
type Normalizer struct {
	columns  config.ColumnsConfig
	failFast bool
	logger   *zap.Logger
	readings []domain.Reading
	dropped  int
}

func NewNormalizer(columns config.ColumnsConfig, policy string, logger *zap.Logger) *Normalizer {
	return &Normalizer{
		columns:  columns,
		failFast: policy == config.ParsePolicyFail,
		logger:   logger,
	}
}

// Add разбирает строку. Ошибка возвращается только при политике fail.
func (n *Normalizer) Add(raw RawRow) error {
	reading, err := n.parse(raw)
	if err == nil {
		n.readings = append(n.readings, reading)
		return nil
	}

	if n.failFast {
		return err
	}

	n.dropped++
	if n.dropped <= maxLoggedDrops {
		n.logger.Warn("Dropping unparseable row", zap.Error(err))
	}
	return nil
}

// Table собирает неизменяемую таблицу из принятых строк
func (n *Normalizer) Table() *domain.Table {
	if n.dropped > maxLoggedDrops {
		n.logger.Warn("More rows dropped than logged",
			zap.Int("dropped", n.dropped),
			zap.Int("logged", maxLoggedDrops))
	}
	return domain.NewTable(n.readings, n.dropped)
}

func (n *Normalizer) parse(raw RawRow) (domain.Reading, error) {
	name := strings.TrimSpace(raw.CounterName)
	if name == "" {
		return domain.Reading{}, n.parseErr(raw, n.columns.CounterName, raw.CounterName, fmt.Errorf("empty counter name"))
	}

	countedAt, err := ParseTimestamp(raw.CountedAt)
	if err != nil {
		return domain.Reading{}, n.parseErr(raw, n.columns.CountedAt, raw.CountedAt, err)
	}

	count, err := parseCount(raw.HourlyCount)
	if err != nil {
		return domain.Reading{}, n.parseErr(raw, n.columns.HourlyCount, raw.HourlyCount, err)
	}

	reading := domain.Reading{
		CounterName: name,
		CountedAt:   countedAt,
		HourlyCount: count,
	}

	if s := strings.TrimSpace(raw.InstalledAt); s != "" {
		installedAt, err := ParseTimestamp(s)
		if err != nil {
			return domain.Reading{}, n.parseErr(raw, n.columns.InstalledAt, raw.InstalledAt, err)
		}
		reading.InstalledAt = &installedAt
	}

	location, err := parseLocation(raw.Latitude, raw.Longitude)
	if err != nil {
		return domain.Reading{}, n.parseErr(raw, n.columns.Latitude+"/"+n.columns.Longitude, raw.Latitude+","+raw.Longitude, err)
	}
	reading.Location = location

	return reading, nil
}

func (n *Normalizer) parseErr(raw RawRow, column, value string, err error) *errors.ParseError {
	return &errors.ParseError{Row: raw.Row, Column: column, Value: value, Err: err}
}

// ParseTimestamp пробует известные форматы по очереди
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown timestamp format")
}

func parseCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty count")
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		if v < 0 {
			return 0, fmt.Errorf("negative count")
		}
		return v, nil
	}

	// "12.0" из выгрузок pandas
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("count must be a non-negative integer")
	}
	return int64(f), nil
}

// parseLocation: обе координаты пустые - нет локации; одна пустая или вне диапазона - ошибка
func parseLocation(latStr, lonStr string) (*domain.Point, error) {
	latStr, lonStr = strings.TrimSpace(latStr), strings.TrimSpace(lonStr)
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, fmt.Errorf("incomplete coordinates")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, err
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, err
	}
	p := domain.Point{Lat: lat, Lon: lon}
	if !p.Valid() {
		return nil, fmt.Errorf("coordinates out of range")
	}
	return &p, nil
}
