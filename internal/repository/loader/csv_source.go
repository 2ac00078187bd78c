package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/velo-paris-dashboard/internal/config"
	"github.com/velo-paris-dashboard/internal/domain"
	"github.com/velo-paris-dashboard/internal/domain/repository"
	"github.com/velo-paris-dashboard/internal/pkg/errors"
)

// CSVSource читает таблицу показаний из CSV файла с заголовком
type CSVSource struct {
	cfg    config.DataConfig
	logger *zap.Logger
}

var _ repository.ReadingSource = (*CSVSource)(nil)

func NewCSVSource(cfg config.DataConfig, logger *zap.Logger) *CSVSource {
	return &CSVSource{
		cfg:    cfg,
		logger: logger.Named("csv_source"),
	}
}

func (s *CSVSource) Name() string {
	return "csv:" + s.cfg.CSVPath
}

func (s *CSVSource) Load(ctx context.Context) (*domain.Table, error) {
	start := time.Now()

	f, err := os.Open(s.cfg.CSVPath)
	if err != nil {
		return nil, &errors.StartupError{Source: s.Name(), Err: err}
	}
	defer f.Close()

	table, err := s.read(ctx, f)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Dataset loaded",
		zap.String("path", s.cfg.CSVPath),
		zap.Int("rows", table.Len()),
		zap.Int("dropped", table.Dropped()),
		zap.Duration("duration", time.Since(start)))

	return table, nil
}

func (s *CSVSource) read(ctx context.Context, r io.Reader) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = s.cfg.Delimiter
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		return nil, &errors.StartupError{Source: s.Name(), Err: fmt.Errorf("read header: %w", err)}
	}

	idx, err := resolveColumns(header, s.cfg.Columns)
	if err != nil {
		return nil, &errors.StartupError{Source: s.Name(), Err: err}
	}

	normalizer := NewNormalizer(s.cfg.Columns, s.cfg.ParsePolicy, s.logger)

	// строка 1 - заголовок
	for row := 2; ; row++ {
		if row%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// битая CSV структура (кавычки и т.п.) - это не ошибка значения, читать дальше нельзя
			return nil, &errors.StartupError{Source: s.Name(), Err: err}
		}

		if err := normalizer.Add(idx.raw(row, record)); err != nil {
			return nil, err
		}
	}

	return normalizer.Table(), nil
}

// columnIndex - позиции нужных колонок в заголовке; -1 для отсутствующих опциональных
type columnIndex struct {
	counterName int
	countedAt   int
	installedAt int
	latitude    int
	longitude   int
	hourlyCount int
}

func resolveColumns(header []string, cols config.ColumnsConfig) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, ok := positions[h]; !ok {
			positions[h] = i
		}
	}

	var missing []string
	required := func(name string) int {
		i, ok := positions[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}
	optional := func(name string) int {
		if i, ok := positions[name]; ok && name != "" {
			return i
		}
		return -1
	}

	idx := columnIndex{
		counterName: required(cols.CounterName),
		countedAt:   required(cols.CountedAt),
		hourlyCount: required(cols.HourlyCount),
		installedAt: optional(cols.InstalledAt),
		latitude:    optional(cols.Latitude),
		longitude:   optional(cols.Longitude),
	}
	if len(missing) > 0 {
		return columnIndex{}, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	// координаты имеют смысл только парой
	if idx.latitude < 0 || idx.longitude < 0 {
		idx.latitude, idx.longitude = -1, -1
	}
	return idx, nil
}

func (c columnIndex) raw(row int, record []string) RawRow {
	field := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return record[i]
	}
	return RawRow{
		Row:         row,
		CounterName: field(c.counterName),
		CountedAt:   field(c.countedAt),
		InstalledAt: field(c.installedAt),
		Latitude:    field(c.latitude),
		Longitude:   field(c.longitude),
		HourlyCount: field(c.hourlyCount),
	}
}
