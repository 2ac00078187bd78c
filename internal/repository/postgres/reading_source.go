package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/velo-paris-dashboard/internal/config"
	"github.com/velo-paris-dashboard/internal/domain"
	"github.com/velo-paris-dashboard/internal/domain/repository"
	"github.com/velo-paris-dashboard/internal/pkg/errors"
	"github.com/velo-paris-dashboard/internal/repository/loader"
)

// ReadingSource читает таблицу показаний из PostgreSQL.
// Колонки называются так же, как заголовки CSV, порядок строк - физический (ctid).
type ReadingSource struct {
	db      *DB
	table   string
	columns config.ColumnsConfig
	policy  string
	logger  *zap.Logger
}

var _ repository.ReadingSource = (*ReadingSource)(nil)

func NewReadingSource(db *DB, table string, data config.DataConfig, logger *zap.Logger) *ReadingSource {
	return &ReadingSource{
		db:      db,
		table:   table,
		columns: data.Columns,
		policy:  data.ParsePolicy,
		logger:  logger.Named("postgres_source"),
	}
}

func (s *ReadingSource) Name() string {
	return "postgres:" + s.table
}

// readingRow - все поля приводятся к тексту и разбираются тем же нормализатором, что и CSV
type readingRow struct {
	CounterName string `db:"counter_name"`
	CountedAt   string `db:"counted_at"`
	InstalledAt string `db:"installed_at"`
	Latitude    string `db:"latitude"`
	Longitude   string `db:"longitude"`
	HourlyCount string `db:"hourly_count"`
}

func (s *ReadingSource) Load(ctx context.Context) (*domain.Table, error) {
	start := time.Now()

	existing, err := s.tableColumns(ctx)
	if err != nil {
		return nil, &errors.StartupError{Source: s.Name(), Err: err}
	}
	if len(existing) == 0 {
		return nil, &errors.StartupError{Source: s.Name(), Err: fmt.Errorf("table %q not found", s.table)}
	}

	query, err := s.buildQuery(existing)
	if err != nil {
		return nil, &errors.StartupError{Source: s.Name(), Err: err}
	}

	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, &errors.StartupError{Source: s.Name(), Err: fmt.Errorf("query readings: %w", err)}
	}
	defer rows.Close()

	normalizer := loader.NewNormalizer(s.columns, s.policy, s.logger)
	row := 0
	for rows.Next() {
		row++
		var r readingRow
		if err := rows.StructScan(&r); err != nil {
			return nil, &errors.StartupError{Source: s.Name(), Err: fmt.Errorf("scan reading: %w", err)}
		}
		if err := normalizer.Add(loader.RawRow{
			Row:         row,
			CounterName: r.CounterName,
			CountedAt:   r.CountedAt,
			InstalledAt: r.InstalledAt,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			HourlyCount: r.HourlyCount,
		}); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &errors.StartupError{Source: s.Name(), Err: fmt.Errorf("iterate readings: %w", err)}
	}

	table := normalizer.Table()
	s.logger.Info("Dataset loaded",
		zap.String("table", s.table),
		zap.Int("rows", table.Len()),
		zap.Int("dropped", table.Dropped()),
		zap.Duration("duration", time.Since(start)))

	return table, nil
}

func (s *ReadingSource) tableColumns(ctx context.Context) (map[string]bool, error) {
	var names []string
	err := s.db.SelectContext(ctx, &names, `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1
	`, s.table)
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}

	existing := make(map[string]bool, len(names))
	for _, n := range names {
		existing[n] = true
	}
	return existing, nil
}

func (s *ReadingSource) buildQuery(existing map[string]bool) (string, error) {
	var missing []string
	required := func(name, alias string) string {
		if !existing[name] {
			missing = append(missing, name)
		}
		return fmt.Sprintf("COALESCE(%s::text, '') AS %s", pq.QuoteIdentifier(name), alias)
	}
	optional := func(name, alias string) string {
		if name == "" || !existing[name] {
			return fmt.Sprintf("'' AS %s", alias)
		}
		return fmt.Sprintf("COALESCE(%s::text, '') AS %s", pq.QuoteIdentifier(name), alias)
	}

	// координаты имеют смысл только парой
	lat, lon := s.columns.Latitude, s.columns.Longitude
	if !existing[lat] || !existing[lon] {
		lat, lon = "", ""
	}

	selects := []string{
		required(s.columns.CounterName, "counter_name"),
		required(s.columns.CountedAt, "counted_at"),
		required(s.columns.HourlyCount, "hourly_count"),
		optional(s.columns.InstalledAt, "installed_at"),
		optional(lat, "latitude"),
		optional(lon, "longitude"),
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	return fmt.Sprintf("SELECT %s FROM %s ORDER BY ctid",
		strings.Join(selects, ", "), pq.QuoteIdentifier(s.table)), nil
}
