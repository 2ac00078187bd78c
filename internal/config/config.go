package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Источники данных
const (
	DataSourceCSV      = "csv"
	DataSourcePostgres = "postgres"
)

// Политика обработки строк с нераспознанными полями
const (
	ParsePolicyDrop = "drop"
	ParsePolicyFail = "fail"
)

type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// DataConfig описывает, откуда и как загружается таблица показаний счётчиков
type DataConfig struct {
	Source      string
	CSVPath     string
	Delimiter   rune
	ParsePolicy string
	Columns     ColumnsConfig
}

// ColumnsConfig - имена колонок исходной таблицы
type ColumnsConfig struct {
	CounterName string
	CountedAt   string
	InstalledAt string
	Latitude    string
	Longitude   string
	HourlyCount string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	ReadingsTable   string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	ViewCacheTTL time.Duration
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
	ShutdownTimeout   time.Duration
	PendingMinIdle    time.Duration
}

// Load читает конфигурацию из .env (если есть) и переменных окружения
func Load() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// .env опционален, переменные окружения имеют приоритет в любом случае
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		Data: DataConfig{
			Source:      strings.ToLower(v.GetString("DATA_SOURCE")),
			CSVPath:     v.GetString("DATA_CSV_PATH"),
			Delimiter:   parseDelimiter(v.GetString("DATA_CSV_DELIMITER")),
			ParsePolicy: strings.ToLower(v.GetString("DATA_PARSE_POLICY")),
			Columns: ColumnsConfig{
				CounterName: v.GetString("DATA_COLUMN_COUNTER_NAME"),
				CountedAt:   v.GetString("DATA_COLUMN_COUNTED_AT"),
				InstalledAt: v.GetString("DATA_COLUMN_INSTALLED_AT"),
				Latitude:    v.GetString("DATA_COLUMN_LATITUDE"),
				Longitude:   v.GetString("DATA_COLUMN_LONGITUDE"),
				HourlyCount: v.GetString("DATA_COLUMN_HOURLY_COUNT"),
			},
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			ReadingsTable:   v.GetString("DB_READINGS_TABLE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			ViewCacheTTL: time.Duration(v.GetInt("VIEW_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level:      v.GetString("LOG_LEVEL"),
			File:       v.GetString("LOG_FILE"),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        v.GetInt("WORKER_MAX_RETRIES"),
			ShutdownTimeout:   time.Duration(v.GetInt("WORKER_SHUTDOWN_TIMEOUT")) * time.Second,
			PendingMinIdle:    time.Duration(v.GetInt("WORKER_PENDING_MIN_IDLE")) * time.Second,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")

	v.SetDefault("DATA_SOURCE", DataSourceCSV)
	v.SetDefault("DATA_CSV_PATH", "comptage velo corrected.csv")
	v.SetDefault("DATA_CSV_DELIMITER", ",")
	v.SetDefault("DATA_PARSE_POLICY", ParsePolicyDrop)
	v.SetDefault("DATA_COLUMN_COUNTER_NAME", "Nom du compteur")
	v.SetDefault("DATA_COLUMN_COUNTED_AT", "Date comptage")
	v.SetDefault("DATA_COLUMN_INSTALLED_AT", "Date installation")
	v.SetDefault("DATA_COLUMN_LATITUDE", "Latitude")
	v.SetDefault("DATA_COLUMN_LONGITUDE", "Longitude")
	v.SetDefault("DATA_COLUMN_HOURLY_COUNT", "Comptage horaire")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_READINGS_TABLE", "comptage_velo")
	v.SetDefault("DB_MAX_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("VIEW_CACHE_TTL", 3600)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_MAX_SIZE_MB", 20)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("LOG_MAX_AGE_DAYS", 30)

	v.SetDefault("WORKER_ENABLED", false)
	v.SetDefault("WORKER_CONSUMER_GROUP", "view-warmup-workers")
	v.SetDefault("WORKER_STREAM_READ_TIMEOUT", 5000)
	v.SetDefault("WORKER_MAX_RETRIES", 3)
	v.SetDefault("WORKER_SHUTDOWN_TIMEOUT", 30)
	v.SetDefault("WORKER_PENDING_MIN_IDLE", 30)
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.Data.Source {
	case DataSourceCSV:
		if strings.TrimSpace(c.Data.CSVPath) == "" {
			return fmt.Errorf("DATA_CSV_PATH is required for csv source")
		}
	case DataSourcePostgres:
		if c.Database.ReadingsTable == "" {
			return fmt.Errorf("DB_READINGS_TABLE is required for postgres source")
		}
	default:
		return fmt.Errorf("unknown data source %q", c.Data.Source)
	}

	switch c.Data.ParsePolicy {
	case ParsePolicyDrop, ParsePolicyFail:
	default:
		return fmt.Errorf("unknown parse policy %q", c.Data.ParsePolicy)
	}

	if c.Worker.MaxRetries < 0 {
		return fmt.Errorf("WORKER_MAX_RETRIES must be >= 0")
	}

	return nil
}

func parseDelimiter(s string) rune {
	switch s {
	case "", ",":
		return ','
	case "\\t", "tab":
		return '\t'
	}
	return []rune(s)[0]
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DSN в формате key=value для драйвера pgx
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
