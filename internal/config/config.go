package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	Dataset   DatasetConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Recommend RecommendConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type LogConfig struct {
	Level  string
	Format string
}

const (
	DatasetSourceCSV      = "csv"
	DatasetSourcePostgres = "postgres"
)

type DatasetConfig struct {
	Source       string
	Path         string
	TitleColumn  string
	SkillsColumn string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	AutoMigrate bool

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

// Enabled reports whether enough settings are present to open a connection.
func (c DatabaseConfig) Enabled() bool {
	return c.DBHost != "" && c.DBName != "" && c.DBUser != ""
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type CORSConfig struct {
	AllowOrigins []string
}

type RecommendConfig struct {
	DefaultN int
	MaxN     int
	Alpha    float64
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads configuration from the environment. A .env file in the working directory is applied first
// without overriding variables that are already set.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromLookup(os.Getenv)
}

func FromLookup(getenv func(string) string) (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optInt := func(key string, def int) int {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optFloat := func(key string, def float64) float64 {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	optSeconds := func(key string, def time.Duration) time.Duration {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return time.Duration(v) * time.Second
	}
	optBool := func(key string, def bool) bool {
		raw := opt(key)
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Log = LogConfig{
		Level:  optDefault("LOG_LEVEL", "info"),
		Format: optDefault("LOG_FORMAT", "json"),
	}

	cfg.Dataset = DatasetConfig{
		Source:       strings.ToLower(optDefault("DATASET_SOURCE", DatasetSourceCSV)),
		Path:         optDefault("DATASET_PATH", "skills.csv"),
		TitleColumn:  optDefault("DATASET_TITLE_COLUMN", "Job Title"),
		SkillsColumn: optDefault("DATASET_SKILLS_COLUMN", "Skills_Required"),
	}
	if cfg.Dataset.Source != DatasetSourceCSV && cfg.Dataset.Source != DatasetSourcePostgres {
		invalid = append(invalid, "DATASET_SOURCE")
	}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST"),
		DBPort:                optDefault("DB_PORT", "5432"),
		DBName:                opt("DB_NAME"),
		DBUser:                opt("DB_USER"),
		DBPassword:            opt("DB_PASSWORD"),
		DBSSLMode:             optDefault("DB_SSL_MODE", "disable"),
		AutoMigrate:           optBool("DB_AUTO_MIGRATE", false),
		ConnectTimeout:        optSeconds("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optSeconds("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optSeconds("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optSeconds("DB_POOL_HEALTH_CHECK_PERIOD", 0),
	}
	if cfg.Dataset.Source == DatasetSourcePostgres && !cfg.Database.Enabled() {
		missing = append(missing, "DB_HOST", "DB_NAME", "DB_USER")
	}

	cfg.Redis = RedisConfig{
		Enabled:  optBool("REDIS_ENABLED", false),
		Host:     optDefault("REDIS_HOST", "localhost"),
		Port:     optDefault("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      optSeconds("REDIS_TTL", 600*time.Second),
	}

	cfg.CORS = CORSConfig{AllowOrigins: splitList(optDefault("CORS_ALLOW_ORIGINS", "*"))}

	cfg.Recommend = RecommendConfig{
		DefaultN: optInt("RECOMMEND_DEFAULT_N", 5),
		MaxN:     optInt("RECOMMEND_MAX_N", 100),
		Alpha:    optFloat("RECOMMEND_ALPHA", 1.0),
	}
	if cfg.Recommend.MaxN <= 0 || cfg.Recommend.DefaultN > cfg.Recommend.MaxN {
		invalid = append(invalid, "RECOMMEND_MAX_N")
	}
	if cfg.Recommend.Alpha <= 0 {
		invalid = append(invalid, "RECOMMEND_ALPHA")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
