package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Store        StoreConfig
	Currency     CurrencyConfig
	Intake       IntakeConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines operator authentication parameters.
type AuthConfig struct {
	JWTSecret            string
	SessionTTLMinutes    int
	BcryptCost           int
	OperatorUsername     string
	OperatorPasswordHash string
	OperatorPassword     string
	LoginPerMinute       float64
}

// StoreConfig points at a remote complaint store. Empty BaseURL keeps storage local.
type StoreConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// CurrencyConfig controls the currency reference lookup.
type CurrencyConfig struct {
	URL                   string
	RefreshMinutes        int
	CacheTTLMinutes       int
	RequestTimeoutSeconds int
}

// IntakeConfig throttles public complaint submission per client.
type IntakeConfig struct {
	PerMinute float64
	Burst     int
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	runMigrations := getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true)
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "fraud-desk"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       maxConns,
			MinConns:       minConns,
			RunMigrations:  runMigrations,
			ConnMaxIdleSec: connMaxIdle,
			ConnMaxLifeSec: connMaxLife,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:            getEnv("AUTH_JWT_SECRET", "dev-secret"),
			SessionTTLMinutes:    getEnvAsInt("AUTH_SESSION_TTL_MINUTES", 60),
			BcryptCost:           getEnvAsInt("AUTH_BCRYPT_COST", 12),
			OperatorUsername:     getEnv("OPERATOR_USERNAME", "admin"),
			OperatorPasswordHash: os.Getenv("OPERATOR_PASSWORD_HASH"),
			OperatorPassword:     os.Getenv("OPERATOR_PASSWORD"),
			LoginPerMinute:       getEnvAsFloat("AUTH_LOGIN_ATTEMPTS_PER_MINUTE", 10),
		},
		Store: StoreConfig{
			BaseURL:        strings.TrimRight(os.Getenv("STORE_BASE_URL"), "/"),
			TimeoutSeconds: getEnvAsInt("STORE_TIMEOUT_SECONDS", 15),
		},
		Currency: CurrencyConfig{
			URL:                   getEnv("CURRENCY_REFERENCE_URL", "https://api.frankfurter.app/currencies"),
			RefreshMinutes:        getEnvAsInt("CURRENCY_REFRESH_MINUTES", 360),
			CacheTTLMinutes:       getEnvAsInt("CURRENCY_CACHE_TTL_MINUTES", 1440),
			RequestTimeoutSeconds: getEnvAsInt("CURRENCY_REQUEST_TIMEOUT_SECONDS", 10),
		},
		Intake: IntakeConfig{
			PerMinute: getEnvAsFloat("INTAKE_SUBMISSIONS_PER_MINUTE", 5),
			Burst:     getEnvAsInt("INTAKE_BURST", 3),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	if cfg.Auth.OperatorPasswordHash == "" && cfg.Auth.OperatorPassword == "" {
		return nil, fmt.Errorf("one of OPERATOR_PASSWORD_HASH or OPERATOR_PASSWORD is required")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// Timeout returns the remote store call timeout.
func (s StoreConfig) Timeout() time.Duration {
	return seconds(s.TimeoutSeconds)
}

// RefreshInterval returns how often the reference table is refetched.
func (c CurrencyConfig) RefreshInterval() time.Duration {
	if c.RefreshMinutes <= 0 {
		return 0
	}
	return time.Duration(c.RefreshMinutes) * time.Minute
}

// CacheTTL returns how long a fetched table stays valid in the shared cache.
func (c CurrencyConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// RequestTimeout returns the reference fetch timeout.
func (c CurrencyConfig) RequestTimeout() time.Duration {
	return seconds(c.RequestTimeoutSeconds)
}

// SessionTTL returns the operator session lifetime.
func (a AuthConfig) SessionTTL() time.Duration {
	if a.SessionTTLMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(a.SessionTTLMinutes) * time.Minute
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsFloat(key string, fallback float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
