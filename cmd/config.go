package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"repair/internal/adapters/out/gormdb"
)

// Config is read from the environment once at startup. Zero durations mean
// "use the component default".
type Config struct {
	HTTPPort string

	DBDriver       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	SQLitePath     string
	StorageTimeout time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTimeout  time.Duration

	CodeTTL           time.Duration
	CodeSweepInterval time.Duration
	CodeProbeSchedule string

	JWTSecret string
	TokenTTL  time.Duration

	SMSAPIURL string
	SMSAPIKey string

	KafkaHost              string
	KafkaOrderChangedTopic string
}

var ErrJWTSecretRequired = errors.New("JWT_SECRET is required")

// ConfigFromEnv builds a Config from getenv, usually os.Getenv.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	p := envParser{getenv: getenv}
	cfg := Config{
		HTTPPort: p.str("HTTP_PORT", "8000"),

		DBDriver:       p.str("DB_DRIVER", gormdb.DriverPostgres),
		DBHost:         p.str("DB_HOST", "localhost"),
		DBPort:         p.str("DB_PORT", "5432"),
		DBUser:         p.str("DB_USER", ""),
		DBPassword:     p.str("DB_PASSWORD", ""),
		DBName:         p.str("DB_NAME", ""),
		DBSslMode:      p.str("DB_SSLMODE", "disable"),
		SQLitePath:     p.str("SQLITE_PATH", "repair.db"),
		StorageTimeout: p.duration("STORAGE_TIMEOUT"),

		RedisAddr:     p.str("REDIS_ADDR", ""),
		RedisPassword: p.str("REDIS_PASSWORD", ""),
		RedisDB:       p.integer("REDIS_DB"),
		CacheTimeout:  p.duration("CACHE_TIMEOUT"),

		CodeTTL:           p.duration("CODE_TTL"),
		CodeSweepInterval: p.duration("CODE_SWEEP_INTERVAL"),
		CodeProbeSchedule: p.str("CODE_PROBE_SCHEDULE", ""),

		JWTSecret: p.str("JWT_SECRET", ""),
		TokenTTL:  p.duration("TOKEN_TTL"),

		SMSAPIURL: p.str("SMS_API_URL", ""),
		SMSAPIKey: p.str("SMS_API_KEY", ""),

		KafkaHost:              p.str("KAFKA_HOST", ""),
		KafkaOrderChangedTopic: p.str("KAFKA_ORDER_CHANGED_TOPIC", "order.status_changed"),
	}

	if cfg.JWTSecret == "" {
		p.problems = append(p.problems, ErrJWTSecretRequired)
	}
	if cfg.DBDriver != gormdb.DriverPostgres && cfg.DBDriver != gormdb.DriverSQLite {
		p.problems = append(p.problems, fmt.Errorf("DB_DRIVER must be %s or %s, got %q",
			gormdb.DriverPostgres, gormdb.DriverSQLite, cfg.DBDriver))
	}
	if err := errors.Join(p.problems...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == gormdb.DriverSQLite {
		return c.SQLitePath
	}
	return gormdb.PostgresDSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

type envParser struct {
	getenv   func(string) string
	problems []error
}

func (p *envParser) str(key, fallback string) string {
	if v := strings.TrimSpace(p.getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (p *envParser) duration(key string) time.Duration {
	raw := strings.TrimSpace(p.getenv(key))
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		p.problems = append(p.problems, fmt.Errorf("%s: %w", key, err))
		return 0
	}
	return d
}

func (p *envParser) integer(key string) int {
	raw := strings.TrimSpace(p.getenv(key))
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		p.problems = append(p.problems, fmt.Errorf("%s: %w", key, err))
		return 0
	}
	return n
}
