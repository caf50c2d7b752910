package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "serviteca"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv   = "SERVITECA_APP_ENV"
	EnvPort     = "SERVITECA_APP_PORT"
	EnvDBDSN    = "SERVITECA_DB_DSN"
	EnvDBHost   = "SERVITECA_DB_HOST"
	EnvDBUser   = "SERVITECA_DB_USER"
	EnvDBName   = "SERVITECA_DB_NAME"
	EnvRedisURL = "SERVITECA_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	Idempotency  IdempotencyConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SERVITECA_APP_ENV" required:"true"`
	Port         string `envconfig:"SERVITECA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SERVITECA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SERVITECA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SERVITECA_DB_DSN"`
	Driver string `envconfig:"SERVITECA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SERVITECA_DB_HOST"`
	LegacyPort     int    `envconfig:"SERVITECA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SERVITECA_DB_USER"`
	LegacyPassword string `envconfig:"SERVITECA_DB_PASSWORD"`
	LegacyName     string `envconfig:"SERVITECA_DB_NAME"`
	LegacySSLMode  string `envconfig:"SERVITECA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SERVITECA_DB_MAX_OPEN_CONNS" default:"15"`
	MaxIdleConns    int           `envconfig:"SERVITECA_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SERVITECA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SERVITECA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SERVITECA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SERVITECA_REDIS_ADDR"`
	Password     string        `envconfig:"SERVITECA_REDIS_PASSWORD"`
	DB           int           `envconfig:"SERVITECA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SERVITECA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SERVITECA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SERVITECA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SERVITECA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SERVITECA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SERVITECA_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SERVITECA_AUTO_MIGRATE" default:"false"`
}

type IdempotencyConfig struct {
	DefaultTTL time.Duration `envconfig:"SERVITECA_IDEMPOTENCY_TTL" default:"24h"`
	SaleTTL    time.Duration `envconfig:"SERVITECA_IDEMPOTENCY_SALE_TTL" default:"168h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
