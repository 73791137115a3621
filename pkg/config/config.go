package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App            AppConfig
	Service        ServiceConfig
	DB             DBConfig
	Redis          RedisConfig
	Cron           CronConfig
	Commission     CommissionConfig
	Reconciliation ReconciliationConfig
	FeatureFlags   FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Commission.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"COMISSOES_APP_ENV" required:"true"`
	Port         string `envconfig:"COMISSOES_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"COMISSOES_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"COMISSOES_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"COMISSOES_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"COMISSOES_DB_DSN"`
	Driver string `envconfig:"COMISSOES_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"COMISSOES_DB_HOST"`
	LegacyPort     int    `envconfig:"COMISSOES_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"COMISSOES_DB_USER"`
	LegacyPassword string `envconfig:"COMISSOES_DB_PASSWORD"`
	LegacyName     string `envconfig:"COMISSOES_DB_NAME"`
	LegacySSLMode  string `envconfig:"COMISSOES_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"COMISSOES_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"COMISSOES_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"COMISSOES_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"COMISSOES_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"COMISSOES_REDIS_URL" required:"true"`
	Address      string        `envconfig:"COMISSOES_REDIS_ADDR"`
	Password     string        `envconfig:"COMISSOES_REDIS_PASSWORD"`
	DB           int           `envconfig:"COMISSOES_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"COMISSOES_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"COMISSOES_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"COMISSOES_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"COMISSOES_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"COMISSOES_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CronConfig struct {
	Interval time.Duration `envconfig:"COMISSOES_CRON_INTERVAL" default:"1h"`
	LockTTL  time.Duration `envconfig:"COMISSOES_CRON_LOCK_TTL" default:"2h"`
}

// CommissionConfig carries the commission fallback used when a seller record
// cannot be resolved during reconciliation.
type CommissionConfig struct {
	DefaultPercent string `envconfig:"COMISSOES_COMMISSION_DEFAULT_PERCENT" default:"5.0"`
}

func (c CommissionConfig) validate() error {
	pct, err := decimal.NewFromString(c.DefaultPercent)
	if err != nil {
		return fmt.Errorf("invalid default commission percent %q: %w", c.DefaultPercent, err)
	}
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("default commission percent %q out of range", c.DefaultPercent)
	}
	return nil
}

// DefaultPercentDecimal returns the parsed default commission percentage.
// Load guarantees the value parses.
func (c CommissionConfig) DefaultPercentDecimal() decimal.Decimal {
	pct, _ := decimal.NewFromString(c.DefaultPercent)
	return pct
}

type ReconciliationConfig struct {
	BatchLimit   int           `envconfig:"COMISSOES_RECONCILIATION_BATCH_LIMIT" default:"500"`
	FetchTimeout time.Duration `envconfig:"COMISSOES_RECONCILIATION_FETCH_TIMEOUT" default:"30s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"COMISSOES_AUTO_MIGRATE" default:"false"`
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
