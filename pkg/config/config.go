package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cache        CacheConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(cfg.FeatureFlags); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"OCPROVIDER_APP_ENV" default:"development"`
	Port     string `envconfig:"OCPROVIDER_APP_PORT" default:"8080"`
	LogLevel string `envconfig:"OCPROVIDER_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"OCPROVIDER_DB_DSN"`
	Driver string `envconfig:"OCPROVIDER_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"OCPROVIDER_DB_HOST"`
	Port     int    `envconfig:"OCPROVIDER_DB_PORT" default:"5432"`
	User     string `envconfig:"OCPROVIDER_DB_USER"`
	Password string `envconfig:"OCPROVIDER_DB_PASSWORD"`
	Name     string `envconfig:"OCPROVIDER_DB_NAME"`
	SSLMode  string `envconfig:"OCPROVIDER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"OCPROVIDER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"OCPROVIDER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"OCPROVIDER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"OCPROVIDER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"OCPROVIDER_REDIS_URL"`
	Address      string        `envconfig:"OCPROVIDER_REDIS_ADDR"`
	Password     string        `envconfig:"OCPROVIDER_REDIS_PASSWORD"`
	DB           int           `envconfig:"OCPROVIDER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"OCPROVIDER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"OCPROVIDER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"OCPROVIDER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"OCPROVIDER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"OCPROVIDER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured at all. The
// service runs without a cache when it was not.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type CacheConfig struct {
	ClientListTTL time.Duration `envconfig:"OCPROVIDER_CACHE_CLIENT_LIST_TTL" default:"30s"`
	ClientDataTTL time.Duration `envconfig:"OCPROVIDER_CACHE_CLIENT_DATA_TTL" default:"5m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"OCPROVIDER_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"OCPROVIDER_SQLITE_PATH" default:"file:ocprovider.db?cache=shared"`
	AutoMigrate bool   `envconfig:"OCPROVIDER_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN(flags FeatureFlagsConfig) error {
	if db.DSN != "" || flags.UseSQLite {
		return nil
	}

	missing := []string{}
	parts := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range dbEnvVars {
		if parts[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
