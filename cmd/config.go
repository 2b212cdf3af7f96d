package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"menuorder/internal/adapters/out/postgres"
	"menuorder/internal/pkg/logging"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks the environment variables that override the YAML files,
// e.g. MENUORDER_DB__DSN or MENUORDER_CARTS__STORE.
const EnvPrefix = "MENUORDER_"

// Cart store backends.
const (
	CartStoreMemory = "memory"
	CartStoreRedis  = "redis"
)

type Config struct {
	App struct {
		Name string `koanf:"name"`
		// Origin identifies this instance in cross-instance order changes.
		// Empty means a random id per start.
		Origin string `koanf:"origin"`
	} `koanf:"app"`

	HTTP struct {
		Addr             string        `koanf:"addr"`
		ReadTimeout      time.Duration `koanf:"read_timeout"`
		WriteTimeout     time.Duration `koanf:"write_timeout"`
		IdleTimeout      time.Duration `koanf:"idle_timeout"`
		ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
		ValidateRequests bool          `koanf:"validate_requests"`
	} `koanf:"http"`

	Log logging.Config `koanf:"log"`

	DB struct {
		Driver          string        `koanf:"driver"`
		DSN             string        `koanf:"dsn"`
		MaxOpenConns    int           `koanf:"max_open_conns"`
		MaxIdleConns    int           `koanf:"max_idle_conns"`
		ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
		SlowThreshold   time.Duration `koanf:"slow_threshold"`
	} `koanf:"db"`

	Carts struct {
		Store string        `koanf:"store"`
		TTL   time.Duration `koanf:"ttl"`
	} `koanf:"carts"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
		DB       int    `koanf:"db"`
		Prefix   string `koanf:"prefix"`
	} `koanf:"redis"`

	Checkout struct {
		Delay   time.Duration `koanf:"delay"`
		LockTTL time.Duration `koanf:"lock_ttl"`
	} `koanf:"checkout"`

	Events struct {
		// Notify relays order changes between instances over pg_notify.
		Notify     bool   `koanf:"notify"`
		Channel    string `koanf:"channel"`
		FeedBuffer int    `koanf:"feed_buffer"`
	} `koanf:"events"`

	Kafka struct {
		Brokers []string `koanf:"brokers"`
		Topic   string   `koanf:"topic"`
	} `koanf:"kafka"`

	Retention struct {
		Schedule string        `koanf:"schedule"`
		Keep     time.Duration `koanf:"keep"`
	} `koanf:"retention"`

	Seed struct {
		File string `koanf:"file"`
	} `koanf:"seed"`
}

// LoadConfig layers <dir>/base.yaml, the optional <dir>/<envName>.yaml and
// the MENUORDER_ environment variables, then validates the result.
func LoadConfig(dir, envName string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(filepath.Join(dir, "base.yaml")), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base config: %w", err)
	}

	if envName != "" {
		// Environment files are optional for local runs.
		_ = k.Load(file.Provider(filepath.Join(dir, envName+".yaml")), yaml.Parser())
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load env config: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envKey turns MENUORDER_DB__MAX_OPEN_CONNS into db.max_open_conns.
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ReplaceAll(s, "__", ".")
	return strings.ToLower(s)
}

func (c Config) Validate() error {
	var errList []error

	if c.HTTP.Addr == "" {
		errList = append(errList, errors.New("http.addr required"))
	}
	if c.DB.DSN == "" {
		errList = append(errList, errors.New("db.dsn required"))
	}
	switch c.DB.Driver {
	case postgres.DriverPostgres, postgres.DriverSQLite:
	default:
		errList = append(errList, fmt.Errorf("db.driver must be %q or %q, got %q",
			postgres.DriverPostgres, postgres.DriverSQLite, c.DB.Driver))
	}
	if c.Events.Notify && c.DB.Driver != postgres.DriverPostgres {
		errList = append(errList, errors.New("events.notify requires the postgres db driver"))
	}

	switch c.Carts.Store {
	case CartStoreMemory:
	case CartStoreRedis:
		if c.Redis.Addr == "" {
			errList = append(errList, errors.New("redis.addr required for the redis cart store"))
		}
	default:
		errList = append(errList, fmt.Errorf("carts.store must be %q or %q, got %q",
			CartStoreMemory, CartStoreRedis, c.Carts.Store))
	}

	if c.Retention.Keep < 0 {
		errList = append(errList, errors.New("retention.keep must not be negative"))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errList = append(errList, err)
	}

	return errors.Join(errList...)
}
