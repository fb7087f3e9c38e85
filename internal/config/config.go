// Package config loads runtime settings from, in increasing precedence, flag
// defaults, an optional YAML file, HABITFLOW_ environment variables and
// explicitly set command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	EnvPrefix = "HABITFLOW_"
	delim     = "."
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Storage   StorageConfig   `koanf:"storage"`
	Postgres  PostgresConfig  `koanf:"postgres"`
	SQLite    SQLiteConfig    `koanf:"sqlite"`
	Redis     RedisConfig     `koanf:"redis"`
	Auth      AuthConfig      `koanf:"auth"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	App       AppConfig       `koanf:"app"`
	Log       LogConfig       `koanf:"log"`
}

type ServerConfig struct {
	Port         int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gt=0"`
}

type StorageConfig struct {
	Driver string `koanf:"driver" validate:"oneof=postgres sqlite memory"`
	// DSN overrides the connection string derived from the postgres or sqlite sections.
	DSN string `koanf:"dsn"`
}

type PostgresConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port" validate:"min=1,max=65535"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
}

type SQLiteConfig struct {
	Path string `koanf:"path"`
}

type RedisConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Host     string        `koanf:"host" validate:"required_if=Enabled true"`
	Port     string        `koanf:"port" validate:"required_if=Enabled true"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db" validate:"min=0,max=15"`
	StateTTL time.Duration `koanf:"state_ttl" validate:"gt=0"`
}

type AuthConfig struct {
	Secret   string        `koanf:"secret" validate:"required,min=16"`
	Issuer   string        `koanf:"issuer" validate:"required"`
	TokenTTL time.Duration `koanf:"token_ttl" validate:"gt=0"`
}

type RateLimitConfig struct {
	// Requests of 0 disables rate limiting.
	Requests int           `koanf:"requests" validate:"min=0"`
	Window   time.Duration `koanf:"window" validate:"gt=0"`
}

type AppConfig struct {
	Timezone string `koanf:"timezone" validate:"required,timezone"`
}

type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	File  string `koanf:"file"`
	JSON  bool   `koanf:"json"`
}

// NewFlagSet declares every configuration key as a flag. Commands may add
// their own flags before calling Load.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)

	fs.String("config", "", "path to a YAML config file")

	fs.Int("server.port", 8080, "HTTP listen port")
	fs.Duration("server.read_timeout", 10*time.Second, "HTTP read timeout")
	fs.Duration("server.write_timeout", 10*time.Second, "HTTP write timeout")

	fs.String("storage.driver", "postgres", "storage backend: postgres, sqlite or memory")
	fs.String("storage.dsn", "", "connection string, overrides postgres.* and sqlite.path")

	fs.String("postgres.host", "localhost", "postgres host")
	fs.Int("postgres.port", 5432, "postgres port")
	fs.String("postgres.user", "habitflow", "postgres user")
	fs.String("postgres.password", "", "postgres password")
	fs.String("postgres.name", "habitflow", "postgres database name")
	fs.String("postgres.sslmode", "disable", "postgres sslmode")

	fs.String("sqlite.path", "habitflow.db", "sqlite database file")

	fs.Bool("redis.enabled", false, "enable the redis state cache and rate limiter")
	fs.String("redis.host", "localhost", "redis host")
	fs.String("redis.port", "6379", "redis port")
	fs.String("redis.password", "", "redis password")
	fs.Int("redis.db", 0, "redis database index")
	fs.Duration("redis.state_ttl", 10*time.Minute, "lifetime of cached day states")

	fs.String("auth.secret", "", "HMAC secret used to sign tokens")
	fs.String("auth.issuer", "habitflow", "token issuer")
	fs.Duration("auth.token_ttl", 24*time.Hour, "token lifetime")

	fs.Int("ratelimit.requests", 100, "requests per client and window, 0 disables")
	fs.Duration("ratelimit.window", time.Minute, "rate limit window")

	fs.String("app.timezone", "UTC", "IANA zone that decides the current day")

	fs.String("log.level", "info", "log level: debug, info, warn or error")
	fs.String("log.file", "", "optional rotating log file")
	fs.Bool("log.json", false, "emit JSON log lines")

	return fs
}

// envKey maps HABITFLOW_SERVER__READ_TIMEOUT to server.read_timeout.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", delim)
}

// Load parses args into fs and merges every configuration source.
func Load(fs *pflag.FlagSet, args []string) (*Config, error) {
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("config: parse flags: %w", err)
	}

	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	k := koanf.New(delim)

	if path, _ := fs.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, delim, envKey), nil); err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	if err := k.Load(posflag.Provider(fs, delim, k), nil); err != nil {
		return nil, fmt.Errorf("config: load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("config: invalid: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

// DSN returns the connection string for the configured storage driver.
func (c *Config) DSN() string {
	if c.Storage.DSN != "" {
		return c.Storage.DSN
	}
	switch c.Storage.Driver {
	case "postgres":
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
			c.Postgres.User, c.Postgres.Password, c.Postgres.Host, c.Postgres.Port, c.Postgres.Name, c.Postgres.SSLMode)
	case "sqlite":
		return c.SQLite.Path
	}
	return ""
}

// Location resolves app.timezone. Validate has already checked it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
