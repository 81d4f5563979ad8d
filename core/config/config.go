package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strings"
	"time"

	"planwise-api/core/constants"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "PLANWISE"

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Security SecurityConfig `mapstructure:"security"`
}

type AppConfig struct {
	Name            string `mapstructure:"name"`
	Env             string `mapstructure:"env"`
	Port            int    `mapstructure:"port"`
	DefaultTimezone string `mapstructure:"default_timezone"`
	LogLevel        string `mapstructure:"log_level"`
	LogFormat       string `mapstructure:"log_format"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"ssl_mode"` // disable, require, verify-ca, verify-full
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnectTimeout  int           `mapstructure:"connect_timeout"` // in seconds
	QueryTimeout    time.Duration `mapstructure:"query_timeout"`
}

type RedisConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Addr       string        `mapstructure:"addr"`
	Password   string        `mapstructure:"password"`
	DB         int           `mapstructure:"db"`
	OverlapTTL time.Duration `mapstructure:"overlap_ttl"`
}

type QueueConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	Concurrency int  `mapstructure:"concurrency"`
}

type SecurityConfig struct {
	BcryptCost     int           `mapstructure:"bcrypt_cost"`
	JWTSecret      string        `mapstructure:"jwt_secret"`
	TokenTTL       time.Duration `mapstructure:"token_ttl"`
	RateLimitRPS   float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
	// TrustedProxies lists the CIDRs allowed to set X-Forwarded-For. Empty
	// means the peer address is the client.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// Load reads .env (if present), config.yaml (if present) and PLANWISE_*
// environment variables, in increasing order of precedence.
func Load(paths ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "planwise-api")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", 7070)
	v.SetDefault("app.default_timezone", "UTC")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_format", "json")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "planwise")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.connect_timeout", 5)
	v.SetDefault("database.query_timeout", constants.DefaultRequestTimeout)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.overlap_ttl", 10*time.Minute)

	v.SetDefault("queue.enabled", false)
	v.SetDefault("queue.concurrency", 4)

	v.SetDefault("security.bcrypt_cost", 12)
	v.SetDefault("security.jwt_secret", "")
	v.SetDefault("security.token_ttl", 24*time.Hour)
	v.SetDefault("security.rate_limit_rps", 5)
	v.SetDefault("security.rate_limit_burst", 10)
	v.SetDefault("security.trusted_proxies", []string{})
}

func (c *Config) Validate() error {
	if c.Security.JWTSecret == "" {
		return errors.New("security.jwt_secret must be set")
	}
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("security.bcrypt_cost %d out of range [4,31]", c.Security.BcryptCost)
	}
	if c.Queue.Enabled && !c.Redis.Enabled {
		return errors.New("queue.enabled requires redis.enabled")
	}
	for _, cidr := range c.Security.TrustedProxies {
		if _, _, err := net.ParseCIDR(cidr); err != nil {
			return fmt.Errorf("security.trusted_proxies: %w", err)
		}
	}
	if _, err := time.LoadLocation(c.App.DefaultTimezone); err != nil {
		return fmt.Errorf("app.default_timezone: %w", err)
	}
	return nil
}

// Location returns the timezone used for zone-less timestamps, or UTC when
// the name does not load.
func (a AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(a.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
