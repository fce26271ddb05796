package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

type SMTPSettings struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	FromName string `yaml:"from_name"`
}

type RateLimitSettings struct {
	Capacity int           `yaml:"capacity"`
	Window   time.Duration `yaml:"window"`
}

type Config struct {
	ServerPort     string            `yaml:"server_port"`
	TrustProxy     bool              `yaml:"trust_proxy"`
	SMTP           SMTPSettings      `yaml:"smtp"`
	AdminEmail     string            `yaml:"admin_email"`
	CounterBackend string            `yaml:"counter_backend"`
	RedisAddr      string            `yaml:"redis_addr"`
	RedisKey       string            `yaml:"redis_key"`
	DatabasePath   string            `yaml:"database_path"`
	RateLimit      RateLimitSettings `yaml:"rate_limit"`
	DigestSchedule string            `yaml:"digest_schedule"`
	TimezoneName   string            `yaml:"timezone"`

	Timezone *time.Location `yaml:"-"`
}

func defaults() Config {
	return Config{
		ServerPort:     "8080",
		SMTP:           SMTPSettings{Host: "smtp.gmail.com", Port: 587, FromName: "Nigeria Tax Calculator"},
		CounterBackend: BackendMemory,
		RedisAddr:      "localhost:6379",
		RedisKey:       "naija-tax:user-count",
		DatabasePath:   "./data/naija-tax.db",
		RateLimit:      RateLimitSettings{Capacity: 5, Window: time.Minute},
		TimezoneName:   "Africa/Lagos",
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.ServerPort, "SERVER_PORT")
	setString(&c.SMTP.Host, "SMTP_HOST")
	setString(&c.SMTP.User, "SMTP_USER")
	setString(&c.SMTP.Password, "SMTP_PASSWORD")
	setString(&c.SMTP.FromName, "MAIL_FROM_NAME")
	setString(&c.AdminEmail, "ADMIN_EMAIL")
	setString(&c.CounterBackend, "COUNTER_BACKEND")
	setString(&c.RedisAddr, "REDIS_ADDR")
	setString(&c.RedisKey, "REDIS_KEY")
	setString(&c.DatabasePath, "DATABASE_PATH")
	setString(&c.TimezoneName, "TIMEZONE")

	// An empty DIGEST_SCHEDULE disables the digest, so presence matters.
	if v, ok := os.LookupEnv("DIGEST_SCHEDULE"); ok {
		c.DigestSchedule = strings.TrimSpace(v)
	}

	if v := os.Getenv("SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SMTP_PORT must be a number")
		}
		c.SMTP.Port = port
	}

	if v := os.Getenv("RATE_LIMIT_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_CAPACITY must be a number")
		}
		c.RateLimit.Capacity = n
	}

	if v := os.Getenv("RATE_LIMIT_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
		}
		c.RateLimit.Window = d
	}

	if v := os.Getenv("TRUST_PROXY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TRUST_PROXY must be true or false")
		}
		c.TrustProxy = b
	}

	return nil
}

func (c *Config) validate() error {
	c.CounterBackend = strings.ToLower(strings.TrimSpace(c.CounterBackend))
	switch c.CounterBackend {
	case BackendMemory, BackendRedis, BackendSQLite:
	default:
		return fmt.Errorf("COUNTER_BACKEND must be one of memory, redis, sqlite (got %q)", c.CounterBackend)
	}

	if c.RateLimit.Capacity < 0 {
		return fmt.Errorf("RATE_LIMIT_CAPACITY must not be negative")
	}
	if c.RateLimit.Capacity > 0 && c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
	}

	tz, err := time.LoadLocation(c.TimezoneName)
	if err != nil {
		return fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	c.Timezone = tz

	return nil
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}
