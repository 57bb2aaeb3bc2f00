// Package config loads server settings from .env files, the environment and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileEnv names the YAML file applied on top of the environment
const FileEnv = "SEO_CONFIG_FILE"

type Config struct {
	Port         string        `yaml:"port"`
	GinMode      string        `yaml:"gin_mode"`
	DataDir      string        `yaml:"data_dir"`
	LogLevel     string        `yaml:"log_level"`
	LogPretty    bool          `yaml:"log_pretty"`
	DevMode      bool          `yaml:"dev_mode"`
	RetainMonths int           `yaml:"retain_months"`
	JobTTL       time.Duration `yaml:"job_ttl"`
	JobTimeout   time.Duration `yaml:"job_timeout"`
	CompareLimit int           `yaml:"compare_limit"`

	Redis     RedisConfig     `yaml:"redis"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	PageSpeed PageSpeedConfig `yaml:"pagespeed"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Fetch     FetchConfig     `yaml:"fetch"`
}

// RedisConfig selects the Redis job store. An empty Addr keeps jobs in memory.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db"`
}

// OpenAIConfig configures the AI generator. Without an APIKey the rule-based paths are used.
type OpenAIConfig struct {
	APIKey  string        `yaml:"api_key,omitempty"`
	Model   string        `yaml:"model"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type PageSpeedConfig struct {
	APIKey  string        `yaml:"api_key,omitempty"`
	Timeout time.Duration `yaml:"timeout"`
}

type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

type FetchConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxLinkChecks int           `yaml:"max_link_checks"`
	CheckLinks    bool          `yaml:"check_links"`
}

func Default() *Config {
	return &Config{
		Port:         "8082",
		GinMode:      "release",
		DataDir:      "data",
		LogLevel:     "info",
		RetainMonths: 1,
		JobTTL:       24 * time.Hour,
		JobTimeout:   2 * time.Minute,
		CompareLimit: 4,
		OpenAI: OpenAIConfig{
			Model:   "gpt-4o-mini",
			BaseURL: "https://api.openai.com/v1",
			Timeout: 60 * time.Second,
		},
		PageSpeed: PageSpeedConfig{
			Timeout: 60 * time.Second,
		},
		RateLimit: RateLimitConfig{
			PerSecond: 2,
			Burst:     5,
		},
		Fetch: FetchConfig{
			Timeout:       15 * time.Second,
			UserAgent:     "SEOBoostPro/1.0",
			MaxLinkChecks: 10,
			CheckLinks:    true,
		},
	}
}

// LoadEnvFiles loads .env.development, falling back to .env. It reports whether either was found.
func LoadEnvFiles() bool {
	if err := godotenv.Load(".env.development"); err != nil {
		if err := godotenv.Load(); err != nil {
			return false
		}
	}
	return true
}

// Load builds the configuration from defaults, the environment and the file named by
// SEO_CONFIG_FILE, in that order. The result is validated.
func Load() (*Config, error) {
	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if path := os.Getenv(FileEnv); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	e := &envReader{}

	e.str("PORT", &c.Port)
	e.str("GIN_MODE", &c.GinMode)
	e.str("DATA_DIR", &c.DataDir)
	e.str("LOG_LEVEL", &c.LogLevel)
	e.boolean("LOG_PRETTY", &c.LogPretty)
	e.boolean("DEV_MODE", &c.DevMode)
	e.integer("STATS_RETAIN_MONTHS", &c.RetainMonths)
	e.duration("JOB_TTL", &c.JobTTL)
	e.duration("JOB_TIMEOUT", &c.JobTimeout)
	e.integer("COMPARE_LIMIT", &c.CompareLimit)

	e.str("REDIS_ADDR", &c.Redis.Addr)
	e.str("REDIS_PASSWORD", &c.Redis.Password)
	e.integer("REDIS_DB", &c.Redis.DB)

	e.str("OPENAI_API_KEY", &c.OpenAI.APIKey)
	e.str("OPENAI_MODEL", &c.OpenAI.Model)
	e.str("OPENAI_BASE_URL", &c.OpenAI.BaseURL)
	e.duration("OPENAI_TIMEOUT", &c.OpenAI.Timeout)

	e.str("PAGESPEED_API_KEY", &c.PageSpeed.APIKey)
	e.duration("PAGESPEED_TIMEOUT", &c.PageSpeed.Timeout)

	e.float("RATE_LIMIT_PER_SECOND", &c.RateLimit.PerSecond)
	e.integer("RATE_LIMIT_BURST", &c.RateLimit.Burst)

	e.duration("FETCH_TIMEOUT", &c.Fetch.Timeout)
	e.str("FETCH_USER_AGENT", &c.Fetch.UserAgent)
	e.integer("FETCH_MAX_LINK_CHECKS", &c.Fetch.MaxLinkChecks)
	e.boolean("FETCH_CHECK_LINKS", &c.Fetch.CheckLinks)

	return errors.Join(e.errs...)
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	var errs []error

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %q", c.Port))
	}
	if c.RateLimit.PerSecond <= 0 {
		errs = append(errs, fmt.Errorf("rate_limit.per_second must be positive, got %v", c.RateLimit.PerSecond))
	}
	if c.RateLimit.Burst < 1 {
		errs = append(errs, fmt.Errorf("rate_limit.burst must be at least 1, got %d", c.RateLimit.Burst))
	}
	if c.JobTTL <= 0 {
		errs = append(errs, fmt.Errorf("job_ttl must be positive, got %s", c.JobTTL))
	}
	if c.JobTimeout <= 0 {
		errs = append(errs, fmt.Errorf("job_timeout must be positive, got %s", c.JobTimeout))
	}
	if c.CompareLimit < 1 {
		errs = append(errs, fmt.Errorf("compare_limit must be at least 1, got %d", c.CompareLimit))
	}
	if c.Fetch.MaxLinkChecks < 1 {
		errs = append(errs, fmt.Errorf("fetch.max_link_checks must be at least 1, got %d", c.Fetch.MaxLinkChecks))
	}
	if c.RetainMonths < 0 {
		errs = append(errs, fmt.Errorf("retain_months must not be negative, got %d", c.RetainMonths))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("data_dir must not be empty"))
	}

	return errors.Join(errs...)
}

// AIEnabled reports whether an OpenAI key is configured
func (c *Config) AIEnabled() bool {
	return c.OpenAI.APIKey != ""
}

type envReader struct {
	errs []error
}

func (e *envReader) lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *envReader) str(key string, dst *string) {
	if v, ok := e.lookup(key); ok {
		*dst = v
	}
}

func (e *envReader) boolean(key string, dst *bool) {
	if v, ok := e.lookup(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			e.errs = append(e.errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*dst = b
	}
}

func (e *envReader) integer(key string, dst *int) {
	if v, ok := e.lookup(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			e.errs = append(e.errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*dst = n
	}
}

func (e *envReader) float(key string, dst *float64) {
	if v, ok := e.lookup(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			e.errs = append(e.errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*dst = f
	}
}

func (e *envReader) duration(key string, dst *time.Duration) {
	if v, ok := e.lookup(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			e.errs = append(e.errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*dst = d
	}
}
