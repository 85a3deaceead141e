// Package config loads the widget server configuration from an optional HCL
// file and LEAGUE_WIDGETS_* environment variables. Environment values win
// over file values.
//
// Example file:
//
//	listen       = ":8080"
//	api_base_url = "https://irleaguemanager.net/api/"
//
//	log {
//	  level  = "debug"
//	  format = "text"
//	}
//
//	cache {
//	  backend   = "redis"
//	  ttl       = "2m"
//	  redis_url = "redis://localhost:6379/0"
//	}
//
//	display {
//	  date_layout = "02.01.2006"
//	  time_layout = "15:04"
//	  timezone    = "Europe/Berlin"
//	}
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"league_results_renderer/internal/timefmt"
)

const envPrefix = "LEAGUE_WIDGETS_"

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Config holds all settings of the widget server.
type Config struct {
	Listen         string
	APIBaseURL     string
	RequestTimeout time.Duration

	LogLevel  string
	LogFormat string

	CacheBackend string
	CacheTTL     time.Duration
	RedisURL     string
	RedisPrefix  string

	DateLayout string
	TimeLayout string
	Timezone   string
}

// Default returns the built-in configuration.
func Default() Config {
	display := timefmt.DefaultDisplay()
	return Config{
		Listen:         ":8080",
		APIBaseURL:     "https://irleaguemanager.net/api/",
		RequestTimeout: 10 * time.Second,
		LogLevel:       "info",
		LogFormat:      "json",
		CacheBackend:   CacheMemory,
		CacheTTL:       time.Minute,
		RedisPrefix:    "league-widgets:",
		DateLayout:     display.DateLayout,
		TimeLayout:     display.TimeLayout,
		Timezone:       "UTC",
	}
}

type fileConfig struct {
	Listen         string        `hcl:"listen,optional"`
	APIBaseURL     string        `hcl:"api_base_url,optional"`
	RequestTimeout string        `hcl:"request_timeout,optional"`
	Log            *logBlock     `hcl:"log,block"`
	Cache          *cacheBlock   `hcl:"cache,block"`
	Display        *displayBlock `hcl:"display,block"`
}

type logBlock struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

type cacheBlock struct {
	Backend     string `hcl:"backend,optional"`
	TTL         string `hcl:"ttl,optional"`
	RedisURL    string `hcl:"redis_url,optional"`
	RedisPrefix string `hcl:"redis_prefix,optional"`
}

type displayBlock struct {
	DateLayout string `hcl:"date_layout,optional"`
	TimeLayout string `hcl:"time_layout,optional"`
	Timezone   string `hcl:"timezone,optional"`
}

// Load reads the file at path, when given, on top of the defaults and then
// applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse config file %s: %s", path, diags.Error())
	}
	var fc fileConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return fmt.Errorf("failed to decode config file %s: %s", path, diags.Error())
	}

	set(&c.Listen, fc.Listen)
	set(&c.APIBaseURL, fc.APIBaseURL)
	if err := setDuration(&c.RequestTimeout, fc.RequestTimeout, "request_timeout"); err != nil {
		return err
	}
	if fc.Log != nil {
		set(&c.LogLevel, fc.Log.Level)
		set(&c.LogFormat, fc.Log.Format)
	}
	if fc.Cache != nil {
		set(&c.CacheBackend, fc.Cache.Backend)
		set(&c.RedisURL, fc.Cache.RedisURL)
		set(&c.RedisPrefix, fc.Cache.RedisPrefix)
		if err := setDuration(&c.CacheTTL, fc.Cache.TTL, "cache.ttl"); err != nil {
			return err
		}
	}
	if fc.Display != nil {
		set(&c.DateLayout, fc.Display.DateLayout)
		set(&c.TimeLayout, fc.Display.TimeLayout)
		set(&c.Timezone, fc.Display.Timezone)
	}
	return nil
}

func (c *Config) applyEnv() error {
	set(&c.Listen, os.Getenv(envPrefix+"LISTEN"))
	set(&c.APIBaseURL, os.Getenv(envPrefix+"API_BASE_URL"))
	set(&c.LogLevel, os.Getenv(envPrefix+"LOG_LEVEL"))
	set(&c.LogFormat, os.Getenv(envPrefix+"LOG_FORMAT"))
	set(&c.CacheBackend, os.Getenv(envPrefix+"CACHE_BACKEND"))
	set(&c.RedisURL, os.Getenv(envPrefix+"REDIS_URL"))
	set(&c.RedisPrefix, os.Getenv(envPrefix+"REDIS_PREFIX"))
	set(&c.DateLayout, os.Getenv(envPrefix+"DATE_LAYOUT"))
	set(&c.TimeLayout, os.Getenv(envPrefix+"TIME_LAYOUT"))
	set(&c.Timezone, os.Getenv(envPrefix+"TIMEZONE"))
	if err := setDuration(&c.CacheTTL, os.Getenv(envPrefix+"CACHE_TTL"), envPrefix+"CACHE_TTL"); err != nil {
		return err
	}
	return setDuration(&c.RequestTimeout, os.Getenv(envPrefix+"REQUEST_TIMEOUT"), envPrefix+"REQUEST_TIMEOUT")
}

func set(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func setDuration(dst *time.Duration, value, name string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	*dst = d
	return nil
}

// Validate checks values that cannot be fixed up silently.
func (c Config) Validate() error {
	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		return fmt.Errorf("api_base_url must be an http(s) url, got %q", c.APIBaseURL)
	}
	switch c.CacheBackend {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("cache backend %q needs redis_url", CacheRedis)
		}
	default:
		return fmt.Errorf("unknown cache backend %q", c.CacheBackend)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Display returns the date rendering settings.
func (c Config) Display() (timefmt.Display, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return timefmt.Display{}, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return timefmt.Display{
		DateLayout: c.DateLayout,
		TimeLayout: c.TimeLayout,
		Location:   loc,
	}, nil
}
