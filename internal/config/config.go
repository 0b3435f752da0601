// Package config reads the visit counter's settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/ryhazerus/visits"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

// Log formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config holds every setting of the visitcounter binary.
type Config struct {
	ListenAddr      string
	ShutdownTimeout time.Duration

	Backend         string
	CacheTTL        time.Duration
	CacheMaxEntries int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	SQLiteDSN string

	LogLevel  string
	LogFormat string

	RateRPS        float64
	RateBurst      int
	TrustedProxies []string

	MetricsEnabled bool
}

// Load builds a Config from getenv, usually os.Getenv. Unset variables take
// their defaults; malformed ones are errors.
func Load(getenv func(string) string) (Config, error) {
	e := env{getenv: getenv}

	cfg := Config{
		ListenAddr:      e.string("LISTEN_ADDR", ":8000"),
		ShutdownTimeout: e.duration("SHUTDOWN_TIMEOUT", 10*time.Second),

		Backend:         strings.ToLower(e.string("STORE_BACKEND", BackendMemory)),
		CacheTTL:        e.duration("CACHE_TTL", visits.DefaultTTL),
		CacheMaxEntries: e.int("CACHE_MAX_ENTRIES", 0),

		RedisAddr:     e.string("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD"),
		RedisDB:       e.int("REDIS_DB", 0),
		RedisPrefix:   e.string("REDIS_KEY_PREFIX", "visits:"),

		SQLiteDSN: e.string("SQLITE_DSN", "visits.db"),

		LogLevel:  strings.ToLower(e.string("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(e.string("LOG_FORMAT", FormatJSON)),

		RateRPS:        e.float("RATE_RPS", 0),
		RateBurst:      e.int("RATE_BURST", 20),
		TrustedProxies: e.list("TRUSTED_PROXIES"),

		MetricsEnabled: e.bool("METRICS_ENABLED", true),
	}

	if len(e.errs) > 0 {
		return Config{}, errors.Join(e.errs...)
	}

	return cfg, cfg.Validate()
}

// Validate checks settings that parse but make no sense together.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendRedis, BackendSQLite:
	default:
		return fmt.Errorf("config: STORE_BACKEND must be one of memory, redis, sqlite, got %q", c.Backend)
	}

	switch c.LogFormat {
	case FormatJSON, FormatText:
	default:
		return fmt.Errorf("config: LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}

	if c.Backend == BackendRedis && strings.TrimSpace(c.RedisAddr) == "" {
		return errors.New("config: REDIS_ADDR is required when STORE_BACKEND=redis")
	}
	if c.Backend == BackendSQLite && strings.TrimSpace(c.SQLiteDSN) == "" {
		return errors.New("config: SQLITE_DSN is required when STORE_BACKEND=sqlite")
	}
	if c.CacheTTL < 0 {
		return errors.New("config: CACHE_TTL must be >= 0")
	}
	if c.CacheMaxEntries < 0 {
		return errors.New("config: CACHE_MAX_ENTRIES must be >= 0")
	}
	if c.RateRPS < 0 {
		return errors.New("config: RATE_RPS must be >= 0")
	}
	if c.RateRPS > 0 && c.RateBurst <= 0 {
		return errors.New("config: RATE_BURST must be > 0 when RATE_RPS is set")
	}
	for _, p := range c.TrustedProxies {
		if !validProxy(p) {
			return fmt.Errorf("config: TRUSTED_PROXIES: %q is not an IP or CIDR", p)
		}
	}
	return nil
}

// env collects parse errors so Load can report all of them at once.
type env struct {
	getenv func(string) string
	errs   []error
}

func (e *env) string(k, def string) string {
	if v := e.getenv(k); v != "" {
		return v
	}
	return def
}

// list splits a comma separated value, dropping empty items.
func (e *env) list(k string) []string {
	var out []string
	for _, item := range strings.Split(e.getenv(k), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (e *env) int(k string, def int) int {
	v := e.getenv(k)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("config: %s: %w", k, err))
		return def
	}
	return i
}

func (e *env) float(k string, def float64) float64 {
	v := e.getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("config: %s: %w", k, err))
		return def
	}
	return f
}

func (e *env) bool(k string, def bool) bool {
	v := e.getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("config: %s: %w", k, err))
		return def
	}
	return b
}

func (e *env) duration(k string, def time.Duration) time.Duration {
	v := e.getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("config: %s: %w", k, err))
		return def
	}
	return d
}

func validProxy(p string) bool {
	if strings.Contains(p, "/") {
		_, _, err := net.ParseCIDR(p)
		return err == nil
	}
	return net.ParseIP(p) != nil
}
