package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mapEnv(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(mapEnv(nil))
	require.NoError(t, err)

	require.Equal(t, ":8000", cfg.ListenAddr)
	require.Equal(t, BackendMemory, cfg.Backend)
	require.Equal(t, 5*time.Second, cfg.CacheTTL)
	require.Equal(t, 0, cfg.CacheMaxEntries)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
	require.Equal(t, "visits:", cfg.RedisPrefix)
	require.Equal(t, "visits.db", cfg.SQLiteDSN)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, FormatJSON, cfg.LogFormat)
	require.Zero(t, cfg.RateRPS)
	require.Equal(t, 20, cfg.RateBurst)
	require.True(t, cfg.MetricsEnabled)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.Empty(t, cfg.TrustedProxies)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := Load(mapEnv(map[string]string{
		"LISTEN_ADDR":       ":9090",
		"STORE_BACKEND":     "Redis",
		"CACHE_TTL":         "750ms",
		"CACHE_MAX_ENTRIES": "1000",
		"REDIS_ADDR":        "redis:6379",
		"REDIS_PASSWORD":    "secret",
		"REDIS_DB":          "2",
		"REDIS_KEY_PREFIX":  "site:",
		"LOG_LEVEL":         "DEBUG",
		"LOG_FORMAT":        "text",
		"RATE_RPS":          "2.5",
		"RATE_BURST":        "5",
		"METRICS_ENABLED":   "false",
		"TRUSTED_PROXIES":   " 10.0.0.0/8, 192.168.1.1 ,",
	}))
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.ListenAddr)
	require.Equal(t, BackendRedis, cfg.Backend)
	require.Equal(t, 750*time.Millisecond, cfg.CacheTTL)
	require.Equal(t, 1000, cfg.CacheMaxEntries)
	require.Equal(t, "redis:6379", cfg.RedisAddr)
	require.Equal(t, "secret", cfg.RedisPassword)
	require.Equal(t, 2, cfg.RedisDB)
	require.Equal(t, "site:", cfg.RedisPrefix)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, FormatText, cfg.LogFormat)
	require.Equal(t, 2.5, cfg.RateRPS)
	require.Equal(t, 5, cfg.RateBurst)
	require.False(t, cfg.MetricsEnabled)
	require.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, cfg.TrustedProxies)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"STORE_BACKEND": "postgres"}},
		{"bad ttl", map[string]string{"CACHE_TTL": "five"}},
		{"negative ttl", map[string]string{"CACHE_TTL": "-1s"}},
		{"bad max entries", map[string]string{"CACHE_MAX_ENTRIES": "many"}},
		{"negative max entries", map[string]string{"CACHE_MAX_ENTRIES": "-1"}},
		{"bad redis db", map[string]string{"REDIS_DB": "zero"}},
		{"bad log format", map[string]string{"LOG_FORMAT": "xml"}},
		{"bad metrics flag", map[string]string{"METRICS_ENABLED": "maybe"}},
		{"bad rate", map[string]string{"RATE_RPS": "fast"}},
		{"rate without burst", map[string]string{"RATE_RPS": "1", "RATE_BURST": "0"}},
		{"bad trusted proxy", map[string]string{"TRUSTED_PROXIES": "10.0.0.1,proxy.local"}},
		{"bad trusted cidr", map[string]string{"TRUSTED_PROXIES": "10.0.0.0/33"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(mapEnv(tt.env))
			require.Error(t, err)
		})
	}
}
