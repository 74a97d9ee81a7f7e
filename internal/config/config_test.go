package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBBackend)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, CacheSQL, cfg.CacheBackend)
	assert.False(t, cfg.RoutingEnabled)
	assert.Equal(t, 24*time.Hour, cfg.RouteCacheTTL)
	assert.Equal(t, DefaultTuning(), cfg.Tuning)
}

func TestLoadReadsEnv(t *testing.T) {
	t.Setenv("SCHED_ENV", "production")
	t.Setenv("SCHED_DB_BACKEND", "Postgres")
	t.Setenv("SCHED_DB_DSN", "postgres://sched@localhost/sched")
	t.Setenv("SCHED_CACHE_BACKEND", "redis")
	t.Setenv("SCHED_REDIS_ADDR", "redis:6379")
	t.Setenv("SCHED_ROUTING_ENABLED", "yes")
	t.Setenv("SCHED_ROUTE_CACHE_TTL", "90m")
	t.Setenv("SCHED_BASE_LAT", "12.97")
	t.Setenv("SCHED_BASE_LNG", "77.59")
	t.Setenv("SCHED_CORS_ORIGINS", "https://ops.example.org, http://localhost:3000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "postgres", cfg.DBBackend)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.True(t, cfg.RoutingEnabled)
	assert.Equal(t, 90*time.Minute, cfg.RouteCacheTTL)
	assert.Equal(t, 12.97, cfg.Base().Lat)
	assert.Equal(t, 77.59, cfg.Base().Lng)
	assert.Equal(t, []string{"https://ops.example.org", "http://localhost:3000"}, cfg.CORSOrigins)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"SCHED_DB_BACKEND":    "mysql",
		"SCHED_CACHE_BACKEND": "memcached",
		"SCHED_BASE_LAT":      "123",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadTuningOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
route:
  day_start_mins: 480
  max_stops: 7
default_windows:
  - start: "08:00"
    end: "12:00"
`), 0o600))

	tuning, err := LoadTuning(path)
	require.NoError(t, err)

	assert.Equal(t, 480, tuning.Route.DayStartMins)
	assert.Equal(t, 7, tuning.Route.MaxStops)
	assert.Equal(t, 1140, tuning.Route.DayEndMins)
	assert.Equal(t, 1.4, tuning.Route.RoadFactor)
	require.Len(t, tuning.DefaultWindows, 1)
	assert.Equal(t, "08:00", tuning.DefaultWindows[0].Start)
	assert.Equal(t, 5, tuning.CompareLimit)
}

func TestLoadTuningRejectsBadWindows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
default_windows:
  - start: "13:00"
    end: "12:00"
`), 0o600))

	_, err := LoadTuning(path)
	assert.Error(t, err)

	t.Setenv("SCHED_TUNING_FILE", path)
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadTuningMissingFile(t *testing.T) {
	_, err := LoadTuning(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
