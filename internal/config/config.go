package config

import (
	"centre-scheduler-service/internal/domain"
	"centre-scheduler-service/internal/services"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Route cache backends.
const (
	CacheSQL   = "sql"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config covers process level configuration read from environment variables.
type Config struct {
	Environment string
	HTTPAddr    string
	CORSOrigins []string

	DBBackend string // sqlite | postgres
	DBDSN     string
	SeedPath  string

	RoutingEnabled bool
	RoutingURL     string

	CacheBackend  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RouteCacheTTL time.Duration

	BaseName string
	BaseLat  float64
	BaseLng  float64

	TuningFile string
	Tuning     Tuning
}

// Tuning holds scheduling constants that operators may override from YAML.
type Tuning struct {
	Route          services.RouteConfig        `yaml:"route"`
	DefaultWindows []domain.AvailabilityWindow `yaml:"default_windows"`
	CompareLimit   int                         `yaml:"compare_limit"`
}

// DefaultTuning is a 09:00-19:00 field day with a lunch break.
func DefaultTuning() Tuning {
	return Tuning{
		Route: services.DefaultRouteConfig(),
		DefaultWindows: []domain.AvailabilityWindow{
			{Start: "09:00", End: "13:00"},
			{Start: "14:00", End: "19:00"},
		},
		CompareLimit: 5,
	}
}

// Load reads configuration from the environment and the optional tuning file.
func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("SCHED_ENV", "development"),
		HTTPAddr:    getEnv("SCHED_HTTP_ADDR", ":8080"),
		CORSOrigins: getEnvList("SCHED_CORS_ORIGINS", []string{"http://localhost:5173"}),

		DBBackend: strings.ToLower(getEnv("SCHED_DB_BACKEND", "sqlite")),
		DBDSN:     getEnv("SCHED_DB_DSN", "data/app.db"),
		SeedPath:  getEnv("SCHED_SEED_PATH", "data/seeds/centres.json"),

		RoutingEnabled: getEnvBool("SCHED_ROUTING_ENABLED", false),
		RoutingURL:     getEnv("SCHED_ROUTING_URL", "https://router.project-osrm.org"),

		CacheBackend:  strings.ToLower(getEnv("SCHED_CACHE_BACKEND", CacheSQL)),
		RedisAddr:     getEnv("SCHED_REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("SCHED_REDIS_PASSWORD"),
		RedisDB:       getEnvInt("SCHED_REDIS_DB", 0),
		RouteCacheTTL: getEnvDuration("SCHED_ROUTE_CACHE_TTL", 24*time.Hour),

		BaseName: getEnv("SCHED_BASE_NAME", "Branch Office"),
		BaseLat:  getEnvFloat("SCHED_BASE_LAT", 13.1367),
		BaseLng:  getEnvFloat("SCHED_BASE_LNG", 78.1291),

		TuningFile: os.Getenv("SCHED_TUNING_FILE"),
	}

	tuning, err := LoadTuning(cfg.TuningFile)
	if err != nil {
		return nil, err
	}
	cfg.Tuning = tuning

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadTuning overlays the YAML file at path on DefaultTuning. An empty path
// returns the defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("load tuning: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("load tuning: parse %q: %w", path, err)
	}
	if err := t.validate(); err != nil {
		return Tuning{}, fmt.Errorf("load tuning %q: %w", path, err)
	}

	return t, nil
}

func (c *Config) validate() error {
	switch c.DBBackend {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("SCHED_DB_BACKEND must be sqlite or postgres, got %q", c.DBBackend)
	}
	if strings.TrimSpace(c.DBDSN) == "" {
		return errors.New("SCHED_DB_DSN is required")
	}

	switch c.CacheBackend {
	case CacheSQL, CacheNone:
	case CacheRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			return errors.New("SCHED_REDIS_ADDR is required when SCHED_CACHE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("SCHED_CACHE_BACKEND must be sql, redis or none, got %q", c.CacheBackend)
	}

	if c.RoutingEnabled && strings.TrimSpace(c.RoutingURL) == "" {
		return errors.New("SCHED_ROUTING_URL is required when routing is enabled")
	}

	if c.BaseLat < -90 || c.BaseLat > 90 || c.BaseLng < -180 || c.BaseLng > 180 {
		return fmt.Errorf("base coordinates out of range: (%f,%f)", c.BaseLat, c.BaseLng)
	}

	return nil
}

func (t Tuning) validate() error {
	r := t.Route
	if r.DayEndMins <= r.DayStartMins {
		return errors.New("route.day_end_mins must be after route.day_start_mins")
	}
	if r.SpeedKmh <= 0 || r.RoadFactor <= 0 {
		return errors.New("route.speed_kmh and route.road_factor must be positive")
	}
	if r.MaxStops < 0 || r.MinLegMins < 0 {
		return errors.New("route.max_stops and route.min_leg_mins must not be negative")
	}
	for i, w := range t.DefaultWindows {
		start, err := services.ParseClock(w.Start)
		if err != nil {
			return fmt.Errorf("default_windows[%d]: %w", i, err)
		}
		end, err := services.ParseClock(w.End)
		if err != nil {
			return fmt.Errorf("default_windows[%d]: %w", i, err)
		}
		if end <= start {
			return fmt.Errorf("default_windows[%d]: end %s is not after start %s", i, w.End, w.Start)
		}
	}
	return nil
}

// Base returns the configured branch office location.
func (c *Config) Base() domain.Coordinates {
	return domain.Coordinates{Lat: c.BaseLat, Lng: c.BaseLng}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvList(key string, def []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	out := make([]string, 0, 4)
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "true" || v == "1" || v == "yes" {
			return true
		}
		if v == "false" || v == "0" || v == "no" {
			return false
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
