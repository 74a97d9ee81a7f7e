package cache

import (
	"centre-scheduler-service/internal/domain"
	"centre-scheduler-service/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SqliteRouteCache is the SQLite counterpart of SQLRouteCache.
type SqliteRouteCache struct {
	DB *sql.DB
}

func NewSqliteRouteCache(db *sql.DB) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db}
}

// Fetch a cached road route by key.
func (s *SqliteRouteCache) Get(ctx context.Context, key string) (_ domain.RoadRoute, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.sqlite.Get")(&err)

	if s.DB == nil {
		return domain.RoadRoute{}, false, errors.New("route cache: db is nil")
	}
	if key == "" {
		return domain.RoadRoute{}, false, errors.New("get route cache: key must not be empty")
	}

	q := `
	SELECT distance_meters, duration_seconds, geometry
	FROM route_cache
	WHERE route_key = ?;
	`

	var (
		r        domain.RoadRoute
		geometry string
	)
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&r.DistanceMeters, &r.DurationSeconds, &geometry)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RoadRoute{}, false, nil
	}
	if err != nil {
		return domain.RoadRoute{}, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	r.Geometry, err = decodeGeometry(geometry)
	if err != nil {
		return domain.RoadRoute{}, false, fmt.Errorf("get route cache key=%q: %w", key, err)
	}

	return r, true, nil
}

// Store a road route, replacing any previous entry for key.
func (s *SqliteRouteCache) Put(ctx context.Context, key string, r domain.RoadRoute) (err error) {
	defer obs.Time(ctx, "route.cache.sqlite.Put")(&err)

	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if err := validateRoute(key, r); err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}

	geometry, err := encodeGeometry(r.Geometry)
	if err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO route_cache (route_key, distance_meters, duration_seconds, geometry)
	VALUES (?, ?, ?, ?);
	`, key, r.DistanceMeters, r.DurationSeconds, geometry)
	if err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
