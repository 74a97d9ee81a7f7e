package ports

import (
	"centre-scheduler-service/internal/domain"
	"context"
)

// Contract for caching road routes by a normalized polyline key.
type RouteCache interface {
	// Return the cached route and whether it was present.
	Get(ctx context.Context, key string) (domain.RoadRoute, bool, error)
	// Store a route under key, replacing any previous value.
	Put(ctx context.Context, key string, route domain.RoadRoute) error
}
