package ports

import (
	"centre-scheduler-service/internal/domain"
	"context"
)

// Contract for fetching real-road geometry for an ordered list of points.
// Results refine what is displayed; callers must tolerate failures.
type RoadRouteProvider interface {
	// Return the road route visiting points in order.
	GetRoadRoute(ctx context.Context, points []domain.Coordinates) (domain.RoadRoute, error)
}
