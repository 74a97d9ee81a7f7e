package services

import (
	"centre-scheduler-service/internal/domain"
	"context"
	"errors"
	"fmt"
)

// NearestNeighborRoute sequences stops greedily from the base at stops[0],
// always driving to the closest unvisited stop next.
//
// It is the fallback for days too large for Optimize. It does not attempt
// global optimization and ignores the target's appointed time when choosing
// the order; the result's IsValid still reflects the simulated day.
func (o *RouteOptimizer) NearestNeighborRoute(
	ctx context.Context,
	stops []domain.Stop,
	durationMins int,
	targetTime *int,
) (domain.RouteResult, error) {
	if len(stops) == 0 {
		return domain.RouteResult{}, errors.New("nearest neighbor route: base stop is required")
	}
	if durationMins <= 0 {
		durationMins = DefaultMeetingMins
	}

	remaining := append([]domain.Stop{}, stops[1:]...)
	route := make([]domain.Stop, 0, len(stops))
	route = append(route, stops[0])

	current := stops[0]
	for len(remaining) > 0 {
		if err := ctx.Err(); err != nil {
			return domain.RouteResult{}, fmt.Errorf("nearest neighbor route: %w", err)
		}

		bestIdx := 0
		bestKm := HaversineDistance(current.Lat, current.Lng, remaining[0].Lat, remaining[0].Lng)

		// Select next stop by minimum distance (greedy step).
		for i := 1; i < len(remaining); i++ {
			s := remaining[i]
			km := HaversineDistance(current.Lat, current.Lng, s.Lat, s.Lng)
			// Tie-breaker keeps ordering deterministic when distances are equal.
			if km < bestKm || (km == bestKm && s.Name < remaining[bestIdx].Name) {
				bestKm = km
				bestIdx = i
			}
		}

		current = remaining[bestIdx]
		route = append(route, current)
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	m := CalculateRouteMetrics(route)
	res := domain.RouteResult{Route: route, Km: m.Km, Mins: m.Mins, IsValid: true}
	if len(route) > 1 {
		res.IsValid, _ = o.simulate(route, durationMins, targetTime)
	}
	return res, nil
}
