package services

import (
	"centre-scheduler-service/internal/domain"
	"math"
)

// EstimateSpeedKmh is the flat average speed behind CalculateRouteMetrics.
// The chronological simulation uses RouteConfig's own road model instead.
const EstimateSpeedKmh = 30.0

// CalculateRouteMetrics sums haversine distance along stops in the given
// order and closes the loop back to the first stop. Fewer than two stops
// yield zero metrics.
func CalculateRouteMetrics(stops []domain.Stop) domain.RouteMetrics {
	if len(stops) < 2 {
		return domain.RouteMetrics{}
	}

	km := 0.0
	for i := 0; i < len(stops)-1; i++ {
		km += HaversineDistance(stops[i].Lat, stops[i].Lng, stops[i+1].Lat, stops[i+1].Lng)
	}
	last := stops[len(stops)-1]
	km += HaversineDistance(last.Lat, last.Lng, stops[0].Lat, stops[0].Lng)

	return domain.RouteMetrics{
		Km:   km,
		Mins: int(math.Floor(km / EstimateSpeedKmh * 60)),
	}
}
