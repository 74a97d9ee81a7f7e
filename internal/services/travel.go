package services

import (
	"centre-scheduler-service/internal/domain"
	"math"
)

// Road model for chained travel estimates.
const (
	chainRoadFactor = 1.4
	chainSpeedKmh   = 25.0
	chainMinMins    = 5
)

// CalculateChainedTravel estimates the trip to a new target from the
// officer's last booking of the day, or from base when nothing is booked.
// The last booking is the one with the greatest End; zero-padded "HH:MM"
// strings order correctly as text and earlier entries win ties.
//
// Km is the road-inflated distance. Mins applies the road factor to the raw
// great-circle distance on its own, floored at chainMinMins.
func CalculateChainedTravel(
	schedule []domain.MeetingStop,
	targetLat, targetLng float64,
	baseLat, baseLng float64,
) domain.TravelEstimate {
	fromLat, fromLng := baseLat, baseLng

	if len(schedule) > 0 {
		last := schedule[0]
		for _, m := range schedule[1:] {
			if m.End > last.End {
				last = m
			}
		}
		fromLat, fromLng = last.Lat, last.Lng
	}

	raw := HaversineDistance(fromLat, fromLng, targetLat, targetLng)
	mins := int(math.Floor(raw * chainRoadFactor / chainSpeedKmh * 60))

	return domain.TravelEstimate{
		Mins: max(chainMinMins, mins),
		Km:   raw * chainRoadFactor,
	}
}
