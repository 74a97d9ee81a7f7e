package dto

import "centre-scheduler-service/internal/domain"

type OptimalRouteRequest struct {
	Stops        []domain.Stop `json:"stops"`
	DurationMins int           `json:"duration_mins"`
	// Optional "HH:MM" overriding the target stop's own time.
	TargetTime *string `json:"target_time"`
}

type RouteMetricsRequest struct {
	Stops []domain.Stop `json:"stops"`
}
