package domain

// Round-trip distance and travel time for an ordered set of stops.
type RouteMetrics struct {
	Km   float64 `json:"km"`
	Mins int     `json:"mins"`
}

// Represents the best ordering found by the route search.
// Km and Mins are the plain round-trip metrics of Route; penalties used during
// the search are never reported. IsValid is false when no explored ordering
// satisfied the chronological constraints.
type RouteResult struct {
	Route   []Stop  `json:"route"`
	Km      float64 `json:"km"`
	Mins    int     `json:"mins"`
	IsValid bool    `json:"is_valid"`
}

// Estimated travel from the officer's last stop to a new location.
type TravelEstimate struct {
	Mins int     `json:"mins"`
	Km   float64 `json:"km"`
}

// Real-road geometry returned by an external routing service.
// It is used for display refinement only.
type RoadRoute struct {
	DistanceMeters  int         `json:"distance_meters"`
	DurationSeconds int         `json:"duration_seconds"`
	Geometry        [][]float64 `json:"geometry"`
}
