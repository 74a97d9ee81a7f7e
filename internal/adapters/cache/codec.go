package cache

import (
	"centre-scheduler-service/internal/domain"
	"encoding/json"
	"fmt"
)

func encodeGeometry(g [][]float64) (string, error) {
	if g == nil {
		g = [][]float64{}
	}
	b, err := json.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("encode geometry: %w", err)
	}
	return string(b), nil
}

func decodeGeometry(s string) ([][]float64, error) {
	var g [][]float64
	if err := json.Unmarshal([]byte(s), &g); err != nil {
		return nil, fmt.Errorf("decode geometry: %w", err)
	}
	return g, nil
}

func validateRoute(key string, r domain.RoadRoute) error {
	if key == "" {
		return fmt.Errorf("route key must not be empty")
	}
	if r.DistanceMeters < 0 || r.DurationSeconds < 0 {
		return fmt.Errorf("route %q: negative distance or duration", key)
	}
	return nil
}
