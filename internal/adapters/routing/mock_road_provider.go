package routing

import (
	"centre-scheduler-service/internal/domain"
	"context"
	"sync"
)

// MockRoadProvider returns a fixed route and records every request.
type MockRoadProvider struct {
	mu    sync.Mutex
	route domain.RoadRoute
	err   error
	calls [][]domain.Coordinates
}

func NewMockRoadProvider(route domain.RoadRoute, err error) *MockRoadProvider {
	return &MockRoadProvider{route: route, err: err}
}

func (p *MockRoadProvider) GetRoadRoute(_ context.Context, points []domain.Coordinates) (domain.RoadRoute, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = append(p.calls, append([]domain.Coordinates{}, points...))
	if p.err != nil {
		return domain.RoadRoute{}, p.err
	}

	route := p.route
	if route.Geometry == nil {
		route.Geometry = make([][]float64, 0, len(points))
		for _, c := range points {
			route.Geometry = append(route.Geometry, c.CoordsToList())
		}
	}
	return route, nil
}

// Calls returns the point lists received so far.
func (p *MockRoadProvider) Calls() [][]domain.Coordinates {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]domain.Coordinates{}, p.calls...)
}
