package services

import (
	"centre-scheduler-service/internal/domain"
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDay(targetTime int) []domain.Stop {
	return []domain.Stop{
		{Name: "Base", Lat: 13.33, Lng: 77.095, Time: 540, Type: domain.StopBase},
		{Name: "A", Lat: 13.40, Lng: 77.15, Time: 600, Type: domain.StopBusy},
		{Name: "T", Lat: 13.335, Lng: 77.10, Time: targetTime, Type: domain.StopTarget},
		{Name: "B", Lat: 13.28, Lng: 77.02, Time: 660, Type: domain.StopBusy},
	}
}

func routeNames(r domain.RouteResult) []string {
	out := make([]string, 0, len(r.Route))
	for _, s := range r.Route {
		out = append(out, s.Name)
	}
	return out
}

func TestCalculateRouteMetrics(t *testing.T) {
	assert.Equal(t, domain.RouteMetrics{}, CalculateRouteMetrics(nil))
	assert.Equal(t, domain.RouteMetrics{}, CalculateRouteMetrics(testDay(570)[:1]))

	day := testDay(570)
	m := CalculateRouteMetrics([]domain.Stop{day[0], day[2], day[1], day[3]})
	assert.InDelta(t, 39.028458, m.Km, 1e-5)
	assert.Equal(t, 78, m.Mins)
}

func TestLegMinutes(t *testing.T) {
	cfg := DefaultRouteConfig()
	day := testDay(570)

	assert.Equal(t, 5, cfg.LegMinutes(day[0].Coords(), day[2].Coords()))
	assert.Equal(t, 32, cfg.LegMinutes(day[0].Coords(), day[1].Coords()))
	assert.Equal(t, 65, cfg.LegMinutes(day[1].Coords(), day[3].Coords()))
}

func TestOptimizeTargetFirst(t *testing.T) {
	res, err := CalculateOptimalRoute(context.Background(), testDay(570), 30, nil)
	require.NoError(t, err)

	assert.True(t, res.IsValid)
	assert.Equal(t, []string{"Base", "T", "A", "B"}, routeNames(res))
	assert.InDelta(t, 39.028458, res.Km, 1e-5)
}

func TestOptimizeWaitPenaltyPicksOrder(t *testing.T) {
	// At 12:30 the target cannot be last, and visiting B first waits least.
	target := 750
	res, err := CalculateOptimalRoute(context.Background(), testDay(570), 30, &target)
	require.NoError(t, err)

	assert.True(t, res.IsValid)
	assert.Equal(t, []string{"Base", "B", "T", "A"}, routeNames(res))
	assert.InDelta(t, 39.261611, res.Km, 1e-5)
}

func TestOptimizeAllInfeasibleReturnsShortest(t *testing.T) {
	target := 300
	res, err := CalculateOptimalRoute(context.Background(), testDay(570), 30, &target)
	require.NoError(t, err)

	assert.False(t, res.IsValid)
	assert.InDelta(t, 39.028458, res.Km, 1e-5)
	assert.Len(t, res.Route, 4)
	assert.Equal(t, "Base", res.Route[0].Name)
}

func TestOptimizeNoWorseThanGivenOrder(t *testing.T) {
	day := testDay(570)
	given := CalculateRouteMetrics(day)

	first, err := CalculateOptimalRoute(context.Background(), day, 30, nil)
	require.NoError(t, err)
	second, err := CalculateOptimalRoute(context.Background(), first.Route, 30, nil)
	require.NoError(t, err)

	assert.LessOrEqual(t, first.Km, given.Km)
	assert.InDelta(t, first.Km, second.Km, 1e-9)
	assert.Equal(t, first.IsValid, second.IsValid)
	// The input is not reordered.
	assert.Equal(t, []string{"Base", "A", "T", "B"}, routeNames(domain.RouteResult{Route: day}))
}

func TestOptimizeSmallInputs(t *testing.T) {
	day := testDay(570)

	res, err := CalculateOptimalRoute(context.Background(), nil, 30, nil)
	require.NoError(t, err)
	assert.True(t, res.IsValid)
	assert.Empty(t, res.Route)

	res, err = CalculateOptimalRoute(context.Background(), day[:2], 0, nil)
	require.NoError(t, err)
	assert.True(t, res.IsValid)
	assert.Equal(t, []string{"Base", "A"}, routeNames(res))
	assert.InDelta(t, 2*HaversineDistance(13.33, 77.095, 13.40, 77.15), res.Km, 1e-9)
}

func manyStops(n int) []domain.Stop {
	stops := []domain.Stop{{Name: "Base", Lat: 13.33, Lng: 77.095, Time: 540, Type: domain.StopBase}}
	for i := 1; i < n; i++ {
		stops = append(stops, domain.Stop{
			Name: string(rune('A' + i - 1)),
			Lat:  13.33 + float64(i)*0.01,
			Lng:  77.095 - float64(i%3)*0.01,
			Time: 540 + i*30,
			Type: domain.StopBusy,
		})
	}
	return stops
}

func TestOptimizeTooManyStops(t *testing.T) {
	_, err := CalculateOptimalRoute(context.Background(), manyStops(9), 30, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooManyStops))
}

func TestOptimizeHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CalculateOptimalRoute(ctx, testDay(570), 30, nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestOptimizeCustomConfig(t *testing.T) {
	cfg := DefaultRouteConfig()
	cfg.MaxStops = 3

	_, err := NewRouteOptimizer(cfg).Optimize(context.Background(), testDay(570), 30, nil)
	assert.True(t, errors.Is(err, ErrTooManyStops))
}

func TestNearestNeighborRoute(t *testing.T) {
	opt := NewRouteOptimizer(DefaultRouteConfig())

	res, err := opt.NearestNeighborRoute(context.Background(), testDay(570), 30, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Base", "T", "A", "B"}, routeNames(res))
	assert.True(t, res.IsValid)

	res, err = opt.NearestNeighborRoute(context.Background(), manyStops(12), 30, nil)
	require.NoError(t, err)
	assert.Len(t, res.Route, 12)
	assert.Equal(t, "Base", res.Route[0].Name)

	_, err = opt.NearestNeighborRoute(context.Background(), nil, 30, nil)
	assert.Error(t, err)
}

// shortestLoopKm measures every ordering of stops[1:] independently.
func shortestLoopKm(stops []domain.Stop) float64 {
	items := append([]domain.Stop(nil), stops...)
	best := math.Inf(1)
	_ = permute(items, 1, func(order []domain.Stop) error {
		best = math.Min(best, CalculateRouteMetrics(order).Km)
		return nil
	})
	return best
}

func TestOptimizeRouteProperties(t *testing.T) {
	day := testDay(570)
	base := day[0]

	tests := []struct {
		name      string
		stops     []domain.Stop
		duration  int
		wantValid bool
	}{
		{
			name:      "target among busy stops",
			stops:     day,
			duration:  30,
			wantValid: true,
		},
		{
			name:      "three stops busy only",
			stops:     []domain.Stop{base, day[1], day[3]},
			duration:  30,
			wantValid: true,
		},
		{
			name: "meetings run past day end",
			stops: []domain.Stop{
				base,
				{Name: "A", Lat: 13.5, Lng: 77.3, Time: 600, Type: domain.StopBusy},
				{Name: "F", Lat: 15.5, Lng: 79.3, Time: 660, Type: domain.StopBusy},
			},
			duration:  240,
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := append([]domain.Stop(nil), tt.stops...)

			res, err := CalculateOptimalRoute(context.Background(), tt.stops, tt.duration, nil)
			require.NoError(t, err)

			assert.Equal(t, tt.wantValid, res.IsValid)
			assert.InDelta(t, shortestLoopKm(tt.stops), res.Km, 1e-9)
			require.Len(t, res.Route, len(tt.stops))
			assert.Equal(t, "Base", res.Route[0].Name)
			assert.Equal(t, input, tt.stops)

			again, err := CalculateOptimalRoute(context.Background(), tt.stops, tt.duration, nil)
			require.NoError(t, err)
			assert.Equal(t, res, again)
		})
	}
}

func TestSimulateDayEnd(t *testing.T) {
	o := NewRouteOptimizer(DefaultRouteConfig())
	far := []domain.Stop{
		{Name: "Base", Lat: 13.33, Lng: 77.095, Type: domain.StopBase},
		{Name: "A", Lat: 13.5, Lng: 77.3, Type: domain.StopBusy},
		{Name: "F", Lat: 15.5, Lng: 79.3, Type: domain.StopBusy},
	}

	valid, _ := o.simulate(far, 240, nil)
	assert.False(t, valid, "leg to F ends after the working day")

	valid, _ = o.simulate(far[:2], 240, nil)
	assert.True(t, valid)
}

func TestCalculateRouteMetricsSymmetric(t *testing.T) {
	day := testDay(570)

	for i := range day {
		for j := range day {
			ab := CalculateRouteMetrics([]domain.Stop{day[i], day[j]})
			ba := CalculateRouteMetrics([]domain.Stop{day[j], day[i]})
			assert.Equal(t, ab, ba, "%s <-> %s", day[i].Name, day[j].Name)
		}
	}

	forward := CalculateRouteMetrics(day)
	reverse := CalculateRouteMetrics([]domain.Stop{day[0], day[3], day[2], day[1]})
	assert.InDelta(t, forward.Km, reverse.Km, 1e-9)
	assert.Equal(t, forward.Mins, reverse.Mins)
}
