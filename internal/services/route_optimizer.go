package services

import (
	"centre-scheduler-service/internal/domain"
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrTooManyStops is returned when a route exceeds the exact search's
// supported size.
var ErrTooManyStops = errors.New("too many stops for exact route search")

// DefaultMeetingMins is the meeting length assumed when none is given.
const DefaultMeetingMins = 30

// RouteConfig holds the constants of the chronological route simulation.
type RouteConfig struct {
	DayStartMins      int     `yaml:"day_start_mins"`
	DayEndMins        int     `yaml:"day_end_mins"`
	RoadFactor        float64 `yaml:"road_factor"`
	SpeedKmh          float64 `yaml:"speed_kmh"`
	MinLegMins        int     `yaml:"min_leg_mins"`
	InvalidPenalty    float64 `yaml:"invalid_penalty"`
	WaitPenaltyPerMin float64 `yaml:"wait_penalty_per_min"`
	MaxStops          int     `yaml:"max_stops"`
}

// DefaultRouteConfig models a 09:00-19:00 operating day on roads 1.4x
// longer than the great-circle distance, driven at 25 km/h.
func DefaultRouteConfig() RouteConfig {
	return RouteConfig{
		DayStartMins:      540,
		DayEndMins:        1140,
		RoadFactor:        1.4,
		SpeedKmh:          25,
		MinLegMins:        5,
		InvalidPenalty:    9999,
		WaitPenaltyPerMin: 0.1,
		MaxStops:          8,
	}
}

// LegMinutes estimates road travel time between two points.
func (c RouteConfig) LegMinutes(from, to domain.Coordinates) int {
	km := HaversineDistance(from.Lat, from.Lng, to.Lat, to.Lng)
	mins := int(math.Floor(km * c.RoadFactor / c.SpeedKmh * 60))
	return max(c.MinLegMins, mins)
}

// RouteOptimizer finds the cheapest visiting order for a day's stops by
// exhaustive search. It holds no mutable state and is safe for concurrent use.
type RouteOptimizer struct {
	cfg RouteConfig
}

func NewRouteOptimizer(cfg RouteConfig) *RouteOptimizer {
	return &RouteOptimizer{cfg: cfg}
}

func (o *RouteOptimizer) Config() RouteConfig { return o.cfg }

// Optimize searches every ordering of stops[1:] behind the fixed base
// stops[0].
//
// Each ordering is ranked by round-trip km plus InvalidPenalty when the
// simulated day breaks a constraint, plus WaitPenaltyPerMin for every minute
// spent waiting for the target's appointed time. The winner's plain metrics
// are reported, so an all-infeasible day still returns its least-bad order
// with IsValid false. targetTime overrides the target stop's own Time when
// non-nil. ctx is checked once per ordering.
func (o *RouteOptimizer) Optimize(
	ctx context.Context,
	stops []domain.Stop,
	durationMins int,
	targetTime *int,
) (domain.RouteResult, error) {
	if durationMins <= 0 {
		durationMins = DefaultMeetingMins
	}

	if len(stops) <= 2 {
		route := append([]domain.Stop{}, stops...)
		m := CalculateRouteMetrics(route)
		return domain.RouteResult{Route: route, Km: m.Km, Mins: m.Mins, IsValid: true}, nil
	}

	if o.cfg.MaxStops > 0 && len(stops) > o.cfg.MaxStops {
		return domain.RouteResult{}, fmt.Errorf(
			"optimize route: %d stops (max %d): %w",
			len(stops), o.cfg.MaxStops, ErrTooManyStops,
		)
	}

	base := stops[0]
	rest := append([]domain.Stop{}, stops[1:]...)

	var (
		bestRoute []domain.Stop
		bestCost  = math.Inf(1)
		bestValid bool
	)

	err := permute(rest, 0, func(perm []domain.Stop) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		route := make([]domain.Stop, 0, len(perm)+1)
		route = append(route, base)
		route = append(route, perm...)

		m := CalculateRouteMetrics(route)
		valid, wait := o.simulate(route, durationMins, targetTime)

		cost := m.Km + float64(wait)*o.cfg.WaitPenaltyPerMin
		if !valid {
			cost += o.cfg.InvalidPenalty
		}

		if cost < bestCost {
			bestCost = cost
			bestRoute = route
			bestValid = valid
		}
		return nil
	})
	if err != nil {
		return domain.RouteResult{}, fmt.Errorf("optimize route: %w", err)
	}

	m := CalculateRouteMetrics(bestRoute)
	return domain.RouteResult{Route: bestRoute, Km: m.Km, Mins: m.Mins, IsValid: bestValid}, nil
}

// simulate walks route from DayStartMins and reports whether the day is
// feasible and how many minutes were spent waiting for the target.
func (o *RouteOptimizer) simulate(route []domain.Stop, durationMins int, targetTime *int) (bool, int) {
	now := o.cfg.DayStartMins + o.cfg.LegMinutes(route[0].Coords(), route[1].Coords())
	wait := 0

	for i := 1; i < len(route); i++ {
		now = RoundToNextHalfHour(now)

		stop := route[i]
		if stop.Type == domain.StopTarget {
			constraint := stop.Time
			if targetTime != nil {
				constraint = *targetTime
			}

			if now > constraint {
				return false, wait
			}
			if now < constraint {
				wait += constraint - now
				now = constraint
			}
		}

		now += durationMins
		if i+1 < len(route) {
			now += o.cfg.LegMinutes(stop.Coords(), route[i+1].Coords())
		}

		if now > o.cfg.DayEndMins {
			return false, wait
		}
	}

	return true, wait
}

// permute calls visit with every ordering of items[k:], starting with the
// identity ordering. items is reordered in place and restored on return.
func permute(items []domain.Stop, k int, visit func([]domain.Stop) error) error {
	if k >= len(items)-1 {
		return visit(items)
	}

	for i := k; i < len(items); i++ {
		items[k], items[i] = items[i], items[k]
		err := permute(items, k+1, visit)
		items[k], items[i] = items[i], items[k]
		if err != nil {
			return err
		}
	}
	return nil
}

var defaultOptimizer = NewRouteOptimizer(DefaultRouteConfig())

// CalculateOptimalRoute runs Optimize with DefaultRouteConfig.
func CalculateOptimalRoute(
	ctx context.Context,
	stops []domain.Stop,
	durationMins int,
	targetTime *int,
) (domain.RouteResult, error) {
	return defaultOptimizer.Optimize(ctx, stops, durationMins, targetTime)
}
