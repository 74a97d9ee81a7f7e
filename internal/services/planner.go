package services

import (
	"centre-scheduler-service/internal/domain"
	"centre-scheduler-service/internal/platform/obs"
	"centre-scheduler-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// PlanMeetingRequest describes a centre to place into an officer's day.
type PlanMeetingRequest struct {
	Centre      domain.Centre
	MeetingDate time.Time
	BaseName    string
	Base        domain.Coordinates
	Windows     []domain.AvailabilityWindow
	Schedule    []domain.MeetingStop
	RefineRoad  bool
}

// MeetingPlan is the outcome of PlanMeeting.
// BestSlot is empty when the cadence check fails or the day is fully booked.
type MeetingPlan struct {
	PlanID         string
	Frequency      domain.FrequencyResult
	Travel         domain.TravelEstimate
	Recommendation domain.Recommendation
	Available      []domain.FeasibleSlot
	BestSlot       string
	Breakdown      *domain.ScoreBreakdown
	Reasons        []Reason
	Explanation    []string
	Route          *domain.RouteResult
	RoadRoute      *domain.RoadRoute
}

// SlotRoute is the route impact of booking one candidate slot.
type SlotRoute struct {
	Slot    string
	Score   float64
	Km      float64
	Mins    int
	ExtraKm float64
	IsValid bool
}

// Planner runs the scheduling flow on top of the pure engine functions.
// Roads is optional; without it plans carry no road geometry. Days with
// more stops than the exact search allows are sequenced greedily.
type Planner struct {
	optimizer *RouteOptimizer
	roads     ports.RoadRouteProvider
	logger    zerolog.Logger
}

func NewPlanner(optimizer *RouteOptimizer, roads ports.RoadRouteProvider, logger zerolog.Logger) *Planner {
	if optimizer == nil {
		optimizer = defaultOptimizer
	}
	return &Planner{optimizer: optimizer, roads: roads, logger: logger}
}

// OptimizeRoute runs the exact route search and records its metrics.
func (p *Planner) OptimizeRoute(
	ctx context.Context,
	stops []domain.Stop,
	durationMins int,
	targetTime *int,
) (_ domain.RouteResult, err error) {
	defer obs.Time(ctx, "route.Optimize")(&err)

	start := time.Now()
	res, err := p.optimizer.Optimize(ctx, stops, durationMins, targetTime)
	obs.ObserveRouteSearch(len(stops), res.IsValid, err, time.Since(start))

	return res, err
}

// sequenceDay runs the exact search and falls back to nearest neighbor
// ordering when the day has too many stops for it.
func (p *Planner) sequenceDay(
	ctx context.Context,
	stops []domain.Stop,
	durationMins int,
	targetTime *int,
) (domain.RouteResult, error) {
	res, err := p.OptimizeRoute(ctx, stops, durationMins, targetTime)
	if errors.Is(err, ErrTooManyStops) {
		p.logger.Warn().Err(err).Int("stops", len(stops)).Msg("falling back to nearest neighbor sequencing")
		return p.optimizer.NearestNeighborRoute(ctx, stops, durationMins, targetTime)
	}
	return res, err
}

// PlanMeeting gates on the centre's cadence, recommends a slot that is free
// in the current schedule, explains it and sequences the day around it.
func (p *Planner) PlanMeeting(ctx context.Context, req PlanMeetingRequest) (MeetingPlan, error) {
	plan := MeetingPlan{PlanID: uuid.NewString()}

	plan.Frequency = FrequencyCheck(req.Centre.Frequency, req.MeetingDate)
	if !plan.Frequency.IsValid {
		p.logger.Info().
			Str("plan_id", plan.PlanID).
			Str("centre", req.Centre.Name).
			Msg("cadence check failed, no slot recommended")
		return plan, nil
	}

	others := withoutCentre(req.Schedule, req.Centre.Name)

	plan.Travel = CalculateChainedTravel(others, req.Centre.Lat, req.Centre.Lng, req.Base.Lat, req.Base.Lng)

	plan.Recommendation = RecommendSlot(
		req.Centre.Members,
		req.Windows,
		req.Centre.AttendanceRate,
		req.Centre.CollectionRate,
		float64(plan.Travel.Mins),
		req.Centre.IsNew,
	)
	plan.Available = FilterUnoccupied(plan.Recommendation.AllFeasible, plan.Recommendation.Duration, req.Schedule, req.Centre.Name)
	obs.ObserveRecommendation(len(plan.Available) > 0)

	if len(plan.Available) == 0 {
		p.logger.Info().
			Str("plan_id", plan.PlanID).
			Str("centre", req.Centre.Name).
			Int("window_feasible", len(plan.Recommendation.AllFeasible)).
			Msg("no free slot")
		return plan, nil
	}

	plan.BestSlot = plan.Available[0].Slot
	// The first free slot is not necessarily the recommender's top slot, so
	// TopBreakdown cannot be reused here.
	breakdown := ScoreSlot(
		plan.BestSlot,
		req.Centre.AttendanceRate,
		req.Centre.CollectionRate,
		float64(plan.Travel.Mins)/60,
		req.Centre.IsNew,
	)
	plan.Breakdown = &breakdown
	plan.Reasons = ExplainReasons(plan.BestSlot, breakdown, plan.Recommendation.Duration, req.Centre.IsNew)
	plan.Explanation = RenderReasons(plan.Reasons)

	stops := dayStops(req, others, plan.BestSlot, p.optimizer.cfg.DayStartMins)
	route, err := p.sequenceDay(ctx, stops, plan.Recommendation.Duration, nil)
	if err != nil {
		return MeetingPlan{}, fmt.Errorf("plan meeting: %w", err)
	}

	plan.Route = &route
	if req.RefineRoad {
		plan.RoadRoute = p.RefineRoute(ctx, route.Route)
	}

	return plan, nil
}

// RefineRoute asks the road routing service for the closed loop through
// route. Any failure is logged and yields nil.
func (p *Planner) RefineRoute(ctx context.Context, route []domain.Stop) *domain.RoadRoute {
	if p.roads == nil || len(route) < 2 {
		return nil
	}

	points := make([]domain.Coordinates, 0, len(route)+1)
	for _, s := range route {
		points = append(points, s.Coords())
	}
	points = append(points, route[0].Coords())

	road, err := p.roads.GetRoadRoute(ctx, points)
	if err != nil {
		obs.RoadRoutesTotal.WithLabelValues("failed").Inc()
		p.logger.Warn().Err(err).Int("points", len(points)).Msg("road route refinement failed")
		return nil
	}

	return &road
}

// CompareSlotRoutes sequences the day once per free slot, up to limit
// slots in rank order, and reports the distance each booking adds over the
// day without the centre. Searches run concurrently.
func (p *Planner) CompareSlotRoutes(ctx context.Context, req PlanMeetingRequest, limit int) ([]SlotRoute, error) {
	others := withoutCentre(req.Schedule, req.Centre.Name)
	travel := CalculateChainedTravel(others, req.Centre.Lat, req.Centre.Lng, req.Base.Lat, req.Base.Lng)

	rec := RecommendSlot(
		req.Centre.Members,
		req.Windows,
		req.Centre.AttendanceRate,
		req.Centre.CollectionRate,
		float64(travel.Mins),
		req.Centre.IsNew,
	)
	free := FilterUnoccupied(rec.AllFeasible, rec.Duration, req.Schedule, req.Centre.Name)
	if limit > 0 && len(free) > limit {
		free = free[:limit]
	}
	if len(free) == 0 {
		return []SlotRoute{}, nil
	}

	baseline, err := p.sequenceDay(ctx, dayStops(req, others, "", p.optimizer.cfg.DayStartMins), rec.Duration, nil)
	if err != nil {
		return nil, fmt.Errorf("compare slot routes: baseline: %w", err)
	}

	out := make([]SlotRoute, len(free))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(compareConcurrency)

	for i, fs := range free {
		g.Go(func() error {
			target := TimeToMins(fs.Slot)
			stops := dayStops(req, others, fs.Slot, p.optimizer.cfg.DayStartMins)

			res, err := p.sequenceDay(gctx, stops, rec.Duration, &target)
			if err != nil {
				return fmt.Errorf("compare slot routes: slot %s: %w", fs.Slot, err)
			}

			out[i] = SlotRoute{
				Slot:    fs.Slot,
				Score:   fs.Score,
				Km:      res.Km,
				Mins:    res.Mins,
				ExtraKm: res.Km - baseline.Km,
				IsValid: res.IsValid,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

const compareConcurrency = 4

// dayStops builds the base, every other booking as a busy stop and, when
// slot is set, the centre as the target.
func dayStops(req PlanMeetingRequest, others []domain.MeetingStop, slot string, dayStart int) []domain.Stop {
	name := req.BaseName
	if name == "" {
		name = "Base"
	}

	stops := make([]domain.Stop, 0, len(others)+2)
	stops = append(stops, domain.Stop{Name: name, Lat: req.Base.Lat, Lng: req.Base.Lng, Time: dayStart, Type: domain.StopBase})

	for _, m := range others {
		stops = append(stops, domain.Stop{
			Name: m.Centre,
			Lat:  m.Lat,
			Lng:  m.Lng,
			Time: TimeToMins(m.Start),
			Type: domain.StopBusy,
		})
	}

	if slot != "" {
		stops = append(stops, domain.Stop{
			Name: req.Centre.Name,
			Lat:  req.Centre.Lat,
			Lng:  req.Centre.Lng,
			Time: TimeToMins(slot),
			Type: domain.StopTarget,
		})
	}

	return stops
}

func withoutCentre(schedule []domain.MeetingStop, centre string) []domain.MeetingStop {
	out := make([]domain.MeetingStop, 0, len(schedule))
	for _, m := range schedule {
		if centre != "" && m.Centre == centre {
			continue
		}
		out = append(out, m)
	}
	return out
}
