package dto

import (
	"centre-scheduler-service/internal/domain"
	"centre-scheduler-service/internal/services"
)

// PlanRequest places one centre into an officer's day. Exactly one of
// CentreID (looked up in the directory) or Centre must be set.
type PlanRequest struct {
	CentreID   int64                       `json:"centre_id"`
	Centre     *domain.Centre              `json:"centre"`
	Date       string                      `json:"date"`
	Windows    []domain.AvailabilityWindow `json:"windows"`
	Schedule   []domain.MeetingStop        `json:"schedule"`
	Base       *domain.Coordinates         `json:"base"`
	BaseName   string                      `json:"base_name"`
	RefineRoad bool                        `json:"refine_road"`
}

type PlanResponse struct {
	PlanID      string                 `json:"plan_id"`
	Centre      domain.Centre          `json:"centre"`
	Frequency   domain.FrequencyResult `json:"frequency"`
	Travel      domain.TravelEstimate  `json:"travel"`
	Duration    int                    `json:"duration"`
	BestSlot    *string                `json:"best_slot"`
	AllFeasible []domain.FeasibleSlot  `json:"all_feasible"`
	Available   []domain.FeasibleSlot  `json:"available"`
	Breakdown   *domain.ScoreBreakdown `json:"breakdown"`
	Reasons     []services.Reason      `json:"reasons"`
	Explanation []string               `json:"explanation"`
	Route       *domain.RouteResult    `json:"route"`
	RoadRoute   *domain.RoadRoute      `json:"road_route"`
}

// NewPlanResponse maps a meeting plan onto the wire shape. Slot lists are
// never null.
func NewPlanResponse(centre domain.Centre, plan services.MeetingPlan) PlanResponse {
	res := PlanResponse{
		PlanID:      plan.PlanID,
		Centre:      centre,
		Frequency:   plan.Frequency,
		Travel:      plan.Travel,
		Duration:    plan.Recommendation.Duration,
		BestSlot:    Slot(plan.BestSlot),
		AllFeasible: plan.Recommendation.AllFeasible,
		Available:   plan.Available,
		Breakdown:   plan.Breakdown,
		Reasons:     plan.Reasons,
		Explanation: plan.Explanation,
		Route:       plan.Route,
		RoadRoute:   plan.RoadRoute,
	}
	if res.AllFeasible == nil {
		res.AllFeasible = []domain.FeasibleSlot{}
	}
	if res.Available == nil {
		res.Available = []domain.FeasibleSlot{}
	}
	return res
}

type CompareRequest struct {
	PlanRequest
	Limit int `json:"limit"`
}

type SlotRouteResponse struct {
	Slot    string  `json:"slot"`
	Score   float64 `json:"score"`
	Km      float64 `json:"km"`
	Mins    int     `json:"mins"`
	ExtraKm float64 `json:"extra_km"`
	IsValid bool    `json:"is_valid"`
}

type CompareResponse struct {
	Centre domain.Centre       `json:"centre"`
	Slots  []SlotRouteResponse `json:"slots"`
}

type ListCentresResponse struct {
	Centres []domain.Centre `json:"centres"`
}
