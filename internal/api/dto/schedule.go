package dto

import "centre-scheduler-service/internal/domain"

type RecommendationRequest struct {
	Members           int                         `json:"members"`
	Windows           []domain.AvailabilityWindow `json:"windows"`
	AttendanceRate    float64                     `json:"attendance_rate"`
	CollectionRate    float64                     `json:"collection_rate"`
	TravelTimeMinutes float64                     `json:"travel_time_minutes"`
	IsNewCenter       bool                        `json:"is_new_center"`
	// Optional: narrows the ranked list to slots free in this schedule.
	Schedule     []domain.MeetingStop `json:"schedule"`
	IgnoreCentre string               `json:"ignore_centre"`
}

type RecommendationResponse struct {
	BestSlot     *string                `json:"best_slot"`
	Duration     int                    `json:"duration"`
	SlotsNeeded  int                    `json:"slots_needed"`
	AllFeasible  []domain.FeasibleSlot  `json:"all_feasible"`
	Available    []domain.FeasibleSlot  `json:"available"`
	TopBreakdown *domain.ScoreBreakdown `json:"top_breakdown"`
	Explanation  []string               `json:"explanation"`
}

// Slot returns nil for "no slot" so it encodes as JSON null.
func Slot(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

type OccupancyRequest struct {
	Start           string               `json:"start"`
	DurationMinutes int                  `json:"duration_minutes"`
	Schedule        []domain.MeetingStop `json:"schedule"`
	IgnoreCentre    string               `json:"ignore_centre"`
}

type ChainedTravelRequest struct {
	Schedule []domain.MeetingStop `json:"schedule"`
	Target   domain.Coordinates   `json:"target"`
	// Defaults to the configured branch office.
	Base *domain.Coordinates `json:"base"`
}

type FrequencyCheckRequest struct {
	Frequency string `json:"frequency"`
	// Calendar date, YYYY-MM-DD.
	Date string `json:"date"`
}
