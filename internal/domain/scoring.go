package domain

// Decomposed score for one candidate slot.
// Each weighted term is rounded to 4 decimals before Total is summed.
type ScoreBreakdown struct {
	AttendanceRate     float64 `json:"attendance_rate"`
	CollectionRate     float64 `json:"collection_rate"`
	TravelHours        float64 `json:"travel_hours"`
	TravelPenalty      float64 `json:"travel_penalty"`
	TimeOfDayScore     float64 `json:"time_of_day_score"`
	AttendanceWeighted float64 `json:"attendance_weighted"`
	CollectionWeighted float64 `json:"collection_weighted"`
	TravelWeighted     float64 `json:"travel_weighted"`
	TimeOfDayWeighted  float64 `json:"time_of_day_weighted"`
	Total              float64 `json:"total"`
	IsNewCenter        bool    `json:"is_new_center"`
}

// A candidate slot that passed window filtering, with its total score.
type FeasibleSlot struct {
	Slot  string  `json:"slot"`
	Score float64 `json:"score"`
}

// Output of the slot recommender.
// An empty BestSlot with no feasible slots is a normal "fully booked" outcome.
type Recommendation struct {
	BestSlot     string          `json:"best_slot"`
	Duration     int             `json:"duration"`
	AllFeasible  []FeasibleSlot  `json:"all_feasible"`
	TopBreakdown *ScoreBreakdown `json:"top_breakdown"`
}

// Found reports whether any slot survived window filtering.
func (r Recommendation) Found() bool { return r.BestSlot != "" }
