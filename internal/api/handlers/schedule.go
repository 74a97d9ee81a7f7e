package handlers

import (
	"centre-scheduler-service/internal/api/dto"
	"centre-scheduler-service/internal/services"
	"net/http"
	"strings"
	"time"
)

// Recommend ranks candidate slots for a meeting. When a schedule is sent the
// ranked list is also narrowed to slots free in it.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req dto.RecommendationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validateRecommendation(req); err != nil {
		writeFailure(w, r, "recommend", err)
		return
	}

	windows := req.Windows
	if len(windows) == 0 {
		windows = h.DefaultWindows
	}

	rec := services.RecommendSlot(
		req.Members,
		windows,
		req.AttendanceRate,
		req.CollectionRate,
		req.TravelTimeMinutes,
		req.IsNewCenter,
	)
	available := services.FilterUnoccupied(rec.AllFeasible, rec.Duration, req.Schedule, strings.TrimSpace(req.IgnoreCentre))

	res := dto.RecommendationResponse{
		BestSlot:     dto.Slot(rec.BestSlot),
		Duration:     rec.Duration,
		SlotsNeeded:  services.SlotsNeeded(rec.Duration),
		AllFeasible:  rec.AllFeasible,
		Available:    available,
		TopBreakdown: rec.TopBreakdown,
		Explanation:  []string{},
	}
	if rec.TopBreakdown != nil {
		res.Explanation = services.ExplainSlot(rec.BestSlot, *rec.TopBreakdown, rec.Duration, req.IsNewCenter)
	}

	writeJSON(w, r, http.StatusOK, res)
}

func validateRecommendation(req dto.RecommendationRequest) error {
	if req.Members < 0 {
		return invalid("members must not be negative")
	}
	if err := validateRate("attendance_rate", req.AttendanceRate); err != nil {
		return err
	}
	if err := validateRate("collection_rate", req.CollectionRate); err != nil {
		return err
	}
	if req.TravelTimeMinutes < 0 {
		return invalid("travel_time_minutes must not be negative")
	}
	if err := validateWindows(req.Windows); err != nil {
		return err
	}
	return validateSchedule(req.Schedule)
}

// Occupancy reports the first booking a proposed meeting would overlap.
func (h *Handler) Occupancy(w http.ResponseWriter, r *http.Request) {
	var req dto.OccupancyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if _, err := services.ParseClock(req.Start); err != nil {
		writeError(w, r, http.StatusBadRequest, "start must be HH:MM")
		return
	}
	if req.DurationMinutes <= 0 {
		writeError(w, r, http.StatusBadRequest, "duration_minutes must be positive")
		return
	}
	if err := validateSchedule(req.Schedule); err != nil {
		writeFailure(w, r, "occupancy", err)
		return
	}

	res := services.IsSlotOccupied(req.Start, req.DurationMinutes, req.Schedule, strings.TrimSpace(req.IgnoreCentre))
	writeJSON(w, r, http.StatusOK, res)
}

// ChainedTravel estimates the trip to a target from the day's last booking.
func (h *Handler) ChainedTravel(w http.ResponseWriter, r *http.Request) {
	var req dto.ChainedTravelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if !validCoords(req.Target.Lat, req.Target.Lng) {
		writeError(w, r, http.StatusBadRequest, "target has invalid coordinates")
		return
	}
	base := h.Base
	if req.Base != nil {
		base = *req.Base
	}
	if !validCoords(base.Lat, base.Lng) {
		writeError(w, r, http.StatusBadRequest, "base has invalid coordinates")
		return
	}
	if err := validateSchedule(req.Schedule); err != nil {
		writeFailure(w, r, "chained travel", err)
		return
	}

	res := services.CalculateChainedTravel(req.Schedule, req.Target.Lat, req.Target.Lng, base.Lat, base.Lng)
	writeJSON(w, r, http.StatusOK, res)
}

// FrequencyCheck matches a centre cadence against a calendar date.
func (h *Handler) FrequencyCheck(w http.ResponseWriter, r *http.Request) {
	var req dto.FrequencyCheckRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeFailure(w, r, "frequency check", err)
		return
	}

	writeJSON(w, r, http.StatusOK, services.FrequencyCheck(req.Frequency, date))
}

// parseDate reads YYYY-MM-DD; empty means today.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now(), nil
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, invalid("date must be YYYY-MM-DD")
	}
	return d, nil
}

