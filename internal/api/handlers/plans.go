package handlers

import (
	"centre-scheduler-service/internal/api/dto"
	"centre-scheduler-service/internal/domain"
	"centre-scheduler-service/internal/ports"
	"centre-scheduler-service/internal/services"
	"context"
	"errors"
	"net/http"
	"strings"
)

// Plan runs the full scheduling flow for one centre: cadence check, slot
// recommendation against the current schedule, explanation and route.
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	svcReq, ok := h.planRequest(w, r, req)
	if !ok {
		return
	}

	plan, err := h.Planner.PlanMeeting(r.Context(), svcReq)
	if err != nil {
		writeFailure(w, r, "plan meeting", err)
		return
	}

	res := dto.NewPlanResponse(svcReq.Centre, plan)
	writeJSON(w, r, http.StatusOK, res)
}

// ComparePlans reports the route impact of each of the top free slots.
func (h *Handler) ComparePlans(w http.ResponseWriter, r *http.Request) {
	var req dto.CompareRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Limit < 0 {
		writeError(w, r, http.StatusBadRequest, "limit must not be negative")
		return
	}
	limit := req.Limit
	if limit == 0 {
		limit = h.CompareLimit
	}

	svcReq, ok := h.planRequest(w, r, req.PlanRequest)
	if !ok {
		return
	}

	slots, err := h.Planner.CompareSlotRoutes(r.Context(), svcReq, limit)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			writeError(w, r, http.StatusServiceUnavailable, "route comparison cancelled")
			return
		}
		writeFailure(w, r, "compare slot routes", err)
		return
	}

	res := dto.CompareResponse{Centre: svcReq.Centre, Slots: make([]dto.SlotRouteResponse, 0, len(slots))}
	for _, s := range slots {
		res.Slots = append(res.Slots, dto.SlotRouteResponse{
			Slot:    s.Slot,
			Score:   s.Score,
			Km:      s.Km,
			Mins:    s.Mins,
			ExtraKm: s.ExtraKm,
			IsValid: s.IsValid,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// planRequest validates req and resolves defaults. On failure it writes the
// response and returns false.
func (h *Handler) planRequest(w http.ResponseWriter, r *http.Request, req dto.PlanRequest) (services.PlanMeetingRequest, bool) {
	var out services.PlanMeetingRequest

	switch {
	case req.Centre != nil && req.CentreID != 0:
		writeError(w, r, http.StatusBadRequest, "send either centre_id or centre, not both")
		return out, false
	case req.Centre != nil:
		out.Centre = *req.Centre
	case req.CentreID > 0:
		c, err := h.Centres.GetCentre(r.Context(), req.CentreID)
		if errors.Is(err, ports.ErrCentreNotFound) {
			writeError(w, r, http.StatusNotFound, "centre not found")
			return out, false
		}
		if err != nil {
			writeFailure(w, r, "get centre", err)
			return out, false
		}
		out.Centre = c
	default:
		writeError(w, r, http.StatusBadRequest, "centre_id or centre is required")
		return out, false
	}

	out.Centre.Name = strings.TrimSpace(out.Centre.Name)
	if err := validateCentre(out.Centre); err != nil {
		writeFailure(w, r, "plan request", err)
		return out, false
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeFailure(w, r, "plan request", err)
		return out, false
	}
	out.MeetingDate = date

	out.Windows = req.Windows
	if len(out.Windows) == 0 {
		out.Windows = h.DefaultWindows
	}
	if err := validateWindows(out.Windows); err != nil {
		writeFailure(w, r, "plan request", err)
		return out, false
	}

	if err := validateSchedule(req.Schedule); err != nil {
		writeFailure(w, r, "plan request", err)
		return out, false
	}
	out.Schedule = req.Schedule

	out.Base = h.Base
	if req.Base != nil {
		out.Base = *req.Base
	}
	if !validCoords(out.Base.Lat, out.Base.Lng) {
		writeError(w, r, http.StatusBadRequest, "base has invalid coordinates")
		return out, false
	}
	out.BaseName = strings.TrimSpace(req.BaseName)
	if out.BaseName == "" {
		out.BaseName = h.BaseName
	}
	out.RefineRoad = req.RefineRoad

	return out, true
}

func validateCentre(c domain.Centre) error {
	if c.Name == "" {
		return invalid("centre.name is required")
	}
	if !validCoords(c.Lat, c.Lng) {
		return invalid("centre has invalid coordinates")
	}
	if c.Members < 0 {
		return invalid("centre.members must not be negative")
	}
	if err := validateRate("centre.attendance_rate", c.AttendanceRate); err != nil {
		return err
	}
	return validateRate("centre.collection_rate", c.CollectionRate)
}
