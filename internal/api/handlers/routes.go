package handlers

import (
	"centre-scheduler-service/internal/api/dto"
	"centre-scheduler-service/internal/domain"
	"centre-scheduler-service/internal/services"
	"context"
	"errors"
	"net/http"
)

// OptimalRoute sequences a day's stops. The first stop is the fixed base.
func (h *Handler) OptimalRoute(w http.ResponseWriter, r *http.Request) {
	var req dto.OptimalRouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validateStops(req.Stops); err != nil {
		writeFailure(w, r, "optimal route", err)
		return
	}
	if req.DurationMins < 0 {
		writeError(w, r, http.StatusBadRequest, "duration_mins must not be negative")
		return
	}

	var target *int
	if req.TargetTime != nil {
		mins, err := services.ParseClock(*req.TargetTime)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "target_time must be HH:MM")
			return
		}
		target = &mins
	}

	res, err := h.Planner.OptimizeRoute(r.Context(), req.Stops, req.DurationMins, target)
	switch {
	case errors.Is(err, services.ErrTooManyStops):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, r, http.StatusServiceUnavailable, "route search cancelled")
		return
	case err != nil:
		writeFailure(w, r, "optimal route", err)
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

// RouteMetrics returns the closed-loop distance of stops in the given order.
func (h *Handler) RouteMetrics(w http.ResponseWriter, r *http.Request) {
	var req dto.RouteMetricsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := validateStops(req.Stops); err != nil {
		writeFailure(w, r, "route metrics", err)
		return
	}

	writeJSON(w, r, http.StatusOK, services.CalculateRouteMetrics(req.Stops))
}

func validateStops(stops []domain.Stop) error {
	for i, s := range stops {
		if !validCoords(s.Lat, s.Lng) {
			return invalid("stops[%d] has invalid coordinates", i)
		}
		switch s.Type {
		case domain.StopBase, domain.StopBusy, domain.StopTarget:
		default:
			return invalid("stops[%d].type must be base, busy or target", i)
		}
		if (i == 0) != (s.Type == domain.StopBase) {
			return invalid("stops[0] must be the base and the only base")
		}
	}
	return nil
}
