package handlers

import (
	"centre-scheduler-service/internal/domain"
	"centre-scheduler-service/internal/services"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/rs/zerolog"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("encode response failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object with no unknown fields. On
// failure it writes a 400 and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// badRequest is a validation failure reported to the client verbatim.
type badRequest struct{ msg string }

func (e *badRequest) Error() string { return e.msg }

func invalid(format string, args ...any) error {
	return &badRequest{msg: fmt.Sprintf(format, args...)}
}

// writeFailure maps validation errors to 400 and anything else to 500.
func writeFailure(w http.ResponseWriter, r *http.Request, op string, err error) {
	var br *badRequest
	if errors.As(err, &br) {
		writeError(w, r, http.StatusBadRequest, br.msg)
		return
	}

	zerolog.Ctx(r.Context()).Error().Err(err).Str("op", op).Msg("request failed")
	writeError(w, r, http.StatusInternalServerError, "internal server error")
}

func validateWindows(windows []domain.AvailabilityWindow) error {
	for i, win := range windows {
		start, err := services.ParseClock(win.Start)
		if err != nil {
			return invalid("windows[%d].start must be HH:MM", i)
		}
		end, err := services.ParseClock(win.End)
		if err != nil {
			return invalid("windows[%d].end must be HH:MM", i)
		}
		if end <= start {
			return invalid("windows[%d] must end after it starts", i)
		}
	}
	return nil
}

func validateSchedule(schedule []domain.MeetingStop) error {
	for i, m := range schedule {
		start, err := services.ParseClock(m.Start)
		if err != nil {
			return invalid("schedule[%d].start must be HH:MM", i)
		}
		end, err := services.ParseClock(m.End)
		if err != nil {
			return invalid("schedule[%d].end must be HH:MM", i)
		}
		if end < start {
			return invalid("schedule[%d] ends before it starts", i)
		}
		if !validCoords(m.Lat, m.Lng) {
			return invalid("schedule[%d] has invalid coordinates", i)
		}
	}
	return nil
}

func validateRate(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return invalid("%s must be within [0, 1]", name)
	}
	return nil
}

func validCoords(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
