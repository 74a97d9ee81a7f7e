package handlers

import (
	"centre-scheduler-service/internal/api/dto"
	"centre-scheduler-service/internal/ports"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ListCentres returns the centre directory.
func (h *Handler) ListCentres(w http.ResponseWriter, r *http.Request) {
	centres, err := h.Centres.ListCentres(r.Context())
	if err != nil {
		writeFailure(w, r, "list centres", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListCentresResponse{Centres: centres})
}

func (h *Handler) GetCentre(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, "centre id must be a positive integer")
		return
	}

	c, err := h.Centres.GetCentre(r.Context(), id)
	if errors.Is(err, ports.ErrCentreNotFound) {
		writeError(w, r, http.StatusNotFound, "centre not found")
		return
	}
	if err != nil {
		writeFailure(w, r, "get centre", err)
		return
	}

	writeJSON(w, r, http.StatusOK, c)
}
