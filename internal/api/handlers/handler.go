package handlers

import (
	"centre-scheduler-service/internal/domain"
	"centre-scheduler-service/internal/ports"
	"centre-scheduler-service/internal/services"
)

// Handler carries the dependencies shared by the API endpoints.
type Handler struct {
	Centres ports.CentreRepository
	Planner *services.Planner

	// Used when a request omits them.
	Base           domain.Coordinates
	BaseName       string
	DefaultWindows []domain.AvailabilityWindow
	CompareLimit   int
}
