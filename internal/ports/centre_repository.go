package ports

import (
	"centre-scheduler-service/internal/domain"
	"context"
)

// Port: a boundary for retrieving Centre reference data.
type CentreRepository interface {
	// Retrieve all centres ordered by id.
	ListCentres(ctx context.Context) ([]domain.Centre, error)
	// Retrieve one centre; returns an error wrapping ErrCentreNotFound when absent.
	GetCentre(ctx context.Context, id int64) (domain.Centre, error)
}
