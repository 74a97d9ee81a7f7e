package repositories

import (
	"centre-scheduler-service/internal/domain"
	"centre-scheduler-service/internal/platform/obs"
	"centre-scheduler-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQL-backed implementation of the CentreRepository port. The same queries
// serve SQLite and Postgres; sqlx rebinds placeholders per driver.
type SQLCentreRepository struct {
	DB *sqlx.DB
}

func NewSQLCentreRepository(db *sql.DB, dialect Dialect) *SQLCentreRepository {
	if db == nil {
		return &SQLCentreRepository{}
	}
	return &SQLCentreRepository{DB: sqlx.NewDb(db, dialect.DriverName())}
}

const centreColumns = `
	centre_id, name, lat, lng, members,
	attendance_rate, collection_rate, frequency, is_new
`

// Return all centres ordered by id.
func (s *SQLCentreRepository) ListCentres(ctx context.Context) (_ []domain.Centre, err error) {
	defer obs.Time(ctx, "centres.List")(&err)

	if s.DB == nil {
		return nil, errors.New("centre repository: DB is nil")
	}

	centres := make([]domain.Centre, 0, 64)
	query := `SELECT` + centreColumns + `FROM centres ORDER BY centre_id;`
	if err := s.DB.SelectContext(ctx, &centres, query); err != nil {
		return nil, fmt.Errorf("list centres: query centres table: %w", err)
	}

	return centres, nil
}

// Return one centre by id.
func (s *SQLCentreRepository) GetCentre(ctx context.Context, id int64) (_ domain.Centre, err error) {
	defer obs.Time(ctx, "centres.Get")(&err)

	if s.DB == nil {
		return domain.Centre{}, errors.New("centre repository: DB is nil")
	}

	var c domain.Centre
	query := s.DB.Rebind(`SELECT` + centreColumns + `FROM centres WHERE centre_id = ?;`)
	err = s.DB.GetContext(ctx, &c, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Centre{}, fmt.Errorf("get centre id=%d: %w", id, ports.ErrCentreNotFound)
	}
	if err != nil {
		return domain.Centre{}, fmt.Errorf("get centre id=%d: %w", id, err)
	}

	return c, nil
}
