package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Dialect selects the SQL flavour of a database handle.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

// ParseDialect accepts "sqlite" or "postgres".
func ParseDialect(s string) (Dialect, error) {
	switch Dialect(strings.ToLower(strings.TrimSpace(s))) {
	case DialectSQLite:
		return DialectSQLite, nil
	case DialectPostgres:
		return DialectPostgres, nil
	}
	return "", fmt.Errorf("unknown database backend %q", s)
}

// Initialize the database schema.
func InitSchema(db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	float := "REAL"
	if dialect == DialectPostgres {
		float = "DOUBLE PRECISION"
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCentresQuery := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS centres (
		centre_id BIGINT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		lat %[1]s NOT NULL,
		lng %[1]s NOT NULL,
		members INTEGER NOT NULL,
		attendance_rate %[1]s NOT NULL,
		collection_rate %[1]s NOT NULL,
		frequency TEXT NOT NULL DEFAULT '',
		is_new BOOLEAN NOT NULL DEFAULT FALSE
	);
	`, float)

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
		route_key TEXT PRIMARY KEY,
		distance_meters INTEGER NOT NULL,
		duration_seconds INTEGER NOT NULL,
		geometry TEXT NOT NULL
	);
	`

	statements := []string{
		createCentresQuery,
		createRouteCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// CentreSeed is one entry of the centre seed file.
type CentreSeed struct {
	ID             int64   `json:"id" db:"centre_id"`
	Name           string  `json:"name" db:"name"`
	Lat            float64 `json:"lat" db:"lat"`
	Lng            float64 `json:"lng" db:"lng"`
	Members        int     `json:"members" db:"members"`
	AttendanceRate float64 `json:"attendance_rate" db:"attendance_rate"`
	CollectionRate float64 `json:"collection_rate" db:"collection_rate"`
	Frequency      string  `json:"frequency" db:"frequency"`
	IsNew          bool    `json:"is_new" db:"is_new"`
}

// Populate the centres table from a JSON file. Existing ids are updated.
func SeedFromJSON(db *sql.DB, dialect Dialect, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed centres: read %q: %w", jsonPath, err)
	}

	var data []CentreSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed centres: parse json: %w", err)
	}

	rows := make([]CentreSeed, 0, len(data))
	for i, item := range data {
		if err := validateSeed(item); err != nil {
			return 0, fmt.Errorf("seed centres: item at index %d: %w", i+1, err)
		}
		item.Name = strings.TrimSpace(item.Name)
		item.Frequency = strings.TrimSpace(item.Frequency)
		rows = append(rows, item)
	}

	x := sqlx.NewDb(db, dialect.DriverName())
	tx, err := x.Beginx()
	if err != nil {
		return 0, fmt.Errorf("seed centres: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO centres (
		centre_id, name, lat, lng, members,
		attendance_rate, collection_rate, frequency, is_new
	)
	VALUES (
		:centre_id, :name, :lat, :lng, :members,
		:attendance_rate, :collection_rate, :frequency, :is_new
	)
	ON CONFLICT (centre_id) DO UPDATE SET
		name = excluded.name,
		lat = excluded.lat,
		lng = excluded.lng,
		members = excluded.members,
		attendance_rate = excluded.attendance_rate,
		collection_rate = excluded.collection_rate,
		frequency = excluded.frequency,
		is_new = excluded.is_new;
	`
	for _, c := range rows {
		if _, err := tx.NamedExec(query, c); err != nil {
			return 0, fmt.Errorf("seed centres: insert centre_id=%d: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed centres: commit tx: %w", err)
	}

	return len(rows), nil
}

func validateSeed(c CentreSeed) error {
	switch {
	case c.ID <= 0:
		return fmt.Errorf("invalid id %d", c.ID)
	case strings.TrimSpace(c.Name) == "":
		return errors.New("name cannot be empty")
	case c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180:
		return fmt.Errorf("centre %q: coordinates out of range", c.Name)
	case c.Members < 0:
		return fmt.Errorf("centre %q: negative member count", c.Name)
	case c.AttendanceRate < 0 || c.AttendanceRate > 1 || c.CollectionRate < 0 || c.CollectionRate > 1:
		return fmt.Errorf("centre %q: rates must be within [0, 1]", c.Name)
	}
	return nil
}
