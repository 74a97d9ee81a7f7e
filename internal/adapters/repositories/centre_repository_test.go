package repositories

import (
	"centre-scheduler-service/internal/ports"
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, InitSchema(db, DialectSQLite))
	return db
}

func writeSeed(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "centres.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const twoCentres = `[
	{"id": 2, "name": " Malur ", "lat": 13.0037, "lng": 77.9383, "members": 18,
	 "attendance_rate": 0.84, "collection_rate": 0.93, "frequency": "Weekly - Monday"},
	{"id": 1, "name": "Kolar", "lat": 13.1367, "lng": 78.1291, "members": 22,
	 "attendance_rate": 0.91, "collection_rate": 0.97, "frequency": "Weekly - Monday", "is_new": true}
]`

func TestSeedAndListCentres(t *testing.T) {
	db := openTestDB(t)

	n, err := SeedFromJSON(db, DialectSQLite, writeSeed(t, twoCentres))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	repo := NewSQLCentreRepository(db, DialectSQLite)
	centres, err := repo.ListCentres(context.Background())
	require.NoError(t, err)

	require.Len(t, centres, 2)
	assert.Equal(t, int64(1), centres[0].ID)
	assert.Equal(t, "Kolar", centres[0].Name)
	assert.True(t, centres[0].IsNew)
	assert.Equal(t, "Malur", centres[1].Name)
	assert.InDelta(t, 13.0037, centres[1].Lat, 1e-9)
	assert.Equal(t, 18, centres[1].Members)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	path := writeSeed(t, twoCentres)

	_, err := SeedFromJSON(db, DialectSQLite, path)
	require.NoError(t, err)
	_, err = SeedFromJSON(db, DialectSQLite, path)
	require.NoError(t, err)

	centres, err := NewSQLCentreRepository(db, DialectSQLite).ListCentres(context.Background())
	require.NoError(t, err)
	assert.Len(t, centres, 2)
}

func TestSeedRejectsInvalidEntries(t *testing.T) {
	db := openTestDB(t)

	bad := []string{
		`[{"id": 0, "name": "x"}]`,
		`[{"id": 1, "name": "  "}]`,
		`[{"id": 1, "name": "x", "lat": 120}]`,
		`[{"id": 1, "name": "x", "attendance_rate": 1.5}]`,
		`{not json`,
	}
	for _, body := range bad {
		_, err := SeedFromJSON(db, DialectSQLite, writeSeed(t, body))
		assert.Error(t, err, body)
	}

	_, err := SeedFromJSON(db, DialectSQLite, filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestGetCentre(t *testing.T) {
	db := openTestDB(t)
	_, err := SeedFromJSON(db, DialectSQLite, writeSeed(t, twoCentres))
	require.NoError(t, err)

	repo := NewSQLCentreRepository(db, DialectSQLite)

	c, err := repo.GetCentre(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Malur", c.Name)
	assert.Equal(t, "Weekly - Monday", c.Frequency)

	_, err = repo.GetCentre(context.Background(), 99)
	assert.True(t, errors.Is(err, ports.ErrCentreNotFound))
}

func TestRepositoryWithoutDB(t *testing.T) {
	repo := NewSQLCentreRepository(nil, DialectSQLite)

	_, err := repo.ListCentres(context.Background())
	assert.Error(t, err)
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect(" Postgres ")
	require.NoError(t, err)
	assert.Equal(t, DialectPostgres, d)
	assert.Equal(t, "pgx", d.DriverName())

	d, err = ParseDialect("sqlite")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.DriverName())

	_, err = ParseDialect("mysql")
	assert.Error(t, err)
}

func TestShippedSeedFileLoads(t *testing.T) {
	db := openTestDB(t)

	n, err := SeedFromJSON(db, DialectSQLite, filepath.Join("..", "..", "..", "data", "seeds", "centres.json"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
}
