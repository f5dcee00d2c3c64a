package service

import (
	"context"
	"testing"

	"github.com/AdamBeresnev/draft-pool/internal/catalog"
	"github.com/AdamBeresnev/draft-pool/internal/pool"
	"github.com/AdamBeresnev/draft-pool/internal/store"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	camWard      = "Cam Ward, QB (Miami)"
	travisHunter = "Travis Hunter, WR/CB (Colorado)"
	abdulCarter  = "Abdul Carter, LB (Penn State)"
	masonGraham  = "Mason Graham, DL (Michigan)"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")
	database.SetMaxOpenConns(1)

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	return database
}

type testPool struct {
	db          *sqlx.DB
	store       *store.PoolStore
	submissions *SubmissionService
	admin       *AdminService
	standings   *StandingsService
	export      *ExportService
}

func newTestPool(t *testing.T) *testPool {
	t.Helper()
	db := setupTestDB(t)
	t.Cleanup(func() { db.Close() })

	poolStore := store.NewPoolStore(db)
	scoring := NewFullRescore(poolStore)
	c := catalog.Default()

	return &testPool{
		db:          db,
		store:       poolStore,
		submissions: NewSubmissionService(db, poolStore, scoring, c),
		admin:       NewAdminService(db, poolStore, scoring, c),
		standings:   NewStandingsService(poolStore),
		export:      NewExportService(poolStore),
	}
}

func (p *testPool) submit(t *testing.T, name, team string, picks pool.PickMap) *pool.Entrant {
	t.Helper()
	entrant, err := p.submissions.SubmitPicks(context.Background(), pool.Submission{
		EntrantName: name,
		TeamName:    team,
		Picks:       picks,
	})
	require.NoError(t, err)
	return entrant
}

func (p *testPool) points(t *testing.T, name string, pickNumber int) int {
	t.Helper()
	var points int
	err := p.db.Get(&points, `
		SELECT p.points_awarded FROM predictions p
		JOIN entrants e ON e.id = p.entrant_id
		WHERE e.name = ? AND p.pick_number = ?`, name, pickNumber)
	require.NoError(t, err)
	return points
}

func (p *testPool) total(t *testing.T, name string) int {
	t.Helper()
	var total int
	err := p.db.Get(&total, `
		SELECT s.total_score FROM entrant_standings s
		JOIN entrants e ON e.id = s.entrant_id
		WHERE e.name = ?`, name)
	require.NoError(t, err)
	return total
}

// assertConsistent checks that every standing equals the sum of its entrant's points and that every
// prediction carries exactly the points its actual pick gives it.
func (p *testPool) assertConsistent(t *testing.T) {
	t.Helper()

	var rows []struct {
		Name     string `db:"name"`
		Standing int    `db:"standing"`
		Sum      int    `db:"sum"`
	}
	err := p.db.Select(&rows, `
		SELECT e.name,
			COALESCE(s.total_score, -1) AS standing,
			COALESCE((SELECT SUM(points_awarded) FROM predictions WHERE entrant_id = e.id), 0) AS sum
		FROM entrants e
		LEFT JOIN entrant_standings s ON s.entrant_id = e.id`)
	require.NoError(t, err)
	for _, r := range rows {
		assert.Equal(t, r.Sum, r.Standing, "standing for %s", r.Name)
	}

	actual := make(map[int]string)
	picks, err := p.store.ListActualPicks(context.Background())
	require.NoError(t, err)
	for _, a := range picks {
		actual[a.PickNumber] = a.Player()
	}

	predictions, err := p.store.ListPredictions(context.Background())
	require.NoError(t, err)
	for _, pr := range predictions {
		expected := pool.Points(pr.PickNumber, pr.PredictedPlayerName, actual[pr.PickNumber])
		assert.Equal(t, expected, pr.PointsAwarded, "pick %d for %s", pr.PickNumber, pr.EntrantID)
	}
}
