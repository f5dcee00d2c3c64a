package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/AdamBeresnev/draft-pool/internal/pool"
	"github.com/AdamBeresnev/draft-pool/internal/utils"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")
	// Every new connection to :memory: is a fresh empty database
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

func createEntrant(t *testing.T, db *sqlx.DB, s *PoolStore, name string, team string) *pool.Entrant {
	t.Helper()
	entrant := &pool.Entrant{
		ID:       uuid.New(),
		Name:     name,
		TeamName: utils.StringOrNil(team),
	}
	tx, err := db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, s.CreateEntrant(context.Background(), tx, entrant))
	require.NoError(t, tx.Commit())
	return entrant
}

func TestCreateAndUpdateEntrant(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := NewPoolStore(db)
	ctx := context.Background()

	entrant := createEntrant(t, db, s, "Alice", "Sharks")

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	fetched, err := s.GetEntrantByNameTx(ctx, tx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, entrant.ID, fetched.ID)
	assert.Equal(t, "Sharks", *fetched.TeamName)
	assert.Nil(t, fetched.Tiebreaker)
	assert.False(t, fetched.CreatedAt.IsZero())

	fetched.TeamName = utils.Ptr("Jets")
	fetched.Tiebreaker = utils.Ptr(300)
	require.NoError(t, s.UpdateEntrant(ctx, tx, fetched))
	require.NoError(t, tx.Commit())

	tx, err = db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()
	updated, err := s.GetEntrantTx(ctx, tx, entrant.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jets", *updated.TeamName)
	assert.Equal(t, 300, *updated.Tiebreaker)

	_, err = s.GetEntrantByNameTx(ctx, tx, "Nobody")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestEntrantNameIsUnique(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := NewPoolStore(db)
	createEntrant(t, db, s, "Alice", "")

	tx, err := db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)
	defer tx.Rollback()

	err = s.CreateEntrant(context.Background(), tx, &pool.Entrant{ID: uuid.New(), Name: "Alice"})
	assert.Error(t, err)
}

func TestUpsertPrediction(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := NewPoolStore(db)
	ctx := context.Background()
	entrant := createEntrant(t, db, s, "Alice", "")

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, s.UpsertPrediction(ctx, tx, entrant.ID, 1, "X"))
	require.NoError(t, s.UpsertPrediction(ctx, tx, entrant.ID, 1, "Y"))
	require.NoError(t, s.UpsertPrediction(ctx, tx, entrant.ID, 2, "Z"))
	require.NoError(t, tx.Commit())

	predictions, err := s.ListPredictionsForEntrant(ctx, entrant.ID)
	require.NoError(t, err)
	require.Len(t, predictions, 2)
	assert.Equal(t, 1, predictions[0].PickNumber)
	assert.Equal(t, "Y", predictions[0].PredictedPlayerName)
	assert.Equal(t, 0, predictions[0].PointsAwarded)
	assert.Equal(t, "Z", predictions[1].PredictedPlayerName)

	tx, err = db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, s.ClearPrediction(ctx, tx, entrant.ID, 2))
	// No row at pick 3, nothing to clear
	require.NoError(t, s.ClearPrediction(ctx, tx, entrant.ID, 3))
	cleared, err := s.GetPredictionTx(ctx, tx, entrant.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "", cleared.PredictedPlayerName)
	_, err = s.GetPredictionTx(ctx, tx, entrant.ID, 3)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, tx.Commit())
}

func TestScorePredictionsForPick(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := NewPoolStore(db)
	ctx := context.Background()
	alice := createEntrant(t, db, s, "Alice", "")
	bob := createEntrant(t, db, s, "Bob", "")

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, s.UpsertPrediction(ctx, tx, alice.ID, 4, "X"))
	require.NoError(t, s.UpsertPrediction(ctx, tx, bob.ID, 4, "Y"))
	require.NoError(t, s.UpsertPrediction(ctx, tx, alice.ID, 5, "X"))

	require.NoError(t, s.ScorePredictionsForPick(ctx, tx, 4, "X"))

	total, err := s.SumPointsForEntrantTx(ctx, tx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	total, err = s.SumPointsForEntrantTx(ctx, tx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	require.NoError(t, s.ScorePredictionsForPick(ctx, tx, 4, ""))
	total, err = s.SumPointsForEntrantTx(ctx, tx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	require.NoError(t, tx.Commit())
}

func TestActualPicks(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := NewPoolStore(db)
	ctx := context.Background()

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, s.UpsertActualPick(ctx, tx, 2, utils.Ptr("B")))
	require.NoError(t, s.UpsertActualPick(ctx, tx, 1, utils.Ptr("A")))
	require.NoError(t, s.UpsertActualPick(ctx, tx, 1, utils.Ptr("C")))
	require.NoError(t, s.UpsertActualPick(ctx, tx, 3, nil))
	// Outside 1..32 is rejected by the schema
	assert.Error(t, s.UpsertActualPick(ctx, tx, 33, utils.Ptr("D")))
	require.NoError(t, tx.Commit())

	picks, err := s.ListActualPicks(ctx)
	require.NoError(t, err)
	require.Len(t, picks, 3)
	assert.Equal(t, 1, picks[0].PickNumber)
	assert.Equal(t, "C", picks[0].Player())
	assert.Equal(t, "B", picks[1].Player())
	assert.Nil(t, picks[2].PlayerName)
	assert.Equal(t, "", picks[2].Player())

	tx, err = db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	n, err := s.DeleteActualPick(ctx, tx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	n, err = s.DeleteActualPick(ctx, tx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
	require.NoError(t, tx.Commit())

	_, err = s.GetActualPick(ctx, 2)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListStandings(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := NewPoolStore(db)
	ctx := context.Background()
	alice := createEntrant(t, db, s, "Alice", "Sharks")
	bob := createEntrant(t, db, s, "Bob", "")
	carl := createEntrant(t, db, s, "Carl", "")

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, s.UpsertStanding(ctx, tx, alice.ID, 3))
	require.NoError(t, s.UpsertStanding(ctx, tx, bob.ID, 5))
	require.NoError(t, s.UpsertStanding(ctx, tx, bob.ID, 10))
	require.NoError(t, tx.Commit())

	scores, err := s.ListStandings(ctx)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, "Bob", scores[0].Name)
	assert.Equal(t, 10, scores[0].TotalScore)
	assert.Equal(t, "Alice", scores[1].Name)
	assert.Equal(t, "Sharks", *scores[1].TeamName)
	assert.Equal(t, carl.ID, scores[2].ID)
	assert.Equal(t, 0, scores[2].TotalScore)

	standing, err := s.GetStanding(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, standing.TotalScore)
}

func TestDeleteEntrantCascades(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := NewPoolStore(db)
	ctx := context.Background()
	alice := createEntrant(t, db, s, "Alice", "Sharks")

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, s.UpsertPrediction(ctx, tx, alice.ID, 1, "X"))
	require.NoError(t, s.UpsertStanding(ctx, tx, alice.ID, 1))
	n, err := s.DeleteEntrant(ctx, tx, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	require.NoError(t, tx.Commit())

	predictions, err := s.ListPredictions(ctx)
	require.NoError(t, err)
	assert.Empty(t, predictions)

	_, err = s.GetStanding(ctx, alice.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTeamNames(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := NewPoolStore(db)
	ctx := context.Background()
	first := createEntrant(t, db, s, "Alice", "Sharks")
	createEntrant(t, db, s, "Bob", "Sharks")
	createEntrant(t, db, s, "Carl", "Aces")
	createEntrant(t, db, s, "Dana", "")

	names, err := s.ListTeamNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Aces", "Sharks"}, names)

	entrant, err := s.GetEntrantByTeamName(ctx, "Sharks")
	require.NoError(t, err)
	assert.Equal(t, first.ID, entrant.ID)

	_, err = s.GetEntrantByTeamName(ctx, "Nobody")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	entrants, err := s.ListEntrants(ctx)
	require.NoError(t, err)
	assert.Len(t, entrants, 4)
}

func TestExplicitEntrantCleanup(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := NewPoolStore(db)
	ctx := context.Background()
	bob := createEntrant(t, db, s, "Bob", "")
	alice := createEntrant(t, db, s, "Alice", "")

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	ids, err := s.ListEntrantIDsTx(ctx, tx)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{alice.ID, bob.ID}, ids)

	require.NoError(t, s.UpsertPrediction(ctx, tx, alice.ID, 1, "X"))
	require.NoError(t, s.UpsertPrediction(ctx, tx, alice.ID, 2, "Y"))
	require.NoError(t, s.UpsertPrediction(ctx, tx, bob.ID, 1, "X"))
	require.NoError(t, s.UpsertStanding(ctx, tx, alice.ID, 0))
	require.NoError(t, s.DeletePredictionsForEntrant(ctx, tx, alice.ID))
	require.NoError(t, s.DeleteStanding(ctx, tx, alice.ID))
	require.NoError(t, tx.Commit())

	predictions, err := s.ListPredictionsForEntrant(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, predictions)

	predictions, err = s.ListPredictionsForEntrant(ctx, bob.ID)
	require.NoError(t, err)
	assert.Len(t, predictions, 1)

	_, err = s.GetStanding(ctx, alice.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
