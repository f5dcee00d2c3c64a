package service

import (
	"context"
	"errors"
	"testing"

	"github.com/AdamBeresnev/draft-pool/internal/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countPredictions(t *testing.T, p *testPool) int {
	t.Helper()
	var n int
	require.NoError(t, p.db.Get(&n, "SELECT COUNT(*) FROM predictions"))
	return n
}

func TestSubmitPicks_CreatesEntrantAndPredictions(t *testing.T) {
	p := newTestPool(t)
	ctx := context.Background()

	entrant, err := p.submissions.SubmitPicks(ctx, pool.Submission{
		EntrantName: "  Alice ",
		TeamName:    "Sharks",
		Tiebreaker:  "312",
		Picks:       pool.PickMap{1: camWard, 2: "", 3: travisHunter},
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", entrant.Name)
	assert.Equal(t, "Sharks", *entrant.TeamName)
	assert.Equal(t, 312, *entrant.Tiebreaker)

	predictions, err := p.store.ListPredictionsForEntrant(ctx, entrant.ID)
	require.NoError(t, err)
	require.Len(t, predictions, 2)
	assert.Equal(t, 1, predictions[0].PickNumber)
	assert.Equal(t, camWard, predictions[0].PredictedPlayerName)
	assert.Equal(t, 3, predictions[1].PickNumber)

	assert.Equal(t, 0, p.total(t, "Alice"))
	p.assertConsistent(t)
}

func TestSubmitPicks_ResubmitUpdatesSameEntrant(t *testing.T) {
	p := newTestPool(t)
	ctx := context.Background()
	admin := pool.GrantAdmin()

	first, err := p.submissions.SubmitPicks(ctx, pool.Submission{
		EntrantName: "Alice",
		TeamName:    "Sharks",
		Tiebreaker:  "100",
		Picks:       pool.PickMap{1: camWard, 2: travisHunter},
	})
	require.NoError(t, err)
	require.NoError(t, p.admin.RecordActualPick(ctx, admin, 2, abdulCarter))

	second, err := p.submissions.SubmitPicks(ctx, pool.Submission{
		EntrantName: "Alice",
		Picks:       pool.PickMap{2: abdulCarter},
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	// Blank team and tiebreaker keep what was there
	assert.Equal(t, "Sharks", *second.TeamName)
	assert.Equal(t, 100, *second.Tiebreaker)

	third, err := p.submissions.SubmitPicks(ctx, pool.Submission{
		EntrantName: "Alice",
		TeamName:    "Jets",
		Tiebreaker:  "7",
		Picks:       pool.PickMap{},
	})
	require.NoError(t, err)
	assert.Equal(t, "Jets", *third.TeamName)
	assert.Equal(t, 7, *third.Tiebreaker)

	predictions, err := p.store.ListPredictionsForEntrant(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, predictions, 2)
	// Pick 1 untouched by the blank slot, pick 2 overwritten and rescored
	assert.Equal(t, camWard, predictions[0].PredictedPlayerName)
	assert.Equal(t, abdulCarter, predictions[1].PredictedPlayerName)
	assert.Equal(t, 2, predictions[1].PointsAwarded)
	assert.Equal(t, 2, p.total(t, "Alice"))
	p.assertConsistent(t)
}

func TestSubmitPicks_DuplicatesRejected(t *testing.T) {
	p := newTestPool(t)

	_, err := p.submissions.SubmitPicks(context.Background(), pool.Submission{
		EntrantName: "Alice",
		Picks:       pool.PickMap{1: camWard, 3: travisHunter, 7: travisHunter},
	})

	var verr *pool.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, pool.MsgDuplicatePicks, verr.Message)
	assert.Equal(t, []int{3, 7}, verr.Duplicates)

	assert.Equal(t, 0, countPredictions(t, p))
	entrants, err := p.store.ListEntrants(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entrants)
}

func TestSubmitPicks_OffCatalogLeavesPriorStateUnchanged(t *testing.T) {
	p := newTestPool(t)
	ctx := context.Background()

	alice := p.submit(t, "Alice", "Sharks", pool.PickMap{1: camWard})

	_, err := p.submissions.SubmitPicks(ctx, pool.Submission{
		EntrantName: "Alice",
		TeamName:    "Renamed",
		Picks:       pool.PickMap{1: travisHunter, 2: "Not A Prospect"},
	})
	var verr *pool.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Message, "'Not A Prospect' is not in the official suggestions")
	assert.Empty(t, verr.Duplicates)

	predictions, err := p.store.ListPredictionsForEntrant(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, predictions, 1)
	assert.Equal(t, camWard, predictions[0].PredictedPlayerName)

	teams, err := p.store.ListTeamNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Sharks"}, teams)
}

func TestSubmitPicks_MissingNameAndBadTiebreaker(t *testing.T) {
	p := newTestPool(t)
	ctx := context.Background()

	_, err := p.submissions.SubmitPicks(ctx, pool.Submission{Picks: pool.PickMap{1: camWard}})
	var verr *pool.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, pool.MsgNameRequired, verr.Message)

	_, err = p.submissions.SubmitPicks(ctx, pool.Submission{EntrantName: "Alice", Tiebreaker: "-3", Picks: pool.PickMap{1: camWard}})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, pool.MsgInvalidTiebreaker, verr.Message)

	assert.Equal(t, 0, countPredictions(t, p))
}

func TestSaveTeam_ClearsEmptiedSlots(t *testing.T) {
	p := newTestPool(t)
	ctx := context.Background()
	admin := pool.GrantAdmin()

	alice := p.submit(t, "Alice", "Sharks", pool.PickMap{1: camWard, 2: travisHunter})
	require.NoError(t, p.admin.RecordActualPick(ctx, admin, 2, travisHunter))
	assert.Equal(t, 2, p.total(t, "Alice"))

	err := p.submissions.SaveTeam(ctx, admin, "Sharks", pool.PickMap{1: abdulCarter, 2: "", 5: masonGraham})
	require.NoError(t, err)

	predictions, err := p.store.ListPredictionsForEntrant(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, predictions, 3)
	assert.Equal(t, abdulCarter, predictions[0].PredictedPlayerName)
	assert.Equal(t, 2, predictions[1].PickNumber)
	assert.Equal(t, "", predictions[1].PredictedPlayerName)
	assert.Equal(t, 0, predictions[1].PointsAwarded)
	assert.Equal(t, masonGraham, predictions[2].PredictedPlayerName)

	assert.Equal(t, 0, p.total(t, "Alice"))
	p.assertConsistent(t)

	team, err := p.submissions.TeamPredictions(ctx, admin, "Sharks")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, team.Entrant.ID)
	assert.Equal(t, pool.PickMap{1: abdulCarter, 2: "", 5: masonGraham}, team.Picks)
}

func TestSaveTeam_ValidationAndNotFound(t *testing.T) {
	p := newTestPool(t)
	ctx := context.Background()
	admin := pool.GrantAdmin()

	p.submit(t, "Alice", "Sharks", pool.PickMap{1: camWard})

	err := p.submissions.SaveTeam(ctx, admin, "Sharks", pool.PickMap{1: travisHunter, 4: travisHunter})
	var verr *pool.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []int{1, 4}, verr.Duplicates)

	err = p.submissions.SaveTeam(ctx, admin, "Sharks", pool.PickMap{1: "Nope"})
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, verr.Duplicates)

	err = p.submissions.SaveTeam(ctx, admin, "Ghosts", pool.PickMap{1: camWard})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = p.submissions.TeamPredictions(ctx, admin, "Ghosts")
	assert.ErrorIs(t, err, ErrNotFound)

	team, err := p.submissions.TeamPredictions(ctx, admin, "Sharks")
	require.NoError(t, err)
	assert.Equal(t, pool.PickMap{1: camWard}, team.Picks)
}

func TestTeamEditing_RequiresAdmin(t *testing.T) {
	p := newTestPool(t)
	ctx := context.Background()

	p.submit(t, "Alice", "Sharks", pool.PickMap{1: camWard})

	var anonymous pool.AdminContext
	err := p.submissions.SaveTeam(ctx, anonymous, "Sharks", pool.PickMap{1: travisHunter})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = p.submissions.TeamPredictions(ctx, anonymous, "Sharks")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = p.submissions.TeamNames(ctx, anonymous)
	assert.ErrorIs(t, err, ErrUnauthorized)

	names, err := p.submissions.TeamNames(ctx, pool.GrantAdmin())
	require.NoError(t, err)
	assert.Equal(t, []string{"Sharks"}, names)

	team, err := p.submissions.TeamPredictions(ctx, pool.GrantAdmin(), "Sharks")
	require.NoError(t, err)
	assert.Equal(t, camWard, team.Picks[1])
}
