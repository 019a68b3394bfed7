package services

import (
	"testing"

	"jjreviews/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contestant(id int, rating float64) models.Movie {
	return models.Movie{
		Review: models.Review{ID: id, TMDBID: id * 10, Rating: &rating, Status: models.StatusWatched},
		Title:  "Filme",
	}
}

func contestants(n int) []models.Movie {
	movies := make([]models.Movie, 0, n)
	for i := 1; i <= n; i++ {
		movies = append(movies, contestant(i, float64(i%10)))
	}
	return movies
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0}, {1, 1}, {2, 2}, {3, 4}, {4, 4}, {5, 8}, {7, 8}, {8, 8}, {9, 16}, {33, 64}, {64, 64},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NextPowerOfTwo(tt.n), "n=%d", tt.n)
	}
}

func TestEligiblePool(t *testing.T) {
	rated := contestant(1, 8)
	national := contestant(2, 6)
	national.IsNational = true
	nominee := contestant(3, 9)
	nominee.IsOscar = true
	unrated := models.Movie{Review: models.Review{ID: 4, Status: models.StatusWatched}}
	watchlisted := models.Movie{Review: models.Review{ID: 5, Rating: ratingPtr(7), Status: models.StatusWatchlist}}

	movies := []models.Movie{rated, national, nominee, unrated, watchlisted}

	pool := EligiblePool(movies, CriteriaRandom)
	assert.Len(t, pool, 3, "unrated and watchlist entries never fight")

	pool = EligiblePool(movies, CriteriaNational)
	require.Len(t, pool, 1)
	assert.Equal(t, 2, pool[0].ID)

	pool = EligiblePool(movies, CriteriaOscar)
	require.Len(t, pool, 1)
	assert.Equal(t, 3, pool[0].ID)

	// Rating-based criteria keep the full watched pool; they only order it.
	pool = EligiblePool(movies, CriteriaTopRated)
	assert.Len(t, pool, 3)
}

func TestStartByeArithmetic(t *testing.T) {
	manager := NewBattleManager()

	for n := 2; n <= 9; n++ {
		battle, err := manager.Start(contestants(n), CriteriaRandom, QuantityAll)
		require.NoError(t, err, "n=%d", n)

		target := NextPowerOfTwo(n)
		byes := target - n
		fighters := n - byes

		assert.Equal(t, target, battle.BracketSize, "n=%d", n)
		assert.Equal(t, byes, battle.ByesWaiting(), "n=%d", n)
		assert.Len(t, battle.CurrentRound, fighters, "n=%d", n)
		assert.Equal(t, n, len(battle.CurrentRound)+len(battle.NextRound), "n=%d", n)
		assert.Equal(t, 0, len(battle.CurrentRound)%2, "fighters must pair up, n=%d", n)
	}
}

func TestStartFailsWithTooFewMovies(t *testing.T) {
	manager := NewBattleManager()

	_, err := manager.Start(contestants(1), CriteriaRandom, QuantityAll)
	assert.ErrorIs(t, err, ErrNotEnoughMovies)

	_, err = manager.Start(nil, CriteriaRandom, QuantityAll)
	assert.ErrorIs(t, err, ErrNotEnoughMovies)
}

func TestStartTruncatesToRequestedQuantity(t *testing.T) {
	manager := NewBattleManager()

	battle, err := manager.Start(contestants(10), CriteriaRandom, 4)
	require.NoError(t, err)

	assert.Equal(t, 4, battle.BracketSize)
	assert.Equal(t, 0, battle.ByesWaiting())
	assert.Len(t, battle.CurrentRound, 4)
}

func TestStartTopRatedSelectsBestMovies(t *testing.T) {
	manager := NewBattleManager()
	pool := []models.Movie{
		contestant(1, 3),
		contestant(2, 9),
		contestant(3, 5),
		contestant(4, 10),
	}

	battle, err := manager.Start(pool, CriteriaTopRated, 2)
	require.NoError(t, err)

	ids := make(map[int]bool)
	for _, m := range battle.CurrentRound {
		ids[m.ID] = true
	}
	for _, m := range battle.NextRound {
		ids[m.ID] = true
	}
	assert.True(t, ids[2] && ids[4], "the two highest rated movies enter the bracket, got %v", ids)
}

func TestThreeMoviePlaythrough(t *testing.T) {
	// 3 movies, requested 4: bracket of 4, one bye, two fighters, two votes total.
	manager := NewBattleManager()

	battle, err := manager.Start(contestants(3), CriteriaRandom, 4)
	require.NoError(t, err)

	assert.Equal(t, StageBattle, battle.Stage)
	assert.Equal(t, 4, battle.BracketSize)
	assert.Equal(t, 1, battle.ByesWaiting())
	require.Len(t, battle.CurrentRound, 2)
	assert.Equal(t, 1, battle.MatchesInRound())

	left, right := battle.CurrentPair()
	require.NotNil(t, left)
	require.NotNil(t, right)

	battle, err = manager.Vote(battle.ID, left.ID)
	require.NoError(t, err)

	// Final: round-1 winner vs the bye.
	assert.Equal(t, StageBattle, battle.Stage)
	assert.Equal(t, 2, battle.BracketSize)
	assert.Equal(t, "Grande Final", battle.RoundTitle())
	require.Len(t, battle.CurrentRound, 2)
	assert.Equal(t, 0, battle.ByesWaiting())

	finalLeft, _ := battle.CurrentPair()
	require.NotNil(t, finalLeft)

	battle, err = manager.Vote(battle.ID, finalLeft.ID)
	require.NoError(t, err)

	assert.Equal(t, StageWinner, battle.Stage)
	require.NotNil(t, battle.Champion)
	assert.Equal(t, finalLeft.ID, battle.Champion.ID)
}

func TestVoteRejectsOutsiders(t *testing.T) {
	manager := NewBattleManager()

	battle, err := manager.Start(contestants(4), CriteriaRandom, QuantityAll)
	require.NoError(t, err)

	_, err = manager.Vote(battle.ID, 9999)
	assert.ErrorIs(t, err, ErrInvalidWinner)

	_, err = manager.Vote("missing-battle", 1)
	assert.ErrorIs(t, err, ErrBattleNotFound)
}

func TestRoundTitles(t *testing.T) {
	titles := map[int]string{
		2:  "Grande Final",
		4:  "Semifinais",
		8:  "Quartas de Final",
		16: "Oitavas de Final",
		32: "Rodada de 32",
		64: "Rodada de 64",
	}
	for size, want := range titles {
		b := Battle{BracketSize: size}
		assert.Equal(t, want, b.RoundTitle())
	}
}

func TestReplayResetsToSetup(t *testing.T) {
	manager := NewBattleManager()

	battle, err := manager.Start(contestants(2), CriteriaTopRated, QuantityAll)
	require.NoError(t, err)

	left, _ := battle.CurrentPair()
	battle, err = manager.Vote(battle.ID, left.ID)
	require.NoError(t, err)
	require.Equal(t, StageWinner, battle.Stage)

	battle, err = manager.Replay(battle.ID)
	require.NoError(t, err)

	assert.Equal(t, StageSetup, battle.Stage)
	assert.Empty(t, battle.CurrentRound)
	assert.Empty(t, battle.NextRound)
	assert.Nil(t, battle.Champion)
	assert.Equal(t, 0, battle.BracketSize)
	// Last-used settings stay as the defaults for the next run.
	assert.Equal(t, CriteriaTopRated, battle.Criteria)
	assert.Equal(t, QuantityAll, battle.Quantity)
}

func TestFullBracketAlwaysProducesChampion(t *testing.T) {
	// Drive brackets of several sizes to completion by always voting for the
	// left movie; every run must end with exactly one champion.
	for _, n := range []int{2, 3, 5, 8, 11, 16} {
		manager := NewBattleManager()
		battle, err := manager.Start(contestants(n), CriteriaRandom, QuantityAll)
		require.NoError(t, err, "n=%d", n)

		votes := 0
		for battle.Stage == StageBattle {
			left, _ := battle.CurrentPair()
			require.NotNil(t, left, "n=%d", n)
			battle, err = manager.Vote(battle.ID, left.ID)
			require.NoError(t, err, "n=%d", n)
			votes++
		}

		assert.Equal(t, StageWinner, battle.Stage, "n=%d", n)
		assert.NotNil(t, battle.Champion, "n=%d", n)
		// Single elimination: everyone but the champion loses exactly once.
		assert.Equal(t, n-1, votes, "n=%d", n)
	}
}
