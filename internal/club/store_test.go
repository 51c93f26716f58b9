package club_test

import (
	"database/sql"
	"testing"

	"github.com/mauv0809/clubhouse/internal/club"
	"github.com/mauv0809/clubhouse/internal/database"
	"github.com/mauv0809/clubhouse/internal/tournament"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (club.ClubStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	store := club.New(db)
	return store, db, dbTeardown
}

func intPtr(v int) *int { return &v }

func TestAddAndGetPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	zoe, err := store.AddPlayer("Zoé")
	require.NoError(t, err)
	adam, err := store.AddPlayer("  adam ")
	require.NoError(t, err)
	assert.Equal(t, "adam", adam.DisplayName)
	assert.True(t, adam.Active)
	assert.NotEqual(t, zoe.ID, adam.ID)

	_, err = store.AddPlayer("   ")
	assert.ErrorIs(t, err, club.ErrInvalidName)

	all, err := store.GetAllPlayers()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "adam", all[0].DisplayName, "roster is ordered by name, case-insensitively")

	got, err := store.GetPlayer(zoe.ID)
	require.NoError(t, err)
	assert.Equal(t, zoe, got)

	_, err = store.GetPlayer(999)
	assert.ErrorIs(t, err, club.ErrPlayerNotFound)
}

func TestTogglePlayer(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	a, _ := store.AddPlayer("Alice")
	b, _ := store.AddPlayer("Bob")

	toggled, err := store.TogglePlayer(a.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Active)

	active, err := store.GetActivePlayers()
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, b.ID, active[0].ID)

	toggled, err = store.TogglePlayer(a.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Active)

	_, err = store.TogglePlayer(999)
	assert.ErrorIs(t, err, club.ErrPlayerNotFound)
}

func TestGetPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	a, _ := store.AddPlayer("Alice")
	_, _ = store.AddPlayer("Bob")
	c, _ := store.AddPlayer("Chloé")

	players, err := store.GetPlayers([]int{c.ID, a.ID, 999})
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, a.ID, players[0].ID)
	assert.Equal(t, c.ID, players[1].ID)

	players, err = store.GetPlayers(nil)
	require.NoError(t, err)
	assert.Empty(t, players)
}

func TestInsertMatchesAndRecordScore(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	a, _ := store.AddPlayer("Alice")
	b, _ := store.AddPlayer("Bob")
	c, _ := store.AddPlayer("Chloé")

	stored, err := store.InsertMatches([]tournament.Match{
		{PlayerAID: a.ID, PlayerBID: b.ID},
		{PlayerAID: b.ID, PlayerBID: c.ID, ScoreA: intPtr(3), ScoreB: intPtr(1), Played: true},
	})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.NotZero(t, stored[0].ID)
	assert.True(t, stored[0].Pending())

	pending, err := store.GetPendingMatches()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Nil(t, pending[0].ScoreA)

	scored, err := store.RecordScore(stored[0].ID, 5, 2)
	require.NoError(t, err)
	assert.True(t, scored.Played)
	assert.Equal(t, 5, *scored.ScoreA)

	t.Run("re-scoring a played match overwrites the result", func(t *testing.T) {
		rescored, err := store.RecordScore(stored[0].ID, 1, 4)
		require.NoError(t, err)
		assert.Equal(t, 1, *rescored.ScoreA)
		assert.Equal(t, 4, *rescored.ScoreB)

		match, err := store.GetMatch(stored[0].ID)
		require.NoError(t, err)
		assert.Equal(t, 4, *match.ScoreB)
	})

	pending, err = store.GetPendingMatches()
	require.NoError(t, err)
	assert.Empty(t, pending)

	all, err := store.GetMatches()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = store.RecordScore(999, 1, 0)
	assert.ErrorIs(t, err, club.ErrMatchNotFound)

	_, err = store.RecordScore(stored[0].ID, -1, 0)
	assert.ErrorIs(t, err, club.ErrInvalidMatch)
}

func TestInsertMatchesValidation(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	a, _ := store.AddPlayer("Alice")
	b, _ := store.AddPlayer("Bob")

	tests := []struct {
		name  string
		match tournament.Match
	}{
		{"self match", tournament.Match{PlayerAID: a.ID, PlayerBID: a.ID}},
		{"played without scores", tournament.Match{PlayerAID: a.ID, PlayerBID: b.ID, Played: true}},
		{"negative score", tournament.Match{PlayerAID: a.ID, PlayerBID: b.ID, ScoreA: intPtr(-2), ScoreB: intPtr(0), Played: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.InsertMatches([]tournament.Match{tt.match})
			assert.ErrorIs(t, err, club.ErrInvalidMatch)
		})
	}

	_, err := store.InsertMatches([]tournament.Match{
		{PlayerAID: a.ID, PlayerBID: b.ID},
		{PlayerAID: a.ID, PlayerBID: 999},
	})
	assert.Error(t, err, "unknown players violate the foreign key")

	matches, err := store.GetMatches()
	require.NoError(t, err)
	assert.Empty(t, matches, "a failed batch leaves no partial round behind")
}

func TestDeletePlayerCascadesMatches(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	a, _ := store.AddPlayer("Alice")
	b, _ := store.AddPlayer("Bob")
	c, _ := store.AddPlayer("Chloé")
	_, err := store.InsertMatches([]tournament.Match{
		{PlayerAID: a.ID, PlayerBID: b.ID},
		{PlayerAID: b.ID, PlayerBID: c.ID},
	})
	require.NoError(t, err)

	require.NoError(t, store.DeletePlayer(a.ID))
	assert.ErrorIs(t, store.DeletePlayer(a.ID), club.ErrPlayerNotFound)

	matches, err := store.GetMatches()
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, b.ID, matches[0].PlayerAID)
}

func TestClearMatches(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	a, _ := store.AddPlayer("Alice")
	b, _ := store.AddPlayer("Bob")
	_, err := store.InsertMatches([]tournament.Match{{PlayerAID: a.ID, PlayerBID: b.ID}})
	require.NoError(t, err)

	n, err := store.ClearMatches()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	matches, err := store.GetMatches()
	require.NoError(t, err)
	assert.Empty(t, matches)

	players, err := store.GetAllPlayers()
	require.NoError(t, err)
	assert.Len(t, players, 2, "reset keeps the roster")
}
