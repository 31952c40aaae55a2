package library

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamelib/internal/apperr"
	"gamelib/internal/catalog"
	"gamelib/internal/testutil"
)

func TestPostgresRepo_ReconcileAndStats(t *testing.T) {
	db := testutil.SetupTestDB(t)
	games := catalog.NewPostgresRepo(db, 5*time.Second)
	repo := NewPostgresRepo(db, 5*time.Second)
	ctx := context.Background()

	suffix := fmt.Sprint(time.Now().UnixNano())
	userID := "pg-user-" + suffix
	game := catalog.Game{SteamAppID: "app-" + suffix, Title: "Pg Library " + suffix}
	require.NoError(t, games.Create(ctx, &game))

	r := NewReconciler(repo, nil)
	out, err := r.Reconcile(ctx, userID, game, Hints{HoursPlayed: hours("3.2")})
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, out.Kind)

	out, err = r.Reconcile(ctx, userID, game, Hints{HoursPlayed: hours("1")})
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, out.Kind)

	out, err = r.Reconcile(ctx, userID, game, Hints{HoursPlayed: hours("8.75")})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, out.Kind)

	stored, err := repo.Get(ctx, userID, game.ID)
	require.NoError(t, err)
	assert.Equal(t, "8.8", stored.HoursPlayed.String())
	assert.Equal(t, game.Title, stored.Game.Title)

	dup := Entry{UserID: userID, GameID: game.ID, Status: StatusOwned}
	assert.ErrorIs(t, repo.Insert(ctx, &dup), apperr.ErrConflict)

	stats, err := repo.Stats(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[StatusOwned])

	entries, total, err := repo.List(ctx, userID, ListQuery{Sort: SortRating, Order: "desc", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, entries, 1)

	require.NoError(t, repo.Delete(ctx, userID, game.ID))
	_, err = repo.Get(ctx, userID, game.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPostgresRepo_InsertUnknownGame(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPostgresRepo(db, 5*time.Second)

	e := Entry{UserID: "pg-user", GameID: "0b7e7d8a-3f35-4a43-9d1a-6a6f4b8c2e11", Status: StatusOwned}
	err := repo.Insert(context.Background(), &e)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
