package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamelib/internal/apperr"
	"gamelib/internal/testutil"
)

func uniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

func TestPostgresRepo_MatcherScenario(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPostgresRepo(db, 5*time.Second)
	m := NewMatcher(repo, nil, nil)
	ctx := context.Background()

	appID := uniqueID("app")
	rawgID := uniqueID("rawg")
	title := "Pg Scenario " + appID

	steamOnly, err := m.Resolve(ctx, Candidate{SteamAppID: appID, Title: title})
	require.NoError(t, err)
	assert.Equal(t, SourceSteam, steamOnly.Source)

	linked, err := m.Resolve(ctx, Candidate{RAWGID: rawgID, Title: title, Genres: []string{"Puzzle"}})
	require.NoError(t, err)
	assert.Equal(t, steamOnly.ID, linked.ID)
	assert.Equal(t, SourceBoth, linked.Source)
	assert.Equal(t, []string{"Puzzle"}, linked.Genres)

	byRAWG, err := repo.GetByRAWGID(ctx, rawgID)
	require.NoError(t, err)
	assert.Equal(t, steamOnly.ID, byRAWG.ID)
}

func TestPostgresRepo_SteamLinksMetadataOnlyGame(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPostgresRepo(db, 5*time.Second)
	m := NewMatcher(repo, nil, nil)
	ctx := context.Background()

	appID := uniqueID("app")
	rawgID := uniqueID("rawg")
	title := "Pg Reverse " + rawgID

	fromRAWG, err := m.Resolve(ctx, Candidate{RAWGID: rawgID, Title: title})
	require.NoError(t, err)
	assert.Equal(t, SourceRAWG, fromRAWG.Source)

	linked, err := m.Resolve(ctx, Candidate{SteamAppID: appID, Title: title})
	require.NoError(t, err)
	assert.Equal(t, fromRAWG.ID, linked.ID)
	assert.Equal(t, SourceBoth, linked.Source)

	bySteam, err := repo.GetBySteamAppID(ctx, appID)
	require.NoError(t, err)
	assert.Equal(t, fromRAWG.ID, bySteam.ID)
}

func TestPostgresRepo_UniqueExternalIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPostgresRepo(db, 5*time.Second)
	ctx := context.Background()

	appID := uniqueID("dup")
	require.NoError(t, repo.Create(ctx, &Game{SteamAppID: appID, Title: "First"}))

	err := repo.Create(ctx, &Game{SteamAppID: appID, Title: "Second"})
	assert.ErrorIs(t, err, apperr.ErrConflict)

	_, err = repo.GetBySteamAppID(ctx, uniqueID("missing"))
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPostgresRepo_UpdateNeverClearsExternalIDs(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPostgresRepo(db, 5*time.Second)
	ctx := context.Background()

	g := Game{SteamAppID: uniqueID("keep"), Title: "Keeper"}
	require.NoError(t, repo.Create(ctx, &g))

	g.SteamAppID = ""
	g.Title = "Keeper Renamed"
	require.NoError(t, repo.Update(ctx, &g))
	assert.NotEmpty(t, g.SteamAppID)
	assert.Equal(t, "Keeper Renamed", g.Title)
}

func TestPostgresRepo_Search(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPostgresRepo(db, 5*time.Second)
	ctx := context.Background()

	word := fmt.Sprintf("zyxquest%d", time.Now().UnixNano())
	require.NoError(t, repo.Create(ctx, &Game{RAWGID: uniqueID("s1"), Title: word + " Chronicles", Genres: []string{"RPG"}}))
	require.NoError(t, repo.Create(ctx, &Game{RAWGID: uniqueID("s2"), Title: "Unrelated", Tags: []string{word}}))

	games, total, err := repo.Search(ctx, SearchQuery{Q: word, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, games, 2)
	assert.Contains(t, games[0].Title, "Chronicles", "title matches outrank tag matches")
}
