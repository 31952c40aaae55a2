package ingest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gamelib/internal/apperr"
	"gamelib/internal/platform/steam"
	"gamelib/internal/testutil"
)

func TestHTTPHandler_ImportSteam(t *testing.T) {
	t.Run("unauthorized", func(t *testing.T) {
		f := newFixture(t, nil)
		handler := NewHTTPHandler(f.svc, nil)

		w := httptest.NewRecorder()
		handler.ImportSteam(w, httptest.NewRequest(http.MethodPost, "/v1/import/steam", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("success", func(t *testing.T) {
		f := newFixture(t, []steam.OwnedTitle{
			{AppID: "620", Name: "Portal 2", MinutesPlayed: 600},
			{AppID: "10", Name: "Counter-Strike", MinutesPlayed: 5},
		})
		handler := NewHTTPHandler(f.svc, nil)

		w := httptest.NewRecorder()
		r := testutil.AsUser(httptest.NewRequest(http.MethodPost, "/v1/import/steam",
			strings.NewReader(`{"steam_handle":"gaben","min_playtime_minutes":60,"enrich":false}`)), testUser)

		handler.ImportSteam(w, r)

		resp := testutil.RecordHTTPResponse(w)
		require.Equal(t, http.StatusOK, resp.Code)
		data := resp.Data()
		assert.Equal(t, float64(2), data["total_in_steam"])
		assert.Equal(t, float64(1), data["processed"])
		imported := data["imported"].([]any)
		require.Len(t, imported, 1)
		assert.Equal(t, "Portal 2", imported[0].(map[string]any)["name"])
		f.meta.AssertNotCalled(t, "LookupByName", mock.Anything, mock.Anything)
	})

	t.Run("private profile", func(t *testing.T) {
		f := newFixture(t, nil)
		f.own.On("ListOwnedGames", mock.Anything, testSteamID).Return(nil, apperr.ErrPrivateProfile)
		handler := NewHTTPHandler(f.svc, nil)

		w := httptest.NewRecorder()
		r := testutil.AsUser(httptest.NewRequest(http.MethodPost, "/v1/import/steam",
			strings.NewReader(`{"steam_handle":"gaben"}`)), testUser)

		handler.ImportSteam(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusForbidden, resp.Code)
		assert.Equal(t, "PRIVATE_PROFILE", resp.ErrorCode())
	})

	t.Run("negative limit", func(t *testing.T) {
		f := newFixture(t, nil)
		handler := NewHTTPHandler(f.svc, nil)

		w := httptest.NewRecorder()
		r := testutil.AsUser(httptest.NewRequest(http.MethodPost, "/v1/import/steam",
			strings.NewReader(`{"steam_handle":"gaben","limit":-5}`)), testUser)

		handler.ImportSteam(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHTTPHandler_SteamProfile(t *testing.T) {
	f := newFixture(t, nil)
	f.own.On("GetProfile", mock.Anything, testSteamID).
		Return(steam.Profile{SteamID: testSteamID, PersonaName: "Gabe", IsPublic: true}, nil)
	handler := NewHTTPHandler(f.svc, nil)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/v1/steam/profile/gaben", nil)
	r.SetPathValue("handle", testHandle)

	handler.SteamProfile(w, r)

	resp := testutil.RecordHTTPResponse(w)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "Gabe", resp.Data()["persona_name"])
}

func TestHTTPHandler_Runs(t *testing.T) {
	f := newFixture(t, nil)
	runs := new(mockRunRepo)
	runs.On("ListRuns", mock.Anything, testUser, 10).Return([]Run{{ID: "run-1", Status: RunStatusCompleted}}, nil)
	f.svc.deps.Runs = runs
	handler := NewHTTPHandler(f.svc, nil)

	w := httptest.NewRecorder()
	handler.Runs(w, testutil.AsUser(httptest.NewRequest(http.MethodGet, "/v1/import/runs", nil), testUser))

	resp := testutil.RecordHTTPResponse(w)
	assert.Equal(t, http.StatusOK, resp.Code)
	data := resp.Body["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "run-1", data[0].(map[string]any)["id"])
}
