package catalog

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"gamelib/internal/apperr"
	"gamelib/internal/testutil"
)

func newTestHandler(t *testing.T) (*HTTPHandler, *MockRepository) {
	ctrl := gomock.NewController(t)
	mockRepo := NewMockRepository(ctrl)
	service := NewService(mockRepo, NewMatcher(mockRepo, nil, nil))
	return NewHTTPHandler(service, nil), mockRepo
}

func TestHTTPHandler_Search(t *testing.T) {
	handler, mockRepo := newTestHandler(t)

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().
			Search(gomock.Any(), SearchQuery{Q: "portal", Limit: 10, Offset: 10}).
			Return([]Game{{ID: "g1", Title: "Portal 2"}}, 11, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/catalog/search?q=portal&page=2&page_size=10", nil)

		handler.Search(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		meta := resp.Body["meta"].(map[string]any)
		assert.Equal(t, float64(2), meta["total_pages"])
	})

	t.Run("error", func(t *testing.T) {
		mockRepo.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, 0, errors.New("db error"))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/catalog/search", nil)

		handler.Search(w, r)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHTTPHandler_Get(t *testing.T) {
	handler, mockRepo := newTestHandler(t)
	const id = "0b7e7d8a-3f35-4a43-9d1a-6a6f4b8c2e11"

	t.Run("success", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), id).Return(Game{ID: id, Title: "Portal 2"}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/games/"+id, nil)
		r.SetPathValue("id", id)

		handler.Get(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "Portal 2", resp.Data()["title"])
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().GetByID(gomock.Any(), id).Return(Game{}, apperr.NotFoundf("game id %s", id))

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/v1/games/"+id, nil)
		r.SetPathValue("id", id)

		handler.Get(w, r)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHTTPHandler_Resolve(t *testing.T) {
	handler, mockRepo := newTestHandler(t)

	t.Run("known steam app", func(t *testing.T) {
		mockRepo.EXPECT().GetBySteamAppID(gomock.Any(), "620").
			Return(Game{ID: "g1", SteamAppID: "620", Title: "Portal 2", Source: SourceSteam}, nil)

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/v1/games/resolve", strings.NewReader(`{"steam_app_id":"620"}`))

		handler.Resolve(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "steam", resp.Data()["source"])
	})

	t.Run("empty candidate", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/v1/games/resolve", strings.NewReader(`{}`))

		handler.Resolve(w, r)

		resp := testutil.RecordHTTPResponse(w)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, "VALIDATION_ERROR", resp.ErrorCode())
	})

	t.Run("unknown field", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/v1/games/resolve", strings.NewReader(`{"isbn":"1"}`))

		handler.Resolve(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
