package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"riverdeals.backend/internal/domain/entities"
	domainerrors "riverdeals.backend/internal/domain/errors"
	"riverdeals.backend/internal/usecases"
)

func newDealRouter(repo *dealRepoStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewDealHandler(usecases.NewDealUsecase(repo))
	r := gin.New()
	r.GET("/api/deals", h.ListDeals)
	r.GET("/api/deals/search", h.SearchDeals)
	r.GET("/api/deals/popular", h.GetPopularDeals)
	r.GET("/api/deals/stats", h.GetStats)
	r.GET("/api/deals/:id", h.GetDeal)
	r.POST("/api/deals/:id/click", h.RecordClick)
	return r
}

func TestDealHandler_ListDeals(t *testing.T) {
	repo := &dealRepoStub{
		listFn: func(_ context.Context, input entities.ListDealsInput, _ time.Time) ([]*entities.Deal, int64, error) {
			assert.Equal(t, entities.DealSortPopularity, input.SortBy)
			assert.Equal(t, 1, input.Page)
			return []*entities.Deal{{TitleEn: "Deal"}}, 7, nil
		},
	}
	r := newDealRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/deals?page=1&size=3&sortBy=popularity", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Content       []json.RawMessage `json:"content"`
		TotalElements int64             `json:"totalElements"`
		TotalPages    int               `json:"totalPages"`
		Last          bool              `json:"last"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Content, 1)
	assert.Equal(t, int64(7), body.TotalElements)
	assert.Equal(t, 3, body.TotalPages)
}

func TestDealHandler_ListDealsBadParams(t *testing.T) {
	r := newDealRouter(&dealRepoStub{})

	for _, target := range []string{
		"/api/deals?page=abc",
		"/api/deals?size=x",
		"/api/deals?categoryId=nope",
		"/api/deals?storeId=nope",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
		assert.Contains(t, w.Body.String(), domainerrors.CodeInvalidArgument)
	}
}

func TestDealHandler_SearchRequiresKeyword(t *testing.T) {
	r := newDealRouter(&dealRepoStub{})

	req := httptest.NewRequest(http.MethodGet, "/api/deals/search?keyword=++", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDealHandler_GetDeal(t *testing.T) {
	id := uuid.New()
	repo := &dealRepoStub{
		getActiveByIDFn: func(_ context.Context, got uuid.UUID, _ time.Time) (*entities.Deal, error) {
			if got == id {
				return &entities.Deal{ID: id, TitleEn: "Active"}, nil
			}
			return nil, domainerrors.ErrNotFound
		},
	}
	r := newDealRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/deals/"+id.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/deals/"+uuid.NewString(), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/deals/not-a-uuid", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDealHandler_RecordClick(t *testing.T) {
	id := uuid.New()
	repo := &dealRepoStub{
		incrementClickFn: func(_ context.Context, got uuid.UUID) (int, error) {
			if got == id {
				return 5, nil
			}
			return 0, domainerrors.ErrNotFound
		},
	}
	r := newDealRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/deals/"+id.String()+"/click", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"clickCount":5`)

	req = httptest.NewRequest(http.MethodPost, "/api/deals/"+uuid.NewString()+"/click", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDealHandler_PopularAndStats(t *testing.T) {
	repo := &dealRepoStub{
		popularFn: func(_ context.Context, limit int, _ time.Time) ([]*entities.Deal, error) {
			assert.Equal(t, 5, limit)
			return nil, nil
		},
		countActiveFn: func(_ context.Context, _ time.Time) (int64, error) {
			return 42, nil
		},
	}
	r := newDealRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/deals/popular?limit=5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/deals/stats", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalActiveDeals":42`)
}
