package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/shop"
	"github.com/osse101/KnightlyTreasures_Go/internal/sse"
	"github.com/osse101/KnightlyTreasures_Go/mocks"
)

const testAPIKey = "test-admin-key"

func newTestRouter(t *testing.T) (http.Handler, *mocks.MockShopService, *mocks.MockCharacterService) {
	shopSvc := mocks.NewMockShopService(t)
	charSvc := mocks.NewMockCharacterService(t)
	r := NewRouter(Options{AdminAPIKey: testAPIKey}, Dependencies{
		ShopService:      shopSvc,
		CharacterService: charSvc,
		Hub:              sse.NewHub(),
	})
	return r, shopSvc, charSvc
}

func TestRouter_Probes(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"mode":"local"`)
	assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ShopRoutesArePublic(t *testing.T) {
	r, shopSvc, charSvc := newTestRouter(t)
	shopSvc.On("Week", mock.Anything).Return(shop.WeekInfo{Week: 7})
	charSvc.On("Get", mock.Anything, "c1").Return(&domain.Character{ID: "c1", Name: "Aiko"}, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/shop/week", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"week":7`)
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/characters/c1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Aiko"`)
}

func TestRouter_AdminRequiresKey(t *testing.T) {
	r, shopSvc, _ := newTestRouter(t)
	shopSvc.On("SetHonor", mock.Anything, "Crane", 2).Return(&shop.Result{Success: true}, nil).Once()

	body := `{"clan":"Crane","score":2}`

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/admin/honor", strings.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/honor", strings.NewReader(body))
	req.Header.Set(HeaderAPIKey, testAPIKey)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_UnknownRoute(t *testing.T) {
	r, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
