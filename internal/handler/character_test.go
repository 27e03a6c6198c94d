package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/KnightlyTreasures_Go/internal/character"
	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/mocks"
)

func testResult() *character.Result {
	return &character.Result{Character: domain.Character{ID: "c1", Name: "Aiko", Class: "Fighter"}}
}

func TestHandleListCharacters(t *testing.T) {
	t.Run("Empty List Encodes As Array", func(t *testing.T) {
		mockSvc := mocks.NewMockCharacterService(t)
		mockSvc.On("List", mock.Anything).Return(nil, nil)

		w := httptest.NewRecorder()
		HandleListCharacters(mockSvc).ServeHTTP(w, newRequest(t, http.MethodGet, "/api/v1/characters", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]\n", w.Body.String())
	})

	t.Run("Store Error", func(t *testing.T) {
		mockSvc := mocks.NewMockCharacterService(t)
		mockSvc.On("List", mock.Anything).Return(nil, assert.AnError)

		w := httptest.NewRecorder()
		HandleListCharacters(mockSvc).ServeHTTP(w, newRequest(t, http.MethodGet, "/api/v1/characters", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHandleGetCharacter(t *testing.T) {
	mockSvc := mocks.NewMockCharacterService(t)
	mockSvc.On("Get", mock.Anything, "nobody").Return(nil, domain.ErrCharacterNotFound)

	w := httptest.NewRecorder()
	HandleGetCharacter(mockSvc).ServeHTTP(w, newRequest(t, http.MethodGet, "/api/v1/characters/nobody", nil, "id", "nobody"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgCharacterNotFoundErr)
}

func TestHandleAdjustHP(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*mocks.MockCharacterService)
		expectedStatus int
	}{
		{
			name: "Damage",
			body: AdjustHPRequest{Delta: -5},
			setupMock: func(m *mocks.MockCharacterService) {
				m.On("AdjustHP", mock.Anything, "c1", -5).Return(testResult(), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Delta Out Of Range",
			body:           AdjustHPRequest{Delta: 5000},
			setupMock:      func(m *mocks.MockCharacterService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Unknown Character",
			body: AdjustHPRequest{Delta: 3},
			setupMock: func(m *mocks.MockCharacterService) {
				m.On("AdjustHP", mock.Anything, "c1", 3).Return(nil, domain.ErrCharacterNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := mocks.NewMockCharacterService(t)
			tt.setupMock(mockSvc)

			w := httptest.NewRecorder()
			HandleAdjustHP(mockSvc).ServeHTTP(w, newRequest(t, http.MethodPost, "/api/v1/characters/c1/hp", tt.body, "id", "c1"))

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestHandleBackpack_Actions(t *testing.T) {
	InitValidator()

	mockSvc := mocks.NewMockCharacterService(t)
	mockSvc.On("AddItem", mock.Anything, "c1", "rope").Return(testResult(), nil).Once()
	mockSvc.On("RemoveItem", mock.Anything, "c1", "rope").Return(nil, domain.ErrItemNotInBackpack).Once()

	w := httptest.NewRecorder()
	HandleBackpack(mockSvc).ServeHTTP(w, newRequest(t, http.MethodPost, "/api/v1/characters/c1/items",
		BackpackRequest{ItemID: "rope"}, "id", "c1"))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	HandleBackpack(mockSvc).ServeHTTP(w, newRequest(t, http.MethodPost, "/api/v1/characters/c1/items",
		BackpackRequest{ItemID: "rope", Action: ActionRemove}, "id", "c1"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	HandleBackpack(mockSvc).ServeHTTP(w, newRequest(t, http.MethodPost, "/api/v1/characters/c1/items",
		BackpackRequest{ItemID: "rope", Action: "juggle"}, "id", "c1"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Must be one of: add remove")
}

func TestHandleEquip_Unequip(t *testing.T) {
	InitValidator()

	mockSvc := mocks.NewMockCharacterService(t)
	mockSvc.On("Unequip", mock.Anything, "c1", "cloak").Return(testResult(), nil)

	w := httptest.NewRecorder()
	HandleEquip(mockSvc).ServeHTTP(w, newRequest(t, http.MethodPost, "/api/v1/characters/c1/equip",
		EquipRequest{ItemID: "cloak", Action: ActionUnequip}, "id", "c1"))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleAttune_Full(t *testing.T) {
	InitValidator()

	mockSvc := mocks.NewMockCharacterService(t)
	mockSvc.On("Attune", mock.Anything, "c1", "excalibur").Return(nil, domain.ErrAttunementFull)

	w := httptest.NewRecorder()
	HandleAttune(mockSvc).ServeHTTP(w, newRequest(t, http.MethodPost, "/api/v1/characters/c1/attune",
		AttuneRequest{ItemID: "excalibur"}, "id", "c1"))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgAttunementFullError)
}

func TestHandleWishlist(t *testing.T) {
	InitValidator()

	res := testResult()
	res.Character.Wishlist = []string{"excalibur"}
	mockSvc := mocks.NewMockCharacterService(t)
	mockSvc.On("ToggleWishlist", mock.Anything, "c1", "excalibur").Return(res, nil)

	w := httptest.NewRecorder()
	HandleWishlist(mockSvc).ServeHTTP(w, newRequest(t, http.MethodPost, "/api/v1/characters/c1/wishlist",
		WishlistRequest{ItemID: "excalibur"}, "id", "c1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"wishlist":["excalibur"]`)
}

func TestHandleSetCurrency(t *testing.T) {
	InitValidator()

	t.Run("Success", func(t *testing.T) {
		mockSvc := mocks.NewMockCharacterService(t)
		mockSvc.On("SetCurrency", mock.Anything, "c1", domain.CoinPurse{GP: 12, SP: 3}).Return(testResult(), nil)

		w := httptest.NewRecorder()
		HandleSetCurrency(mockSvc).ServeHTTP(w, newRequest(t, http.MethodPut, "/api/v1/characters/c1/currency",
			CurrencyRequest{GP: 12, SP: 3}, "id", "c1"))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Negative Coins Rejected", func(t *testing.T) {
		mockSvc := mocks.NewMockCharacterService(t)

		w := httptest.NewRecorder()
		HandleSetCurrency(mockSvc).ServeHTTP(w, newRequest(t, http.MethodPut, "/api/v1/characters/c1/currency",
			CurrencyRequest{GP: -1}, "id", "c1"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"gp":"Must be 0 or more"`)
	})
}
