package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/inventory"
	"github.com/osse101/KnightlyTreasures_Go/internal/shop"
	"github.com/osse101/KnightlyTreasures_Go/internal/state"
	"github.com/osse101/KnightlyTreasures_Go/mocks"
)

func TestHandleBuy(t *testing.T) {
	InitValidator()

	validReq := BuyRequest{CharacterID: "c1", ItemID: "excalibur"}

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*mocks.MockShopService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "Success",
			requestBody: validReq,
			setupMock: func(m *mocks.MockShopService) {
				m.On("Buy", mock.Anything, "c1", "excalibur").
					Return(&shop.Result{Success: true, ItemID: "excalibur", Price: 1000, PriceLabel: "100 pp"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"success":true`,
		},
		{
			name:        "Insufficient Funds Is Not An Error",
			requestBody: validReq,
			setupMock: func(m *mocks.MockShopService) {
				m.On("Buy", mock.Anything, "c1", "excalibur").
					Return(&shop.Result{Success: false, Reason: shop.ReasonInsufficientFunds}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"reason":"insufficient_funds"`,
		},
		{
			name:           "Invalid Request - Missing Item",
			requestBody:    BuyRequest{CharacterID: "c1"},
			setupMock:      func(m *mocks.MockShopService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"item_id":"This field is required"`,
		},
		{
			name:           "Invalid JSON",
			requestBody:    "{not json",
			setupMock:      func(m *mocks.MockShopService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name:        "Already Purchased",
			requestBody: validReq,
			setupMock: func(m *mocks.MockShopService) {
				m.On("Buy", mock.Anything, "c1", "excalibur").
					Return(nil, fmt.Errorf("commit purchase: %w", domain.ErrAlreadyPurchased))
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   ErrMsgAlreadyPurchasedErr,
		},
		{
			name:        "No Trade",
			requestBody: validReq,
			setupMock: func(m *mocks.MockShopService) {
				m.On("Buy", mock.Anything, "c1", "excalibur").Return(nil, domain.ErrNoTrade)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   ErrMsgNoTradeError,
		},
		{
			name:        "Not On Shelf",
			requestBody: validReq,
			setupMock: func(m *mocks.MockShopService) {
				m.On("Buy", mock.Anything, "c1", "excalibur").Return(nil, domain.ErrItemNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   ErrMsgItemNotFoundError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := mocks.NewMockShopService(t)
			tt.setupMock(mockSvc)

			w := httptest.NewRecorder()
			HandleBuy(mockSvc).ServeHTTP(w, newRequest(t, http.MethodPost, "/api/v1/shop/buy", tt.requestBody))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestHandleSell(t *testing.T) {
	InitValidator()

	mockSvc := mocks.NewMockShopService(t)
	mockSvc.On("Sell", mock.Anything, "c1", "Flame Tongue").
		Return(&shop.Result{Success: true, Price: 5000, PriceLabel: "5 pp"}, nil)

	w := httptest.NewRecorder()
	HandleSell(mockSvc).ServeHTTP(w, newRequest(t, http.MethodPost, "/api/v1/shop/sell",
		SellRequest{CharacterID: "c1", Item: "Flame Tongue"}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"price_label":"5 pp"`)
}

func TestHandleReserve(t *testing.T) {
	InitValidator()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"Success", nil, http.StatusOK},
		{"Common Item", domain.ErrNotReservable, http.StatusBadRequest},
		{"Reserved By Other", domain.ErrItemReserved, http.StatusConflict},
		{"Reserved By Self", domain.ErrAlreadyReserved, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := mocks.NewMockShopService(t)
			var res *shop.Result
			if tt.err == nil {
				res = &shop.Result{Success: true, ItemID: "flame-tongue", Price: 10}
			}
			mockSvc.On("Reserve", mock.Anything, "c1", "flame-tongue").Return(res, tt.err)

			w := httptest.NewRecorder()
			HandleReserve(mockSvc).ServeHTTP(w, newRequest(t, http.MethodPost, "/api/v1/shop/reserve",
				ReserveRequest{CharacterID: "c1", ItemID: "flame-tongue"}))

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestHandleCancelReservation(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := mocks.NewMockShopService(t)
		mockSvc.On("CancelReservation", mock.Anything, "c1", "flame-tongue").
			Return(&shop.Result{Success: true, ItemID: "flame-tongue"}, nil)

		w := httptest.NewRecorder()
		req := newRequest(t, http.MethodDelete, "/api/v1/shop/reservations/flame-tongue?character_id=c1", nil, "itemID", "flame-tongue")
		HandleCancelReservation(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Missing Character", func(t *testing.T) {
		mockSvc := mocks.NewMockShopService(t)

		w := httptest.NewRecorder()
		req := newRequest(t, http.MethodDelete, "/api/v1/shop/reservations/flame-tongue", nil, "itemID", "flame-tongue")
		HandleCancelReservation(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Missing character_id query parameter")
	})

	t.Run("Someone Else's Reservation", func(t *testing.T) {
		mockSvc := mocks.NewMockShopService(t)
		mockSvc.On("CancelReservation", mock.Anything, "c2", "flame-tongue").Return(nil, domain.ErrNotReserver)

		w := httptest.NewRecorder()
		req := newRequest(t, http.MethodDelete, "/api/v1/shop/reservations/flame-tongue?character_id=c2", nil, "itemID", "flame-tongue")
		HandleCancelReservation(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestHandleInventory(t *testing.T) {
	InitValidator()

	t.Run("Filters Are Passed Through", func(t *testing.T) {
		mockSvc := mocks.NewMockShopService(t)
		mockSvc.On("Listing", mock.Anything, inventory.Filter{Category: "weapon", Rarity: "rare"}, "c1").
			Return([]shop.Listing{{Item: domain.Item{ID: "flame-tongue"}, Price: 100, Status: shop.StatusAvailable}})
		mockSvc.On("Week", mock.Anything).Return(shop.WeekInfo{Week: 4})

		w := httptest.NewRecorder()
		HandleInventory(mockSvc).ServeHTTP(w, newRequest(t, http.MethodGet, "/api/v1/shop/inventory?category=Weapon&rarity=rare&character_id=c1", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"week":4`)
		assert.Contains(t, w.Body.String(), `"flame-tongue"`)
	})

	t.Run("Unknown Category", func(t *testing.T) {
		mockSvc := mocks.NewMockShopService(t)

		w := httptest.NewRecorder()
		HandleInventory(mockSvc).ServeHTTP(w, newRequest(t, http.MethodGet, "/api/v1/shop/inventory?category=potion", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Unknown category")
	})
}

func TestHandleGetItem(t *testing.T) {
	mockSvc := mocks.NewMockShopService(t)
	mockSvc.On("Item", mock.Anything, "missing", "").Return(nil, domain.ErrItemNotFound)
	mockSvc.On("Item", mock.Anything, "rope", "").
		Return(&shop.Listing{Item: domain.Item{ID: "rope", Name: "Rope"}, PriceLabel: "1 gp"}, nil)

	w := httptest.NewRecorder()
	HandleGetItem(mockSvc).ServeHTTP(w, newRequest(t, http.MethodGet, "/api/v1/shop/items/missing", nil, "id", "missing"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	HandleGetItem(mockSvc).ServeHTTP(w, newRequest(t, http.MethodGet, "/api/v1/shop/items/rope", nil, "id", "rope"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"price_label":"1 gp"`)
}

func TestHandleExportItem(t *testing.T) {
	mockSvc := mocks.NewMockShopService(t)
	mockSvc.On("Export", mock.Anything, "rope").Return("Rope\nGear · Common\n1 gp", nil)

	w := httptest.NewRecorder()
	HandleExportItem(mockSvc).ServeHTTP(w, newRequest(t, http.MethodGet, "/api/v1/shop/items/rope/export", nil, "id", "rope"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"item_id":"rope"`)
	assert.Contains(t, w.Body.String(), `Rope\nGear`)
}

func TestHandleParty(t *testing.T) {
	mockSvc := mocks.NewMockShopService(t)
	mockSvc.On("Party", mock.Anything).Return([]state.PartyMember{{ID: "c1", Name: "Aiko", HPCurrent: 5, HPMax: 10, Percent: 50}})

	w := httptest.NewRecorder()
	HandleParty(mockSvc).ServeHTTP(w, newRequest(t, http.MethodGet, "/api/v1/party", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"percent":50`)
}
