package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
	"github.com/osse101/KnightlyTreasures_Go/internal/inventory"
	"github.com/osse101/KnightlyTreasures_Go/internal/shop"
	"github.com/osse101/KnightlyTreasures_Go/internal/state"
)

// MockShopService is a mock type for the shop.Service type
type MockShopService struct {
	mock.Mock
}

var _ shop.Service = (*MockShopService)(nil)

func (_m *MockShopService) Week(ctx context.Context) shop.WeekInfo {
	ret := _m.Called(ctx)
	return ret.Get(0).(shop.WeekInfo)
}

func (_m *MockShopService) Selection(ctx context.Context) []domain.Item {
	ret := _m.Called(ctx)
	if ret.Get(0) == nil {
		return nil
	}
	return ret.Get(0).([]domain.Item)
}

func (_m *MockShopService) Listing(ctx context.Context, filter inventory.Filter, characterID string) []shop.Listing {
	ret := _m.Called(ctx, filter, characterID)
	if ret.Get(0) == nil {
		return nil
	}
	return ret.Get(0).([]shop.Listing)
}

func (_m *MockShopService) Item(ctx context.Context, itemID string, characterID string) (*shop.Listing, error) {
	ret := _m.Called(ctx, itemID, characterID)
	var r0 *shop.Listing
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*shop.Listing)
	}
	return r0, ret.Error(1)
}

func (_m *MockShopService) Export(ctx context.Context, itemID string) (string, error) {
	ret := _m.Called(ctx, itemID)
	return ret.String(0), ret.Error(1)
}

func (_m *MockShopService) Party(ctx context.Context) []state.PartyMember {
	ret := _m.Called(ctx)
	if ret.Get(0) == nil {
		return nil
	}
	return ret.Get(0).([]state.PartyMember)
}

func (_m *MockShopService) Buy(ctx context.Context, characterID string, itemID string) (*shop.Result, error) {
	return _m.result(_m.Called(ctx, characterID, itemID))
}

func (_m *MockShopService) Sell(ctx context.Context, characterID string, itemID string) (*shop.Result, error) {
	return _m.result(_m.Called(ctx, characterID, itemID))
}

func (_m *MockShopService) Reserve(ctx context.Context, characterID string, itemID string) (*shop.Result, error) {
	return _m.result(_m.Called(ctx, characterID, itemID))
}

func (_m *MockShopService) CancelReservation(ctx context.Context, characterID string, itemID string) (*shop.Result, error) {
	return _m.result(_m.Called(ctx, characterID, itemID))
}

func (_m *MockShopService) RestorePurchase(ctx context.Context, itemID string) (*shop.Result, error) {
	return _m.result(_m.Called(ctx, itemID))
}

func (_m *MockShopService) SetHonor(ctx context.Context, clan string, score int) (*shop.Result, error) {
	return _m.result(_m.Called(ctx, clan, score))
}

func (_m *MockShopService) SetQuest(ctx context.Context, quest *domain.ActiveQuest) (*shop.Result, error) {
	return _m.result(_m.Called(ctx, quest))
}

func (_m *MockShopService) SetLocation(ctx context.Context, loc *domain.PartyLocation) (*shop.Result, error) {
	return _m.result(_m.Called(ctx, loc))
}

func (_m *MockShopService) ExpireReservations(ctx context.Context) (int, error) {
	ret := _m.Called(ctx)
	return ret.Int(0), ret.Error(1)
}

func (_m *MockShopService) Refresh(ctx context.Context, source string) error {
	return _m.Called(ctx, source).Error(0)
}

func (_m *MockShopService) Run(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}

func (_m *MockShopService) result(ret mock.Arguments) (*shop.Result, error) {
	var r0 *shop.Result
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*shop.Result)
	}
	return r0, ret.Error(1)
}

// NewMockShopService creates a new instance of MockShopService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockShopService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockShopService {
	m := &MockShopService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
