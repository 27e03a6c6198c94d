package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/KnightlyTreasures_Go/internal/character"
	"github.com/osse101/KnightlyTreasures_Go/internal/domain"
)

// MockCharacterService is a mock type for the character.Service type
type MockCharacterService struct {
	mock.Mock
}

var _ character.Service = (*MockCharacterService)(nil)

func (_m *MockCharacterService) Get(ctx context.Context, id string) (*domain.Character, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Character)
	}
	return r0, ret.Error(1)
}

func (_m *MockCharacterService) List(ctx context.Context) ([]domain.Character, error) {
	ret := _m.Called(ctx)
	var r0 []domain.Character
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Character)
	}
	return r0, ret.Error(1)
}

func (_m *MockCharacterService) Create(ctx context.Context, c domain.Character) (*character.Result, error) {
	return _m.result(_m.Called(ctx, c))
}

func (_m *MockCharacterService) AdjustHP(ctx context.Context, id string, delta int) (*character.Result, error) {
	return _m.result(_m.Called(ctx, id, delta))
}

func (_m *MockCharacterService) SetCurrency(ctx context.Context, id string, purse domain.CoinPurse) (*character.Result, error) {
	return _m.result(_m.Called(ctx, id, purse))
}

func (_m *MockCharacterService) AddItem(ctx context.Context, id string, itemID string) (*character.Result, error) {
	return _m.result(_m.Called(ctx, id, itemID))
}

func (_m *MockCharacterService) RemoveItem(ctx context.Context, id string, itemID string) (*character.Result, error) {
	return _m.result(_m.Called(ctx, id, itemID))
}

func (_m *MockCharacterService) Equip(ctx context.Context, id string, itemID string) (*character.Result, error) {
	return _m.result(_m.Called(ctx, id, itemID))
}

func (_m *MockCharacterService) Unequip(ctx context.Context, id string, itemID string) (*character.Result, error) {
	return _m.result(_m.Called(ctx, id, itemID))
}

func (_m *MockCharacterService) Attune(ctx context.Context, id string, itemID string) (*character.Result, error) {
	return _m.result(_m.Called(ctx, id, itemID))
}

func (_m *MockCharacterService) Unattune(ctx context.Context, id string, itemID string) (*character.Result, error) {
	return _m.result(_m.Called(ctx, id, itemID))
}

func (_m *MockCharacterService) ToggleWishlist(ctx context.Context, id string, itemID string) (*character.Result, error) {
	return _m.result(_m.Called(ctx, id, itemID))
}

func (_m *MockCharacterService) result(ret mock.Arguments) (*character.Result, error) {
	var r0 *character.Result
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*character.Result)
	}
	return r0, ret.Error(1)
}

// NewMockCharacterService creates a new instance of MockCharacterService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockCharacterService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCharacterService {
	m := &MockCharacterService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
