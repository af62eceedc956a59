package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"salespulse/internal/domain"
)

// mockOrderRepo is a mock implementation of the repo.OrderRepo interface.
type mockOrderRepo struct {
	mock.Mock
}

func (m *mockOrderRepo) FindByCustomerAndStatus(ctx context.Context, customerID string, status domain.OrderStatus) ([]domain.Order, error) {
	args := m.Called(ctx, customerID, status)
	return ordersResult(args)
}

func (m *mockOrderRepo) FindByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	args := m.Called(ctx, status)
	return ordersResult(args)
}

func (m *mockOrderRepo) FindByStatusInRange(ctx context.Context, status domain.OrderStatus, from, to time.Time) ([]domain.Order, error) {
	args := m.Called(ctx, status, from, to)
	return ordersResult(args)
}

func (m *mockOrderRepo) CountByStatusInRange(ctx context.Context, status domain.OrderStatus, from, to time.Time) (int, error) {
	args := m.Called(ctx, status, from, to)
	return args.Int(0), args.Error(1)
}

func (m *mockOrderRepo) Insert(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepo) PageByCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.Order, error) {
	args := m.Called(ctx, customerID, limit, offset)
	return ordersResult(args)
}

func ordersResult(args mock.Arguments) ([]domain.Order, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

// mockProductRepo is a mock implementation of the repo.ProductRepo interface.
type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) FindByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Product), args.Error(1)
}
