package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"salespulse/internal/domain"
	"salespulse/internal/repo"
)

const defaultPageSize = 10

// PlaceOrderInput carries the mutation arguments as given by the caller.
// TotalAmount is trusted, not recomputed from the line items.
type PlaceOrderInput struct {
	CustomerID  string
	LineItems   []domain.LineItem
	TotalAmount float64
	OrderDate   string
	Status      string
}

type OrderService interface {
	// PlaceOrder persists the input under a freshly generated id and
	// returns the stored record. Duplicate submissions create duplicate
	// orders; there is no idempotency key.
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)

	// CustomerOrders returns a page of the customer's orders sorted by
	// orderDate descending. No total count is reported.
	CustomerOrders(ctx context.Context, customerID string, limit, offset int) ([]domain.Order, error)
}

type orderService struct {
	orders repo.OrderRepo
}

func NewOrderService(orders repo.OrderRepo) OrderService {
	return &orderService{orders: orders}
}

func (s *orderService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error) {
	orderDate, err := parseDate(input.OrderDate)
	if err != nil {
		return nil, fmt.Errorf("orderDate: %w", err)
	}

	status := domain.OrderStatus(input.Status)
	if status == "" {
		status = domain.OrderPending
	}

	order := &domain.Order{
		ID:          uuid.NewString(),
		CustomerID:  input.CustomerID,
		LineItems:   input.LineItems,
		TotalAmount: input.TotalAmount,
		OrderDate:   orderDate,
		Status:      status,
	}

	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}
	return order, nil
}

func (s *orderService) CustomerOrders(ctx context.Context, customerID string, limit, offset int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	orders, err := s.orders.PageByCustomer(ctx, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("page customer orders: %w", err)
	}
	return orders, nil
}
