package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"salespulse/internal/domain"
)

const orderColumns = "id, customer_id, line_items, total_amount, order_date, status"

// OrderRepo holds the typed queries the reports and the mutation are built
// on. One query function per access path; no generic filter object.
type OrderRepo interface {
	FindByCustomerAndStatus(ctx context.Context, customerID string, status domain.OrderStatus) ([]domain.Order, error)
	FindByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	// FindByStatusInRange bounds orderDate inclusively on both ends.
	FindByStatusInRange(ctx context.Context, status domain.OrderStatus, from, to time.Time) ([]domain.Order, error)
	CountByStatusInRange(ctx context.Context, status domain.OrderStatus, from, to time.Time) (int, error)
	Insert(ctx context.Context, order *domain.Order) error
	// PageByCustomer returns the customer's orders sorted by orderDate
	// descending, skipping offset rows and returning at most limit.
	PageByCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.Order, error)
}

type orderRepo struct {
	db *sql.DB
}

func NewOrderRepo(db *sql.DB) OrderRepo {
	return &orderRepo{db: db}
}

func (r *orderRepo) FindByCustomerAndStatus(ctx context.Context, customerID string, status domain.OrderStatus) ([]domain.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE customer_id = $1 AND status = $2", orderColumns)
	rows, err := r.db.QueryContext(ctx, query, customerID, status)
	if err != nil {
		return nil, fmt.Errorf("query orders for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *orderRepo) FindByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE status = $1", orderColumns)
	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("query %s orders: %w", status, err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *orderRepo) FindByStatusInRange(ctx context.Context, status domain.OrderStatus, from, to time.Time) ([]domain.Order, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM orders WHERE status = $1 AND order_date >= $2 AND order_date <= $3",
		orderColumns,
	)
	rows, err := r.db.QueryContext(ctx, query, status, from, to)
	if err != nil {
		return nil, fmt.Errorf("query %s orders in range: %w", status, err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *orderRepo) CountByStatusInRange(ctx context.Context, status domain.OrderStatus, from, to time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders WHERE status = $1 AND order_date >= $2 AND order_date <= $3",
		status, from, to,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count %s orders in range: %w", status, err)
	}
	return count, nil
}

func (r *orderRepo) Insert(ctx context.Context, order *domain.Order) error {
	lineItems, err := json.Marshal(order.LineItems)
	if err != nil {
		return fmt.Errorf("encode line items: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		"INSERT INTO orders (id, customer_id, line_items, total_amount, order_date, status) VALUES ($1, $2, $3, $4, $5, $6)",
		order.ID, order.CustomerID, lineItems, order.TotalAmount, order.OrderDate, order.Status,
	)
	if err != nil {
		return fmt.Errorf("insert order %s: %w", order.ID, err)
	}
	return nil
}

func (r *orderRepo) PageByCustomer(ctx context.Context, customerID string, limit, offset int) ([]domain.Order, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM orders WHERE customer_id = $1 ORDER BY order_date DESC LIMIT $2 OFFSET $3",
		orderColumns,
	)
	rows, err := r.db.QueryContext(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("page orders for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func collectOrders(rows *sql.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		var (
			order     domain.Order
			lineItems []byte
		)
		if err := rows.Scan(
			&order.ID,
			&order.CustomerID,
			&lineItems,
			&order.TotalAmount,
			&order.OrderDate,
			&order.Status,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if len(lineItems) > 0 {
			if err := json.Unmarshal(lineItems, &order.LineItems); err != nil {
				return nil, fmt.Errorf("decode line items for order %s: %w", order.ID, err)
			}
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}
