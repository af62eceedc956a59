package domain

import (
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
)

// LineItem is one (product, quantity, price-at-purchase) entry within an
// order. PriceAtPurchase is the unit price captured when the order was
// placed; the product's current price may have moved since.
type LineItem struct {
	ProductID       string  `json:"productId"`
	Quantity        int     `json:"quantity"`
	PriceAtPurchase float64 `json:"priceAtPurchase"`
}

// Order is persisted as given: TotalAmount is never recomputed from the
// line items, and status changes after creation happen out of band.
type Order struct {
	ID          string      `json:"id"`
	CustomerID  string      `json:"customerId"`
	LineItems   []LineItem  `json:"lineItems"`
	TotalAmount float64     `json:"totalAmount"`
	OrderDate   time.Time   `json:"orderDate"`
	Status      OrderStatus `json:"status"`
}
