package graph

import (
	"context"
	"testing"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salespulse/internal/domain"
	"salespulse/internal/service"
)

// stubAnalytics is a canned implementation of service.AnalyticsService.
type stubAnalytics struct {
	spending  *domain.CustomerSpending
	top       []domain.TopProduct
	analytics *domain.SalesAnalytics
}

func (s *stubAnalytics) CustomerSpending(context.Context, string) (*domain.CustomerSpending, error) {
	return s.spending, nil
}

func (s *stubAnalytics) TopSellingProducts(context.Context, int) ([]domain.TopProduct, error) {
	return s.top, nil
}

func (s *stubAnalytics) SalesAnalytics(context.Context, string, string) (*domain.SalesAnalytics, error) {
	return s.analytics, nil
}

// stubOrders records the arguments the schema dispatches with.
type stubOrders struct {
	placed    *domain.Order
	page      []domain.Order
	gotInput  service.PlaceOrderInput
	gotLimit  int
	gotOffset int
}

func (s *stubOrders) PlaceOrder(_ context.Context, input service.PlaceOrderInput) (*domain.Order, error) {
	s.gotInput = input
	return s.placed, nil
}

func (s *stubOrders) CustomerOrders(_ context.Context, _ string, limit, offset int) ([]domain.Order, error) {
	s.gotLimit = limit
	s.gotOffset = offset
	return s.page, nil
}

func buildSchema(t *testing.T, analytics *stubAnalytics, orders *stubOrders) graphql.Schema {
	t.Helper()
	schema, err := NewSchema(&Resolver{Analytics: analytics, Orders: orders})
	require.NoError(t, err)
	return schema
}

func execute(t *testing.T, schema graphql.Schema, request string) map[string]interface{} {
	t.Helper()
	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: request,
		Context:       context.Background(),
	})
	require.False(t, result.HasErrors(), "unexpected errors: %v", result.Errors)
	return result.Data.(map[string]interface{})
}

func TestGetCustomerSpendingQuery(t *testing.T) {
	analytics := &stubAnalytics{
		spending: &domain.CustomerSpending{
			CustomerID:        "c1",
			TotalSpent:        60,
			AverageOrderValue: 20,
			LastOrderDate:     "2024-01-12T00:00:00Z",
		},
	}
	schema := buildSchema(t, analytics, &stubOrders{})

	data := execute(t, schema, `{
		getCustomerSpending(customerId: "c1") {
			customerId totalSpent averageOrderValue lastOrderDate
		}
	}`)

	spending := data["getCustomerSpending"].(map[string]interface{})
	assert.Equal(t, "c1", spending["customerId"])
	assert.Equal(t, 60.0, spending["totalSpent"])
	assert.Equal(t, 20.0, spending["averageOrderValue"])
	assert.Equal(t, "2024-01-12T00:00:00Z", spending["lastOrderDate"])
}

func TestGetCustomerSpendingQueryAbsent(t *testing.T) {
	schema := buildSchema(t, &stubAnalytics{}, &stubOrders{})

	data := execute(t, schema, `{
		getCustomerSpending(customerId: "nobody") { totalSpent }
	}`)

	assert.Nil(t, data["getCustomerSpending"])
}

func TestGetTopSellingProductsQuery(t *testing.T) {
	analytics := &stubAnalytics{
		top: []domain.TopProduct{
			{ProductID: "p2", Name: "Mouse", TotalSold: 7},
			{ProductID: "p1", Name: "Keyboard", TotalSold: 5},
		},
	}
	schema := buildSchema(t, analytics, &stubOrders{})

	data := execute(t, schema, `{
		getTopSellingProducts(limit: 2) { productId name totalSold }
	}`)

	rows := data["getTopSellingProducts"].([]interface{})
	require.Len(t, rows, 2)
	first := rows[0].(map[string]interface{})
	assert.Equal(t, "p2", first["productId"])
	assert.Equal(t, "Mouse", first["name"])
	assert.Equal(t, 7, first["totalSold"])
}

func TestGetSalesAnalyticsQuery(t *testing.T) {
	analytics := &stubAnalytics{
		analytics: &domain.SalesAnalytics{
			TotalRevenue:    37,
			CompletedOrders: 2,
			CategoryBreakdown: []domain.CategoryRevenue{
				{Category: "electronics", Revenue: 32},
				{Category: "books", Revenue: 5},
			},
		},
	}
	schema := buildSchema(t, analytics, &stubOrders{})

	data := execute(t, schema, `{
		getSalesAnalytics(startDate: "2024-01-01", endDate: "2024-01-31") {
			totalRevenue completedOrders categoryBreakdown { category revenue }
		}
	}`)

	report := data["getSalesAnalytics"].(map[string]interface{})
	assert.Equal(t, 37.0, report["totalRevenue"])
	assert.Equal(t, 2, report["completedOrders"])
	breakdown := report["categoryBreakdown"].([]interface{})
	require.Len(t, breakdown, 2)
	assert.Equal(t, "electronics", breakdown[0].(map[string]interface{})["category"])
}

func TestGetCustomerOrdersQueryDefaults(t *testing.T) {
	orders := &stubOrders{
		page: []domain.Order{
			{ID: "o2", CustomerID: "c1", OrderDate: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Status: domain.OrderCompleted},
			{ID: "o1", CustomerID: "c1", OrderDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Status: domain.OrderPending},
		},
	}
	schema := buildSchema(t, &stubAnalytics{}, orders)

	data := execute(t, schema, `{
		getCustomerOrders(customerId: "c1") { id orderDate status }
	}`)

	assert.Equal(t, 10, orders.gotLimit)
	assert.Equal(t, 0, orders.gotOffset)

	rows := data["getCustomerOrders"].([]interface{})
	require.Len(t, rows, 2)
	first := rows[0].(map[string]interface{})
	assert.Equal(t, "o2", first["id"])
	assert.Equal(t, "2024-01-02T00:00:00Z", first["orderDate"])
	assert.Equal(t, "completed", first["status"])
}

func TestGetCustomerOrdersQueryExplicitPage(t *testing.T) {
	orders := &stubOrders{}
	schema := buildSchema(t, &stubAnalytics{}, orders)

	execute(t, schema, `{
		getCustomerOrders(customerId: "c1", limit: 10, offset: 10) { id }
	}`)

	assert.Equal(t, 10, orders.gotLimit)
	assert.Equal(t, 10, orders.gotOffset)
}

func TestPlaceOrderMutation(t *testing.T) {
	orders := &stubOrders{
		placed: &domain.Order{
			ID:         "generated-id",
			CustomerID: "c1",
			LineItems: []domain.LineItem{
				{ProductID: "p1", Quantity: 2, PriceAtPurchase: 10},
			},
			TotalAmount: 20,
			OrderDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Status:      domain.OrderPending,
		},
	}
	schema := buildSchema(t, &stubAnalytics{}, orders)

	data := execute(t, schema, `mutation {
		placeOrder(input: {
			customerId: "c1"
			lineItems: [{productId: "p1", quantity: 2, priceAtPurchase: 10}]
			totalAmount: 20
			orderDate: "2024-01-01"
		}) {
			id status totalAmount lineItems { productId quantity priceAtPurchase }
		}
	}`)

	assert.Equal(t, service.PlaceOrderInput{
		CustomerID: "c1",
		LineItems: []domain.LineItem{
			{ProductID: "p1", Quantity: 2, PriceAtPurchase: 10},
		},
		TotalAmount: 20,
		OrderDate:   "2024-01-01",
	}, orders.gotInput)

	placed := data["placeOrder"].(map[string]interface{})
	assert.Equal(t, "generated-id", placed["id"])
	assert.Equal(t, "pending", placed["status"])
	items := placed["lineItems"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].(map[string]interface{})["productId"])
}

func TestMissingRequiredArgumentIsRejected(t *testing.T) {
	schema := buildSchema(t, &stubAnalytics{}, &stubOrders{})

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ getSalesAnalytics(startDate: "2024-01-01") { totalRevenue } }`,
		Context:       context.Background(),
	})

	assert.True(t, result.HasErrors())
}
