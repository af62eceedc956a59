package domain

// CustomerSpending summarises a customer's completed orders.
type CustomerSpending struct {
	CustomerID        string  `json:"customerId"`
	TotalSpent        float64 `json:"totalSpent"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	LastOrderDate     string  `json:"lastOrderDate"`
}

// TopProduct is one row of the top-selling products report.
type TopProduct struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	TotalSold int    `json:"totalSold"`
}

type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

// SalesAnalytics is the cached revenue report for a date range.
// CompletedOrders counts every completed order in the range, while the
// breakdown only covers line items whose product record still exists, so
// the two can legitimately disagree when a referenced product is missing.
type SalesAnalytics struct {
	TotalRevenue      float64           `json:"totalRevenue"`
	CompletedOrders   int               `json:"completedOrders"`
	CategoryBreakdown []CategoryRevenue `json:"categoryBreakdown"`
}
