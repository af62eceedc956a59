package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"salespulse/internal/cache"
	"salespulse/internal/domain"
	"salespulse/internal/repo"
)

const analyticsTTL = 300 * time.Second

var dateLayouts = []string{"2006-01-02", time.RFC3339}

// AnalyticsService computes the three read-only reports by scanning and
// grouping order records.
type AnalyticsService interface {
	// CustomerSpending summarises the customer's completed orders, or
	// returns (nil, nil) when there are none.
	CustomerSpending(ctx context.Context, customerID string) (*domain.CustomerSpending, error)

	// TopSellingProducts ranks products by quantity sold across all
	// completed orders and returns at most limit rows.
	TopSellingProducts(ctx context.Context, limit int) ([]domain.TopProduct, error)

	// SalesAnalytics reports revenue by product category over an inclusive
	// date range, memoized for five minutes per (startDate, endDate).
	SalesAnalytics(ctx context.Context, startDate, endDate string) (*domain.SalesAnalytics, error)
}

type analyticsService struct {
	orders   repo.OrderRepo
	products repo.ProductRepo
	cache    cache.Cache
	logger   *slog.Logger
	ttl      time.Duration
}

func NewAnalyticsService(orders repo.OrderRepo, products repo.ProductRepo, c cache.Cache, logger *slog.Logger) AnalyticsService {
	return &analyticsService{
		orders:   orders,
		products: products,
		cache:    c,
		logger:   logger,
		ttl:      analyticsTTL,
	}
}

func (s *analyticsService) CustomerSpending(ctx context.Context, customerID string) (*domain.CustomerSpending, error) {
	orders, err := s.orders.FindByCustomerAndStatus(ctx, customerID, domain.OrderCompleted)
	if err != nil {
		return nil, fmt.Errorf("fetch completed orders: %w", err)
	}
	if len(orders) == 0 {
		return nil, nil
	}

	var (
		totalSpent float64
		lastOrder  time.Time
	)
	for _, order := range orders {
		totalSpent += order.TotalAmount
		if order.OrderDate.After(lastOrder) {
			lastOrder = order.OrderDate
		}
	}

	return &domain.CustomerSpending{
		CustomerID:        customerID,
		TotalSpent:        totalSpent,
		AverageOrderValue: totalSpent / float64(len(orders)),
		LastOrderDate:     lastOrder.UTC().Format(time.RFC3339),
	}, nil
}

func (s *analyticsService) TopSellingProducts(ctx context.Context, limit int) ([]domain.TopProduct, error) {
	if limit <= 0 {
		return []domain.TopProduct{}, nil
	}

	orders, err := s.orders.FindByStatus(ctx, domain.OrderCompleted)
	if err != nil {
		return nil, fmt.Errorf("fetch completed orders: %w", err)
	}

	// Explode line items into per-product quantity totals. Ranking keeps
	// first-seen order on equal totals, so ties resolve by scan order.
	totals := make(map[string]int)
	var ranked []string
	for _, order := range orders {
		for _, item := range order.LineItems {
			if _, seen := totals[item.ProductID]; !seen {
				ranked = append(ranked, item.ProductID)
			}
			totals[item.ProductID] += item.Quantity
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return totals[ranked[i]] > totals[ranked[j]]
	})
	if limit < len(ranked) {
		ranked = ranked[:limit]
	}

	products, err := s.products.FindByIDs(ctx, ranked)
	if err != nil {
		return nil, fmt.Errorf("join top sellers to products: %w", err)
	}

	// The name join happens after the limit is applied, so a top group
	// whose product record is gone shrinks the result below limit.
	report := make([]domain.TopProduct, 0, len(ranked))
	for _, productID := range ranked {
		product, ok := products[productID]
		if !ok {
			continue
		}
		report = append(report, domain.TopProduct{
			ProductID: productID,
			Name:      product.Name,
			TotalSold: totals[productID],
		})
	}
	return report, nil
}

func (s *analyticsService) SalesAnalytics(ctx context.Context, startDate, endDate string) (*domain.SalesAnalytics, error) {
	key := analyticsKey(startDate, endDate)

	if cached, err := s.cache.Get(ctx, key); err == nil {
		var report domain.SalesAnalytics
		if decodeErr := json.Unmarshal([]byte(cached), &report); decodeErr != nil {
			s.logger.Warn("discarding undecodable analytics cache entry", "key", key, "error", decodeErr)
		} else {
			return &report, nil
		}
	} else if !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("analytics cache read failed, recomputing", "key", key, "error", err)
	}

	from, err := parseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("startDate: %w", err)
	}
	to, err := parseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("endDate: %w", err)
	}

	orders, err := s.orders.FindByStatusInRange(ctx, domain.OrderCompleted, from, to)
	if err != nil {
		return nil, fmt.Errorf("fetch completed orders in range: %w", err)
	}

	// Counted independently of the rows above: an order whose products no
	// longer resolve still counts here while adding nothing to the
	// breakdown below.
	completedOrders, err := s.orders.CountByStatusInRange(ctx, domain.OrderCompleted, from, to)
	if err != nil {
		return nil, fmt.Errorf("count completed orders in range: %w", err)
	}

	productIDs := uniqueProductIDs(orders)
	products, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("join line items to products: %w", err)
	}

	revenueByCategory := make(map[string]float64)
	var categories []string
	for _, order := range orders {
		for _, item := range order.LineItems {
			product, ok := products[item.ProductID]
			if !ok {
				continue
			}
			if _, seen := revenueByCategory[product.Category]; !seen {
				categories = append(categories, product.Category)
			}
			revenueByCategory[product.Category] += float64(item.Quantity) * item.PriceAtPurchase
		}
	}

	report := &domain.SalesAnalytics{
		CompletedOrders:   completedOrders,
		CategoryBreakdown: make([]domain.CategoryRevenue, 0, len(categories)),
	}
	for _, category := range categories {
		revenue := revenueByCategory[category]
		report.TotalRevenue += revenue
		report.CategoryBreakdown = append(report.CategoryBreakdown, domain.CategoryRevenue{
			Category: category,
			Revenue:  revenue,
		})
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encode analytics report: %w", err)
	}
	if err := s.cache.Set(ctx, key, string(payload), s.ttl); err != nil {
		s.logger.Warn("analytics cache write failed", "key", key, "error", err)
	}

	return report, nil
}

func analyticsKey(startDate, endDate string) string {
	return fmt.Sprintf("salesAnalytics:%s:%s", startDate, endDate)
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q (want YYYY-MM-DD or RFC 3339)", value)
}

func uniqueProductIDs(orders []domain.Order) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, order := range orders {
		for _, item := range order.LineItems {
			if _, ok := seen[item.ProductID]; ok {
				continue
			}
			seen[item.ProductID] = struct{}{}
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}
