package graph

import (
	"time"

	"github.com/graphql-go/graphql"

	"salespulse/internal/domain"
	"salespulse/internal/service"
)

// Resolver bundles the injected collaborators the schema dispatches into.
// The schema itself carries no logic.
type Resolver struct {
	Analytics service.AnalyticsService
	Orders    service.OrderService
}

// NewSchema declares the queryable operation set and the placeOrder
// mutation, each a typed dispatch into the services.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	customerSpendingType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CustomerSpending",
		Fields: graphql.Fields{
			"customerId":        &graphql.Field{Type: graphql.ID},
			"totalSpent":        &graphql.Field{Type: graphql.Float},
			"averageOrderValue": &graphql.Field{Type: graphql.Float},
			"lastOrderDate":     &graphql.Field{Type: graphql.String},
		},
	})

	topProductType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TopProduct",
		Fields: graphql.Fields{
			"productId": &graphql.Field{Type: graphql.ID},
			"name":      &graphql.Field{Type: graphql.String},
			"totalSold": &graphql.Field{Type: graphql.Int},
		},
	})

	categoryRevenueType := graphql.NewObject(graphql.ObjectConfig{
		Name: "CategoryRevenue",
		Fields: graphql.Fields{
			"category": &graphql.Field{Type: graphql.String},
			"revenue":  &graphql.Field{Type: graphql.Float},
		},
	})

	salesAnalyticsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "SalesAnalytics",
		Fields: graphql.Fields{
			"totalRevenue":      &graphql.Field{Type: graphql.Float},
			"completedOrders":   &graphql.Field{Type: graphql.Int},
			"categoryBreakdown": &graphql.Field{Type: graphql.NewList(categoryRevenueType)},
		},
	})

	lineItemType := graphql.NewObject(graphql.ObjectConfig{
		Name: "OrderLineItem",
		Fields: graphql.Fields{
			"productId":       &graphql.Field{Type: graphql.ID},
			"quantity":        &graphql.Field{Type: graphql.Int},
			"priceAtPurchase": &graphql.Field{Type: graphql.Float},
		},
	})

	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.ID},
			"customerId":  &graphql.Field{Type: graphql.ID},
			"lineItems":   &graphql.Field{Type: graphql.NewList(lineItemType)},
			"totalAmount": &graphql.Field{Type: graphql.Float},
			"orderDate": &graphql.Field{
				Type:    graphql.String,
				Resolve: resolveOrderDate,
			},
			"status": &graphql.Field{Type: graphql.String},
		},
	})

	lineItemInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "LineItemInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"productId":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"quantity":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"priceAtPurchase": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
		},
	})

	orderInputType := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "OrderInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"customerId":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"lineItems":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(lineItemInputType)))},
			"totalAmount": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"orderDate":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"status":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getCustomerSpending": &graphql.Field{
				Type: customerSpendingType,
				Args: graphql.FieldConfigArgument{
					"customerId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					spending, err := r.Analytics.CustomerSpending(p.Context, stringArg(p.Args["customerId"]))
					if err != nil {
						return nil, err
					}
					if spending == nil {
						return nil, nil
					}
					return spending, nil
				},
			},
			"getTopSellingProducts": &graphql.Field{
				Type: graphql.NewList(topProductType),
				Args: graphql.FieldConfigArgument{
					"limit": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Analytics.TopSellingProducts(p.Context, intArg(p.Args["limit"]))
				},
			},
			"getSalesAnalytics": &graphql.Field{
				Type: salesAnalyticsType,
				Args: graphql.FieldConfigArgument{
					"startDate": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"endDate":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Analytics.SalesAnalytics(p.Context, stringArg(p.Args["startDate"]), stringArg(p.Args["endDate"]))
				},
			},
			"getCustomerOrders": &graphql.Field{
				Type: graphql.NewList(orderType),
				Args: graphql.FieldConfigArgument{
					"customerId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"limit":      &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
					"offset":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Orders.CustomerOrders(
						p.Context,
						stringArg(p.Args["customerId"]),
						intArg(p.Args["limit"]),
						intArg(p.Args["offset"]),
					)
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"placeOrder": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(orderInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return r.Orders.PlaceOrder(p.Context, placeOrderInput(p.Args["input"]))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

func resolveOrderDate(p graphql.ResolveParams) (interface{}, error) {
	switch order := p.Source.(type) {
	case domain.Order:
		return order.OrderDate.UTC().Format(time.RFC3339), nil
	case *domain.Order:
		return order.OrderDate.UTC().Format(time.RFC3339), nil
	}
	return nil, nil
}

func placeOrderInput(arg interface{}) service.PlaceOrderInput {
	raw, _ := arg.(map[string]interface{})
	input := service.PlaceOrderInput{
		CustomerID:  stringArg(raw["customerId"]),
		TotalAmount: floatArg(raw["totalAmount"]),
		OrderDate:   stringArg(raw["orderDate"]),
		Status:      stringArg(raw["status"]),
	}

	items, _ := raw["lineItems"].([]interface{})
	for _, item := range items {
		fields, _ := item.(map[string]interface{})
		input.LineItems = append(input.LineItems, domain.LineItem{
			ProductID:       stringArg(fields["productId"]),
			Quantity:        intArg(fields["quantity"]),
			PriceAtPurchase: floatArg(fields["priceAtPurchase"]),
		})
	}
	return input
}

func stringArg(v interface{}) string {
	s, _ := v.(string)
	return s
}

func intArg(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func floatArg(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}
