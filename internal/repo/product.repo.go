package repo

import (
	"context"
	"database/sql"
	"fmt"

	"salespulse/internal/domain"
)

type ProductRepo interface {
	// FindByIDs returns the products that exist, keyed by id. Missing ids
	// are simply absent from the map, not an error.
	FindByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)
}

type productRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepo {
	return &productRepo{db: db}
}

func (r *productRepo) FindByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error) {
	products := make(map[string]domain.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, category, price, stock FROM products WHERE id = ANY($1)",
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("query products by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Price, &p.Stock); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}
