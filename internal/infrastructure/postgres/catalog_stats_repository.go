package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/product-pricing-api/internal/domain/repository"
)

var _ repository.CatalogStatsRepository = (*CatalogStatsRepo)(nil)

// CatalogStatsRepo consultas read-only para el resumen del catálogo.
type CatalogStatsRepo struct {
	q Querier
}

// NewCatalogStatsRepository construye el repositorio de estadísticas.
func NewCatalogStatsRepository(q Querier) *CatalogStatsRepo {
	return &CatalogStatsRepo{q: q}
}

// GetCounts devuelve los conteos del catálogo de la tienda en una sola consulta.
func (r *CatalogStatsRepo) GetCounts(ctx context.Context, storeID string) (*repository.CatalogCounts, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM products p WHERE p.store_id = $1),
			(SELECT COUNT(*) FROM products p WHERE p.store_id = $1 AND p.has_variants),
			(SELECT COUNT(*) FROM product_variants v JOIN products p ON p.id = v.product_id WHERE p.store_id = $1),
			(SELECT COUNT(*) FROM product_packs k JOIN products p ON p.id = k.product_id WHERE p.store_id = $1),
			(SELECT COUNT(*) FROM categories c WHERE c.store_id = $1 AND c.status = 'active'),
			(SELECT COUNT(*) FROM suppliers s WHERE s.store_id = $1),
			COALESCE((
				SELECT AVG(price) FROM (
					SELECT p.item_selling_cost AS price FROM products p
					 WHERE p.store_id = $1 AND NOT p.has_variants AND p.item_selling_cost > 0
					UNION ALL
					SELECT v.item_selling_cost FROM product_variants v JOIN products p ON p.id = v.product_id
					 WHERE p.store_id = $1 AND v.item_selling_cost > 0
				) prices
			), 0)`
	var c repository.CatalogCounts
	var avg decimal.Decimal
	err := r.q.QueryRow(ctx, query, storeID).Scan(
		&c.Products, &c.ProductsWithVariants, &c.Variants, &c.Packs, &c.Categories, &c.Suppliers, &avg,
	)
	if err != nil {
		return nil, fmt.Errorf("catalog counts: %w", err)
	}
	c.AvgSellingPrice = avg
	return &c, nil
}

// GetTopCategories categorías con más productos, de mayor a menor.
func (r *CatalogStatsRepo) GetTopCategories(ctx context.Context, storeID string, limit int) ([]repository.CategoryProductCount, error) {
	const query = `
		SELECT c.id, c.name, COUNT(p.id) AS products
		  FROM categories c
		  LEFT JOIN products p ON p.category_id = c.id
		 WHERE c.store_id = $1
		 GROUP BY c.id, c.name
		 ORDER BY products DESC, c.name
		 LIMIT $2`
	rows, err := r.q.Query(ctx, query, storeID, limit)
	if err != nil {
		return nil, fmt.Errorf("top categories: %w", err)
	}
	defer rows.Close()
	out := []repository.CategoryProductCount{}
	for rows.Next() {
		var c repository.CategoryProductCount
		if err := rows.Scan(&c.CategoryID, &c.CategoryName, &c.Products); err != nil {
			return nil, fmt.Errorf("scan top category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetBelowCostCount cuenta artículos vendibles con precio de venta menor al costo.
func (r *CatalogStatsRepo) GetBelowCostCount(ctx context.Context, storeID string) (int, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM products p
			  WHERE p.store_id = $1 AND NOT p.has_variants
			    AND p.item_cost > 0 AND p.item_selling_cost > 0 AND p.item_selling_cost < p.item_cost)
		  + (SELECT COUNT(*) FROM product_variants v JOIN products p ON p.id = v.product_id
			  WHERE p.store_id = $1
			    AND v.item_cost > 0 AND v.item_selling_cost > 0 AND v.item_selling_cost < v.item_cost)`
	var n int
	if err := r.q.QueryRow(ctx, query, storeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("below cost count: %w", err)
	}
	return n, nil
}
