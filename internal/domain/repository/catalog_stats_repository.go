package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// CatalogCounts conteos crudos del catálogo de una tienda.
type CatalogCounts struct {
	Products             int
	ProductsWithVariants int
	Variants             int
	Packs                int
	Categories           int
	Suppliers            int
	AvgSellingPrice      decimal.Decimal // promedio sobre productos simples y variantes con precio
}

// CategoryProductCount productos por categoría.
type CategoryProductCount struct {
	CategoryID   string
	CategoryName string
	Products     int
}

// CatalogStatsRepository consultas de lectura para el resumen del catálogo.
// Las implementaciones son read-only (no modifican datos).
type CatalogStatsRepository interface {
	GetCounts(ctx context.Context, storeID string) (*CatalogCounts, error)
	GetTopCategories(ctx context.Context, storeID string, limit int) ([]CategoryProductCount, error)
	// GetBelowCostCount cuenta productos simples y variantes cuyo precio de venta es menor al costo.
	GetBelowCostCount(ctx context.Context, storeID string) (int, error)
}
