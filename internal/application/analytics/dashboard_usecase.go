// Package analytics contiene los casos de uso de reportes del catálogo.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/product-pricing-api/internal/application/dto"
	"github.com/jhoicas/product-pricing-api/internal/domain/repository"
)

const dashboardTopCategories = 5 // categorías en el widget del dashboard

// DashboardUseCase genera el resumen del catálogo de una tienda.
//
// Fuente de datos: CatalogStatsRepository (consultas read-only).
type DashboardUseCase struct {
	statsRepo repository.CatalogStatsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(statsRepo repository.CatalogStatsRepository) *DashboardUseCase {
	return &DashboardUseCase{statsRepo: statsRepo}
}

// GetSummary construye el DashboardSummaryDTO para la tienda indicada.
//
// Tres llamadas en paralelo:
//  1. GetCounts             → tarjetas de conteo y precio promedio
//  2. GetTopCategories(5)   → TopCategories
//  3. GetBelowCostCount     → BelowCostItems
func (uc *DashboardUseCase) GetSummary(ctx context.Context, storeID string) (*dto.DashboardSummaryDTO, error) {
	type countsResult struct {
		counts *repository.CatalogCounts
		err    error
	}
	type topResult struct {
		top []repository.CategoryProductCount
		err error
	}
	type belowResult struct {
		n   int
		err error
	}

	countsCh := make(chan countsResult, 1)
	topCh := make(chan topResult, 1)
	belowCh := make(chan belowResult, 1)

	go func() {
		c, err := uc.statsRepo.GetCounts(ctx, storeID)
		countsCh <- countsResult{c, err}
	}()
	go func() {
		top, err := uc.statsRepo.GetTopCategories(ctx, storeID, dashboardTopCategories)
		topCh <- topResult{top, err}
	}()
	go func() {
		n, err := uc.statsRepo.GetBelowCostCount(ctx, storeID)
		belowCh <- belowResult{n, err}
	}()

	counts := <-countsCh
	top := <-topCh
	below := <-belowCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: conteos: %w", counts.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top categorías: %w", top.err)
	}
	if below.err != nil {
		return nil, fmt.Errorf("dashboard: bajo costo: %w", below.err)
	}

	c := counts.counts
	out := &dto.DashboardSummaryDTO{
		Products:             c.Products,
		ProductsWithVariants: c.ProductsWithVariants,
		SimpleProducts:       c.Products - c.ProductsWithVariants,
		Variants:             c.Variants,
		Packs:                c.Packs,
		Categories:           c.Categories,
		Suppliers:            c.Suppliers,
		AvgSellingPrice:      c.AvgSellingPrice.Round(2),
		BelowCostItems:       below.n,
		TopCategories:        make([]dto.TopCategoryDTO, 0, len(top.top)),
	}
	if out.AvgSellingPrice.IsNegative() {
		out.AvgSellingPrice = decimal.Zero
	}
	for _, t := range top.top {
		out.TopCategories = append(out.TopCategories, dto.TopCategoryDTO{
			CategoryID:   t.CategoryID,
			CategoryName: t.CategoryName,
			Products:     t.Products,
		})
	}
	return out, nil
}
