package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Tarjetas del resumen del catálogo de la tienda.
type DashboardSummaryDTO struct {
	Products             int             `json:"products"`
	ProductsWithVariants int             `json:"products_with_variants"`
	SimpleProducts       int             `json:"simple_products"`
	Variants             int             `json:"variants"`
	Packs                int             `json:"packs"`
	Categories           int             `json:"categories"`
	Suppliers            int             `json:"suppliers"`
	AvgSellingPrice      decimal.Decimal `json:"avg_selling_price"`
	BelowCostItems       int             `json:"below_cost_items"` // artículos con precio de venta < costo

	TopCategories []TopCategoryDTO `json:"top_categories"`
}

// TopCategoryDTO categoría con su cantidad de productos.
type TopCategoryDTO struct {
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Products     int    `json:"products"`
}
