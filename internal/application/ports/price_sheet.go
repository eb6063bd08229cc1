package ports

import (
	"context"

	"github.com/jhoicas/product-pricing-api/internal/domain/entity"
)

// PriceSheetData datos que necesita el generador de la ficha de precios.
type PriceSheetData struct {
	Store        *entity.Store
	Product      *entity.Product
	CategoryName string
	SupplierName string
}

// PriceSheetGenerator genera la ficha de precios (PDF) de un producto.
type PriceSheetGenerator interface {
	GeneratePriceSheet(ctx context.Context, data PriceSheetData) ([]byte, error)
}
