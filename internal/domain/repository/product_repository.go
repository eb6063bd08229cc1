package repository

import (
	"context"

	"github.com/jhoicas/product-pricing-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Create y Update escriben también variantes y paquetes; conviene usarlos dentro de una transacción.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID carga el producto con atributos, variantes y paquetes. nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByStoreAndSKU(ctx context.Context, storeID, sku string) (*entity.Product, error)
	// Update reemplaza los datos del producto y todas sus variantes y paquetes.
	Update(ctx context.Context, product *entity.Product) error
	// ListByStore lista productos sin cargar variantes ni paquetes.
	ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
