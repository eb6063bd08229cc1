package repository

import (
	"context"

	"github.com/jhoicas/product-pricing-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id string) (*entity.Supplier, error)
	ListByStore(ctx context.Context, storeID string) ([]*entity.Supplier, error)
}
