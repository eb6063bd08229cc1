package repository

import (
	"context"

	"github.com/jhoicas/product-pricing-api/internal/domain/entity"
)

// StoreRepository define el puerto de persistencia para Store (DIP).
// La implementación vive en infrastructure.
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Store, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Store, error)
}
