package repository

import (
	"context"

	"github.com/jhoicas/product-pricing-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByStoreAndCode(ctx context.Context, storeID, code string) (*entity.Category, error)
	ListByStore(ctx context.Context, storeID string) ([]*entity.Category, error)
}
