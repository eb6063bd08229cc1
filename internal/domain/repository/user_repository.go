package repository

import (
	"context"

	"github.com/jhoicas/product-pricing-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByEmailAndStore(ctx context.Context, email, storeID string) (*entity.User, error)
}
