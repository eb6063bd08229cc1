package usecase

import (
	"context"

	"github.com/jhoicas/product-pricing-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el repositorio
// de productos atado a esa tx. Producto, variantes y paquetes se escriben de forma atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error
}
