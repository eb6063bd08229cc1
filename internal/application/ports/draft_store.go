package ports

import (
	"context"

	"github.com/jhoicas/product-pricing-api/internal/domain/form"
)

// DraftStore define el puerto de salida para guardar borradores de edición.
// Los borradores son efímeros: la implementación puede expirarlos por inactividad.
type DraftStore interface {
	Save(ctx context.Context, d *form.Draft) error
	// Get devuelve nil, nil si el borrador no existe o expiró.
	Get(ctx context.Context, storeID, id string) (*form.Draft, error)
	// List devuelve los borradores vigentes de la tienda, más recientes primero.
	List(ctx context.Context, storeID string) ([]*form.Draft, error)
	Delete(ctx context.Context, storeID, id string) error
}
