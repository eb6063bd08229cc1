package ports

import "context"

// ReferenceCache caché de datos de referencia (categorías, proveedores) por tienda.
// Un fallo de la caché nunca debe impedir responder desde la base de datos.
type ReferenceCache interface {
	// GetJSON decodifica el valor en dst; hit=false si la clave no existe.
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, keys ...string) error
}
