package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/product-pricing-api/internal/domain"
	"github.com/jhoicas/product-pricing-api/internal/domain/entity"
	"github.com/jhoicas/product-pricing-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create persiste un nuevo proveedor.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (id, store_id, name, contact_name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.StoreID, s.Name, s.ContactName, s.Email, s.Phone, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	query := `
		SELECT id, store_id, name, contact_name, email, phone, created_at, updated_at
		FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.StoreID, &s.Name, &s.ContactName, &s.Email, &s.Phone, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// ListByStore lista los proveedores de una tienda ordenados por nombre.
func (r *SupplierRepo) ListByStore(ctx context.Context, storeID string) ([]*entity.Supplier, error) {
	query := `
		SELECT id, store_id, name, contact_name, email, phone, created_at, updated_at
		FROM suppliers WHERE store_id = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.StoreID, &s.Name, &s.ContactName, &s.Email, &s.Phone, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
