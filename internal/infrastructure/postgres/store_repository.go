package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/product-pricing-api/internal/domain"
	"github.com/jhoicas/product-pricing-api/internal/domain/entity"
	"github.com/jhoicas/product-pricing-api/internal/domain/repository"
)

// Asegura que StoreRepo implementa repository.StoreRepository.
var _ repository.StoreRepository = (*StoreRepo)(nil)

const storeColumns = `id, name, tax_id, address, phone, email, currency, status, created_at, updated_at`

// StoreRepo implementación del puerto StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador de persistencia para tiendas.
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

// Create persiste una nueva tienda.
func (r *StoreRepo) Create(ctx context.Context, s *entity.Store) error {
	query := `INSERT INTO stores (` + storeColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.TaxID, s.Address, s.Phone, s.Email, s.Currency, s.Status,
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// GetByID obtiene una tienda por ID.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	return r.getOne(ctx, `SELECT `+storeColumns+` FROM stores WHERE id = $1`, id)
}

// GetByTaxID obtiene una tienda por identificación tributaria.
func (r *StoreRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Store, error) {
	return r.getOne(ctx, `SELECT `+storeColumns+` FROM stores WHERE tax_id = $1`, taxID)
}

func (r *StoreRepo) getOne(ctx context.Context, query string, arg string) (*entity.Store, error) {
	var s entity.Store
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&s.ID, &s.Name, &s.TaxID, &s.Address, &s.Phone, &s.Email, &s.Currency, &s.Status,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	return &s, nil
}

// List devuelve tiendas con paginación.
func (r *StoreRepo) List(ctx context.Context, limit, offset int) ([]*entity.Store, error) {
	query := `SELECT ` + storeColumns + ` FROM stores ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	var list []*entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.TaxID, &s.Address, &s.Phone, &s.Email, &s.Currency, &s.Status,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
