package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/product-pricing-api/internal/domain"
	"github.com/jhoicas/product-pricing-api/internal/domain/entity"
	"github.com/jhoicas/product-pricing-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, store_id, parent_id, name, code, status, created_at, updated_at`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría. Código repetido en la tienda → domain.ErrDuplicate.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `INSERT INTO categories (` + categoryColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.StoreID, nullable(c.ParentID), c.Name, c.Code, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
}

// GetByStoreAndCode obtiene una categoría por tienda y código.
func (r *CategoryRepo) GetByStoreAndCode(ctx context.Context, storeID, code string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE store_id = $1 AND code = $2`, storeID, code)
}

func (r *CategoryRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Category, error) {
	var c entity.Category
	var parentID *string
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.StoreID, &parentID, &c.Name, &c.Code, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	c.ParentID = fromNullable(parentID)
	return &c, nil
}

// ListByStore lista las categorías activas de una tienda ordenadas por nombre.
func (r *CategoryRepo) ListByStore(ctx context.Context, storeID string) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE store_id = $1 AND status = 'active' ORDER BY name`
	rows, err := r.q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		var parentID *string
		if err := rows.Scan(&c.ID, &c.StoreID, &parentID, &c.Name, &c.Code, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.ParentID = fromNullable(parentID)
		list = append(list, &c)
	}
	return list, rows.Err()
}
