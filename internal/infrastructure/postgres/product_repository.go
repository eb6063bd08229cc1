package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/product-pricing-api/internal/domain"
	"github.com/jhoicas/product-pricing-api/internal/domain/entity"
	"github.com/jhoicas/product-pricing-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// Columnas de ItemPricing, en el mismo orden en products y product_variants.
const pricingColumns = `sku, ean, plu_upc, individual_item_quantity, min_selling_quantity, quantity,
	item_cost, item_selling_cost, msrp, min_order_value, discount_amount, percent_discount`

const productColumns = `id, store_id, category_id, supplier_id, name, brand, description, ` + pricingColumns + `,
	has_variants, attributes, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func pricingArgs(p *entity.ItemPricing) []any {
	return []any{
		p.SKU, p.EAN, p.PLUUPC, p.IndividualItemQuantity, p.MinSellingQuantity, p.Quantity,
		p.ItemCost, p.ItemSellingCost, p.MSRP, p.MinOrderValue, p.DiscountAmount, p.PercentDiscount,
	}
}

func pricingDest(p *entity.ItemPricing) []any {
	return []any{
		&p.SKU, &p.EAN, &p.PLUUPC, &p.IndividualItemQuantity, &p.MinSellingQuantity, &p.Quantity,
		&p.ItemCost, &p.ItemSellingCost, &p.MSRP, &p.MinOrderValue, &p.DiscountAmount, &p.PercentDiscount,
	}
}

// Create persiste el producto con sus variantes y paquetes.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	attrs, err := json.Marshal(nonNilAttributes(p.Attributes))
	if err != nil {
		return fmt.Errorf("marshal attributes: %w", err)
	}
	query := `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	args := []any{p.ID, p.StoreID, p.CategoryID, nullable(p.SupplierID), p.Name, p.Brand, p.Description}
	args = append(args, pricingArgs(&p.ItemPricing)...)
	args = append(args, p.HasVariants, attrs, p.CreatedAt, p.UpdatedAt)

	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return fmt.Errorf("%w: categoría o proveedor inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return r.insertChildren(ctx, p)
}

func (r *ProductRepo) insertChildren(ctx context.Context, p *entity.Product) error {
	for i := range p.Packs {
		if err := r.insertPack(ctx, &p.Packs[i], i); err != nil {
			return err
		}
	}
	for i := range p.Variants {
		v := &p.Variants[i]
		attrs, err := json.Marshal(v.Attributes)
		if err != nil {
			return fmt.Errorf("marshal variant attributes: %w", err)
		}
		query := `INSERT INTO product_variants (id, product_id, attributes, ` + pricingColumns + `, position, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
		args := []any{v.ID, v.ProductID, attrs}
		args = append(args, pricingArgs(&v.ItemPricing)...)
		args = append(args, i, v.CreatedAt)
		if _, err := r.q.Exec(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDuplicate
			}
			return fmt.Errorf("insert variant: %w", err)
		}
		for j := range v.Packs {
			if err := r.insertPack(ctx, &v.Packs[j], j); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *ProductRepo) insertPack(ctx context.Context, pk *entity.ProductPack, position int) error {
	query := `
		INSERT INTO product_packs (id, product_id, variant_id, quantity, total_packs_quantity, ordered_packs_price,
			discount_amount, percent_discount, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		pk.ID, pk.ProductID, nullable(pk.VariantID), pk.Quantity, pk.TotalPacksQuantity, pk.OrderedPacksPrice,
		pk.DiscountAmount, pk.PercentDiscount, position,
	)
	if err != nil {
		return fmt.Errorf("insert pack: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID con atributos, variantes y paquetes.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	if err != nil || p == nil {
		return p, err
	}
	if err := r.loadChildren(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByStoreAndSKU obtiene un producto por tienda y SKU (sin variantes ni paquetes).
func (r *ProductRepo) GetByStoreAndSKU(ctx context.Context, storeID, sku string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE store_id = $1 AND sku = $2`, storeID, sku)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var p entity.Product
	var supplierID *string
	var attrs []byte
	dest := []any{&p.ID, &p.StoreID, &p.CategoryID, &supplierID, &p.Name, &p.Brand, &p.Description}
	dest = append(dest, pricingDest(&p.ItemPricing)...)
	dest = append(dest, &p.HasVariants, &attrs, &p.CreatedAt, &p.UpdatedAt)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	p.SupplierID = fromNullable(supplierID)
	p.Attributes = []entity.ProductAttribute{}
	if len(attrs) > 0 {
		if err := json.Unmarshal(attrs, &p.Attributes); err != nil {
			return nil, fmt.Errorf("unmarshal attributes: %w", err)
		}
	}
	return &p, nil
}

func (r *ProductRepo) loadChildren(ctx context.Context, p *entity.Product) error {
	query := `SELECT id, product_id, attributes, ` + pricingColumns + `, created_at
		FROM product_variants WHERE product_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, p.ID)
	if err != nil {
		return fmt.Errorf("list variants: %w", err)
	}
	p.Variants = []entity.ProductVariant{}
	index := map[string]int{}
	for rows.Next() {
		var v entity.ProductVariant
		var attrs []byte
		dest := []any{&v.ID, &v.ProductID, &attrs}
		dest = append(dest, pricingDest(&v.ItemPricing)...)
		dest = append(dest, &v.CreatedAt)
		if err := rows.Scan(dest...); err != nil {
			rows.Close()
			return fmt.Errorf("scan variant: %w", err)
		}
		if err := json.Unmarshal(attrs, &v.Attributes); err != nil {
			rows.Close()
			return fmt.Errorf("unmarshal variant attributes: %w", err)
		}
		v.Packs = []entity.ProductPack{}
		index[v.ID] = len(p.Variants)
		p.Variants = append(p.Variants, v)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("list variants: %w", err)
	}

	packQuery := `
		SELECT id, product_id, variant_id, quantity, total_packs_quantity, ordered_packs_price, discount_amount, percent_discount
		FROM product_packs WHERE product_id = $1 ORDER BY position`
	packRows, err := r.q.Query(ctx, packQuery, p.ID)
	if err != nil {
		return fmt.Errorf("list packs: %w", err)
	}
	defer packRows.Close()
	p.Packs = []entity.ProductPack{}
	for packRows.Next() {
		var pk entity.ProductPack
		var variantID *string
		if err := packRows.Scan(&pk.ID, &pk.ProductID, &variantID, &pk.Quantity, &pk.TotalPacksQuantity,
			&pk.OrderedPacksPrice, &pk.DiscountAmount, &pk.PercentDiscount); err != nil {
			return fmt.Errorf("scan pack: %w", err)
		}
		pk.VariantID = fromNullable(variantID)
		if pk.VariantID == "" {
			p.Packs = append(p.Packs, pk)
			continue
		}
		if i, ok := index[pk.VariantID]; ok {
			p.Variants[i].Packs = append(p.Variants[i].Packs, pk)
		}
	}
	return packRows.Err()
}

// Update reemplaza el producto y todas sus variantes y paquetes.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	attrs, err := json.Marshal(nonNilAttributes(p.Attributes))
	if err != nil {
		return fmt.Errorf("marshal attributes: %w", err)
	}
	query := `
		UPDATE products SET category_id = $2, supplier_id = $3, name = $4, brand = $5, description = $6,
			sku = $7, ean = $8, plu_upc = $9, individual_item_quantity = $10, min_selling_quantity = $11, quantity = $12,
			item_cost = $13, item_selling_cost = $14, msrp = $15, min_order_value = $16, discount_amount = $17,
			percent_discount = $18, has_variants = $19, attributes = $20, updated_at = $21
		WHERE id = $1`
	args := []any{p.ID, p.CategoryID, nullable(p.SupplierID), p.Name, p.Brand, p.Description}
	args = append(args, pricingArgs(&p.ItemPricing)...)
	args = append(args, p.HasVariants, attrs, p.UpdatedAt)
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			return fmt.Errorf("%w: categoría o proveedor inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM product_packs WHERE product_id = $1`, p.ID); err != nil {
		return fmt.Errorf("delete packs: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM product_variants WHERE product_id = $1`, p.ID); err != nil {
		return fmt.Errorf("delete variants: %w", err)
	}
	return r.insertChildren(ctx, p)
}

// ListByStore lista productos por tienda con paginación (sin variantes ni paquetes).
func (r *ProductRepo) ListByStore(ctx context.Context, storeID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE store_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, storeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID (variantes y paquetes caen por ON DELETE CASCADE).
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nonNilAttributes(a []entity.ProductAttribute) []entity.ProductAttribute {
	if a == nil {
		return []entity.ProductAttribute{}
	}
	return a
}
