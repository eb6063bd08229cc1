package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/product-pricing-api/internal/application/dto"
	"github.com/jhoicas/product-pricing-api/internal/domain"
	"github.com/jhoicas/product-pricing-api/internal/domain/entity"
	"github.com/jhoicas/product-pricing-api/internal/domain/form"
	"github.com/jhoicas/product-pricing-api/internal/domain/pricing"
	"github.com/jhoicas/product-pricing-api/internal/domain/repository"
	"github.com/jhoicas/product-pricing-api/pkg/validation"
)

// ProductUseCase casos de uso de productos. Las escrituras pasan por TxRunner para que
// producto, variantes y paquetes queden en la misma transacción.
type ProductUseCase struct {
	tx           TxRunner
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	newID        func() string
	now          func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	tx TxRunner,
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
) *ProductUseCase {
	return &ProductUseCase{
		tx:           tx,
		repo:         repo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		newID:        uuid.NewString,
		now:          time.Now,
	}
}

// Create persiste un producto nuevo a partir del payload del formulario.
func (uc *ProductUseCase) Create(ctx context.Context, storeID string, in form.ProductSubmission) (*dto.ProductResponse, error) {
	if err := uc.validate(ctx, storeID, in); err != nil {
		return nil, err
	}
	if in.CustomSKU != "" && !in.HasVariants {
		existing, err := uc.repo.GetByStoreAndSKU(ctx, storeID, in.CustomSKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}

	now := uc.now()
	product := uc.fromSubmission(uc.newID(), storeID, in, now)
	product.CreatedAt = now
	if err := uc.tx.Run(ctx, func(repo repository.ProductRepository) error {
		return repo.Create(ctx, product)
	}); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update reemplaza un producto existente con el payload (variantes y paquetes incluidos).
func (uc *ProductUseCase) Update(ctx context.Context, storeID, id string, in form.ProductSubmission) (*dto.ProductResponse, error) {
	current, err := uc.load(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.validate(ctx, storeID, in); err != nil {
		return nil, err
	}
	if in.CustomSKU != "" && !in.HasVariants && in.CustomSKU != current.SKU {
		existing, err := uc.repo.GetByStoreAndSKU(ctx, storeID, in.CustomSKU)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, domain.ErrDuplicate
		}
	}

	now := uc.now()
	product := uc.fromSubmission(id, storeID, in, now)
	product.CreatedAt = current.CreatedAt
	if err := uc.tx.Run(ctx, func(repo repository.ProductRepository) error {
		return repo.Update(ctx, product)
	}); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto con variantes y paquetes. nil si no existe en la tienda.
func (uc *ProductUseCase) GetByID(ctx context.Context, storeID, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.StoreID != storeID {
		return nil, nil
	}
	return toProductResponse(p), nil
}

// Load devuelve la entidad completa; ErrNotFound si no pertenece a la tienda.
func (uc *ProductUseCase) Load(ctx context.Context, storeID, id string) (*entity.Product, error) {
	return uc.load(ctx, storeID, id)
}

// GetSubmission representación del producto como payload, para abrir un borrador de edición.
func (uc *ProductUseCase) GetSubmission(ctx context.Context, storeID, id string) (*form.ProductSubmission, error) {
	p, err := uc.load(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	sub := toSubmission(p)
	return &sub, nil
}

// List lista productos de la tienda con paginación.
func (uc *ProductUseCase) List(ctx context.Context, storeID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListByStore(ctx, storeID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto de la tienda.
func (uc *ProductUseCase) Delete(ctx context.Context, storeID, id string) error {
	if _, err := uc.load(ctx, storeID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *ProductUseCase) load(ctx context.Context, storeID, id string) (*entity.Product, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.StoreID != storeID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

var submissionValidator = validation.New()

// validate aplica las reglas de los tags del payload (el borrador no pasa por el handler de
// productos) y las que el validador no cubre: referencias de la tienda y coherencia entre
// HasVariants y Variants.
func (uc *ProductUseCase) validate(ctx context.Context, storeID string, in form.ProductSubmission) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: nombre obligatorio", domain.ErrInvalidInput)
	}
	if err := submissionValidator.Struct(in); err != nil {
		if fields := validation.Namespaces(err); len(fields) > 0 {
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	cat, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return err
	}
	if cat == nil || cat.StoreID != storeID {
		return fmt.Errorf("%w: categoría inexistente", domain.ErrInvalidInput)
	}
	if in.SupplierID != "" {
		sup, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
		if err != nil {
			return err
		}
		if sup == nil || sup.StoreID != storeID {
			return fmt.Errorf("%w: proveedor inexistente", domain.ErrInvalidInput)
		}
	}
	if in.HasVariants && len(in.Variants) == 0 {
		return fmt.Errorf("%w: producto con variantes sin variantes", domain.ErrInvalidInput)
	}
	if !in.HasVariants && len(in.Variants) > 0 {
		return fmt.Errorf("%w: variantes en un producto simple", domain.ErrInvalidInput)
	}
	seen := map[string]bool{}
	for _, v := range in.Variants {
		key := form.CombinationKey(v.Attributes)
		if seen[key] {
			return fmt.Errorf("%w: combinación de variante repetida", domain.ErrInvalidInput)
		}
		seen[key] = true
	}
	return nil
}

func (uc *ProductUseCase) fromSubmission(id, storeID string, in form.ProductSubmission, now time.Time) *entity.Product {
	p := &entity.Product{
		ID:          id,
		StoreID:     storeID,
		CategoryID:  in.CategoryID,
		SupplierID:  in.SupplierID,
		Name:        strings.TrimSpace(in.Name),
		Brand:       in.Brand,
		Description: in.Description,
		HasVariants: in.HasVariants,
		Attributes:  make([]entity.ProductAttribute, 0, len(in.Attributes)),
		Variants:    []entity.ProductVariant{},
		Packs:       []entity.ProductPack{},
		UpdatedAt:   now,
	}
	for _, a := range in.Attributes {
		p.Attributes = append(p.Attributes, entity.ProductAttribute{Name: a.Name, Values: append([]string{}, a.Values...)})
	}
	if !in.HasVariants {
		p.ItemPricing = entity.ItemPricing{
			SKU:                    in.CustomSKU,
			EAN:                    in.EAN,
			PLUUPC:                 in.PLUUPC,
			IndividualItemQuantity: in.IndividualItemQuantity,
			MinSellingQuantity:     in.MinSellingQuantity,
			Quantity:               in.Quantity,
			ItemCost:               in.ItemCost,
			ItemSellingCost:        in.ItemSellingCost,
			MSRP:                   in.MSRP,
			MinOrderValue:          in.MinOrderValue,
			DiscountAmount:         in.DiscountAmount,
			PercentDiscount:        in.PercentDiscount,
		}
		p.Packs = uc.packs(id, "", in.Packs)
		return p
	}
	for _, vp := range in.Variants {
		vid := uc.newID()
		attrs := make(map[string]string, len(vp.Attributes))
		for k, v := range vp.Attributes {
			attrs[k] = v
		}
		p.Variants = append(p.Variants, entity.ProductVariant{
			ID:         vid,
			ProductID:  id,
			Attributes: attrs,
			ItemPricing: entity.ItemPricing{
				SKU:                    vp.CustomSKU,
				EAN:                    vp.EAN,
				PLUUPC:                 vp.PLUUPC,
				IndividualItemQuantity: vp.IndividualItemQuantity,
				MinSellingQuantity:     vp.MinSellingQuantity,
				Quantity:               vp.Quantity,
				ItemCost:               vp.ItemCost,
				ItemSellingCost:        vp.ItemSellingCost,
				MSRP:                   vp.MSRP,
				MinOrderValue:          vp.MinOrderValue,
				DiscountAmount:         vp.DiscountAmount,
				PercentDiscount:        vp.PercentDiscount,
			},
			Packs:     uc.packs(id, vid, vp.Packs),
			CreatedAt: now,
		})
	}
	return p
}

func (uc *ProductUseCase) packs(productID, variantID string, in []form.PackPayload) []entity.ProductPack {
	out := make([]entity.ProductPack, 0, len(in))
	for _, pk := range in {
		out = append(out, entity.ProductPack{
			ID:                 uc.newID(),
			ProductID:          productID,
			VariantID:          variantID,
			Quantity:           pk.Quantity,
			TotalPacksQuantity: pk.TotalPacksQuantity,
			OrderedPacksPrice:  pk.OrderedPacksPrice,
			DiscountAmount:     pk.DiscountAmount,
			PercentDiscount:    pk.PercentDiscount,
		})
	}
	return out
}

// toSubmission adaptador inverso de fromSubmission.
func toSubmission(p *entity.Product) form.ProductSubmission {
	out := form.ProductSubmission{
		Name:        p.Name,
		CategoryID:  p.CategoryID,
		Brand:       p.Brand,
		SupplierID:  p.SupplierID,
		Description: p.Description,
		HasVariants: p.HasVariants,
		Attributes:  make([]form.AttributePayload, 0, len(p.Attributes)),
		Packs:       packPayloads(p.Packs),
		Variants:    make([]form.VariantPayload, 0, len(p.Variants)),
	}
	for _, a := range p.Attributes {
		out.Attributes = append(out.Attributes, form.AttributePayload{Name: a.Name, Values: append([]string{}, a.Values...)})
	}
	ip := p.ItemPricing
	out.CustomSKU, out.EAN, out.PLUUPC = ip.SKU, ip.EAN, ip.PLUUPC
	out.IndividualItemQuantity, out.MinSellingQuantity, out.Quantity = ip.IndividualItemQuantity, ip.MinSellingQuantity, ip.Quantity
	out.ItemCost, out.ItemSellingCost, out.MSRP = ip.ItemCost, ip.ItemSellingCost, ip.MSRP
	out.MinOrderValue, out.DiscountAmount, out.PercentDiscount = ip.MinOrderValue, ip.DiscountAmount, ip.PercentDiscount

	for _, v := range p.Variants {
		vp := form.VariantPayload{
			Attributes:             v.Attributes,
			CustomSKU:              v.SKU,
			EAN:                    v.EAN,
			PLUUPC:                 v.PLUUPC,
			IndividualItemQuantity: v.IndividualItemQuantity,
			MinSellingQuantity:     v.MinSellingQuantity,
			Quantity:               v.Quantity,
			ItemCost:               v.ItemCost,
			ItemSellingCost:        v.ItemSellingCost,
			MSRP:                   v.MSRP,
			MinOrderValue:          v.MinOrderValue,
			DiscountAmount:         v.DiscountAmount,
			PercentDiscount:        v.PercentDiscount,
			Packs:                  packPayloads(v.Packs),
		}
		out.Variants = append(out.Variants, vp)
	}
	return out
}

func packPayloads(packs []entity.ProductPack) []form.PackPayload {
	out := make([]form.PackPayload, 0, len(packs))
	for _, pk := range packs {
		out = append(out, form.PackPayload{
			Quantity:           pk.Quantity,
			TotalPacksQuantity: pk.TotalPacksQuantity,
			OrderedPacksPrice:  pk.OrderedPacksPrice,
			DiscountAmount:     pk.DiscountAmount,
			PercentDiscount:    pk.PercentDiscount,
		})
	}
	return out
}

// PackFinalPrice precio del paquete con su descuento aplicado.
func PackFinalPrice(pk entity.ProductPack) decimal.Decimal {
	switch {
	case !pk.PercentDiscount.IsZero():
		return pricing.ApplyDiscount(pk.OrderedPacksPrice, pricing.DiscountPercentage, pk.PercentDiscount)
	case !pk.DiscountAmount.IsZero():
		return pricing.ApplyDiscount(pk.OrderedPacksPrice, pricing.DiscountFixed, pk.DiscountAmount)
	default:
		return pk.OrderedPacksPrice
	}
}

func toPricingResponse(ip entity.ItemPricing) dto.ItemPricingResponse {
	return dto.ItemPricingResponse{
		SKU:                    ip.SKU,
		EAN:                    ip.EAN,
		PLUUPC:                 ip.PLUUPC,
		IndividualItemQuantity: ip.IndividualItemQuantity,
		MinSellingQuantity:     ip.MinSellingQuantity,
		Quantity:               ip.Quantity,
		ItemCost:               ip.ItemCost,
		ItemSellingCost:        ip.ItemSellingCost,
		MSRP:                   ip.MSRP,
		MinOrderValue:          ip.MinOrderValue,
		DiscountAmount:         ip.DiscountAmount,
		PercentDiscount:        ip.PercentDiscount,
	}
}

func toPackResponses(packs []entity.ProductPack) []dto.PackResponse {
	out := make([]dto.PackResponse, 0, len(packs))
	for _, pk := range packs {
		out = append(out, dto.PackResponse{
			ID:                 pk.ID,
			Quantity:           pk.Quantity,
			TotalPacksQuantity: pk.TotalPacksQuantity,
			OrderedPacksPrice:  pk.OrderedPacksPrice,
			DiscountAmount:     pk.DiscountAmount,
			PercentDiscount:    pk.PercentDiscount,
			FinalPrice:         PackFinalPrice(pk),
		})
	}
	return out
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	out := &dto.ProductResponse{
		ID:                  p.ID,
		StoreID:             p.StoreID,
		CategoryID:          p.CategoryID,
		SupplierID:          p.SupplierID,
		Name:                p.Name,
		Brand:               p.Brand,
		Description:         p.Description,
		ItemPricingResponse: toPricingResponse(p.ItemPricing),
		HasVariants:         p.HasVariants,
		Attributes:          make([]dto.AttributeResponse, 0, len(p.Attributes)),
		Variants:            make([]dto.VariantResponse, 0, len(p.Variants)),
		Packs:               toPackResponses(p.Packs),
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
	for _, a := range p.Attributes {
		out.Attributes = append(out.Attributes, dto.AttributeResponse{Name: a.Name, Values: a.Values})
	}
	for _, v := range p.Variants {
		out.Variants = append(out.Variants, dto.VariantResponse{
			ID:                  v.ID,
			Attributes:          v.Attributes,
			ItemPricingResponse: toPricingResponse(v.ItemPricing),
			Packs:               toPackResponses(v.Packs),
		})
	}
	return out
}
