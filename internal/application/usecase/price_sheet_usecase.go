package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/product-pricing-api/internal/application/ports"
	"github.com/jhoicas/product-pricing-api/internal/domain"
	"github.com/jhoicas/product-pricing-api/internal/domain/entity"
	"github.com/jhoicas/product-pricing-api/internal/domain/repository"
)

// ProductLoader carga un producto completo de la tienda.
type ProductLoader interface {
	Load(ctx context.Context, storeID, id string) (*entity.Product, error)
}

// PriceSheetUseCase genera la ficha de precios en PDF de un producto.
type PriceSheetUseCase struct {
	products     ProductLoader
	storeRepo    repository.StoreRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	generator    ports.PriceSheetGenerator
}

// NewPriceSheetUseCase construye el caso de uso.
func NewPriceSheetUseCase(
	products ProductLoader,
	storeRepo repository.StoreRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	generator ports.PriceSheetGenerator,
) *PriceSheetUseCase {
	return &PriceSheetUseCase{
		products:     products,
		storeRepo:    storeRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		generator:    generator,
	}
}

// Generate devuelve el PDF y un nombre de archivo sugerido.
func (uc *PriceSheetUseCase) Generate(ctx context.Context, storeID, productID string) ([]byte, string, error) {
	product, err := uc.products.Load(ctx, storeID, productID)
	if err != nil {
		return nil, "", err
	}
	store, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, "", err
	}
	if store == nil {
		return nil, "", domain.ErrNotFound
	}

	data := ports.PriceSheetData{Store: store, Product: product}
	if cat, err := uc.categoryRepo.GetByID(ctx, product.CategoryID); err != nil {
		return nil, "", err
	} else if cat != nil {
		data.CategoryName = cat.Name
	}
	if product.SupplierID != "" {
		sup, err := uc.supplierRepo.GetByID(ctx, product.SupplierID)
		if err != nil {
			return nil, "", err
		}
		if sup != nil {
			data.SupplierName = sup.Name
		}
	}

	pdf, err := uc.generator.GeneratePriceSheet(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("price sheet: %w", err)
	}
	return pdf, fmt.Sprintf("ficha-%s.pdf", product.ID), nil
}
