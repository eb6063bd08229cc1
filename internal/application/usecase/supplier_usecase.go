package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/product-pricing-api/internal/application/dto"
	"github.com/jhoicas/product-pricing-api/internal/application/ports"
	"github.com/jhoicas/product-pricing-api/internal/domain"
	"github.com/jhoicas/product-pricing-api/internal/domain/entity"
	"github.com/jhoicas/product-pricing-api/internal/domain/repository"
	"github.com/jhoicas/product-pricing-api/pkg/logger"
)

func suppliersCacheKey(storeID string) string { return "suppliers:" + storeID }

// SupplierUseCase proveedores de la tienda con caché de lectura.
type SupplierUseCase struct {
	repo  repository.SupplierRepository
	cache ports.ReferenceCache
	log   *logger.Logger
}

// NewSupplierUseCase construye el caso de uso. cache puede ser nil.
func NewSupplierUseCase(repo repository.SupplierRepository, cache ports.ReferenceCache, log *logger.Logger) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, cache: cache, log: log}
}

// List proveedores de la tienda.
func (uc *SupplierUseCase) List(ctx context.Context, storeID string) ([]dto.SupplierResponse, error) {
	key := suppliersCacheKey(storeID)
	var cached []dto.SupplierResponse
	if readCache(ctx, uc.cache, uc.log, key, &cached) {
		return cached, nil
	}

	list, err := uc.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSupplierResponse(s))
	}
	writeCache(ctx, uc.cache, uc.log, key, out)
	return out, nil
}

// Create crea un proveedor e invalida la caché de la tienda.
func (uc *SupplierUseCase) Create(ctx context.Context, storeID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:          uuid.New().String(),
		StoreID:     storeID,
		Name:        name,
		ContactName: in.ContactName,
		Email:       in.Email,
		Phone:       in.Phone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	dropCache(ctx, uc.cache, uc.log, suppliersCacheKey(storeID))
	resp := toSupplierResponse(s)
	return &resp, nil
}

func toSupplierResponse(s *entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:          s.ID,
		StoreID:     s.StoreID,
		Name:        s.Name,
		ContactName: s.ContactName,
		Email:       s.Email,
		Phone:       s.Phone,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
