package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/jhoicas/product-pricing-api/internal/application/dto"
	"github.com/jhoicas/product-pricing-api/internal/application/ports"
	"github.com/jhoicas/product-pricing-api/internal/domain"
	"github.com/jhoicas/product-pricing-api/internal/domain/entity"
	"github.com/jhoicas/product-pricing-api/internal/domain/repository"
	"github.com/jhoicas/product-pricing-api/pkg/logger"
)

func categoriesCacheKey(storeID string) string { return "categories:" + storeID }

// CategoryUseCase categorías de la tienda con caché de lectura.
type CategoryUseCase struct {
	repo  repository.CategoryRepository
	cache ports.ReferenceCache
	log   *logger.Logger
}

// NewCategoryUseCase construye el caso de uso. cache puede ser nil.
func NewCategoryUseCase(repo repository.CategoryRepository, cache ports.ReferenceCache, log *logger.Logger) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, cache: cache, log: log}
}

// List categorías activas e inactivas de la tienda, ordenadas por nombre.
func (uc *CategoryUseCase) List(ctx context.Context, storeID string) ([]dto.CategoryResponse, error) {
	key := categoriesCacheKey(storeID)
	var cached []dto.CategoryResponse
	if readCache(ctx, uc.cache, uc.log, key, &cached) {
		return cached, nil
	}

	list, err := uc.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toCategoryResponse(c))
	}
	writeCache(ctx, uc.cache, uc.log, key, out)
	return out, nil
}

// Create crea una categoría. El código es el slug del nombre si no se indica;
// un código repetido en la tienda devuelve domain.ErrDuplicate.
func (uc *CategoryUseCase) Create(ctx context.Context, storeID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	code := slug.Make(in.Code)
	if strings.TrimSpace(in.Code) == "" {
		code = slug.Make(name)
	}
	if code == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.repo.GetByStoreAndCode(ctx, storeID, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.ParentID != "" {
		parent, err := uc.repo.GetByID(ctx, in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.StoreID != storeID {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	c := &entity.Category{
		ID:        uuid.New().String(),
		StoreID:   storeID,
		ParentID:  in.ParentID,
		Name:      name,
		Code:      code,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	dropCache(ctx, uc.cache, uc.log, categoriesCacheKey(storeID))
	resp := toCategoryResponse(c)
	return &resp, nil
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:        c.ID,
		StoreID:   c.StoreID,
		ParentID:  c.ParentID,
		Name:      c.Name,
		Code:      c.Code,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
