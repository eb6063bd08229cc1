package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/product-pricing-api/internal/application/dto"
	"github.com/jhoicas/product-pricing-api/internal/domain"
	"github.com/jhoicas/product-pricing-api/internal/domain/entity"
	"github.com/jhoicas/product-pricing-api/internal/domain/repository"
)

const defaultCurrency = "COP"

// StoreUseCase aplica reglas de negocio para tiendas (tenants).
type StoreUseCase struct {
	repo repository.StoreRepository
}

// NewStoreUseCase construye el caso de uso con el puerto de persistencia.
func NewStoreUseCase(repo repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo}
}

// Create crea una nueva tienda. Devuelve domain.ErrDuplicate si la identificación tributaria ya existe.
func (uc *StoreUseCase) Create(ctx context.Context, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	existing, err := uc.repo.GetByTaxID(ctx, in.TaxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	currency := strings.ToUpper(in.Currency)
	if currency == "" {
		currency = defaultCurrency
	}
	now := time.Now()
	store := &entity.Store{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		Currency:  currency,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// GetByID obtiene una tienda por ID. nil si no existe.
func (uc *StoreUseCase) GetByID(ctx context.Context, id string) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// List lista tiendas con paginación.
func (uc *StoreUseCase) List(ctx context.Context, limit, offset int) (*dto.StoreListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStoreResponse(s))
	}
	return &dto.StoreListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	if s == nil {
		return nil
	}
	return &dto.StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		TaxID:     s.TaxID,
		Address:   s.Address,
		Phone:     s.Phone,
		Email:     s.Email,
		Currency:  s.Currency,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
