package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/product-pricing-api/internal/application/dto"
	"github.com/jhoicas/product-pricing-api/internal/application/usecase"
	"github.com/jhoicas/product-pricing-api/internal/domain"
	"github.com/jhoicas/product-pricing-api/internal/domain/entity"
	"github.com/jhoicas/product-pricing-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryUseCase_Create_CodigoDesdeNombre(t *testing.T) {
	uc := usecase.NewCategoryUseCase(&memCategoryRepo{}, newMemCache(), logger.Nop())
	out, err := uc.Create(context.Background(), storeA, dto.CreateCategoryRequest{Name: "Bebidas Calientes"})
	require.NoError(t, err)

	assert.Equal(t, "bebidas-calientes", out.Code)
	assert.Equal(t, "active", out.Status)
}

func TestCategoryUseCase_Create_CodigoExplicitoNormalizado(t *testing.T) {
	uc := usecase.NewCategoryUseCase(&memCategoryRepo{}, nil, logger.Nop())
	out, err := uc.Create(context.Background(), storeA, dto.CreateCategoryRequest{Name: "Lácteos", Code: "Lácteos y Quesos"})
	require.NoError(t, err)

	assert.Equal(t, "lacteos-y-quesos", out.Code)
}

func TestCategoryUseCase_Create_Duplicada(t *testing.T) {
	repo := &memCategoryRepo{}
	uc := usecase.NewCategoryUseCase(repo, nil, logger.Nop())
	ctx := context.Background()
	_, err := uc.Create(ctx, storeA, dto.CreateCategoryRequest{Name: "Aseo"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, storeA, dto.CreateCategoryRequest{Name: "aseo"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, storeB, dto.CreateCategoryRequest{Name: "Aseo"})
	assert.NoError(t, err, "el código es único por tienda")
}

func TestCategoryUseCase_Create_PadreDeOtraTienda(t *testing.T) {
	repo := &memCategoryRepo{items: []*entity.Category{{ID: "p1", StoreID: storeB, Code: "padre"}}}
	uc := usecase.NewCategoryUseCase(repo, nil, logger.Nop())

	_, err := uc.Create(context.Background(), storeA, dto.CreateCategoryRequest{Name: "Hija", ParentID: "p1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryUseCase_List_CacheAsideEInvalidacion(t *testing.T) {
	repo := &memCategoryRepo{}
	cache := newMemCache()
	uc := usecase.NewCategoryUseCase(repo, cache, logger.Nop())
	ctx := context.Background()
	_, err := uc.Create(ctx, storeA, dto.CreateCategoryRequest{Name: "Aseo"})
	require.NoError(t, err)

	first, err := uc.List(ctx, storeA)
	require.NoError(t, err)
	second, err := uc.List(ctx, storeA)
	require.NoError(t, err)
	require.Len(t, second, len(first))
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, 1, repo.lists, "la segunda lectura sale de la caché")

	_, err = uc.Create(ctx, storeA, dto.CreateCategoryRequest{Name: "Despensa"})
	require.NoError(t, err)
	third, err := uc.List(ctx, storeA)
	require.NoError(t, err)
	assert.Len(t, third, 2, "crear invalida la caché")
	assert.Equal(t, 2, repo.lists)
}

func TestCategoryUseCase_List_CacheCaidaNoFalla(t *testing.T) {
	repo := &memCategoryRepo{items: []*entity.Category{{ID: "c1", StoreID: storeA, Name: "Aseo", Code: "aseo"}}}
	cache := newMemCache()
	cache.failWith = errRedisDown
	uc := usecase.NewCategoryUseCase(repo, cache, logger.Nop())

	out, err := uc.List(context.Background(), storeA)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestSupplierUseCase_CreateYList(t *testing.T) {
	repo := &memSupplierRepo{}
	cache := newMemCache()
	uc := usecase.NewSupplierUseCase(repo, cache, logger.Nop())
	ctx := context.Background()

	empty, err := uc.List(ctx, storeA)
	require.NoError(t, err)
	assert.Empty(t, empty)

	out, err := uc.Create(ctx, storeA, dto.CreateSupplierRequest{Name: "  Textiles SAS ", Email: "ventas@textiles.co"})
	require.NoError(t, err)
	assert.Equal(t, "Textiles SAS", out.Name)
	assert.Equal(t, 1, cache.deletes)

	list, err := uc.List(ctx, storeA)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSupplierUseCase_Create_SinNombre(t *testing.T) {
	uc := usecase.NewSupplierUseCase(&memSupplierRepo{}, nil, logger.Nop())
	_, err := uc.Create(context.Background(), storeA, dto.CreateSupplierRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
