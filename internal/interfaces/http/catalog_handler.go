package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/product-pricing-api/internal/application/dto"
	"github.com/jhoicas/product-pricing-api/internal/application/usecase"
)

// CatalogHandler maneja categorías y proveedores de la tienda.
type CatalogHandler struct {
	categories *usecase.CategoryUseCase
	suppliers  *usecase.SupplierUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(categories *usecase.CategoryUseCase, suppliers *usecase.SupplierUseCase) *CatalogHandler {
	return &CatalogHandler{categories: categories, suppliers: suppliers}
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	out, err := h.categories.List(c.UserContext(), storeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Nombre, código y padre opcional"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	var in dto.CreateCategoryRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.categories.Create(c.UserContext(), storeID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplierResponse
// @Router       /api/suppliers [get]
func (h *CatalogHandler) ListSuppliers(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	out, err := h.suppliers.List(c.UserContext(), storeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateSupplier godoc
// @Summary      Crear proveedor
// @Tags         catalog
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSupplierRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	var in dto.CreateSupplierRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.suppliers.Create(c.UserContext(), storeID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
