package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/product-pricing-api/internal/application/dto"
	"github.com/jhoicas/product-pricing-api/internal/application/usecase"
	"github.com/jhoicas/product-pricing-api/internal/domain"
)

// StoreHandler maneja las tiendas (tenants).
type StoreHandler struct {
	uc *usecase.StoreUseCase
}

// NewStoreHandler construye el handler.
func NewStoreHandler(uc *usecase.StoreUseCase) *StoreHandler {
	return &StoreHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tienda
// @Tags         stores
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStoreRequest  true  "Datos de la tienda"
// @Success      201   {object}  dto.StoreResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ValidationErrorResponse
// @Router       /api/stores [post]
func (h *StoreHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStoreRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Current godoc
// @Summary      Tienda del usuario autenticado
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StoreResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/current [get]
func (h *StoreHandler) Current(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), storeID)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return writeError(c, domain.ErrNotFound)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar tiendas
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (default 20)"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  dto.StoreListResponse
// @Router       /api/stores [get]
func (h *StoreHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener tienda por ID
// @Tags         stores
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la tienda"
// @Success      200  {object}  dto.StoreResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{id} [get]
func (h *StoreHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "tienda no encontrada"})
	}
	return c.JSON(out)
}
