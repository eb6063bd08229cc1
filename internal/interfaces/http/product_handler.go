package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/product-pricing-api/internal/application/dto"
	"github.com/jhoicas/product-pricing-api/internal/application/usecase"
	"github.com/jhoicas/product-pricing-api/internal/domain"
	"github.com/jhoicas/product-pricing-api/internal/domain/form"
)

// ProductHandler maneja las peticiones HTTP para Product (protegido).
type ProductHandler struct {
	uc     *usecase.ProductUseCase
	sheets *usecase.PriceSheetUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, sheets *usecase.PriceSheetUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, sheets: sheets}
}

// Create godoc
// @Summary      Crear producto
// @Description  Recibe el payload completo (el mismo que genera el envío de un borrador).
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  form.ProductSubmission  true  "Producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ValidationErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	var in form.ProductSubmission
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), storeID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  form.ProductSubmission  true  "Producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	var in form.ProductSubmission
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), storeID, c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), storeID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite (default 20)"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), storeID, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Param        id   path  string  true  "ID del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), storeID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PriceSheet godoc
// @Summary      Ficha de precios en PDF
// @Tags         products
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/price-sheet [get]
func (h *ProductHandler) PriceSheet(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	if h.sheets == nil {
		return writeError(c, domain.ErrNotFound)
	}
	out, filename, err := h.sheets.Generate(c.UserContext(), storeID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(out)
}
