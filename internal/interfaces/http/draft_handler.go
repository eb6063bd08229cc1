package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/product-pricing-api/internal/application/dto"
	"github.com/jhoicas/product-pricing-api/internal/application/usecase"
)

// DraftHandler maneja las sesiones de edición de productos.
// Cada mutación devuelve el DraftResponse completo para que el cliente repinte la página.
type DraftHandler struct {
	uc *usecase.DraftUseCase
}

// NewDraftHandler construye el handler.
func NewDraftHandler(uc *usecase.DraftUseCase) *DraftHandler {
	return &DraftHandler{uc: uc}
}

func draftResult(c *fiber.Ctx, out *dto.DraftResponse, err error) error {
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Abrir borrador
// @Description  Sin product_id abre un producto nuevo; con product_id precarga el existente.
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDraftRequest  false  "product_id opcional"
// @Success      201   {object}  dto.DraftResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/drafts [post]
func (h *DraftHandler) Create(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	var in dto.CreateDraftRequest
	if len(c.Body()) > 0 {
		if ok, err := bindAndValidate(c, &in); !ok {
			return err
		}
	}
	out, err := h.uc.Create(c.UserContext(), storeID, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar borradores
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DraftListResponse
// @Router       /api/drafts [get]
func (h *DraftHandler) List(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), storeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener borrador
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.DraftResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id} [get]
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), storeID, c.Params("id"))
	return draftResult(c, out, err)
}

// Delete godoc
// @Summary      Descartar borrador
// @Tags         drafts
// @Security     Bearer
// @Param        id   path  string  true  "ID del borrador"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id} [delete]
func (h *DraftHandler) Delete(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), storeID, c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetField godoc
// @Summary      Cambiar un campo
// @Description  Dispara las derivaciones (valor mínimo, stock, descuento, paquetes).
// @Tags         drafts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del borrador"
// @Param        body  body  dto.SetFieldRequest  true  "field, value, variation_id opcional"
// @Success      200   {object}  dto.DraftResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/fields [patch]
func (h *DraftHandler) SetField(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	var in dto.SetFieldRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.SetField(c.UserContext(), storeID, c.Params("id"), in)
	return draftResult(c, out, err)
}

// SetVariationField PATCH /api/drafts/{id}/variations/{variationId}/fields
func (h *DraftHandler) SetVariationField(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	var in dto.SetFieldRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	in.VariationID = c.Params("variationId")
	out, err := h.uc.SetField(c.UserContext(), storeID, c.Params("id"), in)
	return draftResult(c, out, err)
}

// ── Paquetes ─────────────────────────────────────────────────────────────────

// SetPacksEnabled PUT /api/drafts/{id}/packs/enabled
func (h *DraftHandler) SetPacksEnabled(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	var in dto.ToggleRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.SetPacksEnabled(c.UserContext(), storeID, c.Params("id"), in.Enabled)
	return draftResult(c, out, err)
}

// AddPack POST /api/drafts/{id}/packs
func (h *DraftHandler) AddPack(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	var in dto.PackRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddPack(c.UserContext(), storeID, c.Params("id"), in)
	return draftResult(c, out, err)
}

// UpdatePack PATCH /api/drafts/{id}/packs/{packId}
func (h *DraftHandler) UpdatePack(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	var in dto.PackPatchRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdatePack(c.UserContext(), storeID, c.Params("id"), c.Params("packId"), in)
	return draftResult(c, out, err)
}

// RemovePack DELETE /api/drafts/{id}/packs/{packId}?variation_id=
func (h *DraftHandler) RemovePack(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	out, err := h.uc.RemovePack(c.UserContext(), storeID, c.Params("id"), c.Query("variation_id"), c.Params("packId"))
	return draftResult(c, out, err)
}

// ── Atributos ────────────────────────────────────────────────────────────────

// SetAttributesEnabled PUT /api/drafts/{id}/attributes/enabled
func (h *DraftHandler) SetAttributesEnabled(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	var in dto.ToggleRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.SetAttributesEnabled(c.UserContext(), storeID, c.Params("id"), in.Enabled)
	return draftResult(c, out, err)
}

// AddAttribute POST /api/drafts/{id}/attributes
func (h *DraftHandler) AddAttribute(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	var in dto.AttributeRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddAttribute(c.UserContext(), storeID, c.Params("id"), in)
	return draftResult(c, out, err)
}

// UpdateAttribute PATCH /api/drafts/{id}/attributes/{attrId}
func (h *DraftHandler) UpdateAttribute(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	var in dto.UpdateAttributeRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateAttribute(c.UserContext(), storeID, c.Params("id"), c.Params("attrId"), in)
	return draftResult(c, out, err)
}

// RemoveAttribute DELETE /api/drafts/{id}/attributes/{attrId}
func (h *DraftHandler) RemoveAttribute(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	out, err := h.uc.RemoveAttribute(c.UserContext(), storeID, c.Params("id"), c.Params("attrId"))
	return draftResult(c, out, err)
}

// AddOption POST /api/drafts/{id}/attributes/{attrId}/options
func (h *DraftHandler) AddOption(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	var in dto.OptionRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddOption(c.UserContext(), storeID, c.Params("id"), c.Params("attrId"), in)
	return draftResult(c, out, err)
}

// UpdateOption PATCH /api/drafts/{id}/attributes/{attrId}/options/{optionId}
func (h *DraftHandler) UpdateOption(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	var in dto.OptionRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.UpdateOption(c.UserContext(), storeID, c.Params("id"), c.Params("attrId"), c.Params("optionId"), in)
	return draftResult(c, out, err)
}

// RemoveOption DELETE /api/drafts/{id}/attributes/{attrId}/options/{optionId}
func (h *DraftHandler) RemoveOption(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	out, err := h.uc.RemoveOption(c.UserContext(), storeID, c.Params("id"), c.Params("attrId"), c.Params("optionId"))
	return draftResult(c, out, err)
}

// ── Variaciones y etapas ─────────────────────────────────────────────────────

// GenerateVariations POST /api/drafts/{id}/variations/generate
func (h *DraftHandler) GenerateVariations(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	out, err := h.uc.GenerateVariations(c.UserContext(), storeID, c.Params("id"))
	return draftResult(c, out, err)
}

// RemoveVariation DELETE /api/drafts/{id}/variations/{variationId}
func (h *DraftHandler) RemoveVariation(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	out, err := h.uc.RemoveVariation(c.UserContext(), storeID, c.Params("id"), c.Params("variationId"))
	return draftResult(c, out, err)
}

// Next POST /api/drafts/{id}/next
func (h *DraftHandler) Next(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	out, err := h.uc.Next(c.UserContext(), storeID, c.Params("id"))
	return draftResult(c, out, err)
}

// Back POST /api/drafts/{id}/back
func (h *DraftHandler) Back(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	out, err := h.uc.Back(c.UserContext(), storeID, c.Params("id"))
	return draftResult(c, out, err)
}

// Submit godoc
// @Summary      Enviar borrador
// @Description  Construye el payload y crea o actualiza el producto. Si falla, el borrador sigue editable.
// @Tags         drafts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del borrador"
// @Success      200  {object}  dto.SubmitDraftResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/drafts/{id}/submit [post]
func (h *DraftHandler) Submit(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	out, err := h.uc.Submit(c.UserContext(), storeID, c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
