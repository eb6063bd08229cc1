package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/product-pricing-api/internal/application/dto"
	"github.com/jhoicas/product-pricing-api/internal/application/usecase"
)

// PricingHandler expone las derivaciones de precio sin persistir nada.
type PricingHandler struct {
	uc *usecase.PricingUseCase
}

// NewPricingHandler construye el handler.
func NewPricingHandler(uc *usecase.PricingUseCase) *PricingHandler {
	return &PricingHandler{uc: uc}
}

// Quote godoc
// @Summary      Calcular precios derivados
// @Description  Valor mínimo de pedido, stock sugerido, descuento y precio de paquetes.
// @Tags         pricing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuoteRequest  true  "Costos y descuento"
// @Success      200   {object}  dto.QuoteResponse
// @Failure      422   {object}  dto.ValidationErrorResponse
// @Router       /api/pricing/quote [post]
func (h *PricingHandler) Quote(c *fiber.Ctx) error {
	var in dto.QuoteRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	return c.JSON(h.uc.Quote(in))
}

// Classify godoc
// @Summary      Clasificar atributos
// @Description  Indica si los atributos producen variaciones y cuáles combinaciones.
// @Tags         pricing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClassifyRequest  true  "Atributos"
// @Success      200   {object}  dto.ClassifyResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/pricing/classify [post]
func (h *PricingHandler) Classify(c *fiber.Ctx) error {
	var in dto.ClassifyRequest
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}
	out, err := h.uc.Classify(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
