package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/product-pricing-api/internal/application/analytics"
)

// DashboardHandler maneja el resumen del catálogo.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve conteos del catálogo, precio promedio y top de categorías.
// GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	storeID, ok, err := requireStore(c)
	if !ok {
		return err
	}
	summary, err := h.uc.GetSummary(c.UserContext(), storeID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
