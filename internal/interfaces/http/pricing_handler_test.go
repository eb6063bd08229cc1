package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/product-pricing-api/internal/application/dto"
	"github.com/jhoicas/product-pricing-api/internal/application/usecase"
	"github.com/jhoicas/product-pricing-api/internal/domain/pricing"
	apphttp "github.com/jhoicas/product-pricing-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func buildPricingApp() *fiber.App {
	app := fiber.New()
	h := apphttp.NewPricingHandler(usecase.NewPricingUseCase(pricing.DefaultPolicy()))
	app.Post("/quote", h.Quote)
	app.Post("/classify", h.Classify)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Quote
// ──────────────────────────────────────────────────────────────────────────────

func TestPricingHandler_Quote_DerivaValoresYPaquetes(t *testing.T) {
	app := buildPricingApp()
	resp := postJSON(t, app, "/quote", `{
		"item_cost": "800",
		"item_selling_cost": "1000",
		"min_selling_quantity": 3,
		"individual_item_quantity": 10,
		"packs": [{"quantity": 6, "discount_type": "percentage", "discount_value": "10"}]
	}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.QuoteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	assert.True(t, out.MinOrderValue.Equal(decimal.NewFromInt(3000)), "valor mínimo = 1000 × 3")
	assert.True(t, out.MinOrderValueValid)
	require.NotNil(t, out.Quantity)
	assert.Equal(t, 3, *out.Quantity, "stock = floor(10 / 3)")
	require.Len(t, out.Packs, 1)
	assert.True(t, out.Packs[0].OrderedPacksPrice.Equal(decimal.NewFromInt(6000)))
	assert.True(t, out.Packs[0].FinalPrice.Equal(decimal.NewFromInt(5400)))
	assert.True(t, out.Packs[0].PercentDiscount.Equal(decimal.NewFromInt(10)))
	assert.Empty(t, out.Warnings)
}

func TestPricingHandler_Quote_RespetaValorMinimoSubidoAMano(t *testing.T) {
	app := buildPricingApp()
	resp := postJSON(t, app, "/quote", `{
		"item_selling_cost": "1000",
		"min_selling_quantity": 2,
		"current_min_order_value": "5000"
	}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.QuoteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.MinOrderValue.Equal(decimal.NewFromInt(5000)))
	assert.True(t, out.MinOrderValueFloor.Equal(decimal.NewFromInt(2000)))
	assert.Nil(t, out.Quantity, "sin cantidad individual no se deriva stock")
}

func TestPricingHandler_Quote_PrecioBajoCostoGeneraAdvertencia(t *testing.T) {
	app := buildPricingApp()
	resp := postJSON(t, app, "/quote", `{"item_cost": "1200", "item_selling_cost": "1000", "min_selling_quantity": 1}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.QuoteResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.Warnings)
}

func TestPricingHandler_Quote_CuerpoInvalido_Retorna400(t *testing.T) {
	app := buildPricingApp()
	resp := postJSON(t, app, "/quote", `{`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPricingHandler_Quote_PaqueteSinCantidad_Retorna422(t *testing.T) {
	app := buildPricingApp()
	resp := postJSON(t, app, "/quote", `{"item_selling_cost": "1000", "packs": [{"quantity": 0}]}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var out dto.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Equal(t, "min", out.Fields["quantity"])
}

func TestPricingHandler_Quote_TipoDeDescuentoDesconocido_Retorna422(t *testing.T) {
	app := buildPricingApp()
	resp := postJSON(t, app, "/quote", `{"item_selling_cost": "1000", "discount_type": "2x1"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Classify
// ──────────────────────────────────────────────────────────────────────────────

func TestPricingHandler_Classify_AtributoConVariasOpciones(t *testing.T) {
	app := buildPricingApp()
	resp := postJSON(t, app, "/classify", `{
		"has_attributes": true,
		"attributes": [
			{"name": "Color", "values": ["Rojo", "Azul"]},
			{"name": "Talla", "values": ["M"]}
		]
	}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.ClassifyResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.True(t, out.NeedsVariations)
	assert.False(t, out.AttributesConfigured, "Talla tiene una sola opción")
	assert.Len(t, out.Combinations, 2)
	assert.NotEmpty(t, out.RequiredFields)
}

func TestPricingHandler_Classify_SinAtributos(t *testing.T) {
	app := buildPricingApp()
	resp := postJSON(t, app, "/classify", `{"has_attributes": false}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.ClassifyResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.NeedsVariations)
	assert.Empty(t, out.Combinations)
}

func classifyBody(attributes, values int) string {
	attrs := make([]map[string]any, 0, attributes)
	for i := 0; i < attributes; i++ {
		vals := make([]string, 0, values)
		for j := 0; j < values; j++ {
			vals = append(vals, fmt.Sprintf("v%d", j))
		}
		attrs = append(attrs, map[string]any{"name": fmt.Sprintf("A%d", i), "values": vals})
	}
	b, _ := json.Marshal(map[string]any{"has_attributes": true, "attributes": attrs})
	return string(b)
}

func TestPricingHandler_Classify_DemasiadosAtributos_Retorna422(t *testing.T) {
	app := buildPricingApp()
	resp := postJSON(t, app, "/classify", classifyBody(11, 2))
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var out dto.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "max", out.Fields["attributes"])
}

func TestPricingHandler_Classify_DemasiadosValores_Retorna422(t *testing.T) {
	app := buildPricingApp()
	resp := postJSON(t, app, "/classify", classifyBody(2, 51))
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var out dto.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "max", out.Fields["values"])
}

func TestPricingHandler_Classify_DemasiadasCombinaciones_Retorna422(t *testing.T) {
	app := buildPricingApp()
	// 3^10 combinaciones, dentro de los límites por atributo pero sobre el tope total.
	resp := postJSON(t, app, "/classify", classifyBody(10, 3))
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "TOO_MANY_COMBINATIONS", out.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas protegidas sin tienda
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboardHandler_SinStoreEnContexto_Retorna401(t *testing.T) {
	app := fiber.New()
	app.Get("/summary", apphttp.NewDashboardHandler(nil).GetSummary)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/summary", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
