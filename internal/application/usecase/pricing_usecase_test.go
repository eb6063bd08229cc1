package usecase_test

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/product-pricing-api/internal/application/dto"
	"github.com/jhoicas/product-pricing-api/internal/application/usecase"
	"github.com/jhoicas/product-pricing-api/internal/domain/form"
	"github.com/jhoicas/product-pricing-api/internal/domain/pricing"
)

func amount(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func intPtr(v int) *int { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Quote
// ──────────────────────────────────────────────────────────────────────────────

func TestPricingUseCase_Quote_SinPrecioNoDerivaValorMinimo(t *testing.T) {
	uc := usecase.NewPricingUseCase(pricing.DefaultPolicy())
	out := uc.Quote(dto.QuoteRequest{MinSellingQuantity: 4, CurrentMinOrderValue: amount(7)})

	assert.True(t, out.MinOrderValue.Equal(amount(7)))
	assert.Empty(t, out.Warnings)
}

func TestPricingUseCase_Quote_OverwriteBajaElValor(t *testing.T) {
	uc := usecase.NewPricingUseCase(pricing.Policy{MinOrder: pricing.MinOrderOverwrite, Stock: pricing.StockPrefillOnce})
	out := uc.Quote(dto.QuoteRequest{ItemSellingCost: amount(10), MinSellingQuantity: 2, CurrentMinOrderValue: amount(90)})

	assert.True(t, out.MinOrderValue.Equal(amount(20)))
}

func TestPricingUseCase_Quote_StockPrefillOnce(t *testing.T) {
	uc := usecase.NewPricingUseCase(pricing.DefaultPolicy())

	out := uc.Quote(dto.QuoteRequest{IndividualItemQuantity: 100, MinSellingQuantity: 5})
	require.NotNil(t, out.Quantity)
	assert.Equal(t, 20, *out.Quantity)

	out = uc.Quote(dto.QuoteRequest{IndividualItemQuantity: 100, MinSellingQuantity: 5, CurrentQuantity: intPtr(7)})
	assert.Equal(t, 7, *out.Quantity, "un stock cargado no se pisa")

	out = uc.Quote(dto.QuoteRequest{IndividualItemQuantity: 3, MinSellingQuantity: 5})
	assert.Nil(t, out.Quantity, "prefill_once no escribe cero")
}

func TestPricingUseCase_Quote_StockContinuo(t *testing.T) {
	uc := usecase.NewPricingUseCase(pricing.Policy{MinOrder: pricing.MinOrderRaiseOnly, Stock: pricing.StockContinuous})

	out := uc.Quote(dto.QuoteRequest{IndividualItemQuantity: 100, MinSellingQuantity: 5, CurrentQuantity: intPtr(7)})
	assert.Equal(t, 20, *out.Quantity)

	out = uc.Quote(dto.QuoteRequest{IndividualItemQuantity: 3, MinSellingQuantity: 5, CurrentQuantity: intPtr(7)})
	assert.Equal(t, 0, *out.Quantity)
}

func TestPricingUseCase_Quote_DescuentoFijo(t *testing.T) {
	uc := usecase.NewPricingUseCase(pricing.DefaultPolicy())
	out := uc.Quote(dto.QuoteRequest{ItemSellingCost: amount(100), DiscountType: "fixed", DiscountValue: amount(15)})

	assert.True(t, out.FinalUnitPrice.Equal(amount(85)))
	assert.True(t, out.DiscountAmount.Equal(amount(15)))
	assert.True(t, out.PercentDiscount.IsZero())
}

func TestPricingUseCase_Quote_Advertencias(t *testing.T) {
	uc := usecase.NewPricingUseCase(pricing.Policy{MinOrder: pricing.MinOrderRaiseOnly, Stock: pricing.StockPrefillOnce})
	out := uc.Quote(dto.QuoteRequest{ItemCost: amount(12), ItemSellingCost: amount(10), MinSellingQuantity: 1})

	codes := make([]string, 0, len(out.Warnings))
	for _, w := range out.Warnings {
		codes = append(codes, w.Code)
	}
	assert.Contains(t, codes, pricing.WarnSellingBelowCost)
	assert.NotContains(t, codes, pricing.WarnMinOrderBelowFloor, "el valor mínimo se deriva y cubre el piso")
}

// ──────────────────────────────────────────────────────────────────────────────
// Classify
// ──────────────────────────────────────────────────────────────────────────────

func TestPricingUseCase_Classify_ProductoCartesiano(t *testing.T) {
	uc := usecase.NewPricingUseCase(pricing.DefaultPolicy())
	out, err := uc.Classify(dto.ClassifyRequest{
		HasAttributes: true,
		Attributes: []dto.AttributeRequest{
			{Name: "Color", Values: []string{"Rojo", "Azul"}},
			{Name: "Talla", Values: []string{"S", "M", ""}},
		},
	})
	require.NoError(t, err)

	assert.True(t, out.NeedsVariations)
	assert.True(t, out.AttributesConfigured)
	assert.Len(t, out.Combinations, 4)
	assert.ElementsMatch(t, []string{"productName", "category", "price"}, out.RequiredFields)
}

func TestPricingUseCase_Classify_UnaOpcionNoDivide(t *testing.T) {
	uc := usecase.NewPricingUseCase(pricing.DefaultPolicy())
	out, err := uc.Classify(dto.ClassifyRequest{
		HasAttributes: true,
		Attributes:    []dto.AttributeRequest{{Name: "Material", Values: []string{"Algodón"}}},
	})
	require.NoError(t, err)

	assert.False(t, out.NeedsVariations)
	assert.Empty(t, out.Combinations)
	assert.Len(t, out.RequiredFields, 10)
}

func TestPricingUseCase_Classify_DemasiadasCombinaciones(t *testing.T) {
	uc := usecase.NewPricingUseCase(pricing.DefaultPolicy())
	attrs := make([]dto.AttributeRequest, 0, 20)
	for i := 0; i < 20; i++ {
		attrs = append(attrs, dto.AttributeRequest{Name: fmt.Sprintf("A%d", i), Values: []string{"x", "y"}})
	}

	out, err := uc.Classify(dto.ClassifyRequest{HasAttributes: true, Attributes: attrs})
	assert.ErrorIs(t, err, form.ErrTooManyCombinations)
	assert.Nil(t, out)
}
