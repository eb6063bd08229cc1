package usecase

import (
	"strconv"

	"github.com/jhoicas/product-pricing-api/internal/application/dto"
	"github.com/jhoicas/product-pricing-api/internal/domain/form"
	"github.com/jhoicas/product-pricing-api/internal/domain/pricing"
)

// PricingUseCase cotización y clasificación sin estado: no persiste nada.
type PricingUseCase struct {
	policy pricing.Policy
}

// NewPricingUseCase construye el caso de uso con las políticas de recálculo configuradas.
func NewPricingUseCase(policy pricing.Policy) *PricingUseCase {
	return &PricingUseCase{policy: policy}
}

// Quote deriva valor mínimo de pedido, stock, precios de paquete y advertencias
// aplicando las mismas reglas que el editor de borradores.
func (uc *PricingUseCase) Quote(in dto.QuoteRequest) *dto.QuoteResponse {
	price := in.ItemSellingCost
	out := &dto.QuoteResponse{
		MinOrderValue:      in.CurrentMinOrderValue,
		MinOrderValueFloor: pricing.ComputeMinOrderValue(price, in.MinSellingQuantity),
		Quantity:           in.CurrentQuantity,
		Packs:              make([]dto.QuotePackResponse, 0, len(in.Packs)),
		Warnings:           []pricing.Warning{},
	}

	if price.IsPositive() {
		out.MinOrderValue, _ = pricing.DeriveMinOrderValue(uc.policy.MinOrder, in.CurrentMinOrderValue, price, in.MinSellingQuantity)
	}
	out.MinOrderValueValid = pricing.IsMinOrderValueValid(out.MinOrderValue, price, in.MinSellingQuantity)

	if pricing.ShouldDeriveStock(uc.policy.Stock, in.CurrentQuantity == nil, in.IndividualItemQuantity, in.MinSellingQuantity) {
		stock := pricing.ComputeStockQuantity(in.IndividualItemQuantity, in.MinSellingQuantity)
		if stock > 0 || uc.policy.Stock == pricing.StockContinuous {
			out.Quantity = &stock
		}
	}

	dt := pricing.ParseDiscountType(in.DiscountType)
	out.FinalUnitPrice = pricing.ApplyDiscount(price, dt, in.DiscountValue)
	out.DiscountAmount, out.PercentDiscount = pricing.DiscountSplit(dt, in.DiscountValue)

	for _, pk := range in.Packs {
		pdt := pricing.ParseDiscountType(pk.DiscountType)
		amount, percent := pricing.DiscountSplit(pdt, pk.DiscountValue)
		out.Packs = append(out.Packs, dto.QuotePackResponse{
			Quantity:          pk.Quantity,
			OrderedPacksPrice: pricing.ComputePackPrice(pk.Quantity, price),
			FinalPrice:        pricing.FinalPackPrice(pk.Quantity, price, pdt, pk.DiscountValue),
			DiscountAmount:    amount,
			PercentDiscount:   percent,
		})
	}

	out.Warnings = append(out.Warnings, pricing.Warnings(in.ItemCost, price, out.MinOrderValue, in.MinSellingQuantity)...)
	return out
}

// Classify decide si una lista de atributos obliga a dividir el producto en variaciones
// y devuelve las combinaciones resultantes. Demasiadas combinaciones → form.ErrTooManyCombinations.
func (uc *PricingUseCase) Classify(in dto.ClassifyRequest) (*dto.ClassifyResponse, error) {
	attrs := make([]form.Attribute, 0, len(in.Attributes))
	for i, a := range in.Attributes {
		attr := form.Attribute{ID: strconv.Itoa(i), Name: a.Name, Options: make([]form.AttributeOption, 0, len(a.Values))}
		for j, v := range a.Values {
			attr.Options = append(attr.Options, form.AttributeOption{ID: strconv.Itoa(i) + "-" + strconv.Itoa(j), Value: v})
		}
		attrs = append(attrs, attr)
	}

	needs := form.NeedsVariations(in.HasAttributes, attrs)
	out := &dto.ClassifyResponse{
		NeedsVariations:      needs,
		AttributesConfigured: form.AttributesConfigured(in.HasAttributes, attrs),
		Combinations:         []map[string]string{},
		RequiredFields:       []string{},
	}
	if needs {
		combos, err := form.ExpandCombinations(attrs)
		if err != nil {
			return nil, err
		}
		out.Combinations = append(out.Combinations, combos...)
	}
	for _, f := range form.RequiredFields(needs) {
		out.RequiredFields = append(out.RequiredFields, string(f))
	}
	return out, nil
}
