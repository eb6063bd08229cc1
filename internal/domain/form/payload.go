package form

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/product-pricing-api/internal/domain/pricing"
)

// ProductSubmission forma del producto que se envía a la API (submitProduct).
// En modo variaciones los campos planos de precio/identificación van en cero y la
// información concreta viaja en Variants.
type ProductSubmission struct {
	Name                   string             `json:"name" validate:"required,min=1,max=200"`
	CategoryID             string             `json:"category_id" validate:"required"`
	Brand                  string             `json:"brand" validate:"max=120"`
	SupplierID             string             `json:"supplier_id"`
	Description            string             `json:"description"`
	CustomSKU              string             `json:"custom_sku" validate:"max=100"`
	EAN                    string             `json:"ean" validate:"max=20"`
	PLUUPC                 string             `json:"plu_upc" validate:"max=20"`
	IndividualItemQuantity int                `json:"individual_item_quantity" validate:"min=0"`
	MinSellingQuantity     int                `json:"min_selling_quantity" validate:"min=0"`
	Quantity               int                `json:"quantity" validate:"min=0"`
	ItemCost               decimal.Decimal    `json:"item_cost" validate:"gte=0"`
	ItemSellingCost        decimal.Decimal    `json:"item_selling_cost" validate:"gte=0"`
	MSRP                   decimal.Decimal    `json:"msrp" validate:"gte=0"`
	MinOrderValue          decimal.Decimal    `json:"min_order_value" validate:"gte=0"`
	DiscountAmount         decimal.Decimal    `json:"discount_amount"`
	PercentDiscount        decimal.Decimal    `json:"percent_discount"`
	HasVariants            bool               `json:"has_variants"`
	Attributes             []AttributePayload `json:"attributes" validate:"dive"`
	Packs                  []PackPayload      `json:"packs" validate:"dive"`
	Variants               []VariantPayload   `json:"variants" validate:"dive"`
}

// AttributePayload atributo con sus valores no vacíos.
type AttributePayload struct {
	Name   string   `json:"name" validate:"required"`
	Values []string `json:"values"`
}

// PackPayload paquete en el payload. El descuento se reparte en uno solo de los dos campos.
type PackPayload struct {
	Quantity           int             `json:"quantity" validate:"min=1"`
	TotalPacksQuantity int             `json:"total_packs_quantity" validate:"min=0"`
	OrderedPacksPrice  decimal.Decimal `json:"ordered_packs_price" validate:"gte=0"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	PercentDiscount    decimal.Decimal `json:"percent_discount"`
}

// VariantPayload una variación con sus propios campos y paquetes.
type VariantPayload struct {
	Attributes             map[string]string `json:"attributes"`
	CustomSKU              string            `json:"custom_sku" validate:"max=100"`
	EAN                    string            `json:"ean" validate:"max=20"`
	PLUUPC                 string            `json:"plu_upc" validate:"max=20"`
	IndividualItemQuantity int               `json:"individual_item_quantity" validate:"min=0"`
	MinSellingQuantity     int               `json:"min_selling_quantity" validate:"min=0"`
	Quantity               int               `json:"quantity" validate:"min=0"`
	ItemCost               decimal.Decimal   `json:"item_cost" validate:"gte=0"`
	ItemSellingCost        decimal.Decimal   `json:"item_selling_cost" validate:"gte=0"`
	MSRP                   decimal.Decimal   `json:"msrp" validate:"gte=0"`
	MinOrderValue          decimal.Decimal   `json:"min_order_value" validate:"gte=0"`
	DiscountAmount         decimal.Decimal   `json:"discount_amount"`
	PercentDiscount        decimal.Decimal   `json:"percent_discount"`
	Packs                  []PackPayload     `json:"packs" validate:"dive"`
}

// BuildPayload transforma el formulario al payload de la API. No falla: los números
// ausentes quedan en 0 y los textos en "".
func BuildPayload(f *ProductForm, variantMode bool) ProductSubmission {
	out := ProductSubmission{
		Name:        strings.TrimSpace(f.ProductName),
		CategoryID:  strings.TrimSpace(f.Category),
		Brand:       strings.TrimSpace(f.Brand),
		SupplierID:  strings.TrimSpace(f.Supplier),
		Description: f.Description,
		HasVariants: variantMode,
		Attributes:  attributesPayload(f),
		Packs:       []PackPayload{},
		Variants:    []VariantPayload{},
	}
	if variantMode {
		for i := range f.Variations {
			out.Variants = append(out.Variants, variantPayload(&f.Variations[i], f.HasPacks))
		}
		return out
	}
	pf := &f.PricingFields
	out.CustomSKU = strings.TrimSpace(pf.CustomSKU)
	out.EAN = strings.TrimSpace(pf.EAN)
	out.PLUUPC = strings.TrimSpace(pf.PLUUPC)
	out.IndividualItemQuantity = pricing.ParseQuantity(pf.IndividualItemQuantity)
	out.MinSellingQuantity = pricing.ParseQuantity(pf.MinSellingQuantity)
	out.Quantity = pricing.ParseQuantity(pf.Quantity)
	out.ItemCost = pricing.ParseAmount(pf.ItemCost)
	out.ItemSellingCost = pricing.ParseAmount(pf.ItemSellingCost)
	out.MSRP = pricing.ParseAmount(pf.Price)
	out.MinOrderValue = pricing.ParseAmount(pf.MinOrderValue)
	out.DiscountAmount, out.PercentDiscount = pricing.DiscountSplit(pf.DiscountType, pricing.ParseAmount(pf.DiscountValue))
	if f.HasPacks {
		out.Packs = packsPayload(pf)
	}
	return out
}

func attributesPayload(f *ProductForm) []AttributePayload {
	out := []AttributePayload{}
	if !f.HasAttributes {
		return out
	}
	for _, a := range f.Attributes {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			continue
		}
		out = append(out, AttributePayload{Name: name, Values: nonEmptyValues(a)})
	}
	return out
}

func variantPayload(v *Variation, withPacks bool) VariantPayload {
	pf := &v.PricingFields
	attrs := make(map[string]string, len(v.AttributeCombination))
	for k, val := range v.AttributeCombination {
		attrs[k] = val
	}
	vp := VariantPayload{
		Attributes:             attrs,
		CustomSKU:              strings.TrimSpace(pf.CustomSKU),
		EAN:                    strings.TrimSpace(pf.EAN),
		PLUUPC:                 strings.TrimSpace(pf.PLUUPC),
		IndividualItemQuantity: pricing.ParseQuantity(pf.IndividualItemQuantity),
		MinSellingQuantity:     pricing.ParseQuantity(pf.MinSellingQuantity),
		Quantity:               pricing.ParseQuantity(pf.Quantity),
		ItemCost:               pricing.ParseAmount(pf.ItemCost),
		ItemSellingCost:        pricing.ParseAmount(pf.ItemSellingCost),
		MSRP:                   pricing.ParseAmount(pf.Price),
		MinOrderValue:          pricing.ParseAmount(pf.MinOrderValue),
		Packs:                  []PackPayload{},
	}
	vp.DiscountAmount, vp.PercentDiscount = pricing.DiscountSplit(pf.DiscountType, pricing.ParseAmount(pf.DiscountValue))
	if withPacks {
		vp.Packs = packsPayload(pf)
	}
	return vp
}

// packsPayload usa el precio guardado del paquete; si está en cero lo recalcula con el
// precio unitario del padre.
func packsPayload(pf *PricingFields) []PackPayload {
	unit := pf.unitPrice()
	out := make([]PackPayload, 0, len(pf.Packs))
	for _, pk := range pf.Packs {
		price := pk.OrderedPacksPrice
		if price.IsZero() {
			price = pricing.ComputePackPrice(pk.Quantity, unit)
		}
		amount, pct := pricing.DiscountSplit(pk.DiscountType, pk.DiscountValue)
		out = append(out, PackPayload{
			Quantity:           pk.Quantity,
			TotalPacksQuantity: pk.TotalPacksQuantity,
			OrderedPacksPrice:  price,
			DiscountAmount:     amount,
			PercentDiscount:    pct,
		})
	}
	return out
}

// FromPayload adaptador inverso: arma un formulario a partir de la representación de un
// producto existente (flujo de actualización).
func FromPayload(p ProductSubmission, newID func() string) ProductForm {
	f := ProductForm{
		ProductName: p.Name,
		Category:    p.CategoryID,
		Brand:       p.Brand,
		Supplier:    p.SupplierID,
		Description: p.Description,
		Attributes:  []Attribute{},
		Variations:  []Variation{},
	}
	for _, a := range p.Attributes {
		attr := Attribute{ID: newID(), Name: a.Name, Options: []AttributeOption{}}
		for _, v := range a.Values {
			attr.Options = append(attr.Options, AttributeOption{ID: newID(), Value: v})
		}
		f.Attributes = append(f.Attributes, attr)
	}
	f.HasAttributes = len(f.Attributes) > 0

	if p.HasVariants {
		for _, vp := range p.Variants {
			v := Variation{ID: newID(), AttributeCombination: map[string]string{}}
			for k, val := range vp.Attributes {
				v.AttributeCombination[k] = val
			}
			v.PricingFields = pricingFromPayload(vp.CustomSKU, vp.EAN, vp.PLUUPC,
				vp.IndividualItemQuantity, vp.MinSellingQuantity, vp.Quantity,
				vp.ItemCost, vp.ItemSellingCost, vp.MSRP, vp.MinOrderValue,
				vp.DiscountAmount, vp.PercentDiscount, vp.Packs, newID)
			if len(v.Packs) > 0 {
				f.HasPacks = true
			}
			f.Variations = append(f.Variations, v)
		}
		f.PricingFields.Packs = []PackDiscount{}
		return f
	}
	f.PricingFields = pricingFromPayload(p.CustomSKU, p.EAN, p.PLUUPC,
		p.IndividualItemQuantity, p.MinSellingQuantity, p.Quantity,
		p.ItemCost, p.ItemSellingCost, p.MSRP, p.MinOrderValue,
		p.DiscountAmount, p.PercentDiscount, p.Packs, newID)
	f.HasPacks = len(f.Packs) > 0
	return f
}

func pricingFromPayload(
	sku, ean, plu string,
	individual, minQty, qty int,
	cost, selling, msrp, mov, discountAmount, percentDiscount decimal.Decimal,
	packs []PackPayload, newID func() string,
) PricingFields {
	pf := PricingFields{
		CustomSKU:              sku,
		EAN:                    ean,
		PLUUPC:                 plu,
		IndividualItemQuantity: intString(individual),
		MinSellingQuantity:     intString(minQty),
		Quantity:               intString(qty),
		ItemCost:               amountString(cost),
		ItemSellingCost:        amountString(selling),
		Price:                  amountString(msrp),
		MinOrderValue:          amountString(mov),
		Packs:                  []PackDiscount{},
	}
	pf.DiscountType, pf.DiscountValue = discountFromSplit(discountAmount, percentDiscount)
	for _, pk := range packs {
		t, v := discountFromSplit(pk.DiscountAmount, pk.PercentDiscount)
		pf.Packs = append(pf.Packs, PackDiscount{
			ID:                 newID(),
			Quantity:           pk.Quantity,
			DiscountType:       t,
			DiscountValue:      pricing.ParseAmount(v),
			TotalPacksQuantity: pk.TotalPacksQuantity,
			OrderedPacksPrice:  pk.OrderedPacksPrice,
		})
	}
	return pf
}

func discountFromSplit(amount, percent decimal.Decimal) (pricing.DiscountType, string) {
	switch {
	case !percent.IsZero():
		return pricing.DiscountPercentage, percent.String()
	case !amount.IsZero():
		return pricing.DiscountFixed, amount.String()
	default:
		return pricing.DiscountNone, ""
	}
}

// intString y amountString dejan el campo vacío cuando el valor es cero.
func intString(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func amountString(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
