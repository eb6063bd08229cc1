package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/product-pricing-api/internal/domain/pricing"
)

// QuotePackRequest paquete a cotizar.
type QuotePackRequest struct {
	Quantity      int             `json:"quantity" validate:"min=1"`
	DiscountType  string          `json:"discount_type" validate:"omitempty,oneof=fixed percentage none"`
	DiscountValue decimal.Decimal `json:"discount_value"`
}

// QuoteRequest entradas de precio de un producto o variación.
// CurrentMinOrderValue y CurrentQuantity son los valores ya cargados, si los hay.
type QuoteRequest struct {
	ItemCost               decimal.Decimal    `json:"item_cost"`
	ItemSellingCost        decimal.Decimal    `json:"item_selling_cost"`
	MinSellingQuantity     int                `json:"min_selling_quantity" validate:"min=0"`
	IndividualItemQuantity int                `json:"individual_item_quantity" validate:"min=0"`
	CurrentMinOrderValue   decimal.Decimal    `json:"current_min_order_value"`
	CurrentQuantity        *int               `json:"current_quantity" validate:"omitempty,min=0"`
	DiscountType           string             `json:"discount_type" validate:"omitempty,oneof=fixed percentage none"`
	DiscountValue          decimal.Decimal    `json:"discount_value"`
	Packs                  []QuotePackRequest `json:"packs" validate:"dive"`
}

// QuotePackResponse precios derivados de un paquete.
type QuotePackResponse struct {
	Quantity          int             `json:"quantity"`
	OrderedPacksPrice decimal.Decimal `json:"ordered_packs_price"`
	FinalPrice        decimal.Decimal `json:"final_price"`
	DiscountAmount    decimal.Decimal `json:"discount_amount"`
	PercentDiscount   decimal.Decimal `json:"percent_discount"`
}

// QuoteResponse valores derivados. Quantity es nil cuando la política no deriva el stock.
type QuoteResponse struct {
	MinOrderValue      decimal.Decimal     `json:"min_order_value"`
	MinOrderValueFloor decimal.Decimal     `json:"min_order_value_floor"`
	MinOrderValueValid bool                `json:"min_order_value_valid"`
	Quantity           *int                `json:"quantity"`
	FinalUnitPrice     decimal.Decimal     `json:"final_unit_price"`
	DiscountAmount     decimal.Decimal     `json:"discount_amount"`
	PercentDiscount    decimal.Decimal     `json:"percent_discount"`
	Packs              []QuotePackResponse `json:"packs"`
	Warnings           []pricing.Warning   `json:"warnings"`
}

// ClassifyRequest lista de atributos a clasificar.
type ClassifyRequest struct {
	HasAttributes bool               `json:"has_attributes"`
	Attributes    []AttributeRequest `json:"attributes" validate:"max=10,dive"`
}

// ClassifyResponse resultado de la clasificación atributo → variación.
type ClassifyResponse struct {
	NeedsVariations      bool                `json:"needs_variations"`
	AttributesConfigured bool                `json:"attributes_configured"`
	Combinations         []map[string]string `json:"combinations"`
	RequiredFields       []string            `json:"required_fields"`
}
