package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemPricingResponse identificación y precios de un producto simple o una variante.
type ItemPricingResponse struct {
	SKU                    string          `json:"sku"`
	EAN                    string          `json:"ean"`
	PLUUPC                 string          `json:"plu_upc"`
	IndividualItemQuantity int             `json:"individual_item_quantity"`
	MinSellingQuantity     int             `json:"min_selling_quantity"`
	Quantity               int             `json:"quantity"`
	ItemCost               decimal.Decimal `json:"item_cost"`
	ItemSellingCost        decimal.Decimal `json:"item_selling_cost"`
	MSRP                   decimal.Decimal `json:"msrp"`
	MinOrderValue          decimal.Decimal `json:"min_order_value"`
	DiscountAmount         decimal.Decimal `json:"discount_amount"`
	PercentDiscount        decimal.Decimal `json:"percent_discount"`
}

// PackResponse paquete con su precio final ya descontado.
type PackResponse struct {
	ID                 string          `json:"id"`
	Quantity           int             `json:"quantity"`
	TotalPacksQuantity int             `json:"total_packs_quantity"`
	OrderedPacksPrice  decimal.Decimal `json:"ordered_packs_price"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	PercentDiscount    decimal.Decimal `json:"percent_discount"`
	FinalPrice         decimal.Decimal `json:"final_price"`
}

// VariantResponse variante de un producto.
type VariantResponse struct {
	ID         string            `json:"id"`
	Attributes map[string]string `json:"attributes"`
	ItemPricingResponse
	Packs []PackResponse `json:"packs"`
}

// AttributeResponse atributo de un producto con sus valores.
type AttributeResponse struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// ProductResponse salida de un producto con variantes y paquetes.
type ProductResponse struct {
	ID          string `json:"id"`
	StoreID     string `json:"store_id"`
	CategoryID  string `json:"category_id"`
	SupplierID  string `json:"supplier_id,omitempty"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Description string `json:"description"`
	ItemPricingResponse
	HasVariants bool                `json:"has_variants"`
	Attributes  []AttributeResponse `json:"attributes"`
	Variants    []VariantResponse   `json:"variants"`
	Packs       []PackResponse      `json:"packs"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ProductListResponse lista paginada de productos (sin variantes ni paquetes).
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
