package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemPricing identificación, cantidades y precios que comparten el producto simple y cada variante.
// En un producto con variantes los valores del producto quedan en cero y viven en ProductVariant.
type ItemPricing struct {
	SKU                    string
	EAN                    string
	PLUUPC                 string
	IndividualItemQuantity int
	MinSellingQuantity     int
	Quantity               int             // stock vendible
	ItemCost               decimal.Decimal // costo unitario
	ItemSellingCost        decimal.Decimal // precio de venta unitario
	MSRP                   decimal.Decimal // precio de lista sugerido
	MinOrderValue          decimal.Decimal
	DiscountAmount         decimal.Decimal // descuento fijo (excluyente con PercentDiscount)
	PercentDiscount        decimal.Decimal
}

// Product producto del catálogo de una tienda.
type Product struct {
	ID          string
	StoreID     string
	CategoryID  string
	SupplierID  string // vacío si no tiene proveedor
	Name        string
	Brand       string
	Description string
	ItemPricing
	HasVariants bool
	Attributes  []ProductAttribute
	Variants    []ProductVariant
	Packs       []ProductPack // paquetes a nivel de producto (solo productos simples)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductAttribute atributo con sus valores (ej. Talla: S, M, L). Se guarda como JSONB.
type ProductAttribute struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// ProductVariant SKU concreto de un producto con variantes.
type ProductVariant struct {
	ID         string
	ProductID  string
	Attributes map[string]string // combinación nombre → valor
	ItemPricing
	Packs     []ProductPack
	CreatedAt time.Time
}

// ProductPack paquete/caja de N unidades con su propio descuento.
type ProductPack struct {
	ID                 string
	ProductID          string
	VariantID          string // vacío para paquetes del producto
	Quantity           int
	TotalPacksQuantity int
	OrderedPacksPrice  decimal.Decimal
	DiscountAmount     decimal.Decimal
	PercentDiscount    decimal.Decimal
}

// PackCount total de paquetes del producto y de sus variantes.
func (p *Product) PackCount() int {
	n := len(p.Packs)
	for _, v := range p.Variants {
		n += len(v.Packs)
	}
	return n
}
