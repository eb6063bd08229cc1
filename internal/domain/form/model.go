// Package form modela el borrador de un producto (simple o con variaciones) y las
// reglas que derivan precios, stock y avance a medida que el usuario edita campos.
package form

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/product-pricing-api/internal/domain/pricing"
)

// Field identifica un campo escalar del formulario. Es un conjunto cerrado: SetField
// rechaza cualquier valor fuera de esta lista.
type Field string

const (
	FieldProductName Field = "productName"
	FieldCategory    Field = "category"
	FieldBrand       Field = "brand"
	FieldSupplier    Field = "supplier"
	FieldDescription Field = "description"

	FieldCustomSKU              Field = "customSku"
	FieldEAN                    Field = "ean"
	FieldPLUUPC                 Field = "pluUpc"
	FieldIndividualItemQuantity Field = "individualItemQuantity"
	FieldMinSellingQuantity     Field = "minSellingQuantity"
	FieldQuantity               Field = "quantity"
	FieldItemCost               Field = "itemCost"
	FieldItemSellingCost        Field = "itemSellingCost"
	FieldPrice                  Field = "price"
	FieldMinOrderValue          Field = "minOrderValue"
	FieldDiscountType           Field = "discountType"
	FieldDiscountValue          Field = "discountValue"
)

// PricingFields campos de identificación, cantidades y precios que comparten el producto
// simple y cada variación. Los valores escalares se guardan como los escribió el usuario.
type PricingFields struct {
	CustomSKU              string               `json:"customSku"`
	EAN                    string               `json:"ean"`
	PLUUPC                 string               `json:"pluUpc"`
	IndividualItemQuantity string               `json:"individualItemQuantity"`
	MinSellingQuantity     string               `json:"minSellingQuantity"`
	Quantity               string               `json:"quantity"` // stock
	ItemCost               string               `json:"itemCost"`
	ItemSellingCost        string               `json:"itemSellingCost"` // precio de venta unitario
	Price                  string               `json:"price"`           // MSRP / precio de lista
	MinOrderValue          string               `json:"minOrderValue"`
	DiscountType           pricing.DiscountType `json:"discountType"`
	DiscountValue          string               `json:"discountValue"`
	Packs                  []PackDiscount       `json:"packs"`
}

// PackDiscount paquete/caja de N unidades vendido como una unidad, con su propio descuento.
// OrderedPacksPrice = Quantity × precio de venta unitario del padre (antes del descuento).
type PackDiscount struct {
	ID                 string               `json:"id"`
	Quantity           int                  `json:"quantity"`
	DiscountType       pricing.DiscountType `json:"discountType"`
	DiscountValue      decimal.Decimal      `json:"discountValue"`
	TotalPacksQuantity int                  `json:"totalPacksQuantity"`
	OrderedPacksPrice  decimal.Decimal      `json:"orderedPacksPrice"`
}

// AttributeOption valor posible de un atributo.
type AttributeOption struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Attribute atributo del producto (ej. Talla: S, M, L).
type Attribute struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Options []AttributeOption `json:"options"`
}

// DiscountTier descuento por volumen. Se conserva en el modelo pero ningún flujo activo lo usa.
type DiscountTier struct {
	ID            string               `json:"id"`
	MinQuantity   int                  `json:"minQuantity"`
	DiscountValue decimal.Decimal      `json:"discountValue"`
	DiscountType  pricing.DiscountType `json:"discountType"`
}

// Variation SKU concreto que resulta de una combinación de valores de atributos.
type Variation struct {
	ID                   string            `json:"id"`
	AttributeCombination map[string]string `json:"attributeCombination"`
	PricingFields
}

// ProductForm estado de edición de un producto.
type ProductForm struct {
	ProductName string `json:"productName"`
	Category    string `json:"category"` // ID de la categoría
	Brand       string `json:"brand"`
	Supplier    string `json:"supplier"` // ID del proveedor
	Description string `json:"description"`
	PricingFields
	HasPacks      bool           `json:"hasPacks"`
	HasAttributes bool           `json:"hasAttributes"`
	Attributes    []Attribute    `json:"attributes"`
	Variations    []Variation    `json:"variations"`
	DiscountTiers []DiscountTier `json:"discountTiers,omitempty"`
}

// Stage etapa de la página de edición.
type Stage string

const (
	StageBasicInfo  Stage = "basic_info"
	StageVariations Stage = "variations"
	StageSubmitted  Stage = "submitted"
)

// Draft sesión de edición de un producto. ProductID no vacío indica flujo de actualización.
type Draft struct {
	ID        string      `json:"id"`
	StoreID   string      `json:"store_id"`
	ProductID string      `json:"product_id,omitempty"`
	Stage     Stage       `json:"stage"`
	Form      ProductForm `json:"form"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (p *PricingFields) unitPrice() decimal.Decimal {
	return pricing.ParseAmount(p.ItemSellingCost)
}

func (p *PricingFields) minQty() int {
	return pricing.ParseQuantity(p.MinSellingQuantity)
}

// get devuelve el valor de un campo de precios; ok=false si el campo no pertenece a PricingFields.
func (p *PricingFields) get(f Field) (string, bool) {
	switch f {
	case FieldCustomSKU:
		return p.CustomSKU, true
	case FieldEAN:
		return p.EAN, true
	case FieldPLUUPC:
		return p.PLUUPC, true
	case FieldIndividualItemQuantity:
		return p.IndividualItemQuantity, true
	case FieldMinSellingQuantity:
		return p.MinSellingQuantity, true
	case FieldQuantity:
		return p.Quantity, true
	case FieldItemCost:
		return p.ItemCost, true
	case FieldItemSellingCost:
		return p.ItemSellingCost, true
	case FieldPrice:
		return p.Price, true
	case FieldMinOrderValue:
		return p.MinOrderValue, true
	case FieldDiscountType:
		return string(p.DiscountType), true
	case FieldDiscountValue:
		return p.DiscountValue, true
	}
	return "", false
}

func (p *PricingFields) set(f Field, v string) bool {
	switch f {
	case FieldCustomSKU:
		p.CustomSKU = v
	case FieldEAN:
		p.EAN = v
	case FieldPLUUPC:
		p.PLUUPC = v
	case FieldIndividualItemQuantity:
		p.IndividualItemQuantity = v
	case FieldMinSellingQuantity:
		p.MinSellingQuantity = v
	case FieldQuantity:
		p.Quantity = v
	case FieldItemCost:
		p.ItemCost = v
	case FieldItemSellingCost:
		p.ItemSellingCost = v
	case FieldPrice:
		p.Price = v
	case FieldMinOrderValue:
		p.MinOrderValue = v
	case FieldDiscountType:
		p.DiscountType = pricing.ParseDiscountType(v)
	case FieldDiscountValue:
		p.DiscountValue = v
	default:
		return false
	}
	return true
}

// Get devuelve el valor actual de cualquier campo escalar del formulario.
func (f *ProductForm) Get(field Field) (string, bool) {
	switch field {
	case FieldProductName:
		return f.ProductName, true
	case FieldCategory:
		return f.Category, true
	case FieldBrand:
		return f.Brand, true
	case FieldSupplier:
		return f.Supplier, true
	case FieldDescription:
		return f.Description, true
	}
	return f.PricingFields.get(field)
}

// clonePricing copia profunda (los paquetes reciben IDs nuevos vía newID).
func clonePricing(src PricingFields, newID func() string) PricingFields {
	out := src
	out.Packs = make([]PackDiscount, 0, len(src.Packs))
	for _, pk := range src.Packs {
		pk.ID = newID()
		out.Packs = append(out.Packs, pk)
	}
	return out
}
