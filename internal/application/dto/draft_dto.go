package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/product-pricing-api/internal/domain/form"
)

// CreateDraftRequest abre un borrador. ProductID no vacío = editar un producto existente.
type CreateDraftRequest struct {
	ProductID string `json:"product_id" validate:"omitempty,uuid"`
}

// SetFieldRequest cambio de un campo escalar. VariationID vacío = campo del producto.
type SetFieldRequest struct {
	Field       string `json:"field" validate:"required"`
	Value       string `json:"value"`
	VariationID string `json:"variation_id"`
}

// ToggleRequest activa o desactiva paquetes o atributos.
type ToggleRequest struct {
	Enabled bool `json:"enabled"`
}

// AttributeRequest alta de un atributo con sus valores iniciales.
type AttributeRequest struct {
	Name   string   `json:"name" validate:"max=80"`
	Values []string `json:"values" validate:"max=50,dive,max=80"`
}

// UpdateAttributeRequest cambios parciales. Values reemplaza todas las opciones.
type UpdateAttributeRequest struct {
	Name   *string   `json:"name" validate:"omitempty,max=80"`
	Values *[]string `json:"values" validate:"omitempty,max=50,dive,max=80"`
}

// OptionRequest valor de una opción de atributo.
type OptionRequest struct {
	Value string `json:"value" validate:"max=80"`
}

// PackRequest alta de un paquete. VariationID vacío = paquete del producto.
type PackRequest struct {
	VariationID        string          `json:"variation_id"`
	Quantity           int             `json:"quantity" validate:"min=0"`
	DiscountType       string          `json:"discount_type" validate:"omitempty,oneof=fixed percentage none"`
	DiscountValue      decimal.Decimal `json:"discount_value"`
	TotalPacksQuantity int             `json:"total_packs_quantity" validate:"min=0"`
}

// PackPatchRequest cambios parciales de un paquete.
type PackPatchRequest struct {
	VariationID        string           `json:"variation_id"`
	Quantity           *int             `json:"quantity" validate:"omitempty,min=1"`
	DiscountType       *string          `json:"discount_type" validate:"omitempty,oneof=fixed percentage none"`
	DiscountValue      *decimal.Decimal `json:"discount_value"`
	TotalPacksQuantity *int             `json:"total_packs_quantity" validate:"omitempty,min=0"`
	OrderedPacksPrice  *decimal.Decimal `json:"ordered_packs_price"`
}

// DraftResponse estado del borrador con todo lo que la página necesita para pintarse.
type DraftResponse struct {
	ID            string              `json:"id"`
	StoreID       string              `json:"store_id"`
	ProductID     string              `json:"product_id,omitempty"`
	Stage         form.Stage          `json:"stage"`
	Form          form.ProductForm    `json:"form"`
	Progress      int                 `json:"progress"`
	VariantMode   bool                `json:"variant_mode"`
	HideFields    bool                `json:"hide_fields"`
	CanNext       bool                `json:"can_next"`
	CanSubmit     bool                `json:"can_submit"`
	MissingFields []form.Field        `json:"missing_fields"`
	Warnings      []form.FieldWarning `json:"warnings"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// DraftSummary fila del listado de borradores.
type DraftSummary struct {
	ID          string     `json:"id"`
	ProductID   string     `json:"product_id,omitempty"`
	ProductName string     `json:"product_name"`
	Stage       form.Stage `json:"stage"`
	Progress    int        `json:"progress"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DraftListResponse borradores vigentes de la tienda.
type DraftListResponse struct {
	Items []DraftSummary `json:"items"`
}

// SubmitDraftResponse resultado del envío: borrador cerrado y producto persistido.
type SubmitDraftResponse struct {
	Draft   DraftResponse   `json:"draft"`
	Product ProductResponse `json:"product"`
}
