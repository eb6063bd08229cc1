package pricing

import "github.com/shopspring/decimal"

// Códigos de advertencia (no bloquean la edición).
const (
	WarnSellingBelowCost   = "SELLING_BELOW_COST"
	WarnMinOrderBelowFloor = "MIN_ORDER_BELOW_FLOOR"
)

// Warning advertencia de validación mostrada junto al campo.
type Warning struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Warnings calcula las advertencias de precio para un producto o variación.
// Solo se evalúan las reglas cuyos valores están presentes (> 0).
func Warnings(cost, sellingPrice, minOrderValue decimal.Decimal, minQty int) []Warning {
	var out []Warning
	if cost.IsPositive() && sellingPrice.IsPositive() && sellingPrice.LessThan(cost) {
		out = append(out, Warning{
			Code:    WarnSellingBelowCost,
			Field:   "itemSellingCost",
			Message: "el precio de venta es menor que el costo",
		})
	}
	if sellingPrice.IsPositive() && !IsMinOrderValueValid(minOrderValue, sellingPrice, minQty) {
		out = append(out, Warning{
			Code:    WarnMinOrderBelowFloor,
			Field:   "minOrderValue",
			Message: "el valor mínimo de pedido es menor que precio de venta × cantidad mínima (" + ComputeMinOrderValue(sellingPrice, minQty).String() + ")",
		})
	}
	return out
}
