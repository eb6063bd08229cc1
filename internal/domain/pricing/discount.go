package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DiscountType tipo de descuento aplicable a un pedido o a un paquete.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
	DiscountNone       DiscountType = "none"
)

var hundred = decimal.NewFromInt(100)

// ParseDiscountType normaliza la entrada del formulario. Cualquier valor desconocido se trata como "none".
func ParseDiscountType(s string) DiscountType {
	switch DiscountType(strings.ToLower(strings.TrimSpace(s))) {
	case DiscountPercentage:
		return DiscountPercentage
	case DiscountFixed:
		return DiscountFixed
	default:
		return DiscountNone
	}
}

// ApplyDiscount devuelve el monto base menos el descuento.
// percentage: base - base*value/100; fixed: base - value; none: base.
// No se valida el rango ni se redondea: valores fuera de [0,100] o mayores que la base
// producen resultados negativos o inflados y se propagan tal cual.
func ApplyDiscount(base decimal.Decimal, t DiscountType, value decimal.Decimal) decimal.Decimal {
	switch ParseDiscountType(string(t)) {
	case DiscountPercentage:
		return base.Sub(base.Mul(value).Div(hundred))
	case DiscountFixed:
		return base.Sub(value)
	default:
		return base
	}
}

// DiscountSplit reparte un único valor de descuento en los dos campos del payload
// (discount_amount, percent_discount). Nunca se llenan ambos.
func DiscountSplit(t DiscountType, value decimal.Decimal) (discountAmount, percentDiscount decimal.Decimal) {
	switch ParseDiscountType(string(t)) {
	case DiscountPercentage:
		return decimal.Zero, value
	case DiscountFixed:
		return value, decimal.Zero
	default:
		return decimal.Zero, decimal.Zero
	}
}
