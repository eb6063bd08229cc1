package pricing

import "github.com/shopspring/decimal"

// MinOrderPolicy define cuándo el derivador de valor mínimo de pedido sobrescribe el valor guardado.
type MinOrderPolicy string

const (
	// MinOrderOverwrite siempre guarda el candidato cuando cambian las entradas.
	MinOrderOverwrite MinOrderPolicy = "overwrite"
	// MinOrderRaiseOnly solo guarda el candidato si el valor actual es menor (nunca baja un valor subido a mano).
	MinOrderRaiseOnly MinOrderPolicy = "raise_only"
)

// StockPolicy define cuándo se deriva la cantidad en stock.
type StockPolicy string

const (
	// StockPrefillOnce llena el stock solo mientras el campo esté vacío.
	StockPrefillOnce StockPolicy = "prefill_once"
	// StockContinuous recalcula el stock en cada cambio de cualquiera de las entradas.
	StockContinuous  StockPolicy = "continuous"
)

// Policy agrupa las políticas de recálculo del motor.
type Policy struct {
	MinOrder MinOrderPolicy
	Stock    StockPolicy
}

// DefaultPolicy raise_only + prefill_once.
func DefaultPolicy() Policy {
	return Policy{MinOrder: MinOrderRaiseOnly, Stock: StockPrefillOnce}
}

// ParseMinOrderPolicy devuelve la política indicada o raise_only si es desconocida.
func ParseMinOrderPolicy(s string) MinOrderPolicy {
	if MinOrderPolicy(s) == MinOrderOverwrite {
		return MinOrderOverwrite
	}
	return MinOrderRaiseOnly
}

// ParseStockPolicy devuelve la política indicada o prefill_once si es desconocida.
func ParseStockPolicy(s string) StockPolicy {
	if StockPolicy(s) == StockContinuous {
		return StockContinuous
	}
	return StockPrefillOnce
}

// normalizeMinQty: cantidad mínima de venta < 1 se trata como 1.
func normalizeMinQty(minQty int) int {
	if minQty < 1 {
		return 1
	}
	return minQty
}

// ComputeMinOrderValue valor mínimo de pedido = precio de venta unitario × cantidad mínima de venta.
func ComputeMinOrderValue(sellingPrice decimal.Decimal, minQty int) decimal.Decimal {
	return sellingPrice.Mul(decimal.NewFromInt(int64(normalizeMinQty(minQty))))
}

// IsMinOrderValueValid indica si el valor actual cubre el piso calculado. Solo alimenta una advertencia.
func IsMinOrderValueValid(current, sellingPrice decimal.Decimal, minQty int) bool {
	return current.GreaterThanOrEqual(ComputeMinOrderValue(sellingPrice, minQty))
}

// DeriveMinOrderValue aplica la política y devuelve el siguiente valor y si cambió.
func DeriveMinOrderValue(policy MinOrderPolicy, current, sellingPrice decimal.Decimal, minQty int) (decimal.Decimal, bool) {
	candidate := ComputeMinOrderValue(sellingPrice, minQty)
	if policy == MinOrderOverwrite {
		return candidate, !candidate.Equal(current)
	}
	if current.LessThan(candidate) {
		return candidate, true
	}
	return current, false
}

// ComputePackPrice precio de un paquete = cantidad del paquete × precio de venta unitario.
func ComputePackPrice(packQty int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(packQty)))
}

// FinalPackPrice precio mostrado del paquete tras su descuento. Es solo de presentación:
// no debe guardarse sobre OrderedPacksPrice.
func FinalPackPrice(packQty int, unitPrice decimal.Decimal, t DiscountType, value decimal.Decimal) decimal.Decimal {
	return ApplyDiscount(ComputePackPrice(packQty, unitPrice), t, value)
}

// ComputeStockQuantity unidades vendibles = floor(cantidad individual / cantidad mínima de venta).
// Un divisor <= 0 se trata como 1.
func ComputeStockQuantity(individualQty, minQty int) int {
	d := normalizeMinQty(minQty)
	q := individualQty / d
	if individualQty%d != 0 && individualQty < 0 {
		q--
	}
	return q
}

// ShouldDeriveStock decide si el stock se recalcula según la política.
// Ambas entradas deben ser positivas; con prefill_once además el stock debe estar vacío.
func ShouldDeriveStock(policy StockPolicy, stockEmpty bool, individualQty, minQty int) bool {
	if individualQty <= 0 || minQty <= 0 {
		return false
	}
	if policy == StockContinuous {
		return true
	}
	return stockEmpty
}
