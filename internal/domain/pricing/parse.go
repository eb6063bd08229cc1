package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount convierte la entrada del formulario a decimal. Vacío o inválido → 0.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseQuantity convierte la entrada a entero (se trunca la parte decimal). Vacío o inválido → 0.
func ParseQuantity(s string) int {
	return int(ParseAmount(s).IntPart())
}

// FormatAmount representación usada al escribir un valor derivado de vuelta en el formulario.
func FormatAmount(d decimal.Decimal) string {
	return d.String()
}
