package form

import (
	"math"
	"strings"
)

var variantRequired = []Field{FieldProductName, FieldCategory, FieldPrice}

var simpleRequired = []Field{
	FieldProductName, FieldCategory, FieldPrice, FieldPLUUPC, FieldIndividualItemQuantity,
	FieldItemCost, FieldItemSellingCost, FieldMinSellingQuantity, FieldMinOrderValue, FieldQuantity,
}

// RequiredFields campos obligatorios según el modo.
func RequiredFields(variantMode bool) []Field {
	if variantMode {
		return append([]Field(nil), variantRequired...)
	}
	return append([]Field(nil), simpleRequired...)
}

func filled(f *ProductForm, field Field) bool {
	v, _ := f.Get(field)
	return strings.TrimSpace(v) != ""
}

// ComputeProgress porcentaje de avance (0-100) sobre los campos obligatorios.
// En modo variaciones se suma un pseudo-campo: atributos correctamente configurados.
// Es un indicador para habilitar Siguiente/Enviar, no una validación.
func ComputeProgress(f *ProductForm, variantMode bool) int {
	required := RequiredFields(variantMode)
	count := 0
	for _, field := range required {
		if filled(f, field) {
			count++
		}
	}
	total := len(required)
	if variantMode {
		total++
		if AttributesConfigured(f.HasAttributes, f.Attributes) {
			count++
		}
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

// MissingFields campos obligatorios vacíos (para mostrar al usuario qué falta).
func MissingFields(f *ProductForm, variantMode bool) []Field {
	var out []Field
	for _, field := range RequiredFields(variantMode) {
		if !filled(f, field) {
			out = append(out, field)
		}
	}
	return out
}
