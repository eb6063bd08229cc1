package form

import (
	"encoding/json"
	"sort"
	"strings"
)

// nonEmptyValues devuelve los valores de opción no vacíos (trim), en orden.
func nonEmptyValues(a Attribute) []string {
	out := make([]string, 0, len(a.Options))
	for _, o := range a.Options {
		if v := strings.TrimSpace(o.Value); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// NeedsVariations indica si el producto debe dividirse en variaciones: atributos habilitados
// y al menos un atributo con más de una opción no vacía. Un atributo de un solo valor es metadato.
func NeedsVariations(hasAttributes bool, attributes []Attribute) bool {
	if !hasAttributes || len(attributes) == 0 {
		return false
	}
	for _, a := range attributes {
		if len(nonEmptyValues(a)) > 1 {
			return true
		}
	}
	return false
}

// ShouldHideFields oculta los campos secundarios del formulario principal mientras el producto
// requiere variaciones y el usuario aún no pasó al paso de variaciones.
func ShouldHideFields(hasAttributes bool, attributes []Attribute, variationsStepActive bool) bool {
	return NeedsVariations(hasAttributes, attributes) && !variationsStepActive
}

// AttributesConfigured todos los atributos habilitados tienen al menos dos opciones no vacías.
func AttributesConfigured(hasAttributes bool, attributes []Attribute) bool {
	if !hasAttributes || len(attributes) == 0 {
		return false
	}
	for _, a := range attributes {
		if len(nonEmptyValues(a)) < 2 {
			return false
		}
	}
	return true
}

// MaxCombinations tope de variaciones que puede generar un producto.
const MaxCombinations = 500

type combinationAxis struct {
	name   string
	values []string
}

// combinationAxes atributos con nombre y al menos un valor, sin valores repetidos.
func combinationAxes(attributes []Attribute) []combinationAxis {
	var axes []combinationAxis
	for _, a := range attributes {
		name := strings.TrimSpace(a.Name)
		if name == "" {
			continue
		}
		seen := make(map[string]bool)
		var values []string
		for _, v := range nonEmptyValues(a) {
			if !seen[v] {
				seen[v] = true
				values = append(values, v)
			}
		}
		if len(values) > 0 {
			axes = append(axes, combinationAxis{name: name, values: values})
		}
	}
	return axes
}

// CountCombinations número de combinaciones sin construirlas. Se satura en MaxCombinations+1.
func CountCombinations(attributes []Attribute) int {
	axes := combinationAxes(attributes)
	if len(axes) == 0 {
		return 0
	}
	n := 1
	for _, ax := range axes {
		n *= len(ax.values)
		if n > MaxCombinations {
			return MaxCombinations + 1
		}
	}
	return n
}

// ExpandCombinations producto cartesiano de los valores no vacíos de cada atributo con nombre.
// Los atributos sin valores o sin nombre se ignoran; los valores repetidos se cuentan una vez.
// Más de MaxCombinations combinaciones → ErrTooManyCombinations, sin reservar memoria.
func ExpandCombinations(attributes []Attribute) ([]map[string]string, error) {
	if CountCombinations(attributes) > MaxCombinations {
		return nil, ErrTooManyCombinations
	}
	axes := combinationAxes(attributes)
	if len(axes) == 0 {
		return nil, nil
	}
	combos := []map[string]string{{}}
	for _, ax := range axes {
		next := make([]map[string]string, 0, len(combos)*len(ax.values))
		for _, c := range combos {
			for _, v := range ax.values {
				m := make(map[string]string, len(c)+1)
				for k, cv := range c {
					m[k] = cv
				}
				m[ax.name] = v
				next = append(next, m)
			}
		}
		combos = next
	}
	return combos, nil
}

// CombinationKey clave estable de una combinación: pares [nombre, valor] ordenados por nombre
// y codificados en JSON, así los separadores dentro de nombres o valores no colisionan.
func CombinationKey(c map[string]string) string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([][2]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, [2]string{k, c[k]})
	}
	b, _ := json.Marshal(pairs)
	return string(b)
}
