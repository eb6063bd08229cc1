package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// New validador compartido por handlers y casos de uso. decimal.Decimal se valida como
// número y los errores usan el nombre JSON del campo.
func New() *validator.Validate {
	v := validator.New()
	// decimal.Decimal como numérico para que min/gt/required no entren en pánico.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Fields campo → regla que falló. ok=false si err no es un error de validación.
func Fields(err error) (map[string]string, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields, true
}

// Namespaces ruta completa del campo → regla (p. ej. "variants[0].packs[1].quantity").
func Namespaces(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		ns := fe.Namespace()
		if i := strings.IndexByte(ns, '.'); i >= 0 {
			ns = ns[i+1:]
		}
		out = append(out, ns+"="+fe.Tag())
	}
	return out
}
