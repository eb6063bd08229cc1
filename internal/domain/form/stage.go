package form

import "github.com/jhoicas/product-pricing-api/internal/domain/pricing"

// FieldWarning advertencia de precio del producto o de una variación.
type FieldWarning struct {
	VariationID string `json:"variation_id,omitempty"`
	pricing.Warning
}

// VariantMode el producto requiere variaciones según sus atributos.
func (e *Editor) VariantMode() bool {
	f := &e.draft.Form
	return NeedsVariations(f.HasAttributes, f.Attributes)
}

// Progress avance del formulario en el modo actual.
func (e *Editor) Progress() int {
	return ComputeProgress(&e.draft.Form, e.VariantMode())
}

// HideFields ver ShouldHideFields.
func (e *Editor) HideFields() bool {
	f := &e.draft.Form
	return ShouldHideFields(f.HasAttributes, f.Attributes, e.draft.Stage == StageVariations)
}

// CanNext "Siguiente" solo se habilita con el formulario completo y un producto con variaciones.
func (e *Editor) CanNext() bool {
	return e.draft.Stage == StageBasicInfo && e.VariantMode() && e.Progress() == 100
}

// CanSubmit indica si "Enviar" está habilitado en la etapa actual.
func (e *Editor) CanSubmit() bool {
	switch e.draft.Stage {
	case StageBasicInfo:
		return !e.VariantMode() && e.Progress() == 100
	case StageVariations:
		return e.VariantMode() && e.Progress() == 100 && len(e.draft.Form.Variations) > 0
	default:
		return false
	}
}

// Next pasa de información básica a configuración de variaciones, generando las variaciones.
func (e *Editor) Next() error {
	if err := e.editable(); err != nil {
		return err
	}
	if e.draft.Stage != StageBasicInfo {
		return ErrInvalidTransition
	}
	if !e.CanNext() {
		return ErrStepBlocked
	}
	if _, err := e.GenerateVariations(); err != nil {
		return err
	}
	e.draft.Stage = StageVariations
	e.touch()
	return nil
}

// Back vuelve a información básica sin perder datos.
func (e *Editor) Back() error {
	if err := e.editable(); err != nil {
		return err
	}
	if e.draft.Stage != StageVariations {
		return ErrInvalidTransition
	}
	e.draft.Stage = StageBasicInfo
	e.touch()
	return nil
}

// Submit cierra el borrador y devuelve el payload para la API.
func (e *Editor) Submit() (ProductSubmission, error) {
	if err := e.editable(); err != nil {
		return ProductSubmission{}, err
	}
	if !e.CanSubmit() {
		if e.draft.Stage == StageVariations && len(e.draft.Form.Variations) == 0 {
			return ProductSubmission{}, ErrVariationsRequired
		}
		return ProductSubmission{}, ErrStepBlocked
	}
	payload := BuildPayload(&e.draft.Form, e.VariantMode())
	e.draft.Stage = StageSubmitted
	e.touch()
	return payload, nil
}

// Warnings advertencias del producto (modo simple) o de cada variación (modo variaciones).
func (e *Editor) Warnings() []FieldWarning {
	out := []FieldWarning{}
	f := &e.draft.Form
	if !e.VariantMode() {
		for _, w := range pricingWarnings(&f.PricingFields) {
			out = append(out, FieldWarning{Warning: w})
		}
		return out
	}
	for i := range f.Variations {
		v := &f.Variations[i]
		for _, w := range pricingWarnings(&v.PricingFields) {
			out = append(out, FieldWarning{VariationID: v.ID, Warning: w})
		}
	}
	return out
}

func pricingWarnings(pf *PricingFields) []pricing.Warning {
	return pricing.Warnings(
		pricing.ParseAmount(pf.ItemCost),
		pf.unitPrice(),
		pricing.ParseAmount(pf.MinOrderValue),
		pf.minQty(),
	)
}
