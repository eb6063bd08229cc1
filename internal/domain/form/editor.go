package form

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/product-pricing-api/internal/domain/pricing"
)

// PackInput datos para crear un paquete.
type PackInput struct {
	Quantity           int
	DiscountType       pricing.DiscountType
	DiscountValue      decimal.Decimal
	TotalPacksQuantity int
}

// PackPatch cambios parciales de un paquete (nil = sin cambio).
// OrderedPacksPrice permite la sobrescritura manual; se pierde en el siguiente recálculo.
type PackPatch struct {
	Quantity           *int
	DiscountType       *pricing.DiscountType
	DiscountValue      *decimal.Decimal
	TotalPacksQuantity *int
	OrderedPacksPrice  *decimal.Decimal
}

// AttributePatch cambios parciales de un atributo. Values reemplaza todas las opciones.
type AttributePatch struct {
	Name   *string
	Values *[]string
}

// Editor aplica mutaciones a un borrador y dispara las derivaciones de forma síncrona.
// Un Editor no es seguro para uso concurrente; cada borrador tiene un único dueño.
type Editor struct {
	draft  *Draft
	policy pricing.Policy
	newID  func() string
	now    func() time.Time
}

// NewEditor construye el editor sobre el borrador indicado.
func NewEditor(d *Draft, policy pricing.Policy) *Editor {
	return &Editor{draft: d, policy: policy, newID: uuid.NewString, now: time.Now}
}

// WithIDs reemplaza el generador de IDs (tests).
func (e *Editor) WithIDs(fn func() string) *Editor {
	e.newID = fn
	return e
}

// Draft borrador editado.
func (e *Editor) Draft() *Draft { return e.draft }

// Form formulario del borrador.
func (e *Editor) Form() *ProductForm { return &e.draft.Form }

func (e *Editor) editable() error {
	if e.draft.Stage == StageSubmitted {
		return ErrDraftSubmitted
	}
	return nil
}

func (e *Editor) touch() { e.draft.UpdatedAt = e.now() }

// OnFormDataChange punto único de entrada para campos escalares del producto.
func (e *Editor) OnFormDataChange(field Field, value string) error {
	if err := e.editable(); err != nil {
		return err
	}
	f := &e.draft.Form
	switch field {
	case FieldProductName:
		f.ProductName = value
	case FieldCategory:
		f.Category = value
	case FieldBrand:
		f.Brand = value
	case FieldSupplier:
		f.Supplier = value
	case FieldDescription:
		f.Description = value
	default:
		if !f.PricingFields.set(field, value) {
			return ErrUnknownField
		}
		e.derive(&f.PricingFields, field)
	}
	e.touch()
	return nil
}

// SetVariationField equivalente a OnFormDataChange para una variación; solo acepta campos de precios.
func (e *Editor) SetVariationField(variationID string, field Field, value string) error {
	if err := e.editable(); err != nil {
		return err
	}
	v := e.findVariation(variationID)
	if v == nil {
		return ErrVariationNotFound
	}
	if !v.PricingFields.set(field, value) {
		return ErrUnknownField
	}
	e.derive(&v.PricingFields, field)
	e.touch()
	return nil
}

// derive recalcula los campos dependientes del campo modificado.
func (e *Editor) derive(pf *PricingFields, changed Field) {
	switch changed {
	case FieldItemSellingCost:
		e.deriveMinOrder(pf)
		recomputePacks(pf)
	case FieldMinSellingQuantity:
		e.deriveMinOrder(pf)
		e.deriveStock(pf)
	case FieldIndividualItemQuantity:
		e.deriveStock(pf)
	}
}

func (e *Editor) deriveMinOrder(pf *PricingFields) {
	price := pf.unitPrice()
	if !price.IsPositive() {
		return
	}
	next, changed := pricing.DeriveMinOrderValue(e.policy.MinOrder, pricing.ParseAmount(pf.MinOrderValue), price, pf.minQty())
	if changed {
		pf.MinOrderValue = pricing.FormatAmount(next)
	}
}

func (e *Editor) deriveStock(pf *PricingFields) {
	individual := pricing.ParseQuantity(pf.IndividualItemQuantity)
	minQty := pf.minQty()
	if !pricing.ShouldDeriveStock(e.policy.Stock, strings.TrimSpace(pf.Quantity) == "", individual, minQty) {
		return
	}
	stock := pricing.ComputeStockQuantity(individual, minQty)
	// Con prefill_once un cero no cuenta como prellenado: se espera a un valor útil.
	if e.policy.Stock == pricing.StockPrefillOnce && stock == 0 {
		return
	}
	pf.Quantity = strconv.Itoa(stock)
}

// recomputePacks el cambio de precio unitario del padre recalcula todos sus paquetes.
func recomputePacks(pf *PricingFields) {
	unit := pf.unitPrice()
	for i := range pf.Packs {
		pf.Packs[i].OrderedPacksPrice = pricing.ComputePackPrice(pf.Packs[i].Quantity, unit)
	}
}

// ── Paquetes ─────────────────────────────────────────────────────────────────

// SetPacksEnabled activa o desactiva la sección de paquetes (los datos se conservan).
func (e *Editor) SetPacksEnabled(enabled bool) error {
	if err := e.editable(); err != nil {
		return err
	}
	e.draft.Form.HasPacks = enabled
	e.touch()
	return nil
}

// pricingTarget variationID vacío = producto; si no, la variación indicada.
func (e *Editor) pricingTarget(variationID string) (*PricingFields, error) {
	if variationID == "" {
		return &e.draft.Form.PricingFields, nil
	}
	v := e.findVariation(variationID)
	if v == nil {
		return nil, ErrVariationNotFound
	}
	return &v.PricingFields, nil
}

// AddPack crea un paquete en el producto o en una variación. El precio se inicializa con el
// precio de venta unitario actual del padre.
func (e *Editor) AddPack(variationID string, in PackInput) (PackDiscount, error) {
	if err := e.editable(); err != nil {
		return PackDiscount{}, err
	}
	pf, err := e.pricingTarget(variationID)
	if err != nil {
		return PackDiscount{}, err
	}
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}
	total := in.TotalPacksQuantity
	if total < 0 {
		total = 0
	}
	pack := PackDiscount{
		ID:                 e.newID(),
		Quantity:           qty,
		DiscountType:       pricing.ParseDiscountType(string(in.DiscountType)),
		DiscountValue:      in.DiscountValue,
		TotalPacksQuantity: total,
		OrderedPacksPrice:  pricing.ComputePackPrice(qty, pf.unitPrice()),
	}
	pf.Packs = append(pf.Packs, pack)
	e.draft.Form.HasPacks = true
	e.touch()
	return pack, nil
}

// UpdatePack aplica un patch a un paquete. Cambiar Quantity recalcula OrderedPacksPrice;
// un OrderedPacksPrice explícito en el mismo patch tiene prioridad. Las cantidades se
// acotan igual que en AddPack.
func (e *Editor) UpdatePack(variationID, packID string, patch PackPatch) (PackDiscount, error) {
	if err := e.editable(); err != nil {
		return PackDiscount{}, err
	}
	pf, err := e.pricingTarget(variationID)
	if err != nil {
		return PackDiscount{}, err
	}
	for i := range pf.Packs {
		pk := &pf.Packs[i]
		if pk.ID != packID {
			continue
		}
		if patch.Quantity != nil {
			pk.Quantity = max(*patch.Quantity, 1)
			pk.OrderedPacksPrice = pricing.ComputePackPrice(pk.Quantity, pf.unitPrice())
		}
		if patch.DiscountType != nil {
			pk.DiscountType = pricing.ParseDiscountType(string(*patch.DiscountType))
		}
		if patch.DiscountValue != nil {
			pk.DiscountValue = *patch.DiscountValue
		}
		if patch.TotalPacksQuantity != nil {
			pk.TotalPacksQuantity = max(*patch.TotalPacksQuantity, 0)
		}
		if patch.OrderedPacksPrice != nil {
			pk.OrderedPacksPrice = *patch.OrderedPacksPrice
		}
		e.touch()
		return *pk, nil
	}
	return PackDiscount{}, ErrPackNotFound
}

// RemovePack elimina un paquete.
func (e *Editor) RemovePack(variationID, packID string) error {
	if err := e.editable(); err != nil {
		return err
	}
	pf, err := e.pricingTarget(variationID)
	if err != nil {
		return err
	}
	for i := range pf.Packs {
		if pf.Packs[i].ID == packID {
			pf.Packs = append(pf.Packs[:i], pf.Packs[i+1:]...)
			e.touch()
			return nil
		}
	}
	return ErrPackNotFound
}

// ── Atributos ────────────────────────────────────────────────────────────────

// SetAttributesEnabled activa o desactiva los atributos (los datos se conservan).
func (e *Editor) SetAttributesEnabled(enabled bool) error {
	if err := e.editable(); err != nil {
		return err
	}
	e.draft.Form.HasAttributes = enabled
	e.touch()
	return nil
}

func (e *Editor) options(values []string) []AttributeOption {
	out := make([]AttributeOption, 0, len(values))
	for _, v := range values {
		out = append(out, AttributeOption{ID: e.newID(), Value: v})
	}
	return out
}

// AddAttribute agrega un atributo con sus valores y habilita la sección de atributos.
func (e *Editor) AddAttribute(name string, values []string) (Attribute, error) {
	if err := e.editable(); err != nil {
		return Attribute{}, err
	}
	a := Attribute{ID: e.newID(), Name: name, Options: e.options(values)}
	e.draft.Form.Attributes = append(e.draft.Form.Attributes, a)
	e.draft.Form.HasAttributes = true
	e.touch()
	return a, nil
}

func (e *Editor) findAttribute(id string) *Attribute {
	for i := range e.draft.Form.Attributes {
		if e.draft.Form.Attributes[i].ID == id {
			return &e.draft.Form.Attributes[i]
		}
	}
	return nil
}

// UpdateAttribute renombra un atributo y/o reemplaza sus opciones.
func (e *Editor) UpdateAttribute(id string, patch AttributePatch) (Attribute, error) {
	if err := e.editable(); err != nil {
		return Attribute{}, err
	}
	a := e.findAttribute(id)
	if a == nil {
		return Attribute{}, ErrAttributeNotFound
	}
	if patch.Name != nil {
		a.Name = *patch.Name
	}
	if patch.Values != nil {
		a.Options = e.options(*patch.Values)
	}
	e.touch()
	return *a, nil
}

// RemoveAttribute elimina un atributo.
func (e *Editor) RemoveAttribute(id string) error {
	if err := e.editable(); err != nil {
		return err
	}
	attrs := e.draft.Form.Attributes
	for i := range attrs {
		if attrs[i].ID == id {
			e.draft.Form.Attributes = append(attrs[:i], attrs[i+1:]...)
			e.touch()
			return nil
		}
	}
	return ErrAttributeNotFound
}

// AddOption agrega un valor a un atributo.
func (e *Editor) AddOption(attributeID, value string) (AttributeOption, error) {
	if err := e.editable(); err != nil {
		return AttributeOption{}, err
	}
	a := e.findAttribute(attributeID)
	if a == nil {
		return AttributeOption{}, ErrAttributeNotFound
	}
	opt := AttributeOption{ID: e.newID(), Value: value}
	a.Options = append(a.Options, opt)
	e.touch()
	return opt, nil
}

// UpdateOption cambia el valor de una opción.
func (e *Editor) UpdateOption(attributeID, optionID, value string) error {
	if err := e.editable(); err != nil {
		return err
	}
	a := e.findAttribute(attributeID)
	if a == nil {
		return ErrAttributeNotFound
	}
	for i := range a.Options {
		if a.Options[i].ID == optionID {
			a.Options[i].Value = value
			e.touch()
			return nil
		}
	}
	return ErrOptionNotFound
}

// RemoveOption elimina una opción de un atributo.
func (e *Editor) RemoveOption(attributeID, optionID string) error {
	if err := e.editable(); err != nil {
		return err
	}
	a := e.findAttribute(attributeID)
	if a == nil {
		return ErrAttributeNotFound
	}
	for i := range a.Options {
		if a.Options[i].ID == optionID {
			a.Options = append(a.Options[:i], a.Options[i+1:]...)
			e.touch()
			return nil
		}
	}
	return ErrOptionNotFound
}

// ── Variaciones ──────────────────────────────────────────────────────────────

func (e *Editor) findVariation(id string) *Variation {
	for i := range e.draft.Form.Variations {
		if e.draft.Form.Variations[i].ID == id {
			return &e.draft.Form.Variations[i]
		}
	}
	return nil
}

// GenerateVariations construye una variación por combinación de valores. Las variaciones cuya
// combinación sigue existiendo conservan sus datos; las nuevas copian los campos de precio del producto.
// Si el producto no requiere variaciones la lista queda vacía.
func (e *Editor) GenerateVariations() ([]Variation, error) {
	if err := e.editable(); err != nil {
		return nil, err
	}
	f := &e.draft.Form
	if !NeedsVariations(f.HasAttributes, f.Attributes) {
		f.Variations = []Variation{}
		e.touch()
		return f.Variations, nil
	}
	combos, err := ExpandCombinations(f.Attributes)
	if err != nil {
		return nil, err
	}
	existing := make(map[string]Variation, len(f.Variations))
	for _, v := range f.Variations {
		existing[CombinationKey(v.AttributeCombination)] = v
	}
	next := make([]Variation, 0, len(combos))
	for _, c := range combos {
		if v, ok := existing[CombinationKey(c)]; ok {
			next = append(next, v)
			continue
		}
		v := Variation{
			ID:                   e.newID(),
			AttributeCombination: c,
			PricingFields:        clonePricing(f.PricingFields, e.newID),
		}
		next = append(next, v)
	}
	f.Variations = next
	e.touch()
	return f.Variations, nil
}

// RemoveVariation elimina una variación (el usuario descarta esa combinación).
func (e *Editor) RemoveVariation(id string) error {
	if err := e.editable(); err != nil {
		return err
	}
	vars := e.draft.Form.Variations
	for i := range vars {
		if vars[i].ID == id {
			e.draft.Form.Variations = append(vars[:i], vars[i+1:]...)
			e.touch()
			return nil
		}
	}
	return ErrVariationNotFound
}
