package form_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/product-pricing-api/internal/domain/form"
	"github.com/jhoicas/product-pricing-api/internal/domain/pricing"
)

func newEditor(policy pricing.Policy) *form.Editor {
	d := &form.Draft{ID: "draft-1", StoreID: "store-1", Stage: form.StageBasicInfo}
	return form.NewEditor(d, policy).WithIDs(seqIDs())
}

func set(t *testing.T, e *form.Editor, field form.Field, value string) {
	t.Helper()
	require.NoError(t, e.OnFormDataChange(field, value))
}

// ──────────────────────────────────────────────────────────────────────────────
// Derivación de valor mínimo de pedido
// ──────────────────────────────────────────────────────────────────────────────

func TestOnFormDataChange_DerivaValorMinimo(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	set(t, e, form.FieldMinSellingQuantity, "5")
	assert.Empty(t, e.Form().MinOrderValue, "sin precio de venta no se deriva")

	set(t, e, form.FieldItemSellingCost, "10")
	assert.Equal(t, "50", e.Form().MinOrderValue)
}

func TestOnFormDataChange_RaiseOnlyNoBajaValorManual(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	set(t, e, form.FieldMinSellingQuantity, "5")
	set(t, e, form.FieldItemSellingCost, "10")
	set(t, e, form.FieldMinOrderValue, "80")

	set(t, e, form.FieldItemSellingCost, "12")
	assert.Equal(t, "80", e.Form().MinOrderValue)

	set(t, e, form.FieldItemSellingCost, "20")
	assert.Equal(t, "100", e.Form().MinOrderValue)
}

func TestOnFormDataChange_OverwriteSiempreRecalcula(t *testing.T) {
	e := newEditor(pricing.Policy{MinOrder: pricing.MinOrderOverwrite, Stock: pricing.StockPrefillOnce})
	set(t, e, form.FieldMinSellingQuantity, "5")
	set(t, e, form.FieldItemSellingCost, "10")
	set(t, e, form.FieldMinOrderValue, "80")

	set(t, e, form.FieldItemSellingCost, "12")
	assert.Equal(t, "60", e.Form().MinOrderValue)
}

// ──────────────────────────────────────────────────────────────────────────────
// Derivación de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestOnFormDataChange_StockPrefillOnce(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	set(t, e, form.FieldIndividualItemQuantity, "17")
	assert.Empty(t, e.Form().Quantity)

	set(t, e, form.FieldMinSellingQuantity, "5")
	assert.Equal(t, "3", e.Form().Quantity)

	set(t, e, form.FieldIndividualItemQuantity, "20")
	assert.Equal(t, "3", e.Form().Quantity, "prefill_once no toca un stock ya lleno")
}

func TestOnFormDataChange_StockPrefillOnceNoEscribeCero(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	set(t, e, form.FieldMinSellingQuantity, "5")
	set(t, e, form.FieldIndividualItemQuantity, "3")
	assert.Empty(t, e.Form().Quantity)

	set(t, e, form.FieldIndividualItemQuantity, "30")
	assert.Equal(t, "6", e.Form().Quantity)
}

func TestOnFormDataChange_StockContinuo(t *testing.T) {
	e := newEditor(pricing.Policy{MinOrder: pricing.MinOrderRaiseOnly, Stock: pricing.StockContinuous})
	set(t, e, form.FieldIndividualItemQuantity, "17")
	set(t, e, form.FieldMinSellingQuantity, "5")
	assert.Equal(t, "3", e.Form().Quantity)

	set(t, e, form.FieldIndividualItemQuantity, "20")
	assert.Equal(t, "4", e.Form().Quantity)
}

func TestOnFormDataChange_CampoDesconocido(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	assert.ErrorIs(t, e.OnFormDataChange(form.Field("color"), "rojo"), form.ErrUnknownField)
}

func TestOnFormDataChange_TipoDescuentoNormalizado(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	set(t, e, form.FieldDiscountType, "PERCENTAGE")
	assert.Equal(t, pricing.DiscountPercentage, e.Form().DiscountType)
	set(t, e, form.FieldDiscountType, "cualquiera")
	assert.Equal(t, pricing.DiscountNone, e.Form().DiscountType)
}

// ──────────────────────────────────────────────────────────────────────────────
// Paquetes
// ──────────────────────────────────────────────────────────────────────────────

func TestAddPack_PrecioInicialYRecalculo(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	set(t, e, form.FieldItemSellingCost, "10")

	pack, err := e.AddPack("", form.PackInput{Quantity: 6})
	require.NoError(t, err)
	assert.True(t, pack.OrderedPacksPrice.Equal(dec("60")))
	assert.Equal(t, pricing.DiscountNone, pack.DiscountType)
	assert.True(t, e.Form().HasPacks)

	set(t, e, form.FieldItemSellingCost, "12")
	assert.True(t, e.Form().Packs[0].OrderedPacksPrice.Equal(dec("72")))
}

func TestAddPack_CantidadMinimaUno(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	pack, err := e.AddPack("", form.PackInput{Quantity: 0, TotalPacksQuantity: -2})
	require.NoError(t, err)
	assert.Equal(t, 1, pack.Quantity)
	assert.Equal(t, 0, pack.TotalPacksQuantity)
}

func TestUpdatePack(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	set(t, e, form.FieldItemSellingCost, "10")
	pack, err := e.AddPack("", form.PackInput{Quantity: 6})
	require.NoError(t, err)

	qty := 12
	updated, err := e.UpdatePack("", pack.ID, form.PackPatch{Quantity: &qty})
	require.NoError(t, err)
	assert.True(t, updated.OrderedPacksPrice.Equal(dec("120")))

	override := dec("99")
	qty = 24
	updated, err = e.UpdatePack("", pack.ID, form.PackPatch{Quantity: &qty, OrderedPacksPrice: &override})
	require.NoError(t, err)
	assert.True(t, updated.OrderedPacksPrice.Equal(dec("99")), "el precio explícito tiene prioridad")

	_, err = e.UpdatePack("", "no-existe", form.PackPatch{})
	assert.ErrorIs(t, err, form.ErrPackNotFound)
}

func TestUpdatePack_CantidadesSeAcotan(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	set(t, e, form.FieldItemSellingCost, "5")
	pack, err := e.AddPack("", form.PackInput{Quantity: 6})
	require.NoError(t, err)

	for _, qty := range []int{0, -3} {
		q := qty
		updated, err := e.UpdatePack("", pack.ID, form.PackPatch{Quantity: &q})
		require.NoError(t, err)
		assert.Equal(t, 1, updated.Quantity)
		assert.True(t, updated.OrderedPacksPrice.Equal(dec("5")))
	}

	total := -4
	updated, err := e.UpdatePack("", pack.ID, form.PackPatch{TotalPacksQuantity: &total})
	require.NoError(t, err)
	assert.Equal(t, 0, updated.TotalPacksQuantity)
}

func TestPrecioUnitario_RecalculaTodosLosPaquetes(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	set(t, e, form.FieldItemSellingCost, "10")
	_, err := e.AddPack("", form.PackInput{Quantity: 6})
	require.NoError(t, err)
	_, err = e.AddPack("", form.PackInput{Quantity: 12})
	require.NoError(t, err)
	_, err = e.AddPack("", form.PackInput{Quantity: 24})
	require.NoError(t, err)

	set(t, e, form.FieldItemSellingCost, "2.5")
	packs := e.Form().Packs
	require.Len(t, packs, 3)
	assert.True(t, packs[0].OrderedPacksPrice.Equal(dec("15")))
	assert.True(t, packs[1].OrderedPacksPrice.Equal(dec("30")))
	assert.True(t, packs[2].OrderedPacksPrice.Equal(dec("60")))
}

func TestPrecioUnitario_ReemplazaPrecioManualDelPaquete(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	set(t, e, form.FieldItemSellingCost, "10")
	pack, err := e.AddPack("", form.PackInput{Quantity: 6})
	require.NoError(t, err)

	manual := dec("45")
	updated, err := e.UpdatePack("", pack.ID, form.PackPatch{OrderedPacksPrice: &manual})
	require.NoError(t, err)
	require.True(t, updated.OrderedPacksPrice.Equal(dec("45")))

	set(t, e, form.FieldItemSellingCost, "11")
	assert.True(t, e.Form().Packs[0].OrderedPacksPrice.Equal(dec("66")),
		"el siguiente cambio de precio unitario vuelve a derivar el precio del paquete")
}

func TestSetVariationField_RecalculaSoloPaquetesDeLaVariacion(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	set(t, e, form.FieldItemSellingCost, "10")
	_, err := e.AddPack("", form.PackInput{Quantity: 6})
	require.NoError(t, err)
	_, err = e.AddAttribute("Color", []string{"Rojo", "Azul"})
	require.NoError(t, err)
	vars, err := e.GenerateVariations()
	require.NoError(t, err)
	require.Len(t, vars, 2)
	id := vars[0].ID
	_, err = e.AddPack(id, form.PackInput{Quantity: 3})
	require.NoError(t, err)

	require.NoError(t, e.SetVariationField(id, form.FieldItemSellingCost, "7"))

	f := e.Form()
	require.Len(t, f.Variations[0].Packs, 2)
	assert.True(t, f.Variations[0].Packs[0].OrderedPacksPrice.Equal(dec("42")))
	assert.True(t, f.Variations[0].Packs[1].OrderedPacksPrice.Equal(dec("21")))
	assert.True(t, f.Variations[1].Packs[0].OrderedPacksPrice.Equal(dec("60")), "otra variación no cambia")
	assert.True(t, f.Packs[0].OrderedPacksPrice.Equal(dec("60")), "los paquetes del producto no cambian")
}

func TestRemovePack(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	pack, err := e.AddPack("", form.PackInput{Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, e.RemovePack("", pack.ID))
	assert.Empty(t, e.Form().Packs)
	assert.ErrorIs(t, e.RemovePack("", pack.ID), form.ErrPackNotFound)
	assert.ErrorIs(t, e.RemovePack("var-x", pack.ID), form.ErrVariationNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Atributos
// ──────────────────────────────────────────────────────────────────────────────

func TestAttributes_CRUD(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	a, err := e.AddAttribute("Talla", []string{"S"})
	require.NoError(t, err)
	assert.True(t, e.Form().HasAttributes)
	assert.False(t, e.VariantMode(), "un solo valor no genera variaciones")

	opt, err := e.AddOption(a.ID, "M")
	require.NoError(t, err)
	assert.True(t, e.VariantMode())

	require.NoError(t, e.UpdateOption(a.ID, opt.ID, "L"))
	assert.Equal(t, "L", e.Form().Attributes[0].Options[1].Value)

	require.NoError(t, e.RemoveOption(a.ID, opt.ID))
	assert.False(t, e.VariantMode())
	assert.ErrorIs(t, e.RemoveOption(a.ID, opt.ID), form.ErrOptionNotFound)

	name := "Tamaño"
	values := []string{"Chico", "Grande"}
	updated, err := e.UpdateAttribute(a.ID, form.AttributePatch{Name: &name, Values: &values})
	require.NoError(t, err)
	assert.Equal(t, "Tamaño", updated.Name)
	assert.Len(t, updated.Options, 2)

	require.NoError(t, e.SetAttributesEnabled(false))
	assert.False(t, e.VariantMode())
	assert.Len(t, e.Form().Attributes, 1, "deshabilitar conserva los datos")

	require.NoError(t, e.RemoveAttribute(a.ID))
	assert.ErrorIs(t, e.RemoveAttribute(a.ID), form.ErrAttributeNotFound)
	_, err = e.AddOption(a.ID, "X")
	assert.ErrorIs(t, err, form.ErrAttributeNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Variaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateVariations_CopiaPreciosDelProducto(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	set(t, e, form.FieldItemSellingCost, "10")
	_, err := e.AddPack("", form.PackInput{Quantity: 6})
	require.NoError(t, err)
	_, err = e.AddAttribute("Color", []string{"Rojo", "Azul"})
	require.NoError(t, err)

	vars, err := e.GenerateVariations()
	require.NoError(t, err)
	require.Len(t, vars, 2)
	for _, v := range vars {
		assert.Equal(t, "10", v.ItemSellingCost)
		require.Len(t, v.Packs, 1)
		assert.NotEqual(t, e.Form().Packs[0].ID, v.Packs[0].ID, "los paquetes copiados reciben IDs nuevos")
	}
}

func TestGenerateVariations_ConservaCombinacionesExistentes(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	a, err := e.AddAttribute("Color", []string{"Rojo", "Azul"})
	require.NoError(t, err)
	vars, err := e.GenerateVariations()
	require.NoError(t, err)
	first := vars[0]
	require.NoError(t, e.SetVariationField(first.ID, form.FieldCustomSKU, "SKU-ROJO"))

	_, err = e.AddOption(a.ID, "Verde")
	require.NoError(t, err)
	vars, err = e.GenerateVariations()
	require.NoError(t, err)
	require.Len(t, vars, 3)
	assert.Equal(t, first.ID, vars[0].ID)
	assert.Equal(t, "SKU-ROJO", vars[0].CustomSKU)
}

func TestGenerateVariations_SinAtributosQuedaVacio(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	vars, err := e.GenerateVariations()
	require.NoError(t, err)
	assert.Empty(t, vars)
}

func TestGenerateVariations_DemasiadasCombinaciones(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	for _, a := range manyAttributes(20, "x", "y") {
		_, err := e.AddAttribute(a.Name, []string{"x", "y"})
		require.NoError(t, err)
	}

	_, err := e.GenerateVariations()
	assert.ErrorIs(t, err, form.ErrTooManyCombinations)
	assert.Empty(t, e.Form().Variations)
}

func TestSetVariationField(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	_, err := e.AddAttribute("Color", []string{"Rojo", "Azul"})
	require.NoError(t, err)
	vars, err := e.GenerateVariations()
	require.NoError(t, err)
	id := vars[0].ID

	require.NoError(t, e.SetVariationField(id, form.FieldMinSellingQuantity, "4"))
	require.NoError(t, e.SetVariationField(id, form.FieldItemSellingCost, "5"))
	assert.Equal(t, "20", e.Form().Variations[0].MinOrderValue)
	assert.Empty(t, e.Form().Variations[1].MinOrderValue)

	assert.ErrorIs(t, e.SetVariationField(id, form.FieldProductName, "x"), form.ErrUnknownField)
	assert.ErrorIs(t, e.SetVariationField("nope", form.FieldEAN, "1"), form.ErrVariationNotFound)

	pack, err := e.AddPack(id, form.PackInput{Quantity: 3})
	require.NoError(t, err)
	assert.True(t, pack.OrderedPacksPrice.Equal(dec("15")))

	require.NoError(t, e.RemoveVariation(id))
	assert.Len(t, e.Form().Variations, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Etapas
// ──────────────────────────────────────────────────────────────────────────────

func fillSimple(t *testing.T, e *form.Editor) {
	set(t, e, form.FieldProductName, "Camiseta")
	set(t, e, form.FieldCategory, "cat-1")
	set(t, e, form.FieldPrice, "15")
	set(t, e, form.FieldPLUUPC, "4011")
	set(t, e, form.FieldIndividualItemQuantity, "100")
	set(t, e, form.FieldItemCost, "6")
	set(t, e, form.FieldItemSellingCost, "10")
	set(t, e, form.FieldMinSellingQuantity, "5")
}

func TestStage_FlujoSimple(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	assert.False(t, e.CanSubmit())
	assert.ErrorIs(t, e.Next(), form.ErrStepBlocked)

	fillSimple(t, e)
	assert.Equal(t, "50", e.Form().MinOrderValue)
	assert.Equal(t, "20", e.Form().Quantity)
	assert.Equal(t, 100, e.Progress())
	assert.False(t, e.CanNext(), "un producto simple no pasa a variaciones")
	assert.True(t, e.CanSubmit())

	p, err := e.Submit()
	require.NoError(t, err)
	assert.False(t, p.HasVariants)
	assert.True(t, p.MinOrderValue.Equal(dec("50")))
	assert.Equal(t, form.StageSubmitted, e.Draft().Stage)

	_, err = e.Submit()
	assert.ErrorIs(t, err, form.ErrDraftSubmitted)
	assert.ErrorIs(t, e.OnFormDataChange(form.FieldBrand, "x"), form.ErrDraftSubmitted)
}

func TestStage_FlujoVariaciones(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	set(t, e, form.FieldProductName, "Camiseta")
	set(t, e, form.FieldCategory, "cat-1")
	set(t, e, form.FieldPrice, "15")
	set(t, e, form.FieldItemSellingCost, "10")
	_, err := e.AddAttribute("Talla", []string{"S", "M"})
	require.NoError(t, err)

	assert.True(t, e.HideFields())
	assert.Equal(t, 100, e.Progress())
	assert.False(t, e.CanSubmit(), "en información básica un producto con variaciones no se envía")
	require.True(t, e.CanNext())

	require.NoError(t, e.Next())
	assert.Equal(t, form.StageVariations, e.Draft().Stage)
	assert.False(t, e.HideFields())
	require.Len(t, e.Form().Variations, 2)
	assert.ErrorIs(t, e.Next(), form.ErrInvalidTransition)

	require.NoError(t, e.Back())
	assert.Equal(t, form.StageBasicInfo, e.Draft().Stage)
	assert.Len(t, e.Form().Variations, 2, "volver no borra las variaciones")
	require.NoError(t, e.Next())

	p, err := e.Submit()
	require.NoError(t, err)
	assert.True(t, p.HasVariants)
	assert.Len(t, p.Variants, 2)
	assert.True(t, p.ItemSellingCost.IsZero())
}

func TestStage_SubmitSinVariaciones(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	set(t, e, form.FieldProductName, "Camiseta")
	set(t, e, form.FieldCategory, "cat-1")
	set(t, e, form.FieldPrice, "15")
	_, err := e.AddAttribute("Talla", []string{"S", "M"})
	require.NoError(t, err)
	require.NoError(t, e.Next())

	var ids []string
	for _, v := range e.Form().Variations {
		ids = append(ids, v.ID)
	}
	for _, id := range ids {
		require.NoError(t, e.RemoveVariation(id))
	}
	_, err = e.Submit()
	assert.ErrorIs(t, err, form.ErrVariationsRequired)
	require.NoError(t, e.Back())
	assert.ErrorIs(t, e.Back(), form.ErrInvalidTransition)
}

func TestWarnings(t *testing.T) {
	e := newEditor(pricing.DefaultPolicy())
	set(t, e, form.FieldItemCost, "12")
	set(t, e, form.FieldItemSellingCost, "10")
	set(t, e, form.FieldMinSellingQuantity, "5")
	set(t, e, form.FieldMinOrderValue, "10")

	codes := map[string]bool{}
	for _, w := range e.Warnings() {
		assert.Empty(t, w.VariationID)
		codes[w.Code] = true
	}
	assert.True(t, codes[pricing.WarnSellingBelowCost])
	assert.True(t, codes[pricing.WarnMinOrderBelowFloor])
}
