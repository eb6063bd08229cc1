package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/product-pricing-api/internal/application/dto"
	"github.com/jhoicas/product-pricing-api/internal/application/ports"
	"github.com/jhoicas/product-pricing-api/internal/domain"
	"github.com/jhoicas/product-pricing-api/internal/domain/form"
	"github.com/jhoicas/product-pricing-api/internal/domain/pricing"
	"github.com/jhoicas/product-pricing-api/pkg/logger"
)

// ProductService lo que el flujo de borradores necesita del catálogo.
type ProductService interface {
	Create(ctx context.Context, storeID string, in form.ProductSubmission) (*dto.ProductResponse, error)
	Update(ctx context.Context, storeID, id string, in form.ProductSubmission) (*dto.ProductResponse, error)
	GetSubmission(ctx context.Context, storeID, id string) (*form.ProductSubmission, error)
}

// DraftUseCase sesiones de edición de productos. Cada operación carga el borrador, aplica
// la mutación con form.Editor (que dispara las derivaciones) y lo vuelve a guardar.
// Dos escrituras concurrentes sobre el mismo borrador: gana la última.
type DraftUseCase struct {
	store    ports.DraftStore
	products ProductService
	policy   pricing.Policy
	log      *logger.Logger
	newID    func() string
	now      func() time.Time
}

// NewDraftUseCase construye el caso de uso.
func NewDraftUseCase(store ports.DraftStore, products ProductService, policy pricing.Policy, log *logger.Logger) *DraftUseCase {
	return &DraftUseCase{
		store:    store,
		products: products,
		policy:   policy,
		log:      log,
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Create abre un borrador vacío, o poblado desde un producto existente si in.ProductID no está vacío.
func (uc *DraftUseCase) Create(ctx context.Context, storeID string, in dto.CreateDraftRequest) (*dto.DraftResponse, error) {
	now := uc.now()
	d := &form.Draft{
		ID:        uc.newID(),
		StoreID:   storeID,
		ProductID: in.ProductID,
		Stage:     form.StageBasicInfo,
		Form: form.ProductForm{
			PricingFields: form.PricingFields{DiscountType: pricing.DiscountNone, Packs: []form.PackDiscount{}},
			Attributes:    []form.Attribute{},
			Variations:    []form.Variation{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.ProductID != "" {
		sub, err := uc.products.GetSubmission(ctx, storeID, in.ProductID)
		if err != nil {
			return nil, err
		}
		d.Form = form.FromPayload(*sub, uc.newID)
	}
	if err := uc.store.Save(ctx, d); err != nil {
		return nil, err
	}
	uc.log.Debug().Str("draft_id", d.ID).Str("store_id", storeID).Str("product_id", d.ProductID).Msg("borrador creado")
	return uc.view(d), nil
}

// Get devuelve el borrador. domain.ErrNotFound si no existe o expiró.
func (uc *DraftUseCase) Get(ctx context.Context, storeID, id string) (*dto.DraftResponse, error) {
	d, err := uc.load(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	return uc.view(d), nil
}

// List borradores vigentes de la tienda.
func (uc *DraftUseCase) List(ctx context.Context, storeID string) (*dto.DraftListResponse, error) {
	drafts, err := uc.store.List(ctx, storeID)
	if err != nil {
		return nil, err
	}
	out := &dto.DraftListResponse{Items: make([]dto.DraftSummary, 0, len(drafts))}
	for _, d := range drafts {
		e := uc.editor(d)
		out.Items = append(out.Items, dto.DraftSummary{
			ID:          d.ID,
			ProductID:   d.ProductID,
			ProductName: d.Form.ProductName,
			Stage:       d.Stage,
			Progress:    e.Progress(),
			UpdatedAt:   d.UpdatedAt,
		})
	}
	return out, nil
}

// Delete descarta un borrador.
func (uc *DraftUseCase) Delete(ctx context.Context, storeID, id string) error {
	if _, err := uc.load(ctx, storeID, id); err != nil {
		return err
	}
	return uc.store.Delete(ctx, storeID, id)
}

// SetField cambia un campo escalar del producto o de una variación.
func (uc *DraftUseCase) SetField(ctx context.Context, storeID, id string, in dto.SetFieldRequest) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, storeID, id, func(e *form.Editor) error {
		if in.VariationID != "" {
			return e.SetVariationField(in.VariationID, form.Field(in.Field), in.Value)
		}
		return e.OnFormDataChange(form.Field(in.Field), in.Value)
	})
}

// ── Paquetes ─────────────────────────────────────────────────────────────────

func (uc *DraftUseCase) SetPacksEnabled(ctx context.Context, storeID, id string, enabled bool) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, storeID, id, func(e *form.Editor) error {
		return e.SetPacksEnabled(enabled)
	})
}

func (uc *DraftUseCase) AddPack(ctx context.Context, storeID, id string, in dto.PackRequest) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, storeID, id, func(e *form.Editor) error {
		_, err := e.AddPack(in.VariationID, form.PackInput{
			Quantity:           in.Quantity,
			DiscountType:       pricing.ParseDiscountType(in.DiscountType),
			DiscountValue:      in.DiscountValue,
			TotalPacksQuantity: in.TotalPacksQuantity,
		})
		return err
	})
}

func (uc *DraftUseCase) UpdatePack(ctx context.Context, storeID, id, packID string, in dto.PackPatchRequest) (*dto.DraftResponse, error) {
	patch := form.PackPatch{
		Quantity:           in.Quantity,
		DiscountValue:      in.DiscountValue,
		TotalPacksQuantity: in.TotalPacksQuantity,
		OrderedPacksPrice:  in.OrderedPacksPrice,
	}
	if in.DiscountType != nil {
		t := pricing.ParseDiscountType(*in.DiscountType)
		patch.DiscountType = &t
	}
	return uc.mutate(ctx, storeID, id, func(e *form.Editor) error {
		_, err := e.UpdatePack(in.VariationID, packID, patch)
		return err
	})
}

func (uc *DraftUseCase) RemovePack(ctx context.Context, storeID, id, variationID, packID string) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, storeID, id, func(e *form.Editor) error {
		return e.RemovePack(variationID, packID)
	})
}

// ── Atributos ────────────────────────────────────────────────────────────────

func (uc *DraftUseCase) SetAttributesEnabled(ctx context.Context, storeID, id string, enabled bool) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, storeID, id, func(e *form.Editor) error {
		return e.SetAttributesEnabled(enabled)
	})
}

func (uc *DraftUseCase) AddAttribute(ctx context.Context, storeID, id string, in dto.AttributeRequest) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, storeID, id, func(e *form.Editor) error {
		_, err := e.AddAttribute(in.Name, in.Values)
		return err
	})
}

func (uc *DraftUseCase) UpdateAttribute(ctx context.Context, storeID, id, attributeID string, in dto.UpdateAttributeRequest) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, storeID, id, func(e *form.Editor) error {
		_, err := e.UpdateAttribute(attributeID, form.AttributePatch{Name: in.Name, Values: in.Values})
		return err
	})
}

func (uc *DraftUseCase) RemoveAttribute(ctx context.Context, storeID, id, attributeID string) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, storeID, id, func(e *form.Editor) error {
		return e.RemoveAttribute(attributeID)
	})
}

func (uc *DraftUseCase) AddOption(ctx context.Context, storeID, id, attributeID string, in dto.OptionRequest) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, storeID, id, func(e *form.Editor) error {
		_, err := e.AddOption(attributeID, in.Value)
		return err
	})
}

func (uc *DraftUseCase) UpdateOption(ctx context.Context, storeID, id, attributeID, optionID string, in dto.OptionRequest) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, storeID, id, func(e *form.Editor) error {
		return e.UpdateOption(attributeID, optionID, in.Value)
	})
}

func (uc *DraftUseCase) RemoveOption(ctx context.Context, storeID, id, attributeID, optionID string) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, storeID, id, func(e *form.Editor) error {
		return e.RemoveOption(attributeID, optionID)
	})
}

// ── Variaciones y etapas ─────────────────────────────────────────────────────

func (uc *DraftUseCase) GenerateVariations(ctx context.Context, storeID, id string) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, storeID, id, func(e *form.Editor) error {
		_, err := e.GenerateVariations()
		return err
	})
}

func (uc *DraftUseCase) RemoveVariation(ctx context.Context, storeID, id, variationID string) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, storeID, id, func(e *form.Editor) error {
		return e.RemoveVariation(variationID)
	})
}

func (uc *DraftUseCase) Next(ctx context.Context, storeID, id string) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, storeID, id, func(e *form.Editor) error { return e.Next() })
}

func (uc *DraftUseCase) Back(ctx context.Context, storeID, id string) (*dto.DraftResponse, error) {
	return uc.mutate(ctx, storeID, id, func(e *form.Editor) error { return e.Back() })
}

// Submit arma el payload y crea o actualiza el producto. Si la persistencia falla el
// borrador no se guarda y sigue editable.
func (uc *DraftUseCase) Submit(ctx context.Context, storeID, id string) (*dto.SubmitDraftResponse, error) {
	d, err := uc.load(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	e := uc.editor(d)
	payload, err := e.Submit()
	if err != nil {
		return nil, err
	}

	var product *dto.ProductResponse
	if d.ProductID == "" {
		product, err = uc.products.Create(ctx, storeID, payload)
	} else {
		product, err = uc.products.Update(ctx, storeID, d.ProductID, payload)
	}
	if err != nil {
		return nil, fmt.Errorf("submit draft %s: %w", id, err)
	}

	d.ProductID = product.ID
	if err := uc.store.Save(ctx, d); err != nil {
		// El producto ya quedó persistido; solo se pierde el estado "enviado" del borrador.
		uc.log.Warn().Err(err).Str("draft_id", id).Msg("no se pudo guardar el borrador enviado")
	}
	uc.log.Info().Str("draft_id", id).Str("product_id", product.ID).Bool("variants", payload.HasVariants).Msg("producto enviado")
	return &dto.SubmitDraftResponse{Draft: *uc.view(d), Product: *product}, nil
}

func (uc *DraftUseCase) load(ctx context.Context, storeID, id string) (*form.Draft, error) {
	d, err := uc.store.Get(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if d == nil || d.StoreID != storeID {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (uc *DraftUseCase) editor(d *form.Draft) *form.Editor {
	return form.NewEditor(d, uc.policy).WithIDs(uc.newID)
}

func (uc *DraftUseCase) mutate(ctx context.Context, storeID, id string, op func(e *form.Editor) error) (*dto.DraftResponse, error) {
	d, err := uc.load(ctx, storeID, id)
	if err != nil {
		return nil, err
	}
	if err := op(uc.editor(d)); err != nil {
		return nil, err
	}
	if err := uc.store.Save(ctx, d); err != nil {
		return nil, err
	}
	return uc.view(d), nil
}

// view estado derivado del borrador para la respuesta.
func (uc *DraftUseCase) view(d *form.Draft) *dto.DraftResponse {
	e := uc.editor(d)
	variantMode := e.VariantMode()
	missing := form.MissingFields(&d.Form, variantMode)
	if missing == nil {
		missing = []form.Field{}
	}
	return &dto.DraftResponse{
		ID:            d.ID,
		StoreID:       d.StoreID,
		ProductID:     d.ProductID,
		Stage:         d.Stage,
		Form:          d.Form,
		Progress:      e.Progress(),
		VariantMode:   variantMode,
		HideFields:    e.HideFields(),
		CanNext:       e.CanNext(),
		CanSubmit:     e.CanSubmit(),
		MissingFields: missing,
		Warnings:      e.Warnings(),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
