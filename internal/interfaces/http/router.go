package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/product-pricing-api/internal/application/analytics"
	"github.com/jhoicas/product-pricing-api/internal/application/auth"
	"github.com/jhoicas/product-pricing-api/internal/application/usecase"
	"github.com/jhoicas/product-pricing-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StoreUC      *usecase.StoreUseCase
	CategoryUC   *usecase.CategoryUseCase
	SupplierUC   *usecase.SupplierUseCase
	ProductUC    *usecase.ProductUseCase
	PriceSheetUC *usecase.PriceSheetUseCase
	DraftUC      *usecase.DraftUseCase
	PricingUC    *usecase.PricingUseCase
	UserUC       *usecase.UserUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Alta de tienda pública: es el primer paso antes de registrar usuarios.
	storeHandler := NewStoreHandler(deps.StoreUC)
	api.Post("/stores", storeHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	editors := RequireRole(entity.RoleAdmin, entity.RoleCatalogador)
	admins := RequireRole(entity.RoleAdmin)

	stores := protected.Group("/stores")
	stores.Get("/current", storeHandler.Current)
	stores.Get("/", admins, storeHandler.List)
	stores.Get("/:id", admins, storeHandler.GetByID)

	// Categorías y proveedores
	catalogHandler := NewCatalogHandler(deps.CategoryUC, deps.SupplierUC)
	protected.Get("/categories", catalogHandler.ListCategories)
	protected.Post("/categories", admins, catalogHandler.CreateCategory)
	protected.Get("/suppliers", catalogHandler.ListSuppliers)
	protected.Post("/suppliers", admins, catalogHandler.CreateSupplier)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.PriceSheetUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/price-sheet", productHandler.PriceSheet)
	products.Post("/", editors, productHandler.Create)
	products.Put("/:id", editors, productHandler.Update)
	products.Delete("/:id", admins, productHandler.Delete)

	// Calculadora de precios (sin estado)
	pricingHandler := NewPricingHandler(deps.PricingUC)
	protected.Post("/pricing/quote", pricingHandler.Quote)
	protected.Post("/pricing/classify", pricingHandler.Classify)

	// Borradores de producto
	drafts := protected.Group("/drafts", editors)
	draftHandler := NewDraftHandler(deps.DraftUC)
	drafts.Post("/", draftHandler.Create)
	drafts.Get("/", draftHandler.List)
	drafts.Get("/:id", draftHandler.Get)
	drafts.Delete("/:id", draftHandler.Delete)
	drafts.Patch("/:id/fields", draftHandler.SetField)
	drafts.Put("/:id/packs/enabled", draftHandler.SetPacksEnabled)
	drafts.Post("/:id/packs", draftHandler.AddPack)
	drafts.Patch("/:id/packs/:packId", draftHandler.UpdatePack)
	drafts.Delete("/:id/packs/:packId", draftHandler.RemovePack)
	drafts.Put("/:id/attributes/enabled", draftHandler.SetAttributesEnabled)
	drafts.Post("/:id/attributes", draftHandler.AddAttribute)
	drafts.Patch("/:id/attributes/:attrId", draftHandler.UpdateAttribute)
	drafts.Delete("/:id/attributes/:attrId", draftHandler.RemoveAttribute)
	drafts.Post("/:id/attributes/:attrId/options", draftHandler.AddOption)
	drafts.Patch("/:id/attributes/:attrId/options/:optionId", draftHandler.UpdateOption)
	drafts.Delete("/:id/attributes/:attrId/options/:optionId", draftHandler.RemoveOption)
	drafts.Post("/:id/variations/generate", draftHandler.GenerateVariations)
	drafts.Patch("/:id/variations/:variationId/fields", draftHandler.SetVariationField)
	drafts.Delete("/:id/variations/:variationId", draftHandler.RemoveVariation)
	drafts.Post("/:id/next", draftHandler.Next)
	drafts.Post("/:id/back", draftHandler.Back)
	drafts.Post("/:id/submit", draftHandler.Submit)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
