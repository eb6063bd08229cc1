package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/product-pricing-api/internal/application/analytics"
	"github.com/jhoicas/product-pricing-api/internal/application/auth"
	"github.com/jhoicas/product-pricing-api/internal/application/usecase"
	"github.com/jhoicas/product-pricing-api/internal/domain/pricing"
	infrapdf "github.com/jhoicas/product-pricing-api/internal/infrastructure/pdf"
	"github.com/jhoicas/product-pricing-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/product-pricing-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/product-pricing-api/internal/interfaces/http"
	"github.com/jhoicas/product-pricing-api/pkg/config"
	"github.com/jhoicas/product-pricing-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		Name:  cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	rdb, err := infraredis.NewClient(ctx, cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer rdb.Close()

	policy := pricing.Policy{
		MinOrder: pricing.ParseMinOrderPolicy(cfg.Pricing.MinOrderPolicy),
		Stock:    pricing.ParseStockPolicy(cfg.Pricing.StockPolicy),
	}
	log.Info().
		Str("min_order_policy", string(policy.MinOrder)).
		Str("stock_policy", string(policy.Stock)).
		Msg("políticas de precio")

	storeRepo := postgres.NewStoreRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	statsRepo := postgres.NewCatalogStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	draftStore := infraredis.NewDraftStore(rdb, cfg.Cache.DraftTTL())
	refCache := infraredis.NewReferenceCache(rdb, cfg.Cache.ReferenceTTL())

	storeUC := usecase.NewStoreUseCase(storeRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, refCache, log.Component("categories"))
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, refCache, log.Component("suppliers"))
	productUC := usecase.NewProductUseCase(txRunner, productRepo, categoryRepo, supplierRepo)
	pricingUC := usecase.NewPricingUseCase(policy)
	draftUC := usecase.NewDraftUseCase(draftStore, productUC, policy, log.Component("drafts"))
	dashboardUC := appanalytics.NewDashboardUseCase(statsRepo)

	// PDF: ficha de precios del producto
	sheetGenerator := infrapdf.NewMarotoPriceSheetGenerator("es-CO")
	priceSheetUC := usecase.NewPriceSheetUseCase(productUC, storeRepo, categoryRepo, supplierRepo, sheetGenerator)

	authUC := auth.NewAuthUseCase(userRepo, storeRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Product Pricing API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: no existe el archivo")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		status := fiber.Map{"status": "ok", "service": cfg.App.Name, "postgres": "ok", "redis": "ok"}
		code := fiber.StatusOK
		if err := pool.Ping(pingCtx); err != nil {
			status["postgres"], status["status"], code = "down", "degraded", fiber.StatusServiceUnavailable
		}
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			status["redis"], status["status"], code = "down", "degraded", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(status)
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		StoreUC:      storeUC,
		CategoryUC:   categoryUC,
		SupplierUC:   supplierUC,
		ProductUC:    productUC,
		PriceSheetUC: priceSheetUC,
		DraftUC:      draftUC,
		PricingUC:    pricingUC,
		UserUC:       userUC,
		DashboardUC:  dashboardUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
