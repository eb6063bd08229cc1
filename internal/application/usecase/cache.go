package usecase

import (
	"context"

	"github.com/jhoicas/product-pricing-api/internal/application/ports"
	"github.com/jhoicas/product-pricing-api/pkg/logger"
)

// Helpers cache-aside. Los errores de la caché se registran y nunca se propagan.

func readCache(ctx context.Context, c ports.ReferenceCache, log *logger.Logger, key string, dst any) bool {
	if c == nil {
		return false
	}
	hit, err := c.GetJSON(ctx, key, dst)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: lectura fallida")
		return false
	}
	return hit
}

func writeCache(ctx context.Context, c ports.ReferenceCache, log *logger.Logger, key string, v any) {
	if c == nil {
		return
	}
	if err := c.SetJSON(ctx, key, v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache: escritura fallida")
	}
}

func dropCache(ctx context.Context, c ports.ReferenceCache, log *logger.Logger, keys ...string) {
	if c == nil {
		return
	}
	if err := c.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("cache: invalidación fallida")
	}
}
