package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/product-pricing-api/internal/application/dto"
	"github.com/jhoicas/product-pricing-api/pkg/jwt"
)

// Locals keys para UserID, StoreID y Role en Fiber.
const (
	LocalUserID  = "user_id"
	LocalStoreID = "store_id"
	LocalRole    = "role"
)

// AuthMiddleware valida el Bearer Token JWT y extrae UserID, StoreID y Role a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalStoreID, claims.StoreID)
		c.Locals(LocalRole, claims.Role)
		return c.Next()
	}
}

func localString(c *fiber.Ctx, key string) string {
	s, _ := c.Locals(key).(string)
	return s
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetStoreID devuelve el StoreID del contexto (después del middleware de auth).
func GetStoreID(c *fiber.Ctx) string { return localString(c, LocalStoreID) }

// GetRole devuelve el rol del usuario autenticado.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }
