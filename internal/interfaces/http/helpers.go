package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/product-pricing-api/internal/application/dto"
	"github.com/jhoicas/product-pricing-api/internal/domain"
	"github.com/jhoicas/product-pricing-api/internal/domain/form"
	"github.com/jhoicas/product-pricing-api/pkg/validation"
)

var validate = validation.New()

// bindAndValidate parsea el body JSON y aplica las reglas de validator.
// Devuelve false si ya respondió con el error; el handler debe retornar err sin escribir otra respuesta.
func bindAndValidate(c *fiber.Ctx, req interface{}) (bool, error) {
	if err := c.BodyParser(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(req); err != nil {
		fields, ok := validation.Fields(err)
		if !ok {
			return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
		}
		return false, c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ValidationErrorResponse{
			Code: "VALIDATION", Message: "datos inválidos", Fields: fields,
		})
	}
	return true, nil
}

// pageParams lee limit/offset con los límites de dto.PageRequest.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p.Limit, p.Offset
}

// requireStore corta con 401 si el token no trae tienda.
func requireStore(c *fiber.Ctx) (string, bool, error) {
	storeID := GetStoreID(c)
	if storeID == "" {
		return "", false, c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "store_id requerido"})
	}
	return storeID, true, nil
}

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUserNotFound, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{form.ErrUnknownField, fiber.StatusBadRequest, "UNKNOWN_FIELD"},
	{form.ErrPackNotFound, fiber.StatusNotFound, "PACK_NOT_FOUND"},
	{form.ErrAttributeNotFound, fiber.StatusNotFound, "ATTRIBUTE_NOT_FOUND"},
	{form.ErrOptionNotFound, fiber.StatusNotFound, "OPTION_NOT_FOUND"},
	{form.ErrVariationNotFound, fiber.StatusNotFound, "VARIATION_NOT_FOUND"},
	{form.ErrDraftSubmitted, fiber.StatusConflict, "DRAFT_SUBMITTED"},
	{form.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{form.ErrStepBlocked, fiber.StatusUnprocessableEntity, "STEP_BLOCKED"},
	{form.ErrVariationsRequired, fiber.StatusUnprocessableEntity, "VARIATIONS_REQUIRED"},
	{form.ErrTooManyCombinations, fiber.StatusUnprocessableEntity, "TOO_MANY_COMBINATIONS"},
}

// writeError traduce errores de dominio a HTTP. Lo no mapeado es 500 y se registra.
func writeError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
