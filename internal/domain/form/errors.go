package form

import "errors"

// Errores del editor de formularios.
var (
	ErrUnknownField        = errors.New("campo desconocido")
	ErrPackNotFound        = errors.New("paquete no encontrado")
	ErrAttributeNotFound   = errors.New("atributo no encontrado")
	ErrOptionNotFound      = errors.New("opción no encontrada")
	ErrVariationNotFound   = errors.New("variación no encontrada")
	ErrDraftSubmitted      = errors.New("el borrador ya fue enviado")
	ErrStepBlocked         = errors.New("el formulario no cumple las condiciones para avanzar")
	ErrInvalidTransition   = errors.New("transición de etapa inválida")
	ErrVariationsRequired  = errors.New("el producto requiere al menos una variación")
	ErrTooManyCombinations = errors.New("los atributos generan demasiadas combinaciones")
)
