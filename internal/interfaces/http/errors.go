package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/molisur/molino-api/internal/application/dto"
	"github.com/molisur/molino-api/internal/domain"
)

// respondDomainError mapea los errores centinela del dominio a códigos HTTP.
// Los handlers lo usan como salida común después de sus casos específicos.
func respondDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"})
	case errors.Is(err, domain.ErrSaldoInsuficiente):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SALDO_INSUFICIENTE", Message: "saldo insuficiente para la operación"})
	case errors.Is(err, domain.ErrInconsistenciaInventario):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVENTARIO_INCONSISTENTE", Message: err.Error()})
	case errors.Is(err, domain.ErrSinTicket):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SIN_TICKET", Message: "la recepción aún no tiene ticket emitido"})
	case errors.Is(err, domain.ErrOrdenFinalizada):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ORDEN_FINALIZADA", Message: "la orden de producción ya está finalizada"})
	case errors.Is(err, domain.ErrYaAcreditado):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "YA_ACREDITADO", Message: "la recepción ya tiene su crédito de harina confirmado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
