package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrSaldoInsuficiente: el lote o el silo no tienen kg suficientes para la operación.
	ErrSaldoInsuficiente = errors.New("saldo insuficiente")

	// ErrInconsistenciaInventario: el saldo del lote y el nivel de su silo no
	// concuerdan sobre la disponibilidad. Indica corrupción de datos aguas
	// arriba; la operación se detiene en vez de auto-corregir.
	ErrInconsistenciaInventario = errors.New("inconsistencia entre lote y silo")

	// ErrSinTicket: la recepción aún no tiene ticket emitido (faltan pesajes).
	ErrSinTicket = errors.New("la recepción no tiene ticket emitido")

	// ErrOrdenFinalizada: la orden de producción ya fue cerrada con un rendimiento.
	ErrOrdenFinalizada = errors.New("la orden de producción ya está finalizada")

	// ErrYaAcreditado: la recepción maquila ya tiene un crédito de harina confirmado.
	ErrYaAcreditado = errors.New("la recepción ya tiene harina acreditada")
)
