package repository

import (
	"time"

	"github.com/molisur/molino-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MaquilaRepository define el puerto de persistencia para el ledger de cuenta
// corriente de harina. Los movimientos son inmutables: sólo inserción y lectura.
type MaquilaRepository interface {
	CreateMovimiento(m *entity.MaquilaMovimiento) error
	ListMovimientos(empresaID, clienteID int64, from, to *time.Time, limit, offset int) ([]*entity.MaquilaMovimiento, error)
	// Saldo deriva SUM(kg) por producto para un cliente. Nunca hay saldo
	// materializado.
	Saldo(empresaID, clienteID int64) ([]*entity.SaldoHarina, error)
	// SaldoProducto deriva SUM(kg) de un producto puntual (nil = sin producto).
	SaldoProducto(empresaID, clienteID int64, productoHarinaID *int64) (decimal.Decimal, error)
	// ExisteCreditoDeRecepcion indica si la recepción ya generó un crédito
	// confirmado. Llamar con la recepción bloqueada (FOR UPDATE) para cerrar la
	// carrera del doble crédito.
	ExisteCreditoDeRecepcion(recepcionID int64) (bool, error)
	// TrigoPendienteKg suma el peso base (neto a pagar, o físico si no hubo
	// laboratorio) de las recepciones maquila del cliente que aún no generaron
	// crédito confirmado.
	TrigoPendienteKg(empresaID, clienteID int64) (int64, error)
}

// MaquilaTipoTrabajoRepository define el puerto para los presets de trabajo de
// maquila por empresa.
type MaquilaTipoTrabajoRepository interface {
	Create(t *entity.MaquilaTipoTrabajo) error
	GetByID(empresaID, id int64) (*entity.MaquilaTipoTrabajo, error)
	Update(t *entity.MaquilaTipoTrabajo) error
	List(empresaID int64, soloActivos bool) ([]*entity.MaquilaTipoTrabajo, error)
}
