package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger maquila. El signo del kg lo decide el tipo,
// no el caller: los retiros se almacenan negativos y los créditos confirmados
// positivos. Saldo por (cliente, producto) = SUM(kg), nunca materializado.
const (
	MaquilaCreditoConfirmado = "CREDITO_HARINA_CONFIRMADO_KG"
	MaquilaRetiroHarina      = "RETIRO_HARINA_KG"
	MaquilaAjuste            = "AJUSTE_KG"
)

// SignoMaquila normaliza el signo de un kg según el tipo de movimiento.
// Tipos sin regla propia (ajustes) conservan el signo entregado.
func SignoMaquila(tipo string, kg decimal.Decimal) decimal.Decimal {
	switch tipo {
	case MaquilaRetiroHarina:
		return kg.Abs().Neg()
	case MaquilaCreditoConfirmado:
		return kg.Abs()
	default:
		return kg
	}
}

// MaquilaMovimiento es una fila inmutable del ledger de cuenta corriente de
// harina. No existe edición ni reversa: las correcciones son filas nuevas de
// signo contrario.
type MaquilaMovimiento struct {
	ID               int64
	EmpresaID        int64
	SucursalID       *int64
	BodegaID         *int64
	ClienteID        int64
	ProductoHarinaID *int64
	RecepcionID      *int64

	TipoMovimiento string
	Kg             decimal.Decimal // firmado; 2 decimales
	SacosCantidad  *int64
	SacoPesoKg     decimal.Decimal

	Observacion string
	UsuarioID   *int64
	CreatedAt   time.Time
}

// MaquilaTipoTrabajo es un preset de rendimiento configurado por empresa
// (ej. "Extracción 60%"): mapea el peso a pagar de una recepción al crédito
// de harina esperado.
type MaquilaTipoTrabajo struct {
	ID               int64
	EmpresaID        int64
	Nombre           string
	Porcentaje       decimal.Decimal // en (0, 100]
	ProductoHarinaID *int64
	Activo           bool
	Orden            int64
	CreatedAt        time.Time
}

// SaldoHarina es el saldo derivado por producto de un cliente maquila.
type SaldoHarina struct {
	ProductoHarinaID *int64
	ProductoNombre   string
	SaldoKg          decimal.Decimal
}
