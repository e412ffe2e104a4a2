package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AcreditarHarinaRequest body para POST /api/maquila/acreditar: confirma el
// crédito de harina de una recepción según un tipo de trabajo.
type AcreditarHarinaRequest struct {
	RecepcionID   int64  `json:"recepcion_id"`
	TipoTrabajoID int64  `json:"tipo_trabajo_id"`
	Observacion   string `json:"observacion,omitempty"`
}

// RetiroHarinaRequest body para POST /api/maquila/retiros.
type RetiroHarinaRequest struct {
	ClienteID        int64           `json:"cliente_id"`
	ProductoHarinaID *int64          `json:"producto_harina_id,omitempty"`
	Kg               decimal.Decimal `json:"kg"`
	SacosCantidad    *int64          `json:"sacos_cantidad,omitempty"`
	SacoPesoKg       decimal.Decimal `json:"saco_peso_kg,omitempty"`
	Observacion      string          `json:"observacion,omitempty"`
}

// AjusteMaquilaRequest body para POST /api/maquila/ajustes: fila correctiva
// con el signo que entregue el caller.
type AjusteMaquilaRequest struct {
	ClienteID        int64           `json:"cliente_id"`
	ProductoHarinaID *int64          `json:"producto_harina_id,omitempty"`
	Kg               decimal.Decimal `json:"kg"`
	Observacion      string          `json:"observacion"`
}

// MaquilaMovimientoResponse fila del ledger.
type MaquilaMovimientoResponse struct {
	ID               int64           `json:"id"`
	ClienteID        int64           `json:"cliente_id"`
	ProductoHarinaID *int64          `json:"producto_harina_id,omitempty"`
	RecepcionID      *int64          `json:"recepcion_id,omitempty"`
	TipoMovimiento   string          `json:"tipo_movimiento"`
	Kg               decimal.Decimal `json:"kg"`
	Observacion      string          `json:"observacion,omitempty"`
	Fecha            time.Time       `json:"fecha"`
}

// SaldoHarinaDTO saldo derivado por producto.
type SaldoHarinaDTO struct {
	ProductoHarinaID *int64          `json:"producto_harina_id,omitempty"`
	ProductoNombre   string          `json:"producto_nombre,omitempty"`
	SaldoKg          decimal.Decimal `json:"saldo_kg"`
}

// CuentaCorrienteResponse saldo + movimientos de un cliente maquila.
type CuentaCorrienteResponse struct {
	ClienteID int64            `json:"cliente_id"`
	Saldos    []SaldoHarinaDTO `json:"saldos"`
	// TrigoPendienteKg es el trigo entregado que aún no se convierte en
	// crédito de harina.
	TrigoPendienteKg int64                       `json:"trigo_pendiente_kg"`
	Movimientos      []MaquilaMovimientoResponse `json:"movimientos"`
}

// TipoTrabajoRequest body para crear/actualizar un tipo de trabajo maquila.
type TipoTrabajoRequest struct {
	Nombre           string          `json:"nombre"`
	Porcentaje       decimal.Decimal `json:"porcentaje"`
	ProductoHarinaID *int64          `json:"producto_harina_id,omitempty"`
	Activo           *bool           `json:"activo,omitempty"`
	Orden            int64           `json:"orden,omitempty"`
}

// TipoTrabajoResponse preset de trabajo maquila.
type TipoTrabajoResponse struct {
	ID               int64           `json:"id"`
	Nombre           string          `json:"nombre"`
	Porcentaje       decimal.Decimal `json:"porcentaje"`
	ProductoHarinaID *int64          `json:"producto_harina_id,omitempty"`
	Activo           bool            `json:"activo"`
	Orden            int64           `json:"orden"`
}
