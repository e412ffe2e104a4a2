package entity

import "time"

// Estados de lote. El paso a consumido es de una sola vía: ocurre cuando la
// cantidad actual llega a cero y nunca se revierte.
const (
	LoteEstadoActivo    = "activo"
	LoteEstadoConsumido = "consumido"
)

// Lote es una cantidad trazable de producto con código único. Nace de una
// recepción (código = ticket) o de una mezcla de dos lotes (código MIX-).
// El silo actual NO es un campo: se deriva del último movimiento de inventario.
type Lote struct {
	ID          int64
	EmpresaID   int64
	CodigoLote  string
	RecepcionID *int64 // nil para lotes de mezcla

	CantidadInicialKg int64 // inmutable tras la creación
	CantidadActualKg  int64 // monótonamente no creciente
	Estado            string

	FechaCreacion time.Time
}

// Activo indica si el lote todavía tiene saldo disponible.
func (l *Lote) Activo() bool {
	return l.Estado == LoteEstadoActivo
}

// Descontar reduce el saldo del lote y hace el flip a consumido al llegar a
// cero. No valida saldo: eso es responsabilidad del caso de uso (con la fila
// bloqueada).
func (l *Lote) Descontar(kg int64) {
	l.CantidadActualKg -= kg
	if l.CantidadActualKg <= 0 {
		l.CantidadActualKg = 0
		l.Estado = LoteEstadoConsumido
	}
}
