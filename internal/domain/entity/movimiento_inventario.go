package entity

import "time"

// Tipos de movimiento de inventario (silos y lotes).
const (
	MovimientoIngresoSilo       = "INGRESO_SILO"       // entrada desde recepción (origen nulo)
	MovimientoTrasiego          = "TRASIEGO"           // traslado entre silos
	MovimientoMezclaSalida      = "MEZCLA_SALIDA"      // salida de un lote origen en una mezcla
	MovimientoMezclaEntrada     = "MEZCLA_ENTRADA"     // entrada del lote nuevo de una mezcla (origen nulo)
	MovimientoConsumoProduccion = "CONSUMO_PRODUCCION" // consumo de lote en orden de producción
)

// MovimientoInventario es la fila de auditoría inmutable de un evento de
// inventario. El "silo actual" de un lote se deriva de este log, ordenado
// totalmente por (fecha, id); por eso el log es sólo-apéndice.
type MovimientoInventario struct {
	ID         int64
	EmpresaID  int64
	SucursalID *int64

	TipoMovimiento string
	SiloOrigenID   *int64
	SiloDestinoID  *int64
	LoteID         int64
	CantidadKg     int64

	Fecha       time.Time
	UsuarioID   *int64
	Observacion string
}
