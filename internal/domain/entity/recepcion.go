package entity

import "time"

// Tipos de recepción.
const (
	RecepcionTipoCompra  = "compra"  // compra de grano a proveedor
	RecepcionTipoMaquila = "maquila" // depósito de grano de cliente maquila
)

// Estados de recepción.
const (
	RecepcionEstadoEnProceso  = "en_proceso"
	RecepcionEstadoFinalizado = "finalizado"
)

// Recepcion representa un ingreso de camión a romana: pesaje bruto/tara,
// castigos de laboratorio y ticket de trazabilidad. El contraparte es
// proveedor (compra) o cliente (maquila), nunca ambos.
type Recepcion struct {
	ID                 int64
	EmpresaID          int64
	SucursalID         *int64
	ProveedorID        *int64
	ClienteID          *int64
	ProductoAgricolaID *int64
	ChoferID           *int64
	CamionID           *int64
	CarroID            *int64

	TipoRecepcion string
	Estado        string

	// Ticket: emitido exactamente una vez, cuando existen BRUTO y TARA.
	TicketCodigo string
	TicketToken  string

	NumeroGuiaDespacho string
	FolioRomana        string
	ChoferNombre       string

	PesoBrutoKg int64
	PesoTaraKg  int64
	// PesoNetoFisicoKg es columna generada en la DB (bruto - tara); se lee, nunca se escribe.
	PesoNetoFisicoKg int64

	DescuentoHumedadKg   int64
	DescuentoImpurezasKg int64
	PesoNetoPagarKg      int64

	FechaEntrada      time.Time
	FechaSalida       *time.Time
	UsuarioOperadorID *int64
	Observaciones     string
}

// NetoFisicoKg devuelve el neto físico derivado de los pesajes en memoria.
// Coincide con la columna generada cuando ambos pesajes existen.
func (r *Recepcion) NetoFisicoKg() int64 {
	return r.PesoBrutoKg - r.PesoTaraKg
}

// PesoBaseKg devuelve el peso que manda para lotes y maquila: neto a pagar si
// existe, si no el neto físico.
func (r *Recepcion) PesoBaseKg() int64 {
	if r.PesoNetoPagarKg > 0 {
		return r.PesoNetoPagarKg
	}
	return r.PesoNetoFisicoKg
}

// TieneTicket indica si el ticket ya fue emitido.
func (r *Recepcion) TieneTicket() bool {
	return r.TicketCodigo != ""
}
