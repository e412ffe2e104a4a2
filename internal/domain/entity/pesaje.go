package entity

import "time"

// Tipos de pesaje (evento inmutable de romana).
const (
	PesajeTipoBruto = "BRUTO"
	PesajeTipoTara  = "TARA"
)

// Orígenes de pesaje.
const (
	PesajeOrigenManual = "MANUAL"
	PesajeOrigenRomana = "ROMANA"
)

// Pesaje es el registro inmutable de una lectura de romana asociada a una
// recepción. La recepción guarda el último valor por tipo; el historial vive acá.
type Pesaje struct {
	ID          int64
	EmpresaID   int64
	RecepcionID int64
	Tipo        string
	PesoKg      int64
	Origen      string
	Motivo      string
	UsuarioID   *int64
	CreatedAt   time.Time
}
