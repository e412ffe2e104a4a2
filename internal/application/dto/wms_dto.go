package dto

import "time"

// CrearLoteRequest body para POST /api/wms/lotes: crea un lote desde una
// recepción con ticket y lo ingresa a un silo. La recepción se indica por ID
// numérico o por código de ticket escaneado; cantidad_kg en cero ingresa todo
// el peso base.
type CrearLoteRequest struct {
	Recepcion  string `json:"recepcion"`
	SiloID     int64  `json:"silo_id"`
	CantidadKg int64  `json:"cantidad_kg,omitempty"`
}

// TrasiegoRequest body para POST /api/wms/trasiego.
type TrasiegoRequest struct {
	LoteID        int64  `json:"lote_id"`
	SiloOrigenID  int64  `json:"silo_origen_id"`
	SiloDestinoID int64  `json:"silo_destino_id"`
	CantidadKg    int64  `json:"cantidad_kg"`
	Observacion   string `json:"observacion,omitempty"`
}

// MezclaRequest body para POST /api/wms/mezclas: toma kg de dos lotes y los
// fusiona en un silo destino creando un lote nuevo. El código del lote nuevo
// es opcional; si falta se genera con formato MIX.
type MezclaRequest struct {
	LoteAID       int64  `json:"lote_a_id"`
	LoteBID       int64  `json:"lote_b_id"`
	CantidadAKg   int64  `json:"cantidad_a_kg"`
	CantidadBKg   int64  `json:"cantidad_b_kg"`
	SiloDestinoID int64  `json:"silo_destino_id"`
	CodigoLote    string `json:"codigo_lote,omitempty"`
	Observacion   string `json:"observacion,omitempty"`
}

// LoteResponse lote con su silo derivado.
type LoteResponse struct {
	ID                int64     `json:"id"`
	CodigoLote        string    `json:"codigo_lote"`
	RecepcionID       *int64    `json:"recepcion_id,omitempty"`
	CantidadInicialKg int64     `json:"cantidad_inicial_kg"`
	CantidadActualKg  int64     `json:"cantidad_actual_kg"`
	Estado            string    `json:"estado"`
	SiloActualID      *int64    `json:"silo_actual_id,omitempty"`
	SiloActualCodigo  string    `json:"silo_actual_codigo,omitempty"`
	FechaCreacion     time.Time `json:"fecha_creacion"`
}

// SiloMapaDTO una celda del mapa de silos.
type SiloMapaDTO struct {
	ID                  int64          `json:"id"`
	Codigo              string         `json:"codigo"`
	Descripcion         string         `json:"descripcion,omitempty"`
	CapacidadMaxKg      int64          `json:"capacidad_max_kg"`
	NivelActualKg       int64          `json:"nivel_actual_kg"`
	PorcentajeOcupacion int64          `json:"porcentaje_ocupacion"`
	AlertaRebalse       bool           `json:"alerta_rebalse"`
	Lotes               []LoteResponse `json:"lotes"`
}

// MovimientoResponse una fila del kardex de inventario.
type MovimientoResponse struct {
	ID             int64     `json:"id"`
	TipoMovimiento string    `json:"tipo_movimiento"`
	SiloOrigenID   *int64    `json:"silo_origen_id,omitempty"`
	SiloDestinoID  *int64    `json:"silo_destino_id,omitempty"`
	LoteID         int64     `json:"lote_id"`
	CantidadKg     int64     `json:"cantidad_kg"`
	Fecha          time.Time `json:"fecha"`
	Observacion    string    `json:"observacion,omitempty"`
}
