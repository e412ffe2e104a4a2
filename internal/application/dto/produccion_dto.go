package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FormulaIngredienteDTO un insumo de la fórmula.
type FormulaIngredienteDTO struct {
	ID                    int64           `json:"id,omitempty"`
	ProductoAgricolaID    int64           `json:"producto_agricola_id"`
	ProporcionKgPorUnidad decimal.Decimal `json:"proporcion_kg_por_unidad"`
}

// FormulaRequest body para crear/actualizar fórmulas.
type FormulaRequest struct {
	Nombre              string                  `json:"nombre"`
	Descripcion         string                  `json:"descripcion,omitempty"`
	ProductoTerminadoID *int64                  `json:"producto_terminado_id,omitempty"`
	MermaTolerablePct   decimal.Decimal         `json:"merma_tolerable_pct"`
	Activa              *bool                   `json:"activa,omitempty"`
	Ingredientes        []FormulaIngredienteDTO `json:"ingredientes"`
}

// FormulaResponse fórmula con ingredientes.
type FormulaResponse struct {
	ID                  int64                   `json:"id"`
	Nombre              string                  `json:"nombre"`
	Descripcion         string                  `json:"descripcion,omitempty"`
	ProductoTerminadoID *int64                  `json:"producto_terminado_id,omitempty"`
	MermaTolerablePct   decimal.Decimal         `json:"merma_tolerable_pct"`
	Activa              bool                    `json:"activa"`
	Ingredientes        []FormulaIngredienteDTO `json:"ingredientes"`
}

// CrearOrdenRequest body para POST /api/produccion/ordenes.
type CrearOrdenRequest struct {
	ProductoObjetivoID *int64     `json:"producto_objetivo_id,omitempty"`
	FormulaID          *int64     `json:"formula_id,omitempty"`
	SucursalID         *int64     `json:"sucursal_id,omitempty"`
	CantidadObjetivo   int64      `json:"cantidad_objetivo"`
	FechaPlanificada   *time.Time `json:"fecha_planificada,omitempty"`
}

// ConsumirInsumoRequest body para POST /api/produccion/ordenes/:id/insumos:
// consume kg de un lote para la orden.
type ConsumirInsumoRequest struct {
	LoteID     int64 `json:"lote_id"`
	CantidadKg int64 `json:"cantidad_kg"`
}

// OrdenResponse orden de producción.
type OrdenResponse struct {
	ID                 int64      `json:"id"`
	NumeroOP           string     `json:"numero_op"`
	ProductoObjetivoID *int64     `json:"producto_objetivo_id,omitempty"`
	FormulaID          *int64     `json:"formula_id,omitempty"`
	CantidadObjetivo   int64      `json:"cantidad_objetivo"`
	Estado             string     `json:"estado"`
	FechaPlanificada   *time.Time `json:"fecha_planificada,omitempty"`
	FechaInicioReal    *time.Time `json:"fecha_inicio_real,omitempty"`
	FechaFinReal       *time.Time `json:"fecha_fin_real,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// InsumoResponse consumo de lote registrado en una orden.
type InsumoResponse struct {
	ID                  int64 `json:"id"`
	OrdenProduccionID   int64 `json:"orden_produccion_id"`
	LoteID              int64 `json:"lote_id"`
	CantidadUtilizadaKg int64 `json:"cantidad_utilizada_kg"`
}

// SubproductoDTO un subproducto del rendimiento.
type SubproductoDTO struct {
	Nombre     string `json:"nombre"`
	CantidadKg int64  `json:"cantidad_kg"`
}

// RegistrarRendimientoRequest body para POST /api/produccion/ordenes/:id/rendimiento.
// Insumos permite descontar los lotes molidos en la misma transacción del
// cierre; los consumos registrados antes por el endpoint de insumos también
// valen.
type RegistrarRendimientoRequest struct {
	TrigoMolidoKg int64                   `json:"trigo_molido_kg"`
	HarinaTotalKg int64                   `json:"harina_total_kg"`
	Insumos       []ConsumirInsumoRequest `json:"insumos,omitempty"`
	Subproductos  []SubproductoDTO        `json:"subproductos,omitempty"`
	Observaciones string                  `json:"observaciones,omitempty"`
}

// EstadisticasProduccionResponse resumen de molienda para el tablero.
type EstadisticasProduccionResponse struct {
	OrdenesCerradas         int64           `json:"ordenes_cerradas"`
	TrigoMolidoKg           int64           `json:"trigo_molido_kg"`
	HarinaTotalKg           int64           `json:"harina_total_kg"`
	SubproductosKg          int64           `json:"subproductos_kg"`
	MermaKg                 int64           `json:"merma_kg"`
	PorcentajeExtraccion    decimal.Decimal `json:"porcentaje_extraccion"`
	OrdenesConMermaExcedida int64           `json:"ordenes_con_merma_excedida"`
}

// RendimientoResponse rendimiento con sus derivados de balance de masa.
type RendimientoResponse struct {
	ID                   int64            `json:"id"`
	OrdenProduccionID    int64            `json:"orden_produccion_id"`
	TrigoMolidoKg        int64            `json:"trigo_molido_kg"`
	HarinaTotalKg        int64            `json:"harina_total_kg"`
	Subproductos         []SubproductoDTO `json:"subproductos"`
	MermaKg              int64            `json:"merma_kg"`
	PorcentajeExtraccion decimal.Decimal  `json:"porcentaje_extraccion"`
	ExcedeMermaTolerable bool             `json:"excede_merma_tolerable"`
	FechaRegistro        time.Time        `json:"fecha_registro"`
}
