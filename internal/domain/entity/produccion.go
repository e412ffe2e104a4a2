package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden de producción. El paso a finalizada es terminal y ocurre
// exactamente una vez, al registrar el rendimiento.
const (
	OrdenEstadoPlanificada = "planificada"
	OrdenEstadoAbierta     = "abierta"
	OrdenEstadoFinalizada  = "finalizada"
)

// Formula define los ingredientes y la merma tolerable para producir un
// producto terminado.
type Formula struct {
	ID                  int64
	EmpresaID           int64
	ProductoTerminadoID *int64
	Nombre              string
	Descripcion         string
	MermaTolerablePct   decimal.Decimal
	Activa              bool
	Ingredientes        []FormulaIngrediente
}

// FormulaIngrediente es un insumo de la fórmula con su proporción kg de
// insumo por kg de producto.
type FormulaIngrediente struct {
	ID                   int64
	EmpresaID            int64
	FormulaID            int64
	ProductoAgricolaID   int64
	ProporcionKgPorUnidad decimal.Decimal
}

// OrdenProduccion es una corrida de molienda con producto objetivo y fórmula.
type OrdenProduccion struct {
	ID                   int64
	EmpresaID            int64
	SucursalID           *int64
	NumeroOP             string
	ProductoObjetivoID   *int64
	FormulaID            *int64
	CantidadObjetivo     int64
	FechaPlanificada     *time.Time
	FechaInicioReal      *time.Time
	FechaFinReal         *time.Time
	Estado               string
	UsuarioResponsableID *int64
	CreatedAt            time.Time
}

// Finalizada indica si la orden ya fue cerrada con rendimiento.
func (o *OrdenProduccion) Finalizada() bool {
	return o.Estado == OrdenEstadoFinalizada
}

// Rendimiento es el registro de cierre de una orden: balance de masa entre
// trigo molido y productos obtenidos. La merma NUNCA se escribe: se deriva,
// de modo que molido == harina + subproductos + merma sea tautológico.
type Rendimiento struct {
	ID                int64
	EmpresaID         int64
	OrdenProduccionID int64

	TrigoMolidoKg int64
	HarinaTotalKg int64

	Subproductos []RendimientoSubproducto

	UsuarioRegistroID *int64
	FechaRegistro     time.Time
	Observaciones     string
}

// SubproductosKg suma los kg de todos los subproductos.
func (r *Rendimiento) SubproductosKg() int64 {
	var total int64
	for _, sp := range r.Subproductos {
		total += sp.CantidadKg
	}
	return total
}

// MermaKg deriva la merma del balance de masa. Puede ser negativa (salida
// mayor que entrada): se reporta tal cual porque señala un error de digitación
// aguas arriba, nunca se recorta a cero.
func (r *Rendimiento) MermaKg() int64 {
	return r.TrigoMolidoKg - (r.HarinaTotalKg + r.SubproductosKg())
}

// PorcentajeExtraccion devuelve harina/molido en porcentaje con 2 decimales.
func (r *Rendimiento) PorcentajeExtraccion() decimal.Decimal {
	if r.TrigoMolidoKg <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(r.HarinaTotalKg * 100).
		Div(decimal.NewFromInt(r.TrigoMolidoKg)).
		Round(2)
}

// EstadisticasProduccion resume las molidas cerradas de un período: balance de
// masa agregado y cuántas órdenes excedieron la merma tolerable de su fórmula.
type EstadisticasProduccion struct {
	OrdenesCerradas         int64
	TrigoMolidoKg           int64
	HarinaTotalKg           int64
	SubproductosKg          int64
	MermaKg                 int64
	OrdenesConMermaExcedida int64
}

// PorcentajeExtraccion devuelve harina/molido agregado en porcentaje con 2
// decimales.
func (e *EstadisticasProduccion) PorcentajeExtraccion() decimal.Decimal {
	if e.TrigoMolidoKg <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(e.HarinaTotalKg * 100).
		Div(decimal.NewFromInt(e.TrigoMolidoKg)).
		Round(2)
}

// RendimientoSubproducto es un subproducto obtenido (afrecho, semita, etc.).
type RendimientoSubproducto struct {
	ID            int64
	RendimientoID int64
	Nombre        string
	CantidadKg    int64
}

// OrdenProduccionInsumo es la fila de trazabilidad que liga el consumo de
// materia prima de una orden a un lote específico.
type OrdenProduccionInsumo struct {
	ID                  int64
	EmpresaID           int64
	OrdenProduccionID   int64
	LoteID              int64
	CantidadUtilizadaKg int64
}
