package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Laboratorio es el análisis de calidad de una recepción (relación 1 a 1).
// Sus porcentajes alimentan los castigos por humedad e impurezas que se
// escriben de vuelta sobre la recepción.
type Laboratorio struct {
	ID          int64
	EmpresaID   int64
	RecepcionID int64

	HumedadPorcentaje   decimal.Decimal
	ImpurezasPorcentaje decimal.Decimal
	PesoHectolitrico    decimal.Decimal
	ProteinaPorcentaje  decimal.Decimal
	GlutenWet           decimal.Decimal
	IndiceCaida         *int64
	GranosChuzos        decimal.Decimal
	PuntaNegra          decimal.Decimal

	AprobadoCalidad   bool
	UsuarioAnalistaID *int64
	FechaAnalisis     time.Time
	Observaciones     string
}
