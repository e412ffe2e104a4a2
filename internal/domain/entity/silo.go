package entity

import "time"

// UmbralRebalsePct es el porcentaje de ocupación desde el cual el silo se
// marca con alerta de rebalse. La capacidad es informativa: un silo sobre el
// 100% se alerta, no se bloquea.
const UmbralRebalsePct = 90

// Silo es un depósito físico con capacidad máxima y nivel actual en kg.
type Silo struct {
	ID               int64
	EmpresaID        int64
	BodegaID         *int64
	Codigo           string
	Descripcion      string
	CapacidadMaxKg   int64
	NivelActualKg    int64
	Estado           string
	ProductoActualID *int64
	CreatedAt        time.Time
}

// PorcentajeOcupacion devuelve el nivel como porcentaje de la capacidad
// (redondeado). Cero si la capacidad no está definida.
func (s *Silo) PorcentajeOcupacion() int64 {
	if s.CapacidadMaxKg <= 0 {
		return 0
	}
	return (s.NivelActualKg*100 + s.CapacidadMaxKg/2) / s.CapacidadMaxKg
}

// AlertaRebalse indica si el nivel alcanzó el umbral de rebalse.
func (s *Silo) AlertaRebalse() bool {
	return s.CapacidadMaxKg > 0 && s.NivelActualKg*10 >= s.CapacidadMaxKg*9
}

// Bodega agrupa silos dentro de una sucursal.
type Bodega struct {
	ID          int64
	EmpresaID   int64
	SucursalID  *int64
	Nombre      string
	Descripcion string
	CreatedAt   time.Time
}
