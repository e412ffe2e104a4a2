package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/molisur/molino-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Rendimiento — balance de masa de la molienda
// ──────────────────────────────────────────────────────────────────────────────

func TestRendimiento_MermaDerivadaDelBalance(t *testing.T) {
	r := entity.Rendimiento{
		TrigoMolidoKg: 10000,
		HarinaTotalKg: 7500,
		Subproductos: []entity.RendimientoSubproducto{
			{Nombre: "afrecho", CantidadKg: 1800},
			{Nombre: "semita", CantidadKg: 500},
		},
	}

	assert.Equal(t, int64(2300), r.SubproductosKg())
	assert.Equal(t, int64(200), r.MermaKg(), "merma = molido - (harina + subproductos)")
}

// La merma negativa (salida > entrada) se reporta tal cual: señala un error de
// digitación y no debe esconderse recortándola a cero.
func TestRendimiento_MermaNegativaSeReporta(t *testing.T) {
	r := entity.Rendimiento{
		TrigoMolidoKg: 10000,
		HarinaTotalKg: 8000,
		Subproductos: []entity.RendimientoSubproducto{
			{Nombre: "afrecho", CantidadKg: 2500},
		},
	}

	assert.Equal(t, int64(-500), r.MermaKg())
}

func TestRendimiento_PorcentajeExtraccion(t *testing.T) {
	r := entity.Rendimiento{TrigoMolidoKg: 10000, HarinaTotalKg: 7500}
	assert.True(t, decimal.NewFromInt(75).Equal(r.PorcentajeExtraccion()))

	// dos decimales de precisión
	r = entity.Rendimiento{TrigoMolidoKg: 3000, HarinaTotalKg: 2000}
	assert.True(t, decimal.NewFromFloat(66.67).Equal(r.PorcentajeExtraccion()),
		"esperaba 66.67, obtuve %s", r.PorcentajeExtraccion())
}

func TestRendimiento_PorcentajeExtraccion_SinMolidoEsCero(t *testing.T) {
	r := entity.Rendimiento{TrigoMolidoKg: 0, HarinaTotalKg: 500}
	assert.True(t, r.PorcentajeExtraccion().IsZero())
}

func TestOrdenProduccion_Finalizada(t *testing.T) {
	o := entity.OrdenProduccion{Estado: entity.OrdenEstadoAbierta}
	assert.False(t, o.Finalizada())

	o.Estado = entity.OrdenEstadoFinalizada
	assert.True(t, o.Finalizada())
}
