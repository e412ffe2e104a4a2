package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/molisur/molino-api/internal/domain/entity"
)

func TestSilo_PorcentajeOcupacion(t *testing.T) {
	casos := []struct {
		nombre    string
		capacidad int64
		nivel     int64
		esperado  int64
	}{
		{"silo vacío", 50000, 0, 0},
		{"mitad exacta", 50000, 25000, 50},
		{"lleno", 50000, 50000, 100},
		{"sobre capacidad", 50000, 55000, 110},
		{"redondeo al entero más cercano", 3000, 1000, 33},
		{"capacidad cero no divide", 0, 1000, 0},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			s := entity.Silo{CapacidadMaxKg: c.capacidad, NivelActualKg: c.nivel}
			assert.Equal(t, c.esperado, s.PorcentajeOcupacion())
		})
	}
}

func TestSilo_AlertaRebalse(t *testing.T) {
	// El umbral es 90%: justo en el umbral alerta, justo debajo no.
	s := entity.Silo{CapacidadMaxKg: 10000, NivelActualKg: 9000}
	assert.True(t, s.AlertaRebalse(), "90% exacto debe alertar")

	s.NivelActualKg = 8999
	assert.False(t, s.AlertaRebalse())

	s.NivelActualKg = 11000
	assert.True(t, s.AlertaRebalse(), "sobre el 100% alerta, no bloquea")

	sinCapacidad := entity.Silo{CapacidadMaxKg: 0, NivelActualKg: 5000}
	assert.False(t, sinCapacidad.AlertaRebalse(), "sin capacidad definida no hay alerta")
}
