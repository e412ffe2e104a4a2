package laboratorio_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/molisur/molino-api/internal/domain/laboratorio"
)

// ──────────────────────────────────────────────────────────────────────────────
// CalcularDescuentos — castigos de humedad e impurezas sobre el neto físico
// ──────────────────────────────────────────────────────────────────────────────

// Humedad bajo el estándar del 14%: no castiga, sólo descuentan las impurezas.
func TestCalcularDescuentos_HumedadBajoEstandarNoCastiga(t *testing.T) {
	d := laboratorio.CalcularDescuentos(10000,
		decimal.NewFromFloat(12.5),
		decimal.NewFromFloat(2))

	assert.Equal(t, int64(0), d.DescuentoHumedadKg)
	assert.Equal(t, int64(200), d.DescuentoImpurezasKg, "2% de 10.000 kg")
	assert.Equal(t, int64(9800), d.PesoNetoPagarKg)
}

// Humedad exactamente en el estándar: el exceso es cero.
func TestCalcularDescuentos_HumedadEnEstandarExacto(t *testing.T) {
	d := laboratorio.CalcularDescuentos(10000,
		decimal.NewFromInt(14),
		decimal.Zero)

	assert.Equal(t, int64(0), d.DescuentoHumedadKg)
	assert.Equal(t, int64(0), d.DescuentoImpurezasKg)
	assert.Equal(t, int64(10000), d.PesoNetoPagarKg)
}

// Caso típico de campaña: trigo húmedo con impurezas.
func TestCalcularDescuentos_ExcesoDeHumedadEImpurezas(t *testing.T) {
	// humedad 16.5% → exceso 2.5% → 250 kg sobre 10.000
	// impurezas 1.8% → 180 kg
	d := laboratorio.CalcularDescuentos(10000,
		decimal.NewFromFloat(16.5),
		decimal.NewFromFloat(1.8))

	assert.Equal(t, int64(250), d.DescuentoHumedadKg)
	assert.Equal(t, int64(180), d.DescuentoImpurezasKg)
	assert.Equal(t, int64(9570), d.PesoNetoPagarKg)
}

// El redondeo es al kg más cercano, no truncado.
func TestCalcularDescuentos_RedondeoAlKgMasCercano(t *testing.T) {
	// 3333 kg * 1.5% = 49.995 → 50 kg
	d := laboratorio.CalcularDescuentos(3333,
		decimal.NewFromInt(14),
		decimal.NewFromFloat(1.5))

	assert.Equal(t, int64(50), d.DescuentoImpurezasKg)
	assert.Equal(t, int64(3283), d.PesoNetoPagarKg)
}

// Castigos absurdos (carga casi pura impureza) no dejan el neto a pagar
// negativo: se recorta en cero.
func TestCalcularDescuentos_NetoPagarNuncaNegativo(t *testing.T) {
	d := laboratorio.CalcularDescuentos(100,
		decimal.NewFromInt(80),
		decimal.NewFromInt(60))

	assert.Equal(t, int64(66), d.DescuentoHumedadKg)
	assert.Equal(t, int64(60), d.DescuentoImpurezasKg)
	assert.Equal(t, int64(0), d.PesoNetoPagarKg, "el neto a pagar se recorta en cero")
}

// Peso cero: todos los castigos en cero.
func TestCalcularDescuentos_PesoCero(t *testing.T) {
	d := laboratorio.CalcularDescuentos(0,
		decimal.NewFromInt(20),
		decimal.NewFromInt(5))

	assert.Equal(t, int64(0), d.DescuentoHumedadKg)
	assert.Equal(t, int64(0), d.DescuentoImpurezasKg)
	assert.Equal(t, int64(0), d.PesoNetoPagarKg)
}
