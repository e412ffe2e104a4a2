package laboratorio

import "github.com/shopspring/decimal"

// HumedadEstandarPct es la humedad base de recepción: sólo el exceso sobre
// este valor castiga el peso. Constante uniforme, sin override por empresa.
const HumedadEstandarPct = 14

// Descuentos es el resultado del cálculo de castigos de una recepción.
type Descuentos struct {
	DescuentoHumedadKg   int64
	DescuentoImpurezasKg int64
	PesoNetoPagarKg      int64
}

// CalcularDescuentos aplica los castigos de laboratorio sobre el neto físico:
//
//	excesoHumedad   = max(humedad% - 14, 0)
//	descuentoHumedad   = round(neto * excesoHumedad / 100)
//	descuentoImpurezas = round(neto * impurezas% / 100)
//	netoPagar          = max(neto - descuentoHumedad - descuentoImpurezas, 0)
//
// Servicio de dominio puro: no toca persistencia.
func CalcularDescuentos(pesoNetoFisicoKg int64, humedadPct, impurezasPct decimal.Decimal) Descuentos {
	neto := decimal.NewFromInt(pesoNetoFisicoKg)
	cien := decimal.NewFromInt(100)

	excesoHumedad := humedadPct.Sub(decimal.NewFromInt(HumedadEstandarPct))
	if excesoHumedad.IsNegative() {
		excesoHumedad = decimal.Zero
	}

	descHumedad := neto.Mul(excesoHumedad).Div(cien).Round(0).IntPart()
	descImpurezas := neto.Mul(impurezasPct).Div(cien).Round(0).IntPart()

	netoPagar := pesoNetoFisicoKg - descHumedad - descImpurezas
	if netoPagar < 0 {
		netoPagar = 0
	}

	return Descuentos{
		DescuentoHumedadKg:   descHumedad,
		DescuentoImpurezasKg: descImpurezas,
		PesoNetoPagarKg:      netoPagar,
	}
}
