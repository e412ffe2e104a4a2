// Package pdf implementa la generación del ticket de ingreso interno que
// acompaña al camión desde la romana hasta la descarga en silo.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Razón Social + RUT  │  N° Ticket + Fecha entrada   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RECEPCIÓN: tipo / guía despacho / folio romana / chofer     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA PESOS: Bruto | Tara | Neto físico                     │
//	│  CASTIGOS: Humedad | Impurezas | NETO A PAGAR                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ANÁLISIS (si hay): humedad / impurezas / PH / proteína      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: código de barras Code128 del ticket + token          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/molisur/molino-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 27, Green: 94, Blue: 32}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa recepcion.TicketPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerarTicketPDF genera el PDF del ticket y devuelve sus bytes. El análisis
// puede ser nil (molinos sin laboratorio o recepción aún sin analizar).
func (g *MarotoPDFGenerator) GenerarTicketPDF(
	_ context.Context,
	r *entity.Recepcion,
	empresa *entity.Empresa,
	analisis *entity.Laboratorio,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ticket de Ingreso "+r.TicketCodigo, true).
		WithAuthor(empresa.RazonSocial, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r, empresa))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(recepcionRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(pesosHeaderRow())
	m.AddRows(pesosRow(r))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(castigosRow(r))

	if analisis != nil {
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(analisisRows(analisis)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(barcodeRows(r)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: razón social + RUT (izq) y ticket + fecha de entrada (der).
func headerRow(r *entity.Recepcion, empresa *entity.Empresa) core.Row {
	fecha := r.FechaEntrada.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(empresa.RazonSocial, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RUT: "+empresa.Rut, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TICKET DE INGRESO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(r.TicketCodigo, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Entrada: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// recepcionRow: datos operativos de la recepción.
func recepcionRow(r *entity.Recepcion) core.Row {
	tipo := "COMPRA"
	if r.TipoRecepcion == entity.RecepcionTipoMaquila {
		tipo = "MAQUILA"
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DATOS DE LA RECEPCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Tipo: %s   |   Guía despacho: %s   |   Folio romana: %s",
				tipo,
				nonEmpty(r.NumeroGuiaDespacho, "—"),
				nonEmpty(r.FolioRomana, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
			text.New("Chofer: "+nonEmpty(r.ChoferNombre, "—"), props.Text{
				Size: 8, Top: 11, Color: colorGray,
			}),
		),
	)
}

// pesosHeaderRow: cabecera de la tabla de pesos.
func pesosHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center,
			Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("PESO BRUTO (kg)", 4),
		h("TARA (kg)", 4),
		h("NETO FÍSICO (kg)", 4),
	)
}

// pesosRow: valores de romana.
func pesosRow(r *entity.Recepcion) core.Row {
	v := func(kg int64, size int) core.Col {
		return col.New(size).Add(text.New(formatKg(kg), props.Text{
			Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 1,
		}))
	}
	return row.New(9).Add(
		v(r.PesoBrutoKg, 4),
		v(r.PesoTaraKg, 4),
		v(r.NetoFisicoKg(), 4),
	)
}

// castigosRow: descuentos de laboratorio y neto a pagar.
func castigosRow(r *entity.Recepcion) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := text.New("NETO A PAGAR:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 2,
	})
	grandValue := text.New(formatKg(r.PesoNetoPagarKg)+" kg", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 1,
	})

	return row.New(26).Add(
		col.New(3),
		col.New(4).Add(
			label("Castigo humedad:"),
			label("Castigo impurezas:"),
			grandLabel,
		),
		col.New(3).Add(
			value(formatKg(r.DescuentoHumedadKg)+" kg"),
			value(formatKg(r.DescuentoImpurezasKg)+" kg"),
			grandValue,
		),
		col.New(2),
	)
}

// analisisRows: resumen del análisis de laboratorio.
func analisisRows(a *entity.Laboratorio) []core.Row {
	calidad := "RECHAZADO"
	if a.AprobadoCalidad {
		calidad = "APROBADO"
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("ANÁLISIS DE LABORATORIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(10).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Humedad: %s%%   |   Impurezas: %s%%   |   PH: %s   |   Proteína: %s%%",
				a.HumedadPorcentaje.StringFixed(1),
				a.ImpurezasPorcentaje.StringFixed(1),
				a.PesoHectolitrico.StringFixed(1),
				a.ProteinaPorcentaje.StringFixed(1),
			), props.Text{Size: 8, Top: 1, Color: colorGray}),
			text.New("Calidad: "+calidad, props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 6,
			}),
		)),
	}
}

// barcodeRows: Code128 del código de ticket, escaneable en la descarga a silo.
func barcodeRows(r *entity.Recepcion) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("TRAZABILIDAD", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(24).Add(
			col.New(2),
			col.New(8).Add(code.NewBar(r.TicketCodigo, props.Barcode{
				Percent: 90,
				Center:  true,
			})),
			col.New(2),
		),
		row.New(5).Add(col.New(12).Add(
			text.New(r.TicketCodigo, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Center, Top: 1,
			}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New("Token de verificación: "+r.TicketToken, props.Text{
				Size: 7, Align: align.Center, Color: colorGray, Top: 1,
			}),
		)),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"Este ticket respalda el ingreso de grano a planta. "+
					"Preséntelo en la descarga a silo y consérvelo como comprobante de la recepción.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatKg inserta puntos de miles en un entero de kilos.
// Ej: 25000 → "25.000"
func formatKg(kg int64) string {
	s := fmt.Sprintf("%d", kg)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	n := len(s)
	if n > 3 {
		buf := make([]byte, 0, n+n/3)
		for i, c := range []byte(s) {
			if i > 0 && (n-i)%3 == 0 {
				buf = append(buf, '.')
			}
			buf = append(buf, c)
		}
		s = string(buf)
	}
	if neg {
		return "-" + s
	}
	return s
}
