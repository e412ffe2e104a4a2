package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CrearRecepcionRequest body para POST /api/recepciones.
type CrearRecepcionRequest struct {
	TipoRecepcion      string `json:"tipo_recepcion"` // compra | maquila
	SucursalID         *int64 `json:"sucursal_id,omitempty"`
	ProveedorID        *int64 `json:"proveedor_id,omitempty"`
	ClienteID          *int64 `json:"cliente_id,omitempty"`
	ProductoAgricolaID *int64 `json:"producto_agricola_id,omitempty"`
	ChoferID           *int64 `json:"chofer_id,omitempty"`
	CamionID           *int64 `json:"camion_id,omitempty"`
	CarroID            *int64 `json:"carro_id,omitempty"`
	NumeroGuiaDespacho string `json:"numero_guia_despacho,omitempty"`
	FolioRomana        string `json:"folio_romana,omitempty"`
	ChoferNombre       string `json:"chofer_nombre,omitempty"`
	Observaciones      string `json:"observaciones,omitempty"`
}

// RegistrarPesajeRequest body para POST /api/recepciones/:id/pesajes.
type RegistrarPesajeRequest struct {
	Tipo   string `json:"tipo"` // BRUTO | TARA
	PesoKg int64  `json:"peso_kg"`
	Origen string `json:"origen,omitempty"` // manual | romana
}

// RecepcionDirectaRequest body para POST /api/recepciones/directa-maquila:
// recepción maquila completa en una llamada (ambos pesajes, ticket y crédito).
type RecepcionDirectaRequest struct {
	ClienteID          int64  `json:"cliente_id"`
	ProductoAgricolaID *int64 `json:"producto_agricola_id,omitempty"`
	SucursalID         *int64 `json:"sucursal_id,omitempty"`
	ChoferNombre       string `json:"chofer_nombre,omitempty"`
	PesoBrutoKg        int64  `json:"peso_bruto_kg"`
	PesoTaraKg         int64  `json:"peso_tara_kg"`
	TipoTrabajoID      int64  `json:"tipo_trabajo_id"`
	Observaciones      string `json:"observaciones,omitempty"`
}

// RecepcionResponse recepción con sus derivados.
type RecepcionResponse struct {
	ID                 int64      `json:"id"`
	EmpresaID          int64      `json:"empresa_id"`
	TipoRecepcion      string     `json:"tipo_recepcion"`
	Estado             string     `json:"estado"`
	ProveedorID        *int64     `json:"proveedor_id,omitempty"`
	ClienteID          *int64     `json:"cliente_id,omitempty"`
	ProductoAgricolaID *int64     `json:"producto_agricola_id,omitempty"`
	TicketCodigo       string     `json:"ticket_codigo,omitempty"`
	TicketToken        string     `json:"ticket_token,omitempty"`
	PesoBrutoKg        int64      `json:"peso_bruto_kg"`
	PesoTaraKg         int64      `json:"peso_tara_kg"`
	PesoNetoFisicoKg   int64      `json:"peso_neto_fisico_kg"`
	DescuentoHumedadKg int64      `json:"descuento_humedad_kg"`
	DescuentoImpurezasKg int64    `json:"descuento_impurezas_kg"`
	PesoNetoPagarKg    int64      `json:"peso_neto_pagar_kg"`
	FechaEntrada       time.Time  `json:"fecha_entrada"`
	FechaSalida        *time.Time `json:"fecha_salida,omitempty"`
	Observaciones      string     `json:"observaciones,omitempty"`
}

// PesajeResponse un evento de pesaje.
type PesajeResponse struct {
	ID          int64     `json:"id"`
	RecepcionID int64     `json:"recepcion_id"`
	Tipo        string    `json:"tipo"`
	PesoKg      int64     `json:"peso_kg"`
	Origen      string    `json:"origen"`
	Fecha       time.Time `json:"fecha"`
}

// RegistrarAnalisisRequest body para POST /api/laboratorio/recepciones/:id.
type RegistrarAnalisisRequest struct {
	HumedadPorcentaje   decimal.Decimal  `json:"humedad_porcentaje"`
	ImpurezasPorcentaje decimal.Decimal  `json:"impurezas_porcentaje"`
	PesoHectolitrico    decimal.Decimal  `json:"peso_hectolitrico,omitempty"`
	ProteinaPorcentaje  decimal.Decimal  `json:"proteina_porcentaje,omitempty"`
	GlutenWet           decimal.Decimal  `json:"gluten_wet,omitempty"`
	IndiceCaida         *int64           `json:"indice_caida,omitempty"`
	GranosChuzos        decimal.Decimal  `json:"granos_chuzos,omitempty"`
	PuntaNegra          decimal.Decimal  `json:"punta_negra,omitempty"`
	AprobadoCalidad     bool             `json:"aprobado_calidad"`
	Observaciones       string           `json:"observaciones,omitempty"`
}

// AnalisisResponse análisis de laboratorio con los castigos resultantes.
type AnalisisResponse struct {
	ID                   int64           `json:"id"`
	RecepcionID          int64           `json:"recepcion_id"`
	HumedadPorcentaje    decimal.Decimal `json:"humedad_porcentaje"`
	ImpurezasPorcentaje  decimal.Decimal `json:"impurezas_porcentaje"`
	AprobadoCalidad      bool            `json:"aprobado_calidad"`
	DescuentoHumedadKg   int64           `json:"descuento_humedad_kg"`
	DescuentoImpurezasKg int64           `json:"descuento_impurezas_kg"`
	PesoNetoPagarKg      int64           `json:"peso_neto_pagar_kg"`
	FechaAnalisis        time.Time       `json:"fecha_analisis"`
}
