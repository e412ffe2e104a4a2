package entity

import "time"

// ProductoAgricola es materia prima recibida en romana (trigo, avena, etc.).
type ProductoAgricola struct {
	ID          int64
	EmpresaID   int64
	Nombre      string
	Codigo      string
	Descripcion string
	CreatedAt   time.Time
}

// ProductoTerminado es producto de molienda (harinas y subproductos con SKU).
// StockActual se incrementa al cerrar órdenes de producción.
type ProductoTerminado struct {
	ID            int64
	EmpresaID     int64
	Nombre        string
	CodigoSKU     string
	Tipo          string
	UnidadMedida  string
	StockMinimo   int64
	StockActual   int64
	Descripcion   string
	CreatedAt     time.Time
}
