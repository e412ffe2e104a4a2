package entity

import "time"

// Catálogo de transporte: choferes, camiones y carros. Cada uno lleva un
// código generado (CH-/CA-/CR-{empresa}-{id}) usado para búsqueda rápida en
// romana vía código de barras.

// Chofer es un conductor registrado de la empresa.
type Chofer struct {
	ID           int64
	EmpresaID    int64
	CodigoChofer string
	Nombre       string
	Rut          string
	Telefono     string
	Email        string
	Activo       bool
	CreatedAt    time.Time
}

// Camion es el vehículo principal de carga.
type Camion struct {
	ID               int64
	EmpresaID        int64
	CodigoCamion     string
	Patente          string
	Marca            string
	Modelo           string
	CapacidadCargaKg *int64
	Estado           string
	Activo           bool
}

// Carro es el acoplado del camión.
type Carro struct {
	ID               int64
	EmpresaID        int64
	CodigoCarro      string
	Patente          string
	Marca            string
	Modelo           string
	CapacidadCargaKg *int64
	Activo           bool
}
