package entity

import "time"

// Cliente es el contraparte de recepciones maquila y dueño de la cuenta
// corriente de harina.
type Cliente struct {
	ID                int64
	EmpresaID         int64
	Rut               string
	RazonSocial       string
	NombreFantasia    string
	Telefono          string
	EmailFacturacion  string
	Bloqueado         bool
	CreatedAt         time.Time
}

// Proveedor es el contraparte de recepciones de compra.
type Proveedor struct {
	ID          int64
	EmpresaID   int64
	Rut         string
	RazonSocial string
	Alias       string
	Telefono    string
	Email       string
	CreatedAt   time.Time
}
