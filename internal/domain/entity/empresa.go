package entity

import "time"

// Empresa representa un molino/tenant del sistema (multi-tenant, enfoque Chile).
type Empresa struct {
	ID          int64
	Rut         string // RUT chileno con dígito verificador
	RazonSocial string
	Direccion   string
	Telefono    string
	Email       string
	// TieneLaboratorio indica si el molino opera laboratorio propio; si no,
	// las recepciones se pagan por neto físico sin castigos.
	TieneLaboratorio bool
	CreatedAt        time.Time
}

// Sucursal es una planta/faena de la empresa.
type Sucursal struct {
	ID        int64
	EmpresaID int64
	Nombre    string
	Direccion string
	Ciudad    string
	Telefono  string
	CreatedAt time.Time
}
