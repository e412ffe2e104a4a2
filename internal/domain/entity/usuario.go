package entity

import "time"

// Roles válidos para Usuario.
const (
	RolAdmin      = "admin"
	RolRomanero   = "romanero"   // opera la romana (pesajes)
	RolLaboratorio = "laboratorio"
	RolBodeguero  = "bodeguero"  // opera silos y lotes
	RolProduccion = "produccion"
)

// Usuario representa un usuario del sistema (pertenece a una Empresa).
type Usuario struct {
	ID           int64
	EmpresaID    int64
	SucursalID   *int64
	Email        string
	PasswordHash string // hash bcrypt, nunca plano en dominio después de persistir
	Nombres      string
	Apellidos    string
	Rol          string // ver constantes Rol*
	Activo       bool
	CreatedAt    time.Time
}
