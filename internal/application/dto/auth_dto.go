package dto

import "time"

// RegisterRequest body para POST /api/auth/register.
type RegisterRequest struct {
	EmpresaID  int64  `json:"empresa_id"`
	SucursalID *int64 `json:"sucursal_id,omitempty"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Nombres    string `json:"nombres"`
	Apellidos  string `json:"apellidos"`
	Rol        string `json:"rol"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UsuarioResponse usuario sin campos sensibles.
type UsuarioResponse struct {
	ID        int64     `json:"id"`
	EmpresaID int64     `json:"empresa_id"`
	Email     string    `json:"email"`
	Nombres   string    `json:"nombres"`
	Apellidos string    `json:"apellidos"`
	Rol       string    `json:"rol"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse token JWT + usuario autenticado.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}
