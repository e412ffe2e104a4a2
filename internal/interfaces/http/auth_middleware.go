package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/molisur/molino-api/internal/application/dto"
	"github.com/molisur/molino-api/internal/domain/entity"
	"github.com/molisur/molino-api/pkg/jwt"
)

// Locals keys para UsuarioID, EmpresaID y Rol en Fiber.
const (
	LocalUsuarioID = "usuario_id"
	LocalEmpresaID = "empresa_id"
	LocalRol       = "rol"
)

// AuthMiddleware valida el Bearer Token JWT y extrae usuario, empresa y rol a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		usuarioID, empresaID, rol, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUsuarioID, usuarioID)
		c.Locals(LocalEmpresaID, empresaID)
		c.Locals(LocalRol, rol)
		return c.Next()
	}
}

// RequireRole exige que el rol del token sea admin o alguno de los indicados.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rol := GetRol(c)
		if rol == entity.RolAdmin {
			return c.Next()
		}
		for _, r := range roles {
			if rol == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// GetUsuarioID devuelve el UsuarioID del contexto (después del middleware de auth).
func GetUsuarioID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalUsuarioID).(int64)
	return v
}

// GetEmpresaID devuelve el EmpresaID del contexto (después del middleware de auth).
func GetEmpresaID(c *fiber.Ctx) int64 {
	v, _ := c.Locals(LocalEmpresaID).(int64)
	return v
}

// GetRol devuelve el rol del contexto (después del middleware de auth).
func GetRol(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalRol).(string)
	return v
}

// usuarioIDPtr devuelve el UsuarioID como puntero para los casos de uso que lo
// registran opcionalmente (nil si no hay sesión).
func usuarioIDPtr(c *fiber.Ctx) *int64 {
	id := GetUsuarioID(c)
	if id == 0 {
		return nil
	}
	return &id
}
