package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/molisur/molino-api/internal/domain"
	"github.com/molisur/molino-api/internal/domain/entity"
	"github.com/molisur/molino-api/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

const usuarioColumns = `id, empresa_id, sucursal_id, email, password_hash, nombres, apellidos, rol, activo, created_at`

// UsuarioRepo implementación de UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

// Create persiste un usuario. El email tiene constraint único.
func (r *UsuarioRepo) Create(u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (empresa_id, sucursal_id, email, password_hash, nombres, apellidos, rol, activo, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		u.EmpresaID, u.SucursalID, u.Email, u.PasswordHash, u.Nombres, u.Apellidos, u.Rol, u.Activo, u.CreatedAt,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario. Devuelve (nil, nil) si no existe.
func (r *UsuarioRepo) GetByID(id int64) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE id = $1`
	return scanUsuario(r.q.QueryRow(context.Background(), query, id))
}

// GetByEmail obtiene un usuario por email. Devuelve (nil, nil) si no existe.
func (r *UsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE email = $1`
	return scanUsuario(r.q.QueryRow(context.Background(), query, email))
}

// List lista los usuarios de la empresa.
func (r *UsuarioRepo) List(empresaID int64) ([]*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios WHERE empresa_id = $1 ORDER BY apellidos ASC, nombres ASC`
	rows, err := r.q.Query(context.Background(), query, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()

	var out []*entity.Usuario
	for rows.Next() {
		var u entity.Usuario
		if err := rows.Scan(&u.ID, &u.EmpresaID, &u.SucursalID, &u.Email, &u.PasswordHash, &u.Nombres, &u.Apellidos, &u.Rol, &u.Activo, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(&u.ID, &u.EmpresaID, &u.SucursalID, &u.Email, &u.PasswordHash, &u.Nombres, &u.Apellidos, &u.Rol, &u.Activo, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan usuario: %w", err)
	}
	return &u, nil
}
