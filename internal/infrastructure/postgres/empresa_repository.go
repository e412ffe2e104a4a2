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

var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// EmpresaRepo implementación de EmpresaRepository sobre PostgreSQL.
type EmpresaRepo struct {
	q Querier
}

// NewEmpresaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmpresaRepository(q Querier) *EmpresaRepo {
	return &EmpresaRepo{q: q}
}

// Create persiste una empresa.
func (r *EmpresaRepo) Create(e *entity.Empresa) error {
	query := `
		INSERT INTO empresas (rut, razon_social, direccion, telefono, email, tiene_laboratorio, created_at)
		VALUES ($1,$2,NULLIF($3,''),NULLIF($4,''),NULLIF($5,''),$6,$7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		e.Rut, e.RazonSocial, e.Direccion, e.Telefono, e.Email, e.TieneLaboratorio, e.CreatedAt,
	).Scan(&e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert empresa: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa. Devuelve (nil, nil) si no existe.
func (r *EmpresaRepo) GetByID(id int64) (*entity.Empresa, error) {
	query := `
		SELECT id, rut, razon_social, COALESCE(direccion, ''), COALESCE(telefono, ''), COALESCE(email, ''), tiene_laboratorio, created_at
		FROM empresas WHERE id = $1`
	var e entity.Empresa
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.Rut, &e.RazonSocial, &e.Direccion, &e.Telefono, &e.Email, &e.TieneLaboratorio, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa: %w", err)
	}
	return &e, nil
}

// ListSucursales lista las plantas de la empresa.
func (r *EmpresaRepo) ListSucursales(empresaID int64) ([]*entity.Sucursal, error) {
	query := `
		SELECT id, empresa_id, nombre, COALESCE(direccion, ''), COALESCE(ciudad, ''), COALESCE(telefono, ''), created_at
		FROM sucursales WHERE empresa_id = $1 ORDER BY nombre ASC`
	rows, err := r.q.Query(context.Background(), query, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list sucursales: %w", err)
	}
	defer rows.Close()

	var out []*entity.Sucursal
	for rows.Next() {
		var s entity.Sucursal
		if err := rows.Scan(&s.ID, &s.EmpresaID, &s.Nombre, &s.Direccion, &s.Ciudad, &s.Telefono, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sucursal: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}
