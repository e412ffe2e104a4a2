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

var _ repository.SiloRepository = (*SiloRepo)(nil)

const siloColumns = `id, empresa_id, bodega_id, codigo, COALESCE(descripcion, ''), capacidad_max_kg, nivel_actual_kg, estado, producto_actual_id, created_at`

// SiloRepo implementación de SiloRepository sobre PostgreSQL (usable con pool o tx).
type SiloRepo struct {
	q Querier
}

// NewSiloRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSiloRepository(q Querier) *SiloRepo {
	return &SiloRepo{q: q}
}

// Create persiste un silo. El código tiene constraint único por empresa.
func (r *SiloRepo) Create(s *entity.Silo) error {
	query := `
		INSERT INTO silos (empresa_id, bodega_id, codigo, descripcion, capacidad_max_kg, nivel_actual_kg, estado, producto_actual_id, created_at)
		VALUES ($1,$2,$3,NULLIF($4,''),$5,$6,$7,$8,$9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		s.EmpresaID, s.BodegaID, s.Codigo, s.Descripcion, s.CapacidadMaxKg, s.NivelActualKg, s.Estado, s.ProductoActualID, s.CreatedAt,
	).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert silo: %w", err)
	}
	return nil
}

// GetByID obtiene un silo de la empresa. Devuelve (nil, nil) si no existe.
func (r *SiloRepo) GetByID(empresaID, id int64) (*entity.Silo, error) {
	query := `SELECT ` + siloColumns + ` FROM silos WHERE empresa_id = $1 AND id = $2`
	return scanSilo(r.q.QueryRow(context.Background(), query, empresaID, id))
}

// GetForUpdate obtiene el silo y bloquea la fila (SELECT FOR UPDATE).
func (r *SiloRepo) GetForUpdate(empresaID, id int64) (*entity.Silo, error) {
	query := `SELECT ` + siloColumns + ` FROM silos WHERE empresa_id = $1 AND id = $2 FOR UPDATE`
	return scanSilo(r.q.QueryRow(context.Background(), query, empresaID, id))
}

// Update persiste nivel, estado y producto actual del silo.
func (r *SiloRepo) Update(s *entity.Silo) error {
	query := `
		UPDATE silos SET nivel_actual_kg = $3, estado = $4, producto_actual_id = $5,
			descripcion = NULLIF($6, ''), capacidad_max_kg = $7
		WHERE empresa_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		s.EmpresaID, s.ID, s.NivelActualKg, s.Estado, s.ProductoActualID, s.Descripcion, s.CapacidadMaxKg,
	)
	if err != nil {
		return fmt.Errorf("update silo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista los silos de la empresa por código.
func (r *SiloRepo) List(empresaID int64) ([]*entity.Silo, error) {
	query := `SELECT ` + siloColumns + ` FROM silos WHERE empresa_id = $1 ORDER BY codigo ASC`
	rows, err := r.q.Query(context.Background(), query, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list silos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Silo
	for rows.Next() {
		var s entity.Silo
		if err := rows.Scan(&s.ID, &s.EmpresaID, &s.BodegaID, &s.Codigo, &s.Descripcion, &s.CapacidadMaxKg, &s.NivelActualKg, &s.Estado, &s.ProductoActualID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan silo: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func scanSilo(row pgx.Row) (*entity.Silo, error) {
	var s entity.Silo
	err := row.Scan(&s.ID, &s.EmpresaID, &s.BodegaID, &s.Codigo, &s.Descripcion, &s.CapacidadMaxKg, &s.NivelActualKg, &s.Estado, &s.ProductoActualID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan silo: %w", err)
	}
	return &s, nil
}

// ── Bodegas ───────────────────────────────────────────────────────────────────

var _ repository.BodegaRepository = (*BodegaRepo)(nil)

// BodegaRepo implementación de BodegaRepository sobre PostgreSQL.
type BodegaRepo struct {
	q Querier
}

// NewBodegaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBodegaRepository(q Querier) *BodegaRepo {
	return &BodegaRepo{q: q}
}

// Create persiste una bodega.
func (r *BodegaRepo) Create(b *entity.Bodega) error {
	query := `
		INSERT INTO bodegas (empresa_id, sucursal_id, nombre, descripcion, created_at)
		VALUES ($1,$2,$3,NULLIF($4,''),$5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query, b.EmpresaID, b.SucursalID, b.Nombre, b.Descripcion, b.CreatedAt).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("insert bodega: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega de la empresa. Devuelve (nil, nil) si no existe.
func (r *BodegaRepo) GetByID(empresaID, id int64) (*entity.Bodega, error) {
	query := `SELECT id, empresa_id, sucursal_id, nombre, COALESCE(descripcion, ''), created_at FROM bodegas WHERE empresa_id = $1 AND id = $2`
	var b entity.Bodega
	err := r.q.QueryRow(context.Background(), query, empresaID, id).Scan(&b.ID, &b.EmpresaID, &b.SucursalID, &b.Nombre, &b.Descripcion, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bodega: %w", err)
	}
	return &b, nil
}

// List lista las bodegas de la empresa.
func (r *BodegaRepo) List(empresaID int64) ([]*entity.Bodega, error) {
	query := `SELECT id, empresa_id, sucursal_id, nombre, COALESCE(descripcion, ''), created_at FROM bodegas WHERE empresa_id = $1 ORDER BY nombre ASC`
	rows, err := r.q.Query(context.Background(), query, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list bodegas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Bodega
	for rows.Next() {
		var b entity.Bodega
		if err := rows.Scan(&b.ID, &b.EmpresaID, &b.SucursalID, &b.Nombre, &b.Descripcion, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bodega: %w", err)
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}
