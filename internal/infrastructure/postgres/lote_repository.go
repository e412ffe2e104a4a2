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

var _ repository.LoteRepository = (*LoteRepo)(nil)

const loteColumns = `id, empresa_id, codigo_lote, recepcion_id, cantidad_inicial_kg, cantidad_actual_kg, estado, fecha_creacion`

// LoteRepo implementación de LoteRepository sobre PostgreSQL. El silo actual
// de un lote nunca se guarda: se deriva del último movimiento de inventario
// ordenado por (fecha, id).
type LoteRepo struct {
	q Querier
}

// NewLoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLoteRepository(q Querier) *LoteRepo {
	return &LoteRepo{q: q}
}

// Create persiste el lote. El código de lote tiene constraint único.
func (r *LoteRepo) Create(l *entity.Lote) error {
	query := `
		INSERT INTO lotes (empresa_id, codigo_lote, recepcion_id, cantidad_inicial_kg, cantidad_actual_kg, estado, fecha_creacion)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		l.EmpresaID, l.CodigoLote, l.RecepcionID, l.CantidadInicialKg, l.CantidadActualKg, l.Estado, l.FechaCreacion,
	).Scan(&l.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert lote: %w", err)
	}
	return nil
}

// GetByID obtiene un lote de la empresa. Devuelve (nil, nil) si no existe.
func (r *LoteRepo) GetByID(empresaID, id int64) (*entity.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM lotes WHERE empresa_id = $1 AND id = $2`
	return scanLote(r.q.QueryRow(context.Background(), query, empresaID, id))
}

// GetForUpdate obtiene el lote y bloquea la fila (SELECT FOR UPDATE).
func (r *LoteRepo) GetForUpdate(empresaID, id int64) (*entity.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM lotes WHERE empresa_id = $1 AND id = $2 FOR UPDATE`
	return scanLote(r.q.QueryRow(context.Background(), query, empresaID, id))
}

// Update persiste saldo y estado del lote.
func (r *LoteRepo) Update(l *entity.Lote) error {
	query := `UPDATE lotes SET cantidad_actual_kg = $3, estado = $4 WHERE empresa_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query, l.EmpresaID, l.ID, l.CantidadActualKg, l.Estado)
	if err != nil {
		return fmt.Errorf("update lote: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista lotes de la empresa, más recientes primero.
func (r *LoteRepo) List(empresaID int64, soloActivos bool, limit, offset int) ([]*entity.Lote, error) {
	query := `SELECT ` + loteColumns + ` FROM lotes WHERE empresa_id = $1`
	if soloActivos {
		query += ` AND estado = 'activo'`
	}
	query += ` ORDER BY fecha_creacion DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, empresaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list lotes: %w", err)
	}
	defer rows.Close()
	return collectLotes(rows)
}

// SiloActual deriva el silo del lote desde su último movimiento: el orden
// total del log es (fecha, id) y la ubicación es destino si existe, si no
// origen. Devuelve (nil, nil) si el lote no tiene movimientos.
func (r *LoteRepo) SiloActual(empresaID, loteID int64) (*entity.Silo, error) {
	query := `
		SELECT s.id, s.empresa_id, s.bodega_id, s.codigo, COALESCE(s.descripcion, ''),
		       s.capacidad_max_kg, s.nivel_actual_kg, s.estado, s.producto_actual_id, s.created_at
		FROM movimientos_inventario m
		JOIN silos s ON s.id = COALESCE(m.silo_destino_id, m.silo_origen_id)
		WHERE m.empresa_id = $1 AND m.lote_id = $2
		ORDER BY m.fecha DESC, m.id DESC
		LIMIT 1`
	var s entity.Silo
	err := r.q.QueryRow(context.Background(), query, empresaID, loteID).Scan(
		&s.ID, &s.EmpresaID, &s.BodegaID, &s.Codigo, &s.Descripcion,
		&s.CapacidadMaxKg, &s.NivelActualKg, &s.Estado, &s.ProductoActualID, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("silo actual de lote: %w", err)
	}
	return &s, nil
}

// ListBySilo devuelve los lotes activos cuyo último movimiento resuelve al silo.
func (r *LoteRepo) ListBySilo(empresaID, siloID int64) ([]*entity.Lote, error) {
	query := `
		SELECT l.id, l.empresa_id, l.codigo_lote, l.recepcion_id, l.cantidad_inicial_kg, l.cantidad_actual_kg, l.estado, l.fecha_creacion
		FROM lotes l
		JOIN LATERAL (
			SELECT COALESCE(m.silo_destino_id, m.silo_origen_id) AS silo_id
			FROM movimientos_inventario m
			WHERE m.lote_id = l.id
			ORDER BY m.fecha DESC, m.id DESC
			LIMIT 1
		) ult ON TRUE
		WHERE l.empresa_id = $1 AND l.estado = 'activo' AND ult.silo_id = $2
		ORDER BY l.fecha_creacion ASC, l.id ASC`
	rows, err := r.q.Query(context.Background(), query, empresaID, siloID)
	if err != nil {
		return nil, fmt.Errorf("list lotes por silo: %w", err)
	}
	defer rows.Close()
	return collectLotes(rows)
}

func scanLote(row pgx.Row) (*entity.Lote, error) {
	var l entity.Lote
	err := row.Scan(&l.ID, &l.EmpresaID, &l.CodigoLote, &l.RecepcionID, &l.CantidadInicialKg, &l.CantidadActualKg, &l.Estado, &l.FechaCreacion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan lote: %w", err)
	}
	return &l, nil
}

func collectLotes(rows pgx.Rows) ([]*entity.Lote, error) {
	var out []*entity.Lote
	for rows.Next() {
		var l entity.Lote
		if err := rows.Scan(&l.ID, &l.EmpresaID, &l.CodigoLote, &l.RecepcionID, &l.CantidadInicialKg, &l.CantidadActualKg, &l.Estado, &l.FechaCreacion); err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
