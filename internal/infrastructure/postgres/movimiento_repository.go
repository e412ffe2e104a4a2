package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/molisur/molino-api/internal/domain/entity"
	"github.com/molisur/molino-api/internal/domain/repository"
)

var _ repository.MovimientoInventarioRepository = (*MovimientoInventarioRepo)(nil)

const movimientoColumns = `id, empresa_id, sucursal_id, tipo_movimiento, silo_origen_id, silo_destino_id, lote_id, cantidad_kg, fecha, usuario_id, COALESCE(observacion, '')`

// MovimientoInventarioRepo implementación sobre PostgreSQL. El log es
// sólo-apéndice: no existen Update ni Delete.
type MovimientoInventarioRepo struct {
	q Querier
}

// NewMovimientoInventarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoInventarioRepository(q Querier) *MovimientoInventarioRepo {
	return &MovimientoInventarioRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *MovimientoInventarioRepo) Create(m *entity.MovimientoInventario) error {
	query := `
		INSERT INTO movimientos_inventario (empresa_id, sucursal_id, tipo_movimiento, silo_origen_id, silo_destino_id, lote_id, cantidad_kg, fecha, usuario_id, observacion)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,NULLIF($10,''))
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		m.EmpresaID, m.SucursalID, m.TipoMovimiento, m.SiloOrigenID, m.SiloDestinoID,
		m.LoteID, m.CantidadKg, m.Fecha, m.UsuarioID, m.Observacion,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert movimiento inventario: %w", err)
	}
	return nil
}

// ListByLote devuelve el kardex de un lote en orden cronológico.
func (r *MovimientoInventarioRepo) ListByLote(empresaID, loteID int64) ([]*entity.MovimientoInventario, error) {
	query := `SELECT ` + movimientoColumns + `
		FROM movimientos_inventario
		WHERE empresa_id = $1 AND lote_id = $2
		ORDER BY fecha ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, empresaID, loteID)
	if err != nil {
		return nil, fmt.Errorf("list movimientos por lote: %w", err)
	}
	defer rows.Close()
	return collectMovimientos(rows)
}

// ListBySilo lista movimientos que tocan un silo (como origen o destino).
func (r *MovimientoInventarioRepo) ListBySilo(empresaID, siloID int64, from, to *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error) {
	query := `SELECT ` + movimientoColumns + `
		FROM movimientos_inventario
		WHERE empresa_id = $1 AND (silo_origen_id = $2 OR silo_destino_id = $2)`
	args := []any{empresaID, siloID}
	query, args = filtroFechas(query, args, from, to)
	query += ` ORDER BY fecha DESC, id DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos por silo: %w", err)
	}
	defer rows.Close()
	return collectMovimientos(rows)
}

// ListByEmpresa lista el log de inventario de la empresa.
func (r *MovimientoInventarioRepo) ListByEmpresa(empresaID int64, from, to *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error) {
	query := `SELECT ` + movimientoColumns + ` FROM movimientos_inventario WHERE empresa_id = $1`
	args := []any{empresaID}
	query, args = filtroFechas(query, args, from, to)
	query += ` ORDER BY fecha DESC, id DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	return collectMovimientos(rows)
}

func filtroFechas(query string, args []any, from, to *time.Time) (string, []any) {
	if from != nil {
		query += ` AND fecha >= $` + strconv.Itoa(len(args)+1)
		args = append(args, *from)
	}
	if to != nil {
		query += ` AND fecha <= $` + strconv.Itoa(len(args)+1)
		args = append(args, *to)
	}
	return query, args
}

func collectMovimientos(rows pgx.Rows) ([]*entity.MovimientoInventario, error) {
	var out []*entity.MovimientoInventario
	for rows.Next() {
		var m entity.MovimientoInventario
		if err := rows.Scan(
			&m.ID, &m.EmpresaID, &m.SucursalID, &m.TipoMovimiento, &m.SiloOrigenID, &m.SiloDestinoID,
			&m.LoteID, &m.CantidadKg, &m.Fecha, &m.UsuarioID, &m.Observacion,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
