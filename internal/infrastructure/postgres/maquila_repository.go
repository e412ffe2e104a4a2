package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/molisur/molino-api/internal/domain"
	"github.com/molisur/molino-api/internal/domain/entity"
	"github.com/molisur/molino-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.MaquilaRepository = (*MaquilaRepo)(nil)

// MaquilaRepo implementación del ledger maquila sobre PostgreSQL. Los
// movimientos son inmutables y el saldo se deriva siempre con SUM(kg).
type MaquilaRepo struct {
	q Querier
}

// NewMaquilaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaquilaRepository(q Querier) *MaquilaRepo {
	return &MaquilaRepo{q: q}
}

// CreateMovimiento persiste una fila del ledger.
func (r *MaquilaRepo) CreateMovimiento(m *entity.MaquilaMovimiento) error {
	query := `
		INSERT INTO maquila_movimientos (
			empresa_id, sucursal_id, bodega_id, cliente_id, producto_harina_id, recepcion_id,
			tipo_movimiento, kg, sacos_cantidad, saco_peso_kg, observacion, usuario_id, created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,NULLIF($11,''),$12,$13)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		m.EmpresaID, m.SucursalID, m.BodegaID, m.ClienteID, m.ProductoHarinaID, m.RecepcionID,
		m.TipoMovimiento, m.Kg, m.SacosCantidad, m.SacoPesoKg, m.Observacion, m.UsuarioID, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert movimiento maquila: %w", err)
	}
	return nil
}

// ListMovimientos lista el ledger de un cliente, más reciente primero.
func (r *MaquilaRepo) ListMovimientos(empresaID, clienteID int64, from, to *time.Time, limit, offset int) ([]*entity.MaquilaMovimiento, error) {
	query := `
		SELECT id, empresa_id, sucursal_id, bodega_id, cliente_id, producto_harina_id, recepcion_id,
		       tipo_movimiento, kg, sacos_cantidad, COALESCE(saco_peso_kg, 0), COALESCE(observacion, ''), usuario_id, created_at
		FROM maquila_movimientos
		WHERE empresa_id = $1 AND cliente_id = $2`
	args := []any{empresaID, clienteID}
	if from != nil {
		query += ` AND created_at >= $` + strconv.Itoa(len(args)+1)
		args = append(args, *from)
	}
	if to != nil {
		query += ` AND created_at <= $` + strconv.Itoa(len(args)+1)
		args = append(args, *to)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos maquila: %w", err)
	}
	defer rows.Close()

	var out []*entity.MaquilaMovimiento
	for rows.Next() {
		var m entity.MaquilaMovimiento
		if err := rows.Scan(
			&m.ID, &m.EmpresaID, &m.SucursalID, &m.BodegaID, &m.ClienteID, &m.ProductoHarinaID, &m.RecepcionID,
			&m.TipoMovimiento, &m.Kg, &m.SacosCantidad, &m.SacoPesoKg, &m.Observacion, &m.UsuarioID, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento maquila: %w", err)
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

// Saldo deriva SUM(kg) por producto para el cliente.
func (r *MaquilaRepo) Saldo(empresaID, clienteID int64) ([]*entity.SaldoHarina, error) {
	query := `
		SELECT m.producto_harina_id, COALESCE(p.nombre, ''), COALESCE(SUM(m.kg), 0)
		FROM maquila_movimientos m
		LEFT JOIN productos_terminados p ON p.id = m.producto_harina_id
		WHERE m.empresa_id = $1 AND m.cliente_id = $2
		GROUP BY m.producto_harina_id, p.nombre
		ORDER BY p.nombre NULLS LAST`
	rows, err := r.q.Query(context.Background(), query, empresaID, clienteID)
	if err != nil {
		return nil, fmt.Errorf("saldo maquila: %w", err)
	}
	defer rows.Close()

	var out []*entity.SaldoHarina
	for rows.Next() {
		var s entity.SaldoHarina
		if err := rows.Scan(&s.ProductoHarinaID, &s.ProductoNombre, &s.SaldoKg); err != nil {
			return nil, fmt.Errorf("scan saldo maquila: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// SaldoProducto deriva SUM(kg) de un producto puntual (nil agrupa los
// movimientos sin producto).
func (r *MaquilaRepo) SaldoProducto(empresaID, clienteID int64, productoHarinaID *int64) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(kg), 0)
		FROM maquila_movimientos
		WHERE empresa_id = $1 AND cliente_id = $2 AND producto_harina_id IS NOT DISTINCT FROM $3`
	var saldo decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, empresaID, clienteID, productoHarinaID).Scan(&saldo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("saldo producto maquila: %w", err)
	}
	return saldo, nil
}

// ExisteCreditoDeRecepcion indica si la recepción ya generó un crédito
// confirmado.
func (r *MaquilaRepo) ExisteCreditoDeRecepcion(recepcionID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM maquila_movimientos
			WHERE recepcion_id = $1 AND tipo_movimiento = $2
		)`
	var existe bool
	err := r.q.QueryRow(context.Background(), query, recepcionID, entity.MaquilaCreditoConfirmado).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("existe credito de recepcion: %w", err)
	}
	return existe, nil
}

// TrigoPendienteKg suma el peso base de las recepciones maquila del cliente que
// aún no generaron crédito confirmado.
func (r *MaquilaRepo) TrigoPendienteKg(empresaID, clienteID int64) (int64, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE WHEN rec.peso_neto_pagar_kg > 0 THEN rec.peso_neto_pagar_kg ELSE rec.peso_neto_fisico_kg END
		), 0)
		FROM recepciones rec
		WHERE rec.empresa_id = $1 AND rec.cliente_id = $2 AND rec.tipo_recepcion = 'maquila'
		  AND (rec.peso_neto_pagar_kg > 0 OR rec.peso_neto_fisico_kg > 0)
		  AND NOT EXISTS (
			SELECT 1 FROM maquila_movimientos m
			WHERE m.recepcion_id = rec.id AND m.tipo_movimiento = $3
		  )`
	var kg int64
	err := r.q.QueryRow(context.Background(), query, empresaID, clienteID, entity.MaquilaCreditoConfirmado).Scan(&kg)
	if err != nil {
		return 0, fmt.Errorf("trigo pendiente: %w", err)
	}
	return kg, nil
}

// ── Tipos de trabajo ──────────────────────────────────────────────────────────

var _ repository.MaquilaTipoTrabajoRepository = (*MaquilaTipoTrabajoRepo)(nil)

const tipoTrabajoColumns = `id, empresa_id, nombre, porcentaje, producto_harina_id, activo, orden, created_at`

// MaquilaTipoTrabajoRepo implementación de los presets de trabajo maquila.
type MaquilaTipoTrabajoRepo struct {
	q Querier
}

// NewMaquilaTipoTrabajoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaquilaTipoTrabajoRepository(q Querier) *MaquilaTipoTrabajoRepo {
	return &MaquilaTipoTrabajoRepo{q: q}
}

// Create persiste un tipo de trabajo.
func (r *MaquilaTipoTrabajoRepo) Create(t *entity.MaquilaTipoTrabajo) error {
	query := `
		INSERT INTO maquila_tipos_trabajo (empresa_id, nombre, porcentaje, producto_harina_id, activo, orden, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		t.EmpresaID, t.Nombre, t.Porcentaje, t.ProductoHarinaID, t.Activo, t.Orden, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tipo trabajo: %w", err)
	}
	return nil
}

// GetByID obtiene un tipo de trabajo de la empresa. Devuelve (nil, nil) si no existe.
func (r *MaquilaTipoTrabajoRepo) GetByID(empresaID, id int64) (*entity.MaquilaTipoTrabajo, error) {
	query := `SELECT ` + tipoTrabajoColumns + ` FROM maquila_tipos_trabajo WHERE empresa_id = $1 AND id = $2`
	var t entity.MaquilaTipoTrabajo
	err := r.q.QueryRow(context.Background(), query, empresaID, id).Scan(
		&t.ID, &t.EmpresaID, &t.Nombre, &t.Porcentaje, &t.ProductoHarinaID, &t.Activo, &t.Orden, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tipo trabajo: %w", err)
	}
	return &t, nil
}

// Update persiste un tipo de trabajo.
func (r *MaquilaTipoTrabajoRepo) Update(t *entity.MaquilaTipoTrabajo) error {
	query := `
		UPDATE maquila_tipos_trabajo SET nombre = $3, porcentaje = $4, producto_harina_id = $5, activo = $6, orden = $7
		WHERE empresa_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query, t.EmpresaID, t.ID, t.Nombre, t.Porcentaje, t.ProductoHarinaID, t.Activo, t.Orden)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update tipo trabajo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista los tipos de trabajo de la empresa, por orden configurado.
func (r *MaquilaTipoTrabajoRepo) List(empresaID int64, soloActivos bool) ([]*entity.MaquilaTipoTrabajo, error) {
	query := `SELECT ` + tipoTrabajoColumns + ` FROM maquila_tipos_trabajo WHERE empresa_id = $1`
	if soloActivos {
		query += ` AND activo`
	}
	query += ` ORDER BY orden ASC, nombre ASC`
	rows, err := r.q.Query(context.Background(), query, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list tipos trabajo: %w", err)
	}
	defer rows.Close()

	var out []*entity.MaquilaTipoTrabajo
	for rows.Next() {
		var t entity.MaquilaTipoTrabajo
		if err := rows.Scan(&t.ID, &t.EmpresaID, &t.Nombre, &t.Porcentaje, &t.ProductoHarinaID, &t.Activo, &t.Orden, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tipo trabajo: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}
