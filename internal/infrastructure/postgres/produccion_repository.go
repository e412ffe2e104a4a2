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
)

// ── Fórmulas ──────────────────────────────────────────────────────────────────

var _ repository.FormulaRepository = (*FormulaRepo)(nil)

// FormulaRepo implementación de FormulaRepository sobre PostgreSQL. Los
// ingredientes se reemplazan completos en cada update.
type FormulaRepo struct {
	q Querier
}

// NewFormulaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFormulaRepository(q Querier) *FormulaRepo {
	return &FormulaRepo{q: q}
}

// Create persiste la fórmula con sus ingredientes.
func (r *FormulaRepo) Create(f *entity.Formula) error {
	query := `
		INSERT INTO formulas (empresa_id, producto_terminado_id, nombre, descripcion, merma_tolerable_pct, activa)
		VALUES ($1,$2,$3,NULLIF($4,''),$5,$6)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		f.EmpresaID, f.ProductoTerminadoID, f.Nombre, f.Descripcion, f.MermaTolerablePct, f.Activa,
	).Scan(&f.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert formula: %w", err)
	}
	return r.insertIngredientes(f)
}

// Update reemplaza la fórmula y sus ingredientes.
func (r *FormulaRepo) Update(f *entity.Formula) error {
	query := `
		UPDATE formulas SET producto_terminado_id = $3, nombre = $4, descripcion = NULLIF($5,''), merma_tolerable_pct = $6, activa = $7
		WHERE empresa_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		f.EmpresaID, f.ID, f.ProductoTerminadoID, f.Nombre, f.Descripcion, f.MermaTolerablePct, f.Activa,
	)
	if err != nil {
		return fmt.Errorf("update formula: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM formula_ingredientes WHERE formula_id = $1`, f.ID); err != nil {
		return fmt.Errorf("delete ingredientes: %w", err)
	}
	return r.insertIngredientes(f)
}

func (r *FormulaRepo) insertIngredientes(f *entity.Formula) error {
	query := `
		INSERT INTO formula_ingredientes (empresa_id, formula_id, producto_agricola_id, proporcion_kg_por_unidad)
		VALUES ($1,$2,$3,$4)
		RETURNING id`
	for i := range f.Ingredientes {
		ing := &f.Ingredientes[i]
		ing.FormulaID = f.ID
		err := r.q.QueryRow(context.Background(), query,
			ing.EmpresaID, ing.FormulaID, ing.ProductoAgricolaID, ing.ProporcionKgPorUnidad,
		).Scan(&ing.ID)
		if err != nil {
			return fmt.Errorf("insert ingrediente: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la fórmula con ingredientes. Devuelve (nil, nil) si no existe.
func (r *FormulaRepo) GetByID(empresaID, id int64) (*entity.Formula, error) {
	query := `
		SELECT id, empresa_id, producto_terminado_id, nombre, COALESCE(descripcion, ''), merma_tolerable_pct, activa
		FROM formulas WHERE empresa_id = $1 AND id = $2`
	var f entity.Formula
	err := r.q.QueryRow(context.Background(), query, empresaID, id).Scan(
		&f.ID, &f.EmpresaID, &f.ProductoTerminadoID, &f.Nombre, &f.Descripcion, &f.MermaTolerablePct, &f.Activa,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get formula: %w", err)
	}
	if err := r.cargarIngredientes(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FormulaRepo) cargarIngredientes(f *entity.Formula) error {
	query := `
		SELECT id, empresa_id, formula_id, producto_agricola_id, proporcion_kg_por_unidad
		FROM formula_ingredientes WHERE formula_id = $1 ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query, f.ID)
	if err != nil {
		return fmt.Errorf("list ingredientes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ing entity.FormulaIngrediente
		if err := rows.Scan(&ing.ID, &ing.EmpresaID, &ing.FormulaID, &ing.ProductoAgricolaID, &ing.ProporcionKgPorUnidad); err != nil {
			return fmt.Errorf("scan ingrediente: %w", err)
		}
		f.Ingredientes = append(f.Ingredientes, ing)
	}
	return rows.Err()
}

// List lista las fórmulas de la empresa con sus ingredientes.
func (r *FormulaRepo) List(empresaID int64, soloActivas bool) ([]*entity.Formula, error) {
	query := `
		SELECT id, empresa_id, producto_terminado_id, nombre, COALESCE(descripcion, ''), merma_tolerable_pct, activa
		FROM formulas WHERE empresa_id = $1`
	if soloActivas {
		query += ` AND activa`
	}
	query += ` ORDER BY nombre ASC`
	rows, err := r.q.Query(context.Background(), query, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list formulas: %w", err)
	}
	defer rows.Close()

	var out []*entity.Formula
	for rows.Next() {
		var f entity.Formula
		if err := rows.Scan(&f.ID, &f.EmpresaID, &f.ProductoTerminadoID, &f.Nombre, &f.Descripcion, &f.MermaTolerablePct, &f.Activa); err != nil {
			return nil, fmt.Errorf("scan formula: %w", err)
		}
		out = append(out, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, f := range out {
		if err := r.cargarIngredientes(f); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ── Órdenes ───────────────────────────────────────────────────────────────────

var _ repository.OrdenProduccionRepository = (*OrdenProduccionRepo)(nil)

const ordenColumns = `
	id, empresa_id, sucursal_id, numero_op, producto_objetivo_id, formula_id,
	cantidad_objetivo, fecha_planificada, fecha_inicio_real, fecha_fin_real,
	estado, usuario_responsable_id, created_at`

// OrdenProduccionRepo implementación de OrdenProduccionRepository sobre PostgreSQL.
type OrdenProduccionRepo struct {
	q Querier
}

// NewOrdenProduccionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrdenProduccionRepository(q Querier) *OrdenProduccionRepo {
	return &OrdenProduccionRepo{q: q}
}

// Create persiste la orden.
func (r *OrdenProduccionRepo) Create(o *entity.OrdenProduccion) error {
	query := `
		INSERT INTO ordenes_produccion (
			empresa_id, sucursal_id, numero_op, producto_objetivo_id, formula_id,
			cantidad_objetivo, fecha_planificada, estado, usuario_responsable_id, created_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		o.EmpresaID, o.SucursalID, o.NumeroOP, o.ProductoObjetivoID, o.FormulaID,
		o.CantidadObjetivo, o.FechaPlanificada, o.Estado, o.UsuarioResponsableID, o.CreatedAt,
	).Scan(&o.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert orden produccion: %w", err)
	}
	return nil
}

// GetByID obtiene la orden. Devuelve (nil, nil) si no existe.
func (r *OrdenProduccionRepo) GetByID(empresaID, id int64) (*entity.OrdenProduccion, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes_produccion WHERE empresa_id = $1 AND id = $2`
	return scanOrden(r.q.QueryRow(context.Background(), query, empresaID, id))
}

// GetForUpdate obtiene la orden y bloquea la fila (SELECT FOR UPDATE).
func (r *OrdenProduccionRepo) GetForUpdate(empresaID, id int64) (*entity.OrdenProduccion, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes_produccion WHERE empresa_id = $1 AND id = $2 FOR UPDATE`
	return scanOrden(r.q.QueryRow(context.Background(), query, empresaID, id))
}

// Update persiste estado y fechas reales de la orden.
func (r *OrdenProduccionRepo) Update(o *entity.OrdenProduccion) error {
	query := `
		UPDATE ordenes_produccion SET estado = $3, fecha_inicio_real = $4, fecha_fin_real = $5
		WHERE empresa_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query, o.EmpresaID, o.ID, o.Estado, o.FechaInicioReal, o.FechaFinReal)
	if err != nil {
		return fmt.Errorf("update orden produccion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista órdenes de la empresa filtradas por estado, más recientes primero.
func (r *OrdenProduccionRepo) List(empresaID int64, estado string, limit, offset int) ([]*entity.OrdenProduccion, error) {
	query := `SELECT ` + ordenColumns + ` FROM ordenes_produccion WHERE empresa_id = $1`
	args := []any{empresaID}
	if estado != "" {
		query += ` AND estado = $2 ORDER BY created_at DESC, id DESC LIMIT $3 OFFSET $4`
		args = append(args, estado, limit, offset)
	} else {
		query += ` ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ordenes: %w", err)
	}
	defer rows.Close()

	var out []*entity.OrdenProduccion
	for rows.Next() {
		o, err := scanOrdenRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// CreateInsumo persiste una fila de trazabilidad orden-lote.
func (r *OrdenProduccionRepo) CreateInsumo(i *entity.OrdenProduccionInsumo) error {
	query := `
		INSERT INTO orden_produccion_insumos (empresa_id, orden_produccion_id, lote_id, cantidad_utilizada_kg)
		VALUES ($1,$2,$3,$4)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		i.EmpresaID, i.OrdenProduccionID, i.LoteID, i.CantidadUtilizadaKg,
	).Scan(&i.ID)
	if err != nil {
		return fmt.Errorf("insert insumo orden: %w", err)
	}
	return nil
}

// ListInsumos lista los lotes consumidos por una orden.
func (r *OrdenProduccionRepo) ListInsumos(empresaID, ordenID int64) ([]*entity.OrdenProduccionInsumo, error) {
	query := `
		SELECT id, empresa_id, orden_produccion_id, lote_id, cantidad_utilizada_kg
		FROM orden_produccion_insumos
		WHERE empresa_id = $1 AND orden_produccion_id = $2
		ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query, empresaID, ordenID)
	if err != nil {
		return nil, fmt.Errorf("list insumos orden: %w", err)
	}
	defer rows.Close()

	var out []*entity.OrdenProduccionInsumo
	for rows.Next() {
		var i entity.OrdenProduccionInsumo
		if err := rows.Scan(&i.ID, &i.EmpresaID, &i.OrdenProduccionID, &i.LoteID, &i.CantidadUtilizadaKg); err != nil {
			return nil, fmt.Errorf("scan insumo orden: %w", err)
		}
		out = append(out, &i)
	}
	return out, rows.Err()
}

func scanOrden(row pgx.Row) (*entity.OrdenProduccion, error) {
	o, err := scanOrdenRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return o, nil
}

func scanOrdenRow(row pgx.Row) (*entity.OrdenProduccion, error) {
	var o entity.OrdenProduccion
	err := row.Scan(
		&o.ID, &o.EmpresaID, &o.SucursalID, &o.NumeroOP, &o.ProductoObjetivoID, &o.FormulaID,
		&o.CantidadObjetivo, &o.FechaPlanificada, &o.FechaInicioReal, &o.FechaFinReal,
		&o.Estado, &o.UsuarioResponsableID, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ── Rendimientos ──────────────────────────────────────────────────────────────

var _ repository.RendimientoRepository = (*RendimientoRepo)(nil)

// RendimientoRepo implementación de RendimientoRepository sobre PostgreSQL.
// La merma no tiene columna: se deriva del balance de masa al leer.
type RendimientoRepo struct {
	q Querier
}

// NewRendimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRendimientoRepository(q Querier) *RendimientoRepo {
	return &RendimientoRepo{q: q}
}

// Create persiste el rendimiento y sus subproductos. El constraint único
// sobre orden_produccion_id respalda el cierre único de la orden.
func (r *RendimientoRepo) Create(rend *entity.Rendimiento) error {
	query := `
		INSERT INTO rendimientos (empresa_id, orden_produccion_id, trigo_molido_kg, harina_total_kg, usuario_registro_id, fecha_registro, observaciones)
		VALUES ($1,$2,$3,$4,$5,$6,NULLIF($7,''))
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		rend.EmpresaID, rend.OrdenProduccionID, rend.TrigoMolidoKg, rend.HarinaTotalKg,
		rend.UsuarioRegistroID, rend.FechaRegistro, rend.Observaciones,
	).Scan(&rend.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert rendimiento: %w", err)
	}
	spQuery := `
		INSERT INTO rendimiento_subproductos (rendimiento_id, nombre, cantidad_kg)
		VALUES ($1,$2,$3)
		RETURNING id`
	for i := range rend.Subproductos {
		sp := &rend.Subproductos[i]
		sp.RendimientoID = rend.ID
		if err := r.q.QueryRow(context.Background(), spQuery, sp.RendimientoID, sp.Nombre, sp.CantidadKg).Scan(&sp.ID); err != nil {
			return fmt.Errorf("insert subproducto: %w", err)
		}
	}
	return nil
}

// GetByOrden devuelve el rendimiento de una orden con sus subproductos.
func (r *RendimientoRepo) GetByOrden(empresaID, ordenID int64) (*entity.Rendimiento, error) {
	query := `
		SELECT id, empresa_id, orden_produccion_id, trigo_molido_kg, harina_total_kg, usuario_registro_id, fecha_registro, COALESCE(observaciones, '')
		FROM rendimientos WHERE empresa_id = $1 AND orden_produccion_id = $2`
	var rend entity.Rendimiento
	err := r.q.QueryRow(context.Background(), query, empresaID, ordenID).Scan(
		&rend.ID, &rend.EmpresaID, &rend.OrdenProduccionID, &rend.TrigoMolidoKg, &rend.HarinaTotalKg,
		&rend.UsuarioRegistroID, &rend.FechaRegistro, &rend.Observaciones,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rendimiento: %w", err)
	}
	if err := r.cargarSubproductos(&rend); err != nil {
		return nil, err
	}
	return &rend, nil
}

// ListByEmpresa lista los rendimientos de la empresa, más recientes primero.
func (r *RendimientoRepo) ListByEmpresa(empresaID int64, limit, offset int) ([]*entity.Rendimiento, error) {
	query := `
		SELECT id, empresa_id, orden_produccion_id, trigo_molido_kg, harina_total_kg, usuario_registro_id, fecha_registro, COALESCE(observaciones, '')
		FROM rendimientos WHERE empresa_id = $1
		ORDER BY fecha_registro DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, empresaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list rendimientos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Rendimiento
	for rows.Next() {
		var rend entity.Rendimiento
		if err := rows.Scan(
			&rend.ID, &rend.EmpresaID, &rend.OrdenProduccionID, &rend.TrigoMolidoKg, &rend.HarinaTotalKg,
			&rend.UsuarioRegistroID, &rend.FechaRegistro, &rend.Observaciones,
		); err != nil {
			return nil, fmt.Errorf("scan rendimiento: %w", err)
		}
		out = append(out, &rend)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, rend := range out {
		if err := r.cargarSubproductos(rend); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Estadisticas agrega el balance de masa del período y cuenta las órdenes cuya
// merma derivada superó la tolerancia de su fórmula.
func (r *RendimientoRepo) Estadisticas(empresaID int64, desde, hasta *time.Time) (*entity.EstadisticasProduccion, error) {
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(rend.trigo_molido_kg), 0),
			COALESCE(SUM(rend.harina_total_kg), 0),
			COALESCE(SUM(sub.total_kg), 0),
			COALESCE(SUM(rend.trigo_molido_kg - rend.harina_total_kg - sub.total_kg), 0),
			COUNT(*) FILTER (
				WHERE rend.trigo_molido_kg > 0 AND f.merma_tolerable_pct IS NOT NULL
				  AND (rend.trigo_molido_kg - rend.harina_total_kg - sub.total_kg) * 100.0
					> f.merma_tolerable_pct * rend.trigo_molido_kg
			)
		FROM rendimientos rend
		LEFT JOIN LATERAL (
			SELECT COALESCE(SUM(s.cantidad_kg), 0) AS total_kg
			FROM rendimiento_subproductos s WHERE s.rendimiento_id = rend.id
		) sub ON true
		LEFT JOIN ordenes_produccion o ON o.id = rend.orden_produccion_id
		LEFT JOIN formulas f ON f.id = o.formula_id
		WHERE rend.empresa_id = $1`
	args := []any{empresaID}
	pos := 2
	if desde != nil {
		query += ` AND rend.fecha_registro >= $` + strconv.Itoa(pos)
		args = append(args, *desde)
		pos++
	}
	if hasta != nil {
		query += ` AND rend.fecha_registro <= $` + strconv.Itoa(pos)
		args = append(args, *hasta)
	}

	var e entity.EstadisticasProduccion
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&e.OrdenesCerradas, &e.TrigoMolidoKg, &e.HarinaTotalKg,
		&e.SubproductosKg, &e.MermaKg, &e.OrdenesConMermaExcedida,
	)
	if err != nil {
		return nil, fmt.Errorf("estadisticas produccion: %w", err)
	}
	return &e, nil
}

func (r *RendimientoRepo) cargarSubproductos(rend *entity.Rendimiento) error {
	query := `
		SELECT id, rendimiento_id, nombre, cantidad_kg
		FROM rendimiento_subproductos WHERE rendimiento_id = $1 ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query, rend.ID)
	if err != nil {
		return fmt.Errorf("list subproductos: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var sp entity.RendimientoSubproducto
		if err := rows.Scan(&sp.ID, &sp.RendimientoID, &sp.Nombre, &sp.CantidadKg); err != nil {
			return fmt.Errorf("scan subproducto: %w", err)
		}
		rend.Subproductos = append(rend.Subproductos, sp)
	}
	return rows.Err()
}
