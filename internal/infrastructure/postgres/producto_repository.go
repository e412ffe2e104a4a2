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

// ── Productos agrícolas ───────────────────────────────────────────────────────

var _ repository.ProductoAgricolaRepository = (*ProductoAgricolaRepo)(nil)

// ProductoAgricolaRepo implementación sobre PostgreSQL (usable con pool o tx).
type ProductoAgricolaRepo struct {
	q Querier
}

// NewProductoAgricolaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductoAgricolaRepository(q Querier) *ProductoAgricolaRepo {
	return &ProductoAgricolaRepo{q: q}
}

// Create persiste una materia prima.
func (r *ProductoAgricolaRepo) Create(p *entity.ProductoAgricola) error {
	query := `
		INSERT INTO productos_agricolas (empresa_id, nombre, codigo, descripcion, created_at)
		VALUES ($1,$2,NULLIF($3,''),NULLIF($4,''),$5)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query, p.EmpresaID, p.Nombre, p.Codigo, p.Descripcion, p.CreatedAt).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto agricola: %w", err)
	}
	return nil
}

// GetByID obtiene una materia prima. Devuelve (nil, nil) si no existe.
func (r *ProductoAgricolaRepo) GetByID(empresaID, id int64) (*entity.ProductoAgricola, error) {
	query := `
		SELECT id, empresa_id, nombre, COALESCE(codigo, ''), COALESCE(descripcion, ''), created_at
		FROM productos_agricolas WHERE empresa_id = $1 AND id = $2`
	var p entity.ProductoAgricola
	err := r.q.QueryRow(context.Background(), query, empresaID, id).Scan(&p.ID, &p.EmpresaID, &p.Nombre, &p.Codigo, &p.Descripcion, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto agricola: %w", err)
	}
	return &p, nil
}

// Update persiste una materia prima.
func (r *ProductoAgricolaRepo) Update(p *entity.ProductoAgricola) error {
	query := `
		UPDATE productos_agricolas SET nombre = $3, codigo = NULLIF($4,''), descripcion = NULLIF($5,'')
		WHERE empresa_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query, p.EmpresaID, p.ID, p.Nombre, p.Codigo, p.Descripcion)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update producto agricola: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista las materias primas de la empresa.
func (r *ProductoAgricolaRepo) List(empresaID int64) ([]*entity.ProductoAgricola, error) {
	query := `
		SELECT id, empresa_id, nombre, COALESCE(codigo, ''), COALESCE(descripcion, ''), created_at
		FROM productos_agricolas WHERE empresa_id = $1 ORDER BY nombre ASC`
	rows, err := r.q.Query(context.Background(), query, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list productos agricolas: %w", err)
	}
	defer rows.Close()

	var out []*entity.ProductoAgricola
	for rows.Next() {
		var p entity.ProductoAgricola
		if err := rows.Scan(&p.ID, &p.EmpresaID, &p.Nombre, &p.Codigo, &p.Descripcion, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan producto agricola: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// TieneDependencias indica si la materia prima está referenciada por
// recepciones o ingredientes de fórmula.
func (r *ProductoAgricolaRepo) TieneDependencias(empresaID, id int64) (bool, error) {
	query := `
		SELECT EXISTS (SELECT 1 FROM recepciones WHERE empresa_id = $1 AND producto_agricola_id = $2)
			OR EXISTS (SELECT 1 FROM formula_ingredientes WHERE empresa_id = $1 AND producto_agricola_id = $2)`
	var tiene bool
	err := r.q.QueryRow(context.Background(), query, empresaID, id).Scan(&tiene)
	if err != nil {
		return false, fmt.Errorf("dependencias producto agricola: %w", err)
	}
	return tiene, nil
}

// Delete elimina una materia prima. Verificar dependencias antes de llamar.
func (r *ProductoAgricolaRepo) Delete(empresaID, id int64) error {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM productos_agricolas WHERE empresa_id = $1 AND id = $2`, empresaID, id)
	if err != nil {
		return fmt.Errorf("delete producto agricola: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ── Productos terminados ──────────────────────────────────────────────────────

var _ repository.ProductoTerminadoRepository = (*ProductoTerminadoRepo)(nil)

const productoTerminadoColumns = `id, empresa_id, nombre, codigo_sku, COALESCE(tipo, ''), COALESCE(unidad_medida, ''), stock_minimo, stock_actual, COALESCE(descripcion, ''), created_at`

// ProductoTerminadoRepo implementación sobre PostgreSQL (usable con pool o tx).
type ProductoTerminadoRepo struct {
	q Querier
}

// NewProductoTerminadoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductoTerminadoRepository(q Querier) *ProductoTerminadoRepo {
	return &ProductoTerminadoRepo{q: q}
}

// Create persiste un producto terminado.
func (r *ProductoTerminadoRepo) Create(p *entity.ProductoTerminado) error {
	query := `
		INSERT INTO productos_terminados (empresa_id, nombre, codigo_sku, tipo, unidad_medida, stock_minimo, stock_actual, descripcion, created_at)
		VALUES ($1,$2,$3,NULLIF($4,''),NULLIF($5,''),$6,$7,NULLIF($8,''),$9)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		p.EmpresaID, p.Nombre, p.CodigoSKU, p.Tipo, p.UnidadMedida, p.StockMinimo, p.StockActual, p.Descripcion, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto terminado: %w", err)
	}
	return nil
}

// GetByID obtiene un producto terminado. Devuelve (nil, nil) si no existe.
func (r *ProductoTerminadoRepo) GetByID(empresaID, id int64) (*entity.ProductoTerminado, error) {
	query := `SELECT ` + productoTerminadoColumns + ` FROM productos_terminados WHERE empresa_id = $1 AND id = $2`
	return scanProductoTerminado(r.q.QueryRow(context.Background(), query, empresaID, id))
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
func (r *ProductoTerminadoRepo) GetForUpdate(empresaID, id int64) (*entity.ProductoTerminado, error) {
	query := `SELECT ` + productoTerminadoColumns + ` FROM productos_terminados WHERE empresa_id = $1 AND id = $2 FOR UPDATE`
	return scanProductoTerminado(r.q.QueryRow(context.Background(), query, empresaID, id))
}

// Update persiste un producto terminado, stock incluido.
func (r *ProductoTerminadoRepo) Update(p *entity.ProductoTerminado) error {
	query := `
		UPDATE productos_terminados SET nombre = $3, codigo_sku = $4, tipo = NULLIF($5,''), unidad_medida = NULLIF($6,''),
			stock_minimo = $7, stock_actual = $8, descripcion = NULLIF($9,'')
		WHERE empresa_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		p.EmpresaID, p.ID, p.Nombre, p.CodigoSKU, p.Tipo, p.UnidadMedida, p.StockMinimo, p.StockActual, p.Descripcion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update producto terminado: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista los productos terminados de la empresa.
func (r *ProductoTerminadoRepo) List(empresaID int64) ([]*entity.ProductoTerminado, error) {
	query := `SELECT ` + productoTerminadoColumns + ` FROM productos_terminados WHERE empresa_id = $1 ORDER BY nombre ASC`
	rows, err := r.q.Query(context.Background(), query, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list productos terminados: %w", err)
	}
	defer rows.Close()

	var out []*entity.ProductoTerminado
	for rows.Next() {
		var p entity.ProductoTerminado
		if err := rows.Scan(&p.ID, &p.EmpresaID, &p.Nombre, &p.CodigoSKU, &p.Tipo, &p.UnidadMedida, &p.StockMinimo, &p.StockActual, &p.Descripcion, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan producto terminado: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func scanProductoTerminado(row pgx.Row) (*entity.ProductoTerminado, error) {
	var p entity.ProductoTerminado
	err := row.Scan(&p.ID, &p.EmpresaID, &p.Nombre, &p.CodigoSKU, &p.Tipo, &p.UnidadMedida, &p.StockMinimo, &p.StockActual, &p.Descripcion, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan producto terminado: %w", err)
	}
	return &p, nil
}
