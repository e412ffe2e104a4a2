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

// ── Clientes ──────────────────────────────────────────────────────────────────

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

const clienteColumns = `id, empresa_id, rut, razon_social, COALESCE(nombre_fantasia, ''), COALESCE(telefono, ''), COALESCE(email_facturacion, ''), bloqueado, created_at`

// ClienteRepo implementación de ClienteRepository sobre PostgreSQL.
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

// Create persiste un cliente. El RUT tiene constraint único por empresa.
func (r *ClienteRepo) Create(c *entity.Cliente) error {
	query := `
		INSERT INTO clientes (empresa_id, rut, razon_social, nombre_fantasia, telefono, email_facturacion, bloqueado, created_at)
		VALUES ($1,$2,$3,NULLIF($4,''),NULLIF($5,''),NULLIF($6,''),$7,$8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		c.EmpresaID, c.Rut, c.RazonSocial, c.NombreFantasia, c.Telefono, c.EmailFacturacion, c.Bloqueado, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente de la empresa. Devuelve (nil, nil) si no existe.
func (r *ClienteRepo) GetByID(empresaID, id int64) (*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE empresa_id = $1 AND id = $2`
	var c entity.Cliente
	err := r.q.QueryRow(context.Background(), query, empresaID, id).Scan(
		&c.ID, &c.EmpresaID, &c.Rut, &c.RazonSocial, &c.NombreFantasia, &c.Telefono, &c.EmailFacturacion, &c.Bloqueado, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

// Update persiste un cliente.
func (r *ClienteRepo) Update(c *entity.Cliente) error {
	query := `
		UPDATE clientes SET rut = $3, razon_social = $4, nombre_fantasia = NULLIF($5,''),
			telefono = NULLIF($6,''), email_facturacion = NULLIF($7,''), bloqueado = $8
		WHERE empresa_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		c.EmpresaID, c.ID, c.Rut, c.RazonSocial, c.NombreFantasia, c.Telefono, c.EmailFacturacion, c.Bloqueado,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista los clientes de la empresa.
func (r *ClienteRepo) List(empresaID int64, limit, offset int) ([]*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE empresa_id = $1 ORDER BY razon_social ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, empresaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Cliente
	for rows.Next() {
		var c entity.Cliente
		if err := rows.Scan(&c.ID, &c.EmpresaID, &c.Rut, &c.RazonSocial, &c.NombreFantasia, &c.Telefono, &c.EmailFacturacion, &c.Bloqueado, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// ── Proveedores ───────────────────────────────────────────────────────────────

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

const proveedorColumns = `id, empresa_id, rut, razon_social, COALESCE(alias, ''), COALESCE(telefono, ''), COALESCE(email, ''), created_at`

// ProveedorRepo implementación de ProveedorRepository sobre PostgreSQL.
type ProveedorRepo struct {
	q Querier
}

// NewProveedorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

// Create persiste un proveedor.
func (r *ProveedorRepo) Create(p *entity.Proveedor) error {
	query := `
		INSERT INTO proveedores (empresa_id, rut, razon_social, alias, telefono, email, created_at)
		VALUES ($1,$2,$3,NULLIF($4,''),NULLIF($5,''),NULLIF($6,''),$7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		p.EmpresaID, p.Rut, p.RazonSocial, p.Alias, p.Telefono, p.Email, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor de la empresa. Devuelve (nil, nil) si no existe.
func (r *ProveedorRepo) GetByID(empresaID, id int64) (*entity.Proveedor, error) {
	query := `SELECT ` + proveedorColumns + ` FROM proveedores WHERE empresa_id = $1 AND id = $2`
	var p entity.Proveedor
	err := r.q.QueryRow(context.Background(), query, empresaID, id).Scan(
		&p.ID, &p.EmpresaID, &p.Rut, &p.RazonSocial, &p.Alias, &p.Telefono, &p.Email, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return &p, nil
}

// Update persiste un proveedor.
func (r *ProveedorRepo) Update(p *entity.Proveedor) error {
	query := `
		UPDATE proveedores SET rut = $3, razon_social = $4, alias = NULLIF($5,''), telefono = NULLIF($6,''), email = NULLIF($7,'')
		WHERE empresa_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query, p.EmpresaID, p.ID, p.Rut, p.RazonSocial, p.Alias, p.Telefono, p.Email)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update proveedor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista los proveedores de la empresa.
func (r *ProveedorRepo) List(empresaID int64, limit, offset int) ([]*entity.Proveedor, error) {
	query := `SELECT ` + proveedorColumns + ` FROM proveedores WHERE empresa_id = $1 ORDER BY razon_social ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, empresaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()

	var out []*entity.Proveedor
	for rows.Next() {
		var p entity.Proveedor
		if err := rows.Scan(&p.ID, &p.EmpresaID, &p.Rut, &p.RazonSocial, &p.Alias, &p.Telefono, &p.Email, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
