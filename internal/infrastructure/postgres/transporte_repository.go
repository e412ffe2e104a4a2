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

// ── Choferes ──────────────────────────────────────────────────────────────────

var _ repository.ChoferRepository = (*ChoferRepo)(nil)

const choferColumns = `id, empresa_id, COALESCE(codigo_chofer, ''), nombre, COALESCE(rut, ''), COALESCE(telefono, ''), COALESCE(email, ''), activo, created_at`

// ChoferRepo implementación de ChoferRepository sobre PostgreSQL.
type ChoferRepo struct {
	q Querier
}

// NewChoferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewChoferRepository(q Querier) *ChoferRepo {
	return &ChoferRepo{q: q}
}

// Create persiste un chofer (el código se asigna después, con el id).
func (r *ChoferRepo) Create(c *entity.Chofer) error {
	query := `
		INSERT INTO choferes (empresa_id, codigo_chofer, nombre, rut, telefono, email, activo, created_at)
		VALUES ($1,NULLIF($2,''),$3,NULLIF($4,''),NULLIF($5,''),NULLIF($6,''),$7,$8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		c.EmpresaID, c.CodigoChofer, c.Nombre, c.Rut, c.Telefono, c.Email, c.Activo, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert chofer: %w", err)
	}
	return nil
}

// GetByID obtiene un chofer de la empresa. Devuelve (nil, nil) si no existe.
func (r *ChoferRepo) GetByID(empresaID, id int64) (*entity.Chofer, error) {
	query := `SELECT ` + choferColumns + ` FROM choferes WHERE empresa_id = $1 AND id = $2`
	return scanChofer(r.q.QueryRow(context.Background(), query, empresaID, id))
}

// GetByCodigo resuelve un chofer por código generado (ya normalizado).
func (r *ChoferRepo) GetByCodigo(empresaID int64, codigo string) (*entity.Chofer, error) {
	query := `SELECT ` + choferColumns + ` FROM choferes WHERE empresa_id = $1 AND codigo_chofer = $2`
	return scanChofer(r.q.QueryRow(context.Background(), query, empresaID, codigo))
}

// Update persiste un chofer.
func (r *ChoferRepo) Update(c *entity.Chofer) error {
	query := `
		UPDATE choferes SET codigo_chofer = NULLIF($3,''), nombre = $4, rut = NULLIF($5,''),
			telefono = NULLIF($6,''), email = NULLIF($7,''), activo = $8
		WHERE empresa_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query, c.EmpresaID, c.ID, c.CodigoChofer, c.Nombre, c.Rut, c.Telefono, c.Email, c.Activo)
	if err != nil {
		return fmt.Errorf("update chofer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista los choferes de la empresa.
func (r *ChoferRepo) List(empresaID int64) ([]*entity.Chofer, error) {
	query := `SELECT ` + choferColumns + ` FROM choferes WHERE empresa_id = $1 ORDER BY nombre ASC`
	rows, err := r.q.Query(context.Background(), query, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list choferes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Chofer
	for rows.Next() {
		var c entity.Chofer
		if err := rows.Scan(&c.ID, &c.EmpresaID, &c.CodigoChofer, &c.Nombre, &c.Rut, &c.Telefono, &c.Email, &c.Activo, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chofer: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func scanChofer(row pgx.Row) (*entity.Chofer, error) {
	var c entity.Chofer
	err := row.Scan(&c.ID, &c.EmpresaID, &c.CodigoChofer, &c.Nombre, &c.Rut, &c.Telefono, &c.Email, &c.Activo, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan chofer: %w", err)
	}
	return &c, nil
}

// ── Camiones ──────────────────────────────────────────────────────────────────

var _ repository.CamionRepository = (*CamionRepo)(nil)

const camionColumns = `id, empresa_id, COALESCE(codigo_camion, ''), patente, COALESCE(marca, ''), COALESCE(modelo, ''), capacidad_carga_kg, COALESCE(estado, ''), activo`

// CamionRepo implementación de CamionRepository sobre PostgreSQL.
type CamionRepo struct {
	q Querier
}

// NewCamionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCamionRepository(q Querier) *CamionRepo {
	return &CamionRepo{q: q}
}

// Create persiste un camión (el código se asigna después, con el id).
func (r *CamionRepo) Create(c *entity.Camion) error {
	query := `
		INSERT INTO camiones (empresa_id, codigo_camion, patente, marca, modelo, capacidad_carga_kg, estado, activo)
		VALUES ($1,NULLIF($2,''),$3,NULLIF($4,''),NULLIF($5,''),$6,NULLIF($7,''),$8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		c.EmpresaID, c.CodigoCamion, c.Patente, c.Marca, c.Modelo, c.CapacidadCargaKg, c.Estado, c.Activo,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert camion: %w", err)
	}
	return nil
}

// GetByID obtiene un camión de la empresa. Devuelve (nil, nil) si no existe.
func (r *CamionRepo) GetByID(empresaID, id int64) (*entity.Camion, error) {
	query := `SELECT ` + camionColumns + ` FROM camiones WHERE empresa_id = $1 AND id = $2`
	return scanCamion(r.q.QueryRow(context.Background(), query, empresaID, id))
}

// GetByCodigo resuelve un camión por código generado o patente normalizada.
func (r *CamionRepo) GetByCodigo(empresaID int64, codigo string) (*entity.Camion, error) {
	query := `SELECT ` + camionColumns + ` FROM camiones WHERE empresa_id = $1 AND (codigo_camion = $2 OR patente = $2)`
	return scanCamion(r.q.QueryRow(context.Background(), query, empresaID, codigo))
}

// Update persiste un camión.
func (r *CamionRepo) Update(c *entity.Camion) error {
	query := `
		UPDATE camiones SET codigo_camion = NULLIF($3,''), patente = $4, marca = NULLIF($5,''), modelo = NULLIF($6,''),
			capacidad_carga_kg = $7, estado = NULLIF($8,''), activo = $9
		WHERE empresa_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		c.EmpresaID, c.ID, c.CodigoCamion, c.Patente, c.Marca, c.Modelo, c.CapacidadCargaKg, c.Estado, c.Activo,
	)
	if err != nil {
		return fmt.Errorf("update camion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista los camiones de la empresa.
func (r *CamionRepo) List(empresaID int64) ([]*entity.Camion, error) {
	query := `SELECT ` + camionColumns + ` FROM camiones WHERE empresa_id = $1 ORDER BY patente ASC`
	rows, err := r.q.Query(context.Background(), query, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list camiones: %w", err)
	}
	defer rows.Close()

	var out []*entity.Camion
	for rows.Next() {
		var c entity.Camion
		if err := rows.Scan(&c.ID, &c.EmpresaID, &c.CodigoCamion, &c.Patente, &c.Marca, &c.Modelo, &c.CapacidadCargaKg, &c.Estado, &c.Activo); err != nil {
			return nil, fmt.Errorf("scan camion: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func scanCamion(row pgx.Row) (*entity.Camion, error) {
	var c entity.Camion
	err := row.Scan(&c.ID, &c.EmpresaID, &c.CodigoCamion, &c.Patente, &c.Marca, &c.Modelo, &c.CapacidadCargaKg, &c.Estado, &c.Activo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan camion: %w", err)
	}
	return &c, nil
}

// ── Carros ────────────────────────────────────────────────────────────────────

var _ repository.CarroRepository = (*CarroRepo)(nil)

const carroColumns = `id, empresa_id, COALESCE(codigo_carro, ''), patente, COALESCE(marca, ''), COALESCE(modelo, ''), capacidad_carga_kg, activo`

// CarroRepo implementación de CarroRepository sobre PostgreSQL.
type CarroRepo struct {
	q Querier
}

// NewCarroRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCarroRepository(q Querier) *CarroRepo {
	return &CarroRepo{q: q}
}

// Create persiste un carro (el código se asigna después, con el id).
func (r *CarroRepo) Create(c *entity.Carro) error {
	query := `
		INSERT INTO carros (empresa_id, codigo_carro, patente, marca, modelo, capacidad_carga_kg, activo)
		VALUES ($1,NULLIF($2,''),$3,NULLIF($4,''),NULLIF($5,''),$6,$7)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		c.EmpresaID, c.CodigoCarro, c.Patente, c.Marca, c.Modelo, c.CapacidadCargaKg, c.Activo,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert carro: %w", err)
	}
	return nil
}

// GetByID obtiene un carro de la empresa. Devuelve (nil, nil) si no existe.
func (r *CarroRepo) GetByID(empresaID, id int64) (*entity.Carro, error) {
	query := `SELECT ` + carroColumns + ` FROM carros WHERE empresa_id = $1 AND id = $2`
	return scanCarro(r.q.QueryRow(context.Background(), query, empresaID, id))
}

// GetByCodigo resuelve un carro por código generado o patente normalizada.
func (r *CarroRepo) GetByCodigo(empresaID int64, codigo string) (*entity.Carro, error) {
	query := `SELECT ` + carroColumns + ` FROM carros WHERE empresa_id = $1 AND (codigo_carro = $2 OR patente = $2)`
	return scanCarro(r.q.QueryRow(context.Background(), query, empresaID, codigo))
}

// Update persiste un carro.
func (r *CarroRepo) Update(c *entity.Carro) error {
	query := `
		UPDATE carros SET codigo_carro = NULLIF($3,''), patente = $4, marca = NULLIF($5,''), modelo = NULLIF($6,''),
			capacidad_carga_kg = $7, activo = $8
		WHERE empresa_id = $1 AND id = $2`
	tag, err := r.q.Exec(context.Background(), query,
		c.EmpresaID, c.ID, c.CodigoCarro, c.Patente, c.Marca, c.Modelo, c.CapacidadCargaKg, c.Activo,
	)
	if err != nil {
		return fmt.Errorf("update carro: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista los carros de la empresa.
func (r *CarroRepo) List(empresaID int64) ([]*entity.Carro, error) {
	query := `SELECT ` + carroColumns + ` FROM carros WHERE empresa_id = $1 ORDER BY patente ASC`
	rows, err := r.q.Query(context.Background(), query, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list carros: %w", err)
	}
	defer rows.Close()

	var out []*entity.Carro
	for rows.Next() {
		var c entity.Carro
		if err := rows.Scan(&c.ID, &c.EmpresaID, &c.CodigoCarro, &c.Patente, &c.Marca, &c.Modelo, &c.CapacidadCargaKg, &c.Activo); err != nil {
			return nil, fmt.Errorf("scan carro: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func scanCarro(row pgx.Row) (*entity.Carro, error) {
	var c entity.Carro
	err := row.Scan(&c.ID, &c.EmpresaID, &c.CodigoCarro, &c.Patente, &c.Marca, &c.Modelo, &c.CapacidadCargaKg, &c.Activo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan carro: %w", err)
	}
	return &c, nil
}
