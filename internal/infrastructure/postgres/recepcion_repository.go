package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/molisur/molino-api/internal/domain"
	"github.com/molisur/molino-api/internal/domain/entity"
	"github.com/molisur/molino-api/internal/domain/repository"
)

var _ repository.RecepcionRepository = (*RecepcionRepo)(nil)

const recepcionColumns = `
	id, empresa_id, sucursal_id, proveedor_id, cliente_id, producto_agricola_id,
	chofer_id, camion_id, carro_id, tipo_recepcion, estado,
	COALESCE(ticket_codigo, ''), COALESCE(ticket_token, ''),
	COALESCE(numero_guia_despacho, ''), COALESCE(folio_romana, ''), COALESCE(chofer_nombre, ''),
	peso_bruto_kg, peso_tara_kg, peso_neto_fisico_kg,
	descuento_humedad_kg, descuento_impurezas_kg, peso_neto_pagar_kg,
	fecha_entrada, fecha_salida, usuario_operador_id, COALESCE(observaciones, '')`

// RecepcionRepo implementación de RecepcionRepository sobre PostgreSQL
// (usable con pool o tx). peso_neto_fisico_kg es columna generada: se lee,
// jamás se escribe.
type RecepcionRepo struct {
	q Querier
}

// NewRecepcionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecepcionRepository(q Querier) *RecepcionRepo {
	return &RecepcionRepo{q: q}
}

// Create persiste la recepción y deja el id y el neto físico generados en la entidad.
func (r *RecepcionRepo) Create(rec *entity.Recepcion) error {
	query := `
		INSERT INTO recepciones (
			empresa_id, sucursal_id, proveedor_id, cliente_id, producto_agricola_id,
			chofer_id, camion_id, carro_id, tipo_recepcion, estado,
			numero_guia_despacho, folio_romana, chofer_nombre,
			peso_bruto_kg, peso_tara_kg,
			descuento_humedad_kg, descuento_impurezas_kg, peso_neto_pagar_kg,
			fecha_entrada, usuario_operador_id, observaciones
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)
		RETURNING id, peso_neto_fisico_kg`
	err := r.q.QueryRow(context.Background(), query,
		rec.EmpresaID, rec.SucursalID, rec.ProveedorID, rec.ClienteID, rec.ProductoAgricolaID,
		rec.ChoferID, rec.CamionID, rec.CarroID, rec.TipoRecepcion, rec.Estado,
		rec.NumeroGuiaDespacho, rec.FolioRomana, rec.ChoferNombre,
		rec.PesoBrutoKg, rec.PesoTaraKg,
		rec.DescuentoHumedadKg, rec.DescuentoImpurezasKg, rec.PesoNetoPagarKg,
		rec.FechaEntrada, rec.UsuarioOperadorID, rec.Observaciones,
	).Scan(&rec.ID, &rec.PesoNetoFisicoKg)
	if err != nil {
		return fmt.Errorf("insert recepcion: %w", err)
	}
	return nil
}

// GetByID obtiene una recepción de la empresa. Devuelve (nil, nil) si no existe.
func (r *RecepcionRepo) GetByID(empresaID, id int64) (*entity.Recepcion, error) {
	query := `SELECT ` + recepcionColumns + ` FROM recepciones WHERE empresa_id = $1 AND id = $2`
	return scanRecepcion(r.q.QueryRow(context.Background(), query, empresaID, id))
}

// GetForUpdate obtiene la recepción y bloquea la fila (SELECT FOR UPDATE).
func (r *RecepcionRepo) GetForUpdate(empresaID, id int64) (*entity.Recepcion, error) {
	query := `SELECT ` + recepcionColumns + ` FROM recepciones WHERE empresa_id = $1 AND id = $2 FOR UPDATE`
	return scanRecepcion(r.q.QueryRow(context.Background(), query, empresaID, id))
}

// GetByCodigoTicket resuelve una recepción por su código de ticket.
func (r *RecepcionRepo) GetByCodigoTicket(empresaID int64, codigo string) (*entity.Recepcion, error) {
	query := `SELECT ` + recepcionColumns + ` FROM recepciones WHERE empresa_id = $1 AND ticket_codigo = $2`
	return scanRecepcion(r.q.QueryRow(context.Background(), query, empresaID, codigo))
}

// Update persiste los campos mutables de la recepción.
func (r *RecepcionRepo) Update(rec *entity.Recepcion) error {
	query := `
		UPDATE recepciones SET
			estado = $3, ticket_codigo = NULLIF($4, ''), ticket_token = NULLIF($5, ''),
			peso_bruto_kg = $6, peso_tara_kg = $7,
			descuento_humedad_kg = $8, descuento_impurezas_kg = $9, peso_neto_pagar_kg = $10,
			fecha_salida = $11, observaciones = $12,
			chofer_nombre = $13, numero_guia_despacho = $14, folio_romana = $15
		WHERE empresa_id = $1 AND id = $2
		RETURNING peso_neto_fisico_kg`
	err := r.q.QueryRow(context.Background(), query,
		rec.EmpresaID, rec.ID,
		rec.Estado, rec.TicketCodigo, rec.TicketToken,
		rec.PesoBrutoKg, rec.PesoTaraKg,
		rec.DescuentoHumedadKg, rec.DescuentoImpurezasKg, rec.PesoNetoPagarKg,
		rec.FechaSalida, rec.Observaciones,
		rec.ChoferNombre, rec.NumeroGuiaDespacho, rec.FolioRomana,
	).Scan(&rec.PesoNetoFisicoKg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update recepcion: %w", err)
	}
	return nil
}

// List lista recepciones con filtros opcionales, más recientes primero.
func (r *RecepcionRepo) List(empresaID int64, f repository.FiltroRecepciones) ([]*entity.Recepcion, error) {
	query := `SELECT ` + recepcionColumns + ` FROM recepciones WHERE empresa_id = $1`
	args := []any{empresaID}
	pos := 2
	if f.Estado != "" {
		query += ` AND estado = $` + strconv.Itoa(pos)
		args = append(args, f.Estado)
		pos++
	}
	if f.Tipo != "" {
		query += ` AND tipo_recepcion = $` + strconv.Itoa(pos)
		args = append(args, f.Tipo)
		pos++
	}
	if f.ProveedorID != nil {
		query += ` AND proveedor_id = $` + strconv.Itoa(pos)
		args = append(args, *f.ProveedorID)
		pos++
	}
	if f.ClienteID != nil {
		query += ` AND cliente_id = $` + strconv.Itoa(pos)
		args = append(args, *f.ClienteID)
		pos++
	}
	if f.SinLote {
		query += ` AND ticket_codigo IS NOT NULL
			AND NOT EXISTS (SELECT 1 FROM lotes l WHERE l.recepcion_id = recepciones.id)`
	}
	if f.SinAcreditar {
		query += ` AND tipo_recepcion = 'maquila'
			AND (peso_neto_pagar_kg > 0 OR peso_neto_fisico_kg > 0)
			AND NOT EXISTS (
				SELECT 1 FROM maquila_movimientos m
				WHERE m.recepcion_id = recepciones.id
				  AND m.tipo_movimiento = 'CREDITO_HARINA_CONFIRMADO_KG')`
	}
	if f.Desde != nil {
		query += ` AND fecha_entrada >= $` + strconv.Itoa(pos)
		args = append(args, *f.Desde)
		pos++
	}
	if f.Hasta != nil {
		query += ` AND fecha_entrada <= $` + strconv.Itoa(pos)
		args = append(args, *f.Hasta)
		pos++
	}
	query += ` ORDER BY fecha_entrada DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT $` + strconv.Itoa(pos)
		args = append(args, f.Limit)
		pos++
	}
	if f.Offset > 0 {
		query += ` OFFSET $` + strconv.Itoa(pos)
		args = append(args, f.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list recepciones: %w", err)
	}
	defer rows.Close()

	var out []*entity.Recepcion
	for rows.Next() {
		rec, err := scanRecepcionRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanRecepcion(row pgx.Row) (*entity.Recepcion, error) {
	rec, err := scanRecepcionRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func scanRecepcionRow(row pgx.Row) (*entity.Recepcion, error) {
	var rec entity.Recepcion
	err := row.Scan(
		&rec.ID, &rec.EmpresaID, &rec.SucursalID, &rec.ProveedorID, &rec.ClienteID, &rec.ProductoAgricolaID,
		&rec.ChoferID, &rec.CamionID, &rec.CarroID, &rec.TipoRecepcion, &rec.Estado,
		&rec.TicketCodigo, &rec.TicketToken,
		&rec.NumeroGuiaDespacho, &rec.FolioRomana, &rec.ChoferNombre,
		&rec.PesoBrutoKg, &rec.PesoTaraKg, &rec.PesoNetoFisicoKg,
		&rec.DescuentoHumedadKg, &rec.DescuentoImpurezasKg, &rec.PesoNetoPagarKg,
		&rec.FechaEntrada, &rec.FechaSalida, &rec.UsuarioOperadorID, &rec.Observaciones,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ── Pesajes ───────────────────────────────────────────────────────────────────

var _ repository.PesajeRepository = (*PesajeRepo)(nil)

// PesajeRepo implementación de PesajeRepository sobre PostgreSQL. Los pesajes
// son eventos inmutables: sólo insert y lectura.
type PesajeRepo struct {
	q Querier
}

// NewPesajeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPesajeRepository(q Querier) *PesajeRepo {
	return &PesajeRepo{q: q}
}

// Create persiste un pesaje.
func (r *PesajeRepo) Create(p *entity.Pesaje) error {
	query := `
		INSERT INTO pesajes (empresa_id, recepcion_id, tipo, peso_kg, origen, motivo, usuario_id, created_at)
		VALUES ($1,$2,$3,$4,$5,NULLIF($6,''),$7,$8)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		p.EmpresaID, p.RecepcionID, p.Tipo, p.PesoKg, p.Origen, p.Motivo, p.UsuarioID, p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert pesaje: %w", err)
	}
	return nil
}

// ListByRecepcion lista los pesajes de una recepción en orden cronológico.
func (r *PesajeRepo) ListByRecepcion(recepcionID int64) ([]*entity.Pesaje, error) {
	query := `
		SELECT id, empresa_id, recepcion_id, tipo, peso_kg, origen, COALESCE(motivo, ''), usuario_id, created_at
		FROM pesajes WHERE recepcion_id = $1
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, recepcionID)
	if err != nil {
		return nil, fmt.Errorf("list pesajes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Pesaje
	for rows.Next() {
		var p entity.Pesaje
		if err := rows.Scan(&p.ID, &p.EmpresaID, &p.RecepcionID, &p.Tipo, &p.PesoKg, &p.Origen, &p.Motivo, &p.UsuarioID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pesaje: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
