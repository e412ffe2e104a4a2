package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/molisur/molino-api/internal/domain/entity"
	"github.com/molisur/molino-api/internal/domain/repository"
)

var _ repository.LaboratorioRepository = (*LaboratorioRepo)(nil)

const laboratorioColumns = `
	id, empresa_id, recepcion_id, humedad_porcentaje, impurezas_porcentaje,
	peso_hectolitrico, proteina_porcentaje, gluten_wet, indice_caida,
	granos_chuzos, punta_negra, aprobado_calidad, usuario_analista_id,
	fecha_analisis, COALESCE(observaciones, '')`

// LaboratorioRepo implementación de LaboratorioRepository sobre PostgreSQL.
// La relación con la recepción es 1:1 con constraint único: el upsert
// sobreescribe el análisis anterior.
type LaboratorioRepo struct {
	q Querier
}

// NewLaboratorioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLaboratorioRepository(q Querier) *LaboratorioRepo {
	return &LaboratorioRepo{q: q}
}

// Upsert inserta o reemplaza el análisis de la recepción.
func (r *LaboratorioRepo) Upsert(a *entity.Laboratorio) error {
	query := `
		INSERT INTO analisis_laboratorio (
			empresa_id, recepcion_id, humedad_porcentaje, impurezas_porcentaje,
			peso_hectolitrico, proteina_porcentaje, gluten_wet, indice_caida,
			granos_chuzos, punta_negra, aprobado_calidad, usuario_analista_id,
			fecha_analisis, observaciones
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,NULLIF($14,''))
		ON CONFLICT (recepcion_id) DO UPDATE SET
			humedad_porcentaje = EXCLUDED.humedad_porcentaje,
			impurezas_porcentaje = EXCLUDED.impurezas_porcentaje,
			peso_hectolitrico = EXCLUDED.peso_hectolitrico,
			proteina_porcentaje = EXCLUDED.proteina_porcentaje,
			gluten_wet = EXCLUDED.gluten_wet,
			indice_caida = EXCLUDED.indice_caida,
			granos_chuzos = EXCLUDED.granos_chuzos,
			punta_negra = EXCLUDED.punta_negra,
			aprobado_calidad = EXCLUDED.aprobado_calidad,
			usuario_analista_id = EXCLUDED.usuario_analista_id,
			fecha_analisis = EXCLUDED.fecha_analisis,
			observaciones = EXCLUDED.observaciones
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		a.EmpresaID, a.RecepcionID, a.HumedadPorcentaje, a.ImpurezasPorcentaje,
		a.PesoHectolitrico, a.ProteinaPorcentaje, a.GlutenWet, a.IndiceCaida,
		a.GranosChuzos, a.PuntaNegra, a.AprobadoCalidad, a.UsuarioAnalistaID,
		a.FechaAnalisis, a.Observaciones,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("upsert analisis laboratorio: %w", err)
	}
	return nil
}

// GetByRecepcion devuelve el análisis de una recepción, (nil, nil) si no hay.
func (r *LaboratorioRepo) GetByRecepcion(recepcionID int64) (*entity.Laboratorio, error) {
	query := `SELECT ` + laboratorioColumns + ` FROM analisis_laboratorio WHERE recepcion_id = $1`
	a, err := scanLaboratorio(r.q.QueryRow(context.Background(), query, recepcionID))
	if err != nil {
		return nil, fmt.Errorf("get analisis: %w", err)
	}
	return a, nil
}

// ListByEmpresa lista los análisis de la empresa, más recientes primero.
func (r *LaboratorioRepo) ListByEmpresa(empresaID int64, limit, offset int) ([]*entity.Laboratorio, error) {
	query := `SELECT ` + laboratorioColumns + `
		FROM analisis_laboratorio WHERE empresa_id = $1
		ORDER BY fecha_analisis DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, empresaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list analisis: %w", err)
	}
	defer rows.Close()

	var out []*entity.Laboratorio
	for rows.Next() {
		var a entity.Laboratorio
		if err := rows.Scan(
			&a.ID, &a.EmpresaID, &a.RecepcionID, &a.HumedadPorcentaje, &a.ImpurezasPorcentaje,
			&a.PesoHectolitrico, &a.ProteinaPorcentaje, &a.GlutenWet, &a.IndiceCaida,
			&a.GranosChuzos, &a.PuntaNegra, &a.AprobadoCalidad, &a.UsuarioAnalistaID,
			&a.FechaAnalisis, &a.Observaciones,
		); err != nil {
			return nil, fmt.Errorf("scan analisis: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

func scanLaboratorio(row pgx.Row) (*entity.Laboratorio, error) {
	var a entity.Laboratorio
	err := row.Scan(
		&a.ID, &a.EmpresaID, &a.RecepcionID, &a.HumedadPorcentaje, &a.ImpurezasPorcentaje,
		&a.PesoHectolitrico, &a.ProteinaPorcentaje, &a.GlutenWet, &a.IndiceCaida,
		&a.GranosChuzos, &a.PuntaNegra, &a.AprobadoCalidad, &a.UsuarioAnalistaID,
		&a.FechaAnalisis, &a.Observaciones,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
