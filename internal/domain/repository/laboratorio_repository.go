package repository

import "github.com/molisur/molino-api/internal/domain/entity"

// LaboratorioRepository define el puerto de persistencia para análisis de
// laboratorio (relación 1:1 con la recepción; el re-análisis sobreescribe).
type LaboratorioRepository interface {
	Upsert(a *entity.Laboratorio) error
	GetByRecepcion(recepcionID int64) (*entity.Laboratorio, error)
	ListByEmpresa(empresaID int64, limit, offset int) ([]*entity.Laboratorio, error)
}
