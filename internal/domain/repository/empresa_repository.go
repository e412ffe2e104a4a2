package repository

import "github.com/molisur/molino-api/internal/domain/entity"

// EmpresaRepository define el puerto de persistencia para empresas (tenants).
type EmpresaRepository interface {
	Create(e *entity.Empresa) error
	GetByID(id int64) (*entity.Empresa, error)
	ListSucursales(empresaID int64) ([]*entity.Sucursal, error)
}
