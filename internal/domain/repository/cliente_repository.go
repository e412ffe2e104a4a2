package repository

import "github.com/molisur/molino-api/internal/domain/entity"

// ClienteRepository define el puerto de persistencia para clientes maquila.
type ClienteRepository interface {
	Create(c *entity.Cliente) error
	GetByID(empresaID, id int64) (*entity.Cliente, error)
	Update(c *entity.Cliente) error
	List(empresaID int64, limit, offset int) ([]*entity.Cliente, error)
}

// ProveedorRepository define el puerto de persistencia para proveedores de grano.
type ProveedorRepository interface {
	Create(p *entity.Proveedor) error
	GetByID(empresaID, id int64) (*entity.Proveedor, error)
	Update(p *entity.Proveedor) error
	List(empresaID int64, limit, offset int) ([]*entity.Proveedor, error)
}
