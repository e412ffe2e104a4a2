package repository

import "github.com/molisur/molino-api/internal/domain/entity"

// ChoferRepository define el puerto de persistencia para choferes. GetByCodigo
// espera el código ya normalizado (pkg/codigos).
type ChoferRepository interface {
	Create(c *entity.Chofer) error
	GetByID(empresaID, id int64) (*entity.Chofer, error)
	GetByCodigo(empresaID int64, codigo string) (*entity.Chofer, error)
	Update(c *entity.Chofer) error
	List(empresaID int64) ([]*entity.Chofer, error)
}

// CamionRepository define el puerto de persistencia para camiones.
type CamionRepository interface {
	Create(c *entity.Camion) error
	GetByID(empresaID, id int64) (*entity.Camion, error)
	GetByCodigo(empresaID int64, codigo string) (*entity.Camion, error)
	Update(c *entity.Camion) error
	List(empresaID int64) ([]*entity.Camion, error)
}

// CarroRepository define el puerto de persistencia para carros (acoplados).
type CarroRepository interface {
	Create(c *entity.Carro) error
	GetByID(empresaID, id int64) (*entity.Carro, error)
	GetByCodigo(empresaID int64, codigo string) (*entity.Carro, error)
	Update(c *entity.Carro) error
	List(empresaID int64) ([]*entity.Carro, error)
}
