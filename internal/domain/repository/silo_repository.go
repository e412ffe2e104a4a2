package repository

import "github.com/molisur/molino-api/internal/domain/entity"

// SiloRepository define el puerto de persistencia para silos.
type SiloRepository interface {
	Create(s *entity.Silo) error
	GetByID(empresaID, id int64) (*entity.Silo, error)
	// GetForUpdate bloquea la fila del silo para mover nivel sin carreras.
	// Con dos silos en juego, bloquear siempre en orden ascendente de id.
	GetForUpdate(empresaID, id int64) (*entity.Silo, error)
	Update(s *entity.Silo) error
	List(empresaID int64) ([]*entity.Silo, error)
}

// BodegaRepository define el puerto de persistencia para bodegas.
type BodegaRepository interface {
	Create(b *entity.Bodega) error
	GetByID(empresaID, id int64) (*entity.Bodega, error)
	List(empresaID int64) ([]*entity.Bodega, error)
}
