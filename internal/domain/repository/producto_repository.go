package repository

import "github.com/molisur/molino-api/internal/domain/entity"

// ProductoAgricolaRepository define el puerto de persistencia para materias
// primas.
type ProductoAgricolaRepository interface {
	Create(p *entity.ProductoAgricola) error
	GetByID(empresaID, id int64) (*entity.ProductoAgricola, error)
	Update(p *entity.ProductoAgricola) error
	List(empresaID int64) ([]*entity.ProductoAgricola, error)
	// TieneDependencias indica si la materia prima está referenciada por
	// recepciones o ingredientes de fórmula.
	TieneDependencias(empresaID, id int64) (bool, error)
	Delete(empresaID, id int64) error
}

// ProductoTerminadoRepository define el puerto de persistencia para productos
// de molienda.
type ProductoTerminadoRepository interface {
	Create(p *entity.ProductoTerminado) error
	GetByID(empresaID, id int64) (*entity.ProductoTerminado, error)
	// GetForUpdate bloquea la fila para sumar stock al cerrar una orden.
	GetForUpdate(empresaID, id int64) (*entity.ProductoTerminado, error)
	Update(p *entity.ProductoTerminado) error
	List(empresaID int64) ([]*entity.ProductoTerminado, error)
}
