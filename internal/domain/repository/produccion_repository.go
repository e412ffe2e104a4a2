package repository

import (
	"time"

	"github.com/molisur/molino-api/internal/domain/entity"
)

// FormulaRepository define el puerto de persistencia para fórmulas de
// producción y sus ingredientes.
type FormulaRepository interface {
	Create(f *entity.Formula) error
	GetByID(empresaID, id int64) (*entity.Formula, error)
	Update(f *entity.Formula) error
	List(empresaID int64, soloActivas bool) ([]*entity.Formula, error)
}

// OrdenProduccionRepository define el puerto de persistencia para órdenes de
// producción y sus insumos consumidos.
type OrdenProduccionRepository interface {
	Create(o *entity.OrdenProduccion) error
	GetByID(empresaID, id int64) (*entity.OrdenProduccion, error)
	// GetForUpdate bloquea la orden para que el cierre con rendimiento ocurra
	// exactamente una vez.
	GetForUpdate(empresaID, id int64) (*entity.OrdenProduccion, error)
	Update(o *entity.OrdenProduccion) error
	List(empresaID int64, estado string, limit, offset int) ([]*entity.OrdenProduccion, error)
	CreateInsumo(i *entity.OrdenProduccionInsumo) error
	ListInsumos(empresaID, ordenID int64) ([]*entity.OrdenProduccionInsumo, error)
}

// RendimientoRepository define el puerto de persistencia para rendimientos de
// molienda y sus subproductos.
type RendimientoRepository interface {
	Create(r *entity.Rendimiento) error
	GetByOrden(empresaID, ordenID int64) (*entity.Rendimiento, error)
	ListByEmpresa(empresaID int64, limit, offset int) ([]*entity.Rendimiento, error)
	// Estadisticas agrega el balance de masa de los rendimientos del período y
	// cuenta las órdenes cuya merma superó la tolerancia de su fórmula.
	Estadisticas(empresaID int64, desde, hasta *time.Time) (*entity.EstadisticasProduccion, error)
}
