package repository

import (
	"time"

	"github.com/molisur/molino-api/internal/domain/entity"
)

// MovimientoInventarioRepository define el puerto de persistencia para el log
// de movimientos de inventario. Sólo-apéndice: no hay Update ni Delete.
type MovimientoInventarioRepository interface {
	Create(m *entity.MovimientoInventario) error
	ListByLote(empresaID, loteID int64) ([]*entity.MovimientoInventario, error)
	ListBySilo(empresaID, siloID int64, from, to *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error)
	ListByEmpresa(empresaID int64, from, to *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error)
}
