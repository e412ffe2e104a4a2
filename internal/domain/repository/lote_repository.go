package repository

import "github.com/molisur/molino-api/internal/domain/entity"

// LoteRepository define el puerto de persistencia para lotes.
type LoteRepository interface {
	Create(l *entity.Lote) error
	GetByID(empresaID, id int64) (*entity.Lote, error)
	// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE) para descontar
	// saldo sin carreras. Usar siempre dentro de una tx.
	GetForUpdate(empresaID, id int64) (*entity.Lote, error)
	Update(l *entity.Lote) error
	List(empresaID int64, soloActivos bool, limit, offset int) ([]*entity.Lote, error)
	// SiloActual deriva el silo donde está el lote desde su último movimiento
	// de inventario. Nil si el lote no tiene movimientos.
	SiloActual(empresaID, loteID int64) (*entity.Silo, error)
	// ListBySilo devuelve los lotes activos cuyo último movimiento apunta al silo.
	ListBySilo(empresaID, siloID int64) ([]*entity.Lote, error)
}
