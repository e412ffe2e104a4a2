package repository

import (
	"time"

	"github.com/molisur/molino-api/internal/domain/entity"
)

// FiltroRecepciones filtros del listado de recepciones.
type FiltroRecepciones struct {
	Estado      string // en_proceso | finalizado | "" (todos)
	Tipo        string // compra | maquila | "" (todos)
	ProveedorID *int64
	ClienteID   *int64
	Desde       *time.Time
	Hasta       *time.Time
	// SinLote limita a recepciones con ticket que aún no generaron lote.
	SinLote bool
	// SinAcreditar limita a recepciones maquila con peso base que aún no
	// generaron crédito confirmado en el ledger.
	SinAcreditar bool
	Limit        int
	Offset       int
}

// RecepcionRepository define el puerto de persistencia para recepciones.
type RecepcionRepository interface {
	Create(r *entity.Recepcion) error
	GetByID(empresaID, id int64) (*entity.Recepcion, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); usar dentro de una tx
	// antes de emitir ticket o acreditar maquila.
	GetForUpdate(empresaID, id int64) (*entity.Recepcion, error)
	GetByCodigoTicket(empresaID int64, codigo string) (*entity.Recepcion, error)
	Update(r *entity.Recepcion) error
	List(empresaID int64, f FiltroRecepciones) ([]*entity.Recepcion, error)
}

// PesajeRepository define el puerto de persistencia para pesajes (solo inserción:
// los pesajes son eventos inmutables).
type PesajeRepository interface {
	Create(p *entity.Pesaje) error
	ListByRecepcion(recepcionID int64) ([]*entity.Pesaje, error)
}
