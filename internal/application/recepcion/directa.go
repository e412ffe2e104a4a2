package recepcion

import (
	"context"
	"time"

	"github.com/molisur/molino-api/internal/application/dto"
	"github.com/molisur/molino-api/internal/domain"
	"github.com/molisur/molino-api/internal/domain/entity"
	"github.com/molisur/molino-api/internal/domain/repository"
	"github.com/molisur/molino-api/internal/domain/wms"
	"github.com/shopspring/decimal"
)

// CrearDirectaMaquila registra una recepción maquila completa en una sola
// transacción: ambos pesajes, ticket, cierre y crédito de harina según el tipo
// de trabajo. Pensada para molinos chicos sin laboratorio, donde el camión se
// pesa y descarga en un mismo paso.
func (uc *UseCase) CrearDirectaMaquila(ctx context.Context, empresaID int64, usuarioID *int64, in dto.RecepcionDirectaRequest) (*entity.Recepcion, *entity.MaquilaMovimiento, error) {
	if in.PesoBrutoKg <= 0 || in.PesoTaraKg <= 0 || in.PesoBrutoKg <= in.PesoTaraKg {
		return nil, nil, domain.ErrInvalidInput
	}

	var (
		recepcion *entity.Recepcion
		credito   *entity.MaquilaMovimiento
	)
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		cliente, err := tx.Clientes.GetByID(empresaID, in.ClienteID)
		if err != nil {
			return err
		}
		if cliente == nil {
			return domain.ErrNotFound
		}
		if cliente.Bloqueado {
			return domain.ErrForbidden
		}

		tt, err := tx.TiposTrabajo.GetByID(empresaID, in.TipoTrabajoID)
		if err != nil {
			return err
		}
		if tt == nil {
			return domain.ErrNotFound
		}
		if !tt.Activo {
			return domain.ErrConflict
		}

		now := time.Now()
		r := &entity.Recepcion{
			EmpresaID:          empresaID,
			SucursalID:         in.SucursalID,
			ClienteID:          &in.ClienteID,
			ProductoAgricolaID: in.ProductoAgricolaID,
			TipoRecepcion:      entity.RecepcionTipoMaquila,
			Estado:             entity.RecepcionEstadoEnProceso,
			ChoferNombre:       in.ChoferNombre,
			PesoBrutoKg:        in.PesoBrutoKg,
			PesoTaraKg:         in.PesoTaraKg,
			FechaEntrada:       now,
			UsuarioOperadorID:  usuarioID,
			Observaciones:      in.Observaciones,
		}
		if err := tx.Recepciones.Create(r); err != nil {
			return err
		}

		pesajes := []*entity.Pesaje{
			{EmpresaID: empresaID, RecepcionID: r.ID, Tipo: entity.PesajeTipoBruto, PesoKg: in.PesoBrutoKg, Origen: entity.PesajeOrigenManual, UsuarioID: usuarioID, CreatedAt: now},
			{EmpresaID: empresaID, RecepcionID: r.ID, Tipo: entity.PesajeTipoTara, PesoKg: in.PesoTaraKg, Origen: entity.PesajeOrigenManual, UsuarioID: usuarioID, CreatedAt: now},
		}
		for _, p := range pesajes {
			if err := tx.Pesajes.Create(p); err != nil {
				return err
			}
		}

		r.PesoNetoFisicoKg = r.NetoFisicoKg()
		// Sin laboratorio no hay castigos: el neto físico es el neto a pagar.
		r.PesoNetoPagarKg = r.NetoFisicoKg()
		r.TicketCodigo = wms.CodigoTicket(now, r.ID)
		r.TicketToken = generarToken(empresaID, r.ID)
		r.Estado = entity.RecepcionEstadoFinalizado
		r.FechaSalida = &now
		if err := tx.Recepciones.Update(r); err != nil {
			return err
		}

		kg := decimal.NewFromInt(r.PesoBaseKg()).Mul(tt.Porcentaje).
			Div(decimal.NewFromInt(100)).Round(0)
		if !kg.IsPositive() {
			return domain.ErrInvalidInput
		}
		m := &entity.MaquilaMovimiento{
			EmpresaID:        empresaID,
			SucursalID:       r.SucursalID,
			ClienteID:        in.ClienteID,
			ProductoHarinaID: tt.ProductoHarinaID,
			RecepcionID:      &r.ID,
			TipoMovimiento:   entity.MaquilaCreditoConfirmado,
			Kg:               entity.SignoMaquila(entity.MaquilaCreditoConfirmado, kg),
			Observacion:      in.Observaciones,
			UsuarioID:        usuarioID,
			CreatedAt:        now,
		}
		if err := tx.Maquila.CreateMovimiento(m); err != nil {
			return err
		}

		recepcion = r
		credito = m
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return recepcion, credito, nil
}
