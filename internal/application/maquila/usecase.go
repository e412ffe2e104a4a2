package maquila

import (
	"context"
	"time"

	"github.com/molisur/molino-api/internal/application/dto"
	"github.com/molisur/molino-api/internal/domain"
	"github.com/molisur/molino-api/internal/domain/entity"
	"github.com/molisur/molino-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var cien = decimal.NewFromInt(100)

// UseCase casos de uso de la cuenta corriente de harina: acreditación desde
// tipos de trabajo, retiros, ajustes y saldos. El ledger es sólo-apéndice y el
// saldo siempre se deriva con SUM(kg).
type UseCase struct {
	txRunner     repository.TxRunner
	maquila      repository.MaquilaRepository
	tiposTrabajo repository.MaquilaTipoTrabajoRepository
	clientes     repository.ClienteRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner repository.TxRunner,
	maquila repository.MaquilaRepository,
	tiposTrabajo repository.MaquilaTipoTrabajoRepository,
	clientes repository.ClienteRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, maquila: maquila, tiposTrabajo: tiposTrabajo, clientes: clientes}
}

// Acreditar confirma el crédito de harina de una recepción maquila según un
// tipo de trabajo: kg = peso base de la recepción por el porcentaje del
// preset, redondeado a kg enteros. La recepción se bloquea antes de verificar
// el crédito previo, de modo que dos confirmaciones concurrentes no puedan
// acreditar dos veces.
func (uc *UseCase) Acreditar(ctx context.Context, empresaID int64, usuarioID *int64, in dto.AcreditarHarinaRequest) (*entity.MaquilaMovimiento, error) {
	var mov *entity.MaquilaMovimiento
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		r, err := tx.Recepciones.GetForUpdate(empresaID, in.RecepcionID)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}
		if r.TipoRecepcion != entity.RecepcionTipoMaquila || r.ClienteID == nil {
			return domain.ErrInvalidInput
		}

		ya, err := tx.Maquila.ExisteCreditoDeRecepcion(r.ID)
		if err != nil {
			return err
		}
		if ya {
			return domain.ErrYaAcreditado
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

		kg := decimal.NewFromInt(r.PesoBaseKg()).Mul(tt.Porcentaje).Div(cien).Round(0)
		if !kg.IsPositive() {
			return domain.ErrInvalidInput
		}

		m := &entity.MaquilaMovimiento{
			EmpresaID:        empresaID,
			SucursalID:       r.SucursalID,
			ClienteID:        *r.ClienteID,
			ProductoHarinaID: tt.ProductoHarinaID,
			RecepcionID:      &r.ID,
			TipoMovimiento:   entity.MaquilaCreditoConfirmado,
			Kg:               entity.SignoMaquila(entity.MaquilaCreditoConfirmado, kg),
			Observacion:      in.Observacion,
			UsuarioID:        usuarioID,
			CreatedAt:        time.Now(),
		}
		if err := tx.Maquila.CreateMovimiento(m); err != nil {
			return err
		}
		mov = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RegistrarRetiro descuenta harina del saldo del cliente. El saldo se verifica
// dentro de la misma transacción del insert para que retiros concurrentes no
// dejen la cuenta en negativo.
func (uc *UseCase) RegistrarRetiro(ctx context.Context, empresaID int64, usuarioID *int64, in dto.RetiroHarinaRequest) (*entity.MaquilaMovimiento, error) {
	if !in.Kg.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	var mov *entity.MaquilaMovimiento
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		c, err := tx.Clientes.GetByID(empresaID, in.ClienteID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		if c.Bloqueado {
			return domain.ErrForbidden
		}

		saldo, err := tx.Maquila.SaldoProducto(empresaID, in.ClienteID, in.ProductoHarinaID)
		if err != nil {
			return err
		}
		if saldo.LessThan(in.Kg) {
			return domain.ErrSaldoInsuficiente
		}

		m := &entity.MaquilaMovimiento{
			EmpresaID:        empresaID,
			ClienteID:        in.ClienteID,
			ProductoHarinaID: in.ProductoHarinaID,
			TipoMovimiento:   entity.MaquilaRetiroHarina,
			Kg:               entity.SignoMaquila(entity.MaquilaRetiroHarina, in.Kg),
			SacosCantidad:    in.SacosCantidad,
			SacoPesoKg:       in.SacoPesoKg,
			Observacion:      in.Observacion,
			UsuarioID:        usuarioID,
			CreatedAt:        time.Now(),
		}
		if err := tx.Maquila.CreateMovimiento(m); err != nil {
			return err
		}
		mov = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RegistrarAjuste inserta una fila correctiva con el signo que entregue el
// caller. Exige observación: un ajuste sin motivo no es auditable.
func (uc *UseCase) RegistrarAjuste(ctx context.Context, empresaID int64, usuarioID *int64, in dto.AjusteMaquilaRequest) (*entity.MaquilaMovimiento, error) {
	if in.Kg.IsZero() || in.Observacion == "" {
		return nil, domain.ErrInvalidInput
	}
	m := &entity.MaquilaMovimiento{
		EmpresaID:        empresaID,
		ClienteID:        in.ClienteID,
		ProductoHarinaID: in.ProductoHarinaID,
		TipoMovimiento:   entity.MaquilaAjuste,
		Kg:               entity.SignoMaquila(entity.MaquilaAjuste, in.Kg),
		Observacion:      in.Observacion,
		UsuarioID:        usuarioID,
		CreatedAt:        time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		c, err := tx.Clientes.GetByID(empresaID, in.ClienteID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		return tx.Maquila.CreateMovimiento(m)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Saldo devuelve el saldo derivado por producto de un cliente.
func (uc *UseCase) Saldo(empresaID, clienteID int64) ([]*entity.SaldoHarina, error) {
	return uc.maquila.Saldo(empresaID, clienteID)
}

// CuentaCorriente arma la vista completa: saldos por producto y movimientos.
func (uc *UseCase) CuentaCorriente(empresaID, clienteID int64, from, to *time.Time, limit, offset int) (*dto.CuentaCorrienteResponse, error) {
	c, err := uc.clientes.GetByID(empresaID, clienteID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}

	saldos, err := uc.maquila.Saldo(empresaID, clienteID)
	if err != nil {
		return nil, err
	}
	movs, err := uc.maquila.ListMovimientos(empresaID, clienteID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	pendiente, err := uc.maquila.TrigoPendienteKg(empresaID, clienteID)
	if err != nil {
		return nil, err
	}

	out := &dto.CuentaCorrienteResponse{
		ClienteID:        clienteID,
		Saldos:           make([]dto.SaldoHarinaDTO, 0, len(saldos)),
		TrigoPendienteKg: pendiente,
		Movimientos:      make([]dto.MaquilaMovimientoResponse, 0, len(movs)),
	}
	for _, s := range saldos {
		out.Saldos = append(out.Saldos, dto.SaldoHarinaDTO{
			ProductoHarinaID: s.ProductoHarinaID,
			ProductoNombre:   s.ProductoNombre,
			SaldoKg:          s.SaldoKg,
		})
	}
	for _, m := range movs {
		out.Movimientos = append(out.Movimientos, dto.MaquilaMovimientoResponse{
			ID:               m.ID,
			ClienteID:        m.ClienteID,
			ProductoHarinaID: m.ProductoHarinaID,
			RecepcionID:      m.RecepcionID,
			TipoMovimiento:   m.TipoMovimiento,
			Kg:               m.Kg,
			Observacion:      m.Observacion,
			Fecha:            m.CreatedAt,
		})
	}
	return out, nil
}

// CrearTipoTrabajo registra un preset de rendimiento maquila.
func (uc *UseCase) CrearTipoTrabajo(ctx context.Context, empresaID int64, in dto.TipoTrabajoRequest) (*entity.MaquilaTipoTrabajo, error) {
	if err := validarTipoTrabajo(in); err != nil {
		return nil, err
	}
	activo := true
	if in.Activo != nil {
		activo = *in.Activo
	}
	t := &entity.MaquilaTipoTrabajo{
		EmpresaID:        empresaID,
		Nombre:           in.Nombre,
		Porcentaje:       in.Porcentaje,
		ProductoHarinaID: in.ProductoHarinaID,
		Activo:           activo,
		Orden:            in.Orden,
		CreatedAt:        time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		return tx.TiposTrabajo.Create(t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ActualizarTipoTrabajo modifica un preset existente.
func (uc *UseCase) ActualizarTipoTrabajo(ctx context.Context, empresaID, id int64, in dto.TipoTrabajoRequest) (*entity.MaquilaTipoTrabajo, error) {
	if err := validarTipoTrabajo(in); err != nil {
		return nil, err
	}
	var out *entity.MaquilaTipoTrabajo
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		t, err := tx.TiposTrabajo.GetByID(empresaID, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		t.Nombre = in.Nombre
		t.Porcentaje = in.Porcentaje
		t.ProductoHarinaID = in.ProductoHarinaID
		if in.Activo != nil {
			t.Activo = *in.Activo
		}
		t.Orden = in.Orden
		if err := tx.TiposTrabajo.Update(t); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListarTiposTrabajo devuelve los presets de la empresa.
func (uc *UseCase) ListarTiposTrabajo(empresaID int64, soloActivos bool) ([]*entity.MaquilaTipoTrabajo, error) {
	return uc.tiposTrabajo.List(empresaID, soloActivos)
}

func validarTipoTrabajo(in dto.TipoTrabajoRequest) error {
	if in.Nombre == "" {
		return domain.ErrInvalidInput
	}
	if !in.Porcentaje.IsPositive() || in.Porcentaje.GreaterThan(cien) {
		return domain.ErrInvalidInput
	}
	return nil
}
