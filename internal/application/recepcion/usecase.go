package recepcion

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/molisur/molino-api/internal/application/dto"
	"github.com/molisur/molino-api/internal/domain"
	"github.com/molisur/molino-api/internal/domain/entity"
	"github.com/molisur/molino-api/internal/domain/repository"
	"github.com/molisur/molino-api/internal/domain/wms"
	"github.com/molisur/molino-api/pkg/codigos"
)

// UseCase casos de uso de recepciones: alta, pesajes, emisión de ticket y
// cierre. Las escrituras van siempre por TxRunner; las lecturas usan los repos
// atados al pool.
type UseCase struct {
	txRunner    repository.TxRunner
	recepciones repository.RecepcionRepository
	pesajes     repository.PesajeRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner repository.TxRunner,
	recepciones repository.RecepcionRepository,
	pesajes repository.PesajeRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, recepciones: recepciones, pesajes: pesajes}
}

// Crear registra una recepción en estado en_proceso. El contraparte depende
// del tipo: compra exige proveedor y maquila exige cliente.
func (uc *UseCase) Crear(ctx context.Context, empresaID int64, usuarioID *int64, in dto.CrearRecepcionRequest) (*entity.Recepcion, error) {
	switch in.TipoRecepcion {
	case entity.RecepcionTipoCompra:
		if in.ProveedorID == nil {
			return nil, domain.ErrInvalidInput
		}
	case entity.RecepcionTipoMaquila:
		if in.ClienteID == nil {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	r := &entity.Recepcion{
		EmpresaID:          empresaID,
		SucursalID:         in.SucursalID,
		ProveedorID:        in.ProveedorID,
		ClienteID:          in.ClienteID,
		ProductoAgricolaID: in.ProductoAgricolaID,
		ChoferID:           in.ChoferID,
		CamionID:           in.CamionID,
		CarroID:            in.CarroID,
		TipoRecepcion:      in.TipoRecepcion,
		Estado:             entity.RecepcionEstadoEnProceso,
		NumeroGuiaDespacho: in.NumeroGuiaDespacho,
		FolioRomana:        in.FolioRomana,
		ChoferNombre:       in.ChoferNombre,
		FechaEntrada:       time.Now(),
		UsuarioOperadorID:  usuarioID,
		Observaciones:      in.Observaciones,
	}
	var err error
	err = uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		return tx.Recepciones.Create(r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// RegistrarPesaje agrega un evento de pesaje (inmutable) y actualiza el último
// valor por tipo sobre la recepción. La TARA estampa la fecha de salida del
// camión y, con BRUTO y TARA presentes, el ticket se emite en la misma
// transacción. La fila de la recepción se bloquea para que dos romanas no se
// pisen el último valor.
func (uc *UseCase) RegistrarPesaje(ctx context.Context, empresaID, recepcionID int64, usuarioID *int64, in dto.RegistrarPesajeRequest) (*entity.Pesaje, error) {
	if in.Tipo != entity.PesajeTipoBruto && in.Tipo != entity.PesajeTipoTara {
		return nil, domain.ErrInvalidInput
	}
	if in.PesoKg <= 0 {
		return nil, domain.ErrInvalidInput
	}
	origen := strings.ToUpper(in.Origen)
	if origen == "" {
		origen = entity.PesajeOrigenManual
	}

	p := &entity.Pesaje{
		EmpresaID:   empresaID,
		RecepcionID: recepcionID,
		Tipo:        in.Tipo,
		PesoKg:      in.PesoKg,
		Origen:      origen,
		UsuarioID:   usuarioID,
		CreatedAt:   time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		r, err := tx.Recepciones.GetForUpdate(empresaID, recepcionID)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}
		if r.Estado != entity.RecepcionEstadoEnProceso {
			return domain.ErrConflict
		}
		if err := tx.Pesajes.Create(p); err != nil {
			return err
		}
		now := time.Now()
		if in.Tipo == entity.PesajeTipoBruto {
			r.PesoBrutoKg = in.PesoKg
		} else {
			r.PesoTaraKg = in.PesoKg
			r.FechaSalida = &now
		}
		if !r.TieneTicket() && r.PesoBrutoKg > 0 && r.PesoTaraKg > 0 {
			if err := emitirTicket(tx, r, now); err != nil {
				return err
			}
		}
		return tx.Recepciones.Update(r)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// EmitirTicket genera código y token de ticket cuando existen BRUTO y TARA.
// Idempotente: si la recepción ya tiene ticket devuelve el existente sin
// emitir de nuevo. Es el respaldo del disparo automático del último pesaje,
// para recepciones que quedaron pesadas antes de un corte.
func (uc *UseCase) EmitirTicket(ctx context.Context, empresaID, recepcionID int64) (*entity.Recepcion, error) {
	var out *entity.Recepcion
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		r, err := tx.Recepciones.GetForUpdate(empresaID, recepcionID)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}
		if r.TieneTicket() {
			out = r
			return nil
		}
		if r.PesoBrutoKg <= 0 || r.PesoTaraKg <= 0 {
			return domain.ErrInvalidInput
		}
		if err := emitirTicket(tx, r, time.Now()); err != nil {
			return err
		}
		if err := tx.Recepciones.Update(r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// emitirTicket genera código y token sobre la fila bloqueada. Si la recepción
// no tiene análisis de laboratorio, el neto físico pasa a ser el neto a pagar:
// sin castigos, se paga lo que pesó la romana. Un análisis posterior lo
// recalcula.
func emitirTicket(tx *repository.Tx, r *entity.Recepcion, now time.Time) error {
	r.TicketCodigo = wms.CodigoTicket(now, r.ID)
	r.TicketToken = generarToken(r.EmpresaID, r.ID)
	lab, err := tx.Laboratorios.GetByRecepcion(r.ID)
	if err != nil {
		return err
	}
	if lab == nil {
		r.PesoNetoPagarKg = r.NetoFisicoKg()
	}
	return nil
}

// Finalizar cierra la recepción: exige ticket emitido, marca finalizado y
// registra la salida del camión.
func (uc *UseCase) Finalizar(ctx context.Context, empresaID, recepcionID int64) (*entity.Recepcion, error) {
	var out *entity.Recepcion
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		r, err := tx.Recepciones.GetForUpdate(empresaID, recepcionID)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}
		if r.Estado == entity.RecepcionEstadoFinalizado {
			out = r
			return nil
		}
		if !r.TieneTicket() {
			return domain.ErrSinTicket
		}
		r.Estado = entity.RecepcionEstadoFinalizado
		// La TARA ya estampó la salida; sólo se completa si faltara.
		if r.FechaSalida == nil {
			now := time.Now()
			r.FechaSalida = &now
		}
		if err := tx.Recepciones.Update(r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Buscar resuelve una recepción por ID numérico o por código de ticket
// escaneado (se normaliza antes de consultar).
func (uc *UseCase) Buscar(empresaID int64, input string) (*entity.Recepcion, error) {
	limpio := codigos.Normalizar(input)
	if limpio == "" {
		return nil, domain.ErrInvalidInput
	}
	if wms.EsIDNumerico(limpio) {
		id, err := strconv.ParseInt(limpio, 10, 64)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		return uc.GetByID(empresaID, id)
	}
	r, err := uc.recepciones.GetByCodigoTicket(empresaID, limpio)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// VerificarTicket resuelve una recepción por código de ticket y valida el
// token opaco impreso en el documento. Un token que no coincide se responde
// como inexistente para no confirmar que el código es válido.
func (uc *UseCase) VerificarTicket(empresaID int64, codigo, token string) (*entity.Recepcion, error) {
	limpio := codigos.Normalizar(codigo)
	token = strings.TrimSpace(token)
	if limpio == "" || token == "" {
		return nil, domain.ErrInvalidInput
	}
	r, err := uc.recepciones.GetByCodigoTicket(empresaID, limpio)
	if err != nil {
		return nil, err
	}
	if r == nil || r.TicketToken != token {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// GetByID devuelve una recepción de la empresa.
func (uc *UseCase) GetByID(empresaID, id int64) (*entity.Recepcion, error) {
	r, err := uc.recepciones.GetByID(empresaID, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// Listar devuelve recepciones filtradas.
func (uc *UseCase) Listar(empresaID int64, f repository.FiltroRecepciones) ([]*entity.Recepcion, error) {
	return uc.recepciones.List(empresaID, f)
}

// Pesajes devuelve el historial de pesajes de una recepción.
func (uc *UseCase) Pesajes(empresaID, recepcionID int64) ([]*entity.Pesaje, error) {
	if _, err := uc.GetByID(empresaID, recepcionID); err != nil {
		return nil, err
	}
	return uc.pesajes.ListByRecepcion(recepcionID)
}

// generarToken arma el token opaco del ticket: T-{empresa}-{recepcion}-{aleatorio}.
func generarToken(empresaID, recepcionID int64) string {
	random := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("T-%d-%d-%s", empresaID, recepcionID, random)
}
