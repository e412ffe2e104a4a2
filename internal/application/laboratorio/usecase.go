package laboratorio

import (
	"context"
	"time"

	"github.com/molisur/molino-api/internal/application/dto"
	"github.com/molisur/molino-api/internal/domain"
	"github.com/molisur/molino-api/internal/domain/entity"
	domlab "github.com/molisur/molino-api/internal/domain/laboratorio"
	"github.com/molisur/molino-api/internal/domain/repository"
)

// UseCase casos de uso de laboratorio: registrar análisis y aplicar los
// castigos por humedad e impurezas sobre la recepción.
type UseCase struct {
	txRunner     repository.TxRunner
	laboratorios repository.LaboratorioRepository
	recepciones  repository.RecepcionRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner repository.TxRunner,
	laboratorios repository.LaboratorioRepository,
	recepciones repository.RecepcionRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, laboratorios: laboratorios, recepciones: recepciones}
}

// RegistrarAnalisis registra (o sobreescribe) el análisis de una recepción y
// escribe de vuelta los castigos y el neto a pagar. Mientras la recepción siga
// en_proceso el re-análisis recalcula todo; una recepción finalizada ya no se
// toca.
func (uc *UseCase) RegistrarAnalisis(ctx context.Context, empresaID, recepcionID int64, usuarioID *int64, in dto.RegistrarAnalisisRequest) (*entity.Laboratorio, *entity.Recepcion, error) {
	if in.HumedadPorcentaje.IsNegative() || in.ImpurezasPorcentaje.IsNegative() {
		return nil, nil, domain.ErrInvalidInput
	}

	var (
		analisis  *entity.Laboratorio
		recepcion *entity.Recepcion
	)
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		r, err := tx.Recepciones.GetForUpdate(empresaID, recepcionID)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}
		if r.Estado == entity.RecepcionEstadoFinalizado {
			return domain.ErrConflict
		}

		a := &entity.Laboratorio{
			EmpresaID:           empresaID,
			RecepcionID:         recepcionID,
			HumedadPorcentaje:   in.HumedadPorcentaje,
			ImpurezasPorcentaje: in.ImpurezasPorcentaje,
			PesoHectolitrico:    in.PesoHectolitrico,
			ProteinaPorcentaje:  in.ProteinaPorcentaje,
			GlutenWet:           in.GlutenWet,
			IndiceCaida:         in.IndiceCaida,
			GranosChuzos:        in.GranosChuzos,
			PuntaNegra:          in.PuntaNegra,
			AprobadoCalidad:     in.AprobadoCalidad,
			UsuarioAnalistaID:   usuarioID,
			FechaAnalisis:       time.Now(),
			Observaciones:       in.Observaciones,
		}
		if err := tx.Laboratorios.Upsert(a); err != nil {
			return err
		}

		d := domlab.CalcularDescuentos(r.NetoFisicoKg(), in.HumedadPorcentaje, in.ImpurezasPorcentaje)
		r.DescuentoHumedadKg = d.DescuentoHumedadKg
		r.DescuentoImpurezasKg = d.DescuentoImpurezasKg
		r.PesoNetoPagarKg = d.PesoNetoPagarKg
		if err := tx.Recepciones.Update(r); err != nil {
			return err
		}

		analisis = a
		recepcion = r
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return analisis, recepcion, nil
}

// GetByRecepcion devuelve el análisis de una recepción.
func (uc *UseCase) GetByRecepcion(empresaID, recepcionID int64) (*entity.Laboratorio, error) {
	r, err := uc.recepciones.GetByID(empresaID, recepcionID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	a, err := uc.laboratorios.GetByRecepcion(recepcionID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// Listar devuelve los análisis de la empresa, más reciente primero.
func (uc *UseCase) Listar(empresaID int64, limit, offset int) ([]*entity.Laboratorio, error) {
	return uc.laboratorios.ListByEmpresa(empresaID, limit, offset)
}
