package laboratorio_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molisur/molino-api/internal/application/dto"
	"github.com/molisur/molino-api/internal/application/laboratorio"
	"github.com/molisur/molino-api/internal/domain"
	"github.com/molisur/molino-api/internal/domain/entity"
	"github.com/molisur/molino-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type txRunnerFake struct {
	tx *repository.Tx
}

func (f *txRunnerFake) Run(_ context.Context, fn func(tx *repository.Tx) error) error {
	return fn(f.tx)
}

type recepcionesFake struct {
	filas map[int64]*entity.Recepcion
}

func (f *recepcionesFake) Create(r *entity.Recepcion) error { f.filas[r.ID] = r; return nil }

func (f *recepcionesFake) GetByID(empresaID, id int64) (*entity.Recepcion, error) {
	r, ok := f.filas[id]
	if !ok || r.EmpresaID != empresaID {
		return nil, nil
	}
	return r, nil
}

func (f *recepcionesFake) GetForUpdate(empresaID, id int64) (*entity.Recepcion, error) {
	return f.GetByID(empresaID, id)
}

func (f *recepcionesFake) GetByCodigoTicket(int64, string) (*entity.Recepcion, error) {
	return nil, nil
}

func (f *recepcionesFake) Update(r *entity.Recepcion) error { f.filas[r.ID] = r; return nil }

func (f *recepcionesFake) List(int64, repository.FiltroRecepciones) ([]*entity.Recepcion, error) {
	return nil, nil
}

// laboratoriosFake imita la relación 1:1 con upsert por recepción.
type laboratoriosFake struct {
	seq   int64
	filas map[int64]*entity.Laboratorio // por recepción
}

func (f *laboratoriosFake) Upsert(a *entity.Laboratorio) error {
	if previo, ok := f.filas[a.RecepcionID]; ok {
		a.ID = previo.ID
	} else {
		f.seq++
		a.ID = f.seq
	}
	f.filas[a.RecepcionID] = a
	return nil
}

func (f *laboratoriosFake) GetByRecepcion(recepcionID int64) (*entity.Laboratorio, error) {
	return f.filas[recepcionID], nil
}

func (f *laboratoriosFake) ListByEmpresa(empresaID int64, _, _ int) ([]*entity.Laboratorio, error) {
	var out []*entity.Laboratorio
	for _, a := range f.filas {
		if a.EmpresaID == empresaID {
			out = append(out, a)
		}
	}
	return out, nil
}

const empresaID int64 = 1

func setup() (*laboratorio.UseCase, *recepcionesFake, *laboratoriosFake) {
	recepciones := &recepcionesFake{filas: map[int64]*entity.Recepcion{}}
	laboratorios := &laboratoriosFake{filas: map[int64]*entity.Laboratorio{}}
	runner := &txRunnerFake{tx: &repository.Tx{
		Recepciones:  recepciones,
		Laboratorios: laboratorios,
	}}
	return laboratorio.NewUseCase(runner, laboratorios, recepciones), recepciones, laboratorios
}

func conRecepcionEnProceso(f *recepcionesFake, id, brutoKg, taraKg int64) {
	f.filas[id] = &entity.Recepcion{
		ID:               id,
		EmpresaID:        empresaID,
		TipoRecepcion:    entity.RecepcionTipoCompra,
		Estado:           entity.RecepcionEstadoEnProceso,
		PesoBrutoKg:      brutoKg,
		PesoTaraKg:       taraKg,
		PesoNetoFisicoKg: brutoKg - taraKg,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RegistrarAnalisis
// ──────────────────────────────────────────────────────────────────────────────

func TestRegistrarAnalisis_EscribeCastigosEnLaRecepcion(t *testing.T) {
	uc, recepciones, _ := setup()
	conRecepcionEnProceso(recepciones, 10, 32500, 22500) // neto físico 10.000

	analisis, r, err := uc.RegistrarAnalisis(context.Background(), empresaID, 10, nil, dto.RegistrarAnalisisRequest{
		HumedadPorcentaje:   decimal.NewFromFloat(16.5),
		ImpurezasPorcentaje: decimal.NewFromFloat(1.8),
		AprobadoCalidad:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), analisis.RecepcionID)
	assert.Equal(t, int64(250), r.DescuentoHumedadKg, "exceso 2.5%% sobre 10.000 kg")
	assert.Equal(t, int64(180), r.DescuentoImpurezasKg)
	assert.Equal(t, int64(9570), r.PesoNetoPagarKg)

	// los castigos quedan persistidos en la recepción
	guardada := recepciones.filas[10]
	assert.Equal(t, int64(9570), guardada.PesoNetoPagarKg)
}

// El re-análisis sobreescribe el anterior y recalcula los castigos.
func TestRegistrarAnalisis_ReanalisisRecalcula(t *testing.T) {
	uc, recepciones, laboratorios := setup()
	conRecepcionEnProceso(recepciones, 10, 32500, 22500)

	primero, _, err := uc.RegistrarAnalisis(context.Background(), empresaID, 10, nil, dto.RegistrarAnalisisRequest{
		HumedadPorcentaje:   decimal.NewFromFloat(16.5),
		ImpurezasPorcentaje: decimal.NewFromFloat(1.8),
	})
	require.NoError(t, err)

	segundo, r, err := uc.RegistrarAnalisis(context.Background(), empresaID, 10, nil, dto.RegistrarAnalisisRequest{
		HumedadPorcentaje:   decimal.NewFromInt(13),
		ImpurezasPorcentaje: decimal.Zero,
	})
	require.NoError(t, err)

	assert.Equal(t, primero.ID, segundo.ID, "relación 1:1 por recepción: upsert")
	assert.Equal(t, int64(0), r.DescuentoHumedadKg)
	assert.Equal(t, int64(0), r.DescuentoImpurezasKg)
	assert.Equal(t, int64(10000), r.PesoNetoPagarKg)
	assert.Len(t, laboratorios.filas, 1)
}

func TestRegistrarAnalisis_RecepcionFinalizadaNoSeToca(t *testing.T) {
	uc, recepciones, _ := setup()
	conRecepcionEnProceso(recepciones, 10, 32500, 22500)
	recepciones.filas[10].Estado = entity.RecepcionEstadoFinalizado

	_, _, err := uc.RegistrarAnalisis(context.Background(), empresaID, 10, nil, dto.RegistrarAnalisisRequest{
		HumedadPorcentaje:   decimal.NewFromInt(15),
		ImpurezasPorcentaje: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegistrarAnalisis_PorcentajesNegativosRechazados(t *testing.T) {
	uc, recepciones, _ := setup()
	conRecepcionEnProceso(recepciones, 10, 32500, 22500)

	_, _, err := uc.RegistrarAnalisis(context.Background(), empresaID, 10, nil, dto.RegistrarAnalisisRequest{
		HumedadPorcentaje:   decimal.NewFromInt(-1),
		ImpurezasPorcentaje: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistrarAnalisis_RecepcionInexistente(t *testing.T) {
	uc, _, _ := setup()

	_, _, err := uc.RegistrarAnalisis(context.Background(), empresaID, 99, nil, dto.RegistrarAnalisisRequest{
		HumedadPorcentaje:   decimal.NewFromInt(14),
		ImpurezasPorcentaje: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByRecepcion_SinAnalisisRetornaNotFound(t *testing.T) {
	uc, recepciones, _ := setup()
	conRecepcionEnProceso(recepciones, 10, 32500, 22500)

	_, err := uc.GetByRecepcion(empresaID, 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
