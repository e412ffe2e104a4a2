package recepcion_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molisur/molino-api/internal/application/dto"
	"github.com/molisur/molino-api/internal/application/recepcion"
	"github.com/molisur/molino-api/internal/domain"
	"github.com/molisur/molino-api/internal/domain/entity"
	"github.com/molisur/molino-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes adicionales para la recepción directa maquila
// ──────────────────────────────────────────────────────────────────────────────

type clientesFake struct {
	filas map[int64]*entity.Cliente
}

func (f *clientesFake) Create(c *entity.Cliente) error { f.filas[c.ID] = c; return nil }

func (f *clientesFake) GetByID(empresaID, id int64) (*entity.Cliente, error) {
	c, ok := f.filas[id]
	if !ok || c.EmpresaID != empresaID {
		return nil, nil
	}
	return c, nil
}

func (f *clientesFake) Update(c *entity.Cliente) error { f.filas[c.ID] = c; return nil }

func (f *clientesFake) List(int64, int, int) ([]*entity.Cliente, error) { return nil, nil }

type tiposTrabajoFake struct {
	filas map[int64]*entity.MaquilaTipoTrabajo
}

func (f *tiposTrabajoFake) Create(t *entity.MaquilaTipoTrabajo) error { f.filas[t.ID] = t; return nil }

func (f *tiposTrabajoFake) GetByID(empresaID, id int64) (*entity.MaquilaTipoTrabajo, error) {
	t, ok := f.filas[id]
	if !ok || t.EmpresaID != empresaID {
		return nil, nil
	}
	return t, nil
}

func (f *tiposTrabajoFake) Update(t *entity.MaquilaTipoTrabajo) error { f.filas[t.ID] = t; return nil }

func (f *tiposTrabajoFake) List(int64, bool) ([]*entity.MaquilaTipoTrabajo, error) {
	return nil, nil
}

type ledgerFake struct {
	movimientos []*entity.MaquilaMovimiento
}

func (f *ledgerFake) CreateMovimiento(m *entity.MaquilaMovimiento) error {
	m.ID = int64(len(f.movimientos) + 1)
	f.movimientos = append(f.movimientos, m)
	return nil
}

func (f *ledgerFake) ListMovimientos(int64, int64, *time.Time, *time.Time, int, int) ([]*entity.MaquilaMovimiento, error) {
	return nil, nil
}

func (f *ledgerFake) Saldo(int64, int64) ([]*entity.SaldoHarina, error) { return nil, nil }

func (f *ledgerFake) SaldoProducto(int64, int64, *int64) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *ledgerFake) ExisteCreditoDeRecepcion(int64) (bool, error) { return false, nil }

func (f *ledgerFake) TrigoPendienteKg(int64, int64) (int64, error) { return 0, nil }

func setupDirecta() (*recepcion.UseCase, *clientesFake, *tiposTrabajoFake, *ledgerFake) {
	recepciones := newRecepcionRepoFake()
	pesajes := &pesajeRepoFake{}
	clientes := &clientesFake{filas: map[int64]*entity.Cliente{}}
	tipos := &tiposTrabajoFake{filas: map[int64]*entity.MaquilaTipoTrabajo{}}
	ledger := &ledgerFake{}
	runner := &txRunnerFake{tx: &repository.Tx{
		Recepciones:  recepciones,
		Pesajes:      pesajes,
		Clientes:     clientes,
		TiposTrabajo: tipos,
		Maquila:      ledger,
	}}
	return recepcion.NewUseCase(runner, recepciones, pesajes), clientes, tipos, ledger
}

// ──────────────────────────────────────────────────────────────────────────────
// CrearDirectaMaquila — todo el flujo en una transacción
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearDirectaMaquila_FlujoCompleto(t *testing.T) {
	uc, clientes, tipos, ledger := setupDirecta()
	clientes.filas[5] = &entity.Cliente{ID: 5, EmpresaID: empresaID, RazonSocial: "Panadería Test"}
	tipos.filas[2] = &entity.MaquilaTipoTrabajo{
		ID: 2, EmpresaID: empresaID, Nombre: "Extracción 60",
		Porcentaje: decimal.NewFromInt(60), Activo: true,
	}

	r, credito, err := uc.CrearDirectaMaquila(context.Background(), empresaID, nil, dto.RecepcionDirectaRequest{
		ClienteID:     5,
		PesoBrutoKg:   32000,
		PesoTaraKg:    22000,
		TipoTrabajoID: 2,
	})
	require.NoError(t, err)

	// la recepción sale finalizada, con ticket y ambos pesajes
	assert.Equal(t, entity.RecepcionEstadoFinalizado, r.Estado)
	assert.True(t, r.TieneTicket())
	assert.NotNil(t, r.FechaSalida)
	assert.Equal(t, int64(10000), r.PesoNetoFisicoKg)
	assert.Equal(t, int64(10000), r.PesoNetoPagarKg, "sin laboratorio el neto físico es el neto a pagar")

	// el crédito queda confirmado en el mismo paso: 60% de 10.000 kg
	require.NotNil(t, credito)
	assert.Equal(t, entity.MaquilaCreditoConfirmado, credito.TipoMovimiento)
	assert.True(t, decimal.NewFromInt(6000).Equal(credito.Kg), "obtuve %s", credito.Kg)
	require.NotNil(t, credito.RecepcionID)
	assert.Equal(t, r.ID, *credito.RecepcionID)
	assert.Len(t, ledger.movimientos, 1)
}

func TestCrearDirectaMaquila_RedondeaElCreditoAKgEnteros(t *testing.T) {
	uc, clientes, tipos, _ := setupDirecta()
	clientes.filas[5] = &entity.Cliente{ID: 5, EmpresaID: empresaID}
	tipos.filas[2] = &entity.MaquilaTipoTrabajo{
		ID: 2, EmpresaID: empresaID, Nombre: "Extracción 60,5",
		Porcentaje: decimal.NewFromFloat(60.5), Activo: true,
	}

	// neto 7.760 × 60,5% = 4.694,8 → 4.695
	_, credito, err := uc.CrearDirectaMaquila(context.Background(), empresaID, nil, dto.RecepcionDirectaRequest{
		ClienteID:     5,
		PesoBrutoKg:   32000,
		PesoTaraKg:    24240,
		TipoTrabajoID: 2,
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(4695).Equal(credito.Kg), "obtuve %s", credito.Kg)
}

func TestCrearDirectaMaquila_PesosInvalidos(t *testing.T) {
	uc, _, _, _ := setupDirecta()

	// tara mayor o igual al bruto
	_, _, err := uc.CrearDirectaMaquila(context.Background(), empresaID, nil, dto.RecepcionDirectaRequest{
		ClienteID: 5, PesoBrutoKg: 22000, PesoTaraKg: 22000, TipoTrabajoID: 2,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCrearDirectaMaquila_ClienteBloqueado(t *testing.T) {
	uc, clientes, _, _ := setupDirecta()
	clientes.filas[5] = &entity.Cliente{ID: 5, EmpresaID: empresaID, Bloqueado: true}

	_, _, err := uc.CrearDirectaMaquila(context.Background(), empresaID, nil, dto.RecepcionDirectaRequest{
		ClienteID: 5, PesoBrutoKg: 32000, PesoTaraKg: 22000, TipoTrabajoID: 2,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCrearDirectaMaquila_TipoTrabajoInactivo(t *testing.T) {
	uc, clientes, tipos, _ := setupDirecta()
	clientes.filas[5] = &entity.Cliente{ID: 5, EmpresaID: empresaID}
	tipos.filas[2] = &entity.MaquilaTipoTrabajo{
		ID: 2, EmpresaID: empresaID, Porcentaje: decimal.NewFromInt(60), Activo: false,
	}

	_, _, err := uc.CrearDirectaMaquila(context.Background(), empresaID, nil, dto.RecepcionDirectaRequest{
		ClienteID: 5, PesoBrutoKg: 32000, PesoTaraKg: 22000, TipoTrabajoID: 2,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
