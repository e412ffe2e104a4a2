package produccion_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molisur/molino-api/internal/application/dto"
	"github.com/molisur/molino-api/internal/application/produccion"
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

type formulasFake struct {
	seq   int64
	filas map[int64]*entity.Formula
}

func (f *formulasFake) Create(x *entity.Formula) error {
	f.seq++
	x.ID = f.seq
	f.filas[x.ID] = x
	return nil
}

func (f *formulasFake) GetByID(empresaID, id int64) (*entity.Formula, error) {
	x, ok := f.filas[id]
	if !ok || x.EmpresaID != empresaID {
		return nil, nil
	}
	return x, nil
}

func (f *formulasFake) Update(x *entity.Formula) error { f.filas[x.ID] = x; return nil }

func (f *formulasFake) List(empresaID int64, soloActivas bool) ([]*entity.Formula, error) {
	var out []*entity.Formula
	for _, x := range f.filas {
		if x.EmpresaID == empresaID && (!soloActivas || x.Activa) {
			out = append(out, x)
		}
	}
	return out, nil
}

type ordenesFake struct {
	seq     int64
	filas   map[int64]*entity.OrdenProduccion
	insumos []*entity.OrdenProduccionInsumo
}

func (f *ordenesFake) Create(o *entity.OrdenProduccion) error {
	f.seq++
	o.ID = f.seq
	f.filas[o.ID] = o
	return nil
}

func (f *ordenesFake) GetByID(empresaID, id int64) (*entity.OrdenProduccion, error) {
	o, ok := f.filas[id]
	if !ok || o.EmpresaID != empresaID {
		return nil, nil
	}
	return o, nil
}

func (f *ordenesFake) GetForUpdate(empresaID, id int64) (*entity.OrdenProduccion, error) {
	return f.GetByID(empresaID, id)
}

func (f *ordenesFake) Update(o *entity.OrdenProduccion) error { f.filas[o.ID] = o; return nil }

func (f *ordenesFake) List(empresaID int64, estado string, _, _ int) ([]*entity.OrdenProduccion, error) {
	var out []*entity.OrdenProduccion
	for _, o := range f.filas {
		if o.EmpresaID == empresaID && (estado == "" || o.Estado == estado) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *ordenesFake) CreateInsumo(i *entity.OrdenProduccionInsumo) error {
	i.ID = int64(len(f.insumos) + 1)
	f.insumos = append(f.insumos, i)
	return nil
}

func (f *ordenesFake) ListInsumos(empresaID, ordenID int64) ([]*entity.OrdenProduccionInsumo, error) {
	var out []*entity.OrdenProduccionInsumo
	for _, i := range f.insumos {
		if i.EmpresaID == empresaID && i.OrdenProduccionID == ordenID {
			out = append(out, i)
		}
	}
	return out, nil
}

type rendimientosFake struct {
	seq      int64
	filas    []*entity.Rendimiento
	ordenes  *ordenesFake
	formulas *formulasFake
}

func (f *rendimientosFake) Create(r *entity.Rendimiento) error {
	f.seq++
	r.ID = f.seq
	f.filas = append(f.filas, r)
	return nil
}

func (f *rendimientosFake) GetByOrden(empresaID, ordenID int64) (*entity.Rendimiento, error) {
	for _, r := range f.filas {
		if r.EmpresaID == empresaID && r.OrdenProduccionID == ordenID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *rendimientosFake) ListByEmpresa(empresaID int64, _, _ int) ([]*entity.Rendimiento, error) {
	var out []*entity.Rendimiento
	for _, r := range f.filas {
		if r.EmpresaID == empresaID {
			out = append(out, r)
		}
	}
	return out, nil
}

// Estadisticas replica la agregación: balance de masa total y órdenes con
// merma por encima de la tolerancia de su fórmula.
func (f *rendimientosFake) Estadisticas(empresaID int64, _, _ *time.Time) (*entity.EstadisticasProduccion, error) {
	est := &entity.EstadisticasProduccion{}
	for _, r := range f.filas {
		if r.EmpresaID != empresaID {
			continue
		}
		est.OrdenesCerradas++
		est.TrigoMolidoKg += r.TrigoMolidoKg
		est.HarinaTotalKg += r.HarinaTotalKg
		est.SubproductosKg += r.SubproductosKg()
		est.MermaKg += r.MermaKg()

		o := f.ordenes.filas[r.OrdenProduccionID]
		if o == nil || o.FormulaID == nil || r.TrigoMolidoKg <= 0 {
			continue
		}
		formula := f.formulas.filas[*o.FormulaID]
		if formula == nil {
			continue
		}
		mermaPct := decimal.NewFromInt(r.MermaKg() * 100).Div(decimal.NewFromInt(r.TrigoMolidoKg))
		if mermaPct.GreaterThan(formula.MermaTolerablePct) {
			est.OrdenesConMermaExcedida++
		}
	}
	return est, nil
}

// lotesFake ubica cada lote en un silo fijo (no hay trasiegos en estos tests).
type lotesFake struct {
	filas map[int64]*entity.Lote
	silos map[int64]*entity.Silo // loteID → silo
}

func (f *lotesFake) Create(l *entity.Lote) error { f.filas[l.ID] = l; return nil }

func (f *lotesFake) GetByID(empresaID, id int64) (*entity.Lote, error) {
	l, ok := f.filas[id]
	if !ok || l.EmpresaID != empresaID {
		return nil, nil
	}
	return l, nil
}

func (f *lotesFake) GetForUpdate(empresaID, id int64) (*entity.Lote, error) {
	return f.GetByID(empresaID, id)
}

func (f *lotesFake) Update(l *entity.Lote) error { f.filas[l.ID] = l; return nil }

func (f *lotesFake) List(int64, bool, int, int) ([]*entity.Lote, error) { return nil, nil }

func (f *lotesFake) SiloActual(_, loteID int64) (*entity.Silo, error) {
	return f.silos[loteID], nil
}

func (f *lotesFake) ListBySilo(int64, int64) ([]*entity.Lote, error) { return nil, nil }

type silosFake struct {
	filas map[int64]*entity.Silo
}

func (f *silosFake) Create(s *entity.Silo) error { f.filas[s.ID] = s; return nil }

func (f *silosFake) GetByID(empresaID, id int64) (*entity.Silo, error) {
	s, ok := f.filas[id]
	if !ok || s.EmpresaID != empresaID {
		return nil, nil
	}
	return s, nil
}

func (f *silosFake) GetForUpdate(empresaID, id int64) (*entity.Silo, error) {
	return f.GetByID(empresaID, id)
}

func (f *silosFake) Update(s *entity.Silo) error { f.filas[s.ID] = s; return nil }

func (f *silosFake) List(int64) ([]*entity.Silo, error) { return nil, nil }

type movimientosFake struct {
	filas []*entity.MovimientoInventario
}

func (f *movimientosFake) Create(m *entity.MovimientoInventario) error {
	m.ID = int64(len(f.filas) + 1)
	f.filas = append(f.filas, m)
	return nil
}

func (f *movimientosFake) ListByLote(int64, int64) ([]*entity.MovimientoInventario, error) {
	return nil, nil
}

func (f *movimientosFake) ListBySilo(int64, int64, *time.Time, *time.Time, int, int) ([]*entity.MovimientoInventario, error) {
	return nil, nil
}

func (f *movimientosFake) ListByEmpresa(int64, *time.Time, *time.Time, int, int) ([]*entity.MovimientoInventario, error) {
	return nil, nil
}

type productosTermFake struct {
	filas map[int64]*entity.ProductoTerminado
}

func (f *productosTermFake) Create(p *entity.ProductoTerminado) error { f.filas[p.ID] = p; return nil }

func (f *productosTermFake) GetByID(empresaID, id int64) (*entity.ProductoTerminado, error) {
	p, ok := f.filas[id]
	if !ok || p.EmpresaID != empresaID {
		return nil, nil
	}
	return p, nil
}

func (f *productosTermFake) GetForUpdate(empresaID, id int64) (*entity.ProductoTerminado, error) {
	return f.GetByID(empresaID, id)
}

func (f *productosTermFake) Update(p *entity.ProductoTerminado) error { f.filas[p.ID] = p; return nil }

func (f *productosTermFake) List(int64) ([]*entity.ProductoTerminado, error) { return nil, nil }

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base
// ──────────────────────────────────────────────────────────────────────────────

const empresaID int64 = 1

type escenario struct {
	uc            *produccion.UseCase
	formulas      *formulasFake
	ordenes       *ordenesFake
	rendimientos  *rendimientosFake
	lotes         *lotesFake
	silos         *silosFake
	movimientos   *movimientosFake
	productosTerm *productosTermFake
}

func setup() *escenario {
	e := &escenario{
		formulas:      &formulasFake{filas: map[int64]*entity.Formula{}},
		ordenes:       &ordenesFake{filas: map[int64]*entity.OrdenProduccion{}},
		rendimientos:  &rendimientosFake{},
		lotes:         &lotesFake{filas: map[int64]*entity.Lote{}, silos: map[int64]*entity.Silo{}},
		silos:         &silosFake{filas: map[int64]*entity.Silo{}},
		movimientos:   &movimientosFake{},
		productosTerm: &productosTermFake{filas: map[int64]*entity.ProductoTerminado{}},
	}
	runner := &txRunnerFake{tx: &repository.Tx{
		Formulas:      e.formulas,
		Ordenes:       e.ordenes,
		Rendimientos:  e.rendimientos,
		Lotes:         e.lotes,
		Silos:         e.silos,
		Movimientos:   e.movimientos,
		ProductosTerm: e.productosTerm,
	}}
	e.rendimientos.ordenes = e.ordenes
	e.rendimientos.formulas = e.formulas
	e.uc = produccion.NewUseCase(runner, e.formulas, e.ordenes, e.rendimientos)
	return e
}

func (e *escenario) conLoteEnSilo(loteID, siloID, kg int64) {
	silo := &entity.Silo{ID: siloID, EmpresaID: empresaID, CapacidadMaxKg: 100000, NivelActualKg: kg}
	e.silos.filas[siloID] = silo
	e.lotes.filas[loteID] = &entity.Lote{
		ID: loteID, EmpresaID: empresaID, CodigoLote: "R-20250101-" + string(rune('0'+loteID)),
		CantidadInicialKg: kg, CantidadActualKg: kg, Estado: entity.LoteEstadoActivo,
	}
	e.lotes.silos[loteID] = silo
}

func (e *escenario) crearOrden(t *testing.T, productoObjetivoID, formulaID *int64) *entity.OrdenProduccion {
	t.Helper()
	o, err := e.uc.CrearOrden(context.Background(), empresaID, nil, dto.CrearOrdenRequest{
		ProductoObjetivoID: productoObjetivoID,
		FormulaID:          formulaID,
		CantidadObjetivo:   10000,
	})
	require.NoError(t, err)
	return o
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes y consumo de insumos
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearOrden_GeneraNumeroOP(t *testing.T) {
	e := setup()

	o := e.crearOrden(t, nil, nil)

	assert.True(t, strings.HasPrefix(o.NumeroOP, "OP-"), "número: %s", o.NumeroOP)
	assert.Equal(t, entity.OrdenEstadoPlanificada, o.Estado)
}

func TestCrearOrden_CantidadObjetivoInvalida(t *testing.T) {
	e := setup()

	_, err := e.uc.CrearOrden(context.Background(), empresaID, nil, dto.CrearOrdenRequest{
		CantidadObjetivo: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConsumirInsumo_AbreLaOrdenYDescuentaLoteYSilo(t *testing.T) {
	e := setup()
	e.conLoteEnSilo(1, 4, 10000)
	o := e.crearOrden(t, nil, nil)

	insumo, err := e.uc.ConsumirInsumo(context.Background(), empresaID, o.ID, nil, dto.ConsumirInsumoRequest{
		LoteID: 1, CantidadKg: 6000,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(6000), insumo.CantidadUtilizadaKg)
	assert.Equal(t, int64(4000), e.lotes.filas[1].CantidadActualKg)
	assert.Equal(t, int64(4000), e.silos.filas[4].NivelActualKg)

	// la primera consumición abre la orden
	orden := e.ordenes.filas[o.ID]
	assert.Equal(t, entity.OrdenEstadoAbierta, orden.Estado)
	assert.NotNil(t, orden.FechaInicioReal)

	require.Len(t, e.movimientos.filas, 1)
	mov := e.movimientos.filas[0]
	assert.Equal(t, entity.MovimientoConsumoProduccion, mov.TipoMovimiento)
	assert.Equal(t, o.NumeroOP, mov.Observacion)
	require.NotNil(t, mov.SiloOrigenID)
	assert.Equal(t, int64(4), *mov.SiloOrigenID)
}

func TestConsumirInsumo_SaldoInsuficiente(t *testing.T) {
	e := setup()
	e.conLoteEnSilo(1, 4, 5000)
	o := e.crearOrden(t, nil, nil)

	_, err := e.uc.ConsumirInsumo(context.Background(), empresaID, o.ID, nil, dto.ConsumirInsumoRequest{
		LoteID: 1, CantidadKg: 5001,
	})
	assert.ErrorIs(t, err, domain.ErrSaldoInsuficiente)
	assert.Equal(t, int64(5000), e.lotes.filas[1].CantidadActualKg, "el lote no se toca")
}

func TestConsumirInsumo_ConsumoTotalDejaLoteConsumido(t *testing.T) {
	e := setup()
	e.conLoteEnSilo(1, 4, 5000)
	o := e.crearOrden(t, nil, nil)

	_, err := e.uc.ConsumirInsumo(context.Background(), empresaID, o.ID, nil, dto.ConsumirInsumoRequest{
		LoteID: 1, CantidadKg: 5000,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.LoteEstadoConsumido, e.lotes.filas[1].Estado)
	assert.Equal(t, int64(0), e.silos.filas[4].NivelActualKg)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rendimiento — cierre exactamente una vez
// ──────────────────────────────────────────────────────────────────────────────

func registrarRendimiento(e *escenario, ordenID int64, in dto.RegistrarRendimientoRequest) (*entity.Rendimiento, bool, error) {
	return e.uc.RegistrarRendimiento(context.Background(), empresaID, ordenID, nil, in)
}

func TestRegistrarRendimiento_CierraLaOrdenYSumaStock(t *testing.T) {
	e := setup()
	e.productosTerm.filas[7] = &entity.ProductoTerminado{ID: 7, EmpresaID: empresaID, Nombre: "Harina 000", StockActual: 1000}
	productoID := int64(7)
	o := e.crearOrden(t, &productoID, nil)

	r, excede, err := registrarRendimiento(e, o.ID, dto.RegistrarRendimientoRequest{
		TrigoMolidoKg: 10000,
		HarinaTotalKg: 7500,
		Subproductos: []dto.SubproductoDTO{
			{Nombre: "afrecho", CantidadKg: 1800},
			{Nombre: "semita", CantidadKg: 500},
		},
	})
	require.NoError(t, err)

	assert.False(t, excede)
	assert.Equal(t, int64(200), r.MermaKg())
	assert.Equal(t, entity.OrdenEstadoFinalizada, e.ordenes.filas[o.ID].Estado)
	assert.NotNil(t, e.ordenes.filas[o.ID].FechaFinReal)
	assert.Equal(t, int64(8500), e.productosTerm.filas[7].StockActual, "la harina entra al stock")
}

// El cierre descuenta los lotes molidos en la misma transacción: consumo,
// rendimiento, stock y estado se comprometen juntos.
func TestRegistrarRendimiento_ConsumeInsumosEnElCierre(t *testing.T) {
	e := setup()
	e.conLoteEnSilo(1, 4, 10000)
	e.productosTerm.filas[7] = &entity.ProductoTerminado{ID: 7, EmpresaID: empresaID, Nombre: "Harina 000"}
	productoID := int64(7)
	o := e.crearOrden(t, &productoID, nil)

	r, _, err := registrarRendimiento(e, o.ID, dto.RegistrarRendimientoRequest{
		TrigoMolidoKg: 10000,
		HarinaTotalKg: 7500,
		Insumos:       []dto.ConsumirInsumoRequest{{LoteID: 1, CantidadKg: 10000}},
		Subproductos:  []dto.SubproductoDTO{{Nombre: "afrecho", CantidadKg: 2300}},
	})
	require.NoError(t, err)
	require.NotNil(t, r)

	// el lote queda consumido y su silo descargado
	assert.Equal(t, int64(0), e.lotes.filas[1].CantidadActualKg)
	assert.Equal(t, entity.LoteEstadoConsumido, e.lotes.filas[1].Estado)
	assert.Equal(t, int64(0), e.silos.filas[4].NivelActualKg)

	// trazabilidad: movimiento de consumo y fila orden-lote
	require.Len(t, e.movimientos.filas, 1)
	assert.Equal(t, entity.MovimientoConsumoProduccion, e.movimientos.filas[0].TipoMovimiento)
	insumos, err := e.uc.Insumos(empresaID, o.ID)
	require.NoError(t, err)
	require.Len(t, insumos, 1)
	assert.Equal(t, int64(10000), insumos[0].CantidadUtilizadaKg)

	assert.Equal(t, entity.OrdenEstadoFinalizada, e.ordenes.filas[o.ID].Estado)
	assert.Equal(t, int64(7500), e.productosTerm.filas[7].StockActual)
}

func TestRegistrarRendimiento_InsumoSinSaldoAbortaElCierre(t *testing.T) {
	e := setup()
	e.conLoteEnSilo(1, 4, 5000)
	o := e.crearOrden(t, nil, nil)

	_, _, err := registrarRendimiento(e, o.ID, dto.RegistrarRendimientoRequest{
		TrigoMolidoKg: 6000,
		HarinaTotalKg: 4500,
		Insumos:       []dto.ConsumirInsumoRequest{{LoteID: 1, CantidadKg: 6000}},
	})
	assert.ErrorIs(t, err, domain.ErrSaldoInsuficiente)

	// el rechazo ocurre antes de registrar el rendimiento: la orden sigue abierta
	assert.Empty(t, e.rendimientos.filas)
	assert.NotEqual(t, entity.OrdenEstadoFinalizada, e.ordenes.filas[o.ID].Estado)
}

func TestRegistrarRendimiento_InsumoInvalido(t *testing.T) {
	e := setup()
	o := e.crearOrden(t, nil, nil)

	_, _, err := registrarRendimiento(e, o.ID, dto.RegistrarRendimientoRequest{
		TrigoMolidoKg: 1000,
		HarinaTotalKg: 700,
		Insumos:       []dto.ConsumirInsumoRequest{{LoteID: 1, CantidadKg: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegistrarRendimiento_SegundoCierreRechazado(t *testing.T) {
	e := setup()
	o := e.crearOrden(t, nil, nil)

	_, _, err := registrarRendimiento(e, o.ID, dto.RegistrarRendimientoRequest{
		TrigoMolidoKg: 10000, HarinaTotalKg: 7500,
	})
	require.NoError(t, err)

	_, _, err = registrarRendimiento(e, o.ID, dto.RegistrarRendimientoRequest{
		TrigoMolidoKg: 10000, HarinaTotalKg: 7500,
	})
	assert.ErrorIs(t, err, domain.ErrOrdenFinalizada)
	assert.Len(t, e.rendimientos.filas, 1, "el cierre ocurre exactamente una vez")
}

func TestRegistrarRendimiento_MarcaMermaExcedida(t *testing.T) {
	e := setup()
	f := &entity.Formula{
		EmpresaID:         empresaID,
		Nombre:            "Harina 000 estándar",
		MermaTolerablePct: decimal.NewFromInt(2),
		Activa:            true,
	}
	require.NoError(t, e.formulas.Create(f))
	o := e.crearOrden(t, nil, &f.ID)

	// merma 500/10000 = 5% > 2% tolerable
	_, excede, err := registrarRendimiento(e, o.ID, dto.RegistrarRendimientoRequest{
		TrigoMolidoKg: 10000,
		HarinaTotalKg: 7500,
		Subproductos:  []dto.SubproductoDTO{{Nombre: "afrecho", CantidadKg: 2000}},
	})
	require.NoError(t, err)
	assert.True(t, excede)
}

func TestRegistrarRendimiento_DentroDeMermaTolerable(t *testing.T) {
	e := setup()
	f := &entity.Formula{
		EmpresaID:         empresaID,
		Nombre:            "Harina 000 estándar",
		MermaTolerablePct: decimal.NewFromInt(3),
		Activa:            true,
	}
	require.NoError(t, e.formulas.Create(f))
	o := e.crearOrden(t, nil, &f.ID)

	// merma 200/10000 = 2% <= 3% tolerable
	_, excede, err := registrarRendimiento(e, o.ID, dto.RegistrarRendimientoRequest{
		TrigoMolidoKg: 10000,
		HarinaTotalKg: 7500,
		Subproductos:  []dto.SubproductoDTO{{Nombre: "afrecho", CantidadKg: 2300}},
	})
	require.NoError(t, err)
	assert.False(t, excede)
}

func TestEstadisticas_ResumeElPeriodo(t *testing.T) {
	e := setup()
	f := &entity.Formula{
		EmpresaID:         empresaID,
		Nombre:            "Harina 000 estándar",
		MermaTolerablePct: decimal.NewFromInt(2),
		Activa:            true,
	}
	require.NoError(t, e.formulas.Create(f))

	// primera orden dentro de tolerancia: merma 200/10000 = 2%
	o1 := e.crearOrden(t, nil, &f.ID)
	_, _, err := registrarRendimiento(e, o1.ID, dto.RegistrarRendimientoRequest{
		TrigoMolidoKg: 10000,
		HarinaTotalKg: 7500,
		Subproductos:  []dto.SubproductoDTO{{Nombre: "afrecho", CantidadKg: 2300}},
	})
	require.NoError(t, err)

	// segunda orden excedida: merma 500/10000 = 5%
	o2 := e.crearOrden(t, nil, &f.ID)
	_, _, err = registrarRendimiento(e, o2.ID, dto.RegistrarRendimientoRequest{
		TrigoMolidoKg: 10000,
		HarinaTotalKg: 7500,
		Subproductos:  []dto.SubproductoDTO{{Nombre: "afrecho", CantidadKg: 2000}},
	})
	require.NoError(t, err)

	est, err := e.uc.Estadisticas(empresaID, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(2), est.OrdenesCerradas)
	assert.Equal(t, int64(20000), est.TrigoMolidoKg)
	assert.Equal(t, int64(15000), est.HarinaTotalKg)
	assert.Equal(t, int64(700), est.MermaKg)
	assert.Equal(t, int64(1), est.OrdenesConMermaExcedida)
	assert.True(t, decimal.NewFromInt(75).Equal(est.PorcentajeExtraccion()), "obtuve %s", est.PorcentajeExtraccion())
}

func TestRegistrarRendimiento_EntradaInvalida(t *testing.T) {
	e := setup()
	o := e.crearOrden(t, nil, nil)

	_, _, err := registrarRendimiento(e, o.ID, dto.RegistrarRendimientoRequest{
		TrigoMolidoKg: 0, HarinaTotalKg: 100,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = registrarRendimiento(e, o.ID, dto.RegistrarRendimientoRequest{
		TrigoMolidoKg: 1000, HarinaTotalKg: 500,
		Subproductos: []dto.SubproductoDTO{{Nombre: "", CantidadKg: 10}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fórmulas
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearFormula_ValidaIngredientes(t *testing.T) {
	e := setup()

	_, err := e.uc.CrearFormula(context.Background(), empresaID, dto.FormulaRequest{
		Nombre: "Mal armada",
		Ingredientes: []dto.FormulaIngredienteDTO{
			{ProductoAgricolaID: 0, ProporcionKgPorUnidad: decimal.NewFromFloat(1.39)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCrearFormula_OK(t *testing.T) {
	e := setup()

	f, err := e.uc.CrearFormula(context.Background(), empresaID, dto.FormulaRequest{
		Nombre:            "Harina 000 estándar",
		MermaTolerablePct: decimal.NewFromInt(2),
		Ingredientes: []dto.FormulaIngredienteDTO{
			{ProductoAgricolaID: 3, ProporcionKgPorUnidad: decimal.NewFromFloat(1.39)},
		},
	})
	require.NoError(t, err)
	assert.True(t, f.Activa, "activa por defecto")
	require.Len(t, f.Ingredientes, 1)
	assert.Equal(t, empresaID, f.Ingredientes[0].EmpresaID)
}
