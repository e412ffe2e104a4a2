package wms_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molisur/molino-api/internal/application/dto"
	"github.com/molisur/molino-api/internal/application/wms"
	"github.com/molisur/molino-api/internal/domain"
	"github.com/molisur/molino-api/internal/domain/entity"
	"github.com/molisur/molino-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El silo actual de un lote se deriva del log de movimientos
// igual que en la DB: COALESCE(destino, origen) del último movimiento.
// ──────────────────────────────────────────────────────────────────────────────

type txRunnerFake struct {
	tx *repository.Tx
}

func (f *txRunnerFake) Run(_ context.Context, fn func(tx *repository.Tx) error) error {
	return fn(f.tx)
}

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

func (f *silosFake) List(empresaID int64) ([]*entity.Silo, error) {
	var out []*entity.Silo
	for _, s := range f.filas {
		if s.EmpresaID == empresaID {
			out = append(out, s)
		}
	}
	return out, nil
}

type movimientosFake struct {
	seq   int64
	filas []*entity.MovimientoInventario
}

func (f *movimientosFake) Create(m *entity.MovimientoInventario) error {
	f.seq++
	m.ID = f.seq
	f.filas = append(f.filas, m)
	return nil
}

func (f *movimientosFake) ListByLote(empresaID, loteID int64) ([]*entity.MovimientoInventario, error) {
	var out []*entity.MovimientoInventario
	for _, m := range f.filas {
		if m.EmpresaID == empresaID && m.LoteID == loteID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *movimientosFake) ListBySilo(empresaID, siloID int64, _, _ *time.Time, _, _ int) ([]*entity.MovimientoInventario, error) {
	var out []*entity.MovimientoInventario
	for _, m := range f.filas {
		if m.EmpresaID != empresaID {
			continue
		}
		if (m.SiloOrigenID != nil && *m.SiloOrigenID == siloID) ||
			(m.SiloDestinoID != nil && *m.SiloDestinoID == siloID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *movimientosFake) ListByEmpresa(empresaID int64, _, _ *time.Time, _, _ int) ([]*entity.MovimientoInventario, error) {
	var out []*entity.MovimientoInventario
	for _, m := range f.filas {
		if m.EmpresaID == empresaID {
			out = append(out, m)
		}
	}
	return out, nil
}

type lotesFake struct {
	seq         int64
	filas       map[int64]*entity.Lote
	silos       *silosFake
	movimientos *movimientosFake
}

func (f *lotesFake) Create(l *entity.Lote) error {
	for _, existente := range f.filas {
		if existente.CodigoLote == l.CodigoLote {
			return domain.ErrDuplicate
		}
	}
	f.seq++
	l.ID = f.seq
	f.filas[l.ID] = l
	return nil
}

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

func (f *lotesFake) List(empresaID int64, soloActivos bool, _, _ int) ([]*entity.Lote, error) {
	var out []*entity.Lote
	for _, l := range f.filas {
		if l.EmpresaID == empresaID && (!soloActivos || l.Activo()) {
			out = append(out, l)
		}
	}
	return out, nil
}

// SiloActual replica la derivación de la DB sobre el log en memoria.
func (f *lotesFake) SiloActual(empresaID, loteID int64) (*entity.Silo, error) {
	var ultimo *entity.MovimientoInventario
	for _, m := range f.movimientos.filas {
		if m.EmpresaID == empresaID && m.LoteID == loteID {
			ultimo = m
		}
	}
	if ultimo == nil {
		return nil, nil
	}
	siloID := ultimo.SiloOrigenID
	if ultimo.SiloDestinoID != nil {
		siloID = ultimo.SiloDestinoID
	}
	if siloID == nil {
		return nil, nil
	}
	return f.silos.GetByID(empresaID, *siloID)
}

func (f *lotesFake) ListBySilo(empresaID, siloID int64) ([]*entity.Lote, error) {
	var out []*entity.Lote
	for _, l := range f.filas {
		if l.EmpresaID != empresaID || !l.Activo() {
			continue
		}
		s, err := f.SiloActual(empresaID, l.ID)
		if err != nil {
			return nil, err
		}
		if s != nil && s.ID == siloID {
			out = append(out, l)
		}
	}
	return out, nil
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

func (f *recepcionesFake) GetByCodigoTicket(empresaID int64, codigo string) (*entity.Recepcion, error) {
	for _, r := range f.filas {
		if r.EmpresaID == empresaID && r.TicketCodigo == codigo {
			return r, nil
		}
	}
	return nil, nil
}

func (f *recepcionesFake) Update(r *entity.Recepcion) error { f.filas[r.ID] = r; return nil }

func (f *recepcionesFake) List(int64, repository.FiltroRecepciones) ([]*entity.Recepcion, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario base
// ──────────────────────────────────────────────────────────────────────────────

const empresaID int64 = 1

type escenario struct {
	uc          *wms.UseCase
	silos       *silosFake
	lotes       *lotesFake
	movimientos *movimientosFake
	recepciones *recepcionesFake
}

func setup() *escenario {
	silos := &silosFake{filas: map[int64]*entity.Silo{}}
	movimientos := &movimientosFake{}
	lotes := &lotesFake{filas: map[int64]*entity.Lote{}, silos: silos, movimientos: movimientos}
	recepciones := &recepcionesFake{filas: map[int64]*entity.Recepcion{}}
	runner := &txRunnerFake{tx: &repository.Tx{
		Recepciones: recepciones,
		Lotes:       lotes,
		Silos:       silos,
		Movimientos: movimientos,
	}}
	return &escenario{
		uc:          wms.NewUseCase(runner, silos, lotes, movimientos),
		silos:       silos,
		lotes:       lotes,
		movimientos: movimientos,
		recepciones: recepciones,
	}
}

func (e *escenario) conSilo(id, capacidadKg, nivelKg int64) {
	e.silos.filas[id] = &entity.Silo{
		ID: id, EmpresaID: empresaID, Codigo: "S-" + itoa(id),
		CapacidadMaxKg: capacidadKg, NivelActualKg: nivelKg, Estado: "activo",
	}
}

func (e *escenario) conRecepcionConTicket(id, netoPagarKg int64) {
	e.recepciones.filas[id] = &entity.Recepcion{
		ID: id, EmpresaID: empresaID,
		TipoRecepcion: entity.RecepcionTipoCompra,
		Estado:        entity.RecepcionEstadoFinalizado,
		TicketCodigo:  "R-20250101-" + itoa(id),
		PesoNetoPagarKg: netoPagarKg,
	}
}

func itoa(n int64) string {
	if n == 0 {
		return "0"
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	return string(b)
}

func (e *escenario) nivelTotal() int64 {
	var total int64
	for _, s := range e.silos.filas {
		total += s.NivelActualKg
	}
	return total
}

// ──────────────────────────────────────────────────────────────────────────────
// CrearLoteDesdeRecepcion
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearLote_SinTicketRechaza(t *testing.T) {
	e := setup()
	e.conSilo(1, 50000, 0)
	e.recepciones.filas[10] = &entity.Recepcion{
		ID: 10, EmpresaID: empresaID, Estado: entity.RecepcionEstadoEnProceso,
	}

	_, err := e.uc.CrearLoteDesdeRecepcion(context.Background(), empresaID, nil, dto.CrearLoteRequest{
		Recepcion: "10", SiloID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrSinTicket)
}

func TestCrearLote_IngresaAlSiloConElPesoBase(t *testing.T) {
	e := setup()
	e.conSilo(1, 50000, 5000)
	e.conRecepcionConTicket(10, 9570)

	lote, err := e.uc.CrearLoteDesdeRecepcion(context.Background(), empresaID, nil, dto.CrearLoteRequest{
		Recepcion: "10", SiloID: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "R-20250101-10", lote.CodigoLote, "el código del lote es el del ticket")
	assert.Equal(t, int64(9570), lote.CantidadInicialKg)
	assert.Equal(t, int64(9570), lote.CantidadActualKg)
	assert.Equal(t, entity.LoteEstadoActivo, lote.Estado)

	assert.Equal(t, int64(14570), e.silos.filas[1].NivelActualKg)

	require.Len(t, e.movimientos.filas, 1)
	mov := e.movimientos.filas[0]
	assert.Equal(t, entity.MovimientoIngresoSilo, mov.TipoMovimiento)
	assert.Nil(t, mov.SiloOrigenID)
	require.NotNil(t, mov.SiloDestinoID)
	assert.Equal(t, int64(1), *mov.SiloDestinoID)

	// el silo actual del lote se deriva del movimiento recién escrito
	silo, err := e.lotes.SiloActual(empresaID, lote.ID)
	require.NoError(t, err)
	require.NotNil(t, silo)
	assert.Equal(t, int64(1), silo.ID)
}

// Una recepción sólo origina un lote: el código de ticket es único.
func TestCrearLote_RecepcionYaIngresadaRechaza(t *testing.T) {
	e := setup()
	e.conSilo(1, 50000, 0)
	e.conRecepcionConTicket(10, 9570)

	_, err := e.uc.CrearLoteDesdeRecepcion(context.Background(), empresaID, nil, dto.CrearLoteRequest{
		Recepcion: "10", SiloID: 1,
	})
	require.NoError(t, err)

	_, err = e.uc.CrearLoteDesdeRecepcion(context.Background(), empresaID, nil, dto.CrearLoteRequest{
		Recepcion: "10", SiloID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// La recepción también se resuelve por código de ticket, como lo entrega el
// escáner: con espacios y en minúscula.
func TestCrearLote_ResuelvePorCodigoDeTicket(t *testing.T) {
	e := setup()
	e.conSilo(1, 50000, 0)
	e.conRecepcionConTicket(10, 9570)

	lote, err := e.uc.CrearLoteDesdeRecepcion(context.Background(), empresaID, nil, dto.CrearLoteRequest{
		Recepcion: "  r-20250101-10 ", SiloID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "R-20250101-10", lote.CodigoLote)
	assert.Equal(t, int64(9570), lote.CantidadActualKg)
}

func TestCrearLote_CantidadParcial(t *testing.T) {
	e := setup()
	e.conSilo(1, 50000, 1000)
	e.conRecepcionConTicket(10, 9570)

	lote, err := e.uc.CrearLoteDesdeRecepcion(context.Background(), empresaID, nil, dto.CrearLoteRequest{
		Recepcion: "10", SiloID: 1, CantidadKg: 4000,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(4000), lote.CantidadInicialKg)
	assert.Equal(t, int64(4000), lote.CantidadActualKg)
	assert.Equal(t, int64(5000), e.silos.filas[1].NivelActualKg)
}

func TestCrearLote_CantidadMayorAlPesoBaseRechaza(t *testing.T) {
	e := setup()
	e.conSilo(1, 50000, 0)
	e.conRecepcionConTicket(10, 9570)

	_, err := e.uc.CrearLoteDesdeRecepcion(context.Background(), empresaID, nil, dto.CrearLoteRequest{
		Recepcion: "10", SiloID: 1, CantidadKg: 9571,
	})
	assert.ErrorIs(t, err, domain.ErrSaldoInsuficiente)
}

// El producto del silo se marca con el primer ingreso; los siguientes no lo pisan.
func TestCrearLote_NoPisaElProductoDelSilo(t *testing.T) {
	e := setup()
	e.conSilo(1, 50000, 0)
	trigoCandeal := int64(3)
	e.silos.filas[1].ProductoActualID = &trigoCandeal

	e.conRecepcionConTicket(10, 9570)
	trigoBlando := int64(9)
	e.recepciones.filas[10].ProductoAgricolaID = &trigoBlando

	_, err := e.uc.CrearLoteDesdeRecepcion(context.Background(), empresaID, nil, dto.CrearLoteRequest{
		Recepcion: "10", SiloID: 1,
	})
	require.NoError(t, err)

	require.NotNil(t, e.silos.filas[1].ProductoActualID)
	assert.Equal(t, trigoCandeal, *e.silos.filas[1].ProductoActualID)
}

func TestCrearLote_MarcaElProductoDelSiloVacio(t *testing.T) {
	e := setup()
	e.conSilo(1, 50000, 0)
	e.conRecepcionConTicket(10, 9570)
	trigoBlando := int64(9)
	e.recepciones.filas[10].ProductoAgricolaID = &trigoBlando

	_, err := e.uc.CrearLoteDesdeRecepcion(context.Background(), empresaID, nil, dto.CrearLoteRequest{
		Recepcion: "10", SiloID: 1,
	})
	require.NoError(t, err)

	require.NotNil(t, e.silos.filas[1].ProductoActualID)
	assert.Equal(t, trigoBlando, *e.silos.filas[1].ProductoActualID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Trasiego
// ──────────────────────────────────────────────────────────────────────────────

func (e *escenario) conLoteEnSilo(t *testing.T, recepcionID, siloID, kg int64) *entity.Lote {
	t.Helper()
	e.conRecepcionConTicket(recepcionID, kg)
	lote, err := e.uc.CrearLoteDesdeRecepcion(context.Background(), empresaID, nil, dto.CrearLoteRequest{
		Recepcion: itoa(recepcionID), SiloID: siloID,
	})
	require.NoError(t, err)
	return lote
}

func TestTrasiego_ConservaLaMasaTotal(t *testing.T) {
	e := setup()
	e.conSilo(1, 50000, 0)
	e.conSilo(2, 50000, 0)
	lote := e.conLoteEnSilo(t, 10, 1, 8000)
	antes := e.nivelTotal()

	mov, err := e.uc.Trasiego(context.Background(), empresaID, nil, dto.TrasiegoRequest{
		LoteID: lote.ID, SiloOrigenID: 1, SiloDestinoID: 2, CantidadKg: 3000,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.MovimientoTrasiego, mov.TipoMovimiento)
	assert.Equal(t, int64(5000), e.silos.filas[1].NivelActualKg)
	assert.Equal(t, int64(3000), e.silos.filas[2].NivelActualKg)
	assert.Equal(t, antes, e.nivelTotal(), "el trasiego no crea ni destruye kg")

	// los kg trasladados se descuentan del saldo del lote
	assert.Equal(t, int64(5000), e.lotes.filas[lote.ID].CantidadActualKg)
	assert.Equal(t, entity.LoteEstadoActivo, e.lotes.filas[lote.ID].Estado)

	// el lote ahora resuelve al silo destino
	silo, err := e.lotes.SiloActual(empresaID, lote.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), silo.ID)
}

func TestTrasiego_TotalDejaElLoteConsumido(t *testing.T) {
	e := setup()
	e.conSilo(1, 50000, 0)
	e.conSilo(2, 50000, 0)
	lote := e.conLoteEnSilo(t, 10, 1, 8000)

	_, err := e.uc.Trasiego(context.Background(), empresaID, nil, dto.TrasiegoRequest{
		LoteID: lote.ID, SiloOrigenID: 1, SiloDestinoID: 2, CantidadKg: 8000,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), e.lotes.filas[lote.ID].CantidadActualKg)
	assert.Equal(t, entity.LoteEstadoConsumido, e.lotes.filas[lote.ID].Estado)
}

func TestTrasiego_LoteEnOtroSiloRechaza(t *testing.T) {
	e := setup()
	e.conSilo(1, 50000, 0)
	e.conSilo(2, 50000, 0)
	e.conSilo(3, 50000, 0)
	lote := e.conLoteEnSilo(t, 10, 1, 8000)

	_, err := e.uc.Trasiego(context.Background(), empresaID, nil, dto.TrasiegoRequest{
		LoteID: lote.ID, SiloOrigenID: 2, SiloDestinoID: 3, CantidadKg: 1000,
	})
	assert.ErrorIs(t, err, domain.ErrConflict, "el origen declarado no coincide con el silo real")
}

func TestTrasiego_MasKgQueElLoteRechaza(t *testing.T) {
	e := setup()
	e.conSilo(1, 50000, 0)
	e.conSilo(2, 50000, 0)
	lote := e.conLoteEnSilo(t, 10, 1, 8000)

	_, err := e.uc.Trasiego(context.Background(), empresaID, nil, dto.TrasiegoRequest{
		LoteID: lote.ID, SiloOrigenID: 1, SiloDestinoID: 2, CantidadKg: 8001,
	})
	assert.ErrorIs(t, err, domain.ErrSaldoInsuficiente)
}

func TestTrasiego_MismoSiloRechaza(t *testing.T) {
	e := setup()

	_, err := e.uc.Trasiego(context.Background(), empresaID, nil, dto.TrasiegoRequest{
		LoteID: 1, SiloOrigenID: 1, SiloDestinoID: 1, CantidadKg: 100,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mezcla
// ──────────────────────────────────────────────────────────────────────────────

func TestMezcla_FusionaLotesYConservaMasa(t *testing.T) {
	e := setup()
	e.conSilo(1, 50000, 0)
	e.conSilo(2, 50000, 0)
	e.conSilo(3, 50000, 0)
	loteA := e.conLoteEnSilo(t, 10, 1, 6000)
	loteB := e.conLoteEnSilo(t, 11, 2, 4000)
	antes := e.nivelTotal()

	nuevo, err := e.uc.Mezcla(context.Background(), empresaID, nil, dto.MezclaRequest{
		LoteAID: loteA.ID, LoteBID: loteB.ID,
		CantidadAKg: 6000, CantidadBKg: 4000, SiloDestinoID: 3,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(nuevo.CodigoLote, "MIX-"), "código: %s", nuevo.CodigoLote)
	assert.Equal(t, int64(10000), nuevo.CantidadInicialKg)
	assert.Equal(t, int64(10000), nuevo.CantidadActualKg)

	// los lotes origen quedan consumidos
	assert.Equal(t, entity.LoteEstadoConsumido, e.lotes.filas[loteA.ID].Estado)
	assert.Equal(t, entity.LoteEstadoConsumido, e.lotes.filas[loteB.ID].Estado)
	assert.Equal(t, int64(0), e.lotes.filas[loteA.ID].CantidadActualKg)

	// niveles: origen vacíos, destino con el total; la masa total no cambia
	assert.Equal(t, int64(0), e.silos.filas[1].NivelActualKg)
	assert.Equal(t, int64(0), e.silos.filas[2].NivelActualKg)
	assert.Equal(t, int64(10000), e.silos.filas[3].NivelActualKg)
	assert.Equal(t, antes, e.nivelTotal())

	// log: 2 ingresos + 2 salidas de mezcla + 1 entrada
	kardexNuevo, err := e.movimientos.ListByLote(empresaID, nuevo.ID)
	require.NoError(t, err)
	require.Len(t, kardexNuevo, 1)
	assert.Equal(t, entity.MovimientoMezclaEntrada, kardexNuevo[0].TipoMovimiento)

	silo, err := e.lotes.SiloActual(empresaID, nuevo.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), silo.ID)
}

func TestMezcla_LoteConsumidoRechaza(t *testing.T) {
	e := setup()
	e.conSilo(1, 50000, 0)
	e.conSilo(2, 50000, 0)
	e.conSilo(3, 50000, 0)
	loteA := e.conLoteEnSilo(t, 10, 1, 6000)
	loteB := e.conLoteEnSilo(t, 11, 2, 4000)

	_, err := e.uc.Mezcla(context.Background(), empresaID, nil, dto.MezclaRequest{
		LoteAID: loteA.ID, LoteBID: loteB.ID,
		CantidadAKg: 6000, CantidadBKg: 4000, SiloDestinoID: 3,
	})
	require.NoError(t, err)

	// loteA ya está consumido: mezclarlo de nuevo es conflicto
	loteC := e.conLoteEnSilo(t, 12, 1, 2000)
	_, err = e.uc.Mezcla(context.Background(), empresaID, nil, dto.MezclaRequest{
		LoteAID: loteA.ID, LoteBID: loteC.ID,
		CantidadAKg: 1000, CantidadBKg: 1000, SiloDestinoID: 3,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestMezcla_ParcialDejaSaldoEnLosOrigenes(t *testing.T) {
	e := setup()
	e.conSilo(1, 50000, 0)
	e.conSilo(2, 50000, 0)
	e.conSilo(3, 50000, 0)
	loteA := e.conLoteEnSilo(t, 10, 1, 5000)
	loteB := e.conLoteEnSilo(t, 11, 2, 4000)

	nuevo, err := e.uc.Mezcla(context.Background(), empresaID, nil, dto.MezclaRequest{
		LoteAID: loteA.ID, LoteBID: loteB.ID,
		CantidadAKg: 3000, CantidadBKg: 2000, SiloDestinoID: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5000), nuevo.CantidadActualKg)

	// los lotes origen conservan el resto y siguen activos
	assert.Equal(t, int64(2000), e.lotes.filas[loteA.ID].CantidadActualKg)
	assert.Equal(t, int64(2000), e.lotes.filas[loteB.ID].CantidadActualKg)
	assert.Equal(t, entity.LoteEstadoActivo, e.lotes.filas[loteA.ID].Estado)
	assert.Equal(t, entity.LoteEstadoActivo, e.lotes.filas[loteB.ID].Estado)

	assert.Equal(t, int64(2000), e.silos.filas[1].NivelActualKg)
	assert.Equal(t, int64(2000), e.silos.filas[2].NivelActualKg)
	assert.Equal(t, int64(5000), e.silos.filas[3].NivelActualKg)
}

func TestMezcla_ConCodigoDado(t *testing.T) {
	e := setup()
	e.conSilo(1, 50000, 0)
	e.conSilo(2, 50000, 0)
	e.conSilo(3, 50000, 0)
	loteA := e.conLoteEnSilo(t, 10, 1, 5000)
	loteB := e.conLoteEnSilo(t, 11, 2, 4000)

	nuevo, err := e.uc.Mezcla(context.Background(), empresaID, nil, dto.MezclaRequest{
		LoteAID: loteA.ID, LoteBID: loteB.ID,
		CantidadAKg: 3000, CantidadBKg: 2000, SiloDestinoID: 3,
		CodigoLote: " mezcla invierno 01 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "MEZCLAINVIERNO01", nuevo.CodigoLote)
}

func TestMezcla_MasKgQueElLoteRechaza(t *testing.T) {
	e := setup()
	e.conSilo(1, 50000, 0)
	e.conSilo(2, 50000, 0)
	e.conSilo(3, 50000, 0)
	loteA := e.conLoteEnSilo(t, 10, 1, 5000)
	loteB := e.conLoteEnSilo(t, 11, 2, 4000)

	_, err := e.uc.Mezcla(context.Background(), empresaID, nil, dto.MezclaRequest{
		LoteAID: loteA.ID, LoteBID: loteB.ID,
		CantidadAKg: 3000, CantidadBKg: 4001, SiloDestinoID: 3,
	})
	assert.ErrorIs(t, err, domain.ErrSaldoInsuficiente)
	assert.Equal(t, int64(5000), e.lotes.filas[loteA.ID].CantidadActualKg, "el rechazo no toca los lotes")
}

// El destino debe ser un tercer silo, distinto de los silos de origen.
func TestMezcla_DestinoEnSiloOrigenRechaza(t *testing.T) {
	e := setup()
	e.conSilo(1, 50000, 0)
	e.conSilo(2, 50000, 0)
	loteA := e.conLoteEnSilo(t, 10, 1, 5000)
	loteB := e.conLoteEnSilo(t, 11, 2, 4000)

	_, err := e.uc.Mezcla(context.Background(), empresaID, nil, dto.MezclaRequest{
		LoteAID: loteA.ID, LoteBID: loteB.ID,
		CantidadAKg: 3000, CantidadBKg: 2000, SiloDestinoID: 2,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMezcla_MismoLoteRechaza(t *testing.T) {
	e := setup()

	_, err := e.uc.Mezcla(context.Background(), empresaID, nil, dto.MezclaRequest{
		LoteAID: 5, LoteBID: 5, CantidadAKg: 100, CantidadBKg: 100, SiloDestinoID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.uc.Mezcla(context.Background(), empresaID, nil, dto.MezclaRequest{
		LoteAID: 5, LoteBID: 6, CantidadAKg: 0, CantidadBKg: 100, SiloDestinoID: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapa de silos
// ──────────────────────────────────────────────────────────────────────────────

func TestMapaSilos_OcupacionYLotes(t *testing.T) {
	e := setup()
	e.conSilo(1, 10000, 0)
	lote := e.conLoteEnSilo(t, 10, 1, 9500)

	mapa, err := e.uc.MapaSilos(empresaID)
	require.NoError(t, err)
	require.Len(t, mapa, 1)

	celda := mapa[0]
	assert.Equal(t, int64(9500), celda.NivelActualKg)
	assert.Equal(t, int64(95), celda.PorcentajeOcupacion)
	assert.True(t, celda.AlertaRebalse, "95%% supera el umbral de rebalse")
	require.Len(t, celda.Lotes, 1)
	assert.Equal(t, lote.CodigoLote, celda.Lotes[0].CodigoLote)
}
