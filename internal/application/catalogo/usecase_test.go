package catalogo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molisur/molino-api/internal/application/catalogo"
	"github.com/molisur/molino-api/internal/application/dto"
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

type productosAgriFake struct {
	seq   int64
	filas map[int64]*entity.ProductoAgricola
	// usados marca las materias primas referenciadas por recepciones o fórmulas.
	usados map[int64]bool
}

func (f *productosAgriFake) Create(p *entity.ProductoAgricola) error {
	f.seq++
	p.ID = f.seq
	f.filas[p.ID] = p
	return nil
}

func (f *productosAgriFake) GetByID(empresaID, id int64) (*entity.ProductoAgricola, error) {
	p, ok := f.filas[id]
	if !ok || p.EmpresaID != empresaID {
		return nil, nil
	}
	return p, nil
}

func (f *productosAgriFake) Update(p *entity.ProductoAgricola) error { f.filas[p.ID] = p; return nil }

func (f *productosAgriFake) List(int64) ([]*entity.ProductoAgricola, error) { return nil, nil }

func (f *productosAgriFake) TieneDependencias(_, id int64) (bool, error) {
	return f.usados[id], nil
}

func (f *productosAgriFake) Delete(_, id int64) error {
	if _, ok := f.filas[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.filas, id)
	return nil
}

type choferesFake struct {
	seq   int64
	filas map[int64]*entity.Chofer
}

func (f *choferesFake) Create(c *entity.Chofer) error {
	f.seq++
	c.ID = f.seq
	f.filas[c.ID] = c
	return nil
}

func (f *choferesFake) GetByID(empresaID, id int64) (*entity.Chofer, error) {
	c, ok := f.filas[id]
	if !ok || c.EmpresaID != empresaID {
		return nil, nil
	}
	return c, nil
}

func (f *choferesFake) GetByCodigo(empresaID int64, codigo string) (*entity.Chofer, error) {
	for _, c := range f.filas {
		if c.EmpresaID == empresaID && c.CodigoChofer == codigo {
			return c, nil
		}
	}
	return nil, nil
}

func (f *choferesFake) Update(c *entity.Chofer) error { f.filas[c.ID] = c; return nil }

func (f *choferesFake) List(empresaID int64) ([]*entity.Chofer, error) {
	var out []*entity.Chofer
	for _, c := range f.filas {
		if c.EmpresaID == empresaID {
			out = append(out, c)
		}
	}
	return out, nil
}

type camionesFake struct {
	seq   int64
	filas map[int64]*entity.Camion
}

func (f *camionesFake) Create(c *entity.Camion) error {
	f.seq++
	c.ID = f.seq
	f.filas[c.ID] = c
	return nil
}

func (f *camionesFake) GetByID(empresaID, id int64) (*entity.Camion, error) {
	c, ok := f.filas[id]
	if !ok || c.EmpresaID != empresaID {
		return nil, nil
	}
	return c, nil
}

// GetByCodigo resuelve por código generado o por patente, como la consulta real.
func (f *camionesFake) GetByCodigo(empresaID int64, codigo string) (*entity.Camion, error) {
	for _, c := range f.filas {
		if c.EmpresaID == empresaID && (c.CodigoCamion == codigo || c.Patente == codigo) {
			return c, nil
		}
	}
	return nil, nil
}

func (f *camionesFake) Update(c *entity.Camion) error { f.filas[c.ID] = c; return nil }

func (f *camionesFake) List(int64) ([]*entity.Camion, error) { return nil, nil }

type carrosFake struct {
	seq   int64
	filas map[int64]*entity.Carro
}

func (f *carrosFake) Create(c *entity.Carro) error {
	f.seq++
	c.ID = f.seq
	f.filas[c.ID] = c
	return nil
}

func (f *carrosFake) GetByID(empresaID, id int64) (*entity.Carro, error) {
	c, ok := f.filas[id]
	if !ok || c.EmpresaID != empresaID {
		return nil, nil
	}
	return c, nil
}

func (f *carrosFake) GetByCodigo(empresaID int64, codigo string) (*entity.Carro, error) {
	for _, c := range f.filas {
		if c.EmpresaID == empresaID && (c.CodigoCarro == codigo || c.Patente == codigo) {
			return c, nil
		}
	}
	return nil, nil
}

func (f *carrosFake) Update(c *entity.Carro) error { f.filas[c.ID] = c; return nil }

func (f *carrosFake) List(int64) ([]*entity.Carro, error) { return nil, nil }

type silosFake struct {
	seq   int64
	filas map[int64]*entity.Silo
}

func (f *silosFake) Create(s *entity.Silo) error {
	f.seq++
	s.ID = f.seq
	f.filas[s.ID] = s
	return nil
}

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

const empresaID int64 = 1

type escenario struct {
	uc            *catalogo.UseCase
	productosAgri *productosAgriFake
	choferes      *choferesFake
	camiones      *camionesFake
	carros        *carrosFake
	silos         *silosFake
}

func setup() *escenario {
	e := &escenario{
		productosAgri: &productosAgriFake{filas: map[int64]*entity.ProductoAgricola{}, usados: map[int64]bool{}},
		choferes:      &choferesFake{filas: map[int64]*entity.Chofer{}},
		camiones:      &camionesFake{filas: map[int64]*entity.Camion{}},
		carros:        &carrosFake{filas: map[int64]*entity.Carro{}},
		silos:         &silosFake{filas: map[int64]*entity.Silo{}},
	}
	runner := &txRunnerFake{tx: &repository.Tx{
		ProductosAgri: e.productosAgri,
		Choferes:      e.choferes,
		Camiones:      e.camiones,
		Carros:        e.carros,
		Silos:         e.silos,
	}}
	e.uc = catalogo.NewUseCase(runner, e.productosAgri, nil, nil, nil, e.choferes, e.camiones, e.carros, e.silos, nil)
	return e
}

// ──────────────────────────────────────────────────────────────────────────────
// Transporte: códigos generados tras el insert
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearChofer_AsignaCodigoConElID(t *testing.T) {
	e := setup()

	c, err := e.uc.CrearChofer(context.Background(), empresaID, dto.ChoferRequest{
		Nombre: "Pedro Soto",
		Rut:    "12.345.678-9",
	})
	require.NoError(t, err)

	assert.Equal(t, "CH-1-1", c.CodigoChofer)
	assert.True(t, c.Activo)

	// el código quedó persistido en la misma transacción
	guardado := e.choferes.filas[c.ID]
	assert.Equal(t, "CH-1-1", guardado.CodigoChofer)
}

func TestCrearChofer_SinNombreRechazado(t *testing.T) {
	e := setup()

	_, err := e.uc.CrearChofer(context.Background(), empresaID, dto.ChoferRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCrearCamion_NormalizaPatenteYAsignaCodigo(t *testing.T) {
	e := setup()

	c, err := e.uc.CrearCamion(context.Background(), empresaID, dto.CamionRequest{
		Patente: " gh xx 12 ",
		Marca:   "Mercedes",
	})
	require.NoError(t, err)

	assert.Equal(t, "GHXX12", c.Patente)
	assert.Equal(t, "CA-1-1", c.CodigoCamion)
	assert.Equal(t, "disponible", c.Estado)
	assert.Equal(t, "GHXX12", e.camiones.filas[c.ID].Patente)
}

func TestCrearCarro_AsignaCodigoCR(t *testing.T) {
	e := setup()

	c, err := e.uc.CrearCarro(context.Background(), empresaID, dto.CarroRequest{Patente: "jkpl-23"})
	require.NoError(t, err)

	assert.Equal(t, "CR-1-1", c.CodigoCarro)
	assert.Equal(t, "JKPL-23", c.Patente)
}

// ──────────────────────────────────────────────────────────────────────────────
// Búsqueda por código escaneado
// ──────────────────────────────────────────────────────────────────────────────

func TestBuscarCamion_PorCodigoOPatente(t *testing.T) {
	e := setup()
	creado, err := e.uc.CrearCamion(context.Background(), empresaID, dto.CamionRequest{Patente: "GHXX12"})
	require.NoError(t, err)

	// por código generado, con ruido de escáner
	porCodigo, err := e.uc.BuscarCamion(empresaID, "  ca-1-1 ")
	require.NoError(t, err)
	assert.Equal(t, creado.ID, porCodigo.ID)

	// por patente en minúsculas
	porPatente, err := e.uc.BuscarCamion(empresaID, "gh xx 12")
	require.NoError(t, err)
	assert.Equal(t, creado.ID, porPatente.ID)
}

func TestBuscarChofer_OtraEmpresaNoLoVe(t *testing.T) {
	e := setup()
	_, err := e.uc.CrearChofer(context.Background(), empresaID, dto.ChoferRequest{Nombre: "Pedro Soto"})
	require.NoError(t, err)

	_, err = e.uc.BuscarChofer(2, "CH-1-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos agrícolas
// ──────────────────────────────────────────────────────────────────────────────

func TestEliminarProductoAgricola_SinUsoSeElimina(t *testing.T) {
	e := setup()
	p, err := e.uc.CrearProductoAgricola(context.Background(), empresaID, dto.ProductoAgricolaRequest{
		Nombre: "Trigo candeal", Codigo: "tr-cand",
	})
	require.NoError(t, err)
	assert.Equal(t, "TR-CAND", p.Codigo)

	require.NoError(t, e.uc.EliminarProductoAgricola(context.Background(), empresaID, p.ID))
	assert.Empty(t, e.productosAgri.filas)
}

func TestEliminarProductoAgricola_ConDependenciasRechazado(t *testing.T) {
	e := setup()
	p, err := e.uc.CrearProductoAgricola(context.Background(), empresaID, dto.ProductoAgricolaRequest{
		Nombre: "Trigo candeal",
	})
	require.NoError(t, err)
	e.productosAgri.usados[p.ID] = true

	err = e.uc.EliminarProductoAgricola(context.Background(), empresaID, p.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, e.productosAgri.filas, 1, "la materia prima referenciada no se borra")
}

func TestEliminarProductoAgricola_Inexistente(t *testing.T) {
	e := setup()

	err := e.uc.EliminarProductoAgricola(context.Background(), empresaID, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Silos
// ──────────────────────────────────────────────────────────────────────────────

func TestCrearSilo_NormalizaCodigo(t *testing.T) {
	e := setup()

	s, err := e.uc.CrearSilo(context.Background(), empresaID, "silo 3", "trigo candeal", nil, 50000)
	require.NoError(t, err)

	assert.Equal(t, "SILO3", s.Codigo)
	assert.Equal(t, "operativo", s.Estado)
	assert.Equal(t, int64(50000), e.silos.filas[s.ID].CapacidadMaxKg)
}

func TestCrearSilo_CapacidadNegativaRechazada(t *testing.T) {
	e := setup()

	_, err := e.uc.CrearSilo(context.Background(), empresaID, "S-9", "", nil, -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
