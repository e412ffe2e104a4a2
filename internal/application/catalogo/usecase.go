package catalogo

import (
	"context"
	"fmt"
	"time"

	"github.com/molisur/molino-api/internal/application/dto"
	"github.com/molisur/molino-api/internal/domain"
	"github.com/molisur/molino-api/internal/domain/entity"
	"github.com/molisur/molino-api/internal/domain/repository"
	"github.com/molisur/molino-api/pkg/codigos"
)

// UseCase casos de uso de catálogo: productos, contrapartes y transporte.
// Choferes, camiones y carros reciben un código generado (CH-/CA-/CR-) que se
// asigna tras el insert, cuando ya existe el id.
type UseCase struct {
	txRunner      repository.TxRunner
	productosAgri repository.ProductoAgricolaRepository
	productosTerm repository.ProductoTerminadoRepository
	clientes      repository.ClienteRepository
	proveedores   repository.ProveedorRepository
	choferes      repository.ChoferRepository
	camiones      repository.CamionRepository
	carros        repository.CarroRepository
	silos         repository.SiloRepository
	bodegas       repository.BodegaRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner repository.TxRunner,
	productosAgri repository.ProductoAgricolaRepository,
	productosTerm repository.ProductoTerminadoRepository,
	clientes repository.ClienteRepository,
	proveedores repository.ProveedorRepository,
	choferes repository.ChoferRepository,
	camiones repository.CamionRepository,
	carros repository.CarroRepository,
	silos repository.SiloRepository,
	bodegas repository.BodegaRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		productosAgri: productosAgri,
		productosTerm: productosTerm,
		clientes:      clientes,
		proveedores:   proveedores,
		choferes:      choferes,
		camiones:      camiones,
		carros:        carros,
		silos:         silos,
		bodegas:       bodegas,
	}
}

// ── Productos ─────────────────────────────────────────────────────────────────

// CrearProductoAgricola registra una materia prima.
func (uc *UseCase) CrearProductoAgricola(ctx context.Context, empresaID int64, in dto.ProductoAgricolaRequest) (*entity.ProductoAgricola, error) {
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.ProductoAgricola{
		EmpresaID:   empresaID,
		Nombre:      in.Nombre,
		Codigo:      codigos.Normalizar(in.Codigo),
		Descripcion: in.Descripcion,
		CreatedAt:   time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		return tx.ProductosAgri.Create(p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListarProductosAgricolas devuelve las materias primas de la empresa.
func (uc *UseCase) ListarProductosAgricolas(empresaID int64) ([]*entity.ProductoAgricola, error) {
	return uc.productosAgri.List(empresaID)
}

// EliminarProductoAgricola borra una materia prima sin uso. Si hay recepciones
// o fórmulas que la referencian, se rechaza con conflicto.
func (uc *UseCase) EliminarProductoAgricola(ctx context.Context, empresaID, id int64) error {
	return uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		p, err := tx.ProductosAgri.GetByID(empresaID, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		tiene, err := tx.ProductosAgri.TieneDependencias(empresaID, id)
		if err != nil {
			return err
		}
		if tiene {
			return domain.ErrConflict
		}
		return tx.ProductosAgri.Delete(empresaID, id)
	})
}

// CrearProductoTerminado registra un producto de molienda con SKU.
func (uc *UseCase) CrearProductoTerminado(ctx context.Context, empresaID int64, in dto.ProductoTerminadoRequest) (*entity.ProductoTerminado, error) {
	if in.Nombre == "" || in.CodigoSKU == "" {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.ProductoTerminado{
		EmpresaID:    empresaID,
		Nombre:       in.Nombre,
		CodigoSKU:    codigos.Normalizar(in.CodigoSKU),
		Tipo:         in.Tipo,
		UnidadMedida: in.UnidadMedida,
		StockMinimo:  in.StockMinimo,
		Descripcion:  in.Descripcion,
		CreatedAt:    time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		return tx.ProductosTerm.Create(p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListarProductosTerminados devuelve los productos de molienda de la empresa.
func (uc *UseCase) ListarProductosTerminados(empresaID int64) ([]*entity.ProductoTerminado, error) {
	return uc.productosTerm.List(empresaID)
}

// ── Contrapartes ──────────────────────────────────────────────────────────────

// CrearCliente registra un cliente maquila.
func (uc *UseCase) CrearCliente(ctx context.Context, empresaID int64, in dto.ClienteRequest) (*entity.Cliente, error) {
	if in.Rut == "" || in.RazonSocial == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Cliente{
		EmpresaID:        empresaID,
		Rut:              in.Rut,
		RazonSocial:      in.RazonSocial,
		NombreFantasia:   in.NombreFantasia,
		Telefono:         in.Telefono,
		EmailFacturacion: in.EmailFacturacion,
		CreatedAt:        time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		return tx.Clientes.Create(c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListarClientes devuelve los clientes de la empresa.
func (uc *UseCase) ListarClientes(empresaID int64, limit, offset int) ([]*entity.Cliente, error) {
	return uc.clientes.List(empresaID, limit, offset)
}

// CrearProveedor registra un proveedor de grano.
func (uc *UseCase) CrearProveedor(ctx context.Context, empresaID int64, in dto.ProveedorRequest) (*entity.Proveedor, error) {
	if in.Rut == "" || in.RazonSocial == "" {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.Proveedor{
		EmpresaID:   empresaID,
		Rut:         in.Rut,
		RazonSocial: in.RazonSocial,
		Alias:       in.Alias,
		Telefono:    in.Telefono,
		Email:       in.Email,
		CreatedAt:   time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		return tx.Proveedores.Create(p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListarProveedores devuelve los proveedores de la empresa.
func (uc *UseCase) ListarProveedores(empresaID int64, limit, offset int) ([]*entity.Proveedor, error) {
	return uc.proveedores.List(empresaID, limit, offset)
}

// ── Transporte ────────────────────────────────────────────────────────────────

// CrearChofer registra un chofer y le asigna código CH-{empresa}-{id}.
func (uc *UseCase) CrearChofer(ctx context.Context, empresaID int64, in dto.ChoferRequest) (*entity.Chofer, error) {
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Chofer{
		EmpresaID: empresaID,
		Nombre:    in.Nombre,
		Rut:       in.Rut,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Activo:    true,
		CreatedAt: time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		if err := tx.Choferes.Create(c); err != nil {
			return err
		}
		c.CodigoChofer = fmt.Sprintf("CH-%d-%d", empresaID, c.ID)
		return tx.Choferes.Update(c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CrearCamion registra un camión y le asigna código CA-{empresa}-{id}.
func (uc *UseCase) CrearCamion(ctx context.Context, empresaID int64, in dto.CamionRequest) (*entity.Camion, error) {
	if in.Patente == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Camion{
		EmpresaID:        empresaID,
		Patente:          codigos.Normalizar(in.Patente),
		Marca:            in.Marca,
		Modelo:           in.Modelo,
		CapacidadCargaKg: in.CapacidadCargaKg,
		Estado:           "disponible",
		Activo:           true,
	}
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		if err := tx.Camiones.Create(c); err != nil {
			return err
		}
		c.CodigoCamion = fmt.Sprintf("CA-%d-%d", empresaID, c.ID)
		return tx.Camiones.Update(c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CrearCarro registra un acoplado y le asigna código CR-{empresa}-{id}.
func (uc *UseCase) CrearCarro(ctx context.Context, empresaID int64, in dto.CarroRequest) (*entity.Carro, error) {
	if in.Patente == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Carro{
		EmpresaID:        empresaID,
		Patente:          codigos.Normalizar(in.Patente),
		Marca:            in.Marca,
		Modelo:           in.Modelo,
		CapacidadCargaKg: in.CapacidadCargaKg,
		Activo:           true,
	}
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		if err := tx.Carros.Create(c); err != nil {
			return err
		}
		c.CodigoCarro = fmt.Sprintf("CR-%d-%d", empresaID, c.ID)
		return tx.Carros.Update(c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// BuscarChofer resuelve un chofer por código escaneado (se normaliza antes).
func (uc *UseCase) BuscarChofer(empresaID int64, codigo string) (*entity.Chofer, error) {
	c, err := uc.choferes.GetByCodigo(empresaID, codigos.Normalizar(codigo))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// BuscarCamion resuelve un camión por código escaneado.
func (uc *UseCase) BuscarCamion(empresaID int64, codigo string) (*entity.Camion, error) {
	c, err := uc.camiones.GetByCodigo(empresaID, codigos.Normalizar(codigo))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// BuscarCarro resuelve un carro por código escaneado.
func (uc *UseCase) BuscarCarro(empresaID int64, codigo string) (*entity.Carro, error) {
	c, err := uc.carros.GetByCodigo(empresaID, codigos.Normalizar(codigo))
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// ListarChoferes devuelve los choferes de la empresa.
func (uc *UseCase) ListarChoferes(empresaID int64) ([]*entity.Chofer, error) {
	return uc.choferes.List(empresaID)
}

// ListarCamiones devuelve los camiones de la empresa.
func (uc *UseCase) ListarCamiones(empresaID int64) ([]*entity.Camion, error) {
	return uc.camiones.List(empresaID)
}

// ListarCarros devuelve los carros de la empresa.
func (uc *UseCase) ListarCarros(empresaID int64) ([]*entity.Carro, error) {
	return uc.carros.List(empresaID)
}

// ── Silos y bodegas ───────────────────────────────────────────────────────────

// CrearSilo registra un silo.
func (uc *UseCase) CrearSilo(ctx context.Context, empresaID int64, codigo, descripcion string, bodegaID *int64, capacidadMaxKg int64) (*entity.Silo, error) {
	if codigo == "" || capacidadMaxKg < 0 {
		return nil, domain.ErrInvalidInput
	}
	s := &entity.Silo{
		EmpresaID:      empresaID,
		BodegaID:       bodegaID,
		Codigo:         codigos.Normalizar(codigo),
		Descripcion:    descripcion,
		CapacidadMaxKg: capacidadMaxKg,
		Estado:         "operativo",
		CreatedAt:      time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		return tx.Silos.Create(s)
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// CrearBodega registra una bodega.
func (uc *UseCase) CrearBodega(ctx context.Context, empresaID int64, nombre, descripcion string, sucursalID *int64) (*entity.Bodega, error) {
	if nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	b := &entity.Bodega{
		EmpresaID:   empresaID,
		SucursalID:  sucursalID,
		Nombre:      nombre,
		Descripcion: descripcion,
		CreatedAt:   time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		return tx.Bodegas.Create(b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListarBodegas devuelve las bodegas de la empresa.
func (uc *UseCase) ListarBodegas(empresaID int64) ([]*entity.Bodega, error) {
	return uc.bodegas.List(empresaID)
}
