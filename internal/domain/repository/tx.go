package repository

import "context"

// Tx agrupa los repositorios atados a una misma transacción. Los casos de uso
// reciben un *Tx dentro del callback de TxRunner y operan sobre sus repos con
// garantía de atomicidad.
type Tx struct {
	Recepciones     RecepcionRepository
	Pesajes         PesajeRepository
	Laboratorios    LaboratorioRepository
	Lotes           LoteRepository
	Silos           SiloRepository
	Movimientos     MovimientoInventarioRepository
	Maquila         MaquilaRepository
	TiposTrabajo    MaquilaTipoTrabajoRepository
	Formulas        FormulaRepository
	Ordenes         OrdenProduccionRepository
	Rendimientos    RendimientoRepository
	ProductosAgri   ProductoAgricolaRepository
	ProductosTerm   ProductoTerminadoRepository
	Clientes        ClienteRepository
	Proveedores     ProveedorRepository
	Choferes        ChoferRepository
	Camiones        CamionRepository
	Carros          CarroRepository
	Bodegas         BodegaRepository
}

// TxRunner ejecuta un callback dentro de una transacción de base de datos.
// Si fn devuelve error se hace rollback; si no, commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx *Tx) error) error
}
