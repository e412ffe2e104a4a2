package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/molisur/molino-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, arma los repos atados a la tx y hace Commit o
// Rollback según el resultado de fn.
func (r *TxRunner) Run(ctx context.Context, fn func(tx *repository.Tx) error) error {
	pgxTx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = pgxTx.Rollback(ctx) }()

	if err := fn(NewTx(pgxTx)); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewTx arma el conjunto de repositorios sobre un mismo Querier (pool o tx).
func NewTx(q Querier) *repository.Tx {
	return &repository.Tx{
		Recepciones:   NewRecepcionRepository(q),
		Pesajes:       NewPesajeRepository(q),
		Laboratorios:  NewLaboratorioRepository(q),
		Lotes:         NewLoteRepository(q),
		Silos:         NewSiloRepository(q),
		Movimientos:   NewMovimientoInventarioRepository(q),
		Maquila:       NewMaquilaRepository(q),
		TiposTrabajo:  NewMaquilaTipoTrabajoRepository(q),
		Formulas:      NewFormulaRepository(q),
		Ordenes:       NewOrdenProduccionRepository(q),
		Rendimientos:  NewRendimientoRepository(q),
		ProductosAgri: NewProductoAgricolaRepository(q),
		ProductosTerm: NewProductoTerminadoRepository(q),
		Clientes:      NewClienteRepository(q),
		Proveedores:   NewProveedorRepository(q),
		Choferes:      NewChoferRepository(q),
		Camiones:      NewCamionRepository(q),
		Carros:        NewCarroRepository(q),
		Bodegas:       NewBodegaRepository(q),
	}
}
