package produccion

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/molisur/molino-api/internal/application/dto"
	"github.com/molisur/molino-api/internal/domain"
	"github.com/molisur/molino-api/internal/domain/entity"
	"github.com/molisur/molino-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// UseCase casos de uso del motor de producción: fórmulas, órdenes de molienda,
// consumo de lotes y registro de rendimiento con balance de masa.
type UseCase struct {
	txRunner     repository.TxRunner
	formulas     repository.FormulaRepository
	ordenes      repository.OrdenProduccionRepository
	rendimientos repository.RendimientoRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner repository.TxRunner,
	formulas repository.FormulaRepository,
	ordenes repository.OrdenProduccionRepository,
	rendimientos repository.RendimientoRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, formulas: formulas, ordenes: ordenes, rendimientos: rendimientos}
}

// ── Fórmulas ──────────────────────────────────────────────────────────────────

// CrearFormula registra una fórmula con sus ingredientes.
func (uc *UseCase) CrearFormula(ctx context.Context, empresaID int64, in dto.FormulaRequest) (*entity.Formula, error) {
	if err := validarFormula(in); err != nil {
		return nil, err
	}
	activa := true
	if in.Activa != nil {
		activa = *in.Activa
	}
	f := &entity.Formula{
		EmpresaID:           empresaID,
		ProductoTerminadoID: in.ProductoTerminadoID,
		Nombre:              in.Nombre,
		Descripcion:         in.Descripcion,
		MermaTolerablePct:   in.MermaTolerablePct,
		Activa:              activa,
		Ingredientes:        ingredientesDesdeDTO(empresaID, in.Ingredientes),
	}
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		return tx.Formulas.Create(f)
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ActualizarFormula reemplaza la fórmula completa, ingredientes incluidos.
func (uc *UseCase) ActualizarFormula(ctx context.Context, empresaID, id int64, in dto.FormulaRequest) (*entity.Formula, error) {
	if err := validarFormula(in); err != nil {
		return nil, err
	}
	var out *entity.Formula
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		f, err := tx.Formulas.GetByID(empresaID, id)
		if err != nil {
			return err
		}
		if f == nil {
			return domain.ErrNotFound
		}
		f.Nombre = in.Nombre
		f.Descripcion = in.Descripcion
		f.ProductoTerminadoID = in.ProductoTerminadoID
		f.MermaTolerablePct = in.MermaTolerablePct
		if in.Activa != nil {
			f.Activa = *in.Activa
		}
		f.Ingredientes = ingredientesDesdeDTO(empresaID, in.Ingredientes)
		for i := range f.Ingredientes {
			f.Ingredientes[i].FormulaID = f.ID
		}
		if err := tx.Formulas.Update(f); err != nil {
			return err
		}
		out = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetFormula devuelve una fórmula con ingredientes.
func (uc *UseCase) GetFormula(empresaID, id int64) (*entity.Formula, error) {
	f, err := uc.formulas.GetByID(empresaID, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

// ListarFormulas devuelve las fórmulas de la empresa.
func (uc *UseCase) ListarFormulas(empresaID int64, soloActivas bool) ([]*entity.Formula, error) {
	return uc.formulas.List(empresaID, soloActivas)
}

// ── Órdenes ───────────────────────────────────────────────────────────────────

// CrearOrden abre una orden de producción en estado planificada.
func (uc *UseCase) CrearOrden(ctx context.Context, empresaID int64, usuarioID *int64, in dto.CrearOrdenRequest) (*entity.OrdenProduccion, error) {
	if in.CantidadObjetivo <= 0 {
		return nil, domain.ErrInvalidInput
	}
	o := &entity.OrdenProduccion{
		EmpresaID:            empresaID,
		SucursalID:           in.SucursalID,
		NumeroOP:             fmt.Sprintf("OP-%d", time.Now().UnixMilli()),
		ProductoObjetivoID:   in.ProductoObjetivoID,
		FormulaID:            in.FormulaID,
		CantidadObjetivo:     in.CantidadObjetivo,
		FechaPlanificada:     in.FechaPlanificada,
		Estado:               entity.OrdenEstadoPlanificada,
		UsuarioResponsableID: usuarioID,
		CreatedAt:            time.Now(),
	}
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		if in.FormulaID != nil {
			f, err := tx.Formulas.GetByID(empresaID, *in.FormulaID)
			if err != nil {
				return err
			}
			if f == nil {
				return domain.ErrNotFound
			}
		}
		return tx.Ordenes.Create(o)
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// ConsumirInsumo descuenta kg de un lote para la orden: baja el saldo del
// lote, el nivel de su silo, escribe el movimiento CONSUMO_PRODUCCION y la
// fila de trazabilidad orden-lote. La primera consumición abre la orden.
func (uc *UseCase) ConsumirInsumo(ctx context.Context, empresaID, ordenID int64, usuarioID *int64, in dto.ConsumirInsumoRequest) (*entity.OrdenProduccionInsumo, error) {
	if in.CantidadKg <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var insumo *entity.OrdenProduccionInsumo
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		o, err := tx.Ordenes.GetForUpdate(empresaID, ordenID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.Finalizada() {
			return domain.ErrOrdenFinalizada
		}

		now := time.Now()
		i, err := consumirLote(tx, empresaID, o, usuarioID, in.LoteID, in.CantidadKg, now)
		if err != nil {
			return err
		}

		if o.Estado == entity.OrdenEstadoPlanificada {
			o.Estado = entity.OrdenEstadoAbierta
			o.FechaInicioReal = &now
			if err := tx.Ordenes.Update(o); err != nil {
				return err
			}
		}
		insumo = i
		return nil
	})
	if err != nil {
		return nil, err
	}
	return insumo, nil
}

// RegistrarRendimiento cierra la orden con el balance de masa: descuenta los
// lotes de insumo que lleguen en el body, guarda el rendimiento y sus
// subproductos, suma la harina al stock del producto objetivo y marca la
// orden finalizada, todo en una transacción. El cierre ocurre exactamente una
// vez: una orden ya finalizada devuelve ErrOrdenFinalizada. La merma no se
// guarda, siempre se deriva.
func (uc *UseCase) RegistrarRendimiento(ctx context.Context, empresaID, ordenID int64, usuarioID *int64, in dto.RegistrarRendimientoRequest) (*entity.Rendimiento, bool, error) {
	if in.TrigoMolidoKg <= 0 || in.HarinaTotalKg < 0 {
		return nil, false, domain.ErrInvalidInput
	}
	for _, sp := range in.Subproductos {
		if sp.Nombre == "" || sp.CantidadKg < 0 {
			return nil, false, domain.ErrInvalidInput
		}
	}
	for _, ins := range in.Insumos {
		if ins.LoteID <= 0 || ins.CantidadKg <= 0 {
			return nil, false, domain.ErrInvalidInput
		}
	}

	// Los lotes se bloquean en orden ascendente de id para evitar deadlocks.
	insumos := append([]dto.ConsumirInsumoRequest(nil), in.Insumos...)
	sort.Slice(insumos, func(i, j int) bool { return insumos[i].LoteID < insumos[j].LoteID })

	var (
		rendimiento *entity.Rendimiento
		excede      bool
	)
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		o, err := tx.Ordenes.GetForUpdate(empresaID, ordenID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		if o.Finalizada() {
			return domain.ErrOrdenFinalizada
		}

		now := time.Now()
		for _, ins := range insumos {
			if _, err := consumirLote(tx, empresaID, o, usuarioID, ins.LoteID, ins.CantidadKg, now); err != nil {
				return err
			}
		}
		r := &entity.Rendimiento{
			EmpresaID:         empresaID,
			OrdenProduccionID: o.ID,
			TrigoMolidoKg:     in.TrigoMolidoKg,
			HarinaTotalKg:     in.HarinaTotalKg,
			UsuarioRegistroID: usuarioID,
			FechaRegistro:     now,
			Observaciones:     in.Observaciones,
		}
		for _, sp := range in.Subproductos {
			r.Subproductos = append(r.Subproductos, entity.RendimientoSubproducto{
				Nombre:     sp.Nombre,
				CantidadKg: sp.CantidadKg,
			})
		}
		if err := tx.Rendimientos.Create(r); err != nil {
			return err
		}

		if o.ProductoObjetivoID != nil && in.HarinaTotalKg > 0 {
			pt, err := tx.ProductosTerm.GetForUpdate(empresaID, *o.ProductoObjetivoID)
			if err != nil {
				return err
			}
			if pt == nil {
				return domain.ErrNotFound
			}
			pt.StockActual += in.HarinaTotalKg
			if err := tx.ProductosTerm.Update(pt); err != nil {
				return err
			}
		}

		o.Estado = entity.OrdenEstadoFinalizada
		o.FechaFinReal = &now
		if err := tx.Ordenes.Update(o); err != nil {
			return err
		}

		if o.FormulaID != nil {
			f, err := tx.Formulas.GetByID(empresaID, *o.FormulaID)
			if err != nil {
				return err
			}
			if f != nil && f.MermaTolerablePct.IsPositive() && r.TrigoMolidoKg > 0 {
				mermaPct := decimal.NewFromInt(r.MermaKg() * 100).
					Div(decimal.NewFromInt(r.TrigoMolidoKg))
				excede = mermaPct.GreaterThan(f.MermaTolerablePct)
			}
		}
		rendimiento = r
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return rendimiento, excede, nil
}

// consumirLote descuenta kg de un lote para una orden sobre la transacción en
// curso: baja el saldo del lote, el nivel de su silo derivado, escribe el
// movimiento CONSUMO_PRODUCCION y la fila de trazabilidad orden-lote.
func consumirLote(tx *repository.Tx, empresaID int64, o *entity.OrdenProduccion, usuarioID *int64, loteID, cantidadKg int64, now time.Time) (*entity.OrdenProduccionInsumo, error) {
	lote, err := tx.Lotes.GetForUpdate(empresaID, loteID)
	if err != nil {
		return nil, err
	}
	if lote == nil {
		return nil, domain.ErrNotFound
	}
	if !lote.Activo() {
		return nil, domain.ErrConflict
	}
	if cantidadKg > lote.CantidadActualKg {
		return nil, domain.ErrSaldoInsuficiente
	}

	silo, err := tx.Lotes.SiloActual(empresaID, lote.ID)
	if err != nil {
		return nil, err
	}
	if silo == nil {
		return nil, domain.ErrInconsistenciaInventario
	}
	siloLocked, err := tx.Silos.GetForUpdate(empresaID, silo.ID)
	if err != nil {
		return nil, err
	}
	if siloLocked == nil || siloLocked.NivelActualKg < cantidadKg {
		return nil, domain.ErrInconsistenciaInventario
	}

	lote.Descontar(cantidadKg)
	if err := tx.Lotes.Update(lote); err != nil {
		return nil, err
	}

	mov := &entity.MovimientoInventario{
		EmpresaID:      empresaID,
		SucursalID:     o.SucursalID,
		TipoMovimiento: entity.MovimientoConsumoProduccion,
		SiloOrigenID:   &siloLocked.ID,
		LoteID:         lote.ID,
		CantidadKg:     cantidadKg,
		Fecha:          now,
		UsuarioID:      usuarioID,
		Observacion:    o.NumeroOP,
	}
	if err := tx.Movimientos.Create(mov); err != nil {
		return nil, err
	}

	siloLocked.NivelActualKg -= cantidadKg
	if err := tx.Silos.Update(siloLocked); err != nil {
		return nil, err
	}

	i := &entity.OrdenProduccionInsumo{
		EmpresaID:           empresaID,
		OrdenProduccionID:   o.ID,
		LoteID:              lote.ID,
		CantidadUtilizadaKg: cantidadKg,
	}
	if err := tx.Ordenes.CreateInsumo(i); err != nil {
		return nil, err
	}
	return i, nil
}

// GetOrden devuelve una orden.
func (uc *UseCase) GetOrden(empresaID, id int64) (*entity.OrdenProduccion, error) {
	o, err := uc.ordenes.GetByID(empresaID, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

// ListarOrdenes devuelve órdenes filtradas por estado.
func (uc *UseCase) ListarOrdenes(empresaID int64, estado string, limit, offset int) ([]*entity.OrdenProduccion, error) {
	return uc.ordenes.List(empresaID, estado, limit, offset)
}

// Insumos devuelve la trazabilidad de lotes consumidos por una orden.
func (uc *UseCase) Insumos(empresaID, ordenID int64) ([]*entity.OrdenProduccionInsumo, error) {
	return uc.ordenes.ListInsumos(empresaID, ordenID)
}

// RendimientoDeOrden devuelve el rendimiento registrado de una orden.
func (uc *UseCase) RendimientoDeOrden(empresaID, ordenID int64) (*entity.Rendimiento, error) {
	r, err := uc.rendimientos.GetByOrden(empresaID, ordenID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// ListarRendimientos devuelve los rendimientos de la empresa.
func (uc *UseCase) ListarRendimientos(empresaID int64, limit, offset int) ([]*entity.Rendimiento, error) {
	return uc.rendimientos.ListByEmpresa(empresaID, limit, offset)
}

// Estadisticas resume la molienda del período: balance de masa agregado,
// extracción promedio y órdenes con merma sobre la tolerancia. La tolerancia
// sólo alerta aquí, nunca bloquea un cierre.
func (uc *UseCase) Estadisticas(empresaID int64, desde, hasta *time.Time) (*entity.EstadisticasProduccion, error) {
	return uc.rendimientos.Estadisticas(empresaID, desde, hasta)
}

func validarFormula(in dto.FormulaRequest) error {
	if in.Nombre == "" || in.MermaTolerablePct.IsNegative() {
		return domain.ErrInvalidInput
	}
	for _, ing := range in.Ingredientes {
		if ing.ProductoAgricolaID == 0 || !ing.ProporcionKgPorUnidad.IsPositive() {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func ingredientesDesdeDTO(empresaID int64, in []dto.FormulaIngredienteDTO) []entity.FormulaIngrediente {
	out := make([]entity.FormulaIngrediente, 0, len(in))
	for _, ing := range in {
		out = append(out, entity.FormulaIngrediente{
			EmpresaID:             empresaID,
			ProductoAgricolaID:    ing.ProductoAgricolaID,
			ProporcionKgPorUnidad: ing.ProporcionKgPorUnidad,
		})
	}
	return out
}
