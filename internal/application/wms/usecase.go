package wms

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/molisur/molino-api/internal/application/dto"
	"github.com/molisur/molino-api/internal/domain"
	"github.com/molisur/molino-api/internal/domain/entity"
	"github.com/molisur/molino-api/internal/domain/repository"
	domwms "github.com/molisur/molino-api/internal/domain/wms"
	"github.com/molisur/molino-api/pkg/codigos"
)

// UseCase casos de uso del almacenamiento en silos: ingreso de lotes desde
// recepción, trasiego, mezcla y mapa de silos. Toda mutación corre en una
// transacción con las filas involucradas bloqueadas; con más de un silo o lote
// en juego, los bloqueos se toman en orden ascendente de id para evitar
// deadlocks.
type UseCase struct {
	txRunner    repository.TxRunner
	silos       repository.SiloRepository
	lotes       repository.LoteRepository
	movimientos repository.MovimientoInventarioRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner repository.TxRunner,
	silos repository.SiloRepository,
	lotes repository.LoteRepository,
	movimientos repository.MovimientoInventarioRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, silos: silos, lotes: lotes, movimientos: movimientos}
}

// CrearLoteDesdeRecepcion materializa el grano de una recepción como lote
// dentro de un silo. La recepción llega por ID numérico o por código de ticket
// escaneado. El código del lote es el código del ticket, por lo que una
// recepción sólo puede originar un lote (restricción de unicidad). Sin
// cantidad explícita se ingresa todo el peso base.
func (uc *UseCase) CrearLoteDesdeRecepcion(ctx context.Context, empresaID int64, usuarioID *int64, in dto.CrearLoteRequest) (*entity.Lote, error) {
	if in.CantidadKg < 0 {
		return nil, domain.ErrInvalidInput
	}
	var lote *entity.Lote
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		r, err := resolverRecepcion(tx, empresaID, in.Recepcion)
		if err != nil {
			return err
		}
		if !r.TieneTicket() {
			return domain.ErrSinTicket
		}
		kg := r.PesoBaseKg()
		if kg <= 0 {
			return domain.ErrInvalidInput
		}
		if in.CantidadKg > 0 {
			if in.CantidadKg > kg {
				return domain.ErrSaldoInsuficiente
			}
			kg = in.CantidadKg
		}

		silo, err := tx.Silos.GetForUpdate(empresaID, in.SiloID)
		if err != nil {
			return err
		}
		if silo == nil {
			return domain.ErrNotFound
		}

		l := &entity.Lote{
			EmpresaID:         empresaID,
			CodigoLote:        r.TicketCodigo,
			RecepcionID:       &r.ID,
			CantidadInicialKg: kg,
			CantidadActualKg:  kg,
			Estado:            entity.LoteEstadoActivo,
			FechaCreacion:     time.Now(),
		}
		if err := tx.Lotes.Create(l); err != nil {
			return err
		}

		mov := &entity.MovimientoInventario{
			EmpresaID:      empresaID,
			SucursalID:     r.SucursalID,
			TipoMovimiento: entity.MovimientoIngresoSilo,
			SiloDestinoID:  &silo.ID,
			LoteID:         l.ID,
			CantidadKg:     kg,
			Fecha:          time.Now(),
			UsuarioID:      usuarioID,
		}
		if err := tx.Movimientos.Create(mov); err != nil {
			return err
		}

		silo.NivelActualKg += kg
		// El producto del silo se marca con el primer ingreso y no se pisa.
		if silo.ProductoActualID == nil {
			silo.ProductoActualID = r.ProductoAgricolaID
		}
		if err := tx.Silos.Update(silo); err != nil {
			return err
		}
		lote = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lote, nil
}

// Trasiego traslada kg de un lote entre dos silos, registrado como un único
// movimiento. Los kg trasladados se descuentan del saldo del lote; si queda en
// cero el lote pasa a consumido.
func (uc *UseCase) Trasiego(ctx context.Context, empresaID int64, usuarioID *int64, in dto.TrasiegoRequest) (*entity.MovimientoInventario, error) {
	if in.CantidadKg <= 0 || in.SiloOrigenID == in.SiloDestinoID {
		return nil, domain.ErrInvalidInput
	}
	var mov *entity.MovimientoInventario
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		lote, err := tx.Lotes.GetForUpdate(empresaID, in.LoteID)
		if err != nil {
			return err
		}
		if lote == nil {
			return domain.ErrNotFound
		}
		if !lote.Activo() {
			return domain.ErrConflict
		}
		if in.CantidadKg > lote.CantidadActualKg {
			return domain.ErrSaldoInsuficiente
		}

		actual, err := tx.Lotes.SiloActual(empresaID, in.LoteID)
		if err != nil {
			return err
		}
		if actual == nil || actual.ID != in.SiloOrigenID {
			return domain.ErrConflict
		}

		silos, err := bloquearSilos(tx, empresaID, in.SiloOrigenID, in.SiloDestinoID)
		if err != nil {
			return err
		}
		origen, destino := silos[in.SiloOrigenID], silos[in.SiloDestinoID]
		if origen.NivelActualKg < in.CantidadKg {
			return domain.ErrInconsistenciaInventario
		}

		m := &entity.MovimientoInventario{
			EmpresaID:      empresaID,
			TipoMovimiento: entity.MovimientoTrasiego,
			SiloOrigenID:   &origen.ID,
			SiloDestinoID:  &destino.ID,
			LoteID:         lote.ID,
			CantidadKg:     in.CantidadKg,
			Fecha:          time.Now(),
			UsuarioID:      usuarioID,
			Observacion:    in.Observacion,
		}
		if err := tx.Movimientos.Create(m); err != nil {
			return err
		}

		lote.Descontar(in.CantidadKg)
		if err := tx.Lotes.Update(lote); err != nil {
			return err
		}

		origen.NivelActualKg -= in.CantidadKg
		destino.NivelActualKg += in.CantidadKg
		if err := tx.Silos.Update(origen); err != nil {
			return err
		}
		if err := tx.Silos.Update(destino); err != nil {
			return err
		}
		mov = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// Mezcla toma kg de dos lotes y los fusiona en un silo destino creando un
// lote nuevo. El código del lote nuevo puede venir dado; si no, se genera con
// formato MIX. Los kg se descuentan de cada lote origen (con flip a consumido
// al llegar a cero) y el log registra tres movimientos: dos salidas de mezcla
// y una entrada del lote nuevo. La suma de kg en silos no cambia.
func (uc *UseCase) Mezcla(ctx context.Context, empresaID int64, usuarioID *int64, in dto.MezclaRequest) (*entity.Lote, error) {
	if in.LoteAID == in.LoteBID || in.CantidadAKg <= 0 || in.CantidadBKg <= 0 {
		return nil, domain.ErrInvalidInput
	}
	var nuevo *entity.Lote
	err := uc.txRunner.Run(ctx, func(tx *repository.Tx) error {
		// Bloquear los lotes en orden ascendente de id
		ids := []int64{in.LoteAID, in.LoteBID}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		bloqueados := map[int64]*entity.Lote{}
		for _, id := range ids {
			l, err := tx.Lotes.GetForUpdate(empresaID, id)
			if err != nil {
				return err
			}
			if l == nil {
				return domain.ErrNotFound
			}
			if !l.Activo() || l.CantidadActualKg <= 0 {
				return domain.ErrConflict
			}
			bloqueados[id] = l
		}
		loteA, loteB := bloqueados[in.LoteAID], bloqueados[in.LoteBID]
		if in.CantidadAKg > loteA.CantidadActualKg || in.CantidadBKg > loteB.CantidadActualKg {
			return domain.ErrSaldoInsuficiente
		}

		siloA, err := tx.Lotes.SiloActual(empresaID, loteA.ID)
		if err != nil {
			return err
		}
		siloB, err := tx.Lotes.SiloActual(empresaID, loteB.ID)
		if err != nil {
			return err
		}
		if siloA == nil || siloB == nil {
			return domain.ErrInconsistenciaInventario
		}
		// El destino debe ser un tercer silo: mezclar sobre un silo origen
		// dejaría el nivel y el log inconsistentes.
		if in.SiloDestinoID == siloA.ID || in.SiloDestinoID == siloB.ID {
			return domain.ErrInvalidInput
		}

		kgA, kgB := in.CantidadAKg, in.CantidadBKg
		total := kgA + kgB
		now := time.Now()

		codigo := codigos.Normalizar(in.CodigoLote)
		if codigo == "" {
			codigo = domwms.CodigoMezcla(now, loteA.ID, loteB.ID)
		}
		l := &entity.Lote{
			EmpresaID:         empresaID,
			CodigoLote:        codigo,
			CantidadInicialKg: total,
			CantidadActualKg:  total,
			Estado:            entity.LoteEstadoActivo,
			FechaCreacion:     now,
		}
		if err := tx.Lotes.Create(l); err != nil {
			return err
		}

		salidas := []*entity.MovimientoInventario{
			{
				EmpresaID:      empresaID,
				TipoMovimiento: entity.MovimientoMezclaSalida,
				SiloOrigenID:   &siloA.ID,
				LoteID:         loteA.ID,
				CantidadKg:     kgA,
				Fecha:          now,
				UsuarioID:      usuarioID,
				Observacion:    in.Observacion,
			},
			{
				EmpresaID:      empresaID,
				TipoMovimiento: entity.MovimientoMezclaSalida,
				SiloOrigenID:   &siloB.ID,
				LoteID:         loteB.ID,
				CantidadKg:     kgB,
				Fecha:          now,
				UsuarioID:      usuarioID,
				Observacion:    in.Observacion,
			},
		}
		for _, m := range salidas {
			if err := tx.Movimientos.Create(m); err != nil {
				return err
			}
		}
		entrada := &entity.MovimientoInventario{
			EmpresaID:      empresaID,
			TipoMovimiento: entity.MovimientoMezclaEntrada,
			SiloDestinoID:  &in.SiloDestinoID,
			LoteID:         l.ID,
			CantidadKg:     total,
			Fecha:          now,
			UsuarioID:      usuarioID,
			Observacion:    in.Observacion,
		}
		if err := tx.Movimientos.Create(entrada); err != nil {
			return err
		}

		loteA.Descontar(kgA)
		loteB.Descontar(kgB)
		if err := tx.Lotes.Update(loteA); err != nil {
			return err
		}
		if err := tx.Lotes.Update(loteB); err != nil {
			return err
		}

		// Ajuste de niveles: restar en los silos origen, sumar en el destino.
		// Los deltas se consolidan por silo antes de bloquear.
		deltas := map[int64]int64{}
		deltas[siloA.ID] -= kgA
		deltas[siloB.ID] -= kgB
		deltas[in.SiloDestinoID] += total
		if err := aplicarDeltas(tx, empresaID, deltas); err != nil {
			return err
		}
		nuevo = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return nuevo, nil
}

// MapaSilos arma la vista operativa de silos: ocupación, alerta de rebalse y
// lotes activos presentes en cada uno.
func (uc *UseCase) MapaSilos(empresaID int64) ([]dto.SiloMapaDTO, error) {
	silos, err := uc.silos.List(empresaID)
	if err != nil {
		return nil, err
	}
	mapa := make([]dto.SiloMapaDTO, 0, len(silos))
	for _, s := range silos {
		lotes, err := uc.lotes.ListBySilo(empresaID, s.ID)
		if err != nil {
			return nil, err
		}
		celda := dto.SiloMapaDTO{
			ID:                  s.ID,
			Codigo:              s.Codigo,
			Descripcion:         s.Descripcion,
			CapacidadMaxKg:      s.CapacidadMaxKg,
			NivelActualKg:       s.NivelActualKg,
			PorcentajeOcupacion: s.PorcentajeOcupacion(),
			AlertaRebalse:       s.AlertaRebalse(),
			Lotes:               make([]dto.LoteResponse, 0, len(lotes)),
		}
		for _, l := range lotes {
			celda.Lotes = append(celda.Lotes, dto.LoteResponse{
				ID:                l.ID,
				CodigoLote:        l.CodigoLote,
				RecepcionID:       l.RecepcionID,
				CantidadInicialKg: l.CantidadInicialKg,
				CantidadActualKg:  l.CantidadActualKg,
				Estado:            l.Estado,
				SiloActualID:      &s.ID,
				SiloActualCodigo:  s.Codigo,
				FechaCreacion:     l.FechaCreacion,
			})
		}
		mapa = append(mapa, celda)
	}
	return mapa, nil
}

// GetLote devuelve un lote con su silo derivado.
func (uc *UseCase) GetLote(empresaID, loteID int64) (*dto.LoteResponse, error) {
	l, err := uc.lotes.GetByID(empresaID, loteID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	out := &dto.LoteResponse{
		ID:                l.ID,
		CodigoLote:        l.CodigoLote,
		RecepcionID:       l.RecepcionID,
		CantidadInicialKg: l.CantidadInicialKg,
		CantidadActualKg:  l.CantidadActualKg,
		Estado:            l.Estado,
		FechaCreacion:     l.FechaCreacion,
	}
	silo, err := uc.lotes.SiloActual(empresaID, loteID)
	if err != nil {
		return nil, err
	}
	if silo != nil {
		out.SiloActualID = &silo.ID
		out.SiloActualCodigo = silo.Codigo
	}
	return out, nil
}

// ListarLotes devuelve los lotes de la empresa.
func (uc *UseCase) ListarLotes(empresaID int64, soloActivos bool, limit, offset int) ([]*entity.Lote, error) {
	return uc.lotes.List(empresaID, soloActivos, limit, offset)
}

// Kardex devuelve el historial de movimientos de un lote.
func (uc *UseCase) Kardex(empresaID, loteID int64) ([]*entity.MovimientoInventario, error) {
	return uc.movimientos.ListByLote(empresaID, loteID)
}

// Movimientos devuelve el log de inventario de la empresa.
func (uc *UseCase) Movimientos(empresaID int64, from, to *time.Time, limit, offset int) ([]*entity.MovimientoInventario, error) {
	return uc.movimientos.ListByEmpresa(empresaID, from, to, limit, offset)
}

// resolverRecepcion ubica una recepción por ID numérico o por código de ticket
// (normalizado antes de consultar) y devuelve la fila bloqueada.
func resolverRecepcion(tx *repository.Tx, empresaID int64, input string) (*entity.Recepcion, error) {
	limpio := codigos.Normalizar(input)
	if limpio == "" {
		return nil, domain.ErrInvalidInput
	}
	var id int64
	if domwms.EsIDNumerico(limpio) {
		n, err := strconv.ParseInt(limpio, 10, 64)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		id = n
	} else {
		r, err := tx.Recepciones.GetByCodigoTicket(empresaID, limpio)
		if err != nil {
			return nil, err
		}
		if r == nil {
			return nil, domain.ErrNotFound
		}
		id = r.ID
	}
	r, err := tx.Recepciones.GetForUpdate(empresaID, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// bloquearSilos bloquea un conjunto de silos en orden ascendente de id.
func bloquearSilos(tx *repository.Tx, empresaID int64, ids ...int64) (map[int64]*entity.Silo, error) {
	unicos := map[int64]bool{}
	orden := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !unicos[id] {
			unicos[id] = true
			orden = append(orden, id)
		}
	}
	sort.Slice(orden, func(i, j int) bool { return orden[i] < orden[j] })

	out := make(map[int64]*entity.Silo, len(orden))
	for _, id := range orden {
		s, err := tx.Silos.GetForUpdate(empresaID, id)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, domain.ErrNotFound
		}
		out[id] = s
	}
	return out, nil
}

// aplicarDeltas bloquea los silos afectados y aplica los cambios netos de nivel.
func aplicarDeltas(tx *repository.Tx, empresaID int64, deltas map[int64]int64) error {
	ids := make([]int64, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	silos, err := bloquearSilos(tx, empresaID, ids...)
	if err != nil {
		return err
	}
	for id, delta := range deltas {
		s := silos[id]
		if s.NivelActualKg+delta < 0 {
			return domain.ErrInconsistenciaInventario
		}
		s.NivelActualKg += delta
		if err := tx.Silos.Update(s); err != nil {
			return err
		}
	}
	return nil
}
