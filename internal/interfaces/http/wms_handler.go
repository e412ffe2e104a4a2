package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/molisur/molino-api/internal/application/dto"
	"github.com/molisur/molino-api/internal/application/wms"
	"github.com/molisur/molino-api/internal/domain/entity"
)

// WMSHandler maneja silos, lotes y movimientos de inventario.
type WMSHandler struct {
	uc *wms.UseCase
}

// NewWMSHandler construye el handler.
func NewWMSHandler(uc *wms.UseCase) *WMSHandler {
	return &WMSHandler{uc: uc}
}

// CrearLote godoc
// @Summary      Crear lote desde recepción con ticket e ingresarlo a silo
// @Tags         wms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearLoteRequest  true  "recepción (id o código de ticket), silo y cantidad opcional"
// @Success      201   {object}  dto.LoteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/wms/lotes [post]
func (h *WMSHandler) CrearLote(c *fiber.Ctx) error {
	var in dto.CrearLoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Recepcion == "" || in.SiloID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "recepcion y silo_id son requeridos"})
	}
	lote, err := h.uc.CrearLoteDesdeRecepcion(c.Context(), GetEmpresaID(c), usuarioIDPtr(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLoteResponse(lote))
}

// Trasiego godoc
// @Summary      Trasladar kg de un lote entre silos
// @Tags         wms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TrasiegoRequest  true  "lote, origen, destino y kg"
// @Success      201   {object}  dto.MovimientoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/wms/trasiego [post]
func (h *WMSHandler) Trasiego(c *fiber.Ctx) error {
	var in dto.TrasiegoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.CantidadKg <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cantidad_kg debe ser positiva"})
	}
	mov, err := h.uc.Trasiego(c.Context(), GetEmpresaID(c), usuarioIDPtr(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovimientoResponse(mov))
}

// Mezcla godoc
// @Summary      Mezclar kg de dos lotes en un silo destino
// @Tags         wms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MezclaRequest  true  "lotes origen con sus kg y silo destino"
// @Success      201   {object}  dto.LoteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/wms/mezclas [post]
func (h *WMSHandler) Mezcla(c *fiber.Ctx) error {
	var in dto.MezclaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.LoteAID <= 0 || in.LoteBID <= 0 || in.SiloDestinoID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lote_a_id, lote_b_id y silo_destino_id son requeridos"})
	}
	if in.CantidadAKg <= 0 || in.CantidadBKg <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cantidad_a_kg y cantidad_b_kg deben ser positivas"})
	}
	lote, err := h.uc.Mezcla(c.Context(), GetEmpresaID(c), usuarioIDPtr(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLoteResponse(lote))
}

// MapaSilos godoc
// @Summary      Mapa de ocupación de silos con alerta de rebalse
// @Tags         wms
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SiloMapaDTO
// @Router       /api/wms/silos/mapa [get]
func (h *WMSHandler) MapaSilos(c *fiber.Ctx) error {
	mapa, err := h.uc.MapaSilos(GetEmpresaID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(mapa)
}

// GetLote godoc
// @Summary      Obtener lote con su silo actual derivado
// @Tags         wms
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del lote"
// @Success      200  {object}  dto.LoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/wms/lotes/{id} [get]
func (h *WMSHandler) GetLote(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	lote, err := h.uc.GetLote(GetEmpresaID(c), int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	if lote == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
	}
	return c.JSON(lote)
}

// ListarLotes godoc
// @Summary      Listar lotes
// @Tags         wms
// @Security     Bearer
// @Produce      json
// @Param        activos  query  bool  false  "Sólo lotes con saldo"
// @Param        limit    query  int   false  "Límite"  default(20)
// @Param        offset   query  int   false  "Offset"  default(0)
// @Success      200  {array}  dto.LoteResponse
// @Router       /api/wms/lotes [get]
func (h *WMSHandler) ListarLotes(c *fiber.Ctx) error {
	soloActivos := c.QueryBool("activos", false)
	limit := clampLimit(c.QueryInt("limit", 20))
	offset := clampOffset(c.QueryInt("offset", 0))
	lotes, err := h.uc.ListarLotes(GetEmpresaID(c), soloActivos, limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.LoteResponse, 0, len(lotes))
	for _, l := range lotes {
		out = append(out, toLoteResponse(l))
	}
	return c.JSON(out)
}

// Kardex godoc
// @Summary      Kardex completo de un lote (movimientos en orden cronológico)
// @Tags         wms
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del lote"
// @Success      200  {array}  dto.MovimientoResponse
// @Router       /api/wms/lotes/{id}/kardex [get]
func (h *WMSHandler) Kardex(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	movs, err := h.uc.Kardex(GetEmpresaID(c), int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.MovimientoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovimientoResponse(m))
	}
	return c.JSON(out)
}

// Movimientos godoc
// @Summary      Movimientos de inventario de la empresa
// @Tags         wms
// @Security     Bearer
// @Produce      json
// @Param        desde   query  string  false  "Fecha desde (YYYY-MM-DD)"
// @Param        hasta   query  string  false  "Fecha hasta (YYYY-MM-DD)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.MovimientoResponse
// @Router       /api/wms/movimientos [get]
func (h *WMSHandler) Movimientos(c *fiber.Ctx) error {
	limit := clampLimit(c.QueryInt("limit", 20))
	offset := clampOffset(c.QueryInt("offset", 0))
	movs, err := h.uc.Movimientos(GetEmpresaID(c), parseFecha(c.Query("desde")), parseFecha(c.Query("hasta")), limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.MovimientoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovimientoResponse(m))
	}
	return c.JSON(out)
}

// ── mapping ───────────────────────────────────────────────────────────────────

func toLoteResponse(l *entity.Lote) *dto.LoteResponse {
	if l == nil {
		return nil
	}
	return &dto.LoteResponse{
		ID:                l.ID,
		CodigoLote:        l.CodigoLote,
		RecepcionID:       l.RecepcionID,
		CantidadInicialKg: l.CantidadInicialKg,
		CantidadActualKg:  l.CantidadActualKg,
		Estado:            l.Estado,
		FechaCreacion:     l.FechaCreacion,
	}
}

func toMovimientoResponse(m *entity.MovimientoInventario) *dto.MovimientoResponse {
	if m == nil {
		return nil
	}
	return &dto.MovimientoResponse{
		ID:             m.ID,
		TipoMovimiento: m.TipoMovimiento,
		SiloOrigenID:   m.SiloOrigenID,
		SiloDestinoID:  m.SiloDestinoID,
		LoteID:         m.LoteID,
		CantidadKg:     m.CantidadKg,
		Fecha:          m.Fecha,
		Observacion:    m.Observacion,
	}
}
