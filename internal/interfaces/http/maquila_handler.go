package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/molisur/molino-api/internal/application/dto"
	"github.com/molisur/molino-api/internal/application/maquila"
	"github.com/molisur/molino-api/internal/domain/entity"
)

// MaquilaHandler maneja la cuenta corriente de harina de clientes maquila.
type MaquilaHandler struct {
	uc *maquila.UseCase
}

// NewMaquilaHandler construye el handler.
func NewMaquilaHandler(uc *maquila.UseCase) *MaquilaHandler {
	return &MaquilaHandler{uc: uc}
}

// Acreditar godoc
// @Summary      Confirmar crédito de harina de una recepción maquila
// @Tags         maquila
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AcreditarHarinaRequest  true  "recepcion_id y tipo_trabajo_id"
// @Success      201   {object}  dto.MaquilaMovimientoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/maquila/acreditar [post]
func (h *MaquilaHandler) Acreditar(c *fiber.Ctx) error {
	var in dto.AcreditarHarinaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.RecepcionID <= 0 || in.TipoTrabajoID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "recepcion_id y tipo_trabajo_id son requeridos"})
	}
	mov, err := h.uc.Acreditar(c.Context(), GetEmpresaID(c), usuarioIDPtr(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMaquilaMovimientoResponse(mov))
}

// RegistrarRetiro godoc
// @Summary      Registrar retiro de harina contra el saldo del cliente
// @Tags         maquila
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RetiroHarinaRequest  true  "cliente, producto y kg"
// @Success      201   {object}  dto.MaquilaMovimientoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/maquila/retiros [post]
func (h *MaquilaHandler) RegistrarRetiro(c *fiber.Ctx) error {
	var in dto.RetiroHarinaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ClienteID <= 0 || !in.Kg.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cliente_id y kg positivo son requeridos"})
	}
	mov, err := h.uc.RegistrarRetiro(c.Context(), GetEmpresaID(c), usuarioIDPtr(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMaquilaMovimientoResponse(mov))
}

// RegistrarAjuste godoc
// @Summary      Registrar ajuste firmado en la cuenta corriente
// @Tags         maquila
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AjusteMaquilaRequest  true  "cliente, kg firmado y observación obligatoria"
// @Success      201   {object}  dto.MaquilaMovimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/maquila/ajustes [post]
func (h *MaquilaHandler) RegistrarAjuste(c *fiber.Ctx) error {
	var in dto.AjusteMaquilaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ClienteID <= 0 || in.Kg.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cliente_id y kg distinto de cero son requeridos"})
	}
	mov, err := h.uc.RegistrarAjuste(c.Context(), GetEmpresaID(c), usuarioIDPtr(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMaquilaMovimientoResponse(mov))
}

// Saldo godoc
// @Summary      Saldo de harina por producto de un cliente
// @Tags         maquila
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del cliente"
// @Success      200  {array}  dto.SaldoHarinaDTO
// @Router       /api/maquila/clientes/{id}/saldo [get]
func (h *MaquilaHandler) Saldo(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	saldos, err := h.uc.Saldo(GetEmpresaID(c), int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]dto.SaldoHarinaDTO, 0, len(saldos))
	for _, s := range saldos {
		out = append(out, dto.SaldoHarinaDTO{
			ProductoHarinaID: s.ProductoHarinaID,
			ProductoNombre:   s.ProductoNombre,
			SaldoKg:          s.SaldoKg,
		})
	}
	return c.JSON(out)
}

// CuentaCorriente godoc
// @Summary      Cuenta corriente del cliente: saldos + movimientos
// @Tags         maquila
// @Security     Bearer
// @Produce      json
// @Param        id      path   int     true   "ID del cliente"
// @Param        desde   query  string  false  "Fecha desde (YYYY-MM-DD)"
// @Param        hasta   query  string  false  "Fecha hasta (YYYY-MM-DD)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.CuentaCorrienteResponse
// @Router       /api/maquila/clientes/{id}/cuenta-corriente [get]
func (h *MaquilaHandler) CuentaCorriente(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	limit := clampLimit(c.QueryInt("limit", 20))
	offset := clampOffset(c.QueryInt("offset", 0))
	out, err := h.uc.CuentaCorriente(GetEmpresaID(c), int64(id), parseFecha(c.Query("desde")), parseFecha(c.Query("hasta")), limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// CrearTipoTrabajo godoc
// @Summary      Crear tipo de trabajo maquila
// @Tags         maquila
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TipoTrabajoRequest  true  "nombre y porcentaje en (0, 100]"
// @Success      201   {object}  dto.TipoTrabajoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/maquila/tipos-trabajo [post]
func (h *MaquilaHandler) CrearTipoTrabajo(c *fiber.Ctx) error {
	var in dto.TipoTrabajoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t, err := h.uc.CrearTipoTrabajo(c.Context(), GetEmpresaID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTipoTrabajoResponse(t))
}

// ActualizarTipoTrabajo godoc
// @Summary      Actualizar tipo de trabajo maquila
// @Tags         maquila
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del tipo de trabajo"
// @Param        body  body  dto.TipoTrabajoRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.TipoTrabajoResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/maquila/tipos-trabajo/{id} [put]
func (h *MaquilaHandler) ActualizarTipoTrabajo(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.TipoTrabajoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	t, err := h.uc.ActualizarTipoTrabajo(c.Context(), GetEmpresaID(c), int64(id), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toTipoTrabajoResponse(t))
}

// ListarTiposTrabajo godoc
// @Summary      Listar tipos de trabajo maquila
// @Tags         maquila
// @Security     Bearer
// @Produce      json
// @Param        activos  query  bool  false  "Sólo activos"
// @Success      200  {array}  dto.TipoTrabajoResponse
// @Router       /api/maquila/tipos-trabajo [get]
func (h *MaquilaHandler) ListarTiposTrabajo(c *fiber.Ctx) error {
	soloActivos := c.QueryBool("activos", false)
	tipos, err := h.uc.ListarTiposTrabajo(GetEmpresaID(c), soloActivos)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.TipoTrabajoResponse, 0, len(tipos))
	for _, t := range tipos {
		out = append(out, toTipoTrabajoResponse(t))
	}
	return c.JSON(out)
}

// ── mapping ───────────────────────────────────────────────────────────────────

func toMaquilaMovimientoResponse(m *entity.MaquilaMovimiento) *dto.MaquilaMovimientoResponse {
	if m == nil {
		return nil
	}
	return &dto.MaquilaMovimientoResponse{
		ID:               m.ID,
		ClienteID:        m.ClienteID,
		ProductoHarinaID: m.ProductoHarinaID,
		RecepcionID:      m.RecepcionID,
		TipoMovimiento:   m.TipoMovimiento,
		Kg:               m.Kg,
		Observacion:      m.Observacion,
		Fecha:            m.CreatedAt,
	}
}

func toTipoTrabajoResponse(t *entity.MaquilaTipoTrabajo) *dto.TipoTrabajoResponse {
	if t == nil {
		return nil
	}
	return &dto.TipoTrabajoResponse{
		ID:               t.ID,
		Nombre:           t.Nombre,
		Porcentaje:       t.Porcentaje,
		ProductoHarinaID: t.ProductoHarinaID,
		Activo:           t.Activo,
		Orden:            t.Orden,
	}
}
