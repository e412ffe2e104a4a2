package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/molisur/molino-api/internal/application/dto"
	"github.com/molisur/molino-api/internal/application/produccion"
	"github.com/molisur/molino-api/internal/domain/entity"
)

// ProduccionHandler maneja fórmulas, órdenes de producción y rendimientos.
type ProduccionHandler struct {
	uc *produccion.UseCase
}

// NewProduccionHandler construye el handler.
func NewProduccionHandler(uc *produccion.UseCase) *ProduccionHandler {
	return &ProduccionHandler{uc: uc}
}

// CrearFormula godoc
// @Summary      Crear fórmula de producción
// @Tags         produccion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FormulaRequest  true  "Fórmula con ingredientes"
// @Success      201   {object}  dto.FormulaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/produccion/formulas [post]
func (h *ProduccionHandler) CrearFormula(c *fiber.Ctx) error {
	var in dto.FormulaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
	}
	f, err := h.uc.CrearFormula(c.Context(), GetEmpresaID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toFormulaResponse(f))
}

// ActualizarFormula godoc
// @Summary      Actualizar fórmula (reemplaza ingredientes)
// @Tags         produccion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la fórmula"
// @Param        body  body  dto.FormulaRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.FormulaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/produccion/formulas/{id} [put]
func (h *ProduccionHandler) ActualizarFormula(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.FormulaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	f, err := h.uc.ActualizarFormula(c.Context(), GetEmpresaID(c), int64(id), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toFormulaResponse(f))
}

// GetFormula godoc
// @Summary      Obtener fórmula con ingredientes
// @Tags         produccion
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la fórmula"
// @Success      200  {object}  dto.FormulaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produccion/formulas/{id} [get]
func (h *ProduccionHandler) GetFormula(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	f, err := h.uc.GetFormula(GetEmpresaID(c), int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	if f == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fórmula no encontrada"})
	}
	return c.JSON(toFormulaResponse(f))
}

// ListarFormulas godoc
// @Summary      Listar fórmulas
// @Tags         produccion
// @Security     Bearer
// @Produce      json
// @Param        activas  query  bool  false  "Sólo activas"
// @Success      200  {array}  dto.FormulaResponse
// @Router       /api/produccion/formulas [get]
func (h *ProduccionHandler) ListarFormulas(c *fiber.Ctx) error {
	soloActivas := c.QueryBool("activas", false)
	fs, err := h.uc.ListarFormulas(GetEmpresaID(c), soloActivas)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.FormulaResponse, 0, len(fs))
	for _, f := range fs {
		out = append(out, toFormulaResponse(f))
	}
	return c.JSON(out)
}

// CrearOrden godoc
// @Summary      Crear orden de producción
// @Tags         produccion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearOrdenRequest  true  "Datos de la orden"
// @Success      201   {object}  dto.OrdenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/produccion/ordenes [post]
func (h *ProduccionHandler) CrearOrden(c *fiber.Ctx) error {
	var in dto.CrearOrdenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	o, err := h.uc.CrearOrden(c.Context(), GetEmpresaID(c), usuarioIDPtr(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrdenResponse(o))
}

// ConsumirInsumo godoc
// @Summary      Consumir kg de un lote para una orden
// @Tags         produccion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la orden"
// @Param        body  body  dto.ConsumirInsumoRequest  true  "lote_id y cantidad_kg"
// @Success      201   {object}  dto.InsumoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/produccion/ordenes/{id}/insumos [post]
func (h *ProduccionHandler) ConsumirInsumo(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.ConsumirInsumoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.LoteID <= 0 || in.CantidadKg <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "lote_id y cantidad_kg positiva son requeridos"})
	}
	insumo, err := h.uc.ConsumirInsumo(c.Context(), GetEmpresaID(c), int64(id), usuarioIDPtr(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toInsumoResponse(insumo))
}

// RegistrarRendimiento godoc
// @Summary      Cerrar la orden registrando su rendimiento (una sola vez)
// @Tags         produccion
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la orden"
// @Param        body  body  dto.RegistrarRendimientoRequest  true  "Balance de masa"
// @Success      201   {object}  dto.RendimientoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/produccion/ordenes/{id}/rendimiento [post]
func (h *ProduccionHandler) RegistrarRendimiento(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.RegistrarRendimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.TrigoMolidoKg <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "trigo_molido_kg debe ser positivo"})
	}
	rend, excede, err := h.uc.RegistrarRendimiento(c.Context(), GetEmpresaID(c), int64(id), usuarioIDPtr(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRendimientoResponse(rend, excede))
}

// GetOrden godoc
// @Summary      Obtener orden de producción
// @Tags         produccion
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la orden"
// @Success      200  {object}  dto.OrdenResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produccion/ordenes/{id} [get]
func (h *ProduccionHandler) GetOrden(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	o, err := h.uc.GetOrden(GetEmpresaID(c), int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	if o == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden no encontrada"})
	}
	return c.JSON(toOrdenResponse(o))
}

// ListarOrdenes godoc
// @Summary      Listar órdenes de producción
// @Tags         produccion
// @Security     Bearer
// @Produce      json
// @Param        estado  query  string  false  "planificada | abierta | finalizada"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.OrdenResponse
// @Router       /api/produccion/ordenes [get]
func (h *ProduccionHandler) ListarOrdenes(c *fiber.Ctx) error {
	limit := clampLimit(c.QueryInt("limit", 20))
	offset := clampOffset(c.QueryInt("offset", 0))
	os, err := h.uc.ListarOrdenes(GetEmpresaID(c), c.Query("estado"), limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.OrdenResponse, 0, len(os))
	for _, o := range os {
		out = append(out, toOrdenResponse(o))
	}
	return c.JSON(out)
}

// Insumos godoc
// @Summary      Insumos consumidos por una orden
// @Tags         produccion
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la orden"
// @Success      200  {array}  dto.InsumoResponse
// @Router       /api/produccion/ordenes/{id}/insumos [get]
func (h *ProduccionHandler) Insumos(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	insumos, err := h.uc.Insumos(GetEmpresaID(c), int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.InsumoResponse, 0, len(insumos))
	for _, i := range insumos {
		out = append(out, toInsumoResponse(i))
	}
	return c.JSON(out)
}

// RendimientoDeOrden godoc
// @Summary      Rendimiento registrado de una orden
// @Tags         produccion
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la orden"
// @Success      200  {object}  dto.RendimientoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produccion/ordenes/{id}/rendimiento [get]
func (h *ProduccionHandler) RendimientoDeOrden(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	rend, err := h.uc.RendimientoDeOrden(GetEmpresaID(c), int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	if rend == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la orden no tiene rendimiento registrado"})
	}
	return c.JSON(toRendimientoResponse(rend, false))
}

// ListarRendimientos godoc
// @Summary      Listar rendimientos de la empresa
// @Tags         produccion
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.RendimientoResponse
// @Router       /api/produccion/rendimientos [get]
func (h *ProduccionHandler) ListarRendimientos(c *fiber.Ctx) error {
	limit := clampLimit(c.QueryInt("limit", 20))
	offset := clampOffset(c.QueryInt("offset", 0))
	rends, err := h.uc.ListarRendimientos(GetEmpresaID(c), limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.RendimientoResponse, 0, len(rends))
	for _, r := range rends {
		out = append(out, toRendimientoResponse(r, false))
	}
	return c.JSON(out)
}

// Estadisticas godoc
// @Summary      Resumen de molienda del período
// @Tags         produccion
// @Security     Bearer
// @Produce      json
// @Param        desde  query  string  false  "Fecha inicial (RFC3339 o YYYY-MM-DD)"
// @Param        hasta  query  string  false  "Fecha final (RFC3339 o YYYY-MM-DD)"
// @Success      200  {object}  dto.EstadisticasProduccionResponse
// @Router       /api/produccion/estadisticas [get]
func (h *ProduccionHandler) Estadisticas(c *fiber.Ctx) error {
	e, err := h.uc.Estadisticas(GetEmpresaID(c), parseFecha(c.Query("desde")), parseFecha(c.Query("hasta")))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.EstadisticasProduccionResponse{
		OrdenesCerradas:         e.OrdenesCerradas,
		TrigoMolidoKg:           e.TrigoMolidoKg,
		HarinaTotalKg:           e.HarinaTotalKg,
		SubproductosKg:          e.SubproductosKg,
		MermaKg:                 e.MermaKg,
		PorcentajeExtraccion:    e.PorcentajeExtraccion(),
		OrdenesConMermaExcedida: e.OrdenesConMermaExcedida,
	})
}

// ── mapping ───────────────────────────────────────────────────────────────────

func toFormulaResponse(f *entity.Formula) *dto.FormulaResponse {
	if f == nil {
		return nil
	}
	ingredientes := make([]dto.FormulaIngredienteDTO, 0, len(f.Ingredientes))
	for _, ing := range f.Ingredientes {
		ingredientes = append(ingredientes, dto.FormulaIngredienteDTO{
			ID:                    ing.ID,
			ProductoAgricolaID:    ing.ProductoAgricolaID,
			ProporcionKgPorUnidad: ing.ProporcionKgPorUnidad,
		})
	}
	return &dto.FormulaResponse{
		ID:                  f.ID,
		Nombre:              f.Nombre,
		Descripcion:         f.Descripcion,
		ProductoTerminadoID: f.ProductoTerminadoID,
		MermaTolerablePct:   f.MermaTolerablePct,
		Activa:              f.Activa,
		Ingredientes:        ingredientes,
	}
}

func toOrdenResponse(o *entity.OrdenProduccion) *dto.OrdenResponse {
	if o == nil {
		return nil
	}
	return &dto.OrdenResponse{
		ID:                 o.ID,
		NumeroOP:           o.NumeroOP,
		ProductoObjetivoID: o.ProductoObjetivoID,
		FormulaID:          o.FormulaID,
		CantidadObjetivo:   o.CantidadObjetivo,
		Estado:             o.Estado,
		FechaPlanificada:   o.FechaPlanificada,
		FechaInicioReal:    o.FechaInicioReal,
		FechaFinReal:       o.FechaFinReal,
		CreatedAt:          o.CreatedAt,
	}
}

func toInsumoResponse(i *entity.OrdenProduccionInsumo) *dto.InsumoResponse {
	if i == nil {
		return nil
	}
	return &dto.InsumoResponse{
		ID:                  i.ID,
		OrdenProduccionID:   i.OrdenProduccionID,
		LoteID:              i.LoteID,
		CantidadUtilizadaKg: i.CantidadUtilizadaKg,
	}
}

func toRendimientoResponse(r *entity.Rendimiento, excedeMerma bool) *dto.RendimientoResponse {
	if r == nil {
		return nil
	}
	subproductos := make([]dto.SubproductoDTO, 0, len(r.Subproductos))
	for _, sp := range r.Subproductos {
		subproductos = append(subproductos, dto.SubproductoDTO{
			Nombre:     sp.Nombre,
			CantidadKg: sp.CantidadKg,
		})
	}
	return &dto.RendimientoResponse{
		ID:                   r.ID,
		OrdenProduccionID:    r.OrdenProduccionID,
		TrigoMolidoKg:        r.TrigoMolidoKg,
		HarinaTotalKg:        r.HarinaTotalKg,
		Subproductos:         subproductos,
		MermaKg:              r.MermaKg(),
		PorcentajeExtraccion: r.PorcentajeExtraccion(),
		ExcedeMermaTolerable: excedeMerma,
		FechaRegistro:        r.FechaRegistro,
	}
}
