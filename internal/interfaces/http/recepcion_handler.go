package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/molisur/molino-api/internal/application/dto"
	"github.com/molisur/molino-api/internal/application/recepcion"
	"github.com/molisur/molino-api/internal/domain/entity"
	"github.com/molisur/molino-api/internal/domain/repository"
)

// RecepcionHandler maneja las peticiones HTTP del módulo de recepción (romana).
type RecepcionHandler struct {
	uc    *recepcion.UseCase
	pdfUC *recepcion.PDFUseCase
}

// NewRecepcionHandler construye el handler.
func NewRecepcionHandler(uc *recepcion.UseCase, pdfUC *recepcion.PDFUseCase) *RecepcionHandler {
	return &RecepcionHandler{uc: uc, pdfUC: pdfUC}
}

// Crear godoc
// @Summary      Abrir recepción
// @Tags         recepciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearRecepcionRequest  true  "Datos de la recepción"
// @Success      201   {object}  dto.RecepcionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/recepciones [post]
func (h *RecepcionHandler) Crear(c *fiber.Ctx) error {
	var in dto.CrearRecepcionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	r, err := h.uc.Crear(c.Context(), GetEmpresaID(c), usuarioIDPtr(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRecepcionResponse(r))
}

// RegistrarPesaje godoc
// @Summary      Registrar pesaje BRUTO o TARA
// @Tags         recepciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la recepción"
// @Param        body  body  dto.RegistrarPesajeRequest  true  "tipo y peso_kg"
// @Success      201   {object}  dto.PesajeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/recepciones/{id}/pesajes [post]
func (h *RecepcionHandler) RegistrarPesaje(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.RegistrarPesajeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	p, err := h.uc.RegistrarPesaje(c.Context(), GetEmpresaID(c), int64(id), usuarioIDPtr(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toPesajeResponse(p))
}

// EmitirTicket godoc
// @Summary      Emitir ticket de ingreso (idempotente)
// @Tags         recepciones
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la recepción"
// @Success      200  {object}  dto.RecepcionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/recepciones/{id}/ticket [post]
func (h *RecepcionHandler) EmitirTicket(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	r, err := h.uc.EmitirTicket(c.Context(), GetEmpresaID(c), int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toRecepcionResponse(r))
}

// Finalizar godoc
// @Summary      Finalizar recepción (salida del camión)
// @Tags         recepciones
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la recepción"
// @Success      200  {object}  dto.RecepcionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/recepciones/{id}/finalizar [post]
func (h *RecepcionHandler) Finalizar(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	r, err := h.uc.Finalizar(c.Context(), GetEmpresaID(c), int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toRecepcionResponse(r))
}

// CrearDirectaMaquila godoc
// @Summary      Recepción maquila directa (pesajes + ticket + crédito en una llamada)
// @Tags         recepciones
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecepcionDirectaRequest  true  "Datos completos"
// @Success      201   {object}  dto.RecepcionResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/recepciones/directa-maquila [post]
func (h *RecepcionHandler) CrearDirectaMaquila(c *fiber.Ctx) error {
	var in dto.RecepcionDirectaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	r, _, err := h.uc.CrearDirectaMaquila(c.Context(), GetEmpresaID(c), usuarioIDPtr(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRecepcionResponse(r))
}

// Buscar godoc
// @Summary      Buscar recepción por ID numérico o código de ticket escaneado
// @Tags         recepciones
// @Security     Bearer
// @Produce      json
// @Param        codigo  query  string  true  "ID o código (ej: R-20260115-42)"
// @Success      200  {object}  dto.RecepcionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recepciones/buscar [get]
func (h *RecepcionHandler) Buscar(c *fiber.Ctx) error {
	codigo := c.Query("codigo")
	if codigo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "codigo es requerido"})
	}
	r, err := h.uc.Buscar(GetEmpresaID(c), codigo)
	if err != nil {
		return respondDomainError(c, err)
	}
	if r == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recepción no encontrada"})
	}
	return c.JSON(toRecepcionResponse(r))
}

// VerificarTicket godoc
// @Summary      Verificar un ticket por código y token impreso
// @Tags         recepciones
// @Security     Bearer
// @Produce      json
// @Param        codigo  query  string  true  "Código de ticket (ej: R-20260115-42)"
// @Param        token   query  string  true  "Token de verificación del documento"
// @Success      200  {object}  dto.RecepcionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recepciones/verificar-ticket [get]
func (h *RecepcionHandler) VerificarTicket(c *fiber.Ctx) error {
	r, err := h.uc.VerificarTicket(GetEmpresaID(c), c.Query("codigo"), c.Query("token"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toRecepcionResponse(r))
}

// GetByID godoc
// @Summary      Obtener recepción por ID
// @Tags         recepciones
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la recepción"
// @Success      200  {object}  dto.RecepcionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recepciones/{id} [get]
func (h *RecepcionHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	r, err := h.uc.GetByID(GetEmpresaID(c), int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	if r == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recepción no encontrada"})
	}
	return c.JSON(toRecepcionResponse(r))
}

// Listar godoc
// @Summary      Listar recepciones con filtros
// @Tags         recepciones
// @Security     Bearer
// @Produce      json
// @Param        estado         query  string  false  "en_proceso | finalizado"
// @Param        tipo           query  string  false  "compra | maquila"
// @Param        sin_lote       query  bool    false  "Solo recepciones con ticket pendientes de lote"
// @Param        sin_acreditar  query  bool    false  "Solo recepciones maquila pendientes de acreditar"
// @Param        limit          query  int     false  "Límite"  default(20)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.RecepcionResponse
// @Router       /api/recepciones [get]
func (h *RecepcionHandler) Listar(c *fiber.Ctx) error {
	f := repository.FiltroRecepciones{
		Estado:       c.Query("estado"),
		Tipo:         c.Query("tipo"),
		SinLote:      c.QueryBool("sin_lote"),
		SinAcreditar: c.QueryBool("sin_acreditar"),
		Limit:        clampLimit(c.QueryInt("limit", 20)),
		Offset:       clampOffset(c.QueryInt("offset", 0)),
	}
	if v := c.QueryInt("proveedor_id", 0); v > 0 {
		id := int64(v)
		f.ProveedorID = &id
	}
	if v := c.QueryInt("cliente_id", 0); v > 0 {
		id := int64(v)
		f.ClienteID = &id
	}
	if desde := parseFecha(c.Query("desde")); desde != nil {
		f.Desde = desde
	}
	if hasta := parseFecha(c.Query("hasta")); hasta != nil {
		f.Hasta = hasta
	}
	rs, err := h.uc.Listar(GetEmpresaID(c), f)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.RecepcionResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, toRecepcionResponse(r))
	}
	return c.JSON(out)
}

// Pesajes godoc
// @Summary      Historial de pesajes de una recepción
// @Tags         recepciones
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la recepción"
// @Success      200  {array}  dto.PesajeResponse
// @Router       /api/recepciones/{id}/pesajes [get]
func (h *RecepcionHandler) Pesajes(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	ps, err := h.uc.Pesajes(GetEmpresaID(c), int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.PesajeResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toPesajeResponse(p))
	}
	return c.JSON(out)
}

// DescargarTicketPDF godoc
// @Summary      Descargar el ticket de ingreso en PDF (con código de barras)
// @Tags         recepciones
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  int  true  "ID de la recepción"
// @Success      200  {file}  binary
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/recepciones/{id}/ticket/pdf [get]
func (h *RecepcionHandler) DescargarTicketPDF(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	pdfBytes, filename, err := h.pdfUC.DescargarTicketPDF(c.Context(), GetEmpresaID(c), int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// ── mapping ───────────────────────────────────────────────────────────────────

func toRecepcionResponse(r *entity.Recepcion) *dto.RecepcionResponse {
	if r == nil {
		return nil
	}
	return &dto.RecepcionResponse{
		ID:                   r.ID,
		EmpresaID:            r.EmpresaID,
		TipoRecepcion:        r.TipoRecepcion,
		Estado:               r.Estado,
		ProveedorID:          r.ProveedorID,
		ClienteID:            r.ClienteID,
		ProductoAgricolaID:   r.ProductoAgricolaID,
		TicketCodigo:         r.TicketCodigo,
		TicketToken:          r.TicketToken,
		PesoBrutoKg:          r.PesoBrutoKg,
		PesoTaraKg:           r.PesoTaraKg,
		PesoNetoFisicoKg:     r.PesoNetoFisicoKg,
		DescuentoHumedadKg:   r.DescuentoHumedadKg,
		DescuentoImpurezasKg: r.DescuentoImpurezasKg,
		PesoNetoPagarKg:      r.PesoNetoPagarKg,
		FechaEntrada:         r.FechaEntrada,
		FechaSalida:          r.FechaSalida,
		Observaciones:        r.Observaciones,
	}
}

func toPesajeResponse(p *entity.Pesaje) *dto.PesajeResponse {
	if p == nil {
		return nil
	}
	return &dto.PesajeResponse{
		ID:          p.ID,
		RecepcionID: p.RecepcionID,
		Tipo:        p.Tipo,
		PesoKg:      p.PesoKg,
		Origen:      p.Origen,
		Fecha:       p.CreatedAt,
	}
}

// ── query helpers ─────────────────────────────────────────────────────────────

func clampLimit(limit int) int {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// parseFecha acepta fechas RFC3339 o YYYY-MM-DD en query params.
func parseFecha(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	return nil
}
