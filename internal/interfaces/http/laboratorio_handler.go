package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/molisur/molino-api/internal/application/dto"
	"github.com/molisur/molino-api/internal/application/laboratorio"
	"github.com/molisur/molino-api/internal/domain/entity"
)

// LaboratorioHandler maneja el análisis de calidad y sus castigos.
type LaboratorioHandler struct {
	uc *laboratorio.UseCase
}

// NewLaboratorioHandler construye el handler.
func NewLaboratorioHandler(uc *laboratorio.UseCase) *LaboratorioHandler {
	return &LaboratorioHandler{uc: uc}
}

// RegistrarAnalisis godoc
// @Summary      Registrar o corregir el análisis de una recepción
// @Tags         laboratorio
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la recepción"
// @Param        body  body  dto.RegistrarAnalisisRequest  true  "Resultados del análisis"
// @Success      200   {object}  dto.AnalisisResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/laboratorio/recepciones/{id} [put]
func (h *LaboratorioHandler) RegistrarAnalisis(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	var in dto.RegistrarAnalisisRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	analisis, recepcion, err := h.uc.RegistrarAnalisis(c.Context(), GetEmpresaID(c), int64(id), usuarioIDPtr(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toAnalisisResponse(analisis, recepcion))
}

// GetByRecepcion godoc
// @Summary      Obtener el análisis de una recepción
// @Tags         laboratorio
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la recepción"
// @Success      200  {object}  dto.AnalisisResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/laboratorio/recepciones/{id} [get]
func (h *LaboratorioHandler) GetByRecepcion(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	analisis, err := h.uc.GetByRecepcion(GetEmpresaID(c), int64(id))
	if err != nil {
		return respondDomainError(c, err)
	}
	if analisis == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la recepción no tiene análisis"})
	}
	return c.JSON(toAnalisisResponse(analisis, nil))
}

// Listar godoc
// @Summary      Listar análisis de la empresa
// @Tags         laboratorio
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.AnalisisResponse
// @Router       /api/laboratorio [get]
func (h *LaboratorioHandler) Listar(c *fiber.Ctx) error {
	limit := clampLimit(c.QueryInt("limit", 20))
	offset := clampOffset(c.QueryInt("offset", 0))
	analisis, err := h.uc.Listar(GetEmpresaID(c), limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.AnalisisResponse, 0, len(analisis))
	for _, a := range analisis {
		out = append(out, toAnalisisResponse(a, nil))
	}
	return c.JSON(out)
}

// toAnalisisResponse arma la respuesta; si viene la recepción incluye los
// castigos recién escritos sobre ella.
func toAnalisisResponse(a *entity.Laboratorio, r *entity.Recepcion) *dto.AnalisisResponse {
	if a == nil {
		return nil
	}
	out := &dto.AnalisisResponse{
		ID:                  a.ID,
		RecepcionID:         a.RecepcionID,
		HumedadPorcentaje:   a.HumedadPorcentaje,
		ImpurezasPorcentaje: a.ImpurezasPorcentaje,
		AprobadoCalidad:     a.AprobadoCalidad,
		FechaAnalisis:       a.FechaAnalisis,
	}
	if r != nil {
		out.DescuentoHumedadKg = r.DescuentoHumedadKg
		out.DescuentoImpurezasKg = r.DescuentoImpurezasKg
		out.PesoNetoPagarKg = r.PesoNetoPagarKg
	}
	return out
}
