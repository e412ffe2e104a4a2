package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/molisur/molino-api/internal/application/catalogo"
	"github.com/molisur/molino-api/internal/application/dto"
	"github.com/molisur/molino-api/internal/domain/entity"
)

// CatalogoHandler maneja los maestros: productos, contrapartes, transporte,
// silos y bodegas.
type CatalogoHandler struct {
	uc *catalogo.UseCase
}

// NewCatalogoHandler construye el handler.
func NewCatalogoHandler(uc *catalogo.UseCase) *CatalogoHandler {
	return &CatalogoHandler{uc: uc}
}

// ── Productos ─────────────────────────────────────────────────────────────────

// CrearProductoAgricola godoc
// @Summary      Crear materia prima
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductoAgricolaRequest  true  "Datos"
// @Success      201   {object}  dto.ProductoAgricolaResponse
// @Router       /api/catalogo/productos-agricolas [post]
func (h *CatalogoHandler) CrearProductoAgricola(c *fiber.Ctx) error {
	var in dto.ProductoAgricolaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
	}
	p, err := h.uc.CrearProductoAgricola(c.Context(), GetEmpresaID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductoAgricolaResponse(p))
}

// ListarProductosAgricolas godoc
// @Summary      Listar materias primas
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductoAgricolaResponse
// @Router       /api/catalogo/productos-agricolas [get]
func (h *CatalogoHandler) ListarProductosAgricolas(c *fiber.Ctx) error {
	ps, err := h.uc.ListarProductosAgricolas(GetEmpresaID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.ProductoAgricolaResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductoAgricolaResponse(p))
	}
	return c.JSON(out)
}

// EliminarProductoAgricola godoc
// @Summary      Eliminar materia prima sin uso
// @Tags         catalogo
// @Security     Bearer
// @Param        id  path  int  true  "ID de la materia prima"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "Referenciada por recepciones o fórmulas"
// @Router       /api/catalogo/productos-agricolas/{id} [delete]
func (h *CatalogoHandler) EliminarProductoAgricola(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id inválido"})
	}
	if err := h.uc.EliminarProductoAgricola(c.Context(), GetEmpresaID(c), int64(id)); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CrearProductoTerminado godoc
// @Summary      Crear producto terminado
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductoTerminadoRequest  true  "Datos"
// @Success      201   {object}  dto.ProductoTerminadoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/catalogo/productos-terminados [post]
func (h *CatalogoHandler) CrearProductoTerminado(c *fiber.Ctx) error {
	var in dto.ProductoTerminadoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Nombre == "" || in.CodigoSKU == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre y codigo_sku son requeridos"})
	}
	p, err := h.uc.CrearProductoTerminado(c.Context(), GetEmpresaID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductoTerminadoResponse(p))
}

// ListarProductosTerminados godoc
// @Summary      Listar productos terminados
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductoTerminadoResponse
// @Router       /api/catalogo/productos-terminados [get]
func (h *CatalogoHandler) ListarProductosTerminados(c *fiber.Ctx) error {
	ps, err := h.uc.ListarProductosTerminados(GetEmpresaID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.ProductoTerminadoResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductoTerminadoResponse(p))
	}
	return c.JSON(out)
}

// ── Clientes y proveedores ────────────────────────────────────────────────────

// CrearCliente godoc
// @Summary      Crear cliente maquila
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClienteRequest  true  "Datos"
// @Success      201   {object}  dto.ClienteResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/catalogo/clientes [post]
func (h *CatalogoHandler) CrearCliente(c *fiber.Ctx) error {
	var in dto.ClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Rut == "" || in.RazonSocial == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rut y razon_social son requeridos"})
	}
	cli, err := h.uc.CrearCliente(c.Context(), GetEmpresaID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toClienteResponse(cli))
}

// ListarClientes godoc
// @Summary      Listar clientes
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.ClienteResponse
// @Router       /api/catalogo/clientes [get]
func (h *CatalogoHandler) ListarClientes(c *fiber.Ctx) error {
	limit := clampLimit(c.QueryInt("limit", 20))
	offset := clampOffset(c.QueryInt("offset", 0))
	cs, err := h.uc.ListarClientes(GetEmpresaID(c), limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.ClienteResponse, 0, len(cs))
	for _, cli := range cs {
		out = append(out, toClienteResponse(cli))
	}
	return c.JSON(out)
}

// CrearProveedor godoc
// @Summary      Crear proveedor
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProveedorRequest  true  "Datos"
// @Success      201   {object}  dto.ProveedorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/catalogo/proveedores [post]
func (h *CatalogoHandler) CrearProveedor(c *fiber.Ctx) error {
	var in dto.ProveedorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Rut == "" || in.RazonSocial == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rut y razon_social son requeridos"})
	}
	p, err := h.uc.CrearProveedor(c.Context(), GetEmpresaID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProveedorResponse(p))
}

// ListarProveedores godoc
// @Summary      Listar proveedores
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.ProveedorResponse
// @Router       /api/catalogo/proveedores [get]
func (h *CatalogoHandler) ListarProveedores(c *fiber.Ctx) error {
	limit := clampLimit(c.QueryInt("limit", 20))
	offset := clampOffset(c.QueryInt("offset", 0))
	ps, err := h.uc.ListarProveedores(GetEmpresaID(c), limit, offset)
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.ProveedorResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProveedorResponse(p))
	}
	return c.JSON(out)
}

// ── Transporte ────────────────────────────────────────────────────────────────

// CrearChofer godoc
// @Summary      Crear chofer (asigna código CH-)
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChoferRequest  true  "Datos"
// @Success      201   {object}  dto.ChoferResponse
// @Router       /api/catalogo/choferes [post]
func (h *CatalogoHandler) CrearChofer(c *fiber.Ctx) error {
	var in dto.ChoferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
	}
	ch, err := h.uc.CrearChofer(c.Context(), GetEmpresaID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toChoferResponse(ch))
}

// ListarChoferes godoc
// @Summary      Listar choferes
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ChoferResponse
// @Router       /api/catalogo/choferes [get]
func (h *CatalogoHandler) ListarChoferes(c *fiber.Ctx) error {
	chs, err := h.uc.ListarChoferes(GetEmpresaID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.ChoferResponse, 0, len(chs))
	for _, ch := range chs {
		out = append(out, toChoferResponse(ch))
	}
	return c.JSON(out)
}

// BuscarChofer godoc
// @Summary      Buscar chofer por código escaneado
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Param        codigo  query  string  true  "Código (ej: CH-1-7)"
// @Success      200  {object}  dto.ChoferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalogo/choferes/buscar [get]
func (h *CatalogoHandler) BuscarChofer(c *fiber.Ctx) error {
	codigo := c.Query("codigo")
	if codigo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "codigo es requerido"})
	}
	ch, err := h.uc.BuscarChofer(GetEmpresaID(c), codigo)
	if err != nil {
		return respondDomainError(c, err)
	}
	if ch == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "chofer no encontrado"})
	}
	return c.JSON(toChoferResponse(ch))
}

// CrearCamion godoc
// @Summary      Crear camión (asigna código CA-)
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CamionRequest  true  "Datos"
// @Success      201   {object}  dto.VehiculoResponse
// @Router       /api/catalogo/camiones [post]
func (h *CatalogoHandler) CrearCamion(c *fiber.Ctx) error {
	var in dto.CamionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Patente == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "patente es requerida"})
	}
	cam, err := h.uc.CrearCamion(c.Context(), GetEmpresaID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCamionResponse(cam))
}

// ListarCamiones godoc
// @Summary      Listar camiones
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.VehiculoResponse
// @Router       /api/catalogo/camiones [get]
func (h *CatalogoHandler) ListarCamiones(c *fiber.Ctx) error {
	cams, err := h.uc.ListarCamiones(GetEmpresaID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.VehiculoResponse, 0, len(cams))
	for _, cam := range cams {
		out = append(out, toCamionResponse(cam))
	}
	return c.JSON(out)
}

// BuscarCamion godoc
// @Summary      Buscar camión por código o patente
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Param        codigo  query  string  true  "Código o patente"
// @Success      200  {object}  dto.VehiculoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalogo/camiones/buscar [get]
func (h *CatalogoHandler) BuscarCamion(c *fiber.Ctx) error {
	codigo := c.Query("codigo")
	if codigo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "codigo es requerido"})
	}
	cam, err := h.uc.BuscarCamion(GetEmpresaID(c), codigo)
	if err != nil {
		return respondDomainError(c, err)
	}
	if cam == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "camión no encontrado"})
	}
	return c.JSON(toCamionResponse(cam))
}

// CrearCarro godoc
// @Summary      Crear carro (asigna código CR-)
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CarroRequest  true  "Datos"
// @Success      201   {object}  dto.VehiculoResponse
// @Router       /api/catalogo/carros [post]
func (h *CatalogoHandler) CrearCarro(c *fiber.Ctx) error {
	var in dto.CarroRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Patente == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "patente es requerida"})
	}
	carro, err := h.uc.CrearCarro(c.Context(), GetEmpresaID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCarroResponse(carro))
}

// ListarCarros godoc
// @Summary      Listar carros
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.VehiculoResponse
// @Router       /api/catalogo/carros [get]
func (h *CatalogoHandler) ListarCarros(c *fiber.Ctx) error {
	carros, err := h.uc.ListarCarros(GetEmpresaID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.VehiculoResponse, 0, len(carros))
	for _, carro := range carros {
		out = append(out, toCarroResponse(carro))
	}
	return c.JSON(out)
}

// BuscarCarro godoc
// @Summary      Buscar carro por código o patente
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Param        codigo  query  string  true  "Código o patente"
// @Success      200  {object}  dto.VehiculoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalogo/carros/buscar [get]
func (h *CatalogoHandler) BuscarCarro(c *fiber.Ctx) error {
	codigo := c.Query("codigo")
	if codigo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "codigo es requerido"})
	}
	carro, err := h.uc.BuscarCarro(GetEmpresaID(c), codigo)
	if err != nil {
		return respondDomainError(c, err)
	}
	if carro == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "carro no encontrado"})
	}
	return c.JSON(toCarroResponse(carro))
}

// ── Silos y bodegas ───────────────────────────────────────────────────────────

// CrearSilo godoc
// @Summary      Crear silo
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearSiloRequest  true  "Datos"
// @Success      201   {object}  dto.SiloResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/catalogo/silos [post]
func (h *CatalogoHandler) CrearSilo(c *fiber.Ctx) error {
	var in dto.CrearSiloRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Codigo == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "codigo es requerido"})
	}
	s, err := h.uc.CrearSilo(c.Context(), GetEmpresaID(c), in.Codigo, in.Descripcion, in.BodegaID, in.CapacidadMaxKg)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSiloResponse(s))
}

// CrearBodega godoc
// @Summary      Crear bodega
// @Tags         catalogo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CrearBodegaRequest  true  "Datos"
// @Success      201   {object}  dto.BodegaResponse
// @Router       /api/catalogo/bodegas [post]
func (h *CatalogoHandler) CrearBodega(c *fiber.Ctx) error {
	var in dto.CrearBodegaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Nombre == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre es requerido"})
	}
	b, err := h.uc.CrearBodega(c.Context(), GetEmpresaID(c), in.Nombre, in.Descripcion, in.SucursalID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBodegaResponse(b))
}

// ListarBodegas godoc
// @Summary      Listar bodegas
// @Tags         catalogo
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BodegaResponse
// @Router       /api/catalogo/bodegas [get]
func (h *CatalogoHandler) ListarBodegas(c *fiber.Ctx) error {
	bs, err := h.uc.ListarBodegas(GetEmpresaID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	out := make([]*dto.BodegaResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBodegaResponse(b))
	}
	return c.JSON(out)
}

// ── mapping ───────────────────────────────────────────────────────────────────

func toProductoAgricolaResponse(p *entity.ProductoAgricola) *dto.ProductoAgricolaResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductoAgricolaResponse{ID: p.ID, Nombre: p.Nombre, Codigo: p.Codigo, Descripcion: p.Descripcion}
}

func toProductoTerminadoResponse(p *entity.ProductoTerminado) *dto.ProductoTerminadoResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductoTerminadoResponse{
		ID:           p.ID,
		Nombre:       p.Nombre,
		CodigoSKU:    p.CodigoSKU,
		Tipo:         p.Tipo,
		UnidadMedida: p.UnidadMedida,
		StockMinimo:  p.StockMinimo,
		StockActual:  p.StockActual,
		Descripcion:  p.Descripcion,
	}
}

func toClienteResponse(c *entity.Cliente) *dto.ClienteResponse {
	if c == nil {
		return nil
	}
	return &dto.ClienteResponse{
		ID:               c.ID,
		Rut:              c.Rut,
		RazonSocial:      c.RazonSocial,
		NombreFantasia:   c.NombreFantasia,
		Telefono:         c.Telefono,
		EmailFacturacion: c.EmailFacturacion,
		Bloqueado:        c.Bloqueado,
	}
}

func toProveedorResponse(p *entity.Proveedor) *dto.ProveedorResponse {
	if p == nil {
		return nil
	}
	return &dto.ProveedorResponse{
		ID:          p.ID,
		Rut:         p.Rut,
		RazonSocial: p.RazonSocial,
		Alias:       p.Alias,
		Telefono:    p.Telefono,
		Email:       p.Email,
	}
}

func toChoferResponse(ch *entity.Chofer) *dto.ChoferResponse {
	if ch == nil {
		return nil
	}
	return &dto.ChoferResponse{
		ID:           ch.ID,
		CodigoChofer: ch.CodigoChofer,
		Nombre:       ch.Nombre,
		Rut:          ch.Rut,
		Telefono:     ch.Telefono,
		Activo:       ch.Activo,
	}
}

func toCamionResponse(cam *entity.Camion) *dto.VehiculoResponse {
	if cam == nil {
		return nil
	}
	return &dto.VehiculoResponse{
		ID:               cam.ID,
		Codigo:           cam.CodigoCamion,
		Patente:          cam.Patente,
		Marca:            cam.Marca,
		Modelo:           cam.Modelo,
		CapacidadCargaKg: cam.CapacidadCargaKg,
		Activo:           cam.Activo,
	}
}

func toCarroResponse(carro *entity.Carro) *dto.VehiculoResponse {
	if carro == nil {
		return nil
	}
	return &dto.VehiculoResponse{
		ID:               carro.ID,
		Codigo:           carro.CodigoCarro,
		Patente:          carro.Patente,
		Marca:            carro.Marca,
		Modelo:           carro.Modelo,
		CapacidadCargaKg: carro.CapacidadCargaKg,
		Activo:           carro.Activo,
	}
}

func toSiloResponse(s *entity.Silo) *dto.SiloResponse {
	if s == nil {
		return nil
	}
	return &dto.SiloResponse{
		ID:                  s.ID,
		Codigo:              s.Codigo,
		Descripcion:         s.Descripcion,
		BodegaID:            s.BodegaID,
		CapacidadMaxKg:      s.CapacidadMaxKg,
		NivelActualKg:       s.NivelActualKg,
		PorcentajeOcupacion: s.PorcentajeOcupacion(),
		AlertaRebalse:       s.AlertaRebalse(),
		Estado:              s.Estado,
	}
}

func toBodegaResponse(b *entity.Bodega) *dto.BodegaResponse {
	if b == nil {
		return nil
	}
	return &dto.BodegaResponse{ID: b.ID, Nombre: b.Nombre, Descripcion: b.Descripcion, SucursalID: b.SucursalID}
}
