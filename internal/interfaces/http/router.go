package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/molisur/molino-api/internal/application/auth"
	"github.com/molisur/molino-api/internal/application/catalogo"
	"github.com/molisur/molino-api/internal/application/laboratorio"
	"github.com/molisur/molino-api/internal/application/maquila"
	"github.com/molisur/molino-api/internal/application/produccion"
	"github.com/molisur/molino-api/internal/application/recepcion"
	"github.com/molisur/molino-api/internal/application/wms"
	"github.com/molisur/molino-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	RecepcionUC   *recepcion.UseCase
	RecepcionPDF  *recepcion.PDFUseCase
	LaboratorioUC *laboratorio.UseCase
	WMSUC         *wms.UseCase
	MaquilaUC     *maquila.UseCase
	ProduccionUC  *produccion.UseCase
	CatalogoUC    *catalogo.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Recepciones (romana)
	recepciones := protected.Group("/recepciones", RequireRole(entity.RolRomanero))
	recepcionHandler := NewRecepcionHandler(deps.RecepcionUC, deps.RecepcionPDF)
	recepciones.Post("/", recepcionHandler.Crear)
	recepciones.Get("/", recepcionHandler.Listar)
	recepciones.Get("/buscar", recepcionHandler.Buscar)
	recepciones.Get("/verificar-ticket", recepcionHandler.VerificarTicket)
	recepciones.Post("/directa-maquila", recepcionHandler.CrearDirectaMaquila)
	recepciones.Get("/:id", recepcionHandler.GetByID)
	recepciones.Post("/:id/pesajes", recepcionHandler.RegistrarPesaje)
	recepciones.Get("/:id/pesajes", recepcionHandler.Pesajes)
	recepciones.Post("/:id/ticket", recepcionHandler.EmitirTicket)
	recepciones.Get("/:id/ticket/pdf", recepcionHandler.DescargarTicketPDF)
	recepciones.Post("/:id/finalizar", recepcionHandler.Finalizar)

	// Laboratorio
	lab := protected.Group("/laboratorio", RequireRole(entity.RolLaboratorio))
	labHandler := NewLaboratorioHandler(deps.LaboratorioUC)
	lab.Get("/", labHandler.Listar)
	lab.Put("/recepciones/:id", labHandler.RegistrarAnalisis)
	lab.Get("/recepciones/:id", labHandler.GetByRecepcion)

	// WMS (silos y lotes)
	wmsGroup := protected.Group("/wms", RequireRole(entity.RolBodeguero))
	wmsHandler := NewWMSHandler(deps.WMSUC)
	wmsGroup.Post("/lotes", wmsHandler.CrearLote)
	wmsGroup.Get("/lotes", wmsHandler.ListarLotes)
	wmsGroup.Get("/lotes/:id", wmsHandler.GetLote)
	wmsGroup.Get("/lotes/:id/kardex", wmsHandler.Kardex)
	wmsGroup.Post("/trasiego", wmsHandler.Trasiego)
	wmsGroup.Post("/mezclas", wmsHandler.Mezcla)
	wmsGroup.Get("/silos/mapa", wmsHandler.MapaSilos)
	wmsGroup.Get("/movimientos", wmsHandler.Movimientos)

	// Maquila (cuenta corriente de harina)
	maq := protected.Group("/maquila", RequireRole(entity.RolBodeguero, entity.RolRomanero))
	maquilaHandler := NewMaquilaHandler(deps.MaquilaUC)
	maq.Post("/acreditar", maquilaHandler.Acreditar)
	maq.Post("/retiros", maquilaHandler.RegistrarRetiro)
	maq.Post("/ajustes", maquilaHandler.RegistrarAjuste)
	maq.Get("/clientes/:id/saldo", maquilaHandler.Saldo)
	maq.Get("/clientes/:id/cuenta-corriente", maquilaHandler.CuentaCorriente)
	maq.Get("/tipos-trabajo", maquilaHandler.ListarTiposTrabajo)
	maq.Post("/tipos-trabajo", maquilaHandler.CrearTipoTrabajo)
	maq.Put("/tipos-trabajo/:id", maquilaHandler.ActualizarTipoTrabajo)

	// Producción
	prod := protected.Group("/produccion", RequireRole(entity.RolProduccion))
	produccionHandler := NewProduccionHandler(deps.ProduccionUC)
	prod.Post("/formulas", produccionHandler.CrearFormula)
	prod.Get("/formulas", produccionHandler.ListarFormulas)
	prod.Get("/formulas/:id", produccionHandler.GetFormula)
	prod.Put("/formulas/:id", produccionHandler.ActualizarFormula)
	prod.Post("/ordenes", produccionHandler.CrearOrden)
	prod.Get("/ordenes", produccionHandler.ListarOrdenes)
	prod.Get("/ordenes/:id", produccionHandler.GetOrden)
	prod.Post("/ordenes/:id/insumos", produccionHandler.ConsumirInsumo)
	prod.Get("/ordenes/:id/insumos", produccionHandler.Insumos)
	prod.Post("/ordenes/:id/rendimiento", produccionHandler.RegistrarRendimiento)
	prod.Get("/ordenes/:id/rendimiento", produccionHandler.RendimientoDeOrden)
	prod.Get("/rendimientos", produccionHandler.ListarRendimientos)
	prod.Get("/estadisticas", produccionHandler.Estadisticas)

	// Catálogo: lecturas para cualquier usuario autenticado, escrituras admin.
	cat := protected.Group("/catalogo")
	catalogoHandler := NewCatalogoHandler(deps.CatalogoUC)
	cat.Get("/productos-agricolas", catalogoHandler.ListarProductosAgricolas)
	cat.Get("/productos-terminados", catalogoHandler.ListarProductosTerminados)
	cat.Get("/clientes", catalogoHandler.ListarClientes)
	cat.Get("/proveedores", catalogoHandler.ListarProveedores)
	cat.Get("/choferes", catalogoHandler.ListarChoferes)
	cat.Get("/choferes/buscar", catalogoHandler.BuscarChofer)
	cat.Get("/camiones", catalogoHandler.ListarCamiones)
	cat.Get("/camiones/buscar", catalogoHandler.BuscarCamion)
	cat.Get("/carros", catalogoHandler.ListarCarros)
	cat.Get("/carros/buscar", catalogoHandler.BuscarCarro)
	cat.Get("/bodegas", catalogoHandler.ListarBodegas)

	admin := cat.Group("/", RequireRole())
	admin.Post("/productos-agricolas", catalogoHandler.CrearProductoAgricola)
	admin.Delete("/productos-agricolas/:id", catalogoHandler.EliminarProductoAgricola)
	admin.Post("/productos-terminados", catalogoHandler.CrearProductoTerminado)
	admin.Post("/clientes", catalogoHandler.CrearCliente)
	admin.Post("/proveedores", catalogoHandler.CrearProveedor)
	admin.Post("/choferes", catalogoHandler.CrearChofer)
	admin.Post("/camiones", catalogoHandler.CrearCamion)
	admin.Post("/carros", catalogoHandler.CrearCarro)
	admin.Post("/silos", catalogoHandler.CrearSilo)
	admin.Post("/bodegas", catalogoHandler.CrearBodega)
}
