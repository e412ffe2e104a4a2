package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/molisur/molino-api/internal/application/auth"
	"github.com/molisur/molino-api/internal/application/catalogo"
	"github.com/molisur/molino-api/internal/application/laboratorio"
	"github.com/molisur/molino-api/internal/application/maquila"
	"github.com/molisur/molino-api/internal/application/produccion"
	"github.com/molisur/molino-api/internal/application/recepcion"
	"github.com/molisur/molino-api/internal/application/wms"
	infrapdf "github.com/molisur/molino-api/internal/infrastructure/pdf"
	"github.com/molisur/molino-api/internal/infrastructure/postgres"
	httpRouter "github.com/molisur/molino-api/internal/interfaces/http"
	"github.com/molisur/molino-api/pkg/config"
	"github.com/molisur/molino-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (lecturas fuera de transacción). Las
	// escrituras multi-tabla pasan por el TxRunner, que arma su propio set
	// de repos ligado a la transacción.
	recepcionRepo := postgres.NewRecepcionRepository(pool)
	pesajeRepo := postgres.NewPesajeRepository(pool)
	laboratorioRepo := postgres.NewLaboratorioRepository(pool)
	loteRepo := postgres.NewLoteRepository(pool)
	siloRepo := postgres.NewSiloRepository(pool)
	bodegaRepo := postgres.NewBodegaRepository(pool)
	movimientoRepo := postgres.NewMovimientoInventarioRepository(pool)
	maquilaRepo := postgres.NewMaquilaRepository(pool)
	tipoTrabajoRepo := postgres.NewMaquilaTipoTrabajoRepository(pool)
	formulaRepo := postgres.NewFormulaRepository(pool)
	ordenRepo := postgres.NewOrdenProduccionRepository(pool)
	rendimientoRepo := postgres.NewRendimientoRepository(pool)
	productoAgriRepo := postgres.NewProductoAgricolaRepository(pool)
	productoTermRepo := postgres.NewProductoTerminadoRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	proveedorRepo := postgres.NewProveedorRepository(pool)
	choferRepo := postgres.NewChoferRepository(pool)
	camionRepo := postgres.NewCamionRepository(pool)
	carroRepo := postgres.NewCarroRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	empresaRepo := postgres.NewEmpresaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(usuarioRepo, empresaRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	recepcionUC := recepcion.NewUseCase(txRunner, recepcionRepo, pesajeRepo)
	laboratorioUC := laboratorio.NewUseCase(txRunner, laboratorioRepo, recepcionRepo)
	wmsUC := wms.NewUseCase(txRunner, siloRepo, loteRepo, movimientoRepo)
	maquilaUC := maquila.NewUseCase(txRunner, maquilaRepo, tipoTrabajoRepo, clienteRepo)
	produccionUC := produccion.NewUseCase(txRunner, formulaRepo, ordenRepo, rendimientoRepo)
	catalogoUC := catalogo.NewUseCase(
		txRunner,
		productoAgriRepo, productoTermRepo,
		clienteRepo, proveedorRepo,
		choferRepo, camionRepo, carroRepo,
		siloRepo, bodegaRepo,
	)

	// PDF: ticket de ingreso interno con código de barras
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	recepcionPDF := recepcion.NewPDFUseCase(recepcionRepo, empresaRepo, laboratorioRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Molino API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		RecepcionUC:   recepcionUC,
		RecepcionPDF:  recepcionPDF,
		LaboratorioUC: laboratorioUC,
		WMSUC:         wmsUC,
		MaquilaUC:     maquilaUC,
		ProduccionUC:  produccionUC,
		CatalogoUC:    catalogoUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
