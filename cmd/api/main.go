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

	"github.com/jhoicas/suministros-api/internal/application/auth"
	"github.com/jhoicas/suministros-api/internal/application/inventory"
	"github.com/jhoicas/suministros-api/internal/application/ports"
	"github.com/jhoicas/suministros-api/internal/application/supply"
	"github.com/jhoicas/suministros-api/internal/application/usecase"
	"github.com/jhoicas/suministros-api/internal/domain/repository"
	"github.com/jhoicas/suministros-api/internal/infrastructure/evidence"
	"github.com/jhoicas/suministros-api/internal/infrastructure/memory"
	"github.com/jhoicas/suministros-api/internal/infrastructure/notify"
	"github.com/jhoicas/suministros-api/internal/infrastructure/pdf"
	"github.com/jhoicas/suministros-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/suministros-api/internal/interfaces/http"
	"github.com/jhoicas/suministros-api/pkg/config"
	"github.com/jhoicas/suministros-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// @title                       Suministros API
// @version                     1.0
// @description                 Inventario de activos, compras, solicitudes de suministro, préstamos y devoluciones.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.Store).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: login y rutas protegidas rechazarán todas las peticiones")
	}

	ctx := context.Background()

	var (
		txRunner inventory.TxRunner
		repos    repository.Repositories
	)
	if cfg.App.UseMemoryStore() {
		store := memory.NewStore()
		txRunner, repos = store, store.Repositories()
		log.Warn().Msg("usando almacenamiento en memoria; los datos se pierden al reiniciar")
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migración del esquema")
			}
			log.Info().Msg("esquema aplicado")
		}
		txRunner, repos = postgres.NewTxRunner(pool), postgres.NewRepositories(pool)
	}

	// Notificaciones: siempre al log; webhook opcional.
	notifiers := notify.Multi{notify.NewLogNotifier(log)}
	if cfg.Notify.WebhookURL != "" {
		notifiers = append(notifiers, notify.NewWebhookNotifier(cfg.Notify.WebhookURL, time.Duration(cfg.Notify.TimeoutSeconds)*time.Second))
	}
	var notifier ports.Notifier = notifiers

	if err := os.MkdirAll(cfg.Evidence.Dir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Evidence.Dir).Msg("directorio de evidencias")
	}
	evidenceStore := evidence.NewLocalStore(cfg.Evidence.Dir, cfg.Evidence.MaxWidth, cfg.Evidence.BaseURL)

	instances := inventory.NewInstancePool(log)
	inbound := inventory.NewInboundLedger(txRunner, repos, instances, evidenceStore, log)
	outbound := inventory.NewOutboundLedger(repos, instances, log)
	returnUC := supply.NewReturnUseCase(txRunner, repos, inbound, evidenceStore, notifier, log)
	requestUC := supply.NewRequestUseCase(txRunner, repos, outbound, returnUC, notifier, log)

	authUC := auth.NewAuthUseCase(repos.Users, repos.Organizations, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    12 << 20,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (generar con swag init -g cmd/api/main.go)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Suministros API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Static(cfg.Evidence.BaseURL, cfg.Evidence.Dir)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		OrganizationUC: usecase.NewOrganizationUseCase(repos.Organizations),
		CategoryUC:     usecase.NewCategoryUseCase(repos.Categories, repos.Organizations),
		ItemUC:         inventory.NewItemUseCase(txRunner, repos, log),
		PurchaseUC:     inventory.NewPurchaseUseCase(txRunner, repos, inbound, instances, evidenceStore, log),
		Inbound:        inbound,
		Outbound:       outbound,
		RequestUC:      requestUC,
		ReturnUC:       returnUC,
		ReceiptUC:      supply.NewReceiptUseCase(requestUC, repos, pdf.NewReceiptGenerator()),
		ExportUC:       supply.NewExportUseCase(repos),
		JWTSecret:      cfg.JWT.Secret,
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
