package router

import (
	"context"
	"errors"
	"time"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/config"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/handler"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/infra"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/middleware"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/notify"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/repository"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/service"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Integrations holds the optional outbound clients built by the composition
// root. Nil fields disable the matching side effect.
type Integrations struct {
	Mailer  notify.Mailer
	Sheets  *infra.SheetsClient
	Breaker *infra.Breaker
}

// Services is the service layer shared by the HTTP router and the worker pool.
type Services struct {
	Orders       service.OrderService
	Options      service.ProductOptionService
	Settings     service.SettingsService
	Reports      service.ReportService
	Integrations service.IntegrationService
}

// NewServices wires repositories, the notifier and the services.
// Dependency graph: Service ← Repository ← DB; Notifier ← Mailer/Sheets
func NewServices(cfg *config.Config, db *gorm.DB, rdb *redis.Client, ext Integrations) *Services {
	// ── Repositories ─────────────────────────────────────────────────────────
	orderRepo := repository.NewOrderRepository(db)
	optionRepo := repository.NewProductOptionRepository(db)
	settingRepo := repository.NewSettingRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	settingsSvc := service.NewSettingsService(settingRepo, optionRepo)

	// A nil *SheetsClient must not become a non-nil interface.
	var sheetsWriter notify.SheetsWriter
	var sheetsProbe service.SheetsProbe
	if ext.Sheets != nil {
		sheetsWriter = ext.Sheets
		sheetsProbe = ext.Sheets
	}
	notifier := notify.NewNotifier(ext.Mailer, sheetsWriter, settingsSvc, notify.Options{
		BusinessName: cfg.BusinessName,
		AdminEmail:   cfg.AdminEmail,
		AttachPDF:    true,
	})

	return &Services{
		Orders: service.NewOrderService(orderRepo, notifier, service.OrderServiceOptions{
			CompensateOrphans: cfg.CompensateOrphans,
			BusinessName:      cfg.BusinessName,
		}),
		Options:  service.NewProductOptionService(optionRepo),
		Settings: settingsSvc,
		Reports:  service.NewReportService(orderRepo),
		Integrations: service.NewIntegrationService(orderRepo, notifier, sheetsProbe,
			databaseProbe(db),
			redisProbe(rdb),
			emailProbe(cfg, ext.Mailer),
			sheetsProbeCheck(sheetsProbe),
		),
	}
}

func databaseProbe(db *gorm.DB) service.Probe {
	return service.Probe{Name: "database", Run: func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}}
}

func redisProbe(rdb *redis.Client) service.Probe {
	return service.Probe{Name: "redis", Run: func(ctx context.Context) error {
		if rdb == nil {
			return notify.ErrSkipped
		}
		return rdb.Ping(ctx).Err()
	}}
}

// emailProbe only checks that a provider is configured; it sends nothing.
func emailProbe(cfg *config.Config, m notify.Mailer) service.Probe {
	return service.Probe{Name: "email", Run: func(context.Context) error {
		if m == nil {
			return notify.ErrSkipped
		}
		if cfg.EmailFrom == "" && cfg.EmailProvider == "api" {
			return errors.New("EMAIL_FROM no configurado")
		}
		return nil
	}}
}

func sheetsProbeCheck(p service.SheetsProbe) service.Probe {
	return service.Probe{Name: "sheets", Run: func(ctx context.Context) error {
		if p == nil {
			return notify.ErrSkipped
		}
		_, err := p.Title(ctx)
		return err
	}}
}

// New returns a configured Gin engine serving svcs.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, svcs *Services, ext Integrations) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())

	// ── Handlers ─────────────────────────────────────────────────────────────
	ordersH := handler.NewOrdersHandler(svcs.Orders)
	optionsH := handler.NewProductOptionsHandler(svcs.Options)
	settingsH := handler.NewSettingsHandler(svcs.Settings)
	reportsH := handler.NewReportsHandler(svcs.Reports)
	integrationsH := handler.NewIntegrationsHandler(svcs.Integrations)

	var queue handler.SheetsEnqueuer
	if rdb != nil {
		queue = worker.NewDispatcher(rdb)
	}
	webhookH := handler.NewWebhookHandler(cfg.WebhookSecret, queue, svcs.Integrations)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, ext.Breaker))

	api := r.Group("/api")
	{
		api.POST("/orders", middleware.RateLimiter(cfg.PublicRateLimit, time.Minute), ordersH.Submit)
		api.GET("/product-options", optionsH.ListActive)
		api.GET("/form-config", settingsH.GetFormConfig)
		api.GET("/products-colors", settingsH.GetProductColors)

		api.POST("/webhooks/order-created", webhookH.OrderCreated)
	}

	// Admin: any valid session, no roles
	admin := api.Group("/admin", middleware.RequireSession(cfg.JWTSecret, cfg.JWTAudience))
	{
		admin.GET("/orders", ordersH.List)
		admin.GET("/orders/:id", ordersH.Get)
		admin.PATCH("/orders/:id", ordersH.Update)
		admin.DELETE("/orders/:id", ordersH.Delete)
		admin.GET("/orders/:id/pdf", ordersH.PDF)

		admin.GET("/product-options", optionsH.ListAll)
		admin.POST("/product-options", optionsH.Create)
		admin.PUT("/product-options/:id", optionsH.Update)
		admin.DELETE("/product-options/:id", optionsH.Delete)

		admin.GET("/form-config", settingsH.GetFormConfig)
		admin.PUT("/form-config", settingsH.SaveFormConfig)
		admin.GET("/products-colors", settingsH.GetProductColors)
		admin.PUT("/products-colors", settingsH.SaveProductColors)

		admin.GET("/stats", reportsH.Stats)
		admin.GET("/export", reportsH.Export)

		admin.POST("/sheets/test", integrationsH.TestSheets)
		admin.POST("/sheets/export", integrationsH.ExportSheets)
		admin.GET("/integrations/test", integrationsH.Check)
	}

	// Swagger UI, only outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
