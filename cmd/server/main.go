package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/costview/backend/internal/application/billing"
	"github.com/costview/backend/internal/application/currency"
	identityapp "github.com/costview/backend/internal/application/identity"
	tagapp "github.com/costview/backend/internal/application/tag"
	domain "github.com/costview/backend/internal/domain/billing"
	"github.com/costview/backend/internal/domain/identity"
	"github.com/costview/backend/internal/infrastructure/auth"
	"github.com/costview/backend/internal/infrastructure/config"
	"github.com/costview/backend/internal/infrastructure/extsource/cloudbilling"
	"github.com/costview/backend/internal/infrastructure/extsource/suite"
	"github.com/costview/backend/internal/infrastructure/logger"
	"github.com/costview/backend/internal/infrastructure/persistence"
	"github.com/costview/backend/internal/infrastructure/telemetry"
	"github.com/costview/backend/internal/interfaces/http/handler"
	"github.com/costview/backend/internal/interfaces/http/middleware"
	"github.com/costview/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() { _ = log.Sync() }()

	log.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.App.Name,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("tracer provider setup failed", zap.Error(err))
	}
	defer func() { _ = tracerProvider.Shutdown(context.Background()) }()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if err := db.Migrate(); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled: cfg.Telemetry.Enabled,
		DBName:  cfg.Database.DBName,
	}, log); err != nil {
		log.Fatal("database tracing setup failed", zap.Error(err))
	}

	userRepo := persistence.NewGormUserRepository(db.DB)
	tagRepo := persistence.NewGormTagRepository(db.DB)
	invoiceTagRepo := persistence.NewGormInvoiceTagRepository(db.DB)

	if err := seedAdmin(userRepo, log); err != nil {
		log.Fatal("seeding admin user failed", zap.Error(err))
	}

	adapters := billingapp.AdapterRegistry{
		domain.SourceSuite: suite.NewClient(suite.Config{
			URL:      cfg.Suite.URL,
			Username: cfg.Suite.Username,
			Password: cfg.Suite.Password,
		}, log),
		domain.SourceCloudBilling: cloudbilling.NewClient(cloudbilling.Config{
			URL:          cfg.CloudBilling.URL,
			AccessID:     cfg.CloudBilling.AccessID,
			APIKey:       cfg.CloudBilling.APIKey,
			Subscription: cfg.CloudBilling.Subscription,
		}, log),
	}
	converter := currency.NewService(currency.Config{
		URL:    cfg.Currency.URL,
		APIKey: cfg.Currency.APIKey,
	}, log)

	tagService := tagapp.NewTagService(tagRepo, invoiceTagRepo, log)
	invoiceTagService := tagapp.NewInvoiceTagService(tagRepo, invoiceTagRepo, log)
	billingService := billingapp.NewBillingService(adapters, converter, invoiceTagService, log)
	invoiceService := billingapp.NewInvoiceService(adapters, converter, invoiceTagService, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	userService := identityapp.NewUserService(userRepo, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.Tracing(middleware.TracingConfig{
			ServiceName: cfg.App.Name,
			Enabled:     cfg.Telemetry.Enabled,
		}),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.JWTAuth(jwtService),
		middleware.TraceAttributes(),
	)

	router.NewRouter(engine).
		Register(handler.NewHealthHandler(db)).
		Register(handler.NewAuthHandler(authService)).
		Register(handler.NewBillingHandler(billingService)).
		Register(handler.NewInvoiceHandler(invoiceService)).
		Register(handler.NewTagHandler(tagService)).
		Register(handler.NewInvoiceTagHandler(invoiceTagService)).
		Register(adminRoutes{users: userService}).
		Setup()

	srv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: engine,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()
	log.Info("listening", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server exited gracefully")
}

// adminRoutes mounts user administration behind the admin role gate.
type adminRoutes struct {
	users *identityapp.UserService
}

func (a adminRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("", middleware.RequireAdmin())
	handler.NewUserHandler(a.users).RegisterRoutes(admin)
}

// seedAdmin creates the initial admin account on an empty user table so the
// API is reachable after first boot. The password must be changed afterwards.
func seedAdmin(users identity.UserRepository, log *zap.Logger) error {
	ctx := context.Background()
	existing, err := users.FindAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	password := os.Getenv("COSTVIEW_ADMIN_PASSWORD")
	if password == "" {
		password = "change-me-now"
	}
	admin, err := identity.NewUser("admin", password, identity.RoleAdmin)
	if err != nil {
		return err
	}
	if err := users.Save(ctx, admin); err != nil {
		return err
	}
	log.Warn("seeded initial admin user", zap.String("username", admin.Username))
	return nil
}
