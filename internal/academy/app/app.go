package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/prestige-strategies/academy/internal/academy/http"
	"github.com/prestige-strategies/academy/internal/academy/service"
	"github.com/prestige-strategies/academy/internal/academy/store"
	"github.com/prestige-strategies/academy/internal/academy/store/drivers/sqlite"
	"github.com/prestige-strategies/academy/pkg/cryptox"
	"github.com/prestige-strategies/academy/pkg/jwtx"
	"github.com/prestige-strategies/academy/pkg/slogx"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application encapsulates the academy backend with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	keys     *jwtx.KeyRing
	identity service.IdentityVerifier
	metrics  *service.Metrics

	// Services
	tokenService        *service.TokenService
	adminService        *service.AdminService
	studentService      *service.StudentService
	catalogService      *service.CatalogService
	enrollmentService   *service.EnrollmentService
	progressService     *service.ProgressService
	paymentService      *service.PaymentService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "academy-backend",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initKeys(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if err := app.initIdentity(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()

	if app.cfg.AdminEmail != "" {
		err := app.adminService.EnsureAdmin(context.Background(), app.cfg.AdminEmail, app.cfg.AdminPassword, app.cfg.AdminTOTPSecret)
		if err != nil {
			_ = app.db.Close()
			return nil, fmt.Errorf("failed to seed admin: %w", err)
		}
		app.logger.Info("admin account ensured", "email", app.cfg.AdminEmail, "totp", app.cfg.AdminTOTPSecret != "")
	}

	app.initHTTP()

	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("academy backend starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		app.housekeepingService.Stop()
		_ = app.db.Close()
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down academy backend...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("academy backend stopped")
	return nil
}

// Close releases the database without touching the server. It is meant for
// callers that only used Handler.
func (app *Application) Close() error {
	return app.db.Close()
}

func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initKeys() error {
	var (
		keys *jwtx.KeyRing
		err  error
	)
	if app.cfg.SigningKeyFile != "" {
		keys, err = jwtx.LoadOrCreateKeyRing(app.cfg.Issuer, app.cfg.SigningKeyFile)
		if err == nil {
			app.logger.Info("signing key loaded", "path", app.cfg.SigningKeyFile)
		}
	} else {
		keys, err = jwtx.NewEphemeralKeyRing(app.cfg.Issuer)
		if err == nil {
			app.logger.Warn("using an ephemeral signing key; tokens will not survive a restart")
		}
	}
	if err != nil {
		return fmt.Errorf("failed to initialize signing key: %w", err)
	}

	app.keys = keys
	return nil
}

func (app *Application) initIdentity() error {
	if app.cfg.IdentityMode == IdentityDev {
		app.identity = service.DevIdentityVerifier{}
		app.logger.Warn("dev identity mode enabled; student sign-in is not verified")
		return nil
	}

	jwksURL := app.cfg.GoogleJWKSURL
	if jwksURL == "" {
		jwksURL = jwtx.GoogleJWKSURL
	}
	v, err := jwtx.NewIdentityVerifier(jwtx.IdentityVerifierOptions{
		Audience: app.cfg.GoogleClientID,
		JWKSURL:  jwksURL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize identity verifier: %w", err)
	}
	app.identity = v
	return nil
}

func (app *Application) initServices() {
	app.metrics = service.NewMetrics()

	app.tokenService = &service.TokenService{
		Signer: app.keys.Signer,
		Issuer: app.cfg.Issuer,
		TTL:    app.cfg.TokenTTL,
	}

	app.adminService = &service.AdminService{
		Store:   app.db,
		Tokens:  app.tokenService,
		Metrics: app.metrics,
	}
	app.studentService = &service.StudentService{
		Store:    app.db,
		Identity: app.identity,
		Tokens:   app.tokenService,
		Metrics:  app.metrics,
	}
	app.catalogService = &service.CatalogService{Store: app.db}
	app.enrollmentService = &service.EnrollmentService{Store: app.db}
	app.progressService = &service.ProgressService{Store: app.db}
	app.paymentService = &service.PaymentService{
		Store:   app.db,
		Gateway: &service.SimulatedGateway{ConfirmDelay: app.cfg.PaymentConfirmDelay},
		Metrics: app.metrics,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.metrics,
		app.cfg.HousekeepingInterval,
		app.cfg.PaymentMaxPendingAge,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys.KeySet,
		app.keys.Verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.Metrics = app.metrics
	router.AdminService = app.adminService
	router.StudentService = app.studentService
	router.CatalogService = app.catalogService
	router.EnrollmentService = app.enrollmentService
	router.ProgressService = app.progressService
	router.PaymentService = app.paymentService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
