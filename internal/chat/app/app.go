package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/access"
	"github.com/aussiebroadwan/bartabchat/internal/chat/events"
	httpapi "github.com/aussiebroadwan/bartabchat/internal/chat/http"
	"github.com/aussiebroadwan/bartabchat/internal/chat/service"
	"github.com/aussiebroadwan/bartabchat/internal/chat/store"
	"github.com/aussiebroadwan/bartabchat/internal/chat/store/drivers/postgres"
	"github.com/aussiebroadwan/bartabchat/internal/chat/store/drivers/sqlite"
	"github.com/aussiebroadwan/bartabchat/pkg/cryptox"
	"github.com/aussiebroadwan/bartabchat/pkg/httpx"
	"github.com/aussiebroadwan/bartabchat/pkg/jwtx"
	"github.com/aussiebroadwan/bartabchat/pkg/slogx"
)

// BuildVersion is overridden at build time via ldflags.
var BuildVersion = "v0.1.0"

// Application encapsulates the chat service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db        store.Store
	codec     *jwtx.Codec
	publisher events.Publisher

	// Services
	authService         *service.AuthService
	bootstrapService    *service.BootstrapService
	userService         *service.UserService
	roomService         *service.RoomService
	inviteService       *service.InviteService
	rolesService        *service.RolesService
	messageService      *service.MessageService
	housekeepingService *service.HousekeepingService // nil when INVITE_RETENTION is 0

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "chat-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	codec, err := jwtx.NewCodec([]byte(cfg.AppSecret), cfg.TokenAlgorithm, cfg.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}
	app.codec = codec

	if err := app.initDatabase(context.Background()); err != nil {
		return nil, err
	}

	app.initEvents()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the fully wired router.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	if app.housekeepingService != nil {
		app.housekeepingService.Start()
	}

	app.logger.Info("chat service starting",
		slog.Int("port", app.cfg.Port),
		slog.String("version", BuildVersion),
		slog.String("db", app.cfg.DB),
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		// Perform graceful shutdown
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down chat service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	// Shutdown the HTTP server
	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", slog.Any("error", err))
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", slog.Any("error", err))
		}
	}

	// Stop the housekeeping service
	if app.housekeepingService != nil {
		app.housekeepingService.Stop()
	}

	// Flush pending membership events
	if err := app.publisher.Close(); err != nil {
		app.logger.Error("error closing event publisher", slog.Any("error", err))
	}

	// Close database connection
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", slog.Any("error", err))
		return err
	}

	app.logger.Info("chat service stopped")
	return nil
}

// initDatabase opens the configured driver and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DB {
	case DriverPostgres:
		db, err = postgres.NewStore(ctx, postgres.Config{
			URL:      app.cfg.DatabaseURL,
			MaxConns: app.cfg.DBMaxConns,
		})
	default:
		host := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
		db, err = sqlite.NewStore(host)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", slog.String("db", app.cfg.DB))
	return nil
}

// initEvents selects the membership event publisher
func (app *Application) initEvents() {
	if len(app.cfg.KafkaBrokers) == 0 {
		app.publisher = events.Nop{}
		app.logger.Info("membership events disabled (no KAFKA_BROKERS)")
		return
	}

	app.publisher = events.NewKafkaPublisher(app.cfg.KafkaBrokers, app.cfg.KafkaTopic, app.logger)
	app.logger.Info("membership events enabled",
		slog.Any("brokers", app.cfg.KafkaBrokers),
		slog.String("topic", app.cfg.KafkaTopic),
	)
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.authService = &service.AuthService{
		Store:     app.db,
		Tokens:    app.codec,
		AccessTTL: app.cfg.AccessTokenTTL,
	}
	app.bootstrapService = &service.BootstrapService{
		Store:     app.db,
		Tokens:    app.codec,
		AccessTTL: app.cfg.AccessTokenTTL,
		Token:     app.cfg.BootstrapToken,
	}
	app.userService = &service.UserService{Store: app.db}
	app.roomService = &service.RoomService{Store: app.db, Events: app.publisher}
	app.inviteService = &service.InviteService{
		Store:       app.db,
		Events:      app.publisher,
		Validity:    app.cfg.InviteValidity,
		ReuseWindow: app.cfg.InviteReuseWindow,
	}
	app.rolesService = &service.RolesService{Store: app.db, Events: app.publisher}
	app.messageService = &service.MessageService{Store: app.db}

	if app.cfg.InviteRetention > 0 {
		app.housekeepingService = service.NewHousekeepingService(
			app.db,
			app.logger,
			app.cfg.HousekeepingInterval,
			app.cfg.InviteRetention,
		)
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		access.NewResolver(app.codec, app.db.Users()),
		BuildVersion,
		app.db,
		app.logger,
	)
	router.Limits = app.cfg.RateLimits
	router.Use(httpx.CORS(app.cfg.CORSAllowedOrigins))

	// Wire services to router
	router.AuthService = app.authService
	router.BootstrapService = app.bootstrapService
	router.UserService = app.userService
	router.RoomService = app.roomService
	router.InviteService = app.inviteService
	router.RolesService = app.rolesService
	router.MessageService = app.messageService
	router.ApplyRoutes()

	app.router = router

	// Initialize HTTP server
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
