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

	httpapi "github.com/aussiebroadwan/ballot/internal/ballot/http"
	"github.com/aussiebroadwan/ballot/internal/ballot/metrics"
	"github.com/aussiebroadwan/ballot/internal/ballot/notify"
	"github.com/aussiebroadwan/ballot/internal/ballot/seed"
	"github.com/aussiebroadwan/ballot/internal/ballot/service"
	"github.com/aussiebroadwan/ballot/internal/ballot/store"
	"github.com/aussiebroadwan/ballot/internal/ballot/store/drivers/memory"
	"github.com/aussiebroadwan/ballot/internal/ballot/store/drivers/sqlite"
	"github.com/aussiebroadwan/ballot/pkg/jwtx"
	"github.com/aussiebroadwan/ballot/pkg/slogx"
)

// BuildVersion is overridden at build time with -ldflags "-X".
var BuildVersion = "v0.1.0"

type Application struct {
	cfg    Config
	logger *slog.Logger

	db         store.Store
	keyManager *jwtx.KeyManager
	metrics    *metrics.Metrics
	publisher  notify.Publisher

	notificationService *service.NotificationService
	proposalService     *service.ProposalService
	voteService         *service.VoteService
	commentService      *service.CommentService
	userService         *service.UserService
	leaderboardService  *service.LeaderboardService
	deadlineService     *service.DeadlineWatchService

	server *http.Server
	router *httpapi.Router
}

// New wires the store, services and HTTP server. Nothing is started until Run.
func New(cfg Config) (*Application, error) {
	return newWithLogger(cfg, slogx.New(slogx.Config{
		Service: "ballot",
		Version: BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	}))
}

func newWithLogger(cfg Config, logger *slog.Logger) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.New(),
	}
	ctx := slogx.WithContext(context.Background(), logger)

	if err := app.initStore(ctx); err != nil {
		return nil, err
	}

	keyManager, err := jwtx.NewEphemeralKeyManager(cfg.Issuer)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize session keys: %w", err)
	}
	app.keyManager = keyManager

	if err := app.initPublisher(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()
	return app, nil
}

// Run serves until SIGINT/SIGTERM or a server error.
func (app *Application) Run() error {
	app.deadlineService.Start()

	app.logger.Info("ballot starting",
		slog.Int("port", app.cfg.Port),
		slog.String("store", app.cfg.StoreDriver),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		_ = app.release()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}
	return nil
}

// Handler exposes the router.
func (app *Application) Handler() http.Handler { return app.router }

// Shutdown drains HTTP, stops the deadline watch and closes the publisher
// and store.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down ballot...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.release(); err != nil {
		return err
	}

	app.logger.Info("ballot stopped")
	return nil
}

// release stops the deadline watch and closes the publisher and store.
func (app *Application) release() error {
	app.deadlineService.Stop()
	if err := app.publisher.Close(); err != nil {
		app.logger.Error("error closing notification publisher", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing store", "error", err)
		return err
	}
	return nil
}

func (app *Application) initStore(ctx context.Context) error {
	switch app.cfg.StoreDriver {
	case DriverMemory:
		app.db = memory.NewStore()
	case DriverSQLite:
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", app.cfg.DatabaseFile)
		db, err := sqlite.NewStore(dsn)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		app.db = db
	}

	if err := app.db.ApplyMigrations(); err != nil {
		_ = app.db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}
	app.logger.Info("store ready", slog.String("driver", app.cfg.StoreDriver))

	if app.cfg.SkipSeed {
		return nil
	}
	fixture, err := seed.Load(app.cfg.SeedFile)
	if err != nil {
		_ = app.db.Close()
		return fmt.Errorf("failed to load seed: %w", err)
	}
	if _, err := seed.Apply(ctx, app.db, fixture, time.Now().UTC()); err != nil {
		_ = app.db.Close()
		return fmt.Errorf("failed to seed store: %w", err)
	}
	return nil
}

func (app *Application) initPublisher(ctx context.Context) error {
	if app.cfg.RedisURL == "" {
		app.publisher = notify.Noop{}
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pub, err := notify.NewRedisStream(ctx, app.cfg.RedisURL, app.cfg.RedisStream)
	if err != nil {
		return fmt.Errorf("failed to connect notification stream: %w", err)
	}
	app.publisher = pub
	app.logger.Info("publishing notifications to redis", slog.String("stream", pub.Stream()))
	return nil
}

func (app *Application) initServices() {
	app.notificationService = &service.NotificationService{
		Store:     app.db,
		Publisher: app.publisher,
		Metrics:   app.metrics,
	}
	app.proposalService = &service.ProposalService{
		Store:         app.db,
		Notifications: app.notificationService,
		Metrics:       app.metrics,
		VotingWindow:  app.cfg.VotingWindow,
	}
	app.voteService = &service.VoteService{
		Store:         app.db,
		Notifications: app.notificationService,
		Metrics:       app.metrics,
	}
	app.commentService = &service.CommentService{Store: app.db, Metrics: app.metrics}
	app.userService = &service.UserService{Store: app.db, Notifications: app.notificationService}
	app.leaderboardService = &service.LeaderboardService{Store: app.db}

	app.deadlineService = service.NewDeadlineWatchService(
		app.db,
		app.notificationService,
		app.logger,
		app.cfg.DeadlineWatchInterval,
		app.cfg.DeadlineSoonWindow,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager,
		app.cfg.Issuer,
		BuildVersion,
		app.db,
		app.metrics,
		app.logger,
	)
	router.SessionTTL = app.cfg.SessionTTL
	router.RateLimits = app.cfg.RateLimits

	router.ProposalService = app.proposalService
	router.VoteService = app.voteService
	router.CommentService = app.commentService
	router.UserService = app.userService
	router.LeaderboardService = app.leaderboardService
	router.NotificationService = app.notificationService
	router.ApplyRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
