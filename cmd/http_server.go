package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ScottHCollier/inntrac-app/internal"
	"github.com/ScottHCollier/inntrac-app/internal/account"
	accountpg "github.com/ScottHCollier/inntrac-app/internal/account/postgres"
	"github.com/ScottHCollier/inntrac-app/internal/auth"
	authpg "github.com/ScottHCollier/inntrac-app/internal/auth/postgres"
	"github.com/ScottHCollier/inntrac-app/internal/core/events"
	emailpg "github.com/ScottHCollier/inntrac-app/internal/email/postgres"
	"github.com/ScottHCollier/inntrac-app/internal/group"
	grouppg "github.com/ScottHCollier/inntrac-app/internal/group/postgres"
	"github.com/ScottHCollier/inntrac-app/internal/schedule"
	schedulepg "github.com/ScottHCollier/inntrac-app/internal/schedule/postgres"
	"github.com/ScottHCollier/inntrac-app/internal/shift"
	shiftpg "github.com/ScottHCollier/inntrac-app/internal/shift/postgres"
	"github.com/ScottHCollier/inntrac-app/internal/site"
	sitepg "github.com/ScottHCollier/inntrac-app/internal/site/postgres"
	"github.com/ScottHCollier/inntrac-app/internal/transport/rest"
	"github.com/ScottHCollier/inntrac-app/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Gorm   *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger

	AuthHandler     *auth.Handler
	AccountHandler  *account.Handler
	SiteHandler     *site.Handler
	GroupHandler    *group.Handler
	ShiftHandler    *shift.Handler
	ScheduleHandler *schedule.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.DB.DB,
		deps.AuthHandler,
		deps.AccountHandler,
		deps.SiteHandler,
		deps.GroupHandler,
		deps.ShiftHandler,
		deps.ScheduleHandler,
		deps.Config.Server.AllowedOrigins,
		deps.Logger,
	)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	log := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	bus := events.NewEventBus(log)

	tokenService := auth.NewJWTTokenService(
		config.Security.JWTSecret,
		config.Security.AccessTokenDuration,
		config.Security.InviteTokenDuration,
	)

	siteRepo := sitepg.NewSiteRepository(gormDB)
	groupRepo := grouppg.NewGroupRepository(gormDB)
	shiftRepo := shiftpg.NewShiftRepository(gormDB)
	scheduleRepo := schedulepg.NewScheduleRepository(gormDB)
	accountRepo := accountpg.NewAccountRepository(gormDB)
	authRepo := authpg.NewUserRepository(gormDB)
	emailRepo := emailpg.NewEmailRepository(gormDB)

	siteService := site.NewService(siteRepo, log)
	groupService := group.NewService(groupRepo, siteRepo, log)
	shiftService := shift.NewService(shiftRepo, log)
	scheduleService := schedule.NewService(scheduleRepo, bus, log)
	authService := auth.NewService(authRepo, tokenService, config.Security.BCryptCost, log)
	accountService := account.NewService(
		accountRepo,
		siteRepo,
		groupRepo,
		shiftRepo,
		emailRepo,
		tokenService,
		config.Server.BaseURL,
		bus,
		log,
	)

	accountEvents := account.NewEventHandler(accountRepo, emailRepo, log)
	accountEvents.RegisterEventHandlers(bus)

	authHandler := auth.NewHandler(authService)

	return &Dependencies{
		Config: config,
		Logger: log,
		DB:     db,
		Gorm:   gormDB,
		Router: chi.NewRouter(),

		AuthHandler:     authHandler,
		AccountHandler:  account.NewHandler(accountService, authService),
		SiteHandler:     site.NewHandler(siteService),
		GroupHandler:    group.NewHandler(groupService),
		ShiftHandler:    shift.NewHandler(shiftService),
		ScheduleHandler: schedule.NewHandler(scheduleService),
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
