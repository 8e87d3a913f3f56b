package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Adprivat/praxislabor/internal"
	"github.com/Adprivat/praxislabor/internal/auth"
	authPostgres "github.com/Adprivat/praxislabor/internal/auth/postgres"
	"github.com/Adprivat/praxislabor/internal/catalog"
	catalogPostgres "github.com/Adprivat/praxislabor/internal/catalog/postgres"
	"github.com/Adprivat/praxislabor/internal/core/events"
	"github.com/Adprivat/praxislabor/internal/management"
	managementPostgres "github.com/Adprivat/praxislabor/internal/management/postgres"
	"github.com/Adprivat/praxislabor/internal/team"
	teamPostgres "github.com/Adprivat/praxislabor/internal/team/postgres"
	"github.com/Adprivat/praxislabor/internal/timeentry"
	timeentryPostgres "github.com/Adprivat/praxislabor/internal/timeentry/postgres"
	"github.com/Adprivat/praxislabor/internal/transport/rest"
	"github.com/Adprivat/praxislabor/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

func startHTTPServer() {
	logger.Init(os.Getenv("APP_ENV"))
	log := logger.L()

	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	db, gormDB, err := initDB(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize database: %v\n", err)
		os.Exit(1)
	}

	bus := events.NewEventBus(log)

	tokens := &auth.JWTTokenGenerator{
		AccessTokenSecret:  []byte(cfg.Security.AccessTokenSecret),
		RefreshTokenSecret: []byte(cfg.Security.RefreshTokenSecret),
		AccessTokenTTL:     cfg.Security.AccessTokenDuration,
		RefreshTokenTTL:    cfg.Security.RefreshTokenDuration,
	}

	authService := auth.NewService(authPostgres.NewAuthRepository(gormDB), tokens, cfg.Security.BCryptCost, log)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(catalogPostgres.NewCatalogRepository(gormDB), log)
	catalogHandler := catalog.NewHandler(catalogService)

	entryRepo := timeentryPostgres.NewTimeEntryRepository(gormDB)
	entryService := timeentry.NewService(entryRepo, bus, log)
	entryHandler := timeentry.NewHandler(entryService)
	timeentry.RegisterHistoryRecorder(bus, entryRepo, log)

	managementService := management.NewService(managementPostgres.NewManagementRepository(gormDB), log)
	managementHandler := management.NewHandler(managementService)

	teamService := team.NewService(teamPostgres.NewTeamRepository(gormDB), cfg.Security.BCryptCost, log)
	teamHandler := team.NewHandler(teamService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, authHandler, catalogHandler, entryHandler, managementHandler, teamHandler, log)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", "address", addr)
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		log.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error("server shutdown error", "error", err)
		}
		if err := db.Close(); err != nil {
			log.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	log.Info("server stopped")
}

// initDB opens one pgx connection pool and layers gorm on top of it,
// so repositories and the health check share the same pool.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, *gorm.DB, error) {
	db, err := sqlx.Connect("pgx", cfg.Source)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	return db, gormDB, nil
}
