package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/horilla-hris/hris-bulk-go/internal/config"
	"github.com/horilla-hris/hris-bulk-go/internal/domain/bulk"
	"github.com/horilla-hris/hris-bulk-go/internal/domain/selection"
	"github.com/horilla-hris/hris-bulk-go/internal/domain/user"
	"github.com/horilla-hris/hris-bulk-go/internal/fixtures"
	appHTTP "github.com/horilla-hris/hris-bulk-go/internal/handler/http"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/cron"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/database"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/jwt"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/metrics"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/sse"
	"github.com/horilla-hris/hris-bulk-go/internal/repository/memory"
	"github.com/horilla-hris/hris-bulk-go/internal/repository/postgresql"
	"github.com/horilla-hris/hris-bulk-go/internal/repository/sqlite"
	bulkService "github.com/horilla-hris/hris-bulk-go/internal/service/bulk"
	selectionService "github.com/horilla-hris/hris-bulk-go/internal/service/selection"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	if len(os.Args) > 1 && os.Args[1] == "mint-token" {
		if err := mintToken(cfg, os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "mint-token:", err)
			os.Exit(2)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg); err != nil {
		slog.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	var (
		bulkRepo bulk.BulkRepository
		pgDB     *database.DB
	)
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{MaxConns: cfg.Database.MaxConns})
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		pgDB = db
		bulkRepo = postgresql.NewBulkRepository(db)
	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(cfg.Database.SQLitePath)
		if err != nil {
			return fmt.Errorf("open sqlite database: %w", err)
		}
		defer db.Close()
		bulkRepo = sqlite.NewBulkRepository(db)
	}

	selectionRepo, closeSelection, err := openSelectionStore(ctx, cfg, pgDB)
	if err != nil {
		return err
	}
	defer closeSelection()

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("jwt: %w", err)
	}

	registry, err := fixtures.DefaultRegistry()
	if err != nil {
		return fmt.Errorf("entity registry: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewRecorder(reg)
	hub := sse.NewHub()

	bulkSvc := bulkService.NewBulkService(bulkRepo, registry, hub, recorder)
	if pgDB != nil {
		bulkSvc.WithTransactor(postgresql.NewTransactor(pgDB))
	}
	selectionSvc := selectionService.NewSelectionService(selectionRepo, bulkSvc, recorder, cfg.Selection.TTL)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        "hris-bulk",
			Version:        version,
			Env:            cfg.App.Env,
			AllowedOrigins: cfg.App.CORSOrigins,
			LogLevel:       parseLevel(cfg.App.LogLevel),
			Gatherer:       reg,
		},
		JWTService,
		appHTTP.NewLanguageHandler(),
		appHTTP.NewSelectionHandler(selectionSvc),
		appHTTP.NewBulkHandler(bulkSvc),
		appHTTP.NewEventHandler(hub, JWTService),
	)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("purge-idle-selections", cfg.Selection.PurgeInterval, purgeSelections(selectionSvc))
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", slog.String("addr", "http://localhost"+server.Addr),
			slog.String("db_driver", cfg.Database.Driver), slog.String("selection_store", cfg.Selection.Store))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	slog.Info("shutting down")
	return server.Shutdown(shutdownCtx)
}

func openSelectionStore(ctx context.Context, cfg *config.Config, pgDB *database.DB) (selection.SelectionRepository, func(), error) {
	switch cfg.Selection.Store {
	case config.DriverPostgres:
		if err := postgresql.EnsureSelectionSchema(ctx, pgDB); err != nil {
			return nil, nil, fmt.Errorf("selection schema: %w", err)
		}
		return postgresql.NewSelectionRepository(pgDB), func() {}, nil
	case config.DriverSQLite:
		db, err := database.NewSQLiteDB(cfg.Selection.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open selection store: %w", err)
		}
		repo, err := sqlite.NewSelectionRepository(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("selection schema: %w", err)
		}
		return repo, closer(db), nil
	default:
		return memory.NewSelectionRepository(), func() {}, nil
	}
}

func closer(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			slog.Error("close selection store", slog.Any("error", err))
		}
	}
}

func purgeSelections(svc *selectionService.SelectionServiceImpl) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		n, err := svc.PurgeIdle(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			slog.Info("purged idle selections", slog.Int64("count", n))
		}
		return nil
	}
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// mintToken prints an access token for local testing of the bulk endpoints.
func mintToken(cfg *config.Config, args []string) error {
	flags := flag.NewFlagSet("mint-token", flag.ContinueOnError)
	userID := flags.String("user", "local-admin", "user id carried by the token")
	role := flags.String("role", string(user.RoleManager), "owner, manager, employee or pending")
	language := flags.String("lang", "", "preferred language code")
	if err := flags.Parse(args); err != nil {
		return err
	}

	switch user.Role(*role) {
	case user.RoleOwner, user.RoleManager, user.RoleEmployee, user.RolePending:
	default:
		return fmt.Errorf("unknown role %q", *role)
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return err
	}
	token, expiresAt, err := JWTService.GenerateAccessToken(*userID, user.Role(*role), *language)
	if err != nil {
		return err
	}
	fmt.Println(token)
	fmt.Fprintln(os.Stderr, "expires", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
	return nil
}
