package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"menuorder/cmd"
	httpin "menuorder/internal/adapters/in/http"
	"menuorder/internal/adapters/in/seed"
	"menuorder/internal/adapters/out/postgres"
	"menuorder/internal/pkg/logging"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load(".env")

	configs, err := cmd.LoadConfig(getEnv("MENUORDER_CONFIG_DIR", "config"), os.Getenv("MENUORDER_ENV"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser, err := logging.New(configs.Log, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, configs, logger); err != nil {
		logger.Error("service stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("service stopped")
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) error {
	gormDB, err := openDB(configs, logger)
	if err != nil {
		return err
	}
	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		defer sqlDB.Close()
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		return fmt.Errorf("composition root: %w", err)
	}
	defer app.Close()

	if configs.Seed.File != "" {
		if err = seedCatalog(ctx, app, configs.Seed.File, logger); err != nil {
			return err
		}
	}

	server := app.CreateHTTPServer()
	e, err := httpin.NewRouter(server, httpin.RouterOptions{
		Metrics:          app.Metrics(),
		Logger:           logger.With(slog.String("component", "http")),
		ValidateRequests: configs.HTTP.ValidateRequests,
	})
	if err != nil {
		return fmt.Errorf("http router: %w", err)
	}
	e.Server.ReadTimeout = configs.HTTP.ReadTimeout
	e.Server.WriteTimeout = configs.HTTP.WriteTimeout
	e.Server.IdleTimeout = configs.HTTP.IdleTimeout

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", configs.HTTP.Addr))
		if startErr := e.Start(configs.HTTP.Addr); !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), configs.HTTP.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down http server")
		return e.Shutdown(shutdownCtx)
	})

	if listener := app.Listener(); listener != nil {
		g.Go(func() error {
			return listener.Run(gctx)
		})
	}

	return g.Wait()
}

func openDB(configs cmd.Config, logger *slog.Logger) (*gorm.DB, error) {
	gormDB, err := postgres.Open(configs.DB.Driver, configs.DB.DSN, logging.Gorm(logger, configs.DB.SlowThreshold))
	if err != nil {
		return nil, err
	}

	if configs.DB.Driver == postgres.DriverPostgres {
		sqlDB, dbErr := gormDB.DB()
		if dbErr != nil {
			return nil, dbErr
		}
		if configs.DB.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(configs.DB.MaxOpenConns)
		}
		if configs.DB.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(configs.DB.MaxIdleConns)
		}
		sqlDB.SetConnMaxLifetime(configs.DB.ConnMaxLifetime)
	}

	return gormDB, nil
}

func seedCatalog(ctx context.Context, app *cmd.CompositionRoot, path string, logger *slog.Logger) error {
	f, err := seed.LoadFile(path)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	written, err := seed.Apply(ctx, app.UnitOfWorkFactory(), f)
	if err != nil {
		return fmt.Errorf("seed %s: %w", path, err)
	}
	logger.Info("catalog seeded",
		slog.String("file", path),
		slog.Int("venues", len(f.Venues)),
		slog.Int("products", written),
	)
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
