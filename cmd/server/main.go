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
	"time"

	"github.com/joho/godotenv"

	"github.com/hongminglow/bookstore-be/internal/config"
	"github.com/hongminglow/bookstore-be/internal/logging"
	"github.com/hongminglow/bookstore-be/internal/server"
	"github.com/hongminglow/bookstore-be/internal/storage"
	"github.com/hongminglow/bookstore-be/internal/storage/memory"
	"github.com/hongminglow/bookstore-be/internal/storage/postgres"
	"github.com/hongminglow/bookstore-be/internal/storage/sqlite"
)

const shutdownTimeout = 15 * time.Second

// store is what every backend provides.
type store interface {
	storage.UserStore
	storage.BookStore
	Close()
}

func main() {
	os.Exit(run())
}

func run() int {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		return 1
	}

	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(log)
	if envErr != nil {
		log.Info("no .env file found; relying on existing environment")
	}

	ctx := context.Background()
	st, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("init store", "driver", cfg.StoreDriver, "error", err)
		return 1
	}
	defer st.Close()

	srv := server.New(cfg, log, st, st)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	log.Info("bookstore backend listening", "addr", cfg.HTTPAddress(), "store", cfg.StoreDriver)
	if err := serve(srv, sigCh, log); err != nil {
		log.Error("http server error", "error", err)
		return 1
	}
	return 0
}

// httpServer is the part of server.Server that serve drives.
type httpServer interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// serve runs srv until it fails or a signal arrives, then shuts it down.
// Server failures are returned, never handled on the serving goroutine.
func serve(srv httpServer, stop <-chan os.Signal, log *slog.Logger) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return postgres.New(ctx, cfg.DatabaseURL, log)
	case config.DriverSQLite:
		return sqlite.Open(ctx, cfg.DatabaseURL, log)
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
