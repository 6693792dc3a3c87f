package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/hongminglow/bookstore-be/internal/storage"
	"github.com/hongminglow/bookstore-be/internal/storage/migrate"
	"github.com/hongminglow/bookstore-be/internal/storage/postgres/migrations"
)

// Ensure Store satisfies both store interfaces at compile time.
var (
	_ storage.UserStore = (*Store)(nil)
	_ storage.BookStore = (*Store)(nil)
)

const uniqueViolation = "23505"

// Store provides Postgres-backed persistence for users and books.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a new Store and runs migrations, logging their progress to log.
func New(ctx context.Context, databaseURL string, log *slog.Logger) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx, log); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context, log *slog.Logger) error {
	return migrate.Up(ctx, stdlib.OpenDBFromPool(s.pool), "pgx", migrations.FS, log)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	return err
}
