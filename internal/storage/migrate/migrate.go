// Package migrate applies embedded goose migrations for the SQL stores.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"

	"github.com/hongminglow/bookstore-be/internal/logging"
)

// goose keeps its base FS, dialect and logger in package globals.
var mu sync.Mutex

// Up applies every migration in fsys to db. Progress goes to log.
func Up(ctx context.Context, db *sql.DB, dialect string, fsys fs.FS, log *slog.Logger) error {
	mu.Lock()
	defer mu.Unlock()

	if log == nil {
		log = slog.Default()
	}
	goose.SetBaseFS(fsys)
	goose.SetLogger(logging.NewPrintfLogger(log.With("component", "migrate", "dialect", dialect)))
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
