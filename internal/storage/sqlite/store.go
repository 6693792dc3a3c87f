// Package sqlite stores users and books in a single SQLite file through
// modernc.org/sqlite, for running the service without a Postgres server.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/hongminglow/bookstore-be/internal/models"
	"github.com/hongminglow/bookstore-be/internal/storage"
	"github.com/hongminglow/bookstore-be/internal/storage/migrate"
	"github.com/hongminglow/bookstore-be/internal/storage/sqlite/migrations"
)

var (
	_ storage.UserStore = (*Store)(nil)
	_ storage.BookStore = (*Store)(nil)
)

const (
	userColumns = `id, name, email, password_hash, created_at`
	bookColumns = `id, title, description, author, price, category, user_id, created_at, updated_at`
)

// Store provides SQLite-backed persistence for users and books.
type Store struct {
	db    *sql.DB
	now   func() time.Time
	newID func() string
}

// Open connects to the database at dsn and applies migrations, logging their
// progress to log.
func Open(ctx context.Context, dsn string, log *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := migrate.Up(ctx, db, "sqlite3", migrations.FS, log); err != nil {
		db.Close()
		return nil, err
	}
	return NewWithDB(db), nil
}

// NewWithDB wraps an already migrated database handle.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now, newID: storage.NewID}
}

// Close releases database resources.
func (s *Store) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING ` + userColumns
	row := s.db.QueryRowContext(ctx, query, s.newID(), user.Name, user.Email, user.PasswordHash, s.now().UTC())
	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return scanUser(s.db.QueryRowContext(ctx, query, email))
}

// FindByID fetches a user by identifier.
func (s *Store) FindByID(ctx context.Context, id string) (models.User, error) {
	if !storage.ValidID(id) {
		return models.User{}, storage.ErrInvalidID
	}
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return scanUser(s.db.QueryRowContext(ctx, query, id))
}

// FindBooks returns the page of books selected by filter, oldest first.
func (s *Store) FindBooks(ctx context.Context, filter storage.BookFilter) ([]models.Book, error) {
	const query = `SELECT ` + bookColumns + ` FROM books
		WHERE ? = '' OR instr(lower(title), lower(?)) > 0
		ORDER BY created_at, id
		LIMIT ? OFFSET ?`
	limit := -1
	if filter.Limit > 0 {
		limit = filter.Limit
	}
	rows, err := s.db.QueryContext(ctx, query, filter.TitleContains, filter.TitleContains, limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	out := make([]models.Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		out = append(out, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}
	return out, nil
}

// CreateBook inserts a new book row.
func (s *Store) CreateBook(ctx context.Context, book models.Book) (models.Book, error) {
	const query = `INSERT INTO books (id, title, description, author, price, category, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + bookColumns
	now := s.now().UTC()
	row := s.db.QueryRowContext(ctx, query, s.newID(), book.Title, book.Description, book.Author,
		book.Price, string(book.Category), book.UserID, now, now)
	created, err := scanBook(row)
	if err != nil {
		return models.Book{}, fmt.Errorf("insert book: %w", err)
	}
	return created, nil
}

// FindBookByID fetches a book by identifier.
func (s *Store) FindBookByID(ctx context.Context, id string) (models.Book, error) {
	if !storage.ValidID(id) {
		return models.Book{}, storage.ErrInvalidID
	}
	const query = `SELECT ` + bookColumns + ` FROM books WHERE id = ?`
	return scanBook(s.db.QueryRowContext(ctx, query, id))
}

// UpdateBook overwrites the patched columns and returns the updated row.
func (s *Store) UpdateBook(ctx context.Context, id string, patch storage.BookPatch) (models.Book, error) {
	if !storage.ValidID(id) {
		return models.Book{}, storage.ErrInvalidID
	}
	if patch.Empty() {
		return s.FindBookByID(ctx, id)
	}

	var sets []string
	var args []any
	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Author != nil {
		add("author", *patch.Author)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.Category != nil {
		add("category", string(*patch.Category))
	}
	add("updated_at", s.now().UTC())
	args = append(args, id)

	query := `UPDATE books SET ` + strings.Join(sets, ", ") + ` WHERE id = ? RETURNING ` + bookColumns
	return scanBook(s.db.QueryRowContext(ctx, query, args...))
}

// DeleteBook removes a book row and returns it as it was.
func (s *Store) DeleteBook(ctx context.Context, id string) (models.Book, error) {
	if !storage.ValidID(id) {
		return models.Book{}, storage.ErrInvalidID
	}
	const query = `DELETE FROM books WHERE id = ? RETURNING ` + bookColumns
	return scanBook(s.db.QueryRowContext(ctx, query, id))
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func scanBook(row scanner) (models.Book, error) {
	var book models.Book
	var category string
	if err := row.Scan(&book.ID, &book.Title, &book.Description, &book.Author, &book.Price,
		&category, &book.UserID, &book.CreatedAt, &book.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Book{}, storage.ErrNotFound
		}
		return models.Book{}, err
	}
	book.Category = models.Category(category)
	return book, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
