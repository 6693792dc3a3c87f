package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/hongminglow/bookstore-be/internal/models"
	"github.com/hongminglow/bookstore-be/internal/storage"
)

const bookColumns = `id::text, title, description, author, price, category, user_id::text, created_at, updated_at`

// FindBooks returns the page of books selected by filter, oldest first.
func (s *Store) FindBooks(ctx context.Context, filter storage.BookFilter) ([]models.Book, error) {
	const query = `
	SELECT ` + bookColumns + `
	FROM books
	WHERE $1 = '' OR strpos(lower(title), lower($1)) > 0
	ORDER BY created_at, id
	OFFSET $2
	LIMIT $3`
	var limit any
	if filter.Limit > 0 {
		limit = filter.Limit
	}
	rows, err := s.pool.Query(ctx, query, filter.TitleContains, filter.Offset, limit)
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
	const query = `
	INSERT INTO books (id, title, description, author, price, category, user_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + bookColumns
	row := s.pool.QueryRow(ctx, query, storage.NewID(), book.Title, book.Description, book.Author,
		book.Price, string(book.Category), book.UserID)
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
	const query = `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	return scanBook(s.pool.QueryRow(ctx, query, id))
}

// UpdateBook overwrites the patched columns and returns the updated row.
func (s *Store) UpdateBook(ctx context.Context, id string, patch storage.BookPatch) (models.Book, error) {
	if !storage.ValidID(id) {
		return models.Book{}, storage.ErrInvalidID
	}
	if patch.Empty() {
		return s.FindBookByID(ctx, id)
	}

	sets, args := patchAssignments(patch)
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE books SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), bookColumns)
	return scanBook(s.pool.QueryRow(ctx, query, args...))
}

// DeleteBook removes a book row and returns it as it was.
func (s *Store) DeleteBook(ctx context.Context, id string) (models.Book, error) {
	if !storage.ValidID(id) {
		return models.Book{}, storage.ErrInvalidID
	}
	const query = `DELETE FROM books WHERE id = $1 RETURNING ` + bookColumns
	return scanBook(s.pool.QueryRow(ctx, query, id))
}

func patchAssignments(patch storage.BookPatch) ([]string, []any) {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
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
	return sets, args
}

func scanBook(row pgx.Row) (models.Book, error) {
	var book models.Book
	var category string
	if err := row.Scan(&book.ID, &book.Title, &book.Description, &book.Author, &book.Price,
		&category, &book.UserID, &book.CreatedAt, &book.UpdatedAt); err != nil {
		return models.Book{}, notFound(err)
	}
	book.Category = models.Category(category)
	return book, nil
}
