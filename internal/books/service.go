// Package books implements listing search and CRUD on top of a BookStore.
package books

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hongminglow/bookstore-be/internal/models"
	"github.com/hongminglow/bookstore-be/internal/models/dto"
	"github.com/hongminglow/bookstore-be/internal/storage"
)

var (
	// ErrMalformedID is returned for identifiers that cannot name a book.
	ErrMalformedID = errors.New("please enter a correct id")
	// ErrNotFound is returned when a well-formed identifier matches nothing.
	ErrNotFound = errors.New("book not found")
)

// Service owns the book listing operations.
type Service struct {
	store storage.BookStore
}

// NewService constructs the service.
func NewService(store storage.BookStore) *Service {
	return &Service{store: store}
}

// FindAll returns one page of books, optionally narrowed by a title keyword.
func (s *Service) FindAll(ctx context.Context, q Query) ([]models.Book, error) {
	found, err := s.store.FindBooks(ctx, BuildFilter(q))
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}
	if found == nil {
		found = []models.Book{}
	}
	return found, nil
}

// Create stores a new book owned by user.
func (s *Service) Create(ctx context.Context, req dto.CreateBookRequest, user models.User) (models.Book, error) {
	if err := req.Validate(); err != nil {
		return models.Book{}, err
	}
	book := models.Book{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Author:      strings.TrimSpace(req.Author),
		Price:       req.Price,
		Category:    req.Category,
		UserID:      user.ID,
	}
	created, err := s.store.CreateBook(ctx, book)
	if err != nil {
		return models.Book{}, fmt.Errorf("create book: %w", err)
	}
	return created, nil
}

// FindByID returns the book with the given identifier.
func (s *Service) FindByID(ctx context.Context, id string) (models.Book, error) {
	if !storage.ValidID(id) {
		return models.Book{}, ErrMalformedID
	}
	book, err := s.store.FindBookByID(ctx, id)
	if err != nil {
		return models.Book{}, translate("find book", err)
	}
	return book, nil
}

// UpdateByID overwrites the fields present in req and returns the result.
func (s *Service) UpdateByID(ctx context.Context, id string, req dto.UpdateBookRequest) (models.Book, error) {
	if !storage.ValidID(id) {
		return models.Book{}, ErrMalformedID
	}
	if err := req.Validate(); err != nil {
		return models.Book{}, err
	}
	book, err := s.store.UpdateBook(ctx, id, patchFrom(req))
	if err != nil {
		return models.Book{}, translate("update book", err)
	}
	return book, nil
}

// DeleteByID removes the book and returns it as it was before deletion.
func (s *Service) DeleteByID(ctx context.Context, id string) (models.Book, error) {
	if !storage.ValidID(id) {
		return models.Book{}, ErrMalformedID
	}
	book, err := s.store.DeleteBook(ctx, id)
	if err != nil {
		return models.Book{}, translate("delete book", err)
	}
	return book, nil
}

func patchFrom(req dto.UpdateBookRequest) storage.BookPatch {
	return storage.BookPatch{
		Title:       trimmed(req.Title),
		Description: trimmed(req.Description),
		Author:      trimmed(req.Author),
		Price:       req.Price,
		Category:    req.Category,
	}
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	out := strings.TrimSpace(*value)
	return &out
}

func translate(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, storage.ErrInvalidID):
		return ErrMalformedID
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
