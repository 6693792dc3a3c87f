package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/hongminglow/bookstore-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrInvalidID indicates an identifier that can never match a record.
var ErrInvalidID = errors.New("invalid record id")

// UserStore captures persistence operations needed for accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id string) (models.User, error)
}

// BookStore captures persistence operations needed for listings.
type BookStore interface {
	FindBooks(ctx context.Context, filter BookFilter) ([]models.Book, error)
	CreateBook(ctx context.Context, book models.Book) (models.Book, error)
	FindBookByID(ctx context.Context, id string) (models.Book, error)
	UpdateBook(ctx context.Context, id string, patch BookPatch) (models.Book, error)
	DeleteBook(ctx context.Context, id string) (models.Book, error)
}

// BookFilter selects a page of books. An empty TitleContains matches every
// book; a zero Limit means no limit.
type BookFilter struct {
	TitleContains string
	Offset        int
	Limit         int
}

// BookPatch lists the fields to overwrite. It never carries the owner.
type BookPatch struct {
	Title       *string
	Description *string
	Author      *string
	Price       *float64
	Category    *models.Category
}

// Empty reports whether the patch changes nothing.
func (p BookPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Author == nil && p.Price == nil && p.Category == nil
}

// Apply returns book with every set field of p copied over it.
func (p BookPatch) Apply(book models.Book) models.Book {
	if p.Title != nil {
		book.Title = *p.Title
	}
	if p.Description != nil {
		book.Description = *p.Description
	}
	if p.Author != nil {
		book.Author = *p.Author
	}
	if p.Price != nil {
		book.Price = *p.Price
	}
	if p.Category != nil {
		book.Category = *p.Category
	}
	return book
}

// ValidID reports whether id is well-formed for every backend.
func ValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// NewID returns a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}
