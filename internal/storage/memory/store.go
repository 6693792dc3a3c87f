// Package memory keeps users and books in process memory. It backs local
// development (STORE_DRIVER=memory) and the handler tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hongminglow/bookstore-be/internal/models"
	"github.com/hongminglow/bookstore-be/internal/storage"
)

var (
	_ storage.UserStore = (*Store)(nil)
	_ storage.BookStore = (*Store)(nil)
)

// Store is a map-backed implementation of both store interfaces. Books are
// returned in insertion order.
type Store struct {
	mu      sync.RWMutex
	users   map[string]models.User
	emails  map[string]string
	books   map[string]models.Book
	order   []string
	nowFunc func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:   make(map[string]models.User),
		emails:  make(map[string]string),
		books:   make(map[string]models.Book),
		nowFunc: time.Now,
	}
}

// Close is a no-op kept for parity with the database-backed stores.
func (s *Store) Close() {}

// CreateUser inserts a user, enforcing email uniqueness.
func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, taken := s.emails[key]; taken {
		return models.User{}, storage.ErrAlreadyExists
	}
	user.ID = storage.NewID()
	user.CreatedAt = s.nowFunc().UTC()
	s.users[user.ID] = user
	s.emails[key] = user.ID
	return user, nil
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.emails[strings.ToLower(email)]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return s.users[id], nil
}

// FindByID fetches a user by identifier.
func (s *Store) FindByID(_ context.Context, id string) (models.User, error) {
	if !storage.ValidID(id) {
		return models.User{}, storage.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

// FindBooks returns the page of books selected by filter.
func (s *Store) FindBooks(_ context.Context, filter storage.BookFilter) ([]models.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(filter.TitleContains)
	out := make([]models.Book, 0)
	skipped := 0
	for _, id := range s.order {
		book := s.books[id]
		if needle != "" && !strings.Contains(strings.ToLower(book.Title), needle) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
		out = append(out, book)
	}
	return out, nil
}

// CreateBook inserts a book and assigns its identifier.
func (s *Store) CreateBook(_ context.Context, book models.Book) (models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc().UTC()
	book.ID = storage.NewID()
	book.CreatedAt = now
	book.UpdatedAt = now
	s.books[book.ID] = book
	s.order = append(s.order, book.ID)
	return book, nil
}

// FindBookByID fetches a book by identifier.
func (s *Store) FindBookByID(_ context.Context, id string) (models.Book, error) {
	if !storage.ValidID(id) {
		return models.Book{}, storage.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	book, ok := s.books[id]
	if !ok {
		return models.Book{}, storage.ErrNotFound
	}
	return book, nil
}

// UpdateBook merges patch into the stored book and returns the result.
func (s *Store) UpdateBook(_ context.Context, id string, patch storage.BookPatch) (models.Book, error) {
	if !storage.ValidID(id) {
		return models.Book{}, storage.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok {
		return models.Book{}, storage.ErrNotFound
	}
	if patch.Empty() {
		return book, nil
	}
	book = patch.Apply(book)
	book.UpdatedAt = s.nowFunc().UTC()
	s.books[id] = book
	return book, nil
}

// DeleteBook removes a book and returns what was stored.
func (s *Store) DeleteBook(_ context.Context, id string) (models.Book, error) {
	if !storage.ValidID(id) {
		return models.Book{}, storage.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	book, ok := s.books[id]
	if !ok {
		return models.Book{}, storage.ErrNotFound
	}
	delete(s.books, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return book, nil
}
