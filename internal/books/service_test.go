package books

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/bookstore-be/internal/models"
	"github.com/hongminglow/bookstore-be/internal/models/dto"
	"github.com/hongminglow/bookstore-be/internal/storage"
	"github.com/hongminglow/bookstore-be/internal/storage/memory"
)

const (
	mockBookID = "65fa925c-0e78-4f58-a2fc-e8db00000001"
	mockUserID = "65fa5c22-04b3-40b8-a76a-909000000001"
)

var mockBook = models.Book{
	ID:          mockBookID,
	Title:       "Book",
	Description: "Book description",
	Author:      "Author",
	Price:       100,
	Category:    models.CategoryFantasy,
	UserID:      mockUserID,
}

var mockUser = models.User{ID: mockUserID, Name: "Aulia", Email: "aulia@gmail.com"}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// fakeBookStore records every call and returns canned results.
type fakeBookStore struct {
	calls []string

	findFilter storage.BookFilter
	findOut    []models.Book
	findErr    error

	createIn  models.Book
	createErr error

	byIDOut models.Book
	byIDErr error

	updateID    string
	updatePatch storage.BookPatch
	updateOut   models.Book
	updateErr   error

	deleteOut models.Book
	deleteErr error
}

func (f *fakeBookStore) FindBooks(_ context.Context, filter storage.BookFilter) ([]models.Book, error) {
	f.calls = append(f.calls, "FindBooks")
	f.findFilter = filter
	return f.findOut, f.findErr
}

func (f *fakeBookStore) CreateBook(_ context.Context, book models.Book) (models.Book, error) {
	f.calls = append(f.calls, "CreateBook")
	f.createIn = book
	if f.createErr != nil {
		return models.Book{}, f.createErr
	}
	book.ID = mockBookID
	return book, nil
}

func (f *fakeBookStore) FindBookByID(_ context.Context, id string) (models.Book, error) {
	f.calls = append(f.calls, "FindBookByID:"+id)
	return f.byIDOut, f.byIDErr
}

func (f *fakeBookStore) UpdateBook(_ context.Context, id string, patch storage.BookPatch) (models.Book, error) {
	f.calls = append(f.calls, "UpdateBook:"+id)
	f.updateID = id
	f.updatePatch = patch
	return f.updateOut, f.updateErr
}

func (f *fakeBookStore) DeleteBook(_ context.Context, id string) (models.Book, error) {
	f.calls = append(f.calls, "DeleteBook:"+id)
	return f.deleteOut, f.deleteErr
}

func TestFindAll_KeywordAndFirstPage(t *testing.T) {
	store := &fakeBookStore{findOut: []models.Book{mockBook}}
	svc := NewService(store)

	got, err := svc.FindAll(context.Background(), Query{Page: "1", Keyword: "test"})
	require.NoError(t, err)

	assert.Equal(t, storage.BookFilter{TitleContains: "test", Offset: 0, Limit: 2}, store.findFilter)
	assert.Equal(t, []models.Book{mockBook}, got)
}

func TestFindAll_NilResultBecomesEmpty(t *testing.T) {
	svc := NewService(&fakeBookStore{})

	got, err := svc.FindAll(context.Background(), Query{})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFindAll_StoreError(t *testing.T) {
	svc := NewService(&fakeBookStore{findErr: errBoom{}})

	_, err := svc.FindAll(context.Background(), Query{})
	require.ErrorIs(t, err, errBoom{})
	assert.EqualError(t, err, "find books: boom")
}

func TestCreate_StampsOwner(t *testing.T) {
	store := &fakeBookStore{}
	svc := NewService(store)

	req := dto.CreateBookRequest{
		Title:       "Book",
		Description: "Book description",
		Author:      "Author",
		Price:       100,
		Category:    models.CategoryFantasy,
	}
	got, err := svc.Create(context.Background(), req, mockUser)
	require.NoError(t, err)

	assert.Equal(t, mockBook, got)
	assert.Equal(t, mockUserID, store.createIn.UserID)
}

func TestCreate_RejectsInvalidPayload(t *testing.T) {
	store := &fakeBookStore{}
	svc := NewService(store)

	_, err := svc.Create(context.Background(), dto.CreateBookRequest{Title: "Book", Category: "Poetry"}, mockUser)
	require.ErrorIs(t, err, dto.ErrValidation)
	assert.Empty(t, store.calls)
}

func TestFindByID(t *testing.T) {
	store := &fakeBookStore{byIDOut: mockBook}
	svc := NewService(store)

	got, err := svc.FindByID(context.Background(), mockBookID)
	require.NoError(t, err)
	assert.Equal(t, mockBook, got)
	assert.Equal(t, []string{"FindBookByID:" + mockBookID}, store.calls)
}

func TestFindByID_MalformedIDNeverReachesStore(t *testing.T) {
	store := &fakeBookStore{byIDOut: mockBook}
	svc := NewService(store)

	_, err := svc.FindByID(context.Background(), "invalid-id")
	require.ErrorIs(t, err, ErrMalformedID)
	assert.Empty(t, store.calls)
}

func TestFindByID_NotFound(t *testing.T) {
	svc := NewService(&fakeBookStore{byIDErr: storage.ErrNotFound})

	_, err := svc.FindByID(context.Background(), mockBookID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFindByID_StoreError(t *testing.T) {
	svc := NewService(&fakeBookStore{byIDErr: errBoom{}})

	_, err := svc.FindByID(context.Background(), mockBookID)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.ErrorIs(t, err, errBoom{})
}

func TestUpdateByID(t *testing.T) {
	updated := mockBook
	updated.Title = "Updated name"
	store := &fakeBookStore{updateOut: updated}
	svc := NewService(store)

	title := "Updated name"
	got, err := svc.UpdateByID(context.Background(), mockBookID, dto.UpdateBookRequest{Title: &title})
	require.NoError(t, err)

	assert.Equal(t, "Updated name", got.Title)
	assert.Equal(t, mockBookID, store.updateID)
	require.NotNil(t, store.updatePatch.Title)
	assert.Equal(t, "Updated name", *store.updatePatch.Title)
	assert.Nil(t, store.updatePatch.Author)
	assert.Nil(t, store.updatePatch.Price)
}

func TestUpdateByID_FailureModes(t *testing.T) {
	title := "X"
	negative := -1.0

	tests := []struct {
		name      string
		id        string
		req       dto.UpdateBookRequest
		storeErr  error
		wantErr   error
		wantCalls int
	}{
		{"malformed id", "invalid-id", dto.UpdateBookRequest{Title: &title}, nil, ErrMalformedID, 0},
		{"not found", mockBookID, dto.UpdateBookRequest{Title: &title}, storage.ErrNotFound, ErrNotFound, 1},
		{"negative price", mockBookID, dto.UpdateBookRequest{Price: &negative}, nil, dto.ErrValidation, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeBookStore{updateErr: tc.storeErr}
			svc := NewService(store)

			_, err := svc.UpdateByID(context.Background(), tc.id, tc.req)
			require.ErrorIs(t, err, tc.wantErr)
			assert.Len(t, store.calls, tc.wantCalls)
		})
	}
}

func TestDeleteByID(t *testing.T) {
	store := &fakeBookStore{deleteOut: mockBook}
	svc := NewService(store)

	got, err := svc.DeleteByID(context.Background(), mockBookID)
	require.NoError(t, err)
	assert.Equal(t, mockBook, got)
	assert.Equal(t, []string{"DeleteBook:" + mockBookID}, store.calls)
}

func TestDeleteByID_FailureModes(t *testing.T) {
	store := &fakeBookStore{deleteErr: storage.ErrNotFound}
	svc := NewService(store)

	_, err := svc.DeleteByID(context.Background(), "invalid-id")
	require.ErrorIs(t, err, ErrMalformedID)
	assert.Empty(t, store.calls)

	_, err = svc.DeleteByID(context.Background(), mockBookID)
	require.ErrorIs(t, err, ErrNotFound)
}

// TestServiceWithMemoryStore walks a book through its whole lifecycle.
func TestServiceWithMemoryStore(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())

	created, err := svc.Create(ctx, dto.CreateBookRequest{
		Title:       "The Hobbit",
		Description: "There and back again",
		Author:      "Tolkien",
		Price:       12.5,
		Category:    models.CategoryAdventure,
	}, mockUser)
	require.NoError(t, err)
	require.True(t, storage.ValidID(created.ID))

	found, err := svc.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)
	assert.Equal(t, mockUserID, found.UserID)

	title := "The Hobbit, Revised"
	updated, err := svc.UpdateByID(ctx, created.ID, dto.UpdateBookRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, created.Author, updated.Author)
	assert.Equal(t, created.Price, updated.Price)
	assert.Equal(t, created.Category, updated.Category)
	assert.Equal(t, created.UserID, updated.UserID)

	page, err := svc.FindAll(ctx, Query{Keyword: "HOBBIT"})
	require.NoError(t, err)
	require.Len(t, page, 1)

	deleted, err := svc.DeleteByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, deleted)

	_, err = svc.FindByID(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.DeleteByID(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFindAll_PaginatesMemoryStore(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.New())
	for _, title := range []string{"Test One", "Other", "test two", "Test Three"} {
		_, err := svc.Create(ctx, dto.CreateBookRequest{
			Title: title, Description: "d", Author: "a", Category: models.CategoryCrime,
		}, mockUser)
		require.NoError(t, err)
	}

	first, err := svc.FindAll(ctx, Query{Page: "1", Keyword: "test"})
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "Test One", first[0].Title)
	assert.Equal(t, "test two", first[1].Title)

	second, err := svc.FindAll(ctx, Query{Page: "2", Keyword: "test"})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "Test Three", second[0].Title)

	all, err := svc.FindAll(ctx, Query{Page: "2"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "test two", all[0].Title)
}
