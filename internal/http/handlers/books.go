package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hongminglow/bookstore-be/internal/books"
	"github.com/hongminglow/bookstore-be/internal/http/respond"
	"github.com/hongminglow/bookstore-be/internal/middleware"
	"github.com/hongminglow/bookstore-be/internal/models"
	"github.com/hongminglow/bookstore-be/internal/models/dto"
)

// BookService is the listing side of the API.
type BookService interface {
	FindAll(ctx context.Context, q books.Query) ([]models.Book, error)
	Create(ctx context.Context, req dto.CreateBookRequest, user models.User) (models.Book, error)
	FindByID(ctx context.Context, id string) (models.Book, error)
	UpdateByID(ctx context.Context, id string, req dto.UpdateBookRequest) (models.Book, error)
	DeleteByID(ctx context.Context, id string) (models.Book, error)
}

// BookHandler owns the /books endpoints.
type BookHandler struct {
	svc BookService
	log *slog.Logger
}

// NewBookHandler constructs the handler.
func NewBookHandler(svc BookService, log *slog.Logger) *BookHandler {
	return &BookHandler{svc: svc, log: log}
}

// Register attaches book routes to r. Writes go through requireAuth.
func (h *BookHandler) Register(r *mux.Router, requireAuth func(http.Handler) http.Handler) {
	r.HandleFunc("/books", h.handleList).Methods(http.MethodGet)
	r.Handle("/books", requireAuth(http.HandlerFunc(h.handleCreate))).Methods(http.MethodPost)
	r.HandleFunc("/books/{id}", h.handleGet).Methods(http.MethodGet)
	r.Handle("/books/{id}", requireAuth(http.HandlerFunc(h.handleUpdate))).Methods(http.MethodPut, http.MethodPatch)
	r.Handle("/books/{id}", requireAuth(http.HandlerFunc(h.handleDelete))).Methods(http.MethodDelete)
}

func (h *BookHandler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	found, err := h.svc.FindAll(r.Context(), books.Query{Page: q.Get("page"), Keyword: q.Get("keyword")})
	if err != nil {
		writeError(w, r, h.log, "list books", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", found)
}

func (h *BookHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "please login first to access this endpoint")
		return
	}
	var req dto.CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	created, err := h.svc.Create(r.Context(), req, user)
	if err != nil {
		writeError(w, r, h.log, "create book", err)
		return
	}
	h.log.InfoContext(r.Context(), "book created", "book_id", created.ID, "user_id", user.ID)
	respond.JSON(w, http.StatusCreated, "book created", created)
}

func (h *BookHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	book, err := h.svc.FindByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, h.log, "find book", err)
		return
	}
	respond.JSON(w, http.StatusOK, "ok", book)
}

func (h *BookHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	book, err := h.svc.UpdateByID(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, r, h.log, "update book", err)
		return
	}
	respond.JSON(w, http.StatusOK, "book updated", book)
}

func (h *BookHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	book, err := h.svc.DeleteByID(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, h.log, "delete book", err)
		return
	}
	h.log.InfoContext(r.Context(), "book deleted", "book_id", book.ID)
	respond.JSON(w, http.StatusOK, "book deleted", book)
}
