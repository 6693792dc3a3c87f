package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hongminglow/bookstore-be/internal/auth"
	"github.com/hongminglow/bookstore-be/internal/books"
	"github.com/hongminglow/bookstore-be/internal/http/respond"
	"github.com/hongminglow/bookstore-be/internal/models/dto"
)

// writeError maps service errors onto HTTP statuses. Unknown errors are
// logged and reported as 500 without leaking details.
func writeError(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, err error) {
	se := classify(err)
	if se.Status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), op+" failed", "error", err)
	}
	respond.Fail(w, se)
}

// classify picks the status and client message for err.
func classify(err error) *respond.StatusError {
	switch {
	case errors.Is(err, dto.ErrValidation):
		return respond.NewStatusError(http.StatusBadRequest, strings.TrimPrefix(err.Error(), dto.ErrValidation.Error()+": "), err)
	case errors.Is(err, books.ErrMalformedID):
		return respond.NewStatusError(http.StatusBadRequest, books.ErrMalformedID.Error(), err)
	case errors.Is(err, books.ErrNotFound):
		return respond.NewStatusError(http.StatusNotFound, books.ErrNotFound.Error(), err)
	case errors.Is(err, auth.ErrConflict):
		return respond.NewStatusError(http.StatusConflict, auth.ErrConflict.Error(), err)
	case errors.Is(err, auth.ErrUnauthorized):
		return respond.NewStatusError(http.StatusUnauthorized, "invalid email or password", err)
	default:
		return respond.NewStatusError(http.StatusInternalServerError, "internal server error", err)
	}
}
