package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hongminglow/bookstore-be/internal/auth"
	"github.com/hongminglow/bookstore-be/internal/http/respond"
	"github.com/hongminglow/bookstore-be/internal/models"
)

type ctxKey string

const userKey ctxKey = "user"

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (models.User, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// authenticated user in the request context.
func RequireAuth(authn Authenticator, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				respond.Error(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			user, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					respond.Error(w, http.StatusUnauthorized, "token expired")
					return
				}
				if errors.Is(err, auth.ErrUnauthorized) {
					respond.Error(w, http.StatusUnauthorized, "please login first to access this endpoint")
					return
				}
				log.ErrorContext(r.Context(), "authenticate request", "error", err)
				respond.Error(w, http.StatusInternalServerError, "failed to authenticate")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a copy of ctx carrying user.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the user stored by RequireAuth.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
