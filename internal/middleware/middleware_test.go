package middleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/bookstore-be/internal/auth"
	"github.com/hongminglow/bookstore-be/internal/models"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORS_Wildcard(t *testing.T) {
	h := CORS([]string{"*"})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORS_ListedOrigin(t *testing.T) {
	h := CORS([]string{"https://App.example"})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	called := false
	h := CORS([]string{"*"})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	req := httptest.NewRequest(http.MethodOptions, "/books", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, called)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	h := Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/books", nil))

	out := buf.String()
	assert.Contains(t, out, "msg=\"http request\"")
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "path=/books")
	assert.Contains(t, out, "status=418")
}

type fakeAuthenticator struct {
	token string
	user  models.User
	err   error
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (models.User, error) {
	f.token = token
	return f.user, f.err
}

func TestRequireAuth(t *testing.T) {
	user := models.User{ID: "65fa5c22-04b3-40b8-a76a-909000000001", Name: "Aulia"}

	tests := []struct {
		name       string
		header     string
		authErr    error
		wantStatus int
	}{
		{"valid token", "Bearer good", nil, http.StatusOK},
		{"lower-case scheme", "bearer good", nil, http.StatusOK},
		{"missing header", "", nil, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", nil, http.StatusUnauthorized},
		{"empty token", "Bearer   ", nil, http.StatusUnauthorized},
		{"invalid token", "Bearer bad", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", "Bearer old", auth.ErrTokenExpired, http.StatusUnauthorized},
		{"store failure", "Bearer good", assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			authn := &fakeAuthenticator{user: user, err: tc.authErr}
			var seen models.User
			h := RequireAuth(authn, discard)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen, _ = UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/books", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, "good", authn.token)
				assert.Equal(t, user, seen)
			}
		})
	}
}

func TestUserFromContext_Empty(t *testing.T) {
	_, ok := UserFromContext(context.Background())
	assert.False(t, ok)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	h := rl.Middleware(okHandler)

	hit := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, hit("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, hit("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, hit("10.0.0.2:1000"))

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, hit("10.0.0.1:1003"))
}

func TestRateLimiter_SweepsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	require.True(t, rl.allow("a"))
	now = now.Add(2 * limiterIdleTTL)
	require.True(t, rl.allow("b"))

	assert.Len(t, rl.clients, 1)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := mux.NewRouter()
	r.Use(m.Middleware)
	r.Handle("/books/{id}", okHandler)

	for _, id := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/books/"+id, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/books/{id}", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))

	count, err := testutil.GatherAndCount(reg, "bookstore_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "unmatched", routeTemplate(httptest.NewRequest(http.MethodGet, "/", nil)))
}
