package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hongminglow/bookstore-be/internal/http/respond"
	"github.com/hongminglow/bookstore-be/internal/models/dto"
)

// AuthService is the account side of the API.
type AuthService interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) (string, error)
	Login(ctx context.Context, req dto.LoginRequest) (string, error)
}

// AuthHandler owns the sign-up and login endpoints.
type AuthHandler struct {
	svc AuthService
	log *slog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(svc AuthService, log *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

// Register attaches auth routes to r, which is expected to be the /auth subrouter.
func (h *AuthHandler) Register(r *mux.Router) {
	r.HandleFunc("/signup", h.handleSignUp).Methods(http.MethodPost)
	r.HandleFunc("/login", h.handleLogin).Methods(http.MethodGet, http.MethodPost)
}

func (h *AuthHandler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req dto.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	token, err := h.svc.SignUp(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, "sign up", err)
		return
	}
	respond.JSON(w, http.StatusCreated, "user created successfully", dto.TokenResponse{Token: token})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	token, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, "login", err)
		return
	}
	respond.JSON(w, http.StatusOK, "login successful", dto.TokenResponse{Token: token})
}
