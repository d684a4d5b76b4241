package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/velnyk/cafepos/internal/models"
)

type AuthService interface {
	// Login verifies credentials and returns a signed auth token
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthHandler represents HTTP handler for authentication requests
type AuthHandler struct {
	svc AuthService
}

// NewAuthHandler creates new AuthHandler instance
func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginUser authenticates a user and sets the auth cookie
// 200 — користувач автентифікований;
// 400 — невірний формат запиту;
// 401 — невірний логін або пароль;
// 500 — внутрішня помилка сервера.
func (ah *AuthHandler) LoginUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		tokenString, err := ah.svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrInvalidCredentials):
				http.Error(w, "invalid login or password", http.StatusUnauthorized)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		setAuthCookie(w, tokenString)

		w.WriteHeader(http.StatusOK)
	}
}
