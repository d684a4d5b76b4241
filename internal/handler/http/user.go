package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/velnyk/cafepos/internal/models"
	"github.com/velnyk/cafepos/internal/service"
)

type UserService interface {
	// Register validates credentials and creates a new customer account
	Register(ctx context.Context, username, password, email string) (*models.User, error)
	// ListUsers returns all users
	ListUsers(ctx context.Context) ([]models.User, error)
	// UpdateUser updates role and email of an existing user
	UpdateUser(ctx context.Context, id uuid.UUID, role, email string) (*models.User, error)
	// DeleteUser deletes user by id
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// UserHandler represents HTTP handler for user-related requests
type UserHandler struct {
	svc   UserService
	token service.TokenService
}

// NewUserHandler creates new UserHandler instance
func NewUserHandler(svc UserService, token service.TokenService) *UserHandler {
	return &UserHandler{
		svc:   svc,
		token: token,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type userResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

func toUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Role:      user.Role,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

// RegisterUser registers a new customer and signs them in
// 200 — користувача зареєстровано;
// 400 — невірний формат запиту;
// 409 — логін вже зайнятий;
// 422 — дані не проходять валідацію;
// 500 — внутрішня помилка сервера.
func (uh *UserHandler) RegisterUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		user, err := uh.svc.Register(r.Context(), req.Username, req.Password, req.Email)
		if err != nil {
			var vErr *models.ValidationError
			switch {
			case errors.Is(err, models.ErrConflictData):
				http.Error(w, "username is already taken", http.StatusConflict)
			case errors.As(err, &vErr):
				writeValidationError(w, vErr)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		tokenString, err := uh.token.CreateToken(user)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		setAuthCookie(w, tokenString)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(toUserResponse(user)); err != nil {
			return
		}
	}
}

// ListUsers returns all users
func (uh *UserHandler) ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := uh.svc.ListUsers(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := make([]userResponse, 0, len(users))
		for _, user := range users {
			resp = append(resp, toUserResponse(&user))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

type updateUserRequest struct {
	Role  string `json:"role"`
	Email string `json:"email"`
}

// UpdateUser updates role and email of a user
func (uh *UserHandler) UpdateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusUnprocessableEntity)
			return
		}

		var req updateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		user, err := uh.svc.UpdateUser(r.Context(), userID, req.Role, req.Email)
		if err != nil {
			var vErr *models.ValidationError
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "user not found", http.StatusNotFound)
			case errors.As(err, &vErr):
				writeValidationError(w, vErr)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(toUserResponse(user)); err != nil {
			return
		}
	}
}

// DeleteUser deletes a user
func (uh *UserHandler) DeleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid user id", http.StatusUnprocessableEntity)
			return
		}

		if err := uh.svc.DeleteUser(r.Context(), userID); err != nil {
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "user not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func setAuthCookie(w http.ResponseWriter, tokenString string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    tokenString,
		Path:     "/",
		HttpOnly: true,
	})
}
