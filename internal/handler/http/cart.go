package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/velnyk/cafepos/internal/models"
)

type CartService interface {
	// AddItem adds a menu item to the user's cart
	AddItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.CartLine, error)
	// ListCart returns the user's active cart lines
	ListCart(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	// RemoveLine removes an unordered cart line owned by the user
	RemoveLine(ctx context.Context, userID, lineID uuid.UUID) error
}

// CartHandler represents HTTP handler for cart-related requests
type CartHandler struct {
	svc CartService
}

// NewCartHandler creates new CartHandler instance
func NewCartHandler(svc CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

type addItemRequest struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type cartLineResponse struct {
	ID       string  `json:"id"`
	ItemID   string  `json:"item_id"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

func toCartLineResponse(line *models.CartLine) cartLineResponse {
	return cartLineResponse{
		ID:       line.ID.String(),
		ItemID:   line.ItemID.String(),
		Quantity: line.Quantity,
		Subtotal: line.Subtotal,
	}
}

// AddItem adds a menu item to the authenticated user's cart
// 201 — позицію додано до кошика;
// 400 — невірний формат запиту;
// 401 — користувач не авторизований;
// 404 — страву не знайдено в меню;
// 422 — позиція не проходить валідацію;
// 500 — внутрішня помилка сервера.
func (ch *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req addItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		itemID, err := uuid.Parse(req.ItemID)
		if err != nil {
			http.Error(w, "invalid item id", http.StatusUnprocessableEntity)
			return
		}

		line, err := ch.svc.AddItem(r.Context(), payload.UserID, itemID, req.Quantity)
		if err != nil {
			var vErr *models.ValidationError
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "menu item not found", http.StatusNotFound)
			case errors.As(err, &vErr):
				writeValidationError(w, vErr)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)

		if err := json.NewEncoder(w).Encode(toCartLineResponse(line)); err != nil {
			return
		}
	}
}

// ListCart returns the authenticated user's active cart
// 200 — успішна обробка запиту;
// 204 — кошик порожній;
// 401 — користувач не авторизований;
// 500 — внутрішня помилка сервера.
func (ch *CartHandler) ListCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		lines, err := ch.svc.ListCart(r.Context(), payload.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(lines) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		resp := make([]cartLineResponse, 0, len(lines))
		for _, line := range lines {
			resp = append(resp, toCartLineResponse(&line))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

// RemoveLine removes a cart line of the authenticated user
// 200 — позицію видалено;
// 401 — користувач не авторизований;
// 404 — позицію не знайдено;
// 409 — позиція вже увійшла до замовлення;
// 422 — невірний ідентифікатор позиції;
// 500 — внутрішня помилка сервера.
func (ch *CartHandler) RemoveLine() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		lineID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid cart line id", http.StatusUnprocessableEntity)
			return
		}

		if err := ch.svc.RemoveLine(r.Context(), payload.UserID, lineID); err != nil {
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "cart line not found", http.StatusNotFound)
			case errors.Is(err, models.ErrConflictData):
				http.Error(w, "cart line is already ordered", http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
