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

type OrderService interface {
	// Checkout validates the user's cart and persists the order atomically
	Checkout(ctx context.Context, in service.CheckoutInput) (*service.CheckoutResult, error)
	// ListUserOrders returns list of user orders
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	// GetUserOrder returns one order of a user with its linked cart line ids
	GetUserOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, []uuid.UUID, error)
	// Cancel moves a PENDING order of the owning user to CANCELLED
	Cancel(ctx context.Context, userID, orderID uuid.UUID) error
}

// OrderHandler represents HTTP handler for order-related requests
type OrderHandler struct {
	svc OrderService
}

// NewOrderHandler creates new OrderHandler instance
func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type checkoutRequest struct {
	BonusToUse     string `json:"bonus_to_use"`
	TableNumber    string `json:"table_number"`
	Notes          string `json:"notes"`
	IsSocial       bool   `json:"is_social"`
	IdempotencyKey string `json:"idempotency_key"`
}

type orderResponse struct {
	ID            string  `json:"id"`
	OrderDate     string  `json:"order_date"`
	TotalAmount   float64 `json:"total_amount"`
	BonusesEarned float64 `json:"bonuses_earned"`
	BonusesUsed   float64 `json:"bonuses_used"`
	Status        string  `json:"status"`
	Notes         string  `json:"notes,omitempty"`
	IsSocial      bool    `json:"is_social"`
	TableNumber   *int    `json:"table_number,omitempty"`
}

type checkoutResponse struct {
	Order       orderResponse `json:"order"`
	FinalAmount float64       `json:"final_amount"`
}

func toOrderResponse(order *models.Order) orderResponse {
	return orderResponse{
		ID:            order.ID.String(),
		OrderDate:     order.OrderDate.Format(time.RFC3339),
		TotalAmount:   order.TotalAmount,
		BonusesEarned: order.BonusesEarned,
		BonusesUsed:   order.BonusesUsed,
		Status:        order.Status,
		Notes:         order.Notes,
		IsSocial:      order.IsSocial,
		TableNumber:   order.TableNumber,
	}
}

// PlaceOrder performs checkout of the user's active cart
// 201 — замовлення оформлено;
// 400 — невірний формат запиту або порожній кошик;
// 401 — користувач не автентифікований;
// 402 — недостатньо бонусів на балансі;
// 409 — столик зайнятий або повторне відправлення;
// 422 — дані замовлення не проходять валідацію;
// 500 — внутрішня помилка сервера.
func (oh *OrderHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req checkoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		result, err := oh.svc.Checkout(r.Context(), service.CheckoutInput{
			UserID:         payload.UserID,
			BonusToUse:     req.BonusToUse,
			TableNumber:    req.TableNumber,
			Notes:          req.Notes,
			IsSocial:       req.IsSocial,
			IdempotencyKey: req.IdempotencyKey,
		})
		if err != nil {
			var vErr *models.ValidationError
			switch {
			case errors.Is(err, models.ErrNotAuthenticated):
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			case errors.Is(err, models.ErrEmptyCart):
				http.Error(w, "cart is empty", http.StatusBadRequest)
			case errors.Is(err, models.ErrInsufficientBonus):
				http.Error(w, "insufficient bonus balance", http.StatusPaymentRequired)
			case errors.Is(err, models.ErrTableOccupied):
				http.Error(w, "table is occupied", http.StatusConflict)
			case errors.Is(err, models.ErrDuplicateCheckout):
				http.Error(w, "checkout has already been submitted", http.StatusConflict)
			case errors.Is(err, models.ErrConflictData):
				http.Error(w, "conflict", http.StatusConflict)
			case errors.Is(err, models.ErrInvalidCartLine),
				errors.Is(err, models.ErrNoLoyaltyAccount),
				errors.Is(err, models.ErrBonusExceedsTotal),
				errors.Is(err, models.ErrNegativeBonus),
				errors.Is(err, models.ErrInvalidAmount),
				errors.Is(err, models.ErrInvalidTable):
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			case errors.As(err, &vErr):
				writeValidationError(w, vErr)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)

		resp := checkoutResponse{
			Order:       toOrderResponse(result.Order),
			FinalAmount: result.FinalAmount,
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

// ListUserOrders returns orders of the authenticated user
// 200 — успішна обробка запиту;
// 204 — немає жодного замовлення;
// 401 — користувач не авторизований;
// 500 — внутрішня помилка сервера.
func (oh *OrderHandler) ListUserOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		orders, err := oh.svc.ListUserOrders(r.Context(), payload.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(orders) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		resp := make([]orderResponse, 0, len(orders))
		for _, order := range orders {
			resp = append(resp, toOrderResponse(&order))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

type orderDetailsResponse struct {
	orderResponse
	CartIDs []string `json:"cart_ids"`
}

// GetUserOrder returns one order of the authenticated user
// 200 — успішна обробка запиту;
// 401 — користувач не авторизований;
// 404 — замовлення не знайдено;
// 422 — невірний ідентифікатор замовлення;
// 500 — внутрішня помилка сервера.
func (oh *OrderHandler) GetUserOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid order id", http.StatusUnprocessableEntity)
			return
		}

		order, cartIDs, err := oh.svc.GetUserOrder(r.Context(), payload.UserID, orderID)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		resp := orderDetailsResponse{orderResponse: toOrderResponse(order)}
		resp.CartIDs = make([]string, 0, len(cartIDs))
		for _, cartID := range cartIDs {
			resp.CartIDs = append(resp.CartIDs, cartID.String())
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

// CancelOrder cancels a PENDING order of the authenticated user
// 200 — замовлення скасовано;
// 401 — користувач не авторизований;
// 404 — замовлення не знайдено;
// 409 — замовлення не може бути скасовано;
// 422 — невірний ідентифікатор замовлення;
// 500 — внутрішня помилка сервера.
func (oh *OrderHandler) CancelOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		orderID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid order id", http.StatusUnprocessableEntity)
			return
		}

		if err := oh.svc.Cancel(r.Context(), payload.UserID, orderID); err != nil {
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			case errors.Is(err, models.ErrCancellationNotAllowed):
				http.Error(w, "order cancellation is not allowed", http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// writeValidationError reports all itemized validation reasons at once
func writeValidationError(w http.ResponseWriter, vErr *models.ValidationError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error":   vErr.Entity + " validation failed",
		"reasons": vErr.Reasons,
	})
}
