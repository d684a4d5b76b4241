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
)

type AdminOrderService interface {
	// ListOrders returns all orders, optionally filtered by status
	ListOrders(ctx context.Context, status string) ([]models.Order, error)
	// SetStatus sets an order to a staff-driven status
	SetStatus(ctx context.Context, orderID uuid.UUID, status string) error
	// Update replaces an order and the full set of its cart line links
	Update(ctx context.Context, order *models.Order, cartIDs []uuid.UUID) (*models.Order, error)
}

// AdminOrderHandler represents HTTP handler for staff order management
type AdminOrderHandler struct {
	svc AdminOrderService
}

// NewAdminOrderHandler creates new AdminOrderHandler instance
func NewAdminOrderHandler(svc AdminOrderService) *AdminOrderHandler {
	return &AdminOrderHandler{svc: svc}
}

type adminOrderResponse struct {
	orderResponse
	UserID string `json:"user_id"`
}

func toAdminOrderResponse(order *models.Order) adminOrderResponse {
	return adminOrderResponse{
		orderResponse: toOrderResponse(order),
		UserID:        order.UserID.String(),
	}
}

// ListOrders returns all orders, optionally filtered by ?status=
// 200 — успішна обробка запиту;
// 204 — жодного замовлення;
// 422 — невідомий статус замовлення;
// 500 — внутрішня помилка сервера.
func (ah *AdminOrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := ah.svc.ListOrders(r.Context(), r.URL.Query().Get("status"))
		if err != nil {
			var vErr *models.ValidationError
			switch {
			case errors.As(err, &vErr):
				writeValidationError(w, vErr)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		if len(orders) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		resp := make([]adminOrderResponse, 0, len(orders))
		for _, order := range orders {
			resp = append(resp, toAdminOrderResponse(&order))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

type setStatusRequest struct {
	Status string `json:"status"`
}

// SetOrderStatus moves an order to a new status
// 200 — статус змінено;
// 400 — невірний формат запиту;
// 404 — замовлення не знайдено;
// 422 — невідомий статус або ідентифікатор;
// 500 — внутрішня помилка сервера.
func (ah *AdminOrderHandler) SetOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid order id", http.StatusUnprocessableEntity)
			return
		}

		var req setStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if err := ah.svc.SetStatus(r.Context(), orderID, req.Status); err != nil {
			var vErr *models.ValidationError
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			case errors.As(err, &vErr):
				writeValidationError(w, vErr)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

type updateOrderRequest struct {
	UserID        string   `json:"user_id"`
	OrderDate     string   `json:"order_date"`
	TotalAmount   float64  `json:"total_amount"`
	BonusesEarned float64  `json:"bonuses_earned"`
	BonusesUsed   float64  `json:"bonuses_used"`
	Status        string   `json:"status"`
	Notes         string   `json:"notes"`
	IsSocial      bool     `json:"is_social"`
	TableNumber   *int     `json:"table_number"`
	CartIDs       []string `json:"cart_ids"`
}

// UpdateOrder replaces an order and its cart line links
// 200 — замовлення оновлено;
// 400 — невірний формат запиту;
// 404 — замовлення не знайдено;
// 409 — столик зайнятий іншим замовленням;
// 422 — дані не проходять валідацію;
// 500 — внутрішня помилка сервера.
func (ah *AdminOrderHandler) UpdateOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid order id", http.StatusUnprocessableEntity)
			return
		}

		var req updateOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		userID, err := uuid.Parse(req.UserID)
		if err != nil {
			http.Error(w, "invalid user id", http.StatusUnprocessableEntity)
			return
		}

		orderDate, err := time.Parse(time.RFC3339, req.OrderDate)
		if err != nil {
			http.Error(w, "invalid order date", http.StatusUnprocessableEntity)
			return
		}

		cartIDs := make([]uuid.UUID, 0, len(req.CartIDs))
		for _, raw := range req.CartIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				http.Error(w, "invalid cart line id", http.StatusUnprocessableEntity)
				return
			}
			cartIDs = append(cartIDs, id)
		}

		order, err := ah.svc.Update(r.Context(), &models.Order{
			ID:            orderID,
			UserID:        userID,
			OrderDate:     orderDate,
			TotalAmount:   req.TotalAmount,
			BonusesEarned: req.BonusesEarned,
			BonusesUsed:   req.BonusesUsed,
			Status:        req.Status,
			Notes:         req.Notes,
			IsSocial:      req.IsSocial,
			TableNumber:   req.TableNumber,
		}, cartIDs)
		if err != nil {
			var vErr *models.ValidationError
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			case errors.Is(err, models.ErrTableOccupied):
				http.Error(w, "table is occupied", http.StatusConflict)
			case errors.Is(err, models.ErrConflictData):
				http.Error(w, "conflict", http.StatusConflict)
			case errors.As(err, &vErr):
				writeValidationError(w, vErr)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(toAdminOrderResponse(order)); err != nil {
			return
		}
	}
}
