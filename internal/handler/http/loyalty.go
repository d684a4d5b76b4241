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

type LoyaltyService interface {
	// GetCard returns the loyalty card of a user
	GetCard(ctx context.Context, userID uuid.UUID) (*models.LoyaltyCard, error)
	// ListTransactions returns the bonus ledger of a user
	ListTransactions(ctx context.Context, userID uuid.UUID) ([]models.BonusTransaction, error)
	// EnrollCard enrolls a user into the loyalty program
	EnrollCard(ctx context.Context, userID uuid.UUID, cardNumber string, balance float64) (*models.LoyaltyCard, error)
	// ListCards returns all loyalty cards
	ListCards(ctx context.Context) ([]models.LoyaltyCard, error)
	// UpdateCard updates card number, balance and active flag
	UpdateCard(ctx context.Context, id uuid.UUID, cardNumber string, balance float64, active bool) (*models.LoyaltyCard, error)
	// DeleteCard deletes loyalty card by id
	DeleteCard(ctx context.Context, id uuid.UUID) error
}

// LoyaltyHandler represents HTTP handler for loyalty-related requests
type LoyaltyHandler struct {
	svc LoyaltyService
}

// NewLoyaltyHandler creates new LoyaltyHandler instance
func NewLoyaltyHandler(svc LoyaltyService) *LoyaltyHandler {
	return &LoyaltyHandler{svc: svc}
}

type cardResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	CardNumber string  `json:"card_number"`
	Balance    float64 `json:"balance"`
	Active     bool    `json:"active"`
}

func toCardResponse(card *models.LoyaltyCard) cardResponse {
	return cardResponse{
		ID:         card.ID.String(),
		UserID:     card.UserID.String(),
		CardNumber: card.CardNumber,
		Balance:    card.Balance,
		Active:     card.Active,
	}
}

type transactionResponse struct {
	ID              string  `json:"id"`
	OrderID         *string `json:"order_id,omitempty"`
	Amount          float64 `json:"amount"`
	Type            string  `json:"type"`
	TransactionDate string  `json:"transaction_date"`
	Notes           string  `json:"notes,omitempty"`
}

// GetCard returns the loyalty card of the authenticated user
// 200 — успішна обробка запиту;
// 401 — користувач не авторизований;
// 404 — користувач не бере участі в програмі лояльності;
// 500 — внутрішня помилка сервера.
func (lh *LoyaltyHandler) GetCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		card, err := lh.svc.GetCard(r.Context(), payload.UserID)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "loyalty card not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(toCardResponse(card)); err != nil {
			return
		}
	}
}

// ListTransactions returns the bonus ledger of the authenticated user
// 200 — успішна обробка запиту;
// 204 — жодної операції з бонусами;
// 401 — користувач не авторизований;
// 500 — внутрішня помилка сервера.
func (lh *LoyaltyHandler) ListTransactions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		transactions, err := lh.svc.ListTransactions(r.Context(), payload.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(transactions) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		resp := make([]transactionResponse, 0, len(transactions))
		for _, tr := range transactions {
			var orderID *string
			if tr.OrderID != nil {
				s := tr.OrderID.String()
				orderID = &s
			}
			resp = append(resp, transactionResponse{
				ID:              tr.ID.String(),
				OrderID:         orderID,
				Amount:          tr.Amount,
				Type:            tr.Type,
				TransactionDate: tr.TransactionDate.Format(time.RFC3339),
				Notes:           tr.Notes,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

type enrollCardRequest struct {
	UserID     string  `json:"user_id"`
	CardNumber string  `json:"card_number"`
	Balance    float64 `json:"balance"`
}

// EnrollCard enrolls a user into the loyalty program
// 201 — картку створено;
// 400 — невірний формат запиту;
// 409 — користувач вже має картку або номер зайнятий;
// 422 — номер картки не проходить валідацію;
// 500 — внутрішня помилка сервера.
func (lh *LoyaltyHandler) EnrollCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req enrollCardRequest
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

		card, err := lh.svc.EnrollCard(r.Context(), userID, req.CardNumber, req.Balance)
		if err != nil {
			var vErr *models.ValidationError
			switch {
			case errors.Is(err, models.ErrConflictData):
				http.Error(w, "loyalty card already exists", http.StatusConflict)
			case errors.Is(err, models.ErrInvalidCardNumber):
				http.Error(w, "invalid card number", http.StatusUnprocessableEntity)
			case errors.As(err, &vErr):
				writeValidationError(w, vErr)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)

		if err := json.NewEncoder(w).Encode(toCardResponse(card)); err != nil {
			return
		}
	}
}

// ListCards returns all loyalty cards
func (lh *LoyaltyHandler) ListCards() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cards, err := lh.svc.ListCards(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := make([]cardResponse, 0, len(cards))
		for _, card := range cards {
			resp = append(resp, toCardResponse(&card))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

type updateCardRequest struct {
	CardNumber string  `json:"card_number"`
	Balance    float64 `json:"balance"`
	Active     bool    `json:"active"`
}

// UpdateCard updates a loyalty card
func (lh *LoyaltyHandler) UpdateCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cardID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid card id", http.StatusUnprocessableEntity)
			return
		}

		var req updateCardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		card, err := lh.svc.UpdateCard(r.Context(), cardID, req.CardNumber, req.Balance, req.Active)
		if err != nil {
			var vErr *models.ValidationError
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "loyalty card not found", http.StatusNotFound)
			case errors.Is(err, models.ErrConflictData):
				http.Error(w, "card number is already taken", http.StatusConflict)
			case errors.Is(err, models.ErrInvalidCardNumber):
				http.Error(w, "invalid card number", http.StatusUnprocessableEntity)
			case errors.As(err, &vErr):
				writeValidationError(w, vErr)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(toCardResponse(card)); err != nil {
			return
		}
	}
}

// DeleteCard deletes a loyalty card
func (lh *LoyaltyHandler) DeleteCard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cardID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid card id", http.StatusUnprocessableEntity)
			return
		}

		if err := lh.svc.DeleteCard(r.Context(), cardID); err != nil {
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "loyalty card not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
