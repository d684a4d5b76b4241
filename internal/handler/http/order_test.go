package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velnyk/cafepos/internal/handler/http/mocks"
	"github.com/velnyk/cafepos/internal/models"
	"github.com/velnyk/cafepos/internal/service"
	"go.uber.org/zap"
)

func TestOrderHandler_PlaceOrder(t *testing.T) {
	userID := uuid.New()
	tests := []struct {
		name           string
		token          *models.TokenPayload
		body           string
		setup          func(t *testing.T) *mocks.MockOrderService
		wantStatusCode int
	}{
		{
			// 201 — замовлення оформлено;
			name: "valid_request_return_201",
			token: &models.TokenPayload{
				UserID: userID,
			},
			body: `{"bonus_to_use":"20","table_number":"5"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(&service.CheckoutResult{
					Order: &models.Order{
						ID:          uuid.New(),
						UserID:      userID,
						OrderDate:   time.Now(),
						TotalAmount: 150,
						Status:      models.OrderStatusPending,
					},
					FinalAmount: 130,
				}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			// 400 — порожній кошик;
			name: "empty_cart_return_400",
			token: &models.TokenPayload{
				UserID: userID,
			},
			body: `{}`,
			setup: func(t *testing.T) *mocks.MockOrderService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(nil, models.ErrEmptyCart).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			// 401 — користувач не автентифікований;
			name: "unauthorized_request_return_401",
			body: `{}`,
			setup: func(t *testing.T) *mocks.MockOrderService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Checkout(gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			// 402 — недостатньо бонусів на балансі;
			name: "insufficient_bonus_return_402",
			token: &models.TokenPayload{
				UserID: userID,
			},
			body: `{"bonus_to_use":"1000"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(nil, models.ErrInsufficientBonus).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusPaymentRequired,
		},
		{
			// 409 — столик зайнятий;
			name: "occupied_table_return_409",
			token: &models.TokenPayload{
				UserID: userID,
			},
			body: `{"table_number":"5"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(nil, models.ErrTableOccupied).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusConflict,
		},
		{
			// 409 — повторне відправлення замовлення;
			name: "duplicate_checkout_return_409",
			token: &models.TokenPayload{
				UserID: userID,
			},
			body: `{"idempotency_key":"abc"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(nil, models.ErrDuplicateCheckout).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusConflict,
		},
		{
			// 422 — бонуси перевищують суму замовлення;
			name: "bonus_exceeds_total_return_422",
			token: &models.TokenPayload{
				UserID: userID,
			},
			body: `{"bonus_to_use":"500"}`,
			setup: func(t *testing.T) *mocks.MockOrderService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(nil, models.ErrBonusExceedsTotal).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			// 422 — дані замовлення не проходять валідацію;
			name: "validation_error_return_422",
			token: &models.TokenPayload{
				UserID: userID,
			},
			body: `{"notes":"..."}`,
			setup: func(t *testing.T) *mocks.MockOrderService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(nil, models.NewValidationError("order", []string{"notes are too long"})).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			// 500 — внутрішня помилка сервера.
			name: "internal_error_return_500",
			token: &models.TokenPayload{
				UserID: userID,
			},
			body: `{}`,
			setup: func(t *testing.T) *mocks.MockOrderService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Checkout(gomock.Any(), gomock.Any()).Return(nil, models.ErrInternalError).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/user/orders", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal("cannot create request", zap.Error(err))
			}

			w := httptest.NewRecorder()
			st := tt.setup(t)
			ctx := context.WithValue(req.Context(), authPayloadKey, tt.token)

			handler := NewOrderHandler(st)
			h := handler.PlaceOrder()
			h(w, req.WithContext(ctx))

			res := w.Result()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
			defer res.Body.Close()
		})
	}
}

func TestOrderHandler_ListUserOrders(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()
	orderDate := time.Now()
	tests := []struct {
		name           string
		token          *models.TokenPayload
		setup          func(t *testing.T) *mocks.MockOrderService
		wantStatusCode int
		wantBody       []orderResponse
	}{
		{
			// 200 — успішна обробка запиту.
			name: "valid_request_return_200",
			token: &models.TokenPayload{
				UserID: userID,
			},
			setup: func(t *testing.T) *mocks.MockOrderService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().ListUserOrders(gomock.Any(), gomock.Any()).Return([]models.Order{
					{
						ID:            orderID,
						UserID:        userID,
						OrderDate:     orderDate,
						TotalAmount:   150,
						BonusesEarned: 6.5,
						BonusesUsed:   20,
						Status:        models.OrderStatusPending,
					},
				}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantBody: []orderResponse{{
				ID:            orderID.String(),
				OrderDate:     orderDate.Format(time.RFC3339),
				TotalAmount:   150,
				BonusesEarned: 6.5,
				BonusesUsed:   20,
				Status:        models.OrderStatusPending,
			}},
		},
		{
			// 204 — немає даних для відповіді.
			name: "no_content_request_return_204",
			token: &models.TokenPayload{
				UserID: userID,
			},
			setup: func(t *testing.T) *mocks.MockOrderService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().ListUserOrders(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusNoContent,
		},
		{
			// 401 — користувач не авторизований.
			name: "unauthorized_request_return_401",
			setup: func(t *testing.T) *mocks.MockOrderService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().ListUserOrders(gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			// 500 — внутрішня помилка сервера.
			name: "internal_error_return_500",
			token: &models.TokenPayload{
				UserID: userID,
			},
			setup: func(t *testing.T) *mocks.MockOrderService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().ListUserOrders(gomock.Any(), gomock.Any()).Return(nil, models.ErrInternalError).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, "/api/user/orders", nil)
			if err != nil {
				t.Fatal("cannot create request", zap.Error(err))
			}

			w := httptest.NewRecorder()
			st := tt.setup(t)
			ctx := context.WithValue(req.Context(), authPayloadKey, tt.token)

			handler := NewOrderHandler(st)
			h := handler.ListUserOrders()
			h(w, req.WithContext(ctx))

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
			resBody, err := io.ReadAll(res.Body)
			require.NoError(t, err)

			if tt.wantBody != nil {
				var got []orderResponse
				err = json.Unmarshal(resBody, &got)
				require.NoError(t, err)

				if diff := cmp.Diff(tt.wantBody, got); diff != "" {
					t.Errorf("mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestOrderHandler_CancelOrder(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()
	tests := []struct {
		name           string
		token          *models.TokenPayload
		orderID        string
		setup          func(t *testing.T) *mocks.MockOrderService
		wantStatusCode int
	}{
		{
			// 200 — замовлення скасовано.
			name: "valid_request_return_200",
			token: &models.TokenPayload{
				UserID: userID,
			},
			orderID: orderID.String(),
			setup: func(t *testing.T) *mocks.MockOrderService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Cancel(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
		},
		{
			// 404 — замовлення не знайдено.
			name: "unknown_order_return_404",
			token: &models.TokenPayload{
				UserID: userID,
			},
			orderID: orderID.String(),
			setup: func(t *testing.T) *mocks.MockOrderService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Cancel(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.ErrDataNotFound).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			// 409 — замовлення не може бути скасовано.
			name: "confirmed_order_return_409",
			token: &models.TokenPayload{
				UserID: userID,
			},
			orderID: orderID.String(),
			setup: func(t *testing.T) *mocks.MockOrderService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Cancel(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.ErrCancellationNotAllowed).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusConflict,
		},
		{
			// 422 — невірний ідентифікатор замовлення.
			name: "invalid_order_id_return_422",
			token: &models.TokenPayload{
				UserID: userID,
			},
			orderID: "not-a-uuid",
			setup: func(t *testing.T) *mocks.MockOrderService {

				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Cancel(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/user/orders/"+tt.orderID+"/cancel", nil)
			if err != nil {
				t.Fatal("cannot create request", zap.Error(err))
			}

			w := httptest.NewRecorder()
			st := tt.setup(t)
			ctx := context.WithValue(req.Context(), authPayloadKey, tt.token)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.orderID)
			ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)

			handler := NewOrderHandler(st)
			h := handler.CancelOrder()
			h(w, req.WithContext(ctx))

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)
		})
	}
}
