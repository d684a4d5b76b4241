package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velnyk/cafepos/internal/models"
	"go.uber.org/zap"
)

// fakeOrderRepo keeps orders in memory and reproduces the storage-level
// table and idempotency uniqueness behavior.
type fakeOrderRepo struct {
	orders      map[uuid.UUID]*models.Order
	createCalls int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uuid.UUID]*models.Order{}}
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, order *models.Order, cartIDs []uuid.UUID) (*models.Order, error) {
	f.createCalls++
	for _, existing := range f.orders {
		if existing.TableNumber != nil && order.TableNumber != nil &&
			*existing.TableNumber == *order.TableNumber && models.ActiveStatus(existing.Status) {
			return nil, models.ErrTableOccupied
		}
		if order.IdempotencyKey != "" && existing.IdempotencyKey == order.IdempotencyKey {
			return nil, models.ErrDuplicateCheckout
		}
	}
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeOrderRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, models.ErrDataNotFound
	}
	cp := *order
	return &cp, nil
}

func (f *fakeOrderRepo) GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	orders := []models.Order{}
	for _, order := range f.orders {
		if order.UserID == userID {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (f *fakeOrderRepo) GetOrders(ctx context.Context, status string) ([]models.Order, error) {
	orders := []models.Order{}
	for _, order := range f.orders {
		if status == "" || order.Status == status {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (f *fakeOrderRepo) TableOccupied(ctx context.Context, tableNumber int) (bool, error) {
	for _, order := range f.orders {
		if order.TableNumber != nil && *order.TableNumber == tableNumber && models.ActiveStatus(order.Status) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOrderRepo) UpdateOrder(ctx context.Context, order *models.Order, cartIDs []uuid.UUID) (*models.Order, error) {
	if _, ok := f.orders[order.ID]; !ok {
		return nil, models.ErrDataNotFound
	}
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeOrderRepo) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	order, ok := f.orders[id]
	if !ok {
		return models.ErrDataNotFound
	}
	order.Status = status
	return nil
}

func (f *fakeOrderRepo) GetCartIDsByOrderID(ctx context.Context, orderID uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}

type fakeCartRepo struct {
	lines []models.CartLine
}

func (f *fakeCartRepo) GetUnorderedByUserID(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	lines := []models.CartLine{}
	for _, line := range f.lines {
		if line.UserID == userID && !line.Ordered {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

type fakeLoyaltyRepo struct {
	card *models.LoyaltyCard
}

func (f *fakeLoyaltyRepo) GetCardByUserID(ctx context.Context, userID uuid.UUID) (*models.LoyaltyCard, error) {
	if f.card == nil || f.card.UserID != userID {
		return nil, models.ErrDataNotFound
	}
	cp := *f.card
	return &cp, nil
}

func cartLines(userID uuid.UUID, subtotals ...float64) []models.CartLine {
	lines := make([]models.CartLine, 0, len(subtotals))
	for _, subtotal := range subtotals {
		lines = append(lines, models.CartLine{
			ID:       uuid.New(),
			UserID:   userID,
			ItemID:   uuid.New(),
			Quantity: 1,
			Subtotal: subtotal,
		})
	}
	return lines
}

func TestOrderService_Checkout(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name    string
		lines   []models.CartLine
		card    *models.LoyaltyCard
		input   CheckoutInput
		wantErr error
	}{
		{
			name:  "valid checkout without bonuses",
			lines: cartLines(userID, 100.0, 50.0),
			input: CheckoutInput{UserID: userID, TableNumber: "5"},
		},
		{
			name:  "valid checkout with redemption",
			lines: cartLines(userID, 100.0, 50.0),
			card:  &models.LoyaltyCard{ID: uuid.New(), UserID: userID, Balance: 20, Active: true},
			input: CheckoutInput{UserID: userID, BonusToUse: "20", TableNumber: "5"},
		},
		{
			name:    "not authenticated",
			lines:   cartLines(userID, 100.0),
			input:   CheckoutInput{TableNumber: "5"},
			wantErr: models.ErrNotAuthenticated,
		},
		{
			name:    "empty cart",
			lines:   nil,
			input:   CheckoutInput{UserID: userID, TableNumber: "5"},
			wantErr: models.ErrEmptyCart,
		},
		{
			name: "zero quantity line rejected before persistence",
			lines: []models.CartLine{
				{ID: uuid.New(), UserID: userID, ItemID: uuid.New(), Quantity: 0, Subtotal: 10},
			},
			input:   CheckoutInput{UserID: userID, TableNumber: "5"},
			wantErr: models.ErrInvalidCartLine,
		},
		{
			name: "negative subtotal line rejected before persistence",
			lines: []models.CartLine{
				{ID: uuid.New(), UserID: userID, ItemID: uuid.New(), Quantity: 1, Subtotal: -5},
			},
			input:   CheckoutInput{UserID: userID, TableNumber: "5"},
			wantErr: models.ErrInvalidCartLine,
		},
		{
			name:    "unparseable bonus amount",
			lines:   cartLines(userID, 100.0),
			card:    &models.LoyaltyCard{ID: uuid.New(), UserID: userID, Balance: 50, Active: true},
			input:   CheckoutInput{UserID: userID, BonusToUse: "abc", TableNumber: "5"},
			wantErr: models.ErrInvalidAmount,
		},
		{
			name:    "negative bonus amount",
			lines:   cartLines(userID, 100.0),
			card:    &models.LoyaltyCard{ID: uuid.New(), UserID: userID, Balance: 50, Active: true},
			input:   CheckoutInput{UserID: userID, BonusToUse: "-1", TableNumber: "5"},
			wantErr: models.ErrNegativeBonus,
		},
		{
			name:    "redemption without loyalty card",
			lines:   cartLines(userID, 100.0),
			input:   CheckoutInput{UserID: userID, BonusToUse: "10", TableNumber: "5"},
			wantErr: models.ErrNoLoyaltyAccount,
		},
		{
			name:    "redemption with inactive card",
			lines:   cartLines(userID, 100.0),
			card:    &models.LoyaltyCard{ID: uuid.New(), UserID: userID, Balance: 50, Active: false},
			input:   CheckoutInput{UserID: userID, BonusToUse: "10", TableNumber: "5"},
			wantErr: models.ErrNoLoyaltyAccount,
		},
		{
			name:    "bonus exceeds balance",
			lines:   cartLines(userID, 100.0),
			card:    &models.LoyaltyCard{ID: uuid.New(), UserID: userID, Balance: 20, Active: true},
			input:   CheckoutInput{UserID: userID, BonusToUse: "21", TableNumber: "5"},
			wantErr: models.ErrInsufficientBonus,
		},
		{
			name:    "bonus exceeds total",
			lines:   cartLines(userID, 30.0),
			card:    &models.LoyaltyCard{ID: uuid.New(), UserID: userID, Balance: 500, Active: true},
			input:   CheckoutInput{UserID: userID, BonusToUse: "31", TableNumber: "5"},
			wantErr: models.ErrBonusExceedsTotal,
		},
		{
			name:    "missing table number",
			lines:   cartLines(userID, 100.0),
			input:   CheckoutInput{UserID: userID, TableNumber: ""},
			wantErr: models.ErrInvalidTable,
		},
		{
			name:    "negative table number",
			lines:   cartLines(userID, 100.0),
			input:   CheckoutInput{UserID: userID, TableNumber: "-1"},
			wantErr: models.ErrInvalidTable,
		},
		{
			name:    "non-numeric table number",
			lines:   cartLines(userID, 100.0),
			input:   CheckoutInput{UserID: userID, TableNumber: "five"},
			wantErr: models.ErrInvalidTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := newFakeOrderRepo()
			svc := NewOrderService(orders, &fakeCartRepo{lines: tt.lines}, &fakeLoyaltyRepo{card: tt.card}, zap.NewNop())

			result, err := svc.Checkout(context.Background(), tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, orders.createCalls, "no persistence call expected on validation failure")
				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)
			assert.Equal(t, models.OrderStatusPending, result.Order.Status)
		})
	}
}

func TestOrderService_Checkout_Computation(t *testing.T) {
	userID := uuid.New()
	orders := newFakeOrderRepo()
	carts := &fakeCartRepo{lines: cartLines(userID, 100.0, 50.0)}
	loyalty := &fakeLoyaltyRepo{card: &models.LoyaltyCard{ID: uuid.New(), UserID: userID, Balance: 20, Active: true}}
	svc := NewOrderService(orders, carts, loyalty, zap.NewNop())

	result, err := svc.Checkout(context.Background(), CheckoutInput{
		UserID:      userID,
		BonusToUse:  "20",
		TableNumber: "7",
		Notes:       "no sugar",
	})
	require.NoError(t, err)

	assert.Equal(t, 150.0, result.Order.TotalAmount)
	assert.Equal(t, 20.0, result.Order.BonusesUsed)
	assert.Equal(t, (150.0-20.0)*0.05, result.Order.BonusesEarned)
	assert.Equal(t, 6.5, result.Order.BonusesEarned)
	assert.Equal(t, 130.0, result.FinalAmount)
	require.NotNil(t, result.Order.TableNumber)
	assert.Equal(t, 7, *result.Order.TableNumber)
	assert.Equal(t, "no sugar", result.Order.Notes)

	// new balance = old - used + earned: 20 - 20 + 6.5
	assert.Equal(t, 6.5, loyalty.card.Balance+result.Order.BalanceDelta())
}

func TestOrderService_Checkout_TotalIsSumOfSubtotals(t *testing.T) {
	userID := uuid.New()
	subtotals := []float64{12.40, 0.0, 99.99, 3.21}
	var want float64
	for _, s := range subtotals {
		want += s
	}

	svc := NewOrderService(newFakeOrderRepo(), &fakeCartRepo{lines: cartLines(userID, subtotals...)}, &fakeLoyaltyRepo{}, zap.NewNop())

	result, err := svc.Checkout(context.Background(), CheckoutInput{UserID: userID, TableNumber: "2"})
	require.NoError(t, err)
	assert.Equal(t, want, result.Order.TotalAmount)
	assert.Equal(t, want*0.05, result.Order.BonusesEarned)
}

func TestOrderService_Checkout_TableOccupied(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	orders := newFakeOrderRepo()

	svcFirst := NewOrderService(orders, &fakeCartRepo{lines: cartLines(first, 40.0)}, &fakeLoyaltyRepo{}, zap.NewNop())
	_, err := svcFirst.Checkout(context.Background(), CheckoutInput{UserID: first, TableNumber: "9"})
	require.NoError(t, err)

	svcSecond := NewOrderService(orders, &fakeCartRepo{lines: cartLines(second, 25.0)}, &fakeLoyaltyRepo{}, zap.NewNop())
	_, err = svcSecond.Checkout(context.Background(), CheckoutInput{UserID: second, TableNumber: "9"})
	assert.ErrorIs(t, err, models.ErrTableOccupied)

	// a different table is still free
	_, err = svcSecond.Checkout(context.Background(), CheckoutInput{UserID: second, TableNumber: "10"})
	assert.NoError(t, err)
}

func TestOrderService_Cancel(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()

	newOrder := func(status string) (*fakeOrderRepo, uuid.UUID) {
		orders := newFakeOrderRepo()
		id := uuid.New()
		orders.orders[id] = &models.Order{ID: id, UserID: userID, Status: status}
		return orders, id
	}

	t.Run("pending order is cancelled", func(t *testing.T) {
		orders, id := newOrder(models.OrderStatusPending)
		svc := NewOrderService(orders, &fakeCartRepo{}, &fakeLoyaltyRepo{}, zap.NewNop())

		require.NoError(t, svc.Cancel(context.Background(), userID, id))
		assert.Equal(t, models.OrderStatusCancelled, orders.orders[id].Status)

		// re-cancelling is rejected, not a no-op
		assert.ErrorIs(t, svc.Cancel(context.Background(), userID, id), models.ErrCancellationNotAllowed)
	})

	t.Run("confirmed order cannot be cancelled", func(t *testing.T) {
		orders, id := newOrder(models.OrderStatusConfirmed)
		svc := NewOrderService(orders, &fakeCartRepo{}, &fakeLoyaltyRepo{}, zap.NewNop())

		assert.ErrorIs(t, svc.Cancel(context.Background(), userID, id), models.ErrCancellationNotAllowed)
		assert.Equal(t, models.OrderStatusConfirmed, orders.orders[id].Status)
	})

	t.Run("foreign order is not found", func(t *testing.T) {
		orders, id := newOrder(models.OrderStatusPending)
		svc := NewOrderService(orders, &fakeCartRepo{}, &fakeLoyaltyRepo{}, zap.NewNop())

		assert.ErrorIs(t, svc.Cancel(context.Background(), otherID, id), models.ErrDataNotFound)
	})

	t.Run("unknown order", func(t *testing.T) {
		svc := NewOrderService(newFakeOrderRepo(), &fakeCartRepo{}, &fakeLoyaltyRepo{}, zap.NewNop())

		assert.ErrorIs(t, svc.Cancel(context.Background(), userID, uuid.New()), models.ErrDataNotFound)
	})
}

func TestOrderService_SetStatus(t *testing.T) {
	userID := uuid.New()
	orders := newFakeOrderRepo()
	id := uuid.New()
	orders.orders[id] = &models.Order{ID: id, UserID: userID, Status: models.OrderStatusPending}
	svc := NewOrderService(orders, &fakeCartRepo{}, &fakeLoyaltyRepo{}, zap.NewNop())

	require.NoError(t, svc.SetStatus(context.Background(), id, models.OrderStatusConfirmed))
	assert.Equal(t, models.OrderStatusConfirmed, orders.orders[id].Status)

	var vErr *models.ValidationError
	err := svc.SetStatus(context.Background(), id, "SHIPPED")
	assert.ErrorAs(t, err, &vErr)

	assert.ErrorIs(t, svc.SetStatus(context.Background(), uuid.New(), models.OrderStatusConfirmed), models.ErrDataNotFound)
}
