package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/velnyk/cafepos/internal/models"
	"github.com/velnyk/cafepos/internal/validation"
	"go.uber.org/zap"
)

// bonus accrual rate on the amount paid after redemption
const bonusRate = 0.05

// OrderRepository is interface for interacting with order-related data
type OrderRepository interface {
	// CreateOrder persists a checkout atomically: order, cart line links,
	// ordered flags and the loyalty balance adjustment
	CreateOrder(ctx context.Context, order *models.Order, cartIDs []uuid.UUID) (*models.Order, error)
	// GetOrderByID returns order by id
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// GetOrdersByUserID returns user orders
	GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	// GetOrders returns all orders, optionally filtered by status
	GetOrders(ctx context.Context, status string) ([]models.Order, error)
	// TableOccupied reports whether an active order holds the table
	TableOccupied(ctx context.Context, tableNumber int) (bool, error)
	// UpdateOrder updates an order replacing its cart line links
	UpdateOrder(ctx context.Context, order *models.Order, cartIDs []uuid.UUID) (*models.Order, error)
	// UpdateOrderStatus updates order status
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error
	// GetCartIDsByOrderID returns ids of cart lines linked to an order
	GetCartIDsByOrderID(ctx context.Context, orderID uuid.UUID) ([]uuid.UUID, error)
}

// CheckoutCartRepository is the cart access the checkout workflow needs
type CheckoutCartRepository interface {
	// GetUnorderedByUserID returns the active cart of a user
	GetUnorderedByUserID(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
}

// CheckoutLoyaltyRepository is the loyalty access the checkout workflow needs
type CheckoutLoyaltyRepository interface {
	// GetCardByUserID returns loyalty card of a user
	GetCardByUserID(ctx context.Context, userID uuid.UUID) (*models.LoyaltyCard, error)
}

// CheckoutInput is one checkout submission. BonusToUse and TableNumber
// arrive as free text from the terminal and are parsed here.
type CheckoutInput struct {
	UserID         uuid.UUID
	BonusToUse     string
	TableNumber    string
	Notes          string
	IsSocial       bool
	IdempotencyKey string
}

// CheckoutResult is the outcome of a successful checkout
type CheckoutResult struct {
	Order       *models.Order
	FinalAmount float64
}

// OrderService implements OrderService interface
type OrderService struct {
	orders  OrderRepository
	carts   CheckoutCartRepository
	loyalty CheckoutLoyaltyRepository
	logger  *zap.Logger
}

// NewOrderService creates new OrderService instance
func NewOrderService(orders OrderRepository, carts CheckoutCartRepository, loyalty CheckoutLoyaltyRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orders:  orders,
		carts:   carts,
		loyalty: loyalty,
		logger:  logger,
	}
}

// Checkout validates the user's active cart and bonus redemption request,
// then persists the order with all its side effects in one transaction.
// Validation is fail-fast: the first failure wins and nothing is written.
func (os *OrderService) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	if in.UserID == uuid.Nil {
		return nil, models.ErrNotAuthenticated
	}

	lines, err := os.carts.GetUnorderedByUserID(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("loading cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, models.ErrEmptyCart
	}

	for _, line := range lines {
		if reasons := validation.ValidateCartLine(&line); len(reasons) > 0 {
			return nil, fmt.Errorf("%w: %s", models.ErrInvalidCartLine, strings.Join(reasons, "; "))
		}
	}

	bonusToUse, err := parseBonusAmount(in.BonusToUse)
	if err != nil {
		return nil, err
	}

	var totalAmount float64
	for _, line := range lines {
		totalAmount += line.Subtotal
	}

	card, err := os.loyalty.GetCardByUserID(ctx, in.UserID)
	if err != nil {
		if !errors.Is(err, models.ErrDataNotFound) {
			return nil, fmt.Errorf("loading loyalty card: %w", err)
		}
		card = nil
	}

	if bonusToUse > 0 {
		if card == nil || !card.Active {
			return nil, models.ErrNoLoyaltyAccount
		}
		if bonusToUse > card.Balance {
			return nil, models.ErrInsufficientBonus
		}
		if bonusToUse > totalAmount {
			return nil, models.ErrBonusExceedsTotal
		}
	}

	tableNumber, err := parseTableNumber(in.TableNumber)
	if err != nil {
		return nil, err
	}

	occupied, err := os.orders.TableOccupied(ctx, tableNumber)
	if err != nil {
		return nil, fmt.Errorf("checking table occupancy: %w", err)
	}
	if occupied {
		return nil, models.ErrTableOccupied
	}

	bonusesEarned := (totalAmount - bonusToUse) * bonusRate

	order := &models.Order{
		ID:             uuid.New(),
		UserID:         in.UserID,
		OrderDate:      time.Now(),
		TotalAmount:    totalAmount,
		BonusesEarned:  bonusesEarned,
		BonusesUsed:    bonusToUse,
		Status:         models.OrderStatusPending,
		Notes:          strings.TrimSpace(in.Notes),
		IsSocial:       in.IsSocial,
		TableNumber:    &tableNumber,
		IdempotencyKey: in.IdempotencyKey,
	}

	if reasons := validation.ValidateOrder(order); len(reasons) > 0 {
		return nil, models.NewValidationError("order", reasons)
	}

	cartIDs := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		cartIDs = append(cartIDs, line.ID)
	}

	created, err := os.orders.CreateOrder(ctx, order, cartIDs)
	if err != nil {
		return nil, err
	}

	os.logger.Info("order placed",
		zap.String("order_id", created.ID.String()),
		zap.Float64("total", created.TotalAmount),
		zap.Float64("bonuses_used", created.BonusesUsed),
		zap.Float64("bonuses_earned", created.BonusesEarned),
		zap.Intp("table", created.TableNumber))

	return &CheckoutResult{
		Order:       created,
		FinalAmount: totalAmount - bonusToUse,
	}, nil
}

// parseBonusAmount parses the bonus redemption request. Empty input means
// no redemption.
func parseBonusAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, models.ErrInvalidAmount
	}
	if amount < 0 {
		return 0, models.ErrNegativeBonus
	}
	return amount, nil
}

// parseTableNumber parses the table number, which must be a positive integer.
func parseTableNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, models.ErrInvalidTable
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, models.ErrInvalidTable
	}
	return n, nil
}

// ListUserOrders returns list of user orders
func (os *OrderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return os.orders.GetOrdersByUserID(ctx, userID)
}

// GetUserOrder returns one order of a user with its linked cart line ids
func (os *OrderService) GetUserOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, []uuid.UUID, error) {
	order, err := os.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order.UserID != userID {
		return nil, nil, models.ErrDataNotFound
	}

	cartIDs, err := os.orders.GetCartIDsByOrderID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	return order, cartIDs, nil
}

// Cancel moves a PENDING order of the owning user to CANCELLED. Any other
// status, including CANCELLED itself, is rejected. Bonuses accrued or
// redeemed by the order are not reversed.
func (os *OrderService) Cancel(ctx context.Context, userID, orderID uuid.UUID) error {
	order, err := os.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.UserID != userID {
		return models.ErrDataNotFound
	}
	if order.Status != models.OrderStatusPending {
		return models.ErrCancellationNotAllowed
	}

	return os.orders.UpdateOrderStatus(ctx, orderID, models.OrderStatusCancelled)
}

// ListOrders returns all orders, optionally filtered by status
func (os *OrderService) ListOrders(ctx context.Context, status string) ([]models.Order, error) {
	if status != "" && !models.ValidStatus(status) {
		return nil, models.NewValidationError("order", []string{"order status is unknown"})
	}
	return os.orders.GetOrders(ctx, status)
}

// SetStatus sets an order to a staff-driven status
func (os *OrderService) SetStatus(ctx context.Context, orderID uuid.UUID, status string) error {
	if !models.ValidStatus(status) {
		return models.NewValidationError("order", []string{"order status is unknown"})
	}
	if _, err := os.orders.GetOrderByID(ctx, orderID); err != nil {
		return err
	}
	return os.orders.UpdateOrderStatus(ctx, orderID, status)
}

// Update replaces an order and the full set of its cart line links
func (os *OrderService) Update(ctx context.Context, order *models.Order, cartIDs []uuid.UUID) (*models.Order, error) {
	if reasons := validation.ValidateOrder(order); len(reasons) > 0 {
		return nil, models.NewValidationError("order", reasons)
	}
	return os.orders.UpdateOrder(ctx, order, cartIDs)
}
