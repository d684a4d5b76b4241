package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/velnyk/cafepos/internal/models"
	"github.com/velnyk/cafepos/internal/repository/postgres"
)

const (
	insertOrderQuery = `
						INSERT INTO orders (order_id, user_id, order_date, total_amount, bonuses_earned, bonuses_used,
											status, notes, is_social, table_number, idempotency_key)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''))
`
	insertOrderLinkQuery = `
						INSERT INTO order_cart_items (order_id, cart_id) VALUES ($1, $2)
`
	deleteOrderLinksQuery = `
						DELETE FROM order_cart_items WHERE order_id = $1
`
	markCartLinesOrderedQuery = `
						UPDATE carts SET is_ordered = TRUE
						WHERE cart_id = ANY($1) AND NOT is_ordered
`
	selectActiveCardForUpdateQuery = `
						SELECT card_id FROM loyalty_cards
						WHERE user_id = $1 AND is_active
						FOR UPDATE
`
	adjustCardBalanceQuery = `
						UPDATE loyalty_cards SET balance = balance + $1
						WHERE card_id = $2
`
	insertBonusTransactionQuery = `
						INSERT INTO bonus_transactions (transaction_id, card_id, order_id, amount, type, notes)
						VALUES ($1, $2, $3, $4, $5, $6)
`
	selectOrderByIDQuery = `
						SELECT order_id, user_id, order_date, total_amount, bonuses_earned, bonuses_used,
							   status, notes, is_social, table_number, COALESCE(idempotency_key, '')
						FROM orders
						WHERE order_id = $1
`
	selectOrdersByUserIDQuery = `
						SELECT order_id, user_id, order_date, total_amount, bonuses_earned, bonuses_used,
							   status, notes, is_social, table_number, COALESCE(idempotency_key, '')
						FROM orders
						WHERE user_id = $1
						ORDER BY order_date DESC
`
	selectOrdersQuery = `
						SELECT order_id, user_id, order_date, total_amount, bonuses_earned, bonuses_used,
							   status, notes, is_social, table_number, COALESCE(idempotency_key, '')
						FROM orders
						ORDER BY order_date DESC
`
	selectOrdersByStatusQuery = `
						SELECT order_id, user_id, order_date, total_amount, bonuses_earned, bonuses_used,
							   status, notes, is_social, table_number, COALESCE(idempotency_key, '')
						FROM orders
						WHERE status = $1
						ORDER BY order_date DESC
`
	selectTableOccupiedQuery = `
						SELECT EXISTS (
							SELECT 1 FROM orders
							WHERE table_number = $1 AND status IN ('PENDING', 'CONFIRMED')
						)
`
	updateOrderQuery = `
						UPDATE orders
						SET order_date = $1, total_amount = $2, bonuses_earned = $3, bonuses_used = $4,
							status = $5, notes = $6, is_social = $7, table_number = $8
						WHERE order_id = $9
`
	updateOrderStatusQuery = `
						UPDATE orders SET status = $1 WHERE order_id = $2
`
	selectCartIDsByOrderQuery = `
						SELECT cart_id FROM order_cart_items WHERE order_id = $1
`

	activeTableConstraint    = "orders_active_table_key"
	idempotencyKeyConstraint = "orders_idempotency_key_key"
)

// OrderRepository implements OrderRepository interface
type OrderRepository struct {
	db *postgres.DB
}

// NewOrderRepository creates new order repository instance
func NewOrderRepository(db *postgres.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrder persists a checkout in a single transaction: the order row,
// its links to the consumed cart lines, the ordered flag of those lines,
// the loyalty balance adjustment and the bonus ledger rows. Either the
// whole checkout commits or none of it does.
func (or *OrderRepository) CreateOrder(ctx context.Context, order *models.Order, cartIDs []uuid.UUID) (*models.Order, error) {
	tx, err := or.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, insertOrderQuery,
		order.ID, order.UserID, order.OrderDate, order.TotalAmount, order.BonusesEarned, order.BonusesUsed,
		order.Status, order.Notes, order.IsSocial, order.TableNumber, order.IdempotencyKey)
	if err != nil {
		return nil, or.mapOrderError(err)
	}

	for _, cartID := range cartIDs {
		if _, err := tx.Exec(ctx, insertOrderLinkQuery, order.ID, cartID); err != nil {
			return nil, err
		}
	}

	cmd, err := tx.Exec(ctx, markCartLinesOrderedQuery, cartIDs)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() != int64(len(cartIDs)) {
		// a line was consumed by a concurrent checkout
		return nil, models.ErrConflictData
	}

	if err := or.applyBonuses(ctx, tx, order); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, or.mapOrderError(err)
	}

	return order, nil
}

// applyBonuses adjusts the loyalty balance and writes ledger rows for the
// order within tx. A missing or inactive card with nothing redeemed means
// no accrual: deactivated cards neither earn nor redeem.
func (or *OrderRepository) applyBonuses(ctx context.Context, tx pgx.Tx, order *models.Order) error {
	if order.BonusesUsed == 0 && order.BonusesEarned == 0 {
		return nil
	}

	var cardID uuid.UUID
	err := tx.QueryRow(ctx, selectActiveCardForUpdateQuery, order.UserID).Scan(&cardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if order.BonusesUsed > 0 {
				return models.ErrNoLoyaltyAccount
			}
			return nil
		}
		return err
	}

	if _, err := tx.Exec(ctx, adjustCardBalanceQuery, order.BalanceDelta(), cardID); err != nil {
		if errCode := or.db.ErrorCode(err); errCode == pgErrCheckViolationCode {
			return models.ErrInsufficientBonus
		}
		return err
	}

	if order.BonusesUsed > 0 {
		_, err := tx.Exec(ctx, insertBonusTransactionQuery,
			uuid.New(), cardID, order.ID, order.BonusesUsed, models.BonusRedeemed, "redeemed at checkout")
		if err != nil {
			return err
		}
	}
	if order.BonusesEarned > 0 {
		_, err := tx.Exec(ctx, insertBonusTransactionQuery,
			uuid.New(), cardID, order.ID, order.BonusesEarned, models.BonusEarned, "earned at checkout")
		if err != nil {
			return err
		}
	}

	return nil
}

func (or *OrderRepository) mapOrderError(err error) error {
	if or.db.ErrorCode(err) == pgErrUniqueViolationCode {
		switch or.db.ErrorConstraint(err) {
		case activeTableConstraint:
			return models.ErrTableOccupied
		case idempotencyKeyConstraint:
			return models.ErrDuplicateCheckout
		}
		return models.ErrConflictData
	}
	return err
}

// GetOrderByID returns order by id
func (or *OrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order := models.Order{}
	err := or.db.QueryRow(ctx, selectOrderByIDQuery, id).
		Scan(&order.ID, &order.UserID, &order.OrderDate, &order.TotalAmount, &order.BonusesEarned, &order.BonusesUsed,
			&order.Status, &order.Notes, &order.IsSocial, &order.TableNumber, &order.IdempotencyKey)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &order, nil
}

// GetOrdersByUserID returns user orders, newest first
func (or *OrderRepository) GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	rows, err := or.db.Query(ctx, selectOrdersByUserIDQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

// GetOrders returns all orders, or orders of a single status when status
// is not empty
func (or *OrderRepository) GetOrders(ctx context.Context, status string) ([]models.Order, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if status != "" {
		rows, err = or.db.Query(ctx, selectOrdersByStatusQuery, status)
	} else {
		rows, err = or.db.Query(ctx, selectOrdersQuery)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func scanOrders(rows pgx.Rows) ([]models.Order, error) {
	orders := []models.Order{}

	for rows.Next() {
		order := models.Order{}
		err := rows.Scan(&order.ID, &order.UserID, &order.OrderDate, &order.TotalAmount, &order.BonusesEarned,
			&order.BonusesUsed, &order.Status, &order.Notes, &order.IsSocial, &order.TableNumber, &order.IdempotencyKey)
		if err != nil {
			continue
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// TableOccupied reports whether an order in PENDING or CONFIRMED status
// already holds the table
func (or *OrderRepository) TableOccupied(ctx context.Context, tableNumber int) (bool, error) {
	var occupied bool
	if err := or.db.QueryRow(ctx, selectTableOccupiedQuery, tableNumber).Scan(&occupied); err != nil {
		return false, err
	}

	return occupied, nil
}

// UpdateOrder updates an order and atomically replaces the full set of its
// cart line links
func (or *OrderRepository) UpdateOrder(ctx context.Context, order *models.Order, cartIDs []uuid.UUID) (*models.Order, error) {
	tx, err := or.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, updateOrderQuery,
		order.OrderDate, order.TotalAmount, order.BonusesEarned, order.BonusesUsed,
		order.Status, order.Notes, order.IsSocial, order.TableNumber, order.ID)
	if err != nil {
		return nil, or.mapOrderError(err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, models.ErrDataNotFound
	}

	if _, err := tx.Exec(ctx, deleteOrderLinksQuery, order.ID); err != nil {
		return nil, err
	}
	for _, cartID := range cartIDs {
		if _, err := tx.Exec(ctx, insertOrderLinkQuery, order.ID, cartID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, or.mapOrderError(err)
	}

	return order, nil
}

// UpdateOrderStatus updates order status
func (or *OrderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) error {
	cmd, err := or.db.Exec(ctx, updateOrderStatusQuery, status, id)
	if err != nil {
		return or.mapOrderError(err)
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// GetCartIDsByOrderID returns ids of the cart lines linked to an order
func (or *OrderRepository) GetCartIDsByOrderID(ctx context.Context, orderID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := or.db.Query(ctx, selectCartIDsByOrderQuery, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cartIDs := []uuid.UUID{}

	for rows.Next() {
		var cartID uuid.UUID
		if err := rows.Scan(&cartID); err != nil {
			continue
		}
		cartIDs = append(cartIDs, cartID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cartIDs, nil
}
