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
	insertCartLineQuery = `
						INSERT INTO carts (cart_id, user_id, item_id, quantity, subtotal)
						VALUES ($1, $2, $3, $4, $5)
						RETURNING cart_id, user_id, item_id, quantity, subtotal, is_ordered
`
	selectUnorderedByUserQuery = `
						SELECT cart_id, user_id, item_id, quantity, subtotal, is_ordered FROM carts
						WHERE user_id = $1 AND NOT is_ordered
`
	selectCartLineByIDQuery = `
						SELECT cart_id, user_id, item_id, quantity, subtotal, is_ordered FROM carts
						WHERE cart_id = $1
`
	deleteCartLineQuery = `
						DELETE FROM carts WHERE cart_id = $1 AND NOT is_ordered
`
)

// CartRepository implements CartRepository interface
type CartRepository struct {
	db *postgres.DB
}

// NewCartRepository creates new cart repository instance
func NewCartRepository(db *postgres.DB) *CartRepository {
	return &CartRepository{db: db}
}

// CreateLine inserts new cart line to database
func (cr *CartRepository) CreateLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error) {
	err := cr.db.QueryRow(ctx, insertCartLineQuery, line.ID, line.UserID, line.ItemID, line.Quantity, line.Subtotal).
		Scan(&line.ID, &line.UserID, &line.ItemID, &line.Quantity, &line.Subtotal, &line.Ordered)
	if err != nil {
		return nil, err
	}

	return line, nil
}

// GetUnorderedByUserID returns the active cart of a user: all lines
// not yet consumed by an order
func (cr *CartRepository) GetUnorderedByUserID(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	rows, err := cr.db.Query(ctx, selectUnorderedByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []models.CartLine{}

	for rows.Next() {
		line := models.CartLine{}
		err = rows.Scan(&line.ID, &line.UserID, &line.ItemID, &line.Quantity, &line.Subtotal, &line.Ordered)
		if err != nil {
			continue
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// GetLineByID returns cart line by id
func (cr *CartRepository) GetLineByID(ctx context.Context, id uuid.UUID) (*models.CartLine, error) {
	line := models.CartLine{}
	err := cr.db.QueryRow(ctx, selectCartLineByIDQuery, id).
		Scan(&line.ID, &line.UserID, &line.ItemID, &line.Quantity, &line.Subtotal, &line.Ordered)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &line, nil
}

// DeleteLine removes an unordered cart line
func (cr *CartRepository) DeleteLine(ctx context.Context, id uuid.UUID) error {
	cmd, err := cr.db.Exec(ctx, deleteCartLineQuery, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}
