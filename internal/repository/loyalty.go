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
	insertCardQuery = `
						INSERT INTO loyalty_cards (card_id, user_id, card_number, balance, is_active)
						VALUES ($1, $2, $3, $4, $5)
						RETURNING card_id, user_id, card_number, balance, is_active, created_at
`
	selectCardByUserIDQuery = `
						SELECT card_id, user_id, card_number, balance, is_active, created_at FROM loyalty_cards
						WHERE user_id = $1
`
	selectCardByIDQuery = `
						SELECT card_id, user_id, card_number, balance, is_active, created_at FROM loyalty_cards
						WHERE card_id = $1
`
	selectCardsQuery = `
						SELECT card_id, user_id, card_number, balance, is_active, created_at FROM loyalty_cards
						ORDER BY created_at DESC
`
	updateCardQuery = `
						UPDATE loyalty_cards
						SET card_number = $1, balance = $2, is_active = $3
						WHERE card_id = $4
`
	deleteCardQuery = `
						DELETE FROM loyalty_cards WHERE card_id = $1
`
	selectTransactionsByUserQuery = `
						SELECT t.transaction_id, t.card_id, t.order_id, t.amount, t.type, t.transaction_date, t.notes
						FROM bonus_transactions t
						JOIN loyalty_cards c ON c.card_id = t.card_id
						WHERE c.user_id = $1
						ORDER BY t.transaction_date DESC
`
)

// LoyaltyRepository implements LoyaltyRepository interface
type LoyaltyRepository struct {
	db *postgres.DB
}

// NewLoyaltyRepository creates new loyalty repository instance
func NewLoyaltyRepository(db *postgres.DB) *LoyaltyRepository {
	return &LoyaltyRepository{db: db}
}

// CreateCard inserts new loyalty card to database
func (lr *LoyaltyRepository) CreateCard(ctx context.Context, card *models.LoyaltyCard) (*models.LoyaltyCard, error) {
	err := lr.db.QueryRow(ctx, insertCardQuery, card.ID, card.UserID, card.CardNumber, card.Balance, card.Active).
		Scan(&card.ID, &card.UserID, &card.CardNumber, &card.Balance, &card.Active, &card.CreatedAt)
	if err != nil {
		if errCode := lr.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return card, nil
}

// GetCardByUserID returns loyalty card of a user
func (lr *LoyaltyRepository) GetCardByUserID(ctx context.Context, userID uuid.UUID) (*models.LoyaltyCard, error) {
	card := models.LoyaltyCard{}
	err := lr.db.QueryRow(ctx, selectCardByUserIDQuery, userID).
		Scan(&card.ID, &card.UserID, &card.CardNumber, &card.Balance, &card.Active, &card.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &card, nil
}

// GetCardByID returns loyalty card by id
func (lr *LoyaltyRepository) GetCardByID(ctx context.Context, id uuid.UUID) (*models.LoyaltyCard, error) {
	card := models.LoyaltyCard{}
	err := lr.db.QueryRow(ctx, selectCardByIDQuery, id).
		Scan(&card.ID, &card.UserID, &card.CardNumber, &card.Balance, &card.Active, &card.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &card, nil
}

// GetCards returns all loyalty cards
func (lr *LoyaltyRepository) GetCards(ctx context.Context) ([]models.LoyaltyCard, error) {
	rows, err := lr.db.Query(ctx, selectCardsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cards := []models.LoyaltyCard{}

	for rows.Next() {
		card := models.LoyaltyCard{}
		err = rows.Scan(&card.ID, &card.UserID, &card.CardNumber, &card.Balance, &card.Active, &card.CreatedAt)
		if err != nil {
			continue
		}
		cards = append(cards, card)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cards, nil
}

// UpdateCard updates loyalty card attributes
func (lr *LoyaltyRepository) UpdateCard(ctx context.Context, card *models.LoyaltyCard) error {
	cmd, err := lr.db.Exec(ctx, updateCardQuery, card.CardNumber, card.Balance, card.Active, card.ID)
	if err != nil {
		switch lr.db.ErrorCode(err) {
		case pgErrUniqueViolationCode:
			return models.ErrConflictData
		case pgErrCheckViolationCode:
			return models.ErrInsufficientBonus
		}
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// DeleteCard deletes loyalty card by id
func (lr *LoyaltyRepository) DeleteCard(ctx context.Context, id uuid.UUID) error {
	cmd, err := lr.db.Exec(ctx, deleteCardQuery, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// GetTransactionsByUserID returns the bonus ledger of a user, newest first
func (lr *LoyaltyRepository) GetTransactionsByUserID(ctx context.Context, userID uuid.UUID) ([]models.BonusTransaction, error) {
	rows, err := lr.db.Query(ctx, selectTransactionsByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.BonusTransaction{}

	for rows.Next() {
		tr := models.BonusTransaction{}
		err = rows.Scan(&tr.ID, &tr.CardID, &tr.OrderID, &tr.Amount, &tr.Type, &tr.TransactionDate, &tr.Notes)
		if err != nil {
			continue
		}
		transactions = append(transactions, tr)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}
