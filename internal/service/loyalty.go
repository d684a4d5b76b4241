package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/velnyk/cafepos/internal/models"
	"github.com/velnyk/cafepos/internal/validation"
)

// LoyaltyRepository is interface for interacting with loyalty-related data
type LoyaltyRepository interface {
	CheckoutLoyaltyRepository
	// CreateCard inserts new loyalty card to database
	CreateCard(ctx context.Context, card *models.LoyaltyCard) (*models.LoyaltyCard, error)
	// GetCardByID returns loyalty card by id
	GetCardByID(ctx context.Context, id uuid.UUID) (*models.LoyaltyCard, error)
	// GetCards returns all loyalty cards
	GetCards(ctx context.Context) ([]models.LoyaltyCard, error)
	// UpdateCard updates loyalty card attributes
	UpdateCard(ctx context.Context, card *models.LoyaltyCard) error
	// DeleteCard deletes loyalty card by id
	DeleteCard(ctx context.Context, id uuid.UUID) error
	// GetTransactionsByUserID returns the bonus ledger of a user
	GetTransactionsByUserID(ctx context.Context, userID uuid.UUID) ([]models.BonusTransaction, error)
}

// LoyaltyService implements LoyaltyService interface
type LoyaltyService struct {
	repo LoyaltyRepository
}

// NewLoyaltyService creates new LoyaltyService instance
func NewLoyaltyService(repo LoyaltyRepository) *LoyaltyService {
	return &LoyaltyService{repo: repo}
}

// GetCard returns the loyalty card of a user
func (ls *LoyaltyService) GetCard(ctx context.Context, userID uuid.UUID) (*models.LoyaltyCard, error) {
	return ls.repo.GetCardByUserID(ctx, userID)
}

// ListTransactions returns the bonus ledger of a user, newest first
func (ls *LoyaltyService) ListTransactions(ctx context.Context, userID uuid.UUID) ([]models.BonusTransaction, error) {
	return ls.repo.GetTransactionsByUserID(ctx, userID)
}

// EnrollCard enrolls a user into the loyalty program. The card number must
// be all digits and pass the Luhn checksum.
func (ls *LoyaltyService) EnrollCard(ctx context.Context, userID uuid.UUID, cardNumber string, balance float64) (*models.LoyaltyCard, error) {
	if err := validation.ValidateCardNumber(cardNumber); err != nil {
		return nil, err
	}
	if balance < 0 {
		return nil, models.NewValidationError("loyalty card", []string{"balance cannot be negative"})
	}

	card := &models.LoyaltyCard{
		ID:         uuid.New(),
		UserID:     userID,
		CardNumber: cardNumber,
		Balance:    balance,
		Active:     true,
	}

	return ls.repo.CreateCard(ctx, card)
}

// ListCards returns all loyalty cards
func (ls *LoyaltyService) ListCards(ctx context.Context) ([]models.LoyaltyCard, error) {
	return ls.repo.GetCards(ctx)
}

// UpdateCard updates card number, balance and active flag of a card
func (ls *LoyaltyService) UpdateCard(ctx context.Context, id uuid.UUID, cardNumber string, balance float64, active bool) (*models.LoyaltyCard, error) {
	if err := validation.ValidateCardNumber(cardNumber); err != nil {
		return nil, err
	}
	if balance < 0 {
		return nil, models.NewValidationError("loyalty card", []string{"balance cannot be negative"})
	}

	card, err := ls.repo.GetCardByID(ctx, id)
	if err != nil {
		return nil, err
	}

	card.CardNumber = cardNumber
	card.Balance = balance
	card.Active = active

	if err := ls.repo.UpdateCard(ctx, card); err != nil {
		return nil, err
	}

	return card, nil
}

// DeleteCard deletes loyalty card by id
func (ls *LoyaltyService) DeleteCard(ctx context.Context, id uuid.UUID) error {
	return ls.repo.DeleteCard(ctx, id)
}
