package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/velnyk/cafepos/internal/models"
	"github.com/velnyk/cafepos/internal/validation"
)

// CartRepository is interface for interacting with cart-related data
type CartRepository interface {
	// CreateLine inserts new cart line to database
	CreateLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error)
	// GetUnorderedByUserID returns the active cart of a user
	GetUnorderedByUserID(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error)
	// GetLineByID returns cart line by id
	GetLineByID(ctx context.Context, id uuid.UUID) (*models.CartLine, error)
	// DeleteLine removes an unordered cart line
	DeleteLine(ctx context.Context, id uuid.UUID) error
}

// MenuItemCatalog resolves menu items for pricing
type MenuItemCatalog interface {
	// GetMenuItemByID returns menu item by id
	GetMenuItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
}

// CartService implements CartService interface
type CartService struct {
	repo    CartRepository
	catalog MenuItemCatalog
}

// NewCartService creates new CartService instance
func NewCartService(repo CartRepository, catalog MenuItemCatalog) *CartService {
	return &CartService{
		repo:    repo,
		catalog: catalog,
	}
}

// AddItem adds a menu item to the user's cart. The subtotal is computed
// from the catalog price at the time of adding.
func (cs *CartService) AddItem(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.CartLine, error) {
	item, err := cs.catalog.GetMenuItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	line := &models.CartLine{
		ID:       uuid.New(),
		UserID:   userID,
		ItemID:   item.ID,
		Quantity: quantity,
		Subtotal: item.Price * float64(quantity),
	}

	if reasons := validation.ValidateCartLine(line); len(reasons) > 0 {
		return nil, models.NewValidationError("cart line", reasons)
	}

	return cs.repo.CreateLine(ctx, line)
}

// ListCart returns the user's active cart lines
func (cs *CartService) ListCart(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	return cs.repo.GetUnorderedByUserID(ctx, userID)
}

// RemoveLine removes a cart line owned by the user. Ordered lines
// cannot be removed.
func (cs *CartService) RemoveLine(ctx context.Context, userID, lineID uuid.UUID) error {
	line, err := cs.repo.GetLineByID(ctx, lineID)
	if err != nil {
		return err
	}
	if line.UserID != userID {
		return models.ErrDataNotFound
	}
	if line.Ordered {
		return models.ErrConflictData
	}

	return cs.repo.DeleteLine(ctx, lineID)
}
