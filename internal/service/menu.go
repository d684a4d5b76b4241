package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/velnyk/cafepos/internal/models"
	"github.com/velnyk/cafepos/internal/validation"
)

// CategoryRepository is interface for interacting with category-related data
type CategoryRepository interface {
	// CreateCategory inserts new category to database
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	// GetCategoryByID returns category by id
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	// GetCategories returns all categories
	GetCategories(ctx context.Context) ([]models.Category, error)
	// UpdateCategory updates category name
	UpdateCategory(ctx context.Context, category *models.Category) error
	// DeleteCategory deletes category by id
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

// MenuItemRepository is interface for interacting with menu item data
type MenuItemRepository interface {
	MenuItemCatalog
	// CreateMenuItem inserts new menu item to database
	CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	// GetMenuItems returns menu items, optionally of a single category
	GetMenuItems(ctx context.Context, categoryID *uuid.UUID) ([]models.MenuItem, error)
	// UpdateMenuItem updates menu item attributes
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) error
	// DeleteMenuItem deletes menu item by id
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
}

// MenuService implements MenuService interface
type MenuService struct {
	categories CategoryRepository
	items      MenuItemRepository
}

// NewMenuService creates new MenuService instance
func NewMenuService(categories CategoryRepository, items MenuItemRepository) *MenuService {
	return &MenuService{
		categories: categories,
		items:      items,
	}
}

// ListCategories returns all menu categories
func (ms *MenuService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return ms.categories.GetCategories(ctx)
}

// CreateCategory creates a new menu category
func (ms *MenuService) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	category := &models.Category{
		ID:   uuid.New(),
		Name: name,
	}

	if reasons := validation.ValidateCategory(category); len(reasons) > 0 {
		return nil, models.NewValidationError("category", reasons)
	}

	return ms.categories.CreateCategory(ctx, category)
}

// UpdateCategory renames an existing category
func (ms *MenuService) UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*models.Category, error) {
	category := &models.Category{
		ID:   id,
		Name: name,
	}

	if reasons := validation.ValidateCategory(category); len(reasons) > 0 {
		return nil, models.NewValidationError("category", reasons)
	}

	if err := ms.categories.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory deletes category by id
func (ms *MenuService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return ms.categories.DeleteCategory(ctx, id)
}

// ListItems returns menu items, optionally of a single category
func (ms *MenuService) ListItems(ctx context.Context, categoryID *uuid.UUID) ([]models.MenuItem, error) {
	return ms.items.GetMenuItems(ctx, categoryID)
}

// GetItem returns menu item by id
func (ms *MenuService) GetItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	return ms.items.GetMenuItemByID(ctx, id)
}

// CreateItem validates and creates a new menu item in an existing category
func (ms *MenuService) CreateItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if reasons := validation.ValidateMenuItem(item); len(reasons) > 0 {
		return nil, models.NewValidationError("menu item", reasons)
	}

	if _, err := ms.categories.GetCategoryByID(ctx, item.CategoryID); err != nil {
		return nil, err
	}

	item.ID = uuid.New()

	return ms.items.CreateMenuItem(ctx, item)
}

// UpdateItem validates and updates an existing menu item
func (ms *MenuService) UpdateItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if reasons := validation.ValidateMenuItem(item); len(reasons) > 0 {
		return nil, models.NewValidationError("menu item", reasons)
	}

	if _, err := ms.categories.GetCategoryByID(ctx, item.CategoryID); err != nil {
		return nil, err
	}

	if err := ms.items.UpdateMenuItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// DeleteItem deletes menu item by id
func (ms *MenuService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return ms.items.DeleteMenuItem(ctx, id)
}
