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
	insertMenuItemQuery = `
						INSERT INTO menu_items (item_id, category_id, name, description, price, calories, ingredients)
						VALUES ($1, $2, $3, $4, $5, $6, $7)
						RETURNING item_id, category_id, name, description, price, calories, ingredients
`
	selectMenuItemByIDQuery = `
						SELECT item_id, category_id, name, description, price, calories, ingredients FROM menu_items
						WHERE item_id = $1
`
	selectMenuItemsQuery = `
						SELECT item_id, category_id, name, description, price, calories, ingredients FROM menu_items
						ORDER BY name
`
	selectMenuItemsByCategoryQuery = `
						SELECT item_id, category_id, name, description, price, calories, ingredients FROM menu_items
						WHERE category_id = $1
						ORDER BY name
`
	updateMenuItemQuery = `
						UPDATE menu_items
						SET category_id = $1, name = $2, description = $3, price = $4, calories = $5, ingredients = $6
						WHERE item_id = $7
`
	deleteMenuItemQuery = `
						DELETE FROM menu_items WHERE item_id = $1
`
)

// MenuItemRepository implements MenuItemRepository interface
type MenuItemRepository struct {
	db *postgres.DB
}

// NewMenuItemRepository creates new menu item repository instance
func NewMenuItemRepository(db *postgres.DB) *MenuItemRepository {
	return &MenuItemRepository{db: db}
}

// CreateMenuItem inserts new menu item to database
func (mr *MenuItemRepository) CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	err := mr.db.QueryRow(ctx, insertMenuItemQuery,
		item.ID, item.CategoryID, item.Name, item.Description, item.Price, item.Calories, item.Ingredients).
		Scan(&item.ID, &item.CategoryID, &item.Name, &item.Description, &item.Price, &item.Calories, &item.Ingredients)
	if err != nil {
		if errCode := mr.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return item, nil
}

// GetMenuItemByID returns menu item by id
func (mr *MenuItemRepository) GetMenuItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	item := models.MenuItem{}
	err := mr.db.QueryRow(ctx, selectMenuItemByIDQuery, id).
		Scan(&item.ID, &item.CategoryID, &item.Name, &item.Description, &item.Price, &item.Calories, &item.Ingredients)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &item, nil
}

// GetMenuItems returns all menu items, or items of a single category
// when categoryID is not nil
func (mr *MenuItemRepository) GetMenuItems(ctx context.Context, categoryID *uuid.UUID) ([]models.MenuItem, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if categoryID != nil {
		rows, err = mr.db.Query(ctx, selectMenuItemsByCategoryQuery, *categoryID)
	} else {
		rows, err = mr.db.Query(ctx, selectMenuItemsQuery)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.MenuItem{}

	for rows.Next() {
		item := models.MenuItem{}
		err = rows.Scan(&item.ID, &item.CategoryID, &item.Name, &item.Description, &item.Price, &item.Calories, &item.Ingredients)
		if err != nil {
			continue
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// UpdateMenuItem updates menu item attributes
func (mr *MenuItemRepository) UpdateMenuItem(ctx context.Context, item *models.MenuItem) error {
	cmd, err := mr.db.Exec(ctx, updateMenuItemQuery,
		item.CategoryID, item.Name, item.Description, item.Price, item.Calories, item.Ingredients, item.ID)
	if err != nil {
		if errCode := mr.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return models.ErrConflictData
		}
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// DeleteMenuItem deletes menu item by id
func (mr *MenuItemRepository) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	cmd, err := mr.db.Exec(ctx, deleteMenuItemQuery, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}
