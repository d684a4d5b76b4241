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
	insertCategoryQuery = `
						INSERT INTO categories (category_id, category_name)
						VALUES ($1, $2)
						RETURNING category_id, category_name
`
	selectCategoryByIDQuery = `
						SELECT category_id, category_name FROM categories
						WHERE category_id = $1
`
	selectCategoriesQuery = `
						SELECT category_id, category_name FROM categories
						ORDER BY category_name
`
	updateCategoryQuery = `
						UPDATE categories
						SET category_name = $1
						WHERE category_id = $2
`
	deleteCategoryQuery = `
						DELETE FROM categories WHERE category_id = $1
`
)

// CategoryRepository implements CategoryRepository interface
type CategoryRepository struct {
	db *postgres.DB
}

// NewCategoryRepository creates new category repository instance
func NewCategoryRepository(db *postgres.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// CreateCategory inserts new category to database
func (cr *CategoryRepository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	err := cr.db.QueryRow(ctx, insertCategoryQuery, category.ID, category.Name).
		Scan(&category.ID, &category.Name)
	if err != nil {
		if errCode := cr.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return category, nil
}

// GetCategoryByID returns category by id
func (cr *CategoryRepository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	category := models.Category{}
	err := cr.db.QueryRow(ctx, selectCategoryByIDQuery, id).Scan(&category.ID, &category.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &category, nil
}

// GetCategories returns all categories ordered by name
func (cr *CategoryRepository) GetCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := cr.db.Query(ctx, selectCategoriesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}

	for rows.Next() {
		category := models.Category{}
		err = rows.Scan(&category.ID, &category.Name)
		if err != nil {
			continue
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

// UpdateCategory updates category name
func (cr *CategoryRepository) UpdateCategory(ctx context.Context, category *models.Category) error {
	cmd, err := cr.db.Exec(ctx, updateCategoryQuery, category.Name, category.ID)
	if err != nil {
		if errCode := cr.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return models.ErrConflictData
		}
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// DeleteCategory deletes category by id
func (cr *CategoryRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	cmd, err := cr.db.Exec(ctx, deleteCategoryQuery, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}
