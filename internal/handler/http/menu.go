package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/velnyk/cafepos/internal/models"
)

type MenuService interface {
	// ListCategories returns all menu categories
	ListCategories(ctx context.Context) ([]models.Category, error)
	// CreateCategory creates a new menu category
	CreateCategory(ctx context.Context, name string) (*models.Category, error)
	// UpdateCategory renames an existing category
	UpdateCategory(ctx context.Context, id uuid.UUID, name string) (*models.Category, error)
	// DeleteCategory deletes category by id
	DeleteCategory(ctx context.Context, id uuid.UUID) error
	// ListItems returns menu items, optionally of a single category
	ListItems(ctx context.Context, categoryID *uuid.UUID) ([]models.MenuItem, error)
	// GetItem returns menu item by id
	GetItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	// CreateItem creates a new menu item
	CreateItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	// UpdateItem updates an existing menu item
	UpdateItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	// DeleteItem deletes menu item by id
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

// MenuHandler represents HTTP handler for menu-related requests
type MenuHandler struct {
	svc MenuService
}

// NewMenuHandler creates new MenuHandler instance
func NewMenuHandler(svc MenuService) *MenuHandler {
	return &MenuHandler{svc: svc}
}

type categoryRequest struct {
	Name string `json:"name"`
}

type categoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type menuItemRequest struct {
	CategoryID  string  `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Calories    *int    `json:"calories"`
	Ingredients string  `json:"ingredients"`
}

type menuItemResponse struct {
	ID          string  `json:"id"`
	CategoryID  string  `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Calories    *int    `json:"calories,omitempty"`
	Ingredients string  `json:"ingredients,omitempty"`
}

func toMenuItemResponse(item *models.MenuItem) menuItemResponse {
	return menuItemResponse{
		ID:          item.ID.String(),
		CategoryID:  item.CategoryID.String(),
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Calories:    item.Calories,
		Ingredients: item.Ingredients,
	}
}

// ListCategories returns all menu categories
// 200 — успішна обробка запиту;
// 500 — внутрішня помилка сервера.
func (mh *MenuHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := mh.svc.ListCategories(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := make([]categoryResponse, 0, len(categories))
		for _, category := range categories {
			resp = append(resp, categoryResponse{ID: category.ID.String(), Name: category.Name})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

// ListItems returns menu items, optionally filtered by ?category=
// 200 — успішна обробка запиту;
// 422 — невірний ідентифікатор категорії;
// 500 — внутрішня помилка сервера.
func (mh *MenuHandler) ListItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var categoryID *uuid.UUID
		if raw := r.URL.Query().Get("category"); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				http.Error(w, "invalid category id", http.StatusUnprocessableEntity)
				return
			}
			categoryID = &id
		}

		items, err := mh.svc.ListItems(r.Context(), categoryID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := make([]menuItemResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, toMenuItemResponse(&item))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

// GetItem returns a single menu item
// 200 — успішна обробка запиту;
// 404 — страву не знайдено;
// 422 — невірний ідентифікатор страви;
// 500 — внутрішня помилка сервера.
func (mh *MenuHandler) GetItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid item id", http.StatusUnprocessableEntity)
			return
		}

		item, err := mh.svc.GetItem(r.Context(), itemID)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "menu item not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(toMenuItemResponse(item)); err != nil {
			return
		}
	}
}

// CreateCategory creates a new menu category
// 201 — категорію створено;
// 400 — невірний формат запиту;
// 409 — категорія з такою назвою вже існує;
// 422 — назва не проходить валідацію;
// 500 — внутрішня помилка сервера.
func (mh *MenuHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		category, err := mh.svc.CreateCategory(r.Context(), req.Name)
		if err != nil {
			var vErr *models.ValidationError
			switch {
			case errors.Is(err, models.ErrConflictData):
				http.Error(w, "category already exists", http.StatusConflict)
			case errors.As(err, &vErr):
				writeValidationError(w, vErr)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)

		if err := json.NewEncoder(w).Encode(categoryResponse{ID: category.ID.String(), Name: category.Name}); err != nil {
			return
		}
	}
}

// UpdateCategory renames a menu category
func (mh *MenuHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid category id", http.StatusUnprocessableEntity)
			return
		}

		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		category, err := mh.svc.UpdateCategory(r.Context(), categoryID, req.Name)
		if err != nil {
			var vErr *models.ValidationError
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "category not found", http.StatusNotFound)
			case errors.Is(err, models.ErrConflictData):
				http.Error(w, "category already exists", http.StatusConflict)
			case errors.As(err, &vErr):
				writeValidationError(w, vErr)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(categoryResponse{ID: category.ID.String(), Name: category.Name}); err != nil {
			return
		}
	}
}

// DeleteCategory deletes a menu category
func (mh *MenuHandler) DeleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid category id", http.StatusUnprocessableEntity)
			return
		}

		if err := mh.svc.DeleteCategory(r.Context(), categoryID); err != nil {
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "category not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// CreateItem creates a new menu item
// 201 — страву створено;
// 400 — невірний формат запиту;
// 404 — категорію не знайдено;
// 409 — страва з такою назвою вже існує;
// 422 — дані не проходять валідацію;
// 500 — внутрішня помилка сервера.
func (mh *MenuHandler) CreateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req menuItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			http.Error(w, "invalid category id", http.StatusUnprocessableEntity)
			return
		}

		item, err := mh.svc.CreateItem(r.Context(), &models.MenuItem{
			CategoryID:  categoryID,
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Calories:    req.Calories,
			Ingredients: req.Ingredients,
		})
		if err != nil {
			var vErr *models.ValidationError
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "category not found", http.StatusNotFound)
			case errors.Is(err, models.ErrConflictData):
				http.Error(w, "menu item already exists", http.StatusConflict)
			case errors.As(err, &vErr):
				writeValidationError(w, vErr)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)

		if err := json.NewEncoder(w).Encode(toMenuItemResponse(item)); err != nil {
			return
		}
	}
}

// UpdateItem updates an existing menu item
func (mh *MenuHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid item id", http.StatusUnprocessableEntity)
			return
		}

		var req menuItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			http.Error(w, "invalid category id", http.StatusUnprocessableEntity)
			return
		}

		item, err := mh.svc.UpdateItem(r.Context(), &models.MenuItem{
			ID:          itemID,
			CategoryID:  categoryID,
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Calories:    req.Calories,
			Ingredients: req.Ingredients,
		})
		if err != nil {
			var vErr *models.ValidationError
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "menu item not found", http.StatusNotFound)
			case errors.Is(err, models.ErrConflictData):
				http.Error(w, "menu item already exists", http.StatusConflict)
			case errors.As(err, &vErr):
				writeValidationError(w, vErr)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(toMenuItemResponse(item)); err != nil {
			return
		}
	}
}

// DeleteItem deletes a menu item
func (mh *MenuHandler) DeleteItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "invalid item id", http.StatusUnprocessableEntity)
			return
		}

		if err := mh.svc.DeleteItem(r.Context(), itemID); err != nil {
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "menu item not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
