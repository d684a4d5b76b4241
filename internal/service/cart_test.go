package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velnyk/cafepos/internal/models"
)

type fakeCartStore struct {
	lines map[uuid.UUID]*models.CartLine
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{lines: map[uuid.UUID]*models.CartLine{}}
}

func (f *fakeCartStore) CreateLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error) {
	f.lines[line.ID] = line
	return line, nil
}

func (f *fakeCartStore) GetUnorderedByUserID(ctx context.Context, userID uuid.UUID) ([]models.CartLine, error) {
	lines := []models.CartLine{}
	for _, line := range f.lines {
		if line.UserID == userID && !line.Ordered {
			lines = append(lines, *line)
		}
	}
	return lines, nil
}

func (f *fakeCartStore) GetLineByID(ctx context.Context, id uuid.UUID) (*models.CartLine, error) {
	line, ok := f.lines[id]
	if !ok {
		return nil, models.ErrDataNotFound
	}
	cp := *line
	return &cp, nil
}

func (f *fakeCartStore) DeleteLine(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.lines[id]; !ok {
		return models.ErrDataNotFound
	}
	delete(f.lines, id)
	return nil
}

type fakeCatalog struct {
	items map[uuid.UUID]*models.MenuItem
}

func (f *fakeCatalog) GetMenuItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, models.ErrDataNotFound
	}
	return item, nil
}

func TestCartService_AddItem(t *testing.T) {
	userID := uuid.New()
	itemID := uuid.New()
	catalog := &fakeCatalog{items: map[uuid.UUID]*models.MenuItem{
		itemID: {ID: itemID, Name: "Latte", Price: 64.50},
	}}

	t.Run("subtotal is price times quantity", func(t *testing.T) {
		svc := NewCartService(newFakeCartStore(), catalog)

		line, err := svc.AddItem(context.Background(), userID, itemID, 3)
		require.NoError(t, err)
		assert.Equal(t, 64.50*3, line.Subtotal)
		assert.Equal(t, 3, line.Quantity)
		assert.False(t, line.Ordered)
	})

	t.Run("zero quantity is rejected", func(t *testing.T) {
		svc := NewCartService(newFakeCartStore(), catalog)

		var vErr *models.ValidationError
		_, err := svc.AddItem(context.Background(), userID, itemID, 0)
		assert.ErrorAs(t, err, &vErr)
	})

	t.Run("unknown item", func(t *testing.T) {
		svc := NewCartService(newFakeCartStore(), catalog)

		_, err := svc.AddItem(context.Background(), userID, uuid.New(), 1)
		assert.ErrorIs(t, err, models.ErrDataNotFound)
	})
}

func TestCartService_RemoveLine(t *testing.T) {
	userID := uuid.New()
	otherID := uuid.New()
	store := newFakeCartStore()
	svc := NewCartService(store, &fakeCatalog{})

	lineID := uuid.New()
	store.lines[lineID] = &models.CartLine{ID: lineID, UserID: userID, ItemID: uuid.New(), Quantity: 1, Subtotal: 10}

	t.Run("foreign line is not found", func(t *testing.T) {
		assert.ErrorIs(t, svc.RemoveLine(context.Background(), otherID, lineID), models.ErrDataNotFound)
	})

	t.Run("ordered line cannot be removed", func(t *testing.T) {
		orderedID := uuid.New()
		store.lines[orderedID] = &models.CartLine{ID: orderedID, UserID: userID, Ordered: true}
		assert.ErrorIs(t, svc.RemoveLine(context.Background(), userID, orderedID), models.ErrConflictData)
	})

	t.Run("own unordered line is removed", func(t *testing.T) {
		require.NoError(t, svc.RemoveLine(context.Background(), userID, lineID))
		_, err := store.GetLineByID(context.Background(), lineID)
		assert.ErrorIs(t, err, models.ErrDataNotFound)
	})
}
