package category

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aQ-codes/expense-tracker-backend/internal/database"
)

// DefaultNames matches the set seeded into the database.
var DefaultNames = []string{
	"Food", "Transport", "Housing", "Utilities",
	"Entertainment", "Health", "Shopping", OtherName,
}

// MemoryRepository backs local development and tests. It starts with the
// same default categories the seed migration creates.
type MemoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*Category
}

func NewMemoryRepository() *MemoryRepository {
	r := &MemoryRepository{categories: make(map[string]*Category)}
	for _, name := range DefaultNames {
		c := &Category{
			ID:        uuid.NewString(),
			Name:      name,
			IsDefault: true,
			CreatedAt: time.Now().UTC(),
		}
		r.categories[c.ID] = c
	}
	return r
}

func visibleTo(c *Category, userID string) bool {
	return c.IsDefault || (c.UserID != nil && *c.UserID == userID)
}

func (r *MemoryRepository) ListVisible(_ context.Context, userID string) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Category, 0)
	for _, c := range r.categories {
		if visibleTo(c, userID) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

func (r *MemoryRepository) GetVisibleByID(_ context.Context, userID, id string) (*Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.categories[id]
	if !ok || !visibleTo(c, userID) {
		return nil, database.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (r *MemoryRepository) DefaultByName(_ context.Context, name string) (*Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.IsDefault && strings.EqualFold(c.Name, name) {
			out := *c
			return &out, nil
		}
	}
	return nil, database.ErrNotFound
}

func (r *MemoryRepository) NameTaken(_ context.Context, userID, name, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.categories {
		if c.ID == excludeID {
			continue
		}
		if visibleTo(c, userID) && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) Create(_ context.Context, c *Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c.ID = uuid.NewString()
	c.IsDefault = false
	c.CreatedAt = time.Now().UTC()

	stored := *c
	r.categories[c.ID] = &stored
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, c *Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.categories[c.ID]
	if !ok || existing.IsDefault || existing.UserID == nil ||
		c.UserID == nil || *existing.UserID != *c.UserID {
		return database.ErrNotFound
	}
	existing.Name = c.Name
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.categories[id]
	if !ok || existing.IsDefault || existing.UserID == nil || *existing.UserID != userID {
		return database.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}
