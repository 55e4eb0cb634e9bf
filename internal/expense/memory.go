package expense

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aQ-codes/expense-tracker-backend/internal/category"
	"github.com/aQ-codes/expense-tracker-backend/internal/database"
)

// CategoryNamer resolves the category a stored row points at, so reads
// return current category names even after renames and reassignments.
type CategoryNamer interface {
	GetVisibleByID(ctx context.Context, userID, id string) (*category.Category, error)
}

type memoryRow struct {
	Expense
	seq int64
}

// MemoryRepository backs local development and tests.
type MemoryRepository struct {
	mu         sync.RWMutex
	rows       map[string]*memoryRow
	categories CategoryNamer
	nextSeq    int64
}

func NewMemoryRepository(categories CategoryNamer) *MemoryRepository {
	return &MemoryRepository{rows: make(map[string]*memoryRow), categories: categories}
}

func (r *MemoryRepository) resolve(ctx context.Context, row *memoryRow) Expense {
	out := row.Expense
	if cat, err := r.categories.GetVisibleByID(ctx, out.UserID, out.CategoryID); err == nil {
		out.CategoryName = cat.Name
	}
	return out
}

func matches(row *memoryRow, userID string, f Filter) bool {
	if row.UserID != userID {
		return false
	}
	if f.CategoryID != "" && row.CategoryID != f.CategoryID {
		return false
	}
	if !f.From.IsZero() && row.SpentOn.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && row.SpentOn.After(f.To) {
		return false
	}
	return true
}

func (r *MemoryRepository) collect(ctx context.Context, userID string, f Filter) []Expense {
	selected := make([]*memoryRow, 0)
	for _, row := range r.rows {
		if matches(row, userID, f) {
			selected = append(selected, row)
		}
	}
	// Newest first, matching the list ordering of the SQL backend.
	sort.Slice(selected, func(i, j int) bool {
		a, b := selected[i], selected[j]
		if !a.SpentOn.Equal(b.SpentOn) {
			return a.SpentOn.After(b.SpentOn)
		}
		return a.seq > b.seq
	})

	out := make([]Expense, 0, len(selected))
	for _, row := range selected {
		out = append(out, r.resolve(ctx, row))
	}
	return out
}

func (r *MemoryRepository) Create(ctx context.Context, e *Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	e.ID = uuid.NewString()
	e.CreatedAt = now
	e.UpdatedAt = now

	r.nextSeq++
	r.rows[e.ID] = &memoryRow{Expense: *e, seq: r.nextSeq}

	if cat, err := r.categories.GetVisibleByID(ctx, e.UserID, e.CategoryID); err == nil {
		e.CategoryName = cat.Name
	}
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, userID, id string) (*Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id]
	if !ok || row.UserID != userID {
		return nil, database.ErrNotFound
	}
	out := r.resolve(ctx, row)
	return &out, nil
}

func (r *MemoryRepository) List(ctx context.Context, userID string, f Filter, page, limit int) ([]Expense, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.collect(ctx, userID, f)
	total := len(all)

	start := (page - 1) * limit
	if start >= total {
		return []Expense{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *MemoryRepository) ListRange(ctx context.Context, userID string, from, to time.Time) ([]Expense, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.collect(ctx, userID, Filter{From: from, To: to})
	// Oldest first for range scans.
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return all, nil
}

func (r *MemoryRepository) Update(ctx context.Context, e *Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[e.ID]
	if !ok || row.UserID != e.UserID {
		return database.ErrNotFound
	}

	row.CategoryID = e.CategoryID
	row.Title = e.Title
	row.Amount = e.Amount
	row.SpentOn = e.SpentOn
	row.UpdatedAt = time.Now().UTC()

	*e = r.resolve(ctx, row)
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id]
	if !ok || row.UserID != userID {
		return database.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *MemoryRepository) Stats(ctx context.Context, userID string, f Filter) (Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var s Stats
	for _, row := range r.rows {
		if matches(row, userID, f) {
			s.TotalSpent += row.Amount
			s.TotalExpenses++
		}
	}
	if s.TotalExpenses > 0 {
		s.AverageAmount = s.TotalSpent / float64(s.TotalExpenses)
	}
	return s, nil
}

func (r *MemoryRepository) ReassignCategory(_ context.Context, userID, fromID, toID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.rows {
		if row.UserID == userID && row.CategoryID == fromID {
			row.CategoryID = toID
			row.UpdatedAt = time.Now().UTC()
		}
	}
	return nil
}
