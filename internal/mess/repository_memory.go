package mess

import (
	"context"
	"sort"
	"sync"
	"time"
)

// InMemoryRepository backs tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	messes map[string]*Mess
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{messes: make(map[string]*Mess)}
}

func (r *InMemoryRepository) GetAll(ctx context.Context) ([]Mess, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Mess, 0, len(r.messes))
	for _, m := range r.messes {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Mess, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.messes[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *InMemoryRepository) Create(ctx context.Context, m *Mess) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *m
	r.messes[m.ID] = &copied
	return nil
}

func (r *InMemoryRepository) UpdateMenu(ctx context.Context, id string, menu WeekMenu, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.messes[id]
	if !ok {
		return ErrNotFound
	}
	m.Menu = menu
	m.LastUpdated = &updatedAt
	return nil
}

func (r *InMemoryRepository) UpdateNextWeekMenu(ctx context.Context, id string, menu WeekMenu, startDate, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.messes[id]
	if !ok {
		return ErrNotFound
	}
	m.NextWeekMenu = menu
	m.MenuStartDate = &startDate
	m.LastUpdated = &updatedAt
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.messes[id]; !ok {
		return ErrNotFound
	}
	delete(r.messes, id)
	return nil
}
