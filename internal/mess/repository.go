package mess

import (
	"context"
	"time"
)

// Repository defines the data-access contract for messes.
// Service depends ONLY on this interface.
type Repository interface {
	GetAll(ctx context.Context) ([]Mess, error)
	GetByID(ctx context.Context, id string) (*Mess, error)
	Create(ctx context.Context, m *Mess) error
	UpdateMenu(ctx context.Context, id string, menu WeekMenu, updatedAt time.Time) error
	UpdateNextWeekMenu(ctx context.Context, id string, menu WeekMenu, startDate, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
