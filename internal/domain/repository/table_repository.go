package repository

import (
	"context"

	"github.com/oksasatya/event-guestlist-api/internal/domain/entity"
)

// TableRepository defines seating-table reads. Tables are read-mostly;
// nothing in the membership path mutates them.
type TableRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Table, error)
	List(ctx context.Context, page, limit int) ([]*entity.Table, error)
}
