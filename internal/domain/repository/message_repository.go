package repository

import (
	"context"

	"github.com/oksasatya/event-guestlist-api/internal/domain/entity"
)

// MessageRepository defines message persistence. ListByUser returns the
// newest messages first.
type MessageRepository interface {
	Create(ctx context.Context, m *entity.Message) error
	ListByUser(ctx context.Context, userID string, page, perPage int) ([]*entity.Message, error)
}
