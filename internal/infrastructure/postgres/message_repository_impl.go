package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/event-guestlist-api/internal/domain/entity"
	"github.com/oksasatya/event-guestlist-api/internal/domain/repository"
)

type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

func (r *MessageRepository) Create(ctx context.Context, m *entity.Message) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO messages (user_id, body)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, m.UserID, m.Body)
	return row.Scan(&m.ID, &m.CreatedAt)
}

func (r *MessageRepository) ListByUser(ctx context.Context, userID string, page, perPage int) ([]*entity.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, body, created_at
		FROM messages
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Message, 0)
	for rows.Next() {
		m := &entity.Message{}
		if err := rows.Scan(&m.ID, &m.UserID, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

var _ repository.MessageRepository = (*MessageRepository)(nil)
