package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/event-guestlist-api/internal/domain/entity"
	"github.com/oksasatya/event-guestlist-api/internal/domain/repository"
)

const tableColumns = `id, label, group_ids, guest_ids, created_at, created_by, updated_at, updated_by`

type TableRepository struct {
	pool *pgxpool.Pool
}

func NewTableRepository(pool *pgxpool.Pool) *TableRepository {
	return &TableRepository{pool: pool}
}

func scanTable(row pgx.Row) (*entity.Table, error) {
	t := &entity.Table{}
	err := row.Scan(&t.ID, &t.Label, &t.GroupIDs, &t.GuestIDs,
		&t.CreatedAt, &t.CreatedBy, &t.UpdatedAt, &t.UpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TableRepository) GetByID(ctx context.Context, id string) (*entity.Table, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+tableColumns+`
		FROM tables
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	return scanTable(row)
}

func (r *TableRepository) List(ctx context.Context, page, limit int) ([]*entity.Table, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+tableColumns+`
		FROM tables
		WHERE deleted_at IS NULL
		ORDER BY label ASC
		LIMIT $1 OFFSET $2
	`, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

var _ repository.TableRepository = (*TableRepository)(nil)
