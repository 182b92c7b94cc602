package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/event-guestlist-api/internal/domain/entity"
	"github.com/oksasatya/event-guestlist-api/internal/domain/repository"
)

const groupColumns = `id, name, guest_ids, table_id, created_at, created_by, updated_at, updated_by`

type GroupRepository struct {
	pool *pgxpool.Pool
}

func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{pool: pool}
}

func scanGroup(row pgx.Row) (*entity.Group, error) {
	g := &entity.Group{}
	err := row.Scan(&g.ID, &g.Name, &g.GuestIDs, &g.TableID,
		&g.CreatedAt, &g.CreatedBy, &g.UpdatedAt, &g.UpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if g.GuestIDs == nil {
		g.GuestIDs = []string{}
	}
	return g, nil
}

func (r *GroupRepository) Create(ctx context.Context, g *entity.Group) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO groups (name, guest_ids, table_id, created_by)
		VALUES ($1, $2::uuid[], $3, $4)
		RETURNING id, created_at
	`, g.Name, g.GuestIDs, g.TableID, g.CreatedBy)
	return row.Scan(&g.ID, &g.CreatedAt)
}

func (r *GroupRepository) GetByID(ctx context.Context, id string) (*entity.Group, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+groupColumns+`
		FROM groups
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	return scanGroup(row)
}

func (r *GroupRepository) List(ctx context.Context, p repository.GroupListParams) ([]*repository.GroupWithGuests, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + groupColumns + ` FROM groups WHERE deleted_at IS NULL`)
	var args []any

	if s := strings.TrimSpace(p.Search); s != "" {
		args = append(args, "%"+s+"%")
		sb.WriteString(fmt.Sprintf(" AND name ILIKE $%d", len(args)))
	}
	if p.HasGuests != nil {
		if *p.HasGuests {
			sb.WriteString(" AND cardinality(guest_ids) > 0")
		} else {
			sb.WriteString(" AND cardinality(guest_ids) = 0")
		}
	}
	sb.WriteString(" ORDER BY name ASC")
	args = append(args, p.Limit)
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	args = append(args, (p.Page-1)*p.Limit)
	sb.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := make([]*repository.GroupWithGuests, 0)
	var allGuestIDs []string
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		allGuestIDs = append(allGuestIDs, g.GuestIDs...)
		groups = append(groups, &repository.GroupWithGuests{Group: *g, Guests: []entity.GuestSummary{}})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(allGuestIDs) == 0 {
		return groups, nil
	}

	// Populate member name summaries in one pass.
	summaries, err := r.guestSummaries(ctx, allGuestIDs)
	if err != nil {
		return nil, err
	}
	for _, gw := range groups {
		for _, gid := range gw.Group.GuestIDs {
			if s, ok := summaries[gid]; ok {
				gw.Guests = append(gw.Guests, s)
			}
		}
	}
	return groups, nil
}

func (r *GroupRepository) guestSummaries(ctx context.Context, ids []string) (map[string]entity.GuestSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, first_name, middle_name, last_name
		FROM guests
		WHERE id = ANY($1::uuid[]) AND deleted_at IS NULL
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]entity.GuestSummary, len(ids))
	for rows.Next() {
		var s entity.GuestSummary
		if err := rows.Scan(&s.ID, &s.FirstName, &s.MiddleName, &s.LastName); err != nil {
			return nil, err
		}
		out[s.ID] = s
	}
	return out, rows.Err()
}

// AddGuest appends with set semantics: the id is only added when absent.
func (r *GroupRepository) AddGuest(ctx context.Context, groupID, guestID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE groups
		SET guest_ids = array_append(guest_ids, $2::uuid), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL AND NOT (guest_ids @> ARRAY[$2]::uuid[])
	`, groupID, guestID)
	return err
}

func (r *GroupRepository) RemoveGuests(ctx context.Context, groupID string, guestIDs []string) error {
	if len(guestIDs) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE groups
		SET guest_ids = (
			SELECT COALESCE(array_agg(g), '{}')
			FROM unnest(guest_ids) AS g
			WHERE NOT (g = ANY($2::uuid[]))
		), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`, groupID, guestIDs)
	return err
}

func (r *GroupRepository) UpdateScalars(ctx context.Context, id string, patch repository.GroupPatch, updatedBy string) error {
	sets := []string{}
	args := []any{}
	if patch.Name != nil {
		args = append(args, *patch.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if patch.TableID != nil {
		args = append(args, *patch.TableID)
		sets = append(sets, fmt.Sprintf("table_id = $%d", len(args)))
	}
	args = append(args, updatedBy)
	sets = append(sets, fmt.Sprintf("updated_by = $%d", len(args)))
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	sql := fmt.Sprintf(`
		UPDATE groups SET %s
		WHERE id = $%d AND deleted_at IS NULL
	`, strings.Join(sets, ", "), len(args))

	res, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.GroupRepository = (*GroupRepository)(nil)
