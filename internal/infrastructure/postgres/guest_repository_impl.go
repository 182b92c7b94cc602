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

const guestColumns = `id, first_name, middle_name, last_name, phone_number,
	assist, answer_invitation, saw_invitation, answer_sd, saw_sd,
	group_id, table_id, created_at, created_by, updated_at, updated_by`

type GuestRepository struct {
	pool *pgxpool.Pool
}

func NewGuestRepository(pool *pgxpool.Pool) *GuestRepository {
	return &GuestRepository{pool: pool}
}

func scanGuest(row pgx.Row) (*entity.Guest, error) {
	g := &entity.Guest{}
	err := row.Scan(&g.ID, &g.FirstName, &g.MiddleName, &g.LastName, &g.PhoneNumber,
		&g.Assist, &g.AnswerInvitation, &g.SawInvitation, &g.AnswerSD, &g.SawSD,
		&g.GroupID, &g.TableID, &g.CreatedAt, &g.CreatedBy, &g.UpdatedAt, &g.UpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *GuestRepository) Create(ctx context.Context, g *entity.Guest) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO guests (first_name, middle_name, last_name, phone_number,
			assist, answer_invitation, saw_invitation, answer_sd, saw_sd, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`, g.FirstName, g.MiddleName, g.LastName, g.PhoneNumber,
		g.Assist, g.AnswerInvitation, g.SawInvitation, g.AnswerSD, g.SawSD, g.CreatedBy)
	return row.Scan(&g.ID, &g.CreatedAt)
}

func (r *GuestRepository) GetByID(ctx context.Context, id string) (*entity.Guest, error) {
	// Malformed ids resolve to nothing rather than a store error.
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+guestColumns+`
		FROM guests
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	return scanGuest(row)
}

// guestSortColumns whitelists sortable columns. full_name sorts on the
// same concatenation the search matches against.
var guestSortColumns = map[string]string{
	"first_name":   "first_name",
	"middle_name":  "middle_name",
	"last_name":    "last_name",
	"phone_number": "phone_number",
	"created_at":   "created_at",
	"full_name":    "(first_name || ' ' || middle_name || ' ' || last_name)",
}

// buildGuestListQuery translates normalized list params into SQL. Search
// matches each name part individually or the full "first middle last"
// concatenation, case-insensitively; boolean filters are AND-ed when set.
func buildGuestListQuery(p repository.GuestListParams) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + guestColumns + ` FROM guests WHERE deleted_at IS NULL`)
	var args []any

	if s := strings.TrimSpace(p.Search); s != "" {
		args = append(args, "%"+s+"%")
		n := len(args)
		sb.WriteString(fmt.Sprintf(
			` AND (first_name ILIKE $%d OR middle_name ILIKE $%d OR last_name ILIKE $%d`+
				` OR (first_name || ' ' || middle_name || ' ' || last_name) ILIKE $%d)`,
			n, n, n, n))
	}

	boolFilters := []struct {
		col string
		val *bool
	}{
		{"assist", p.Assist},
		{"answer_invitation", p.AnswerInvitation},
		{"saw_invitation", p.SawInvitation},
		{"answer_sd", p.AnswerSD},
		{"saw_sd", p.SawSD},
	}
	for _, f := range boolFilters {
		if f.val != nil {
			args = append(args, *f.val)
			sb.WriteString(fmt.Sprintf(" AND %s = $%d", f.col, len(args)))
		}
	}

	col, ok := guestSortColumns[p.SortBy]
	if !ok {
		col = guestSortColumns["full_name"]
	}
	dir := "ASC"
	if p.Sort == "desc" {
		dir = "DESC"
	}
	sb.WriteString(" ORDER BY " + col + " " + dir)

	args = append(args, p.Limit)
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	args = append(args, (p.Page-1)*p.Limit)
	sb.WriteString(fmt.Sprintf(" OFFSET $%d", len(args)))

	return sb.String(), args
}

func (r *GuestRepository) List(ctx context.Context, p repository.GuestListParams) ([]*entity.Guest, error) {
	sql, args := buildGuestListQuery(p)
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Guest, 0)
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *GuestRepository) Update(ctx context.Context, id string, patch repository.GuestPatch, updatedBy string) (*entity.Guest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}

	sets := []string{}
	args := []any{}
	add := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if patch.FirstName != nil {
		add("first_name", *patch.FirstName)
	}
	if patch.MiddleName != nil {
		add("middle_name", *patch.MiddleName)
	}
	if patch.LastName != nil {
		add("last_name", *patch.LastName)
	}
	if patch.PhoneNumber != nil {
		add("phone_number", *patch.PhoneNumber)
	}
	if patch.Assist != nil {
		add("assist", *patch.Assist)
	}
	if patch.AnswerInvitation != nil {
		add("answer_invitation", *patch.AnswerInvitation)
	}
	if patch.SawInvitation != nil {
		add("saw_invitation", *patch.SawInvitation)
	}
	if patch.AnswerSD != nil {
		add("answer_sd", *patch.AnswerSD)
	}
	if patch.SawSD != nil {
		add("saw_sd", *patch.SawSD)
	}
	if patch.TableID != nil {
		add("table_id", *patch.TableID)
	}
	add("updated_by", updatedBy)
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	sql := fmt.Sprintf(`
		UPDATE guests SET %s
		WHERE id = $%d AND deleted_at IS NULL
		RETURNING %s
	`, strings.Join(sets, ", "), len(args), guestColumns)

	return scanGuest(r.pool.QueryRow(ctx, sql, args...))
}

func (r *GuestRepository) SoftDelete(ctx context.Context, id, deletedBy string) (*entity.Guest, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE guests
		SET deleted_at = now(), deleted_by = $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+guestColumns+`
	`, id, deletedBy)
	return scanGuest(row)
}

func (r *GuestRepository) SetGroup(ctx context.Context, guestID string, groupID *string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE guests SET group_id = $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`, guestID, groupID)
	return err
}

func (r *GuestRepository) SetGroupMany(ctx context.Context, guestIDs []string, groupID string) error {
	if len(guestIDs) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE guests SET group_id = $2, updated_at = now()
		WHERE id = ANY($1::uuid[]) AND deleted_at IS NULL
	`, guestIDs, groupID)
	return err
}

func (r *GuestRepository) ClearGroupMany(ctx context.Context, guestIDs []string) error {
	if len(guestIDs) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, `
		UPDATE guests SET group_id = NULL, updated_at = now()
		WHERE id = ANY($1::uuid[]) AND deleted_at IS NULL
	`, guestIDs)
	return err
}

var _ repository.GuestRepository = (*GuestRepository)(nil)
