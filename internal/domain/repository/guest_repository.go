package repository

import (
	"context"

	"github.com/oksasatya/event-guestlist-api/internal/domain/entity"
)

// GuestListParams carries pagination, search, filtering and sorting for
// guest listings.
type GuestListParams struct {
	Page   int
	Limit  int
	Search string
	Sort   string // "asc" or "desc"
	SortBy string // whitelisted column, defaults to the full-name projection

	Assist           *bool
	AnswerInvitation *bool
	SawInvitation    *bool
	AnswerSD         *bool
	SawSD            *bool
}

// Normalize clamps pagination and defaults sorting: page<1 becomes 1,
// limit<1 falls back to the default page size.
func (p *GuestListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Sort != "desc" {
		p.Sort = "asc"
	}
	if p.SortBy == "" {
		p.SortBy = "full_name"
	}
}

// GuestPatch is a partial update; nil fields are left untouched.
type GuestPatch struct {
	FirstName        *string
	MiddleName       *string
	LastName         *string
	PhoneNumber      *string
	Assist           *bool
	AnswerInvitation *bool
	SawInvitation    *bool
	AnswerSD         *bool
	SawSD            *bool
	TableID          *string
}

// GuestRepository defines guest persistence. Reads exclude soft-deleted
// rows. The group-reference mutators are the primitives the group
// service composes; none of them assume a transaction.
type GuestRepository interface {
	Create(ctx context.Context, g *entity.Guest) error
	GetByID(ctx context.Context, id string) (*entity.Guest, error)
	List(ctx context.Context, p GuestListParams) ([]*entity.Guest, error)
	Update(ctx context.Context, id string, patch GuestPatch, updatedBy string) (*entity.Guest, error)
	// SoftDelete marks a not-yet-deleted guest deleted and returns the
	// updated row, or nil when the guest is missing or already deleted.
	SoftDelete(ctx context.Context, id, deletedBy string) (*entity.Guest, error)

	// SetGroup points a guest at a group; nil clears the reference.
	SetGroup(ctx context.Context, guestID string, groupID *string) error
	// SetGroupMany points every listed guest at a group in one statement.
	SetGroupMany(ctx context.Context, guestIDs []string, groupID string) error
	// ClearGroupMany clears the group reference of every listed guest.
	ClearGroupMany(ctx context.Context, guestIDs []string) error
}
