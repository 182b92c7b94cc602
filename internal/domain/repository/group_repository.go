package repository

import (
	"context"

	"github.com/oksasatya/event-guestlist-api/internal/domain/entity"
)

// GroupListParams carries pagination and filtering for group listings.
type GroupListParams struct {
	Page      int
	Limit     int
	Search    string
	HasGuests *bool
}

func (p *GroupListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
}

// GroupWithGuests is a group plus the name summaries of its members,
// the populated shape returned by listings.
type GroupWithGuests struct {
	Group  entity.Group
	Guests []entity.GuestSummary
}

// GroupPatch is the scalar part of a group update; nil fields are left
// untouched.
type GroupPatch struct {
	Name    *string
	TableID *string
}

// GroupRepository defines group persistence. The membership mutators are
// single-document array operations with set semantics; the group service
// sequences them against GuestRepository to keep both sides consistent.
type GroupRepository interface {
	Create(ctx context.Context, g *entity.Group) error
	GetByID(ctx context.Context, id string) (*entity.Group, error)
	List(ctx context.Context, p GroupListParams) ([]*GroupWithGuests, error)

	// AddGuest appends the guest id unless already present.
	AddGuest(ctx context.Context, groupID, guestID string) error
	// RemoveGuests pulls every listed guest id from the group's list.
	RemoveGuests(ctx context.Context, groupID string, guestIDs []string) error

	UpdateScalars(ctx context.Context, id string, patch GroupPatch, updatedBy string) error
}
