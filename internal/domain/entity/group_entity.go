package entity

import "time"

// Group is a named set of guests, optionally assigned to a table.
// GuestIDs mirrors the set of live guests whose GroupID points here;
// both sides are maintained together by the group service.
type Group struct {
	ID       string
	Name     string
	GuestIDs []string
	TableID  *string

	CreatedAt time.Time
	CreatedBy string
	UpdatedAt *time.Time
	UpdatedBy *string
	DeletedAt *time.Time
	DeletedBy *string
}

// GuestSummary is the name projection attached to group listings.
type GuestSummary struct {
	ID         string
	FirstName  string
	MiddleName string
	LastName   string
}

// HasGuest reports whether id is already present in GuestIDs.
func (g *Group) HasGuest(id string) bool {
	for _, gid := range g.GuestIDs {
		if gid == id {
			return true
		}
	}
	return false
}
