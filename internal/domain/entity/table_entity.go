package entity

import "time"

// Table is a seating table. Read-mostly; membership lists are filled
// when groups and guests are assigned, never mutated by the group
// reconciliation path.
type Table struct {
	ID       string
	Label    string
	GroupIDs []string
	GuestIDs []string

	CreatedAt time.Time
	CreatedBy string
	UpdatedAt *time.Time
	UpdatedBy *string
	DeletedAt *time.Time
	DeletedBy *string
}
