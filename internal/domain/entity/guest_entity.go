package entity

import "time"

// Guest is an invited person. GroupID is the owning-group back-reference
// and the source of truth for "whose guest is this"; a guest belongs to
// at most one group at a time. The mirrored Group.GuestIDs list is kept
// consistent by the group service.
type Guest struct {
	ID          string
	FirstName   string
	MiddleName  string
	LastName    string
	PhoneNumber string

	// Invitation response flags.
	Assist           bool
	AnswerInvitation bool
	SawInvitation    bool
	AnswerSD         bool
	SawSD            bool

	GroupID *string
	TableID *string

	CreatedAt time.Time
	CreatedBy string
	UpdatedAt *time.Time
	UpdatedBy *string
	DeletedAt *time.Time
	DeletedBy *string
}
