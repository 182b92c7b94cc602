package entity

import (
	"strings"
	"time"
)

// Role is the authorization role assigned to a user account.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleParents        Role = "parents"
	RoleWeddingPlanner Role = "wedding-planner"
)

// User is the aggregate root for the account domain.
// Passwords are stored as bcrypt hashes in Password.
//
// Authenticated starts false and is flipped true by an out-of-band
// approval process, never at creation time. An account can act only
// while Authenticated is true and DeletedAt is unset.
type User struct {
	ID            string
	FirstName     string
	MiddleName    string
	LastName      string
	Username      string
	Password      string
	Role          Role
	Authenticated bool
	CreatedAt     time.Time
	CreatedBy     string
	UpdatedAt     *time.Time
	UpdatedBy     *string
	DeletedAt     *time.Time
	DeletedBy     *string
}

// DisplayName joins first, middle and last name with single spaces,
// skipping an empty middle name.
func (u *User) DisplayName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.FirstName, u.MiddleName, u.LastName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
