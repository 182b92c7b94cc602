package repository

import (
	"context"

	"github.com/oksasatya/event-guestlist-api/internal/domain/entity"
)

// UserRepository defines account persistence. All reads exclude
// soft-deleted rows.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// NameTaken reports whether a live user already has this exact
	// first+last name combination.
	NameTaken(ctx context.Context, firstName, lastName string) (bool, error)
	// SoftDelete marks the user deleted and clears the authenticated flag.
	SoftDelete(ctx context.Context, id, deletedBy string) error
}
