package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/event-guestlist-api/internal/domain/entity"
	"github.com/oksasatya/event-guestlist-api/internal/domain/repository"
	"github.com/oksasatya/event-guestlist-api/pkg/helpers"
)

func TestCreateUserStartsUnapproved(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByUsername", mock.Anything, "ana").Return(nil, repository.ErrNotFound)
	repo.On("NameTaken", mock.Anything, "Ana", "Lopez").Return(false, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewUserService(repo, nil)
	u, err := svc.Create(context.Background(), CreateUserInput{
		FirstName: "Ana",
		LastName:  "Lopez",
		Username:  "ana",
		Password:  "password123",
	}, "admin")
	require.NoError(t, err)

	assert.False(t, u.Authenticated, "new accounts always await approval")
	assert.Equal(t, entity.RoleWeddingPlanner, u.Role, "role defaults")
	assert.NotEqual(t, "password123", u.Password)
	assert.True(t, helpers.CompareHashAndPassword(u.Password, "password123"))
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByUsername", mock.Anything, "ana").Return(approvedUser(), nil)

	svc := NewUserService(repo, nil)
	_, err := svc.Create(context.Background(), CreateUserInput{
		FirstName: "Other",
		LastName:  "Person",
		Username:  "ana",
		Password:  "password123",
	}, "admin")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestCreateUserDuplicateName(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByUsername", mock.Anything, "ana2").Return(nil, repository.ErrNotFound)
	repo.On("NameTaken", mock.Anything, "Ana", "Lopez").Return(true, nil)

	svc := NewUserService(repo, nil)
	_, err := svc.Create(context.Background(), CreateUserInput{
		FirstName: "Ana",
		LastName:  "Lopez",
		Username:  "ana2",
		Password:  "password123",
	}, "admin")
	assert.ErrorIs(t, err, ErrUserExists)
}

// fakeUserRepo keeps rows in memory with the store's live-row
// semantics: reads and the uniqueness check skip soft-deleted rows.
type fakeUserRepo struct {
	users  []*entity.User
	nextID int
}

func (r *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	for _, existing := range r.users {
		if existing.DeletedAt == nil && existing.Username == u.Username {
			return errors.New("unique violation")
		}
	}
	r.nextID++
	u.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", r.nextID)
	r.users = append(r.users, u)
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id && u.DeletedAt == nil {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.DeletedAt == nil {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) NameTaken(ctx context.Context, firstName, lastName string) (bool, error) {
	for _, u := range r.users {
		if u.DeletedAt == nil && u.FirstName == firstName && u.LastName == lastName {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) SoftDelete(ctx context.Context, id, deletedBy string) error {
	for _, u := range r.users {
		if u.ID == id && u.DeletedAt == nil {
			now := time.Now()
			u.DeletedAt = &now
			u.DeletedBy = &deletedBy
			u.Authenticated = false
			return nil
		}
	}
	return repository.ErrNotFound
}

func TestUsernameReusableAfterSoftDelete(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo, nil)

	first, err := svc.Create(context.Background(), CreateUserInput{
		FirstName: "Ana",
		LastName:  "Lopez",
		Username:  "ana",
		Password:  "password123",
	}, "admin")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), first.ID, "admin"))

	// The soft-deleted row keeps its username, yet a new live account
	// can take the name over without tripping uniqueness.
	second, err := svc.Create(context.Background(), CreateUserInput{
		FirstName: "Another",
		LastName:  "Person",
		Username:  "ana",
		Password:  "password123",
	}, "admin")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "ana", second.Username)
}

func TestDeleteUnknownUser(t *testing.T) {
	repo := new(mockUserRepo)
	repo.On("GetByID", mock.Anything, "nope").Return(nil, repository.ErrNotFound)

	svc := NewUserService(repo, nil)
	err := svc.Delete(context.Background(), "nope", "admin")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
