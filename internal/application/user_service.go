package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-guestlist-api/internal/domain/entity"
	"github.com/oksasatya/event-guestlist-api/internal/domain/repository"
	"github.com/oksasatya/event-guestlist-api/pkg/helpers"
)

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned for a duplicate username as well as a
	// duplicate first+last name among live users.
	ErrUserExists = errors.New("user already created")
)

type UserService struct {
	Users  repository.UserRepository
	Logger *logrus.Logger
}

func NewUserService(users repository.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Logger: logger}
}

type CreateUserInput struct {
	FirstName  string
	MiddleName string
	LastName   string
	Username   string
	Password   string
	Role       entity.Role
}

// Create registers a new account. The authenticated flag always starts
// false; an operator flips it once the account is approved.
func (s *UserService) Create(ctx context.Context, in CreateUserInput, createdBy string) (*entity.User, error) {
	if _, err := s.Users.GetByUsername(ctx, in.Username); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	taken, err := s.Users.NameTaken(ctx, in.FirstName, in.LastName)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUserExists
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = entity.RoleWeddingPlanner
	}
	u := &entity.User{
		FirstName:     in.FirstName,
		MiddleName:    in.MiddleName,
		LastName:      in.LastName,
		Username:      in.Username,
		Password:      hash,
		Role:          role,
		Authenticated: false,
		CreatedBy:     createdBy,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Delete soft-deletes the account and revokes its authenticated flag.
func (s *UserService) Delete(ctx context.Context, id, deletedBy string) error {
	if _, err := s.Users.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.Users.SoftDelete(ctx, id, deletedBy)
}
