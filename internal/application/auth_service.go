package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-guestlist-api/internal/domain/repository"
	"github.com/oksasatya/event-guestlist-api/pkg/helpers"
)

var (
	// ErrInvalidCredentials covers unknown username and wrong password
	// alike so login responses cannot be used for enumeration.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// Verify failures, ordered from least to most trusted caller state.
	ErrInvalidToken     = errors.New("invalid token")
	ErrMalformedClaims  = errors.New("malformed claims")
	ErrUnknownUser      = errors.New("unknown user")
	ErrNotAuthenticated = errors.New("user not authenticated")
)

// Identity is the minimal authenticated-caller representation attached
// to request context after verification.
type Identity struct {
	ID          string
	DisplayName string
}

type AuthService struct {
	Users  repository.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Logger: logger}
}

// Login checks username/password against the store and issues a signed
// token carrying {user_id, user_username}.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	return s.JWT.GenerateToken(u.ID, u.Username)
}

// Verify validates a bearer token and resolves the caller's identity.
// The token must parse and carry both claims, and the referenced user
// must still exist, not be soft-deleted, and be marked authenticated.
func (s *AuthService) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	claims, err := s.JWT.ParseToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || claims.Username == "" {
		return nil, ErrMalformedClaims
	}

	u, err := s.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", claims.UserID).Error("identity lookup failed")
		}
		return nil, err
	}
	if !u.Authenticated {
		// A softer "pending approval" state, distinct from not existing.
		return nil, ErrNotAuthenticated
	}

	return &Identity{ID: u.ID, DisplayName: u.DisplayName()}, nil
}
