package application

import (
	"context"
	"errors"

	"github.com/oksasatya/event-guestlist-api/internal/domain/entity"
	"github.com/oksasatya/event-guestlist-api/internal/domain/repository"
)

const defaultMessagesPerPage = 30

// MessageService stores and lists user-scoped messages. Every operation
// requires the owning user to still be live.
type MessageService struct {
	Messages repository.MessageRepository
	Users    repository.UserRepository
}

func NewMessageService(messages repository.MessageRepository, users repository.UserRepository) *MessageService {
	return &MessageService{Messages: messages, Users: users}
}

func (s *MessageService) requireUser(ctx context.Context, userID string) error {
	if _, err := s.Users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// ListForUser returns the user's messages, newest first.
func (s *MessageService) ListForUser(ctx context.Context, userID string, page, perPage int) ([]*entity.Message, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultMessagesPerPage
	}
	return s.Messages.ListByUser(ctx, userID, page, perPage)
}

func (s *MessageService) Create(ctx context.Context, userID, body string) (*entity.Message, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	m := &entity.Message{UserID: userID, Body: body}
	if err := s.Messages.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
