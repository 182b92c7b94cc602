package events

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-guestlist-api/pkg/helpers"
)

// Guest change topics, one per mutation kind. Consumers subscribe to the
// queue and switch on Type.
const (
	GuestAdded   = "guest.added"
	GuestUpdated = "guest.updated"
	GuestDeleted = "guest.deleted"
)

// GuestPayload is the wire shape of a guest inside an event.
type GuestPayload struct {
	ID          string  `json:"id"`
	FirstName   string  `json:"first_name"`
	MiddleName  string  `json:"middle_name,omitempty"`
	LastName    string  `json:"last_name"`
	PhoneNumber string  `json:"phone_number"`
	Assist      bool    `json:"assist"`
	GroupID     *string `json:"group_id,omitempty"`
	TableID     *string `json:"table_id,omitempty"`
}

// GuestEvent is published to the guest-events queue after each guest
// mutation commits.
type GuestEvent struct {
	Type  string       `json:"type"`
	Guest GuestPayload `json:"guest"`
	At    time.Time    `json:"at"`
}

// GuestPublisher publishes guest change events. Publishing is best
// effort: failures are logged and never fail the originating request.
type GuestPublisher struct {
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewGuestPublisher(pub *helpers.RabbitPublisher, logger *logrus.Logger) *GuestPublisher {
	return &GuestPublisher{Pub: pub, Logger: logger}
}

func (p *GuestPublisher) Publish(ctx context.Context, eventType string, guest GuestPayload) {
	if p == nil || p.Pub == nil {
		return
	}
	ev := GuestEvent{Type: eventType, Guest: guest, At: time.Now().UTC()}
	if err := p.Pub.PublishJSON(ctx, ev); err != nil && p.Logger != nil {
		p.Logger.WithError(err).WithFields(logrus.Fields{
			"type":     eventType,
			"guest_id": guest.ID,
		}).Warn("failed to publish guest event")
	}
}
