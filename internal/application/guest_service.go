package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-guestlist-api/internal/domain/entity"
	"github.com/oksasatya/event-guestlist-api/internal/domain/repository"
	"github.com/oksasatya/event-guestlist-api/pkg/events"
)

var ErrGuestNotFound = errors.New("guest not found")

// GuestService handles guest CRUD and listings. Mutations publish a
// change event and refresh the secondary search index; both are best
// effort and never fail the request.
type GuestService struct {
	Guests  repository.GuestRepository
	Events  *events.GuestPublisher
	ES      *elasticsearch.Client
	ESIndex string
	Logger  *logrus.Logger
}

func NewGuestService(guests repository.GuestRepository, pub *events.GuestPublisher, es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *GuestService {
	return &GuestService{Guests: guests, Events: pub, ES: es, ESIndex: esIndex, Logger: logger}
}

type CreateGuestInput struct {
	FirstName        string
	MiddleName       string
	LastName         string
	PhoneNumber      string
	Assist           bool
	AnswerInvitation bool
	SawInvitation    bool
	AnswerSD         bool
	SawSD            bool
}

func (s *GuestService) Create(ctx context.Context, in CreateGuestInput, createdBy string) (*entity.Guest, error) {
	g := &entity.Guest{
		FirstName:        in.FirstName,
		MiddleName:       in.MiddleName,
		LastName:         in.LastName,
		PhoneNumber:      in.PhoneNumber,
		Assist:           in.Assist,
		AnswerInvitation: in.AnswerInvitation,
		SawInvitation:    in.SawInvitation,
		AnswerSD:         in.AnswerSD,
		SawSD:            in.SawSD,
		CreatedBy:        createdBy,
	}
	if err := s.Guests.Create(ctx, g); err != nil {
		return nil, err
	}
	s.Events.Publish(ctx, events.GuestAdded, toPayload(g))
	s.indexGuest(ctx, g)
	return g, nil
}

func (s *GuestService) Get(ctx context.Context, id string) (*entity.Guest, error) {
	g, err := s.Guests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return g, nil
}

func (s *GuestService) List(ctx context.Context, p repository.GuestListParams) ([]*entity.Guest, error) {
	p.Normalize()
	return s.Guests.List(ctx, p)
}

func (s *GuestService) Update(ctx context.Context, id string, patch repository.GuestPatch, updatedBy string) (*entity.Guest, error) {
	g, err := s.Guests.Update(ctx, id, patch, updatedBy)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	s.Events.Publish(ctx, events.GuestUpdated, toPayload(g))
	s.indexGuest(ctx, g)
	return g, nil
}

// Delete soft-deletes a guest that is not already deleted.
func (s *GuestService) Delete(ctx context.Context, id, deletedBy string) (*entity.Guest, error) {
	g, err := s.Guests.SoftDelete(ctx, id, deletedBy)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	s.Events.Publish(ctx, events.GuestDeleted, toPayload(g))
	s.deleteFromIndex(ctx, id)
	return g, nil
}

func toPayload(g *entity.Guest) events.GuestPayload {
	return events.GuestPayload{
		ID:          g.ID,
		FirstName:   g.FirstName,
		MiddleName:  g.MiddleName,
		LastName:    g.LastName,
		PhoneNumber: g.PhoneNumber,
		Assist:      g.Assist,
		GroupID:     g.GroupID,
		TableID:     g.TableID,
	}
}

func (s *GuestService) indexGuest(ctx context.Context, g *entity.Guest) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":           g.ID,
		"first_name":   g.FirstName,
		"middle_name":  g.MiddleName,
		"last_name":    g.LastName,
		"full_name":    strings.TrimSpace(strings.Join([]string{g.FirstName, g.MiddleName, g.LastName}, " ")),
		"phone_number": g.PhoneNumber,
		"assist":       g.Assist,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: g.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("guest_id", g.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("guest_id", g.ID).Warn("es index response error")
	}
}

func (s *GuestService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("guest_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match name search against the secondary index.
// Listing semantics (filters, pagination) stay on SQL; this is a
// convenience endpoint for typeahead-style lookups.
func (s *GuestService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"first_name^2", "middle_name", "last_name^2", "full_name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		doc := h.Source
		if doc == nil {
			doc = map[string]any{}
		}
		doc["id"] = h.ID
		out = append(out, doc)
	}
	return out, nil
}
