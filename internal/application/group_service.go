package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-guestlist-api/internal/domain/entity"
	"github.com/oksasatya/event-guestlist-api/internal/domain/repository"
)

var ErrGroupNotFound = errors.New("group not found")

// GroupService maintains the bidirectional consistency between
// Group.GuestIDs and each guest's GroupID back-reference.
//
// The three reconciliation phases issue individual store writes and are
// not wrapped in a transaction; two concurrent updates touching the same
// guest can interleave. Each phase is idempotent, so rerunning an update
// after a mid-phase failure repairs the partial state.
type GroupService struct {
	Groups repository.GroupRepository
	Guests repository.GuestRepository
	Logger *logrus.Logger
}

func NewGroupService(groups repository.GroupRepository, guests repository.GuestRepository, logger *logrus.Logger) *GroupService {
	return &GroupService{Groups: groups, Guests: guests, Logger: logger}
}

type CreateGroupInput struct {
	Name    string
	Guests  []string
	TableID *string
}

type UpdateGroupInput struct {
	Name    *string
	TableID *string
	// Guests is the desired complete member set. Nil leaves membership
	// untouched; an empty non-nil slice evicts everyone.
	Guests *[]string
}

// Create stores a new group and points the listed guests at it.
func (s *GroupService) Create(ctx context.Context, in CreateGroupInput, createdBy string) (*entity.Group, error) {
	g := &entity.Group{
		Name:      in.Name,
		GuestIDs:  in.Guests,
		TableID:   in.TableID,
		CreatedBy: createdBy,
	}
	if g.GuestIDs == nil {
		g.GuestIDs = []string{}
	}
	if err := s.Groups.Create(ctx, g); err != nil {
		return nil, err
	}
	if len(in.Guests) > 0 {
		if err := s.Guests.SetGroupMany(ctx, in.Guests, g.ID); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Update applies a group update in three phases: evict members missing
// from the desired set, adopt every desired member, then persist scalar
// fields. Membership is only reconciled when in.Guests is non-nil.
func (s *GroupService) Update(ctx context.Context, id string, in UpdateGroupInput, updatedBy string) (*entity.Group, error) {
	group, err := s.Groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}

	if in.Guests != nil {
		if err := s.reconcileMembers(ctx, group, *in.Guests); err != nil {
			return nil, err
		}
	}

	// Scalar field phase. Always runs so updated_at/updated_by record the
	// mutation even when only membership changed.
	patch := repository.GroupPatch{Name: in.Name, TableID: in.TableID}
	if err := s.Groups.UpdateScalars(ctx, id, patch, updatedBy); err != nil {
		return nil, err
	}

	return s.Groups.GetByID(ctx, id)
}

// reconcileMembers runs the eviction and adoption phases against the
// desired member set.
func (s *GroupService) reconcileMembers(ctx context.Context, group *entity.Group, desired []string) error {
	desiredSet := make(map[string]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}

	// Eviction: members no longer desired lose their back-reference and
	// leave this group's list.
	var toRemove []string
	for _, gid := range group.GuestIDs {
		if _, keep := desiredSet[gid]; !keep {
			toRemove = append(toRemove, gid)
		}
	}
	if len(toRemove) > 0 {
		if err := s.Guests.ClearGroupMany(ctx, toRemove); err != nil {
			return err
		}
		if err := s.Groups.RemoveGuests(ctx, group.ID, toRemove); err != nil {
			return err
		}
	}

	// Adoption: every desired guest ends up referencing this group and
	// listed here exactly once. A guest still referencing a different
	// group is pulled out of that group's list first, so no guest is
	// ever listed under two groups.
	for _, guestID := range desired {
		guest, err := s.Guests.GetByID(ctx, guestID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Unknown ids are skipped on purpose, allowing partial
				// membership updates from stale clients.
				if s.Logger != nil {
					s.Logger.WithFields(logrus.Fields{
						"group_id": group.ID,
						"guest_id": guestID,
					}).Debug("skipping unknown guest in group update")
				}
				continue
			}
			return err
		}

		if guest.GroupID != nil && *guest.GroupID != group.ID {
			if err := s.Groups.RemoveGuests(ctx, *guest.GroupID, []string{guestID}); err != nil {
				return err
			}
		}
		gid := group.ID
		if err := s.Guests.SetGroup(ctx, guestID, &gid); err != nil {
			return err
		}
		if err := s.Groups.AddGuest(ctx, group.ID, guestID); err != nil {
			return err
		}
	}

	return nil
}

// List returns groups with their member name summaries populated.
func (s *GroupService) List(ctx context.Context, p repository.GroupListParams) ([]*repository.GroupWithGuests, error) {
	p.Normalize()
	return s.Groups.List(ctx, p)
}
