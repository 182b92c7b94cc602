package application

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/event-guestlist-api/internal/domain/entity"
	"github.com/oksasatya/event-guestlist-api/internal/domain/repository"
)

// fakeStore backs both repositories so membership tests observe the
// same state the service mutates, the way the real database would.
type fakeStore struct {
	guests map[string]*entity.Guest
	groups map[string]*entity.Group
	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		guests: map[string]*entity.Guest{},
		groups: map[string]*entity.Group{},
	}
}

func (s *fakeStore) id() string {
	s.nextID++
	return fmt.Sprintf("00000000-0000-0000-0000-%012d", s.nextID)
}

func (s *fakeStore) addGuest(name string) *entity.Guest {
	g := &entity.Guest{ID: s.id(), FirstName: name, LastName: "Test"}
	s.guests[g.ID] = g
	return g
}

type fakeGuestRepo struct{ s *fakeStore }

func (r *fakeGuestRepo) Create(ctx context.Context, g *entity.Guest) error {
	g.ID = r.s.id()
	r.s.guests[g.ID] = g
	return nil
}

func (r *fakeGuestRepo) GetByID(ctx context.Context, id string) (*entity.Guest, error) {
	g, ok := r.s.guests[id]
	if !ok || g.DeletedAt != nil {
		return nil, repository.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (r *fakeGuestRepo) List(ctx context.Context, p repository.GuestListParams) ([]*entity.Guest, error) {
	out := make([]*entity.Guest, 0, len(r.s.guests))
	for _, g := range r.s.guests {
		out = append(out, g)
	}
	return out, nil
}

func (r *fakeGuestRepo) Update(ctx context.Context, id string, patch repository.GuestPatch, updatedBy string) (*entity.Guest, error) {
	g, ok := r.s.guests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return g, nil
}

func (r *fakeGuestRepo) SoftDelete(ctx context.Context, id, deletedBy string) (*entity.Guest, error) {
	g, ok := r.s.guests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return g, nil
}

func (r *fakeGuestRepo) SetGroup(ctx context.Context, guestID string, groupID *string) error {
	if g, ok := r.s.guests[guestID]; ok {
		g.GroupID = groupID
	}
	return nil
}

func (r *fakeGuestRepo) SetGroupMany(ctx context.Context, guestIDs []string, groupID string) error {
	for _, id := range guestIDs {
		if g, ok := r.s.guests[id]; ok {
			gid := groupID
			g.GroupID = &gid
		}
	}
	return nil
}

func (r *fakeGuestRepo) ClearGroupMany(ctx context.Context, guestIDs []string) error {
	for _, id := range guestIDs {
		if g, ok := r.s.guests[id]; ok {
			g.GroupID = nil
		}
	}
	return nil
}

type fakeGroupRepo struct{ s *fakeStore }

func (r *fakeGroupRepo) Create(ctx context.Context, g *entity.Group) error {
	g.ID = r.s.id()
	r.s.groups[g.ID] = g
	return nil
}

func (r *fakeGroupRepo) GetByID(ctx context.Context, id string) (*entity.Group, error) {
	g, ok := r.s.groups[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *g
	cp.GuestIDs = append([]string(nil), g.GuestIDs...)
	return &cp, nil
}

func (r *fakeGroupRepo) List(ctx context.Context, p repository.GroupListParams) ([]*repository.GroupWithGuests, error) {
	out := make([]*repository.GroupWithGuests, 0, len(r.s.groups))
	for _, g := range r.s.groups {
		out = append(out, &repository.GroupWithGuests{Group: *g})
	}
	return out, nil
}

func (r *fakeGroupRepo) AddGuest(ctx context.Context, groupID, guestID string) error {
	g, ok := r.s.groups[groupID]
	if !ok {
		return repository.ErrNotFound
	}
	if !g.HasGuest(guestID) {
		g.GuestIDs = append(g.GuestIDs, guestID)
	}
	return nil
}

func (r *fakeGroupRepo) RemoveGuests(ctx context.Context, groupID string, guestIDs []string) error {
	g, ok := r.s.groups[groupID]
	if !ok {
		return repository.ErrNotFound
	}
	drop := map[string]struct{}{}
	for _, id := range guestIDs {
		drop[id] = struct{}{}
	}
	kept := g.GuestIDs[:0]
	for _, id := range g.GuestIDs {
		if _, d := drop[id]; !d {
			kept = append(kept, id)
		}
	}
	g.GuestIDs = kept
	return nil
}

func (r *fakeGroupRepo) UpdateScalars(ctx context.Context, id string, patch repository.GroupPatch, updatedBy string) error {
	g, ok := r.s.groups[id]
	if !ok {
		return repository.ErrNotFound
	}
	if patch.Name != nil {
		g.Name = *patch.Name
	}
	if patch.TableID != nil {
		g.TableID = patch.TableID
	}
	return nil
}

func newGroupServiceFixture() (*GroupService, *fakeStore) {
	s := newFakeStore()
	svc := NewGroupService(&fakeGroupRepo{s: s}, &fakeGuestRepo{s: s}, nil)
	return svc, s
}

func guestsPtr(ids ...string) *[]string { return &ids }

func TestCreateGroupAssignsGuests(t *testing.T) {
	svc, s := newGroupServiceFixture()
	a := s.addGuest("Alice")
	b := s.addGuest("Bob")

	g, err := svc.Create(context.Background(), CreateGroupInput{
		Name:   "Family",
		Guests: []string{a.ID, b.ID},
	}, "admin")
	require.NoError(t, err)

	require.NotNil(t, s.guests[a.ID].GroupID)
	assert.Equal(t, g.ID, *s.guests[a.ID].GroupID)
	assert.Equal(t, g.ID, *s.guests[b.ID].GroupID)
}

func TestUpdateGroupReplacesMembership(t *testing.T) {
	svc, s := newGroupServiceFixture()
	a := s.addGuest("Alice")
	b := s.addGuest("Bob")
	c := s.addGuest("Carol")

	g, err := svc.Create(context.Background(), CreateGroupInput{
		Name:   "Family",
		Guests: []string{a.ID, b.ID},
	}, "admin")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), g.ID, UpdateGroupInput{
		Guests: guestsPtr(b.ID, c.ID),
	}, "admin")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{b.ID, c.ID}, updated.GuestIDs)
	assert.Nil(t, s.guests[a.ID].GroupID, "evicted guest keeps no back-reference")
	assert.Equal(t, g.ID, *s.guests[b.ID].GroupID)
	assert.Equal(t, g.ID, *s.guests[c.ID].GroupID)
}

func TestUpdateGroupDetachesFromPreviousGroup(t *testing.T) {
	svc, s := newGroupServiceFixture()
	a := s.addGuest("Alice")

	first, err := svc.Create(context.Background(), CreateGroupInput{
		Name:   "Bride side",
		Guests: []string{a.ID},
	}, "admin")
	require.NoError(t, err)

	second, err := svc.Create(context.Background(), CreateGroupInput{Name: "Groom side"}, "admin")
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), second.ID, UpdateGroupInput{
		Guests: guestsPtr(a.ID),
	}, "admin")
	require.NoError(t, err)

	assert.Empty(t, s.groups[first.ID].GuestIDs, "guest left the old group's list")
	assert.ElementsMatch(t, []string{a.ID}, s.groups[second.ID].GuestIDs)
	assert.Equal(t, second.ID, *s.guests[a.ID].GroupID)
}

func TestUpdateGroupSkipsUnknownGuests(t *testing.T) {
	svc, s := newGroupServiceFixture()
	a := s.addGuest("Alice")

	g, err := svc.Create(context.Background(), CreateGroupInput{Name: "Family"}, "admin")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), g.ID, UpdateGroupInput{
		Guests: guestsPtr(a.ID, "00000000-0000-0000-0000-999999999999"),
	}, "admin")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{a.ID}, updated.GuestIDs)
}

func TestUpdateGroupEmptyListEvictsEveryone(t *testing.T) {
	svc, s := newGroupServiceFixture()
	a := s.addGuest("Alice")
	b := s.addGuest("Bob")

	g, err := svc.Create(context.Background(), CreateGroupInput{
		Name:   "Family",
		Guests: []string{a.ID, b.ID},
	}, "admin")
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), g.ID, UpdateGroupInput{
		Guests: guestsPtr(),
	}, "admin")
	require.NoError(t, err)

	assert.Empty(t, updated.GuestIDs)
	assert.Nil(t, s.guests[a.ID].GroupID)
	assert.Nil(t, s.guests[b.ID].GroupID)
}

func TestUpdateGroupNilListLeavesMembershipAlone(t *testing.T) {
	svc, s := newGroupServiceFixture()
	a := s.addGuest("Alice")

	g, err := svc.Create(context.Background(), CreateGroupInput{
		Name:   "Family",
		Guests: []string{a.ID},
	}, "admin")
	require.NoError(t, err)

	name := "Close family"
	updated, err := svc.Update(context.Background(), g.ID, UpdateGroupInput{Name: &name}, "admin")
	require.NoError(t, err)

	assert.Equal(t, "Close family", updated.Name)
	assert.ElementsMatch(t, []string{a.ID}, updated.GuestIDs)
	assert.Equal(t, g.ID, *s.guests[a.ID].GroupID)
}

func TestUpdateGroupIdempotent(t *testing.T) {
	svc, s := newGroupServiceFixture()
	a := s.addGuest("Alice")
	b := s.addGuest("Bob")

	g, err := svc.Create(context.Background(), CreateGroupInput{Name: "Family"}, "admin")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := svc.Update(context.Background(), g.ID, UpdateGroupInput{
			Guests: guestsPtr(a.ID, b.ID),
		}, "admin")
		require.NoError(t, err)
	}

	got, err := svc.Update(context.Background(), g.ID, UpdateGroupInput{
		Guests: guestsPtr(a.ID, b.ID),
	}, "admin")
	require.NoError(t, err)
	assert.Len(t, got.GuestIDs, 2, "repeating the same update never duplicates members")
}

func TestUpdateGroupNotFound(t *testing.T) {
	svc, _ := newGroupServiceFixture()

	_, err := svc.Update(context.Background(), "00000000-0000-0000-0000-999999999999", UpdateGroupInput{}, "admin")
	assert.ErrorIs(t, err, ErrGroupNotFound)
}
