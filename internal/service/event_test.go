package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventure-app/eventure-api/internal/domain"
)

// memFullEventRepo backs the event service with the same semantics the
// DAO provides: exact-match name uniqueness on create and substring
// matching on discovery.
type memFullEventRepo struct {
	nextID uint
	events map[uint]domain.Event
}

func newMemFullEventRepo() *memFullEventRepo {
	return &memFullEventRepo{
		events: make(map[uint]domain.Event),
	}
}

func (r *memFullEventRepo) Create(_ context.Context, ownerID uint, draft domain.EventDraft) (domain.Event, error) {
	for _, e := range r.events {
		if e.Name == draft.Name {
			return domain.Event{}, ErrEventNameExists
		}
	}

	r.nextID++
	event := domain.Event{
		ID:            r.nextID,
		Name:          draft.Name,
		StartDatetime: draft.StartDatetime,
		EndDatetime:   draft.EndDatetime,
		Capacity:      draft.Capacity,
		Description:   draft.Description,
		Image:         draft.Image,
		OwnerID:       ownerID,
		PlaceID:       draft.PlaceID,
	}
	r.events[event.ID] = event

	return event, nil
}

func (r *memFullEventRepo) Update(_ context.Context, eventID uint, draft domain.EventDraft) error {
	event, exists := r.events[eventID]
	if !exists {
		return ErrEventNotFound
	}

	event.StartDatetime = draft.StartDatetime
	event.EndDatetime = draft.EndDatetime
	event.Capacity = draft.Capacity
	event.Description = draft.Description
	event.Image = draft.Image
	event.PlaceID = draft.PlaceID
	r.events[eventID] = event

	return nil
}

func (r *memFullEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, exists := r.events[id]
	if !exists {
		return domain.Event{}, ErrEventNotFound
	}

	return event, nil
}

func (r *memFullEventRepo) Find(_ context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	var out []domain.Event
	for id := uint(1); id <= r.nextID; id++ {
		event, exists := r.events[id]
		if !exists {
			continue
		}
		if filter.NameSubstring != "" &&
			!strings.Contains(strings.ToLower(event.Name), strings.ToLower(filter.NameSubstring)) {
			continue
		}
		if filter.OnlyApproved && !event.Approved {
			continue
		}
		if filter.HasAdmission && !event.Gated() {
			continue
		}
		out = append(out, event)
	}

	return out, nil
}

func (r *memFullEventRepo) Approve(_ context.Context, id uint) error {
	event, exists := r.events[id]
	if !exists {
		return ErrEventNotFound
	}

	event.Approved = true
	r.events[id] = event

	return nil
}

func validDraft(name string) domain.EventDraft {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	return domain.EventDraft{
		Name:          name,
		StartDatetime: start,
		EndDatetime:   start.Add(2 * time.Hour),
		Capacity:      100,
		Description:   "a lecture",
		PlaceID:       1,
	}
}

func TestCreateEvent(t *testing.T) {
	t.Run("created unapproved with the caller as owner", func(t *testing.T) {
		svc := NewEventService(newMemFullEventRepo())

		event, err := svc.CreateEvent(context.Background(), 7, validDraft("IIS"))
		require.NoError(t, err)
		assert.False(t, event.Approved)
		assert.Equal(t, uint(7), event.OwnerID)
	})

	t.Run("duplicate name rejected regardless of proposer", func(t *testing.T) {
		svc := NewEventService(newMemFullEventRepo())

		_, err := svc.CreateEvent(context.Background(), 7, validDraft("IIS"))
		require.NoError(t, err)

		_, err = svc.CreateEvent(context.Background(), 8, validDraft("IIS"))
		assert.ErrorIs(t, err, ErrEventNameExists)
	})

	t.Run("end must come after start", func(t *testing.T) {
		svc := NewEventService(newMemFullEventRepo())

		draft := validDraft("IIS")
		draft.EndDatetime = draft.StartDatetime
		_, err := svc.CreateEvent(context.Background(), 7, draft)
		assert.ErrorIs(t, err, ErrInvalidDateRange)

		draft.EndDatetime = draft.StartDatetime.Add(-time.Hour)
		_, err = svc.CreateEvent(context.Background(), 7, draft)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}

func TestEditEvent(t *testing.T) {
	owner := domain.Actor{ID: 7, Role: domain.RoleUser}

	setup := func(t *testing.T) (*EventService, domain.Event) {
		svc := NewEventService(newMemFullEventRepo())
		event, err := svc.CreateEvent(context.Background(), 7, validDraft("IIS"))
		require.NoError(t, err)

		return svc, event
	}

	t.Run("owner edits while unapproved", func(t *testing.T) {
		svc, event := setup(t)

		draft := validDraft("IIS")
		draft.Capacity = 42
		require.NoError(t, svc.EditEvent(context.Background(), owner, event.ID, draft))

		got, err := svc.GetEvent(context.Background(), owner, event.ID)
		require.NoError(t, err)
		assert.Equal(t, 42, got.Capacity)
	})

	t.Run("non-owner denied even with moderator role", func(t *testing.T) {
		svc, event := setup(t)

		err := svc.EditEvent(context.Background(), domain.Actor{ID: 8, Role: domain.RoleModerator}, event.ID, validDraft("IIS"))
		assert.ErrorIs(t, err, ErrNotEventOwner)
	})

	t.Run("approval freezes the event", func(t *testing.T) {
		svc, event := setup(t)

		moderator := domain.Actor{ID: 9, Role: domain.RoleModerator}
		require.NoError(t, svc.ApproveEvent(context.Background(), moderator, event.ID))

		err := svc.EditEvent(context.Background(), owner, event.ID, validDraft("IIS"))
		assert.ErrorIs(t, err, ErrEventFrozen)
	})

	t.Run("date order validated on edit too", func(t *testing.T) {
		svc, event := setup(t)

		draft := validDraft("IIS")
		draft.EndDatetime = draft.StartDatetime
		err := svc.EditEvent(context.Background(), owner, event.ID, draft)
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})
}

func TestApproveEvent(t *testing.T) {
	moderator := domain.Actor{ID: 9, Role: domain.RoleModerator}

	t.Run("moderator approves", func(t *testing.T) {
		svc := NewEventService(newMemFullEventRepo())
		event, err := svc.CreateEvent(context.Background(), 7, validDraft("IIS"))
		require.NoError(t, err)

		require.NoError(t, svc.ApproveEvent(context.Background(), moderator, event.ID))

		got, err := svc.GetEvent(context.Background(), domain.Actor{ID: 99, Role: domain.RoleUser}, event.ID)
		require.NoError(t, err)
		assert.True(t, got.Approved)
	})

	t.Run("regular user cannot approve, even the owner", func(t *testing.T) {
		svc := NewEventService(newMemFullEventRepo())
		event, err := svc.CreateEvent(context.Background(), 7, validDraft("IIS"))
		require.NoError(t, err)

		err = svc.ApproveEvent(context.Background(), domain.Actor{ID: 7, Role: domain.RoleUser}, event.ID)
		assert.ErrorIs(t, err, ErrApprovalForbidden)
	})

	t.Run("approving twice is reported", func(t *testing.T) {
		svc := NewEventService(newMemFullEventRepo())
		event, err := svc.CreateEvent(context.Background(), 7, validDraft("IIS"))
		require.NoError(t, err)

		require.NoError(t, svc.ApproveEvent(context.Background(), moderator, event.ID))
		err = svc.ApproveEvent(context.Background(), moderator, event.ID)
		assert.ErrorIs(t, err, domain.ErrAlreadyApproved)
	})
}

func TestGetEventVisibility(t *testing.T) {
	svc := NewEventService(newMemFullEventRepo())
	event, err := svc.CreateEvent(context.Background(), 7, validDraft("IIS"))
	require.NoError(t, err)

	t.Run("owner sees the proposal", func(t *testing.T) {
		_, err := svc.GetEvent(context.Background(), domain.Actor{ID: 7, Role: domain.RoleUser}, event.ID)
		assert.NoError(t, err)
	})

	t.Run("hidden proposals read as missing, not forbidden", func(t *testing.T) {
		_, err := svc.GetEvent(context.Background(), domain.Actor{ID: 8, Role: domain.RoleUser}, event.ID)
		assert.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("moderator sees the proposal", func(t *testing.T) {
		_, err := svc.GetEvent(context.Background(), domain.Actor{ID: 8, Role: domain.RoleModerator}, event.ID)
		assert.NoError(t, err)
	})
}

func TestListEvents(t *testing.T) {
	svc := NewEventService(newMemFullEventRepo())
	moderator := domain.Actor{ID: 9, Role: domain.RoleModerator}

	iis, err := svc.CreateEvent(context.Background(), 7, validDraft("IIS"))
	require.NoError(t, err)
	require.NoError(t, svc.ApproveEvent(context.Background(), moderator, iis.ID))

	_, err = svc.CreateEvent(context.Background(), 7, validDraft("ISA"))
	require.NoError(t, err)

	_, err = svc.CreateEvent(context.Background(), 8, validDraft("Jazz night"))
	require.NoError(t, err)

	t.Run("regular user sees approved events plus own proposals", func(t *testing.T) {
		events, err := svc.ListEvents(context.Background(), domain.Actor{ID: 7, Role: domain.RoleUser}, domain.EventFilter{})
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "IIS", events[0].Name)
		assert.Equal(t, "ISA", events[1].Name)
	})

	t.Run("moderator sees everything", func(t *testing.T) {
		events, err := svc.ListEvents(context.Background(), moderator, domain.EventFilter{})
		require.NoError(t, err)
		assert.Len(t, events, 3)
	})

	t.Run("name filter matches substrings case-insensitively", func(t *testing.T) {
		events, err := svc.ListEvents(context.Background(), moderator, domain.EventFilter{NameSubstring: "is"})
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})

	t.Run("approved-only filter", func(t *testing.T) {
		events, err := svc.ListEvents(context.Background(), moderator, domain.EventFilter{OnlyApproved: true})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "IIS", events[0].Name)
	})
}
