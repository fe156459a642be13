package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventure-app/eventure-api/internal/domain"
	"github.com/eventure-app/eventure-api/internal/repository"
)

var (
	ErrEventNameExists        = repository.ErrEventNameExists
	ErrEventNotFound          = repository.ErrEventNotFound
	ErrEventReferenceNotFound = repository.ErrEventReferenceNotFound
	ErrNotEventOwner          = domain.ErrNotOwner
	ErrEventFrozen            = domain.ErrAlreadyApproved
	ErrInvalidDateRange       = errors.New("event end must be after its start")
	ErrApprovalForbidden      = errors.New("only moderators and administrators may approve")
)

type EventRepository interface {
	Create(ctx context.Context, ownerID uint, draft domain.EventDraft) (domain.Event, error)
	Update(ctx context.Context, eventID uint, draft domain.EventDraft) error
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	Find(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error)
	Approve(ctx context.Context, id uint) error
}

// EventService owns the event lifecycle: proposal, pre-approval
// editing, approval and discovery.
type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

// CreateEvent persists an unapproved event owned by ownerID. Name
// uniqueness is enforced by the store (exact match, unlike the
// substring matching used for discovery).
func (s *EventService) CreateEvent(ctx context.Context, ownerID uint, draft domain.EventDraft) (domain.Event, error) {
	if !draft.EndDatetime.After(draft.StartDatetime) {
		return domain.Event{}, ErrInvalidDateRange
	}

	created, err := s.repo.Create(ctx, ownerID, draft)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

// EditEvent replaces the mutable fields and rewrites both association
// sets from the draft. Only the owner may edit, and only while the
// event is still unapproved.
func (s *EventService) EditEvent(ctx context.Context, actor domain.Actor, eventID uint, draft domain.EventDraft) error {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err = domain.CanEdit(event, actor); err != nil {
		return err
	}

	if !draft.EndDatetime.After(draft.StartDatetime) {
		return ErrInvalidDateRange
	}

	if err = s.repo.Update(ctx, eventID, draft); err != nil {
		return fmt.Errorf("s.repo.Update -> %w", err)
	}

	return nil
}

// ApproveEvent makes the event public. The transition is one-way;
// there is no unapprove.
func (s *EventService) ApproveEvent(ctx context.Context, actor domain.Actor, eventID uint) error {
	if !domain.CanApprove(actor) {
		return ErrApprovalForbidden
	}

	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if event.Approved {
		return domain.ErrAlreadyApproved
	}

	if err = s.repo.Approve(ctx, eventID); err != nil {
		return fmt.Errorf("s.repo.Approve -> %w", err)
	}

	return nil
}

// GetEvent hides unapproved events from actors who may not view them;
// such events are reported as missing rather than forbidden.
func (s *EventService) GetEvent(ctx context.Context, actor domain.Actor, eventID uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !domain.CanView(event, actor) {
		return domain.Event{}, ErrEventNotFound
	}

	return event, nil
}

// ListEvents applies the caller's filter and then the visibility gate:
// regular users see approved events plus their own proposals.
func (s *EventService) ListEvents(ctx context.Context, actor domain.Actor, filter domain.EventFilter) ([]domain.Event, error) {
	events, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Find -> %w", err)
	}

	visible := make([]domain.Event, 0, len(events))
	for _, event := range events {
		if domain.CanView(event, actor) {
			visible = append(visible, event)
		}
	}

	return visible, nil
}
