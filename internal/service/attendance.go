package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventure-app/eventure-api/internal/domain"
	"github.com/eventure-app/eventure-api/internal/repository"
)

var (
	ErrAlreadyAttending    = repository.ErrAlreadyAttending
	ErrNotAttending        = repository.ErrAttendanceNotFound
	ErrEventFull           = repository.ErrEventFull
	ErrRequestNotPending   = repository.ErrRequestNotPending
	ErrAdmissionNotOffered = errors.New("admission tier is not offered by this event")
)

type AttendanceRepository interface {
	Create(ctx context.Context, attendance domain.Attendance) (domain.Attendance, error)
	Approve(ctx context.Context, eventID, userID uint) error
	Delete(ctx context.Context, eventID, userID uint) error
	DeletePending(ctx context.Context, eventID, userID uint) error
	Find(ctx context.Context, eventID, userID uint) (domain.Attendance, error)
	FindByEvent(ctx context.Context, eventID uint) ([]domain.Attendance, error)
	CountConfirmed(ctx context.Context, eventID uint) (int64, error)
}

type LedgerEventRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Event, error)
}

// AttendanceService is the per-(user, event) state machine: none ->
// pending (gated events) or confirmed (ungated), pending -> confirmed
// on owner approval, and back to none on cancellation or rejection.
type AttendanceService struct {
	repo      AttendanceRepository
	eventRepo LedgerEventRepository
}

func NewAttendanceService(repo AttendanceRepository, eventRepo LedgerEventRepository) *AttendanceService {
	return &AttendanceService{
		repo:      repo,
		eventRepo: eventRepo,
	}
}

// RequestAttendance creates the attendance record. Events with
// admission tiers take a pending request the owner must approve;
// ungated events confirm immediately. The capacity check and the
// insert run in one storage transaction, so concurrent requests for
// the last seat cannot both succeed.
func (s *AttendanceService) RequestAttendance(ctx context.Context, userID, eventID uint, admissionID *uint) (domain.Attendance, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return domain.Attendance{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	var admission *int
	if admissionID != nil {
		amount, ok := admissionAmount(event, *admissionID)
		if !ok {
			return domain.Attendance{}, ErrAdmissionNotOffered
		}
		admission = &amount
	}

	created, err := s.repo.Create(ctx, domain.Attendance{
		UserID:    userID,
		EventID:   eventID,
		Approved:  !event.Gated(),
		Admission: admission,
	})
	if err != nil {
		return domain.Attendance{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func admissionAmount(event domain.Event, admissionID uint) (int, bool) {
	for _, a := range event.Admissions {
		if a.ID == admissionID {
			return a.Amount, true
		}
	}

	return 0, false
}

// ApproveRequest confirms a pending request. Only the event owner may
// approve. Capacity is re-checked inside the same transaction that
// flips the flag, since many requests can be pending against one
// remaining seat.
func (s *AttendanceService) ApproveRequest(ctx context.Context, actor domain.Actor, eventID, targetUserID uint) error {
	if err := s.requireOwner(ctx, actor, eventID); err != nil {
		return err
	}

	if err := s.repo.Approve(ctx, eventID, targetUserID); err != nil {
		return fmt.Errorf("s.repo.Approve -> %w", err)
	}

	return nil
}

// CancelAttendance removes the caller's own record, pending or
// confirmed alike.
func (s *AttendanceService) CancelAttendance(ctx context.Context, userID, eventID uint) error {
	if err := s.repo.Delete(ctx, eventID, userID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// RejectRequest is the owner-initiated counterpart of cancellation and
// only applies to requests still pending.
func (s *AttendanceService) RejectRequest(ctx context.Context, actor domain.Actor, eventID, targetUserID uint) error {
	if err := s.requireOwner(ctx, actor, eventID); err != nil {
		return err
	}

	if err := s.repo.DeletePending(ctx, eventID, targetUserID); err != nil {
		return fmt.Errorf("s.repo.DeletePending -> %w", err)
	}

	return nil
}

func (s *AttendanceService) GetAttendance(ctx context.Context, userID, eventID uint) (domain.Attendance, error) {
	attendance, err := s.repo.Find(ctx, eventID, userID)
	if err != nil {
		return domain.Attendance{}, fmt.Errorf("s.repo.Find -> %w", err)
	}

	return attendance, nil
}

// ListAttendees returns the full roster (pending and confirmed) to the
// event owner, moderators and administrators.
func (s *AttendanceService) ListAttendees(ctx context.Context, actor domain.Actor, eventID uint) ([]domain.Attendance, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	if event.OwnerID != actor.ID && !domain.CanApprove(actor) {
		return nil, domain.ErrNotOwner
	}

	attendances, err := s.repo.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	return attendances, nil
}

func (s *AttendanceService) ConfirmedCount(ctx context.Context, eventID uint) (int64, error) {
	confirmed, err := s.repo.CountConfirmed(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.CountConfirmed -> %w", err)
	}

	return confirmed, nil
}

func (s *AttendanceService) requireOwner(ctx context.Context, actor domain.Actor, eventID uint) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	if event.OwnerID != actor.ID {
		return domain.ErrNotOwner
	}

	return nil
}
