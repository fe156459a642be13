package repository

import (
	"context"
	"fmt"

	"github.com/eventure-app/eventure-api/internal/domain"
	"github.com/eventure-app/eventure-api/internal/repository/dao"
)

var (
	ErrAlreadyAttending   = dao.ErrAlreadyAttending
	ErrAttendanceNotFound = dao.ErrAttendanceNotFound
	ErrEventFull          = dao.ErrEventFull
	ErrRequestNotPending  = dao.ErrRequestNotPending
)

type AttendanceDAO interface {
	Insert(ctx context.Context, attendance dao.Attendance) (dao.Attendance, error)
	Approve(ctx context.Context, eventID, userID uint) error
	Delete(ctx context.Context, eventID, userID uint) error
	DeletePending(ctx context.Context, eventID, userID uint) error
	Find(ctx context.Context, eventID, userID uint) (dao.Attendance, error)
	FindByEvent(ctx context.Context, eventID uint) ([]dao.Attendance, error)
	CountConfirmed(ctx context.Context, eventID uint) (int64, error)
}

type AttendanceRepository struct {
	dao AttendanceDAO
}

func NewAttendanceRepository(dao AttendanceDAO) *AttendanceRepository {
	return &AttendanceRepository{
		dao: dao,
	}
}

// Create inserts the attendance record behind the DAO's capacity
// check; the check and insert share one transaction.
func (r *AttendanceRepository) Create(ctx context.Context, attendance domain.Attendance) (domain.Attendance, error) {
	created, err := r.dao.Insert(ctx, dao.Attendance{
		EventID:   attendance.EventID,
		UserID:    attendance.UserID,
		Approved:  attendance.Approved,
		Admission: attendance.Admission,
	})
	if err != nil {
		return domain.Attendance{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *AttendanceRepository) Approve(ctx context.Context, eventID, userID uint) error {
	if err := r.dao.Approve(ctx, eventID, userID); err != nil {
		return fmt.Errorf("r.dao.Approve -> %w", err)
	}

	return nil
}

func (r *AttendanceRepository) Delete(ctx context.Context, eventID, userID uint) error {
	if err := r.dao.Delete(ctx, eventID, userID); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *AttendanceRepository) DeletePending(ctx context.Context, eventID, userID uint) error {
	if err := r.dao.DeletePending(ctx, eventID, userID); err != nil {
		return fmt.Errorf("r.dao.DeletePending -> %w", err)
	}

	return nil
}

func (r *AttendanceRepository) Find(ctx context.Context, eventID, userID uint) (domain.Attendance, error) {
	found, err := r.dao.Find(ctx, eventID, userID)
	if err != nil {
		return domain.Attendance{}, fmt.Errorf("r.dao.Find -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *AttendanceRepository) FindByEvent(ctx context.Context, eventID uint) ([]domain.Attendance, error) {
	found, err := r.dao.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEvent -> %w", err)
	}

	attendances := make([]domain.Attendance, len(found))
	for i, a := range found {
		attendances[i] = r.daoToDomain(a)
	}

	return attendances, nil
}

func (r *AttendanceRepository) CountConfirmed(ctx context.Context, eventID uint) (int64, error) {
	confirmed, err := r.dao.CountConfirmed(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountConfirmed -> %w", err)
	}

	return confirmed, nil
}

func (r *AttendanceRepository) daoToDomain(a dao.Attendance) domain.Attendance {
	return domain.Attendance{
		EventID:   a.EventID,
		UserID:    a.UserID,
		Approved:  a.Approved,
		Admission: a.Admission,
		CreatedAt: a.CreatedAt,
	}
}
