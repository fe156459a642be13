package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrAlreadyAttending   = errors.New("user already has an attendance record for this event")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrEventFull          = errors.New("event has reached its capacity")
	ErrRequestNotPending  = errors.New("attendance record is not a pending request")
)

// Attendance has a composite primary key, so the database itself
// enforces at most one record per (user, event) pair.
type Attendance struct {
	EventID uint `gorm:"primaryKey;autoIncrement:false"`
	UserID  uint `gorm:"primaryKey;autoIncrement:false"`

	Approved  bool `gorm:"not null;default:false"`
	Admission *int

	CreatedAt time.Time `gorm:"not null"`
}

func (Attendance) TableName() string {
	return "event_attendances"
}

type AttendanceDAO struct {
	db *gorm.DB
}

func NewAttendanceDAO(db *gorm.DB) *AttendanceDAO {
	return &AttendanceDAO{
		db: db,
	}
}

// Insert creates the record only if the event's confirmed seat count
// is still below capacity. The event row is locked for the duration of
// the transaction so two concurrent requests cannot both pass the
// check for the last seat. Only confirmed records count against
// capacity; pending requests do not hold a seat.
func (d *AttendanceDAO) Insert(ctx context.Context, attendance Attendance) (Attendance, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, confirmed, err := lockEventAndCountConfirmed(tx, attendance.EventID)
		if err != nil {
			return err
		}
		if confirmed >= int64(event.Capacity) {
			return ErrEventFull
		}

		if result := tx.Create(&attendance); result.Error != nil {
			var pgErr *pgconn.PgError
			if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrAlreadyAttending
			}

			return result.Error
		}

		return nil
	})
	if err != nil {
		return Attendance{}, err
	}

	return attendance, nil
}

// Approve flips a pending record to confirmed, re-checking capacity
// under the same event row lock so simultaneous approvals cannot
// overbook a single remaining seat.
func (d *AttendanceDAO) Approve(ctx context.Context, eventID, userID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		event, confirmed, err := lockEventAndCountConfirmed(tx, eventID)
		if err != nil {
			return err
		}

		var attendance Attendance
		result := tx.First(&attendance, "event_id = ? AND user_id = ?", eventID, userID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrAttendanceNotFound
			}

			return result.Error
		}
		if attendance.Approved {
			return ErrRequestNotPending
		}

		if confirmed >= int64(event.Capacity) {
			return ErrEventFull
		}

		return tx.Model(&attendance).Update("approved", true).Error
	})
}

func lockEventAndCountConfirmed(tx *gorm.DB, eventID uint) (Event, int64, error) {
	var event Event
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&event, eventID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Event{}, 0, ErrEventNotFound
		}

		return Event{}, 0, err
	}

	var confirmed int64
	err = tx.Model(&Attendance{}).
		Where("event_id = ? AND approved", eventID).
		Count(&confirmed).Error
	if err != nil {
		return Event{}, 0, err
	}

	return event, confirmed, nil
}

// Delete removes the record regardless of state (self cancellation).
func (d *AttendanceDAO) Delete(ctx context.Context, eventID, userID uint) error {
	result := d.db.WithContext(ctx).
		Delete(&Attendance{}, "event_id = ? AND user_id = ?", eventID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAttendanceNotFound
	}

	return nil
}

// DeletePending removes the record only while it is still a pending
// request (owner rejection).
func (d *AttendanceDAO) DeletePending(ctx context.Context, eventID, userID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var attendance Attendance
		result := tx.First(&attendance, "event_id = ? AND user_id = ?", eventID, userID)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrAttendanceNotFound
			}

			return result.Error
		}
		if attendance.Approved {
			return ErrRequestNotPending
		}

		return tx.Delete(&attendance).Error
	})
}

func (d *AttendanceDAO) Find(ctx context.Context, eventID, userID uint) (Attendance, error) {
	var attendance Attendance

	result := d.db.WithContext(ctx).First(&attendance, "event_id = ? AND user_id = ?", eventID, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Attendance{}, ErrAttendanceNotFound
		}

		return Attendance{}, result.Error
	}

	return attendance, nil
}

func (d *AttendanceDAO) FindByEvent(ctx context.Context, eventID uint) ([]Attendance, error) {
	var attendances []Attendance

	result := d.db.WithContext(ctx).
		Order("created_at").
		Find(&attendances, "event_id = ?", eventID)
	if result.Error != nil {
		return nil, result.Error
	}

	return attendances, nil
}

func (d *AttendanceDAO) CountConfirmed(ctx context.Context, eventID uint) (int64, error) {
	var confirmed int64

	err := d.db.WithContext(ctx).Model(&Attendance{}).
		Where("event_id = ? AND approved", eventID).
		Count(&confirmed).Error
	if err != nil {
		return 0, err
	}

	return confirmed, nil
}
