package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrAlreadyReviewed = errors.New("user already reviewed this event")
	ErrReviewNotFound  = errors.New("review not found")
)

type Review struct {
	ID uint `gorm:"primaryKey"`

	Comment string
	Rating  int `gorm:"not null"`

	UserID  uint `gorm:"not null;uniqueIndex:idx_reviews_user_event"`
	EventID uint `gorm:"not null;uniqueIndex:idx_reviews_user_event"`

	CreatedAt time.Time `gorm:"not null"`
}

type ReviewDAO struct {
	db *gorm.DB
}

func NewReviewDAO(db *gorm.DB) *ReviewDAO {
	return &ReviewDAO{
		db: db,
	}
}

func (d *ReviewDAO) Insert(ctx context.Context, review Review) (Review, error) {
	result := d.db.WithContext(ctx).Create(&review)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return Review{}, ErrAlreadyReviewed
		}

		return Review{}, result.Error
	}

	return review, nil
}

func (d *ReviewDAO) FindByID(ctx context.Context, id uint) (Review, error) {
	var review Review

	result := d.db.WithContext(ctx).First(&review, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Review{}, ErrReviewNotFound
		}

		return Review{}, result.Error
	}

	return review, nil
}

func (d *ReviewDAO) FindByEvent(ctx context.Context, eventID uint) ([]Review, error) {
	var reviews []Review

	result := d.db.WithContext(ctx).Order("id").Find(&reviews, "event_id = ?", eventID)
	if result.Error != nil {
		return nil, result.Error
	}

	return reviews, nil
}

func (d *ReviewDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}

	return nil
}
