package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventure-app/eventure-api/internal/domain"
	"github.com/eventure-app/eventure-api/internal/repository"
)

var (
	ErrAlreadyReviewed      = repository.ErrAlreadyReviewed
	ErrReviewNotFound       = repository.ErrReviewNotFound
	ErrNotConfirmedAttendee = errors.New("only confirmed attendees may review an event")
	ErrReviewDeleteDenied   = errors.New("only the author or a moderator may delete a review")
)

type ReviewRepository interface {
	Create(ctx context.Context, review domain.Review) (domain.Review, error)
	FindByID(ctx context.Context, id uint) (domain.Review, error)
	FindByEvent(ctx context.Context, eventID uint) ([]domain.Review, error)
	Delete(ctx context.Context, id uint) error
}

type ReviewAttendanceRepository interface {
	Find(ctx context.Context, eventID, userID uint) (domain.Attendance, error)
}

type ReviewService struct {
	repo           ReviewRepository
	attendanceRepo ReviewAttendanceRepository
}

func NewReviewService(repo ReviewRepository, attendanceRepo ReviewAttendanceRepository) *ReviewService {
	return &ReviewService{
		repo:           repo,
		attendanceRepo: attendanceRepo,
	}
}

// CreateReview stores one review per (user, event) pair. The author
// must hold a confirmed attendance for the event.
func (s *ReviewService) CreateReview(ctx context.Context, userID, eventID uint, comment string, rating int) (domain.Review, error) {
	attendance, err := s.attendanceRepo.Find(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAttendanceNotFound) {
			return domain.Review{}, ErrNotConfirmedAttendee
		}

		return domain.Review{}, fmt.Errorf("s.attendanceRepo.Find -> %w", err)
	}
	if !attendance.Approved {
		return domain.Review{}, ErrNotConfirmedAttendee
	}

	created, err := s.repo.Create(ctx, domain.Review{
		Comment: comment,
		Rating:  rating,
		UserID:  userID,
		EventID: eventID,
	})
	if err != nil {
		return domain.Review{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ReviewService) ListReviews(ctx context.Context, eventID uint) ([]domain.Review, error) {
	reviews, err := s.repo.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByEvent -> %w", err)
	}

	return reviews, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, actor domain.Actor, reviewID uint) error {
	review, err := s.repo.FindByID(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if review.UserID != actor.ID && !actor.Role.AtLeast(domain.RoleModerator) {
		return ErrReviewDeleteDenied
	}

	if err = s.repo.Delete(ctx, reviewID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
