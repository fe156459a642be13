package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventure-app/eventure-api/internal/domain"
)

type memReviewRepo struct {
	nextID  uint
	reviews map[uint]domain.Review
}

func newMemReviewRepo() *memReviewRepo {
	return &memReviewRepo{
		reviews: make(map[uint]domain.Review),
	}
}

func (r *memReviewRepo) Create(_ context.Context, review domain.Review) (domain.Review, error) {
	for _, existing := range r.reviews {
		if existing.UserID == review.UserID && existing.EventID == review.EventID {
			return domain.Review{}, ErrAlreadyReviewed
		}
	}

	r.nextID++
	review.ID = r.nextID
	r.reviews[review.ID] = review

	return review, nil
}

func (r *memReviewRepo) FindByID(_ context.Context, id uint) (domain.Review, error) {
	review, exists := r.reviews[id]
	if !exists {
		return domain.Review{}, ErrReviewNotFound
	}

	return review, nil
}

func (r *memReviewRepo) FindByEvent(_ context.Context, eventID uint) ([]domain.Review, error) {
	var out []domain.Review
	for id := uint(1); id <= r.nextID; id++ {
		if review, exists := r.reviews[id]; exists && review.EventID == eventID {
			out = append(out, review)
		}
	}

	return out, nil
}

func (r *memReviewRepo) Delete(_ context.Context, id uint) error {
	if _, exists := r.reviews[id]; !exists {
		return ErrReviewNotFound
	}
	delete(r.reviews, id)

	return nil
}

type memReviewAttendanceRepo struct {
	records map[attendanceKey]domain.Attendance
}

func (r *memReviewAttendanceRepo) Find(_ context.Context, eventID, userID uint) (domain.Attendance, error) {
	attendance, exists := r.records[attendanceKey{eventID: eventID, userID: userID}]
	if !exists {
		return domain.Attendance{}, ErrNotAttending
	}

	return attendance, nil
}

func newReviewFixture(attendances ...domain.Attendance) *ReviewService {
	records := make(map[attendanceKey]domain.Attendance)
	for _, a := range attendances {
		records[attendanceKey{eventID: a.EventID, userID: a.UserID}] = a
	}

	return NewReviewService(newMemReviewRepo(), &memReviewAttendanceRepo{records: records})
}

func TestCreateReview(t *testing.T) {
	confirmed := domain.Attendance{EventID: 1, UserID: 7, Approved: true}
	pending := domain.Attendance{EventID: 1, UserID: 8}

	t.Run("confirmed attendee reviews once", func(t *testing.T) {
		svc := newReviewFixture(confirmed)

		review, err := svc.CreateReview(context.Background(), 7, 1, "best lecture ever", 10)
		require.NoError(t, err)
		assert.Equal(t, uint(7), review.UserID)
		assert.Equal(t, 10, review.Rating)
	})

	t.Run("second review by the same user is rejected", func(t *testing.T) {
		svc := newReviewFixture(confirmed)

		_, err := svc.CreateReview(context.Background(), 7, 1, "best lecture ever", 10)
		require.NoError(t, err)

		_, err = svc.CreateReview(context.Background(), 7, 1, "changed my mind", 3)
		assert.ErrorIs(t, err, ErrAlreadyReviewed)
	})

	t.Run("pending attendee may not review", func(t *testing.T) {
		svc := newReviewFixture(pending)

		_, err := svc.CreateReview(context.Background(), 8, 1, "looks promising", 8)
		assert.ErrorIs(t, err, ErrNotConfirmedAttendee)
	})

	t.Run("non-attendee may not review", func(t *testing.T) {
		svc := newReviewFixture(confirmed)

		_, err := svc.CreateReview(context.Background(), 9, 1, "heard it was good", 9)
		assert.ErrorIs(t, err, ErrNotConfirmedAttendee)
	})
}

func TestDeleteReview(t *testing.T) {
	confirmed := domain.Attendance{EventID: 1, UserID: 7, Approved: true}

	setup := func(t *testing.T) (*ReviewService, domain.Review) {
		svc := newReviewFixture(confirmed)
		review, err := svc.CreateReview(context.Background(), 7, 1, "best lecture ever", 10)
		require.NoError(t, err)

		return svc, review
	}

	t.Run("author deletes own review", func(t *testing.T) {
		svc, review := setup(t)

		err := svc.DeleteReview(context.Background(), domain.Actor{ID: 7, Role: domain.RoleUser}, review.ID)
		assert.NoError(t, err)

		reviews, err := svc.ListReviews(context.Background(), 1)
		require.NoError(t, err)
		assert.Empty(t, reviews)
	})

	t.Run("moderator deletes any review", func(t *testing.T) {
		svc, review := setup(t)

		err := svc.DeleteReview(context.Background(), domain.Actor{ID: 99, Role: domain.RoleModerator}, review.ID)
		assert.NoError(t, err)
	})

	t.Run("other users are denied", func(t *testing.T) {
		svc, review := setup(t)

		err := svc.DeleteReview(context.Background(), domain.Actor{ID: 8, Role: domain.RoleUser}, review.ID)
		assert.ErrorIs(t, err, ErrReviewDeleteDenied)
	})

	t.Run("missing review", func(t *testing.T) {
		svc, _ := setup(t)

		err := svc.DeleteReview(context.Background(), domain.Actor{ID: 7, Role: domain.RoleUser}, 42)
		assert.ErrorIs(t, err, ErrReviewNotFound)
	})
}
