package repository

import (
	"context"
	"fmt"

	"github.com/eventure-app/eventure-api/internal/domain"
	"github.com/eventure-app/eventure-api/internal/repository/dao"
)

var (
	ErrAlreadyReviewed = dao.ErrAlreadyReviewed
	ErrReviewNotFound  = dao.ErrReviewNotFound
)

type ReviewDAO interface {
	Insert(ctx context.Context, review dao.Review) (dao.Review, error)
	FindByID(ctx context.Context, id uint) (dao.Review, error)
	FindByEvent(ctx context.Context, eventID uint) ([]dao.Review, error)
	Delete(ctx context.Context, id uint) error
}

type ReviewRepository struct {
	dao ReviewDAO
}

func NewReviewRepository(dao ReviewDAO) *ReviewRepository {
	return &ReviewRepository{
		dao: dao,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, review domain.Review) (domain.Review, error) {
	created, err := r.dao.Insert(ctx, dao.Review{
		Comment: review.Comment,
		Rating:  review.Rating,
		UserID:  review.UserID,
		EventID: review.EventID,
	})
	if err != nil {
		return domain.Review{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id uint) (domain.Review, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Review{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ReviewRepository) FindByEvent(ctx context.Context, eventID uint) ([]domain.Review, error) {
	found, err := r.dao.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByEvent -> %w", err)
	}

	reviews := make([]domain.Review, len(found))
	for i, rev := range found {
		reviews[i] = r.daoToDomain(rev)
	}

	return reviews, nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ReviewRepository) daoToDomain(rev dao.Review) domain.Review {
	return domain.Review{
		ID:        rev.ID,
		Comment:   rev.Comment,
		Rating:    rev.Rating,
		UserID:    rev.UserID,
		EventID:   rev.EventID,
		CreatedAt: rev.CreatedAt,
	}
}
