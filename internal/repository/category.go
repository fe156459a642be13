package repository

import (
	"context"
	"fmt"

	"github.com/eventure-app/eventure-api/internal/domain"
	"github.com/eventure-app/eventure-api/internal/repository/dao"
)

var (
	ErrCategoryNameExists     = dao.ErrCategoryNameExists
	ErrCategoryNotFound       = dao.ErrCategoryNotFound
	ErrCategoryParentNotFound = dao.ErrCategoryParentNotFound
)

type CategoryDAO interface {
	Insert(ctx context.Context, category dao.Category) (dao.Category, error)
	FindByID(ctx context.Context, id uint) (dao.Category, error)
	FindAll(ctx context.Context) ([]dao.Category, error)
	Approve(ctx context.Context, id uint) error
}

type CategoryRepository struct {
	dao CategoryDAO
}

func NewCategoryRepository(dao CategoryDAO) *CategoryRepository {
	return &CategoryRepository{
		dao: dao,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category domain.Category) (domain.Category, error) {
	created, err := r.dao.Insert(ctx, dao.Category{
		Name:        category.Name,
		Description: category.Description,
		ParentID:    category.ParentID,
	})
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (domain.Category, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Category{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	categories := make([]domain.Category, len(found))
	for i, c := range found {
		categories[i] = r.daoToDomain(c)
	}

	return categories, nil
}

func (r *CategoryRepository) Approve(ctx context.Context, id uint) error {
	if err := r.dao.Approve(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Approve -> %w", err)
	}

	return nil
}

func (r *CategoryRepository) daoToDomain(c dao.Category) domain.Category {
	return domain.Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Approved:    c.Approved,
		ParentID:    c.ParentID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
