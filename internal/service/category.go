package service

import (
	"context"
	"fmt"

	"github.com/eventure-app/eventure-api/internal/domain"
	"github.com/eventure-app/eventure-api/internal/repository"
)

var (
	ErrCategoryNameExists     = repository.ErrCategoryNameExists
	ErrCategoryNotFound       = repository.ErrCategoryNotFound
	ErrCategoryParentNotFound = repository.ErrCategoryParentNotFound
)

type CategoryRepository interface {
	Create(ctx context.Context, category domain.Category) (domain.Category, error)
	FindByID(ctx context.Context, id uint) (domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	Approve(ctx context.Context, id uint) error
}

type CategoryService struct {
	repo CategoryRepository
}

func NewCategoryService(repo CategoryRepository) *CategoryService {
	return &CategoryService{
		repo: repo,
	}
}

// ProposeCategory creates an unapproved category. The parent, if any,
// must already exist; it is fixed for the category's lifetime.
func (s *CategoryService) ProposeCategory(ctx context.Context, name, description string, parentID *uint) (domain.Category, error) {
	created, err := s.repo.Create(ctx, domain.Category{
		Name:        name,
		Description: description,
		ParentID:    parentID,
	})
	if err != nil {
		return domain.Category{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CategoryService) ApproveCategory(ctx context.Context, actor domain.Actor, id uint) error {
	if !domain.CanApprove(actor) {
		return ErrApprovalForbidden
	}

	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if category.Approved {
		return domain.ErrAlreadyApproved
	}

	if err = s.repo.Approve(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Approve -> %w", err)
	}

	return nil
}

// CategoryChoices flattens the forest into a selection list. Regular
// users only see approved branches; moderators and administrators see
// the full forest so they can review proposals in place.
func (s *CategoryService) CategoryChoices(ctx context.Context, actor domain.Actor, includeNone bool) ([]domain.CategoryChoice, error) {
	categories, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	visible := domain.ApprovedOnly
	if actor.Role.AtLeast(domain.RoleModerator) {
		visible = domain.AllCategories
	}

	return domain.BuildCategoryChoices(categories, includeNone, visible), nil
}
