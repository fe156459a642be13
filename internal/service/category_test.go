package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventure-app/eventure-api/internal/domain"
)

type memCategoryRepo struct {
	nextID     uint
	categories map[uint]domain.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{
		categories: make(map[uint]domain.Category),
	}
}

func (r *memCategoryRepo) Create(_ context.Context, category domain.Category) (domain.Category, error) {
	for _, existing := range r.categories {
		if existing.Name == category.Name {
			return domain.Category{}, ErrCategoryNameExists
		}
	}
	if category.ParentID != nil {
		if _, exists := r.categories[*category.ParentID]; !exists {
			return domain.Category{}, ErrCategoryParentNotFound
		}
	}

	r.nextID++
	category.ID = r.nextID
	r.categories[category.ID] = category

	return category, nil
}

func (r *memCategoryRepo) FindByID(_ context.Context, id uint) (domain.Category, error) {
	category, exists := r.categories[id]
	if !exists {
		return domain.Category{}, ErrCategoryNotFound
	}

	return category, nil
}

func (r *memCategoryRepo) FindAll(_ context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0, len(r.categories))
	for id := uint(1); id <= r.nextID; id++ {
		if category, exists := r.categories[id]; exists {
			out = append(out, category)
		}
	}

	return out, nil
}

func (r *memCategoryRepo) Approve(_ context.Context, id uint) error {
	category, exists := r.categories[id]
	if !exists {
		return ErrCategoryNotFound
	}

	category.Approved = true
	r.categories[id] = category

	return nil
}

func TestProposeCategory(t *testing.T) {
	svc := NewCategoryService(newMemCategoryRepo())

	root, err := svc.ProposeCategory(context.Background(), "education", "Education events", nil)
	require.NoError(t, err)
	assert.False(t, root.Approved)

	t.Run("child under an existing parent", func(t *testing.T) {
		child, err := svc.ProposeCategory(context.Background(), "lecture", "Lecture events", &root.ID)
		require.NoError(t, err)
		require.NotNil(t, child.ParentID)
		assert.Equal(t, root.ID, *child.ParentID)
	})

	t.Run("missing parent", func(t *testing.T) {
		missing := uint(42)
		_, err := svc.ProposeCategory(context.Background(), "workshop", "", &missing)
		assert.ErrorIs(t, err, ErrCategoryParentNotFound)
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := svc.ProposeCategory(context.Background(), "education", "", nil)
		assert.ErrorIs(t, err, ErrCategoryNameExists)
	})
}

func TestApproveCategory(t *testing.T) {
	moderator := domain.Actor{ID: 9, Role: domain.RoleModerator}

	svc := NewCategoryService(newMemCategoryRepo())
	category, err := svc.ProposeCategory(context.Background(), "education", "", nil)
	require.NoError(t, err)

	t.Run("regular user denied", func(t *testing.T) {
		err := svc.ApproveCategory(context.Background(), domain.Actor{ID: 7, Role: domain.RoleUser}, category.ID)
		assert.ErrorIs(t, err, ErrApprovalForbidden)
	})

	t.Run("moderator approves once", func(t *testing.T) {
		require.NoError(t, svc.ApproveCategory(context.Background(), moderator, category.ID))

		err := svc.ApproveCategory(context.Background(), moderator, category.ID)
		assert.ErrorIs(t, err, domain.ErrAlreadyApproved)
	})
}

func TestCategoryChoicesVisibility(t *testing.T) {
	svc := NewCategoryService(newMemCategoryRepo())
	moderator := domain.Actor{ID: 9, Role: domain.RoleModerator}

	education, err := svc.ProposeCategory(context.Background(), "education", "", nil)
	require.NoError(t, err)
	require.NoError(t, svc.ApproveCategory(context.Background(), moderator, education.ID))

	_, err = svc.ProposeCategory(context.Background(), "lecture", "", &education.ID)
	require.NoError(t, err)

	t.Run("regular user sees only approved branches", func(t *testing.T) {
		choices, err := svc.CategoryChoices(context.Background(), domain.Actor{ID: 7, Role: domain.RoleUser}, false)
		require.NoError(t, err)
		require.Len(t, choices, 1)
		assert.Equal(t, "education", choices[0].Label)
	})

	t.Run("moderator sees pending children indented", func(t *testing.T) {
		choices, err := svc.CategoryChoices(context.Background(), moderator, true)
		require.NoError(t, err)
		require.Len(t, choices, 3)
		assert.Equal(t, "---none---", choices[0].Label)
		assert.Equal(t, "education", choices[1].Label)
		assert.Equal(t, ">lecture", choices[2].Label)
	})
}
