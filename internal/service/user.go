package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventure-app/eventure-api/internal/domain"
)

var ErrRoleManagementForbidden = errors.New("only administrators may manage user roles")

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	SearchByName(ctx context.Context, substring string) ([]domain.User, error)
	UpdateRole(ctx context.Context, id uint, role domain.Role) error
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// SearchUsers lists users by name substring. Restricted to
// administrators, who use it to manage roles.
func (s *UserService) SearchUsers(ctx context.Context, actor domain.Actor, substring string) ([]domain.User, error) {
	if !domain.CanManageRoles(actor) {
		return nil, ErrRoleManagementForbidden
	}

	users, err := s.repo.SearchByName(ctx, substring)
	if err != nil {
		return nil, fmt.Errorf("s.repo.SearchByName -> %w", err)
	}

	return users, nil
}

func (s *UserService) UpdateRole(ctx context.Context, actor domain.Actor, targetID uint, role domain.Role) error {
	if !domain.CanManageRoles(actor) {
		return ErrRoleManagementForbidden
	}

	if _, err := s.repo.FindByID(ctx, targetID); err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.repo.UpdateRole(ctx, targetID, role); err != nil {
		return fmt.Errorf("s.repo.UpdateRole -> %w", err)
	}

	return nil
}
