package service

import (
	"context"
	"fmt"

	"github.com/eventure-app/eventure-api/internal/domain"
	"github.com/eventure-app/eventure-api/internal/repository"
)

var ErrAdmissionNotFound = repository.ErrAdmissionNotFound

type AdmissionRepository interface {
	Create(ctx context.Context, admission domain.Admission) (domain.Admission, error)
	FindAll(ctx context.Context) ([]domain.Admission, error)
}

type AdmissionService struct {
	repo AdmissionRepository
}

func NewAdmissionService(repo AdmissionRepository) *AdmissionService {
	return &AdmissionService{
		repo: repo,
	}
}

// CreateAdmission defines a shared price tier. Tiers are curated by
// moderators rather than proposed by users.
func (s *AdmissionService) CreateAdmission(ctx context.Context, actor domain.Actor, name string, amount int) (domain.Admission, error) {
	if !domain.CanApprove(actor) {
		return domain.Admission{}, ErrApprovalForbidden
	}

	created, err := s.repo.Create(ctx, domain.Admission{
		Name:   name,
		Amount: amount,
	})
	if err != nil {
		return domain.Admission{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AdmissionService) ListAdmissions(ctx context.Context) ([]domain.Admission, error) {
	admissions, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return admissions, nil
}
