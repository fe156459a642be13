package repository

import (
	"context"
	"fmt"

	"github.com/eventure-app/eventure-api/internal/domain"
	"github.com/eventure-app/eventure-api/internal/repository/dao"
)

var ErrAdmissionNotFound = dao.ErrAdmissionNotFound

type AdmissionDAO interface {
	Insert(ctx context.Context, admission dao.Admission) (dao.Admission, error)
	FindByID(ctx context.Context, id uint) (dao.Admission, error)
	FindAll(ctx context.Context) ([]dao.Admission, error)
}

type AdmissionRepository struct {
	dao AdmissionDAO
}

func NewAdmissionRepository(dao AdmissionDAO) *AdmissionRepository {
	return &AdmissionRepository{
		dao: dao,
	}
}

func (r *AdmissionRepository) Create(ctx context.Context, admission domain.Admission) (domain.Admission, error) {
	created, err := r.dao.Insert(ctx, dao.Admission{
		Name:   admission.Name,
		Amount: admission.Amount,
	})
	if err != nil {
		return domain.Admission{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *AdmissionRepository) FindByID(ctx context.Context, id uint) (domain.Admission, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Admission{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *AdmissionRepository) FindAll(ctx context.Context) ([]domain.Admission, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	admissions := make([]domain.Admission, len(found))
	for i, a := range found {
		admissions[i] = r.daoToDomain(a)
	}

	return admissions, nil
}

func (r *AdmissionRepository) daoToDomain(a dao.Admission) domain.Admission {
	return domain.Admission{
		ID:     a.ID,
		Name:   a.Name,
		Amount: a.Amount,
	}
}
