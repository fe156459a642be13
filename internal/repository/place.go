package repository

import (
	"context"
	"fmt"

	"github.com/eventure-app/eventure-api/internal/domain"
	"github.com/eventure-app/eventure-api/internal/repository/dao"
)

var (
	ErrPlaceAddressExists = dao.ErrPlaceAddressExists
	ErrPlaceNotFound      = dao.ErrPlaceNotFound
)

type PlaceDAO interface {
	Insert(ctx context.Context, place dao.Place) (dao.Place, error)
	FindByID(ctx context.Context, id uint) (dao.Place, error)
	FindAll(ctx context.Context) ([]dao.Place, error)
	Approve(ctx context.Context, id uint) error
}

type PlaceRepository struct {
	dao PlaceDAO
}

func NewPlaceRepository(dao PlaceDAO) *PlaceRepository {
	return &PlaceRepository{
		dao: dao,
	}
}

func (r *PlaceRepository) Create(ctx context.Context, place domain.Place) (domain.Place, error) {
	created, err := r.dao.Insert(ctx, dao.Place{
		Name:        place.Name,
		Address:     place.Address,
		Description: place.Description,
	})
	if err != nil {
		return domain.Place{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *PlaceRepository) FindByID(ctx context.Context, id uint) (domain.Place, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Place{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *PlaceRepository) FindAll(ctx context.Context) ([]domain.Place, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	places := make([]domain.Place, len(found))
	for i, p := range found {
		places[i] = r.daoToDomain(p)
	}

	return places, nil
}

func (r *PlaceRepository) Approve(ctx context.Context, id uint) error {
	if err := r.dao.Approve(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Approve -> %w", err)
	}

	return nil
}

func (r *PlaceRepository) daoToDomain(p dao.Place) domain.Place {
	return domain.Place{
		ID:          p.ID,
		Name:        p.Name,
		Address:     p.Address,
		Description: p.Description,
		Approved:    p.Approved,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
