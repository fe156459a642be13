package service

import (
	"context"
	"fmt"

	"github.com/eventure-app/eventure-api/internal/domain"
	"github.com/eventure-app/eventure-api/internal/repository"
)

var (
	ErrPlaceAddressExists = repository.ErrPlaceAddressExists
	ErrPlaceNotFound      = repository.ErrPlaceNotFound
)

type PlaceRepository interface {
	Create(ctx context.Context, place domain.Place) (domain.Place, error)
	FindByID(ctx context.Context, id uint) (domain.Place, error)
	FindAll(ctx context.Context) ([]domain.Place, error)
	Approve(ctx context.Context, id uint) error
}

type PlaceService struct {
	repo PlaceRepository
}

func NewPlaceService(repo PlaceRepository) *PlaceService {
	return &PlaceService{
		repo: repo,
	}
}

func (s *PlaceService) ProposePlace(ctx context.Context, name, address, description string) (domain.Place, error) {
	created, err := s.repo.Create(ctx, domain.Place{
		Name:        name,
		Address:     address,
		Description: description,
	})
	if err != nil {
		return domain.Place{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *PlaceService) ApprovePlace(ctx context.Context, actor domain.Actor, id uint) error {
	if !domain.CanApprove(actor) {
		return ErrApprovalForbidden
	}

	place, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if place.Approved {
		return domain.ErrAlreadyApproved
	}

	if err = s.repo.Approve(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Approve -> %w", err)
	}

	return nil
}

// ListPlaces shows approved places to everyone and the full list to
// moderators and administrators.
func (s *PlaceService) ListPlaces(ctx context.Context, actor domain.Actor) ([]domain.Place, error) {
	places, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	visible := make([]domain.Place, 0, len(places))
	for _, place := range places {
		if domain.CanView(place, actor) {
			visible = append(visible, place)
		}
	}

	return visible, nil
}
