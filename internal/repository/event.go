package repository

import (
	"context"
	"fmt"

	"github.com/eventure-app/eventure-api/internal/domain"
	"github.com/eventure-app/eventure-api/internal/repository/dao"
)

var (
	ErrEventNameExists        = dao.ErrEventNameExists
	ErrEventNotFound          = dao.ErrEventNotFound
	ErrEventReferenceNotFound = dao.ErrEventReferenceNotFound
)

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event, categoryIDs, admissionIDs []uint) (dao.Event, error)
	Update(ctx context.Context, event dao.Event, categoryIDs, admissionIDs []uint) error
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	FindByName(ctx context.Context, name string) (dao.Event, error)
	Find(ctx context.Context, filter dao.EventFilter) ([]dao.Event, error)
	Approve(ctx context.Context, id uint) error
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, ownerID uint, draft domain.EventDraft) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, dao.Event{
		Name:          draft.Name,
		StartDatetime: draft.StartDatetime,
		EndDatetime:   draft.EndDatetime,
		Capacity:      draft.Capacity,
		Description:   draft.Description,
		Image:         draft.Image,
		OwnerID:       ownerID,
		PlaceID:       draft.PlaceID,
	}, draft.CategoryIDs, draft.AdmissionIDs)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) Update(ctx context.Context, eventID uint, draft domain.EventDraft) error {
	err := r.dao.Update(ctx, dao.Event{
		ID:            eventID,
		StartDatetime: draft.StartDatetime,
		EndDatetime:   draft.EndDatetime,
		Capacity:      draft.Capacity,
		Description:   draft.Description,
		Image:         draft.Image,
		PlaceID:       draft.PlaceID,
	}, draft.CategoryIDs, draft.AdmissionIDs)
	if err != nil {
		return fmt.Errorf("r.dao.Update -> %w", err)
	}

	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) FindByName(ctx context.Context, name string) (domain.Event, error) {
	found, err := r.dao.FindByName(ctx, name)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByName -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) Find(ctx context.Context, filter domain.EventFilter) ([]domain.Event, error) {
	found, err := r.dao.Find(ctx, dao.EventFilter{
		NameSubstring: filter.NameSubstring,
		CategoryIDs:   filter.CategoryIDs,
		PlaceIDs:      filter.PlaceIDs,
		OnlyApproved:  filter.OnlyApproved,
		HasAdmission:  filter.HasAdmission,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}

	events := make([]domain.Event, len(found))
	for i, e := range found {
		events[i] = r.daoToDomain(e)
	}

	return events, nil
}

func (r *EventRepository) Approve(ctx context.Context, id uint) error {
	if err := r.dao.Approve(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Approve -> %w", err)
	}

	return nil
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	event := domain.Event{
		ID:            e.ID,
		Name:          e.Name,
		StartDatetime: e.StartDatetime,
		EndDatetime:   e.EndDatetime,
		Capacity:      e.Capacity,
		Description:   e.Description,
		Image:         e.Image,
		Approved:      e.Approved,
		OwnerID:       e.OwnerID,
		PlaceID:       e.PlaceID,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}

	for _, c := range e.Categories {
		event.Categories = append(event.Categories, domain.Category{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			Approved:    c.Approved,
			ParentID:    c.ParentID,
		})
	}
	for _, a := range e.Admissions {
		event.Admissions = append(event.Admissions, domain.Admission{
			ID:     a.ID,
			Name:   a.Name,
			Amount: a.Amount,
		})
	}

	return event
}
