package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrEventNameExists        = errors.New("an event with this name already exists")
	ErrEventNotFound          = errors.New("event not found")
	ErrEventReferenceNotFound = errors.New("referenced place, category or admission not found")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Name          string    `gorm:"unique;not null"`
	StartDatetime time.Time `gorm:"not null"`
	EndDatetime   time.Time `gorm:"not null"`
	Capacity      int       `gorm:"not null"`
	Description   string
	Image         string

	Approved bool `gorm:"not null;default:false"`

	OwnerID uint `gorm:"not null;index"`
	Owner   User `gorm:"foreignKey:OwnerID"`

	PlaceID uint  `gorm:"not null"`
	Place   Place `gorm:"foreignKey:PlaceID"`

	Categories []Category  `gorm:"many2many:event_categories;"`
	Admissions []Admission `gorm:"many2many:event_admissions;"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// EventFilter mirrors the service-level filter. Empty dimensions are
// unconstrained; ID lists are OR-within and AND-across dimensions.
type EventFilter struct {
	NameSubstring string
	CategoryIDs   []uint
	PlaceIDs      []uint
	OnlyApproved  bool
	HasAdmission  bool
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event, categoryIDs, admissionIDs []uint) (Event, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if result := tx.Omit(clause.Associations).Create(&event); result.Error != nil {
			return mapEventWriteError(result.Error)
		}

		return replaceEventAssociations(tx, &event, categoryIDs, admissionIDs)
	})
	if err != nil {
		return Event{}, err
	}

	return d.FindByID(ctx, event.ID)
}

// Update rewrites the mutable fields and replaces both association
// sets wholesale. Name, owner and the approved flag are not touched
// here; approval has its own path and is irreversible.
func (d *EventDAO) Update(ctx context.Context, event Event, categoryIDs, admissionIDs []uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Event{ID: event.ID}).
			Select("start_datetime", "end_datetime", "capacity", "description", "image", "place_id").
			Updates(Event{
				StartDatetime: event.StartDatetime,
				EndDatetime:   event.EndDatetime,
				Capacity:      event.Capacity,
				Description:   event.Description,
				Image:         event.Image,
				PlaceID:       event.PlaceID,
			})
		if result.Error != nil {
			return mapEventWriteError(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrEventNotFound
		}

		return replaceEventAssociations(tx, &Event{ID: event.ID}, categoryIDs, admissionIDs)
	})
}

func replaceEventAssociations(tx *gorm.DB, event *Event, categoryIDs, admissionIDs []uint) error {
	categories := make([]Category, len(categoryIDs))
	for i, id := range categoryIDs {
		categories[i] = Category{ID: id}
	}
	admissions := make([]Admission, len(admissionIDs))
	for i, id := range admissionIDs {
		admissions[i] = Admission{ID: id}
	}

	if err := tx.Model(event).Association("Categories").Replace(categories); err != nil {
		return mapEventWriteError(err)
	}
	if err := tx.Model(event).Association("Admissions").Replace(admissions); err != nil {
		return mapEventWriteError(err)
	}

	return nil
}

func mapEventWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgerrcode.UniqueViolation &&
			strings.Contains(pgErr.Message, `unique constraint "uni_events_name"`) {
			return ErrEventNameExists
		}
		if pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrEventReferenceNotFound
		}
	}

	return err
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).
		Preload("Categories").
		Preload("Admissions").
		First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByName(ctx context.Context, name string) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).First(&event, "name = ?", name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) Find(ctx context.Context, filter EventFilter) ([]Event, error) {
	query := d.db.WithContext(ctx).
		Model(&Event{}).
		Preload("Categories").
		Preload("Admissions").
		Order("events.id")

	if filter.NameSubstring != "" {
		query = query.Where("events.name ILIKE ?", "%"+filter.NameSubstring+"%")
	}
	if len(filter.CategoryIDs) > 0 {
		query = query.Where(
			"events.id IN (SELECT event_id FROM event_categories WHERE category_id IN ?)",
			filter.CategoryIDs,
		)
	}
	if len(filter.PlaceIDs) > 0 {
		query = query.Where("events.place_id IN ?", filter.PlaceIDs)
	}
	if filter.OnlyApproved {
		query = query.Where("events.approved")
	}
	if filter.HasAdmission {
		query = query.Where(
			"EXISTS (SELECT 1 FROM event_admissions WHERE event_admissions.event_id = events.id)",
		)
	}

	var events []Event
	if result := query.Find(&events); result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) Approve(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).Update("approved", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}
