package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrPlaceAddressExists = errors.New("a place with this address already exists")
	ErrPlaceNotFound      = errors.New("place not found")
)

type Place struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"not null"`
	Address     string `gorm:"unique;not null"`
	Description string

	Approved bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PlaceDAO struct {
	db *gorm.DB
}

func NewPlaceDAO(db *gorm.DB) *PlaceDAO {
	return &PlaceDAO{
		db: db,
	}
}

func (d *PlaceDAO) Insert(ctx context.Context, place Place) (Place, error) {
	result := d.db.WithContext(ctx).Create(&place)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_places_address"`) {
			return Place{}, ErrPlaceAddressExists
		}

		return Place{}, result.Error
	}

	return place, nil
}

func (d *PlaceDAO) FindByID(ctx context.Context, id uint) (Place, error) {
	var place Place

	result := d.db.WithContext(ctx).First(&place, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Place{}, ErrPlaceNotFound
		}

		return Place{}, result.Error
	}

	return place, nil
}

func (d *PlaceDAO) FindAll(ctx context.Context) ([]Place, error) {
	var places []Place

	if result := d.db.WithContext(ctx).Order("id").Find(&places); result.Error != nil {
		return nil, result.Error
	}

	return places, nil
}

func (d *PlaceDAO) Approve(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&Place{}).Where("id = ?", id).Update("approved", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPlaceNotFound
	}

	return nil
}
