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
	ErrCategoryNameExists     = errors.New("a category with this name already exists")
	ErrCategoryNotFound       = errors.New("category not found")
	ErrCategoryParentNotFound = errors.New("parent category not found")
)

// Category is a self-referencing tree node. ParentID is nil for roots
// and is only ever set at insert time, which rules out cycles.
type Category struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"unique;not null"`
	Description string

	Approved bool `gorm:"not null;default:false"`

	ParentID *uint
	Parent   *Category `gorm:"foreignKey:ParentID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CategoryDAO struct {
	db *gorm.DB
}

func NewCategoryDAO(db *gorm.DB) *CategoryDAO {
	return &CategoryDAO{
		db: db,
	}
}

func (d *CategoryDAO) Insert(ctx context.Context, category Category) (Category, error) {
	result := d.db.WithContext(ctx).Create(&category)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) {
			if err.Code == pgerrcode.UniqueViolation &&
				strings.Contains(err.Message, `unique constraint "uni_categories_name"`) {
				return Category{}, ErrCategoryNameExists
			}
			if err.Code == pgerrcode.ForeignKeyViolation {
				return Category{}, ErrCategoryParentNotFound
			}
		}

		return Category{}, result.Error
	}

	return category, nil
}

func (d *CategoryDAO) FindByID(ctx context.Context, id uint) (Category, error) {
	var category Category

	result := d.db.WithContext(ctx).First(&category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Category{}, ErrCategoryNotFound
		}

		return Category{}, result.Error
	}

	return category, nil
}

// FindAll returns categories in insertion order. The choice builder
// relies on this order being stable.
func (d *CategoryDAO) FindAll(ctx context.Context) ([]Category, error) {
	var categories []Category

	if result := d.db.WithContext(ctx).Order("id").Find(&categories); result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

func (d *CategoryDAO) Approve(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&Category{}).Where("id = ?", id).Update("approved", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}
