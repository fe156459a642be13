package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrAdmissionNotFound = errors.New("admission not found")

type Admission struct {
	ID uint `gorm:"primaryKey"`

	Name   string
	Amount int `gorm:"not null"`
}

type AdmissionDAO struct {
	db *gorm.DB
}

func NewAdmissionDAO(db *gorm.DB) *AdmissionDAO {
	return &AdmissionDAO{
		db: db,
	}
}

func (d *AdmissionDAO) Insert(ctx context.Context, admission Admission) (Admission, error) {
	if result := d.db.WithContext(ctx).Create(&admission); result.Error != nil {
		return Admission{}, result.Error
	}

	return admission, nil
}

func (d *AdmissionDAO) FindByID(ctx context.Context, id uint) (Admission, error) {
	var admission Admission

	result := d.db.WithContext(ctx).First(&admission, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Admission{}, ErrAdmissionNotFound
		}

		return Admission{}, result.Error
	}

	return admission, nil
}

func (d *AdmissionDAO) FindAll(ctx context.Context) ([]Admission, error) {
	var admissions []Admission

	if result := d.db.WithContext(ctx).Order("id").Find(&admissions); result.Error != nil {
		return nil, result.Error
	}

	return admissions, nil
}
