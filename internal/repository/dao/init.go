package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Place{},
		&Category{},
		&Admission{},
		&Event{},
		&Attendance{},
		&Review{},
	)
}
