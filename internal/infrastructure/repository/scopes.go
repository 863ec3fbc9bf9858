package repository

import (
	"time"

	"gorm.io/gorm"
)

// DateRange returns a GORM scope that bounds column between the optional
// start and end. Nil bounds are left open.
func DateRange(column string, start, end *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if start != nil {
			db = db.Where(column+" >= ?", *start)
		}
		if end != nil {
			db = db.Where(column+" <= ?", *end)
		}
		return db
	}
}

// Active returns a GORM scope that keeps only rows flagged active.
func Active() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("active = ?", true)
	}
}
