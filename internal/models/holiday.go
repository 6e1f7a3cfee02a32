package models

import "time"

// NationalHoliday: data referensi hari libur nasional untuk kalender.
type NationalHoliday struct {
	ID        uint      `gorm:"primaryKey"`
	Date      time.Time `gorm:"uniqueIndex;not null"`
	Name      string    `gorm:"size:100;not null"`
	CreatedAt time.Time
}
