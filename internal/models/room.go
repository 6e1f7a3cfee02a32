package models

import "time"

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
)

type Room struct {
	ID          uint     `gorm:"primaryKey"`
	Number      string   `gorm:"size:20;not null"`
	PropertyID  uint     `gorm:"index;not null"`
	Property    Property `gorm:"foreignKey:PropertyID"`
	RoomType    string   `gorm:"size:50;not null"` // Standard, Eksekutif, Deluxe, dst.
	MonthlyRate int      `gorm:"default:0"`        // tarif bulanan dalam rupiah, 0 = belum diisi
	// Status hanyalah cache dari catatan hunian terakhir; tidak direkonsiliasi
	// otomatis terhadap OccupancyRecord bulan berjalan.
	Status    RoomStatus `gorm:"size:20;default:available"`
	CreatedAt time.Time
	UpdatedAt time.Time

	OccupancyRecords []OccupancyRecord
}
