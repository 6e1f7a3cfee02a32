package models

import "time"

type Property struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:100;not null;unique"`
	Address    string `gorm:"size:200"`
	TotalRooms int    `gorm:"default:0"` // kapasitas terdaftar, tidak dicocokkan dengan jumlah kamar aktual
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Rooms []Room
}

// PropertyGrant: relasi m:n User-Property yang menggantikan kolom lokasi
// berformat teks bebas. Satu baris = satu properti yang boleh diakses.
type PropertyGrant struct {
	ID         uint     `gorm:"primaryKey"`
	UserID     uint     `gorm:"index;not null;uniqueIndex:idx_grant_user_property"`
	User       User     `gorm:"foreignKey:UserID"`
	PropertyID uint     `gorm:"index;not null;uniqueIndex:idx_grant_user_property"`
	Property   Property `gorm:"foreignKey:PropertyID"`
	CreatedAt  time.Time
}
