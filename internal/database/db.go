package database

import (
	"log"

	"kosku-backend/internal/config"
	"kosku-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Tidak bisa terhubung ke database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate gagal: %v", err)
	}

	log.Println("Koneksi database berhasil. Migrasi selesai.")
}

// Migrate dipakai juga oleh cmd/seed dan test (sqlite in-memory).
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.PropertyGrant{},
		&models.Room{},
		&models.OccupancyRecord{},
		&models.FinancialRecord{},
		&models.NationalHoliday{},
	)
}
