// Package seed berisi rutin provisioning data awal. Dipanggil eksplisit lewat
// cmd/seed saat setup, bukan otomatis tiap server start. Semua insert dijaga
// pemeriksaan keberadaan sehingga aman dijalankan berulang.
package seed

import (
	"errors"
	"fmt"
	"log"
	"time"

	"kosku-backend/internal/access"
	"kosku-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	Username string
	Password string
	Role     models.UserRole
	Location string // nama properti dipisah koma, dipetakan jadi grant
}

var defaultUsers = []seedUser{
	{Username: "admin", Password: "admin123", Role: models.RoleAdmin},
	{Username: "manager1", Password: "1234", Role: models.RoleManager, Location: "KOS ANTAPANI"},
	{Username: "manager2", Password: "1234", Role: models.RoleManager, Location: "KOS GURO"},
	{Username: "manager3", Password: "1234", Role: models.RoleManager, Location: "KOS PESONA GRIYA"},
	{Username: "staff1", Password: "1234", Role: models.RoleStaff, Location: "KOS ANTAPANI"},
	{Username: "staff2", Password: "1234", Role: models.RoleStaff, Location: "KOS GURO"},
	{Username: "staff3", Password: "1234", Role: models.RoleStaff, Location: "KOS PESONA GRIYA"},
	{Username: "viewer1", Password: "1234", Role: models.RoleViewer},
}

var defaultProperties = []models.Property{
	{Name: "KOS ANTAPANI", Address: "Antapani, Bandung", TotalRooms: 21},
	{Name: "KOS GURO", Address: "Karawang", TotalRooms: 32},
	{Name: "KOS PESONA GRIYA", Address: "Karawang", TotalRooms: 33},
}

type roomBatch struct {
	Property string
	Prefix   string
	Count    int
	RoomType string
	Rate     int
}

var defaultRooms = []roomBatch{
	{Property: "KOS ANTAPANI", Prefix: "A", Count: 21, RoomType: "Standard", Rate: 850000},
	{Property: "KOS GURO", Prefix: "GE", Count: 10, RoomType: "Eksekutif", Rate: 1250000},
	{Property: "KOS GURO", Prefix: "GS", Count: 22, RoomType: "Standard", Rate: 950000},
	{Property: "KOS PESONA GRIYA", Prefix: "P", Count: 33, RoomType: "Standard", Rate: 900000},
}

var defaultHolidays = map[string]string{
	"2025-01-01": "Tahun Baru Masehi",
	"2025-03-31": "Hari Raya Nyepi",
	"2025-04-18": "Wafat Isa Almasih",
	"2025-05-01": "Hari Buruh",
	"2025-05-29": "Kenaikan Isa Almasih",
	"2025-06-01": "Hari Lahir Pancasila",
	"2025-06-06": "Hari Raya Idul Adha",
	"2025-07-17": "Tahun Baru Islam",
	"2025-08-17": "Hari Kemerdekaan RI",
	"2025-10-06": "Maulid Nabi Muhammad SAW",
	"2025-12-25": "Hari Natal",
}

// Run menjalankan seluruh provisioning. Properti dibuat lebih dulu supaya
// grant pengguna bisa langsung dipetakan dari nama lokasi.
func Run(db *gorm.DB) error {
	if err := seedProperties(db); err != nil {
		return err
	}
	if err := seedUsers(db); err != nil {
		return err
	}
	if err := seedRooms(db); err != nil {
		return err
	}
	if err := seedHolidays(db); err != nil {
		return err
	}
	log.Println("Data awal selesai dibuat")
	return nil
}

func seedProperties(db *gorm.DB) error {
	for _, prop := range defaultProperties {
		var existing models.Property
		err := db.Where("name = ?", prop.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&prop).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedUsers(db *gorm.DB) error {
	for _, su := range defaultUsers {
		var existing models.User
		err := db.Where("username = ?", su.Username).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := models.User{
			Username:     su.Username,
			PasswordHash: string(hash),
			Role:         su.Role,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}

		if su.Location != "" {
			grants, err := access.GrantsForLocations(db, user.ID, su.Location)
			if err != nil {
				return err
			}
			if len(grants) > 0 {
				if err := db.Create(&grants).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func seedRooms(db *gorm.DB) error {
	for _, batch := range defaultRooms {
		var property models.Property
		if err := db.Where("name = ?", batch.Property).First(&property).Error; err != nil {
			return err
		}

		// Properti yang sudah punya kamar dengan tipe ini dilewati
		var count int64
		if err := db.Model(&models.Room{}).
			Where("property_id = ? AND room_type = ?", property.ID, batch.RoomType).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		for i := 1; i <= batch.Count; i++ {
			room := models.Room{
				Number:      fmt.Sprintf("%s%02d", batch.Prefix, i),
				PropertyID:  property.ID,
				RoomType:    batch.RoomType,
				MonthlyRate: batch.Rate,
				Status:      models.RoomAvailable,
			}
			if err := db.Create(&room).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func seedHolidays(db *gorm.DB) error {
	for dateStr, name := range defaultHolidays {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return err
		}

		var existing models.NationalHoliday
		err = db.Where("date = ?", date).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		holiday := models.NationalHoliday{Date: date, Name: name}
		if err := db.Create(&holiday).Error; err != nil {
			return err
		}
	}
	return nil
}
