package occupancy

import (
	"errors"
	"fmt"
	"strings"

	"kosku-backend/internal/models"

	"gorm.io/gorm"
)

var ErrPropertyNotFound = errors.New("properti tidak ditemukan")

// CreateOrUpdateRoomForEntry: form hunian mengacu kamar lewat (properti, tipe),
// bukan id. Kalau kamarnya belum ada, nomor disintesis dari awalan nama
// properti + awalan tipe + hitungan kamar berjalan. Kalau sudah ada, status
// dan tarif ditimpa apa adanya (last write wins).
func CreateOrUpdateRoomForEntry(db *gorm.DB, propertyID uint, roomType string, isOccupied bool, monthlyRate int) (*models.Room, error) {
	status := models.RoomAvailable
	if isOccupied {
		status = models.RoomOccupied
	}

	var room models.Room
	err := db.Where("property_id = ? AND room_type = ?", propertyID, roomType).First(&room).Error
	if err == nil {
		room.Status = status
		room.MonthlyRate = monthlyRate
		if err := db.Save(&room).Error; err != nil {
			return nil, err
		}
		return &room, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var property models.Property
	if err := db.First(&property, "id = ?", propertyID).Error; err != nil {
		return nil, ErrPropertyNotFound
	}

	var count int64
	if err := db.Model(&models.Room{}).Count(&count).Error; err != nil {
		return nil, err
	}

	room = models.Room{
		Number:      fmt.Sprintf("%s-%s-%d", prefix(property.Name, 3), prefix(roomType, 3), count+1),
		PropertyID:  propertyID,
		RoomType:    roomType,
		MonthlyRate: monthlyRate,
		Status:      status,
	}
	if err := db.Create(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func prefix(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
