// Package access adalah satu-satunya sumber kebenaran untuk property scoping:
// semua handler yang perlu tahu "pengguna ini boleh menyentuh properti mana"
// wajib lewat fungsi di sini, tidak menghitung sendiri.
package access

import (
	"strings"

	"kosku-backend/internal/models"

	"gorm.io/gorm"
)

// AccessibleProperties mengembalikan daftar properti yang boleh dilihat user.
// Admin selalu dapat semua properti; pengguna lain hanya properti yang punya
// grant. Tanpa grant berarti daftar kosong.
func AccessibleProperties(db *gorm.DB, user *models.User) ([]models.Property, error) {
	var properties []models.Property

	if user.IsAdmin() {
		err := db.Order("name asc").Find(&properties).Error
		return properties, err
	}

	err := db.
		Joins("JOIN property_grants ON property_grants.property_id = properties.id").
		Where("property_grants.user_id = ?", user.ID).
		Order("properties.name asc").
		Find(&properties).Error
	return properties, err
}

func AccessiblePropertyIDs(db *gorm.DB, user *models.User) ([]uint, error) {
	properties, err := AccessibleProperties(db, user)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(properties))
	for _, p := range properties {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// HasAccess cek akses ke satu properti. Admin selalu true.
func HasAccess(db *gorm.DB, user *models.User, propertyID uint) (bool, error) {
	if user.IsAdmin() {
		return true, nil
	}

	var count int64
	err := db.Model(&models.PropertyGrant{}).
		Where("user_id = ? AND property_id = ?", user.ID, propertyID).
		Count(&count).Error
	return count > 0, err
}

// GrantsForLocations menerjemahkan daftar lokasi lama (nama properti dipisah
// koma) menjadi grant. Nama dicocokkan persis dengan Property.Name setelah
// trim spasi; nama yang tidak dikenal diabaikan diam-diam, bukan error.
func GrantsForLocations(db *gorm.DB, userID uint, locations string) ([]models.PropertyGrant, error) {
	names := make([]string, 0)
	for _, token := range strings.Split(locations, ",") {
		if name := strings.TrimSpace(token); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, nil
	}

	var properties []models.Property
	if err := db.Where("name IN ?", names).Find(&properties).Error; err != nil {
		return nil, err
	}

	grants := make([]models.PropertyGrant, 0, len(properties))
	for _, p := range properties {
		grants = append(grants, models.PropertyGrant{UserID: userID, PropertyID: p.ID})
	}
	return grants, nil
}
