package access_test

import (
	"testing"

	"kosku-backend/internal/access"
	"kosku-backend/internal/database"
	"kosku-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createProperty(t *testing.T, db *gorm.DB, name string) models.Property {
	p := models.Property{Name: name}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func createUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) models.User {
	u := models.User{Username: username, PasswordHash: "x", Role: role}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func TestAccessiblePropertiesAdmin(t *testing.T) {
	db := setupTestDB(t)
	createProperty(t, db, "KOS A")
	createProperty(t, db, "KOS B")
	createProperty(t, db, "KOS C")

	admin := createUser(t, db, "admin", models.RoleAdmin)

	// Admin dapat semua properti walau tidak punya grant satu pun
	properties, err := access.AccessibleProperties(db, &admin)
	assert.NoError(t, err)
	assert.Len(t, properties, 3)
}

func TestAccessiblePropertiesGranted(t *testing.T) {
	db := setupTestDB(t)
	a := createProperty(t, db, "KOS A")
	b := createProperty(t, db, "KOS B")
	createProperty(t, db, "KOS C")

	manager := createUser(t, db, "manager1", models.RoleManager)
	require.NoError(t, db.Create(&models.PropertyGrant{UserID: manager.ID, PropertyID: a.ID}).Error)
	require.NoError(t, db.Create(&models.PropertyGrant{UserID: manager.ID, PropertyID: b.ID}).Error)

	properties, err := access.AccessibleProperties(db, &manager)
	assert.NoError(t, err)
	assert.Len(t, properties, 2)
	assert.Equal(t, "KOS A", properties[0].Name)
	assert.Equal(t, "KOS B", properties[1].Name)
}

func TestAccessiblePropertiesNoGrants(t *testing.T) {
	db := setupTestDB(t)
	createProperty(t, db, "KOS A")

	viewer := createUser(t, db, "viewer1", models.RoleViewer)

	properties, err := access.AccessibleProperties(db, &viewer)
	assert.NoError(t, err)
	assert.Empty(t, properties)
}

func TestHasAccess(t *testing.T) {
	db := setupTestDB(t)
	a := createProperty(t, db, "KOS A")
	b := createProperty(t, db, "KOS B")

	admin := createUser(t, db, "admin", models.RoleAdmin)
	staff := createUser(t, db, "staff1", models.RoleStaff)
	require.NoError(t, db.Create(&models.PropertyGrant{UserID: staff.ID, PropertyID: a.ID}).Error)

	ok, err := access.HasAccess(db, &admin, b.ID)
	assert.NoError(t, err)
	assert.True(t, ok, "admin selalu punya akses")

	ok, err = access.HasAccess(db, &staff, a.ID)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = access.HasAccess(db, &staff, b.ID)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestGrantsForLocations(t *testing.T) {
	db := setupTestDB(t)
	a := createProperty(t, db, "KOS A")
	b := createProperty(t, db, "KOS B")

	user := createUser(t, db, "manager1", models.RoleManager)

	// Spasi di sekitar koma di-trim, nama yang tidak dikenal diabaikan
	grants, err := access.GrantsForLocations(db, user.ID, "KOS A,  KOS B , KOS TIDAK ADA")
	assert.NoError(t, err)
	assert.Len(t, grants, 2)

	ids := []uint{grants[0].PropertyID, grants[1].PropertyID}
	assert.Contains(t, ids, a.ID)
	assert.Contains(t, ids, b.ID)
}

func TestGrantsForLocationsExactMatch(t *testing.T) {
	db := setupTestDB(t)
	createProperty(t, db, "KOS A")

	user := createUser(t, db, "staff1", models.RoleStaff)

	// Substring dan beda kapital tidak cocok
	grants, err := access.GrantsForLocations(db, user.ID, "KOS, kos a, KOS A EXTRA")
	assert.NoError(t, err)
	assert.Empty(t, grants)

	// Lokasi kosong berarti tanpa grant, bukan error
	grants, err = access.GrantsForLocations(db, user.ID, "")
	assert.NoError(t, err)
	assert.Empty(t, grants)
}

func TestAccessiblePropertiesIdempotent(t *testing.T) {
	db := setupTestDB(t)
	a := createProperty(t, db, "KOS A")

	staff := createUser(t, db, "staff1", models.RoleStaff)
	require.NoError(t, db.Create(&models.PropertyGrant{UserID: staff.ID, PropertyID: a.ID}).Error)

	first, err := access.AccessibleProperties(db, &staff)
	require.NoError(t, err)
	second, err := access.AccessibleProperties(db, &staff)
	require.NoError(t, err)

	assert.Equal(t, first, second, "jalur baca tidak boleh mengubah state")
}
