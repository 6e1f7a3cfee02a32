package occupancy_test

import (
	"testing"
	"time"

	"kosku-backend/internal/database"
	"kosku-backend/internal/models"
	"kosku-backend/internal/occupancy"

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

type fixture struct {
	actor    models.User
	property models.Property
	room     models.Room
	record   models.OccupancyRecord
}

func setupFixture(t *testing.T, db *gorm.DB) fixture {
	actor := models.User{Username: "staff1", PasswordHash: "x", Role: models.RoleStaff}
	require.NoError(t, db.Create(&actor).Error)

	property := models.Property{Name: "KOS PESONA GRIYA", Address: "Karawang", TotalRooms: 33}
	require.NoError(t, db.Create(&property).Error)

	room := models.Room{
		Number:      "P01",
		PropertyID:  property.ID,
		RoomType:    "Standard",
		MonthlyRate: 900000,
		Status:      models.RoomOccupied,
	}
	require.NoError(t, db.Create(&room).Error)

	record := models.OccupancyRecord{
		RoomID:        room.ID,
		Month:         "2025-08",
		IsOccupied:    true,
		TenantName:    "Budi",
		PaymentStatus: models.PaymentUnpaid,
		PaymentMonths: 1,
		CreatedBy:     actor.ID,
	}
	require.NoError(t, db.Create(&record).Error)

	return fixture{actor: actor, property: property, room: room, record: record}
}

func TestParsePaymentMonths(t *testing.T) {
	assert.Equal(t, 3, occupancy.ParsePaymentMonths("3"))
	assert.Equal(t, 1, occupancy.ParsePaymentMonths(" 1 "))
	assert.Equal(t, 1, occupancy.ParsePaymentMonths(""))
	assert.Equal(t, 1, occupancy.ParsePaymentMonths("abc"))
	assert.Equal(t, 1, occupancy.ParsePaymentMonths("0"))
	assert.Equal(t, 1, occupancy.ParsePaymentMonths("-2"))
}

func TestMarkPaidCreatesOneFinancialRecord(t *testing.T) {
	db := setupTestDB(t)
	fx := setupFixture(t, db)

	created, err := occupancy.ApplyPaymentStatusChange(db, &fx.record, &fx.room, occupancy.PaymentUpdateInput{
		Status:        models.PaymentPaid,
		PaymentMonths: "2",
	}, &fx.actor)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, 1800000, created.Amount, "900000 x 2 bulan")
	assert.Equal(t, models.TransactionIncome, created.TransactionType)
	assert.Equal(t, "Sewa", created.Category)
	assert.Equal(t, fx.property.ID, created.PropertyID)
	require.NotNil(t, created.OccupancyRecordID)
	assert.Equal(t, fx.record.ID, *created.OccupancyRecordID)
	assert.Contains(t, created.Description, "P01")
	assert.Contains(t, created.Description, "Budi")

	var count int64
	db.Model(&models.FinancialRecord{}).Count(&count)
	assert.Equal(t, int64(1), count)

	// Catatan hunian tersimpan dengan status dan tanggal bayar
	var saved models.OccupancyRecord
	require.NoError(t, db.First(&saved, fx.record.ID).Error)
	assert.Equal(t, models.PaymentPaid, saved.PaymentStatus)
	assert.Equal(t, 2, saved.PaymentMonths)
	assert.NotNil(t, saved.PaymentDate)
}

func TestMarkPaidTwiceDoesNotDuplicate(t *testing.T) {
	db := setupTestDB(t)
	fx := setupFixture(t, db)

	_, err := occupancy.ApplyPaymentStatusChange(db, &fx.record, &fx.room, occupancy.PaymentUpdateInput{
		Status:        models.PaymentPaid,
		PaymentMonths: "2",
	}, &fx.actor)
	require.NoError(t, err)

	// Simpan ulang paid -> paid
	created, err := occupancy.ApplyPaymentStatusChange(db, &fx.record, &fx.room, occupancy.PaymentUpdateInput{
		Status:        models.PaymentPaid,
		PaymentMonths: "2",
	}, &fx.actor)
	require.NoError(t, err)
	assert.Nil(t, created, "paid -> paid tidak boleh membuat catatan baru")

	var count int64
	db.Model(&models.FinancialRecord{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUnpaidClearsPaymentDate(t *testing.T) {
	db := setupTestDB(t)
	fx := setupFixture(t, db)

	due := time.Date(2025, time.August, 10, 0, 0, 0, 0, time.UTC)
	_, err := occupancy.ApplyPaymentStatusChange(db, &fx.record, &fx.room, occupancy.PaymentUpdateInput{
		Status:  models.PaymentUnpaid,
		DueDate: &due,
	}, &fx.actor)
	require.NoError(t, err)

	var saved models.OccupancyRecord
	require.NoError(t, db.First(&saved, fx.record.ID).Error)
	assert.Nil(t, saved.PaymentDate, "status selain paid tanpa tanggal eksplisit mengosongkan tanggal bayar")
	require.NotNil(t, saved.PaymentDueDate)

	// Update berikutnya tanpa due date tidak mengubah jatuh tempo
	_, err = occupancy.ApplyPaymentStatusChange(db, &saved, &fx.room, occupancy.PaymentUpdateInput{
		Status: models.PaymentLate,
	}, &fx.actor)
	require.NoError(t, err)

	var again models.OccupancyRecord
	require.NoError(t, db.First(&again, fx.record.ID).Error)
	require.NotNil(t, again.PaymentDueDate)
	assert.Equal(t, due.Format("2006-01-02"), again.PaymentDueDate.Format("2006-01-02"))
}

func TestPaidToUnpaidDoesNotRetractLedger(t *testing.T) {
	db := setupTestDB(t)
	fx := setupFixture(t, db)

	_, err := occupancy.ApplyPaymentStatusChange(db, &fx.record, &fx.room, occupancy.PaymentUpdateInput{
		Status: models.PaymentPaid,
	}, &fx.actor)
	require.NoError(t, err)

	_, err = occupancy.ApplyPaymentStatusChange(db, &fx.record, &fx.room, occupancy.PaymentUpdateInput{
		Status: models.PaymentUnpaid,
	}, &fx.actor)
	require.NoError(t, err)

	var count int64
	db.Model(&models.FinancialRecord{}).Count(&count)
	assert.Equal(t, int64(1), count, "catatan keuangan tidak ditarik kembali")
}

func TestExplicitPaymentDateUsedForTransaction(t *testing.T) {
	db := setupTestDB(t)
	fx := setupFixture(t, db)

	paidAt := time.Date(2025, time.August, 5, 0, 0, 0, 0, time.UTC)
	created, err := occupancy.ApplyPaymentStatusChange(db, &fx.record, &fx.room, occupancy.PaymentUpdateInput{
		Status:      models.PaymentPaid,
		PaymentDate: &paidAt,
	}, &fx.actor)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "2025-08-05", created.TransactionDate.Format("2006-01-02"))
}

func TestDuplicateLedgerBlockedByUniqueIndex(t *testing.T) {
	db := setupTestDB(t)
	fx := setupFixture(t, db)

	_, err := occupancy.ApplyPaymentStatusChange(db, &fx.record, &fx.room, occupancy.PaymentUpdateInput{
		Status: models.PaymentPaid,
	}, &fx.actor)
	require.NoError(t, err)

	// Simulasi request balapan yang membaca status lama: insert kedua untuk
	// occupancy yang sama melanggar unique index
	dup := models.FinancialRecord{
		PropertyID:        fx.property.ID,
		TransactionDate:   time.Now(),
		Amount:            900000,
		TransactionType:   models.TransactionIncome,
		Category:          "Sewa",
		OccupancyRecordID: &fx.record.ID,
		CreatedBy:         fx.actor.ID,
	}
	assert.Error(t, db.Create(&dup).Error)
}

func TestCreateOrUpdateRoomForEntry(t *testing.T) {
	db := setupTestDB(t)
	fx := setupFixture(t, db)

	// Tipe yang sudah ada: status dan tarif ditimpa
	room, err := occupancy.CreateOrUpdateRoomForEntry(db, fx.property.ID, "Standard", false, 950000)
	require.NoError(t, err)
	assert.Equal(t, fx.room.ID, room.ID)
	assert.Equal(t, models.RoomAvailable, room.Status)
	assert.Equal(t, 950000, room.MonthlyRate)

	// Tipe baru: kamar disintesis dengan nomor dari awalan
	room, err = occupancy.CreateOrUpdateRoomForEntry(db, fx.property.ID, "Eksekutif", true, 1250000)
	require.NoError(t, err)
	assert.Equal(t, "KOS-Eks-2", room.Number)
	assert.Equal(t, models.RoomOccupied, room.Status)

	// Properti tidak ada: pembuatan kamar dibatalkan
	_, err = occupancy.CreateOrUpdateRoomForEntry(db, 9999, "Standard", true, 900000)
	assert.ErrorIs(t, err, occupancy.ErrPropertyNotFound)
}
