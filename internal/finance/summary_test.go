package finance_test

import (
	"testing"
	"time"

	"kosku-backend/internal/database"
	"kosku-backend/internal/finance"
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

func createRecord(t *testing.T, db *gorm.DB, propertyID uint, date time.Time, amount int, tt models.TransactionType, category string) {
	r := models.FinancialRecord{
		PropertyID:      propertyID,
		TransactionDate: date,
		Amount:          amount,
		TransactionType: tt,
		Category:        category,
		CreatedBy:       1,
	}
	require.NoError(t, db.Create(&r).Error)
}

func TestSumByType(t *testing.T) {
	db := setupTestDB(t)
	p := models.Property{Name: "KOS A"}
	require.NoError(t, db.Create(&p).Error)
	other := models.Property{Name: "KOS B"}
	require.NoError(t, db.Create(&other).Error)

	march := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	createRecord(t, db, p.ID, march, 900000, models.TransactionIncome, "Sewa")
	createRecord(t, db, p.ID, march, 100000, models.TransactionExpense, "Listrik")
	createRecord(t, db, other.ID, march, 500000, models.TransactionIncome, "Sewa")

	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	// Tanpa filter properti
	total, err := finance.SumByType(db, nil, models.TransactionIncome, from, to)
	assert.NoError(t, err)
	assert.Equal(t, 1400000, total)

	// Dibatasi satu properti
	total, err = finance.SumByType(db, []uint{p.ID}, models.TransactionIncome, from, to)
	assert.NoError(t, err)
	assert.Equal(t, 900000, total)

	// Slice kosong berarti tidak ada properti yang boleh dilihat
	total, err = finance.SumByType(db, []uint{}, models.TransactionIncome, from, to)
	assert.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestGroupByCategory(t *testing.T) {
	db := setupTestDB(t)
	p := models.Property{Name: "KOS A"}
	require.NoError(t, db.Create(&p).Error)

	march := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	createRecord(t, db, p.ID, march, 900000, models.TransactionIncome, "Sewa")
	createRecord(t, db, p.ID, march, 850000, models.TransactionIncome, "Sewa")
	createRecord(t, db, p.ID, march, 50000, models.TransactionIncome, "")

	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	byCategory, err := finance.GroupByCategory(db, nil, models.TransactionIncome, from, to)
	assert.NoError(t, err)
	assert.Equal(t, 1750000, byCategory["Sewa"])
	assert.Equal(t, 50000, byCategory[""], "kategori kosong jatuh ke bucket string kosong")
	assert.Len(t, byCategory, 2)
}

func TestMonthlyBreakdown(t *testing.T) {
	db := setupTestDB(t)
	p := models.Property{Name: "KOS A"}
	require.NoError(t, db.Create(&p).Error)

	march := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	createRecord(t, db, p.ID, march, 900000, models.TransactionIncome, "Sewa")
	createRecord(t, db, p.ID, march, 200000, models.TransactionExpense, "Perawatan")

	breakdown, err := finance.MonthlyBreakdown(db, 2025, nil)
	require.NoError(t, err)
	require.Len(t, breakdown.Months, 12)

	february := breakdown.Months[1]
	assert.Equal(t, 0, february.Income)
	assert.Equal(t, 0, february.Expense)
	assert.Equal(t, 0, february.Profit)

	marchRow := breakdown.Months[2]
	assert.Equal(t, "Maret", marchRow.MonthName)
	assert.Equal(t, 900000, marchRow.Income)
	assert.Equal(t, 200000, marchRow.Expense)
	assert.Equal(t, 700000, marchRow.Profit)

	assert.Equal(t, "Maret", breakdown.HighestIncomeMonth)
	assert.Equal(t, 900000, breakdown.HighestIncomeAmount)
	assert.Equal(t, "Maret", breakdown.HighestExpenseMonth)
	assert.Equal(t, "Maret", breakdown.HighestProfitMonth)
}

func TestMonthlyBreakdownTieFirstWins(t *testing.T) {
	db := setupTestDB(t)
	p := models.Property{Name: "KOS A"}
	require.NoError(t, db.Create(&p).Error)

	// Nilai sama di Februari dan Mei: perbandingan > ketat, Februari menang
	createRecord(t, db, p.ID, time.Date(2025, time.February, 5, 0, 0, 0, 0, time.UTC), 500000, models.TransactionIncome, "Sewa")
	createRecord(t, db, p.ID, time.Date(2025, time.May, 5, 0, 0, 0, 0, time.UTC), 500000, models.TransactionIncome, "Sewa")

	breakdown, err := finance.MonthlyBreakdown(db, 2025, nil)
	require.NoError(t, err)
	assert.Equal(t, "Februari", breakdown.HighestIncomeMonth)
}

func TestMonthlyBreakdownIdempotent(t *testing.T) {
	db := setupTestDB(t)
	p := models.Property{Name: "KOS A"}
	require.NoError(t, db.Create(&p).Error)
	createRecord(t, db, p.ID, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), 300000, models.TransactionIncome, "Sewa")

	first, err := finance.MonthlyBreakdown(db, 2025, nil)
	require.NoError(t, err)
	second, err := finance.MonthlyBreakdown(db, 2025, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second, "jalur baca tidak boleh mengubah state")
}

func TestParseRupiah(t *testing.T) {
	assert.Equal(t, 1250000, finance.ParseRupiah("Rp 1.250.000"))
	assert.Equal(t, 850000, finance.ParseRupiah("850000"))
	assert.Equal(t, 900000, finance.ParseRupiah(" Rp900.000 "))
	assert.Equal(t, 0, finance.ParseRupiah(""))
	assert.Equal(t, 0, finance.ParseRupiah("abc"))
}
