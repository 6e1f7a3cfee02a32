package models_test

import (
	"testing"
	"time"

	"kosku-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestIsLate(t *testing.T) {
	today := time.Date(2025, time.August, 31, 10, 0, 0, 0, time.UTC)

	record := models.OccupancyRecord{
		PaymentStatus:  models.PaymentUnpaid,
		PaymentDueDate: datePtr(2025, time.August, 30),
	}
	assert.True(t, record.IsLate(today), "unpaid lewat jatuh tempo harus terlambat")

	record.PaymentStatus = models.PaymentPaid
	assert.False(t, record.IsLate(today), "status paid tidak pernah terlambat")

	record.PaymentStatus = models.PaymentUnpaid
	record.PaymentDueDate = nil
	assert.False(t, record.IsLate(today), "tanpa jatuh tempo tidak terlambat")

	record.PaymentDueDate = datePtr(2025, time.August, 31)
	assert.False(t, record.IsLate(today), "jatuh tempo hari ini belum terlambat")

	record.PaymentDueDate = datePtr(2025, time.September, 1)
	assert.False(t, record.IsLate(today))
}

func TestPaidUntil(t *testing.T) {
	tests := []struct {
		name   string
		month  string
		months int
		want   string
	}{
		{"satu bulan", "2025-08", 1, "2025-08"},
		{"carry ke tahun berikutnya", "2025-11", 3, "2026-01"},
		{"tepat desember tanpa carry", "2025-01", 12, "2025-12"},
		{"modulo nol jadi desember tahun sebelumnya", "2025-01", 24, "2026-12"},
		{"desember plus satu", "2025-12", 2, "2026-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := models.OccupancyRecord{
				Month:         tt.month,
				PaymentStatus: models.PaymentPaid,
				PaymentDate:   datePtr(2025, time.August, 1),
				PaymentMonths: tt.months,
			}
			assert.Equal(t, tt.want, record.PaidUntil())
		})
	}
}

func TestPaidUntilUndefined(t *testing.T) {
	record := models.OccupancyRecord{
		Month:         "2025-08",
		PaymentStatus: models.PaymentUnpaid,
		PaymentMonths: 3,
	}
	assert.Equal(t, "", record.PaidUntil(), "belum paid tidak punya paid-until")

	record.PaymentStatus = models.PaymentPaid
	record.PaymentDate = nil
	assert.Equal(t, "", record.PaidUntil(), "tanpa tanggal bayar tidak punya paid-until")
}

func TestRoleOrder(t *testing.T) {
	assert.True(t, models.RoleAdmin.HasAtLeast(models.RoleViewer))
	assert.True(t, models.RoleAdmin.HasAtLeast(models.RoleManager))
	assert.True(t, models.RoleManager.HasAtLeast(models.RoleStaff))
	assert.False(t, models.RoleStaff.HasAtLeast(models.RoleManager))
	assert.False(t, models.RoleViewer.HasAtLeast(models.RoleStaff))
	assert.False(t, models.UserRole("unknown").HasAtLeast(models.RoleViewer))

	admin := models.User{Role: models.RoleAdmin}
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.IsManager())
	assert.True(t, admin.IsStaff())
	assert.False(t, admin.IsViewer())

	staff := models.User{Role: models.RoleStaff}
	assert.False(t, staff.IsAdmin())
	assert.False(t, staff.IsManager())
	assert.True(t, staff.IsStaff())
}
