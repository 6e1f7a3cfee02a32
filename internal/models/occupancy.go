package models

import (
	"fmt"
	"time"
)

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
	PaymentLate   PaymentStatus = "late"
)

// OccupancyRecord: satu catatan hunian untuk satu kamar pada satu bulan laporan.
// PaymentMonths > 1 berarti penyewa membayar di muka; bulan "lunas sampai"
// diturunkan lewat PaidUntil, tidak disimpan.
type OccupancyRecord struct {
	ID             uint   `gorm:"primaryKey"`
	RoomID         uint   `gorm:"index;not null"`
	Room           Room   `gorm:"foreignKey:RoomID"`
	Month          string `gorm:"size:7;index;not null"` // format YYYY-MM
	IsOccupied     bool   `gorm:"default:true"`
	TenantName     string `gorm:"size:100"`
	PaymentStatus  PaymentStatus `gorm:"size:20;default:unpaid"`
	PaymentDate    *time.Time
	PaymentDueDate *time.Time
	PaymentMonths  int    `gorm:"default:1"` // jumlah bulan yang dicakup satu pembayaran
	Notes          string `gorm:"type:text"`
	CreatedAt      time.Time
	CreatedBy      uint `gorm:"index"`
}

// IsLate cek apakah pembayaran terlambat terhadap tanggal jatuh tempo.
// Status "paid" tidak pernah terlambat; tanpa jatuh tempo juga tidak.
func (r *OccupancyRecord) IsLate(today time.Time) bool {
	if r.PaymentStatus == PaymentPaid {
		return false
	}
	if r.PaymentDueDate == nil {
		return false
	}
	y, m, d := today.Date()
	y2, m2, d2 := r.PaymentDueDate.Date()
	due := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return due.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// PaidUntil menghitung bulan terakhir yang sudah tercakup pembayaran,
// format "YYYY-MM". Kosong kalau belum paid atau tanggal bayar belum ada.
//
// Aturan carry bulan mengikuti perilaku lama: bulan > 12 digeser ke tahun
// berikutnya; hasil modulo 0 berarti Desember tahun sebelumnya.
func (r *OccupancyRecord) PaidUntil() string {
	if r.PaymentStatus != PaymentPaid || r.PaymentDate == nil {
		return ""
	}

	var year, month int
	if _, err := fmt.Sscanf(r.Month, "%d-%d", &year, &month); err != nil {
		return ""
	}

	month += r.PaymentMonths - 1

	if month > 12 {
		year += month / 12
		month = month % 12
		if month == 0 {
			month = 12
			year--
		}
	}

	return fmt.Sprintf("%d-%02d", year, month)
}
