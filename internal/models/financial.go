package models

import "time"

type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// FinancialRecord: satu transaksi pemasukan/pengeluaran untuk satu properti.
// Dari sisi aplikasi bersifat append-only (tidak ada alur edit).
type FinancialRecord struct {
	ID              uint      `gorm:"primaryKey"`
	PropertyID      uint      `gorm:"index;not null"`
	Property        Property  `gorm:"foreignKey:PropertyID"`
	TransactionDate time.Time `gorm:"index;not null"`
	Amount          int       `gorm:"not null"` // rupiah, selalu positif
	TransactionType TransactionType `gorm:"size:10;not null"`
	Category        string    `gorm:"size:50"` // Sewa, Perawatan, Listrik, dst.
	Description     string    `gorm:"type:text"`
	// Diisi hanya untuk catatan sewa yang dibuat otomatis saat status pembayaran
	// berubah jadi paid. Unique index menjamin maksimal satu catatan per
	// occupancy, termasuk saat dua request "tandai lunas" balapan.
	OccupancyRecordID *uint `gorm:"uniqueIndex"`
	CreatedAt         time.Time
	CreatedBy         uint `gorm:"index"`
}
