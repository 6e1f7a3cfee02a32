package occupancy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"kosku-backend/internal/models"

	"gorm.io/gorm"
)

// PaymentUpdateInput: masukan mentah dari form status pembayaran.
// PaymentMonths sengaja string karena input tidak valid harus jatuh ke 1,
// bukan jadi error.
type PaymentUpdateInput struct {
	Status        models.PaymentStatus
	PaymentDate   *time.Time
	DueDate       *time.Time
	PaymentMonths string
}

var ErrRoomWithoutProperty = errors.New("kamar tidak terhubung ke properti")

// ParsePaymentMonths: input non-angka atau < 1 selalu jatuh ke 1.
func ParsePaymentMonths(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ApplyPaymentStatusChange menerapkan perubahan status pembayaran pada satu
// catatan hunian. Transisi apa pun menuju "paid" (dari status selain paid)
// menghasilkan tepat satu catatan keuangan sewa; penyimpanan ulang paid->paid
// tidak menduplikasi. Update catatan dan insert keuangan dibungkus satu
// transaksi: gagal salah satu, keduanya batal.
//
// Balapan dua request "tandai lunas" untuk catatan yang sama tertahan oleh
// unique index pada financial_records.occupancy_record_id: insert kedua
// melanggar constraint dan seluruh transaksinya di-rollback.
func ApplyPaymentStatusChange(db *gorm.DB, record *models.OccupancyRecord, room *models.Room, input PaymentUpdateInput, actor *models.User) (*models.FinancialRecord, error) {
	oldStatus := record.PaymentStatus

	record.PaymentMonths = ParsePaymentMonths(input.PaymentMonths)
	record.PaymentStatus = input.Status

	if input.PaymentDate != nil {
		record.PaymentDate = input.PaymentDate
	} else if input.Status == models.PaymentPaid {
		now := time.Now()
		record.PaymentDate = &now
	} else {
		record.PaymentDate = nil
	}

	// Jatuh tempo hanya berubah kalau dikirim eksplisit
	if input.DueDate != nil {
		record.PaymentDueDate = input.DueDate
	}

	var created *models.FinancialRecord

	tx := db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Save(record).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// Efek samping transisi: * -> paid membuat catatan keuangan sewa
	if input.Status == models.PaymentPaid && oldStatus != models.PaymentPaid {
		if room.PropertyID == 0 {
			tx.Rollback()
			return nil, ErrRoomWithoutProperty
		}

		paymentDate := time.Now()
		if record.PaymentDate != nil {
			paymentDate = *record.PaymentDate
		}

		fin := models.FinancialRecord{
			PropertyID:        room.PropertyID,
			TransactionDate:   paymentDate,
			Amount:            room.MonthlyRate * record.PaymentMonths,
			TransactionType:   models.TransactionIncome,
			Category:          "Sewa",
			Description:       rentDescription(room, record),
			OccupancyRecordID: &record.ID,
			CreatedBy:         actor.ID,
		}

		if err := tx.Create(&fin).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		created = &fin
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return created, nil
}

func rentDescription(room *models.Room, record *models.OccupancyRecord) string {
	return fmt.Sprintf("Pembayaran sewa kamar %s (%s) oleh %s untuk %d bulan",
		room.Number, room.RoomType, record.TenantName, record.PaymentMonths)
}
