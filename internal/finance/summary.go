package finance

import (
	"time"

	"kosku-backend/internal/models"

	"gorm.io/gorm"
)

// Fungsi agregasi di file ini murni baca: tanpa cache, selalu dihitung ulang
// dari storage. propertyIDs nil berarti tanpa filter (admin); slice kosong
// berarti tidak ada properti yang boleh dilihat.

var monthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

type MonthBreakdown struct {
	MonthNum  int    `json:"month_num"`
	MonthName string `json:"month_name"`
	Income    int    `json:"income"`
	Expense   int    `json:"expense"`
	Profit    int    `json:"profit"`
}

type YearBreakdown struct {
	Year                 int              `json:"year"`
	Months               []MonthBreakdown `json:"months"`
	HighestIncomeMonth   string           `json:"highest_income_month"`
	HighestIncomeAmount  int              `json:"highest_income_amount"`
	HighestExpenseMonth  string           `json:"highest_expense_month"`
	HighestExpenseAmount int              `json:"highest_expense_amount"`
	HighestProfitMonth   string           `json:"highest_profit_month"`
	HighestProfitAmount  int              `json:"highest_profit_amount"`
}

func scoped(db *gorm.DB, propertyIDs []uint) *gorm.DB {
	q := db.Model(&models.FinancialRecord{})
	if propertyIDs == nil {
		return q
	}
	if len(propertyIDs) == 0 {
		// IN dengan slice kosong; paksa hasil kosong
		return q.Where("property_id IN ?", []uint{0})
	}
	return q.Where("property_id IN ?", propertyIDs)
}

// SumByType menjumlahkan transaksi satu tipe pada rentang [from, to).
func SumByType(db *gorm.DB, propertyIDs []uint, t models.TransactionType, from, to time.Time) (int, error) {
	var total int
	err := scoped(db, propertyIDs).
		Select("COALESCE(SUM(amount), 0)").
		Where("transaction_type = ? AND transaction_date >= ? AND transaction_date < ?", t, from, to).
		Scan(&total).Error
	return total, err
}

// GroupByCategory mengelompokkan total per kategori. Kategori NULL/kosong
// jatuh ke satu bucket dengan kunci string kosong.
func GroupByCategory(db *gorm.DB, propertyIDs []uint, t models.TransactionType, from, to time.Time) (map[string]int, error) {
	type row struct {
		Category string `gorm:"column:category"`
		Total    int    `gorm:"column:total"`
	}
	var rows []row

	err := scoped(db, propertyIDs).
		Select("COALESCE(category, '') as category, SUM(amount) as total").
		Where("transaction_type = ? AND transaction_date >= ? AND transaction_date < ?", t, from, to).
		Group("COALESCE(category, '')").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int, len(rows))
	for _, r := range rows {
		result[r.Category] += r.Total
	}
	return result, nil
}

// MonthlyBreakdown menghitung pemasukan/pengeluaran/laba untuk 12 bulan penuh
// satu tahun, plus bulan dengan nilai tertinggi per kategori. Perbandingan
// memakai > ketat, jadi bulan pertama yang menang saat seri.
func MonthlyBreakdown(db *gorm.DB, year int, propertyIDs []uint) (*YearBreakdown, error) {
	result := &YearBreakdown{Year: year, Months: make([]MonthBreakdown, 0, 12)}

	for m := 1; m <= 12; m++ {
		start := time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)

		income, err := SumByType(db, propertyIDs, models.TransactionIncome, start, end)
		if err != nil {
			return nil, err
		}
		expense, err := SumByType(db, propertyIDs, models.TransactionExpense, start, end)
		if err != nil {
			return nil, err
		}
		profit := income - expense

		if income > result.HighestIncomeAmount {
			result.HighestIncomeAmount = income
			result.HighestIncomeMonth = monthNames[m-1]
		}
		if expense > result.HighestExpenseAmount {
			result.HighestExpenseAmount = expense
			result.HighestExpenseMonth = monthNames[m-1]
		}
		if profit > result.HighestProfitAmount {
			result.HighestProfitAmount = profit
			result.HighestProfitMonth = monthNames[m-1]
		}

		result.Months = append(result.Months, MonthBreakdown{
			MonthNum:  m,
			MonthName: monthNames[m-1],
			Income:    income,
			Expense:   expense,
			Profit:    profit,
		})
	}

	return result, nil
}
