package reports

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// -------------------------------------------------
// GET /api/reports/financial-stats/export?year=2025
// Ekspor statistik keuangan setahun ke workbook Excel. Khusus admin.
// -------------------------------------------------
func ExportFinancialStatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		year, err := resolveYear(c)
		if err != nil {
			return err
		}

		// Gerbang admin sudah di route; admin selalu tanpa filter properti
		stats, err := buildFinancialStats(year, nil)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Statistik keuangan tidak bisa dihitung")
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Ringkasan Bulanan"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"Bulan", "Pemasukan", "Pengeluaran", "Laba"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		var totalIncome, totalExpense int
		for i, m := range stats.Breakdown.Months {
			row := i + 2
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.MonthName)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Income)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), m.Expense)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), m.Profit)
			totalIncome += m.Income
			totalExpense += m.Expense
		}

		totalRow := len(stats.Breakdown.Months) + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow), "Total")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", totalRow), totalIncome)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", totalRow), totalExpense)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", totalRow), totalIncome-totalExpense)

		f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow+2), "Pemasukan tertinggi")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", totalRow+2), stats.Breakdown.HighestIncomeMonth)
		f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow+3), "Pengeluaran tertinggi")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", totalRow+3), stats.Breakdown.HighestExpenseMonth)
		f.SetCellValue(sheet, fmt.Sprintf("A%d", totalRow+4), "Laba tertinggi")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", totalRow+4), stats.Breakdown.HighestProfitMonth)

		// Sheet kategori
		catSheet := "Per Kategori"
		if _, err := f.NewSheet(catSheet); err == nil {
			f.SetCellValue(catSheet, "A1", "Tipe")
			f.SetCellValue(catSheet, "B1", "Kategori")
			f.SetCellValue(catSheet, "C1", "Total")

			row := 2
			for category, total := range stats.IncomeByCategory {
				if category == "" {
					category = "(tanpa kategori)"
				}
				f.SetCellValue(catSheet, fmt.Sprintf("A%d", row), "Pemasukan")
				f.SetCellValue(catSheet, fmt.Sprintf("B%d", row), category)
				f.SetCellValue(catSheet, fmt.Sprintf("C%d", row), total)
				row++
			}
			for category, total := range stats.ExpenseByCategory {
				if category == "" {
					category = "(tanpa kategori)"
				}
				f.SetCellValue(catSheet, fmt.Sprintf("A%d", row), "Pengeluaran")
				f.SetCellValue(catSheet, fmt.Sprintf("B%d", row), category)
				f.SetCellValue(catSheet, fmt.Sprintf("C%d", row), total)
				row++
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "File Excel tidak bisa dibuat")
		}

		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="statistik-keuangan-%d.xlsx"`, year))
		return c.Send(buf.Bytes())
	}
}
