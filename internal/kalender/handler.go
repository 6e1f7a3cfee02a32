package kalender

import (
	"strconv"
	"time"

	"kosku-backend/internal/access"
	"kosku-backend/internal/auth"
	"kosku-backend/internal/database"
	"kosku-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CalendarEntry struct {
	ID          uint   `json:"id"`
	Type        models.TransactionType `json:"type"`
	Category    string `json:"category"`
	Amount      int    `json:"amount"`
	Description string `json:"description"`
}

type CalendarResponse struct {
	Year         int                     `json:"year"`
	Month        int                     `json:"month"`
	Weeks        [][]int                 `json:"weeks"` // 0 = di luar bulan
	Holidays     map[int]string          `json:"holidays"`
	RecordsByDay map[int][]CalendarEntry `json:"records_by_day"`
	PrevYear     int                     `json:"prev_year"`
	PrevMonth    int                     `json:"prev_month"`
	NextYear     int                     `json:"next_year"`
	NextMonth    int                     `json:"next_month"`
}

// -------------------------------------------------
// GET /api/kalender?year=2025&month=8
// -------------------------------------------------
func CalendarHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		now := time.Now()
		year, _ := strconv.Atoi(c.Query("year", strconv.Itoa(now.Year())))
		month, _ := strconv.Atoi(c.Query("month", strconv.Itoa(int(now.Month()))))
		if year < 2000 || month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "year atau month tidak valid")
		}

		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)

		var holidays []models.NationalHoliday
		if err := database.DB.Where("date >= ? AND date < ?", start, end).Find(&holidays).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hari libur tidak bisa diambil")
		}
		holidayByDay := make(map[int]string, len(holidays))
		for _, h := range holidays {
			holidayByDay[h.Date.Day()] = h.Name
		}

		dbq := database.DB.Model(&models.FinancialRecord{}).
			Where("transaction_date >= ? AND transaction_date < ?", start, end).
			Order("transaction_date asc")
		if !user.IsAdmin() {
			ids, err := access.AccessiblePropertyIDs(database.DB, user)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Akses properti tidak bisa diperiksa")
			}
			if len(ids) == 0 {
				ids = []uint{0}
			}
			dbq = dbq.Where("property_id IN ?", ids)
		}

		var records []models.FinancialRecord
		if err := dbq.Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data keuangan tidak bisa diambil")
		}

		recordsByDay := make(map[int][]CalendarEntry)
		for _, r := range records {
			day := r.TransactionDate.Day()
			recordsByDay[day] = append(recordsByDay[day], CalendarEntry{
				ID:          r.ID,
				Type:        r.TransactionType,
				Category:    r.Category,
				Amount:      r.Amount,
				Description: r.Description,
			})
		}

		prevYear, prevMonth := year, month-1
		if prevMonth < 1 {
			prevYear, prevMonth = year-1, 12
		}
		nextYear, nextMonth := year, month+1
		if nextMonth > 12 {
			nextYear, nextMonth = year+1, 1
		}

		return c.JSON(CalendarResponse{
			Year:         year,
			Month:        month,
			Weeks:        monthCalendar(year, time.Month(month)),
			Holidays:     holidayByDay,
			RecordsByDay: recordsByDay,
			PrevYear:     prevYear,
			PrevMonth:    prevMonth,
			NextYear:     nextYear,
			NextMonth:    nextMonth,
		})
	}
}

// monthCalendar menyusun grid minggu (Senin-Minggu) untuk satu bulan;
// sel di luar bulan bernilai 0.
func monthCalendar(year int, month time.Month) [][]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Geser supaya Senin = 0
	offset := (int(first.Weekday()) + 6) % 7

	var weeks [][]int
	week := make([]int, 7)
	col := offset
	for day := 1; day <= daysInMonth; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = make([]int, 7)
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}
