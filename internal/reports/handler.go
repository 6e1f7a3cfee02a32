package reports

import (
	"fmt"
	"strconv"
	"time"

	"kosku-backend/internal/access"
	"kosku-backend/internal/auth"
	"kosku-backend/internal/database"
	"kosku-backend/internal/finance"
	"kosku-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type RoomTypeCount struct {
	RoomType string `json:"room_type"`
	Count    int64  `json:"count"`
}

type RoomTypeOccupancy struct {
	RoomType string    `json:"room_type"`
	Rates    []float64 `json:"rates"` // persentase hunian per bulan, indeks 0 = Januari
}

type RoomStatsResponse struct {
	Year      int                 `json:"year"`
	RoomTypes []RoomTypeCount     `json:"room_types"`
	Occupancy []RoomTypeOccupancy `json:"occupancy"`
}

type FinancialStatsResponse struct {
	Breakdown         *finance.YearBreakdown `json:"breakdown"`
	IncomeByCategory  map[string]int         `json:"income_by_category"`
	ExpenseByCategory map[string]int         `json:"expense_by_category"`
}

func resolveYear(c *fiber.Ctx) (int, error) {
	yearStr := c.Query("year")
	if yearStr == "" {
		return time.Now().Year(), nil
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "year tidak valid")
	}
	return year, nil
}

// scopeIDs: nil untuk admin (tanpa filter), selain itu daftar id ter-grant.
func scopeIDs(user *models.User) ([]uint, error) {
	if user.IsAdmin() {
		return nil, nil
	}
	return access.AccessiblePropertyIDs(database.DB, user)
}

// -------------------------------------------------
// GET /api/reports/room-stats?year=2025
// -------------------------------------------------
func RoomStatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		year, err := resolveYear(c)
		if err != nil {
			return err
		}

		propertyIDs, err := scopeIDs(user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Akses properti tidak bisa diperiksa")
		}

		typeQuery := database.DB.Model(&models.Room{}).
			Select("room_type, COUNT(id) as count").
			Group("room_type")
		if propertyIDs != nil {
			typeQuery = typeQuery.Where("property_id IN ?", emptySafe(propertyIDs))
		}

		var roomTypes []RoomTypeCount
		if err := typeQuery.Scan(&roomTypes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Statistik kamar tidak bisa dihitung")
		}

		occupancy := make([]RoomTypeOccupancy, 0, len(roomTypes))
		for _, rt := range roomTypes {
			rates := make([]float64, 0, 12)
			for m := 1; m <= 12; m++ {
				monthKey := fmt.Sprintf("%d-%02d", year, m)

				recordQuery := database.DB.Model(&models.OccupancyRecord{}).
					Joins("JOIN rooms ON rooms.id = occupancy_records.room_id").
					Where("rooms.room_type = ? AND occupancy_records.month = ?", rt.RoomType, monthKey)
				if propertyIDs != nil {
					recordQuery = recordQuery.Where("rooms.property_id IN ?", emptySafe(propertyIDs))
				}

				var total, occupied int64
				if err := recordQuery.Count(&total).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Statistik hunian tidak bisa dihitung")
				}
				if err := recordQuery.Where("occupancy_records.is_occupied = ?", true).Count(&occupied).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Statistik hunian tidak bisa dihitung")
				}

				var rate float64
				if total > 0 {
					rate = float64(occupied) / float64(total) * 100
				}
				rates = append(rates, rate)
			}
			occupancy = append(occupancy, RoomTypeOccupancy{RoomType: rt.RoomType, Rates: rates})
		}

		return c.JSON(RoomStatsResponse{
			Year:      year,
			RoomTypes: roomTypes,
			Occupancy: occupancy,
		})
	}
}

// -------------------------------------------------
// GET /api/reports/financial-stats?year=2025
// -------------------------------------------------
func FinancialStatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		year, err := resolveYear(c)
		if err != nil {
			return err
		}

		propertyIDs, err := scopeIDs(user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Akses properti tidak bisa diperiksa")
		}

		stats, err := buildFinancialStats(year, propertyIDs)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Statistik keuangan tidak bisa dihitung")
		}
		return c.JSON(stats)
	}
}

func buildFinancialStats(year int, propertyIDs []uint) (*FinancialStatsResponse, error) {
	breakdown, err := finance.MonthlyBreakdown(database.DB, year, propertyIDs)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	incomeByCategory, err := finance.GroupByCategory(database.DB, propertyIDs, models.TransactionIncome, start, end)
	if err != nil {
		return nil, err
	}
	expenseByCategory, err := finance.GroupByCategory(database.DB, propertyIDs, models.TransactionExpense, start, end)
	if err != nil {
		return nil, err
	}

	return &FinancialStatsResponse{
		Breakdown:         breakdown,
		IncomeByCategory:  incomeByCategory,
		ExpenseByCategory: expenseByCategory,
	}, nil
}

func emptySafe(ids []uint) []uint {
	if len(ids) == 0 {
		return []uint{0}
	}
	return ids
}
