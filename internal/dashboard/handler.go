package dashboard

import (
	"time"

	"kosku-backend/internal/access"
	"kosku-backend/internal/auth"
	"kosku-backend/internal/database"
	"kosku-backend/internal/finance"
	"kosku-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PropertySummary struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	TotalRooms int    `json:"total_rooms"`
}

type DashboardResponse struct {
	Properties    []PropertySummary `json:"properties"`
	PropertyCount int               `json:"property_count"`
	RoomCount     int64             `json:"room_count"`
	Income        int               `json:"income"`
	Expense       int               `json:"expense"`
	Profit        int               `json:"profit"`
	OccupancyRate float64           `json:"occupancy_rate"`
}

// -------------------------------------------------
// GET /api/dashboard
// -------------------------------------------------
func DashboardHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		properties, err := access.AccessibleProperties(database.DB, user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Daftar properti tidak bisa diambil")
		}

		// Admin tanpa filter; pengguna lain dibatasi id properti yang di-grant
		var propertyIDs []uint
		if !user.IsAdmin() {
			propertyIDs = make([]uint, 0, len(properties))
			for _, p := range properties {
				propertyIDs = append(propertyIDs, p.ID)
			}
		}

		now := time.Now()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)

		income, err := finance.SumByType(database.DB, propertyIDs, models.TransactionIncome, start, end)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ringkasan keuangan tidak bisa dihitung")
		}
		expense, err := finance.SumByType(database.DB, propertyIDs, models.TransactionExpense, start, end)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ringkasan keuangan tidak bisa dihitung")
		}

		roomQuery := database.DB.Model(&models.Room{})
		occupiedQuery := database.DB.Model(&models.Room{}).Where("status = ?", models.RoomOccupied)
		if propertyIDs != nil {
			ids := propertyIDs
			if len(ids) == 0 {
				ids = []uint{0}
			}
			roomQuery = roomQuery.Where("property_id IN ?", ids)
			occupiedQuery = occupiedQuery.Where("property_id IN ?", ids)
		}

		var totalRooms, occupiedRooms int64
		if err := roomQuery.Count(&totalRooms).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data kamar tidak bisa diambil")
		}
		if err := occupiedQuery.Count(&occupiedRooms).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data kamar tidak bisa diambil")
		}

		var occupancyRate float64
		if totalRooms > 0 && occupiedRooms > 0 {
			occupancyRate = float64(occupiedRooms) / float64(totalRooms) * 100
		}

		summaries := make([]PropertySummary, 0, len(properties))
		for _, p := range properties {
			summaries = append(summaries, PropertySummary{
				ID:         p.ID,
				Name:       p.Name,
				Address:    p.Address,
				TotalRooms: p.TotalRooms,
			})
		}

		return c.JSON(DashboardResponse{
			Properties:    summaries,
			PropertyCount: len(properties),
			RoomCount:     totalRooms,
			Income:        income,
			Expense:       expense,
			Profit:        income - expense,
			OccupancyRate: occupancyRate,
		})
	}
}
