package occupancy

import (
	"fmt"

	"kosku-backend/internal/access"
	"kosku-backend/internal/auth"
	"kosku-backend/internal/database"
	"kosku-backend/internal/finance"
	"kosku-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type RoomResponse struct {
	ID          uint              `json:"id"`
	Number      string            `json:"number"`
	RoomType    string            `json:"room_type"`
	MonthlyRate int               `json:"monthly_rate"`
	Status      models.RoomStatus `json:"status"`
}

type UpdateRoomRateRequest struct {
	Rate string `json:"rate"` // boleh berformat "Rp 1.250.000"
}

// -------------------------------------------------
// GET /api/rooms?property_id=1
// -------------------------------------------------
func ListRoomsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var propertyID uint
		if _, err := fmt.Sscan(c.Query("property_id"), &propertyID); err != nil || propertyID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "property_id wajib diisi")
		}

		allowed, err := access.HasAccess(database.DB, user, propertyID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Akses properti tidak bisa diperiksa")
		}
		if !allowed {
			return fiber.NewError(fiber.StatusForbidden, "Anda tidak memiliki akses untuk properti ini")
		}

		var rooms []models.Room
		if err := database.DB.Where("property_id = ?", propertyID).Order("number asc").Find(&rooms).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data kamar tidak bisa diambil")
		}

		resp := make([]RoomResponse, 0, len(rooms))
		for _, r := range rooms {
			resp = append(resp, RoomResponse{
				ID:          r.ID,
				Number:      r.Number,
				RoomType:    r.RoomType,
				MonthlyRate: r.MonthlyRate,
				Status:      r.Status,
			})
		}
		return c.JSON(resp)
	}
}

// -------------------------------------------------
// PUT /api/rooms/:id/rate
// -------------------------------------------------
func UpdateRoomRateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var room models.Room
		if err := database.DB.First(&room, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kamar tidak ditemukan")
		}

		allowed, err := access.HasAccess(database.DB, user, room.PropertyID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Akses properti tidak bisa diperiksa")
		}
		if !allowed {
			return fiber.NewError(fiber.StatusForbidden, "Anda tidak memiliki akses untuk properti ini")
		}

		var body UpdateRoomRateRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		rate := finance.ParseRupiah(body.Rate)
		if rate < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Tarif tidak valid")
		}

		room.MonthlyRate = rate
		if err := database.DB.Save(&room).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tarif kamar tidak bisa disimpan")
		}

		return c.JSON(fiber.Map{
			"id":           room.ID,
			"monthly_rate": room.MonthlyRate,
		})
	}
}
