package admin

import (
	"strings"
	"time"

	"kosku-backend/internal/database"
	"kosku-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type HolidayResponse struct {
	ID   uint   `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}

type CreateHolidayRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"name"`
}

// ----------------------------------------
// HARI LIBUR NASIONAL (khusus admin)
// ----------------------------------------

func ListHolidaysHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var holidays []models.NationalHoliday
		if err := database.DB.Order("date asc").Find(&holidays).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hari libur tidak bisa diambil")
		}

		res := make([]HolidayResponse, 0, len(holidays))
		for _, h := range holidays {
			res = append(res, HolidayResponse{
				ID:   h.ID,
				Date: h.Date.Format("2006-01-02"),
				Name: h.Name,
			})
		}
		return c.JSON(res)
	}
}

func CreateHolidayHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateHolidayRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama hari libur tidak boleh kosong")
		}

		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format tanggal tidak valid, harus 'YYYY-MM-DD'")
		}

		holiday := models.NationalHoliday{Date: date, Name: body.Name}
		if err := database.DB.Create(&holiday).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Hari libur untuk tanggal ini sudah ada")
		}

		return c.Status(fiber.StatusCreated).JSON(HolidayResponse{
			ID:   holiday.ID,
			Date: holiday.Date.Format("2006-01-02"),
			Name: holiday.Name,
		})
	}
}

func DeleteHolidayHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var holiday models.NationalHoliday
		if err := database.DB.First(&holiday, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Hari libur tidak ditemukan")
		}

		if err := database.DB.Delete(&holiday).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Hari libur tidak bisa dihapus")
		}

		return c.JSON(fiber.Map{"message": "Hari libur berhasil dihapus"})
	}
}
