package admin

import (
	"strings"

	"kosku-backend/internal/database"
	"kosku-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type PropertyResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	TotalRooms int    `json:"total_rooms"`
	RoomCount  int64  `json:"room_count"`
	CreatedAt  string `json:"created_at"`
}

type CreatePropertyRequest struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	TotalRooms int    `json:"total_rooms"`
}

type UpdatePropertyRequest struct {
	Name       *string `json:"name"`
	Address    *string `json:"address"`
	TotalRooms *int    `json:"total_rooms"`
}

// ----------------------------------------
// CRUD PROPERTI (khusus admin)
// ----------------------------------------

func CreatePropertyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePropertyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nama properti tidak boleh kosong")
		}

		property := models.Property{
			Name:       body.Name,
			Address:    body.Address,
			TotalRooms: body.TotalRooms,
		}

		if err := database.DB.Create(&property).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Properti tidak bisa dibuat")
		}

		return c.Status(fiber.StatusCreated).JSON(PropertyResponse{
			ID:         property.ID,
			Name:       property.Name,
			Address:    property.Address,
			TotalRooms: property.TotalRooms,
			CreatedAt:  property.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func ListPropertiesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var properties []models.Property
		if err := database.DB.Order("name asc").Find(&properties).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Properti tidak bisa diambil")
		}

		res := make([]PropertyResponse, 0, len(properties))
		for _, p := range properties {
			var roomCount int64
			database.DB.Model(&models.Room{}).Where("property_id = ?", p.ID).Count(&roomCount)

			res = append(res, PropertyResponse{
				ID:         p.ID,
				Name:       p.Name,
				Address:    p.Address,
				TotalRooms: p.TotalRooms,
				RoomCount:  roomCount,
				CreatedAt:  p.CreatedAt.Format("2006-01-02 15:04:05"),
			})
		}

		return c.JSON(res)
	}
}

func GetPropertyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var property models.Property
		if err := database.DB.First(&property, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Properti tidak ditemukan")
		}

		return c.JSON(PropertyResponse{
			ID:         property.ID,
			Name:       property.Name,
			Address:    property.Address,
			TotalRooms: property.TotalRooms,
			CreatedAt:  property.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func UpdatePropertyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var property models.Property
		if err := database.DB.First(&property, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Properti tidak ditemukan")
		}

		var body UpdatePropertyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "Nama properti tidak boleh kosong")
			}
			property.Name = name
		}
		if body.Address != nil {
			property.Address = *body.Address
		}
		if body.TotalRooms != nil {
			property.TotalRooms = *body.TotalRooms
		}

		if err := database.DB.Save(&property).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Properti tidak bisa diperbarui")
		}

		return c.JSON(PropertyResponse{
			ID:         property.ID,
			Name:       property.Name,
			Address:    property.Address,
			TotalRooms: property.TotalRooms,
			CreatedAt:  property.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
}

func DeletePropertyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var property models.Property
		if err := database.DB.First(&property, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Properti tidak ditemukan")
		}

		var roomCount int64
		database.DB.Model(&models.Room{}).Where("property_id = ?", property.ID).Count(&roomCount)
		if roomCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Properti masih punya kamar, hapus kamarnya dulu")
		}

		if err := database.DB.Delete(&property).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Properti tidak bisa dihapus")
		}

		return c.JSON(fiber.Map{"message": "Properti berhasil dihapus"})
	}
}
