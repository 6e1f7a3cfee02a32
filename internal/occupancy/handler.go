package occupancy

import (
	"errors"
	"time"

	"kosku-backend/internal/access"
	"kosku-backend/internal/auth"
	"kosku-backend/internal/database"
	"kosku-backend/internal/finance"
	"kosku-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateOccupancyRequest struct {
	PropertyID  uint   `json:"property_id"`
	RoomType    string `json:"room_type"`
	Month       string `json:"month"` // format YYYY-MM
	IsOccupied  bool   `json:"is_occupied"`
	TenantName  string `json:"tenant_name"`
	Notes       string `json:"notes"`
	MonthlyRate string `json:"monthly_rate"` // boleh berformat "Rp 850.000"
	// Hanya dibaca kalau is_occupied true:
	PaymentStatus  models.PaymentStatus `json:"payment_status"`
	PaymentDueDate *string              `json:"payment_due_date"` // YYYY-MM-DD
	PaymentMonths  string               `json:"payment_months"`
}

type OccupancyResponse struct {
	ID            uint                 `json:"id"`
	PropertyName  string               `json:"property_name"`
	RoomNumber    string               `json:"room_number"`
	RoomType      string               `json:"room_type"`
	Month         string               `json:"month"`
	IsOccupied    bool                 `json:"is_occupied"`
	TenantName    string               `json:"tenant_name"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
	PaymentDate   *string              `json:"payment_date"`
	DueDate       *string              `json:"due_date"`
	PaymentMonths int                  `json:"payment_months"`
	Notes         string               `json:"notes"`
	CreatedBy     uint                 `json:"created_by"`
}

// -------------------------------------------------
// POST /api/occupancy
// -------------------------------------------------
func CreateOccupancyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateOccupancyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		if body.PropertyID == 0 || body.RoomType == "" {
			return fiber.NewError(fiber.StatusBadRequest, "property_id dan room_type wajib diisi")
		}
		if _, err := time.Parse("2006-01", body.Month); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format bulan tidak valid, harus 'YYYY-MM'")
		}

		allowed, err := access.HasAccess(database.DB, user, body.PropertyID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Akses properti tidak bisa diperiksa")
		}
		if !allowed {
			return fiber.NewError(fiber.StatusForbidden, "Anda tidak memiliki akses untuk properti ini")
		}

		monthlyRate := finance.ParseRupiah(body.MonthlyRate)

		room, err := CreateOrUpdateRoomForEntry(database.DB, body.PropertyID, body.RoomType, body.IsOccupied, monthlyRate)
		if err != nil {
			if errors.Is(err, ErrPropertyNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Properti tidak ditemukan")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Data kamar tidak bisa disimpan")
		}

		var dueDate *time.Time
		if body.IsOccupied && body.PaymentDueDate != nil && *body.PaymentDueDate != "" {
			// jatuh tempo yang tidak bisa diparse diabaikan, bukan error
			if d, err := time.Parse("2006-01-02", *body.PaymentDueDate); err == nil {
				dueDate = &d
			}
		}

		record := models.OccupancyRecord{
			RoomID:         room.ID,
			Month:          body.Month,
			IsOccupied:     body.IsOccupied,
			TenantName:     body.TenantName,
			Notes:          body.Notes,
			PaymentStatus:  models.PaymentUnpaid,
			PaymentDueDate: dueDate,
			PaymentMonths:  ParsePaymentMonths(body.PaymentMonths),
			CreatedBy:      user.ID,
		}

		if err := database.DB.Create(&record).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data hunian tidak bisa disimpan")
		}

		// Entri yang langsung berstatus paid/late lewat engine yang sama dengan
		// endpoint update, supaya efek samping catatan keuangannya satu pintu.
		if body.IsOccupied && body.PaymentStatus != "" && body.PaymentStatus != models.PaymentUnpaid {
			if _, err := ApplyPaymentStatusChange(database.DB, &record, room, PaymentUpdateInput{
				Status:        body.PaymentStatus,
				DueDate:       dueDate,
				PaymentMonths: body.PaymentMonths,
			}, user); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Status pembayaran tidak bisa diterapkan")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":             record.ID,
			"room_id":        room.ID,
			"room_number":    room.Number,
			"month":          record.Month,
			"payment_status": record.PaymentStatus,
		})
	}
}

// -------------------------------------------------
// GET /api/occupancy
// -------------------------------------------------
func ListOccupancyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.OccupancyRecord{}).
			Joins("JOIN rooms ON rooms.id = occupancy_records.room_id").
			Joins("JOIN properties ON properties.id = rooms.property_id").
			Preload("Room").
			Preload("Room.Property").
			Order("occupancy_records.month desc, properties.name asc")

		if !user.IsAdmin() {
			ids, err := access.AccessiblePropertyIDs(database.DB, user)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Akses properti tidak bisa diperiksa")
			}
			dbq = dbq.Where("rooms.property_id IN ?", emptySafe(ids))
		}

		var records []models.OccupancyRecord
		if err := dbq.Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data hunian tidak bisa diambil")
		}

		resp := make([]OccupancyResponse, 0, len(records))
		for _, r := range records {
			resp = append(resp, OccupancyResponse{
				ID:            r.ID,
				PropertyName:  r.Room.Property.Name,
				RoomNumber:    r.Room.Number,
				RoomType:      r.Room.RoomType,
				Month:         r.Month,
				IsOccupied:    r.IsOccupied,
				TenantName:    r.TenantName,
				PaymentStatus: r.PaymentStatus,
				PaymentDate:   formatDatePtr(r.PaymentDate),
				DueDate:       formatDatePtr(r.PaymentDueDate),
				PaymentMonths: r.PaymentMonths,
				Notes:         r.Notes,
				CreatedBy:     r.CreatedBy,
			})
		}

		return c.JSON(resp)
	}
}

// -------------------------------------------------
// DELETE /api/occupancy/:id
// -------------------------------------------------
func DeleteOccupancyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var record models.OccupancyRecord
		if err := database.DB.Preload("Room").First(&record, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Data hunian tidak ditemukan")
		}

		allowed, err := access.HasAccess(database.DB, user, record.Room.PropertyID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Akses properti tidak bisa diperiksa")
		}
		if !allowed {
			return fiber.NewError(fiber.StatusForbidden, "Anda tidak memiliki akses untuk properti ini")
		}

		// Selain admin, hanya pembuat catatan yang boleh menghapus
		if !user.IsAdmin() && record.CreatedBy != user.ID {
			return fiber.NewError(fiber.StatusForbidden, "Anda tidak memiliki izin untuk menghapus data ini")
		}

		if err := database.DB.Delete(&record).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data hunian tidak bisa dihapus")
		}

		return c.JSON(fiber.Map{"message": "Data hunian berhasil dihapus"})
	}
}

// IN dengan slice kosong cocok ke semua baris di beberapa dialek; paksa kosong
// betulan dengan id yang tidak mungkin ada.
func emptySafe(ids []uint) []uint {
	if len(ids) == 0 {
		return []uint{0}
	}
	return ids
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}
