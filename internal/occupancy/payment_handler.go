package occupancy

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"kosku-backend/internal/access"
	"kosku-backend/internal/auth"
	"kosku-backend/internal/database"
	"kosku-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

var indonesianMonths = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

type PaymentRoomInfo struct {
	RoomID        uint                 `json:"room_id"`
	RoomNumber    string               `json:"room_number"`
	RoomType      string               `json:"room_type"`
	OccupancyID   uint                 `json:"occupancy_id"`
	TenantName    string               `json:"tenant_name"`
	Status        models.PaymentStatus `json:"status"`
	PaymentDate   *string              `json:"payment_date"`
	DueDate       *string              `json:"due_date"`
	IsLate        bool                 `json:"is_late"`
	PaidUntil     string               `json:"paid_until,omitempty"` // label "Januari 2026" untuk bayar di muka
	PaymentMonths int                  `json:"payment_months"`
}

type PaymentPropertyRecap struct {
	PropertyID uint              `json:"property_id"`
	Name       string            `json:"name"`
	Rooms      []PaymentRoomInfo `json:"rooms"`
	Paid       int               `json:"paid"`
	Unpaid     int               `json:"unpaid"`
	Late       int               `json:"late"`
	Total      int               `json:"total"`
}

type PaymentStatusResponse struct {
	Month         string                 `json:"month"`
	Properties    []PaymentPropertyRecap `json:"properties"`
	Paid          int                    `json:"paid"`
	Unpaid        int                    `json:"unpaid"`
	Late          int                    `json:"late"`
	Total         int                    `json:"total"`
	PaidPercent   float64                `json:"paid_percent"`
	UnpaidPercent float64                `json:"unpaid_percent"`
	LatePercent   float64                `json:"late_percent"`
}

type UpdatePaymentStatusRequest struct {
	Status        string  `json:"status"` // paid | unpaid | late
	PaymentDate   *string `json:"payment_date"`
	DueDate       *string `json:"due_date"`
	PaymentMonths string  `json:"payment_months"`
}

// -------------------------------------------------
// GET /api/payment-status?month=2025-08&status=all
// -------------------------------------------------
func PaymentStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		monthKey := c.Query("month")
		if monthKey == "" {
			monthKey = time.Now().Format("2006-01")
		}
		if _, err := time.Parse("2006-01", monthKey); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format bulan tidak valid, harus 'YYYY-MM'")
		}
		statusFilter := c.Query("status", "all")

		properties, err := access.AccessibleProperties(database.DB, user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Daftar properti tidak bisa diambil")
		}

		today := time.Now()
		resp := PaymentStatusResponse{Month: monthKey, Properties: make([]PaymentPropertyRecap, 0, len(properties))}

		for _, prop := range properties {
			recap := PaymentPropertyRecap{PropertyID: prop.ID, Name: prop.Name, Rooms: make([]PaymentRoomInfo, 0)}

			var rooms []models.Room
			if err := database.DB.Where("property_id = ?", prop.ID).Order("number asc").Find(&rooms).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Data kamar tidak bisa diambil")
			}

			for _, room := range rooms {
				var record models.OccupancyRecord
				err := database.DB.Where("room_id = ? AND month = ?", room.ID, monthKey).First(&record).Error
				if err != nil || !record.IsOccupied {
					continue
				}

				info := PaymentRoomInfo{
					RoomID:        room.ID,
					RoomNumber:    room.Number,
					RoomType:      room.RoomType,
					OccupancyID:   record.ID,
					TenantName:    record.TenantName,
					Status:        record.PaymentStatus,
					PaymentDate:   formatDatePtr(record.PaymentDate),
					DueDate:       formatDatePtr(record.PaymentDueDate),
					IsLate:        record.IsLate(today),
					PaymentMonths: record.PaymentMonths,
				}
				if record.PaymentStatus == models.PaymentPaid && record.PaymentMonths > 1 {
					info.PaidUntil = paidUntilLabel(record.PaidUntil())
				}

				if statusFilter == "all" || statusFilter == string(record.PaymentStatus) {
					recap.Rooms = append(recap.Rooms, info)
				}

				switch {
				case record.PaymentStatus == models.PaymentPaid:
					recap.Paid++
				case record.PaymentStatus == models.PaymentLate || record.IsLate(today):
					recap.Late++
				default:
					recap.Unpaid++
				}
				recap.Total++
			}

			resp.Paid += recap.Paid
			resp.Unpaid += recap.Unpaid
			resp.Late += recap.Late
			resp.Total += recap.Total
			resp.Properties = append(resp.Properties, recap)
		}

		if resp.Total > 0 {
			resp.PaidPercent = float64(resp.Paid) / float64(resp.Total) * 100
			resp.UnpaidPercent = float64(resp.Unpaid) / float64(resp.Total) * 100
			resp.LatePercent = float64(resp.Late) / float64(resp.Total) * 100
		}

		return c.JSON(resp)
	}
}

// paidUntilLabel: "2026-01" -> "Januari 2026"
func paidUntilLabel(paidUntil string) string {
	parts := strings.SplitN(paidUntil, "-", 2)
	if len(parts) != 2 {
		return ""
	}
	var m int
	if _, err := fmt.Sscan(parts[1], &m); err != nil || m < 1 || m > 12 {
		return ""
	}
	return fmt.Sprintf("%s %s", indonesianMonths[m-1], parts[0])
}

// -------------------------------------------------
// POST /api/occupancy/:id/payment-status
// -------------------------------------------------
func UpdatePaymentStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body UpdatePaymentStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		// Validasi enum hanya di tepi HTTP; engine sendiri menyimpan apa adanya
		switch models.PaymentStatus(body.Status) {
		case models.PaymentPaid, models.PaymentUnpaid, models.PaymentLate:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Status pembayaran tidak valid (paid|unpaid|late)")
		}

		var record models.OccupancyRecord
		if err := database.DB.First(&record, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Data hunian tidak ditemukan")
		}

		var room models.Room
		if err := database.DB.First(&room, "id = ?", record.RoomID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Data kamar tidak ditemukan")
		}

		allowed, err := access.HasAccess(database.DB, user, room.PropertyID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Akses properti tidak bisa diperiksa")
		}
		if !allowed {
			return fiber.NewError(fiber.StatusForbidden, "Anda tidak memiliki akses untuk mengubah data ini")
		}

		input := PaymentUpdateInput{
			Status:        models.PaymentStatus(body.Status),
			PaymentMonths: body.PaymentMonths,
		}
		if body.PaymentDate != nil && *body.PaymentDate != "" {
			d, err := time.Parse("2006-01-02", *body.PaymentDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Format tanggal pembayaran tidak valid, harus 'YYYY-MM-DD'")
			}
			input.PaymentDate = &d
		}
		if body.DueDate != nil && *body.DueDate != "" {
			d, err := time.Parse("2006-01-02", *body.DueDate)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Format tanggal jatuh tempo tidak valid, harus 'YYYY-MM-DD'")
			}
			input.DueDate = &d
		}

		created, err := ApplyPaymentStatusChange(database.DB, &record, &room, input, user)
		if err != nil {
			if errors.Is(err, ErrRoomWithoutProperty) {
				return fiber.NewError(fiber.StatusNotFound, "Kamar tidak terhubung ke properti")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Status pembayaran tidak bisa disimpan")
		}

		resp := fiber.Map{
			"message":        "Status pembayaran berhasil diperbarui",
			"payment_status": record.PaymentStatus,
		}
		if created != nil {
			resp["financial_record"] = fiber.Map{
				"id":     created.ID,
				"amount": created.Amount,
			}
		}
		return c.JSON(resp)
	}
}
