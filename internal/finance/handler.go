package finance

import (
	"strconv"
	"strings"
	"time"

	"kosku-backend/internal/access"
	"kosku-backend/internal/auth"
	"kosku-backend/internal/database"
	"kosku-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateFinanceRequest struct {
	PropertyID      uint   `json:"property_id"`
	TransactionDate string `json:"transaction_date"` // YYYY-MM-DD
	Amount          string `json:"amount"`           // boleh berformat "Rp 1.250.000"
	TransactionType string `json:"transaction_type"` // income | expense
	Category        string `json:"category"`
	Description     string `json:"description"`
}

type FinanceResponse struct {
	ID              uint   `json:"id"`
	PropertyID      uint   `json:"property_id"`
	PropertyName    string `json:"property_name"`
	TransactionDate string `json:"transaction_date"`
	Amount          int    `json:"amount"`
	TransactionType models.TransactionType `json:"transaction_type"`
	Category        string `json:"category"`
	Description     string `json:"description"`
	CreatedBy       uint   `json:"created_by"`
}

// ParseRupiah membaca nominal yang mungkin berformat tampilan ("Rp 1.250.000").
// Input yang tetap tidak bisa dibaca jatuh ke 0.
func ParseRupiah(s string) int {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "Rp", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// -------------------------------------------------
// POST /api/finance
// -------------------------------------------------
func CreateFinanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var body CreateFinanceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		if body.PropertyID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "property_id wajib diisi")
		}

		allowed, err := access.HasAccess(database.DB, user, body.PropertyID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Akses properti tidak bisa diperiksa")
		}
		if !allowed {
			return fiber.NewError(fiber.StatusForbidden, "Anda tidak memiliki akses untuk properti ini")
		}

		transactionDate, err := time.Parse("2006-01-02", body.TransactionDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Format tanggal tidak valid, harus 'YYYY-MM-DD'")
		}

		amount := ParseRupiah(body.Amount)
		if amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Nominal harus lebih dari 0")
		}

		transactionType := models.TransactionType(body.TransactionType)
		switch transactionType {
		case models.TransactionIncome, models.TransactionExpense:
			// ok
		default:
			return fiber.NewError(fiber.StatusBadRequest, "Tipe transaksi tidak valid (income|expense)")
		}

		record := models.FinancialRecord{
			PropertyID:      body.PropertyID,
			TransactionDate: transactionDate,
			Amount:          amount,
			TransactionType: transactionType,
			Category:        body.Category,
			Description:     body.Description,
			CreatedBy:       user.ID,
		}

		if err := database.DB.Create(&record).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data keuangan tidak bisa disimpan")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"id":      record.ID,
			"amount":  record.Amount,
			"message": "Data keuangan berhasil disimpan",
		})
	}
}

// -------------------------------------------------
// GET /api/finance?from=2025-01-01&to=2025-12-31&type=income
// -------------------------------------------------
func ListFinanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		dbq := database.DB.Model(&models.FinancialRecord{}).
			Preload("Property").
			Order("transaction_date desc, id desc")

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

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tanggal from tidak valid")
			}
			dbq = dbq.Where("transaction_date >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tanggal to tidak valid")
			}
			dbq = dbq.Where("transaction_date <= ?", to)
		}
		if typeStr := c.Query("type"); typeStr != "" {
			dbq = dbq.Where("transaction_type = ?", typeStr)
		}

		var records []models.FinancialRecord
		if err := dbq.Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Data keuangan tidak bisa diambil")
		}

		resp := make([]FinanceResponse, 0, len(records))
		for _, r := range records {
			resp = append(resp, FinanceResponse{
				ID:              r.ID,
				PropertyID:      r.PropertyID,
				PropertyName:    r.Property.Name,
				TransactionDate: r.TransactionDate.Format("2006-01-02"),
				Amount:          r.Amount,
				TransactionType: r.TransactionType,
				Category:        r.Category,
				Description:     r.Description,
				CreatedBy:       r.CreatedBy,
			})
		}

		return c.JSON(resp)
	}
}

// -------------------------------------------------
// DELETE /api/finance/:id
// -------------------------------------------------
func DeleteFinanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := auth.CurrentUser(c)
		if err != nil {
			return err
		}

		var record models.FinancialRecord
		if err := database.DB.First(&record, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Data keuangan tidak ditemukan")
		}

		allowed, err := access.HasAccess(database.DB, user, record.PropertyID)
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
			return fiber.NewError(fiber.StatusInternalServerError, "Data keuangan tidak bisa dihapus")
		}

		return c.JSON(fiber.Map{"message": "Data keuangan berhasil dihapus"})
	}
}
