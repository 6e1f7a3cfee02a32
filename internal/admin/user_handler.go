package admin

import (
	"strings"

	"kosku-backend/internal/access"
	"kosku-backend/internal/database"
	"kosku-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type UserResponse struct {
	ID        uint            `json:"id"`
	Username  string          `json:"username"`
	Role      models.UserRole `json:"role"`
	Locations []string        `json:"locations"` // nama properti yang di-grant
	CreatedAt string          `json:"created_at"`
}

type CreateUserRequest struct {
	Username string          `json:"username"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
	// Daftar nama properti, boleh "KOS A, KOS B" dalam satu string atau array.
	// Nama yang tidak dikenal diabaikan.
	Locations string `json:"locations"`
}

type UpdateUserRequest struct {
	Role      *models.UserRole `json:"role"`
	Locations *string          `json:"locations"`
}

type ResetPasswordRequest struct {
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func validRole(r models.UserRole) bool {
	switch r {
	case models.RoleAdmin, models.RoleManager, models.RoleStaff, models.RoleViewer:
		return true
	}
	return false
}

func userResponse(user *models.User) UserResponse {
	var grants []models.PropertyGrant
	database.DB.Preload("Property").Where("user_id = ?", user.ID).Find(&grants)

	locations := make([]string, 0, len(grants))
	for _, g := range grants {
		locations = append(locations, g.Property.Name)
	}

	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Locations: locations,
		CreatedAt: user.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// ----------------------------------------
// MANAJEMEN PENGGUNA (khusus admin)
// ----------------------------------------

func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("username asc").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pengguna tidak bisa diambil")
		}

		res := make([]UserResponse, 0, len(users))
		for i := range users {
			res = append(res, userResponse(&users[i]))
		}
		return c.JSON(res)
	}
}

func CreateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		body.Username = strings.TrimSpace(strings.ToLower(body.Username))
		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Username dan password wajib diisi")
		}
		if len(body.Password) < 4 {
			return fiber.NewError(fiber.StatusBadRequest, "Password harus minimal 4 karakter")
		}
		if !validRole(body.Role) {
			return fiber.NewError(fiber.StatusBadRequest, "Peran tidak valid (admin|manager|staff|viewer)")
		}

		var count int64
		database.DB.Model(&models.User{}).Where("username = ?", body.Username).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusConflict, "Username sudah dipakai")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Password tidak bisa di-hash")
		}

		user := models.User{
			Username:     body.Username,
			PasswordHash: string(hash),
			Role:         body.Role,
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pengguna tidak bisa dibuat")
		}

		if err := replaceGrants(&user, body.Locations); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Akses properti tidak bisa disimpan")
		}

		return c.Status(fiber.StatusCreated).JSON(userResponse(&user))
	}
}

func UpdateUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var user models.User
		if err := database.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pengguna tidak ditemukan")
		}

		var body UpdateUserRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		if body.Role != nil {
			if !validRole(*body.Role) {
				return fiber.NewError(fiber.StatusBadRequest, "Peran tidak valid (admin|manager|staff|viewer)")
			}
			user.Role = *body.Role
		}

		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Pengguna tidak bisa diperbarui")
		}

		if body.Locations != nil {
			if err := replaceGrants(&user, *body.Locations); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Akses properti tidak bisa disimpan")
			}
		}

		return c.JSON(userResponse(&user))
	}
}

// POST /api/admin/users/:id/password — admin reset password pengguna lain
func ResetUserPasswordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var user models.User
		if err := database.DB.First(&user, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Pengguna tidak ditemukan")
		}

		var body ResetPasswordRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Body request tidak valid")
		}

		if len(body.NewPassword) < 4 {
			return fiber.NewError(fiber.StatusBadRequest, "Password harus minimal 4 karakter")
		}
		if body.NewPassword != body.ConfirmPassword {
			return fiber.NewError(fiber.StatusBadRequest, "Password konfirmasi tidak sama")
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Password tidak bisa di-hash")
		}

		user.PasswordHash = string(hash)
		if err := database.DB.Save(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Password tidak bisa disimpan")
		}

		return c.JSON(fiber.Map{"message": "Password untuk " + user.Username + " berhasil diubah"})
	}
}

// replaceGrants mengganti seluruh grant milik satu pengguna dengan hasil
// pemetaan daftar lokasi, dalam satu transaksi.
func replaceGrants(user *models.User, locations string) error {
	grants, err := access.GrantsForLocations(database.DB, user.ID, locations)
	if err != nil {
		return err
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Where("user_id = ?", user.ID).Delete(&models.PropertyGrant{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if len(grants) > 0 {
		if err := tx.Create(&grants).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit().Error
}
