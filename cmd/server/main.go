package main

import (
	"log"
	"strings"

	"kosku-backend/internal/admin"
	"kosku-backend/internal/auth"
	"kosku-backend/internal/config"
	"kosku-backend/internal/dashboard"
	"kosku-backend/internal/database"
	"kosku-backend/internal/finance"
	"kosku-backend/internal/kalender"
	"kosku-backend/internal/models"
	"kosku-backend/internal/occupancy"
	"kosku-backend/internal/reports"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Error tak terduga:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Terjadi kesalahan server",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Post("/auth/change-password", auth.ChangePasswordHandler())

	// Rute admin
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Manajemen pengguna
	adminRoutes.Get("/users", admin.ListUsersHandler())
	adminRoutes.Post("/users", admin.CreateUserHandler())
	adminRoutes.Put("/users/:id", admin.UpdateUserHandler())
	adminRoutes.Post("/users/:id/password", admin.ResetUserPasswordHandler())

	// Manajemen properti
	adminRoutes.Post("/properties", admin.CreatePropertyHandler())
	adminRoutes.Get("/properties", admin.ListPropertiesHandler())
	adminRoutes.Get("/properties/:id", admin.GetPropertyHandler())
	adminRoutes.Put("/properties/:id", admin.UpdatePropertyHandler())
	adminRoutes.Delete("/properties/:id", admin.DeletePropertyHandler())

	// Hari libur nasional
	adminRoutes.Get("/holidays", admin.ListHolidaysHandler())
	adminRoutes.Post("/holidays", admin.CreateHolidayHandler())
	adminRoutes.Delete("/holidays/:id", admin.DeleteHolidayHandler())


	// Hunian kamar
	staffOccupancy := protected.Group("/occupancy", auth.RequireRole(models.RoleStaff))
	staffOccupancy.Post("/", occupancy.CreateOccupancyHandler())
	staffOccupancy.Get("/", occupancy.ListOccupancyHandler())
	staffOccupancy.Post("/:id/payment-status", occupancy.UpdatePaymentStatusHandler())
	protected.Delete("/occupancy/:id", auth.RequireRole(models.RoleManager), occupancy.DeleteOccupancyHandler())

	// Status pembayaran sewa
	protected.Get("/payment-status", occupancy.PaymentStatusHandler())

	// Kamar
	protected.Get("/rooms", occupancy.ListRoomsHandler())
	protected.Put("/rooms/:id/rate", auth.RequireRole(models.RoleStaff), occupancy.UpdateRoomRateHandler())

	// Keuangan
	staffFinance := protected.Group("/finance", auth.RequireRole(models.RoleStaff))
	staffFinance.Post("/", finance.CreateFinanceHandler())
	staffFinance.Get("/", finance.ListFinanceHandler())
	protected.Delete("/finance/:id", auth.RequireRole(models.RoleManager), finance.DeleteFinanceHandler())

	// Dashboard & laporan
	protected.Get("/dashboard", dashboard.DashboardHandler())
	protected.Get("/reports/room-stats", reports.RoomStatsHandler())
	protected.Get("/reports/financial-stats", reports.FinancialStatsHandler())
	protected.Get("/reports/financial-stats/export", auth.RequireRole(models.RoleAdmin), reports.ExportFinancialStatsHandler())

	// Kalender
	protected.Get("/kalender", kalender.CalendarHandler())

	log.Println("Server berjalan di port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
