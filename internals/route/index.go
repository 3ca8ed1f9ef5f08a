package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	chatRoute "materiku_backend/internals/features/chat/route"
	materiRoute "materiku_backend/internals/features/materi/route"
	"materiku_backend/internals/helpers/storage"
	"materiku_backend/internals/middlewares/auth"
)

// SetupRoutes memasang seluruh route aplikasi.
//
//	/api/public : baca materi + chat AI, tanpa login
//	/api/a      : kelola konten, wajib JWT admin
func SetupRoutes(app *fiber.App, db *gorm.DB, st *storage.SupabaseService) {
	BaseRoutes(app)

	public := app.Group("/api/public")
	materiRoute.MateriUserRoutes(public, db, st)
	chatRoute.ChatRoutes(public, db, st)

	admin := app.Group("/api/a", auth.AdminOnly())
	materiRoute.MateriAdminRoutes(admin, db, st)
}
