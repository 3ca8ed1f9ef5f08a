package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	materiController "materiku_backend/internals/features/materi/controller"
	"materiku_backend/internals/helpers/storage"
)

// MateriUserRoutes mendaftarkan endpoint baca untuk pelajar (public).
func MateriUserRoutes(public fiber.Router, db *gorm.DB, st *storage.SupabaseService) {
	materiCtrl := materiController.NewMateriController(db, st)
	subCtrl := materiController.NewSubMateriController(db, st)
	fileCtrl := materiController.NewMateriFileController(db, st)

	materi := public.Group("/materi")
	materi.Get("/", materiCtrl.GetAllMateri)
	materi.Get("/:materiSlug", materiCtrl.GetMateriBySlug)
	materi.Get("/:materiSlug/:subSlug", subCtrl.GetSubMateriBySlug)
	materi.Get("/:materiSlug/:subSlug/files", fileCtrl.GetMateriFiles)
}
