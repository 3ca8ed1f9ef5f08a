package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	materiController "materiku_backend/internals/features/materi/controller"
	"materiku_backend/internals/helpers/storage"
)

// MateriAdminRoutes mendaftarkan endpoint kelola konten (dipasang di group
// admin yang sudah dilindungi JWT guard).
func MateriAdminRoutes(admin fiber.Router, db *gorm.DB, st *storage.SupabaseService) {
	materiCtrl := materiController.NewMateriController(db, st)
	subCtrl := materiController.NewSubMateriController(db, st)
	fileCtrl := materiController.NewMateriFileController(db, st)
	uploadCtrl := materiController.NewUploadController(db, st)

	materi := admin.Group("/materi")
	materi.Post("/", materiCtrl.CreateMateri)
	materi.Put("/:materiSlug", materiCtrl.UpdateMateri)
	materi.Delete("/:materiSlug", materiCtrl.DeleteMateri)

	materi.Post("/:materiSlug/submateri", subCtrl.CreateSubMateri)
	materi.Put("/:materiSlug/:subSlug", subCtrl.UpdateSubMateri)
	materi.Delete("/:materiSlug/:subSlug", subCtrl.DeleteSubMateri)

	materi.Post("/:materiSlug/:subSlug/files", fileCtrl.CreateMateriFile)
	materi.Put("/files/:fileId", fileCtrl.UpdateMateriFile)
	materi.Delete("/files/:fileId", fileCtrl.DeleteMateriFile)

	admin.Post("/upload-image", uploadCtrl.UploadImage)
}
