package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "materiku_backend/internals/helpers"
	"materiku_backend/internals/helpers/storage"
)

// UploadController melayani upload gambar inline dari rich-text editor admin.
// Hasilnya dipakai langsung sebagai src <img> di isi submateri; object yang
// tidak jadi direferensikan dibersihkan reaper harian.
type UploadController struct {
	DB      *gorm.DB
	Storage *storage.SupabaseService
}

func NewUploadController(db *gorm.DB, st *storage.SupabaseService) *UploadController {
	return &UploadController{DB: db, Storage: st}
}

// =============================
// 🖼️ Upload gambar editor (multipart, field "image")
// =============================
func (ctrl *UploadController) UploadImage(c *fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil || fh == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Tidak ada file gambar")
	}

	url, err := ctrl.Storage.UploadImageAsWebP(c.UserContext(), "uploads", fh)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Gagal upload gambar: "+err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Gambar berhasil diupload", fiber.Map{
		"url": url,
	})
}
