package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"materiku_backend/internals/features/materi/dto"
	"materiku_backend/internals/features/materi/model"
	helper "materiku_backend/internals/helpers"
	"materiku_backend/internals/helpers/storage"
)

var validate = validator.New()

type MateriController struct {
	DB      *gorm.DB
	Storage *storage.SupabaseService
}

func NewMateriController(db *gorm.DB, st *storage.SupabaseService) *MateriController {
	return &MateriController{DB: db, Storage: st}
}

// =============================
// ➕ Create Materi
// =============================
func (ctrl *MateriController) CreateMateri(c *fiber.Ctx) error {
	var body dto.CreateMateriRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	materi := model.MateriUtamaModel{
		MateriJudul:     body.MateriJudul,
		MateriDeskripsi: body.MateriDeskripsi,
	}

	// Cover image opsional (multipart)
	if fh, err := c.FormFile("cover_image"); err == nil && fh != nil {
		url, err := ctrl.Storage.UploadImageAsWebP(c.UserContext(), "materi/covers", fh)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "Gagal upload cover: "+err.Error())
		}
		materi.MateriCoverImageURL = url
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&materi).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan materi: "+err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Materi berhasil ditambahkan", dto.ToMateriDTO(materi))
}

// =============================
// 📄 Get All Materi
// =============================
func (ctrl *MateriController) GetAllMateri(c *fiber.Ctx) error {
	var materiList []model.MateriUtamaModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Order("materi_created_at ASC").
		Find(&materiList).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil daftar materi")
	}

	response := make([]dto.MateriDTO, 0, len(materiList))
	for _, m := range materiList {
		response = append(response, dto.ToMateriDTO(m))
	}
	return helper.Success(c, "Berhasil mengambil daftar materi", response)
}

// =============================
// 🔍 Get Materi by Slug (+ submateri terurut)
// =============================
func (ctrl *MateriController) GetMateriBySlug(c *fiber.Ctx) error {
	slug := c.Params("materiSlug")

	var materi model.MateriUtamaModel
	err := ctrl.DB.WithContext(c.UserContext()).
		Preload("SubMateri", func(db *gorm.DB) *gorm.DB {
			return db.Order("sub_materi_urutan ASC")
		}).
		Preload("SubMateri.Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("materi_file_urutan ASC")
		}).
		First(&materi, "materi_slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Materi tidak ditemukan")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil materi")
	}

	return helper.Success(c, "Berhasil mengambil detail materi", dto.ToMateriDTO(materi))
}

// =============================
// ✏️ Update Materi by Slug (partial)
// =============================
func (ctrl *MateriController) UpdateMateri(c *fiber.Ctx) error {
	slug := c.Params("materiSlug")

	var body dto.UpdateMateriRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Gagal parsing body: "+err.Error())
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	var materi model.MateriUtamaModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&materi, "materi_slug = ?", slug).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Materi tidak ditemukan")
	}

	if body.MateriJudul != "" {
		materi.MateriJudul = body.MateriJudul
	}
	if body.MateriDeskripsi != "" {
		materi.MateriDeskripsi = body.MateriDeskripsi
	}
	if fh, err := c.FormFile("cover_image"); err == nil && fh != nil {
		url, err := ctrl.Storage.UploadImageAsWebP(c.UserContext(), "materi/covers", fh)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "Gagal upload cover: "+err.Error())
		}
		materi.MateriCoverImageURL = url
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Save(&materi).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengupdate materi: "+err.Error())
	}

	return helper.Success(c, "Materi berhasil diperbarui", dto.ToMateriDTO(materi))
}

// =============================
// ❌ Delete Materi (cascade ke submateri & file)
// =============================
func (ctrl *MateriController) DeleteMateri(c *fiber.Ctx) error {
	slug := c.Params("materiSlug")

	var materi model.MateriUtamaModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&materi, "materi_slug = ?", slug).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Materi tidak ditemukan")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).
		Select("SubMateri", "SubMateri.Files").
		Delete(&materi).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus materi: "+err.Error())
	}

	return helper.Success(c, "Materi berhasil dihapus", nil)
}
