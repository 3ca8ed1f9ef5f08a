package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"materiku_backend/internals/features/materi/dto"
	"materiku_backend/internals/features/materi/model"
	helper "materiku_backend/internals/helpers"
	"materiku_backend/internals/helpers/storage"
)

type SubMateriController struct {
	DB      *gorm.DB
	Storage *storage.SupabaseService
}

func NewSubMateriController(db *gorm.DB, st *storage.SupabaseService) *SubMateriController {
	return &SubMateriController{DB: db, Storage: st}
}

func (ctrl *SubMateriController) findParent(c *fiber.Ctx) (*model.MateriUtamaModel, error) {
	slug := c.Params("materiSlug")
	var materi model.MateriUtamaModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&materi, "materi_slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Materi tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil materi")
	}
	return &materi, nil
}

// =============================
// ➕ Create Submateri (multipart; file & gambar inline opsional)
// =============================
func (ctrl *SubMateriController) CreateSubMateri(c *fiber.Ctx) error {
	parent, err := ctrl.findParent(c)
	if err != nil {
		return err
	}

	var body dto.CreateSubMateriRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	sub := model.SubMateriModel{
		SubMateriMateriID: parent.MateriID,
		SubMateriJudul:    body.SubMateriJudul,
		SubMateriIsi:      body.SubMateriIsi,
	}

	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		key, _, err := ctrl.Storage.UploadRawToDir(c.UserContext(), "materi/files", fh)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "Gagal upload file: "+err.Error())
		}
		sub.SubMateriFileKey = key
	}
	if fh, err := c.FormFile("gambar"); err == nil && fh != nil {
		url, err := ctrl.Storage.UploadImageAsWebP(c.UserContext(), "materi/images", fh)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "Gagal upload gambar: "+err.Error())
		}
		sub.SubMateriGambarURL = url
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&sub).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan submateri: "+err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Submateri berhasil ditambahkan", dto.ToSubMateriDTO(sub))
}

// =============================
// 🔍 Get Submateri by Slug (di bawah materi tertentu)
// =============================
func (ctrl *SubMateriController) GetSubMateriBySlug(c *fiber.Ctx) error {
	parent, err := ctrl.findParent(c)
	if err != nil {
		return err
	}

	var sub model.SubMateriModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("materi_file_urutan ASC")
		}).
		Where("sub_materi_materi_id = ? AND sub_materi_slug = ?", parent.MateriID, c.Params("subSlug")).
		First(&sub).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Submateri tidak ditemukan")
	}

	return helper.Success(c, "Berhasil mengambil submateri", dto.ToSubMateriDTO(sub))
}

// =============================
// ✏️ Update Submateri (partial)
// =============================
func (ctrl *SubMateriController) UpdateSubMateri(c *fiber.Ctx) error {
	parent, err := ctrl.findParent(c)
	if err != nil {
		return err
	}

	var body dto.UpdateSubMateriRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Gagal parsing body: "+err.Error())
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	var sub model.SubMateriModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("sub_materi_materi_id = ? AND sub_materi_slug = ?", parent.MateriID, c.Params("subSlug")).
		First(&sub).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Submateri tidak ditemukan")
	}

	if body.SubMateriJudul != "" {
		sub.SubMateriJudul = body.SubMateriJudul
	}
	if body.SubMateriIsi != "" {
		sub.SubMateriIsi = body.SubMateriIsi
	}
	if fh, err := c.FormFile("file"); err == nil && fh != nil {
		key, _, err := ctrl.Storage.UploadRawToDir(c.UserContext(), "materi/files", fh)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "Gagal upload file: "+err.Error())
		}
		sub.SubMateriFileKey = key
	}
	if fh, err := c.FormFile("gambar"); err == nil && fh != nil {
		url, err := ctrl.Storage.UploadImageAsWebP(c.UserContext(), "materi/images", fh)
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "Gagal upload gambar: "+err.Error())
		}
		sub.SubMateriGambarURL = url
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Save(&sub).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengupdate submateri: "+err.Error())
	}

	return helper.Success(c, "Submateri berhasil diperbarui", dto.ToSubMateriDTO(sub))
}

// =============================
// ❌ Delete Submateri
// =============================
func (ctrl *SubMateriController) DeleteSubMateri(c *fiber.Ctx) error {
	parent, err := ctrl.findParent(c)
	if err != nil {
		return err
	}

	var sub model.SubMateriModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("sub_materi_materi_id = ? AND sub_materi_slug = ?", parent.MateriID, c.Params("subSlug")).
		First(&sub).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Submateri tidak ditemukan")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).
		Select("Files").
		Delete(&sub).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus submateri: "+err.Error())
	}

	return helper.Success(c, "Submateri berhasil dihapus", nil)
}
