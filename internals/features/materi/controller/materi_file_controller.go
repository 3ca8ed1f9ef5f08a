package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"materiku_backend/internals/features/materi/dto"
	"materiku_backend/internals/features/materi/model"
	helper "materiku_backend/internals/helpers"
	"materiku_backend/internals/helpers/storage"
)

type MateriFileController struct {
	DB      *gorm.DB
	Storage *storage.SupabaseService
}

func NewMateriFileController(db *gorm.DB, st *storage.SupabaseService) *MateriFileController {
	return &MateriFileController{DB: db, Storage: st}
}

func (ctrl *MateriFileController) findSubMateri(c *fiber.Ctx) (*model.SubMateriModel, error) {
	var sub model.SubMateriModel
	err := ctrl.DB.WithContext(c.UserContext()).
		Joins("JOIN materi_utama ON materi_utama.materi_id = sub_materi.sub_materi_materi_id").
		Where("materi_utama.materi_slug = ? AND sub_materi.sub_materi_slug = ?",
			c.Params("materiSlug"), c.Params("subSlug")).
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Submateri tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil submateri")
	}
	return &sub, nil
}

// =============================
// ➕ Upload lampiran submateri (multipart, field "file" wajib)
// =============================
func (ctrl *MateriFileController) CreateMateriFile(c *fiber.Ctx) error {
	sub, err := ctrl.findSubMateri(c)
	if err != nil {
		return err
	}

	var body dto.CreateMateriFileRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Tidak ada file yang diupload")
	}

	key, _, err := ctrl.Storage.UploadRawToDir(c.UserContext(), "materi/files", fh)
	if err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "Gagal upload ke storage: "+err.Error())
	}

	file := model.MateriFileModel{
		MateriFileSubMateriID: sub.SubMateriID,
		MateriFileJudul:       body.MateriFileJudul,
		MateriFileDeskripsi:   body.MateriFileDeskripsi,
		MateriFileKey:         key,
	}
	if err := ctrl.DB.WithContext(c.UserContext()).Create(&file).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan lampiran: "+err.Error())
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Lampiran berhasil ditambahkan", dto.ToMateriFileDTO(file))
}

// =============================
// 📄 List lampiran submateri (terurut)
// =============================
func (ctrl *MateriFileController) GetMateriFiles(c *fiber.Ctx) error {
	sub, err := ctrl.findSubMateri(c)
	if err != nil {
		return err
	}

	var files []model.MateriFileModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("materi_file_sub_materi_id = ?", sub.SubMateriID).
		Order("materi_file_urutan ASC").
		Find(&files).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil lampiran")
	}

	response := make([]dto.MateriFileDTO, 0, len(files))
	for _, f := range files {
		response = append(response, dto.ToMateriFileDTO(f))
	}
	return helper.Success(c, "Berhasil mengambil daftar lampiran", response)
}

// =============================
// ✏️ Update metadata lampiran
// =============================
func (ctrl *MateriFileController) UpdateMateriFile(c *fiber.Ctx) error {
	fileID, err := uuid.Parse(c.Params("fileId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID lampiran tidak valid")
	}

	var body dto.UpdateMateriFileRequest
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Gagal parsing body: "+err.Error())
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	var file model.MateriFileModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&file, "materi_file_id = ?", fileID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Lampiran tidak ditemukan")
	}

	if body.MateriFileJudul != "" {
		file.MateriFileJudul = body.MateriFileJudul
	}
	if body.MateriFileDeskripsi != "" {
		file.MateriFileDeskripsi = body.MateriFileDeskripsi
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Save(&file).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengupdate lampiran: "+err.Error())
	}

	return helper.Success(c, "Lampiran berhasil diperbarui", dto.ToMateriFileDTO(file))
}

// =============================
// ❌ Delete lampiran (object storage ikut dihapus, best-effort)
// =============================
func (ctrl *MateriFileController) DeleteMateriFile(c *fiber.Ctx) error {
	fileID, err := uuid.Parse(c.Params("fileId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "ID lampiran tidak valid")
	}

	var file model.MateriFileModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&file, "materi_file_id = ?", fileID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Lampiran tidak ditemukan")
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Delete(&file).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal menghapus lampiran: "+err.Error())
	}

	if file.MateriFileKey != "" {
		_ = ctrl.Storage.DeleteObject(c.UserContext(), file.MateriFileKey)
	}

	return helper.Success(c, "Lampiran berhasil dihapus", nil)
}
