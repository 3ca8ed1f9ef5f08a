package dto

import (
	"time"

	"materiku_backend/internals/constants"
	"materiku_backend/internals/features/materi/model"
)

// =============================
// Materi Utama
// =============================

type CreateMateriRequest struct {
	MateriJudul     string `json:"materi_judul" form:"materi_judul" validate:"required,min=3,max=255"`
	MateriDeskripsi string `json:"materi_deskripsi" form:"materi_deskripsi" validate:"omitempty"`
}

type UpdateMateriRequest struct {
	MateriJudul     string `json:"materi_judul" form:"materi_judul" validate:"omitempty,min=3,max=255"`
	MateriDeskripsi string `json:"materi_deskripsi" form:"materi_deskripsi" validate:"omitempty"`
}

type MateriDTO struct {
	MateriID            string         `json:"materi_id"`
	MateriJudul         string         `json:"materi_judul"`
	MateriDeskripsi     string         `json:"materi_deskripsi"`
	MateriSlug          string         `json:"materi_slug"`
	MateriCoverImageURL string         `json:"materi_cover_image_url,omitempty"`
	MateriCreatedAt     time.Time      `json:"materi_created_at"`
	SubMateri           []SubMateriDTO `json:"sub_materi,omitempty"`
}

func ToMateriDTO(m model.MateriUtamaModel) MateriDTO {
	out := MateriDTO{
		MateriID:            m.MateriID.String(),
		MateriJudul:         m.MateriJudul,
		MateriDeskripsi:     m.MateriDeskripsi,
		MateriSlug:          m.MateriSlug,
		MateriCoverImageURL: m.MateriCoverImageURL,
		MateriCreatedAt:     m.MateriCreatedAt,
	}
	for _, s := range m.SubMateri {
		out.SubMateri = append(out.SubMateri, ToSubMateriDTO(s))
	}
	return out
}

// =============================
// Sub Materi
// =============================

type CreateSubMateriRequest struct {
	SubMateriJudul string `json:"sub_materi_judul" form:"sub_materi_judul" validate:"required,min=3,max=255"`
	SubMateriIsi   string `json:"sub_materi_isi" form:"sub_materi_isi" validate:"omitempty"`
}

type UpdateSubMateriRequest struct {
	SubMateriJudul string `json:"sub_materi_judul" form:"sub_materi_judul" validate:"omitempty,min=3,max=255"`
	SubMateriIsi   string `json:"sub_materi_isi" form:"sub_materi_isi" validate:"omitempty"`
}

type SubMateriDTO struct {
	SubMateriID        string          `json:"sub_materi_id"`
	SubMateriJudul     string          `json:"sub_materi_judul"`
	SubMateriSlug      string          `json:"sub_materi_slug"`
	SubMateriIsi       string          `json:"sub_materi_isi"`
	SubMateriFileKey   string          `json:"sub_materi_file_key,omitempty"`
	SubMateriGambarURL string          `json:"sub_materi_gambar_url,omitempty"`
	SubMateriUrutan    int             `json:"sub_materi_urutan"`
	SubMateriUpdatedAt time.Time       `json:"sub_materi_updated_at"`
	Files              []MateriFileDTO `json:"files,omitempty"`
}

func ToSubMateriDTO(m model.SubMateriModel) SubMateriDTO {
	out := SubMateriDTO{
		SubMateriID:        m.SubMateriID.String(),
		SubMateriJudul:     m.SubMateriJudul,
		SubMateriSlug:      m.SubMateriSlug,
		SubMateriIsi:       m.SubMateriIsi,
		SubMateriFileKey:   m.SubMateriFileKey,
		SubMateriGambarURL: m.SubMateriGambarURL,
		SubMateriUrutan:    m.SubMateriUrutan,
		SubMateriUpdatedAt: m.SubMateriUpdatedAt,
	}
	for _, f := range m.Files {
		out.Files = append(out.Files, ToMateriFileDTO(f))
	}
	return out
}

// =============================
// Materi File (lampiran)
// =============================

type CreateMateriFileRequest struct {
	MateriFileJudul     string `json:"materi_file_judul" form:"materi_file_judul" validate:"required,min=3,max=255"`
	MateriFileDeskripsi string `json:"materi_file_deskripsi" form:"materi_file_deskripsi" validate:"omitempty"`
}

type UpdateMateriFileRequest struct {
	MateriFileJudul     string `json:"materi_file_judul" form:"materi_file_judul" validate:"omitempty,min=3,max=255"`
	MateriFileDeskripsi string `json:"materi_file_deskripsi" form:"materi_file_deskripsi" validate:"omitempty"`
}

type MateriFileDTO struct {
	MateriFileID        string    `json:"materi_file_id"`
	MateriFileJudul     string    `json:"materi_file_judul"`
	MateriFileDeskripsi string    `json:"materi_file_deskripsi"`
	MateriFileKey       string    `json:"materi_file_key"`
	MateriFileType      string    `json:"materi_file_type"`
	MateriFileUrutan    int       `json:"materi_file_urutan"`
	MateriFileCreatedAt time.Time `json:"materi_file_created_at"`
}

func ToMateriFileDTO(m model.MateriFileModel) MateriFileDTO {
	return MateriFileDTO{
		MateriFileID:        m.MateriFileID.String(),
		MateriFileJudul:     m.MateriFileJudul,
		MateriFileDeskripsi: m.MateriFileDeskripsi,
		MateriFileKey:       m.MateriFileKey,
		MateriFileType:      constants.DetectFileTypeFromExt(m.MateriFileKey),
		MateriFileUrutan:    m.MateriFileUrutan,
		MateriFileCreatedAt: m.MateriFileCreatedAt,
	}
}
