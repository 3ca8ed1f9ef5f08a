package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MateriFileModel struct {
	MateriFileID          uuid.UUID `gorm:"column:materi_file_id;primaryKey;type:uuid" json:"materi_file_id"`
	MateriFileSubMateriID uuid.UUID `gorm:"column:materi_file_sub_materi_id;type:uuid;not null;index" json:"materi_file_sub_materi_id"`
	MateriFileJudul       string    `gorm:"column:materi_file_judul;type:varchar(255);not null" json:"materi_file_judul"`
	MateriFileDeskripsi   string    `gorm:"column:materi_file_deskripsi;type:text" json:"materi_file_deskripsi"`
	MateriFileKey         string    `gorm:"column:materi_file_key;type:text;not null" json:"materi_file_key"`
	MateriFileUrutan      int       `gorm:"column:materi_file_urutan;not null;default:1" json:"materi_file_urutan"`
	MateriFileCreatedAt   time.Time `gorm:"column:materi_file_created_at;autoCreateTime" json:"materi_file_created_at"`
}

func (MateriFileModel) TableName() string {
	return "materi_files"
}

// BeforeCreate: urutan = (max urutan di bawah submateri yang sama) + 1.
func (m *MateriFileModel) BeforeCreate(tx *gorm.DB) error {
	if m.MateriFileID == uuid.Nil {
		m.MateriFileID = uuid.New()
	}
	if m.MateriFileUrutan <= 0 {
		var max int
		if err := tx.Model(&MateriFileModel{}).
			Where("materi_file_sub_materi_id = ?", m.MateriFileSubMateriID).
			Select("COALESCE(MAX(materi_file_urutan), 0)").
			Scan(&max).Error; err != nil {
			return err
		}
		m.MateriFileUrutan = max + 1
	}
	return nil
}
