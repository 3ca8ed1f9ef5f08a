package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "materiku_backend/internals/helpers"
)

type MateriUtamaModel struct {
	MateriID            uuid.UUID `gorm:"column:materi_id;primaryKey;type:uuid" json:"materi_id"`
	MateriJudul         string    `gorm:"column:materi_judul;type:varchar(255);not null" json:"materi_judul"`
	MateriDeskripsi     string    `gorm:"column:materi_deskripsi;type:text" json:"materi_deskripsi"`
	MateriSlug          string    `gorm:"column:materi_slug;type:varchar(120);uniqueIndex;not null" json:"materi_slug"`
	MateriCoverImageURL string    `gorm:"column:materi_cover_image_url;type:text" json:"materi_cover_image_url"`
	MateriCreatedAt     time.Time `gorm:"column:materi_created_at;autoCreateTime" json:"materi_created_at"`
	MateriUpdatedAt     time.Time `gorm:"column:materi_updated_at;autoUpdateTime" json:"materi_updated_at"`

	// Relations
	SubMateri []SubMateriModel `gorm:"foreignKey:SubMateriMateriID;references:MateriID;constraint:OnDelete:CASCADE" json:"sub_materi,omitempty"`
}

func (MateriUtamaModel) TableName() string {
	return "materi_utama"
}

// BeforeCreate: isi ID + slug unik dari judul (judul → slug deterministik,
// konflik diberi suffix -2, -3, ...).
func (m *MateriUtamaModel) BeforeCreate(tx *gorm.DB) error {
	if m.MateriID == uuid.Nil {
		m.MateriID = uuid.New()
	}
	if m.MateriSlug == "" {
		base := helper.Slugify(m.MateriJudul, 100)
		slug, err := helper.EnsureUniqueSlugCI(tx.Statement.Context, tx, m.TableName(), "materi_slug", base, nil, 100)
		if err != nil {
			return err
		}
		m.MateriSlug = slug
	}
	return nil
}
