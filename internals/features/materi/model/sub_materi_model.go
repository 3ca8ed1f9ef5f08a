package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "materiku_backend/internals/helpers"
)

type SubMateriModel struct {
	SubMateriID        uuid.UUID `gorm:"column:sub_materi_id;primaryKey;type:uuid" json:"sub_materi_id"`
	SubMateriMateriID  uuid.UUID `gorm:"column:sub_materi_materi_id;type:uuid;not null;index" json:"sub_materi_materi_id"`
	SubMateriJudul     string    `gorm:"column:sub_materi_judul;type:varchar(255);not null" json:"sub_materi_judul"`
	SubMateriSlug      string    `gorm:"column:sub_materi_slug;type:varchar(120);uniqueIndex;not null" json:"sub_materi_slug"`
	SubMateriIsi       string    `gorm:"column:sub_materi_isi;type:text" json:"sub_materi_isi"`
	SubMateriFileKey   string    `gorm:"column:sub_materi_file_key;type:text" json:"sub_materi_file_key"`
	SubMateriGambarURL string    `gorm:"column:sub_materi_gambar_url;type:text" json:"sub_materi_gambar_url"`
	SubMateriUrutan    int       `gorm:"column:sub_materi_urutan;not null;default:1" json:"sub_materi_urutan"`
	SubMateriCreatedAt time.Time `gorm:"column:sub_materi_created_at;autoCreateTime" json:"sub_materi_created_at"`
	SubMateriUpdatedAt time.Time `gorm:"column:sub_materi_updated_at;autoUpdateTime" json:"sub_materi_updated_at"`

	// Relations
	Files []MateriFileModel `gorm:"foreignKey:MateriFileSubMateriID;references:SubMateriID;constraint:OnDelete:CASCADE" json:"files,omitempty"`
}

func (SubMateriModel) TableName() string {
	return "sub_materi"
}

// InlineMarkup mengembalikan isi rich-text submateri. Implementasi kontrak
// HasInlineMarkup yang dikonsumsi context builder chat.
func (m *SubMateriModel) InlineMarkup() string {
	return m.SubMateriIsi
}

// BeforeCreate: isi ID, slug unik, dan urutan = (max urutan di bawah materi
// induk) + 1, mulai dari 1. Urutan dipakai untuk seluruh traversal konten.
func (m *SubMateriModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubMateriID == uuid.Nil {
		m.SubMateriID = uuid.New()
	}
	if m.SubMateriSlug == "" {
		base := helper.Slugify(m.SubMateriJudul, 100)
		slug, err := helper.EnsureUniqueSlugCI(tx.Statement.Context, tx, m.TableName(), "sub_materi_slug", base, nil, 100)
		if err != nil {
			return err
		}
		m.SubMateriSlug = slug
	}
	if m.SubMateriUrutan <= 0 {
		var max int
		if err := tx.Model(&SubMateriModel{}).
			Where("sub_materi_materi_id = ?", m.SubMateriMateriID).
			Select("COALESCE(MAX(sub_materi_urutan), 0)").
			Scan(&max).Error; err != nil {
			return err
		}
		m.SubMateriUrutan = max + 1
	}
	return nil
}
