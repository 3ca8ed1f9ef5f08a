// internals/features/chat/service/context_builder.go
package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"materiku_backend/internals/features/materi/model"
)

// BuildMateriContext merakit konteks teks satu materi (judul, deskripsi, isi
// submateri, isi lampiran yang diekstrak) plus URL gambar yang ditemukan di
// sepanjang jalan, urut sesuai kemunculan.
//
// subSlug kosong berarti semua submateri (urut urutan); subSlug terisi
// mempersempit ke satu submateri, dan slug yang tidak cocok menghasilkan
// konteks berisi header materi saja, bukan error. Error hanya untuk materi
// yang tidak ditemukan atau kegagalan query.
func (s *ChatService) BuildMateriContext(ctx context.Context, materiSlug, subSlug string) (string, []string, error) {
	var materi model.MateriUtamaModel
	if err := s.DB.WithContext(ctx).
		First(&materi, "materi_slug = ?", materiSlug).Error; err != nil {
		return "", nil, err
	}

	textLines := []string{"Materi: " + materi.MateriJudul}
	if materi.MateriDeskripsi != "" {
		textLines = append(textLines, "Deskripsi: "+materi.MateriDeskripsi)
	}
	var imageURLs []string

	query := s.DB.WithContext(ctx).Where("sub_materi_materi_id = ?", materi.MateriID)
	if subSlug != "" {
		query = query.Where("sub_materi_slug = ?", subSlug)
	}
	query = query.Order("sub_materi_urutan ASC")

	var subList []model.SubMateriModel
	if err := query.Find(&subList).Error; err != nil {
		return "", nil, err
	}

	for _, sub := range subList {
		textLines = append(textLines, fmt.Sprintf("\n--- Submateri: %s ---", sub.SubMateriJudul))

		if markup := sub.InlineMarkup(); markup != "" {
			cleanText, imgs := ExtractTextAndImages(markup, s.rewriteURL)
			textLines = append(textLines, cleanText)
			imageURLs = append(imageURLs, imgs...)
		}

		var files []model.MateriFileModel
		if err := s.DB.WithContext(ctx).
			Where("materi_file_sub_materi_id = ?", sub.SubMateriID).
			Order("materi_file_urutan ASC").
			Find(&files).Error; err != nil {
			return "", nil, err
		}

		for _, f := range files {
			textLines = append(textLines, fmt.Sprintf("[File: %s]", f.MateriFileJudul))
			if f.MateriFileDeskripsi != "" {
				textLines = append(textLines, f.MateriFileDeskripsi)
			}
			if f.MateriFileKey == "" {
				continue
			}
			filename := filepath.Base(f.MateriFileKey)
			content, imgs := ExtractFileContent(ctx, s.Blob.Object(f.MateriFileKey), filename)
			textLines = append(textLines, fmt.Sprintf("Isi File (%s):\n%s", filename, content))
			imageURLs = append(imageURLs, imgs...)
		}
	}

	return strings.Join(textLines, "\n"), imageURLs, nil
}

// rewriteURL menormalkan URL gambar dari editor (yang mungkin tersimpan
// sebagai signed URL) ke bentuk publiknya.
func (s *ChatService) rewriteURL(raw string) string {
	return s.Blob.SignedToPublic(raw)
}
