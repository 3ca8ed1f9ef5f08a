package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"materiku_backend/internals/features/chat/dto"
	"materiku_backend/internals/features/materi/model"
	"materiku_backend/internals/helpers/storage"
)

type fakeStore struct {
	objects map[string]*fakeBlob
}

func (s *fakeStore) Object(key string) storage.ObjectReader {
	if b, ok := s.objects[key]; ok {
		return b
	}
	return &fakeBlob{err: errors.New("object tidak ada")}
}

func (s *fakeStore) SignedToPublic(raw string) string {
	return strings.Replace(raw, "/storage/v1/s3/", "/storage/v1/object/public/", 1)
}

type fakeCompleter struct {
	segments []PromptSegment
	reply    string
	err      error
	called   bool
}

func (f *fakeCompleter) Complete(ctx context.Context, segments []PromptSegment) (string, error) {
	f.called = true
	f.segments = segments
	return f.reply, f.err
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.MateriUtamaModel{},
		&model.SubMateriModel{},
		&model.MateriFileModel{},
	))
	return db
}

func seedMateri(t *testing.T, db *gorm.DB, store *fakeStore) *model.MateriUtamaModel {
	t.Helper()

	materi := &model.MateriUtamaModel{
		MateriJudul:     "Aljabar Dasar",
		MateriDeskripsi: "Pengenalan aljabar untuk pemula",
	}
	require.NoError(t, db.Create(materi).Error)

	subA := &model.SubMateriModel{
		SubMateriMateriID: materi.MateriID,
		SubMateriJudul:    "Variabel",
		SubMateriIsi: `<p>Variabel adalah simbol.</p>` +
			`<img src="https://x.test/storage/v1/s3/media/uploads/var.png">`,
	}
	require.NoError(t, db.Create(subA).Error)

	subB := &model.SubMateriModel{
		SubMateriMateriID: materi.MateriID,
		SubMateriJudul:    "Persamaan",
		SubMateriIsi:      `<p>Persamaan linear satu variabel.</p>`,
	}
	require.NoError(t, db.Create(subB).Error)

	store.objects["materi/files/latihan.csv"] = &fakeBlob{data: []byte("soal,jawaban\n1+1,2\n")}
	require.NoError(t, db.Create(&model.MateriFileModel{
		MateriFileSubMateriID: subB.SubMateriID,
		MateriFileJudul:       "Latihan Soal",
		MateriFileDeskripsi:   "Kerjakan mandiri",
		MateriFileKey:         "materi/files/latihan.csv",
	}).Error)

	store.objects["materi/files/peraga.png"] = &fakeBlob{
		url: "https://x.test/storage/v1/object/public/media/materi/files/peraga.png",
	}
	require.NoError(t, db.Create(&model.MateriFileModel{
		MateriFileSubMateriID: subB.SubMateriID,
		MateriFileJudul:       "Alat Peraga",
		MateriFileKey:         "materi/files/peraga.png",
	}).Error)

	return materi
}

func TestBuildMateriContext_AllSubmateri(t *testing.T) {
	db := newTestDB(t)
	store := &fakeStore{objects: map[string]*fakeBlob{}}
	seedMateri(t, db, store)

	svc := NewChatService(db, store, &fakeCompleter{}, "prompt")
	text, images, err := svc.BuildMateriContext(context.Background(), "aljabar-dasar", "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(text, "Materi: Aljabar Dasar\nDeskripsi: Pengenalan aljabar untuk pemula"))
	assert.Equal(t, 2, strings.Count(text, "--- Submateri:"))

	// urutan traversal mengikuti kolom urutan
	posA := strings.Index(text, "--- Submateri: Variabel ---")
	posB := strings.Index(text, "--- Submateri: Persamaan ---")
	require.True(t, posA >= 0 && posB >= 0)
	assert.Less(t, posA, posB)

	assert.Contains(t, text, "Variabel adalah simbol.")
	assert.Contains(t, text, "[File: Latihan Soal]")
	assert.Contains(t, text, "Kerjakan mandiri")
	assert.Contains(t, text, "Isi File (latihan.csv):\nsoal, jawaban\n1+1, 2")
	assert.Contains(t, text, "[File: Alat Peraga]")
	assert.Contains(t, text, "[Gambar: peraga.png]")

	// gambar inline dulu (sudah di-rewrite ke URL publik), lalu gambar lampiran
	require.Equal(t, []string{
		"https://x.test/storage/v1/object/public/media/uploads/var.png",
		"https://x.test/storage/v1/object/public/media/materi/files/peraga.png",
	}, images)
}

func TestBuildMateriContext_SubSlugFilter(t *testing.T) {
	db := newTestDB(t)
	store := &fakeStore{objects: map[string]*fakeBlob{}}
	seedMateri(t, db, store)

	svc := NewChatService(db, store, &fakeCompleter{}, "prompt")
	text, images, err := svc.BuildMateriContext(context.Background(), "aljabar-dasar", "persamaan")
	require.NoError(t, err)

	assert.NotContains(t, text, "--- Submateri: Variabel ---")
	assert.Contains(t, text, "--- Submateri: Persamaan ---")
	// gambar inline milik submateri lain tidak ikut
	require.Len(t, images, 1)
	assert.Contains(t, images[0], "peraga.png")
}

func TestBuildMateriContext_SubSlugNoMatch(t *testing.T) {
	db := newTestDB(t)
	store := &fakeStore{objects: map[string]*fakeBlob{}}
	seedMateri(t, db, store)

	svc := NewChatService(db, store, &fakeCompleter{}, "prompt")
	text, images, err := svc.BuildMateriContext(context.Background(), "aljabar-dasar", "tidak-ada")
	require.NoError(t, err)

	assert.Equal(t, "Materi: Aljabar Dasar\nDeskripsi: Pengenalan aljabar untuk pemula", text)
	assert.Empty(t, images)
}

func TestBuildMateriContext_MateriNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewChatService(db, &fakeStore{objects: map[string]*fakeBlob{}}, &fakeCompleter{}, "prompt")

	_, _, err := svc.BuildMateriContext(context.Background(), "tidak-ada", "")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAnswer_EmptyMessage(t *testing.T) {
	llm := &fakeCompleter{}
	svc := NewChatService(newTestDB(t), &fakeStore{objects: map[string]*fakeBlob{}}, llm, "prompt")

	_, err := svc.Answer(context.Background(), "   ", nil, "", "")

	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	assert.False(t, llm.called)
}

func TestAnswer_MissingMateriProceedsWithoutContext(t *testing.T) {
	llm := &fakeCompleter{reply: "jawaban"}
	svc := NewChatService(newTestDB(t), &fakeStore{objects: map[string]*fakeBlob{}}, llm, "prompt")

	reply, err := svc.Answer(context.Background(), "apa itu variabel?", nil, "sudah-dihapus", "")
	require.NoError(t, err)
	assert.Equal(t, "jawaban", reply)

	require.True(t, llm.called)
	assert.Equal(t, "prompt\n\n", llm.segments[0].Text)
}

func TestAnswer_SegmentOrderAndImageCap(t *testing.T) {
	db := newTestDB(t)
	store := &fakeStore{objects: map[string]*fakeBlob{}}
	seedMateri(t, db, store)

	// lampiran gambar ketiga supaya total gambar konteks = 3
	store.objects["materi/files/ekstra.png"] = &fakeBlob{url: "https://x.test/ekstra.png"}
	var subA model.SubMateriModel
	require.NoError(t, db.First(&subA, "sub_materi_slug = ?", "variabel").Error)
	require.NoError(t, db.Create(&model.MateriFileModel{
		MateriFileSubMateriID: subA.SubMateriID,
		MateriFileJudul:       "Ekstra",
		MateriFileKey:         "materi/files/ekstra.png",
	}).Error)

	llm := &fakeCompleter{reply: "ok"}
	svc := NewChatService(db, store, llm, "prompt")

	history := []dto.ChatTurn{
		{Role: "user", Content: "halo"},
		{Role: "assistant", Content: "hai"},
		{Content: "tanpa role"},
	}
	_, err := svc.Answer(context.Background(), "jelaskan", history, "aljabar-dasar", "")
	require.NoError(t, err)

	segs := llm.segments
	// 1 konteks + 3 riwayat + 2 gambar (cap) + 1 pertanyaan
	require.Len(t, segs, 7)

	assert.True(t, strings.HasPrefix(segs[0].Text, "prompt\n\nMateri: Aljabar Dasar"))
	assert.Equal(t, "USER: halo", segs[1].Text)
	assert.Equal(t, "ASSISTANT: hai", segs[2].Text)
	assert.Equal(t, "USER: tanpa role", segs[3].Text)
	assert.NotEmpty(t, segs[4].ImageURL)
	assert.NotEmpty(t, segs[5].ImageURL)
	assert.Equal(t, "jelaskan", segs[6].Text)
}

func TestAnswer_LLMError(t *testing.T) {
	db := newTestDB(t)
	store := &fakeStore{objects: map[string]*fakeBlob{}}
	llm := &fakeCompleter{err: errors.New("rate limited")}
	svc := NewChatService(db, store, llm, "prompt")

	_, err := svc.Answer(context.Background(), "halo", nil, "", "")

	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusInternalServerError, fe.Code)
	assert.Contains(t, fe.Message, "rate limited")
}
