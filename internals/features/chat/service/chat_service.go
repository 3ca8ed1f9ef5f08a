// internals/features/chat/service/chat_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"materiku_backend/internals/features/chat/dto"
	"materiku_backend/internals/helpers/storage"
)

// Maksimal gambar yang ikut dikirim ke model per pertanyaan.
const maxPromptImages = 2

// BlobStore bagian dari storage yang dibutuhkan perakitan konteks.
// *storage.SupabaseService memenuhinya; test memakai fake in-memory.
type BlobStore interface {
	Object(key string) storage.ObjectReader
	SignedToPublic(raw string) string
}

// ChatService mengorkestrasi satu pertanyaan: rakit konteks materi, susun
// segmen prompt, panggil LLM.
type ChatService struct {
	DB           *gorm.DB
	Blob         BlobStore
	LLM          Completer
	SystemPrompt string
}

func NewChatService(db *gorm.DB, blob BlobStore, llm Completer, systemPrompt string) *ChatService {
	return &ChatService{DB: db, Blob: blob, LLM: llm, SystemPrompt: systemPrompt}
}

// Answer menjawab satu pertanyaan pelajar.
//
// Urutan segmen prompt: preamble+konteks, riwayat ("ROLE: isi" per giliran),
// maksimal dua gambar konteks, lalu pertanyaan mentah. Materi yang slug-nya
// sudah tidak ada bukan error: chat tetap jalan dengan konteks kosong
// (materi bisa saja dihapus admin di tengah percakapan).
func (s *ChatService) Answer(ctx context.Context, message string, history []dto.ChatTurn, materiSlug, subSlug string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "Pesan tidak boleh kosong")
	}

	var textContext string
	var imageURLs []string
	if materiSlug != "" {
		text, imgs, err := s.BuildMateriContext(ctx, materiSlug, subSlug)
		switch {
		case err == nil:
			textContext = text
			imageURLs = imgs
		case errors.Is(err, gorm.ErrRecordNotFound):
			// materi hilang, lanjut tanpa konteks
		default:
			return "", fiber.NewError(fiber.StatusInternalServerError, "Gagal membangun konteks materi: "+err.Error())
		}
	}

	segments := []PromptSegment{{Text: s.SystemPrompt + "\n\n" + textContext}}
	for _, turn := range history {
		role := turn.Role
		if role == "" {
			role = "user"
		}
		segments = append(segments, PromptSegment{Text: strings.ToUpper(role) + ": " + turn.Content})
	}
	for i, url := range imageURLs {
		if i >= maxPromptImages {
			break
		}
		segments = append(segments, PromptSegment{ImageURL: url})
	}
	segments = append(segments, PromptSegment{Text: message})

	reply, err := s.LLM.Complete(ctx, segments)
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Gagal memanggil layanan AI: "+err.Error())
	}
	return reply, nil
}
