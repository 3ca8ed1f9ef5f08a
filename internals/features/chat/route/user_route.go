package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"materiku_backend/internals/configs"
	chatController "materiku_backend/internals/features/chat/controller"
	chatService "materiku_backend/internals/features/chat/service"
	"materiku_backend/internals/helpers/storage"
	"materiku_backend/internals/middlewares"
)

// ChatRoutes mendaftarkan endpoint tanya-jawab AI. Publik seperti endpoint
// baca materi, tapi di-rate-limit lebih ketat karena tiap request berujung
// panggilan LLM berbayar.
func ChatRoutes(public fiber.Router, db *gorm.DB, st *storage.SupabaseService) {
	llm := chatService.NewOpenAIClient(configs.OpenAIAPIKey, configs.OpenAIModel)
	svc := chatService.NewChatService(db, st, llm, configs.ChatSystemPrompt)
	ctrl := chatController.NewChatController(svc)

	public.Post("/chat", middlewares.ChatRateLimiter(), ctrl.Ask)
}
