package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"materiku_backend/internals/features/chat/dto"
	"materiku_backend/internals/features/chat/service"
)

type ChatController struct {
	Service *service.ChatService
}

func NewChatController(svc *service.ChatService) *ChatController {
	return &ChatController{Service: svc}
}

// =============================
// 💬 Tanya asisten AI (JSON body)
// =============================
// Respons sengaja tidak memakai envelope standar: klien chat membaca
// {"reply": ...} saat sukses dan {"error": ...} saat gagal.
func (ctrl *ChatController) Ask(c *fiber.Ctx) error {
	var body dto.ChatRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Body request tidak valid",
		})
	}

	reply, err := ctrl.Service.Answer(c.UserContext(), body.Message, body.History, body.MateriSlug, body.SubSlug)
	if err != nil {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		return c.Status(code).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(dto.ChatResponse{Reply: reply})
}
