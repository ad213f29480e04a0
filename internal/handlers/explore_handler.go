package handlers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cropcareai/backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

const (
	chatSystemPrompt = "You are a helpful and knowledgeable agricultural assistant."
	chatFallback     = "AI assistant is currently unavailable. Please try again later."
)

// Completer produces a chat reply for a system+user prompt pair.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int, temperature float64) (string, error)
}

type ExploreHandler struct {
	chat Completer
}

func NewExploreHandler(chat Completer) *ExploreHandler {
	return &ExploreHandler{chat: chat}
}

// Chat answers a free-form question. Any upstream failure degrades to a
// fixed reply with status 200; clients never see chat errors.
func (h *ExploreHandler) Chat(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if strings.TrimSpace(req.Query) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "query is required",
		})
	}

	reply, err := h.chat.Complete(c.Context(), chatSystemPrompt, req.Query, 200, 0.7)
	if err != nil {
		slog.Warn("chat completion failed", "error", err.Error())
		reply = chatFallback
	}

	return c.JSON(dto.ChatResponse{Reply: reply})
}
