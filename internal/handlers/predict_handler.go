package handlers

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cropcareai/backend/internal/dto"
	"github.com/cropcareai/backend/internal/vision"
	"github.com/gofiber/fiber/v2"
)

const (
	remedySystemPrompt = "You are an expert agricultural assistant."
	remedyFallback     = "AI assistant unavailable. Please try again later."
)

type PredictHandler struct {
	classifier vision.Classifier
	chat       Completer
}

func NewPredictHandler(classifier vision.Classifier, chat Completer) *PredictHandler {
	return &PredictHandler{classifier: classifier, chat: chat}
}

// Predict classifies an uploaded leaf image and asks the chat service for a
// remedy. Remedy failures degrade to fixed text; the diagnosis still returns.
func (h *PredictHandler) Predict(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "file is required",
		})
	}

	if !vision.AllowedExtension(fileHeader.Filename) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "unsupported file type, use jpg, jpeg or png",
		})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "failed to read upload",
		})
	}
	defer f.Close()

	tensor, err := vision.Preprocess(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "could not decode image",
		})
	}

	probs, err := h.classifier.Predict(tensor)
	if err != nil {
		slog.Error("classifier prediction failed", "error", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "prediction failed",
		})
	}

	idx, confidence := vision.ArgMax(probs)
	prediction := h.classifier.Classes()[idx]

	remedy, err := h.chat.Complete(c.Context(), remedySystemPrompt,
		fmt.Sprintf("A farmer's crop is diagnosed with %s. Suggest detailed, actionable remedies for this disease.", prediction),
		100, 0.7)
	if err != nil {
		slog.Warn("remedy completion failed", "error", err.Error())
		remedy = remedyFallback
	}

	return c.JSON(dto.PredictResponse{
		Prediction: prediction,
		Confidence: math.Round(float64(confidence)*10000) / 100,
		Remedy:     remedy,
	})
}
