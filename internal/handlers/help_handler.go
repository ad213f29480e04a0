package handlers

import (
	"github.com/cropcareai/backend/internal/dto"
	"github.com/cropcareai/backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type HelpHandler struct {
	helpService *services.HelpService
}

func NewHelpHandler(helpService *services.HelpService) *HelpHandler {
	return &HelpHandler{helpService: helpService}
}

func (h *HelpHandler) QuickHelp(c *fiber.Ctx) error {
	return c.JSON(h.helpService.QuickHelp())
}

func (h *HelpHandler) ListFAQs(c *fiber.Ctx) error {
	faqs, err := h.helpService.ListFAQs()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.JSON(faqs)
}

func (h *HelpHandler) CreateFAQ(c *fiber.Ctx) error {
	var req dto.CreateFAQRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	faq, err := h.helpService.CreateFAQ(req.Question, req.Answer)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(faq)
}

func (h *HelpHandler) ContactSupport(c *fiber.Ctx) error {
	var req dto.ContactSupportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	if _, err := h.helpService.ContactSupport(req.Name, req.Email, req.Message); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "Support request received"})
}
