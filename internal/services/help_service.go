package services

import (
	"fmt"

	"github.com/cropcareai/backend/internal/dto"
	"github.com/cropcareai/backend/internal/models"
	"gorm.io/gorm"
)

// quickHelpOptions is a fixed contact list; no persistence behind it.
var quickHelpOptions = []dto.QuickHelpOption{
	{Title: "Call Support", Description: "+91 1800 123 4567", Action: "tel:+9118001234567"},
	{Title: "Email Support", Description: "support@cropcare-ai.com", Action: "mailto:support@cropcare-ai.com"},
	{Title: "Live Chat", Description: "Chat with our experts", Action: "#"},
	{Title: "Video Tutorials", Description: "Watch how-to videos", Action: "#"},
	{Title: "Documentation", Description: "Read detailed guides", Action: "#"},
	{Title: "User Guide", Description: "Download user manual", Action: "#"},
}

type HelpService struct {
	db *gorm.DB
}

func NewHelpService(db *gorm.DB) *HelpService {
	return &HelpService{db: db}
}

func (s *HelpService) QuickHelp() []dto.QuickHelpOption {
	return quickHelpOptions
}

func (s *HelpService) ListFAQs() ([]models.FAQ, error) {
	var faqs []models.FAQ
	err := s.db.Order("created_at ASC").Find(&faqs).Error
	return faqs, err
}

func (s *HelpService) CreateFAQ(question, answer string) (*models.FAQ, error) {
	faq := &models.FAQ{Question: question, Answer: answer}
	if err := s.db.Create(faq).Error; err != nil {
		return nil, fmt.Errorf("failed to create FAQ: %w", err)
	}
	return faq, nil
}

func (s *HelpService) ContactSupport(name, email, message string) (*models.SupportMessage, error) {
	msg := &models.SupportMessage{Name: name, Email: email, Message: message}
	if err := s.db.Create(msg).Error; err != nil {
		return nil, fmt.Errorf("failed to store support message: %w", err)
	}
	return msg, nil
}
