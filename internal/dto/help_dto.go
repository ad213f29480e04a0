package dto

type QuickHelpOption struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

type CreateFAQRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type ContactSupportRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}
