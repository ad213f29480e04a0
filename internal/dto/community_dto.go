package dto

import "github.com/google/uuid"

type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,max=300"`
	Content string `json:"content" validate:"required"`
}

type CreateCommentRequest struct {
	Content  string     `json:"content" validate:"required"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}

type LikeResponse struct {
	Message string `json:"message"`
	Liked   bool   `json:"liked"`
}

type CreateReportRequest struct {
	TargetType string    `json:"target_type" validate:"required"`
	TargetID   uuid.UUID `json:"target_id" validate:"required"`
	Reason     string    `json:"reason"`
}

type ResolveReportRequest struct {
	Resolved bool `json:"resolved"`
}
